package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventmarketplace/internal/delivery/http/helpers"
	"eventmarketplace/internal/domain"
)

// CancellationResultSuccessResponse is the success response envelope for POST /events/{eventID}/cancel.
type CancellationResultSuccessResponse struct {
	Data  *domain.CancellationResult `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// CancellationSuccessResponse is the success response envelope for GET /events/{eventID}/cancellation.
type CancellationSuccessResponse struct {
	Data  *domain.EventCancellation `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

type CancellationController struct {
	Logger  *slog.Logger
	Service domain.CancellationService
}

func NewCancellationController(logger *slog.Logger, svc domain.CancellationService) *CancellationController {
	return &CancellationController{Logger: logger, Service: svc}
}

// CancelEvent godoc
// @Summary Cancel an event and refund its participants
// @Description Stops sales and opens a refund request for every paid operation. When a chunk fails the call answers 503 with the partial result in data; calling again resumes without duplicating refunds.
// @Tags cancellations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.CancellationResultSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already cancelled)"
// @Failure 503 {object} controllers.CancellationResultSuccessResponse "error.code: cancellation_incomplete; data holds the partial result"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/cancel [post]
func (c *CancellationController) CancelEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	result, err := c.Service.CancelEvent(r.Context(), eventID, actor)
	if err != nil {
		if errors.Is(err, domain.ErrCancellationIncomplete) && result != nil {
			c.Logger.WarnContext(r.Context(), "event cancellation incomplete",
				"event_id", eventID, "failed_operations", len(result.FailedOperationIDs), "err", err)
			helpers.WriteJSONErrorWithData(w, http.StatusServiceUnavailable, helpers.ErrCodeCancellationIncomplete,
				"event cancellation incomplete, retry to resume", result)
			return
		}
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// GetCancellation godoc
// @Summary Get the cancellation progress of an event
// @Tags cancellations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.CancellationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/cancellation [get]
func (c *CancellationController) GetCancellation(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	cancellation, err := c.Service.GetCancellation(r.Context(), eventID, actor)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, cancellation)
}
