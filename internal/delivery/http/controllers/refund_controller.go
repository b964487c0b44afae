package controllers

import (
	"log/slog"
	"net/http"

	"eventmarketplace/internal/delivery/http/helpers"
	"eventmarketplace/internal/domain"
)

// RequestRefundRequest is the request body for POST /operations/{operationID}/refunds.
type RequestRefundRequest struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

// DecideRefundRequest is the request body for POST /refunds/{refundID}/decision.
type DecideRefundRequest struct {
	Decision string `json:"decision" validate:"required"`
	Comment  string `json:"comment" validate:"required,max=2000"`
}

// RefundSuccessResponse is the success response envelope for a single refund request.
type RefundSuccessResponse struct {
	Data  *domain.RefundRequest `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// RefundListSuccessResponse is the success response envelope for refund request lists.
type RefundListSuccessResponse struct {
	Data  helpers.PaginatedData[*domain.RefundRequest] `json:"data"`
	Error *helpers.APIError                            `json:"error"`
}

type RefundController struct {
	Logger  *slog.Logger
	Service domain.RefundService
}

func NewRefundController(logger *slog.Logger, svc domain.RefundService) *RefundController {
	return &RefundController{Logger: logger, Service: svc}
}

// RequestRefund godoc
// @Summary Request a refund
// @Description Opens a pending refund request for the full amount of one of the caller's paid operations.
// @Tags refunds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param operationID path string true "Operation ID (UUID)"
// @Param body body RequestRefundRequest true "Reason, at least 10 characters"
// @Success 201 {object} controllers.RefundSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not the buyer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (not paid or already requested)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /operations/{operationID}/refunds [post]
func (c *RefundController) RequestRefund(w http.ResponseWriter, r *http.Request) {
	operationID, ok := pathUUID(w, r, "operationID")
	if !ok {
		return
	}
	var req RequestRefundRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	rr, err := c.Service.RequestRefund(r.Context(), operationID, actor, req.Reason)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, rr)
}

// DecideRefund godoc
// @Summary Approve or reject a refund request
// @Description Administrators decide any request. An organizer decides requests on their events' operations settled directly to them.
// @Tags refunds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param refundID path string true "Refund request ID (UUID)"
// @Param body body DecideRefundRequest true "Decision (approved or rejected) and comment"
// @Success 200 {object} controllers.RefundSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already processed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /refunds/{refundID}/decision [post]
func (c *RefundController) DecideRefund(w http.ResponseWriter, r *http.Request) {
	refundID, ok := pathUUID(w, r, "refundID")
	if !ok {
		return
	}
	var req DecideRefundRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	decision, err := domain.ParseRefundDecision(req.Decision)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	rr, err := c.Service.Process(r.Context(), refundID, actor, decision, req.Comment)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rr)
}

// GetRefund godoc
// @Summary Get a refund request
// @Tags refunds
// @Produce json
// @Security BearerAuth
// @Param refundID path string true "Refund request ID (UUID)"
// @Success 200 {object} controllers.RefundSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /refunds/{refundID} [get]
func (c *RefundController) GetRefund(w http.ResponseWriter, r *http.Request) {
	refundID, ok := pathUUID(w, r, "refundID")
	if !ok {
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	rr, err := c.Service.GetRefund(r.Context(), refundID, actor)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rr)
}

// ListMyRefunds godoc
// @Summary List my refund requests
// @Description Includes requests opened on the caller's behalf by an event cancellation.
// @Tags refunds
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.RefundListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/refunds [get]
func (c *RefundController) ListMyRefunds(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	items, total, err := c.Service.ListMyRefunds(r.Context(), actor.ID, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewPaginatedData(items, params, total))
}

// ListPendingRefunds godoc
// @Summary List pending refund requests the caller may decide
// @Description Administrators see every pending request; organizers see those on their events' direct-settled operations.
// @Tags refunds
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.RefundListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /refunds/pending [get]
func (c *RefundController) ListPendingRefunds(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	items, total, err := c.Service.ListPendingRefunds(r.Context(), actor, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewPaginatedData(items, params, total))
}
