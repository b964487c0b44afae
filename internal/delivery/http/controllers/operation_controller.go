package controllers

import (
	"log/slog"
	"net/http"

	"eventmarketplace/internal/delivery/http/helpers"
	"eventmarketplace/internal/domain"
)

// CreateOperationRequest is the request body for POST /events/{eventID}/operations.
type CreateOperationRequest struct {
	Quantity int    `json:"quantity" validate:"required,min=1,max=100"`
	Provider string `json:"provider" validate:"required,oneof=stripe paypal"`
}

// OperationSuccessResponse is the success response envelope for a single operation.
type OperationSuccessResponse struct {
	Data  *domain.Operation `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// OperationListSuccessResponse is the success response envelope for GET /me/operations.
type OperationListSuccessResponse struct {
	Data  helpers.PaginatedData[*domain.Operation] `json:"data"`
	Error *helpers.APIError                        `json:"error"`
}

type OperationController struct {
	Logger  *slog.Logger
	Service domain.OperationService
}

func NewOperationController(logger *slog.Logger, svc domain.OperationService) *OperationController {
	return &OperationController{Logger: logger, Service: svc}
}

// CreateOperation godoc
// @Summary Buy tickets for an event
// @Description Creates a pending operation for the caller. The amount is priced from the event at creation time and never recomputed.
// @Tags operations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body CreateOperationRequest true "Quantity and payment provider"
// @Success 201 {object} controllers.OperationSuccessResponse "data contains the pending operation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (cancelled or sold out)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/operations [post]
func (c *OperationController) CreateOperation(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	var req CreateOperationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	op, err := c.Service.CreateOperation(r.Context(), eventID, actor.ID, req.Quantity, domain.PaymentProvider(req.Provider))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, op)
}

// GetOperation godoc
// @Summary Get an operation
// @Description Returns the operation to its buyer, the event organizer or an administrator.
// @Tags operations
// @Produce json
// @Security BearerAuth
// @Param operationID path string true "Operation ID (UUID)"
// @Success 200 {object} controllers.OperationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /operations/{operationID} [get]
func (c *OperationController) GetOperation(w http.ResponseWriter, r *http.Request) {
	operationID, ok := pathUUID(w, r, "operationID")
	if !ok {
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	op, err := c.Service.GetOperation(r.Context(), operationID, actor)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, op)
}

// ListMyOperations godoc
// @Summary List my purchases
// @Description Lists the caller's operations, newest first.
// @Tags operations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.OperationListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/operations [get]
func (c *OperationController) ListMyOperations(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	params := helpers.ParsePagination(r)
	ops, total, err := c.Service.ListMyPurchases(r.Context(), actor.ID, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewPaginatedData(ops, params, total))
}
