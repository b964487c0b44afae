package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"eventmarketplace/internal/delivery/http/helpers"
	"eventmarketplace/internal/domain"
)

// Limits for GET /organizers/me/earnings/top-events.
const (
	DefaultTopEventsLimit = 5
	MaxTopEventsLimit     = 50
)

// EarningsSuccessResponse is the success response envelope for GET /organizers/me/earnings.
type EarningsSuccessResponse struct {
	Data  *domain.EarningsReport `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// TopEventsSuccessResponse is the success response envelope for GET /organizers/me/earnings/top-events.
type TopEventsSuccessResponse struct {
	Data  []domain.EventRevenue `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// MonthlyEarningsSuccessResponse is the success response envelope for GET /organizers/me/earnings/monthly.
type MonthlyEarningsSuccessResponse struct {
	Data  []domain.MonthlyEarnings `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type EarningsController struct {
	Logger  *slog.Logger
	Service domain.EarningsService
}

func NewEarningsController(logger *slog.Logger, svc domain.EarningsService) *EarningsController {
	return &EarningsController{Logger: logger, Service: svc}
}

func periodParam(r *http.Request) string {
	if p := r.URL.Query().Get("period"); p != "" {
		return p
	}
	return "all"
}

// Earnings godoc
// @Summary Get my earnings
// @Description Gross, commission and net over a period, split by settlement mode. Refunded operations count as transactions only.
// @Tags earnings
// @Produce json
// @Security BearerAuth
// @Param period query string false "all, 7d, 30d, 90d, month, year or YYYY-MM (default all)"
// @Success 200 {object} controllers.EarningsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizers/me/earnings [get]
func (c *EarningsController) Earnings(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	report, err := c.Service.Earnings(r.Context(), actor.ID, periodParam(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}

// TopEvents godoc
// @Summary Get my best selling events
// @Tags earnings
// @Produce json
// @Security BearerAuth
// @Param period query string false "all, 7d, 30d, 90d, month, year or YYYY-MM (default all)"
// @Param limit query int false "Number of events (default 5, max 50)"
// @Success 200 {object} controllers.TopEventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizers/me/earnings/top-events [get]
func (c *EarningsController) TopEvents(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	limit := DefaultTopEventsLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(v, MaxTopEventsLimit)
	}
	events, err := c.Service.TopEvents(r.Context(), actor.ID, periodParam(r), limit)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if events == nil {
		events = []domain.EventRevenue{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// MonthlyEarnings godoc
// @Summary Get my earnings per calendar month
// @Tags earnings
// @Produce json
// @Security BearerAuth
// @Param period query string false "all, 7d, 30d, 90d, month, year or YYYY-MM (default all)"
// @Success 200 {object} controllers.MonthlyEarningsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizers/me/earnings/monthly [get]
func (c *EarningsController) MonthlyEarnings(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	months, err := c.Service.MonthlyRollup(r.Context(), actor.ID, periodParam(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if months == nil {
		months = []domain.MonthlyEarnings{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, months)
}
