package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventmarketplace/internal/delivery/http/controllers"
	"eventmarketplace/internal/delivery/http/middleware"
	"eventmarketplace/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Operations    *controllers.OperationController
	Refunds       *controllers.RefundController
	Cancellations *controllers.CancellationController
	Earnings      *controllers.EarningsController
	Webhooks      *controllers.WebhookController
}

// NewRouter initializes the HTTP router with all application routes.
// Write endpoints that create rows share limiter.
func NewRouter(c Controllers, verifier domain.TokenVerifier, limiter *middleware.RateLimiter, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier, logger)
	approvers := middleware.RequireRole(domain.RoleOrganizer, domain.RoleAdmin)

	// Operations
	mux.HandleFunc("POST /events/{eventID}/operations", auth(limiter.Wrap(c.Operations.CreateOperation)))
	mux.HandleFunc("GET /operations/{operationID}", auth(c.Operations.GetOperation))
	mux.HandleFunc("GET /me/operations", auth(c.Operations.ListMyOperations))

	// Refunds
	mux.HandleFunc("POST /operations/{operationID}/refunds", auth(limiter.Wrap(c.Refunds.RequestRefund)))
	mux.HandleFunc("GET /me/refunds", auth(c.Refunds.ListMyRefunds))
	mux.HandleFunc("GET /refunds/pending", auth(approvers(c.Refunds.ListPendingRefunds)))
	mux.HandleFunc("GET /refunds/{refundID}", auth(c.Refunds.GetRefund))
	mux.HandleFunc("POST /refunds/{refundID}/decision", auth(approvers(c.Refunds.DecideRefund)))

	// Cancellation
	mux.HandleFunc("POST /events/{eventID}/cancel", auth(approvers(c.Cancellations.CancelEvent)))
	mux.HandleFunc("GET /events/{eventID}/cancellation", auth(c.Cancellations.GetCancellation))

	// Earnings
	mux.HandleFunc("GET /organizers/me/earnings", auth(approvers(c.Earnings.Earnings)))
	mux.HandleFunc("GET /organizers/me/earnings/top-events", auth(approvers(c.Earnings.TopEvents)))
	mux.HandleFunc("GET /organizers/me/earnings/monthly", auth(approvers(c.Earnings.MonthlyEarnings)))

	// Payment provider callbacks authenticate with their own signatures.
	mux.HandleFunc("POST /webhooks/{provider}", c.Webhooks.HandleWebhook)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
