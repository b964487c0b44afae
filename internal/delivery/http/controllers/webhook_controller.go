package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"eventmarketplace/internal/delivery/http/helpers"
	"eventmarketplace/internal/domain"
)

// Webhook authentication inputs.
const (
	StripeSignatureHeader = "Stripe-Signature"
	PayPalTokenHeader     = "X-Webhook-Token"
	payPalTokenQuery      = "token"
)

// maxWebhookBytes matches the payload ceiling Stripe documents.
const maxWebhookBytes = 64 << 10

// WebhookAck is the data of a processed webhook delivery.
type WebhookAck struct {
	Type        domain.PaymentEventType `json:"type"`
	OperationID string                  `json:"operation_id,omitempty"`
}

// WebhookSuccessResponse is the success response envelope for POST /webhooks/{provider}.
type WebhookSuccessResponse struct {
	Data  WebhookAck        `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type WebhookController struct {
	Logger  *slog.Logger
	Service domain.PaymentWebhookService
}

func NewWebhookController(logger *slog.Logger, svc domain.PaymentWebhookService) *WebhookController {
	return &WebhookController{Logger: logger, Service: svc}
}

// HandleWebhook godoc
// @Summary Receive a payment provider webhook
// @Description Verifies the delivery and confirms or fails the referenced operation. Stripe deliveries are signed (Stripe-Signature); PayPal deliveries carry the shared token in X-Webhook-Token or ?token=. Redeliveries are acknowledged without side effects.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param provider path string true "stripe or paypal"
// @Success 200 {object} controllers.WebhookSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (bad signature)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /webhooks/{provider} [post]
func (c *WebhookController) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	provider := domain.PaymentProvider(r.PathValue("provider"))
	if !provider.Valid() {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "unknown payment provider")
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "unreadable body")
		return
	}

	var signature string
	switch provider {
	case domain.ProviderStripe:
		signature = r.Header.Get(StripeSignatureHeader)
	case domain.ProviderPayPal:
		signature = r.Header.Get(PayPalTokenHeader)
		if signature == "" {
			signature = r.URL.Query().Get(payPalTokenQuery)
		}
	}

	ev, err := c.Service.Handle(r.Context(), provider, signature, body)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSignature) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid webhook signature")
			return
		}
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, WebhookAck{Type: ev.Type, OperationID: ev.OperationID})
}
