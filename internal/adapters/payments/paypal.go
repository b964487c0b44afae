package payments

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"

	"eventmarketplace/internal/domain"
)

type paypalParser struct {
	token string
}

// NewPayPalWebhookParser authenticates PayPal deliveries with a shared token
// configured on the webhook URL and maps capture events to operations. The
// operation id travels in the capture's custom_id.
func NewPayPalWebhookParser(token string) domain.PaymentWebhookParser {
	return &paypalParser{token: token}
}

func (p *paypalParser) Provider() domain.PaymentProvider { return domain.ProviderPayPal }

type paypalEvent struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"`
	Resource  struct {
		ID       string `json:"id"`
		CustomID string `json:"custom_id"`
	} `json:"resource"`
}

func (p *paypalParser) Parse(signature string, body []byte) (*domain.PaymentWebhookEvent, error) {
	if p.token == "" || subtle.ConstantTimeCompare([]byte(signature), []byte(p.token)) != 1 {
		return nil, domain.ErrInvalidSignature
	}
	var ev paypalEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("%w: decode paypal event: %w", domain.ErrInvalidInput, err)
	}

	out := &domain.PaymentWebhookEvent{
		Provider:    domain.ProviderPayPal,
		DeliveryID:  ev.ID,
		Type:        domain.PaymentIgnored,
		OperationID: ev.Resource.CustomID,
		ProviderRef: ev.Resource.ID,
	}
	switch ev.EventType {
	case "PAYMENT.CAPTURE.COMPLETED":
		out.Type = domain.PaymentSucceeded
	case "PAYMENT.CAPTURE.DENIED", "PAYMENT.CAPTURE.DECLINED":
		out.Type = domain.PaymentFailed
	}
	if out.OperationID == "" {
		out.Type = domain.PaymentIgnored
	}
	return out, nil
}
