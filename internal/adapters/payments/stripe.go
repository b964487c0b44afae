package payments

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"

	"eventmarketplace/internal/domain"
)

// OperationMetadataKey is the PaymentIntent metadata entry carrying our operation id.
const OperationMetadataKey = "operation_id"

type stripeParser struct {
	secret string
}

// NewStripeWebhookParser verifies Stripe-Signature headers against the
// endpoint's signing secret and maps PaymentIntent events to operations.
func NewStripeWebhookParser(secret string) domain.PaymentWebhookParser {
	return &stripeParser{secret: secret}
}

func (p *stripeParser) Provider() domain.PaymentProvider { return domain.ProviderStripe }

func (p *stripeParser) Parse(signature string, body []byte) (*domain.PaymentWebhookEvent, error) {
	ev, err := webhook.ConstructEventWithOptions(body, signature, p.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSignature, err)
	}

	out := &domain.PaymentWebhookEvent{
		Provider:   domain.ProviderStripe,
		DeliveryID: ev.ID,
		Type:       domain.PaymentIgnored,
	}
	switch string(ev.Type) {
	case "payment_intent.succeeded":
		out.Type = domain.PaymentSucceeded
	case "payment_intent.payment_failed", "payment_intent.canceled":
		out.Type = domain.PaymentFailed
	default:
		return out, nil
	}

	if ev.Data == nil {
		return nil, fmt.Errorf("%w: stripe event %s has no data", domain.ErrInvalidInput, ev.ID)
	}
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(ev.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("%w: decode payment intent: %w", domain.ErrInvalidInput, err)
	}
	out.OperationID = pi.Metadata[OperationMetadataKey]
	out.ProviderRef = pi.ID
	if out.OperationID == "" {
		// intents created outside this service
		out.Type = domain.PaymentIgnored
	}
	return out, nil
}
