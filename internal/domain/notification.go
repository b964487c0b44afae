package domain

import "context"

// NotificationKind names an outbound domain event. It doubles as the e-mail
// template name.
type NotificationKind string

const (
	NotificationRefundRequested NotificationKind = "refund_requested"
	NotificationRefundDecided   NotificationKind = "refund_decided"
	NotificationEventCancelled  NotificationKind = "event_cancelled"
)

// RefundRequestedPayload is emitted when a refund request is opened.
type RefundRequestedPayload struct {
	RefundRequestID string
	OperationID     string
	EventID         string
	EventName       string
	AmountCents     int64
	Currency        string
	Reason          string
}

// RefundDecidedPayload is emitted when a refund request reaches a terminal state.
type RefundDecidedPayload struct {
	RefundRequestID string
	OperationID     string
	Decision        RefundStatus
	Comment         string
	AmountCents     int64
	Currency        string
}

// EventCancelledPayload is emitted once per completed cancellation, for the organizer.
type EventCancelledPayload struct {
	EventID          string
	EventName        string
	CancellationID   string
	RefundRequestIDs []string
	TotalAmountCents int64
	ParticipantCount int
	Currency         string
}

// Notification is addressed to a user id; the notifier resolves the channel.
// Payload holds one of the *Payload types above, matching Kind.
type Notification struct {
	Kind        NotificationKind
	RecipientID string
	Payload     any
}

// Notifier delivers notifications. Callers treat delivery as best effort.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// PaymentEventType classifies an inbound provider webhook.
type PaymentEventType string

const (
	PaymentSucceeded PaymentEventType = "payment_succeeded"
	PaymentFailed    PaymentEventType = "payment_failed"
	// PaymentIgnored marks verified deliveries this service has no use for.
	PaymentIgnored PaymentEventType = "ignored"
)

// PaymentWebhookEvent is a verified provider notification about an operation.
type PaymentWebhookEvent struct {
	Provider    PaymentProvider
	DeliveryID  string
	Type        PaymentEventType
	OperationID string
	ProviderRef string
}

// PaymentWebhookParser verifies and decodes one provider's webhook deliveries.
type PaymentWebhookParser interface {
	Provider() PaymentProvider
	// Parse returns ErrInvalidSignature when the delivery cannot be authenticated.
	Parse(signature string, body []byte) (*PaymentWebhookEvent, error)
}

// ErrInvalidSignature is returned for webhook deliveries that fail verification.
var ErrInvalidSignature = newError(ErrForbidden, "invalid webhook signature")

// PaymentWebhookService applies verified provider notifications to operations.
type PaymentWebhookService interface {
	Handle(ctx context.Context, provider PaymentProvider, signature string, body []byte) (*PaymentWebhookEvent, error)
}
