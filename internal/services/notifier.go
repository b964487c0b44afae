package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"eventmarketplace/internal/domain"
)

type emailNotifier struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	userRepo domain.UserRepository
	logger   *slog.Logger
}

// NewEmailNotifier returns a Notifier that renders the template named after the
// notification kind and mails it to the recipient's registered address.
func NewEmailNotifier(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, userRepo domain.UserRepository, logger *slog.Logger) domain.Notifier {
	return &emailNotifier{mailer: mailer, renderer: renderer, userRepo: userRepo, logger: logger}
}

// notificationEmailData is what the e-mail templates see.
type notificationEmailData struct {
	RecipientName string
	Amount        string
	Payload       any
}

func (n *emailNotifier) Notify(ctx context.Context, note domain.Notification) error {
	if note.RecipientID == "" {
		return fmt.Errorf("notification %s has no recipient", note.Kind)
	}
	user, err := n.userRepo.GetByID(ctx, note.RecipientID)
	if err != nil {
		return fmt.Errorf("get recipient: %w", err)
	}
	data := notificationEmailData{
		RecipientName: user.DisplayName(),
		Amount:        notificationAmount(note.Payload),
		Payload:       note.Payload,
	}
	subject, htmlBody, textBody, err := n.renderer.Render(string(note.Kind), data)
	if err != nil {
		return fmt.Errorf("render %s template: %w", note.Kind, err)
	}
	if err := n.mailer.Send(ctx, user.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send %s email: %w", note.Kind, err)
	}
	n.logger.InfoContext(ctx, "notification sent", "kind", note.Kind, "recipient_id", note.RecipientID)
	return nil
}

func notificationAmount(payload any) string {
	switch p := payload.(type) {
	case domain.RefundRequestedPayload:
		return formatAmount(p.AmountCents, p.Currency)
	case domain.RefundDecidedPayload:
		return formatAmount(p.AmountCents, p.Currency)
	case domain.EventCancelledPayload:
		return formatAmount(p.TotalAmountCents, p.Currency)
	}
	return ""
}

// formatAmount renders minor units as "12.50 EUR".
func formatAmount(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, strings.ToUpper(currency))
}

// notifyAll delivers best effort: failures are logged and never returned.
func notifyAll(ctx context.Context, notifier domain.Notifier, logger *slog.Logger, notes ...domain.Notification) {
	for _, note := range notes {
		if err := notifier.Notify(ctx, note); err != nil {
			logger.WarnContext(ctx, "notification failed",
				"kind", note.Kind, "recipient_id", note.RecipientID, "err", err)
		}
	}
}

// invalidateEarnings drops cached reports so the next read reflects a change
// in the organizer's revenue. Failures only cost staleness until the TTL.
func invalidateEarnings(ctx context.Context, cache domain.EarningsCache, logger *slog.Logger, organizerID string) {
	if err := cache.Invalidate(ctx, organizerID); err != nil {
		logger.WarnContext(ctx, "earnings cache invalidation failed", "organizer_id", organizerID, "err", err)
	}
}

func refundRequestedNotification(recipientID string, rr *domain.RefundRequest, event *domain.Event) domain.Notification {
	return domain.Notification{
		Kind:        domain.NotificationRefundRequested,
		RecipientID: recipientID,
		Payload: domain.RefundRequestedPayload{
			RefundRequestID: rr.ID,
			OperationID:     rr.OperationID,
			EventID:         event.ID,
			EventName:       event.Name,
			AmountCents:     rr.AmountCents,
			Currency:        rr.Currency,
			Reason:          rr.Reason,
		},
	}
}
