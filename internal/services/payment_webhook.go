package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eventmarketplace/internal/domain"
)

type paymentWebhookService struct {
	operations domain.OperationService
	parsers    map[domain.PaymentProvider]domain.PaymentWebhookParser
	logger     *slog.Logger
}

// NewPaymentWebhookService applies verified provider webhooks to operations.
// Provider retries are safe: confirmations are idempotent per reference and a
// failure report for an already failed operation is a no-op.
func NewPaymentWebhookService(operations domain.OperationService, logger *slog.Logger, parsers ...domain.PaymentWebhookParser) domain.PaymentWebhookService {
	byProvider := make(map[domain.PaymentProvider]domain.PaymentWebhookParser, len(parsers))
	for _, p := range parsers {
		byProvider[p.Provider()] = p
	}
	return &paymentWebhookService{operations: operations, parsers: byProvider, logger: logger}
}

func (s *paymentWebhookService) Handle(ctx context.Context, provider domain.PaymentProvider, signature string, body []byte) (*domain.PaymentWebhookEvent, error) {
	parser, ok := s.parsers[provider]
	if !ok {
		return nil, domain.ErrInvalidProvider
	}
	ev, err := parser.Parse(signature, body)
	if err != nil {
		s.logger.WarnContext(ctx, "webhook rejected", "provider", provider, "err", err)
		return nil, err
	}

	switch ev.Type {
	case domain.PaymentSucceeded:
		_, err = s.operations.ConfirmPayment(ctx, ev.OperationID, provider, ev.ProviderRef)
	case domain.PaymentFailed:
		_, err = s.operations.MarkFailed(ctx, ev.OperationID)
		if errors.Is(err, domain.ErrInvalidTransition) {
			// a failure report arriving after the payment succeeded
			s.logger.InfoContext(ctx, "late payment failure ignored",
				"provider", provider, "delivery_id", ev.DeliveryID, "operation_id", ev.OperationID)
			err = nil
		}
	default:
		s.logger.DebugContext(ctx, "webhook event ignored", "provider", provider, "delivery_id", ev.DeliveryID)
		return ev, nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "webhook event apply failed",
			"provider", provider, "delivery_id", ev.DeliveryID, "type", ev.Type, "operation_id", ev.OperationID, "err", err)
		return ev, fmt.Errorf("apply %s webhook: %w", provider, err)
	}

	s.logger.InfoContext(ctx, "webhook event processed",
		"provider", provider, "delivery_id", ev.DeliveryID, "type", ev.Type, "operation_id", ev.OperationID)
	return ev, nil
}
