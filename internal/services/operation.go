package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventmarketplace/internal/domain"
)

type operationService struct {
	tx               domain.Transactor
	eventRepo        domain.EventRepository
	operationRepo    domain.OperationRepository
	refundRepo       domain.RefundRepository
	cancellationRepo domain.CancellationRepository
	resolver         domain.CommissionResolver
	notifier         domain.Notifier
	earningsCache    domain.EarningsCache
	logger           *slog.Logger
	contextTimeout   time.Duration
	now              func() time.Time
}

func NewOperationService(
	tx domain.Transactor,
	eventRepo domain.EventRepository,
	operationRepo domain.OperationRepository,
	refundRepo domain.RefundRepository,
	cancellationRepo domain.CancellationRepository,
	resolver domain.CommissionResolver,
	notifier domain.Notifier,
	earningsCache domain.EarningsCache,
	logger *slog.Logger,
	timeout time.Duration,
) domain.OperationService {
	return &operationService{
		tx:               tx,
		eventRepo:        eventRepo,
		operationRepo:    operationRepo,
		refundRepo:       refundRepo,
		cancellationRepo: cancellationRepo,
		resolver:         resolver,
		notifier:         notifier,
		earningsCache:    earningsCache,
		logger:           logger,
		contextTimeout:   timeout,
		now:              time.Now,
	}
}

func (s *operationService) CreateOperation(ctx context.Context, eventID, buyerID string, quantity int, provider domain.PaymentProvider) (*domain.Operation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	if !provider.Valid() {
		return nil, domain.ErrInvalidProvider
	}

	var op *domain.Operation
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// the event row lock serializes availability checks and cancellation
		event, err := s.eventRepo.GetForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if !event.Purchasable() {
			return domain.ErrEventAlreadyCancelled
		}
		reserved, err := s.operationRepo.ReservedQuantity(ctx, eventID)
		if err != nil {
			return fmt.Errorf("reserved quantity: %w", err)
		}
		if reserved+quantity > event.Capacity {
			return domain.ErrQuantityExceedsAvailability
		}
		op = domain.NewOperation(event, buyerID, quantity, provider, s.now().UTC())
		return s.operationRepo.Create(ctx, op)
	})
	if err != nil {
		return nil, fmt.Errorf("create operation: %w", err)
	}

	s.logger.InfoContext(ctx, "operation created",
		"operation_id", op.ID, "event_id", eventID, "quantity", quantity, "amount_cents", op.AmountCents)
	return op, nil
}

func (s *operationService) ConfirmPayment(ctx context.Context, operationID string, provider domain.PaymentProvider, providerRef string) (*domain.Operation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	providerRef = strings.TrimSpace(providerRef)
	if providerRef == "" {
		return nil, domain.ErrMissingReference
	}

	var (
		op        *domain.Operation
		event     *domain.Event
		refund    *domain.RefundRequest
		afterEnd  bool
		confirmed bool
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.operationRepo.GetByID(ctx, operationID)
		if err != nil {
			return err
		}
		// lock the event before the operation, in the same order as
		// cancellation, so a payment cannot slip past a running fan-out
		event, err = s.eventRepo.GetForUpdate(ctx, current.EventID)
		if err != nil {
			return err
		}
		current, err = s.operationRepo.GetForUpdate(ctx, operationID)
		if err != nil {
			return err
		}
		if current.Provider != provider {
			return domain.ErrProviderMismatch
		}

		switch current.Status {
		case domain.OperationPaid:
			if current.ProviderRef != nil && *current.ProviderRef == providerRef {
				op = current
				return nil
			}
			return domain.ErrPaymentAlreadyConfirmed
		case domain.OperationFailed:
			return domain.ErrInvalidTransition
		}

		snapshot := s.resolver.Resolve(ctx, event.OrganizerID, current.Provider)
		paidAt := s.now().UTC()
		if err := s.operationRepo.MarkPaid(ctx, current.ID, providerRef, snapshot, paidAt); err != nil {
			return err
		}
		current.Status = domain.OperationPaid
		current.ProviderRef = &providerRef
		current.Settlement = &snapshot
		current.PaidAt = &paidAt
		op = current
		confirmed = true

		if event.CancellationStartedAt != nil {
			refund, afterEnd, err = s.refundLatePayment(ctx, event, current)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	if !confirmed {
		s.logger.InfoContext(ctx, "duplicate payment confirmation ignored", "operation_id", operationID, "provider_ref", providerRef)
		return op, nil
	}

	s.logger.InfoContext(ctx, "payment confirmed",
		"operation_id", op.ID, "settlement_mode", op.Settlement.Mode, "commission_rate", op.Settlement.CommissionRate)
	invalidateEarnings(ctx, s.earningsCache, s.logger, event.OrganizerID)
	if refund != nil {
		notes := []domain.Notification{refundRequestedNotification(op.BuyerID, refund, event)}
		// the organizer's cancellation summary has already been sent
		if afterEnd {
			notes = append(notes, refundRequestedNotification(event.OrganizerID, refund, event))
		}
		notifyAll(ctx, s.notifier, s.logger, notes...)
	}
	return op, nil
}

// refundLatePayment opens the cancellation refund for a payment confirmed after
// its event's cancellation started and adds it to the cancellation totals. It
// also reports whether the cancellation had already completed.
func (s *operationService) refundLatePayment(ctx context.Context, event *domain.Event, op *domain.Operation) (*domain.RefundRequest, bool, error) {
	c, err := s.cancellationRepo.GetByEventID(ctx, event.ID)
	if err != nil {
		return nil, false, fmt.Errorf("get cancellation: %w", err)
	}
	rr, err := domain.NewRefundRequest(op, c.InitiatorID, cancellationReason(event, c.InitiatorID), domain.RefundSourceCancellation, s.now().UTC())
	if err != nil {
		return nil, false, err
	}
	rr.CancellationID = &c.ID
	created, err := s.refundRepo.CreateIfAbsent(ctx, rr)
	if err != nil {
		return nil, false, fmt.Errorf("create refund request: %w", err)
	}
	if !created {
		return nil, false, nil
	}
	if err := s.cancellationRepo.AddRefund(ctx, c.ID, rr.AmountCents); err != nil {
		return nil, false, fmt.Errorf("count refund on cancellation: %w", err)
	}
	s.logger.InfoContext(ctx, "refund opened for payment on cancelled event",
		"operation_id", op.ID, "event_id", event.ID, "refund_request_id", rr.ID, "cancellation_status", c.Status)
	return rr, c.Status == domain.CancellationCompleted, nil
}

func (s *operationService) MarkFailed(ctx context.Context, operationID string) (*domain.Operation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var op *domain.Operation
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.operationRepo.GetForUpdate(ctx, operationID)
		if err != nil {
			return err
		}
		switch current.Status {
		case domain.OperationFailed:
			op = current
			return nil
		case domain.OperationPaid:
			return domain.ErrInvalidTransition
		}
		if err := s.operationRepo.MarkFailed(ctx, current.ID); err != nil {
			return err
		}
		current.Status = domain.OperationFailed
		op = current
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mark operation failed: %w", err)
	}
	return op, nil
}

func (s *operationService) GetOperation(ctx context.Context, operationID string, actor domain.Actor) (*domain.Operation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	op, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return nil, fmt.Errorf("get operation: %w", err)
	}
	if op.BuyerID == actor.ID || actor.IsAdmin() || actor.IsSystem() {
		return op, nil
	}
	event, err := s.eventRepo.GetByID(ctx, op.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrForbidden
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.OwnedBy(actor.ID) {
		return nil, domain.ErrForbidden
	}
	return op, nil
}

func (s *operationService) ListMyPurchases(ctx context.Context, buyerID string, params domain.PaginationParams) ([]*domain.Operation, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ops, total, err := s.operationRepo.ListByBuyer(ctx, buyerID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list operations: %w", err)
	}
	return ops, total, nil
}
