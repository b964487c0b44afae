package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"eventmarketplace/internal/domain"
)

type refundService struct {
	operationRepo  domain.OperationRepository
	eventRepo      domain.EventRepository
	refundRepo     domain.RefundRepository
	notifier       domain.Notifier
	earningsCache  domain.EarningsCache
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

func NewRefundService(
	operationRepo domain.OperationRepository,
	eventRepo domain.EventRepository,
	refundRepo domain.RefundRepository,
	notifier domain.Notifier,
	earningsCache domain.EarningsCache,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RefundService {
	return &refundService{
		operationRepo:  operationRepo,
		eventRepo:      eventRepo,
		refundRepo:     refundRepo,
		notifier:       notifier,
		earningsCache:  earningsCache,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// RequestRefund opens a manual refund request. Only the buyer, or a system
// actor acting for them, may ask. The one-active-request rule is enforced by
// the store, so concurrent requests for the same operation cannot both succeed.
func (s *refundService) RequestRefund(ctx context.Context, operationID string, requester domain.Actor, reason string) (*domain.RefundRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if utf8.RuneCountInString(strings.TrimSpace(reason)) < domain.MinRefundReasonLength {
		return nil, domain.ErrReasonTooShort
	}

	op, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return nil, fmt.Errorf("get operation: %w", err)
	}
	if op.BuyerID != requester.ID && !requester.IsSystem() {
		return nil, domain.ErrForbidden
	}

	rr, err := domain.NewRefundRequest(op, requester.ID, reason, domain.RefundSourceManual, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.refundRepo.Create(ctx, rr); err != nil {
		return nil, fmt.Errorf("create refund request: %w", err)
	}

	s.logger.InfoContext(ctx, "refund requested",
		"refund_request_id", rr.ID, "operation_id", op.ID, "amount_cents", rr.AmountCents)
	if event, err := s.eventRepo.GetByID(ctx, op.EventID); err != nil {
		s.logger.WarnContext(ctx, "refund requested notification skipped", "operation_id", op.ID, "err", err)
	} else {
		notifyAll(ctx, s.notifier, s.logger, refundRequestedNotification(op.BuyerID, rr, event))
	}
	return rr, nil
}

// Process records an approver's terminal decision. The transition is
// conditional on the request still being pending, so of two racing approvers
// exactly one wins and the other gets ErrRefundAlreadyProcessed.
func (s *refundService) Process(ctx context.Context, refundID string, approver domain.Actor, decision domain.RefundDecision, comment string) (*domain.RefundRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) < domain.MinDecisionCommentLength {
		return nil, domain.ErrCommentTooShort
	}
	if decision != domain.DecisionApprove && decision != domain.DecisionReject {
		return nil, domain.ErrInvalidDecision
	}

	rr, err := s.refundRepo.GetByID(ctx, refundID)
	if err != nil {
		return nil, fmt.Errorf("get refund request: %w", err)
	}
	op, err := s.operationRepo.GetByID(ctx, rr.OperationID)
	if err != nil {
		return nil, fmt.Errorf("get operation: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, op.EventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !domain.CanDecideRefund(approver, op, event) {
		return nil, domain.ErrForbidden
	}
	if rr.Status != domain.RefundPending {
		return nil, domain.ErrRefundAlreadyProcessed
	}

	processedAt := s.now().UTC()
	status := decision.Status()
	if err := s.refundRepo.Decide(ctx, rr.ID, status, comment, approver.ID, processedAt); err != nil {
		if errors.Is(err, domain.ErrRefundNotPending) {
			s.logger.InfoContext(ctx, "refund decision lost race", "refund_request_id", rr.ID, "approver_id", approver.ID)
		}
		return nil, fmt.Errorf("decide refund request: %w", err)
	}
	rr.Status = status
	rr.Comment = &comment
	rr.ProcessedBy = &approver.ID
	rr.ProcessedAt = &processedAt

	s.logger.InfoContext(ctx, "refund decided",
		"refund_request_id", rr.ID, "decision", status, "approver_id", approver.ID)
	invalidateEarnings(ctx, s.earningsCache, s.logger, event.OrganizerID)
	notifyAll(ctx, s.notifier, s.logger, domain.Notification{
		Kind:        domain.NotificationRefundDecided,
		RecipientID: op.BuyerID,
		Payload: domain.RefundDecidedPayload{
			RefundRequestID: rr.ID,
			OperationID:     rr.OperationID,
			Decision:        status,
			Comment:         comment,
			AmountCents:     rr.AmountCents,
			Currency:        rr.Currency,
		},
	})
	return rr, nil
}

func (s *refundService) GetRefund(ctx context.Context, refundID string, actor domain.Actor) (*domain.RefundRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	rr, err := s.refundRepo.GetByID(ctx, refundID)
	if err != nil {
		return nil, fmt.Errorf("get refund request: %w", err)
	}
	if actor.IsAdmin() || actor.IsSystem() || rr.RequesterID == actor.ID {
		return rr, nil
	}
	op, err := s.operationRepo.GetByID(ctx, rr.OperationID)
	if err != nil {
		return nil, fmt.Errorf("get operation: %w", err)
	}
	if op.BuyerID == actor.ID {
		return rr, nil
	}
	event, err := s.eventRepo.GetByID(ctx, op.EventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.OwnedBy(actor.ID) {
		return nil, domain.ErrForbidden
	}
	return rr, nil
}

func (s *refundService) ListMyRefunds(ctx context.Context, buyerID string, params domain.PaginationParams) ([]*domain.RefundRequest, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	list, total, err := s.refundRepo.ListByBuyer(ctx, buyerID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list refund requests: %w", err)
	}
	return list, total, nil
}

// ListPendingRefunds returns the queue the approver can act on: every pending
// request for administrators, and requests on their own directly settled
// operations for organizers.
func (s *refundService) ListPendingRefunds(ctx context.Context, approver domain.Actor, params domain.PaginationParams) ([]*domain.RefundRequest, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var filter domain.PendingRefundFilter
	switch {
	case approver.IsAdmin():
	case approver.HasRole(domain.RoleOrganizer):
		filter = domain.PendingRefundFilter{
			OrganizerID: approver.ID,
			Modes:       []domain.SettlementMode{domain.SettlementDirectToOrganizer},
		}
	default:
		return nil, 0, domain.ErrForbidden
	}

	list, total, err := s.refundRepo.ListPending(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list pending refund requests: %w", err)
	}
	return list, total, nil
}
