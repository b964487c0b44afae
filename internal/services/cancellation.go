package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"eventmarketplace/internal/domain"
)

const defaultCancellationChunkSize = 100

// CancellationConfig bounds the refund fan-out.
type CancellationConfig struct {
	// ChunkSize is the number of operations handled per transaction.
	ChunkSize int
	// ChunksPerSecond paces chunk transactions. Zero or less disables pacing.
	ChunksPerSecond float64
	// ChunkTimeout bounds each transaction.
	ChunkTimeout time.Duration
}

type cancellationService struct {
	tx               domain.Transactor
	eventRepo        domain.EventRepository
	operationRepo    domain.OperationRepository
	refundRepo       domain.RefundRepository
	cancellationRepo domain.CancellationRepository
	notifier         domain.Notifier
	earningsCache    domain.EarningsCache
	logger           *slog.Logger
	chunkSize        int
	chunkTimeout     time.Duration
	limiter          *rate.Limiter
	now              func() time.Time
}

func NewCancellationService(
	tx domain.Transactor,
	eventRepo domain.EventRepository,
	operationRepo domain.OperationRepository,
	refundRepo domain.RefundRepository,
	cancellationRepo domain.CancellationRepository,
	notifier domain.Notifier,
	earningsCache domain.EarningsCache,
	logger *slog.Logger,
	cfg CancellationConfig,
) domain.CancellationService {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultCancellationChunkSize
	}
	if cfg.ChunkTimeout <= 0 {
		cfg.ChunkTimeout = 30 * time.Second
	}
	limit := rate.Inf
	if cfg.ChunksPerSecond > 0 {
		limit = rate.Limit(cfg.ChunksPerSecond)
	}
	return &cancellationService{
		tx:               tx,
		eventRepo:        eventRepo,
		operationRepo:    operationRepo,
		refundRepo:       refundRepo,
		cancellationRepo: cancellationRepo,
		notifier:         notifier,
		earningsCache:    earningsCache,
		logger:           logger,
		chunkSize:        cfg.ChunkSize,
		chunkTimeout:     cfg.ChunkTimeout,
		limiter:          rate.NewLimiter(limit, 1),
		now:              time.Now,
	}
}

// cancellationReason is the system-generated reason on cancellation refunds.
func cancellationReason(event *domain.Event, initiatorID string) string {
	if event.OwnedBy(initiatorID) {
		return "event cancelled by organizer"
	}
	return "event cancelled by administrator"
}

// CancelEvent blocks the event for purchases, fans out one refund request per
// paid operation in chunked transactions, and marks the event cancelled once
// every chunk has committed. A failed chunk leaves the event blocked but not
// cancelled; calling CancelEvent again resumes after the last committed chunk.
// A completed result lists every request of the cancellation, including those
// created by earlier calls.
func (s *cancellationService) CancelEvent(ctx context.Context, eventID string, initiator domain.Actor) (*domain.CancellationResult, error) {
	event, c, err := s.begin(ctx, eventID, initiator)
	if err != nil {
		return nil, fmt.Errorf("cancel event: %w", err)
	}

	result := &domain.CancellationResult{
		EventID:        event.ID,
		CancellationID: c.ID,
		RefundRequests: []*domain.RefundRequest{},
	}
	reason := cancellationReason(event, c.InitiatorID)
	s.logger.InfoContext(ctx, "event cancellation running",
		"event_id", event.ID, "cancellation_id", c.ID, "initiator_id", initiator.ID, "cursor", c.Cursor)

	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return s.incomplete(ctx, result, c, nil, err)
		}
		batch, created, err := s.processChunk(ctx, event, c, reason)
		if err != nil {
			if s.completedConcurrently(ctx, event.ID, err) {
				return nil, fmt.Errorf("cancel event: %w", domain.ErrAlreadyCancelled)
			}
			return s.incomplete(ctx, result, c, batch, err)
		}
		result.RefundRequests = append(result.RefundRequests, created...)
		s.notifyRefunds(ctx, event, batch, created)
		if len(batch) < s.chunkSize {
			break
		}
	}

	completedAt := s.now().UTC()
	var refunds []*domain.RefundRequest
	err = s.withTimeout(ctx, func(ctx context.Context) error {
		if err := s.cancellationRepo.MarkCompleted(ctx, c.ID, completedAt); err != nil {
			return fmt.Errorf("complete cancellation: %w", err)
		}
		if err := s.eventRepo.MarkCancelled(ctx, event.ID, completedAt); err != nil {
			return err
		}
		// totals and requests include refunds opened by late payments
		final, err := s.cancellationRepo.GetByEventID(ctx, event.ID)
		if err != nil {
			return fmt.Errorf("get cancellation: %w", err)
		}
		refunds, err = s.refundRepo.ListByCancellation(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("list cancellation refunds: %w", err)
		}
		c = final
		return nil
	})
	if err != nil {
		if s.completedConcurrently(ctx, event.ID, err) {
			return nil, fmt.Errorf("cancel event: %w", domain.ErrAlreadyCancelled)
		}
		return s.incomplete(ctx, result, c, nil, err)
	}

	result.Completed = true
	result.RefundRequests = refunds
	result.ParticipantCount = c.RefundCount
	result.TotalAmountCents = c.TotalAmountCents
	s.logger.InfoContext(ctx, "event cancelled",
		"event_id", event.ID, "refund_requests", c.RefundCount, "total_amount_cents", c.TotalAmountCents)

	invalidateEarnings(ctx, s.earningsCache, s.logger, event.OrganizerID)
	ids := make([]string, 0, len(refunds))
	for _, rr := range refunds {
		ids = append(ids, rr.ID)
	}
	notifyAll(ctx, s.notifier, s.logger, domain.Notification{
		Kind:        domain.NotificationEventCancelled,
		RecipientID: event.OrganizerID,
		Payload: domain.EventCancelledPayload{
			EventID:          event.ID,
			EventName:        event.Name,
			CancellationID:   c.ID,
			RefundRequestIDs: ids,
			TotalAmountCents: c.TotalAmountCents,
			ParticipantCount: c.RefundCount,
			Currency:         event.Currency,
		},
	})
	return result, nil
}

// begin authorizes the initiator and blocks the event for new purchases,
// starting a cancellation record or resuming the one in progress.
func (s *cancellationService) begin(ctx context.Context, eventID string, initiator domain.Actor) (*domain.Event, *domain.EventCancellation, error) {
	var (
		event *domain.Event
		c     *domain.EventCancellation
	)
	err := s.withTimeout(ctx, func(ctx context.Context) error {
		e, err := s.eventRepo.GetForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if !e.OwnedBy(initiator.ID) && !initiator.IsAdmin() {
			return domain.ErrForbidden
		}
		if e.Cancelled {
			return domain.ErrAlreadyCancelled
		}
		if e.CancellationStartedAt != nil {
			c, err = s.cancellationRepo.GetByEventID(ctx, e.ID)
			if err != nil {
				return fmt.Errorf("get cancellation: %w", err)
			}
			event = e
			return nil
		}

		startedAt := s.now().UTC()
		if err := s.eventRepo.MarkCancellationStarted(ctx, e.ID, startedAt); err != nil {
			return fmt.Errorf("block event: %w", err)
		}
		e.CancellationStartedAt = &startedAt
		c = domain.NewEventCancellation(e.ID, initiator.ID, startedAt)
		if err := s.cancellationRepo.Create(ctx, c); err != nil {
			return fmt.Errorf("create cancellation: %w", err)
		}
		event = e
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return event, c, nil
}

// processChunk creates the refund requests for the next chunk after the
// cursor and advances the cursor, all in one transaction. Requests are keyed
// on the operation, so rerunning a chunk never duplicates them.
func (s *cancellationService) processChunk(ctx context.Context, event *domain.Event, c *domain.EventCancellation, reason string) ([]*domain.Operation, []*domain.RefundRequest, error) {
	var (
		batch   []*domain.Operation
		created []*domain.RefundRequest
		amount  int64
	)
	err := s.withTimeout(ctx, func(ctx context.Context) error {
		batch, created, amount = nil, nil, 0
		ops, err := s.operationRepo.ListRefundableByEvent(ctx, event.ID, c.Cursor, s.chunkSize)
		if err != nil {
			return fmt.Errorf("list refundable operations: %w", err)
		}
		batch = ops
		if len(ops) == 0 {
			return nil
		}
		now := s.now().UTC()
		for _, op := range ops {
			rr, err := domain.NewRefundRequest(op, c.InitiatorID, reason, domain.RefundSourceCancellation, now)
			if err != nil {
				return fmt.Errorf("operation %s: %w", op.ID, err)
			}
			rr.CancellationID = &c.ID
			ok, err := s.refundRepo.CreateIfAbsent(ctx, rr)
			if err != nil {
				return fmt.Errorf("create refund request for operation %s: %w", op.ID, err)
			}
			if ok {
				created = append(created, rr)
				amount += rr.AmountCents
			}
		}
		return s.cancellationRepo.AdvanceCursor(ctx, c.ID, ops[len(ops)-1].ID, len(created), amount)
	})
	if err != nil {
		return batch, nil, err
	}
	if len(batch) > 0 {
		c.Cursor = batch[len(batch)-1].ID
		c.RefundCount += len(created)
		c.TotalAmountCents += amount
	}
	return batch, created, nil
}

// incomplete reports a stopped fan-out. Totals cover every committed chunk.
func (s *cancellationService) incomplete(ctx context.Context, result *domain.CancellationResult, c *domain.EventCancellation, failed []*domain.Operation, cause error) (*domain.CancellationResult, error) {
	for _, op := range failed {
		result.FailedOperationIDs = append(result.FailedOperationIDs, op.ID)
	}
	result.ParticipantCount = c.RefundCount
	result.TotalAmountCents = c.TotalAmountCents
	s.logger.ErrorContext(ctx, "event cancellation incomplete",
		"event_id", result.EventID, "cancellation_id", c.ID, "cursor", c.Cursor,
		"failed_operations", len(result.FailedOperationIDs), "err", cause)
	return result, fmt.Errorf("%w: %w", domain.ErrCancellationIncomplete, cause)
}

// completedConcurrently reports whether err came from a cancellation row that
// another CancelEvent call completed in the meantime.
func (s *cancellationService) completedConcurrently(ctx context.Context, eventID string, err error) bool {
	if !errors.Is(err, domain.ErrCancellationNotFound) {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, s.chunkTimeout)
	defer cancel()
	c, gerr := s.cancellationRepo.GetByEventID(ctx, eventID)
	if gerr != nil || c.Status != domain.CancellationCompleted {
		return false
	}
	s.logger.InfoContext(ctx, "event cancellation completed by a concurrent call", "event_id", eventID, "cancellation_id", c.ID)
	return true
}

// notifyRefunds tells each buyer of a committed chunk about their refund request.
func (s *cancellationService) notifyRefunds(ctx context.Context, event *domain.Event, batch []*domain.Operation, created []*domain.RefundRequest) {
	if len(created) == 0 {
		return
	}
	buyers := make(map[string]string, len(batch))
	for _, op := range batch {
		buyers[op.ID] = op.BuyerID
	}
	notes := make([]domain.Notification, 0, len(created))
	for _, rr := range created {
		notes = append(notes, refundRequestedNotification(buyers[rr.OperationID], rr, event))
	}
	notifyAll(ctx, s.notifier, s.logger, notes...)
}

func (s *cancellationService) withTimeout(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.chunkTimeout)
	defer cancel()
	return s.tx.WithinTx(ctx, fn)
}

func (s *cancellationService) GetCancellation(ctx context.Context, eventID string, actor domain.Actor) (*domain.EventCancellation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.chunkTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.OwnedBy(actor.ID) && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	c, err := s.cancellationRepo.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get cancellation: %w", err)
	}
	return c, nil
}
