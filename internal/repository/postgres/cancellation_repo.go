package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventmarketplace/internal/domain"
)

type cancellationRepository struct {
	DB *sql.DB
}

func NewCancellationRepository(db *sql.DB) domain.CancellationRepository {
	return &cancellationRepository{DB: db}
}

func (r *cancellationRepository) Create(ctx context.Context, c *domain.EventCancellation) error {
	query := `
		INSERT INTO event_cancellations (event_id, initiator_id, status, last_operation_id, refund_count, total_amount_cents, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query,
		c.EventID, c.InitiatorID, c.Status, c.Cursor, c.RefundCount, c.TotalAmountCents, c.StartedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cancellation already started for event %s: %w", c.EventID, domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *cancellationRepository) GetByEventID(ctx context.Context, eventID string) (*domain.EventCancellation, error) {
	query := `
		SELECT id, event_id, initiator_id, status, last_operation_id, refund_count, total_amount_cents, started_at, completed_at
		FROM event_cancellations
		WHERE event_id = $1
	`
	c := &domain.EventCancellation{}
	var completedNull sql.NullTime
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, eventID).Scan(
		&c.ID, &c.EventID, &c.InitiatorID, &c.Status, &c.Cursor, &c.RefundCount, &c.TotalAmountCents, &c.StartedAt, &completedNull,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCancellationNotFound
		}
		return nil, err
	}
	c.CompletedAt = timePtr(completedNull)
	return c, nil
}

func (r *cancellationRepository) AdvanceCursor(ctx context.Context, id, cursor string, refunds int, amountCents int64) error {
	query := `
		UPDATE event_cancellations
		SET last_operation_id = $2, refund_count = refund_count + $3, total_amount_cents = total_amount_cents + $4
		WHERE id = $1 AND status = 'in_progress'
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query, id, cursor, refunds, amountCents)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCancellationNotFound
	}
	return nil
}

func (r *cancellationRepository) AddRefund(ctx context.Context, id string, amountCents int64) error {
	query := `
		UPDATE event_cancellations
		SET refund_count = refund_count + 1, total_amount_cents = total_amount_cents + $2
		WHERE id = $1
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query, id, amountCents)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCancellationNotFound
	}
	return nil
}

func (r *cancellationRepository) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE event_cancellations
		SET status = 'completed', completed_at = $2
		WHERE id = $1 AND status = 'in_progress'
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query, id, at)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCancellationNotFound
	}
	return nil
}
