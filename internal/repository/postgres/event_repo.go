package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventmarketplace/internal/domain"
)

const eventColumns = `id, organizer_id, name, starts_at, ends_at, capacity, price_cents, currency,
		cancelled, cancellation_started_at, cancelled_at, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var startedNull, cancelledNull sql.NullTime
	err := row.Scan(
		&e.ID, &e.OrganizerID, &e.Name, &e.StartsAt, &e.EndsAt, &e.Capacity, &e.PriceCents, &e.Currency,
		&e.Cancelled, &startedNull, &cancelledNull, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	e.CancellationStartedAt = timePtr(startedNull)
	e.CancelledAt = timePtr(cancelledNull)
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	return scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
		FOR UPDATE
	`
	return scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
}

func (r *eventRepository) MarkCancellationStarted(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE events
		SET cancellation_started_at = $2, updated_at = $2
		WHERE id = $1 AND cancellation_started_at IS NULL
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query, id, at)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) MarkCancelled(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE events
		SET cancelled = TRUE, cancelled_at = $2, updated_at = $2
		WHERE id = $1 AND NOT cancelled
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query, id, at)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEventAlreadyCancelled
	}
	return nil
}
