package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventmarketplace/internal/domain"
)

const operationColumns = `o.id, o.event_id, o.buyer_id, o.quantity, o.amount_cents, o.currency, o.provider, o.status,
		o.provider_ref, o.settlement_mode, o.commission_rate, o.settlement_resolved_at, o.created_at, o.paid_at`

type operationRepository struct {
	DB *sql.DB
}

func NewOperationRepository(db *sql.DB) domain.OperationRepository {
	return &operationRepository{DB: db}
}

func scanOperation(row rowScanner) (*domain.Operation, error) {
	op := &domain.Operation{}
	var refNull, modeNull sql.NullString
	var rateNull sql.NullFloat64
	var resolvedNull, paidNull sql.NullTime
	err := row.Scan(
		&op.ID, &op.EventID, &op.BuyerID, &op.Quantity, &op.AmountCents, &op.Currency, &op.Provider, &op.Status,
		&refNull, &modeNull, &rateNull, &resolvedNull, &op.CreatedAt, &paidNull,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOperationNotFound
		}
		return nil, err
	}
	op.ProviderRef = stringPtr(refNull)
	op.PaidAt = timePtr(paidNull)
	if modeNull.Valid {
		op.Settlement = &domain.SettlementSnapshot{
			Mode:           domain.SettlementMode(modeNull.String),
			CommissionRate: rateNull.Float64,
			ResolvedAt:     resolvedNull.Time,
		}
	}
	return op, nil
}

func (r *operationRepository) Create(ctx context.Context, op *domain.Operation) error {
	query := `
		INSERT INTO operations (event_id, buyer_id, quantity, amount_cents, currency, provider, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return conn(ctx, r.DB).QueryRowContext(ctx, query,
		op.EventID, op.BuyerID, op.Quantity, op.AmountCents, op.Currency, op.Provider, op.Status, op.CreatedAt,
	).Scan(&op.ID)
}

func (r *operationRepository) GetByID(ctx context.Context, id string) (*domain.Operation, error) {
	query := `SELECT ` + operationColumns + `
		FROM operations o
		WHERE o.id = $1
	`
	return scanOperation(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
}

func (r *operationRepository) GetForUpdate(ctx context.Context, id string) (*domain.Operation, error) {
	query := `SELECT ` + operationColumns + `
		FROM operations o
		WHERE o.id = $1
		FOR UPDATE
	`
	return scanOperation(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
}

func (r *operationRepository) ReservedQuantity(ctx context.Context, eventID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM operations
		WHERE event_id = $1 AND status IN ('pending', 'paid')
	`
	var n int
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, eventID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *operationRepository) MarkPaid(ctx context.Context, id, providerRef string, snapshot domain.SettlementSnapshot, paidAt time.Time) error {
	query := `
		UPDATE operations
		SET status = 'paid', provider_ref = $2, settlement_mode = $3, commission_rate = $4,
			settlement_resolved_at = $5, paid_at = $6
		WHERE id = $1 AND status = 'pending'
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query,
		id, providerRef, string(snapshot.Mode), snapshot.CommissionRate, snapshot.ResolvedAt, paidAt,
	)
	if err != nil {
		// the provider reference already settles another operation
		if isUniqueViolation(err) {
			return domain.ErrPaymentAlreadyConfirmed
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *operationRepository) MarkFailed(ctx context.Context, id string) error {
	result, err := conn(ctx, r.DB).ExecContext(ctx,
		`UPDATE operations SET status = 'failed' WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *operationRepository) ListByBuyer(ctx context.Context, buyerID string, params domain.PaginationParams) ([]*domain.Operation, int, error) {
	db := conn(ctx, r.DB)
	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM operations WHERE buyer_id = $1`, buyerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + operationColumns + `
		FROM operations o
		WHERE o.buyer_id = $1
		ORDER BY o.created_at DESC, o.id
		LIMIT $2 OFFSET $3
	`
	ops, err := r.queryOperations(ctx, query, buyerID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return ops, total, nil
}

func (r *operationRepository) ListRefundableByEvent(ctx context.Context, eventID, afterID string, limit int) ([]*domain.Operation, error) {
	query := `SELECT ` + operationColumns + `
		FROM operations o
		WHERE o.event_id = $1
			AND o.status = 'paid'
			AND ($2 = '' OR o.id::text > $2)
			AND NOT EXISTS (
				SELECT 1 FROM refund_requests rr
				WHERE rr.operation_id = o.id AND rr.status IN ('pending', 'approved')
			)
		ORDER BY o.id::text
		LIMIT $3
	`
	return r.queryOperations(ctx, query, eventID, afterID, limit)
}

func (r *operationRepository) queryOperations(ctx context.Context, query string, args ...any) ([]*domain.Operation, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ops := make([]*domain.Operation, 0)
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

func (r *operationRepository) ListSettledByOrganizer(ctx context.Context, organizerID string, from, to *time.Time) ([]*domain.SettledOperation, error) {
	query := `
		SELECT o.id, o.event_id, e.name, o.quantity, o.amount_cents, o.currency,
			o.settlement_mode, o.commission_rate, o.settlement_resolved_at, o.paid_at,
			EXISTS (
				SELECT 1 FROM refund_requests rr
				WHERE rr.operation_id = o.id AND rr.status = 'approved'
			) AS refunded
		FROM operations o
		INNER JOIN events e ON e.id = o.event_id
		WHERE e.organizer_id = $1
			AND o.status = 'paid'
			AND ($2::timestamptz IS NULL OR o.paid_at >= $2)
			AND ($3::timestamptz IS NULL OR o.paid_at < $3)
		ORDER BY o.paid_at, o.id
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, organizerID, nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ops := make([]*domain.SettledOperation, 0)
	for rows.Next() {
		s := &domain.SettledOperation{}
		var mode string
		if err := rows.Scan(
			&s.OperationID, &s.EventID, &s.EventName, &s.Quantity, &s.AmountCents, &s.Currency,
			&mode, &s.Settlement.CommissionRate, &s.Settlement.ResolvedAt, &s.PaidAt, &s.Refunded,
		); err != nil {
			return nil, err
		}
		s.Settlement.Mode = domain.SettlementMode(mode)
		ops = append(ops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}
