package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"eventmarketplace/internal/domain"
)

const refundColumns = `rr.id, rr.operation_id, rr.requester_id, rr.amount_cents, rr.currency, rr.reason, rr.status, rr.source,
		rr.cancellation_id, rr.comment, rr.processed_by, rr.processed_at, rr.created_at`

type refundRepository struct {
	DB *sql.DB
}

func NewRefundRepository(db *sql.DB) domain.RefundRepository {
	return &refundRepository{DB: db}
}

func scanRefund(row rowScanner) (*domain.RefundRequest, error) {
	r := &domain.RefundRequest{}
	var cancellationNull, commentNull, processedByNull sql.NullString
	var processedAtNull sql.NullTime
	err := row.Scan(
		&r.ID, &r.OperationID, &r.RequesterID, &r.AmountCents, &r.Currency, &r.Reason, &r.Status, &r.Source,
		&cancellationNull, &commentNull, &processedByNull, &processedAtNull, &r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRefundNotFound
		}
		return nil, err
	}
	r.CancellationID = stringPtr(cancellationNull)
	r.Comment = stringPtr(commentNull)
	r.ProcessedBy = stringPtr(processedByNull)
	r.ProcessedAt = timePtr(processedAtNull)
	return r, nil
}

func (r *refundRepository) Create(ctx context.Context, rr *domain.RefundRequest) error {
	query := `
		INSERT INTO refund_requests (operation_id, requester_id, amount_cents, currency, reason, status, source, cancellation_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query,
		rr.OperationID, rr.RequesterID, rr.AmountCents, rr.Currency, rr.Reason, rr.Status, rr.Source,
		rr.CancellationID, rr.CreatedAt,
	).Scan(&rr.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRefundRequest
		}
		return err
	}
	return nil
}

func (r *refundRepository) CreateIfAbsent(ctx context.Context, rr *domain.RefundRequest) (bool, error) {
	query := `
		INSERT INTO refund_requests (operation_id, requester_id, amount_cents, currency, reason, status, source, cancellation_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (operation_id) WHERE status IN ('pending', 'approved') DO NOTHING
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query,
		rr.OperationID, rr.RequesterID, rr.AmountCents, rr.Currency, rr.Reason, rr.Status, rr.Source,
		rr.CancellationID, rr.CreatedAt,
	).Scan(&rr.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *refundRepository) GetByID(ctx context.Context, id string) (*domain.RefundRequest, error) {
	query := `SELECT ` + refundColumns + `
		FROM refund_requests rr
		WHERE rr.id = $1
	`
	return scanRefund(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
}

func (r *refundRepository) Decide(ctx context.Context, id string, status domain.RefundStatus, comment, processedBy string, processedAt time.Time) error {
	query := `
		UPDATE refund_requests
		SET status = $2, comment = $3, processed_by = $4, processed_at = $5
		WHERE id = $1 AND status = 'pending'
	`
	result, err := conn(ctx, r.DB).ExecContext(ctx, query, id, status, comment, processedBy, processedAt)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRefundAlreadyProcessed
	}
	return nil
}

func (r *refundRepository) ListByBuyer(ctx context.Context, buyerID string, params domain.PaginationParams) ([]*domain.RefundRequest, int, error) {
	db := conn(ctx, r.DB)
	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM refund_requests rr
		INNER JOIN operations o ON o.id = rr.operation_id
		WHERE o.buyer_id = $1
	`
	if err := db.QueryRowContext(ctx, countQuery, buyerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + refundColumns + `
		FROM refund_requests rr
		INNER JOIN operations o ON o.id = rr.operation_id
		WHERE o.buyer_id = $1
		ORDER BY rr.created_at DESC, rr.id
		LIMIT $2 OFFSET $3
	`
	list, err := r.queryRefunds(ctx, query, buyerID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *refundRepository) ListPending(ctx context.Context, filter domain.PendingRefundFilter, params domain.PaginationParams) ([]*domain.RefundRequest, int, error) {
	modes := make([]string, 0, len(filter.Modes))
	for _, m := range filter.Modes {
		modes = append(modes, string(m))
	}
	where := `
		FROM refund_requests rr
		INNER JOIN operations o ON o.id = rr.operation_id
		INNER JOIN events e ON e.id = o.event_id
		WHERE rr.status = 'pending'
			AND ($1 = '' OR e.organizer_id::text = $1)
			AND (cardinality($2::text[]) = 0 OR o.settlement_mode = ANY($2))
	`
	db := conn(ctx, r.DB)
	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*)`+where, filter.OrganizerID, pq.Array(modes)).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + refundColumns + where + `
		ORDER BY rr.created_at, rr.id
		LIMIT $3 OFFSET $4
	`
	list, err := r.queryRefunds(ctx, query, filter.OrganizerID, pq.Array(modes), params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *refundRepository) ListByCancellation(ctx context.Context, cancellationID string) ([]*domain.RefundRequest, error) {
	query := `SELECT ` + refundColumns + `
		FROM refund_requests rr
		WHERE rr.cancellation_id = $1
		ORDER BY rr.created_at, rr.id
	`
	return r.queryRefunds(ctx, query, cancellationID)
}

func (r *refundRepository) queryRefunds(ctx context.Context, query string, args ...any) ([]*domain.RefundRequest, error) {
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]*domain.RefundRequest, 0)
	for rows.Next() {
		rr, err := scanRefund(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
