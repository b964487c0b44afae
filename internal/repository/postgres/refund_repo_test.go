package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventmarketplace/internal/domain"
)

var refundRowColumns = []string{
	"id", "operation_id", "requester_id", "amount_cents", "currency", "reason", "status", "source",
	"cancellation_id", "comment", "processed_by", "processed_at", "created_at",
}

func newPendingRefund(ts time.Time) *domain.RefundRequest {
	return &domain.RefundRequest{
		OperationID: "op-1", RequesterID: "buyer-1", AmountCents: 10000, Currency: "eur",
		Reason: "cannot attend anymore", Status: domain.RefundPending, Source: domain.RefundSourceManual, CreatedAt: ts,
	}
}

func TestRefundRepository_Create(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO refund_requests \(operation_id, requester_id, amount_cents, currency, reason, status, source, cancellation_id, created_at\)`).
					WithArgs("op-1", "buyer-1", int64(10000), "eur", "cannot attend anymore", "pending", "manual", nil, ts).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("rr-1"))
			},
			wantID: "rr-1",
		},
		{
			name: "active request exists",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO refund_requests`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrDuplicateRefundRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			rr := newPendingRefund(ts)
			err = NewRefundRepository(db).Create(ctx, rr)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, rr.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRefundRepository_CreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		rows        *sqlmock.Rows
		wantCreated bool
	}{
		{name: "inserted", rows: sqlmock.NewRows([]string{"id"}).AddRow("rr-1"), wantCreated: true},
		{name: "conflict skipped", rows: sqlmock.NewRows([]string{"id"}), wantCreated: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(`INSERT INTO refund_requests .+ ON CONFLICT \(operation_id\) WHERE status IN \('pending', 'approved'\) DO NOTHING RETURNING id`).
				WithArgs("op-1", "org-1", int64(10000), "eur", "event cancelled by organizer", "pending", "cancellation", "can-1", ts).
				WillReturnRows(tt.rows)

			rr := newPendingRefund(ts)
			rr.RequesterID = "org-1"
			rr.Reason = "event cancelled by organizer"
			rr.Source = domain.RefundSourceCancellation
			rr.CancellationID = strPtr("can-1")
			created, err := NewRefundRepository(db).CreateIfAbsent(ctx, rr)
			require.NoError(t, err)
			require.Equal(t, tt.wantCreated, created)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRefundRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM refund_requests rr WHERE rr.id = \$1`).
		WithArgs("rr-1").
		WillReturnRows(sqlmock.NewRows(refundRowColumns).AddRow(
			"rr-1", "op-1", "buyer-1", int64(10000), "eur", "cannot attend anymore", "approved", "manual",
			nil, "policy", "admin-1", ts, ts,
		))

	got, err := NewRefundRepository(db).GetByID(context.Background(), "rr-1")
	require.NoError(t, err)
	require.Equal(t, domain.RefundApproved, got.Status)
	require.Equal(t, "policy", *got.Comment)
	require.Equal(t, "admin-1", *got.ProcessedBy)
	require.Nil(t, got.CancellationID)
	require.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(`FROM refund_requests`).WithArgs("rr-2").WillReturnError(sql.ErrNoRows)
	_, err = NewRefundRepository(db).GetByID(context.Background(), "rr-2")
	require.ErrorIs(t, err, domain.ErrRefundNotFound)
}

func TestRefundRepository_Decide(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rows    int64
		wantErr error
	}{
		{name: "pending request decided", rows: 1},
		{name: "lost the race", rows: 0, wantErr: domain.ErrRefundAlreadyProcessed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(`UPDATE refund_requests SET status = \$2, comment = \$3, processed_by = \$4, processed_at = \$5 WHERE id = \$1 AND status = 'pending'`).
				WithArgs("rr-1", "rejected", "not eligible", "admin-1", at).
				WillReturnResult(sqlmock.NewResult(0, tt.rows))

			err = NewRefundRepository(db).Decide(ctx, "rr-1", domain.RefundRejected, "not eligible", "admin-1", at)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, domain.ErrRefundNotPending)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRefundRepository_ListByBuyer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM refund_requests rr INNER JOIN operations o ON o.id = rr.operation_id WHERE o.buyer_id = \$1`).
		WithArgs("buyer-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`WHERE o.buyer_id = \$1 ORDER BY rr.created_at DESC, rr.id LIMIT \$2 OFFSET \$3`).
		WithArgs("buyer-1", 20, 0).
		WillReturnRows(sqlmock.NewRows(refundRowColumns).AddRow(
			"rr-1", "op-1", "org-1", int64(10000), "eur", "event cancelled by organizer", "pending", "cancellation",
			"can-1", nil, nil, nil, ts,
		))

	list, total, err := NewRefundRepository(db).ListByBuyer(context.Background(), "buyer-1", domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, list, 1)
	require.Equal(t, "can-1", *list[0].CancellationID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefundRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	modes := pq.Array([]string{"direct_to_organizer"})
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM refund_requests rr .+ WHERE rr.status = 'pending'`).
		WithArgs("org-1", modes).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`o.settlement_mode = ANY\(\$2\)\) ORDER BY rr.created_at, rr.id LIMIT \$3 OFFSET \$4`).
		WithArgs("org-1", modes, 10, 0).
		WillReturnRows(sqlmock.NewRows(refundRowColumns))

	filter := domain.PendingRefundFilter{OrganizerID: "org-1", Modes: []domain.SettlementMode{domain.SettlementDirectToOrganizer}}
	list, total, err := NewRefundRepository(db).ListPending(context.Background(), filter, domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, 0, total)
	require.Empty(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefundRepository_ListByCancellation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM refund_requests rr WHERE rr.cancellation_id = \$1 ORDER BY rr.created_at, rr.id`).
		WithArgs("can-1").
		WillReturnRows(sqlmock.NewRows(refundRowColumns).
			AddRow("rr-1", "op-1", "org-1", int64(10000), "eur", "event cancelled by organizer", "pending", "cancellation",
				"can-1", nil, nil, nil, ts).
			AddRow("rr-2", "op-2", "org-1", int64(5000), "eur", "event cancelled by organizer", "rejected", "cancellation",
				"can-1", "duplicate charge", "admin-1", ts, ts))

	list, err := NewRefundRepository(db).ListByCancellation(context.Background(), "can-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "rr-1", list[0].ID)
	require.Equal(t, domain.RefundRejected, list[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
