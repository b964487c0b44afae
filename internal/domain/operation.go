package domain

import (
	"context"
	"time"
)

// OperationStatus is the payment status of an operation.
type OperationStatus string

const (
	OperationPending OperationStatus = "pending"
	OperationPaid    OperationStatus = "paid"
	OperationFailed  OperationStatus = "failed"
)

// Operation is one customer purchase for an event. AmountCents is computed once
// at creation; Settlement is set once at payment confirmation and never changes.
// swagger:model Operation
type Operation struct {
	ID          string              `json:"id"`
	EventID     string              `json:"event_id"`
	BuyerID     string              `json:"buyer_id"`
	Quantity    int                 `json:"quantity"`
	AmountCents int64               `json:"amount_cents"`
	Currency    string              `json:"currency"`
	Provider    PaymentProvider     `json:"provider"`
	Status      OperationStatus     `json:"status"`
	ProviderRef *string             `json:"provider_ref,omitempty"`
	Settlement  *SettlementSnapshot `json:"settlement,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	PaidAt      *time.Time          `json:"paid_at,omitempty"`
}

// NewOperation prices a pending operation from the event's current price.
func NewOperation(event *Event, buyerID string, quantity int, provider PaymentProvider, createdAt time.Time) *Operation {
	return &Operation{
		EventID:     event.ID,
		BuyerID:     buyerID,
		Quantity:    quantity,
		AmountCents: event.PriceCents * int64(quantity),
		Currency:    event.Currency,
		Provider:    provider,
		Status:      OperationPending,
		CreatedAt:   createdAt,
	}
}

// OperationRepository defines storage for operations.
type OperationRepository interface {
	Create(ctx context.Context, op *Operation) error
	GetByID(ctx context.Context, id string) (*Operation, error)
	// GetForUpdate reads the operation and locks its row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id string) (*Operation, error)
	// ReservedQuantity sums the quantity of pending and paid operations for the event.
	ReservedQuantity(ctx context.Context, eventID string) (int, error)
	// MarkPaid moves a pending operation to paid and stores the settlement snapshot.
	// It returns ErrInvalidTransition if the operation is no longer pending.
	MarkPaid(ctx context.Context, id, providerRef string, snapshot SettlementSnapshot, paidAt time.Time) error
	// MarkFailed moves a pending operation to failed. It returns
	// ErrInvalidTransition if the operation is no longer pending.
	MarkFailed(ctx context.Context, id string) error
	ListByBuyer(ctx context.Context, buyerID string, params PaginationParams) ([]*Operation, int, error)
	// ListRefundableByEvent returns paid operations of the event without a
	// pending or approved refund request, ordered by id, starting after the
	// afterID cursor ("" for the first page).
	ListRefundableByEvent(ctx context.Context, eventID, afterID string, limit int) ([]*Operation, error)
	// ListSettledByOrganizer returns paid operations of the organizer's events,
	// paid within [from, to) when bounds are set.
	ListSettledByOrganizer(ctx context.Context, organizerID string, from, to *time.Time) ([]*SettledOperation, error)
}

// OperationService manages the purchase record lifecycle.
type OperationService interface {
	CreateOperation(ctx context.Context, eventID, buyerID string, quantity int, provider PaymentProvider) (*Operation, error)
	// ConfirmPayment is idempotent for a repeated providerRef. provider must be
	// the one the operation was created with.
	ConfirmPayment(ctx context.Context, operationID string, provider PaymentProvider, providerRef string) (*Operation, error)
	MarkFailed(ctx context.Context, operationID string) (*Operation, error)
	GetOperation(ctx context.Context, operationID string, actor Actor) (*Operation, error)
	ListMyPurchases(ctx context.Context, buyerID string, params PaginationParams) ([]*Operation, int, error)
}
