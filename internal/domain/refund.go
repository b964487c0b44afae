package domain

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// RefundStatus is the state of a refund request. Approved and rejected are terminal.
type RefundStatus string

const (
	RefundPending  RefundStatus = "pending"
	RefundApproved RefundStatus = "approved"
	RefundRejected RefundStatus = "rejected"
)

// Terminal reports whether no further transition is allowed from s.
func (s RefundStatus) Terminal() bool {
	return s == RefundApproved || s == RefundRejected
}

// RefundDecision is an approver's verdict on a pending refund request.
type RefundDecision string

const (
	DecisionApprove RefundDecision = "approved"
	DecisionReject  RefundDecision = "rejected"
)

// ParseRefundDecision accepts "approved"/"approve" and "rejected"/"reject"/"refused".
func ParseRefundDecision(s string) (RefundDecision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved", "approve":
		return DecisionApprove, nil
	case "rejected", "reject", "refused", "refuse":
		return DecisionReject, nil
	}
	return "", ErrInvalidDecision
}

// Status returns the terminal status the decision leads to.
func (d RefundDecision) Status() RefundStatus {
	if d == DecisionApprove {
		return RefundApproved
	}
	return RefundRejected
}

// RefundSource says how a refund request was created.
type RefundSource string

const (
	RefundSourceManual       RefundSource = "manual"
	RefundSourceCancellation RefundSource = "cancellation"
)

// Policy minimums, counted in characters after trimming.
const (
	MinRefundReasonLength    = 10
	MinDecisionCommentLength = 5
)

// RefundRequest is a tracked claim against a paid operation. Rows are never deleted.
// swagger:model RefundRequest
type RefundRequest struct {
	ID             string       `json:"id"`
	OperationID    string       `json:"operation_id"`
	RequesterID    string       `json:"requester_id"`
	AmountCents    int64        `json:"amount_cents"`
	Currency       string       `json:"currency"`
	Reason         string       `json:"reason"`
	Status         RefundStatus `json:"status"`
	Source         RefundSource `json:"source"`
	CancellationID *string      `json:"cancellation_id,omitempty"`
	Comment        *string      `json:"comment,omitempty"`
	ProcessedBy    *string      `json:"processed_by,omitempty"`
	ProcessedAt    *time.Time   `json:"processed_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// NewRefundRequest builds a pending refund request for op. The amount is copied
// from the operation as is. It enforces the preconditions shared by manual and
// cancellation-initiated requests: a sufficiently long reason and a paid operation.
func NewRefundRequest(op *Operation, requesterID, reason string, source RefundSource, createdAt time.Time) (*RefundRequest, error) {
	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) < MinRefundReasonLength {
		return nil, ErrReasonTooShort
	}
	if op.Status != OperationPaid {
		return nil, ErrOperationNotPaid
	}
	return &RefundRequest{
		OperationID: op.ID,
		RequesterID: requesterID,
		AmountCents: op.AmountCents,
		Currency:    op.Currency,
		Reason:      reason,
		Status:      RefundPending,
		Source:      source,
		CreatedAt:   createdAt,
	}, nil
}

// CanDecideRefund reports whether approver may approve or reject refunds on op
// (an operation of event). Administrators may decide any refund; the event's
// organizer may decide refunds only for operations settled directly to them.
func CanDecideRefund(approver Actor, op *Operation, event *Event) bool {
	if approver.IsAdmin() {
		return true
	}
	if op.Settlement == nil || op.Settlement.Mode != SettlementDirectToOrganizer {
		return false
	}
	return event.OwnedBy(approver.ID)
}

// PendingRefundFilter narrows the pending refund queue. An empty OrganizerID
// lists every pending request.
type PendingRefundFilter struct {
	OrganizerID string
	// Modes keeps requests on operations settled with one of the modes. Empty
	// means any mode.
	Modes []SettlementMode
}

// RefundRepository defines storage for refund requests. The store guarantees at
// most one pending or approved request per operation.
type RefundRepository interface {
	// Create inserts r and returns ErrDuplicateRefundRequest when the operation
	// already has a pending or approved request.
	Create(ctx context.Context, r *RefundRequest) error
	// CreateIfAbsent inserts r unless the operation already has a pending or
	// approved request, in which case it returns false and no error.
	CreateIfAbsent(ctx context.Context, r *RefundRequest) (bool, error)
	GetByID(ctx context.Context, id string) (*RefundRequest, error)
	// Decide moves a pending request to status. It returns
	// ErrRefundAlreadyProcessed if the request is no longer pending at commit time.
	Decide(ctx context.Context, id string, status RefundStatus, comment, processedBy string, processedAt time.Time) error
	// ListByBuyer lists requests on the buyer's operations, including those
	// opened by a cancellation on their behalf.
	ListByBuyer(ctx context.Context, buyerID string, params PaginationParams) ([]*RefundRequest, int, error)
	ListPending(ctx context.Context, filter PendingRefundFilter, params PaginationParams) ([]*RefundRequest, int, error)
	// ListByCancellation lists every request opened by the cancellation, in
	// creation order.
	ListByCancellation(ctx context.Context, cancellationID string) ([]*RefundRequest, error)
}

// RefundService is the refund request state machine.
type RefundService interface {
	RequestRefund(ctx context.Context, operationID string, requester Actor, reason string) (*RefundRequest, error)
	Process(ctx context.Context, refundID string, approver Actor, decision RefundDecision, comment string) (*RefundRequest, error)
	GetRefund(ctx context.Context, refundID string, actor Actor) (*RefundRequest, error)
	ListMyRefunds(ctx context.Context, buyerID string, params PaginationParams) ([]*RefundRequest, int, error)
	ListPendingRefunds(ctx context.Context, approver Actor, params PaginationParams) ([]*RefundRequest, int, error)
}
