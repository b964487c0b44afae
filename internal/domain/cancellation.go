package domain

import (
	"context"
	"time"
)

// CancellationStatus tracks the progress of an event cancellation fan-out.
type CancellationStatus string

const (
	CancellationInProgress CancellationStatus = "in_progress"
	CancellationCompleted  CancellationStatus = "completed"
)

// EventCancellation is the resumable record of one event's refund fan-out.
// Cursor is the id of the last operation handled by a committed chunk.
// swagger:model EventCancellation
type EventCancellation struct {
	ID               string             `json:"id"`
	EventID          string             `json:"event_id"`
	InitiatorID      string             `json:"initiator_id"`
	Status           CancellationStatus `json:"status"`
	Cursor           string             `json:"cursor"`
	RefundCount      int                `json:"refund_count"`
	TotalAmountCents int64              `json:"total_amount_cents"`
	StartedAt        time.Time          `json:"started_at"`
	CompletedAt      *time.Time         `json:"completed_at,omitempty"`
}

// NewEventCancellation starts a cancellation record for eventID.
func NewEventCancellation(eventID, initiatorID string, startedAt time.Time) *EventCancellation {
	return &EventCancellation{
		EventID:     eventID,
		InitiatorID: initiatorID,
		Status:      CancellationInProgress,
		StartedAt:   startedAt,
	}
}

// CancellationResult reports the outcome of a CancelEvent call.
// swagger:model CancellationResult
type CancellationResult struct {
	EventID        string `json:"event_id"`
	CancellationID string `json:"cancellation_id"`
	// RefundRequests lists every request of a completed cancellation. When the
	// call stopped early it lists only the requests this call created.
	RefundRequests []*RefundRequest `json:"refund_requests"`
	// TotalAmountCents and ParticipantCount cover the whole cancellation,
	// including chunks committed by earlier, interrupted calls.
	TotalAmountCents int64 `json:"total_amount_cents"`
	ParticipantCount int   `json:"participant_count"`
	Completed        bool  `json:"completed"`
	// FailedOperationIDs lists operations of the chunk that failed, if any.
	FailedOperationIDs []string `json:"failed_operation_ids,omitempty"`
}

// CancellationRepository stores cancellation progress.
type CancellationRepository interface {
	Create(ctx context.Context, c *EventCancellation) error
	GetByEventID(ctx context.Context, eventID string) (*EventCancellation, error)
	// AdvanceCursor records a committed chunk: moves the cursor and adds to the totals.
	AdvanceCursor(ctx context.Context, id, cursor string, refunds int, amountCents int64) error
	// AddRefund adds one refund opened outside the fan-out to the totals. The
	// cursor is left alone and the cancellation may already be completed.
	AddRefund(ctx context.Context, id string, amountCents int64) error
	MarkCompleted(ctx context.Context, id string, at time.Time) error
}

// CancellationService orchestrates event cancellation and its refund fan-out.
type CancellationService interface {
	CancelEvent(ctx context.Context, eventID string, initiator Actor) (*CancellationResult, error)
	GetCancellation(ctx context.Context, eventID string, actor Actor) (*EventCancellation, error)
}
