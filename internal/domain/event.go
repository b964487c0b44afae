package domain

import (
	"context"
	"time"
)

// Event is a paid event published by an organizer. Events are never deleted;
// cancellation is terminal and keeps the row for historical views.
// swagger:model Event
type Event struct {
	ID                    string     `json:"id"`
	OrganizerID           string     `json:"organizer_id"`
	Name                  string     `json:"name"`
	StartsAt              time.Time  `json:"starts_at"`
	EndsAt                time.Time  `json:"ends_at"`
	Capacity              int        `json:"capacity"`
	PriceCents            int64      `json:"price_cents"`
	Currency              string     `json:"currency"`
	Cancelled             bool       `json:"cancelled"`
	CancellationStartedAt *time.Time `json:"cancellation_started_at,omitempty"`
	CancelledAt           *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// Purchasable reports whether new operations may be created against the event.
// An event stops being purchasable as soon as its cancellation starts, before
// any refund request is fanned out.
func (e *Event) Purchasable() bool {
	return !e.Cancelled && e.CancellationStartedAt == nil
}

// OwnedBy reports whether userID is the event's organizer.
func (e *Event) OwnedBy(userID string) bool {
	return userID != "" && e.OrganizerID == userID
}

// EventRepository defines the interface for event storage. Event CRUD belongs
// to another service; this core only reads events and flips cancellation state.
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetForUpdate reads the event and locks its row until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id string) (*Event, error)
	MarkCancellationStarted(ctx context.Context, id string, at time.Time) error
	MarkCancelled(ctx context.Context, id string, at time.Time) error
}
