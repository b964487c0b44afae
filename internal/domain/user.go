package domain

import (
	"context"
	"slices"
	"time"
)

// Roles carried by an authenticated actor.
const (
	RoleAdmin     = "admin"
	RoleOrganizer = "organizer"
	RoleCustomer  = "customer"
	// RoleSystem marks internal callers such as the cancellation flow or
	// payment webhooks.
	RoleSystem = "system"
)

// User is the subset of a registered user this service reads (for notification addresses).
// swagger:model User
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
}

// DisplayName returns "Name LastName", falling back to the e-mail address.
func (u *User) DisplayName() string {
	name := u.Name
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID    string   `json:"id"`
	Roles []string `json:"roles"`
}

// HasRole reports whether the actor carries role.
func (a Actor) HasRole(role string) bool {
	return slices.Contains(a.Roles, role)
}

func (a Actor) IsAdmin() bool  { return a.HasRole(RoleAdmin) }
func (a Actor) IsSystem() bool { return a.HasRole(RoleSystem) }

// SystemActor returns an actor for internal callers.
func SystemActor(id string) Actor {
	return Actor{ID: id, Roles: []string{RoleSystem}}
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated actor.
type TokenIssuer interface {
	Issue(actor Actor, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated actor.
type TokenVerifier interface {
	Verify(token string) (*Actor, error)
}

// UserRepository defines the interface for user lookups.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}
