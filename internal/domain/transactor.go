package domain

import "context"

// Transactor runs fn inside a single unit of work. Repositories called with the
// context passed to fn take part in the same transaction; a nested WithinTx
// joins the outer one. Returning an error from fn rolls everything back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
