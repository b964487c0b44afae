package domain

import "errors"

// Error classes. Every specific error below wraps exactly one of them so callers
// (and the HTTP layer) can tell validation failures, state conflicts,
// authorization failures and missing records apart with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

type classifiedError struct {
	msg   string
	class error
}

func (e *classifiedError) Error() string { return e.msg }
func (e *classifiedError) Unwrap() error { return e.class }

func newError(class error, msg string) error {
	return &classifiedError{msg: msg, class: class}
}

// Not found.
var (
	ErrEventNotFound        = newError(ErrNotFound, "event not found")
	ErrOperationNotFound    = newError(ErrNotFound, "operation not found")
	ErrRefundNotFound       = newError(ErrNotFound, "refund request not found")
	ErrCancellationNotFound = newError(ErrNotFound, "event cancellation not found")
)

// Validation.
var (
	ErrInvalidQuantity  = newError(ErrInvalidInput, "quantity must be at least 1")
	ErrInvalidProvider  = newError(ErrInvalidInput, "unsupported payment provider")
	ErrInvalidDecision  = newError(ErrInvalidInput, "decision must be approved or rejected")
	ErrInvalidPeriod    = newError(ErrInvalidInput, "invalid period")
	ErrReasonTooShort   = newError(ErrInvalidInput, "refund reason is too short")
	ErrCommentTooShort  = newError(ErrInvalidInput, "decision comment is too short")
	ErrMissingReference = newError(ErrInvalidInput, "provider reference is required")
)

// State conflicts. These mean the caller's view of the record is stale or a
// concurrent request won; they are never retried automatically.
var (
	ErrEventAlreadyCancelled       = newError(ErrConflict, "event already cancelled")
	ErrQuantityExceedsAvailability = newError(ErrConflict, "quantity exceeds availability")
	ErrOperationNotPaid            = newError(ErrConflict, "operation is not paid")
	ErrPaymentAlreadyConfirmed     = newError(ErrConflict, "operation already confirmed with another provider reference")
	ErrProviderMismatch            = newError(ErrConflict, "payment provider does not match the operation")
	ErrInvalidTransition           = newError(ErrConflict, "invalid operation status transition")
	ErrDuplicateRefundRequest      = newError(ErrConflict, "operation already has an active refund request")
	ErrRefundNotPending            = newError(ErrConflict, "refund request is not pending")
	ErrRefundAlreadyProcessed      = newError(ErrRefundNotPending, "refund request already processed")
)

// ErrAlreadyCancelled is returned by the cancellation flow for an event whose
// cancellation already completed.
var ErrAlreadyCancelled = ErrEventAlreadyCancelled

// ErrCancellationIncomplete is returned when a cancellation fan-out stopped
// part way. The event stays blocked for purchases but not cancelled, and the
// cancellation can be resumed by calling CancelEvent again.
var ErrCancellationIncomplete = errors.New("event cancellation incomplete")
