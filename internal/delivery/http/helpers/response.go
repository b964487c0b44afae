package helpers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"eventmarketplace/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest             = "bad_request"
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeForbidden              = "forbidden"
	ErrCodeNotFound               = "not_found"
	ErrCodeConflict               = "conflict"
	ErrCodeTooManyRequests        = "too_many_requests"
	ErrCodeCancellationIncomplete = "cancellation_incomplete"
	ErrCodeInternalError          = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Error is set and Data is
// nil, except for an incomplete cancellation, which carries the partial result.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, APIResponse{Data: data})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, APIResponse{Error: &APIError{Code: code, Message: message}})
}

// WriteJSONErrorWithData is WriteJSONError with a data payload.
func WriteJSONErrorWithData(w http.ResponseWriter, statusCode int, code, message string, data any) {
	writeJSON(w, statusCode, APIResponse{Data: data, Error: &APIError{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// StatusForError maps a domain error class to an HTTP status and error code.
func StatusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrCancellationIncomplete):
		return http.StatusServiceUnavailable, ErrCodeCancellationIncomplete
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrCodeForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrCodeConflict
	}
	return http.StatusInternalServerError, ErrCodeInternalError
}

// WriteServiceError writes the response for an error returned by a service.
// Classified errors expose their message; anything else is logged and hidden.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := StatusForError(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, status, code, "internal error")
		return
	}
	WriteJSONError(w, status, code, publicMessage(err))
}

// publicMessage returns the message of the most specific domain error in
// err's chain, without the wrapping context added on the way up.
func publicMessage(err error) string {
	for _, d := range domainErrors {
		if errors.Is(err, d) {
			return d.Error()
		}
	}
	return err.Error()
}

// domainErrors is ordered from specific to general.
var domainErrors = []error{
	domain.ErrEventNotFound, domain.ErrOperationNotFound, domain.ErrRefundNotFound, domain.ErrCancellationNotFound,
	domain.ErrInvalidQuantity, domain.ErrInvalidProvider, domain.ErrInvalidDecision, domain.ErrInvalidPeriod,
	domain.ErrReasonTooShort, domain.ErrCommentTooShort, domain.ErrMissingReference,
	domain.ErrEventAlreadyCancelled, domain.ErrQuantityExceedsAvailability, domain.ErrOperationNotPaid,
	domain.ErrPaymentAlreadyConfirmed, domain.ErrProviderMismatch, domain.ErrInvalidTransition, domain.ErrDuplicateRefundRequest,
	domain.ErrRefundAlreadyProcessed, domain.ErrRefundNotPending, domain.ErrInvalidSignature,
	domain.ErrCancellationIncomplete,
	domain.ErrNotFound, domain.ErrForbidden, domain.ErrInvalidInput, domain.ErrConflict,
}
