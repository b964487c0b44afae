package helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmarketplace/internal/domain"
)

func TestWriteServiceError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"validation", fmt.Errorf("create operation: %w", domain.ErrInvalidQuantity), http.StatusBadRequest, ErrCodeBadRequest, "quantity must be at least 1"},
		{"not found", fmt.Errorf("get refund request: %w", domain.ErrRefundNotFound), http.StatusNotFound, ErrCodeNotFound, "refund request not found"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, ErrCodeForbidden, "forbidden"},
		{"conflict keeps the specific message", fmt.Errorf("decide: %w", domain.ErrRefundAlreadyProcessed), http.StatusConflict, ErrCodeConflict, "refund request already processed"},
		{"provider mismatch", fmt.Errorf("apply paypal webhook: %w", domain.ErrProviderMismatch), http.StatusConflict, ErrCodeConflict, "payment provider does not match the operation"},
		{"incomplete cancellation", fmt.Errorf("%w: %w", domain.ErrCancellationIncomplete, io.ErrUnexpectedEOF), http.StatusServiceUnavailable, ErrCodeCancellationIncomplete, "event cancellation incomplete"},
		{"unclassified errors are hidden", fmt.Errorf("select: %w", io.ErrUnexpectedEOF), http.StatusInternalServerError, ErrCodeInternalError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteServiceError(rec, httptest.NewRequest(http.MethodGet, "/", nil), logger, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body APIResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantMessage, body.Error.Message)
			assert.Nil(t, body.Data)
		})
	}
}

type sampleRequest struct {
	Reason   string `json:"reason" validate:"required,min=3"`
	Quantity int    `json:"quantity" validate:"min=1,max=10"`
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantOK  bool
		wantMsg string
	}{
		{name: "valid", body: `{"reason":"abc","quantity":2}`, wantOK: true},
		{name: "unknown field", body: `{"reason":"abc","quantity":2,"extra":1}`, wantMsg: "invalid JSON body"},
		{name: "malformed", body: `{`, wantMsg: "invalid JSON body"},
		{name: "missing reason", body: `{"quantity":2}`, wantMsg: "reason is required"},
		{name: "quantity too large", body: `{"reason":"abc","quantity":11}`, wantMsg: "quantity must be at most 10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dest sampleRequest

			ok := DecodeAndValidate(rec, req, &dest)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				return
			}
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
		})
	}
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&page_size=500", nil)
	p := ParsePagination(req)
	assert.Equal(t, domain.PaginationParams{Page: 3, PageSize: MaxPageSize}, p)

	req = httptest.NewRequest(http.MethodGet, "/?page=-1&page_size=x", nil)
	assert.Equal(t, domain.PaginationParams{Page: DefaultPage, PageSize: DefaultPageSize}, ParsePagination(req))

	data := NewPaginatedData[string](nil, domain.PaginationParams{Page: 1, PageSize: 20}, 41)
	assert.Empty(t, data.Items)
	assert.NotNil(t, data.Items)
	assert.Equal(t, 3, data.Pagination.TotalPages)
}
