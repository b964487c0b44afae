package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"eventmarketplace/internal/delivery/http/middleware"
	"eventmarketplace/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	eventID     = "0b7f2a52-4b8e-4d7e-9d2a-1f6f7f8c0a01"
	operationID = "7c1d5e0f-3a9b-4c2d-8e6f-0a1b2c3d4e5f"
	refundID    = "e3f9c1a2-6b7d-4e8f-9a0b-1c2d3e4f5a6b"
)

var (
	buyer     = domain.Actor{ID: "buyer-1", Roles: []string{domain.RoleCustomer}}
	organizer = domain.Actor{ID: "org-1", Roles: []string{domain.RoleOrganizer}}
	admin     = domain.Actor{ID: "admin-1", Roles: []string{domain.RoleAdmin}}
)

// newRequest builds a request with path values set and, when actor is
// non-nil, an authenticated context.
func newRequest(method, target, body string, actor *domain.Actor, pathValues map[string]string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	if actor != nil {
		req = req.WithContext(middleware.SetActor(req.Context(), *actor))
	}
	return req
}

// envelope mirrors helpers.APIResponse with a typed data payload.
type envelope[T any] struct {
	Data  T `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}

type fakeOperationService struct {
	createFn func(ctx context.Context, eventID, buyerID string, quantity int, provider domain.PaymentProvider) (*domain.Operation, error)
	getFn    func(ctx context.Context, operationID string, actor domain.Actor) (*domain.Operation, error)
	listFn   func(ctx context.Context, buyerID string, params domain.PaginationParams) ([]*domain.Operation, int, error)
}

func (f *fakeOperationService) CreateOperation(ctx context.Context, eventID, buyerID string, quantity int, provider domain.PaymentProvider) (*domain.Operation, error) {
	return f.createFn(ctx, eventID, buyerID, quantity, provider)
}

func (f *fakeOperationService) ConfirmPayment(context.Context, string, domain.PaymentProvider, string) (*domain.Operation, error) {
	panic("not used by controllers")
}

func (f *fakeOperationService) MarkFailed(context.Context, string) (*domain.Operation, error) {
	panic("not used by controllers")
}

func (f *fakeOperationService) GetOperation(ctx context.Context, operationID string, actor domain.Actor) (*domain.Operation, error) {
	return f.getFn(ctx, operationID, actor)
}

func (f *fakeOperationService) ListMyPurchases(ctx context.Context, buyerID string, params domain.PaginationParams) ([]*domain.Operation, int, error) {
	return f.listFn(ctx, buyerID, params)
}

type fakeRefundService struct {
	requestFn     func(ctx context.Context, operationID string, requester domain.Actor, reason string) (*domain.RefundRequest, error)
	processFn     func(ctx context.Context, refundID string, approver domain.Actor, decision domain.RefundDecision, comment string) (*domain.RefundRequest, error)
	getFn         func(ctx context.Context, refundID string, actor domain.Actor) (*domain.RefundRequest, error)
	listMineFn    func(ctx context.Context, buyerID string, params domain.PaginationParams) ([]*domain.RefundRequest, int, error)
	listPendingFn func(ctx context.Context, approver domain.Actor, params domain.PaginationParams) ([]*domain.RefundRequest, int, error)
}

func (f *fakeRefundService) RequestRefund(ctx context.Context, operationID string, requester domain.Actor, reason string) (*domain.RefundRequest, error) {
	return f.requestFn(ctx, operationID, requester, reason)
}

func (f *fakeRefundService) Process(ctx context.Context, refundID string, approver domain.Actor, decision domain.RefundDecision, comment string) (*domain.RefundRequest, error) {
	return f.processFn(ctx, refundID, approver, decision, comment)
}

func (f *fakeRefundService) GetRefund(ctx context.Context, refundID string, actor domain.Actor) (*domain.RefundRequest, error) {
	return f.getFn(ctx, refundID, actor)
}

func (f *fakeRefundService) ListMyRefunds(ctx context.Context, buyerID string, params domain.PaginationParams) ([]*domain.RefundRequest, int, error) {
	return f.listMineFn(ctx, buyerID, params)
}

func (f *fakeRefundService) ListPendingRefunds(ctx context.Context, approver domain.Actor, params domain.PaginationParams) ([]*domain.RefundRequest, int, error) {
	return f.listPendingFn(ctx, approver, params)
}

type fakeCancellationService struct {
	cancelFn func(ctx context.Context, eventID string, initiator domain.Actor) (*domain.CancellationResult, error)
	getFn    func(ctx context.Context, eventID string, actor domain.Actor) (*domain.EventCancellation, error)
}

func (f *fakeCancellationService) CancelEvent(ctx context.Context, eventID string, initiator domain.Actor) (*domain.CancellationResult, error) {
	return f.cancelFn(ctx, eventID, initiator)
}

func (f *fakeCancellationService) GetCancellation(ctx context.Context, eventID string, actor domain.Actor) (*domain.EventCancellation, error) {
	return f.getFn(ctx, eventID, actor)
}

type fakeEarningsService struct {
	lastOrganizer string
	lastPeriod    string
	lastLimit     int
	report        *domain.EarningsReport
	top           []domain.EventRevenue
	monthly       []domain.MonthlyEarnings
	err           error
}

func (f *fakeEarningsService) Earnings(_ context.Context, organizerID, period string) (*domain.EarningsReport, error) {
	f.lastOrganizer, f.lastPeriod = organizerID, period
	return f.report, f.err
}

func (f *fakeEarningsService) TopEvents(_ context.Context, organizerID, period string, limit int) ([]domain.EventRevenue, error) {
	f.lastOrganizer, f.lastPeriod, f.lastLimit = organizerID, period, limit
	return f.top, f.err
}

func (f *fakeEarningsService) MonthlyRollup(_ context.Context, organizerID, period string) ([]domain.MonthlyEarnings, error) {
	f.lastOrganizer, f.lastPeriod = organizerID, period
	return f.monthly, f.err
}

type fakeWebhookService struct {
	lastProvider  domain.PaymentProvider
	lastSignature string
	lastBody      string
	event         *domain.PaymentWebhookEvent
	err           error
}

func (f *fakeWebhookService) Handle(_ context.Context, provider domain.PaymentProvider, signature string, body []byte) (*domain.PaymentWebhookEvent, error) {
	f.lastProvider, f.lastSignature, f.lastBody = provider, signature, string(body)
	return f.event, f.err
}
