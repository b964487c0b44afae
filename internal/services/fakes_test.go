package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"eventmarketplace/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var errFakeDB = errors.New("fake db failure")

// memStore backs the fake repositories so they see each other's writes, the
// way tables do. Reads return copies.
type memStore struct {
	mu            sync.Mutex
	seq           int
	events        map[string]*domain.Event
	operations    map[string]*domain.Operation
	refunds       map[string]*domain.RefundRequest
	cancellations map[string]*domain.EventCancellation // by event id
	profiles      map[string]*domain.OrganizerProfile
	users         map[string]*domain.User
}

func newMemStore() *memStore {
	return &memStore{
		events:        make(map[string]*domain.Event),
		operations:    make(map[string]*domain.Operation),
		refunds:       make(map[string]*domain.RefundRequest),
		cancellations: make(map[string]*domain.EventCancellation),
		profiles:      make(map[string]*domain.OrganizerProfile),
		users:         make(map[string]*domain.User),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%03d", prefix, s.seq)
}

func (s *memStore) addEvent(e *domain.Event) *domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.ID] = e
	return e
}

// addPaidOperation stores a paid operation settled under snapshot.
func (s *memStore) addPaidOperation(id, eventID, buyerID string, amount int64, snapshot domain.SettlementSnapshot, paidAt time.Time) *domain.Operation {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref := "ref-" + id
	op := &domain.Operation{
		ID: id, EventID: eventID, BuyerID: buyerID, Quantity: 1, AmountCents: amount, Currency: "eur",
		Provider: domain.ProviderStripe, Status: domain.OperationPaid, ProviderRef: &ref,
		Settlement: &snapshot, CreatedAt: paidAt, PaidAt: &paidAt,
	}
	s.operations[id] = op
	return op
}

func (s *memStore) activeRefund(operationID string) bool {
	for _, r := range s.refunds {
		if r.OperationID == operationID && (r.Status == domain.RefundPending || r.Status == domain.RefundApproved) {
			return true
		}
	}
	return false
}

func (s *memStore) refundsFor(operationID string) []*domain.RefundRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.RefundRequest
	for _, r := range s.refunds {
		if r.OperationID == operationID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out
}

// fakeTx runs fn directly; there is no rollback.
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeEventRepo struct {
	st *memStore
}

func (f *fakeEventRepo) get(id string) (*domain.Event, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	e, ok := f.st.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return f.get(id)
}

func (f *fakeEventRepo) GetForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return f.get(id)
}

func (f *fakeEventRepo) MarkCancellationStarted(ctx context.Context, id string, at time.Time) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	e, ok := f.st.events[id]
	if !ok || e.CancellationStartedAt != nil {
		return domain.ErrEventNotFound
	}
	e.CancellationStartedAt = &at
	return nil
}

func (f *fakeEventRepo) MarkCancelled(ctx context.Context, id string, at time.Time) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	e, ok := f.st.events[id]
	if !ok || e.Cancelled {
		return domain.ErrEventAlreadyCancelled
	}
	e.Cancelled = true
	e.CancelledAt = &at
	return nil
}

type fakeOperationRepo struct {
	st *memStore
	// listFailOnCall makes the n-th ListRefundableByEvent call (1-based) fail.
	listFailOnCall int
	listCalls      int
	markPaidCalls  int
}

func (f *fakeOperationRepo) Create(ctx context.Context, op *domain.Operation) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	op.ID = f.st.nextID("op")
	cp := *op
	f.st.operations[op.ID] = &cp
	return nil
}

func (f *fakeOperationRepo) get(id string) (*domain.Operation, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	op, ok := f.st.operations[id]
	if !ok {
		return nil, domain.ErrOperationNotFound
	}
	cp := *op
	return &cp, nil
}

func (f *fakeOperationRepo) GetByID(ctx context.Context, id string) (*domain.Operation, error) {
	return f.get(id)
}

func (f *fakeOperationRepo) GetForUpdate(ctx context.Context, id string) (*domain.Operation, error) {
	return f.get(id)
}

func (f *fakeOperationRepo) ReservedQuantity(ctx context.Context, eventID string) (int, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	n := 0
	for _, op := range f.st.operations {
		if op.EventID == eventID && op.Status != domain.OperationFailed {
			n += op.Quantity
		}
	}
	return n, nil
}

func (f *fakeOperationRepo) MarkPaid(ctx context.Context, id, providerRef string, snapshot domain.SettlementSnapshot, paidAt time.Time) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	f.markPaidCalls++
	op, ok := f.st.operations[id]
	if !ok || op.Status != domain.OperationPending {
		return domain.ErrInvalidTransition
	}
	op.Status = domain.OperationPaid
	op.ProviderRef = &providerRef
	op.Settlement = &snapshot
	op.PaidAt = &paidAt
	return nil
}

func (f *fakeOperationRepo) MarkFailed(ctx context.Context, id string) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	op, ok := f.st.operations[id]
	if !ok || op.Status != domain.OperationPending {
		return domain.ErrInvalidTransition
	}
	op.Status = domain.OperationFailed
	return nil
}

func (f *fakeOperationRepo) ListByBuyer(ctx context.Context, buyerID string, params domain.PaginationParams) ([]*domain.Operation, int, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var all []*domain.Operation
	for _, op := range f.st.operations {
		if op.BuyerID == buyerID {
			cp := *op
			all = append(all, &cp)
		}
	}
	slices.SortFunc(all, func(a, b *domain.Operation) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return paginate(all, params), len(all), nil
}

func (f *fakeOperationRepo) ListRefundableByEvent(ctx context.Context, eventID, afterID string, limit int) ([]*domain.Operation, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	f.listCalls++
	if f.listFailOnCall == f.listCalls {
		return nil, errFakeDB
	}
	var out []*domain.Operation
	for _, op := range f.st.operations {
		if op.EventID != eventID || op.Status != domain.OperationPaid {
			continue
		}
		if afterID != "" && op.ID <= afterID {
			continue
		}
		if f.st.activeRefund(op.ID) {
			continue
		}
		cp := *op
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *domain.Operation) int { return strings.Compare(a.ID, b.ID) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeOperationRepo) ListSettledByOrganizer(ctx context.Context, organizerID string, from, to *time.Time) ([]*domain.SettledOperation, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	period := domain.Period{From: from, To: to}
	var out []*domain.SettledOperation
	for _, op := range f.st.operations {
		e := f.st.events[op.EventID]
		if e == nil || e.OrganizerID != organizerID || op.Status != domain.OperationPaid || !period.Contains(*op.PaidAt) {
			continue
		}
		refunded := false
		for _, r := range f.st.refunds {
			if r.OperationID == op.ID && r.Status == domain.RefundApproved {
				refunded = true
			}
		}
		out = append(out, &domain.SettledOperation{
			OperationID: op.ID, EventID: op.EventID, EventName: e.Name, Quantity: op.Quantity,
			AmountCents: op.AmountCents, Currency: op.Currency, Settlement: *op.Settlement,
			PaidAt: *op.PaidAt, Refunded: refunded,
		})
	}
	slices.SortFunc(out, func(a, b *domain.SettledOperation) int { return a.PaidAt.Compare(b.PaidAt) })
	return out, nil
}

type fakeRefundRepo struct {
	st *memStore
	// failOperationID makes CreateIfAbsent fail for that operation.
	failOperationID string
}

func (f *fakeRefundRepo) Create(ctx context.Context, r *domain.RefundRequest) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	if f.st.activeRefund(r.OperationID) {
		return domain.ErrDuplicateRefundRequest
	}
	r.ID = f.st.nextID("rr")
	cp := *r
	f.st.refunds[r.ID] = &cp
	return nil
}

func (f *fakeRefundRepo) CreateIfAbsent(ctx context.Context, r *domain.RefundRequest) (bool, error) {
	if r.OperationID == f.failOperationID {
		return false, errFakeDB
	}
	err := f.Create(ctx, r)
	if errors.Is(err, domain.ErrDuplicateRefundRequest) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeRefundRepo) GetByID(ctx context.Context, id string) (*domain.RefundRequest, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	r, ok := f.st.refunds[id]
	if !ok {
		return nil, domain.ErrRefundNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRefundRepo) Decide(ctx context.Context, id string, status domain.RefundStatus, comment, processedBy string, processedAt time.Time) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	r, ok := f.st.refunds[id]
	if !ok || r.Status != domain.RefundPending {
		return domain.ErrRefundAlreadyProcessed
	}
	r.Status = status
	r.Comment = &comment
	r.ProcessedBy = &processedBy
	r.ProcessedAt = &processedAt
	return nil
}

func (f *fakeRefundRepo) ListByBuyer(ctx context.Context, buyerID string, params domain.PaginationParams) ([]*domain.RefundRequest, int, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var all []*domain.RefundRequest
	for _, r := range f.st.refunds {
		if op := f.st.operations[r.OperationID]; op != nil && op.BuyerID == buyerID {
			cp := *r
			all = append(all, &cp)
		}
	}
	slices.SortFunc(all, func(a, b *domain.RefundRequest) int { return strings.Compare(a.ID, b.ID) })
	return paginate(all, params), len(all), nil
}

func (f *fakeRefundRepo) ListPending(ctx context.Context, filter domain.PendingRefundFilter, params domain.PaginationParams) ([]*domain.RefundRequest, int, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	var all []*domain.RefundRequest
	for _, r := range f.st.refunds {
		if r.Status != domain.RefundPending {
			continue
		}
		op := f.st.operations[r.OperationID]
		e := f.st.events[op.EventID]
		if filter.OrganizerID != "" && e.OrganizerID != filter.OrganizerID {
			continue
		}
		if len(filter.Modes) > 0 && (op.Settlement == nil || !slices.Contains(filter.Modes, op.Settlement.Mode)) {
			continue
		}
		cp := *r
		all = append(all, &cp)
	}
	slices.SortFunc(all, func(a, b *domain.RefundRequest) int { return strings.Compare(a.ID, b.ID) })
	return paginate(all, params), len(all), nil
}

func (f *fakeRefundRepo) ListByCancellation(ctx context.Context, cancellationID string) ([]*domain.RefundRequest, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	out := make([]*domain.RefundRequest, 0)
	for _, r := range f.st.refunds {
		if r.CancellationID != nil && *r.CancellationID == cancellationID {
			cp := *r
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *domain.RefundRequest) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

type fakeCancellationRepo struct {
	st *memStore
	// beforeMarkCompleted runs ahead of MarkCompleted, standing in for a
	// concurrent caller.
	beforeMarkCompleted func()
}

func (f *fakeCancellationRepo) Create(ctx context.Context, c *domain.EventCancellation) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	if _, ok := f.st.cancellations[c.EventID]; ok {
		return domain.ErrConflict
	}
	c.ID = f.st.nextID("can")
	cp := *c
	f.st.cancellations[c.EventID] = &cp
	return nil
}

func (f *fakeCancellationRepo) GetByEventID(ctx context.Context, eventID string) (*domain.EventCancellation, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	c, ok := f.st.cancellations[eventID]
	if !ok {
		return nil, domain.ErrCancellationNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCancellationRepo) find(id string) *domain.EventCancellation {
	for _, c := range f.st.cancellations {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (f *fakeCancellationRepo) AdvanceCursor(ctx context.Context, id, cursor string, refunds int, amountCents int64) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	c := f.find(id)
	if c == nil || c.Status != domain.CancellationInProgress {
		return domain.ErrCancellationNotFound
	}
	c.Cursor = cursor
	c.RefundCount += refunds
	c.TotalAmountCents += amountCents
	return nil
}

func (f *fakeCancellationRepo) AddRefund(ctx context.Context, id string, amountCents int64) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	c := f.find(id)
	if c == nil {
		return domain.ErrCancellationNotFound
	}
	c.RefundCount++
	c.TotalAmountCents += amountCents
	return nil
}

func (f *fakeCancellationRepo) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	if f.beforeMarkCompleted != nil {
		f.beforeMarkCompleted()
	}
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	c := f.find(id)
	if c == nil || c.Status != domain.CancellationInProgress {
		return domain.ErrCancellationNotFound
	}
	c.Status = domain.CancellationCompleted
	c.CompletedAt = &at
	return nil
}

type fakeOrganizerRepo struct {
	st  *memStore
	err error
}

func (f *fakeOrganizerRepo) GetProfile(ctx context.Context, organizerID string) (*domain.OrganizerProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	p, ok := f.st.profiles[organizerID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeUserRepo struct {
	st *memStore
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	u, ok := f.st.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	notes []domain.Notification
	err   error
}

func (f *fakeNotifier) Notify(ctx context.Context, n domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes = append(f.notes, n)
	return f.err
}

func (f *fakeNotifier) kinds() map[domain.NotificationKind]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[domain.NotificationKind]int{}
	for _, n := range f.notes {
		out[n.Kind]++
	}
	return out
}

type fakeEarningsCache struct {
	mu          sync.Mutex
	reports     map[string]*domain.EarningsReport
	invalidated []string
	getErr      error
}

func newFakeEarningsCache() *fakeEarningsCache {
	return &fakeEarningsCache{reports: make(map[string]*domain.EarningsReport)}
}

func (f *fakeEarningsCache) GetReport(ctx context.Context, organizerID, period string) (*domain.EarningsReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	r, ok := f.reports[organizerID+"/"+period]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return r, nil
}

func (f *fakeEarningsCache) SetReport(ctx context.Context, organizerID, period string, report *domain.EarningsReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports[organizerID+"/"+period] = report
	return nil
}

func (f *fakeEarningsCache) Invalidate(ctx context.Context, organizerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, organizerID)
	for k := range f.reports {
		if strings.HasPrefix(k, organizerID+"/") {
			delete(f.reports, k)
		}
	}
	return nil
}

func paginate[T any](all []T, params domain.PaginationParams) []T {
	start := params.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := len(all)
	if params.PageSize > 0 && start+params.PageSize < end {
		end = start + params.PageSize
	}
	return all[start:end]
}

// harness wires every service over one memStore.
type harness struct {
	st            *memStore
	tx            *fakeTx
	events        *fakeEventRepo
	operations    *fakeOperationRepo
	refunds       *fakeRefundRepo
	cancellations *fakeCancellationRepo
	organizers    *fakeOrganizerRepo
	notifier      *fakeNotifier
	cache         *fakeEarningsCache
	clock         time.Time

	operationSvc    *operationService
	refundSvc       *refundService
	cancellationSvc *cancellationService
	earningsSvc     *earningsService
}

func newHarness(chunkSize int) *harness {
	st := newMemStore()
	h := &harness{
		st:            st,
		tx:            &fakeTx{},
		events:        &fakeEventRepo{st: st},
		operations:    &fakeOperationRepo{st: st},
		refunds:       &fakeRefundRepo{st: st},
		cancellations: &fakeCancellationRepo{st: st},
		organizers:    &fakeOrganizerRepo{st: st},
		notifier:      &fakeNotifier{},
		cache:         newFakeEarningsCache(),
		clock:         time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC),
	}
	logger := discardLogger()
	now := func() time.Time { return h.clock }

	resolver := NewCommissionResolver(h.organizers, domain.DefaultCommissionRate, logger).(*commissionResolver)
	resolver.now = now

	h.operationSvc = NewOperationService(h.tx, h.events, h.operations, h.refunds, h.cancellations,
		resolver, h.notifier, h.cache, logger, time.Second).(*operationService)
	h.operationSvc.now = now
	h.refundSvc = NewRefundService(h.operations, h.events, h.refunds, h.notifier, h.cache, logger, time.Second).(*refundService)
	h.refundSvc.now = now
	h.cancellationSvc = NewCancellationService(h.tx, h.events, h.operations, h.refunds, h.cancellations,
		h.notifier, h.cache, logger, CancellationConfig{ChunkSize: chunkSize, ChunkTimeout: time.Second}).(*cancellationService)
	h.cancellationSvc.now = now
	h.earningsSvc = NewEarningsService(h.operations, h.cache, logger, time.Second).(*earningsService)
	h.earningsSvc.now = now
	return h
}

func (h *harness) addEvent(id, organizerID string, capacity int, priceCents int64) *domain.Event {
	return h.st.addEvent(&domain.Event{
		ID: id, OrganizerID: organizerID, Name: "Event " + id, Capacity: capacity, PriceCents: priceCents,
		Currency: "eur", StartsAt: h.clock.Add(30 * 24 * time.Hour), EndsAt: h.clock.Add(31 * 24 * time.Hour),
		CreatedAt: h.clock, UpdatedAt: h.clock,
	})
}

var (
	admin = domain.Actor{ID: "admin-1", Roles: []string{domain.RoleAdmin}}
	buyer = domain.Actor{ID: "buyer-1", Roles: []string{domain.RoleCustomer}}
)

func organizer(id string) domain.Actor {
	return domain.Actor{ID: id, Roles: []string{domain.RoleOrganizer}}
}

func platformSnapshot(rate float64, at time.Time) domain.SettlementSnapshot {
	return domain.SettlementSnapshot{Mode: domain.SettlementPlatformCollected, CommissionRate: rate, ResolvedAt: at}
}
