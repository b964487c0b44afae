package domain

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"time"
)

// Period is a half-open [From, To) window over operation paid-at times. A nil
// bound is open.
type Period struct {
	Label string
	From  *time.Time
	To    *time.Time
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	if p.From != nil && t.Before(*p.From) {
		return false
	}
	if p.To != nil && !t.Before(*p.To) {
		return false
	}
	return true
}

// ParsePeriod parses "all", "7d", "30d", "90d", "month", "year" or a calendar
// month "YYYY-MM", relative to now. Calendar periods are computed in UTC.
func ParsePeriod(s string, now time.Time) (Period, error) {
	label := strings.ToLower(strings.TrimSpace(s))
	now = now.UTC()
	span := func(from, to time.Time) Period {
		return Period{Label: label, From: &from, To: &to}
	}
	switch label {
	case "", "all":
		return Period{Label: "all"}, nil
	case "7d", "30d", "90d":
		days := map[string]int{"7d": 7, "30d": 30, "90d": 90}[label]
		from := now.AddDate(0, 0, -days)
		return Period{Label: label, From: &from}, nil
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return span(start, start.AddDate(0, 1, 0)), nil
	case "year":
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return span(start, start.AddDate(1, 0, 0)), nil
	}
	start, err := time.Parse("2006-01", label)
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}
	return span(start, start.AddDate(0, 1, 0)), nil
}

// SettledOperation is a paid operation as seen by the earnings aggregator: the
// amount and the settlement snapshot frozen at confirmation, and whether an
// approved refund request exists for it.
type SettledOperation struct {
	OperationID string
	EventID     string
	EventName   string
	Quantity    int
	AmountCents int64
	Currency    string
	Settlement  SettlementSnapshot
	PaidAt      time.Time
	Refunded    bool
}

// CommissionCents is the platform commission under the frozen snapshot.
func (o *SettledOperation) CommissionCents() int64 {
	return o.Settlement.CommissionCents(o.AmountCents)
}

// Totals holds the revenue figures shared by every earnings view.
type Totals struct {
	GrossSalesCents      int64 `json:"gross_sales_cents"`
	TotalCommissionCents int64 `json:"total_commission_cents"`
	NetEarningsCents     int64 `json:"net_earnings_cents"`
	TransactionCount     int   `json:"transaction_count"`
}

// add counts op as a transaction and, unless an approved refund exists for it,
// adds its amounts to the revenue figures.
func (t *Totals) add(op *SettledOperation) {
	t.TransactionCount++
	if op.Refunded {
		return
	}
	commission := op.CommissionCents()
	t.GrossSalesCents += op.AmountCents
	t.TotalCommissionCents += commission
	t.NetEarningsCents += op.AmountCents - commission
}

// ModeEarnings splits revenue by settlement mode. For platform_collected the
// net is what the platform owes the organizer; for direct_to_organizer the
// organizer already holds the gross and owes the commission.
// swagger:model ModeEarnings
type ModeEarnings struct {
	Mode SettlementMode `json:"mode"`
	Totals
}

// EarningsReport aggregates an organizer's paid operations over a period.
// Operations with an approved refund count as transactions but contribute
// nothing to gross, commission or net.
// swagger:model EarningsReport
type EarningsReport struct {
	OrganizerID string     `json:"organizer_id"`
	Period      string     `json:"period"`
	From        *time.Time `json:"from,omitempty"`
	To          *time.Time `json:"to,omitempty"`
	Totals
	RefundedCount       int            `json:"refunded_count"`
	RefundedAmountCents int64          `json:"refunded_amount_cents"`
	ByMode              []ModeEarnings `json:"by_mode"`
	GeneratedAt         time.Time      `json:"generated_at"`
}

// EventRevenue is one event's contribution to an organizer's earnings.
// swagger:model EventRevenue
type EventRevenue struct {
	EventID     string `json:"event_id"`
	EventName   string `json:"event_name"`
	TicketsSold int    `json:"tickets_sold"`
	Totals
}

// MonthlyEarnings is an organizer's earnings for one calendar month (UTC).
// swagger:model MonthlyEarnings
type MonthlyEarnings struct {
	Month string `json:"month"`
	Totals
}

// SummarizeEarnings builds the report for ops, which must already be filtered
// to the organizer and period.
func SummarizeEarnings(organizerID string, period Period, ops []*SettledOperation, now time.Time) *EarningsReport {
	report := &EarningsReport{
		OrganizerID: organizerID,
		Period:      period.Label,
		From:        period.From,
		To:          period.To,
		ByMode:      []ModeEarnings{},
		GeneratedAt: now,
	}
	byMode := map[SettlementMode]*ModeEarnings{}
	for _, op := range ops {
		report.add(op)
		if op.Refunded {
			report.RefundedCount++
			report.RefundedAmountCents += op.AmountCents
		}
		m, ok := byMode[op.Settlement.Mode]
		if !ok {
			m = &ModeEarnings{Mode: op.Settlement.Mode}
			byMode[op.Settlement.Mode] = m
		}
		m.add(op)
	}
	for _, mode := range []SettlementMode{SettlementPlatformCollected, SettlementDirectToOrganizer} {
		if m, ok := byMode[mode]; ok {
			report.ByMode = append(report.ByMode, *m)
		}
	}
	return report
}

// RankEvents groups ops by event and orders them by net revenue, highest
// first. Ties are broken by gross sales and then event id. A limit of zero or
// less returns every event.
func RankEvents(ops []*SettledOperation, limit int) []EventRevenue {
	index := map[string]int{}
	var events []EventRevenue
	for _, op := range ops {
		i, ok := index[op.EventID]
		if !ok {
			i = len(events)
			index[op.EventID] = i
			events = append(events, EventRevenue{EventID: op.EventID, EventName: op.EventName})
		}
		events[i].add(op)
		if !op.Refunded {
			events[i].TicketsSold += op.Quantity
		}
	}
	slices.SortFunc(events, func(a, b EventRevenue) int {
		if c := cmp.Compare(b.NetEarningsCents, a.NetEarningsCents); c != 0 {
			return c
		}
		if c := cmp.Compare(b.GrossSalesCents, a.GrossSalesCents); c != 0 {
			return c
		}
		return cmp.Compare(a.EventID, b.EventID)
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	if events == nil {
		events = []EventRevenue{}
	}
	return events
}

// RollupByMonth groups ops by the UTC calendar month they were paid in,
// oldest month first.
func RollupByMonth(ops []*SettledOperation) []MonthlyEarnings {
	index := map[string]int{}
	months := []MonthlyEarnings{}
	for _, op := range ops {
		key := op.PaidAt.UTC().Format("2006-01")
		i, ok := index[key]
		if !ok {
			i = len(months)
			index[key] = i
			months = append(months, MonthlyEarnings{Month: key})
		}
		months[i].add(op)
	}
	slices.SortFunc(months, func(a, b MonthlyEarnings) int {
		return strings.Compare(a.Month, b.Month)
	})
	return months
}

// ErrCacheMiss is returned by an EarningsCache that holds no report for a key.
var ErrCacheMiss = errors.New("cache miss")

// EarningsCache stores computed reports per organizer and period label.
type EarningsCache interface {
	GetReport(ctx context.Context, organizerID, period string) (*EarningsReport, error)
	SetReport(ctx context.Context, organizerID, period string, report *EarningsReport) error
	// Invalidate drops every cached report of the organizer.
	Invalidate(ctx context.Context, organizerID string) error
}

// EarningsService reads organizer earnings from frozen settlement snapshots.
type EarningsService interface {
	Earnings(ctx context.Context, organizerID, period string) (*EarningsReport, error)
	TopEvents(ctx context.Context, organizerID, period string, limit int) ([]EventRevenue, error)
	MonthlyRollup(ctx context.Context, organizerID, period string) ([]MonthlyEarnings, error)
}
