package domain

import (
	"context"
	"math"
	"time"
)

// PaymentProvider identifies the external provider a buyer pays with.
type PaymentProvider string

const (
	ProviderStripe PaymentProvider = "stripe"
	ProviderPayPal PaymentProvider = "paypal"
)

// Valid reports whether p is a supported provider.
func (p PaymentProvider) Valid() bool {
	return p == ProviderStripe || p == ProviderPayPal
}

// SettlementMode says who receives the buyer's funds for an operation.
type SettlementMode string

const (
	SettlementPlatformCollected SettlementMode = "platform_collected"
	SettlementDirectToOrganizer SettlementMode = "direct_to_organizer"
)

// DefaultCommissionRate is the platform commission (percent) used when no
// configured rate is available.
const DefaultCommissionRate = 10.0

// SettlementSnapshot is the commission rate and settlement mode frozen onto an
// operation at payment confirmation. It is copied by value and never
// recomputed from live organizer state.
// swagger:model SettlementSnapshot
type SettlementSnapshot struct {
	Mode           SettlementMode `json:"mode"`
	CommissionRate float64        `json:"commission_rate"`
	ResolvedAt     time.Time      `json:"resolved_at"`
}

// CommissionCents returns the platform commission on amountCents, rounded half
// away from zero to the nearest cent.
func (s SettlementSnapshot) CommissionCents(amountCents int64) int64 {
	return int64(math.Round(float64(amountCents) * s.CommissionRate / 100))
}

// ValidCommissionRate reports whether rate is a percentage in [0, 100].
func ValidCommissionRate(rate float64) bool {
	return !math.IsNaN(rate) && rate >= 0 && rate <= 100
}

// OrganizerProfile is the organizer state relevant to settlement. It is owned
// by the subscription and account-linking collaborators; this service only
// reads it.
type OrganizerProfile struct {
	OrganizerID string
	// CommissionRate overrides the platform default when set.
	CommissionRate       *float64
	ElevatedSubscription bool
	StripeAccountID      *string
	PayPalMerchantID     *string
}

// LinkedAccount returns the organizer's payout account for provider, if any.
func (p *OrganizerProfile) LinkedAccount(provider PaymentProvider) (string, bool) {
	var ref *string
	switch provider {
	case ProviderStripe:
		ref = p.StripeAccountID
	case ProviderPayPal:
		ref = p.PayPalMerchantID
	}
	if ref == nil || *ref == "" {
		return "", false
	}
	return *ref, true
}

// OrganizerRepository reads organizer settlement profiles.
type OrganizerRepository interface {
	GetProfile(ctx context.Context, organizerID string) (*OrganizerProfile, error)
}

// CommissionResolver decides the settlement mode and commission rate for a
// payment to organizerID through provider. It never fails: when organizer data
// cannot be read it falls back to platform collection at the default rate.
type CommissionResolver interface {
	Resolve(ctx context.Context, organizerID string, provider PaymentProvider) SettlementSnapshot
}
