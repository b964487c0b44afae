package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmarketplace/internal/domain"
)

func TestCommissionResolver_Resolve(t *testing.T) {
	rate := func(f float64) *float64 { return &f }
	acct := func(s string) *string { return &s }

	tests := []struct {
		name     string
		profile  *domain.OrganizerProfile
		repoErr  error
		provider domain.PaymentProvider
		wantMode domain.SettlementMode
		wantRate float64
	}{
		{
			name:     "no profile settles through platform at default rate",
			provider: domain.ProviderStripe,
			wantMode: domain.SettlementPlatformCollected,
			wantRate: 10,
		},
		{
			name:     "organizer specific rate",
			profile:  &domain.OrganizerProfile{OrganizerID: "org-1", CommissionRate: rate(7.5)},
			provider: domain.ProviderStripe,
			wantMode: domain.SettlementPlatformCollected,
			wantRate: 7.5,
		},
		{
			name: "elevated subscription and account for the same provider",
			profile: &domain.OrganizerProfile{
				OrganizerID: "org-1", CommissionRate: rate(5), ElevatedSubscription: true, StripeAccountID: acct("acct_1"),
			},
			provider: domain.ProviderStripe,
			wantMode: domain.SettlementDirectToOrganizer,
			wantRate: 5,
		},
		{
			name: "account linked for another provider only",
			profile: &domain.OrganizerProfile{
				OrganizerID: "org-1", ElevatedSubscription: true, StripeAccountID: acct("acct_1"),
			},
			provider: domain.ProviderPayPal,
			wantMode: domain.SettlementPlatformCollected,
			wantRate: 10,
		},
		{
			name: "linked account without subscription",
			profile: &domain.OrganizerProfile{
				OrganizerID: "org-1", PayPalMerchantID: acct("MERCHANT1"),
			},
			provider: domain.ProviderPayPal,
			wantMode: domain.SettlementPlatformCollected,
			wantRate: 10,
		},
		{
			name: "empty account id is not linked",
			profile: &domain.OrganizerProfile{
				OrganizerID: "org-1", ElevatedSubscription: true, PayPalMerchantID: acct(""),
			},
			provider: domain.ProviderPayPal,
			wantMode: domain.SettlementPlatformCollected,
			wantRate: 10,
		},
		{
			name:     "out of range organizer rate ignored",
			profile:  &domain.OrganizerProfile{OrganizerID: "org-1", CommissionRate: rate(140)},
			provider: domain.ProviderStripe,
			wantMode: domain.SettlementPlatformCollected,
			wantRate: 10,
		},
		{
			name: "lookup failure fails closed",
			profile: &domain.OrganizerProfile{
				OrganizerID: "org-1", CommissionRate: rate(2), ElevatedSubscription: true, StripeAccountID: acct("acct_1"),
			},
			repoErr:  errFakeDB,
			provider: domain.ProviderStripe,
			wantMode: domain.SettlementPlatformCollected,
			wantRate: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newMemStore()
			if tt.profile != nil {
				st.profiles[tt.profile.OrganizerID] = tt.profile
			}
			r := NewCommissionResolver(&fakeOrganizerRepo{st: st, err: tt.repoErr}, 10, discardLogger())

			got := r.Resolve(context.Background(), "org-1", tt.provider)
			assert.Equal(t, tt.wantMode, got.Mode)
			assert.Equal(t, tt.wantRate, got.CommissionRate)
			assert.False(t, got.ResolvedAt.IsZero())
		})
	}
}

func TestNewCommissionResolver_InvalidDefaultRate(t *testing.T) {
	r := NewCommissionResolver(&fakeOrganizerRepo{st: newMemStore()}, -3, discardLogger())
	got := r.Resolve(context.Background(), "org-1", domain.ProviderStripe)
	require.Equal(t, domain.DefaultCommissionRate, got.CommissionRate)
}
