package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"eventmarketplace/internal/domain"
)

type commissionResolver struct {
	organizerRepo domain.OrganizerRepository
	defaultRate   float64
	logger        *slog.Logger
	now           func() time.Time
}

// NewCommissionResolver returns the single place settlement eligibility is
// decided. defaultRate is the platform commission in percent; an out of range
// value falls back to domain.DefaultCommissionRate.
func NewCommissionResolver(organizerRepo domain.OrganizerRepository, defaultRate float64, logger *slog.Logger) domain.CommissionResolver {
	if !domain.ValidCommissionRate(defaultRate) {
		defaultRate = domain.DefaultCommissionRate
	}
	return &commissionResolver{
		organizerRepo: organizerRepo,
		defaultRate:   defaultRate,
		logger:        logger,
		now:           time.Now,
	}
}

// Resolve grants direct settlement only when the organizer has an elevated
// subscription and a payout account linked for the same provider. Any failure
// to read the organizer settles through the platform at the default rate.
func (r *commissionResolver) Resolve(ctx context.Context, organizerID string, provider domain.PaymentProvider) domain.SettlementSnapshot {
	snapshot := domain.SettlementSnapshot{
		Mode:           domain.SettlementPlatformCollected,
		CommissionRate: r.defaultRate,
		ResolvedAt:     r.now().UTC(),
	}

	profile, err := r.organizerRepo.GetProfile(ctx, organizerID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.WarnContext(ctx, "organizer profile unavailable, settling through platform",
				"organizer_id", organizerID, "provider", provider, "err", err)
		}
		return snapshot
	}

	if profile.CommissionRate != nil {
		if domain.ValidCommissionRate(*profile.CommissionRate) {
			snapshot.CommissionRate = *profile.CommissionRate
		} else {
			r.logger.WarnContext(ctx, "ignoring out of range organizer commission rate",
				"organizer_id", organizerID, "rate", *profile.CommissionRate)
		}
	}

	if profile.ElevatedSubscription {
		if _, linked := profile.LinkedAccount(provider); linked {
			snapshot.Mode = domain.SettlementDirectToOrganizer
		}
	}
	return snapshot
}
