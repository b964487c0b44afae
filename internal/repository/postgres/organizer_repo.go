package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventmarketplace/internal/domain"
)

type organizerRepository struct {
	DB *sql.DB
}

func NewOrganizerRepository(db *sql.DB) domain.OrganizerRepository {
	return &organizerRepository{DB: db}
}

func (r *organizerRepository) GetProfile(ctx context.Context, organizerID string) (*domain.OrganizerProfile, error) {
	query := `
		SELECT organizer_id, commission_rate, elevated_subscription, stripe_account_id, paypal_merchant_id
		FROM organizer_profiles
		WHERE organizer_id = $1
	`
	p := &domain.OrganizerProfile{}
	var rateNull sql.NullFloat64
	var stripeNull, paypalNull sql.NullString
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, organizerID).Scan(
		&p.OrganizerID, &rateNull, &p.ElevatedSubscription, &stripeNull, &paypalNull,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if rateNull.Valid {
		p.CommissionRate = &rateNull.Float64
	}
	p.StripeAccountID = stringPtr(stripeNull)
	p.PayPalMerchantID = stringPtr(paypalNull)
	return p, nil
}
