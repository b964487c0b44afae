package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventmarketplace/internal/domain"
)

type earningsService struct {
	operationRepo  domain.OperationRepository
	cache          domain.EarningsCache
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEarningsService aggregates organizer revenue from the settlement snapshots
// frozen on paid operations. Summary reports are read through cache.
func NewEarningsService(operationRepo domain.OperationRepository, cache domain.EarningsCache, logger *slog.Logger, timeout time.Duration) domain.EarningsService {
	return &earningsService{
		operationRepo:  operationRepo,
		cache:          cache,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *earningsService) Earnings(ctx context.Context, organizerID, period string) (*domain.EarningsReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.now().UTC()
	p, err := domain.ParsePeriod(period, now)
	if err != nil {
		return nil, err
	}

	report, err := s.cache.GetReport(ctx, organizerID, p.Label)
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.WarnContext(ctx, "earnings cache read failed", "organizer_id", organizerID, "period", p.Label, "err", err)
	}

	ops, err := s.operationRepo.ListSettledByOrganizer(ctx, organizerID, p.From, p.To)
	if err != nil {
		return nil, fmt.Errorf("list settled operations: %w", err)
	}
	report = domain.SummarizeEarnings(organizerID, p, ops, now)
	if err := s.cache.SetReport(ctx, organizerID, p.Label, report); err != nil {
		s.logger.WarnContext(ctx, "earnings cache write failed", "organizer_id", organizerID, "period", p.Label, "err", err)
	}
	return report, nil
}

func (s *earningsService) TopEvents(ctx context.Context, organizerID, period string, limit int) ([]domain.EventRevenue, error) {
	ops, err := s.settled(ctx, organizerID, period)
	if err != nil {
		return nil, err
	}
	return domain.RankEvents(ops, limit), nil
}

func (s *earningsService) MonthlyRollup(ctx context.Context, organizerID, period string) ([]domain.MonthlyEarnings, error) {
	ops, err := s.settled(ctx, organizerID, period)
	if err != nil {
		return nil, err
	}
	return domain.RollupByMonth(ops), nil
}

func (s *earningsService) settled(ctx context.Context, organizerID, period string) ([]*domain.SettledOperation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := domain.ParsePeriod(period, s.now())
	if err != nil {
		return nil, err
	}
	ops, err := s.operationRepo.ListSettledByOrganizer(ctx, organizerID, p.From, p.To)
	if err != nil {
		return nil, fmt.Errorf("list settled operations: %w", err)
	}
	return ops, nil
}
