package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"eventmarketplace/internal/domain"
)

// RedisConfig holds connection settings for the earnings cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisClient connects to Redis and checks the connection.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

type redisEarningsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisEarningsCache stores reports under a per-organizer generation
// number. Invalidate bumps the generation, which orphans every report of the
// organizer at once; orphans expire with the TTL.
func NewRedisEarningsCache(client redis.Cmdable, ttl time.Duration) domain.EarningsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisEarningsCache{client: client, ttl: ttl}
}

func generationKey(organizerID string) string {
	return fmt.Sprintf("earnings:%s:gen", organizerID)
}

func reportKey(organizerID string, generation int64, period string) string {
	return fmt.Sprintf("earnings:%s:%d:%s", organizerID, generation, period)
}

func (c *redisEarningsCache) generation(ctx context.Context, organizerID string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(organizerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *redisEarningsCache) GetReport(ctx context.Context, organizerID, period string) (*domain.EarningsReport, error) {
	gen, err := c.generation(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("read earnings generation: %w", err)
	}
	raw, err := c.client.Get(ctx, reportKey(organizerID, gen, period)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("read earnings report: %w", err)
	}
	var report domain.EarningsReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("decode earnings report: %w", err)
	}
	return &report, nil
}

func (c *redisEarningsCache) SetReport(ctx context.Context, organizerID, period string, report *domain.EarningsReport) error {
	gen, err := c.generation(ctx, organizerID)
	if err != nil {
		return fmt.Errorf("read earnings generation: %w", err)
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode earnings report: %w", err)
	}
	return c.client.Set(ctx, reportKey(organizerID, gen, period), raw, c.ttl).Err()
}

func (c *redisEarningsCache) Invalidate(ctx context.Context, organizerID string) error {
	return c.client.Incr(ctx, generationKey(organizerID)).Err()
}

type noopEarningsCache struct{}

// NewNoopEarningsCache returns a cache that never holds anything, for
// deployments without Redis.
func NewNoopEarningsCache() domain.EarningsCache {
	return noopEarningsCache{}
}

func (noopEarningsCache) GetReport(ctx context.Context, organizerID, period string) (*domain.EarningsReport, error) {
	return nil, domain.ErrCacheMiss
}

func (noopEarningsCache) SetReport(ctx context.Context, organizerID, period string, report *domain.EarningsReport) error {
	return nil
}

func (noopEarningsCache) Invalidate(ctx context.Context, organizerID string) error {
	return nil
}
