package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fish-logistics-service/internal/domain"
	"fish-logistics-service/internal/platform/obs"
	"fish-logistics-service/internal/ports"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultCatalogKey = "fish-logistics:catalog:snapshot"
	DefaultCatalogTTL = 5 * time.Minute
)

// Cache lookup outcomes reported to the LookupRecorder.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

// LookupRecorder counts cache lookups by outcome.
type LookupRecorder interface {
	RecordCacheLookup(outcome string)
}

// RedisCatalogCache decorates a CatalogRepository with a Redis-held copy of
// the last snapshot. Redis failures never fail a load: they are logged and
// the call falls through to the wrapped repository.
type RedisCatalogCache struct {
	Client  *redis.Client
	Next    ports.CatalogRepository
	Key     string
	TTL     time.Duration
	Logger  *slog.Logger
	Metrics LookupRecorder
}

func NewRedisCatalogCache(client *redis.Client, next ports.CatalogRepository, ttl time.Duration, logger *slog.Logger) *RedisCatalogCache {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCatalogCache{
		Client: client,
		Next:   next,
		Key:    DefaultCatalogKey,
		TTL:    ttl,
		Logger: logger,
	}
}

func (c *RedisCatalogCache) LoadSnapshot(ctx context.Context) (_ *domain.Snapshot, err error) {
	defer obs.Time(ctx, "catalog.cache.LoadSnapshot")(&err)

	if c.Next == nil {
		return nil, errors.New("redis catalog cache: next repository is nil")
	}

	if snap, ok := c.get(ctx); ok {
		return snap, nil
	}

	snap, err := c.Next.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	c.put(ctx, snap)
	return snap, nil
}

// Invalidate drops the cached snapshot, e.g. after reseeding the database.
func (c *RedisCatalogCache) Invalidate(ctx context.Context) error {
	if c.Client == nil {
		return nil
	}
	if err := c.Client.Del(ctx, c.Key).Err(); err != nil {
		return fmt.Errorf("invalidate catalog cache key=%q: %w", c.Key, err)
	}
	return nil
}

func (c *RedisCatalogCache) get(ctx context.Context) (*domain.Snapshot, bool) {
	if c.Client == nil {
		return nil, false
	}

	raw, err := c.Client.Get(ctx, c.Key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.record(OutcomeMiss)
		return nil, false
	case err != nil:
		c.record(OutcomeError)
		c.Logger.WarnContext(ctx, "catalog cache: get failed, falling back to repository", "key", c.Key, "err", err)
		return nil, false
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		c.record(OutcomeError)
		c.Logger.WarnContext(ctx, "catalog cache: dropping undecodable entry", "key", c.Key, "err", err)
		_ = c.Client.Del(ctx, c.Key).Err()
		return nil, false
	}

	c.record(OutcomeHit)
	return &snap, true
}

func (c *RedisCatalogCache) put(ctx context.Context, snap *domain.Snapshot) {
	if c.Client == nil || snap == nil {
		return
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		c.Logger.WarnContext(ctx, "catalog cache: encode snapshot", "err", err)
		return
	}
	if err := c.Client.Set(ctx, c.Key, raw, c.TTL).Err(); err != nil {
		c.Logger.WarnContext(ctx, "catalog cache: set failed", "key", c.Key, "err", err)
	}
}

func (c *RedisCatalogCache) record(outcome string) {
	if c.Metrics != nil {
		c.Metrics.RecordCacheLookup(outcome)
	}
}
