package cache

import (
	"context"
	"errors"
	"fish-logistics-service/internal/domain"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRepo struct {
	calls int
	snap  *domain.Snapshot
	err   error
}

func (r *countingRepo) LoadSnapshot(context.Context) (*domain.Snapshot, error) {
	r.calls++
	return r.snap, r.err
}

type outcomes map[string]int

func (o outcomes) RecordCacheLookup(outcome string) { o[outcome]++ }

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Ports: []domain.Port{{ID: "CHN", Location: domain.Coordinates{Lat: 13.08, Lng: 80.27}, Active: true}},
		Trucks: []domain.Truck{
			{ID: "T1", CapacityKg: 2000, Type: domain.TruckRefrigerated, CostPerKm: 25, MaxDistanceKm: 800, Available: true},
		},
		Markets: []domain.Market{{
			ID: "BLR", Location: domain.Coordinates{Lat: 12.97, Lng: 77.59},
			Demand: []domain.Demand{{FishType: domain.FishTilapia, QuantityKg: 1000, PricePerKg: 180}},
		}},
	}
}

func newTestCache(t *testing.T, next *countingRepo) (*RedisCatalogCache, *miniredis.Miniredis, outcomes) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisCatalogCache(client, next, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := outcomes{}
	c.Metrics = rec
	return c, mr, rec
}

func TestRedisCatalogCacheHitAfterMiss(t *testing.T) {
	ctx := context.Background()
	next := &countingRepo{snap: testSnapshot()}
	c, mr, rec := newTestCache(t, next)

	first, err := c.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists(DefaultCatalogKey))

	second, err := c.LoadSnapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls, "second load is served from redis")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, rec[OutcomeMiss])
	assert.Equal(t, 1, rec[OutcomeHit])
}

func TestRedisCatalogCacheExpires(t *testing.T) {
	ctx := context.Background()
	next := &countingRepo{snap: testSnapshot()}
	c, mr, _ := newTestCache(t, next)

	_, err := c.LoadSnapshot(ctx)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = c.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestRedisCatalogCacheFallsThroughOnRedisFailure(t *testing.T) {
	ctx := context.Background()
	next := &countingRepo{snap: testSnapshot()}
	c, mr, rec := newTestCache(t, next)

	mr.Close()

	snap, err := c.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CHN", snap.Ports[0].ID)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, rec[OutcomeError])
}

func TestRedisCatalogCacheDropsCorruptEntry(t *testing.T) {
	ctx := context.Background()
	next := &countingRepo{snap: testSnapshot()}
	c, mr, _ := newTestCache(t, next)

	require.NoError(t, mr.Set(DefaultCatalogKey, "{not json"))

	_, err := c.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)

	got, err := mr.Get(DefaultCatalogKey)
	require.NoError(t, err)
	assert.NotEqual(t, "{not json", got, "corrupt entry is replaced")
}

func TestRedisCatalogCacheDoesNotCacheFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("db down")
	next := &countingRepo{err: boom}
	c, mr, _ := newTestCache(t, next)

	_, err := c.LoadSnapshot(ctx)
	require.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(DefaultCatalogKey))
}

func TestRedisCatalogCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	next := &countingRepo{snap: testSnapshot()}
	c, mr, _ := newTestCache(t, next)

	_, err := c.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, mr.Exists(DefaultCatalogKey))

	_, err = c.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestRedisCatalogCacheWithoutClient(t *testing.T) {
	next := &countingRepo{snap: testSnapshot()}
	c := NewRedisCatalogCache(nil, next, 0, nil)

	_, err := c.LoadSnapshot(context.Background())
	require.NoError(t, err)
	_, err = c.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
	assert.Equal(t, DefaultCatalogTTL, c.TTL)
}
