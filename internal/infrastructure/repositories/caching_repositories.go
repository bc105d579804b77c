package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"

	"github.com/nightcap/bar-directory-api/internal/core/domain/bar"
	"github.com/nightcap/bar-directory-api/internal/core/domain/drink"
	"github.com/nightcap/bar-directory-api/internal/core/ports"
)

// Cache keys per (entity-type, filter) pair. At most one valid entry exists
// per key at any time; entries are replaced whole, never patched.
const (
	keyBarsAll      = "bars:all"
	keyBarsActive   = "bars:active"
	keyDrinksAll    = "drinks:all"
	keyDrinksActive = "drinks:active"
)

var (
	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_cache_hits_total",
			Help: "List reads served from cache",
		},
		[]string{"entity"},
	)
	cacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_cache_misses_total",
			Help: "List reads that fell through to the source of record",
		},
		[]string{"entity"},
	)
	cacheInvalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_cache_invalidations_total",
			Help: "Explicit cache invalidations",
		},
		[]string{"entity"},
	)
)

func init() {
	prometheus.MustRegister(cacheHits)
	prometheus.MustRegister(cacheMisses)
	prometheus.MustRegister(cacheInvalidations)
}

// Utility helpers
func cacheSetSilently(c ports.Cache, ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, b, ttl)
}

func cacheGet[T any](c ports.Cache, ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// loadListWithSingleflight serves a list from cache when possible and
// otherwise coalesces concurrent misses for the same key into a single
// upstream load. The cache is populated only after a successful load, so a
// failed fetch leaves the prior state untouched.
func loadListWithSingleflight[T any](cache ports.Cache, sf *singleflight.Group, ctx context.Context, entity, key string, ttl time.Duration, loader func() ([]T, error)) ([]T, ports.Source, error) {
	if v, ok := cacheGet[[]T](cache, ctx, key); ok {
		cacheHits.WithLabelValues(entity).Inc()
		return *v, ports.SourceCache, nil
	}
	cacheMisses.WithLabelValues(entity).Inc()
	res, err, _ := sf.Do(key, func() (any, error) {
		// Another flight may have populated the key while we queued
		if v, ok := cacheGet[[]T](cache, ctx, key); ok {
			return *v, nil
		}
		all, err := loader()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ports.ErrUpstreamFetch, err)
		}
		cacheSetSilently(cache, ctx, key, all, ttl)
		return all, nil
	})
	if err != nil {
		return nil, ports.SourceLive, err
	}
	all, ok := res.([]T)
	if !ok {
		return nil, ports.SourceLive, fmt.Errorf("unexpected type from singleflight result")
	}
	return all, ports.SourceLive, nil
}

// invalidateKeys drops the given keys in one Delete and forgets their
// in-flight loads so a post-clear read never joins a pre-clear flight.
func invalidateKeys(cache ports.Cache, sf *singleflight.Group, ctx context.Context, entity string, keys ...string) error {
	for _, k := range keys {
		sf.Forget(k)
	}
	if cache == nil {
		return nil
	}
	cacheInvalidations.WithLabelValues(entity).Inc()
	if err := cache.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("%w: %v", ports.ErrInvalidation, err)
	}
	return nil
}

// CachingBarRepository decorates a BarRepository with a read-through cache.
// Each decorator owns its singleflight group, so separate instances never
// coalesce onto each other's loads.
type CachingBarRepository struct {
	inner ports.BarRepository
	cache ports.Cache
	ttl   time.Duration
	sf    singleflight.Group
}

func NewCachingBarRepository(inner ports.BarRepository, cache ports.Cache, ttl time.Duration) *CachingBarRepository {
	return &CachingBarRepository{inner: inner, cache: cache, ttl: ttl}
}

func (c *CachingBarRepository) ListAll(ctx context.Context) ([]bar.Bar, ports.Source, error) {
	loader := func() ([]bar.Bar, error) {
		all, _, err := c.inner.ListAll(ctx)
		return all, err
	}
	return loadListWithSingleflight(c.cache, &c.sf, ctx, "bars", keyBarsAll, c.ttl, loader)
}

func (c *CachingBarRepository) ListActive(ctx context.Context) ([]bar.Bar, ports.Source, error) {
	loader := func() ([]bar.Bar, error) {
		active, _, err := c.inner.ListActive(ctx)
		return active, err
	}
	return loadListWithSingleflight(c.cache, &c.sf, ctx, "bars", keyBarsActive, c.ttl, loader)
}

// Invalidate drops both bar list entries. Invalidating an empty cache succeeds.
func (c *CachingBarRepository) Invalidate(ctx context.Context) error {
	return invalidateKeys(c.cache, &c.sf, ctx, "bars", keyBarsAll, keyBarsActive)
}

// CachingDrinkRepository decorates a DrinkRepository with a read-through cache.
type CachingDrinkRepository struct {
	inner ports.DrinkRepository
	cache ports.Cache
	ttl   time.Duration
	sf    singleflight.Group
}

func NewCachingDrinkRepository(inner ports.DrinkRepository, cache ports.Cache, ttl time.Duration) *CachingDrinkRepository {
	return &CachingDrinkRepository{inner: inner, cache: cache, ttl: ttl}
}

func (c *CachingDrinkRepository) ListAll(ctx context.Context) ([]drink.Drink, ports.Source, error) {
	loader := func() ([]drink.Drink, error) {
		all, _, err := c.inner.ListAll(ctx)
		return all, err
	}
	return loadListWithSingleflight(c.cache, &c.sf, ctx, "drinks", keyDrinksAll, c.ttl, loader)
}

func (c *CachingDrinkRepository) ListActive(ctx context.Context) ([]drink.Drink, ports.Source, error) {
	loader := func() ([]drink.Drink, error) {
		active, _, err := c.inner.ListActive(ctx)
		return active, err
	}
	return loadListWithSingleflight(c.cache, &c.sf, ctx, "drinks", keyDrinksActive, c.ttl, loader)
}

// Invalidate drops both drink list entries.
func (c *CachingDrinkRepository) Invalidate(ctx context.Context) error {
	return invalidateKeys(c.cache, &c.sf, ctx, "drinks", keyDrinksAll, keyDrinksActive)
}

// Simple validation to ensure decorators implement interfaces at compile time
var _ ports.BarRepository = (*CachingBarRepository)(nil)
var _ ports.Invalidator = (*CachingBarRepository)(nil)
var _ ports.DrinkRepository = (*CachingDrinkRepository)(nil)
var _ ports.Invalidator = (*CachingDrinkRepository)(nil)
