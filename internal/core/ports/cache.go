package ports

import (
	"context"
	"errors"
	"time"
)

// Cache defines a minimal key-value cache contract.
// Implementations should degrade gracefully (returning an error without crashing callers)
// so that application logic can fall back to the primary datastore.
type Cache interface {
	// Get returns the raw bytes for key. ok=false if not found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for key with TTL (0 or negative means no expiration if supported).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the given keys as one operation: a concurrent reader
	// sees either all of them or none of them gone. Absence is not an error.
	Delete(ctx context.Context, keys ...string) error
	// Flush removes every key in the cache's namespace. Readers must never
	// observe a partially flushed state: a read started after Flush returns
	// sees an empty cache.
	Flush(ctx context.Context) error
}

// Source tags where a list result came from.
type Source string

const (
	SourceCache Source = "cache"
	SourceLive  Source = "live"
)

// Invalidator is implemented by caching repositories that can drop all of
// their cached entries on demand.
type Invalidator interface {
	// Invalidate removes the repository's cached entries. Invalidating an
	// already-empty cache succeeds.
	Invalidate(ctx context.Context) error
}

var (
	// ErrUpstreamFetch wraps failures loading from the source of record.
	ErrUpstreamFetch = errors.New("upstream fetch failed")
	// ErrInvalidation wraps failures clearing cached entries.
	ErrInvalidation = errors.New("cache invalidation failed")
)
