package memorycache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// Cache is a process-local ports.Cache. Flush replaces the whole map under
// the write lock, so a reader either sees the complete pre-flush state or an
// empty cache, never a partially cleared one.
type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
}

// New creates an empty in-memory cache.
func New() *Cache {
	return &Cache{items: make(map[string]entry)}
}

// Get implements Cache.Get. Expired entries are reported as misses.
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.Delete(context.Background(), key)
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set implements Cache.Set.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = e
	c.mu.Unlock()
	return nil
}

// Delete implements Cache.Delete. All keys go under one write lock, so a
// reader never observes some of them removed and others still present.
func (c *Cache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.items, key)
	}
	c.mu.Unlock()
	return nil
}

// Flush implements Cache.Flush by swapping the map reference.
func (c *Cache) Flush(_ context.Context) error {
	c.mu.Lock()
	c.items = make(map[string]entry)
	c.mu.Unlock()
	return nil
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
