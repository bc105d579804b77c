package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache implements ports.Cache using a Redis client.
type RedisCache struct {
	r redis.UniversalClient
	// key prefix to namespace entries; Flush only touches this namespace
	prefix string
}

// NewRedisCache creates a new Redis-backed cache.
func NewRedisCache(r redis.UniversalClient, prefix string) *RedisCache {
	return &RedisCache{r: r, prefix: prefix}
}

func (c *RedisCache) namespaced(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

// Get implements Cache.Get.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ns := c.namespaced(key)
	val, err := c.r.Get(ctx, ns).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set implements Cache.Set.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ns := c.namespaced(key)
	return c.r.Set(ctx, ns, value, ttl).Err()
}

// Delete implements Cache.Delete. All keys go in a single DEL command, which
// Redis executes atomically.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ns := make([]string, len(keys))
	for i, key := range keys {
		ns[i] = c.namespaced(key)
	}
	return c.r.Del(ctx, ns...).Err()
}

// Flush removes every key under the cache's prefix. Keys are collected
// with SCAN and removed in a single pipeline so subsequent reads miss as
// one unit rather than observing a mix of old and deleted entries.
func (c *RedisCache) Flush(ctx context.Context) error {
	pattern := c.namespaced("*")
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := c.r.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return nil
	}
	pipe := c.r.TxPipeline()
	pipe.Del(ctx, keys...)
	_, err := pipe.Exec(ctx)
	return err
}
