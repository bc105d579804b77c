package ports

import (
	"context"
	"time"
)

// RateLimitRepository stores fixed-window request counters.
type RateLimitRepository interface {
	// IncrementWindow bumps the counter for key in the current window and
	// returns the new count and the window start.
	IncrementWindow(ctx context.Context, key string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

// RateLimiterService decides whether a client may proceed.
type RateLimiterService interface {
	Allow(ctx context.Context, clientKey string) (allowed bool, remaining int, limit int, reset time.Time, err error)
}
