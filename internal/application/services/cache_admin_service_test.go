package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	impl "github.com/nightcap/bar-directory-api/internal/application/services"
	"github.com/nightcap/bar-directory-api/internal/core/ports"
)

type invalidatorMock struct {
	invalidateFn func(ctx context.Context) error
	calls        int
}

func (m *invalidatorMock) Invalidate(ctx context.Context) error {
	m.calls++
	if m.invalidateFn != nil {
		return m.invalidateFn(ctx)
	}
	return nil
}

type cacheSpy struct {
	flushErr   error
	flushCalls int
}

func (c *cacheSpy) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }
func (c *cacheSpy) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}
func (c *cacheSpy) Delete(ctx context.Context, keys ...string) error { return nil }
func (c *cacheSpy) Flush(ctx context.Context) error {
	c.flushCalls++
	return c.flushErr
}

var _ ports.Cache = (*cacheSpy)(nil)

func TestClear_InvalidatesEveryEntityCache(t *testing.T) {
	bars := &invalidatorMock{}
	drinks := &invalidatorMock{}
	svc := impl.NewCacheAdminService(nil, nil, bars, drinks)

	require.NoError(t, svc.Clear(context.Background()))
	require.Equal(t, 1, bars.calls)
	require.Equal(t, 1, drinks.calls)
}

func TestClear_FlushesSharedCache(t *testing.T) {
	cache := &cacheSpy{}
	bars := &invalidatorMock{}
	svc := impl.NewCacheAdminService(nil, cache, bars)

	require.NoError(t, svc.Clear(context.Background()))
	require.Equal(t, 1, bars.calls)
	require.Equal(t, 1, cache.flushCalls, "clear must flush the whole namespace")
}

func TestClear_FirstFailureReturned(t *testing.T) {
	boom := errors.New("redis gone")
	cache := &cacheSpy{}
	bars := &invalidatorMock{invalidateFn: func(ctx context.Context) error { return boom }}
	drinks := &invalidatorMock{}
	svc := impl.NewCacheAdminService(nil, cache, bars, drinks)

	err := svc.Clear(context.Background())
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, drinks.calls, "clear stops at the first failure")
	require.Equal(t, 0, cache.flushCalls)
}

func TestClear_FlushFailureReturned(t *testing.T) {
	cache := &cacheSpy{flushErr: errors.New("redis gone")}
	svc := impl.NewCacheAdminService(nil, cache, &invalidatorMock{})

	err := svc.Clear(context.Background())
	require.ErrorIs(t, err, ports.ErrInvalidation)
}

func TestClear_NoInvalidatorsSucceeds(t *testing.T) {
	svc := impl.NewCacheAdminService(nil, nil)
	require.NoError(t, svc.Clear(context.Background()))
}
