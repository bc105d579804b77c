package repositories_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nightcap/bar-directory-api/internal/core/domain/bar"
	"github.com/nightcap/bar-directory-api/internal/core/ports"
	"github.com/nightcap/bar-directory-api/internal/infrastructure/memorycache"
	"github.com/nightcap/bar-directory-api/internal/infrastructure/repositories"
)

type barRepoMock struct {
	listAllFn    func(ctx context.Context) ([]bar.Bar, ports.Source, error)
	listActiveFn func(ctx context.Context) ([]bar.Bar, ports.Source, error)
	allCalls     atomic.Int32
	activeCalls  atomic.Int32
}

func (m *barRepoMock) ListAll(ctx context.Context) ([]bar.Bar, ports.Source, error) {
	m.allCalls.Add(1)
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, ports.SourceLive, nil
}

func (m *barRepoMock) ListActive(ctx context.Context) ([]bar.Bar, ports.Source, error) {
	m.activeCalls.Add(1)
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return nil, ports.SourceLive, nil
}

func twoBars() []bar.Bar {
	return []bar.Bar{
		{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Name: "A", Active: true},
		{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Name: "B", Active: false},
	}
}

func activeSubset(all []bar.Bar) []bar.Bar {
	var out []bar.Bar
	for _, b := range all {
		if b.Active {
			out = append(out, b)
		}
	}
	return out
}

func newCachingBarRepo(inner ports.BarRepository) *repositories.CachingBarRepository {
	return repositories.NewCachingBarRepository(inner, memorycache.New(), time.Minute)
}

func TestListAll_FirstLiveThenCache(t *testing.T) {
	all := twoBars()
	inner := &barRepoMock{listAllFn: func(ctx context.Context) ([]bar.Bar, ports.Source, error) {
		return all, ports.SourceLive, nil
	}}
	repo := newCachingBarRepo(inner)

	got, source, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, ports.SourceLive, source)
	require.Equal(t, all, got)

	got, source, err = repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, ports.SourceCache, source)
	require.Equal(t, all, got)
	require.Equal(t, int32(1), inner.allCalls.Load(), "cache hit must not refetch")
}

func TestListActive_SubsetOfAll(t *testing.T) {
	all := twoBars()
	inner := &barRepoMock{
		listAllFn: func(ctx context.Context) ([]bar.Bar, ports.Source, error) {
			return all, ports.SourceLive, nil
		},
		listActiveFn: func(ctx context.Context) ([]bar.Bar, ports.Source, error) {
			return activeSubset(all), ports.SourceLive, nil
		},
	}
	repo := newCachingBarRepo(inner)

	full, _, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	active, _, err := repo.ListActive(context.Background())
	require.NoError(t, err)

	require.Len(t, full, 2)
	require.Len(t, active, 1)
	ids := make(map[uuid.UUID]bool)
	for _, b := range full {
		ids[b.ID] = true
	}
	for _, b := range active {
		require.True(t, ids[b.ID], "active bar %s missing from full list", b.ID)
		require.True(t, b.Active)
	}
}

func TestInvalidate_ForcesFreshFetch(t *testing.T) {
	all := twoBars()
	inner := &barRepoMock{listAllFn: func(ctx context.Context) ([]bar.Bar, ports.Source, error) {
		return all, ports.SourceLive, nil
	}}
	repo := newCachingBarRepo(inner)

	_, _, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	_, source, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, ports.SourceCache, source)

	require.NoError(t, repo.Invalidate(context.Background()))

	_, source, err = repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, ports.SourceLive, source, "post-clear read must refetch")
	require.Equal(t, int32(2), inner.allCalls.Load())
}

func TestInvalidate_EmptyCacheSucceeds(t *testing.T) {
	repo := newCachingBarRepo(&barRepoMock{})
	require.NoError(t, repo.Invalidate(context.Background()))
}

func TestFetchFailure_PropagatesWithoutCaching(t *testing.T) {
	boom := errors.New("upstream down")
	failing := true
	all := twoBars()
	inner := &barRepoMock{listAllFn: func(ctx context.Context) ([]bar.Bar, ports.Source, error) {
		if failing {
			return nil, ports.SourceLive, boom
		}
		return all, ports.SourceLive, nil
	}}
	repo := newCachingBarRepo(inner)

	_, _, err := repo.ListAll(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, ports.ErrUpstreamFetch)

	// Failure must not populate the cache: once the upstream recovers, the
	// next read fetches live rather than serving a cached error artifact.
	failing = false
	got, source, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, ports.SourceLive, source)
	require.Equal(t, all, got)
}

func TestEmptyListIsValidSuccess(t *testing.T) {
	inner := &barRepoMock{listAllFn: func(ctx context.Context) ([]bar.Bar, ports.Source, error) {
		return []bar.Bar{}, ports.SourceLive, nil
	}}
	repo := newCachingBarRepo(inner)

	got, source, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, ports.SourceLive, source)
	require.Empty(t, got)

	// An empty list caches like any other value
	_, source, err = repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, ports.SourceCache, source)
}

// recordingCache wraps a real cache and records every Delete call's key set.
type recordingCache struct {
	inner   ports.Cache
	mu      sync.Mutex
	deletes [][]string
}

func (r *recordingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return r.inner.Get(ctx, key)
}

func (r *recordingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.inner.Set(ctx, key, value, ttl)
}

func (r *recordingCache) Delete(ctx context.Context, keys ...string) error {
	r.mu.Lock()
	r.deletes = append(r.deletes, append([]string(nil), keys...))
	r.mu.Unlock()
	return r.inner.Delete(ctx, keys...)
}

func (r *recordingCache) Flush(ctx context.Context) error {
	return r.inner.Flush(ctx)
}

func TestInvalidate_DropsAllKeysInOneDelete(t *testing.T) {
	all := twoBars()
	inner := &barRepoMock{
		listAllFn: func(ctx context.Context) ([]bar.Bar, ports.Source, error) {
			return all, ports.SourceLive, nil
		},
		listActiveFn: func(ctx context.Context) ([]bar.Bar, ports.Source, error) {
			return activeSubset(all), ports.SourceLive, nil
		},
	}
	rc := &recordingCache{inner: memorycache.New()}
	repo := repositories.NewCachingBarRepository(inner, rc, time.Minute)

	// Warm both list keys
	_, _, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	_, _, err = repo.ListActive(context.Background())
	require.NoError(t, err)

	require.NoError(t, repo.Invalidate(context.Background()))

	// Both keys must go in a single Delete, never one at a time: a reader
	// between two separate deletes would see one list cleared and the other
	// still serving pre-clear data.
	require.Len(t, rc.deletes, 1)
	require.ElementsMatch(t, []string{"bars:all", "bars:active"}, rc.deletes[0])

	_, source, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, ports.SourceLive, source)
	_, source, err = repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Equal(t, ports.SourceLive, source)
}

func TestSeparateDecorators_DoNotShareLoads(t *testing.T) {
	slowSet := twoBars()
	fastSet := []bar.Bar{
		{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000cc"), Name: "C", Active: true},
	}

	release := make(chan struct{})
	var releaseOnce sync.Once
	slow := &barRepoMock{listAllFn: func(ctx context.Context) ([]bar.Bar, ports.Source, error) {
		<-release
		return slowSet, ports.SourceLive, nil
	}}
	fast := &barRepoMock{listAllFn: func(ctx context.Context) ([]bar.Bar, ports.Source, error) {
		return fastSet, ports.SourceLive, nil
	}}

	repoSlow := newCachingBarRepo(slow)
	repoFast := newCachingBarRepo(fast)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _, _ = repoSlow.ListAll(context.Background())
	}()
	// Let the slow repo's flight start before reading from the other
	// instance; the timer keeps the test from hanging if the fast read ever
	// joins the blocked flight.
	time.Sleep(20 * time.Millisecond)
	watchdog := time.AfterFunc(2*time.Second, func() { releaseOnce.Do(func() { close(release) }) })
	defer watchdog.Stop()

	got, _, err := repoFast.ListAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, fastSet, got, "an instance must never serve another instance's load")
	require.Equal(t, int32(1), fast.allCalls.Load())

	releaseOnce.Do(func() { close(release) })
	wg.Wait()
}

func TestConcurrentMisses_CoalesceToOneFetch(t *testing.T) {
	all := twoBars()
	release := make(chan struct{})
	inner := &barRepoMock{listAllFn: func(ctx context.Context) ([]bar.Bar, ports.Source, error) {
		<-release
		return all, ports.SourceLive, nil
	}}
	repo := newCachingBarRepo(inner)

	const readers = 16
	var wg sync.WaitGroup
	results := make([][]bar.Bar, readers)
	errs := make([]error, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _, errs[i] = repo.ListAll(context.Background())
		}(i)
	}
	// Let the readers pile up on the in-flight fetch before releasing it
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < readers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, all, results[i])
	}
	require.Equal(t, int32(1), inner.allCalls.Load(), "concurrent misses should share one upstream call")
}

func TestConcurrentClearAndRead_NeverMixes(t *testing.T) {
	before := []bar.Bar{
		{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000aa"), Name: "Old A", Active: true},
		{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000ab"), Name: "Old B", Active: true},
	}
	after := []bar.Bar{
		{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000ba"), Name: "New A", Active: true},
		{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000bb"), Name: "New B", Active: true},
	}

	var swapped atomic.Bool
	inner := &barRepoMock{listAllFn: func(ctx context.Context) ([]bar.Bar, ports.Source, error) {
		if swapped.Load() {
			return after, ports.SourceLive, nil
		}
		return before, ports.SourceLive, nil
	}}
	repo := newCachingBarRepo(inner)

	// Warm the cache with the pre-clear set
	_, _, err := repo.ListAll(context.Background())
	require.NoError(t, err)

	sameSet := func(got, want []bar.Bar) bool {
		if len(got) != len(want) {
			return false
		}
		for i := range got {
			if got[i].ID != want[i].ID {
				return false
			}
		}
		return true
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	var mixed atomic.Bool
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				got, _, err := repo.ListAll(context.Background())
				if err != nil {
					continue
				}
				// Every response is entirely the old set or entirely the new one
				if !sameSet(got, before) && !sameSet(got, after) {
					mixed.Store(true)
					return
				}
			}
		}()
	}

	swapped.Store(true)
	for i := 0; i < 20; i++ {
		require.NoError(t, repo.Invalidate(context.Background()))
		time.Sleep(time.Millisecond)
	}
	close(stop)
	wg.Wait()

	require.False(t, mixed.Load(), "a response mixed pre- and post-clear entries")

	// After the final clear settles, reads converge on the new set
	require.NoError(t, repo.Invalidate(context.Background()))
	got, _, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.True(t, sameSet(got, after))
}
