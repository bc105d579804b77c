package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/nightcap/bar-directory-api/internal/infrastructure/memorycache"
)

func TestInvalidationMetric_CountsOnlyRealClears(t *testing.T) {
	counter := cacheInvalidations.WithLabelValues("bars")
	before := testutil.ToFloat64(counter)

	// No cache configured: nothing to clear, nothing to count
	noop := NewCachingBarRepository(nil, nil, time.Minute)
	require.NoError(t, noop.Invalidate(context.Background()))
	require.Equal(t, before, testutil.ToFloat64(counter))

	repo := NewCachingBarRepository(nil, memorycache.New(), time.Minute)
	require.NoError(t, repo.Invalidate(context.Background()))
	require.Equal(t, before+1, testutil.ToFloat64(counter))
}
