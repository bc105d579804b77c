package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nightcap/bar-directory-api/internal/core/ports"
)

// CacheAdminService clears every registered entity cache. Used by the
// clear-cache webhook when the upstream data changes out of band.
type CacheAdminService struct {
	cache        ports.Cache
	invalidators []ports.Invalidator
	logger       *logrus.Logger
}

func NewCacheAdminService(logger *logrus.Logger, cache ports.Cache, invalidators ...ports.Invalidator) ports.CacheAdminService {
	return &CacheAdminService{
		cache:        cache,
		invalidators: invalidators,
		logger:       logger,
	}
}

// Clear invalidates all caches. Per-entity invalidation runs first so
// in-flight loads are forgotten, then the shared namespace is flushed whole;
// the webhook contract is "the cache is empty", not "the known keys are
// gone". The first failure is returned; caches already cleared stay cleared,
// and in-flight reads may still complete with pre-clear data.
func (s *CacheAdminService) Clear(ctx context.Context) error {
	for _, inv := range s.invalidators {
		if inv == nil {
			continue
		}
		if err := inv.Invalidate(ctx); err != nil {
			if s.logger != nil {
				s.logger.WithError(err).Error("cache invalidation failed")
			}
			return err
		}
	}

	if s.cache != nil {
		if err := s.cache.Flush(ctx); err != nil {
			if s.logger != nil {
				s.logger.WithError(err).Error("cache flush failed")
			}
			return fmt.Errorf("%w: %v", ports.ErrInvalidation, err)
		}
	}

	if s.logger != nil {
		s.logger.Info("all entity caches cleared")
	}
	return nil
}
