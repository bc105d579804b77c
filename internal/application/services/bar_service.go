package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nightcap/bar-directory-api/internal/core/domain/bar"
	"github.com/nightcap/bar-directory-api/internal/core/ports"
)

type BarService struct {
	repo   ports.BarRepository
	logger *logrus.Logger
}

func NewBarService(repo ports.BarRepository, logger *logrus.Logger) ports.BarService {
	return &BarService{
		repo:   repo,
		logger: logger,
	}
}

// ListBars returns the active subset by default, or the full directory. An
// empty list is a valid success; only upstream failures surface as errors.
func (s *BarService) ListBars(ctx context.Context, activeOnly bool) ([]bar.Bar, ports.Source, error) {
	var (
		bars   []bar.Bar
		source ports.Source
		err    error
	)
	if activeOnly {
		bars, source, err = s.repo.ListActive(ctx)
	} else {
		bars, source, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"active_only": activeOnly}).WithError(err).Error("failed to list bars")
		}
		return nil, source, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"active_only": activeOnly, "count": len(bars), "source": source}).Debug("bars listed")
	}
	return bars, source, nil
}
