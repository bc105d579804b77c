package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nightcap/bar-directory-api/internal/core/domain/drink"
	"github.com/nightcap/bar-directory-api/internal/core/ports"
)

type DrinkService struct {
	repo   ports.DrinkRepository
	logger *logrus.Logger
}

func NewDrinkService(repo ports.DrinkRepository, logger *logrus.Logger) ports.DrinkService {
	return &DrinkService{
		repo:   repo,
		logger: logger,
	}
}

// ListDrinks mirrors the bar listing contract for the drink catalogue.
func (s *DrinkService) ListDrinks(ctx context.Context, activeOnly bool) ([]drink.Drink, ports.Source, error) {
	var (
		drinks []drink.Drink
		source ports.Source
		err    error
	)
	if activeOnly {
		drinks, source, err = s.repo.ListActive(ctx)
	} else {
		drinks, source, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"active_only": activeOnly}).WithError(err).Error("failed to list drinks")
		}
		return nil, source, err
	}
	return drinks, source, nil
}

type LikeService struct {
	repo   ports.LikeRepository
	logger *logrus.Logger
}

func NewLikeService(repo ports.LikeRepository, logger *logrus.Logger) ports.LikeService {
	return &LikeService{
		repo:   repo,
		logger: logger,
	}
}

// ToggleLike flips the (drink, session) like state and reports the new state
// with the drink's total count.
func (s *LikeService) ToggleLike(ctx context.Context, drinkID uuid.UUID, sessionID string) (*drink.LikeStatus, error) {
	liked, err := s.repo.Toggle(ctx, drinkID, sessionID)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"drink_id": drinkID, "session_id": sessionID}).WithError(err).Error("failed to toggle like")
		}
		return nil, err
	}

	count, err := s.repo.CountForDrink(ctx, drinkID)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"drink_id": drinkID, "liked": liked, "count": count}).Info("like toggled")
	}
	return &drink.LikeStatus{
		DrinkID:   drinkID,
		SessionID: sessionID,
		Liked:     liked,
		Count:     count,
	}, nil
}

func (s *LikeService) GetDrinkLikes(ctx context.Context, drinkID uuid.UUID) (int, error) {
	return s.repo.CountForDrink(ctx, drinkID)
}

func (s *LikeService) GetSessionLikes(ctx context.Context, sessionID string) ([]uuid.UUID, error) {
	return s.repo.ListForSession(ctx, sessionID)
}
