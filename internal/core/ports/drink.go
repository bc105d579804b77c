package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/nightcap/bar-directory-api/internal/core/domain/drink"
)

// DrinkRepository defines the interface for drink data operations
type DrinkRepository interface {
	ListAll(ctx context.Context) ([]drink.Drink, Source, error)
	ListActive(ctx context.Context) ([]drink.Drink, Source, error)
}

// LikeRepository stores per-(drink, session) like state. A pair is either
// liked (row present) or not liked (row absent); Toggle is the only transition.
type LikeRepository interface {
	// Toggle flips the like state and returns the resulting state.
	Toggle(ctx context.Context, drinkID uuid.UUID, sessionID string) (liked bool, err error)
	CountForDrink(ctx context.Context, drinkID uuid.UUID) (int, error)
	ListForSession(ctx context.Context, sessionID string) ([]uuid.UUID, error)
}

// DrinkService defines the interface for drink listing business logic
type DrinkService interface {
	ListDrinks(ctx context.Context, activeOnly bool) ([]drink.Drink, Source, error)
}

// LikeService defines the interface for like toggling and queries
type LikeService interface {
	ToggleLike(ctx context.Context, drinkID uuid.UUID, sessionID string) (*drink.LikeStatus, error)
	GetDrinkLikes(ctx context.Context, drinkID uuid.UUID) (int, error)
	GetSessionLikes(ctx context.Context, sessionID string) ([]uuid.UUID, error)
}
