package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nightcap/bar-directory-api/internal/core/domain/drink"
	"github.com/nightcap/bar-directory-api/internal/core/ports"
	"github.com/nightcap/bar-directory-api/internal/infrastructure/db"
)

// DrinkRepository implements the drink repository interface against Postgres.
type DrinkRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewDrinkRepository creates a new drink repository
func NewDrinkRepository(database *db.Database, logger *logrus.Logger) ports.DrinkRepository {
	return &DrinkRepository{
		db:     database,
		logger: logger,
	}
}

// ListAll retrieves every drink in the directory
func (r *DrinkRepository) ListAll(ctx context.Context) ([]drink.Drink, ports.Source, error) {
	drinks := []drink.Drink{}
	query := `
		SELECT id, bar_id, name, category, description, active, created_at, updated_at
		FROM drinks
		ORDER BY name ASC`

	if err := r.db.DB.SelectContext(ctx, &drinks, query); err != nil {
		return nil, ports.SourceLive, fmt.Errorf("failed to list drinks: %w", err)
	}

	return drinks, ports.SourceLive, nil
}

// ListActive retrieves drinks currently marked active
func (r *DrinkRepository) ListActive(ctx context.Context) ([]drink.Drink, ports.Source, error) {
	drinks := []drink.Drink{}
	query := `
		SELECT id, bar_id, name, category, description, active, created_at, updated_at
		FROM drinks
		WHERE active = TRUE
		ORDER BY name ASC`

	if err := r.db.DB.SelectContext(ctx, &drinks, query); err != nil {
		return nil, ports.SourceLive, fmt.Errorf("failed to list active drinks: %w", err)
	}

	return drinks, ports.SourceLive, nil
}

// LikeRepository implements per-(drink, session) like storage.
type LikeRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(database *db.Database, logger *logrus.Logger) ports.LikeRepository {
	return &LikeRepository{
		db:     database,
		logger: logger,
	}
}

// Toggle flips the like state for the pair inside a transaction. The unique
// (drink_id, session_id) constraint serializes concurrent toggles from the
// same session.
func (r *LikeRepository) Toggle(ctx context.Context, drinkID uuid.UUID, sessionID string) (bool, error) {
	tx, err := r.db.DB.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin toggle transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`DELETE FROM drink_likes WHERE drink_id = $1 AND session_id = $2`,
		drinkID, sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle like: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	liked := false
	if removed == 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO drink_likes (drink_id, session_id)
			 VALUES ($1, $2)
			 ON CONFLICT (drink_id, session_id) DO NOTHING`,
			drinkID, sessionID)
		if err != nil {
			return false, fmt.Errorf("failed to toggle like: %w", err)
		}
		liked = true
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit toggle: %w", err)
	}

	return liked, nil
}

// CountForDrink returns the total number of likes for a drink
func (r *LikeRepository) CountForDrink(ctx context.Context, drinkID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM drink_likes WHERE drink_id = $1`

	if err := r.db.DB.GetContext(ctx, &count, query, drinkID); err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	return count, nil
}

// ListForSession returns the drinks a session has liked, newest first
func (r *LikeRepository) ListForSession(ctx context.Context, sessionID string) ([]uuid.UUID, error) {
	drinkIDs := []uuid.UUID{}
	query := `
		SELECT drink_id FROM drink_likes
		WHERE session_id = $1
		ORDER BY created_at DESC`

	if err := r.db.DB.SelectContext(ctx, &drinkIDs, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to list session likes: %w", err)
	}

	return drinkIDs, nil
}
