package repositories

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nightcap/bar-directory-api/internal/core/domain/bar"
	"github.com/nightcap/bar-directory-api/internal/core/ports"
	"github.com/nightcap/bar-directory-api/internal/infrastructure/db"
)

// BarRepository implements the bar repository interface against Postgres.
// It always reports SourceLive; caching is layered on by a decorator.
type BarRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewBarRepository creates a new bar repository
func NewBarRepository(database *db.Database, logger *logrus.Logger) ports.BarRepository {
	return &BarRepository{
		db:     database,
		logger: logger,
	}
}

// ListAll retrieves every bar in the directory
func (r *BarRepository) ListAll(ctx context.Context) ([]bar.Bar, ports.Source, error) {
	bars := []bar.Bar{}
	query := `
		SELECT id, name, neighborhood, address, website, happy_hour, active, created_at, updated_at
		FROM bars
		ORDER BY name ASC`

	if err := r.db.DB.SelectContext(ctx, &bars, query); err != nil {
		return nil, ports.SourceLive, fmt.Errorf("failed to list bars: %w", err)
	}

	return bars, ports.SourceLive, nil
}

// ListActive retrieves bars currently marked active
func (r *BarRepository) ListActive(ctx context.Context) ([]bar.Bar, ports.Source, error) {
	bars := []bar.Bar{}
	query := `
		SELECT id, name, neighborhood, address, website, happy_hour, active, created_at, updated_at
		FROM bars
		WHERE active = TRUE
		ORDER BY name ASC`

	if err := r.db.DB.SelectContext(ctx, &bars, query); err != nil {
		return nil, ports.SourceLive, fmt.Errorf("failed to list active bars: %w", err)
	}

	return bars, ports.SourceLive, nil
}
