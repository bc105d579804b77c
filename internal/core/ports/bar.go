package ports

import (
	"context"

	"github.com/nightcap/bar-directory-api/internal/core/domain/bar"
)

// BarRepository defines the interface for bar data operations. The Source
// return reports whether the list was served from cache or fetched live;
// plain datastore implementations always report SourceLive.
type BarRepository interface {
	ListAll(ctx context.Context) ([]bar.Bar, Source, error)
	ListActive(ctx context.Context) ([]bar.Bar, Source, error)
}

// BarService defines the interface for bar listing business logic
type BarService interface {
	ListBars(ctx context.Context, activeOnly bool) ([]bar.Bar, Source, error)
}

// CacheAdminService clears every entity cache behind the directory.
type CacheAdminService interface {
	Clear(ctx context.Context) error
}
