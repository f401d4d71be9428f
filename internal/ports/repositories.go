package ports

import (
	"context"

	"github.com/ferrivbe/home-infrastructure/internal/domain"
)

// ErrSourceNotExists is returned by repositories when the requested source id
// has no row. The application layer translates it into the typed 404 error.
type ErrSourceNotExists struct{ ID string }

func (e *ErrSourceNotExists) Error() string {
	return "source " + e.ID + " does not exist"
}

// SourceRepository defines the persistence port for source entities.
// Implemented by storage adapters; called by the application layer.
type SourceRepository interface {
	// Insert stores a new source row.
	Insert(ctx context.Context, source *domain.Source) error

	// Get returns the source with the given id, or *ErrSourceNotExists.
	Get(ctx context.Context, id string) (*domain.Source, error)

	// List returns all sources ordered by creation time.
	List(ctx context.Context) ([]domain.Source, error)

	// Update replaces the stored attributes of an existing source, or returns
	// *ErrSourceNotExists.
	Update(ctx context.Context, source *domain.Source) error

	// Delete removes the source with the given id, or returns
	// *ErrSourceNotExists.
	Delete(ctx context.Context, id string) error
}
