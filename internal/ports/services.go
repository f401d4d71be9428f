package ports

import (
	"context"

	"github.com/ferrivbe/home-infrastructure/internal/domain"
)

// SourceService defines the service port for source entity operations.
// Implemented by the application layer; called by inbound adapters (handlers).
type SourceService interface {
	// CreateSource registers a new source and returns the created entity
	// with server-assigned fields (ID, timestamps).
	CreateSource(ctx context.Context, source *domain.Source) (*domain.Source, error)

	// GetSource returns a single source by ID.
	// Returns a SourceNotFound application error if the source does not exist.
	GetSource(ctx context.Context, id string) (*domain.Source, error)

	// ListSources returns all registered sources.
	ListSources(ctx context.Context) ([]domain.Source, error)

	// UpdateSource replaces an existing source's attributes and returns the
	// updated entity.
	// Returns a SourceNotFound application error if the source does not exist.
	UpdateSource(ctx context.Context, id string, source *domain.Source) (*domain.Source, error)

	// DeleteSource removes a source.
	// Returns a SourceNotFound application error if the source does not exist.
	DeleteSource(ctx context.Context, id string) error
}
