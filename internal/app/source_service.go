// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ferrivbe/home-infrastructure/internal/domain"
	"github.com/ferrivbe/home-infrastructure/internal/ports"
)

// Compile-time check that SourceService implements ports.SourceService.
var _ ports.SourceService = (*SourceService)(nil)

// SourceService implements ports.SourceService on top of the repository port.
// It assigns identifiers and timestamps, translates repository misses into the
// typed not-found application error, and logs every failed operation.
type SourceService struct {
	repo   ports.SourceRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewSourceService creates a SourceService backed by the given repository.
// A nil logger is replaced with a no-op logger.
func NewSourceService(repo ports.SourceRepository, logger *slog.Logger) *SourceService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SourceService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// CreateSource registers a new source, assigning its id and timestamps.
func (s *SourceService) CreateSource(ctx context.Context, source *domain.Source) (*domain.Source, error) {
	created := *source
	created.ID = uuid.NewString()
	created.CreatedAt = s.now().UTC()
	created.UpdatedAt = created.CreatedAt

	if err := s.repo.Insert(ctx, &created); err != nil {
		s.logger.ErrorContext(ctx, "failed to create source",
			slog.String("operation", "CreateSource"),
			slog.String("source_name", source.Name),
			slog.Any("error", err),
		)
		return nil, s.translate(err)
	}

	return &created, nil
}

// GetSource returns a single source by id.
func (s *SourceService) GetSource(ctx context.Context, id string) (*domain.Source, error) {
	source, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch source",
			slog.String("operation", "GetSource"),
			slog.String("source_id", id),
			slog.Any("error", err),
		)
		return nil, s.translate(err)
	}
	return source, nil
}

// ListSources returns all registered sources.
func (s *SourceService) ListSources(ctx context.Context) ([]domain.Source, error) {
	sources, err := s.repo.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list sources",
			slog.String("operation", "ListSources"),
			slog.Any("error", err),
		)
		return nil, s.translate(err)
	}
	return sources, nil
}

// UpdateSource replaces the attributes of an existing source. The stored
// creation time is preserved; the update time is refreshed.
func (s *SourceService) UpdateSource(ctx context.Context, id string, source *domain.Source) (*domain.Source, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch source for update",
			slog.String("operation", "UpdateSource"),
			slog.String("source_id", id),
			slog.Any("error", err),
		)
		return nil, s.translate(err)
	}

	updated := *source
	updated.ID = id
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, &updated); err != nil {
		s.logger.ErrorContext(ctx, "failed to update source",
			slog.String("operation", "UpdateSource"),
			slog.String("source_id", id),
			slog.Any("error", err),
		)
		return nil, s.translate(err)
	}

	return &updated, nil
}

// DeleteSource removes a source by id.
func (s *SourceService) DeleteSource(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete source",
			slog.String("operation", "DeleteSource"),
			slog.String("source_id", id),
			slog.Any("error", err),
		)
		return s.translate(err)
	}
	return nil
}

// translate maps repository errors to typed application errors. A missing row
// becomes the 404 SourceNotFound error; anything else becomes a 424 failed
// dependency, since the store is the service's upstream collaborator.
func (s *SourceService) translate(err error) error {
	var notExists *ports.ErrSourceNotExists
	if errors.As(err, &notExists) {
		return domain.NewNotFoundError(
			"SourceNotFound",
			"The source does not exist.",
			notExists.Error(),
		)
	}
	return domain.NewFailedDependencyError(
		"SourceRepositoryError",
		"The source repository failed to process the request.",
		err.Error(),
	)
}
