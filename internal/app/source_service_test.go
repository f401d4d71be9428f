package app

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ferrivbe/home-infrastructure/internal/domain"
	"github.com/ferrivbe/home-infrastructure/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// fakeRepo is a configurable in-memory ports.SourceRepository.
type fakeRepo struct {
	sources   map[string]domain.Source
	insertErr error
	getErr    error
	listErr   error
	updateErr error
	deleteErr error

	inserted *domain.Source
	updated  *domain.Source
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sources: make(map[string]domain.Source)}
}

func (f *fakeRepo) Insert(_ context.Context, s *domain.Source) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = s
	f.sources[s.ID] = *s
	return nil
}

func (f *fakeRepo) Get(_ context.Context, id string) (*domain.Source, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.sources[id]
	if !ok {
		return nil, &ports.ErrSourceNotExists{ID: id}
	}
	return &s, nil
}

func (f *fakeRepo) List(_ context.Context) ([]domain.Source, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Source, 0, len(f.sources))
	for _, s := range f.sources {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, s *domain.Source) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.sources[s.ID]; !ok {
		return &ports.ErrSourceNotExists{ID: s.ID}
	}
	f.updated = s
	f.sources[s.ID] = *s
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.sources[id]; !ok {
		return &ports.ErrSourceNotExists{ID: id}
	}
	delete(f.sources, id)
	return nil
}

func validSource() *domain.Source {
	return &domain.Source{
		Name:     "garage-cam",
		Address:  "10.0.0.5",
		Port:     554,
		Username: "camera@example.com",
		Password: "Str0ng-pass!",
		Protocol: domain.ProtocolRTSP,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewSourceService_NilLogger(t *testing.T) {
	t.Parallel()

	svc := NewSourceService(newFakeRepo(), nil)
	if svc.logger == nil {
		t.Fatal("NewSourceService(nil logger) should create a no-op logger, got nil")
	}
}

func TestSourceService_CreateSource(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := NewSourceService(repo, discardLogger())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	created, err := svc.CreateSource(context.Background(), validSource())
	if err != nil {
		t.Fatalf("CreateSource error = %v", err)
	}

	if created.ID == "" {
		t.Error("created source has no id")
	}
	if !created.CreatedAt.Equal(now) || !created.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v/%v, want %v", created.CreatedAt, created.UpdatedAt, now)
	}
	if repo.inserted == nil || repo.inserted.ID != created.ID {
		t.Error("created source not persisted")
	}
}

func TestSourceService_CreateSource_RepoFailure(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.insertErr = errors.New("disk full")
	svc := NewSourceService(repo, discardLogger())

	_, err := svc.CreateSource(context.Background(), validSource())

	var appErr *domain.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error = %T, want *domain.Error", err)
	}
	if appErr.Status != 424 || appErr.Code != "SourceRepositoryError" {
		t.Errorf("error = %d %s, want 424 SourceRepositoryError", appErr.Status, appErr.Code)
	}
}

func TestSourceService_GetSource_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewSourceService(newFakeRepo(), discardLogger())

	_, err := svc.GetSource(context.Background(), "missing")

	var appErr *domain.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error = %T, want *domain.Error", err)
	}
	if appErr.Status != 404 || appErr.Code != "SourceNotFound" {
		t.Errorf("error = %d %s, want 404 SourceNotFound", appErr.Status, appErr.Code)
	}
	if appErr.Message != "The source does not exist." {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestSourceService_GetSource(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := NewSourceService(repo, discardLogger())

	created, err := svc.CreateSource(context.Background(), validSource())
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.GetSource(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetSource error = %v", err)
	}
	if got.Name != "garage-cam" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestSourceService_ListSources(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := NewSourceService(repo, discardLogger())

	for range 3 {
		if _, err := svc.CreateSource(context.Background(), validSource()); err != nil {
			t.Fatal(err)
		}
	}

	sources, err := svc.ListSources(context.Background())
	if err != nil {
		t.Fatalf("ListSources error = %v", err)
	}
	if len(sources) != 3 {
		t.Errorf("len = %d, want 3", len(sources))
	}
}

func TestSourceService_UpdateSource(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := NewSourceService(repo, discardLogger())

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(createdAt)

	created, err := svc.CreateSource(context.Background(), validSource())
	if err != nil {
		t.Fatal(err)
	}

	updatedAt := createdAt.Add(time.Hour)
	svc.now = fixedClock(updatedAt)

	replacement := validSource()
	replacement.Name = "driveway-cam"

	updated, err := svc.UpdateSource(context.Background(), created.ID, replacement)
	if err != nil {
		t.Fatalf("UpdateSource error = %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("id changed: %q -> %q", created.ID, updated.ID)
	}
	if updated.Name != "driveway-cam" {
		t.Errorf("name = %q", updated.Name)
	}
	if !updated.CreatedAt.Equal(createdAt) {
		t.Errorf("created_at = %v, want preserved %v", updated.CreatedAt, createdAt)
	}
	if !updated.UpdatedAt.Equal(updatedAt) {
		t.Errorf("updated_at = %v, want refreshed %v", updated.UpdatedAt, updatedAt)
	}
}

func TestSourceService_UpdateSource_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewSourceService(newFakeRepo(), discardLogger())

	_, err := svc.UpdateSource(context.Background(), "missing", validSource())

	var appErr *domain.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error = %T, want *domain.Error", err)
	}
	if appErr.Code != "SourceNotFound" {
		t.Errorf("code = %q, want SourceNotFound", appErr.Code)
	}
}

func TestSourceService_DeleteSource(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := NewSourceService(repo, discardLogger())

	created, err := svc.CreateSource(context.Background(), validSource())
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteSource(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteSource error = %v", err)
	}

	if _, err := svc.GetSource(context.Background(), created.ID); err == nil {
		t.Error("source still present after delete")
	}
}

func TestSourceService_DeleteSource_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewSourceService(newFakeRepo(), discardLogger())

	err := svc.DeleteSource(context.Background(), "missing")

	var appErr *domain.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("error = %T, want *domain.Error", err)
	}
	if appErr.Status != 404 {
		t.Errorf("status = %d, want 404", appErr.Status)
	}
}
