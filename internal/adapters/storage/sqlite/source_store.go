package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ferrivbe/home-infrastructure/internal/domain"
	"github.com/ferrivbe/home-infrastructure/internal/ports"
)

// sourceRow is the database shape of a source. Description is nullable.
type sourceRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Address     string         `db:"address"`
	Port        int            `db:"port"`
	Username    string         `db:"username"`
	Password    string         `db:"password"`
	Protocol    string         `db:"protocol"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func toRow(s *domain.Source) sourceRow {
	return sourceRow{
		ID:          s.ID,
		Name:        s.Name,
		Description: sql.NullString{String: s.Description, Valid: s.Description != ""},
		Address:     s.Address,
		Port:        s.Port,
		Username:    s.Username,
		Password:    s.Password,
		Protocol:    string(s.Protocol),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (r *sourceRow) toDomain() domain.Source {
	return domain.Source{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.String,
		Address:     r.Address,
		Port:        r.Port,
		Username:    r.Username,
		Password:    r.Password,
		Protocol:    domain.Protocol(r.Protocol),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Insert stores a new source row.
func (s *Store) Insert(ctx context.Context, source *domain.Source) error {
	row := toRow(source)
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO sources (id, name, description, address, port, username, password, protocol, created_at, updated_at)
		VALUES (:id, :name, :description, :address, :port, :username, :password, :protocol, :created_at, :updated_at)`,
		&row,
	)
	if err != nil {
		return fmt.Errorf("inserting source: %w", err)
	}
	return nil
}

// Get returns the source with the given id.
func (s *Store) Get(ctx context.Context, id string) (*domain.Source, error) {
	var row sourceRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM sources WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &ports.ErrSourceNotExists{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("fetching source: %w", err)
	}

	source := row.toDomain()
	return &source, nil
}

// List returns all sources ordered by creation time.
func (s *Store) List(ctx context.Context) ([]domain.Source, error) {
	var rows []sourceRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM sources ORDER BY created_at`); err != nil {
		return nil, fmt.Errorf("listing sources: %w", err)
	}

	sources := make([]domain.Source, len(rows))
	for i := range rows {
		sources[i] = rows[i].toDomain()
	}
	return sources, nil
}

// Update replaces the stored attributes of an existing source.
func (s *Store) Update(ctx context.Context, source *domain.Source) error {
	row := toRow(source)
	res, err := s.db.NamedExecContext(ctx, `
		UPDATE sources
		SET name = :name, description = :description, address = :address, port = :port,
		    username = :username, password = :password, protocol = :protocol, updated_at = :updated_at
		WHERE id = :id`,
		&row,
	)
	if err != nil {
		return fmt.Errorf("updating source: %w", err)
	}
	return s.requireRow(res, source.ID)
}

// Delete removes the source with the given id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting source: %w", err)
	}
	return s.requireRow(res, id)
}

// requireRow converts a zero-row write into the not-exists error.
func (s *Store) requireRow(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return &ports.ErrSourceNotExists{ID: id}
	}
	return nil
}
