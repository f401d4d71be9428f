// Package sqlite provides the SQLite-backed source repository using the
// modernc.org/sqlite driver through sqlx.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ferrivbe/home-infrastructure/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.SourceRepository = (*Store)(nil)
	_ ports.HealthChecker    = (*Store)(nil)
)

const schema = `
CREATE TABLE IF NOT EXISTS sources (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	address TEXT NOT NULL,
	port INTEGER NOT NULL,
	username TEXT NOT NULL,
	password TEXT NOT NULL,
	protocol TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// Store is a SQLite implementation of ports.SourceRepository. It owns the
// database handle and creates the schema on open.
type Store struct {
	db *sqlx.DB
}

// New opens (creating if necessary) the SQLite database at path and ensures
// the schema exists.
func New(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Name identifies this store in health check results.
func (s *Store) Name() string {
	return "database"
}

// HealthCheck pings the database. Used by the health endpoint's readiness
// probe through the health registry.
func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.db.PingContext(ctx)
}
