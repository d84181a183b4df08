// Package store persists runs as JSON blobs keyed by run id, on SQLite or
// PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/lawnchairsociety/deepdelve/internal/logger"
	"github.com/lawnchairsociety/deepdelve/internal/run"
)

// ErrNotFound is returned when no run has the requested id.
var ErrNotFound = errors.New("run not found")

// Store is a run repository. A run must only be mutated by one caller at a
// time; Store does not lock runs.
type Store struct {
	db *sql.DB
	qb *QueryBuilder
}

// Summary is a lightweight listing row.
type Summary struct {
	ID        string
	Hero      string
	Floor     int
	Phase     run.Phase
	UpdatedAt time.Time
}

// Open connects to the configured database and applies the schema.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}
	dialect := NewDialect(DialectType(cfg.Driver))

	if DialectType(cfg.Driver) == DialectSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(dialect.DriverName(), cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if DialectType(cfg.Driver) == DialectPostgres {
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
	} else {
		// One writer keeps WAL pragmas and the file lock on one connection.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run %q: %w", stmt, err)
		}
	}

	s := &Store{db: db, qb: NewQueryBuilder(dialect)}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Run store opened", "driver", cfg.Driver)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			hero TEXT NOT NULL,
			floor INTEGER NOT NULL,
			phase TEXT NOT NULL,
			state TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_phase ON runs(phase)`,
	}

	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// Save inserts or replaces a run. A run without an id gets a new one.
func (s *Store) Save(ctx context.Context, st *run.State) error {
	if st == nil {
		return errors.New("save run: nil state")
	}
	now := time.Now().UTC()
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	if st.CreatedAt.IsZero() {
		st.CreatedAt = now
	}
	st.UpdatedAt = now

	data, err := run.Encode(st)
	if err != nil {
		return err
	}

	query := s.qb.Build(`
		INSERT INTO runs (id, hero, floor, phase, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			hero = excluded.hero,
			floor = excluded.floor,
			phase = excluded.phase,
			state = excluded.state,
			updated_at = excluded.updated_at
	`)
	_, err = s.db.ExecContext(ctx, query, st.ID, st.Hero, st.Floor, string(st.Phase), string(data), st.CreatedAt, st.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save run %s: %w", st.ID, err)
	}
	return nil
}

// Load reads a run by id.
func (s *Store) Load(ctx context.Context, id string) (*run.State, error) {
	var data string
	err := s.db.QueryRowContext(ctx, s.qb.Build(`SELECT state FROM runs WHERE id = ?`), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}

	st, err := run.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}
	st.ID = id
	return st, nil
}

// Delete removes a run.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.qb.Build(`DELETE FROM runs WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete run %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListActive returns every run that is not dead, most recently played first.
func (s *Store) ListActive(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, s.qb.Build(`
		SELECT id, hero, floor, phase, updated_at
		FROM runs
		WHERE phase <> ?
		ORDER BY updated_at DESC, id ASC
	`), string(run.PhaseDead))
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var phase string
		if err := rows.Scan(&sum.ID, &sum.Hero, &sum.Floor, &phase, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		sum.Phase = run.Phase(phase)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return out, nil
}
