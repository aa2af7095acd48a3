// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists pipeline run records in a local SQLite
// database so past conversions and their validation outcomes can be
// reviewed and pruned.
// Implements: prd005-run-history (R1-R4);
//
//	docs/ARCHITECTURE § Run History.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/latex2pdfa/pkg/types"
)

const dbFile = "history.db"

// Store manages the run history SQLite database.
type Store struct {
	db      *sql.DB
	maxRuns int
}

// DefaultDir returns the default history database directory.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "latex2pdfa"), nil
}

// NewStore opens or creates the history database in cfg.Dir (or the
// default directory) and creates the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db, maxRuns: cfg.MaxRuns}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			tex_file TEXT NOT NULL,
			profile TEXT NOT NULL,
			output_path TEXT,
			succeeded INTEGER NOT NULL,
			failed_step TEXT,
			verify TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts a run record and returns its row ID. When the store has
// a retention cap, older records beyond the cap are pruned.
func (s *Store) Record(ctx context.Context, rec types.RunRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, duration_ms, tex_file, profile, output_path, succeeded, failed_step, verify)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.Duration.Milliseconds(),
		rec.TexFile, rec.Profile, rec.OutputPath,
		rec.Succeeded, rec.FailedStep, string(rec.Verify),
	)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	if s.maxRuns > 0 {
		if _, err := s.Prune(ctx, s.maxRuns); err != nil {
			return id, fmt.Errorf("pruning history: %w", err)
		}
	}
	return id, nil
}

// List returns the most recent run records, newest first. limit <= 0
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]types.RunRecord, error) {
	query := `SELECT id, started_at, duration_ms, tex_file, profile, output_path, succeeded, failed_step, verify
		 FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []types.RunRecord
	for rows.Next() {
		var rec types.RunRecord
		var startedAt string
		var durationMS int64
		var verify string
		if err := rows.Scan(&rec.ID, &startedAt, &durationMS, &rec.TexFile,
			&rec.Profile, &rec.OutputPath, &rec.Succeeded, &rec.FailedStep, &verify); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing run timestamp %q: %w", startedAt, err)
		}
		rec.StartedAt = ts
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.Verify = types.VerifyStatus(verify)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Prune deletes all but the newest keep records and returns how many
// were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned runs: %w", err)
	}
	return int(n), nil
}
