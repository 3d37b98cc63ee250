// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists batch runs and their per-job results in SQLite
// so earlier outcomes can be listed after the console output is gone.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdftext/pkg/types"
)

const (
	dbFile     = "history.db"
	defaultDir = ".pdftext"

	// defaultLimit caps Recent when the caller passes n <= 0.
	defaultLimit = 20

	// timeLayout is fixed-width so started_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Run is one recorded batch execution.
type Run struct {
	ID        string
	StartedAt time.Time
	Provider  string
	Results   []types.Result
}

// NewRun starts a Run with a fresh ID and the current time.
func NewRun(provider string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Provider:  provider,
	}
}

// RunSummary is a run row with its outcome counts.
type RunSummary struct {
	ID        string
	StartedAt time.Time
	Provider  string
	Extracted int
	Missing   int
	Failed    int
}

// ResultRow is a stored job result. Err is flattened to Message.
type ResultRow struct {
	Seq     int
	Input   string
	Output  string
	Status  types.Status
	Kind    types.FailureKind
	Message string
	Pages   int
	Bytes   int
}

// ErrNoHistory is returned by OpenExisting when no database has been created.
var ErrNoHistory = errors.New("no runs recorded")

// Store manages the history SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates dir/history.db and its schema. An empty
// cfg.Dir uses ".pdftext".
func Open(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// OpenExisting opens the database only if a run has created it before. It
// never creates the directory or the file.
func OpenExisting(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}
	if _, err := os.Stat(filepath.Join(dir, dbFile)); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoHistory
		}
		return nil, fmt.Errorf("checking history database: %w", err)
	}
	return Open(cfg)
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			provider TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			input TEXT NOT NULL,
			output TEXT NOT NULL,
			status TEXT NOT NULL,
			kind TEXT,
			message TEXT,
			pages INTEGER,
			bytes INTEGER,
			PRIMARY KEY (run_id, seq)
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

// Record stores run and all of its results in one transaction.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run == nil || run.ID == "" {
		return errors.New("recording run: missing run ID")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, provider) VALUES (?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(timeLayout), run.Provider,
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO results (run_id, seq, input, output, status, kind, message, pages, bytes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, res := range run.Results {
		_, err := stmt.ExecContext(ctx,
			run.ID, i, res.Job.Input, res.Job.Output,
			string(res.Status), string(res.Kind), res.Message(),
			res.Pages, res.Bytes,
		)
		if err != nil {
			return fmt.Errorf("inserting result %d of run %s: %w", i, run.ID, err)
		}
	}

	return tx.Commit()
}

// Recent returns up to n runs, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]RunSummary, error) {
	if n <= 0 {
		n = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.started_at, r.provider,
			COALESCE(SUM(CASE WHEN x.status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN x.status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN x.status = ? THEN 1 ELSE 0 END), 0)
		 FROM runs r LEFT JOIN results x ON x.run_id = r.id
		 GROUP BY r.id
		 ORDER BY r.started_at DESC, r.rowid DESC
		 LIMIT ?`,
		string(types.StatusExtracted), string(types.StatusMissing), string(types.StatusFailed), n,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var rs RunSummary
		var started string
		if err := rows.Scan(&rs.ID, &started, &rs.Provider, &rs.Extracted, &rs.Missing, &rs.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rs.StartedAt, _ = time.Parse(timeLayout, started)
		out = append(out, rs)
	}
	return out, rows.Err()
}

// Results returns the stored results of run id in job order.
func (s *Store) Results(ctx context.Context, id string) ([]ResultRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, input, output, status, COALESCE(kind, ''), COALESCE(message, ''), pages, bytes
		 FROM results WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("querying results for run %s: %w", id, err)
	}
	defer rows.Close()

	var out []ResultRow
	for rows.Next() {
		var r ResultRow
		var status, kind string
		if err := rows.Scan(&r.Seq, &r.Input, &r.Output, &status, &kind, &r.Message, &r.Pages, &r.Bytes); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Status = types.Status(status)
		r.Kind = types.FailureKind(kind)
		out = append(out, r)
	}
	return out, rows.Err()
}
