// ============================================================================
// ippcode - IPPcode18 Werkzeugkette
// ============================================================================
//
// Package:     store
// Description: SQLite persistence for test runs
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	ippcerr "github.com/msto63/ippcode/foundation/core/error"
	"github.com/msto63/ippcode/internal/tester"
)

// RunSummary is a stored run without its results
type RunSummary struct {
	ID         string
	Directory  string
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Passed     int
}

// RunStore defines the interface for run persistence
type RunStore interface {
	SaveRun(ctx context.Context, run *tester.Run) error
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	GetRun(ctx context.Context, id string) (*tester.Run, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteStore implements RunStore using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/ippc-history.db",
	}
}

// Open creates or opens the history database
func Open(cfg Config) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, dbError(err, "create database directory")
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on")
	if err != nil {
		return nil, dbError(err, "open database")
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "initialize schema")
	}
	return s, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		directory TEXT NOT NULL,
		recursive INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS results (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		name TEXT NOT NULL,
		directory TEXT NOT NULL,
		expected_rc INTEGER NOT NULL,
		actual_rc INTEGER NOT NULL,
		passed INTEGER NOT NULL,
		failure TEXT,
		details TEXT,
		duration_ns INTEGER NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveRun stores a run with all its results
func (s *SQLiteStore) SaveRun(ctx context.Context, run *tester.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return dbError(err, "begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, directory, recursive, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.Directory, run.Recursive, run.StartedAt, run.FinishedAt)
	if err != nil {
		return dbError(err, "insert run")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (run_id, seq, name, directory, expected_rc, actual_rc, passed, failure, details, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return dbError(err, "prepare statement")
	}
	defer stmt.Close()

	for i, res := range run.Results {
		_, err := stmt.ExecContext(ctx, run.ID, i, res.Name, res.Directory, res.ExpectedRC,
			res.ActualRC, res.Passed, string(res.Failure), res.Details, int64(res.Duration))
		if err != nil {
			return dbError(err, "insert result")
		}
	}

	if err := tx.Commit(); err != nil {
		return dbError(err, "commit transaction")
	}
	return nil
}

// ListRuns returns the most recent runs first. A limit <= 0 lists all.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT r.id, r.directory, r.started_at, r.finished_at,
			COUNT(res.seq), COALESCE(SUM(res.passed), 0)
		FROM runs r
		LEFT JOIN results res ON res.run_id = r.id
		GROUP BY r.id
		ORDER BY r.started_at DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "query runs")
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Directory, &r.StartedAt, &r.FinishedAt, &r.Total, &r.Passed); err != nil {
			return nil, dbError(err, "scan run")
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "iterate runs")
	}
	return runs, nil
}

// GetRun loads one run with its results in run order
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*tester.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run := &tester.Run{ID: id}
	err := s.db.QueryRowContext(ctx, `
		SELECT directory, recursive, started_at, finished_at FROM runs WHERE id = ?
	`, id).Scan(&run.Directory, &run.Recursive, &run.StartedAt, &run.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ippcerr.Newf("run %s not found", id).
			WithCode(ippcerr.CodeNotFound).
			WithOperation("store.GetRun")
	}
	if err != nil {
		return nil, dbError(err, "query run")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, directory, expected_rc, actual_rc, passed, failure, details, duration_ns
		FROM results WHERE run_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return nil, dbError(err, "query results")
	}
	defer rows.Close()

	for rows.Next() {
		var res tester.Result
		var failure, details sql.NullString
		var duration int64
		if err := rows.Scan(&res.Name, &res.Directory, &res.ExpectedRC, &res.ActualRC,
			&res.Passed, &failure, &details, &duration); err != nil {
			return nil, dbError(err, "scan result")
		}
		res.Failure = tester.FailureKind(failure.String)
		res.Details = details.String
		res.Duration = time.Duration(duration)
		run.Add(res)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "iterate results")
	}
	return run, nil
}

// Prune removes runs started before now minus olderThan
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE started_at < ?", cutoff)
	if err != nil {
		return 0, dbError(err, "prune runs")
	}
	return result.RowsAffected()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func dbError(err error, op string) error {
	return ippcerr.Wrap(err, op).
		WithCode(ippcerr.CodeDatabaseError).
		WithOperation("store")
}
