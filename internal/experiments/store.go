// Package experiments sweeps pipeline configurations over a dataset and
// persists each run to SQLite so settings can be compared across time.
package experiments

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id        TEXT PRIMARY KEY,
	started_at    TEXT NOT NULL,
	method        TEXT NOT NULL,
	backend       TEXT NOT NULL,
	threshold     REAL NOT NULL,
	top_k         INTEGER NOT NULL,
	cases         INTEGER NOT NULL,
	mean_coverage REAL NOT NULL,
	duration_ms   INTEGER NOT NULL,
	results_json  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// Run is one grid point evaluated over the whole dataset.
type Run struct {
	ID           string
	StartedAt    time.Time
	Method       string
	Backend      string
	Threshold    float64
	TopK         int
	Cases        int
	MeanCoverage float64
	Duration     time.Duration
	ResultsJSON  string
}

// Store persists experiment runs in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens the database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertRun records a completed run.
func (s *Store) InsertRun(run Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, started_at, method, backend, threshold, top_k, cases, mean_coverage, duration_ms, results_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.Format(time.RFC3339Nano), run.Method, run.Backend,
		run.Threshold, run.TopK, run.Cases, run.MeanCoverage,
		run.Duration.Milliseconds(), run.ResultsJSON,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// GetRun retrieves a single run by id.
func (s *Store) GetRun(id string) (Run, error) {
	row := s.db.QueryRow(
		`SELECT run_id, started_at, method, backend, threshold, top_k, cases, mean_coverage, duration_ms, results_json
		 FROM runs WHERE run_id = ?`, id,
	)
	run, err := scanRun(row)
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT run_id, started_at, method, backend, threshold, top_k, cases, mean_coverage, duration_ms, results_json
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var startedStr string
	var durationMS int64

	err := row.Scan(&run.ID, &startedStr, &run.Method, &run.Backend,
		&run.Threshold, &run.TopK, &run.Cases, &run.MeanCoverage,
		&durationMS, &run.ResultsJSON)
	if err != nil {
		return Run{}, err
	}

	run.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return run, nil
}
