package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Storage keeps the history of search runs
type Storage struct {
	db *sql.DB
}

// NewStorage creates a new Storage instance, opening/creating the DB and initializing schema
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	storage := &Storage{db: db}

	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

// initSchema creates tables and indices if they don't exist
func (s *Storage) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_url TEXT NOT NULL,
		target_url TEXT NOT NULL,
		found INTEGER NOT NULL DEFAULT 0,
		hops INTEGER NOT NULL DEFAULT 0,
		explored INTEGER NOT NULL DEFAULT 0,
		max_hops INTEGER NOT NULL DEFAULT 0,
		termination_reason TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_steps (
		run_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		url TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
		PRIMARY KEY (run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_start ON runs(start_url);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// RecordRun stores a run and its path in one transaction.
// Returns the run_id and sets it on run.
func (s *Storage) RecordRun(run *Run) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO runs (start_url, target_url, found, hops, explored, max_hops,
			termination_reason, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.StartURL, run.TargetURL, run.Found, run.Hops, run.Explored, run.MaxHops,
		run.TerminationReason, run.StartedAt.UTC(), run.FinishedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve run_id: %w", err)
	}

	for i, url := range run.Path {
		if _, err := tx.Exec("INSERT INTO run_steps (run_id, position, url) VALUES (?, ?, ?)", runID, i, url); err != nil {
			return 0, fmt.Errorf("failed to insert run step %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	run.RunID = runID
	return runID, nil
}

// GetRun retrieves a run with its path, returns nil if not found
func (s *Storage) GetRun(runID int64) (*Run, error) {
	var run Run
	err := s.db.QueryRow(`
		SELECT run_id, start_url, target_url, found, hops, explored, max_hops,
			termination_reason, started_at, finished_at
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(&run.RunID, &run.StartURL, &run.TargetURL, &run.Found, &run.Hops, &run.Explored,
		&run.MaxHops, &run.TerminationReason, &run.StartedAt, &run.FinishedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if run.Path, err = s.loadPath(run.RunID); err != nil {
		return nil, err
	}
	return &run, nil
}

// RecentRuns returns up to limit runs, newest first
func (s *Storage) RecentRuns(limit int) ([]*Run, error) {
	rows, err := s.db.Query(`
		SELECT run_id, start_url, target_url, found, hops, explored, max_hops,
			termination_reason, started_at, finished_at
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.RunID, &run.StartURL, &run.TargetURL, &run.Found, &run.Hops, &run.Explored,
			&run.MaxHops, &run.TerminationReason, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	for _, run := range runs {
		if run.Path, err = s.loadPath(run.RunID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// loadPath returns the ordered path of a run
func (s *Storage) loadPath(runID int64) ([]string, error) {
	rows, err := s.db.Query("SELECT url FROM run_steps WHERE run_id = ? ORDER BY position ASC", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run steps: %w", err)
	}
	defer rows.Close()

	var path []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan run step: %w", err)
		}
		path = append(path, url)
	}
	return path, rows.Err()
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}
