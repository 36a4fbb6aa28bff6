// Package storage provides SQLite-based persistence for the run journal:
// each finished game's seed, settings and heading inputs, enough to replay it.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrRunNotFound is returned when a run ID has no record.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// RunSettings are the board parameters a run was played with.
type RunSettings struct {
	GridW       int
	GridH       int
	OriginX     int
	OriginY     int
	Heading     string
	TickMS      int
	FoodRetries int
}

// RunInput is one heading request, tagged with the step it arrived before.
type RunInput struct {
	Step    int
	Heading string
}

// Run is a single recorded game.
type Run struct {
	ID        int64
	Seed      int64
	Settings  RunSettings
	Score     int
	Cause     string
	Steps     int
	StartedAt time.Time
	EndedAt   time.Time
	Inputs    []RunInput // Only filled by Run, not by RecentRuns
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			grid_w INTEGER NOT NULL,
			grid_h INTEGER NOT NULL,
			origin_x INTEGER NOT NULL,
			origin_y INTEGER NOT NULL,
			heading TEXT NOT NULL,
			tick_ms INTEGER NOT NULL,
			food_retries INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			cause TEXT NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS run_inputs (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			step INTEGER NOT NULL,
			heading TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished game and its inputs in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(run Run) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	st := run.Settings
	result, err := tx.Exec(
		`INSERT INTO runs
		 (seed, grid_w, grid_h, origin_x, origin_y, heading, tick_ms, food_retries,
		  score, cause, steps, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Seed, st.GridW, st.GridH, st.OriginX, st.OriginY, st.Heading, st.TickMS, st.FoodRetries,
		run.Score, run.Cause, run.Steps, run.StartedAt.UnixMilli(), run.EndedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for i, in := range run.Inputs {
		if _, err := tx.Exec(
			"INSERT INTO run_inputs (run_id, seq, step, heading) VALUES (?, ?, ?, ?)",
			id, i, in.Step, in.Heading,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save run input: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

const runColumns = `id, seed, grid_w, grid_h, origin_x, origin_y, heading, tick_ms, food_retries,
		        score, cause, steps, started_at, ended_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var started, ended int64
	err := row.Scan(
		&r.ID,
		&r.Seed,
		&r.Settings.GridW,
		&r.Settings.GridH,
		&r.Settings.OriginX,
		&r.Settings.OriginY,
		&r.Settings.Heading,
		&r.Settings.TickMS,
		&r.Settings.FoodRetries,
		&r.Score,
		&r.Cause,
		&r.Steps,
		&started,
		&ended,
	)
	if err != nil {
		return Run{}, err
	}
	r.StartedAt = time.UnixMilli(started)
	r.EndedAt = time.UnixMilli(ended)
	return r, nil
}

// Run retrieves a run and its inputs by ID.
func (s *Store) Run(id int64) (*Run, error) {
	run, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT step, heading FROM run_inputs WHERE run_id = ? ORDER BY seq",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run inputs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var in RunInput
		if err := rows.Scan(&in.Step, &in.Heading); err != nil {
			return nil, fmt.Errorf("storage: cannot scan input row: %w", err)
		}
		run.Inputs = append(run.Inputs, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &run, nil
}

// RecentRuns retrieves the most recent runs, newest first, without inputs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// CountRuns returns the number of recorded runs.
func (s *Store) CountRuns() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// ClearRuns deletes every recorded run and its inputs.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM run_inputs"); err != nil {
		return fmt.Errorf("storage: cannot clear run inputs: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
