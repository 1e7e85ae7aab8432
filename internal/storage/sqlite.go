// Package storage provides SQLite-based persistence for tower sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// RunResult is one completed session as the store persists it.
type RunResult struct {
	ID             int64
	Height         int
	Score          int
	SurvivalMs     int64
	LongestChain   int
	TotalChains    int
	PerfectBounces int
	TotalBounces   int
	MagneticChains int
	CreatedAt      time.Time
}

// HighScoreRecord is the flat best-of record kept across sessions.
// GamesPlayed increments on every completed session; the best-* fields only
// move up.
type HighScoreRecord struct {
	BestHeight     int
	BestScore      int
	BestSurvivalMs int64
	BestCombo      int
	GamesPlayed    int
}

// NewRecords flags which fields of the record a run improved.
type NewRecords struct {
	Height   bool
	Score    bool
	Survival bool
	Combo    bool
}

// Any reports whether the run set at least one new record.
func (n NewRecords) Any() bool {
	return n.Height || n.Score || n.Survival || n.Combo
}

// MergeRecord folds a run into a record: field-wise maximum for the best-*
// fields, games played always incremented by one. Pure function so the merge
// semantics are testable without a database.
func MergeRecord(rec HighScoreRecord, run RunResult) (HighScoreRecord, NewRecords) {
	var flags NewRecords
	if run.Height > rec.BestHeight {
		rec.BestHeight = run.Height
		flags.Height = true
	}
	if run.Score > rec.BestScore {
		rec.BestScore = run.Score
		flags.Score = true
	}
	if run.SurvivalMs > rec.BestSurvivalMs {
		rec.BestSurvivalMs = run.SurvivalMs
		flags.Survival = true
	}
	if run.LongestChain > rec.BestCombo {
		rec.BestCombo = run.LongestChain
		flags.Combo = true
	}
	rec.GamesPlayed++
	return rec, flags
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

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
			height INTEGER NOT NULL,
			score INTEGER NOT NULL,
			survival_ms INTEGER NOT NULL,
			longest_chain INTEGER NOT NULL DEFAULT 0,
			total_chains INTEGER NOT NULL DEFAULT 0,
			perfect_bounces INTEGER NOT NULL DEFAULT 0,
			total_bounces INTEGER NOT NULL DEFAULT 0,
			magnetic_chains INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);

		CREATE TABLE IF NOT EXISTS high_scores (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			best_height INTEGER NOT NULL DEFAULT 0,
			best_score INTEGER NOT NULL DEFAULT 0,
			best_survival_ms INTEGER NOT NULL DEFAULT 0,
			best_combo INTEGER NOT NULL DEFAULT 0,
			games_played INTEGER NOT NULL DEFAULT 0
		);
		INSERT OR IGNORE INTO high_scores (id) VALUES (1);
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

// HighScore loads the persisted best record.
func (s *Store) HighScore() (HighScoreRecord, error) {
	var rec HighScoreRecord
	err := s.db.QueryRow(
		`SELECT best_height, best_score, best_survival_ms, best_combo, games_played
		 FROM high_scores WHERE id = 1`,
	).Scan(&rec.BestHeight, &rec.BestScore, &rec.BestSurvivalMs, &rec.BestCombo, &rec.GamesPlayed)
	if err != nil {
		return rec, fmt.Errorf("storage: cannot query high score record: %w", err)
	}
	return rec, nil
}

// RecordSession persists a completed run: the run goes into history and the
// best record is updated (field-wise max, games played +1). Returns the
// merged record and which fields the run improved.
func (s *Store) RecordSession(run RunResult) (HighScoreRecord, NewRecords, error) {
	var flags NewRecords

	tx, err := s.db.Begin()
	if err != nil {
		return HighScoreRecord{}, flags, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	var rec HighScoreRecord
	err = tx.QueryRow(
		`SELECT best_height, best_score, best_survival_ms, best_combo, games_played
		 FROM high_scores WHERE id = 1`,
	).Scan(&rec.BestHeight, &rec.BestScore, &rec.BestSurvivalMs, &rec.BestCombo, &rec.GamesPlayed)
	if err != nil {
		return rec, flags, fmt.Errorf("storage: cannot load record: %w", err)
	}

	rec, flags = MergeRecord(rec, run)

	_, err = tx.Exec(
		`UPDATE high_scores
		 SET best_height = ?, best_score = ?, best_survival_ms = ?, best_combo = ?, games_played = ?
		 WHERE id = 1`,
		rec.BestHeight, rec.BestScore, rec.BestSurvivalMs, rec.BestCombo, rec.GamesPlayed,
	)
	if err != nil {
		return rec, flags, fmt.Errorf("storage: cannot update record: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO runs
		 (height, score, survival_ms, longest_chain, total_chains, perfect_bounces, total_bounces, magnetic_chains)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Height, run.Score, run.SurvivalMs, run.LongestChain,
		run.TotalChains, run.PerfectBounces, run.TotalBounces, run.MagneticChains,
	)
	if err != nil {
		return rec, flags, fmt.Errorf("storage: cannot save run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return rec, flags, fmt.Errorf("storage: cannot commit: %w", err)
	}
	return rec, flags, nil
}

// TopRuns retrieves the best N runs ordered by score descending.
func (s *Store) TopRuns(limit int) ([]RunResult, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, height, score, survival_ms, longest_chain, total_chains,
		        perfect_bounces, total_bounces, magnetic_chains, created_at
		 FROM runs ORDER BY score DESC LIMIT ?`, limit)
}

// RecentRuns retrieves the most recent N runs.
func (s *Store) RecentRuns(limit int) ([]RunResult, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, height, score, survival_ms, longest_chain, total_chains,
		        perfect_bounces, total_bounces, magnetic_chains, created_at
		 FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

// queryRuns runs a query returning run rows.
func (s *Store) queryRuns(query string, args ...any) ([]RunResult, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var results []RunResult
	for rows.Next() {
		var r RunResult
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.Height, &r.Score, &r.SurvivalMs, &r.LongestChain,
			&r.TotalChains, &r.PerfectBounces, &r.TotalBounces, &r.MagneticChains,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ClearRuns deletes run history and resets the best record.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	_, err := s.db.Exec(
		`UPDATE high_scores SET best_height = 0, best_score = 0,
		 best_survival_ms = 0, best_combo = 0, games_played = 0 WHERE id = 1`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot reset record: %w", err)
	}
	return nil
}
