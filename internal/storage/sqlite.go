// Package storage provides SQLite-based persistence for leaderboards and
// run history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/blockfall/internal/engine"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run records one finished game.
type Run struct {
	ID        string // UUID, assigned by SaveRun when empty
	Mode      string
	Player    string
	Points    int
	Lines     int
	Level     int
	Duration  time.Duration
	EndReason string // "topout", "cleared", "quit"
	CreatedAt time.Time
}

// End reasons recorded with a run.
const (
	EndTopOut  = "topout"
	EndCleared = "cleared"
	EndQuit    = "quit"
)

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
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			points INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(mode, points DESC);
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

// GetItem returns the value stored under key. ok is false when the key
// has never been written.
func (s *Store) GetItem(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %q: %w", key, err)
	}
	return value, true, nil
}

// SetItem stores value under key, replacing any previous value.
func (s *Store) SetItem(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %q: %w", key, err)
	}
	return nil
}

// Ensure Store can back a leaderboard directly.
var _ engine.Store = (*Store)(nil)

// Bucket is a key-prefixed view of a Store, so each game mode keeps its
// own leaderboard under the same key.
type Bucket struct {
	store  *Store
	prefix string
}

// Bucket returns a view whose keys are prefixed with name and a slash.
func (s *Store) Bucket(name string) *Bucket {
	return &Bucket{store: s, prefix: name + "/"}
}

// GetItem reads key inside the bucket.
func (b *Bucket) GetItem(key string) (string, bool, error) {
	return b.store.GetItem(b.prefix + key)
}

// SetItem writes key inside the bucket.
func (b *Bucket) SetItem(key, value string) error {
	return b.store.SetItem(b.prefix+key, value)
}

var _ engine.Store = (*Bucket)(nil)

// SaveRun records a finished game. Returns the ID of the inserted record.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, mode, player, points, lines, level, duration_ms, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Mode,
		run.Player,
		run.Points,
		run.Lines,
		run.Level,
		run.Duration.Milliseconds(),
		run.EndReason,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, mode, player, points, lines, level, duration_ms, end_reason, created_at
		 FROM runs WHERE id = ?`,
		id,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// RecentRuns retrieves the most recent runs for a mode, newest first.
// An empty mode matches every mode.
func (s *Store) RecentRuns(mode string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, mode, player, points, lines, level, duration_ms, end_reason, created_at
		 FROM runs
		 WHERE ? = '' OR mode = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		mode, mode, limit,
	)
}

// TopRuns retrieves the best runs for a mode by points.
func (s *Store) TopRuns(mode string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, mode, player, points, lines, level, duration_ms, end_reason, created_at
		 FROM runs
		 WHERE mode = ?
		 ORDER BY points DESC, lines DESC
		 LIMIT ?`,
		mode, limit,
	)
}

// FastestRuns retrieves the quickest completed runs for a mode, used by
// the sprint mode where time matters more than points.
func (s *Store) FastestRuns(mode string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, mode, player, points, lines, level, duration_ms, end_reason, created_at
		 FROM runs
		 WHERE mode = ? AND end_reason = ?
		 ORDER BY duration_ms ASC
		 LIMIT ?`,
		mode, EndCleared, limit,
	)
}

// ClearRuns deletes all runs for the given mode.
func (s *Store) ClearRuns(mode string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var run Run
	var durationMs int64
	var createdAt any
	if err := sc.Scan(
		&run.ID,
		&run.Mode,
		&run.Player,
		&run.Points,
		&run.Lines,
		&run.Level,
		&durationMs,
		&run.EndReason,
		&createdAt,
	); err != nil {
		return run, err
	}
	run.Duration = time.Duration(durationMs) * time.Millisecond
	run.CreatedAt = parseTimestamp(createdAt)
	return run, nil
}

// parseTimestamp handles both time.Time and string datetime columns.
func parseTimestamp(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ModeStats contains aggregated statistics for a game mode.
type ModeStats struct {
	Mode       string
	RunsCount  int
	HighScore  int
	AvgScore   float64
	TotalLines int64
	LastPlayed time.Time
}

// GetModeStats retrieves aggregated statistics for a specific mode.
func (s *Store) GetModeStats(mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(points), 0), COALESCE(AVG(points), 0), COALESCE(SUM(lines), 0), MAX(created_at)
		 FROM runs WHERE mode = ?`,
		mode,
	).Scan(&stats.RunsCount, &stats.HighScore, &stats.AvgScore, &stats.TotalLines, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)

	return stats, nil
}

// GetAllModesStats retrieves statistics for all modes that have been played.
func (s *Store) GetAllModesStats() (map[string]*ModeStats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), MAX(points), AVG(points), SUM(lines), MAX(created_at)
		 FROM runs
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all modes stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var ms ModeStats
		var lastPlayed any
		if err := rows.Scan(&ms.Mode, &ms.RunsCount, &ms.HighScore, &ms.AvgScore, &ms.TotalLines, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ms.LastPlayed = parseTimestamp(lastPlayed)
		stats[ms.Mode] = &ms
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
