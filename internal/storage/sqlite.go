// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
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

	"github.com/vovakirdan/tui-sweeper/internal/registry"
)

const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// ResultEntry is one stored game.
type ResultEntry struct {
	ID        int64
	GameUUID  string
	Preset    string
	Rows      int
	Cols      int
	Mines     int
	Won       bool
	Duration  time.Duration
	BBBV      int
	CreatedAt time.Time
}

// BBBVPerSecond returns the 3BV solved per second, or 0 when unknown.
func (e ResultEntry) BBBVPerSecond() float64 {
	if e.BBBV == 0 || e.Duration <= 0 {
		return 0
	}
	return float64(e.BBBV) / e.Duration.Seconds()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_uuid TEXT NOT NULL UNIQUE,
			preset TEXT NOT NULL,
			board_rows INTEGER NOT NULL,
			board_cols INTEGER NOT NULL,
			mines INTEGER NOT NULL,
			won INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			bbbv INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_preset ON results(preset);
		CREATE INDEX IF NOT EXISTS idx_results_best ON results(preset, won, duration_ms);
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

// SaveResult records a finished game and returns the UUID assigned to it.
func (s *Store) SaveResult(r registry.Result) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO results (game_uuid, preset, board_rows, board_cols, mines, won, duration_ms, bbbv)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.GameID, r.Rows, r.Cols, r.Mines, r.Won, r.Duration.Milliseconds(), r.BBBV,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}
	return id, nil
}

const resultColumns = `id, game_uuid, preset, board_rows, board_cols, mines, won, duration_ms, bbbv, created_at`

// BestTimes returns the fastest won games for the preset, quickest first.
func (s *Store) BestTimes(preset string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE preset = ? AND won = 1
		 ORDER BY duration_ms ASC, id ASC
		 LIMIT ?`,
		preset, limit,
	)
}

// RecentResults returns the latest games for the preset, won or lost,
// newest first.
func (s *Store) RecentResults(preset string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryResults(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE preset = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		preset, limit,
	)
}

func (s *Store) queryResults(query string, args ...any) ([]ResultEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameUUID, &e.Preset, &e.Rows, &e.Cols, &e.Mines,
			&e.Won, &durationMS, &e.BBBV, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// ClearResults deletes every stored game for the preset.
func (s *Store) ClearResults(preset string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE preset = ?", preset)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// PresetStats contains aggregated statistics for a preset.
type PresetStats struct {
	Preset     string
	Played     int
	Won        int
	BestTime   time.Duration // 0 when no game was won
	AvgTime    time.Duration // mean over won games
	LastPlayed time.Time
}

// WinRate returns the fraction of games won.
func (p PresetStats) WinRate() float64 {
	if p.Played == 0 {
		return 0
	}
	return float64(p.Won) / float64(p.Played)
}

const statsColumns = `COUNT(*),
	COALESCE(SUM(won), 0),
	MIN(CASE WHEN won = 1 THEN duration_ms END),
	AVG(CASE WHEN won = 1 THEN duration_ms END),
	MAX(created_at)`

type statsScanner interface {
	Scan(dest ...any) error
}

func scanStats(row statsScanner, st *PresetStats, prefix ...any) error {
	var best sql.NullInt64
	var avg sql.NullFloat64
	var lastPlayed any

	dest := append(prefix, &st.Played, &st.Won, &best, &avg, &lastPlayed)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	if best.Valid {
		st.BestTime = time.Duration(best.Int64) * time.Millisecond
	}
	if avg.Valid {
		st.AvgTime = time.Duration(avg.Float64 * float64(time.Millisecond))
	}
	st.LastPlayed = parseTime(lastPlayed)
	return nil
}

// Stats returns the aggregated statistics for one preset. A preset that
// was never played yields zero counts.
func (s *Store) Stats(preset string) (*PresetStats, error) {
	st := &PresetStats{Preset: preset}
	row := s.db.QueryRow(`SELECT `+statsColumns+` FROM results WHERE preset = ?`, preset)
	if err := scanStats(row, st); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	return st, nil
}

// AllStats returns statistics for every preset that has been played.
func (s *Store) AllStats() (map[string]*PresetStats, error) {
	rows, err := s.db.Query(`SELECT preset, ` + statsColumns + ` FROM results GROUP BY preset`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PresetStats)
	for rows.Next() {
		st := &PresetStats{}
		if err := scanStats(rows, st, &st.Preset); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats[st.Preset] = st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and text timestamps from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
