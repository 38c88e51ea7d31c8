// Package storage provides SQLite-based persistence for player presets.
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

// Store manages the SQLite database connection for preset persistence.
type Store struct {
	db *sql.DB
}

// Preset is the customization saved for one side of the arena.
type Preset struct {
	Side      int // 0 = Player 1, 1 = Player 2
	Color     string
	MoveSpeed float64
	ShotSpeed float64
	UpdatedAt time.Time
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
		CREATE TABLE IF NOT EXISTS presets (
			side INTEGER PRIMARY KEY,
			color TEXT NOT NULL,
			move_speed REAL NOT NULL,
			shot_speed REAL NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
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

// SavePreset inserts or replaces the preset for p.Side.
func (s *Store) SavePreset(p Preset) error {
	if p.Side < 0 || p.Side > 1 {
		return fmt.Errorf("storage: invalid side %d", p.Side)
	}

	_, err := s.db.Exec(
		`INSERT INTO presets (side, color, move_speed, shot_speed, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(side) DO UPDATE SET
		   color = excluded.color,
		   move_speed = excluded.move_speed,
		   shot_speed = excluded.shot_speed,
		   updated_at = excluded.updated_at`,
		p.Side, p.Color, p.MoveSpeed, p.ShotSpeed,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save preset: %w", err)
	}
	return nil
}

// Preset returns the saved preset for side. The boolean is false when
// nothing has been saved.
func (s *Store) Preset(side int) (Preset, bool, error) {
	p := Preset{Side: side}
	var updatedAt any

	err := s.db.QueryRow(
		`SELECT color, move_speed, shot_speed, updated_at FROM presets WHERE side = ?`,
		side,
	).Scan(&p.Color, &p.MoveSpeed, &p.ShotSpeed, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, false, nil
	}
	if err != nil {
		return Preset{}, false, fmt.Errorf("storage: cannot query preset: %w", err)
	}

	p.UpdatedAt = parseTime(updatedAt)
	return p, true, nil
}

// Presets returns every saved preset ordered by side.
func (s *Store) Presets() ([]Preset, error) {
	rows, err := s.db.Query(
		`SELECT side, color, move_speed, shot_speed, updated_at
		 FROM presets
		 ORDER BY side`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query presets: %w", err)
	}
	defer rows.Close()

	var presets []Preset
	for rows.Next() {
		var p Preset
		var updatedAt any
		if err := rows.Scan(&p.Side, &p.Color, &p.MoveSpeed, &p.ShotSpeed, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.UpdatedAt = parseTime(updatedAt)
		presets = append(presets, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return presets, nil
}

// ClearPresets deletes all saved presets.
func (s *Store) ClearPresets() error {
	_, err := s.db.Exec("DELETE FROM presets")
	if err != nil {
		return fmt.Errorf("storage: cannot clear presets: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
