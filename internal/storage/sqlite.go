// Package storage provides SQLite-based persistence for game progress:
// the key/value flags the world reads (hints read, pressure plates,
// dialogue progress), the hero inventory and save slots.
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
)

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// SaveSlot is one saved position of the hero.
type SaveSlot struct {
	ID        string
	WorldID   uint32
	HeroX     int
	HeroY     int
	CreatedAt time.Time
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv_values (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS inventory (
			slot INTEGER PRIMARY KEY AUTOINCREMENT,
			species_id INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS save_slots (
			id TEXT PRIMARY KEY,
			world_id INTEGER NOT NULL,
			hero_x INTEGER NOT NULL,
			hero_y INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_save_slots_created ON save_slots(created_at DESC);
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

// SetValue stores value under key, replacing any previous value.
func (s *Store) SetValue(key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO kv_values (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot set value %s: %w", key, err)
	}
	return nil
}

// Value returns the value stored under key.
// The boolean is false when the key was never set.
func (s *Store) Value(key string) (int, bool, error) {
	var value int
	err := s.db.QueryRow("SELECT value FROM kv_values WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query value %s: %w", key, err)
	}
	return value, true, nil
}

// AllValues returns every stored key/value pair.
func (s *Store) AllValues() (map[string]int, error) {
	rows, err := s.db.Query("SELECT key, value FROM kv_values ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query values: %w", err)
	}
	defer rows.Close()

	values := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return values, nil
}

// SetValues stores every pair in one transaction.
func (s *Store) SetValues(values map[string]int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	for key, value := range values {
		_, err := tx.Exec(
			`INSERT INTO kv_values (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
			key, value,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot set value %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit values: %w", err)
	}
	return nil
}

// ReplaceInventory overwrites the stored inventory with items, in order.
func (s *Store) ReplaceInventory(items []uint32) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	if _, err := tx.Exec("DELETE FROM inventory"); err != nil {
		return fmt.Errorf("storage: cannot clear inventory: %w", err)
	}
	for _, id := range items {
		if _, err := tx.Exec("INSERT INTO inventory (species_id) VALUES (?)", id); err != nil {
			return fmt.Errorf("storage: cannot save inventory item %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit inventory: %w", err)
	}
	return nil
}

// LoadInventory returns the stored inventory in insertion order.
func (s *Store) LoadInventory() ([]uint32, error) {
	rows, err := s.db.Query("SELECT species_id FROM inventory ORDER BY slot")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inventory: %w", err)
	}
	defer rows.Close()

	var items []uint32
	for rows.Next() {
		var id uint32
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		items = append(items, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return items, nil
}

// SaveSlot records the hero position and returns the new slot id.
func (s *Store) SaveSlot(worldID uint32, heroX, heroY int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO save_slots (id, world_id, hero_x, hero_y, created_at) VALUES (?, ?, ?, ?, ?)",
		id, worldID, heroX, heroY, time.Now().UTC().Format("2006-01-02 15:04:05.000"),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save slot: %w", err)
	}
	return id, nil
}

// LatestSlot returns the most recent save slot.
// The boolean is false when nothing was saved yet.
func (s *Store) LatestSlot() (SaveSlot, bool, error) {
	var slot SaveSlot
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, world_id, hero_x, hero_y, created_at
		 FROM save_slots
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT 1`,
	).Scan(&slot.ID, &slot.WorldID, &slot.HeroX, &slot.HeroY, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return SaveSlot{}, false, nil
	}
	if err != nil {
		return SaveSlot{}, false, fmt.Errorf("storage: cannot query save slot: %w", err)
	}

	slot.CreatedAt = parseTimestamp(createdAt)
	return slot, true, nil
}

// parseTimestamp handles both time.Time and string datetimes.
func parseTimestamp(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05.000", "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
