// Package storage implements the planner's SQLite-backed store: the
// read-only war-event queries consumed by the conflict engine, and the
// plain CRUD surfaces for statuses, steam accounts, characters, events
// and recurring tasks.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/rs/zerolog/log"
)

// Event times are stored as RFC 3339 UTC strings so that string
// comparison in SQL matches chronological order.
const timeLayout = time.RFC3339

// Store wraps the SQLite database handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the planner database at path and
// applies the schema. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.applySchema(); err != nil {
		db.Close()
		return nil, err
	}

	log.Debug().Str("path", path).Msg("Opened planner database")
	return store, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) applySchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS steam_accounts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL UNIQUE,
			notes TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS characters (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			steam_account_id INTEGER REFERENCES steam_accounts(id),
			server_name TEXT,
			server_timezone TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS participation_statuses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			slug TEXT NOT NULL,
			color_bg TEXT,
			color_text TEXT,
			sort_order INTEGER NOT NULL DEFAULT 0,
			is_absent INTEGER NOT NULL DEFAULT 0,
			is_default INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_type TEXT NOT NULL,
			war_type TEXT,
			character_id INTEGER REFERENCES characters(id),
			server_name TEXT,
			event_time TEXT NOT NULL,
			timezone TEXT,
			participation_status TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_type_time ON events(event_type, event_time)`,
		`CREATE INDEX IF NOT EXISTS idx_events_character ON events(character_id)`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL,
			priority TEXT NOT NULL DEFAULT 'Medium',
			rewards TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS task_assignments (
			task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
			character_id INTEGER NOT NULL REFERENCES characters(id) ON DELETE CASCADE,
			assigned_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (task_id, character_id)
		)`,
		`CREATE TABLE IF NOT EXISTS task_completions (
			task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
			character_id INTEGER NOT NULL REFERENCES characters(id) ON DELETE CASCADE,
			reset_period TEXT NOT NULL,
			streak_count INTEGER NOT NULL DEFAULT 1,
			completed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (task_id, character_id, reset_period)
		)`,
	}

	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return s.seedDefaultStatuses()
}

// seedDefaultStatuses populates the participation status reference
// table on first run. Existing rows are left untouched.
func (s *Store) seedDefaultStatuses() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM participation_statuses`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count participation statuses: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		name      string
		slug      string
		sortOrder int
		isAbsent  bool
		isDefault bool
	}{
		{"Signed Up", "signed-up", 10, false, true},
		{"Confirmed", "confirmed", 20, false, true},
		{"Tentative", "tentative", 30, false, true},
		{"Declined", "declined", 40, true, true},
		{"Absent", "absent", 50, true, true},
	}

	for _, status := range defaults {
		_, err := s.db.Exec(
			`INSERT INTO participation_statuses (name, slug, sort_order, is_absent, is_default)
			 VALUES (?, ?, ?, ?, ?)`,
			status.name, status.slug, status.sortOrder, boolToInt(status.isAbsent), boolToInt(status.isDefault),
		)
		if err != nil {
			return fmt.Errorf("failed to seed participation status %q: %w", status.name, err)
		}
	}

	log.Debug().Int("count", len(defaults)).Msg("Seeded default participation statuses")
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored event time %q: %w", raw, err)
	}
	return t.UTC(), nil
}

func nullableID(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

func scanNullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
