// Package store persists lists, tasks, and the per-list position ordering
// on SQLite. It is the authoritative side of the system: the client cache
// reconciles against what lives here.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the database connection.
type Store struct {
	db *sql.DB
}

// Open creates a store at dbPath and initializes the schema. Pass
// ":memory:" for an ephemeral store (tests).
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS lists (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			is_default INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			UNIQUE (user_id, name)
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			list_id TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			is_completed INTEGER NOT NULL DEFAULT 0,
			is_important INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			completed_at DATETIME
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_list ON tasks(list_id);
		CREATE INDEX IF NOT EXISTS idx_tasks_important ON tasks(user_id, is_important);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_lists_default
			ON lists(user_id) WHERE is_default = 1;
	`
	_, err := s.db.Exec(schema)
	return err
}

// DefaultListName is the name given to the implicitly created default list.
const DefaultListName = "My Day"

// EnsureUser makes sure the user has a default list, creating one on the
// user's first touch. Account creation itself is external to this system.
func (s *Store) EnsureUser(ctx context.Context, userID string) error {
	// Concurrent first touches race to this insert; the loser conflicts
	// (on the default-list index, the name, or both) and must not fail
	// the request.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lists (id, user_id, name, is_default, created_at)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT DO NOTHING
	`, GenerateID(), userID, DefaultListName, time.Now().UTC())
	return err
}

// GenerateID returns a new opaque id.
func GenerateID() string {
	return uuid.NewString()
}
