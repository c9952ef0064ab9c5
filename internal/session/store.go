// Package session persists conversation logs across process restarts.
//
// One serialized log per session key. Corrupt or unreadable payloads load
// as an empty session; nothing here is ever fatal to the caller.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/joss/docchat/internal/domain"
	"github.com/joss/docchat/internal/logging"
)

// schemaVersion tags every saved payload. A mismatch on load is treated
// the same as corruption: the session starts empty.
const schemaVersion = 1

// Store is the durable key/value store for serialized conversation logs.
type Store struct {
	db   *sql.DB
	path string
	log  *logging.Logger
}

// Open opens (or creates) the session database at the given path.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, path: dbPath, log: logging.New("session")}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		key TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		turns_json TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the persisted turns for a key. A missing row, an
// unparseable payload or a version mismatch all yield an empty session.
func (s *Store) Load(ctx context.Context, key string) ([]domain.Turn, error) {
	var version int
	var turnsJSON string

	err := s.db.QueryRowContext(ctx, `
		SELECT version, turns_json FROM sessions WHERE key = ?
	`, key).Scan(&version, &turnsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if version != schemaVersion {
		s.log.Debug("session_version_mismatch", map[string]interface{}{
			"key": key, "stored": version, "want": schemaVersion,
		})
		return nil, nil
	}

	var turns []domain.Turn
	if err := json.Unmarshal([]byte(turnsJSON), &turns); err != nil {
		s.log.Debug("session_corrupt", map[string]interface{}{"key": key})
		return nil, nil
	}
	return turns, nil
}

// Save overwrites the stored session for a key. The write is a single
// upsert: callers either see the whole new log or the previous one.
func (s *Store) Save(ctx context.Context, key string, turns []domain.Turn) error {
	if turns == nil {
		turns = []domain.Turn{}
	}
	turnsJSON, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (key, version, turns_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			version = excluded.version,
			turns_json = excluded.turns_json,
			updated_at = excluded.updated_at
	`, key, schemaVersion, string(turnsJSON), time.Now())
	return err
}

// Clear removes the stored session for a key.
func (s *Store) Clear(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE key = ?`, key)
	return err
}
