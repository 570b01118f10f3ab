package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// Versioned storage keys. Bump the version when the encoded shape
// changes; old rows are simply ignored.
const (
	authStorageKey  = "auth:v1"
	columnWidthsKey = "products:columns:v1"
	viewStateKey    = "view:v1"
)

// clientStore is the durable client-side storage: a sqlite key/value
// table with JSON-encoded values. Invalidation hooks fire on every
// write so cached readers can drop their copy instead of watching
// module-level state.
type clientStore struct {
	db   *sql.DB
	path string

	mu         sync.Mutex
	invalidate []func(key string)
}

func openClientStore() (*clientStore, error) {
	dir := resolveConfigDir()
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return openClientStoreAt(filepath.Join(dir, "client.sqlite"))
}

func openClientStoreAt(sqlitePath string) (*clientStore, error) {
	db, err := sql.Open("sqlite", sqlitePath)
	if err != nil {
		return nil, err
	}
	if err := migrateClientStore(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &clientStore{db: db, path: sqlitePath}, nil
}

func migrateClientStore(db *sql.DB) error {
	statements := []string{
		`PRAGMA journal_mode=WAL;`,
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("client store migration failed: %w", err)
		}
	}
	return nil
}

func (s *clientStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// OnInvalidate registers a hook called with the key of every write.
func (s *clientStore) OnInvalidate(fn func(key string)) {
	if s == nil || fn == nil {
		return
	}
	s.mu.Lock()
	s.invalidate = append(s.invalidate, fn)
	s.mu.Unlock()
}

func (s *clientStore) notify(key string) {
	s.mu.Lock()
	hooks := make([]func(string), len(s.invalidate))
	copy(hooks, s.invalidate)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn(key)
	}
}

// Get decodes the stored value for key into out, reporting whether the
// key was present.
func (s *clientStore) Get(key string, out any) (bool, error) {
	if s == nil || s.db == nil {
		return false, nil
	}
	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

func (s *clientStore) Set(key string, value any) error {
	if s == nil || s.db == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw))
	if err != nil {
		return err
	}
	s.notify(key)
	return nil
}

func (s *clientStore) Delete(key string) error {
	if s == nil || s.db == nil {
		return nil
	}
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return err
	}
	s.notify(key)
	return nil
}
