package bookmarks

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// StorageKey is the key the bookmark list is stored under. It matches the
// key the web client used in localStorage.
const StorageKey = "bookmarkedNews"

// ErrEmptyID is returned when an empty article ID is bookmarked or removed.
var ErrEmptyID = errors.New("article id is required")

// Store persists bookmarked article IDs using SQLite. The list is kept as a
// JSON array of strings under StorageKey.
type Store struct {
	db *sql.DB

	// serializes read-modify-write updates of the list
	mu sync.Mutex
}

// NewStore creates a new bookmark store with the given database path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the local_storage table if it doesn't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS local_storage (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// List returns the bookmarked IDs in the order they were added.
func (s *Store) List() ([]string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM local_storage WHERE key = ?", StorageKey).Scan(&value)
	if err == sql.ErrNoRows {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}

	ids := []string{}
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return nil, fmt.Errorf("failed to decode bookmarks: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}

// Contains reports whether id is bookmarked.
func (s *Store) Contains(id string) (bool, error) {
	ids, err := s.List()
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, id), nil
}

// Add bookmarks id. Adding an existing bookmark is a no-op.
func (s *Store) Add(id string) error {
	if id == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.List()
	if err != nil {
		return err
	}
	if slices.Contains(ids, id) {
		return nil
	}

	return s.save(append(ids, id))
}

// Remove removes id from the bookmarks. Removing a missing bookmark is a
// no-op.
func (s *Store) Remove(id string) error {
	if id == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.List()
	if err != nil {
		return err
	}
	if !slices.Contains(ids, id) {
		return nil
	}

	return s.save(slices.DeleteFunc(ids, func(v string) bool { return v == id }))
}

// Toggle adds id when it isn't bookmarked and removes it otherwise. It
// returns whether id is bookmarked afterwards.
func (s *Store) Toggle(id string) (bool, error) {
	if id == "" {
		return false, ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.List()
	if err != nil {
		return false, err
	}

	if slices.Contains(ids, id) {
		ids = slices.DeleteFunc(ids, func(v string) bool { return v == id })
		return false, s.save(ids)
	}

	return true, s.save(append(ids, id))
}

// save replaces the stored list.
func (s *Store) save(ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode bookmarks: %w", err)
	}

	query := "INSERT OR REPLACE INTO local_storage (key, value) VALUES (?, ?)"
	if _, err := s.db.Exec(query, StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return nil
}
