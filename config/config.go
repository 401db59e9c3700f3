package config

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pevans/newspulse/headlines"
)

// ErrInvalidCategory is returned for category names outside the known set.
var ErrInvalidCategory = errors.New("unknown category")

const (
	keySelectedCategories = "selected_categories"
	keyDarkMode           = "dark_mode"
)

// PreferenceStore manages reader preferences using SQLite.
type PreferenceStore struct {
	db *sql.DB
}

// Preferences are the reader's settings.
type Preferences struct {
	SelectedCategories []string `json:"selected_categories"`
	DarkMode           bool     `json:"dark_mode"`
}

// DefaultPreferences returns the preferences of a new reader.
func DefaultPreferences() *Preferences {
	return &Preferences{
		SelectedCategories: []string{string(headlines.All)},
		DarkMode:           true,
	}
}

// NewPreferenceStore creates a new preference store with the given database
// path.
func NewPreferenceStore(dbPath string) (*PreferenceStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &PreferenceStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the config table if it doesn't exist.
func (p *PreferenceStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS config (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := p.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (p *PreferenceStore) Close() error {
	return p.db.Close()
}

// GetPreferences retrieves the stored preferences. Unset values take their
// defaults.
func (p *PreferenceStore) GetPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	value, ok, err := p.get(keySelectedCategories)
	if err != nil {
		return nil, err
	}
	if ok {
		var selected []string
		if err := json.Unmarshal([]byte(value), &selected); err != nil {
			return nil, fmt.Errorf("failed to decode selected categories: %w", err)
		}
		if len(selected) > 0 {
			prefs.SelectedCategories = selected
		}
	}

	value, ok, err = p.get(keyDarkMode)
	if err != nil {
		return nil, err
	}
	if ok {
		dark, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("failed to decode dark mode: %w", err)
		}
		prefs.DarkMode = dark
	}

	return prefs, nil
}

// UpdatePreferences replaces the stored preferences. An empty category
// selection is stored as "All".
func (p *PreferenceStore) UpdatePreferences(prefs *Preferences) error {
	selected := prefs.SelectedCategories
	if len(selected) == 0 {
		selected = []string{string(headlines.All)}
	}
	if err := ValidateCategories(selected); err != nil {
		return err
	}

	data, err := json.Marshal(selected)
	if err != nil {
		return fmt.Errorf("failed to encode selected categories: %w", err)
	}

	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "INSERT OR REPLACE INTO config (key, value) VALUES (?, ?)"
	if _, err := tx.Exec(query, keySelectedCategories, string(data)); err != nil {
		return fmt.Errorf("failed to update config: %w", err)
	}
	if _, err := tx.Exec(query, keyDarkMode, strconv.FormatBool(prefs.DarkMode)); err != nil {
		return fmt.Errorf("failed to update config: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to update config: %w", err)
	}
	return nil
}

func (p *PreferenceStore) get(key string) (string, bool, error) {
	var value string
	err := p.db.QueryRow("SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query config: %w", err)
	}
	return value, true, nil
}

// ValidateCategories checks every name against the known categories.
func ValidateCategories(names []string) error {
	for _, name := range names {
		if _, ok := headlines.ParseCategory(name); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidCategory, name)
		}
	}
	return nil
}

// ToggleCategory applies a category bar click to a selection. Choosing All
// resets the selection; choosing any other category drops All and toggles
// that category. An empty result falls back to All.
func ToggleCategory(selected []string, category string) []string {
	all := string(headlines.All)
	if category == all {
		return []string{all}
	}

	next := make([]string, 0, len(selected)+1)
	for _, c := range selected {
		if c != all && c != category {
			next = append(next, c)
		}
	}
	if !slices.Contains(selected, category) {
		next = append(next, category)
	}

	if len(next) == 0 {
		return []string{all}
	}
	return next
}
