package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: create a test preference store
func createTestPreferenceStore(t *testing.T) *PreferenceStore {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")
	store, err := NewPreferenceStore(dbPath)
	require.NoError(t, err, "should create preference store")
	t.Cleanup(func() { store.Close() })
	return store
}

// TestGetPreferences_Default verifies defaults are returned when not set
func TestGetPreferences_Default(t *testing.T) {
	store := createTestPreferenceStore(t)

	prefs, err := store.GetPreferences()
	require.NoError(t, err)
	require.NotNil(t, prefs)
	assert.Equal(t, []string{"All"}, prefs.SelectedCategories)
	assert.True(t, prefs.DarkMode, "dark mode should be on by default")
}

// TestUpdatePreferences_Success verifies updating preferences
func TestUpdatePreferences_Success(t *testing.T) {
	store := createTestPreferenceStore(t)

	err := store.UpdatePreferences(&Preferences{
		SelectedCategories: []string{"Health", "Sports"},
		DarkMode:           false,
	})
	require.NoError(t, err)

	retrieved, err := store.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, []string{"Health", "Sports"}, retrieved.SelectedCategories)
	assert.False(t, retrieved.DarkMode)
}

// TestUpdatePreferences_Overwrites verifies updating replaces old values
func TestUpdatePreferences_Overwrites(t *testing.T) {
	store := createTestPreferenceStore(t)

	require.NoError(t, store.UpdatePreferences(&Preferences{SelectedCategories: []string{"Health"}}))
	require.NoError(t, store.UpdatePreferences(&Preferences{SelectedCategories: []string{"Politics"}, DarkMode: true}))

	retrieved, err := store.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, []string{"Politics"}, retrieved.SelectedCategories)
	assert.True(t, retrieved.DarkMode)
}

// TestUpdatePreferences_EmptySelection verifies an empty selection is stored
// as All
func TestUpdatePreferences_EmptySelection(t *testing.T) {
	store := createTestPreferenceStore(t)

	require.NoError(t, store.UpdatePreferences(&Preferences{SelectedCategories: []string{}}))

	retrieved, err := store.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, []string{"All"}, retrieved.SelectedCategories)
}

// TestUpdatePreferences_InvalidCategory verifies unknown categories are
// rejected and nothing is stored
func TestUpdatePreferences_InvalidCategory(t *testing.T) {
	store := createTestPreferenceStore(t)

	err := store.UpdatePreferences(&Preferences{SelectedCategories: []string{"Health", "Weather"}})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	retrieved, err := store.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, []string{"All"}, retrieved.SelectedCategories)
}

// TestPreferenceStore_Persists verifies preferences survive reopening the
// database
func TestPreferenceStore_Persists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store1, err := NewPreferenceStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store1.UpdatePreferences(&Preferences{SelectedCategories: []string{"Technology"}}))
	store1.Close()

	store2, err := NewPreferenceStore(dbPath)
	require.NoError(t, err)
	defer store2.Close()

	prefs, err := store2.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, []string{"Technology"}, prefs.SelectedCategories, "data should persist across connections")
	assert.False(t, prefs.DarkMode)
}

// TestGetPreferences_CorruptValue verifies unreadable values are errors
func TestGetPreferences_CorruptValue(t *testing.T) {
	store := createTestPreferenceStore(t)

	_, err := store.db.Exec("INSERT INTO config (key, value) VALUES (?, ?)", keyDarkMode, "sometimes")
	require.NoError(t, err)

	_, err = store.GetPreferences()
	assert.Error(t, err)
}

func TestToggleCategory(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		category string
		want     []string
	}{
		{"all resets", []string{"Health", "Sports"}, "All", []string{"All"}},
		{"first pick drops all", []string{"All"}, "Health", []string{"Health"}},
		{"adds second", []string{"Health"}, "Sports", []string{"Health", "Sports"}},
		{"removes selected", []string{"Health", "Sports"}, "Health", []string{"Sports"}},
		{"empty falls back", []string{"Health"}, "Health", []string{"All"}},
		{"nil selection", nil, "Politics", []string{"Politics"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToggleCategory(tt.selected, tt.category))
		})
	}
}

func TestToggleCategory_DoesNotModifyInput(t *testing.T) {
	selected := []string{"Health", "Sports"}
	ToggleCategory(selected, "Health")
	assert.Equal(t, []string{"Health", "Sports"}, selected)
}

func TestValidateCategories(t *testing.T) {
	assert.NoError(t, ValidateCategories([]string{"All", "Technology", "Entertainment"}))
	assert.NoError(t, ValidateCategories(nil))
	assert.ErrorIs(t, ValidateCategories([]string{"technology"}), ErrInvalidCategory)
}
