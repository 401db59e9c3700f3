package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Test helper: create a router with the preference routes
func setupTestRouter(t *testing.T) (*gin.Engine, *PreferenceStore) {
	store := createTestPreferenceStore(t)
	router := gin.New()
	NewPreferencesAPIServer(store).RegisterRoutes(router)
	return router, store
}

func doRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestHandleGetPreferences verifies the defaults are served
func TestHandleGetPreferences(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/meta/preferences", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"selected_categories":["All"],"dark_mode":true}`, w.Body.String())
}

// TestHandleUpdatePreferences verifies a full update
func TestHandleUpdatePreferences(t *testing.T) {
	router, store := setupTestRouter(t)

	w := doRequest(router, http.MethodPut, "/api/v1/meta/preferences",
		`{"selected_categories":["Health"],"dark_mode":false}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var prefs Preferences
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prefs))
	assert.Equal(t, []string{"Health"}, prefs.SelectedCategories)
	assert.False(t, prefs.DarkMode)

	stored, err := store.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, []string{"Health"}, stored.SelectedCategories)
}

// TestHandleUpdatePreferences_Partial verifies omitted fields are kept
func TestHandleUpdatePreferences_Partial(t *testing.T) {
	router, store := setupTestRouter(t)
	require.NoError(t, store.UpdatePreferences(&Preferences{SelectedCategories: []string{"Sports"}, DarkMode: true}))

	w := doRequest(router, http.MethodPut, "/api/v1/meta/preferences", `{"dark_mode":false}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"selected_categories":["Sports"],"dark_mode":false}`, w.Body.String())
}

// TestHandleUpdatePreferences_Invalid verifies validation errors
func TestHandleUpdatePreferences_Invalid(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodPut, "/api/v1/meta/preferences", `{"selected_categories":["Weather"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")

	w = doRequest(router, http.MethodPut, "/api/v1/meta/preferences", `{broken`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bad_request")
}

// TestHandleToggleCategory verifies toggling through the API
func TestHandleToggleCategory(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/meta/preferences/categories/toggle", `{"category":"Health"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"selected_categories":["Health"],"dark_mode":true}`, w.Body.String())

	w = doRequest(router, http.MethodPost, "/api/v1/meta/preferences/categories/toggle", `{"category":"Sports"}`)
	assert.JSONEq(t, `{"selected_categories":["Health","Sports"],"dark_mode":true}`, w.Body.String())

	w = doRequest(router, http.MethodPost, "/api/v1/meta/preferences/categories/toggle", `{"category":"All"}`)
	assert.JSONEq(t, `{"selected_categories":["All"],"dark_mode":true}`, w.Body.String())
}

// TestHandleToggleCategory_Unknown verifies unknown categories are rejected
func TestHandleToggleCategory_Unknown(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/meta/preferences/categories/toggle", `{"category":"Weather"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}
