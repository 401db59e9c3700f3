package config

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PreferencesAPIServer serves reader preferences over HTTP.
type PreferencesAPIServer struct {
	store *PreferenceStore
}

// NewPreferencesAPIServer creates a new preferences API server.
func NewPreferencesAPIServer(store *PreferenceStore) *PreferencesAPIServer {
	return &PreferencesAPIServer{
		store: store,
	}
}

// RegisterRoutes adds the preference routes to r.
func (p *PreferencesAPIServer) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api/v1/meta")
	api.GET("/preferences", p.HandleGetPreferences)
	api.PUT("/preferences", p.HandleUpdatePreferences)
	api.POST("/preferences/categories/toggle", p.HandleToggleCategory)
}

// preferencesUpdate is the body of PUT /api/v1/meta/preferences. Omitted
// fields keep their stored values.
type preferencesUpdate struct {
	SelectedCategories []string `json:"selected_categories"`
	DarkMode           *bool    `json:"dark_mode"`
}

type toggleRequest struct {
	Category string `json:"category"`
}

// errorResponse creates a standardized error response.
func errorResponse(code, message string) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

// HandleGetPreferences handles GET /api/v1/meta/preferences.
func (p *PreferencesAPIServer) HandleGetPreferences(c *gin.Context) {
	prefs, err := p.store.GetPreferences()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to retrieve preferences"))
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// HandleUpdatePreferences handles PUT /api/v1/meta/preferences.
func (p *PreferencesAPIServer) HandleUpdatePreferences(c *gin.Context) {
	var updates preferencesUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("bad_request", err.Error()))
		return
	}

	prefs, err := p.store.GetPreferences()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to retrieve preferences"))
		return
	}

	if updates.SelectedCategories != nil {
		prefs.SelectedCategories = updates.SelectedCategories
	}
	if updates.DarkMode != nil {
		prefs.DarkMode = *updates.DarkMode
	}

	p.save(c, prefs)
}

// HandleToggleCategory handles POST /api/v1/meta/preferences/categories/toggle.
func (p *PreferencesAPIServer) HandleToggleCategory(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("bad_request", err.Error()))
		return
	}

	if err := ValidateCategories([]string{req.Category}); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("validation_error", err.Error()))
		return
	}

	prefs, err := p.store.GetPreferences()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to retrieve preferences"))
		return
	}

	prefs.SelectedCategories = ToggleCategory(prefs.SelectedCategories, req.Category)
	p.save(c, prefs)
}

func (p *PreferencesAPIServer) save(c *gin.Context, prefs *Preferences) {
	if err := p.store.UpdatePreferences(prefs); err != nil {
		if errors.Is(err, ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, errorResponse("validation_error", err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to update preferences"))
		return
	}

	updated, err := p.store.GetPreferences()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to retrieve preferences"))
		return
	}

	c.JSON(http.StatusOK, updated)
}
