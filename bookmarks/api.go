package bookmarks

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIServer serves the bookmark list over HTTP.
type APIServer struct {
	store *Store
}

// NewAPIServer creates a new bookmarks API server.
func NewAPIServer(store *Store) *APIServer {
	return &APIServer{
		store: store,
	}
}

// RegisterRoutes adds the bookmark routes to r.
func (s *APIServer) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api/v1/bookmarks")
	api.GET("", s.HandleList)
	api.POST("", s.HandleAdd)
	api.DELETE("", s.HandleRemove)
	api.POST("/toggle", s.HandleToggle)
}

// ListResponse is the body of GET /api/v1/bookmarks.
type ListResponse struct {
	IDs []string `json:"ids"`
}

// ToggleResponse is the body of POST /api/v1/bookmarks/toggle.
type ToggleResponse struct {
	ID         string `json:"id"`
	Bookmarked bool   `json:"bookmarked"`
}

type idRequest struct {
	ID string `json:"id"`
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

// HandleList handles GET /api/v1/bookmarks.
func (s *APIServer) HandleList(c *gin.Context) {
	ids, err := s.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to list bookmarks"))
		return
	}

	c.JSON(http.StatusOK, ListResponse{IDs: ids})
}

// HandleAdd handles POST /api/v1/bookmarks.
func (s *APIServer) HandleAdd(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("bad_request", err.Error()))
		return
	}

	if err := s.store.Add(req.ID); err != nil {
		s.writeStoreError(c, err)
		return
	}

	s.HandleList(c)
}

// HandleRemove handles DELETE /api/v1/bookmarks?id=...
func (s *APIServer) HandleRemove(c *gin.Context) {
	if err := s.store.Remove(c.Query("id")); err != nil {
		s.writeStoreError(c, err)
		return
	}

	s.HandleList(c)
}

// HandleToggle handles POST /api/v1/bookmarks/toggle.
func (s *APIServer) HandleToggle(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("bad_request", err.Error()))
		return
	}

	bookmarked, err := s.store.Toggle(req.ID)
	if err != nil {
		s.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, ToggleResponse{ID: req.ID, Bookmarked: bookmarked})
}

func (s *APIServer) writeStoreError(c *gin.Context, err error) {
	if errors.Is(err, ErrEmptyID) {
		c.JSON(http.StatusBadRequest, errorResponse("validation_error", err.Error()))
		return
	}
	c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to update bookmarks"))
}
