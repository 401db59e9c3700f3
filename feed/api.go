package feed

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pevans/newspulse/bookmarks"
	"github.com/pevans/newspulse/config"
	"github.com/pevans/newspulse/headlines"
	"github.com/pevans/newspulse/summarizer"
)

// APIServer serves the feed session over HTTP.
type APIServer struct {
	session    *Session
	summarizer summarizer.Summarizer
	bookmarks  *bookmarks.Store
	prefs      *config.PreferenceStore
	logger     *slog.Logger
}

// NewAPIServer creates a new feed API server.
func NewAPIServer(session *Session, summ summarizer.Summarizer) *APIServer {
	return &APIServer{
		session:    session,
		summarizer: summ,
		logger:     slog.Default(),
	}
}

// WithBookmarks enables GET /api/v1/feed/bookmarked.
func (s *APIServer) WithBookmarks(store *bookmarks.Store) *APIServer {
	s.bookmarks = store
	return s
}

// WithPreferences makes the stored category selection the default for feed
// requests.
func (s *APIServer) WithPreferences(store *config.PreferenceStore) *APIServer {
	s.prefs = store
	return s
}

// WithLogger sets the logger used for request failures.
func (s *APIServer) WithLogger(logger *slog.Logger) *APIServer {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// RegisterRoutes adds the feed and summary routes to r.
func (s *APIServer) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api/v1")
	api.GET("/feed", s.HandleGetFeed)
	api.POST("/feed/refresh", s.HandleRefresh)
	api.GET("/feed/article", s.HandleGetArticle)
	api.POST("/feed/article/summary", s.HandleSummarizeArticle)
	api.POST("/summaries", s.HandleSummarize)
	if s.bookmarks != nil {
		api.GET("/feed/bookmarked", s.HandleBookmarked)
	}
}

// SummaryRequest is the body of POST /api/v1/summaries.
type SummaryRequest struct {
	Text string `json:"text"`
}

// SummaryResponse is the body returned by the summary endpoints.
type SummaryResponse struct {
	Summary string `json:"summary"`
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

// selection returns the categories named by the request, falling back to the
// stored preferences and then All.
func (s *APIServer) selection(c *gin.Context) ([]string, error) {
	if raw := c.Query("categories"); raw != "" {
		var selected []string
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				selected = append(selected, name)
			}
		}
		if err := config.ValidateCategories(selected); err != nil {
			return nil, err
		}
		if len(selected) > 0 {
			return selected, nil
		}
	}

	if s.prefs != nil {
		prefs, err := s.prefs.GetPreferences()
		if err != nil {
			return nil, err
		}
		return prefs.SelectedCategories, nil
	}

	return []string{string(headlines.All)}, nil
}

func (s *APIServer) writeSelectionError(c *gin.Context, err error) {
	if errors.Is(err, config.ErrInvalidCategory) {
		c.JSON(http.StatusBadRequest, errorResponse("validation_error", err.Error()))
		return
	}
	s.logger.Error("failed to read preferences", "error", err)
	c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to retrieve preferences"))
}

// HandleGetFeed handles GET /api/v1/feed.
func (s *APIServer) HandleGetFeed(c *gin.Context) {
	selected, err := s.selection(c)
	if err != nil {
		s.writeSelectionError(c, err)
		return
	}

	snap := s.session.Snapshot()
	snap.Articles = FilterVisible(snap.Articles, selected, snap.Category)
	c.JSON(http.StatusOK, snap)
}

// HandleRefresh handles POST /api/v1/feed/refresh.
func (s *APIServer) HandleRefresh(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		selected, err := s.selection(c)
		if err != nil {
			s.writeSelectionError(c, err)
			return
		}
		category = RequestCategory(selected)
	}

	if _, ok := headlines.ParseCategory(category); !ok {
		c.JSON(http.StatusBadRequest, errorResponse("validation_error", "unknown category: "+category))
		return
	}

	applied, _ := s.session.Load(c.Request.Context(), category)
	if !applied {
		c.JSON(http.StatusConflict, errorResponse("superseded", "A newer refresh replaced this one"))
		return
	}

	c.JSON(http.StatusOK, s.session.Snapshot())
}

// HandleGetArticle handles GET /api/v1/feed/article?id=...
func (s *APIServer) HandleGetArticle(c *gin.Context) {
	article, ok := s.session.Article(c.Query("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse("not_found", ErrArticleNotFound.Error()))
		return
	}

	c.JSON(http.StatusOK, article)
}

// HandleSummarizeArticle handles POST /api/v1/feed/article/summary?id=...
func (s *APIServer) HandleSummarizeArticle(c *gin.Context) {
	id := c.Query("id")
	article, ok := s.session.Article(id)
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse("not_found", ErrArticleNotFound.Error()))
		return
	}

	summary, err := s.summarizer.SummarizeArticle(c.Request.Context(), article)
	if err != nil {
		s.logger.Warn("failed to summarize article", "id", id, "error", err)
		if errors.Is(err, summarizer.ErrSummaryFailed) {
			c.JSON(http.StatusBadGateway, errorResponse("summary_failed", "Failed to generate summary. Try again."))
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to generate summary"))
		return
	}

	s.session.SetSummary(id, summary)
	article.Summary = summary
	c.JSON(http.StatusOK, article)
}

// HandleSummarize handles POST /api/v1/summaries.
func (s *APIServer) HandleSummarize(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("bad_request", err.Error()))
		return
	}

	summary, err := s.summarizer.Summarize(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, summarizer.ErrInputTooShort) {
			c.JSON(http.StatusBadRequest, errorResponse("validation_error", err.Error()))
			return
		}
		s.logger.Warn("failed to summarize text", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to generate summary"))
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{Summary: summary})
}

// HandleBookmarked handles GET /api/v1/feed/bookmarked.
func (s *APIServer) HandleBookmarked(c *gin.Context) {
	ids, err := s.bookmarks.List()
	if err != nil {
		s.logger.Error("failed to list bookmarks", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "Failed to list bookmarks"))
		return
	}

	snap := s.session.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"articles": FilterBookmarked(snap.Articles, ids),
	})
}
