package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pevans/newspulse/bookmarks"
	"github.com/pevans/newspulse/config"
	"github.com/pevans/newspulse/feed"
	"github.com/pevans/newspulse/summarizer"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API for the feed, bookmarks, summaries, and preferences.

Routes:
  GET    /api/v1/feed                              Current feed
  POST   /api/v1/feed/refresh                      Fetch headlines
  GET    /api/v1/feed/article?id=                  One article
  POST   /api/v1/feed/article/summary?id=          Summarize an article
  GET    /api/v1/feed/bookmarked                   Bookmarked articles
  POST   /api/v1/summaries                         Summarize free text
  GET    /api/v1/bookmarks                         Bookmark IDs
  POST   /api/v1/bookmarks                         Add a bookmark
  DELETE /api/v1/bookmarks?id=                     Remove a bookmark
  POST   /api/v1/bookmarks/toggle                  Toggle a bookmark
  GET    /api/v1/meta/preferences                  Preferences
  PUT    /api/v1/meta/preferences                  Update preferences
  POST   /api/v1/meta/preferences/categories/toggle`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default from config, localhost:8080)")
	serveCmd.Flags().Bool("no-initial-fetch", false, "don't fetch headlines at startup")
}

// serverDeps are the services behind the HTTP API.
type serverDeps struct {
	session     *feed.Session
	summarizer  summarizer.Summarizer
	bookmarks   *bookmarks.Store
	preferences *config.PreferenceStore
	logger      *slog.Logger
}

// newRouter configures the Gin router with every API route.
func newRouter(deps serverDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(deps.logger))
	router.Use(corsMiddleware())

	feed.NewAPIServer(deps.session, deps.summarizer).
		WithBookmarks(deps.bookmarks).
		WithPreferences(deps.preferences).
		WithLogger(deps.logger).
		RegisterRoutes(router)
	bookmarks.NewAPIServer(deps.bookmarks).RegisterRoutes(router)
	config.NewPreferencesAPIServer(deps.preferences).RegisterRoutes(router)

	return router
}

// corsMiddleware adds CORS headers to responses and answers preflight
// requests.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// requestLogger logs one line per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// ginMode keeps gin's debug output only for verbose runs.
func ginMode(verbose bool) string {
	if verbose {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Server.Addr
	}
	noInitialFetch, _ := cmd.Flags().GetBool("no-initial-fetch")

	store, err := openBookmarks()
	if err != nil {
		return err
	}
	defer store.Close()

	prefs, err := openPreferences()
	if err != nil {
		return err
	}
	defer prefs.Close()

	gin.SetMode(ginMode(verbose))
	session := newSession()
	router := newRouter(serverDeps{
		session:     session,
		summarizer:  newSummarizer(),
		bookmarks:   store,
		preferences: prefs,
		logger:      logger,
	})

	ctx := cmd.Context()
	if !noInitialFetch {
		selected, err := prefs.GetPreferences()
		if err != nil {
			return err
		}
		go session.Load(ctx, feed.RequestCategory(selected.SelectedCategories))
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting NewsPulse API server", "addr", "http://"+addr+"/api/v1/feed")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
