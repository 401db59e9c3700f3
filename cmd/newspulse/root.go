package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pevans/newspulse/bookmarks"
	"github.com/pevans/newspulse/config"
	"github.com/pevans/newspulse/feed"
	"github.com/pevans/newspulse/headlines"
	"github.com/pevans/newspulse/summarizer"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.FileConfig
	logger  *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "newspulse",
	Short: "Top headlines reader",
	Long: `newspulse fetches top headlines from a NewsAPI-compatible provider.

Example usage:
  newspulse headlines                      # Top headlines in all categories
  newspulse headlines --category Health    # One category
  newspulse bookmarks list                 # Saved article IDs
  newspulse summarize < article.txt        # Summarize free text
  newspulse serve                          # Start the HTTP API
  newspulse read                           # Open the terminal reader

Configuration is read from ~/.newspulse/config.yaml and NEWSPULSE_*
environment variables. A .env file in the working directory is loaded first.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and runs it. The
// command context is canceled on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.newspulse/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// initConfig loads .env, the config file, and sets up the logger.
func initConfig() error {
	// A missing .env file is fine
	_ = godotenv.Load()

	var err error
	cfg, err = config.LoadConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	logger.Debug("configuration loaded",
		"base_url", cfg.Provider.BaseURL,
		"country", cfg.Provider.Country,
		"dsn", cfg.Storage.DSN,
		"api_key_set", cfg.Provider.APIKey != "",
	)

	return nil
}

// newClient creates the headlines client from the loaded configuration.
func newClient() *headlines.Client {
	hc := cfg.HeadlinesConfig()
	hc.Logger = logger
	if hc.APIKey == "" {
		logger.Warn("no provider API key configured; set NEWSPULSE_API_KEY")
	}
	return headlines.NewClient(hc)
}

// newSession creates a feed session backed by the headlines client.
func newSession() *feed.Session {
	return feed.NewSession(newClient(), &feed.SessionOptions{
		Retry: feed.RetryPolicy{
			MaxTries:        cfg.Retry.MaxTries,
			InitialInterval: cfg.Retry.InitialInterval,
		},
		Logger: logger,
	})
}

// newSummarizer creates the simulated summarizer from the loaded
// configuration.
func newSummarizer() *summarizer.Simulated {
	s := summarizer.NewSimulated()
	s.Delay = cfg.Summarizer.Delay
	s.Jitter = cfg.Summarizer.Jitter
	if cfg.Summarizer.FailureRate != nil {
		s.FailureRate = *cfg.Summarizer.FailureRate
	}
	return s
}

// openBookmarks opens the bookmark store.
func openBookmarks() (*bookmarks.Store, error) {
	store, err := bookmarks.NewStore(cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open bookmark store: %w", err)
	}
	return store, nil
}

// openPreferences opens the preference store.
func openPreferences() (*config.PreferenceStore, error) {
	store, err := config.NewPreferenceStore(cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference store: %w", err)
	}
	return store, nil
}
