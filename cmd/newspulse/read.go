package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pevans/newspulse/tui"
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Open the terminal reader",
	Long: `Open the interactive terminal reader.

Keys:
  1-6    toggle categories      j/k    move
  enter  open article           esc    back
  b      bookmark               s      summarize
  tab    switch tabs            d      dark mode
  r      refresh                q      quit

With --verbose, logs are written to newspulse.log.`,
	Args: cobra.NoArgs,
	RunE: runRead,
}

const readLogFile = "newspulse.log"

func init() {
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	// The reader owns the terminal, so logs go to a file or nowhere
	readLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if verbose {
		f, err := os.OpenFile(readLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		readLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	logger = readLogger

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

	return tui.Run(cmd.Context(), tui.Options{
		Session:     newSession(),
		Summarizer:  newSummarizer(),
		Bookmarks:   store,
		Preferences: prefs,
		Logger:      logger,
	})
}
