package main

import (
	"errors"
	"fmt"

	"github.com/pevans/newspulse/headlines"
	"github.com/spf13/cobra"
)

var headlinesCmd = &cobra.Command{
	Use:     "headlines",
	Aliases: []string{"top"},
	Short:   "Fetch top headlines",
	Long: `Fetch top headlines once and print them.

A fetch that fails prints the same banner the reader shows and exits with an
error.

Examples:
  newspulse headlines                          # All categories
  newspulse headlines --category Technology    # One category
  newspulse headlines --format json            # Output as JSON`,
	Args: cobra.NoArgs,
	RunE: runHeadlines,
}

func init() {
	rootCmd.AddCommand(headlinesCmd)

	headlinesCmd.Flags().String("category", string(headlines.All), "category: All, Technology, Politics, Health, Sports, Entertainment")
	headlinesCmd.Flags().String("format", "table", "output format: table, json, compact")
}

func runHeadlines(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	format, _ := cmd.Flags().GetString("format")

	if _, ok := headlines.ParseCategory(category); !ok {
		return fmt.Errorf("unknown category: %s", category)
	}
	if !validFormat(format) {
		return fmt.Errorf("invalid format: %s (must be table, json, or compact)", format)
	}

	session := newSession()
	if _, err := session.Load(cmd.Context(), category); err != nil {
		logger.Debug("fetch failed", "error", err)
	}

	snap := session.Snapshot()
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		if err := printSnapshotJSON(out, snap); err != nil {
			return err
		}
	case "compact":
		printArticlesCompact(out, snap.Articles)
	default:
		printArticlesTable(out, snap.Articles)
	}

	if snap.Err != nil {
		return errors.New(snap.Err.Display())
	}
	return nil
}
