package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Manage bookmarked articles",
	Long: `Manage bookmarked article IDs. An article's ID is its URL.

Examples:
  newspulse bookmarks list
  newspulse bookmarks add https://example.com/story
  newspulse bookmarks remove https://example.com/story
  newspulse bookmarks toggle https://example.com/story`,
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarked article IDs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openBookmarks()
		if err != nil {
			return err
		}
		defer store.Close()

		ids, err := store.List()
		if err != nil {
			return err
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]any{"ids": ids})
		}

		if len(ids) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No bookmarks.")
			return nil
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Bookmark an article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openBookmarks()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Add(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s\n", args[0])
		return nil
	},
}

var bookmarksRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a bookmark",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openBookmarks()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Remove(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

var bookmarksToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Bookmark or unbookmark an article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openBookmarks()
		if err != nil {
			return err
		}
		defer store.Close()

		on, err := store.Toggle(args[0])
		if err != nil {
			return err
		}
		if on {
			fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s\n", args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bookmarksCmd)
	bookmarksCmd.AddCommand(bookmarksListCmd, bookmarksAddCmd, bookmarksRemoveCmd, bookmarksToggleCmd)

	bookmarksListCmd.Flags().Bool("json", false, "output as JSON")
}
