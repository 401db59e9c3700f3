package main

import (
	"fmt"
	"strings"

	"github.com/pevans/newspulse/config"
	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:     "prefs",
	Aliases: []string{"preferences"},
	Short:   "Show or change reader preferences",
	Long: `Show or change the category selection and theme.

Examples:
  newspulse prefs show
  newspulse prefs toggle Health     # Add or remove a category
  newspulse prefs toggle All        # Reset to all categories
  newspulse prefs dark off`,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPreferences()
		if err != nil {
			return err
		}
		defer store.Close()

		prefs, err := store.GetPreferences()
		if err != nil {
			return err
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), prefs)
		}
		printPreferences(cmd, prefs)
		return nil
	},
}

var prefsToggleCmd = &cobra.Command{
	Use:   "toggle <category>",
	Short: "Toggle a category in the selection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ValidateCategories(args); err != nil {
			return err
		}

		store, err := openPreferences()
		if err != nil {
			return err
		}
		defer store.Close()

		prefs, err := store.GetPreferences()
		if err != nil {
			return err
		}
		prefs.SelectedCategories = config.ToggleCategory(prefs.SelectedCategories, args[0])
		if err := store.UpdatePreferences(prefs); err != nil {
			return err
		}

		printPreferences(cmd, prefs)
		return nil
	},
}

var prefsDarkCmd = &cobra.Command{
	Use:       "dark <on|off>",
	Short:     "Turn dark mode on or off",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPreferences()
		if err != nil {
			return err
		}
		defer store.Close()

		prefs, err := store.GetPreferences()
		if err != nil {
			return err
		}
		prefs.DarkMode = args[0] == "on"
		if err := store.UpdatePreferences(prefs); err != nil {
			return err
		}

		printPreferences(cmd, prefs)
		return nil
	},
}

func printPreferences(cmd *cobra.Command, prefs *config.Preferences) {
	theme := "off"
	if prefs.DarkMode {
		theme = "on"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Categories: %s\n", strings.Join(prefs.SelectedCategories, ", "))
	fmt.Fprintf(cmd.OutOrStdout(), "Dark mode:  %s\n", theme)
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd, prefsToggleCmd, prefsDarkCmd)

	prefsShowCmd.Flags().Bool("json", false, "output as JSON")
}
