package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [text...]",
	Short: "Summarize a paragraph or article",
	Long: `Summarize free text. With no arguments the text is read from stdin.

Examples:
  newspulse summarize "Long paragraph. With sentences."
  newspulse summarize < article.txt`,
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}

	summary, err := newSummarizer().Summarize(cmd.Context(), text)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), wrapText(summary, 80))
	return nil
}
