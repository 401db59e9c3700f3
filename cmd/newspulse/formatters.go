package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pevans/newspulse/feed"
	"github.com/pevans/newspulse/headlines"
)

func validFormat(format string) bool {
	switch format {
	case "table", "json", "compact":
		return true
	}
	return false
}

// printArticlesTable prints articles in human-readable table format
func printArticlesTable(w io.Writer, articles []headlines.Article) {
	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles to display.")
		return
	}

	fmt.Fprintf(w, "Showing %d articles\n\n", len(articles))

	for _, a := range articles {
		fmt.Fprintf(w, "%s\n", truncate(a.Title, 70))
		fmt.Fprintf(w, "   %s | %s\n", a.Source, a.PublishedRelative)
		if a.Content != "" {
			fmt.Fprintf(w, "   %s\n", truncate(a.Content, 150))
		}
		if a.SourceURL != "" {
			fmt.Fprintf(w, "   URL: %s\n", a.SourceURL)
		}
		fmt.Fprintf(w, "   ID: %s\n", a.ID)
		fmt.Fprintln(w)
	}
}

// printArticlesCompact prints one line per article
func printArticlesCompact(w io.Writer, articles []headlines.Article) {
	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles to display.")
		return
	}

	for _, a := range articles {
		fmt.Fprintf(w, "%s (%s, %s)\n", a.Title, a.Source, a.PublishedRelative)
	}
}

// printSnapshotJSON prints a feed snapshot in JSON format
func printSnapshotJSON(w io.Writer, snap feed.Snapshot) error {
	return printJSON(w, snap)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(w, string(data))
	return nil
}

// truncate shortens s to at most n runes, ending in "..." when cut
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// wrapText wraps text to a maximum line width
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var lines []string
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}

	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n")
}
