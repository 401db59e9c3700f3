package headlines

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Defaults substituted for fields missing from a provider record.
const (
	DefaultTitle     = "Untitled"
	DefaultSource    = "Unknown"
	DefaultThumbnail = "https://placehold.co/80x80/1A73E8/FFFFFF?text=News"
	DefaultContent   = "No content excerpt available."
)

// Article is a provider record normalized into the shape the rest of
// NewsPulse consumes.
type Article struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Source            string `json:"source"`
	PublishedRelative string `json:"published_relative"`
	ThumbnailURL      string `json:"thumbnail_url"`
	Content           string `json:"content"`
	Summary           string `json:"summary"`
	SourceURL         string `json:"source_url"`
}

// rawArticle is one untrusted provider record. Every field is optional; an
// empty string counts as absent.
type rawArticle struct {
	Title       string    `json:"title"`
	Source      rawSource `json:"source"`
	PublishedAt string    `json:"publishedAt"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	Content     string    `json:"content"`
	Description string    `json:"description"`
}

type rawSource struct {
	Name string `json:"name"`
}

// decodeRecord decodes as much of a record as it can. Wrong-typed fields and
// non-object records leave the affected fields empty.
func decodeRecord(data json.RawMessage) rawArticle {
	var raw rawArticle
	_ = json.Unmarshal(data, &raw)
	return raw
}

// normalize maps a raw record at position index into an Article. It never
// fails.
func normalize(raw rawArticle, index int, now time.Time) Article {
	title := orDefault(raw.Title, DefaultTitle)

	id := raw.URL
	if id == "" {
		id = fmt.Sprintf("%s-%d", title, index)
	}

	content := raw.Content
	if content == "" {
		content = orDefault(raw.Description, DefaultContent)
	}

	return Article{
		ID:                id,
		Title:             title,
		Source:            orDefault(raw.Source.Name, DefaultSource),
		PublishedRelative: relativeTime(raw.PublishedAt, now),
		ThumbnailURL:      orDefault(raw.URLToImage, DefaultThumbnail),
		Content:           content,
		Summary:           "",
		SourceURL:         raw.URL,
	}
}

// normalizeAll normalizes records in provider order.
func normalizeAll(records []json.RawMessage, now time.Time) []Article {
	articles := make([]Article, 0, len(records))
	for i, rec := range records {
		articles = append(articles, normalize(decodeRecord(rec), i, now))
	}
	return articles
}

// timestampLayouts are the publishedAt forms accepted, tried in order.
// Values without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// relativeTime formats the time elapsed since publishedAt as "Nm ago" or
// "Nh ago". Missing or unparsable timestamps yield "". Future timestamps
// count as zero elapsed minutes.
func relativeTime(publishedAt string, now time.Time) string {
	if publishedAt == "" {
		return ""
	}
	pub, ok := parseTimestamp(strings.TrimSpace(publishedAt))
	if !ok {
		return ""
	}

	mins := int64(now.Sub(pub) / time.Minute)
	if mins < 0 {
		mins = 0
	}
	if mins < 60 {
		return fmt.Sprintf("%dm ago", mins)
	}
	return fmt.Sprintf("%dh ago", mins/60)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
