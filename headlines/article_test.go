package headlines

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestRelativeTime verifies the elapsed time display
func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) string {
		return now.Add(-d).Format(time.RFC3339)
	}

	tests := []struct {
		name        string
		publishedAt string
		want        string
	}{
		{name: "just now", publishedAt: at(0), want: "0m ago"},
		{name: "seconds round down", publishedAt: at(59 * time.Second), want: "0m ago"},
		{name: "45 minutes", publishedAt: at(45 * time.Minute), want: "45m ago"},
		{name: "59 minutes", publishedAt: at(59*time.Minute + 59*time.Second), want: "59m ago"},
		{name: "exactly one hour", publishedAt: at(60 * time.Minute), want: "1h ago"},
		{name: "130 minutes", publishedAt: at(130 * time.Minute), want: "2h ago"},
		{name: "three days stay in hours", publishedAt: at(72 * time.Hour), want: "72h ago"},
		{name: "future clamps to zero", publishedAt: at(-10 * time.Minute), want: "0m ago"},
		{name: "missing", publishedAt: "", want: ""},
		{name: "unparsable", publishedAt: "yesterday", want: ""},
		{name: "fractional seconds", publishedAt: "2024-05-10T11:30:00.123Z", want: "29m ago"},
		{name: "offset timezone", publishedAt: "2024-05-10T13:00:00+02:00", want: "1h ago"},
		{name: "offset without colon", publishedAt: "2024-05-10T11:00:00+0000", want: "1h ago"},
		{name: "no zone reads as utc", publishedAt: "2024-05-10T11:15:00", want: "45m ago"},
		{name: "date only", publishedAt: "2024-05-10", want: "12h ago"},
		{name: "rfc1123 with offset", publishedAt: "Fri, 10 May 2024 10:00:00 +0000", want: "2h ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relativeTime(tt.publishedAt, now))
		})
	}
}

// TestNormalize_ContentFallbacks verifies content precedence
func TestNormalize_ContentFallbacks(t *testing.T) {
	now := time.Now()

	a := normalize(rawArticle{Content: "c", Description: "d"}, 0, now)
	assert.Equal(t, "c", a.Content)

	a = normalize(rawArticle{Description: "d"}, 0, now)
	assert.Equal(t, "d", a.Content)

	a = normalize(rawArticle{}, 0, now)
	assert.Equal(t, DefaultContent, a.Content)
}

// TestNormalize_Defaults verifies an empty record gets every default
func TestNormalize_Defaults(t *testing.T) {
	a := normalize(rawArticle{}, 3, time.Now())

	assert.Equal(t, Article{
		ID:           "Untitled-3",
		Title:        DefaultTitle,
		Source:       DefaultSource,
		ThumbnailURL: DefaultThumbnail,
		Content:      DefaultContent,
	}, a)
}

// TestNormalize_IDFromTitle verifies the positional fallback id
func TestNormalize_IDFromTitle(t *testing.T) {
	a := normalize(rawArticle{Title: "Markets rally"}, 2, time.Now())

	assert.Equal(t, "Markets rally-2", a.ID)
	assert.Empty(t, a.SourceURL)
}

// TestDecodeRecord_PartialFields verifies wrong-typed fields don't discard
// the rest of the record
func TestDecodeRecord_PartialFields(t *testing.T) {
	raw := decodeRecord(json.RawMessage(`{
		"title": ["not", "a", "string"],
		"source": {"name": "AP"},
		"url": "https://example.com/x",
		"publishedAt": 12345
	}`))

	assert.Empty(t, raw.Title)
	assert.Equal(t, "AP", raw.Source.Name)
	assert.Equal(t, "https://example.com/x", raw.URL)
	assert.Empty(t, raw.PublishedAt)
}

// TestParseCategory verifies known and unknown categories
func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, ok := ParseCategory(string(c))
		assert.True(t, ok, "%s should be known", c)
		assert.Equal(t, c, got)
	}

	_, ok := ParseCategory("Weather")
	assert.False(t, ok)

	_, ok = ParseCategory("sports")
	assert.False(t, ok, "category names are case-sensitive")
}
