// Package summarizer produces short article summaries. The only
// implementation today is Simulated, which fakes a summarization backend
// with a delay and a sentence heuristic; a real backend can replace it by
// implementing Summarizer.
package summarizer

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/newspulse/headlines"
)

// MinInputLength is the shortest free text (after trimming) that can be
// summarized.
const MinInputLength = 16

var (
	ErrInputTooShort = errors.New("please paste an article or paragraph with at least 16 characters")
	ErrSummaryFailed = errors.New("failed to generate summary, please try again")
)

// Summarizer summarizes free text and feed articles.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
	SummarizeArticle(ctx context.Context, article headlines.Article) (string, error)
}

// Simulated is a stand-in summarizer. It waits Delay plus up to Jitter
// before answering, and fails article summaries with probability
// FailureRate.
type Simulated struct {
	Delay       time.Duration
	Jitter      time.Duration
	FailureRate float64

	// Rand returns a number in [0, 1). Defaults to math/rand/v2.
	Rand func() float64
}

// NewSimulated returns a Simulated summarizer with the delays the web client
// used.
func NewSimulated() *Simulated {
	return &Simulated{
		Delay:       1100 * time.Millisecond,
		Jitter:      900 * time.Millisecond,
		FailureRate: 0.13,
	}
}

// Summarize returns the first two sentences of text. Input shorter than
// MinInputLength is rejected immediately.
func (s *Simulated) Summarize(ctx context.Context, text string) (string, error) {
	if len([]rune(strings.TrimSpace(text))) < MinInputLength {
		return "", ErrInputTooShort
	}

	if err := s.wait(ctx); err != nil {
		return "", err
	}

	plain := PlainText(text)
	summary := "Summary: " + strings.Join(firstSentences(plain, 2), ". ")
	if len([]rune(text)) > 240 {
		summary += "..."
	}

	return summary, nil
}

// SummarizeArticle returns a simulated summary of the article's content.
func (s *Simulated) SummarizeArticle(ctx context.Context, article headlines.Article) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}

	if s.FailureRate > 0 && s.random() < s.FailureRate {
		return "", ErrSummaryFailed
	}

	content := PlainText(article.Content)
	if content == "" {
		return "AI Summary: No content available.", nil
	}

	return "AI Summary: " + truncateRunes(content, 60) + "... [summary simulated]", nil
}

// wait sleeps for the simulated latency or until ctx is done.
func (s *Simulated) wait(ctx context.Context) error {
	d := s.Delay
	if s.Jitter > 0 {
		d += time.Duration(s.random() * float64(s.Jitter))
	}
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Simulated) random() float64 {
	if s.Rand != nil {
		return s.Rand()
	}
	return rand.Float64()
}

// PlainText strips HTML markup from s and collapses runs of whitespace.
// Text without markup is only whitespace-normalized.
func PlainText(s string) string {
	if strings.ContainsRune(s, '<') {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

// firstSentences splits text on sentence punctuation and returns up to n
// non-empty, trimmed sentences.
func firstSentences(text string, n int) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '?' || r == '!'
	})

	sentences := make([]string, 0, n)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		sentences = append(sentences, p)
		if len(sentences) == n {
			break
		}
	}
	return sentences
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
