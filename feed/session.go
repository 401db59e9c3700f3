// Package feed owns the reader-facing state of the news feed: which request
// is current, the articles it produced, and the error banner to show.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/pevans/newspulse/headlines"
)

// ErrArticleNotFound is returned when an ID is not in the current feed.
var ErrArticleNotFound = errors.New("article not found")

// Fetcher retrieves normalized headlines for a category.
type Fetcher interface {
	Fetch(ctx context.Context, category string) ([]headlines.Article, error)
}

// RetryPolicy controls how Load retries a provider that could not be reached.
// MaxTries of 0 or 1 means a single attempt.
type RetryPolicy struct {
	MaxTries        uint
	InitialInterval time.Duration
}

// SessionOptions configures a Session.
type SessionOptions struct {
	Retry  RetryPolicy
	Logger *slog.Logger
}

// DefaultSessionOptions returns options with three tries starting at 500ms.
func DefaultSessionOptions() *SessionOptions {
	return &SessionOptions{
		Retry: RetryPolicy{
			MaxTries:        3,
			InitialInterval: 500 * time.Millisecond,
		},
	}
}

// Request identifies one fetch started by Begin.
type Request struct {
	ID        string
	Category  string
	StartedAt time.Time
}

// Session tracks the most recent fetch. Results of older requests are
// discarded so a slow response can never overwrite a newer selection.
type Session struct {
	fetcher Fetcher
	retry   RetryPolicy
	logger  *slog.Logger

	mu       sync.Mutex
	current  Request
	loading  bool
	articles []headlines.Article
	err      *headlines.FetchError
}

// NewSession creates a session around fetcher. A nil opts uses
// DefaultSessionOptions.
func NewSession(fetcher Fetcher, opts *SessionOptions) *Session {
	if opts == nil {
		opts = DefaultSessionOptions()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		fetcher:  fetcher,
		retry:    opts.Retry,
		logger:   logger,
		articles: []headlines.Article{},
	}
}

// Begin starts a new request for category and makes it the current one.
func (s *Session) Begin(category string) Request {
	req := Request{
		ID:        uuid.New().String(),
		Category:  category,
		StartedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = req
	s.loading = true
	return req
}

// Complete applies the outcome of req if it is still the current request and
// reports whether it was applied. A failed request clears the article list.
func (s *Session) Complete(req Request, articles []headlines.Article, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.ID != s.current.ID {
		s.logger.Debug("discarding superseded result",
			"request_id", req.ID,
			"category", req.Category,
			"current_request_id", s.current.ID)
		return false
	}

	s.loading = false
	if err != nil {
		s.articles = []headlines.Article{}
		s.err = asFetchError(err)
		return true
	}

	s.articles = append([]headlines.Article{}, articles...)
	s.err = nil
	return true
}

// Load fetches category and applies the result. It returns false when a newer
// request superseded this one; the error is the outcome of this fetch either
// way.
func (s *Session) Load(ctx context.Context, category string) (bool, error) {
	req := s.Begin(category)

	articles, err := s.Fetch(ctx, req)
	if err != nil {
		s.logger.Warn("failed to fetch headlines",
			"request_id", req.ID,
			"category", category,
			"error", err)
	} else {
		s.logger.Info("fetched headlines",
			"request_id", req.ID,
			"category", category,
			"count", len(articles),
			"duration", time.Since(req.StartedAt))
	}

	return s.Complete(req, articles, err), err
}

// Fetch runs the fetch for req without applying it, retrying only when the
// provider was unreachable. Callers that drive their own event loop pair it
// with Begin and Complete.
func (s *Session) Fetch(ctx context.Context, req Request) ([]headlines.Article, error) {
	category := req.Category
	if s.retry.MaxTries <= 1 {
		return s.fetcher.Fetch(ctx, category)
	}

	bo := backoff.NewExponentialBackOff()
	if s.retry.InitialInterval > 0 {
		bo.InitialInterval = s.retry.InitialInterval
	}

	var lastErr error
	articles, err := backoff.Retry(ctx, func() ([]headlines.Article, error) {
		articles, err := s.fetcher.Fetch(ctx, category)
		lastErr = err
		if err == nil {
			return articles, nil
		}
		if !headlines.IsKind(err, headlines.KindNetworkUnavailable) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	},
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(s.retry.MaxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.logger.Debug("retrying headlines fetch", "category", category, "error", err, "next", next)
		}),
	)
	if err != nil {
		// Report the fetcher's own error rather than the retry wrapper or a
		// context error raised while waiting.
		return []headlines.Article{}, lastErr
	}
	return articles, nil
}

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	RequestID string                `json:"request_id"`
	Category  string                `json:"category"`
	Loading   bool                  `json:"loading"`
	Articles  []headlines.Article   `json:"articles"`
	Error     *SnapshotError        `json:"error"`
	Err       *headlines.FetchError `json:"-"`
}

// SnapshotError is the JSON form of a fetch error.
type SnapshotError struct {
	Kind    headlines.ErrorKind `json:"kind"`
	Status  int                 `json:"status,omitempty"`
	Message string              `json:"message,omitempty"`
	Display string              `json:"display"`
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		RequestID: s.current.ID,
		Category:  s.current.Category,
		Loading:   s.loading,
		Articles:  append([]headlines.Article{}, s.articles...),
		Err:       s.err,
	}
	if s.err != nil {
		snap.Error = &SnapshotError{
			Kind:    s.err.Kind,
			Status:  s.err.Status,
			Message: s.err.Message,
			Display: s.err.Display(),
		}
	}
	return snap
}

// Article returns the article with the given ID from the current feed.
func (s *Session) Article(id string) (headlines.Article, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.articles {
		if a.ID == id {
			return a, true
		}
	}
	return headlines.Article{}, false
}

// SetSummary attaches summary to the article with the given ID. The article
// list is replaced rather than modified, so earlier snapshots keep their
// contents.
func (s *Session) SetSummary(id, summary string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.articles {
		if a.ID != id {
			continue
		}
		next := append([]headlines.Article{}, s.articles...)
		next[i].Summary = summary
		s.articles = next
		return true
	}
	return false
}

func asFetchError(err error) *headlines.FetchError {
	if fe, ok := headlines.AsFetchError(err); ok {
		return fe
	}
	return &headlines.FetchError{Kind: headlines.KindNetworkUnavailable, Err: err}
}
