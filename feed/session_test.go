package feed

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pevans/newspulse/headlines"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fetcherFunc adapts a function to the Fetcher interface.
type fetcherFunc func(ctx context.Context, category string) ([]headlines.Article, error)

func (f fetcherFunc) Fetch(ctx context.Context, category string) ([]headlines.Article, error) {
	return f(ctx, category)
}

// Test helper: create articles with the given titles
func createTestArticles(titles ...string) []headlines.Article {
	articles := make([]headlines.Article, len(titles))
	for i, title := range titles {
		articles[i] = headlines.Article{
			ID:    "https://example.com/" + title,
			Title: title,
		}
	}
	return articles
}

func staticFetcher(articles []headlines.Article) fetcherFunc {
	return func(context.Context, string) ([]headlines.Article, error) {
		return articles, nil
	}
}

func noRetry() *SessionOptions {
	return &SessionOptions{Retry: RetryPolicy{MaxTries: 1}}
}

func TestNewSession_EmptySnapshot(t *testing.T) {
	s := NewSession(staticFetcher(nil), nil)

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.NotNil(t, snap.Articles)
	assert.Empty(t, snap.Articles)
	assert.Nil(t, snap.Error)
}

func TestBegin_MarksLoading(t *testing.T) {
	s := NewSession(staticFetcher(nil), noRetry())

	req := s.Begin("Health")

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, "Health", req.Category)
	snap := s.Snapshot()
	assert.True(t, snap.Loading)
	assert.Equal(t, req.ID, snap.RequestID)
	assert.Equal(t, "Health", snap.Category)
}

func TestComplete_StaleResultDiscarded(t *testing.T) {
	s := NewSession(staticFetcher(nil), noRetry())

	first := s.Begin("Health")
	second := s.Begin("Sports")

	assert.False(t, s.Complete(first, createTestArticles("old"), nil), "superseded result should be dropped")
	assert.True(t, s.Snapshot().Loading, "the newer request is still loading")

	assert.True(t, s.Complete(second, createTestArticles("new"), nil))
	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	require.Len(t, snap.Articles, 1)
	assert.Equal(t, "new", snap.Articles[0].Title)

	assert.False(t, s.Complete(first, createTestArticles("old"), nil), "late result after completion should be dropped")
	assert.Equal(t, "new", s.Snapshot().Articles[0].Title)
}

func TestComplete_ErrorClearsArticles(t *testing.T) {
	s := NewSession(staticFetcher(nil), noRetry())

	req := s.Begin("All")
	s.Complete(req, createTestArticles("a", "b"), nil)

	req = s.Begin("All")
	fetchErr := &headlines.FetchError{Kind: headlines.KindProviderError, Status: 401, Message: "Invalid API key"}
	assert.True(t, s.Complete(req, []headlines.Article{}, fetchErr))

	snap := s.Snapshot()
	assert.Empty(t, snap.Articles)
	require.NotNil(t, snap.Error)
	assert.Equal(t, headlines.KindProviderError, snap.Error.Kind)
	assert.Equal(t, 401, snap.Error.Status)
	assert.Equal(t, "Error: 401 - Invalid API key", snap.Error.Display)
	assert.Same(t, fetchErr, snap.Err)
}

func TestComplete_SuccessClearsError(t *testing.T) {
	s := NewSession(staticFetcher(nil), noRetry())

	req := s.Begin("All")
	s.Complete(req, nil, &headlines.FetchError{Kind: headlines.KindMalformedResponse})
	require.NotNil(t, s.Snapshot().Error)

	req = s.Begin("All")
	s.Complete(req, createTestArticles("a"), nil)

	assert.Nil(t, s.Snapshot().Error)
}

func TestComplete_PlainErrorIsNetworkUnavailable(t *testing.T) {
	s := NewSession(staticFetcher(nil), noRetry())

	req := s.Begin("All")
	s.Complete(req, nil, errors.New("boom"))

	snap := s.Snapshot()
	require.NotNil(t, snap.Error)
	assert.Equal(t, headlines.KindNetworkUnavailable, snap.Error.Kind)
	assert.Equal(t, "Unable to fetch news. Please check your network connection.", snap.Error.Display)
}

func TestLoad_Success(t *testing.T) {
	var gotCategory string
	fetcher := fetcherFunc(func(_ context.Context, category string) ([]headlines.Article, error) {
		gotCategory = category
		return createTestArticles("a", "b"), nil
	})
	s := NewSession(fetcher, noRetry())

	applied, err := s.Load(context.Background(), "Technology")

	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "Technology", gotCategory)
	snap := s.Snapshot()
	assert.Len(t, snap.Articles, 2)
	assert.Equal(t, "Technology", snap.Category)
}

func TestLoad_SlowResultSuperseded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fetcher := fetcherFunc(func(_ context.Context, category string) ([]headlines.Article, error) {
		if category == "Health" {
			close(started)
			<-release
			return createTestArticles("slow health"), nil
		}
		return createTestArticles("fast sports"), nil
	})
	s := NewSession(fetcher, noRetry())

	type result struct {
		applied bool
		err     error
	}
	done := make(chan result)
	go func() {
		applied, err := s.Load(context.Background(), "Health")
		done <- result{applied, err}
	}()
	<-started

	applied, err := s.Load(context.Background(), "Sports")
	require.NoError(t, err)
	assert.True(t, applied)

	close(release)
	slow := <-done
	require.NoError(t, slow.err)
	assert.False(t, slow.applied, "the older request must not overwrite the newer one")

	snap := s.Snapshot()
	assert.Equal(t, "Sports", snap.Category)
	require.Len(t, snap.Articles, 1)
	assert.Equal(t, "fast sports", snap.Articles[0].Title)
}

func TestLoad_RetriesNetworkErrors(t *testing.T) {
	var calls atomic.Int32
	fetcher := fetcherFunc(func(context.Context, string) ([]headlines.Article, error) {
		if calls.Add(1) < 3 {
			return []headlines.Article{}, &headlines.FetchError{Kind: headlines.KindNetworkUnavailable}
		}
		return createTestArticles("a"), nil
	})
	s := NewSession(fetcher, &SessionOptions{Retry: RetryPolicy{MaxTries: 3, InitialInterval: time.Millisecond}})

	applied, err := s.Load(context.Background(), "All")

	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, int32(3), calls.Load())
	assert.Len(t, s.Snapshot().Articles, 1)
}

func TestLoad_GivesUpAfterMaxTries(t *testing.T) {
	var calls atomic.Int32
	fetcher := fetcherFunc(func(context.Context, string) ([]headlines.Article, error) {
		calls.Add(1)
		return []headlines.Article{}, &headlines.FetchError{Kind: headlines.KindNetworkUnavailable}
	})
	s := NewSession(fetcher, &SessionOptions{Retry: RetryPolicy{MaxTries: 2, InitialInterval: time.Millisecond}})

	applied, err := s.Load(context.Background(), "All")

	assert.True(t, applied)
	assert.True(t, headlines.IsKind(err, headlines.KindNetworkUnavailable))
	assert.Equal(t, int32(2), calls.Load())
	require.NotNil(t, s.Snapshot().Error)
	assert.Equal(t, headlines.KindNetworkUnavailable, s.Snapshot().Error.Kind)
}

func TestLoad_DoesNotRetryProviderErrors(t *testing.T) {
	tests := []struct {
		name string
		err  *headlines.FetchError
	}{
		{"provider", &headlines.FetchError{Kind: headlines.KindProviderError, Status: 500}},
		{"malformed", &headlines.FetchError{Kind: headlines.KindMalformedResponse}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			fetcher := fetcherFunc(func(context.Context, string) ([]headlines.Article, error) {
				calls.Add(1)
				return []headlines.Article{}, tt.err
			})
			s := NewSession(fetcher, &SessionOptions{Retry: RetryPolicy{MaxTries: 5, InitialInterval: time.Millisecond}})

			_, err := s.Load(context.Background(), "All")

			assert.Equal(t, int32(1), calls.Load())
			fe, ok := headlines.AsFetchError(err)
			require.True(t, ok)
			assert.Equal(t, tt.err.Kind, fe.Kind)
		})
	}
}

func TestLoad_SingleTry(t *testing.T) {
	var calls atomic.Int32
	fetcher := fetcherFunc(func(context.Context, string) ([]headlines.Article, error) {
		calls.Add(1)
		return []headlines.Article{}, &headlines.FetchError{Kind: headlines.KindNetworkUnavailable}
	})
	s := NewSession(fetcher, noRetry())

	_, err := s.Load(context.Background(), "All")

	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestLoad_CanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fetcher := fetcherFunc(func(context.Context, string) ([]headlines.Article, error) {
		cancel()
		return []headlines.Article{}, &headlines.FetchError{Kind: headlines.KindNetworkUnavailable}
	})
	s := NewSession(fetcher, &SessionOptions{Retry: RetryPolicy{MaxTries: 3, InitialInterval: time.Hour}})

	_, err := s.Load(ctx, "All")

	assert.True(t, headlines.IsKind(err, headlines.KindNetworkUnavailable), "the fetch error should be reported, not the context error")
}

func TestArticle(t *testing.T) {
	s := NewSession(staticFetcher(createTestArticles("a", "b")), noRetry())
	_, err := s.Load(context.Background(), "All")
	require.NoError(t, err)

	article, ok := s.Article("https://example.com/b")
	assert.True(t, ok)
	assert.Equal(t, "b", article.Title)

	_, ok = s.Article("missing")
	assert.False(t, ok)
}

func TestSetSummary_ReplacesArticles(t *testing.T) {
	s := NewSession(staticFetcher(createTestArticles("a", "b")), noRetry())
	_, err := s.Load(context.Background(), "All")
	require.NoError(t, err)

	before := s.Snapshot()

	assert.True(t, s.SetSummary("https://example.com/a", "AI Summary: short"))
	assert.False(t, s.SetSummary("missing", "x"))

	after := s.Snapshot()
	assert.Equal(t, "AI Summary: short", after.Articles[0].Summary)
	assert.Empty(t, after.Articles[1].Summary)
	assert.Empty(t, before.Articles[0].Summary, "earlier snapshots should be unchanged")
}

func TestSnapshot_IsCopy(t *testing.T) {
	s := NewSession(staticFetcher(createTestArticles("a")), noRetry())
	_, err := s.Load(context.Background(), "All")
	require.NoError(t, err)

	snap := s.Snapshot()
	snap.Articles[0].Title = "changed"

	assert.Equal(t, "a", s.Snapshot().Articles[0].Title)
}
