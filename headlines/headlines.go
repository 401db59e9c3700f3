// Package headlines retrieves top headlines from the news provider and
// normalizes the provider's records into Articles.
package headlines

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the provider's top-headlines listing endpoint.
const DefaultBaseURL = "https://newsapi.org/v2/top-headlines"

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 10 << 20

// Config holds the retrieval settings that used to be module globals.
type Config struct {
	// Listing endpoint, without query parameters
	BaseURL string
	// Credential sent in the X-Api-Key header
	APIKey string
	// Provider market/region
	Country string
	// Number of results requested per fetch
	PageSize int
	// Display category to provider token table
	CategoryTokens map[Category]string
	HTTPClient     *http.Client
	Now            func() time.Time
	Logger         *slog.Logger
}

// DefaultConfig returns a configuration with the provider defaults and no
// credential.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		Country:        "us",
		PageSize:       30,
		CategoryTokens: copyTokens(DefaultCategoryTokens),
		HTTPClient:     &http.Client{},
		Now:            time.Now,
	}
}

// Client is the article feed retrieval service. It holds no state between
// calls and is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	country    string
	pageSize   int
	tokens     map[Category]string
	httpClient *http.Client
	now        func() time.Time
	logger     *slog.Logger
}

// NewClient creates a client from cfg. Zero-valued fields fall back to
// DefaultConfig.
func NewClient(cfg *Config) *Client {
	def := DefaultConfig()
	if cfg == nil {
		cfg = def
	}

	c := &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		country:    cfg.Country,
		pageSize:   cfg.PageSize,
		httpClient: cfg.HTTPClient,
		now:        cfg.Now,
		logger:     cfg.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = def.BaseURL
	}
	if c.country == "" {
		c.country = def.Country
	}
	if c.pageSize <= 0 {
		c.pageSize = def.PageSize
	}
	if cfg.CategoryTokens != nil {
		c.tokens = copyTokens(cfg.CategoryTokens)
	} else {
		c.tokens = def.CategoryTokens
	}
	if c.httpClient == nil {
		c.httpClient = def.HTTPClient
	}
	if c.now == nil {
		c.now = def.Now
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// decodeEnvelope splits a provider reply into its top-level fields. Values
// stay raw, so a field of an unexpected type does not spoil the others.
func decodeEnvelope(body []byte) (map[string]json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	return envelope, nil
}

// providerMessage returns the message of an error reply, or "" when the body
// carries no string message.
func providerMessage(body []byte) string {
	envelope, err := decodeEnvelope(body)
	if err != nil {
		return ""
	}
	var message string
	if json.Unmarshal(envelope["message"], &message) != nil {
		return ""
	}
	return message
}

// Fetch retrieves the headlines for category. It performs exactly one
// request. On failure the returned slice is empty and the error is a
// *FetchError; a successful fetch may legitimately return zero articles.
func (c *Client) Fetch(ctx context.Context, category string) ([]Article, error) {
	target, err := c.requestURL(category)
	if err != nil {
		return []Article{}, &FetchError{Kind: KindNetworkUnavailable, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return []Article{}, &FetchError{Kind: KindNetworkUnavailable, Err: err}
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("fetching headlines", "category", category, "url", target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("headlines request failed", "category", category, "error", err)
		return []Article{}, &FetchError{Kind: KindNetworkUnavailable, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.logger.Warn("failed to read headlines response", "category", category, "error", err)
		return []Article{}, &FetchError{Kind: KindNetworkUnavailable, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fe := &FetchError{Kind: KindProviderError, Status: resp.StatusCode, Message: providerMessage(body)}
		c.logger.Warn("provider returned an error", "category", category, "status", fe.Status, "message", fe.Message)
		return []Article{}, fe
	}

	records, err := decodeArticles(body)
	if err != nil {
		c.logger.Warn("malformed headlines response", "category", category, "error", err)
		return []Article{}, &FetchError{Kind: KindMalformedResponse, Err: err}
	}

	articles := normalizeAll(records, c.now())
	c.logger.Debug("fetched headlines", "category", category, "count", len(articles))

	return articles, nil
}

// requestURL builds the listing URL. Only categories present in the token
// table add a category parameter.
func (c *Client) requestURL(category string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("country", c.country)
	q.Set("pageSize", strconv.Itoa(c.pageSize))
	if token, ok := c.tokens[Category(category)]; ok && token != "" {
		q.Set("category", token)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

var errNoArticles = errors.New("response has no articles array")

// decodeArticles checks the envelope of a 2xx body and returns its raw
// records.
func decodeArticles(body []byte) ([]json.RawMessage, error) {
	envelope, err := decodeEnvelope(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	raw := bytes.TrimSpace(envelope["articles"])
	if len(raw) == 0 || raw[0] != '[' {
		return nil, errNoArticles
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to parse articles: %w", err)
	}

	return records, nil
}
