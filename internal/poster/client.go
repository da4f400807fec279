// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// TMDB defaults.
const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	DefaultLanguage     = "en-US"
	PlaceholderURL      = "https://via.placeholder.com/500x750?text=No+Image"
)

// maxErrorBodySize bounds how much of an error response is read.
const maxErrorBodySize = 4 * 1024

// ErrMissingAPIKey is returned by NewClient without an API key.
var ErrMissingAPIKey = errors.New("tmdb api key is required")

// MovieDetails is the subset of the TMDB movie resource used here.
type MovieDetails struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path"`
}

// DetailsFetcher fetches movie metadata. Client and BreakerClient
// implement it.
type DetailsFetcher interface {
	MovieDetails(ctx context.Context, id catalog.ExternalID) (*MovieDetails, error)
}

// Client talks to the TMDB v3 API.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	client     *http.Client
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter throttles outbound requests.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithRetries sets how many times an HTTP 429 is retried and the base
// backoff delay.
func WithRetries(maxRetries int, baseDelay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.retryDelay = baseDelay
	}
}

// NewClient creates a TMDB client. Empty baseURL and language fall back to
// the TMDB defaults.
func NewClient(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if language == "" {
		language = DefaultLanguage
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		language:   language,
		client:     &http.Client{Timeout: 10 * time.Second},
		maxRetries: 2,
		retryDelay: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MovieDetails fetches /movie/{id}. A response without poster_path is a
// success with an empty PosterPath.
func (c *Client) MovieDetails(ctx context.Context, id catalog.ExternalID) (*MovieDetails, error) {
	if id.IsZero() {
		return nil, lookupErr(id, 0, errors.New("empty movie id"))
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	reqURL := fmt.Sprintf("%s/movie/%s?%s", c.baseURL, url.PathEscape(id.String()), params.Encode())

	resp, err := c.doRequestWithRetry(ctx, reqURL)
	if err != nil {
		return nil, lookupErr(id, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, lookupErr(id, resp.StatusCode, fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body))))
	}

	var details MovieDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, lookupErr(id, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return &details, nil
}

// doRequestWithRetry issues a GET, waiting on the limiter first and
// retrying HTTP 429 with exponential backoff or the server's Retry-After.
func (c *Client) doRequestWithRetry(ctx context.Context, reqURL string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limiter: %w", err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", redact(err, c.apiKey))
		}

		if resp.StatusCode != http.StatusTooManyRequests || attempt >= c.maxRetries {
			return resp, nil
		}
		_ = resp.Body.Close()

		delay := c.retryDelay * time.Duration(1<<uint(attempt))
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil && secs >= 0 {
				delay = time.Duration(secs) * time.Second
			}
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
}

// redact strips the API key from transport errors, which embed the URL.
func redact(err error, apiKey string) error {
	msg := err.Error()
	if apiKey == "" || !strings.Contains(msg, apiKey) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(msg, apiKey, "REDACTED"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

// NoPosterFetcher reports every movie as having no poster. It stands in for
// Client when no API key is configured, so every poster is the placeholder.
type NoPosterFetcher struct{}

// MovieDetails returns details with an empty poster path.
func (NoPosterFetcher) MovieDetails(_ context.Context, _ catalog.ExternalID) (*MovieDetails, error) {
	return &MovieDetails{}, nil
}
