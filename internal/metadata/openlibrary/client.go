// Package openlibrary provides a rate-limited client for the Open Library
// search API and its ISBN-keyed cover image service.
package openlibrary

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public Open Library API root.
	DefaultBaseURL = "https://openlibrary.org"
	// DefaultCoversBaseURL is the public cover image service root.
	DefaultCoversBaseURL = "https://covers.openlibrary.org"

	// HTTP client settings.
	defaultTimeout = 30 * time.Second
)

// Client is a rate-limited Open Library client.
type Client struct {
	http          *http.Client
	limiter       *rate.Limiter
	logger        *slog.Logger
	baseURL       string
	coversBaseURL string
}

// New creates a new Open Library client.
// Rate limited to roughly one request per second with a small burst,
// in line with Open Library's published guidance.
func New(baseURL, coversBaseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if coversBaseURL == "" {
		coversBaseURL = DefaultCoversBaseURL
	}
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:       rate.NewLimiter(rate.Every(time.Second), 3),
		logger:        logger,
		baseURL:       baseURL,
		coversBaseURL: coversBaseURL,
	}
}

// Close releases resources. Currently a no-op but included for interface consistency.
func (c *Client) Close() {
	// No persistent resources to close
}

// doRequest executes a GET against the catalog with rate limiting and
// returns the response body. Non-2xx statuses map to sentinel errors.
func (c *Client) doRequest(ctx context.Context, fullURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ShelfTalk/1.0")

	c.logger.Debug("openlibrary request", "url", fullURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, ErrServer
	default:
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
