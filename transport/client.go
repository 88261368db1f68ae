// Package transport is a small HTTP client used to fetch an anchor's
// published stellar.toml document: a single GET with a timeout and a
// bounded retry on transient failures, rewired onto this dispatcher's own
// error taxonomy. It intentionally stays narrow to what assetcatalog needs
// rather than a general-purpose REST client.
package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	dispatchererrors "github.com/stellaranchor/action-dispatcher/errors"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 2
	defaultBackoff    = 500 * time.Millisecond
)

// Client performs GET requests with a timeout and a bounded retry on
// connection errors and 5xx responses.
type Client struct {
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout (default: 10s).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a Client tuned for fetching small, occasionally-flaky
// anchor metadata documents.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs an HTTP GET, retrying on connection errors and 5xx
// responses with linear backoff. The caller is responsible for closing the
// response body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, dispatchererrors.NewInternal("request cancelled", ctx.Err())
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, dispatchererrors.NewInternal("failed to create GET request", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %s", resp.Status)
			continue
		}
		return resp, nil
	}
	return nil, dispatchererrors.NewInternal(fmt.Sprintf("GET %s failed after %d attempts", url, c.maxRetries+1), lastErr)
}
