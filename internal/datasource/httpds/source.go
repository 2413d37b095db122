// Package httpds implements an HTTP-backed data source so pipeline inputs can
// point straight at a data-explorer export URL instead of a pre-downloaded
// file. Transient failures (5xx, 429, transport errors) are retried with
// exponential backoff; anything else is final.
package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config configures the HTTP source. Zero values get defaults: 60s timeout,
// 3 retries, 200ms initial backoff capped at 5s.
type Config struct {
	// Timeout is the per-request timeout applied at the http.Client level.
	// Export endpoints can be slow to materialize large extracts.
	Timeout time.Duration

	// MaxRetries is the number of retry attempts after the initial request.
	MaxRetries int

	// InitialBackoff is the wait before the first retry; each subsequent
	// retry doubles it up to MaxBackoff.
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// Transport optionally replaces the default http.Transport, mainly for
	// tests.
	Transport http.RoundTripper
}

// Source fetches one raw input over HTTP.
type Source struct {
	url    string
	client *http.Client
	cfg    Config
}

// NewSource returns a Source bound to url, applying Config defaults.
func NewSource(url string, cfg Config) *Source {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 200 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	return &Source{
		url: url,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: cfg.Transport,
		},
		cfg: cfg,
	}
}

// Open issues a GET for the configured URL and returns the response body on
// 200. Retryable failures are attempted MaxRetries more times with backoff;
// the backoff wait respects ctx cancellation.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	attempts := s.cfg.MaxRetries + 1
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return nil, fmt.Errorf("httpds: build request: %w", err)
		}
		req.Header.Set("Accept", "text/csv, */*")

		resp, err := s.client.Do(req)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("httpds: get %s: %w", s.url, err)
		case resp.StatusCode == http.StatusOK:
			return resp.Body, nil
		case retryableStatus(resp.StatusCode):
			resp.Body.Close()
			lastErr = fmt.Errorf("httpds: get %s: retryable status %d", s.url, resp.StatusCode)
		default:
			resp.Body.Close()
			return nil, fmt.Errorf("httpds: get %s: status %d", s.url, resp.StatusCode)
		}

		if attempt+1 >= attempts {
			break
		}
		if err := wait(ctx, backoff(s.cfg.InitialBackoff, attempt, s.cfg.MaxBackoff)); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

// retryableStatus is intentionally conservative: 5xx and 429 are transient,
// everything else is final.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || (code >= 500 && code <= 599)
}

func backoff(initial time.Duration, attempt int, max time.Duration) time.Duration {
	d := initial << attempt
	if d > max || d <= 0 {
		return max
	}
	return d
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
