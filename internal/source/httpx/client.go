// Package httpx is the shared JSON fetch client for all source adapters.
// It applies a uniform timeout, per-host rate limiting, and one retry
// with jittered backoff. Adapters never surface its errors to callers;
// they fall back to synthetic content instead.
package httpx

import (
	"context"
	"encoding/json"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures the client.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	// HostRate is requests/second allowed per upstream host. Hosts get a
	// limiter lazily on first use.
	HostRate rate.Limit
	HostBurst int
	Retries   int
}

// Client fetches JSON documents with rate limiting and a bounded retry.
type Client struct {
	http *http.Client
	opts Options

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a client with sensible defaults filled in.
func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 8 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "civicfeed/1.0"
	}
	if opts.HostRate == 0 {
		opts.HostRate = 5
	}
	if opts.HostBurst == 0 {
		opts.HostBurst = 5
	}
	if opts.Retries == 0 {
		opts.Retries = 1
	}
	return &Client{
		http:     &http.Client{Timeout: opts.Timeout},
		opts:     opts,
		limiters: make(map[string]*rate.Limiter),
	}
}

// GetJSON fetches rawURL and decodes the response body into out.
// Non-2xx statuses and malformed bodies are errors; transient failures
// are retried once with jittered backoff.
func (c *Client) GetJSON(ctx context.Context, rawURL string, headers map[string]string, out any) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return eris.Wrap(err, "httpx: parse url")
	}

	if err := c.limiterFor(u.Host).Wait(ctx); err != nil {
		return eris.Wrap(err, "httpx: rate limiter wait")
	}

	var lastErr error
	for attempt := 0; attempt <= c.opts.Retries; attempt++ {
		if attempt > 0 {
			delay := 300*time.Millisecond + time.Duration(rand.IntN(200))*time.Millisecond
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return eris.Wrap(ctx.Err(), "httpx: canceled")
			case <-timer.C:
			}
			zap.L().Debug("httpx: retrying request",
				zap.String("url", u.Redacted()),
				zap.Int("attempt", attempt),
			)
		}

		lastErr = c.doOnce(ctx, rawURL, headers, out)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, rawURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return eris.Wrap(err, "httpx: build request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "httpx: request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return eris.Errorf("httpx: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return eris.Wrap(err, "httpx: decode body")
	}
	return nil
}

func (c *Client) limiterFor(host string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	lim, ok := c.limiters[host]
	if !ok {
		lim = rate.NewLimiter(c.opts.HostRate, c.opts.HostBurst)
		c.limiters[host] = lim
	}
	return lim
}
