// Package jikan provides a rate-limited client for the Jikan anime API (v4).
package jikan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fandexapp/fandex-server/internal/metrics"
)

const (
	// DefaultBaseURL is the public Jikan v4 endpoint.
	DefaultBaseURL = "https://api.jikan.moe/v4"

	// Jikan asks clients to stay under 3 req/s. One request per 400ms with
	// burst 1 means the first call goes out immediately and every later call
	// waits out the interval, so back-to-back aggregation calls are spaced
	// without a trailing delay after the last one.
	requestInterval = 400 * time.Millisecond

	defaultTimeout = 30 * time.Second
)

// Client is a rate-limited Jikan API client.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewClient creates a new Jikan client.
// An empty baseURL falls back to the public API.
func NewClient(baseURL string, logger *slog.Logger, collector *metrics.Collector) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(requestInterval), 1),
		logger:  logger,
		metrics: collector,
	}
}

// doRequest executes a GET against the API with rate limiting.
// rawQuery is appended as-is; callers encode it themselves.
func (c *Client) doRequest(ctx context.Context, path, rawQuery string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if rawQuery != "" {
		u += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Fandex/1.0")

	c.logger.Debug("jikan request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusBadRequest:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}

// outcome maps an error to a metrics outcome label.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrRateLimited):
		return metrics.OutcomeRateLimited
	default:
		return metrics.OutcomeError
	}
}
