// Package openlibrary provides a rate-limited client for the Open Library search API.
package openlibrary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/fandexapp/fandex-server/internal/metrics"
)

const (
	// DefaultBaseURL is the public Open Library endpoint.
	DefaultBaseURL = "https://openlibrary.org"

	// Open Library has no published hard limit, but author fan-out during
	// recommendation aggregation fires several searches back to back. One
	// request per 500ms with burst 1 spaces those out while leaving single
	// searches instant.
	requestInterval = 500 * time.Millisecond

	defaultTimeout = 30 * time.Second
)

// Client is a rate-limited Open Library API client.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewClient creates a new Open Library client.
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
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Fandex/1.0")

	c.logger.Debug("openlibrary request", "path", path)

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
