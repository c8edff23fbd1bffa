// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/galleria/internal/config"
	"github.com/tomtom215/galleria/internal/logging"
	"github.com/tomtom215/galleria/internal/metrics"
)

const (
	// maxErrorBodySize caps how much of an error response is kept.
	maxErrorBodySize = 64 * 1024

	// maxResponseSize caps successful response bodies.
	maxResponseSize = 32 << 20

	// maxRetryDelay bounds both exponential backoff and Retry-After.
	maxRetryDelay = time.Minute
)

// Compile-time check.
var _ GalleryClient = (*Client)(nil)

// Client is the shared transport for every gallery backend accessor.
type Client struct {
	baseURL        string // no trailing slash
	httpClient     *http.Client
	maxRetries     int
	retryBaseDelay time.Duration
	limiter        *rate.Limiter // nil when outbound limiting is off
	envelope       bool
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client. Its Timeout is kept as given.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client from backend configuration.
func New(cfg *config.BackendConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(cfg.URL, "/"),
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		envelope:       cfg.Envelope,
	}
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs GET {base}{path}?{query} and decodes the body into T.
// operation labels the call in metrics and logs.
func Get[T any](ctx context.Context, c *Client, operation, path string, query url.Values) (T, error) {
	var result T

	start := time.Now()
	body, err := c.fetch(ctx, operation, path, query)
	if err == nil {
		err = decodeInto(body, path, &result)
	}
	metrics.RecordBackendRequest(operation, outcome(err), time.Since(start))

	if err != nil {
		logging.Ctx(ctx).Debug().
			Err(err).
			Str("operation", operation).
			Str("path", path).
			Dur("duration", time.Since(start)).
			Msg("Gallery backend request failed")
		return result, err
	}
	return result, nil
}

// fetch returns the raw payload: the response body, or its envelope data
// when envelope unwrapping is on.
func (c *Client) fetch(ctx context.Context, operation, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("GET %s: outbound rate limiter: %w", path, err)
		}
	}

	resp, err := c.doRequestWithRateLimit(ctx, operation, path, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("GET %s: read response: %w", path, err)
	}

	if !c.envelope {
		return body, nil
	}
	return unwrapEnvelope(body, path, resp.StatusCode)
}

// doRequestWithRateLimit sends the request, retrying HTTP 429 responses with
// exponential backoff (base, 2*base, 4*base, ...) or the server's Retry-After.
// Waits are cancelled by ctx.
func (c *Client) doRequestWithRateLimit(ctx context.Context, operation, path, reqURL string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("GET %s: failed to create request: %w", path, err)
		}
		req.Header.Set("Accept", "application/json")
		if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
			req.Header.Set("X-Request-ID", requestID)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w", path, err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		if attempt >= c.maxRetries {
			apiErr := &APIError{
				StatusCode: resp.StatusCode,
				Path:       path,
				Body:       string(readBodyForError(resp.Body)),
			}
			_ = resp.Body.Close()
			return nil, apiErr
		}

		delay := retryDelay(c.retryBaseDelay, attempt, resp.Header.Get("Retry-After"))
		_ = resp.Body.Close()

		metrics.RecordBackendRetry(operation)
		logging.Ctx(ctx).Debug().
			Str("operation", operation).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("Gallery backend rate limited, backing off")

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
}

// retryDelay prefers Retry-After (seconds or HTTP date) over exponential backoff.
func retryDelay(base time.Duration, attempt int, retryAfter string) time.Duration {
	delay := base
	for i := 0; i < attempt && delay < maxRetryDelay; i++ {
		delay *= 2
	}

	if retryAfter != "" {
		if secs, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && secs >= 0 {
			delay = time.Duration(secs) * time.Second
		} else if at, err := http.ParseTime(retryAfter); err == nil {
			delay = time.Until(at)
		}
	}

	switch {
	case delay < 0:
		return 0
	case delay > maxRetryDelay:
		return maxRetryDelay
	}
	return delay
}

// readBodyForError reads at most maxErrorBodySize bytes for diagnostics.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return bytes.TrimSpace(body)
}

func decodeInto(body []byte, path string, dst interface{}) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: GET %s: %w", ErrDecode, path, err)
	}
	return nil
}

// envelope is the {"code","message","data"} wrapper some gallery backends use.
type envelope struct {
	Code    *int            `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// unwrapEnvelope returns data when code is 0 or 200. A body without a code
// field is passed through unchanged so plain endpoints keep working.
func unwrapEnvelope(body []byte, path string, status int) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return body, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: GET %s: envelope: %w", ErrDecode, path, err)
	}
	if env.Code == nil {
		return body, nil
	}

	if *env.Code != 0 && *env.Code != http.StatusOK {
		return nil, &APIError{
			StatusCode: status,
			Path:       path,
			Code:       *env.Code,
			Message:    env.Message,
		}
	}
	if len(env.Data) == 0 {
		return []byte("null"), nil
	}
	return env.Data, nil
}
