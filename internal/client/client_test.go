// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/galleria/internal/config"
	"github.com/tomtom215/galleria/internal/logging"
)

// testBackendConfig returns a config pointing at baseURL with fast retries.
func testBackendConfig(baseURL string) *config.BackendConfig {
	return &config.BackendConfig{
		URL:            baseURL,
		Timeout:        5 * time.Second,
		MaxRetries:     3,
		RetryBaseDelay: time.Millisecond,
		RateLimitBurst: 1,
	}
}

// newTestClient starts an httptest server that serves handler under /api.
func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*config.BackendConfig)) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := testBackendConfig(srv.URL + "/api/")
	for _, m := range mutate {
		m(cfg)
	}
	return New(cfg)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestNew(t *testing.T) {
	t.Parallel()

	c := New(testBackendConfig("http://gallery:8080/api/"))
	if c.BaseURL() != "http://gallery:8080/api" {
		t.Errorf("BaseURL() = %q, want trailing slash trimmed", c.BaseURL())
	}
	if c.limiter != nil {
		t.Error("limiter should be nil when RateLimitRPS is 0")
	}
	if c.httpClient.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", c.httpClient.Timeout)
	}

	limited := New(&config.BackendConfig{URL: "http://gallery", RateLimitRPS: 10})
	if limited.limiter == nil || limited.limiter.Burst() != 1 {
		t.Error("limiter should be created with a minimum burst of 1")
	}

	custom := &http.Client{Timeout: time.Second}
	if New(testBackendConfig("http://gallery"), WithHTTPClient(custom)).httpClient != custom {
		t.Error("WithHTTPClient was not applied")
	}
}

func TestGet_ErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       int
		body         string
		wantStatus   int
		wantNotFound bool
		wantDecode   bool
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"error":"no such key"}`, wantStatus: 404, wantNotFound: true},
		{name: "bad request", status: http.StatusBadRequest, body: `month out of range`, wantStatus: 400},
		{name: "server error", status: http.StatusInternalServerError, body: `boom`, wantStatus: 500},
		{name: "malformed body", status: http.StatusOK, body: `{not json`, wantDecode: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := Get[map[string]interface{}](context.Background(), c, "test", "/thing", nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrNotFound); got != tt.wantNotFound {
				t.Errorf("errors.Is(ErrNotFound) = %v, want %v", got, tt.wantNotFound)
			}
			if got := errors.Is(err, ErrDecode); got != tt.wantDecode {
				t.Errorf("errors.Is(ErrDecode) = %v, want %v", got, tt.wantDecode)
			}
			if tt.wantStatus != 0 {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("error %v is not *APIError", err)
				}
				if apiErr.StatusCode != tt.wantStatus || apiErr.Path != "/thing" {
					t.Errorf("APIError = %+v", apiErr)
				}
				if !strings.Contains(apiErr.Body, strings.TrimSpace(tt.body)) {
					t.Errorf("APIError.Body = %q, want %q", apiErr.Body, tt.body)
				}
			}
		})
	}
}

func TestGet_RateLimitBackoff(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) <= 2 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		writeJSON(w, http.StatusOK, `{"ok":true}`)
	})

	got, err := Get[map[string]bool](context.Background(), c, "test", "/limited", nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got["ok"] {
		t.Errorf("Get() = %v", got)
	}
	if n := attempts.Load(); n != 3 {
		t.Errorf("attempts = %d, want 3", n)
	}
}

func TestGet_RateLimitExhausted(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		writeJSON(w, http.StatusTooManyRequests, `slow down`)
	}, func(cfg *config.BackendConfig) {
		cfg.MaxRetries = 1
	})

	_, err := Get[map[string]bool](context.Background(), c, "test", "/limited", nil)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("error = %v, want ErrRateLimited", err)
	}
	if n := attempts.Load(); n != 2 {
		t.Errorf("attempts = %d, want 2 (initial + 1 retry)", n)
	}
}

func TestGet_ContextCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Get[map[string]bool](ctx, c, "test", "/slow", nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
}

func TestGet_OutboundLimiter(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		writeJSON(w, http.StatusOK, `{}`)
	}, func(cfg *config.BackendConfig) {
		cfg.RateLimitRPS = 0.01 // one token per 100s
		cfg.RateLimitBurst = 1
	})

	if _, err := Get[map[string]interface{}](context.Background(), c, "test", "/a", nil); err != nil {
		t.Fatalf("first Get() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := Get[map[string]interface{}](ctx, c, "test", "/a", nil); err == nil {
		t.Fatal("second Get() should fail waiting for the limiter")
	}
	if n := attempts.Load(); n != 1 {
		t.Errorf("backend saw %d requests, want 1", n)
	}
}

func TestGet_RequestIDPropagation(t *testing.T) {
	t.Parallel()

	var seen atomic.Value
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.Header.Get("X-Request-ID"))
		writeJSON(w, http.StatusOK, `{}`)
	})

	ctx := logging.ContextWithRequestID(context.Background(), "req-42")
	if _, err := Get[map[string]interface{}](ctx, c, "test", "/x", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got, _ := seen.Load().(string); got != "req-42" {
		t.Errorf("X-Request-ID = %q, want req-42", got)
	}
}

func TestGet_Envelope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		body         string
		want         string
		wantNotFound bool
		wantErr      bool
	}{
		{name: "code zero", body: `{"code":0,"message":"ok","data":{"name":"a"}}`, want: "a"},
		{name: "code 200", body: `{"code":200,"message":"ok","data":{"name":"b"}}`, want: "b"},
		{name: "plain body passes through", body: `{"name":"c"}`, want: "c"},
		{name: "envelope not found", body: `{"code":404,"message":"config not found","data":null}`, wantErr: true, wantNotFound: true},
		{name: "envelope failure", body: `{"code":5001,"message":"storage offline"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, tt.body)
			}, func(cfg *config.BackendConfig) {
				cfg.Envelope = true
			})

			got, err := Get[struct {
				Name string `json:"name"`
			}](context.Background(), c, "test", "/env", nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if errors.Is(err, ErrNotFound) != tt.wantNotFound {
					t.Errorf("errors.Is(ErrNotFound) = %v, want %v", !tt.wantNotFound, tt.wantNotFound)
				}
				var apiErr *APIError
				if !errors.As(err, &apiErr) || apiErr.Message == "" {
					t.Errorf("expected *APIError with message, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Name != tt.want {
				t.Errorf("Name = %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestRetryDelay(t *testing.T) {
	t.Parallel()

	base := 100 * time.Millisecond
	tests := []struct {
		name       string
		attempt    int
		retryAfter string
		want       time.Duration
	}{
		{name: "first attempt", attempt: 0, want: 100 * time.Millisecond},
		{name: "doubles", attempt: 3, want: 800 * time.Millisecond},
		{name: "retry-after seconds", attempt: 3, retryAfter: "2", want: 2 * time.Second},
		{name: "retry-after zero", attempt: 1, retryAfter: "0", want: 0},
		{name: "retry-after garbage ignored", attempt: 1, retryAfter: "soon", want: 200 * time.Millisecond},
		{name: "capped", attempt: 40, want: maxRetryDelay},
		{name: "retry-after capped", attempt: 0, retryAfter: "3600", want: maxRetryDelay},
		{name: "retry-after past date", attempt: 0, retryAfter: "Mon, 02 Jan 2006 15:04:05 GMT", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := retryDelay(base, tt.attempt, tt.retryAfter); got != tt.want {
				t.Errorf("retryDelay(%v, %d, %q) = %v, want %v", base, tt.attempt, tt.retryAfter, got, tt.want)
			}
		})
	}
}

func TestReadBodyForError_Truncates(t *testing.T) {
	t.Parallel()

	big := strings.Repeat("x", maxErrorBodySize+100)
	got := readBodyForError(strings.NewReader(big))
	if !strings.HasSuffix(string(got), "(truncated)") {
		t.Error("oversized body should be marked truncated")
	}
	if len(got) > maxErrorBodySize+32 {
		t.Errorf("len = %d, want about %d", len(got), maxErrorBodySize)
	}
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  *APIError
		want string
	}{
		{&APIError{StatusCode: 404, Path: "/video/info/x"}, "GET /video/info/x: status 404"},
		{&APIError{StatusCode: 500, Path: "/a", Body: "boom"}, "GET /a: status 500: boom"},
		{&APIError{StatusCode: 200, Path: "/a", Code: 5001, Message: "offline"}, "GET /a: status 200 code 5001: offline"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}

	if IsClientError(&APIError{StatusCode: 429}) {
		t.Error("429 should not be a client error")
	}
	if !IsClientError(&APIError{StatusCode: 200, Code: 404}) {
		t.Error("envelope 404 should be a client error")
	}
	if Status(errors.New("plain")) != 0 {
		t.Error("Status of a non-APIError should be 0")
	}
}
