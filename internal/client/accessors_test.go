// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/tomtom215/galleria/internal/models"
)

// galleryBackend is a minimal in-memory gallery backend speaking the real paths.
func galleryBackend(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		p := strings.TrimPrefix(r.URL.EscapedPath(), "/api")

		switch {
		case p == "/system-config/storage/bucket":
			writeJSON(w, http.StatusOK, `{"id":1,"category":"storage","key":"bucket","value":"media","valueType":"string","isEncrypted":false,"description":null,"metadata":null,"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-02T00:00:00Z"}`)
		case p == "/system-config/storage/missing":
			writeJSON(w, http.StatusNotFound, `{"message":"not found"}`)
		case p == "/system-config/storage":
			writeJSON(w, http.StatusOK, `[
				{"id":1,"category":"storage","key":"bucket","value":"media","valueType":"string","isEncrypted":false,"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"},
				{"id":2,"category":"storage","key":"region","value":"eu","valueType":"string","isEncrypted":false,"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}
			]`)
		case p == "/system-config/empty":
			writeJSON(w, http.StatusOK, `[]`)
		case p == "/system-config/nullcat":
			writeJSON(w, http.StatusOK, `null`)
		case p == "/timeline/statistics":
			writeJSON(w, http.StatusOK, `{"earliestDate":"2022-01-15T10:30:00Z","latestDate":"2024-03-20T08:00:00Z","totalCount":12,"monthlyDistribution":[{"year":2022,"month":1,"count":7},{"year":2024,"month":3,"count":5}]}`)
		case p == "/timeline/bucket":
			year, month := r.URL.Query().Get("year"), r.URL.Query().Get("month")
			if month == "13" {
				writeJSON(w, http.StatusBadRequest, `{"message":"month must be between 1 and 12"}`)
				return
			}
			photos := make([]string, 0, 5)
			for i := 0; i < 5; i++ {
				photos = append(photos, fmt.Sprintf(`{"uuid":"p-%d","objectKey":"2024/03/%d.jpg","createdAt":"2024-03-0%dT12:00:00Z","mediaType":"image","coverUrl":"https://cdn/%d.jpg"}`, i, i, i+1, i))
			}
			writeJSON(w, http.StatusOK, fmt.Sprintf(`{"year":%s,"month":%s,"count":5,"photos":[%s]}`, year, month, strings.Join(photos, ",")))
		case p == "/video/get-url/abc-123":
			writeJSON(w, http.StatusOK, `[{"src":"https://cdn/v/abc.mp4","label":"1080P","type":"video/mp4"},{"src":"https://cdn/v/abc-720.mp4","label":"720P","type":"video/mp4"}]`)
		case p == "/video/info/abc-123":
			writeJSON(w, http.StatusOK, `{"objectKey":"videos/abc.mp4","title":"Beach","description":"Summer","coverUrl":"https://cdn/abc.jpg","createdAt":"2024-07-01T10:00:00","tags":[{"id":1,"name":"summer"}]}`)
		case p == "/video/get-url/broken", p == "/video/info/broken":
			writeJSON(w, http.StatusInternalServerError, `oops`)
		case p == "/video/info/untagged":
			writeJSON(w, http.StatusOK, `{"objectKey":"v","title":"t","description":"","coverUrl":"","createdAt":"2024-07-01T10:00:00Z","tags":null}`)
		default:
			writeJSON(w, http.StatusNotFound, `{"message":"no route `+p+`"}`)
		}
	}
}

func TestGetSystemConfig(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, galleryBackend(t))

	cfg, err := c.GetSystemConfig(context.Background(), "storage", "bucket")
	if err != nil {
		t.Fatalf("GetSystemConfig() error = %v", err)
	}
	if cfg.Category != "storage" || cfg.Key != "bucket" {
		t.Errorf("got (%q, %q), want (storage, bucket)", cfg.Category, cfg.Key)
	}
	if cfg.Description != nil || cfg.Metadata != nil {
		t.Errorf("optional fields should be nil: %+v", cfg)
	}

	_, err = c.GetSystemConfig(context.Background(), "storage", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing key error = %v, want ErrNotFound", err)
	}
}

func TestGetSystemConfig_PathEscaping(t *testing.T) {
	t.Parallel()

	var gotPath atomic.Value
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.EscapedPath())
		writeJSON(w, http.StatusOK, `{"category":"ai api/v2","key":"model?name"}`)
	})

	cfg, err := c.GetSystemConfig(context.Background(), "ai api/v2", "model?name")
	if err != nil {
		t.Fatalf("GetSystemConfig() error = %v", err)
	}
	if got, want := gotPath.Load(), "/api/system-config/ai%20api%2Fv2/model%3Fname"; got != want {
		t.Errorf("path = %v, want %s", got, want)
	}
	if cfg.Category != "ai api/v2" || cfg.Key != "model?name" {
		t.Errorf("got (%q, %q)", cfg.Category, cfg.Key)
	}
}

func TestGetSystemConfig_InvalidArgument(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusOK, `{}`)
	})

	if _, err := c.GetSystemConfig(context.Background(), "", "key"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty category error = %v", err)
	}
	if _, err := c.GetSystemConfig(context.Background(), "storage", "  "); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("blank key error = %v", err)
	}
	if _, err := c.GetSystemConfigsByCategory(context.Background(), ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty category error = %v", err)
	}
	if _, err := c.GetVideoInfo(context.Background(), ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty uuid error = %v", err)
	}
	if n := calls.Load(); n != 0 {
		t.Errorf("backend received %d requests, want 0", n)
	}
}

func TestGetSystemConfig_NullBody(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `null`)
	})

	_, err := c.GetSystemConfig(context.Background(), "storage", "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("null body error = %v, want ErrNotFound", err)
	}
}

func TestGetSystemConfigsByCategory(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, galleryBackend(t))

	tests := []struct {
		category string
		wantLen  int
	}{
		{"storage", 2},
		{"empty", 0},
		{"nullcat", 0},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			t.Parallel()
			configs, err := c.GetSystemConfigsByCategory(context.Background(), tt.category)
			if err != nil {
				t.Fatalf("GetSystemConfigsByCategory() error = %v", err)
			}
			if configs == nil {
				t.Fatal("result must be non-nil")
			}
			if len(configs) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(configs), tt.wantLen)
			}
			for _, cfg := range configs {
				if cfg.Category != tt.category {
					t.Errorf("element category = %q, want %q", cfg.Category, tt.category)
				}
			}
		})
	}
}

func TestGetTimelineStatistics(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, galleryBackend(t))

	stats, err := c.GetTimelineStatistics(context.Background())
	if err != nil {
		t.Fatalf("GetTimelineStatistics() error = %v", err)
	}
	if stats.EarliestDate.After(stats.LatestDate.Time) {
		t.Errorf("earliestDate %v after latestDate %v", stats.EarliestDate.Time, stats.LatestDate.Time)
	}
	if stats.TotalCount != 12 || len(stats.MonthlyDistribution) != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if !stats.Reconciled() {
		t.Error("distribution should reconcile with totalCount")
	}
}

func TestGetTimelineBucket(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, galleryBackend(t))

	bucket, err := c.GetTimelineBucket(context.Background(), 2024, 3)
	if err != nil {
		t.Fatalf("GetTimelineBucket() error = %v", err)
	}
	if bucket.Year != 2024 || bucket.Month != 3 {
		t.Errorf("bucket = %d-%d, want 2024-3", bucket.Year, bucket.Month)
	}
	if bucket.Count != 5 || len(bucket.Photos) != 5 {
		t.Errorf("count = %d photos = %d, want 5/5", bucket.Count, len(bucket.Photos))
	}
	if int64(len(bucket.Photos)) > bucket.Count {
		t.Error("photos must not exceed count")
	}
	if bucket.Photos[0].UUID != "p-0" || bucket.Photos[0].IsVideo() {
		t.Errorf("first photo = %+v", bucket.Photos[0])
	}
}

func TestGetTimelineBucket_MonthForwarded(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, galleryBackend(t))

	_, err := c.GetTimelineBucket(context.Background(), 2024, 13)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError from the backend", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || !strings.Contains(apiErr.Body, "between 1 and 12") {
		t.Errorf("APIError = %+v", apiErr)
	}
}

func TestGetTimelineBucket_NoCoalescing(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusOK, `{"year":2024,"month":3,"count":0,"photos":[]}`)
	})

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := c.GetTimelineBucket(context.Background(), 2024, 3)
			done <- err
		}()
	}
	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Fatalf("GetTimelineBucket() error = %v", err)
		}
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("backend saw %d requests, want 2", n)
	}
}

func TestGetVideoURL(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, galleryBackend(t))

	sources, err := c.GetVideoURL(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("GetVideoURL() error = %v", err)
	}
	if len(sources) != 2 || sources[0].Label != "1080P" || sources[1].Src != "https://cdn/v/abc-720.mp4" {
		t.Errorf("sources = %+v", sources)
	}
}

func TestParseVideoSources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    []models.VideoSource
		wantErr bool
	}{
		{
			name: "bare string",
			raw:  `"https://cdn/v/a.webm?sig=1"`,
			want: []models.VideoSource{{Src: "https://cdn/v/a.webm?sig=1", Label: DefaultSourceLabel, Type: "video/webm"}},
		},
		{
			name: "single object with url",
			raw:  `{"url":"https://cdn/v/a.m3u8","quality":"auto"}`,
			want: []models.VideoSource{{Src: "https://cdn/v/a.m3u8", Label: "auto", Type: "application/x-mpegURL"}},
		},
		{
			name: "object with source list",
			raw:  `{"videoSources":[{"src":"https://cdn/a.mp4","label":"720P","type":"video/mp4"}]}`,
			want: []models.VideoSource{{Src: "https://cdn/a.mp4", Label: "720P", Type: "video/mp4"}},
		},
		{
			name: "list of strings",
			raw:  `["https://cdn/a.MOV"]`,
			want: []models.VideoSource{{Src: "https://cdn/a.MOV", Label: DefaultSourceLabel, Type: "video/quicktime"}},
		},
		{
			name: "entries without src dropped",
			raw:  `[{"label":"broken"},{"src":"https://cdn/b"}]`,
			want: []models.VideoSource{{Src: "https://cdn/b", Label: DefaultSourceLabel, Type: "video/mp4"}},
		},
		{name: "null", raw: `null`, want: []models.VideoSource{}},
		{name: "empty list", raw: `[]`, want: []models.VideoSource{}},
		{name: "number", raw: `42`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseVideoSources([]byte(tt.raw))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseVideoSources() error = %v", err)
			}
			if got == nil {
				t.Fatal("result must be non-nil")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGetVideoInfo(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, galleryBackend(t))

	info, err := c.GetVideoInfo(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("GetVideoInfo() error = %v", err)
	}
	if info.Title != "Beach" || info.CoverURL != "https://cdn/abc.jpg" {
		t.Errorf("info = %+v", info)
	}
	if names := info.TagNames(); len(names) != 1 || names[0] != "summer" {
		t.Errorf("tags = %v", names)
	}

	untagged, err := c.GetVideoInfo(context.Background(), "untagged")
	if err != nil {
		t.Fatalf("GetVideoInfo(untagged) error = %v", err)
	}
	if untagged.Tags == nil {
		t.Error("Tags must be non-nil")
	}

	if _, err := c.GetVideoInfo(context.Background(), "unknown"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown uuid error = %v, want ErrNotFound", err)
	}
}

func TestGetVideoPlayerProps(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, galleryBackend(t))

	props, err := c.GetVideoPlayerProps(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("GetVideoPlayerProps() error = %v", err)
	}
	if props.Poster != "https://cdn/abc.jpg" || len(props.VideoSources) != 2 {
		t.Errorf("props = %+v", props)
	}

	if _, err := c.GetVideoPlayerProps(context.Background(), "broken"); err == nil {
		t.Error("expected error when the backend fails")
	}
}

func TestGetVideoListItem(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, galleryBackend(t))

	item, err := c.GetVideoListItem(context.Background(), "abc-123")
	if err != nil {
		t.Fatalf("GetVideoListItem() error = %v", err)
	}
	if item.ID != "abc-123" || item.Title != "Beach" || item.Poster != "https://cdn/abc.jpg" || len(item.Sources) != 2 {
		t.Errorf("item = %+v", item)
	}
	if item.Description == nil || *item.Description != "Summer" {
		t.Errorf("description = %v", item.Description)
	}
}
