// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package client

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/galleria/internal/models"
)

// DefaultSourceLabel names a rendition when the backend gives no label.
const DefaultSourceLabel = "Original"

// videoMIMETypes maps container extensions to player MIME types.
var videoMIMETypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".ogv":  "video/ogg",
	".mkv":  "video/x-matroska",
	".m3u8": "application/x-mpegURL",
	".mpd":  "application/dash+xml",
}

// GetVideoURL resolves the playable renditions of a video.
//
// The backend answers with a list of sources, a single source object, an
// object carrying a source list, or a bare URL string. All forms normalize
// to a slice; entries without a src are dropped.
func (c *Client) GetVideoURL(ctx context.Context, uuid string) ([]models.VideoSource, error) {
	id, err := segment("uuid", uuid)
	if err != nil {
		return nil, err
	}

	p := "/video/get-url/" + id
	raw, err := Get[json.RawMessage](ctx, c, OpGetVideoURL, p, nil)
	if err != nil {
		return nil, err
	}

	sources, err := parseVideoSources(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrDecode, p, err)
	}
	return sources, nil
}

// GetVideoInfo fetches descriptive metadata and tags for a video.
func (c *Client) GetVideoInfo(ctx context.Context, uuid string) (*models.VideoInfo, error) {
	id, err := segment("uuid", uuid)
	if err != nil {
		return nil, err
	}

	info, err := Get[models.VideoInfo](ctx, c, OpGetVideoInfo, "/video/info/"+id, nil)
	if err != nil {
		return nil, err
	}
	if info.Tags == nil {
		info.Tags = []models.Tag{}
	}
	return &info, nil
}

// GetVideoPlayerProps composes player configuration: the cover as poster and
// every resolved rendition as a source.
func (c *Client) GetVideoPlayerProps(ctx context.Context, uuid string) (*models.VideoPlayerProps, error) {
	return composeVideo(ctx, c, uuid, func(info *models.VideoInfo, sources []models.VideoSource) *models.VideoPlayerProps {
		props := info.PlayerProps(sources)
		return &props
	})
}

// GetVideoListItem composes the gallery card for a video.
func (c *Client) GetVideoListItem(ctx context.Context, uuid string) (*models.VideoListItem, error) {
	return composeVideo(ctx, c, uuid, func(info *models.VideoInfo, sources []models.VideoSource) *models.VideoListItem {
		item := info.ListItem(uuid, sources)
		return &item
	})
}

// composeVideo fetches info and sources concurrently and combines them.
// The first failure cancels the other request.
func composeVideo[T any](ctx context.Context, gc GalleryClient, uuid string, combine func(*models.VideoInfo, []models.VideoSource) *T) (*T, error) {
	var (
		info    *models.VideoInfo
		sources []models.VideoSource
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = gc.GetVideoInfo(gctx, uuid)
		return err
	})
	g.Go(func() error {
		var err error
		sources, err = gc.GetVideoURL(gctx, uuid)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return combine(info, sources), nil
}

// parseVideoSources normalizes every accepted get-url response shape.
func parseVideoSources(raw json.RawMessage) ([]models.VideoSource, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []models.VideoSource{}, nil
	}

	switch trimmed[0] {
	case '"':
		var src string
		if err := json.Unmarshal(trimmed, &src); err != nil {
			return nil, err
		}
		return normalizeSources([]videoSourceWire{{Src: src}}), nil

	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		wire := make([]videoSourceWire, 0, len(items))
		for _, item := range items {
			w, err := decodeSourceItem(item)
			if err != nil {
				return nil, err
			}
			wire = append(wire, w)
		}
		return normalizeSources(wire), nil

	case '{':
		var obj videoSourceWire
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, err
		}
		if list := obj.list(); list != nil {
			return normalizeSources(list), nil
		}
		return normalizeSources([]videoSourceWire{obj}), nil
	}

	return nil, fmt.Errorf("unexpected video source payload starting with %q", trimmed[0])
}

// videoSourceWire accepts the field spellings seen from gallery backends.
type videoSourceWire struct {
	Src     string `json:"src"`
	URL     string `json:"url"`
	Label   string `json:"label"`
	Quality string `json:"quality"`
	Type    string `json:"type"`

	Sources      []videoSourceWire `json:"sources"`
	VideoSources []videoSourceWire `json:"videoSources"`
}

func (w *videoSourceWire) list() []videoSourceWire {
	if w.VideoSources != nil {
		return w.VideoSources
	}
	return w.Sources
}

func decodeSourceItem(item json.RawMessage) (videoSourceWire, error) {
	var w videoSourceWire
	if t := bytes.TrimSpace(item); len(t) > 0 && t[0] == '"' {
		err := json.Unmarshal(t, &w.Src)
		return w, err
	}
	err := json.Unmarshal(item, &w)
	return w, err
}

func normalizeSources(wire []videoSourceWire) []models.VideoSource {
	out := make([]models.VideoSource, 0, len(wire))
	for _, w := range wire {
		src := w.Src
		if src == "" {
			src = w.URL
		}
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}

		label := w.Label
		if label == "" {
			label = w.Quality
		}
		if label == "" {
			label = DefaultSourceLabel
		}

		mimeType := w.Type
		if mimeType == "" {
			mimeType = guessVideoType(src)
		}

		out = append(out, models.VideoSource{Src: src, Label: label, Type: mimeType})
	}
	return out
}

// guessVideoType infers the MIME type from the URL path extension, defaulting to video/mp4.
func guessVideoType(src string) string {
	p := src
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if t, ok := videoMIMETypes[strings.ToLower(path.Ext(p))]; ok {
		return t
	}
	return "video/mp4"
}
