// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package models

// VideoSource is one playable rendition of a video.
type VideoSource struct {
	Src   string `json:"src"`
	Label string `json:"label"` // quality label, e.g. "Original", "1080P", "720P"
	Type  string `json:"type"`  // MIME type, e.g. "video/mp4"
}

// VideoPlayerProps is the configuration consumed by a player component.
type VideoPlayerProps struct {
	Poster       string        `json:"poster,omitempty"`
	VideoSources []VideoSource `json:"videoSources"`
}

// Tag labels a video.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// VideoInfo is the descriptive metadata of a video.
type VideoInfo struct {
	ObjectKey   string    `json:"objectKey"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CoverURL    string    `json:"coverUrl"`
	CreatedAt   Timestamp `json:"createdAt"`
	Tags        []Tag     `json:"tags"`
}

// TagNames returns the tag names in backend order.
func (v *VideoInfo) TagNames() []string {
	names := make([]string, 0, len(v.Tags))
	for _, t := range v.Tags {
		names = append(names, t.Name)
	}
	return names
}

// PlayerProps composes player configuration from the info and its sources.
func (v *VideoInfo) PlayerProps(sources []VideoSource) VideoPlayerProps {
	if sources == nil {
		sources = []VideoSource{}
	}
	return VideoPlayerProps{
		Poster:       v.CoverURL,
		VideoSources: sources,
	}
}

// VideoListItem is the card shape used by gallery grids.
type VideoListItem struct {
	ID          string        `json:"id,omitempty"`
	Title       string        `json:"title"`
	Poster      string        `json:"poster"`
	Sources     []VideoSource `json:"sources"`
	Duration    *float64      `json:"duration,omitempty"` // seconds
	Description *string       `json:"description,omitempty"`
}

// ListItem composes the card shape for the video identified by uuid.
func (v *VideoInfo) ListItem(uuid string, sources []VideoSource) VideoListItem {
	if sources == nil {
		sources = []VideoSource{}
	}
	item := VideoListItem{
		ID:      uuid,
		Title:   v.Title,
		Poster:  v.CoverURL,
		Sources: sources,
	}
	if v.Description != "" {
		desc := v.Description
		item.Description = &desc
	}
	return item
}
