// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package models defines the data structures exchanged with the gallery backend.

Every type in this package is a transient value object: it is decoded from a
backend JSON response, handed to the view layer, and discarded. Nothing here
is persisted or mutated after decoding.

Model Categories:

1. System Configuration:
  - SystemConfig: one configuration entry, identified by (Category, Key)

2. Timeline:
  - TimelineStatistics: date bounds and per-month histogram
  - MonthlyCount: one histogram bar
  - TimelineBucket: the photos of one calendar month
  - BucketPhoto: one media item inside a bucket

3. Video:
  - VideoInfo: descriptive metadata and tags
  - VideoSource: one playable rendition
  - VideoPlayerProps: player configuration composed from info and sources
  - VideoListItem: list-card shape used by gallery grids

Wire timestamps are ISO-8601 strings. They decode into Timestamp, which
accepts both zoned (RFC 3339) and zone-less backend formats.

Usage Example:

	import "github.com/tomtom215/galleria/internal/models"

	bucket, err := client.GetTimelineBucket(ctx, 2024, 3)
	if err != nil {
	    return err
	}
	for _, photo := range bucket.Photos {
	    fmt.Println(photo.UUID, photo.CreatedAt.Format("2006-01-02"))
	}
*/
package models
