// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package models

// TimelineStatistics is the aggregate used to initialise a timeline view.
// It is a snapshot: media added after the fetch is not reflected.
type TimelineStatistics struct {
	EarliestDate        Timestamp      `json:"earliestDate"`
	LatestDate          Timestamp      `json:"latestDate"`
	TotalCount          int64          `json:"totalCount"`
	MonthlyDistribution []MonthlyCount `json:"monthlyDistribution"`
}

// DistributionTotal sums the per-month counts.
// The backend is expected to keep this equal to TotalCount, but that is not
// enforced here.
func (s *TimelineStatistics) DistributionTotal() int64 {
	var total int64
	for _, m := range s.MonthlyDistribution {
		total += m.Count
	}
	return total
}

// Reconciled reports whether DistributionTotal matches TotalCount.
func (s *TimelineStatistics) Reconciled() bool {
	return s.DistributionTotal() == s.TotalCount
}

// MonthlyCount is the number of media items in one calendar month.
type MonthlyCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"` // 1-12
	Count int64 `json:"count"`
}

// TimelineBucket holds the photos of one calendar month.
// len(Photos) may be smaller than Count when the backend truncates a page.
type TimelineBucket struct {
	Year   int           `json:"year"`
	Month  int           `json:"month"`
	Count  int64         `json:"count"`
	Photos []BucketPhoto `json:"photos"`
}

// Truncated reports whether the bucket carries fewer photos than it counts.
func (b *TimelineBucket) Truncated() bool {
	return int64(len(b.Photos)) < b.Count
}

// BucketPhoto is one media item inside a bucket. UUID is its global identity.
type BucketPhoto struct {
	UUID      string    `json:"uuid"`
	ObjectKey string    `json:"objectKey"`
	CreatedAt Timestamp `json:"createdAt"`
	MediaType string    `json:"mediaType"`
	CoverURL  string    `json:"coverUrl"`
}

// IsVideo reports whether the item should open the video detail view.
func (p *BucketPhoto) IsVideo() bool {
	return p.MediaType == MediaTypeVideo
}

// Media types reported by the backend.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)
