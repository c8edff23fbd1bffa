// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package client is the typed remote-data access layer for the gallery backend.

It has two layers:

  - Client, the shared transport. It owns the base URL, timeout, outbound
    rate limiting, HTTP 429 backoff, optional response envelope unwrapping and
    error classification. Get decodes a response body into any type.
  - Accessors, thin methods that each compose one path and query and declare
    the response type.

# Accessors

System configuration:
  - GetSystemConfig(ctx, category, key)      GET /system-config/{category}/{key}
  - GetSystemConfigsByCategory(ctx, category) GET /system-config/{category}

Timeline:
  - GetTimelineStatistics(ctx)          GET /timeline/statistics
  - GetTimelineBucket(ctx, year, month) GET /timeline/bucket?year=&month=

Video:
  - GetVideoURL(ctx, uuid)         GET /video/get-url/{uuid}
  - GetVideoInfo(ctx, uuid)        GET /video/info/{uuid}
  - GetVideoPlayerProps(ctx, uuid) info + sources composed for the player

Accessors never cache, retry (beyond 429 backoff in the transport) or
coalesce: two identical concurrent calls are two requests. Month values are
forwarded as given, so out-of-range months surface as backend errors.

# Errors

Non-2xx responses and envelope failures are returned as *APIError. Use
errors.Is(err, ErrNotFound) to detect 404s. Malformed bodies wrap ErrDecode.

# Circuit Breaker

CircuitBreakerClient wraps any GalleryClient with sony/gobreaker. Client
errors (4xx) do not count against the breaker; when it is open, calls fail
fast with an error for which IsUnavailable reports true.

Client and CircuitBreakerClient are safe for concurrent use.
*/
package client
