// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package middleware

import (
	"compress/gzip"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// compressibleTypes are the content types worth compressing. Images and
// video are already compressed.
var compressibleTypes = []string{
	"application/json",
	"application/javascript",
	"application/manifest+json",
	"image/svg+xml",
	"text/css",
	"text/html",
	"text/javascript",
	"text/plain",
}

// Compress returns chi's gzip/deflate middleware restricted to text payloads.
func Compress() func(http.Handler) http.Handler {
	return chimiddleware.Compress(gzip.DefaultCompression, compressibleTypes...)
}
