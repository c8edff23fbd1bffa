// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package views holds the route-to-view table of the gallery front-end.

Each entry binds a browser path to the page-level view the app shell mounts.
Paths use chi pattern syntax and are matched with a chi.Mux, so the table and
the HTTP router agree on parameter semantics.

Canonical routes:

	/               Home         landing page
	/map            Map          geographic view
	/gallery        Gallery      grid/browse view
	/video/{uuid}   VideoDetail  detail/player view
	/timeline       Timeline     calendar/timeline view
	/*              NotFound     catch-all

A path that matches no entry resolves to NotFound with Matched() == false.
Matching ignores a single trailing slash, so "/map/" resolves like "/map".

Usage:

	table := views.Default()
	m := table.Match("/video/abc-123")
	if m.Matched() {
	    uuid := m.Param("uuid") // "abc-123"
	}
*/
package views
