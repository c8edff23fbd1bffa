// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package views

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Name identifies a route.
type Name string

// Route names.
const (
	Home        Name = "Home"
	Map         Name = "Map"
	Gallery     Name = "Gallery"
	VideoDetail Name = "VideoDetail"
	Timeline    Name = "Timeline"
	NotFound    Name = "NotFound"
)

// CatchAllPath is the pattern of the not-found route.
const CatchAllPath = "/*"

var (
	// ErrUnknownRoute is returned when a route name is not in the table.
	ErrUnknownRoute = errors.New("unknown route")

	// ErrMissingParam is returned when building a path without a required parameter.
	ErrMissingParam = errors.New("missing route parameter")
)

// Route binds a path pattern to a view.
type Route struct {
	Path      string `json:"path"`
	Name      Name   `json:"name"`
	Component string `json:"component"`
	Title     string `json:"title"`
}

// Params lists the {name} placeholders of the route pattern in order.
func (r *Route) Params() []string {
	var params []string
	for _, seg := range strings.Split(r.Path, "/") {
		if name, ok := paramName(seg); ok {
			params = append(params, name)
		}
	}
	return params
}

// paramName extracts the key of a "{key}" or "{key:regexp}" segment.
func paramName(seg string) (string, bool) {
	if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
		return "", false
	}
	name := seg[1 : len(seg)-1]
	if i := strings.IndexByte(name, ':'); i >= 0 {
		name = name[:i]
	}
	return name, true
}

// DefaultRoutes returns the canonical view routes, catch-all excluded.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", Name: Home, Component: "MainPage", Title: "Home"},
		{Path: "/map", Name: Map, Component: "Map", Title: "Map"},
		{Path: "/gallery", Name: Gallery, Component: "ResourceGallery", Title: "Gallery"},
		{Path: "/video/{uuid}", Name: VideoDetail, Component: "VideoDetail", Title: "Video"},
		{Path: "/timeline", Name: Timeline, Component: "Timeline", Title: "Timeline"},
	}
}

// NotFoundRoute is the catch-all entry returned for unmatched paths.
func NotFoundRoute() Route {
	return Route{Path: CatchAllPath, Name: NotFound, Component: "NotFound", Title: "Not Found"}
}

// Match is the result of resolving a path against the table.
type Match struct {
	Route  Route             `json:"route"`
	Params map[string]string `json:"params"`
}

// Matched reports whether a view route (not the catch-all) matched.
func (m Match) Matched() bool {
	return m.Route.Name != NotFound
}

// Param returns the value of a URL parameter, or "" when absent.
func (m Match) Param(key string) string {
	return m.Params[key]
}

// Table is an immutable route table. It is safe for concurrent use.
type Table struct {
	routes    []Route
	byName    map[Name]Route
	byPattern map[string]Route
	mux       *chi.Mux
	notFound  Route
}

// New builds a table from routes. Names and paths must be unique, and
// NotFound is reserved for the catch-all.
func New(routes []Route) (*Table, error) {
	t := &Table{
		routes:    make([]Route, 0, len(routes)),
		byName:    make(map[Name]Route, len(routes)),
		byPattern: make(map[string]Route, len(routes)),
		mux:       chi.NewRouter(),
		notFound:  NotFoundRoute(),
	}

	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	for _, r := range routes {
		switch {
		case r.Name == "":
			return nil, fmt.Errorf("route %q: name is required", r.Path)
		case r.Name == NotFound:
			return nil, fmt.Errorf("route %q: name %s is reserved", r.Path, NotFound)
		case !strings.HasPrefix(r.Path, "/"):
			return nil, fmt.Errorf("route %s: path %q must start with /", r.Name, r.Path)
		}
		if _, dup := t.byName[r.Name]; dup {
			return nil, fmt.Errorf("route %s: duplicate name", r.Name)
		}
		if _, dup := t.byPattern[r.Path]; dup {
			return nil, fmt.Errorf("route %s: duplicate path %q", r.Name, r.Path)
		}

		if err := register(t.mux, r.Path, noop); err != nil {
			return nil, fmt.Errorf("route %s: %w", r.Name, err)
		}
		t.routes = append(t.routes, r)
		t.byName[r.Name] = r
		t.byPattern[r.Path] = r
	}

	return t, nil
}

// register adds a pattern to the mux, turning chi's panics on malformed
// patterns into errors.
func register(mux *chi.Mux, pattern string, h http.Handler) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("invalid pattern %q: %v", pattern, rec)
		}
	}()
	mux.Method(http.MethodGet, pattern, h)
	return nil
}

// Default returns the canonical table.
func Default() *Table {
	t, err := New(DefaultRoutes())
	if err != nil {
		panic(fmt.Sprintf("views: default routes invalid: %v", err))
	}
	return t
}

// Match resolves a request path in escaped form, as returned by
// url.URL.EscapedPath. Parameters are unescaped exactly once.
// Undefined paths resolve to NotFound.
func (t *Table) Match(path string) Match {
	path = normalizePath(path)

	rctx := chi.NewRouteContext()
	pattern := t.mux.Find(rctx, http.MethodGet, path)
	route, ok := t.byPattern[pattern]
	if pattern == "" || !ok {
		return Match{Route: t.notFound, Params: map[string]string{}}
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if key == "*" {
			continue
		}
		value := rctx.URLParams.Values[i]
		if unescaped, err := url.PathUnescape(value); err == nil {
			value = unescaped
		}
		params[key] = value
	}
	return Match{Route: route, Params: params}
}

// Routes lists the view routes in declaration order followed by the catch-all.
func (t *Table) Routes() []Route {
	out := make([]Route, 0, len(t.routes)+1)
	out = append(out, t.routes...)
	return append(out, t.notFound)
}

// Lookup returns the route registered under name.
func (t *Table) Lookup(name Name) (Route, bool) {
	if name == NotFound {
		return t.notFound, true
	}
	r, ok := t.byName[name]
	return r, ok
}

// Path builds the URL path of a named route, escaping parameter values.
func (t *Table) Path(name Name, params map[string]string) (string, error) {
	r, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRoute, name)
	}

	segs := strings.Split(r.Path, "/")
	for i, seg := range segs {
		key, ok := paramName(seg)
		if !ok {
			continue
		}
		value := params[key]
		if value == "" {
			return "", fmt.Errorf("%w: %s requires %q", ErrMissingParam, name, key)
		}
		segs[i] = url.PathEscape(value)
	}
	return strings.Join(segs, "/"), nil
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
