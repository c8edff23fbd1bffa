// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package api

import (
	"bytes"
	"html/template"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tomtom215/galleria/internal/config"
	"github.com/tomtom215/galleria/internal/logging"
	"github.com/tomtom215/galleria/internal/metrics"
	"github.com/tomtom215/galleria/internal/views"
)

// defaultIndexTemplate is rendered when the dist directory has no usable
// index file, so the server still answers view routes during development.
const defaultIndexTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.ViewTitle}} - {{.AppTitle}}</title>
</head>
<body>
<div id="app" data-view="{{.View}}"></div>
<script nonce="{{.Nonce}}">window.__GALLERIA_VIEW__ = {{.View}};</script>
</body>
</html>
`

// shellData is the template context of the index document.
type shellData struct {
	Nonce     string
	AppTitle  string
	ViewTitle string
	View      string
}

// Shell serves the single-page app: files from the dist directory, and the
// index document for every other path.
type Shell struct {
	distDir  string
	appTitle string
	files    http.FileSystem
	index    *template.Template
	views    *views.Table
}

// NewShell loads the index template from the dist directory.
func NewShell(web *config.WebConfig, table *views.Table) *Shell {
	s := &Shell{
		distDir:  web.DistDir,
		appTitle: web.AppTitle,
		files:    http.Dir(web.DistDir),
		views:    table,
	}
	if s.appTitle == "" {
		s.appTitle = "Galleria"
	}

	if !distExists(web.DistDir) {
		logging.Warn().Str("dist_dir", web.DistDir).Msg("Web dist directory not found, static assets disabled")
	}

	indexPath := filepath.Join(web.DistDir, web.IndexFile)
	tmpl, err := template.ParseFiles(indexPath)
	if err != nil {
		logging.Warn().Err(err).Str("path", indexPath).Msg("Index template unavailable, using built-in shell")
		tmpl = template.Must(template.New("index").Parse(defaultIndexTemplate))
	}
	s.index = tmpl
	return s
}

// ServeHTTP serves an existing dist file, a 404 for missing assets, or
// the index document with 200 for view routes and 404 otherwise.
func (s *Shell) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, escaped := r.URL.Path, r.URL.EscapedPath()
	if strings.HasSuffix(p, "/index.html") {
		p = strings.TrimSuffix(p, "index.html")
		escaped = strings.TrimSuffix(escaped, "index.html")
	}

	if s.fileExists(p) {
		if cc := cacheControlFor(p); cc != "" {
			w.Header().Set("Cache-Control", cc)
		}
		http.FileServer(s.files).ServeHTTP(w, r)
		return
	}

	if isAssetPath(p) {
		http.NotFound(w, r)
		return
	}

	match := s.views.Match(escaped)
	status := http.StatusOK
	if !match.Matched() {
		status = http.StatusNotFound
	}
	s.renderIndex(w, r, match, status)
}

func (s *Shell) renderIndex(w http.ResponseWriter, r *http.Request, match views.Match, status int) {
	data := shellData{
		Nonce:     CSPNonce(r.Context()),
		AppTitle:  s.appTitle,
		ViewTitle: match.Route.Title,
		View:      string(match.Route.Name),
	}

	// Render into a buffer so a template failure can still become a 500.
	var buf bytes.Buffer
	if err := s.index.Execute(&buf, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to execute index template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	metrics.RecordViewServed(data.View)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(buf.Bytes())
	}
}

// fileExists reports whether p names a regular file under the dist directory.
func (s *Shell) fileExists(p string) bool {
	if strings.HasSuffix(p, "/") {
		return false
	}
	f, err := s.files.Open(path.Clean(p))
	if err != nil {
		return false
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return !stat.IsDir()
}

// isAssetPath reports whether the last segment looks like a file name.
// Video ids are exempt since they are opaque to the shell.
func isAssetPath(p string) bool {
	return path.Ext(p) != "" && !strings.HasPrefix(p, "/video/")
}

func cacheControlFor(p string) string {
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".js", ".mjs", ".css", ".woff", ".woff2":
		return "public, max-age=31536000, immutable"
	case ".png", ".svg", ".jpg", ".jpeg", ".webp", ".avif", ".ico", ".gif":
		return "public, max-age=604800"
	case ".json", ".webmanifest":
		if p == "/manifest.json" || ext == ".webmanifest" {
			return "public, max-age=300"
		}
		return "public, max-age=3600"
	default:
		return ""
	}
}

func distExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
