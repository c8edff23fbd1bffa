// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package api

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/tomtom215/galleria/internal/logging"
)

type contextKey string

// cspNonceKey holds the per-request script nonce rendered into the shell.
const cspNonceKey contextKey = "csp_nonce"

func generateNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// CSPNonce returns the nonce set by ShellSecurityHeaders, or "".
func CSPNonce(ctx context.Context) string {
	nonce, _ := ctx.Value(cspNonceKey).(string)
	return nonce
}

// ShellSecurityHeaders sets a nonce-based Content-Security-Policy and the
// usual hardening headers on app shell and asset responses.
func ShellSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce, err := generateNonce()
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to generate CSP nonce")
			nonce = ""
		}
		r = r.WithContext(context.WithValue(r.Context(), cspNonceKey, nonce))

		// Media and covers come from the backend's object storage, which
		// lives on another origin.
		csp := "default-src 'self'; " +
			"script-src 'self' 'nonce-" + nonce + "'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"img-src 'self' data: blob: https:; " +
			"media-src 'self' blob: https:; " +
			"font-src 'self' data:; " +
			"connect-src 'self'; " +
			"worker-src 'self' blob:; " +
			"manifest-src 'self'; " +
			"frame-ancestors 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"

		h := w.Header()
		h.Set("Content-Security-Policy", csp)
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "microphone=(), camera=(), payment=()")
		if isHTTPS(r) {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
