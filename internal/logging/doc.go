// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

// Package logging provides the zerolog-based global logger used across Galleria.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("addr", addr).Msg("Server starting")
//	logging.Error().Err(err).Msg("Backend unreachable")
//
//	// Inside a request: request_id and correlation_id are added automatically
//	logging.Ctx(ctx).Debug().Str("category", category).Msg("Fetching system config")
//
// # Configuration
//
// The logger is configured from config.LoggingConfig:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: include file:line (default: false)
//
// # slog Interop
//
// Libraries that speak log/slog (the suture supervisor via sutureslog) are
// bridged with NewSlogLogger, so every line ends up in the same zerolog stream.
//
// Always terminate event chains with Msg() or Send(); an unterminated event
// is never written.
package logging
