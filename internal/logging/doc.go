// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package logging provides centralized zerolog-based structured logging for ReelMatch.
//
// JSON output is the default; console output is available for development.
// A single global logger is configured once from main via Init and read
// everywhere else through the package-level helpers.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("movies", n).Msg("Catalog loaded")
//	logging.Error().Err(err).Msg("Poster lookup failed")
//
//	// Request-scoped logging picks up request_id and correlation_id
//	logging.Ctx(ctx).Info().Str("title", title).Msg("Recommendations served")
//
// # Components
//
// Long-lived components derive their own logger once:
//
//	logger := logging.WithComponent("poster")
//
// # Suture Integration
//
// NewSlogLogger exposes the same output stream as an *slog.Logger for
// sutureslog, so supervisor events land next to application logs.
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
