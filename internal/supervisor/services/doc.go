// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package services adapts server components to suture.Service.
//
// HTTPServerService turns the blocking ListenAndServe into a context-aware
// Serve with graceful Shutdown. MaintenanceService runs cache expiry tasks
// on a ticker.
package services
