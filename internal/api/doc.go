// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package api serves the ReelMatch HTTP API.

Routes (all GET):

	/api/v1/health                              health summary
	/api/v1/health/live                         liveness probe
	/api/v1/health/ready                        readiness probe
	/api/v1/movies?search=&limit=               title picker list
	/api/v1/movies/{movieID}                    one catalog entry
	/api/v1/movies/{movieID}/recommendations?k= similar movies by id
	/api/v1/movies/{movieID}/poster             poster URL, 502 on lookup failure
	/api/v1/recommendations?title=&k=&posters=  similar movies by exact title
	/api/v1/stats                               engine counters and route latency
	/metrics                                    Prometheus

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}
	{"success": false, "error": {"code": "NOT_FOUND", "message": "..."}, "meta": {...}}

Recommendations resolve posters concurrently by default. A failed lookup
never fails the request: the item carries the placeholder URL and a
poster_error string.
*/
package api
