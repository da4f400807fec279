// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))

	RecordAPIRequest("GET", "/api/v1/recommendations", "200", 25*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))
	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	okBefore := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("ok"))
	missBefore := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("not_found"))

	RecordRecommendation(200*time.Microsecond, 5, true)
	RecordRecommendation(0, 0, false)

	if got := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("ok")) - okBefore; got != 1 {
		t.Errorf("ok delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("not_found")) - missBefore; got != 1 {
		t.Errorf("not_found delta = %v, want 1", got)
	}
}

func TestRecordPosterLookup(t *testing.T) {
	tests := []struct {
		result   string
		duration time.Duration
	}{
		{"found", 120 * time.Millisecond},
		{"placeholder", 80 * time.Millisecond},
		{"failure", 0},
	}

	for _, tt := range tests {
		t.Run(tt.result, func(t *testing.T) {
			before := testutil.ToFloat64(PosterLookups.WithLabelValues(tt.result))
			RecordPosterLookup(tt.result, tt.duration)
			after := testutil.ToFloat64(PosterLookups.WithLabelValues(tt.result))
			if after-before != 1 {
				t.Errorf("expected %s counter to increase by 1, got %v", tt.result, after-before)
			}
		})
	}
}

func TestRecordCacheAccess(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHits.WithLabelValues("poster_memory"))
	missBefore := testutil.ToFloat64(CacheMisses.WithLabelValues("poster_memory"))

	RecordCacheAccess("poster_memory", true)
	RecordCacheAccess("poster_memory", false)
	RecordCacheAccess("poster_memory", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("poster_memory")) - hitsBefore; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("poster_memory")) - missBefore; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestRecordArtifactDownload(t *testing.T) {
	okBefore := testutil.ToFloat64(ArtifactDownloads.WithLabelValues("similarity", "success"))
	failBefore := testutil.ToFloat64(ArtifactDownloads.WithLabelValues("similarity", "failure"))

	RecordArtifactDownload("similarity", nil)
	RecordArtifactDownload("similarity", errors.New("status 404"))

	if got := testutil.ToFloat64(ArtifactDownloads.WithLabelValues("similarity", "success")) - okBefore; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ArtifactDownloads.WithLabelValues("similarity", "failure")) - failBefore; got != 1 {
		t.Errorf("failure delta = %v, want 1", got)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordAPIRequest("GET", "/api/v1/movies", "200", time.Millisecond)
			RecordPosterLookup("found", time.Millisecond)
			RecordCacheAccess("poster_badger", i%2 == 0)
		}()
	}
	wg.Wait()
}
