// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// stubFetcher answers poster lookups from a table. Ids in fail return an
// error.
type stubFetcher struct {
	paths map[catalog.ExternalID]string
	fail  map[catalog.ExternalID]bool
	calls atomic.Int32
}

func (f *stubFetcher) MovieDetails(_ context.Context, id catalog.ExternalID) (*poster.MovieDetails, error) {
	f.calls.Add(1)
	if f.fail[id] {
		return nil, errors.New("connection reset by peer")
	}
	return &poster.MovieDetails{PosterPath: f.paths[id]}, nil
}

// abcdEngine builds the four-movie catalog used throughout the API tests.
// Row A ranks C (0.95) ahead of B (0.9) ahead of D (0.1).
func abcdEngine(t *testing.T) *recommend.Engine {
	t.Helper()

	cat, err := catalog.New([]catalog.MovieRecord{
		{Title: "A", MovieID: "1"},
		{Title: "B", MovieID: "2"},
		{Title: "C", MovieID: "3"},
		{Title: "D", MovieID: "4"},
	}, catalog.DuplicateFirst)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	m, err := similarity.FromRows([][]float64{
		{1, 0.9, 0.95, 0.1},
		{0.9, 1, 0.3, 0.3},
		{0.95, 0.3, 1, 0.2},
		{0.1, 0.3, 0.2, 1},
	})
	if err != nil {
		t.Fatalf("similarity.FromRows() error = %v", err)
	}
	e, err := recommend.NewEngine(cat, m, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("recommend.NewEngine() error = %v", err)
	}
	return e
}

func defaultFetcher() *stubFetcher {
	return &stubFetcher{
		paths: map[catalog.ExternalID]string{
			"1": "/a.jpg",
			"2": "/b.jpg",
			"3": "/c.jpg",
		},
		fail: map[catalog.ExternalID]bool{},
	}
}

type testServer struct {
	handler http.Handler
	fetcher *stubFetcher
}

func newTestServer(t *testing.T, fetcher *stubFetcher, opts ...HandlerOption) *testServer {
	t.Helper()

	if fetcher == nil {
		fetcher = defaultFetcher()
	}
	resolver := poster.NewResolver(fetcher, poster.DefaultConfig())
	h := NewHandler(abcdEngine(t), resolver, HandlerConfig{MaxK: 10, PostersEnabled: true, Version: "test"}, opts...)

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	router := NewRouter(h, NewChiMiddleware(mwCfg), nil)

	return &testServer{handler: router.SetupChi(), fetcher: fetcher}
}

func (s *testServer) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors APIResponse with a raw Data field so tests can decode
// the payload into the concrete type they expect.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) envelope {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("response success = false, error = %+v", env.Error)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return env
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) envelope {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Fatal("response success = true, want false")
	}
	if env.Error == nil || env.Error.Code != code {
		t.Fatalf("error = %+v, want code %s", env.Error, code)
	}
	return env
}
