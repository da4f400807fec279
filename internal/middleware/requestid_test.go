// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/reelmatch/internal/logging"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{"generates when absent", "", false},
		{"reuses upstream id", "proxy-1234", true},
		{"replaces id with spaces", "bad id", false},
		{"replaces oversized id", strings.Repeat("a", maxRequestIDLen+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ctxID, correlationID string
			handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				ctxID = GetRequestID(r.Context())
				correlationID = logging.CorrelationIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			header := rec.Header().Get(RequestIDHeader)
			if header == "" {
				t.Fatal("response is missing X-Request-ID")
			}
			if header != ctxID {
				t.Errorf("header %q != context id %q", header, ctxID)
			}
			if tt.reuse && header != tt.incoming {
				t.Errorf("id = %q, want upstream %q", header, tt.incoming)
			}
			if !tt.reuse && header == tt.incoming {
				t.Errorf("invalid upstream id %q was reused", tt.incoming)
			}
			if len(correlationID) != 8 {
				t.Errorf("correlation id = %q, want 8 characters", correlationID)
			}
		})
	}
}
