// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package artifact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

const matrixJSON = `[[1.0, 0.2], [0.2, 1.0]]`

func TestStoreEnsureExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "similarity.json")
	if err := os.WriteFile(path, []byte(matrixJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := NewStore().Ensure(context.Background(), Artifact{Name: "similarity", Path: path})
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if got != path {
		t.Errorf("Ensure() = %q, want %q", got, path)
	}
}

func TestStoreEnsureMissingWithoutSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "movies.json")
	_, err := NewStore().Ensure(context.Background(), Artifact{Name: "catalog", Path: path})
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
	if Reason(err) != ReasonMissing {
		t.Errorf("Reason() = %q, want %q", Reason(err), ReasonMissing)
	}
}

func TestStoreEnsureEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := NewStore().Ensure(context.Background(), Artifact{Name: "catalog"})
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
}

func TestStoreEnsureDownloadsMissingFile(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(matrixJSON))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "data", "similarity.json")
	got, err := NewStore().Ensure(context.Background(), Artifact{
		Name:      "similarity",
		Path:      path,
		SourceURL: srv.URL + "/similarity.json",
	})
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if got != path {
		t.Errorf("Ensure() = %q, want %q", got, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != matrixJSON {
		t.Errorf("downloaded content = %q, want %q", data, matrixJSON)
	}

	// A second call uses the local copy.
	if _, err := NewStore().Ensure(context.Background(), Artifact{Name: "similarity", Path: path, SourceURL: srv.URL}); err != nil {
		t.Fatalf("second Ensure() error = %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 download, got %d", hits.Load())
	}
}

func TestStoreEnsureReplacesHTMLFile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(matrixJSON))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "similarity.json")
	if err := os.WriteFile(path, []byte("<html><body>Quota exceeded</body></html>"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewStore().Ensure(context.Background(), Artifact{Name: "similarity", Path: path, SourceURL: srv.URL}); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != matrixJSON {
		t.Errorf("expected HTML file to be replaced, got %q", data)
	}
}

func TestStoreEnsureHTMLWithoutSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "similarity.json")
	if err := os.WriteFile(path, []byte("  <!DOCTYPE html><html></html>"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := NewStore().Ensure(context.Background(), Artifact{Name: "similarity", Path: path})
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
	if Reason(err) != ReasonHTML {
		t.Errorf("Reason() = %q, want %q", Reason(err), ReasonHTML)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("expected HTML file to be removed")
	}
}

func TestStoreEnsureDownloadFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantReason string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantReason: ReasonDownload,
		},
		{
			name: "html payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html><title>Google Drive - Virus scan warning</title></html>"))
			},
			wantReason: ReasonHTML,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			dir := t.TempDir()
			path := filepath.Join(dir, "similarity.json")
			_, err := NewStore().Ensure(context.Background(), Artifact{Name: "similarity", Path: path, SourceURL: srv.URL})
			if !errors.Is(err, ErrLoad) {
				t.Fatalf("expected ErrLoad, got %v", err)
			}
			if Reason(err) != tt.wantReason {
				t.Errorf("Reason() = %q, want %q", Reason(err), tt.wantReason)
			}
			if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
				t.Error("expected no file to be left at the target path")
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				t.Errorf("expected temp files to be cleaned up, found %d entries", len(entries))
			}
		})
	}
}

func TestLoadErrorFormatting(t *testing.T) {
	t.Parallel()

	cause := errors.New("unexpected EOF")
	err := NewLoadError("similarity", "/data/similarity.bin", ReasonDecode, cause)

	want := "load similarity (/data/similarity.bin): decode: unexpected EOF"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("expected LoadError to unwrap to its cause")
	}
	if !errors.Is(err, ErrLoad) {
		t.Error("expected LoadError to match ErrLoad")
	}
}
