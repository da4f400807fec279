// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/reelmatch/internal/artifact"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

const catalogJSON = `[{"title":"A","movie_id":1},{"title":"B","movie_id":2},{"title":"C","movie_id":3}]`

func writeMatrix(t *testing.T, path string, rows [][]float64) {
	t.Helper()
	m, err := similarity.FromRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	data, err := similarity.EncodeBinary(m, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
}

func identity3() [][]float64 {
	return [][]float64{{1, 0.5, 0.2}, {0.5, 1, 0.1}, {0.2, 0.1, 1}}
}

func TestLoad_LocalFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	catPath := filepath.Join(dir, "movies.json")
	simPath := filepath.Join(dir, "similarity.bin")
	if err := os.WriteFile(catPath, []byte(catalogJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	writeMatrix(t, simPath, identity3())

	ds, err := Load(context.Background(), Config{
		CatalogPath:    catPath,
		SimilarityPath: simPath,
	}, artifact.NewStore())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Catalog.Len() != 3 || ds.Matrix.Size() != 3 {
		t.Errorf("Load() sizes = %d, %d, want 3, 3", ds.Catalog.Len(), ds.Matrix.Size())
	}
}

func TestLoad_DownloadsMissing(t *testing.T) {
	t.Parallel()

	m, _ := similarity.FromRows(identity3())
	matrixBytes, _ := similarity.EncodeBinary(m, false)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movies.csv":
			_, _ = w.Write([]byte("movie_id,title\n1,A\n2,B\n3,C\n"))
		case "/similarity.bin":
			_, _ = w.Write(matrixBytes)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	ds, err := Load(context.Background(), Config{
		CatalogPath:    filepath.Join(dir, "movies.csv"),
		CatalogURL:     srv.URL + "/movies.csv",
		SimilarityPath: filepath.Join(dir, "similarity.bin"),
		SimilarityURL:  srv.URL + "/similarity.bin",
	}, artifact.NewStore())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ds.Catalog.At(2).Title != "C" {
		t.Errorf("At(2).Title = %q, want C", ds.Catalog.At(2).Title)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		setup      func(t *testing.T, dir string) Config
		wantReason string
	}{
		{
			name: "missing catalog",
			setup: func(t *testing.T, dir string) Config {
				return Config{CatalogPath: filepath.Join(dir, "none.json"), SimilarityPath: filepath.Join(dir, "sim.bin")}
			},
			wantReason: artifact.ReasonMissing,
		},
		{
			name: "html similarity",
			setup: func(t *testing.T, dir string) Config {
				cat := filepath.Join(dir, "movies.json")
				sim := filepath.Join(dir, "sim.bin")
				_ = os.WriteFile(cat, []byte(catalogJSON), 0o600)
				_ = os.WriteFile(sim, []byte("<!DOCTYPE html><html>Virus scan warning</html>"), 0o600)
				return Config{CatalogPath: cat, SimilarityPath: sim}
			},
			wantReason: artifact.ReasonHTML,
		},
		{
			name: "corrupt similarity",
			setup: func(t *testing.T, dir string) Config {
				cat := filepath.Join(dir, "movies.json")
				sim := filepath.Join(dir, "sim.bin")
				_ = os.WriteFile(cat, []byte(catalogJSON), 0o600)
				_ = os.WriteFile(sim, []byte("RMSM\x01"), 0o600)
				return Config{CatalogPath: cat, SimilarityPath: sim}
			},
			wantReason: artifact.ReasonDecode,
		},
		{
			name: "rejected duplicates",
			setup: func(t *testing.T, dir string) Config {
				cat := filepath.Join(dir, "movies.json")
				sim := filepath.Join(dir, "sim.bin")
				_ = os.WriteFile(cat, []byte(`[{"title":"A","movie_id":1},{"title":"A","movie_id":2},{"title":"C","movie_id":3}]`), 0o600)
				writeMatrix(t, sim, identity3())
				return Config{CatalogPath: cat, SimilarityPath: sim, DuplicatePolicy: catalog.DuplicateReject}
			},
			wantReason: artifact.ReasonInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			cfg := tt.setup(t, dir)
			_, err := Load(context.Background(), cfg, artifact.NewStore())
			if !errors.Is(err, artifact.ErrLoad) {
				t.Fatalf("Load() error = %v, want LoadError", err)
			}
			if got := artifact.Reason(err); got != tt.wantReason {
				t.Errorf("Reason() = %q, want %q (err %v)", got, tt.wantReason, err)
			}
			var le *artifact.LoadError
			if errors.As(err, &le) && le.Path == "" {
				t.Error("LoadError.Path should be set")
			}
		})
	}
}
