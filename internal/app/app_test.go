// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/reelmatch/internal/artifact"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

func writeDataset(t *testing.T, rows string) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Defaults()
	cfg.Data.CatalogPath = filepath.Join(dir, "movies.json")
	cfg.Data.SimilarityPath = filepath.Join(dir, "similarity.json")
	cfg.Data.SimilarityFormat = "json"

	movies := `[{"title":"A","movie_id":1},{"title":"B","movie_id":2},{"title":"C","movie_id":3},{"title":"D","movie_id":4}]`
	if err := os.WriteFile(cfg.Data.CatalogPath, []byte(movies), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.Data.SimilarityPath, []byte(rows), 0o600); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestLoadEngine(t *testing.T) {
	t.Parallel()

	cfg := writeDataset(t, `[[1,0.9,0.95,0.1],[0.9,1,0.3,0.3],[0.95,0.3,1,0.2],[0.1,0.3,0.2,1]]`)
	engine, err := LoadEngine(context.Background(), cfg)
	if err != nil {
		t.Fatalf("LoadEngine() error = %v", err)
	}

	recs, err := engine.Recommend(context.Background(), "A", 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 2 || recs[0].MovieID != "3" || recs[1].MovieID != "2" {
		t.Errorf("Recommend(A, 2) = %+v, want movie ids 3 then 2", recs)
	}
	if engine.DefaultK() != cfg.Recommend.DefaultK {
		t.Errorf("DefaultK() = %d, want %d", engine.DefaultK(), cfg.Recommend.DefaultK)
	}
}

func TestLoadEngine_DimensionMismatch(t *testing.T) {
	t.Parallel()

	cfg := writeDataset(t, `[[1,0.5],[0.5,1]]`)
	_, err := LoadEngine(context.Background(), cfg)
	if !errors.Is(err, recommend.ErrDimensionMismatch) {
		t.Errorf("LoadEngine() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestLoadEngine_MissingArtifact(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.Data.CatalogPath = filepath.Join(t.TempDir(), "absent.json")
	cfg.Data.CatalogURL = ""

	_, err := LoadEngine(context.Background(), cfg)
	var loadErr *artifact.LoadError
	if !errors.As(err, &loadErr) {
		t.Errorf("LoadEngine() error = %v, want *artifact.LoadError", err)
	}
}

func TestDatasetAndEngineConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.Data.DuplicateTitles = "reject"
	cfg.Recommend.DefaultK = 8
	cfg.Recommend.CacheEnabled = false

	ds := DatasetConfig(cfg)
	if ds.DuplicatePolicy != catalog.DuplicateReject || ds.CatalogPath != cfg.Data.CatalogPath {
		t.Errorf("DatasetConfig() = %+v", ds)
	}

	ec := EngineConfig(cfg)
	if ec.DefaultK != 8 || ec.Cache.Enabled {
		t.Errorf("EngineConfig() = %+v", ec)
	}
}

func TestNewPosterStack_NoAPIKey(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.TMDB.APIKey = ""

	stack, err := NewPosterStack(cfg)
	if err != nil {
		t.Fatalf("NewPosterStack() error = %v", err)
	}
	defer stack.Close()

	if stack.Enabled || stack.Breaker != nil || stack.Cleaner != nil {
		t.Errorf("stack = %+v, want disabled without breaker or cache", stack)
	}
	if stack.BreakerState() != "" {
		t.Errorf("BreakerState() = %q, want empty", stack.BreakerState())
	}

	u, err := stack.Resolver.Resolve(context.Background(), "603")
	if err != nil || u != poster.PlaceholderURL {
		t.Errorf("Resolve() = %q, %v; want placeholder", u, err)
	}
}

func TestNewPosterStack_Caches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cache       string
		wantCleaner bool
	}{
		{"none", false},
		{"memory", true},
		{"badger", true},
	}

	for _, tt := range tests {
		t.Run(tt.cache, func(t *testing.T) {
			t.Parallel()

			cfg := config.Defaults()
			cfg.TMDB.APIKey = "test-key"
			cfg.Poster.Cache = tt.cache
			cfg.Poster.CacheDir = t.TempDir()

			stack, err := NewPosterStack(cfg)
			if err != nil {
				t.Fatalf("NewPosterStack() error = %v", err)
			}
			defer func() {
				if err := stack.Close(); err != nil {
					t.Errorf("Close() error = %v", err)
				}
			}()

			if !stack.Enabled || stack.Breaker == nil {
				t.Fatal("stack should be enabled with a breaker")
			}
			if stack.BreakerState() != "closed" {
				t.Errorf("BreakerState() = %q, want closed", stack.BreakerState())
			}
			if (stack.Cleaner != nil) != tt.wantCleaner {
				t.Errorf("Cleaner set = %v, want %v", stack.Cleaner != nil, tt.wantCleaner)
			}
			if stack.Cleaner != nil {
				if _, err := stack.Cleaner(context.Background()); err != nil {
					t.Errorf("Cleaner() error = %v", err)
				}
			}
		})
	}
}
