// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package dataset assembles the catalog and similarity matrix from their
// on-disk artifacts, fetching them first when configured to.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tomtom215/reelmatch/internal/artifact"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// Config locates the two artifacts.
type Config struct {
	CatalogPath   string
	CatalogURL    string
	CatalogFormat string // json, csv or "" for by-extension

	SimilarityPath   string
	SimilarityURL    string
	SimilarityFormat string // binary, json or "" for by-extension

	DuplicatePolicy catalog.DuplicatePolicy
}

// Dataset is the immutable state the recommender runs on.
type Dataset struct {
	Catalog *catalog.Catalog
	Matrix  *similarity.Matrix
}

// Ensure makes both artifacts available locally without decoding them.
func Ensure(ctx context.Context, cfg Config, store *artifact.Store) (catalogPath, similarityPath string, err error) {
	catalogPath, err = store.Ensure(ctx, artifact.Artifact{
		Name:      "catalog",
		Path:      cfg.CatalogPath,
		SourceURL: cfg.CatalogURL,
	})
	if err != nil {
		return "", "", err
	}

	similarityPath, err = store.Ensure(ctx, artifact.Artifact{
		Name:      "similarity",
		Path:      cfg.SimilarityPath,
		SourceURL: cfg.SimilarityURL,
	})
	if err != nil {
		return "", "", err
	}
	return catalogPath, similarityPath, nil
}

// Load ensures, decodes and validates both artifacts. Every failure is a
// *artifact.LoadError. Alignment between the two is checked by the engine.
func Load(ctx context.Context, cfg Config, store *artifact.Store) (*Dataset, error) {
	catalogPath, similarityPath, err := Ensure(ctx, cfg, store)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	cat, err := loadCatalog(catalogPath, cfg)
	if err != nil {
		return nil, err
	}
	metrics.ArtifactLoadDuration.WithLabelValues("catalog").Observe(time.Since(start).Seconds())
	metrics.CatalogSize.Set(float64(cat.Len()))

	start = time.Now()
	m, err := loadMatrix(similarityPath, cfg)
	if err != nil {
		return nil, err
	}
	metrics.ArtifactLoadDuration.WithLabelValues("similarity").Observe(time.Since(start).Seconds())

	log := logging.WithComponent("dataset")
	log.Info().
		Str("catalog", catalogPath).
		Str("similarity", similarityPath).
		Int("movies", cat.Len()).
		Int("matrix_size", m.Size()).
		Msg("dataset loaded")
	if dups := cat.Duplicates(); len(dups) > 0 {
		log.Warn().
			Int("count", len(dups)).
			Strs("titles", firstN(dups, 10)).
			Msg("catalog has duplicate titles, lookups use the first occurrence")
	}

	return &Dataset{Catalog: cat, Matrix: m}, nil
}

func loadCatalog(path string, cfg Config) (*catalog.Catalog, error) {
	format := catalog.Format(cfg.CatalogFormat)
	if format == "" {
		format = catalog.FormatFromPath(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, artifact.NewLoadError("catalog", path, artifact.ReasonMissing, err)
	}
	defer f.Close()

	records, err := catalog.Decode(f, format)
	if err != nil {
		return nil, withPath(err, path)
	}
	cat, err := catalog.New(records, cfg.DuplicatePolicy)
	if err != nil {
		return nil, withPath(err, path)
	}
	return cat, nil
}

func loadMatrix(path string, cfg Config) (*similarity.Matrix, error) {
	format := similarity.Format(cfg.SimilarityFormat)
	if format == "" {
		format = similarity.FormatFromPath(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, artifact.NewLoadError("similarity", path, artifact.ReasonMissing, err)
	}
	defer f.Close()

	m, err := similarity.Decode(f, format)
	if err != nil {
		return nil, withPath(err, path)
	}
	return m, nil
}

func withPath(err error, path string) error {
	var le *artifact.LoadError
	if errors.As(err, &le) {
		if le.Path == "" {
			le.Path = path
		}
		return err
	}
	return fmt.Errorf("%s: %w", path, err)
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
