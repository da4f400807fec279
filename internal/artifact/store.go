// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Artifact describes one dataset file and where to fetch it from when it
// is not present locally.
type Artifact struct {
	// Name identifies the artifact in logs, metrics and errors ("catalog", "similarity").
	Name string

	// Path is the local file path.
	Path string

	// SourceURL is downloaded when Path is missing or holds an HTML page.
	// Empty disables downloading.
	SourceURL string
}

// Store makes dataset artifacts available on local disk.
type Store struct {
	client *http.Client
	logger zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithHTTPClient overrides the HTTP client used for downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Store) {
		if client != nil {
			s.client = client
		}
	}
}

// WithLogger sets the logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store. The default HTTP client times out after 5 minutes.
func NewStore(opts ...Option) *Store {
	s := &Store{
		client: &http.Client{Timeout: 5 * time.Minute},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure returns the local path of a, downloading it first when needed.
//
// A local file that starts with an HTML document is deleted and treated as
// missing. A missing file with no SourceURL is a LoadError.
func (s *Store) Ensure(ctx context.Context, a Artifact) (string, error) {
	if strings.TrimSpace(a.Path) == "" {
		return "", NewLoadError(a.Name, "", ReasonMissing, errors.New("no path configured"))
	}

	present, err := s.checkLocal(a)
	if err != nil {
		return "", err
	}
	if present {
		return a.Path, nil
	}

	if strings.TrimSpace(a.SourceURL) == "" {
		return "", NewLoadError(a.Name, a.Path, ReasonMissing, fs.ErrNotExist)
	}

	err = s.download(ctx, a)
	metrics.RecordArtifactDownload(a.Name, err)
	if err != nil {
		return "", err
	}
	return a.Path, nil
}

// checkLocal reports whether a usable local copy exists. An HTML page saved
// in its place is removed.
func (s *Store) checkLocal(a Artifact) (bool, error) {
	info, err := os.Stat(a.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, NewLoadError(a.Name, a.Path, ReasonMissing, err)
	}
	if info.IsDir() {
		return false, NewLoadError(a.Name, a.Path, ReasonInvalid, errors.New("path is a directory"))
	}

	isHTML, err := SniffFile(a.Path)
	if err != nil {
		return false, NewLoadError(a.Name, a.Path, ReasonDecode, err)
	}
	if !isHTML {
		return true, nil
	}

	s.logger.Warn().
		Str("artifact", a.Name).
		Str("path", a.Path).
		Msg("Artifact is an HTML page, removing it")
	if err := os.Remove(a.Path); err != nil {
		return false, NewLoadError(a.Name, a.Path, ReasonHTML, err)
	}
	if strings.TrimSpace(a.SourceURL) == "" {
		return false, NewLoadError(a.Name, a.Path, ReasonHTML, errors.New("file contained an HTML page and no source url is configured"))
	}
	return false, nil
}

// download fetches a.SourceURL into a temporary file next to a.Path and
// renames it into place once the payload is verified.
func (s *Store) download(ctx context.Context, a Artifact) error {
	start := time.Now()
	s.logger.Info().
		Str("artifact", a.Name).
		Str("url", a.SourceURL).
		Msg("Downloading artifact")

	dir := filepath.Dir(a.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewLoadError(a.Name, a.Path, ReasonDownload, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.SourceURL, http.NoBody)
	if err != nil {
		return NewLoadError(a.Name, a.Path, ReasonDownload, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return NewLoadError(a.Name, a.Path, ReasonDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewLoadError(a.Name, a.Path, ReasonDownload, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(a.Path)+".*.tmp")
	if err != nil {
		return NewLoadError(a.Name, a.Path, ReasonDownload, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	written, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return NewLoadError(a.Name, a.Path, ReasonDownload, err)
	}

	isHTML, err := SniffFile(tmpPath)
	if err != nil {
		return NewLoadError(a.Name, a.Path, ReasonDownload, err)
	}
	if isHTML {
		return NewLoadError(a.Name, a.Path, ReasonHTML, errors.New("source url returned an HTML page"))
	}

	if err := os.Rename(tmpPath, a.Path); err != nil {
		return NewLoadError(a.Name, a.Path, ReasonDownload, err)
	}

	s.logger.Info().
		Str("artifact", a.Name).
		Int64("bytes", written).
		Dur("duration", time.Since(start)).
		Msg("Artifact downloaded")
	return nil
}
