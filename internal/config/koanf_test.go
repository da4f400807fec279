// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 8501 {
		t.Errorf("Server.Port = %d, want 8501", cfg.Server.Port)
	}
	if cfg.TMDB.Language != "en-US" {
		t.Errorf("TMDB.Language = %q, want en-US", cfg.TMDB.Language)
	}
	if cfg.TMDB.ImageBaseURL != "https://image.tmdb.org/t/p/w500/" {
		t.Errorf("TMDB.ImageBaseURL = %q", cfg.TMDB.ImageBaseURL)
	}
	if cfg.TMDB.PlaceholderURL != "https://via.placeholder.com/500x750?text=No+Image" {
		t.Errorf("TMDB.PlaceholderURL = %q", cfg.TMDB.PlaceholderURL)
	}
	if cfg.Recommend.DefaultK != 5 {
		t.Errorf("Recommend.DefaultK = %d, want 5", cfg.Recommend.DefaultK)
	}
	if cfg.Data.DuplicateTitles != "first" {
		t.Errorf("Data.DuplicateTitles = %q, want first", cfg.Data.DuplicateTitles)
	}
	if cfg.Poster.Cache != "memory" {
		t.Errorf("Poster.Cache = %q, want memory", cfg.Poster.Cache)
	}
	if cfg.Poster.CacheTTL != 24*time.Hour {
		t.Errorf("Poster.CacheTTL = %v, want 24h", cfg.Poster.CacheTTL)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"PORT", "server.port"},
		{"HTTP_PORT", "server.port"},
		{"LOG_LEVEL", "logging.level"},
		{"SIMILARITY_URL", "data.similarity_url"},
		{"DUPLICATE_TITLES", "data.duplicate_titles"},
		{"POSTER_CACHE", "poster.cache"},
		{"TMDB_BREAKER_RATIO", "poster.breaker.failure_ratio"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"RECOMMEND_MAX_K", "recommend.max_k"},
		{"PATH", ""},
		{"HOME", ""},
		{"HOST", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	customPath := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(customPath, []byte("server:\n  port: 9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, customPath)
		if got := findConfigFile(); got != customPath {
			t.Errorf("findConfigFile() = %q, want %q", got, customPath)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
		got := findConfigFile()
		if got == filepath.Join(dir, "missing.yaml") {
			t.Errorf("findConfigFile() returned a path that does not exist")
		}
	})
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TMDB_API_KEY", "abc123")
	t.Setenv("POSTER_CONCURRENCY", "8")
	t.Setenv("RECOMMEND_DEFAULT_K", "10")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("TMDB_LOOKUP_IGNORED", "x")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.TMDB.APIKey != "abc123" {
		t.Errorf("TMDB.APIKey = %q, want abc123", cfg.TMDB.APIKey)
	}
	if cfg.Poster.Concurrency != 8 {
		t.Errorf("Poster.Concurrency = %d, want 8", cfg.Poster.Concurrency)
	}
	if cfg.Recommend.DefaultK != 10 {
		t.Errorf("Recommend.DefaultK = %d, want 10", cfg.Recommend.DefaultK)
	}
	wantOrigins := []string{"https://a.example.com", "https://b.example.com"}
	if strings.Join(cfg.Security.CORSOrigins, "|") != strings.Join(wantOrigins, "|") {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 7000
data:
  catalog_path: /srv/movies.csv
  similarity_path: /srv/similarity.bin
  similarity_url: https://example.com/similarity.bin
  duplicate_titles: reject
tmdb:
  language: fr-FR
poster:
  cache: badger
  cache_dir: /srv/posters
  cache_ttl: 2h
security:
  cors_origins:
    - https://movies.example.com
`
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Data.CatalogPath != "/srv/movies.csv" {
		t.Errorf("Data.CatalogPath = %q", cfg.Data.CatalogPath)
	}
	if cfg.Data.DuplicateTitles != "reject" {
		t.Errorf("Data.DuplicateTitles = %q, want reject", cfg.Data.DuplicateTitles)
	}
	if cfg.TMDB.Language != "fr-FR" {
		t.Errorf("TMDB.Language = %q, want fr-FR", cfg.TMDB.Language)
	}
	if cfg.Poster.CacheTTL != 2*time.Hour {
		t.Errorf("Poster.CacheTTL = %v, want 2h", cfg.Poster.CacheTTL)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "https://movies.example.com" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	// Untouched values keep their defaults.
	if cfg.TMDB.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("TMDB.BaseURL = %q", cfg.TMDB.BaseURL)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: 7000\nlogging:\n  level: warn\n"
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "invalid log level",
			env:     map[string]string{"LOG_LEVEL": "verbose"},
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "invalid poster cache",
			env:     map[string]string{"POSTER_CACHE": "redis"},
			wantErr: "POSTER_CACHE",
		},
		{
			name:    "default k above max",
			env:     map[string]string{"RECOMMEND_DEFAULT_K": "20", "RECOMMEND_MAX_K": "10"},
			wantErr: "RECOMMEND_DEFAULT_K",
		},
		{
			name:    "bad similarity url",
			env:     map[string]string{"SIMILARITY_URL": "ftp://example.com/s.bin"},
			wantErr: "SIMILARITY_URL",
		},
		{
			name:    "unknown duplicate policy",
			env:     map[string]string{"DUPLICATE_TITLES": "last"},
			wantErr: "DUPLICATE_TITLES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "none.yaml"))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reelmatch.yaml")
	content := "server:\n  port: 9100\nrecommend:\n  default_k: 7\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 9100 || cfg.Recommend.DefaultK != 7 {
		t.Errorf("port = %d, default_k = %d, want 9100 and 7", cfg.Server.Port, cfg.Recommend.DefaultK)
	}

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFrom() on a missing file should fail")
	}
}

func TestDefaultsValidate(t *testing.T) {
	t.Parallel()
	if err := Defaults().Validate(); err != nil {
		t.Errorf("Defaults().Validate() error = %v", err)
	}
}
