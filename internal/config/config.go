// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Data       DataConfig       `koanf:"data"`
	TMDB       TMDBConfig       `koanf:"tmdb"`
	Poster     PosterConfig     `koanf:"poster"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Security   SecurityConfig   `koanf:"security"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// DataConfig locates the catalog and similarity artifacts.
type DataConfig struct {
	CatalogPath   string `koanf:"catalog_path"`
	CatalogURL    string `koanf:"catalog_url"`
	CatalogFormat string `koanf:"catalog_format"` // json, csv or empty to infer from the extension

	SimilarityPath   string `koanf:"similarity_path"`
	SimilarityURL    string `koanf:"similarity_url"`
	SimilarityFormat string `koanf:"similarity_format"` // binary, json or empty to infer

	// DuplicateTitles is "first" (the earliest record wins) or "reject".
	DuplicateTitles string `koanf:"duplicate_titles"`

	DownloadTimeout time.Duration `koanf:"download_timeout"`
}

// TMDBConfig holds The Movie Database API settings.
type TMDBConfig struct {
	APIKey         string        `koanf:"api_key"`
	BaseURL        string        `koanf:"base_url"`
	ImageBaseURL   string        `koanf:"image_base_url"`
	Language       string        `koanf:"language"`
	PlaceholderURL string        `koanf:"placeholder_url"`
	Timeout        time.Duration `koanf:"timeout"`
	RateLimit      float64       `koanf:"rate_limit"` // requests per second, 0 disables throttling
	RateBurst      int           `koanf:"rate_burst"`
	MaxRetries     int           `koanf:"max_retries"`
	RetryDelay     time.Duration `koanf:"retry_delay"`
}

// PosterConfig controls poster resolution and caching.
type PosterConfig struct {
	Concurrency   int           `koanf:"concurrency"`
	LookupTimeout time.Duration `koanf:"lookup_timeout"`

	// Cache is none, memory or badger.
	Cache           string        `koanf:"cache"`
	CacheDir        string        `koanf:"cache_dir"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig holds circuit breaker thresholds for the TMDB client.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// RecommendConfig holds ranking defaults.
type RecommendConfig struct {
	DefaultK        int           `koanf:"default_k"`
	MaxK            int           `koanf:"max_k"`
	CacheEnabled    bool          `koanf:"cache_enabled"`
	CacheMaxEntries int           `koanf:"cache_max_entries"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// SupervisorConfig tunes the suture supervisor tree.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Load loads configuration using Koanf. See LoadWithKoanf for the layering.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
