// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8501,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     2 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Data: DataConfig{
			CatalogPath:     "data/movie_list.json",
			SimilarityPath:  "data/similarity.bin",
			DuplicateTitles: "first",
			DownloadTimeout: 5 * time.Minute,
		},
		TMDB: TMDBConfig{
			BaseURL:        "https://api.themoviedb.org/3",
			ImageBaseURL:   "https://image.tmdb.org/t/p/w500/",
			Language:       "en-US",
			PlaceholderURL: "https://via.placeholder.com/500x750?text=No+Image",
			Timeout:        10 * time.Second,
			RateLimit:      20, // TMDB allows roughly 40 requests per 10s per IP
			RateBurst:      10,
			MaxRetries:     2,
			RetryDelay:     500 * time.Millisecond,
		},
		Poster: PosterConfig{
			Concurrency:     5,
			LookupTimeout:   5 * time.Second,
			Cache:           "memory",
			CacheDir:        "data/poster-cache",
			CacheTTL:        24 * time.Hour,
			CacheMaxEntries: 10000,
			CleanupInterval: 30 * time.Minute,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Recommend: RecommendConfig{
			DefaultK:        5,
			MaxK:            50,
			CacheEnabled:    true,
			CacheMaxEntries: 1000,
			CacheTTL:        time.Hour,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	return loadKoanf(findConfigFile())
}

// LoadFrom is LoadWithKoanf with an explicit config file. The file must
// exist.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return loadKoanf(path)
}

// Defaults returns the built-in configuration without reading files or
// the environment.
func Defaults() *Config {
	return defaultConfig()
}

func loadKoanf(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// TMDB_API_KEY -> tmdb.api_key
	// SIMILARITY_PATH -> data.similarity_path
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML file or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"port":             "server.port",
	"http_port":        "server.port",
	"http_host":        "server.host",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"idle_timeout":     "server.idle_timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Data mappings
	"catalog_path":      "data.catalog_path",
	"catalog_url":       "data.catalog_url",
	"catalog_format":    "data.catalog_format",
	"similarity_path":   "data.similarity_path",
	"similarity_url":    "data.similarity_url",
	"similarity_format": "data.similarity_format",
	"duplicate_titles":  "data.duplicate_titles",
	"download_timeout":  "data.download_timeout",

	// TMDB mappings
	"tmdb_api_key":         "tmdb.api_key",
	"tmdb_base_url":        "tmdb.base_url",
	"tmdb_image_base_url":  "tmdb.image_base_url",
	"tmdb_language":        "tmdb.language",
	"tmdb_placeholder_url": "tmdb.placeholder_url",
	"tmdb_timeout":         "tmdb.timeout",
	"tmdb_rate_limit":      "tmdb.rate_limit",
	"tmdb_rate_burst":      "tmdb.rate_burst",
	"tmdb_max_retries":     "tmdb.max_retries",
	"tmdb_retry_delay":     "tmdb.retry_delay",

	// Poster mappings
	"poster_concurrency":      "poster.concurrency",
	"poster_lookup_timeout":   "poster.lookup_timeout",
	"poster_cache":            "poster.cache",
	"poster_cache_dir":        "poster.cache_dir",
	"poster_cache_ttl":        "poster.cache_ttl",
	"poster_cache_max":        "poster.cache_max_entries",
	"poster_cleanup_interval": "poster.cleanup_interval",
	"tmdb_breaker_requests":   "poster.breaker.max_requests",
	"tmdb_breaker_interval":   "poster.breaker.interval",
	"tmdb_breaker_timeout":    "poster.breaker.timeout",
	"tmdb_breaker_min":        "poster.breaker.min_requests",
	"tmdb_breaker_ratio":      "poster.breaker.failure_ratio",

	// Recommendation mappings
	"recommend_default_k": "recommend.default_k",
	"recommend_max_k":     "recommend.max_k",
	"recommend_cache":     "recommend.cache_enabled",
	"recommend_cache_max": "recommend.cache_max_entries",
	"recommend_cache_ttl": "recommend.cache_ttl",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Supervisor mappings
	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - TMDB_API_KEY -> tmdb.api_key
//   - PORT -> server.port
//   - DISABLE_RATE_LIMIT -> security.rate_limit_disabled
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables
	// never pollute the config.
	return ""
}
