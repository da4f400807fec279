// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validPosterCaches = map[string]bool{
	"none":   true,
	"memory": true,
	"badger": true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validateTMDB(); err != nil {
		return err
	}

	if err := c.validatePoster(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateSupervisor()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateData validates artifact locations
func (c *Config) validateData() error {
	if strings.TrimSpace(c.Data.CatalogPath) == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if strings.TrimSpace(c.Data.SimilarityPath) == "" {
		return fmt.Errorf("SIMILARITY_PATH is required")
	}
	if err := validateOptionalHTTPURL(c.Data.CatalogURL, "CATALOG_URL"); err != nil {
		return err
	}
	if err := validateOptionalHTTPURL(c.Data.SimilarityURL, "SIMILARITY_URL"); err != nil {
		return err
	}

	switch c.Data.CatalogFormat {
	case "", "json", "csv":
	default:
		return fmt.Errorf("CATALOG_FORMAT must be one of: json, csv")
	}
	switch c.Data.SimilarityFormat {
	case "", "binary", "json":
	default:
		return fmt.Errorf("SIMILARITY_FORMAT must be one of: binary, json")
	}
	switch c.Data.DuplicateTitles {
	case "", "first", "reject":
	default:
		return fmt.Errorf("DUPLICATE_TITLES must be one of: first, reject")
	}

	if c.Data.DownloadTimeout <= 0 {
		return fmt.Errorf("DOWNLOAD_TIMEOUT must be positive")
	}
	return nil
}

// validateTMDB validates TMDB client settings. The API key is optional:
// without it posters resolve to the placeholder.
func (c *Config) validateTMDB() error {
	if err := validateHTTPURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.TMDB.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.TMDB.PlaceholderURL, "TMDB_PLACEHOLDER_URL"); err != nil {
		return err
	}
	if strings.TrimSpace(c.TMDB.Language) == "" {
		return fmt.Errorf("TMDB_LANGUAGE is required")
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if c.TMDB.RateLimit < 0 {
		return fmt.Errorf("TMDB_RATE_LIMIT must not be negative")
	}
	if c.TMDB.RateLimit > 0 && c.TMDB.RateBurst < 1 {
		return fmt.Errorf("TMDB_RATE_BURST must be at least 1 when TMDB_RATE_LIMIT is set")
	}
	if c.TMDB.MaxRetries < 0 {
		return fmt.Errorf("TMDB_MAX_RETRIES must not be negative")
	}
	return nil
}

// validatePoster validates poster resolution and cache settings
func (c *Config) validatePoster() error {
	if c.Poster.Concurrency < 1 || c.Poster.Concurrency > 64 {
		return fmt.Errorf("POSTER_CONCURRENCY must be between 1 and 64")
	}
	if c.Poster.LookupTimeout <= 0 {
		return fmt.Errorf("POSTER_LOOKUP_TIMEOUT must be positive")
	}
	if !validPosterCaches[c.Poster.Cache] {
		return fmt.Errorf("POSTER_CACHE must be one of: none, memory, badger")
	}
	if c.Poster.Cache == "badger" && strings.TrimSpace(c.Poster.CacheDir) == "" {
		return fmt.Errorf("POSTER_CACHE_DIR is required when POSTER_CACHE=badger")
	}
	if c.Poster.Cache != "none" && c.Poster.CacheTTL <= 0 {
		return fmt.Errorf("POSTER_CACHE_TTL must be positive when caching is enabled")
	}

	b := c.Poster.Breaker
	if b.FailureRatio <= 0 || b.FailureRatio > 1 {
		return fmt.Errorf("TMDB_BREAKER_RATIO must be in (0, 1]")
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("TMDB_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

// validateRecommend validates ranking defaults
func (c *Config) validateRecommend() error {
	if c.Recommend.MaxK < 1 {
		return fmt.Errorf("RECOMMEND_MAX_K must be at least 1")
	}
	if c.Recommend.DefaultK < 1 || c.Recommend.DefaultK > c.Recommend.MaxK {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be between 1 and RECOMMEND_MAX_K (%d)", c.Recommend.MaxK)
	}
	if c.Recommend.CacheEnabled && c.Recommend.CacheMaxEntries < 1 {
		return fmt.Errorf("RECOMMEND_CACHE_MAX must be at least 1 when RECOMMEND_CACHE=true")
	}
	return nil
}

// validateSecurity validates CORS and rate limiting
func (c *Config) validateSecurity() error {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			continue
		}
		if err := validateHTTPURL(origin, "CORS_ORIGINS"); err != nil {
			return err
		}
	}

	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateSupervisor() error {
	if c.Supervisor.FailureThreshold <= 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_THRESHOLD must be positive")
	}
	if c.Supervisor.FailureDecay <= 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_DECAY must be positive")
	}
	if c.Supervisor.ShutdownTimeout <= 0 {
		return fmt.Errorf("SUPERVISOR_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
