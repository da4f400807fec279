// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"time"
)

// Config contains configuration for the recommendation engine.
type Config struct {
	// DefaultK is used when a caller does not ask for a specific count.
	DefaultK int `json:"default_k"`

	// MaxK bounds the count accepted at the API surface. The engine itself
	// honors any non-negative k.
	MaxK int `json:"max_k"`

	// Cache contains result caching parameters.
	Cache CacheConfig `json:"cache"`
}

// CacheConfig controls the in-memory result cache.
type CacheConfig struct {
	// Enabled turns on result caching.
	Enabled bool `json:"enabled"`

	// MaxEntries is the maximum number of cached results.
	MaxEntries int `json:"max_entries"`

	// TTL is how long a cached result is served.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultK: 5,
		MaxK:     50,
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 1000,
			TTL:        time.Hour,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DefaultK < 1 {
		return fmt.Errorf("default_k must be positive, got %d", c.DefaultK)
	}
	if c.MaxK < c.DefaultK {
		return fmt.Errorf("max_k must be at least default_k (%d), got %d", c.DefaultK, c.MaxK)
	}
	if c.Cache.Enabled {
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
