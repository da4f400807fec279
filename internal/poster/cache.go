// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/cache"
)

// Cache stores resolved poster URLs by movie id.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, url string, ttl time.Duration) error
}

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	lru *cache.LRU[string]
}

// NewMemoryCache creates an in-memory cache of at most capacity entries.
func NewMemoryCache(capacity int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: cache.NewLRU[string](capacity, ttl)}
}

// Get implements Cache.
func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	return m.lru.Get(key)
}

// Set implements Cache.
func (m *MemoryCache) Set(_ context.Context, key, url string, ttl time.Duration) error {
	m.lru.AddWithTTL(key, url, ttl)
	return nil
}

// Cleanup drops expired entries.
func (m *MemoryCache) Cleanup(context.Context) (int, error) {
	return m.lru.CleanupExpired(), nil
}

// Len returns the number of cached entries.
func (m *MemoryCache) Len() int {
	return m.lru.Len()
}

// badgerKeyPrefix namespaces poster entries in BadgerDB.
const badgerKeyPrefix = "poster:"

type badgerEntry struct {
	URL      string    `json:"url"`
	StoredAt time.Time `json:"stored_at"`
}

// BadgerCache persists poster URLs across restarts. Entry expiry is left
// to Badger's TTL support.
type BadgerCache struct {
	db *badger.DB
}

// OpenBadgerCache opens (or creates) a cache database in dir.
func OpenBadgerCache(dir string) (*BadgerCache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.ValueLogFileSize = 16 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger poster cache: %w", err)
	}
	return &BadgerCache{db: db}, nil
}

// NewBadgerCache wraps an already open database.
func NewBadgerCache(db *badger.DB) *BadgerCache {
	return &BadgerCache{db: db}
}

// Get implements Cache. Storage errors are treated as misses.
func (b *BadgerCache) Get(_ context.Context, key string) (string, bool) {
	var entry badgerEntry
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return "", false
	}
	return entry.URL, true
}

// Set implements Cache.
func (b *BadgerCache) Set(_ context.Context, key, url string, ttl time.Duration) error {
	data, err := json.Marshal(badgerEntry{URL: url, StoredAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal poster entry: %w", err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(badgerKeyPrefix+key), data)
		if ttl > 0 {
			e = e.WithTTL(ttl)
		}
		return txn.SetEntry(e)
	})
}

// Cleanup runs value log garbage collection until nothing is left to
// rewrite. Expired keys are already invisible to Get.
func (b *BadgerCache) Cleanup(ctx context.Context) (int, error) {
	rounds := 0
	for ctx.Err() == nil {
		err := b.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return rounds, nil
		}
		if err != nil {
			return rounds, fmt.Errorf("badger value log gc: %w", err)
		}
		rounds++
	}
	return rounds, ctx.Err()
}

// Close closes the underlying database.
func (b *BadgerCache) Close() error {
	return b.db.Close()
}

// Compile-time interface assertions
var (
	_ Cache = (*MemoryCache)(nil)
	_ Cache = (*BadgerCache)(nil)
)
