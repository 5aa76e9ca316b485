// Package cache stores rendered images keyed by their inputs so unchanged
// datasets are not laid out and drawn twice.
//
// [FileCache] persists entries under a directory, one JSON file per key.
// [NullCache] disables caching. Keys come from a [Keyer]; wrap one in a
// [ScopedKeyer] to keep entries from different builds apart.
package cache

import (
	"context"
	"time"
)

// TTLRender is how long a rendered image stays cached.
const TTLRender = 30 * 24 * time.Hour

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// NullCache misses every Get and drops every Set. The --no-cache flag and
// an unavailable cache directory select it.
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }
