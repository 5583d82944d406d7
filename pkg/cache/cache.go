// Package cache stores aggregation API responses on the client side.
//
// Entries are opaque byte slices keyed by strings. The client caches every
// response it fetches under [ResponseKey] and clears the whole cache whenever
// a new analysis starts, so entries never outlive the snapshot they belong to.
//
// Backends:
//   - [FileCache]: one JSON file per key under the user cache directory
//   - [RedisCache]: a shared Redis instance, keys namespaced by prefix
//   - [NullCache]: stores nothing, for --no-cache and tests
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is a key/value store with optional per-entry expiry.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error

	Close() error
}

// GetJSON loads key and decodes it into v. A corrupt entry is deleted and
// reported as a miss.
func GetJSON(ctx context.Context, c Cache, key string, v any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}
