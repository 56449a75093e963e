// Package cache stores derived artifacts, such as parsed test report
// outcomes, so repeated runs over unchanged inputs skip the work.
//
// Backends implement [Cache]: [FileCache] for local CLI use, [RedisCache] for
// caches shared between CI workers, and [NullCache] when caching is off.
// Keys are produced by a [Keyer] and embed a content hash of the input, so an
// edited report never hits a stale entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiration.
type Cache interface {
	// Get returns the stored value and whether it was found. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
