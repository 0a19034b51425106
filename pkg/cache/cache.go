// Package cache stores rendered artifacts keyed by content hash, so
// re-rendering an unchanged log is free. A file-backed implementation
// serves the CLI; a null implementation disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiration.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact: the hash of
// the source log bytes plus every option that shapes the output.
func ArtifactKey(logHash, format string, detailed bool) string {
	return hashKey("artifact", logHash, format, detailed)
}
