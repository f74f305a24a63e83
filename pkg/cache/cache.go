// Package cache stores parsing results and rendered artifacts between runs.
//
// Backends implement [Cache]: [FileCache] for the CLI's XDG cache directory,
// [RedisCache] for a shared cache selected with a redis:// URL, and
// [NullCache] when caching is disabled. Keys come from a [Keyer] so that
// different callers can namespace the same backend with [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// TTLs for the cached stages. Parse results are keyed by file content, so
// they never go stale; the TTL only bounds disk usage.
const (
	TTLComponents = 7 * 24 * time.Hour
	TTLArtifact   = 24 * time.Hour
)

// Cache is a byte-oriented key-value store with expiration.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}
