// Package cache provides byte-oriented caching for rendered export archives.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry, for CLI use
//   - [RedisCache]: shared cache for multi-instance server deployments
//
// # Keys
//
// Keys are built by a [Keyer] so that every backend uses the same layout.
// Export archives are content-addressed: the key is derived from a hash of
// the document snapshot, so an unchanged document maps to the same entry
// no matter which user exports it.
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "pagecraft:")
//	key := k.ExportKey(cache.Hash(snapshotJSON), cache.ExportKeyOpts{Format: "zip"})
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/pagecraft/pkg/observability"
)

// DefaultExportTTL is how long export archives stay cached.
const DefaultExportTTL = 24 * time.Hour

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get returns the cached data and whether the key was present.
	// A missing or expired key is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ExportKeyOpts distinguishes archives rendered from the same document.
type ExportKeyOpts struct {
	Format string `json:"format"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ExportKey returns the key for an export archive of a document.
	ExportKey(documentHash string, opts ExportKeyOpts) string
}

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key layout.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ExportKey returns "export:<hash of document hash and options>".
func (DefaultKeyer) ExportKey(documentHash string, opts ExportKeyOpts) string {
	return hashKey("export", documentHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix, used to namespace keys in a
// shared Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ExportKey generates a prefixed export key.
func (k *ScopedKeyer) ExportKey(documentHash string, opts ExportKeyOpts) string {
	return k.prefix + k.inner.ExportKey(documentHash, opts)
}

// Instrumented wraps a cache so hits, misses and writes reach the
// observability cache hooks under the given key type.
func Instrumented(c Cache, keyType string) Cache {
	return &instrumented{Cache: c, keyType: keyType}
}

type instrumented struct {
	Cache
	keyType string
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, c.keyType)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.keyType)
		}
	}
	return data, hit, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, c.keyType, len(data))
	}
	return err
}
