// Package cache provides the byte caches dagdraw uses to skip repeated
// layout and rendering work.
//
// # Overview
//
// A [Cache] stores opaque byte slices under string keys with an optional
// time-to-live. Three implementations are provided:
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP service
//   - [NullCache]: never stores anything, for --no-cache and tests
//
// Keys are produced by a [Keyer] so the CLI, the pipeline and the server
// agree on them. [ScopedKeyer] adds a namespace prefix.
//
// The cache is an accelerator only. Every caller treats a failed Get as a
// miss and a failed Set as harmless.
//
// # Usage
//
//	c, err := cache.NewFileCache(dir)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	key := cache.NewDefaultKeyer().LayoutKey(inputHash, cache.LayoutKeyOpts{Engine: "graphviz"})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    // use data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store keyed by strings.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Default time-to-live values.
const (
	// TTLLayout applies to engine results. Layouts are a pure function of
	// their input, so they can live long.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered SVG, PNG, PDF, JSON and DOT output.
	TTLArtifact = 24 * time.Hour
)
