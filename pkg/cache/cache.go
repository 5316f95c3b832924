// Package cache stores laid-out diagrams and rendered artifacts between
// CLI runs.
//
// A layout depends only on the forest contents and the layout options, so
// both are hashed into the key: re-rendering an unchanged forest in a new
// format skips the walk entirely. [FileCache] keeps entries under a
// directory, [NullCache] disables caching.
//
// Keys come from a [Keyer]; [ScopedKeyer] prefixes them, which gentree uses
// to separate entries written by different versions.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the entry for key and whether it was found. Expired and
	// unreadable entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache never stores anything; every Get is a miss. It backs
// --no-cache and runners built without a cache.
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache returns a [NullCache].
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }
