package cache

import (
	"context"
	"time"
)

// NullCache disables caching without special cases at the call sites.
// Every Get misses, so layout.Cached runs its engine on each render and
// the pipeline re-renders every artifact. Writes and deletes are dropped.
//
// dagdraw selects it for --no-cache, when no cache directory can be
// resolved, and in the HTTP service when DAGDRAW_REDIS_URL is unset.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }
