package assets

import (
	"context"
	"time"

	"github.com/dmitrymomot/dispatch/pkg/cache"
)

// DefaultExistsTTL is how long existence probes are memoized by Cached.
const DefaultExistsTTL = 30 * time.Second

type cachedFS struct {
	next   FileSystem
	loader *cache.Loader[bool]
	ttl    time.Duration
}

// Cached memoizes Exists results of next in c for ttl (DefaultExistsTTL when
// zero). Useful for remote backends such as S3 where every probe is a round trip.
// Open is never cached.
func Cached(next FileSystem, c cache.Cache[bool], ttl time.Duration) FileSystem {
	if ttl == 0 {
		ttl = DefaultExistsTTL
	}
	return &cachedFS{next: next, loader: cache.NewLoader(c), ttl: ttl}
}

func (c *cachedFS) Exists(ctx context.Context, name string) bool {
	ok, err := c.loader.GetOrLoad(ctx, name, func(ctx context.Context) (bool, time.Duration, error) {
		return c.next.Exists(ctx, name), c.ttl, nil
	})
	if err != nil {
		return c.next.Exists(ctx, name)
	}
	return ok
}

func (c *cachedFS) Open(ctx context.Context, name string) (*File, error) {
	return c.next.Open(ctx, name)
}
