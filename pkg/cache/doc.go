// Package cache provides a small generic cache with in-memory and Redis backends.
//
// The dispatcher uses it to memoize static file existence probes and to back
// session stores. TTL semantics for Set: positive expires after the duration,
// zero uses the backend default, negative never expires.
//
//	c := cache.NewMemory[bool](cache.WithDefaultTTL(30 * time.Second))
//	defer c.Close()
//
//	l := cache.NewLoader[bool](c)
//	ok, err := l.GetOrLoad(ctx, "static/app.css", func(ctx context.Context) (bool, time.Duration, error) {
//	    return probe(ctx, "static/app.css"), 0, nil
//	})
//
// Concurrent misses on the same key through one Loader run the load function once.
package cache
