package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch/pkg/cache"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		t.Cleanup(func() { _ = c.Close() })

		require.NoError(t, c.Set(ctx, "k", "v", 0))
		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, "v", v)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		t.Cleanup(func() { _ = c.Close() })

		_, err := c.Get(ctx, "nope")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("expired entry", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		t.Cleanup(func() { _ = c.Close() })

		require.NoError(t, c.Set(ctx, "k", "v", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithCleanupInterval(0), cache.WithDefaultTTL(time.Millisecond))
		t.Cleanup(func() { _ = c.Close() })

		require.NoError(t, c.Set(ctx, "k", 1, -1))
		time.Sleep(5 * time.Millisecond)

		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		require.Equal(t, 1, v)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithCleanupInterval(0))
		t.Cleanup(func() { _ = c.Close() })

		require.NoError(t, c.Set(ctx, "k", 1, 0))
		require.NoError(t, c.Delete(ctx, "k"))
		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("max entries", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithCleanupInterval(0), cache.WithMaxEntries(2))
		t.Cleanup(func() { _ = c.Close() })

		require.NoError(t, c.Set(ctx, "a", 1, 0))
		require.NoError(t, c.Set(ctx, "b", 2, 0))
		require.NoError(t, c.Set(ctx, "c", 3, 0))
		require.Equal(t, 2, c.Len())

		v, err := c.Get(ctx, "c")
		require.NoError(t, err)
		require.Equal(t, 3, v)
	})

	t.Run("closed cache rejects operations", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())

		require.ErrorIs(t, c.Set(ctx, "k", 1, 0), cache.ErrClosed)
		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrClosed)
	})
}

func TestLoader(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("loads once and caches", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[bool](cache.WithCleanupInterval(0))
		t.Cleanup(func() { _ = c.Close() })
		l := cache.NewLoader[bool](c)

		var calls atomic.Int32
		load := func(context.Context) (bool, time.Duration, error) {
			calls.Add(1)
			return true, 0, nil
		}

		for range 3 {
			v, err := l.GetOrLoad(ctx, "k", load)
			require.NoError(t, err)
			require.True(t, v)
		}
		require.Equal(t, int32(1), calls.Load())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[bool](cache.WithCleanupInterval(0))
		t.Cleanup(func() { _ = c.Close() })
		l := cache.NewLoader[bool](c)

		boom := errors.New("boom")
		_, err := l.GetOrLoad(ctx, "k", func(context.Context) (bool, time.Duration, error) {
			return false, 0, boom
		})
		require.ErrorIs(t, err, boom)

		_, err = c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("concurrent misses share one load", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithCleanupInterval(0))
		t.Cleanup(func() { _ = c.Close() })
		l := cache.NewLoader[int](c)

		var calls atomic.Int32
		release := make(chan struct{})
		load := func(context.Context) (int, time.Duration, error) {
			calls.Add(1)
			<-release
			return 42, 0, nil
		}

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := l.GetOrLoad(ctx, "k", load)
				assert.NoError(t, err)
				assert.Equal(t, 42, v)
			}()
		}

		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		require.LessOrEqual(t, calls.Load(), int32(2))
	})

	t.Run("forget", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithCleanupInterval(0))
		t.Cleanup(func() { _ = c.Close() })
		l := cache.NewLoader[int](c)

		require.NoError(t, c.Set(ctx, "k", 1, 0))
		require.NoError(t, l.Forget(ctx, "k"))
		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})
}

func TestJSONCodec(t *testing.T) {
	t.Parallel()

	type item struct {
		Name string `json:"name"`
	}

	var codec cache.JSONCodec[item]
	data, err := codec.Marshal(item{Name: "x"})
	require.NoError(t, err)

	got, err := codec.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, "x", got.Name)

	_, err = codec.Unmarshal([]byte("{"))
	require.ErrorIs(t, err, cache.ErrUnmarshal)
}
