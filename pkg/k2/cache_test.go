package k2_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge2-io/knowledge2-go/pkg/k2"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := k2.NewMemoryCache(10)

	entry := &k2.CacheEntry{
		Data:      []byte("corpus-123"),
		ExpiresAt: time.Now().Add(time.Minute),
	}

	require.NoError(t, cache.Set(ctx, "corpus:org-1:handbook", entry))

	got, err := cache.Get(ctx, "corpus:org-1:handbook")
	require.NoError(t, err)
	assert.Equal(t, []byte("corpus-123"), got.Data)
	assert.True(t, cache.Has(ctx, "corpus:org-1:handbook"))
}

func TestMemoryCache_MissingKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := k2.NewMemoryCache(10)

	_, err := cache.Get(ctx, "absent")
	require.ErrorIs(t, err, k2.ErrCacheKeyNotFound)
	assert.False(t, cache.Has(ctx, "absent"))
}

func TestMemoryCache_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := k2.NewMemoryCache(10)

	expired := &k2.CacheEntry{
		Data:      []byte("stale"),
		ExpiresAt: time.Now().Add(-time.Second),
	}
	require.NoError(t, cache.Set(ctx, "stale", expired))

	_, err := cache.Get(ctx, "stale")
	require.ErrorIs(t, err, k2.ErrCacheEntryExpired)
	assert.False(t, cache.Has(ctx, "stale"))

	// The expired entry was removed, so the next miss is a plain not-found.
	_, err = cache.Get(ctx, "stale")
	require.ErrorIs(t, err, k2.ErrCacheKeyNotFound)
}

func TestMemoryCache_NoExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := k2.NewMemoryCache(10)

	// Zero ExpiresAt means the entry never expires.
	require.NoError(t, cache.Set(ctx, "pinned", &k2.CacheEntry{Data: []byte("v")}))

	got, err := cache.Get(ctx, "pinned")
	require.NoError(t, err)
	assert.False(t, got.Expired())
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := k2.NewMemoryCache(10)

	require.NoError(t, cache.Set(ctx, "a", &k2.CacheEntry{Data: []byte("1")}))
	require.NoError(t, cache.Set(ctx, "b", &k2.CacheEntry{Data: []byte("2")}))

	require.NoError(t, cache.Delete(ctx, "a"))
	assert.False(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "b"))

	require.NoError(t, cache.Clear(ctx))
	assert.False(t, cache.Has(ctx, "b"))
	assert.Empty(t, cache.Keys())
}

func TestMemoryCache_EvictsSoonestToExpire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := k2.NewMemoryCache(2)

	require.NoError(t, cache.Set(ctx, "soon", &k2.CacheEntry{
		Data:      []byte("1"),
		ExpiresAt: time.Now().Add(time.Minute),
	}))
	require.NoError(t, cache.Set(ctx, "late", &k2.CacheEntry{
		Data:      []byte("2"),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	// A third insert overflows the cache and evicts the soonest-to-expire.
	require.NoError(t, cache.Set(ctx, "new", &k2.CacheEntry{
		Data:      []byte("3"),
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	assert.False(t, cache.Has(ctx, "soon"))
	assert.True(t, cache.Has(ctx, "late"))
	assert.True(t, cache.Has(ctx, "new"))
}

func TestMemoryCache_Cleanup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := k2.NewMemoryCache(10)

	require.NoError(t, cache.Set(ctx, "live", &k2.CacheEntry{
		Data:      []byte("1"),
		ExpiresAt: time.Now().Add(time.Minute),
	}))
	require.NoError(t, cache.Set(ctx, "dead", &k2.CacheEntry{
		Data:      []byte("2"),
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	cache.Cleanup()

	assert.Equal(t, []string{"live"}, cache.Keys())
}

func TestMemoryCache_Concurrency(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := k2.NewMemoryCache(100)

	done := make(chan struct{})

	for worker := 0; worker < 4; worker++ {
		go func(id int) {
			defer func() { done <- struct{}{} }()

			for i := 0; i < 50; i++ {
				key := fmt.Sprintf("key-%d-%d", id, i)
				_ = cache.Set(ctx, key, &k2.CacheEntry{
					Data:      []byte("v"),
					ExpiresAt: time.Now().Add(time.Minute),
				})
				_, _ = cache.Get(ctx, key)
				_ = cache.Has(ctx, key)
			}
		}(worker)
	}

	for i := 0; i < 4; i++ {
		<-done
	}
}

func TestLookupKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "corpus:org-1:handbook", k2.LookupKey("corpus", "org-1", "handbook"))
	assert.Equal(t, "project", k2.LookupKey("project"))
}

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("nil config defaults to memory", func(t *testing.T) {
		t.Parallel()

		cache, err := k2.NewCacheFromConfig(nil)
		require.NoError(t, err)
		assert.IsType(t, &k2.MemoryCache{}, cache)
	})

	t.Run("none yields a no-op cache", func(t *testing.T) {
		t.Parallel()

		cache, err := k2.NewCacheFromConfig(&k2.CacheConfig{Type: k2.CacheTypeNone})
		require.NoError(t, err)
		assert.IsType(t, &k2.NoOpCache{}, cache)
	})

	t.Run("nats without config fails", func(t *testing.T) {
		t.Parallel()

		_, err := k2.NewCacheFromConfig(&k2.CacheConfig{Type: k2.CacheTypeNATS})
		require.ErrorIs(t, err, k2.ErrNATSConfigRequired)
	})

	t.Run("unknown type fails", func(t *testing.T) {
		t.Parallel()

		_, err := k2.NewCacheFromConfig(&k2.CacheConfig{Type: k2.CacheType("redis")})
		require.ErrorIs(t, err, k2.ErrUnsupportedCacheType)
	})
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := k2.NewNoOpCache()

	require.NoError(t, cache.Set(ctx, "k", &k2.CacheEntry{Data: []byte("v")}))

	_, err := cache.Get(ctx, "k")
	require.ErrorIs(t, err, k2.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "k"))
	require.NoError(t, cache.Delete(ctx, "k"))
	require.NoError(t, cache.Clear(ctx))
}

func TestCacheChain(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("hit in later cache back-fills earlier ones", func(t *testing.T) {
		t.Parallel()

		l1 := k2.NewMemoryCache(10)
		l2 := k2.NewMemoryCache(10)
		chain := k2.NewCacheChain(l1, l2)

		entry := &k2.CacheEntry{Data: []byte("v"), ExpiresAt: time.Now().Add(time.Minute)}
		require.NoError(t, l2.Set(ctx, "k", entry))

		got, err := chain.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got.Data)

		// The L1 miss was repaired by the chain.
		assert.True(t, l1.Has(ctx, "k"))
	})

	t.Run("miss in every cache", func(t *testing.T) {
		t.Parallel()

		chain := k2.NewCacheChain(k2.NewMemoryCache(10), k2.NewMemoryCache(10))

		_, err := chain.Get(ctx, "absent")
		require.ErrorIs(t, err, k2.ErrKeyNotFoundInAnyCache)
	})

	t.Run("set and delete fan out", func(t *testing.T) {
		t.Parallel()

		l1 := k2.NewMemoryCache(10)
		l2 := k2.NewMemoryCache(10)
		chain := k2.NewCacheChain(l1, l2)

		entry := &k2.CacheEntry{Data: []byte("v"), ExpiresAt: time.Now().Add(time.Minute)}
		require.NoError(t, chain.Set(ctx, "k", entry))
		assert.True(t, l1.Has(ctx, "k"))
		assert.True(t, l2.Has(ctx, "k"))

		require.NoError(t, chain.Delete(ctx, "k"))
		assert.False(t, chain.Has(ctx, "k"))
	})
}
