package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type catalogKey string

type entry struct {
	ID    string
	Price int64
}

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[catalogKey, []entry]("test", DefaultExpiration, DefaultCleanupInterval)

	_, ok := c.Get(ctx, "addons")
	require.False(t, ok)

	want := []entry{{ID: "w1", Price: 15000}}
	c.Set(ctx, "addons", want, time.Minute)

	got, ok := c.Get(ctx, "addons")
	require.True(t, ok)
	require.Equal(t, want, got)

	hits, misses := c.Stats()
	require.Equal(t, int64(1), hits)
	require.Equal(t, int64(1), misses)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)

	c.Set(ctx, "k", 1, time.Millisecond)
	require.Eventually(t, func() bool {
		_, ok := c.Get(ctx, "k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCacheManager[string, int]("test", NoExpiration, DefaultCleanupInterval)

	c.Set(ctx, "a", 1, 0)
	c.Set(ctx, "b", 2, 0)
	c.Set(ctx, "c", 3, 0)

	c.Delete(ctx, "a", "b")
	_, ok := c.Get(ctx, "a")
	require.False(t, ok)
	v, ok := c.Get(ctx, "c")
	require.True(t, ok)
	require.Equal(t, 3, v)

	c.Flush(ctx)
	_, ok = c.Get(ctx, "c")
	require.False(t, ok)
}

func TestInMemoryCacheManager_DeleteNothing(t *testing.T) {
	c := NewInMemoryCacheManager[string, int]("test", NoExpiration, DefaultCleanupInterval)
	require.NotPanics(t, func() { c.Delete(context.Background()) })
}
