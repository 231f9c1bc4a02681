package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Total   int64   `json:"total"`
	Revenue float64 `json:"revenue"`
}

func exerciseCache(t *testing.T, c Cache, expire func(time.Duration)) {
	ctx := context.Background()

	var got snapshot
	found, err := c.Get(ctx, "stats", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "stats", snapshot{Total: 150, Revenue: 29400}, 30*time.Second))
	found, err = c.Get(ctx, "stats", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, snapshot{Total: 150, Revenue: 29400}, got)

	expire(31 * time.Second)
	found, err = c.Get(ctx, "stats", &got)
	require.NoError(t, err)
	assert.False(t, found, "entry should expire after its ttl")

	require.NoError(t, c.Set(ctx, "stats", snapshot{Total: 1}, time.Minute))
	require.NoError(t, c.Delete(ctx, "stats"))
	found, err = c.Get(ctx, "stats", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	now := time.Now()
	c.now = func() time.Time { return now }
	exerciseCache(t, c, func(d time.Duration) { now = now.Add(d) })
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	c := NewRedisCache(rdb, "lockersys:")
	exerciseCache(t, c, mr.FastForward)

	require.NoError(t, c.Set(context.Background(), "k", 1, time.Minute))
	assert.True(t, mr.Exists("lockersys:k"))
}
