package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseRegistry(t *testing.T, reg Registry) {
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	require.NoError(t, reg.Register(ctx, "jti-1", "admin", exp))
	require.NoError(t, reg.Register(ctx, "jti-2", "admin", exp))
	require.NoError(t, reg.Register(ctx, "jti-3", "other", exp))

	active, err := reg.IsActive(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, reg.Revoke(ctx, "jti-1"))
	active, err = reg.IsActive(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, active)

	// revoking twice is harmless
	require.NoError(t, reg.Revoke(ctx, "jti-1"))

	require.NoError(t, reg.RevokeAllForUser(ctx, "admin"))
	active, err = reg.IsActive(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, active)

	active, err = reg.IsActive(ctx, "jti-3")
	require.NoError(t, err)
	assert.True(t, active, "other users keep their tokens")

	assert.Error(t, reg.Register(ctx, "jti-old", "admin", time.Now().Add(-time.Minute)))
}

func TestMemoryRegistry(t *testing.T) {
	exerciseRegistry(t, NewMemoryRegistry())
}

func TestRedisRegistry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	exerciseRegistry(t, NewRedisRegistry(rdb))
}

func TestRedisRegistryExpiresWithToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	reg := NewRedisRegistry(rdb)
	ctx := context.Background()

	require.NoError(t, reg.Register(ctx, "jti", "admin", time.Now().Add(time.Minute)))
	mr.FastForward(2 * time.Minute)

	active, err := reg.IsActive(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, active)
}
