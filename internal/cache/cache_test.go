package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(t *testing.T) (*IdempotencyGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewIdempotencyGuard(rdb, time.Hour), mr
}

func TestIdempotencyGuard_Reserve(t *testing.T) {
	g, mr := newTestGuard(t)
	ctx := context.Background()

	ok, err := g.Reserve(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.Reserve(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, mr.Exists("idempotent-key:abc"))
	assert.Equal(t, time.Hour, mr.TTL("idempotent-key:abc"))
}

func TestIdempotencyGuard_Expiry(t *testing.T) {
	g, mr := newTestGuard(t)
	ctx := context.Background()

	_, err := g.Reserve(ctx, "abc")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	ok, err := g.Reserve(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIdempotencyGuard_Release(t *testing.T) {
	g, _ := newTestGuard(t)
	ctx := context.Background()

	_, err := g.Reserve(ctx, "abc")
	require.NoError(t, err)
	require.NoError(t, g.Release(ctx, "abc"))

	ok, err := g.Reserve(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedisClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	rdb.Close()

	mr.Close()
	_, err = NewRedisClient(context.Background(), mr.Addr())
	assert.Error(t, err)
}
