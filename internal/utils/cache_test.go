package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCacheRoundTrip(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, SetCache(ctx, rdb, "k1", payload{Name: "stats", Count: 3}, time.Minute))

	var got payload
	found, err := GetCache(ctx, rdb, "k1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "stats", Count: 3}, got)
}

func TestCacheMiss(t *testing.T) {
	rdb := newTestRedis(t)

	var got map[string]any
	found, err := GetCache(context.Background(), rdb, "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteCache(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetCache(ctx, rdb, "k1", "v", time.Minute))
	require.NoError(t, DeleteCache(ctx, rdb, "k1"))

	var got string
	found, err := GetCache(ctx, rdb, "k1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteCacheByPrefix(t *testing.T) {
	rdb := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetCache(ctx, rdb, "admin:withdrawals:list:a", "v", time.Minute))
	require.NoError(t, SetCache(ctx, rdb, "admin:withdrawals:stats", "v", time.Minute))
	require.NoError(t, SetCache(ctx, rdb, "other:key", "v", time.Minute))

	require.NoError(t, DeleteCacheByPrefix(ctx, rdb, "admin:withdrawals:"))

	var got string
	found, _ := GetCache(ctx, rdb, "admin:withdrawals:list:a", &got)
	assert.False(t, found)
	found, _ = GetCache(ctx, rdb, "admin:withdrawals:stats", &got)
	assert.False(t, found)
	// Unrelated keys survive
	found, _ = GetCache(ctx, rdb, "other:key", &got)
	assert.True(t, found)
}
