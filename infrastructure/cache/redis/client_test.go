package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "newscard-api/core/errors"
	"newscard-api/pkg/config"
)

// newTestCache connects to REDIS_TEST_ADDRESS or skips
func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		t.Skip("Skipping Redis integration tests - set REDIS_TEST_ADDRESS to run")
	}

	cache, err := NewRedisCache(config.RedisConfig{Address: addr, KeyPrefix: "newscard-test:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestNewRedisCache_EmptyAddress(t *testing.T) {
	cache, err := NewRedisCache(config.RedisConfig{})
	assert.Error(t, err)
	assert.Nil(t, cache)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	cache, err := NewRedisCache(config.RedisConfig{Address: "127.0.0.1:1"})
	assert.Error(t, err)
	assert.Nil(t, cache)
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	key := "page:https://example.com/redis"

	require.NoError(t, cache.Set(ctx, key, []byte("<html></html>"), time.Minute))

	got, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(got))

	require.NoError(t, cache.Delete(ctx, key))
	_, err = cache.Get(ctx, key)
	assert.True(t, coreerrors.IsNotFound(err))
}

func TestRedisCache_Expiry(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short", []byte("v"), 50*time.Millisecond))
	time.Sleep(100 * time.Millisecond)

	_, err := cache.Get(ctx, "short")
	assert.True(t, coreerrors.IsNotFound(err))
}

func TestRedisCache_KeysArePrefixed(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	defer cache.Delete(ctx, "k")

	raw, err := cache.client.Get(ctx, "newscard-test:k").Result()
	require.NoError(t, err)
	assert.Equal(t, "v", raw)
}
