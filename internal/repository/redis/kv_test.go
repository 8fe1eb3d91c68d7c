package redis

import (
	"context"
	"os"
	"testing"

	"github.com/Rrens/skill-swap/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server when TEST_REDIS_HOST is set.
func newTestClient(t *testing.T) *Client {
	t.Helper()
	host := os.Getenv("TEST_REDIS_HOST")
	if host == "" {
		t.Skip("Requires Redis - set TEST_REDIS_HOST to run")
	}
	client, err := NewClient(context.Background(), config.RedisConfig{Host: host, Port: 6379, DB: 15})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestKVStore_Integration(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	store := NewKVStore(client)

	require.NoError(t, store.Delete(ctx, "test:users"))

	created, err := store.SetIfAbsent(ctx, "test:users", []byte("[]"))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.SetIfAbsent(ctx, "test:users", []byte("[1]"))
	require.NoError(t, err)
	assert.False(t, created)

	v, ok, err := store.Get(ctx, "test:users")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(v))

	require.NoError(t, store.Delete(ctx, "test:users"))

	_, ok, err = store.Get(ctx, "test:users")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRateLimiter_Integration(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	limiter := NewRateLimiter(client, 2, 1)

	key := "test-ip-" + uuid.NewString()

	for i := 0; i < 3; i++ {
		allowed, _, _, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, remaining, _, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
}
