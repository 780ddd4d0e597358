package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedisStore starts a miniredis server and connects a RedisStore to it.
func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	store, err := NewRedisStore(context.Background(), RedisConfig{
		Addr:      mr.Addr(),
		KeyPrefix: "spotbridge:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, mr
}

func TestNewRedisStore_RequiresAddr(t *testing.T) {
	t.Parallel()

	_, err := NewRedisStore(context.Background(), RedisConfig{})
	assert.Error(t, err)
}

func TestNewRedisStore_ConnectFailure(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewRedisStore(ctx, RedisConfig{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	assert.Error(t, err)
}

func TestRedisStore_SetGetDelete(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "client:c1", []byte(`{"client_id":"c1"}`), 0))

	// Keys are namespaced under the configured prefix.
	assert.True(t, mr.Exists("spotbridge:client:c1"))

	got, err := store.Get(ctx, "client:c1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"client_id":"c1"}`), got)

	require.NoError(t, store.Delete(ctx, "client:c1"))

	_, err = store.Get(ctx, "client:c1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_GetMissing(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)

	_, err := store.Get(context.Background(), "auth_request:nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	t.Parallel()

	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "spotify_state:s1", []byte("v"), 10*time.Minute))

	ttl := mr.TTL("spotbridge:spotify_state:s1")
	assert.Equal(t, 10*time.Minute, ttl)

	mr.FastForward(10*time.Minute + time.Second)

	_, err := store.Get(ctx, "spotify_state:s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_DeleteMissingIsNoError(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedisStore(t)

	assert.NoError(t, store.Delete(context.Background(), "mcp_token:nope"))
}
