package storage_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobportal/jobportal-client/internal/storage"
)

func exerciseStore(t *testing.T, store storage.Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, storage.KeyToken, "abc"))
	v, ok, err := store.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	token, err := storage.Token(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	require.NoError(t, store.Remove(ctx, storage.KeyToken))
	require.NoError(t, store.Remove(ctx, storage.KeyToken))
	_, ok, err = store.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, storage.NewMemory())
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := storage.NewMemory().Set(ctx, storage.KeyUser, "{}")
	require.ErrorIs(t, err, context.Canceled)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := storage.NewRedis(client, "portal")
	t.Cleanup(func() { _ = store.Close() })

	exerciseStore(t, store)

	require.NoError(t, store.Set(context.Background(), storage.KeyLanguage, "hi"))
	got, err := mr.Get("portal:language")
	require.NoError(t, err)
	assert.Equal(t, "hi", got)
}

func TestRedisStoreReportsIOErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	store := storage.NewRedis(client, "")
	t.Cleanup(func() { _ = store.Close() })
	mr.Close()

	_, _, err := store.Get(context.Background(), storage.KeyUser)
	require.Error(t, err)
	require.Error(t, store.Remove(context.Background(), storage.KeyUser))
}
