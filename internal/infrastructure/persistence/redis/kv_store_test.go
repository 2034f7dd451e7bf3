package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockframe/internal/infrastructure/persistence/redis"
)

func newStore(t *testing.T) (*redis.KVStore, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	store, err := redis.NewKVStore(context.Background(), redis.Options{Addr: srv.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, srv
}

func TestKVStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store, srv := newStore(t)

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "dockframe:layout:a", `{"x":1}`))
	srv.CheckGet(t, "dockframe:layout:a", `{"x":1}`)

	value, ok, err := store.Get(ctx, "dockframe:layout:a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"x":1}`, value)

	require.NoError(t, store.Remove(ctx, "dockframe:layout:a"))
	require.NoError(t, store.Remove(ctx, "dockframe:layout:a"))
	assert.False(t, srv.Exists("dockframe:layout:a"))
}

func TestKVStore_KeysByPrefix(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)

	for _, key := range []string{"p:b", "p:a", "other"} {
		require.NoError(t, store.Set(ctx, key, "v"))
	}

	keys, err := store.Keys(ctx, "p:")
	require.NoError(t, err)
	assert.Equal(t, []string{"p:a", "p:b"}, keys)
}

func TestNewKVStore_UnreachableServer(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := redis.NewKVStore(context.Background(), redis.Options{Addr: addr})
	assert.Error(t, err)
}

func TestKVStore_ServerErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	store, srv := newStore(t)

	srv.SetError("LOADING")
	_, _, err := store.Get(ctx, "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to get "k"`)
}
