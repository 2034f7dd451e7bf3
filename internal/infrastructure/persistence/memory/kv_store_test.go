package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	s := NewKVStore()

	require.NoError(t, s.Set(ctx, "p:b", "2"))
	require.NoError(t, s.Set(ctx, "p:a", "1"))
	require.NoError(t, s.Set(ctx, "q:a", "3"))

	v, ok, err := s.Get(ctx, "p:a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	keys, err := s.Keys(ctx, "p:")
	require.NoError(t, err)
	assert.Equal(t, []string{"p:a", "p:b"}, keys)

	require.NoError(t, s.Remove(ctx, "p:a"))
	_, ok, _ = s.Get(ctx, "p:a")
	assert.False(t, ok)
	assert.NoError(t, s.Close())
}
