package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helojet/helojet-server/internal/kv"
)

func TestAuthFlag(t *testing.T) {
	s, slots := setupTestStore(t)
	ctx := context.Background()

	on, err := s.AuthFlag(ctx)
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, s.SetAuthFlag(ctx, true))
	raw, err := slots.Get(ctx, keyAuth)
	require.NoError(t, err)
	assert.Equal(t, "true", string(raw))

	on, err = s.AuthFlag(ctx)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, s.SetAuthFlag(ctx, false))
	_, err = slots.Get(ctx, keyAuth)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestAuthFlag_OtherValuesMeanSignedOut(t *testing.T) {
	s, slots := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, slots.Set(ctx, keyAuth, []byte("yes")))

	on, err := s.AuthFlag(ctx)
	require.NoError(t, err)
	assert.False(t, on)
}
