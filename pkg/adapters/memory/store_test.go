package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/adapters/memory"
	"github.com/aretw0/jotter/pkg/kv"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.Get(ctx, "notes")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Set(ctx, "notes", []byte("[]")))
	require.NoError(t, s.Set(ctx, "work/notes", []byte("[1]")))

	v, err := s.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(v))

	// Returned values must not alias the stored bytes.
	v[0] = 'x'
	again, _ := s.Get(ctx, "notes")
	assert.Equal(t, "[]", string(again))

	keys, err := s.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"notes", "work/notes"}, keys)

	keys, err = s.Keys(ctx, "work/*")
	require.NoError(t, err)
	assert.Equal(t, []string{"work/notes"}, keys)

	require.NoError(t, s.Delete(ctx, "notes"))
	assert.ErrorIs(t, s.Delete(ctx, "notes"), kv.ErrNotFound)
}

func TestStore_FailWrites(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	quota := errors.New("quota exceeded")
	s.FailWrites = quota

	assert.ErrorIs(t, s.Set(ctx, "notes", []byte("x")), quota)
	_, err := s.Get(ctx, "notes")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestStore_State(t *testing.T) {
	s := memory.New()
	require.NoError(t, s.Set(context.Background(), "notes", []byte("[]")))

	assert.Equal(t, memory.StoreState{Keys: 1}, s.State())
	assert.Equal(t, "memory", s.ComponentType())
}
