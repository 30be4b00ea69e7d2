package core_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/core"
)

// MockStore implements core.Store in memory and records every persist.
// It deliberately does NOT implement core.Watchable.
type MockStore struct {
	saved    []core.Note
	persists int
	failWith error
}

func (m *MockStore) Persist(ctx context.Context, notes []core.Note) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.saved = slices.Clone(notes)
	m.persists++
	return nil
}

func (m *MockStore) Load(ctx context.Context) ([]core.Note, error) {
	return slices.Clone(m.saved), nil
}

// newTestService wires a service with deterministic IDs and a fixed clock.
func newTestService(t *testing.T, store core.Store) *core.Service {
	t.Helper()

	seq := 0
	base := time.Date(2024, 2, 3, 12, 0, 0, 0, time.UTC)
	svc := core.NewService(store,
		core.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("note-%d", seq)
		}),
		core.WithClock(func() time.Time {
			return base.Add(time.Duration(seq) * time.Minute)
		}),
	)
	require.NoError(t, svc.Reload(context.Background()))
	return svc
}

func ids(notes []core.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.ID
	}
	return out
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Prepends Newest First", func(t *testing.T) {
		store := &MockStore{}
		svc := newTestService(t, store)

		a, err := svc.Create(ctx, "A", "first")
		require.NoError(t, err)
		b, err := svc.Create(ctx, "B", "second")
		require.NoError(t, err)

		notes, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{b.ID, a.ID}, ids(notes))
		assert.Equal(t, []string{b.ID, a.ID}, ids(store.saved), "replica should mirror the collection")
		assert.Equal(t, 2, store.persists)
	})

	t.Run("Empty Content Is Rejected Without Writing", func(t *testing.T) {
		store := &MockStore{}
		svc := newTestService(t, store)

		_, err := svc.Create(ctx, "title only", "")
		assert.ErrorIs(t, err, core.ErrEmptyContent)

		notes, _ := svc.List(ctx)
		assert.Empty(t, notes)
		assert.Zero(t, store.persists)
	})

	t.Run("Counts Only Non-Empty Creates", func(t *testing.T) {
		svc := newTestService(t, &MockStore{})
		contents := []string{"a", "", "b", "", "", "c"}
		for _, c := range contents {
			_, _ = svc.Create(ctx, "", c)
		}
		notes, _ := svc.List(ctx)
		assert.Len(t, notes, 3)
	})

	t.Run("Title Length Is Bounded In Runes", func(t *testing.T) {
		svc := newTestService(t, &MockStore{})

		_, err := svc.Create(ctx, strings.Repeat("é", core.MaxTitleLength), "ok")
		assert.NoError(t, err)

		_, err = svc.Create(ctx, strings.Repeat("x", core.MaxTitleLength+1), "too long")
		assert.ErrorIs(t, err, core.ErrTitleTooLong)
	})

	t.Run("Stamps ID And Date", func(t *testing.T) {
		svc := newTestService(t, &MockStore{})
		n, err := svc.Create(ctx, "", "body")
		require.NoError(t, err)
		assert.Equal(t, "note-1", n.ID)
		assert.False(t, n.Date.IsZero())
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	store := &MockStore{}
	svc := newTestService(t, store)

	for _, c := range []string{"one", "two", "three"} {
		_, err := svc.Create(ctx, "", c)
		require.NoError(t, err)
	}
	// Collection is [note-3, note-2, note-1].

	require.NoError(t, svc.Delete(ctx, "note-2"))
	notes, _ := svc.List(ctx)
	assert.Equal(t, []string{"note-3", "note-1"}, ids(notes))
	assert.Equal(t, []string{"note-3", "note-1"}, ids(store.saved))

	before := store.persists
	require.NoError(t, svc.Delete(ctx, "does-not-exist"))
	after, _ := svc.List(ctx)
	assert.Equal(t, notes, after)
	assert.Equal(t, before, store.persists, "unknown id must not trigger a write")
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	store := &MockStore{}
	svc := newTestService(t, store)

	orig, err := svc.Create(ctx, "Old", "old body")
	require.NoError(t, err)
	other, err := svc.Create(ctx, "Other", "untouched")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, orig.ID, "New", "new body")
	require.NoError(t, err)
	assert.Equal(t, orig.ID, updated.ID)
	assert.True(t, orig.Date.Equal(updated.Date))
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "new body", updated.Content)

	got, err := svc.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other, got)

	notes, _ := svc.List(ctx)
	assert.Equal(t, []string{other.ID, orig.ID}, ids(notes), "update must not reorder")

	t.Run("Unknown ID", func(t *testing.T) {
		before, _ := svc.List(ctx)
		_, err := svc.Update(ctx, "missing", "t", "c")
		assert.ErrorIs(t, err, core.ErrNotFound)
		after, _ := svc.List(ctx)
		assert.Equal(t, before, after)
	})

	t.Run("Empty Content", func(t *testing.T) {
		_, err := svc.Update(ctx, orig.ID, "t", "")
		assert.ErrorIs(t, err, core.ErrEmptyContent)
	})
}

func TestService_Query(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &MockStore{})

	groceries, err := svc.Create(ctx, "Groceries", "milk, eggs")
	require.NoError(t, err)
	call, err := svc.Create(ctx, "", "call mom")
	require.NoError(t, err)

	tests := []struct {
		term string
		want []string
	}{
		{"milk", []string{groceries.ID}},
		{"MOM", []string{call.ID}},
		{"groc", []string{groceries.ID}},
		{"", []string{call.ID, groceries.ID}},
		{"nothing here", []string{}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("term=%q", tt.term), func(t *testing.T) {
			got, err := svc.Query(ctx, tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestService_PersistFailureLeavesCollectionUnchanged(t *testing.T) {
	ctx := context.Background()
	store := &MockStore{}
	svc := newTestService(t, store)

	n, err := svc.Create(ctx, "keep", "me")
	require.NoError(t, err)

	quota := errors.New("quota exceeded")
	store.failWith = quota

	_, err = svc.Create(ctx, "", "lost")
	assert.ErrorIs(t, err, core.ErrPersistence)
	assert.ErrorIs(t, err, quota)

	_, err = svc.Update(ctx, n.ID, "changed", "changed")
	assert.ErrorIs(t, err, core.ErrPersistence)

	err = svc.Delete(ctx, n.ID)
	assert.ErrorIs(t, err, core.ErrPersistence)

	notes, _ := svc.List(ctx)
	require.Len(t, notes, 1)
	assert.Equal(t, n, notes[0])
}

func TestService_Reload(t *testing.T) {
	ctx := context.Background()
	store := &MockStore{saved: []core.Note{{ID: "x", Content: "from disk"}}}
	svc := core.NewService(store)

	notes, _ := svc.List(ctx)
	assert.Empty(t, notes, "collection is empty until reloaded")

	require.NoError(t, svc.Reload(ctx))
	notes, _ = svc.List(ctx)
	assert.Equal(t, []string{"x"}, ids(notes))
}

func TestService_Watch_Unsupported(t *testing.T) {
	svc := core.NewService(&MockStore{})
	_, err := svc.Watch(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for non-watchable store")
	}
	if err.Error() != "store does not support watching" {
		t.Errorf("unexpected error msg: %v", err)
	}
}

func TestService_State(t *testing.T) {
	svc := newTestService(t, &MockStore{})
	_, _ = svc.Create(context.Background(), "", "x")

	state, ok := svc.State().(core.ServiceState)
	require.True(t, ok)
	assert.Equal(t, 1, state.Notes)
	assert.Equal(t, "store", state.StoreType)
	assert.Equal(t, "service", svc.ComponentType())
}
