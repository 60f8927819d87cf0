package mockapi

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "rest-user-client/internal/domain/user"
)

func setupTestGormStore(t *testing.T) *GormStore {
	t.Helper()
	store, err := NewGormStore(filepath.Join(t.TempDir(), "mockapi.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGormStore_CreateAssignsSequentialIDs(t *testing.T) {
	store := setupTestGormStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, domain.Record{"name": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first["id"])

	second, err := store.Create(ctx, domain.Record{"name": "Bob"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second["id"])

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0]["id"])
	assert.Equal(t, int64(2), records[1]["id"])
}

// Records carry whatever fields the client sent; nothing beyond the id is
// interpreted.
func TestGormStore_RoundTripsArbitraryFields(t *testing.T) {
	store := setupTestGormStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, domain.Record{
		"name":    "Alice",
		"tags":    []any{"admin", "beta"},
		"profile": map[string]any{"city": "Hanoi"},
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, "Alice", got["name"])
	assert.Equal(t, []any{"admin", "beta"}, got["tags"])
}

func TestGormStore_CreateScrubsClientSentID(t *testing.T) {
	store := setupTestGormStore(t)

	created, err := store.Create(context.Background(), domain.Record{"id": int64(99), "name": "Eve"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created["id"])
}

func TestGormStore_UpdateReplacesWholePayload(t *testing.T) {
	store := setupTestGormStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, domain.Record{"name": "Alice", "role": "admin"})
	require.NoError(t, err)

	updated, err := store.Update(ctx, 1, domain.Record{"name": "Bobby"})
	require.NoError(t, err)
	assert.Equal(t, "Bobby", updated["name"])
	assert.NotContains(t, updated, "role")

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.NotContains(t, got, "role")
}

func TestGormStore_DeleteRemovesRow(t *testing.T) {
	store := setupTestGormStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, domain.Record{"name": "Alice"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, 1))
	assert.ErrorIs(t, store.Delete(ctx, 1), ErrNotFound)

	_, err = store.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_UnknownIDs(t *testing.T) {
	store := setupTestGormStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Update(ctx, 42, domain.Record{"name": "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockapi.db")
	ctx := context.Background()

	store, err := NewGormStore(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	_, err = store.Create(ctx, domain.Record{"name": "Alice"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewGormStore(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got["name"])
}
