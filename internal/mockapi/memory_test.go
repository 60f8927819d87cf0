package mockapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "rest-user-client/internal/domain/user"
)

func TestMemoryStore_SeedsRecordsWithSequentialIDs(t *testing.T) {
	store := NewMemoryStore(domain.Record{"name": "Alice"}, domain.Record{"name": "Bea"})

	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0]["id"])
	assert.Equal(t, "Alice", records[0]["name"])
	assert.Equal(t, int64(2), records[1]["id"])
	assert.Equal(t, "Bea", records[1]["name"])
}

func TestMemoryStore_CreateScrubsClientSentID(t *testing.T) {
	store := NewMemoryStore()

	created, err := store.Create(context.Background(), domain.Record{"id": int64(99), "name": "Eve"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created["id"])

	_, err = store.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UpdateReplacesWholePayload(t *testing.T) {
	store := NewMemoryStore(domain.Record{"name": "Alice", "role": "admin"})

	updated, err := store.Update(context.Background(), 1, domain.Record{"name": "Bobby"})
	require.NoError(t, err)
	assert.Equal(t, "Bobby", updated["name"])
	assert.NotContains(t, updated, "role")
}

func TestMemoryStore_DeleteRemovesRecord(t *testing.T) {
	store := NewMemoryStore(domain.Record{"name": "Alice"})

	require.NoError(t, store.Delete(context.Background(), 1))
	assert.ErrorIs(t, store.Delete(context.Background(), 1), ErrNotFound)

	_, err := store.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

// Mutating a returned record must not reach the stored copy.
func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore(domain.Record{"name": "Alice"})

	rec, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	rec["name"] = "Mallory"

	fresh, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", fresh["name"])
}

func TestMemoryStore_UnknownIDs(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Update(ctx, 42, domain.Record{"name": "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, 42), ErrNotFound)
}
