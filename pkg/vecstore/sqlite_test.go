package vecstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/logger"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
)

func openSQLiteStore(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(&StoreConfig{
		Backend:   types.BackendSQLite,
		Path:      path,
		Dimension: 4,
	}, logger.NewTestLogger())
	require.NoError(t, err)
	require.NoError(t, store.Initialize(context.Background()))
	return store
}

func TestSQLiteStoreInsertAndSearch(t *testing.T) {
	ctx := context.Background()
	store := openSQLiteStore(t, filepath.Join(t.TempDir(), "vectors.db"))
	defer store.Close()

	require.NoError(t, store.Insert(ctx, entry("e1", "", types.SourceKindGeneral, types.EmbeddingVector{1, 0, 0, 0}, "first")))
	require.NoError(t, store.Insert(ctx, entry("e2", "u1", types.SourceKindProfile, types.EmbeddingVector{0, 1, 0, 0}, "profile")))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	results, err := store.Search(ctx, types.EmbeddingVector{1, 0, 0, 0}, 10, 0.3, "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "e1", results[0].ID)
}

func TestSQLiteStoreUpsertPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vectors.db")

	store := openSQLiteStore(t, path)
	require.NoError(t, store.Insert(ctx, entry("e1", "", types.SourceKindGeneral, types.EmbeddingVector{1, 0, 0, 0}, "old")))
	require.NoError(t, store.Insert(ctx, entry("e1", "", types.SourceKindGeneral, types.EmbeddingVector{0, 1, 0, 0}, "new")))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.NoError(t, store.Close())

	reopened := openSQLiteStore(t, path)
	defer reopened.Close()

	results, err := reopened.Search(ctx, types.EmbeddingVector{0, 1, 0, 0}, 10, 0.3, "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "e1", results[0].ID)
	assert.Equal(t, "new", results[0].Metadata.Title)
}

func TestSQLiteStoreOrderingSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vectors.db")

	store := openSQLiteStore(t, path)
	// Identical vectors tie on score; insertion order must decide the
	// ranking, and a restart must not change it.
	require.NoError(t, store.Insert(ctx, entry("first", "", types.SourceKindGeneral, types.EmbeddingVector{1, 0, 0, 0}, "first")))
	require.NoError(t, store.Insert(ctx, entry("second", "", types.SourceKindGeneral, types.EmbeddingVector{1, 0, 0, 0}, "second")))
	// Re-upserting the first entry must not move it behind the second.
	require.NoError(t, store.Insert(ctx, entry("first", "", types.SourceKindGeneral, types.EmbeddingVector{1, 0, 0, 0}, "first updated")))
	require.NoError(t, store.Close())

	reopened := openSQLiteStore(t, path)
	defer reopened.Close()

	results, err := reopened.Search(ctx, types.EmbeddingVector{1, 0, 0, 0}, 10, 0.3, "")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "first", results[0].ID)
	assert.Equal(t, "first updated", results[0].Metadata.Title)
	assert.Equal(t, "second", results[1].ID)
}

func TestSQLiteStoreInsertBatchPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vectors.db")

	store := openSQLiteStore(t, path)
	batch := []*types.VectorEntry{
		entry("b1", "", types.SourceKindGeneral, types.EmbeddingVector{1, 0, 0, 0}, "b1"),
		entry("b2", "u1", types.SourceKindInsights, types.EmbeddingVector{1, 0, 0, 0}, "b2"),
	}
	require.NoError(t, store.InsertBatch(ctx, batch))
	require.NoError(t, store.Close())

	reopened := openSQLiteStore(t, path)
	defer reopened.Close()

	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	results, err := reopened.Search(ctx, types.EmbeddingVector{1, 0, 0, 0}, 10, 0.3, "u1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b2", results[0].ID)
	assert.Equal(t, types.SourceKindInsights, results[0].SourceKind)
}

func TestSQLiteStoreSkipsCorruptRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vectors.db")

	store := openSQLiteStore(t, path)
	require.NoError(t, store.Insert(ctx, entry("good", "", types.SourceKindGeneral, types.EmbeddingVector{1, 0, 0, 0}, "good")))
	require.NoError(t, store.Insert(ctx, entry("bad", "", types.SourceKindGeneral, types.EmbeddingVector{1, 0, 0, 0}, "bad")))

	// Truncate one row's blob so it can no longer decode.
	require.NoError(t, store.db.Exec(
		"UPDATE vector_entries SET vector_blob = ? WHERE id = ?", []byte{1, 2, 3}, "bad").Error)
	require.NoError(t, store.Close())

	reopened := openSQLiteStore(t, path)
	defer reopened.Close()

	results, err := reopened.Search(ctx, types.EmbeddingVector{1, 0, 0, 0}, 10, 0.3, "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].ID)
}

func TestSQLiteStoreDeleteByOwnerKindPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vectors.db")

	store := openSQLiteStore(t, path)
	require.NoError(t, store.Insert(ctx, entry("p1", "u1", types.SourceKindProfile, types.EmbeddingVector{1, 0, 0, 0}, "profile")))
	require.NoError(t, store.Insert(ctx, entry("i1", "u1", types.SourceKindInsights, types.EmbeddingVector{1, 0, 0, 0}, "insight")))
	require.NoError(t, store.DeleteByOwnerKind(ctx, "u1", types.SourceKindInsights))
	require.NoError(t, store.Close())

	reopened := openSQLiteStore(t, path)
	defer reopened.Close()

	results, err := reopened.Search(ctx, types.EmbeddingVector{1, 0, 0, 0}, 10, 0.3, "u1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].ID)
}

func TestSQLiteStoreSearchCancelledContext(t *testing.T) {
	store := openSQLiteStore(t, filepath.Join(t.TempDir(), "vectors.db"))
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Search(ctx, types.EmbeddingVector{1, 0, 0, 0}, 10, 0.3, "")
	assert.Error(t, err)
}
