package vectorstore_test

import (
	"context"
	"testing"

	"github.com/fyrsmithlabs/vecstore/internal/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChromemConfig_ApplyDefaults(t *testing.T) {
	config := vectorstore.ChromemConfig{}
	config.ApplyDefaults()

	assert.Equal(t, "~/.config/vecstore/data", config.Path)
	assert.Equal(t, "documents", config.CollectionName)
	assert.Equal(t, 384, config.VectorSize)
}

func TestChromemConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    vectorstore.ChromemConfig
		wantError bool
	}{
		{
			name: "valid config",
			config: vectorstore.ChromemConfig{
				Path:           "/tmp/test",
				CollectionName: "test",
				VectorSize:     384,
			},
			wantError: false,
		},
		{
			name: "zero vector size",
			config: vectorstore.ChromemConfig{
				Path:           "/tmp/test",
				CollectionName: "test",
				VectorSize:     0,
			},
			wantError: true,
		},
		{
			name: "bad collection name",
			config: vectorstore.ChromemConfig{
				Path:           "/tmp/test",
				CollectionName: "Bad-Name",
				VectorSize:     384,
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewChromemStore_RequiresEmbedder(t *testing.T) {
	_, err := vectorstore.NewChromemStore(vectorstore.ChromemConfig{Path: t.TempDir()}, nil, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorstore.ErrInvalidConfig)
}

func TestChromemStore_AddAndQuery(t *testing.T) {
	store := newTestChromemStore(t)
	ctx := context.Background()

	docs := []vectorstore.Document{
		{ID: "go", Content: "Go is a statically typed language", Metadata: map[string]interface{}{"topic": "lang"}},
		{ID: "py", Content: "Python is dynamically typed", Metadata: map[string]interface{}{"topic": "lang"}},
		{ID: "db", Content: "Qdrant is a vector database"},
	}

	ids, err := store.AddDocuments(ctx, docs)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "py", "db"}, ids)

	results, err := store.Query(ctx, "Go is a statically typed language", 3, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	// Exact content match should rank first with the highest score
	assert.Equal(t, "go", results[0].ID)
	assert.Equal(t, "Go is a statically typed language", results[0].Content)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i].Score, results[i-1].Score, "results must be ordered by score")
	}
	assert.Equal(t, "lang", results[0].Metadata["topic"])
}

func TestChromemStore_AddEmptyDocuments(t *testing.T) {
	store := newTestChromemStore(t)

	_, err := store.AddDocuments(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorstore.ErrEmptyDocuments)
}

func TestChromemStore_AddGeneratesMissingIDs(t *testing.T) {
	store := newTestChromemStore(t)

	ids, err := store.AddDocuments(context.Background(), []vectorstore.Document{
		{Content: "no id supplied"},
	})
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.NotEmpty(t, ids[0])
}

func TestChromemStore_QueryTopKZero(t *testing.T) {
	store := newTestChromemStore(t)
	ctx := context.Background()

	_, err := store.AddDocuments(ctx, []vectorstore.Document{{ID: "a", Content: "some text"}})
	require.NoError(t, err)

	results, err := store.Query(ctx, "some text", 0, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestChromemStore_QueryNegativeTopK(t *testing.T) {
	store := newTestChromemStore(t)

	_, err := store.Query(context.Background(), "some text", -1, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorstore.ErrValidation)
}

func TestChromemStore_QueryEmptyQuery(t *testing.T) {
	store := newTestChromemStore(t)

	_, err := store.Query(context.Background(), "", 5, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorstore.ErrValidation)
}

func TestChromemStore_QueryEmptyStore(t *testing.T) {
	store := newTestChromemStore(t)

	results, err := store.Query(context.Background(), "anything", 5, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestChromemStore_QueryTopKExceedsCount(t *testing.T) {
	store := newTestChromemStore(t)
	ctx := context.Background()

	_, err := store.AddDocuments(ctx, []vectorstore.Document{
		{ID: "only", Content: "single document"},
	})
	require.NoError(t, err)

	// topK larger than the collection must not fail
	results, err := store.Query(ctx, "single document", 10, nil)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestChromemStore_QueryWithFilters(t *testing.T) {
	store := newTestChromemStore(t)
	ctx := context.Background()

	_, err := store.AddDocuments(ctx, []vectorstore.Document{
		{ID: "a", Content: "apples are red", Metadata: map[string]interface{}{"kind": "fruit"}},
		{ID: "b", Content: "apples are green", Metadata: map[string]interface{}{"kind": "veg"}},
	})
	require.NoError(t, err)

	results, err := store.Query(ctx, "apples", 1, map[string]interface{}{"kind": "fruit"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].ID)
}

func TestChromemStore_DeleteDocuments(t *testing.T) {
	store := newTestChromemStore(t)
	ctx := context.Background()

	_, err := store.AddDocuments(ctx, []vectorstore.Document{
		{ID: "keep", Content: "document to keep"},
		{ID: "drop", Content: "document to drop"},
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteDocuments(ctx, []string{"drop"}))

	info, err := store.CollectionInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, info.DocumentCount)

	results, err := store.Query(ctx, "document to keep", 2, nil)
	require.NoError(t, err)
	for _, r := range results {
		assert.NotEqual(t, "drop", r.ID)
	}
}

func TestChromemStore_DeleteUnknownIDsIsNoop(t *testing.T) {
	store := newTestChromemStore(t)
	ctx := context.Background()

	// Never-written store
	require.NoError(t, store.DeleteDocuments(ctx, []string{"ghost"}))

	_, err := store.AddDocuments(ctx, []vectorstore.Document{{ID: "a", Content: "text"}})
	require.NoError(t, err)

	require.NoError(t, store.DeleteDocuments(ctx, []string{"ghost"}))

	info, err := store.CollectionInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, info.DocumentCount)
}

func TestChromemStore_DeleteEmptyIDs(t *testing.T) {
	store := newTestChromemStore(t)
	assert.NoError(t, store.DeleteDocuments(context.Background(), nil))
}

func TestChromemStore_CollectionInfo(t *testing.T) {
	store := newTestChromemStore(t)
	ctx := context.Background()

	info, err := store.CollectionInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test_collection", info.Name)
	assert.Equal(t, "chromem", info.Backend)
	assert.Equal(t, 0, info.DocumentCount)
	assert.Equal(t, 384, info.VectorSize)
	assert.Contains(t, info.Stats, "persist_path")

	_, err = store.AddDocuments(ctx, []vectorstore.Document{{ID: "a", Content: "text"}})
	require.NoError(t, err)

	info, err = store.CollectionInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, info.DocumentCount)
}

func TestChromemStore_Backend(t *testing.T) {
	store := newTestChromemStore(t)
	assert.Equal(t, "chromem", store.Backend())
}

func TestChromemStore_Persistence(t *testing.T) {
	dir := t.TempDir()
	embedder := &testEmbedder{vectorSize: 384}
	config := vectorstore.ChromemConfig{
		Path:           dir,
		CollectionName: "persisted",
		VectorSize:     384,
	}

	store, err := vectorstore.NewChromemStore(config, embedder, zap.NewNop())
	require.NoError(t, err)

	_, err = store.AddDocuments(context.Background(), []vectorstore.Document{
		{ID: "a", Content: "survives restarts"},
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopen against the same directory
	reopened, err := vectorstore.NewChromemStore(config, embedder, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	info, err := reopened.CollectionInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, info.DocumentCount)
}
