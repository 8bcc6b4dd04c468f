package vectorstore_test

import (
	"testing"

	"github.com/fyrsmithlabs/vecstore/internal/config"
	"github.com/fyrsmithlabs/vecstore/internal/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.StoreType = "chromem"
	cfg.Chromem.Path = t.TempDir()
	cfg.Chromem.CollectionName = "test_collection"
	return cfg
}

func TestNewStore_Chromem(t *testing.T) {
	store, err := vectorstore.NewStore(testConfig(t), &testEmbedder{vectorSize: 384}, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "chromem", store.Backend())
}

func TestNewStore_Aliases(t *testing.T) {
	for _, storeType := range []string{"local", ""} {
		cfg := testConfig(t)
		cfg.StoreType = storeType

		store, err := vectorstore.NewStore(cfg, &testEmbedder{vectorSize: 384}, zap.NewNop())
		require.NoError(t, err, "store_type %q", storeType)
		assert.Equal(t, "chromem", store.Backend())
		require.NoError(t, store.Close())
	}
}

func TestNewStore_UnsupportedType(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreType = "pinecone"

	_, err := vectorstore.NewStore(cfg, &testEmbedder{vectorSize: 384}, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorstore.ErrUnsupportedStore)
	assert.Contains(t, err.Error(), "pinecone")
}

func TestNewStoreFromProvider(t *testing.T) {
	chromemCfg := &vectorstore.ChromemConfig{
		Path:           t.TempDir(),
		CollectionName: "test_collection",
		VectorSize:     384,
	}

	store, err := vectorstore.NewStoreFromProvider("chromem", chromemCfg, nil, &testEmbedder{vectorSize: 384}, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, "chromem", store.Backend())
}

func TestNewStoreFromProvider_MissingConfig(t *testing.T) {
	embedder := &testEmbedder{vectorSize: 384}

	_, err := vectorstore.NewStoreFromProvider("chromem", nil, nil, embedder, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorstore.ErrInvalidConfig)

	_, err = vectorstore.NewStoreFromProvider("qdrant", nil, nil, embedder, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorstore.ErrInvalidConfig)
}

func TestNewStoreFromProvider_UnsupportedType(t *testing.T) {
	_, err := vectorstore.NewStoreFromProvider("weaviate", nil, nil, &testEmbedder{vectorSize: 384}, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorstore.ErrUnsupportedStore)
}
