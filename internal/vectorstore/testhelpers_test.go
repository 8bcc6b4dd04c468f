package vectorstore_test

import (
	"context"
	"testing"

	"github.com/fyrsmithlabs/vecstore/internal/vectorstore"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEmbedder returns deterministic normalized vectors for testing.
type testEmbedder struct {
	vectorSize int
}

func (e *testEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = e.makeEmbedding(text)
	}
	return embeddings, nil
}

func (e *testEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.makeEmbedding(text), nil
}

// makeEmbedding creates a normalized embedding based on text hash.
func (e *testEmbedder) makeEmbedding(text string) []float32 {
	embedding := make([]float32, e.vectorSize)
	// Deterministic values derived from the text
	hash := 0
	for _, c := range text {
		hash = (hash*31 + int(c)) % 1000
	}
	var sumSq float32
	for i := range embedding {
		embedding[i] = float32((hash+i)%100) / 100.0
		sumSq += embedding[i] * embedding[i]
	}
	// Normalize to unit vector (chromem requires normalized vectors)
	if sumSq > 0 {
		norm := float32(1.0) / sqrt32(sumSq)
		for i := range embedding {
			embedding[i] *= norm
		}
	}
	return embedding
}

func sqrt32(x float32) float32 {
	if x <= 0 {
		return 0
	}
	// Newton's method for square root
	z := x / 2
	for i := 0; i < 10; i++ {
		z = (z + x/z) / 2
	}
	return z
}

func newTestChromemStore(t *testing.T) *vectorstore.ChromemStore {
	t.Helper()

	config := vectorstore.ChromemConfig{
		Path:           t.TempDir(),
		Compress:       false, // Faster for tests
		CollectionName: "test_collection",
		VectorSize:     384,
	}

	embedder := &testEmbedder{vectorSize: 384}

	store, err := vectorstore.NewChromemStore(config, embedder, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}
