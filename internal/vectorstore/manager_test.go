package vectorstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fyrsmithlabs/vecstore/internal/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *vectorstore.Manager {
	t.Helper()

	m, err := vectorstore.NewManager(testConfig(t), &testEmbedder{vectorSize: 384}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestNewManager(t *testing.T) {
	m := newTestManager(t)
	assert.Equal(t, "chromem", m.Active())
	assert.NotNil(t, m.Store())
}

func TestNewManager_UnsupportedType(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreType = "pinecone"

	_, err := vectorstore.NewManager(cfg, &testEmbedder{vectorSize: 384}, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorstore.ErrUnsupportedStore)
}

func TestManager_AddSearchDeleteInfo(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	ids, err := m.Add(ctx, []vectorstore.Document{
		{ID: "a", Content: "the quick brown fox"},
		{ID: "b", Content: "jumps over the lazy dog"},
	})
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	results, err := m.Search(ctx, "the quick brown fox", 2)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "a", results[0].ID)

	require.NoError(t, m.Delete(ctx, []string{"a"}))

	info, err := m.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, info.DocumentCount)
	assert.Equal(t, "chromem", info.Backend)
}

func TestManager_SwitchUnknownTypeKeepsActiveStore(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Add(ctx, []vectorstore.Document{{ID: "a", Content: "still here"}})
	require.NoError(t, err)

	err = m.Switch(ctx, "pinecone")
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorstore.ErrUnsupportedStore)

	// Failed switch must leave the active adapter untouched
	assert.Equal(t, "chromem", m.Active())
	info, err := m.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, info.DocumentCount)
}

func TestManager_SwitchRebuildsAdapter(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Add(ctx, []vectorstore.Document{{ID: "a", Content: "persisted data"}})
	require.NoError(t, err)

	// Same backend: the adapter is rebuilt against the same storage,
	// so existing data stays visible.
	require.NoError(t, m.Switch(ctx, "local"))
	assert.Equal(t, "chromem", m.Active())

	info, err := m.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, info.DocumentCount)
}

func TestManager_Use(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Add(ctx, []vectorstore.Document{{ID: "a", Content: "first store"}})
	require.NoError(t, err)

	replacement := newTestChromemStore(t)
	require.NoError(t, m.Use(replacement))

	// Fresh store has no documents
	info, err := m.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, info.DocumentCount)
}

func TestManager_UseNil(t *testing.T) {
	m := newTestManager(t)
	err := m.Use(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, vectorstore.ErrValidation)
}

func TestManager_LoadDirectory(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.txt"), []byte("first file contents"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two.txt"), []byte("second file contents"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.md"), []byte("not matched"), 0644))

	count, err := m.LoadDirectory(ctx, dir, "*.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	results, err := m.Search(ctx, "first file contents", 2)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "one.txt", results[0].ID)
	assert.Equal(t, "text_file", results[0].Metadata["type"])
}

func TestManager_LoadDirectory_NoMatches(t *testing.T) {
	m := newTestManager(t)

	count, err := m.LoadDirectory(context.Background(), t.TempDir(), "*.txt")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestManager_LoadDirectory_DefaultPattern(t *testing.T) {
	m := newTestManager(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.txt"), []byte("default pattern match"), 0644))

	count, err := m.LoadDirectory(context.Background(), dir, "")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
