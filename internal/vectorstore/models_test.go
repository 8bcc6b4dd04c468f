package vectorstore_test

import (
	"testing"

	"github.com/fyrsmithlabs/vecstore/internal/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDocuments(t *testing.T) {
	contents := []string{"first doc", "second doc"}
	ids := []string{"doc1", "doc2"}
	metadatas := []map[string]interface{}{
		{"category": "a"},
		{"category": "b"},
	}

	docs, err := vectorstore.BuildDocuments(contents, ids, metadatas)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "doc1", docs[0].ID)
	assert.Equal(t, "first doc", docs[0].Content)
	assert.Equal(t, "a", docs[0].Metadata["category"])
	assert.Equal(t, "doc2", docs[1].ID)
}

func TestBuildDocuments_NilMetadatas(t *testing.T) {
	docs, err := vectorstore.BuildDocuments([]string{"text"}, []string{"id1"}, nil)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Nil(t, docs[0].Metadata)
}

func TestBuildDocuments_Validation(t *testing.T) {
	tests := []struct {
		name      string
		contents  []string
		ids       []string
		metadatas []map[string]interface{}
		wantErr   error
	}{
		{
			name:    "empty contents",
			wantErr: vectorstore.ErrEmptyDocuments,
		},
		{
			name:     "length mismatch contents vs ids",
			contents: []string{"a", "b"},
			ids:      []string{"id1"},
			wantErr:  vectorstore.ErrValidation,
		},
		{
			name:      "length mismatch contents vs metadatas",
			contents:  []string{"a", "b"},
			ids:       []string{"id1", "id2"},
			metadatas: []map[string]interface{}{{"k": "v"}},
			wantErr:   vectorstore.ErrValidation,
		},
		{
			name:     "empty id",
			contents: []string{"a"},
			ids:      []string{""},
			wantErr:  vectorstore.ErrValidation,
		},
		{
			name:     "duplicate ids",
			contents: []string{"a", "b"},
			ids:      []string{"id1", "id1"},
			wantErr:  vectorstore.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vectorstore.BuildDocuments(tt.contents, tt.ids, tt.metadatas)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateCollectionName(t *testing.T) {
	valid := []string{"documents", "my_collection", "c1", "a"}
	for _, name := range valid {
		assert.NoError(t, vectorstore.ValidateCollectionName(name), "name %q", name)
	}

	invalid := []string{"", "Documents", "my-collection", "has space", "../etc", "日本語"}
	for _, name := range invalid {
		err := vectorstore.ValidateCollectionName(name)
		require.Error(t, err, "name %q", name)
		assert.ErrorIs(t, err, vectorstore.ErrInvalidCollectionName)
	}
}

func TestNormalizeStoreType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"chromem", "chromem"},
		{"local", "chromem"},
		{"", "chromem"},
		{"qdrant", "qdrant"},
		{"cloud", "qdrant"},
		{"pinecone", "pinecone"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, vectorstore.NormalizeStoreType(tt.in), "input %q", tt.in)
	}
}
