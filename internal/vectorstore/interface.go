// Package vectorstore defines the interface for vector storage operations.
package vectorstore

import (
	"context"
	"errors"
)

// Sentinel errors for vector store operations.
var (
	// ErrValidation indicates invalid caller input (mismatched slice
	// lengths, negative topK, empty query). Raised before any backend call.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidConfig indicates invalid configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedStore is returned by the factory for unknown store types.
	ErrUnsupportedStore = errors.New("unsupported store type")

	// ErrMissingCredentials indicates no API key could be resolved for a
	// backend that requires one.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrCollectionNotFound is returned when a collection does not exist.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrEmptyDocuments indicates empty or nil documents.
	ErrEmptyDocuments = errors.New("empty or nil documents")

	// ErrConnectionFailed indicates backend connection issues.
	ErrConnectionFailed = errors.New("failed to connect to vector store")

	// ErrEmbeddingFailed indicates embedding generation failure.
	ErrEmbeddingFailed = errors.New("failed to generate embeddings")

	// ErrInvalidCollectionName indicates collection name validation failure.
	ErrInvalidCollectionName = errors.New("invalid collection name")
)

// Embedder generates vector embeddings from text.
//
// Embeddings are dense numerical representations that capture semantic
// meaning, enabling similarity search. Implementations can use local ONNX
// models (FastEmbed) or hosted APIs (OpenAI).
type Embedder interface {
	// EmbedDocuments generates embeddings for multiple texts.
	// Returns a slice of embeddings (one per input text) or an error.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates an embedding for a single query.
	// Some models optimize differently for queries vs documents.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Store is the unified interface for vector storage backends.
//
// Every operation is a pass-through to the underlying backend SDK with
// input validation in front and response-shape normalization behind.
// Implementations:
//   - ChromemStore: embedded chromem-go (local)
//   - QdrantStore: external Qdrant gRPC client (cloud)
type Store interface {
	// AddDocuments adds documents to the backend collection.
	//
	// Documents are embedded and stored with their metadata; the document
	// ID is the unique identifier in the store. Returns the IDs of the
	// added documents.
	AddDocuments(ctx context.Context, docs []Document) ([]string, error)

	// Query performs similarity search and returns up to topK results
	// ordered by score, best match first.
	//
	// Filters match against document metadata; only documents matching
	// ALL conditions are returned. topK == 0 returns an empty slice
	// without a backend call; topK < 0 is a validation error.
	Query(ctx context.Context, query string, topK int, filters map[string]interface{}) ([]QueryResult, error)

	// DeleteDocuments deletes documents by their IDs.
	//
	// Unknown IDs are a no-op for both adapters (see package doc).
	DeleteDocuments(ctx context.Context, ids []string) error

	// CollectionInfo returns metadata about the backend collection:
	// name, backend type, document count, and backend-specific stats.
	CollectionInfo(ctx context.Context) (*CollectionInfo, error)

	// Backend returns the store type name ("chromem" or "qdrant").
	Backend() string

	// Close releases the backend connection and any held resources.
	Close() error
}
