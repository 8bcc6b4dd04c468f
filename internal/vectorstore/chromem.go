// Package vectorstore provides vector storage implementations.
package vectorstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	chromem "github.com/philippgille/chromem-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// timeNow is a variable for testing purposes (allows mocking time).
var timeNow = time.Now

// chromemTracer for OpenTelemetry instrumentation.
var chromemTracer = otel.Tracer("vecstore.chromem")

// ChromemConfig holds configuration for the chromem-go embedded backend.
type ChromemConfig struct {
	// Path is the directory for persistent storage.
	// Default: "~/.config/vecstore/data"
	Path string

	// Compress enables gzip compression for stored data.
	Compress bool

	// CollectionName is the collection used for all operations.
	// Default: "documents"
	CollectionName string

	// VectorSize is the expected embedding dimension.
	// Must match the embedder's output dimension.
	// Default: 384 (for FastEmbed bge-small-en-v1.5)
	VectorSize int
}

// ApplyDefaults sets default values for unset fields.
func (c *ChromemConfig) ApplyDefaults() {
	if c.Path == "" {
		c.Path = "~/.config/vecstore/data"
	}
	if c.CollectionName == "" {
		c.CollectionName = "documents"
	}
	if c.VectorSize == 0 {
		c.VectorSize = 384
	}
}

// Validate validates the configuration.
func (c *ChromemConfig) Validate() error {
	if c.VectorSize <= 0 {
		return fmt.Errorf("%w: vector size must be positive", ErrInvalidConfig)
	}
	return ValidateCollectionName(c.CollectionName)
}

// ChromemStore implements the Store interface using chromem-go.
//
// chromem-go is an embeddable vector database with zero third-party
// dependencies. It provides in-memory storage with persistence to gob
// files, so no external database service is needed.
type ChromemStore struct {
	db       *chromem.DB
	embedder Embedder
	config   ChromemConfig
	logger   *zap.Logger
}

// NewChromemStore creates a new ChromemStore with the given configuration.
func NewChromemStore(config ChromemConfig, embedder Embedder, logger *zap.Logger) (*ChromemStore, error) {
	if embedder == nil {
		return nil, fmt.Errorf("%w: embedder is required", ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	expandedPath, err := expandHomePath(config.Path)
	if err != nil {
		return nil, fmt.Errorf("expanding path: %w", err)
	}

	if err := os.MkdirAll(expandedPath, 0755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", expandedPath, err)
	}

	db, err := chromem.NewPersistentDB(expandedPath, config.Compress)
	if err != nil {
		return nil, fmt.Errorf("creating chromem DB: %w", err)
	}

	store := &ChromemStore{
		db:       db,
		embedder: embedder,
		config:   config,
		logger:   logger,
	}

	logger.Info("chromem store initialized",
		zap.String("path", expandedPath),
		zap.Bool("compress", config.Compress),
		zap.Int("vector_size", config.VectorSize),
		zap.String("collection", config.CollectionName),
	)

	return store, nil
}

// expandHomePath expands ~ to home directory.
func expandHomePath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// Backend returns the store type name.
func (s *ChromemStore) Backend() string {
	return "chromem"
}

// createEmbeddingFunc creates a chromem.EmbeddingFunc from our Embedder interface.
func (s *ChromemStore) createEmbeddingFunc() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return s.embedder.EmbedQuery(ctx, text)
	}
}

// collection returns the configured collection, creating it on first use.
// Must pass the embedding function, not nil, because chromem-go sets the
// default OpenAI embedder when nil is passed for persisted collections.
func (s *ChromemStore) collection() (*chromem.Collection, error) {
	collection, err := s.db.GetOrCreateCollection(s.config.CollectionName, nil, s.createEmbeddingFunc())
	if err != nil {
		return nil, fmt.Errorf("getting/creating collection %s: %w", s.config.CollectionName, err)
	}
	return collection, nil
}

// AddDocuments adds documents to the chromem collection.
func (s *ChromemStore) AddDocuments(ctx context.Context, docs []Document) (ids []string, err error) {
	ctx, span := chromemTracer.Start(ctx, "ChromemStore.AddDocuments")
	defer span.End()
	defer observeOp(s.Backend(), "add_documents", timeNow(), &err)

	span.SetAttributes(
		attribute.Int("document_count", len(docs)),
		attribute.String("collection", s.config.CollectionName),
	)

	if len(docs) == 0 {
		return nil, ErrEmptyDocuments
	}

	collection, err := s.collection()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	ids = make([]string, len(docs))
	texts := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
		if ids[i] == "" {
			// Generate unique ID using timestamp + index to avoid collisions
			ids[i] = fmt.Sprintf("doc_%d_%d", timeNow().UnixNano(), i)
			s.logger.Warn("auto-generated document ID - caller should provide explicit IDs",
				zap.String("generated_id", ids[i]),
				zap.Int("index", i),
			)
		}
		texts[i] = doc.Content
	}

	// Generate embeddings in batch
	embeddings, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	chromemDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromemDocs[i] = chromem.Document{
			ID:        ids[i],
			Content:   doc.Content,
			Metadata:  convertMetadataToString(doc.Metadata),
			Embedding: embeddings[i],
		}
	}

	// Concurrency of 1 since we already have embeddings
	if err := collection.AddDocuments(ctx, chromemDocs, 1); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("adding documents: %w", err)
	}

	span.SetAttributes(attribute.Int("documents_added", len(ids)))
	span.SetStatus(codes.Ok, "success")

	s.logger.Debug("added documents to chromem",
		zap.String("collection", s.config.CollectionName),
		zap.Int("count", len(docs)),
	)

	return ids, nil
}

// Query performs similarity search in the chromem collection.
func (s *ChromemStore) Query(ctx context.Context, query string, topK int, filters map[string]interface{}) (results []QueryResult, err error) {
	ctx, span := chromemTracer.Start(ctx, "ChromemStore.Query")
	defer span.End()
	defer observeOp(s.Backend(), "query", timeNow(), &err)

	span.SetAttributes(
		attribute.String("collection", s.config.CollectionName),
		attribute.Int("top_k", topK),
	)

	proceed, err := validateQueryArgs(query, topK)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !proceed {
		return []QueryResult{}, nil
	}

	// A collection that was never written to is an empty store
	collection := s.db.GetCollection(s.config.CollectionName, s.createEmbeddingFunc())
	if collection == nil {
		return []QueryResult{}, nil
	}

	// Cap topK at collection size (chromem requires nResults <= doc count)
	docCount := collection.Count()
	if docCount == 0 {
		return []QueryResult{}, nil
	}
	if topK > docCount {
		topK = docCount
	}

	whereFilter := convertMetadataToString(filters)

	chromemResults, err := collection.Query(ctx, query, topK, whereFilter, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("querying collection %s: %w", s.config.CollectionName, err)
	}

	results = make([]QueryResult, len(chromemResults))
	for i, r := range chromemResults {
		results[i] = QueryResult{
			ID:       r.ID,
			Content:  r.Content,
			Score:    r.Similarity,
			Metadata: convertMetadataFromString(r.Metadata),
		}
	}

	span.SetAttributes(attribute.Int("results_count", len(results)))
	span.SetStatus(codes.Ok, "success")

	s.logger.Debug("queried chromem collection",
		zap.String("collection", s.config.CollectionName),
		zap.Int("top_k", topK),
		zap.Int("results", len(results)),
	)

	return results, nil
}

// DeleteDocuments deletes documents by their IDs.
// Unknown IDs are a silent no-op: chromem deletes by map key and ignores
// IDs that are not present.
func (s *ChromemStore) DeleteDocuments(ctx context.Context, ids []string) (err error) {
	ctx, span := chromemTracer.Start(ctx, "ChromemStore.DeleteDocuments")
	defer span.End()
	defer observeOp(s.Backend(), "delete_documents", timeNow(), &err)

	span.SetAttributes(
		attribute.String("collection", s.config.CollectionName),
		attribute.Int("id_count", len(ids)),
	)

	if len(ids) == 0 {
		return nil
	}

	// No collection means nothing to delete
	collection := s.db.GetCollection(s.config.CollectionName, s.createEmbeddingFunc())
	if collection == nil {
		return nil
	}

	if err := collection.Delete(ctx, nil, nil, ids...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("deleting documents: %w", err)
	}

	span.SetStatus(codes.Ok, "success")

	s.logger.Debug("deleted documents from chromem",
		zap.String("collection", s.config.CollectionName),
		zap.Int("count", len(ids)),
	)

	return nil
}

// CollectionInfo returns metadata about the chromem collection.
func (s *ChromemStore) CollectionInfo(ctx context.Context) (info *CollectionInfo, err error) {
	ctx, span := chromemTracer.Start(ctx, "ChromemStore.CollectionInfo")
	defer span.End()
	defer observeOp(s.Backend(), "collection_info", timeNow(), &err)

	span.SetAttributes(attribute.String("collection", s.config.CollectionName))

	collection, err := s.collection()
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	info = &CollectionInfo{
		Name:          s.config.CollectionName,
		Backend:       s.Backend(),
		DocumentCount: collection.Count(),
		VectorSize:    s.config.VectorSize,
		Stats: map[string]interface{}{
			"persist_path": s.config.Path,
			"compress":     s.config.Compress,
		},
	}

	span.SetAttributes(attribute.Int("document_count", info.DocumentCount))
	span.SetStatus(codes.Ok, "success")

	return info, nil
}

// Close closes the ChromemStore.
// chromem-go persists on write, so there is no connection to tear down.
func (s *ChromemStore) Close() error {
	s.logger.Info("chromem store closed")
	return nil
}

// Ensure ChromemStore implements Store interface.
var _ Store = (*ChromemStore)(nil)
