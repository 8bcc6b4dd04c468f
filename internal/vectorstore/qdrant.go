// Package vectorstore provides vector storage implementations.
package vectorstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpccodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// qdrantTracer for OpenTelemetry instrumentation.
var qdrantTracer = otel.Tracer("vecstore.qdrant")

// QdrantConfig holds configuration for the Qdrant gRPC backend.
type QdrantConfig struct {
	// Host is the Qdrant server hostname (cluster URL for Qdrant Cloud).
	// Default: "localhost"
	Host string

	// Port is the Qdrant gRPC port (NOT HTTP REST port).
	// Default: 6334 (gRPC), not 6333 (HTTP)
	Port int

	// APIKey authenticates against Qdrant Cloud. When empty, KeyFile is
	// consulted; cloud endpoints (UseTLS) require a key from one of the two.
	APIKey string

	// KeyFile is a path to a JSON file containing {"api_key": "..."}.
	// Only read when APIKey is empty.
	KeyFile string

	// UseTLS enables TLS encryption for the gRPC connection.
	// Required for Qdrant Cloud endpoints.
	UseTLS bool

	// CollectionName is the collection used for all operations.
	CollectionName string

	// VectorSize is the dimensionality of embeddings.
	// Examples: 384 (BAAI/bge-small-en-v1.5), 768 (BERT), 1536 (OpenAI)
	// MUST match Embedder output dimensions.
	VectorSize uint64

	// Distance is the similarity metric for vector search.
	// Options: Cosine (default), Euclid, Dot
	Distance qdrant.Distance

	// MaxRetries is the maximum number of retry attempts for transient failures.
	// Default: 3
	MaxRetries int

	// RetryBackoff is the initial backoff duration for retries.
	// Doubles on each retry (exponential backoff).
	// Default: 1 second
	RetryBackoff time.Duration

	// MaxMessageSize is the maximum gRPC message size in bytes.
	// Default: 50MB (to handle large documents)
	MaxMessageSize int
}

// ApplyDefaults sets default values for unset fields.
func (c *QdrantConfig) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 6334
	}
	if c.CollectionName == "" {
		c.CollectionName = "documents"
	}
	if c.VectorSize == 0 {
		c.VectorSize = 384
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.RetryBackoff == 0 {
		c.RetryBackoff = time.Second
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = 50 * 1024 * 1024 // 50MB
	}
	if c.Distance == 0 {
		c.Distance = qdrant.Distance_Cosine
	}
}

// Validate validates the configuration.
func (c QdrantConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: host required", ErrInvalidConfig)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: invalid port: %d", ErrInvalidConfig, c.Port)
	}
	if c.VectorSize == 0 {
		return fmt.Errorf("%w: vector size required", ErrInvalidConfig)
	}
	return ValidateCollectionName(c.CollectionName)
}

// keyFilePayload is the JSON shape of a Qdrant Cloud key file.
type keyFilePayload struct {
	APIKey string `json:"api_key"`
}

// resolveAPIKey returns the API key from config, falling back to the key
// file. Cloud endpoints (UseTLS) fail with ErrMissingCredentials when no
// key can be resolved; plaintext local deployments may run without one.
func (c QdrantConfig) resolveAPIKey() (string, error) {
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	if c.KeyFile != "" {
		data, err := os.ReadFile(c.KeyFile)
		if err != nil {
			return "", fmt.Errorf("%w: reading key file %s: %v", ErrMissingCredentials, c.KeyFile, err)
		}
		var payload keyFilePayload
		if err := json.Unmarshal(data, &payload); err != nil {
			return "", fmt.Errorf("%w: parsing key file %s: %v", ErrMissingCredentials, c.KeyFile, err)
		}
		if payload.APIKey == "" {
			return "", fmt.Errorf("%w: key file %s has no api_key field", ErrMissingCredentials, c.KeyFile)
		}
		return payload.APIKey, nil
	}
	if c.UseTLS {
		return "", fmt.Errorf("%w: qdrant cloud endpoints require api_key or key_file", ErrMissingCredentials)
	}
	return "", nil
}

// IsTransientError checks if an error is transient (should retry).
// Returns true for network timeouts, temporary unavailability.
// Returns false for invalid config, not found, permission denied.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}

	st, ok := status.FromError(err)
	if !ok {
		return false
	}

	switch st.Code() {
	case grpccodes.Unavailable, grpccodes.DeadlineExceeded, grpccodes.Aborted, grpccodes.ResourceExhausted:
		return true
	default:
		return false
	}
}

// QdrantStore is a Store implementation using Qdrant's native gRPC client.
//
// The document text travels in the point payload under "content", and the
// caller-supplied document ID under "id"; Qdrant point IDs are UUIDs, so
// non-UUID document IDs get a generated point ID while the original stays
// retrievable and deletable via the payload.
type QdrantStore struct {
	client   *qdrant.Client
	embedder Embedder
	config   QdrantConfig
	logger   *zap.Logger
}

// NewQdrantStore creates a new QdrantStore with the given configuration.
//
// The constructor validates the config, resolves credentials, dials the
// gRPC endpoint, and performs a health check before returning.
func NewQdrantStore(config QdrantConfig, embedder Embedder, logger *zap.Logger) (*QdrantStore, error) {
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

	apiKey, err := config.resolveAPIKey()
	if err != nil {
		return nil, err
	}

	if !config.UseTLS {
		logger.Warn("qdrant gRPC using plaintext (TLS disabled), insecure for production")
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   config.Host,
		Port:   config.Port,
		APIKey: apiKey,
		UseTLS: config.UseTLS,
		GrpcOptions: []grpc.DialOption{
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(config.MaxMessageSize),
				grpc.MaxCallSendMsgSize(config.MaxMessageSize),
			),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	store := &QdrantStore{
		client:   client,
		embedder: embedder,
		config:   config,
		logger:   logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.healthCheck(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("health check failed: %w", err)
	}

	logger.Info("qdrant store initialized",
		zap.String("host", config.Host),
		zap.Int("port", config.Port),
		zap.Bool("tls", config.UseTLS),
		zap.String("collection", config.CollectionName),
	)

	return store, nil
}

// Backend returns the store type name.
func (s *QdrantStore) Backend() string {
	return "qdrant"
}

// Close closes the Qdrant gRPC connection.
func (s *QdrantStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// healthCheck performs a health check on the Qdrant connection.
func (s *QdrantStore) healthCheck(ctx context.Context) error {
	ctx, span := qdrantTracer.Start(ctx, "QdrantStore.HealthCheck")
	defer span.End()

	_, err := s.client.HealthCheck(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("health check failed: %w", err)
	}

	span.SetStatus(codes.Ok, "healthy")
	return nil
}

// retryOperation retries an operation with exponential backoff.
// Permanent errors (invalid argument, not found, auth) return immediately.
func (s *QdrantStore) retryOperation(ctx context.Context, operationName string, operation func() error) error {
	backoff := s.config.RetryBackoff

	for attempt := 0; attempt <= s.config.MaxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		if !IsTransientError(err) {
			return fmt.Errorf("%s failed (permanent): %w", operationName, err)
		}

		if attempt == s.config.MaxRetries {
			return fmt.Errorf("%s failed after %d retries: %w", operationName, s.config.MaxRetries, err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s canceled: %w", operationName, ctx.Err())
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	return nil
}

// ensureCollection creates the configured collection if it does not exist.
func (s *QdrantStore) ensureCollection(ctx context.Context) error {
	exists := false
	if info, err := s.client.GetCollectionInfo(ctx, s.config.CollectionName); err != nil {
		st, ok := status.FromError(err)
		if !ok || st.Code() != grpccodes.NotFound {
			return fmt.Errorf("checking collection %s: %w", s.config.CollectionName, err)
		}
	} else {
		exists = info != nil
	}
	if exists {
		return nil
	}

	err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.config.CollectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.config.VectorSize,
			Distance: s.config.Distance,
		}),
	})
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", s.config.CollectionName, err)
	}

	s.logger.Info("created qdrant collection",
		zap.String("collection", s.config.CollectionName),
		zap.Uint64("vector_size", s.config.VectorSize),
	)
	return nil
}

// AddDocuments adds documents to the Qdrant collection, creating the
// collection on first use.
func (s *QdrantStore) AddDocuments(ctx context.Context, docs []Document) (ids []string, err error) {
	ctx, span := qdrantTracer.Start(ctx, "QdrantStore.AddDocuments")
	defer span.End()
	defer observeOp(s.Backend(), "add_documents", timeNow(), &err)

	span.SetAttributes(
		attribute.Int("document_count", len(docs)),
		attribute.String("collection", s.config.CollectionName),
	)

	if len(docs) == 0 {
		return nil, ErrEmptyDocuments
	}

	if err := s.ensureCollection(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	embeddings, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	points := make([]*qdrant.PointStruct, len(docs))
	ids = make([]string, len(docs))

	for i, doc := range docs {
		docID := doc.ID
		if docID == "" {
			docID = fmt.Sprintf("doc_%d_%d", timeNow().UnixNano(), i)
		}
		ids[i] = docID

		payload := make(map[string]*qdrant.Value)
		payload["content"] = &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: doc.Content}}
		payload["id"] = &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: docID}}

		for k, v := range doc.Metadata {
			switch val := v.(type) {
			case string:
				payload[k] = &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: val}}
			case int:
				payload[k] = &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(val)}}
			case int64:
				payload[k] = &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: val}}
			case float64:
				payload[k] = &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: val}}
			case bool:
				payload[k] = &qdrant.Value{Kind: &qdrant.Value_BoolValue{BoolValue: val}}
			}
		}

		// Qdrant point IDs must be UUIDs; keep the caller's ID in the
		// payload so results and deletes use it.
		var pointID *qdrant.PointId
		if _, err := uuid.Parse(docID); err == nil {
			pointID = qdrant.NewIDUUID(docID)
		} else {
			pointID = qdrant.NewIDUUID(uuid.New().String())
		}

		points[i] = &qdrant.PointStruct{
			Id:      pointID,
			Vectors: qdrant.NewVectors(embeddings[i]...),
			Payload: payload,
		}
	}

	err = s.retryOperation(ctx, "upsert", func() error {
		_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: s.config.CollectionName,
			Points:         points,
		})
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("upserting points to collection %s: %w", s.config.CollectionName, err)
	}

	span.SetAttributes(attribute.Int("points_added", len(ids)))
	span.SetStatus(codes.Ok, "success")
	return ids, nil
}

// Query performs similarity search in the Qdrant collection.
func (s *QdrantStore) Query(ctx context.Context, query string, topK int, filters map[string]interface{}) (results []QueryResult, err error) {
	ctx, span := qdrantTracer.Start(ctx, "QdrantStore.Query")
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

	queryVector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	var filter *qdrant.Filter
	if len(filters) > 0 {
		conditions := make([]*qdrant.Condition, 0, len(filters))
		for key, value := range filters {
			switch v := value.(type) {
			case string:
				conditions = append(conditions, &qdrant.Condition{
					ConditionOneOf: &qdrant.Condition_Field{
						Field: &qdrant.FieldCondition{
							Key: key,
							Match: &qdrant.Match{
								MatchValue: &qdrant.Match_Keyword{Keyword: v},
							},
						},
					},
				})
			}
		}
		if len(conditions) > 0 {
			filter = &qdrant.Filter{Must: conditions}
		}
	}

	var scored []*qdrant.ScoredPoint
	err = s.retryOperation(ctx, "query", func() error {
		res, err := s.client.Query(ctx, &qdrant.QueryPoints{
			CollectionName: s.config.CollectionName,
			Query:          qdrant.NewQuery(queryVector...),
			Limit:          qdrant.PtrOf(uint64(topK)),
			WithPayload:    qdrant.NewWithPayload(true),
			Filter:         filter,
		})
		if err != nil {
			if st, ok := status.FromError(err); ok && st.Code() == grpccodes.NotFound {
				return ErrCollectionNotFound
			}
			return err
		}
		scored = res
		return nil
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrCollectionNotFound) {
			span.SetStatus(codes.Error, "collection not found")
			return nil, ErrCollectionNotFound
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("querying collection %s: %w", s.config.CollectionName, err)
	}

	results = make([]QueryResult, len(scored))
	for i, point := range scored {
		results[i] = normalizePoint(point)
	}

	span.SetAttributes(attribute.Int("results_count", len(results)))
	span.SetStatus(codes.Ok, "success")
	return results, nil
}

// normalizePoint converts a scored Qdrant point to the common result shape.
// The "content" and "id" payload fields map to dedicated result fields and
// are excluded from the returned metadata.
func normalizePoint(point *qdrant.ScoredPoint) QueryResult {
	result := QueryResult{Score: point.Score}

	if point.Payload == nil {
		return result
	}

	result.Metadata = make(map[string]interface{})
	for k, v := range point.Payload {
		switch val := v.Kind.(type) {
		case *qdrant.Value_StringValue:
			switch k {
			case "content":
				result.Content = val.StringValue
			case "id":
				result.ID = val.StringValue
			default:
				result.Metadata[k] = val.StringValue
			}
		case *qdrant.Value_IntegerValue:
			result.Metadata[k] = val.IntegerValue
		case *qdrant.Value_DoubleValue:
			result.Metadata[k] = val.DoubleValue
		case *qdrant.Value_BoolValue:
			result.Metadata[k] = val.BoolValue
		}
	}
	return result
}

// DeleteDocuments deletes documents by their IDs.
// The delete is filter-based on the payload "id" field, so unknown IDs
// simply match nothing (no-op).
func (s *QdrantStore) DeleteDocuments(ctx context.Context, ids []string) (err error) {
	ctx, span := qdrantTracer.Start(ctx, "QdrantStore.DeleteDocuments")
	defer span.End()
	defer observeOp(s.Backend(), "delete_documents", timeNow(), &err)

	span.SetAttributes(
		attribute.Int("id_count", len(ids)),
		attribute.String("collection", s.config.CollectionName),
	)

	if len(ids) == 0 {
		return nil
	}

	err = s.retryOperation(ctx, "delete", func() error {
		_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
			CollectionName: s.config.CollectionName,
			Points: &qdrant.PointsSelector{
				PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
					Filter: &qdrant.Filter{
						Must: []*qdrant.Condition{
							{
								ConditionOneOf: &qdrant.Condition_Field{
									Field: &qdrant.FieldCondition{
										Key: "id",
										Match: &qdrant.Match{
											MatchValue: &qdrant.Match_Keywords{
												Keywords: &qdrant.RepeatedStrings{Strings: ids},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		})
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("deleting documents from collection %s: %w", s.config.CollectionName, err)
	}

	span.SetStatus(codes.Ok, "success")
	return nil
}

// CollectionInfo returns metadata about the Qdrant collection.
func (s *QdrantStore) CollectionInfo(ctx context.Context) (info *CollectionInfo, err error) {
	ctx, span := qdrantTracer.Start(ctx, "QdrantStore.CollectionInfo")
	defer span.End()
	defer observeOp(s.Backend(), "collection_info", timeNow(), &err)

	span.SetAttributes(attribute.String("collection", s.config.CollectionName))

	err = s.retryOperation(ctx, "collection_info", func() error {
		collInfo, err := s.client.GetCollectionInfo(ctx, s.config.CollectionName)
		if err != nil {
			st, ok := status.FromError(err)
			if ok && st.Code() == grpccodes.NotFound {
				return ErrCollectionNotFound
			}
			return err
		}
		pointCount := 0
		if collInfo.PointsCount != nil {
			pointCount = int(*collInfo.PointsCount)
		}
		info = &CollectionInfo{
			Name:          s.config.CollectionName,
			Backend:       s.Backend(),
			DocumentCount: pointCount,
			VectorSize:    int(s.config.VectorSize),
			Stats: map[string]interface{}{
				"host": s.config.Host,
				"port": s.config.Port,
				"tls":  s.config.UseTLS,
			},
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrCollectionNotFound) {
			span.SetStatus(codes.Error, "collection not found")
			return nil, ErrCollectionNotFound
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("getting collection info for %s: %w", s.config.CollectionName, err)
	}

	span.SetAttributes(attribute.Int("document_count", info.DocumentCount))
	span.SetStatus(codes.Ok, "success")
	return info, nil
}

// Ensure QdrantStore implements Store interface.
var _ Store = (*QdrantStore)(nil)
