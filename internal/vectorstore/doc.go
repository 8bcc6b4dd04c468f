// Package vectorstore provides a unified interface over vector database
// backends with interchangeable adapter implementations.
//
// The package exposes a single Store interface with two adapters behind it:
//
// ChromemStore (store_type "chromem", alias "local"):
//   - Embedded chromem-go storage, persisted to a local directory
//   - No external service required
//   - Deleting an unknown document ID is a silent no-op
//
// QdrantStore (store_type "qdrant", alias "cloud"):
//   - External Qdrant service via gRPC (port 6334)
//   - API key supplied directly or loaded from a JSON key file
//   - TLS for cloud endpoints
//   - Deletes are filter-based, so unknown document IDs are a no-op
//
// Adapters translate calls into backend SDK operations and normalize the
// responses into QueryResult and CollectionInfo; they own no indexing or
// retrieval logic of their own. Input validation (parallel slice lengths,
// collection names, topK bounds) happens before any backend call, and
// backend failures propagate wrapped, never swallowed.
//
// # Selection and switching
//
// NewStore constructs an adapter from config:
//
//	store, err := vectorstore.NewStore(cfg, embedder, logger)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
// Manager holds the active adapter and supports switching backends at
// runtime; the prior adapter is closed and no data is migrated:
//
//	mgr, err := vectorstore.NewManager(cfg, embedder, logger)
//	...
//	err = mgr.Switch(ctx, "qdrant")
//
// # Query semantics
//
// Query returns results ordered best match first. A topK of zero returns
// an empty slice without touching the backend; a negative topK is a
// validation error. Scores are "higher is better" for both adapters.
package vectorstore
