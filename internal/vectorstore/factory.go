// Package vectorstore provides vector storage implementations.
package vectorstore

import (
	"fmt"
	"time"

	"github.com/fyrsmithlabs/vecstore/internal/config"
	"go.uber.org/zap"
)

// NormalizeStoreType maps configured store type names (and their aliases)
// to the canonical adapter names. Unknown names are returned unchanged so
// the factory can report them.
func NormalizeStoreType(storeType string) string {
	switch storeType {
	case "chromem", "local", "":
		return "chromem"
	case "qdrant", "cloud":
		return "qdrant"
	default:
		return storeType
	}
}

// NewStore creates a new Store based on the configuration.
//
// The factory examines cfg.StoreType and constructs the matching adapter:
//   - "chromem" (default, alias "local"): embedded ChromemStore
//   - "qdrant" (alias "cloud"): QdrantStore against an external server
//
// An unrecognized store type fails with ErrUnsupportedStore before any
// adapter is constructed.
//
// Example usage:
//
//	cfg, err := config.LoadWithFile("")
//	...
//	store, err := vectorstore.NewStore(cfg, embedder, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
func NewStore(cfg *config.Config, embedder Embedder, logger *zap.Logger) (Store, error) {
	switch NormalizeStoreType(cfg.StoreType) {
	case "chromem":
		return NewChromemStore(ChromemConfig{
			Path:           cfg.Chromem.Path,
			Compress:       cfg.Chromem.Compress,
			CollectionName: cfg.Chromem.CollectionName,
			VectorSize:     cfg.Chromem.VectorSize,
		}, embedder, logger)

	case "qdrant":
		return NewQdrantStore(QdrantConfig{
			Host:           cfg.Qdrant.Host,
			Port:           cfg.Qdrant.Port,
			APIKey:         cfg.Qdrant.APIKey.Value(),
			KeyFile:        cfg.Qdrant.KeyFile,
			UseTLS:         cfg.Qdrant.UseTLS,
			CollectionName: cfg.Qdrant.CollectionName,
			VectorSize:     uint64(cfg.Qdrant.VectorSize),
			MaxRetries:     cfg.Qdrant.MaxRetries,
			RetryBackoff:   time.Duration(cfg.Qdrant.RetryBackoff),
		}, embedder, logger)

	default:
		return nil, fmt.Errorf("%w: %s (supported: chromem, qdrant)", ErrUnsupportedStore, cfg.StoreType)
	}
}

// NewStoreFromProvider creates a store directly from a provider name and
// provider-specific config. Useful when more control over configuration
// is needed than the file-level Config offers.
func NewStoreFromProvider(provider string, chromemCfg *ChromemConfig, qdrantCfg *QdrantConfig, embedder Embedder, logger *zap.Logger) (Store, error) {
	switch NormalizeStoreType(provider) {
	case "chromem":
		if chromemCfg == nil {
			return nil, fmt.Errorf("%w: chromem config required for chromem provider", ErrInvalidConfig)
		}
		return NewChromemStore(*chromemCfg, embedder, logger)

	case "qdrant":
		if qdrantCfg == nil {
			return nil, fmt.Errorf("%w: qdrant config required for qdrant provider", ErrInvalidConfig)
		}
		return NewQdrantStore(*qdrantCfg, embedder, logger)

	default:
		return nil, fmt.Errorf("%w: %s (supported: chromem, qdrant)", ErrUnsupportedStore, provider)
	}
}
