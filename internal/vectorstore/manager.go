package vectorstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fyrsmithlabs/vecstore/internal/config"
	"go.uber.org/zap"
)

// Manager holds the currently active Store and supports switching between
// backends at runtime.
//
// Switching constructs a new adapter from the target backend's parameter
// block in the configuration, closes the prior adapter, and swaps the
// reference. No data is migrated between backends; whatever the previous
// backend persisted stays untouched.
type Manager struct {
	mu       sync.Mutex
	cfg      *config.Config
	embedder Embedder
	logger   *zap.Logger
	store    Store
}

// NewManager constructs the adapter selected by cfg.StoreType and wraps it
// in a Manager.
func NewManager(cfg *config.Config, embedder Embedder, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := NewStore(cfg, embedder, logger)
	if err != nil {
		return nil, err
	}

	return &Manager{
		cfg:      cfg,
		embedder: embedder,
		logger:   logger,
		store:    store,
	}, nil
}

// Store returns the currently active store.
func (m *Manager) Store() Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store
}

// Active returns the store type name of the active adapter.
func (m *Manager) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Backend()
}

// Switch replaces the active adapter with a newly constructed one for the
// given store type, using that backend's parameter block from the
// configuration. The prior adapter is closed after the new one is ready,
// so a failed construction leaves the current adapter in place.
func (m *Manager) Switch(ctx context.Context, storeType string) error {
	cfg := *m.cfg
	cfg.StoreType = storeType

	next, err := NewStore(&cfg, m.embedder, m.logger)
	if err != nil {
		return fmt.Errorf("switching to %s: %w", storeType, err)
	}

	m.mu.Lock()
	prev := m.store
	m.store = next
	m.cfg.StoreType = storeType
	m.mu.Unlock()

	if err := prev.Close(); err != nil {
		m.logger.Warn("closing previous store",
			zap.String("backend", prev.Backend()),
			zap.Error(err),
		)
	}

	m.logger.Info("switched vector store backend",
		zap.String("from", prev.Backend()),
		zap.String("to", next.Backend()),
	)
	return nil
}

// Use swaps in an externally constructed store, closing the prior one.
func (m *Manager) Use(store Store) error {
	if store == nil {
		return fmt.Errorf("%w: store cannot be nil", ErrValidation)
	}

	m.mu.Lock()
	prev := m.store
	m.store = store
	m.mu.Unlock()

	return prev.Close()
}

// Add adds documents through the active store.
func (m *Manager) Add(ctx context.Context, docs []Document) ([]string, error) {
	return m.Store().AddDocuments(ctx, docs)
}

// Search queries the active store for the topK most similar documents.
func (m *Manager) Search(ctx context.Context, query string, topK int) ([]QueryResult, error) {
	return m.Store().Query(ctx, query, topK, nil)
}

// Delete removes documents by ID through the active store.
func (m *Manager) Delete(ctx context.Context, ids []string) error {
	return m.Store().DeleteDocuments(ctx, ids)
}

// Info returns collection metadata from the active store.
func (m *Manager) Info(ctx context.Context) (*CollectionInfo, error) {
	return m.Store().CollectionInfo(ctx)
}

// LoadDirectory ingests text files matching pattern (e.g. "*.txt") from
// dir into the active store. Each file becomes one document with the
// filename as ID and source path metadata. Returns the number of
// documents added.
func (m *Manager) LoadDirectory(ctx context.Context, dir, pattern string) (int, error) {
	if pattern == "" {
		pattern = "*.txt"
	}

	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return 0, fmt.Errorf("%w: bad pattern %q: %v", ErrValidation, pattern, err)
	}
	if len(paths) == 0 {
		m.logger.Info("no files matched",
			zap.String("dir", dir),
			zap.String("pattern", pattern),
		)
		return 0, nil
	}

	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("reading %s: %w", path, err)
		}

		filename := filepath.Base(path)
		docs = append(docs, Document{
			ID:      filename,
			Content: string(content),
			Metadata: map[string]interface{}{
				"filename": filename,
				"source":   path,
				"type":     "text_file",
			},
		})
	}

	if _, err := m.Add(ctx, docs); err != nil {
		return 0, err
	}

	m.logger.Info("loaded documents from directory",
		zap.String("dir", dir),
		zap.Int("count", len(docs)),
	)
	return len(docs), nil
}

// Close closes the active store.
func (m *Manager) Close() error {
	return m.Store().Close()
}
