// Package embeddings provides embedding generation via multiple providers.
//
// Two providers are available: FastEmbed runs local ONNX models with no
// network dependency, and OpenAI calls the hosted embedding API through
// langchaingo. Both satisfy the Provider interface, which extends the
// vector store Embedder with dimension reporting and resource cleanup.
package embeddings

import (
	"errors"
	"fmt"

	"github.com/fyrsmithlabs/vecstore/internal/config"
	"github.com/fyrsmithlabs/vecstore/internal/vectorstore"
)

var (
	// ErrInvalidConfig indicates invalid provider configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyInput indicates empty or nil input texts.
	ErrEmptyInput = errors.New("empty or nil input texts")

	// ErrEmbeddingFailed indicates the underlying model or API failed.
	ErrEmbeddingFailed = errors.New("failed to generate embeddings")
)

// Provider is the interface for embedding providers.
type Provider interface {
	vectorstore.Embedder
	// Dimension returns the embedding dimension for the current model.
	Dimension() int
	// Close releases resources held by the provider.
	Close() error
}

// NewProvider creates an embedding provider from the embeddings settings.
func NewProvider(settings config.EmbeddingsSettings) (Provider, error) {
	switch settings.Provider {
	case "fastembed", "":
		return NewFastEmbedProvider(FastEmbedConfig{
			Model:    settings.Model,
			CacheDir: settings.CacheDir,
		})
	case "openai":
		return NewOpenAIProvider(OpenAIConfig{
			Model:   settings.Model,
			APIKey:  settings.APIKey.Value(),
			BaseURL: settings.BaseURL,
		})
	default:
		return nil, fmt.Errorf("%w: unknown provider %q (supported: fastembed, openai)", ErrInvalidConfig, settings.Provider)
	}
}
