package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for vecstore.
//
// The store_type field selects the active backend adapter. Each backend
// keeps its own parameter block so switching between backends does not
// lose the inactive backend's settings.
type Config struct {
	// StoreType selects the backend: "chromem" (alias "local") or
	// "qdrant" (alias "cloud"). Empty defaults to chromem.
	StoreType string `koanf:"store_type" json:"store_type"`

	Chromem    ChromemSettings    `koanf:"chromem" json:"chromem"`
	Qdrant     QdrantSettings     `koanf:"qdrant" json:"qdrant"`
	Embeddings EmbeddingsSettings `koanf:"embeddings" json:"embeddings"`
	Logging    LoggingSettings    `koanf:"logging" json:"logging"`
	Telemetry  TelemetrySettings  `koanf:"telemetry" json:"telemetry"`
}

// ChromemSettings configures the embedded chromem-go backend.
type ChromemSettings struct {
	Path           string `koanf:"path" json:"path"`
	Compress       bool   `koanf:"compress" json:"compress"`
	CollectionName string `koanf:"collection_name" json:"collection_name"`
	VectorSize     int    `koanf:"vector_size" json:"vector_size"`
}

// QdrantSettings configures the Qdrant gRPC backend.
type QdrantSettings struct {
	Host           string   `koanf:"host" json:"host"`
	Port           int      `koanf:"port" json:"port"`
	APIKey         Secret   `koanf:"api_key" json:"api_key"`
	KeyFile        string   `koanf:"key_file" json:"key_file"`
	UseTLS         bool     `koanf:"use_tls" json:"use_tls"`
	CollectionName string   `koanf:"collection_name" json:"collection_name"`
	VectorSize     int      `koanf:"vector_size" json:"vector_size"`
	MaxRetries     int      `koanf:"max_retries" json:"max_retries"`
	RetryBackoff   Duration `koanf:"retry_backoff" json:"retry_backoff"`
}

// EmbeddingsSettings configures the embedding provider shared by all
// backends.
type EmbeddingsSettings struct {
	// Provider is "fastembed" (local ONNX, default) or "openai".
	Provider string `koanf:"provider" json:"provider"`
	Model    string `koanf:"model" json:"model"`
	APIKey   Secret `koanf:"api_key" json:"api_key"`
	BaseURL  string `koanf:"base_url" json:"base_url"`
	CacheDir string `koanf:"cache_dir" json:"cache_dir"`
}

// LoggingSettings configures the zap logger.
type LoggingSettings struct {
	Level  string `koanf:"level" json:"level"`
	Format string `koanf:"format" json:"format"`
}

// TelemetrySettings configures OpenTelemetry trace export.
type TelemetrySettings struct {
	Enabled     bool   `koanf:"enabled" json:"enabled"`
	Endpoint    string `koanf:"endpoint" json:"endpoint"`
	ServiceName string `koanf:"service_name" json:"service_name"`
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.StoreType == "" {
		cfg.StoreType = "chromem"
	}

	// Chromem defaults (embedded, no external deps)
	if cfg.Chromem.Path == "" {
		cfg.Chromem.Path = "~/.config/vecstore/data"
	}
	if cfg.Chromem.CollectionName == "" {
		cfg.Chromem.CollectionName = "documents"
	}
	if cfg.Chromem.VectorSize == 0 {
		cfg.Chromem.VectorSize = 384 // bge-small-en-v1.5 dimensions
	}

	// Qdrant defaults
	if cfg.Qdrant.Host == "" {
		cfg.Qdrant.Host = "localhost"
	}
	if cfg.Qdrant.Port == 0 {
		cfg.Qdrant.Port = 6334
	}
	if cfg.Qdrant.CollectionName == "" {
		cfg.Qdrant.CollectionName = "documents"
	}
	if cfg.Qdrant.VectorSize == 0 {
		cfg.Qdrant.VectorSize = 384
	}
	if cfg.Qdrant.MaxRetries == 0 {
		cfg.Qdrant.MaxRetries = 3
	}
	if cfg.Qdrant.RetryBackoff == 0 {
		cfg.Qdrant.RetryBackoff = Duration(time.Second)
	}

	// Embeddings defaults
	if cfg.Embeddings.Provider == "" {
		cfg.Embeddings.Provider = "fastembed"
	}
	if cfg.Embeddings.Model == "" {
		cfg.Embeddings.Model = "BAAI/bge-small-en-v1.5"
	}
	if cfg.Embeddings.CacheDir == "" {
		cfg.Embeddings.CacheDir = "~/.cache/vecstore/models"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	// Telemetry defaults
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "vecstore"
	}
}

// Validate checks configuration invariants that apply regardless of which
// backend is active. Backend constructors perform their own, deeper
// validation when an adapter is built.
func (c *Config) Validate() error {
	switch c.StoreType {
	case "chromem", "local", "qdrant", "cloud":
	default:
		return fmt.Errorf("unsupported store_type: %q (supported: chromem, qdrant)", c.StoreType)
	}

	if c.Qdrant.Port < 0 || c.Qdrant.Port > 65535 {
		return fmt.Errorf("qdrant.port out of range: %d", c.Qdrant.Port)
	}
	if c.Qdrant.VectorSize < 0 {
		return fmt.Errorf("qdrant.vector_size cannot be negative: %d", c.Qdrant.VectorSize)
	}
	if c.Chromem.VectorSize < 0 {
		return fmt.Errorf("chromem.vector_size cannot be negative: %d", c.Chromem.VectorSize)
	}

	switch c.Embeddings.Provider {
	case "fastembed", "openai":
	default:
		return fmt.Errorf("unsupported embeddings.provider: %q (supported: fastembed, openai)", c.Embeddings.Provider)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging.format: %q", c.Logging.Format)
	}

	return nil
}

// Default returns a Config populated with defaults only, as if loaded
// from an empty file with no environment overrides.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
