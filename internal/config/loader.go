// Package config provides configuration loading for vecstore.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	maxConfigFileSize = 1024 * 1024 // 1MB

	// envPrefix namespaces the environment overrides so unrelated
	// variables never leak into the configuration.
	envPrefix = "VECSTORE_"
)

// LoadWithFile loads configuration from a JSON file, then overrides with
// environment variables.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (VECSTORE_QDRANT_HOST, VECSTORE_STORE_TYPE, ...)
//  2. JSON config file (~/.config/vecstore/config.json)
//  3. Hardcoded defaults
//
// The configPath parameter specifies the JSON file to load. If empty, the
// default path ~/.config/vecstore/config.json is used. A missing file is
// not an error; defaults plus environment apply.
//
// # Environment Variable Mapping
//
// After stripping the VECSTORE_ prefix, variables split on the first
// underscore into section and field:
//
//	VECSTORE_STORE_TYPE  -> store_type
//	VECSTORE_QDRANT_HOST -> qdrant.host
//	VECSTORE_QDRANT_API_KEY -> qdrant.api_key
func LoadWithFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".config", "vecstore", "config.json")
	}

	// Load from JSON file if it exists
	if _, err := os.Stat(configPath); err == nil {
		// Open once and validate via the file descriptor to avoid a
		// TOCTOU race between stat and read
		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}

		if err := validateConfigFileProperties(info); err != nil {
			return nil, fmt.Errorf("config file validation failed: %w", err)
		}

		content, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := k.Load(rawbytes.Provider(content), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Override with environment variables
	if err := k.Load(env.Provider(envPrefix, ".", transformEnvKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// transformEnvKey maps an environment variable name (prefix already
// stripped) to a config key. Splits on the first underscore into
// section.field, keeping underscores inside the field name:
//
//	QDRANT_API_KEY -> qdrant.api_key
//	CHROMEM_COLLECTION_NAME -> chromem.collection_name
//
// STORE_TYPE is special-cased to the flat root key.
func transformEnvKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	lower := strings.ToLower(s)

	if lower == "store_type" {
		return "store_type"
	}

	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

// EnsureConfigDir creates the vecstore config directory if it doesn't
// exist, with 0700 permissions.
func EnsureConfigDir() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".config", "vecstore")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}

	return nil
}

// validateConfigFileProperties checks file permissions and size.
// Takes FileInfo from an already-opened file descriptor.
func validateConfigFileProperties(info os.FileInfo) error {
	// Config files can carry API keys, so reject group/world readable
	// files. Skip on Windows (different permission model).
	if runtime.GOOS != "windows" {
		perm := info.Mode().Perm()
		if perm&0077 != 0 {
			return fmt.Errorf("insecure config file permissions: %v (expected 0600 or 0400)", perm)
		}
	}

	if info.Size() > maxConfigFileSize {
		return fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	return nil
}
