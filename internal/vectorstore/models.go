package vectorstore

import (
	"fmt"
	"regexp"
)

// collectionNamePattern validates collection names.
// Pattern: lowercase letters, numbers, underscores, 1-64 characters.
var collectionNamePattern = regexp.MustCompile(`^[a-z0-9_]{1,64}$`)

// Document represents a document to be stored in the vector store.
type Document struct {
	// ID is the unique identifier for the document within a collection.
	ID string

	// Content is the text content of the document.
	Content string

	// Metadata contains additional key-value pairs for filtering.
	// Values should be scalars (string, int, float64, bool).
	Metadata map[string]interface{}
}

// QueryResult represents a normalized search result.
// The shape is identical regardless of backend.
type QueryResult struct {
	// ID is the document identifier.
	ID string

	// Content is the document text content.
	Content string

	// Score is the similarity score (higher = more similar).
	Score float32

	// Metadata contains the stored document metadata.
	Metadata map[string]interface{}
}

// CollectionInfo contains metadata about a backend collection.
type CollectionInfo struct {
	// Name is the collection name.
	Name string `json:"name"`

	// Backend is the store type that owns the collection.
	Backend string `json:"backend"`

	// DocumentCount is the number of documents in the collection.
	DocumentCount int `json:"document_count"`

	// VectorSize is the dimensionality of vectors in this collection.
	VectorSize int `json:"vector_size"`

	// Stats holds backend-specific details (persist path, host, ...).
	Stats map[string]interface{} `json:"stats,omitempty"`
}

// BuildDocuments constructs documents from parallel slices.
//
// contents and ids must be the same length; metadatas may be nil, but when
// supplied must match the length of contents. A mismatch is a validation
// error raised before any backend call. IDs must be non-empty and unique
// within the batch.
func BuildDocuments(contents, ids []string, metadatas []map[string]interface{}) ([]Document, error) {
	if len(contents) == 0 {
		return nil, ErrEmptyDocuments
	}
	if len(contents) != len(ids) {
		return nil, fmt.Errorf("%w: %d documents but %d ids", ErrValidation, len(contents), len(ids))
	}
	if metadatas != nil && len(metadatas) != len(contents) {
		return nil, fmt.Errorf("%w: %d documents but %d metadatas", ErrValidation, len(contents), len(metadatas))
	}

	seen := make(map[string]struct{}, len(ids))
	docs := make([]Document, len(contents))
	for i := range contents {
		if ids[i] == "" {
			return nil, fmt.Errorf("%w: empty id at index %d", ErrValidation, i)
		}
		if _, dup := seen[ids[i]]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrValidation, ids[i])
		}
		seen[ids[i]] = struct{}{}

		docs[i] = Document{
			ID:      ids[i],
			Content: contents[i],
		}
		if metadatas != nil {
			docs[i].Metadata = metadatas[i]
		}
	}
	return docs, nil
}

// ValidateCollectionName validates a collection name against naming rules.
// Pattern: ^[a-z0-9_]{1,64}$
// Rejects: uppercase, special chars, path traversal, spaces.
func ValidateCollectionName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: collection name cannot be empty", ErrInvalidCollectionName)
	}
	if !collectionNamePattern.MatchString(name) {
		return fmt.Errorf("%w: collection name must match pattern ^[a-z0-9_]{1,64}$, got %q", ErrInvalidCollectionName, name)
	}
	return nil
}

// validateQueryArgs checks the shared query preconditions for adapters.
// Returns (true, nil) when the backend should be queried, (false, nil)
// when topK == 0 and the caller should return an empty result set.
func validateQueryArgs(query string, topK int) (bool, error) {
	if topK < 0 {
		return false, fmt.Errorf("%w: topK must not be negative, got %d", ErrValidation, topK)
	}
	if query == "" {
		return false, fmt.Errorf("%w: query cannot be empty", ErrValidation)
	}
	if topK == 0 {
		return false, nil
	}
	return true, nil
}

// convertMetadataToString converts map[string]interface{} to map[string]string.
func convertMetadataToString(metadata map[string]interface{}) map[string]string {
	if metadata == nil {
		return nil
	}

	result := make(map[string]string, len(metadata))
	for k, v := range metadata {
		switch val := v.(type) {
		case string:
			result[k] = val
		case int:
			result[k] = fmt.Sprintf("%d", val)
		case int64:
			result[k] = fmt.Sprintf("%d", val)
		case float64:
			result[k] = fmt.Sprintf("%f", val)
		case bool:
			result[k] = fmt.Sprintf("%t", val)
		default:
			result[k] = fmt.Sprintf("%v", val)
		}
	}
	return result
}

// convertMetadataFromString converts map[string]string back to map[string]interface{}.
func convertMetadataFromString(metadata map[string]string) map[string]interface{} {
	if metadata == nil {
		return nil
	}

	result := make(map[string]interface{}, len(metadata))
	for k, v := range metadata {
		result[k] = v
	}
	return result
}
