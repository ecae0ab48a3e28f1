package usecase

import "fmt"

// RetrievalConfig holds tunable parameters for the hybrid retrieval pipeline.
type RetrievalConfig struct {
	// TopK is the number of hits returned to the caller.
	TopK int

	// SemanticFactor scales TopK for the broad unfiltered search. The extra
	// candidates feed the dedup/merge stage.
	SemanticFactor int

	// MaxFilterTopics bounds how many detected topics are tried as metadata
	// filters before falling back to semantic-only.
	MaxFilterTopics int

	// ResultCacheSize is the capacity of the per-question result cache.
	ResultCacheSize int

	// EmbedMemoSize is the capacity of the query-embedding memo.
	EmbedMemoSize int
}

// DefaultRetrievalConfig mirrors the tuning of the production corpus: 5 hits
// out, 2x candidate pool, 2 filter attempts, 32 memoized results, 128 memoized
// query embeddings.
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		TopK:            5,
		SemanticFactor:  2,
		MaxFilterTopics: 2,
		ResultCacheSize: 32,
		EmbedMemoSize:   128,
	}
}

// Validate checks if the configuration values are within acceptable ranges.
func (c RetrievalConfig) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("topK must be positive, got %d", c.TopK)
	}
	if c.SemanticFactor < 1 {
		return fmt.Errorf("semanticFactor must be at least 1, got %d", c.SemanticFactor)
	}
	if c.MaxFilterTopics < 0 {
		return fmt.Errorf("maxFilterTopics must be non-negative, got %d", c.MaxFilterTopics)
	}
	if c.ResultCacheSize <= 0 {
		return fmt.Errorf("resultCacheSize must be positive, got %d", c.ResultCacheSize)
	}
	if c.EmbedMemoSize <= 0 {
		return fmt.Errorf("embedMemoSize must be positive, got %d", c.EmbedMemoSize)
	}
	return nil
}
