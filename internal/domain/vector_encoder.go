package domain

import (
	"context"
)

// VectorEncoder defines the interface for generating embeddings.
// Encode must be deterministic for identical input within a process lifetime.
type VectorEncoder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
	Version() string
}
