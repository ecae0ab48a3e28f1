package domain

import "context"

// TopicCount reports how many passages carry a given canonical topic.
type TopicCount struct {
	Topic string `json:"name"`
	Count int    `json:"count"`
}

// PassageIndex answers approximate nearest-neighbor queries over passage
// embeddings. An empty result set is a valid, non-error outcome.
type PassageIndex interface {
	// Search returns up to limit hits ordered by similarity, most similar first.
	// When topic is non-empty, hits are restricted to passages whose canonical
	// topic equals it.
	Search(ctx context.Context, queryVector []float32, limit int, topic string) ([]SearchHit, error)

	// BulkInsert stores passages with their embeddings. embeddings[i] belongs to
	// passages[i].
	BulkInsert(ctx context.Context, passages []LegalPassage, embeddings [][]float32) error

	// Count returns the number of indexed passages.
	Count(ctx context.Context) (int, error)

	// Topics returns the distinct canonical topics with passage counts,
	// most frequent first.
	Topics(ctx context.Context) ([]TopicCount, error)
}
