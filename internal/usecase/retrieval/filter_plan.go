package retrieval

import (
	"context"
	"fmt"

	"legal-rag/internal/domain"
)

// FilterPlan is the ordered list of topic-restricted search attempts for one
// query: try topic 1, then topic 2, then give up and let the caller fall back
// to semantic-only. The first attempt returning any hit short-circuits the
// rest; attempts are never unioned, since exact-topic precision beats a
// broader filter-OR.
type FilterPlan struct {
	topics []string
}

// NewFilterPlan builds a plan from detected topics, keeping at most maxTopics
// candidates in detection order.
func NewFilterPlan(topics []string, maxTopics int) FilterPlan {
	if maxTopics < 0 {
		maxTopics = 0
	}
	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	return FilterPlan{topics: topics}
}

// Topics returns the candidate topics in attempt order.
func (p FilterPlan) Topics() []string {
	return p.topics
}

// Empty reports whether the plan has no attempts.
func (p FilterPlan) Empty() bool {
	return len(p.topics) == 0
}

// Run executes the attempts in order against the index. It returns the hits
// and topic of the first non-empty attempt, or nil hits when every attempt
// came back empty. Index errors abort the plan and propagate.
func (p FilterPlan) Run(ctx context.Context, index domain.PassageIndex, queryVector []float32, limit int) ([]domain.SearchHit, string, error) {
	for _, topic := range p.topics {
		hits, err := index.Search(ctx, queryVector, limit, topic)
		if err != nil {
			return nil, "", fmt.Errorf("filtered search for topic %q failed: %w", topic, err)
		}
		if len(hits) > 0 {
			return hits, topic, nil
		}
	}
	return nil, "", nil
}
