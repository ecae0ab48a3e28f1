package retrieval

import (
	"legal-rag/internal/domain"
)

// DedupPrefixRunes is the length of the passage-text prefix used as the dedup
// key. The corpus has no two passages with identical openings, so comparing
// full texts buys nothing.
const DedupPrefixRunes = 100

// Merge combines topic-filtered hits (precision) with broad semantic hits
// (recall) into at most topK results. Filtered hits always rank above semantic
// hits regardless of score; within each list the index's similarity order is
// preserved. Duplicate passages are dropped by text-prefix key.
//
// The filtered-above-semantic rule is a product decision, not a tuned optimum;
// swapping the fusion means replacing this one function.
func Merge(semantic, filtered []domain.SearchHit, topK int) []domain.SearchHit {
	if topK <= 0 {
		return nil
	}

	if len(filtered) == 0 {
		if len(semantic) <= topK {
			return semantic
		}
		return semantic[:topK]
	}

	seen := make(map[string]struct{}, topK)
	merged := make([]domain.SearchHit, 0, topK)

	appendUnique := func(hits []domain.SearchHit) {
		for _, hit := range hits {
			if len(merged) >= topK {
				return
			}
			key := dedupKey(hit.Passage.Text)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, hit)
		}
	}

	appendUnique(filtered)
	appendUnique(semantic)

	return merged
}

func dedupKey(text string) string {
	r := []rune(text)
	if len(r) > DedupPrefixRunes {
		r = r[:DedupPrefixRunes]
	}
	return string(r)
}
