package retrieval

import (
	"fmt"
	"strings"

	"legal-rag/internal/domain"
)

const (
	// NoResultsMarker is emitted instead of an empty context so callers can
	// tell "searched and found nothing" apart from "did not search".
	NoResultsMarker = "لم يتم العثور على مواد ذات صلة."

	// DefaultLawName labels passages whose provenance is the primary statute.
	DefaultLawName = "نظام الأحوال الشخصية"

	deadlinePrefix = "⏰ مهلة: "
)

// BuildContextString renders merged hits into a single text block suitable as
// grounding context for the answer generator. Each hit gets an ordinal marker,
// its law/section header, the full passage text, and a deadline warning line
// when the passage carries one.
func BuildContextString(hits []domain.SearchHit) string {
	if len(hits) == 0 {
		return NoResultsMarker
	}

	var b strings.Builder
	for i, hit := range hits {
		p := hit.Passage
		if p.Section != "" {
			fmt.Fprintf(&b, "[%d] %s | %s\n", i+1, DefaultLawName, p.Section)
		} else {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, DefaultLawName)
		}
		b.WriteString(p.Text)
		b.WriteByte('\n')
		if p.HasDeadline {
			b.WriteString(deadlinePrefix)
			b.WriteString(p.DeadlineDetail)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n")
}

// ExtractSources returns citation records in the same order as the hits, so a
// caller can show sources without re-parsing the context block.
func ExtractSources(hits []domain.SearchHit) []domain.Source {
	sources := make([]domain.Source, 0, len(hits))
	for _, hit := range hits {
		sources = append(sources, domain.Source{
			Chapter: hit.Passage.Chapter,
			Section: hit.Passage.Section,
			Topic:   hit.Passage.Topic,
			Pages:   hit.Passage.SourcePages,
		})
	}
	return sources
}
