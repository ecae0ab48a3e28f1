package retrieval_test

import (
	"strings"
	"testing"

	"legal-rag/internal/domain"
	"legal-rag/internal/usecase/retrieval"

	"github.com/stretchr/testify/assert"
)

func TestBuildContextString_Empty(t *testing.T) {
	assert.Equal(t, retrieval.NoResultsMarker, retrieval.BuildContextString(nil))
}

func TestBuildContextString_OrdinalsAndSections(t *testing.T) {
	hits := []domain.SearchHit{
		{Passage: domain.LegalPassage{Text: "نص المادة الأولى", Section: "الباب الأول"}},
		{Passage: domain.LegalPassage{Text: "نص المادة الثانية"}},
	}

	ctx := retrieval.BuildContextString(hits)

	assert.Contains(t, ctx, "[1] "+retrieval.DefaultLawName+" | الباب الأول\n")
	assert.Contains(t, ctx, "[2] "+retrieval.DefaultLawName+"\n")
	assert.Contains(t, ctx, "نص المادة الأولى")
	assert.Contains(t, ctx, "نص المادة الثانية")
	assert.False(t, strings.HasSuffix(ctx, "\n"), "trailing newlines must be trimmed")
}

func TestBuildContextString_DeadlineLine(t *testing.T) {
	hits := []domain.SearchHit{
		{Passage: domain.LegalPassage{
			Text:           "للزوجة الاعتراض على الحكم",
			HasDeadline:    true,
			DeadlineDetail: "ثلاثون يوماً من تاريخ الحكم",
		}},
		{Passage: domain.LegalPassage{Text: "مادة بلا مهلة"}},
	}

	ctx := retrieval.BuildContextString(hits)

	assert.Contains(t, ctx, "⏰ مهلة: ثلاثون يوماً من تاريخ الحكم")
	assert.Equal(t, 1, strings.Count(ctx, "⏰"), "only deadline-bearing passages get the warning line")
}

func TestExtractSources_MirrorsHitOrder(t *testing.T) {
	hits := []domain.SearchHit{
		{Passage: domain.LegalPassage{Chapter: "ف1", Section: "ب1", Topic: "الحضانة", SourcePages: "12-13"}},
		{Passage: domain.LegalPassage{Chapter: "ف2", Section: "ب2", Topic: "النفقة", SourcePages: "40"}},
	}

	sources := retrieval.ExtractSources(hits)

	assert.Equal(t, []domain.Source{
		{Chapter: "ف1", Section: "ب1", Topic: "الحضانة", Pages: "12-13"},
		{Chapter: "ف2", Section: "ب2", Topic: "النفقة", Pages: "40"},
	}, sources)
}

func TestExtractSources_Empty(t *testing.T) {
	assert.Empty(t, retrieval.ExtractSources(nil))
}
