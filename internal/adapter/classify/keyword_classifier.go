package classify

import (
	"strings"

	"legal-rag/internal/domain"
)

// Intent and category labels. The fallback category marks questions with no
// detectable topic.
const (
	CategoryGeneral     = "عام"
	IntentConsultation  = "استشارة"
	IntentDrafting      = "صياغة"
	IntentProcedural    = "إجراءات"
	IntentDeadlineQuery = "استفسار عن مهلة"
)

// draftingCues signal a drafting request rather than a consultation.
var draftingCues = []string{"صياغة", "اكتب لي", "صيغ لي", "مذكرة", "لائحة"}

// proceduralCues signal a how-do-I question about court procedure.
var proceduralCues = []string{"كيف أرفع", "كيف أقدم", "إجراءات", "الخطوات", "أين أقدم"}

// deadlineCues signal that statutory time limits matter to the answer.
var deadlineCues = []string{"عدة", "مهلة", "مدة", "موعد", "اعتراض", "استئناف", "متى تنتهي", "كم يوم"}

// KeywordClassifier is a pure keyword classifier over the shared topic table.
// It satisfies the classify collaborator contract without a model call.
type KeywordClassifier struct {
	table *domain.TopicTable
}

// NewKeywordClassifier creates a classifier backed by the given topic table.
func NewKeywordClassifier(table *domain.TopicTable) *KeywordClassifier {
	return &KeywordClassifier{table: table}
}

// Classify derives the category from the strongest detected topic and the
// intent from surface cues. It never fails; an unmatched question is a general
// consultation.
func (c *KeywordClassifier) Classify(question string) domain.Classification {
	category := CategoryGeneral
	if topics := c.table.DetectTopics(question); len(topics) > 0 {
		category = topics[0]
	}

	intent := IntentConsultation
	switch {
	case containsAny(question, draftingCues):
		intent = IntentDrafting
	case containsAny(question, deadlineCues) && strings.Contains(question, "متى"):
		intent = IntentDeadlineQuery
	case containsAny(question, proceduralCues):
		intent = IntentProcedural
	}

	return domain.Classification{
		Category:           category,
		Intent:             intent,
		NeedsDeadlineCheck: containsAny(question, deadlineCues) || category == domain.TopicIddah,
	}
}

func containsAny(s string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(s, cue) {
			return true
		}
	}
	return false
}

var _ domain.QueryClassifier = (*KeywordClassifier)(nil)
