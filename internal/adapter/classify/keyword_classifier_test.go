package classify_test

import (
	"testing"

	"legal-rag/internal/adapter/classify"
	"legal-rag/internal/domain"

	"github.com/stretchr/testify/assert"
)

func newClassifier() *classify.KeywordClassifier {
	return classify.NewKeywordClassifier(domain.NewDefaultTopicTable())
}

func TestClassify_ConsultationWithTopic(t *testing.T) {
	c := newClassifier()

	cls := c.Classify("ما هي شروط الحضانة؟")

	assert.Equal(t, domain.TopicCustody, cls.Category)
	assert.Equal(t, classify.IntentConsultation, cls.Intent)
	assert.False(t, cls.NeedsDeadlineCheck)
}

func TestClassify_GeneralFallback(t *testing.T) {
	c := newClassifier()

	cls := c.Classify("أريد استشارة قانونية")

	assert.Equal(t, classify.CategoryGeneral, cls.Category)
	assert.Equal(t, classify.IntentConsultation, cls.Intent)
}

func TestClassify_DraftingIntent(t *testing.T) {
	c := newClassifier()

	cls := c.Classify("اكتب لي لائحة دعوى حضانة")

	assert.Equal(t, classify.IntentDrafting, cls.Intent)
	assert.Equal(t, domain.TopicCustody, cls.Category)
}

func TestClassify_DeadlineQueryIntent(t *testing.T) {
	c := newClassifier()

	cls := c.Classify("متى تنتهي مهلة الاعتراض على الحكم؟")

	assert.Equal(t, classify.IntentDeadlineQuery, cls.Intent)
	assert.True(t, cls.NeedsDeadlineCheck)
}

func TestClassify_ProceduralIntent(t *testing.T) {
	c := newClassifier()

	cls := c.Classify("كيف أرفع دعوى حضانة؟")

	assert.Equal(t, classify.IntentProcedural, cls.Intent)
}

func TestClassify_IddahCategoryAlwaysNeedsDeadlineCheck(t *testing.T) {
	c := newClassifier()

	cls := c.Classify("ما عدة الحامل؟")

	assert.Equal(t, domain.TopicIddah, cls.Category)
	assert.True(t, cls.NeedsDeadlineCheck)
}

func TestClassify_DraftingBeatsDeadlineCue(t *testing.T) {
	c := newClassifier()

	// Both drafting and deadline cues present; drafting wins the intent but
	// the deadline flag still fires.
	cls := c.Classify("اكتب لي مذكرة عن مهلة الاستئناف متى تبدأ")

	assert.Equal(t, classify.IntentDrafting, cls.Intent)
	assert.True(t, cls.NeedsDeadlineCheck)
}
