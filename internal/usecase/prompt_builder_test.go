package usecase_test

import (
	"strings"
	"testing"

	"legal-rag/internal/domain"
	"legal-rag/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestBuildConsultationPrompt_ContainsQuestionClassificationAndContext(t *testing.T) {
	cls := domain.Classification{Category: "الحضانة", Intent: "استشارة"}

	prompt := usecase.BuildConsultationPrompt("ما شروط الحضانة؟", cls, "[1] نص المادة", nil)

	assert.Contains(t, prompt, "السؤال: ما شروط الحضانة؟")
	assert.Contains(t, prompt, "التصنيف: الحضانة | استشارة")
	assert.Contains(t, prompt, "[1] نص المادة")
	// The grounding guard closes the prompt.
	assert.Contains(t, prompt, "أجب حصرياً من المواد أعلاه")
}

func TestBuildConsultationPrompt_NoHistorySection(t *testing.T) {
	prompt := usecase.BuildConsultationPrompt("سؤال", domain.Classification{}, "نص", nil)

	assert.NotContains(t, prompt, "المحادثة السابقة")
}

func TestBuildConsultationPrompt_ReplaysLastFourTurns(t *testing.T) {
	history := []domain.ChatTurn{
		{Role: domain.RoleUser, Content: "الدور الأول"},
		{Role: domain.RoleAssistant, Content: "الرد الأول"},
		{Role: domain.RoleUser, Content: "الدور الثاني"},
		{Role: domain.RoleAssistant, Content: "الرد الثاني"},
		{Role: domain.RoleUser, Content: "الدور الثالث"},
	}

	prompt := usecase.BuildConsultationPrompt("سؤال", domain.Classification{}, "نص", history)

	assert.Contains(t, prompt, "المحادثة السابقة")
	assert.NotContains(t, prompt, "الدور الأول", "turns beyond the window are dropped")
	assert.Contains(t, prompt, "الرد الأول")
	assert.Contains(t, prompt, "الدور الثالث")
}

func TestBuildConsultationPrompt_TruncatesLongAssistantTurns(t *testing.T) {
	long := strings.Repeat("ن", 600)
	history := []domain.ChatTurn{
		{Role: domain.RoleAssistant, Content: long},
	}

	prompt := usecase.BuildConsultationPrompt("سؤال", domain.Classification{}, "نص", history)

	assert.Contains(t, prompt, strings.Repeat("ن", 500)+"...")
	assert.NotContains(t, prompt, strings.Repeat("ن", 501))
}

func TestBuildDraftingGenerationPrompt_Deterministic(t *testing.T) {
	details := map[string]string{
		"wife_name":    "فاطمة",
		"husband_name": "أحمد",
		"reasons":      "استحالة العشرة",
	}

	first := usecase.BuildDraftingGenerationPrompt("طلب خلع", details, "نص المواد")
	second := usecase.BuildDraftingGenerationPrompt("طلب خلع", details, "نص المواد")

	assert.Equal(t, first, second, "map iteration must not leak into the prompt")
	assert.Contains(t, first, "المطلوب: طلب خلع")
	assert.Contains(t, first, "- husband_name: أحمد")
	assert.Contains(t, first, "نص المواد")
}

func TestBuildDraftingGenerationPrompt_SkipsEmptyDetailValues(t *testing.T) {
	details := map[string]string{
		"reasons": "استحالة العشرة",
		"notes":   "",
	}

	prompt := usecase.BuildDraftingGenerationPrompt("طلب خلع", details, "نص")

	assert.Contains(t, prompt, "- reasons:")
	assert.NotContains(t, prompt, "notes")
}
