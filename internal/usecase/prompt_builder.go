package usecase

import (
	"fmt"
	"sort"
	"strings"

	"legal-rag/internal/domain"
)

const (
	// promptHistoryWindow bounds how many prior turns are replayed to the
	// generator.
	promptHistoryWindow = 4
	// assistantTrimRunes caps replayed assistant turns to keep prompts small.
	assistantTrimRunes = 500
)

// consultationSystemPrompt frames the generator as a personal-status-law
// counsel that answers strictly from the supplied provisions.
const consultationSystemPrompt = `أنت محامٍ متخصص في نظام الأحوال الشخصية السعودي.

## قواعد إلزامية
1. أجب حصرياً من المواد النظامية المرفقة — لا تستخدم معرفتك العامة
2. كل حكم تذكره يجب أن يكون مسنوداً برقم المادة ونصها
3. لا تذكر أي مادة غير موجودة في النصوص المرفقة
4. إذا لم تجد إجابة في المواد المرفقة قل: "لم أجد نصاً في المواد المتوفرة لديّ يعالج هذه المسألة"
5. نبّه عن المهل النظامية وأن فواتها قد يُسقط الحق

اختم دائماً بـ: ⚖️ هذه استشارة أولية لا تُغني عن مراجعة محامٍ مرخص.`

// draftingSystemPrompt frames the generator as a legal drafter.
const draftingSystemPrompt = `أنت محامٍ سعودي متخصص في صياغة المذكرات القانونية وفق نظام الأحوال الشخصية. اكتب بأسلوب قانوني رسمي مع الإشارة لأرقام المواد ومصادرها.`

// BuildConsultationPrompt assembles the full generation prompt: system
// framing, a trimmed transcript of recent turns, and the grounded question.
func BuildConsultationPrompt(question string, cls domain.Classification, context string, history []domain.ChatTurn) string {
	var b strings.Builder
	b.WriteString(consultationSystemPrompt)
	b.WriteString("\n\n")

	if transcript := renderHistory(history); transcript != "" {
		b.WriteString("## المحادثة السابقة\n")
		b.WriteString(transcript)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "السؤال: %s\n", question)
	fmt.Fprintf(&b, "التصنيف: %s | %s\n\n", cls.Category, cls.Intent)
	b.WriteString("📚 المواد النظامية المسترجعة:\n")
	b.WriteString(context)
	b.WriteString("\n\n⛔ أجب حصرياً من المواد أعلاه. لا تذكر مواد غير مقدمة لك.")

	return b.String()
}

// BuildDraftingGenerationPrompt assembles the generation prompt for a document
// draft from the drafting request and the retrieved provisions.
func BuildDraftingGenerationPrompt(draftName string, caseDetails map[string]string, context string) string {
	var b strings.Builder
	b.WriteString(draftingSystemPrompt)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "المطلوب: %s\n\n", draftName)
	b.WriteString("تفاصيل القضية:\n")
	b.WriteString(renderCaseDetails(caseDetails))
	b.WriteString("\n---\n\nالمواد النظامية ذات الصلة:\n")
	b.WriteString(context)
	b.WriteString("\n\n---\n\n")
	fmt.Fprintf(&b, "قم بصياغة %s كاملة متضمنة: مقدمة رسمية، الوقائع، الأسانيد النظامية مع أرقام المواد، الطلبات، والخاتمة.", draftName)
	return b.String()
}

// renderHistory replays the last promptHistoryWindow turns, truncating long
// assistant turns.
func renderHistory(history []domain.ChatTurn) string {
	if len(history) == 0 {
		return ""
	}
	recent := history
	if len(recent) > promptHistoryWindow {
		recent = recent[len(recent)-promptHistoryWindow:]
	}

	var b strings.Builder
	for _, turn := range recent {
		content := strings.TrimSpace(turn.Content)
		if content == "" {
			continue
		}
		if turn.Role == domain.RoleAssistant {
			if r := []rune(content); len(r) > assistantTrimRunes {
				content = string(r[:assistantTrimRunes]) + "..."
			}
		}
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, content)
	}
	return b.String()
}

func renderCaseDetails(details map[string]string) string {
	keys := make([]string, 0, len(details))
	for k, v := range details {
		if v != "" {
			keys = append(keys, k)
		}
	}
	// Stable rendering keeps prompts deterministic for identical requests.
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", k, details[k])
	}
	return b.String()
}
