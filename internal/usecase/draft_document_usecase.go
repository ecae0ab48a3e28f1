package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"legal-rag/internal/domain"
)

// ErrInvalidDraftRequest marks validation failures a caller should surface as
// a bad request rather than a server error.
var ErrInvalidDraftRequest = errors.New("invalid draft request")

// DraftType describes one supported document kind and the case fields it
// needs.
type DraftType struct {
	Key            string   `json:"type"`
	NameAr         string   `json:"name_ar"`
	NameEn         string   `json:"name_en"`
	RequiredFields []string `json:"required_fields"`
}

// draftTypes is the static registry of supported drafts, in display order.
var draftTypes = []DraftType{
	{Key: "lawsuit", NameAr: "لائحة دعوى", NameEn: "Lawsuit Filing",
		RequiredFields: []string{"plaintiff_name", "defendant_name", "case_type", "facts", "requests"}},
	{Key: "memo", NameAr: "مذكرة قانونية", NameEn: "Legal Memo",
		RequiredFields: []string{"case_number", "case_type", "arguments"}},
	{Key: "appeal", NameAr: "لائحة اعتراض (استئناف)", NameEn: "Appeal Filing",
		RequiredFields: []string{"judgment_number", "judgment_date", "appeal_grounds"}},
	{Key: "response", NameAr: "مذكرة جوابية", NameEn: "Response Memo",
		RequiredFields: []string{"case_number", "response_to", "arguments"}},
	{Key: "khula", NameAr: "طلب خلع", NameEn: "Khula Request",
		RequiredFields: []string{"wife_name", "husband_name", "reasons", "compensation_offer"}},
	{Key: "custody", NameAr: "طلب حضانة", NameEn: "Custody Request",
		RequiredFields: []string{"parent_name", "children_names", "children_ages", "reasons"}},
	{Key: "nafaqa", NameAr: "طلب نفقة", NameEn: "Alimony Request",
		RequiredFields: []string{"claimant_name", "defendant_name", "relationship", "amount_requested"}},
}

// DraftTypes returns the supported draft types.
func DraftTypes() []DraftType {
	out := make([]DraftType, len(draftTypes))
	copy(out, draftTypes)
	return out
}

func draftTypeByKey(key string) (DraftType, bool) {
	for _, dt := range draftTypes {
		if dt.Key == key {
			return dt, true
		}
	}
	return DraftType{}, false
}

// ValidateDraftRequest checks the draft type is known and every required case
// field is present and non-empty.
func ValidateDraftRequest(draftType string, caseDetails map[string]string) error {
	dt, ok := draftTypeByKey(draftType)
	if !ok {
		return fmt.Errorf("%w: unknown draft type %q", ErrInvalidDraftRequest, draftType)
	}

	var missing []string
	for _, field := range dt.RequiredFields {
		if strings.TrimSpace(caseDetails[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrInvalidDraftRequest, strings.Join(missing, ", "))
	}
	return nil
}

// BuildDraftingPrompt synthesizes the retrieval query for a drafting request.
// The synthesized prompt stands in for a user question so the same retrieve
// entrypoint grounds the draft.
func BuildDraftingPrompt(draftType string, caseDetails map[string]string) string {
	dt, ok := draftTypeByKey(draftType)
	name := draftType
	if ok {
		name = dt.NameAr
	}

	var b strings.Builder
	fmt.Fprintf(&b, "أحتاج صياغة %s في قضية أحوال شخصية.\n\n", name)
	b.WriteString("تفاصيل القضية:\n")
	b.WriteString(renderCaseDetails(caseDetails))
	fmt.Fprintf(&b, "\nأرجو صياغة %s كاملة مع الاستناد إلى مواد نظام الأحوال الشخصية.", name)
	return b.String()
}

// DraftInput defines a drafting request.
type DraftInput struct {
	DraftType   string
	CaseDetails map[string]string
}

// DraftOutput carries the generated draft and its citations.
type DraftOutput struct {
	Draft     string
	DraftType string
	Sources   []domain.Source
}

// DraftDocumentUsecase drafts a legal document grounded in retrieved statute
// passages.
type DraftDocumentUsecase interface {
	Execute(ctx context.Context, input DraftInput) (*DraftOutput, error)
}

type draftDocumentUsecase struct {
	retrieve  RetrieveContextUsecase
	generator domain.LLMClient
	maxTokens int
	logger    *slog.Logger
}

// NewDraftDocumentUsecase creates a new DraftDocumentUsecase.
func NewDraftDocumentUsecase(
	retrieve RetrieveContextUsecase,
	generator domain.LLMClient,
	maxTokens int,
	logger *slog.Logger,
) DraftDocumentUsecase {
	return &draftDocumentUsecase{
		retrieve:  retrieve,
		generator: generator,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

func (u *draftDocumentUsecase) Execute(ctx context.Context, input DraftInput) (*DraftOutput, error) {
	if err := ValidateDraftRequest(input.DraftType, input.CaseDetails); err != nil {
		return nil, err
	}

	prompt := BuildDraftingPrompt(input.DraftType, input.CaseDetails)

	rag, err := u.retrieve.Execute(ctx, RetrieveInput{Question: prompt})
	if err != nil {
		return nil, err
	}

	dt, _ := draftTypeByKey(input.DraftType)
	genPrompt := BuildDraftingGenerationPrompt(dt.NameAr, input.CaseDetails, rag.Context)

	resp, err := u.generator.Generate(ctx, genPrompt, u.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to generate draft: %w", err)
	}

	u.logger.Info("document_drafted",
		slog.String("draft_type", input.DraftType),
		slog.Int("num_results", rag.NumResults))

	return &DraftOutput{
		Draft:     resp.Text,
		DraftType: input.DraftType,
		Sources:   rag.Sources,
	}, nil
}
