package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"legal-rag/internal/domain"
)

// AnswerInput defines the input for a legal consultation.
type AnswerInput struct {
	Question    string
	ChatHistory []domain.ChatTurn
}

// AnswerOutput carries the generated consultation and its grounding metadata.
type AnswerOutput struct {
	Answer         string
	Classification domain.Classification
	Sources        []domain.Source
	HasDeadlines   bool
}

// AnswerLegalUsecase answers a legal question grounded in retrieved statute
// passages.
type AnswerLegalUsecase interface {
	Execute(ctx context.Context, input AnswerInput) (*AnswerOutput, error)
}

type answerLegalUsecase struct {
	retrieve  RetrieveContextUsecase
	generator domain.LLMClient
	maxTokens int
	logger    *slog.Logger
}

// NewAnswerLegalUsecase creates a new AnswerLegalUsecase.
func NewAnswerLegalUsecase(
	retrieve RetrieveContextUsecase,
	generator domain.LLMClient,
	maxTokens int,
	logger *slog.Logger,
) AnswerLegalUsecase {
	return &answerLegalUsecase{
		retrieve:  retrieve,
		generator: generator,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

func (u *answerLegalUsecase) Execute(ctx context.Context, input AnswerInput) (*AnswerOutput, error) {
	rag, err := u.retrieve.Execute(ctx, RetrieveInput{
		Question:    input.Question,
		ChatHistory: input.ChatHistory,
	})
	if err != nil {
		return nil, err
	}

	prompt := BuildConsultationPrompt(input.Question, rag.Classification, rag.Context, input.ChatHistory)

	resp, err := u.generator.Generate(ctx, prompt, u.maxTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	u.logger.Info("consultation_answered",
		slog.String("category", rag.Classification.Category),
		slog.String("intent", rag.Classification.Intent),
		slog.Int("num_results", rag.NumResults),
		slog.Bool("done", resp.Done))

	return &AnswerOutput{
		Answer:         resp.Text,
		Classification: rag.Classification,
		Sources:        rag.Sources,
		HasDeadlines:   rag.Classification.NeedsDeadlineCheck,
	}, nil
}
