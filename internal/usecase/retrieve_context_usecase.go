package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"legal-rag/internal/domain"
	"legal-rag/internal/infra/cache"
	"legal-rag/internal/infra/logger"
	"legal-rag/internal/usecase/retrieval"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

// RetrieveInput defines the input parameters for RetrieveContext.
type RetrieveInput struct {
	Question    string
	ChatHistory []domain.ChatTurn
	// TopK overrides the configured result count when positive.
	TopK int
}

// RetrieveContextUsecase defines the interface for hybrid context retrieval.
type RetrieveContextUsecase interface {
	Execute(ctx context.Context, input RetrieveInput) (*domain.RetrievalResult, error)
}

type retrieveContextUsecase struct {
	index      domain.PassageIndex
	encoder    domain.VectorEncoder
	classifier domain.QueryClassifier
	table      *domain.TopicTable
	cfg        RetrievalConfig

	results   *cache.FIFO[domain.RetrievalResult]
	embedMemo *lru.Cache[string, []float32]

	logger *slog.Logger
}

// NewRetrieveContextUsecase creates a new RetrieveContextUsecase. Both caches
// are owned by the usecase and sized from cfg.
func NewRetrieveContextUsecase(
	index domain.PassageIndex,
	encoder domain.VectorEncoder,
	classifier domain.QueryClassifier,
	table *domain.TopicTable,
	cfg RetrievalConfig,
	logger *slog.Logger,
) (RetrieveContextUsecase, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retrieval config: %w", err)
	}

	memo, err := lru.New[string, []float32](cfg.EmbedMemoSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding memo: %w", err)
	}

	return &retrieveContextUsecase{
		index:      index,
		encoder:    encoder,
		classifier: classifier,
		table:      table,
		cfg:        cfg,
		results:    cache.NewFIFO[domain.RetrievalResult](cfg.ResultCacheSize),
		embedMemo:  memo,
		logger:     logger,
	}, nil
}

func (u *retrieveContextUsecase) Execute(ctx context.Context, input RetrieveInput) (*domain.RetrievalResult, error) {
	cacheKey := strings.TrimSpace(input.Question)
	if cacheKey == "" {
		return nil, fmt.Errorf("question is empty")
	}

	topK := input.TopK
	if topK <= 0 {
		topK = u.cfg.TopK
	}

	if cached, ok := u.results.Get(cacheKey); ok {
		u.logger.Info("retrieval_cache_hit",
			slog.Int("num_results", cached.NumResults))
		return &cached, nil
	}

	retrievalID := uuid.New().String()
	ctx = logger.WithRetrievalID(ctx, retrievalID)

	// Classification of the raw question is caller-visible metadata; the
	// enriched variant is what gets embedded and searched.
	classification := u.classifier.Classify(input.Question)
	enriched := domain.EnrichFollowUp(u.table, input.Question, input.ChatHistory)
	if enriched != input.Question {
		u.logger.Info("followup_enriched",
			slog.String("retrieval_id", retrievalID),
			slog.String("enriched", enriched))
	}

	queryVector, err := u.embedQuery(ctx, enriched)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	plan := retrieval.NewFilterPlan(u.table.DetectTopics(enriched), u.cfg.MaxFilterTopics)

	var (
		semanticHits  []domain.SearchHit
		filteredHits  []domain.SearchHit
		filteredTopic string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hits, err := u.index.Search(gctx, queryVector, topK*u.cfg.SemanticFactor, "")
		if err != nil {
			return fmt.Errorf("semantic search failed: %w", err)
		}
		semanticHits = hits
		return nil
	})
	g.Go(func() error {
		hits, topic, err := plan.Run(gctx, u.index, queryVector, topK)
		if err != nil {
			return err
		}
		filteredHits, filteredTopic = hits, topic
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := retrieval.Merge(semanticHits, filteredHits, topK)

	result := domain.RetrievalResult{
		Classification: classification,
		Context:        retrieval.BuildContextString(merged),
		Sources:        retrieval.ExtractSources(merged),
		NumResults:     len(merged),
	}

	u.results.Add(cacheKey, result)

	u.logger.Info("retrieval_completed",
		slog.String("retrieval_id", retrievalID),
		slog.Int("semantic_hits", len(semanticHits)),
		slog.Int("filtered_hits", len(filteredHits)),
		slog.String("filtered_topic", filteredTopic),
		slog.Any("candidate_topics", plan.Topics()),
		slog.Int("num_results", result.NumResults))

	return &result, nil
}

// embedQuery returns the embedding for query, consulting the process-wide memo
// first. The encoder is always called outside any lock.
func (u *retrieveContextUsecase) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if vec, ok := u.embedMemo.Get(query); ok {
		return vec, nil
	}

	embeddings, err := u.encoder.Encode(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	u.embedMemo.Add(query, embeddings[0])
	return embeddings[0], nil
}
