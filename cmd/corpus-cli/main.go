// corpus-cli loads the statute corpus into the vector index and inspects it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"legal-rag/internal/adapter/ollama"
	"legal-rag/internal/adapter/repository"
	"legal-rag/internal/domain"
	"legal-rag/internal/infra"
	"legal-rag/internal/infra/config"
	"legal-rag/internal/infra/logger"
)

var (
	corpusFile string
	batchSize  int
)

var rootCmd = &cobra.Command{
	Use:   "corpus-cli",
	Short: "Manage the legal passage corpus",
	Long: `corpus-cli embeds statute passages and loads them into the pgvector index.

Example usage:
  corpus-cli load --file articles.json   # Embed and insert passages
  corpus-cli count                       # Show corpus size
  corpus-cli topics                      # Show topic distribution`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Embed passages from a JSON file and insert them",
	RunE:  runLoad,
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of indexed passages",
	RunE:  runCount,
}

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Print the topic distribution of the corpus",
	RunE:  runTopics,
}

func init() {
	loadCmd.Flags().StringVar(&corpusFile, "file", "articles.json", "path to the passage JSON file")
	loadCmd.Flags().IntVar(&batchSize, "batch-size", 16, "passages embedded per request")
	rootCmd.AddCommand(loadCmd, countCmd, topicsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// passageRecord mirrors one entry of the corpus JSON file.
type passageRecord struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	Chapter        string   `json:"chapter"`
	Section        string   `json:"section"`
	Topic          string   `json:"topic"`
	TopicTags      []string `json:"topic_tags"`
	HasDeadline    bool     `json:"has_deadline"`
	DeadlineDetail string   `json:"deadline_detail"`
	SourcePages    string   `json:"source_pages"`
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := logger.New()
	ctx := cmd.Context()

	data, err := os.ReadFile(corpusFile)
	if err != nil {
		return fmt.Errorf("failed to read corpus file: %w", err)
	}
	var records []passageRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse corpus file: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("corpus file %s contains no passages", corpusFile)
	}

	pool, err := infra.NewPostgresDB(ctx, cfg.DB.DSN(), infra.PoolConfig{
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to db: %w", err)
	}
	defer pool.Close()

	index := repository.NewPassageRepository(pool)
	txManager := repository.NewPostgresTransactionManager(pool)
	embedder := ollama.NewEmbedder(cfg.OllamaURL, cfg.EmbeddingModel, cfg.EmbedTimeoutSec)

	passages := make([]domain.LegalPassage, len(records))
	for i, rec := range records {
		id := rec.ID
		if id == "" {
			id = uuid.New().String()
		}
		passages[i] = domain.LegalPassage{
			ID:             id,
			Text:           rec.Text,
			Chapter:        rec.Chapter,
			Section:        rec.Section,
			Topic:          rec.Topic,
			TopicTags:      rec.TopicTags,
			HasDeadline:    rec.HasDeadline,
			DeadlineDetail: rec.DeadlineDetail,
			SourcePages:    rec.SourcePages,
		}
	}

	embeddings := make([][]float32, 0, len(passages))
	for start := 0; start < len(passages); start += batchSize {
		end := start + batchSize
		if end > len(passages) {
			end = len(passages)
		}
		texts := make([]string, 0, end-start)
		for _, p := range passages[start:end] {
			texts = append(texts, p.Text)
		}
		vecs, err := embedder.Encode(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed batch starting at %d: %w", start, err)
		}
		if len(vecs) != len(texts) {
			return fmt.Errorf("embedding count mismatch in batch starting at %d: got %d, want %d", start, len(vecs), len(texts))
		}
		embeddings = append(embeddings, vecs...)
		log.Info("batch_embedded", "done", end, "total", len(passages))
	}

	// All-or-nothing insert: a partially loaded corpus skews retrieval.
	err = txManager.RunInTx(ctx, func(ctx context.Context) error {
		return index.BulkInsert(ctx, passages, embeddings)
	})
	if err != nil {
		return fmt.Errorf("failed to insert passages: %w", err)
	}

	log.Info("corpus_loaded", "passages", len(passages), "file", corpusFile)
	fmt.Printf("Loaded %d passages from %s\n", len(passages), corpusFile)
	return nil
}

func runCount(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	pool, err := infra.NewPostgresDB(ctx, cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to db: %w", err)
	}
	defer pool.Close()

	count, err := repository.NewPassageRepository(pool).Count(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%d passages indexed\n", count)
	return nil
}

func runTopics(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	pool, err := infra.NewPostgresDB(ctx, cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to db: %w", err)
	}
	defer pool.Close()

	topics, err := repository.NewPassageRepository(pool).Topics(ctx)
	if err != nil {
		return err
	}
	for _, tc := range topics {
		fmt.Printf("%6d  %s\n", tc.Count, tc.Topic)
	}
	return nil
}
