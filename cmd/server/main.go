package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"legal-rag/internal/adapter/classify"
	"legal-rag/internal/adapter/ollama"
	"legal-rag/internal/adapter/rag_http"
	"legal-rag/internal/adapter/repository"
	"legal-rag/internal/domain"
	"legal-rag/internal/infra"
	"legal-rag/internal/infra/config"
	"legal-rag/internal/infra/logger"
	"legal-rag/internal/usecase"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New()
	slog.SetDefault(log)

	// 3. Initialize DB
	dbPool, err := infra.NewPostgresDB(context.Background(), cfg.DB.DSN(), infra.PoolConfig{
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	})
	if err != nil {
		log.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Initialize Adapters
	index := repository.NewPassageRepository(dbPool)
	embedder := ollama.NewEmbedder(cfg.OllamaURL, cfg.EmbeddingModel, cfg.EmbedTimeoutSec)
	generator := ollama.NewGenerator(cfg.OllamaURL, cfg.GeneratorModel, cfg.ChatTimeoutSec)
	topicTable := domain.NewDefaultTopicTable()
	classifier := classify.NewKeywordClassifier(topicTable)

	// 5. Initialize Usecases
	retrieveUsecase, err := usecase.NewRetrieveContextUsecase(
		index,
		embedder,
		classifier,
		topicTable,
		usecase.RetrievalConfig{
			TopK:            cfg.Retrieval.TopK,
			SemanticFactor:  cfg.Retrieval.SemanticFactor,
			MaxFilterTopics: cfg.Retrieval.MaxFilterTopics,
			ResultCacheSize: cfg.Retrieval.ResultCacheSize,
			EmbedMemoSize:   cfg.Retrieval.EmbedMemoSize,
		},
		log,
	)
	if err != nil {
		log.Error("failed to build retrieval usecase", "error", err)
		os.Exit(1)
	}
	answerUsecase := usecase.NewAnswerLegalUsecase(retrieveUsecase, generator, cfg.AnswerMaxTokens, log)
	draftUsecase := usecase.NewDraftDocumentUsecase(retrieveUsecase, generator, cfg.AnswerMaxTokens, log)

	// 6. Initialize Echo
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// 7. Register Handlers
	handler := rag_http.NewHandler(retrieveUsecase, answerUsecase, draftUsecase, index, embedder)
	handler.Register(e)

	// 8. Liveness / Readiness
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/readyz", func(c echo.Context) error {
		if err := dbPool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db down", "error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})

	// 9. Start Server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info("Starting server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// 10. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
