package rag_http

import (
	"errors"
	"net/http"

	"legal-rag/internal/domain"
	"legal-rag/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Handler carries the usecases behind the HTTP surface.
type Handler struct {
	retrieveUsecase usecase.RetrieveContextUsecase
	answerUsecase   usecase.AnswerLegalUsecase
	draftUsecase    usecase.DraftDocumentUsecase
	index           domain.PassageIndex
	encoder         domain.VectorEncoder
}

// NewHandler creates the HTTP handler.
func NewHandler(
	retrieveUsecase usecase.RetrieveContextUsecase,
	answerUsecase usecase.AnswerLegalUsecase,
	draftUsecase usecase.DraftDocumentUsecase,
	index domain.PassageIndex,
	encoder domain.VectorEncoder,
) *Handler {
	return &Handler{
		retrieveUsecase: retrieveUsecase,
		answerUsecase:   answerUsecase,
		draftUsecase:    draftUsecase,
		index:           index,
		encoder:         encoder,
	}
}

// Register wires the handler routes onto the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/api/health", h.Health)
	e.POST("/api/ask", h.Ask)
	e.POST("/api/retrieve", h.Retrieve)
	e.POST("/api/search", h.Search)
	e.POST("/api/draft", h.Draft)
	e.GET("/api/draft/types", h.GetDraftTypes)
	e.GET("/api/topics", h.Topics)
}

type askRequest struct {
	Question    string            `json:"question"`
	ChatHistory []domain.ChatTurn `json:"chat_history"`
}

type askResponse struct {
	Answer         string                `json:"answer"`
	Classification domain.Classification `json:"classification"`
	Sources        []domain.Source       `json:"sources"`
	HasDeadlines   bool                  `json:"has_deadlines"`
}

// Ask answers a legal question grounded in retrieved provisions.
// (POST /api/ask)
func (h *Handler) Ask(ctx echo.Context) error {
	var req askRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Question == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "question is required"})
	}

	output, err := h.answerUsecase.Execute(ctx.Request().Context(), usecase.AnswerInput{
		Question:    req.Question,
		ChatHistory: req.ChatHistory,
	})
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(http.StatusOK, askResponse{
		Answer:         output.Answer,
		Classification: output.Classification,
		Sources:        output.Sources,
		HasDeadlines:   output.HasDeadlines,
	})
}

// Retrieve returns the assembled context without generation (retrieve-only).
// (POST /api/retrieve)
func (h *Handler) Retrieve(ctx echo.Context) error {
	var req askRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Question == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "question is required"})
	}

	result, err := h.retrieveUsecase.Execute(ctx.Request().Context(), usecase.RetrieveInput{
		Question:    req.Question,
		ChatHistory: req.ChatHistory,
	})
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(http.StatusOK, result)
}

type searchRequest struct {
	Query string `json:"query"`
	Topic string `json:"topic"`
	TopK  int    `json:"top_k"`
}

type searchArticle struct {
	Text       string  `json:"text"`
	Chapter    string  `json:"chapter"`
	Section    string  `json:"section"`
	Topic      string  `json:"topic"`
	Similarity float32 `json:"similarity"`
}

type searchResponse struct {
	Query   string          `json:"query"`
	Results []searchArticle `json:"results"`
	Total   int             `json:"total"`
}

// Search runs a direct, optionally topic-filtered vector search.
// (POST /api/search)
func (h *Handler) Search(ctx echo.Context) error {
	var req searchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Query == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "query is required"})
	}
	if req.TopK <= 0 {
		req.TopK = 10
	}

	// Direct index access: the retrieval usecase would hide the raw hits and
	// their scores behind the assembled context block.
	reqCtx := ctx.Request().Context()
	embeddings, err := h.encoder.Encode(reqCtx, []string{req.Query})
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if len(embeddings) == 0 {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "no embedding returned"})
	}

	hits, err := h.index.Search(reqCtx, embeddings[0], req.TopK, req.Topic)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	articles := make([]searchArticle, 0, len(hits))
	for _, hit := range hits {
		articles = append(articles, searchArticle{
			Text:       hit.Passage.Text,
			Chapter:    hit.Passage.Chapter,
			Section:    hit.Passage.Section,
			Topic:      hit.Passage.Topic,
			Similarity: hit.Score,
		})
	}

	return ctx.JSON(http.StatusOK, searchResponse{
		Query:   req.Query,
		Results: articles,
		Total:   len(articles),
	})
}

type draftRequest struct {
	DraftType   string            `json:"draft_type"`
	CaseDetails map[string]string `json:"case_details"`
}

type draftResponse struct {
	Draft     string          `json:"draft"`
	DraftType string          `json:"draft_type"`
	Sources   []domain.Source `json:"sources"`
}

// Draft generates a legal document draft.
// (POST /api/draft)
func (h *Handler) Draft(ctx echo.Context) error {
	var req draftRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	output, err := h.draftUsecase.Execute(ctx.Request().Context(), usecase.DraftInput{
		DraftType:   req.DraftType,
		CaseDetails: req.CaseDetails,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidDraftRequest) {
			return ctx.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(http.StatusOK, draftResponse{
		Draft:     output.Draft,
		DraftType: output.DraftType,
		Sources:   output.Sources,
	})
}

// GetDraftTypes lists the supported draft types.
// (GET /api/draft/types)
func (h *Handler) GetDraftTypes(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]interface{}{"types": usecase.DraftTypes()})
}

// Topics lists the canonical topics present in the corpus.
// (GET /api/topics)
func (h *Handler) Topics(ctx echo.Context) error {
	topics, err := h.index.Topics(ctx.Request().Context())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return ctx.JSON(http.StatusOK, map[string]interface{}{"topics": topics})
}

// Health reports service status and corpus size.
// (GET /api/health)
func (h *Handler) Health(ctx echo.Context) error {
	count, err := h.index.Count(ctx.Request().Context())
	if err != nil {
		return ctx.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
	}
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"vector_db_count": count,
	})
}
