package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"legal-rag/internal/domain"
	"legal-rag/internal/infra/httpclient"
)

// Embedder calls Ollama's embedding endpoint.
type Embedder struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

// NewEmbedder constructs an embedder for the given endpoint and model.
func NewEmbedder(baseURL, model string, timeoutSeconds int) *Embedder {
	timeout := 30 * time.Second
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	return &Embedder{
		BaseURL: baseURL,
		Model:   model,
		Client:  httpclient.NewPooledClient(timeout),
	}
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (e *Embedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()

	reqBody := embedRequest{
		Model: e.Model,
		Input: texts,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/embed", e.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.Client.Do(req)
	if err != nil {
		slog.Error("embed_request_failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("failed to call embedding endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		slog.Error("embed_bad_status",
			slog.Int("status", resp.StatusCode),
			slog.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("embedding endpoint returned status: %d", resp.StatusCode)
	}

	var respBody embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	slog.Debug("embed_completed",
		slog.Int("text_count", len(texts)),
		slog.Int("embedding_count", len(respBody.Embeddings)),
		slog.Duration("elapsed", time.Since(start)))

	return respBody.Embeddings, nil
}

// Version returns the wrapped model name.
func (e *Embedder) Version() string {
	return e.Model
}

var _ domain.VectorEncoder = (*Embedder)(nil)
