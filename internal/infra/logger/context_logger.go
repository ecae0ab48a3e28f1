package logger

import (
	"context"
	"log/slog"
	"os"
)

type ContextKey string

const (
	// Business context keys, following OpenTelemetry semantic conventions
	// with a 'legal.' prefix.
	RetrievalIDKey ContextKey = "legal.retrieval.id"
	QuestionKey    ContextKey = "legal.question.topic"
	StageKey       ContextKey = "legal.pipeline.stage"
)

// ContextLogger provides context-aware logging with request-scoped fields
type ContextLogger struct {
	logger      *slog.Logger
	serviceName string
}

// NewContextLogger creates a new context-aware logger
func NewContextLogger(serviceName string) *ContextLogger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	}
	handler := slog.NewJSONHandler(os.Stdout, opts)

	return &ContextLogger{
		logger:      slog.New(handler),
		serviceName: serviceName,
	}
}

// WithContext returns a logger with context values extracted and added as fields
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	logger := cl.logger.With("service", cl.serviceName)

	var fields []any

	if retrievalID := ctx.Value(RetrievalIDKey); retrievalID != nil {
		fields = append(fields, string(RetrievalIDKey), retrievalID)
	}
	if topic := ctx.Value(QuestionKey); topic != nil {
		fields = append(fields, string(QuestionKey), topic)
	}
	if stage := ctx.Value(StageKey); stage != nil {
		fields = append(fields, string(StageKey), stage)
	}

	if len(fields) > 0 {
		logger = logger.With(fields...)
	}

	return logger
}

// WithRetrievalID adds the retrieval ID to context for observability
func WithRetrievalID(ctx context.Context, retrievalID string) context.Context {
	return context.WithValue(ctx, RetrievalIDKey, retrievalID)
}

// WithQuestionTopic adds the detected question topic to context for observability
func WithQuestionTopic(ctx context.Context, topic string) context.Context {
	return context.WithValue(ctx, QuestionKey, topic)
}

// WithStage adds the pipeline stage to context for observability
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, StageKey, stage)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "warn", "WARN", "warning", "WARNING":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
