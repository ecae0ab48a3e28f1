package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds every runtime setting. Values come from environment
// variables with sensible defaults for local docker-compose runs.
type Config struct {
	Env  string
	Port string

	DB DBConfig

	OllamaURL        string
	EmbeddingModel   string
	GeneratorModel   string
	EmbedTimeoutSec  int
	ChatTimeoutSec   int
	AnswerMaxTokens  int

	Retrieval RetrievalSettings
}

// DBConfig holds the postgres connection settings.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	MaxConns int32
	MinConns int32
}

// DSN renders the pgx connection string.
func (d DBConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=disable"
}

// RetrievalSettings are the tunable knobs of the retrieval pipeline.
type RetrievalSettings struct {
	TopK            int
	SemanticFactor  int
	MaxFilterTopics int
	ResultCacheSize int
	EmbedMemoSize   int
}

func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "9020"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "legal-db"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "legal_user"),
			Password: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "legal_password"),
			Name:     getEnv("DB_NAME", "legal_db"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 20)),
			MinConns: int32(getEnvInt("DB_MIN_CONNS", 5)),
		},
		OllamaURL:       getEnvWithAlt("OLLAMA_URL", "OLLAMA_BASE_URL", "http://ollama:11434"),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "embeddinggemma"),
		GeneratorModel:  getEnv("GENERATOR_MODEL", "gemma3:4b"),
		EmbedTimeoutSec: getEnvInt("EMBED_TIMEOUT_SECONDS", 30),
		ChatTimeoutSec:  getEnvInt("CHAT_TIMEOUT_SECONDS", 120),
		AnswerMaxTokens: getEnvInt("ANSWER_MAX_TOKENS", 1024),
		Retrieval: RetrievalSettings{
			TopK:            getEnvInt("RETRIEVAL_TOP_K", 5),
			SemanticFactor:  getEnvInt("RETRIEVAL_SEMANTIC_FACTOR", 2),
			MaxFilterTopics: getEnvInt("RETRIEVAL_MAX_FILTER_TOPICS", 2),
			ResultCacheSize: getEnvInt("RETRIEVAL_CACHE_SIZE", 32),
			EmbedMemoSize:   getEnvInt("EMBED_MEMO_SIZE", 128),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getSecret reads the value directly from envKey, or from the file named by
// fileEnvKey (docker secrets), before falling back.
func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}

	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	return fallback
}

func getEnvWithAlt(key, altKey, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	if value, ok := os.LookupEnv(altKey); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
