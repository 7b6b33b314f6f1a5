package config

import (
	"log"
	"os"
	"strconv"

	"knowledgegpt-be/internal/constant"
	"knowledgegpt-be/internal/pkg/apperr"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
	Chunking  ChunkingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
	UploadDir          string
	AuditTopic         string
	// Debug selects the in-memory store backend instead of Postgres/Redis.
	Debug bool
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	// APIKey authenticates to Cohere (embeddings, chat, rerank).
	APIKey            string
	EmbeddingProvider string // "cohere" or "ollama"
	EmbeddingModel    string
	LLMProvider       string // "cohere" or "ollama"
	LLMModel          string
	RerankModel       string
	OllamaBaseURL     string
	Temperature       float64
	PromptTemplate    string
}

type RetrievalConfig struct {
	TopK   int
	FetchK int
}

type ChunkingConfig struct {
	ChunkSize    int
	ChunkOverlap int
	Separator    string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
			AuditTopic:         getEnv("AUDIT_TOPIC_NAME", "AUDIT_EVENTS"),
			Debug:              getEnvAsBool("DEBUG", false),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			APIKey:            getEnv("API_KEY", ""),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "cohere"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL_NAME", "embed-english-v3.0"),
			LLMProvider:       getEnv("LLM_PROVIDER", "cohere"),
			LLMModel:          getEnv("LLM_MODEL_NAME", "command-r"),
			RerankModel:       getEnv("RERANK_MODEL_NAME", "rerank-english-v3.0"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Temperature:       getEnvAsFloat("TEMPERATURE", constant.DefaultTemperature),
			PromptTemplate:    getEnv("PROMPT_TEMPLATE", constant.DefaultPromptTemplate),
		},
		Retrieval: RetrievalConfig{
			TopK:   getEnvAsInt("TOP_K", constant.DefaultTopK),
			FetchK: getEnvAsInt("FETCH_K", constant.DefaultFetchK),
		},
		Chunking: ChunkingConfig{
			ChunkSize:    getEnvAsInt("CHUNK_SIZE", constant.DefaultChunkSize),
			ChunkOverlap: getEnvAsInt("CHUNK_OVERLAP", constant.DefaultChunkOverlap),
			Separator:    getEnv("CHUNK_SEPARATOR", constant.DefaultSeparator),
		},
	}
}

// Validate fails fast on configurations that cannot possibly serve requests.
func (c *Config) Validate() error {
	if !c.App.Debug && c.Database.Connection == "" {
		return apperr.New(apperr.KindConfig, "DB_CONNECTION_STRING is required unless DEBUG=true")
	}
	if c.Ai.EmbeddingProvider == "cohere" && c.Ai.APIKey == "" {
		return apperr.New(apperr.KindConfig, "API_KEY is required for the cohere embedding provider")
	}
	if c.Ai.LLMProvider == "cohere" && c.Ai.APIKey == "" {
		return apperr.New(apperr.KindConfig, "API_KEY is required for the cohere llm provider")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
