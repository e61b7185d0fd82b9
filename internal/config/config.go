package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Rag      RAGConfig
	Corpus   CorpusConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama" or "huggingface"
	LLMModel          string // e.g. "llama3", "mistralai/Mistral-7B-Instruct-v0.3"
}

type RAGConfig struct {
	TopKDefault       int
	TopKMax           int
	MinQuestionLength int
	ContextBudget     int // characters across all passages
	PassageCap        int // characters per passage
	CacheCapacity     int
	RetryAttempts     int // total attempts per outbound call
	EmbeddingTimeout  time.Duration
	GenerationTimeout time.Duration
}

type CorpusConfig struct {
	Path      string
	TopicName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HF_TOKEN", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "huggingface"),
			LLMModel:          getEnv("LLM_MODEL", "mistralai/Mistral-7B-Instruct-v0.3"),
		},
		Rag: RAGConfig{
			TopKDefault:       getEnvAsInt("TOP_K_DEFAULT", 3),
			TopKMax:           getEnvAsInt("TOP_K_MAX", 10),
			MinQuestionLength: getEnvAsInt("MIN_QUESTION_LENGTH", 3),
			ContextBudget:     getEnvAsInt("CONTEXT_BUDGET", 3000),
			PassageCap:        getEnvAsInt("PASSAGE_CAP", 800),
			CacheCapacity:     getEnvAsInt("CACHE_CAPACITY", 100),
			RetryAttempts:     getEnvAsInt("RETRY_ATTEMPTS", 2),
			EmbeddingTimeout:  getEnvAsDuration("EMBEDDING_TIMEOUT", 10*time.Second),
			GenerationTimeout: getEnvAsDuration("GENERATION_TIMEOUT", 30*time.Second),
		},
		Corpus: CorpusConfig{
			Path:      getEnv("CORPUS_PATH", "data/corpus.json"),
			TopicName: getEnv("INDEX_DOCUMENT_TOPIC_NAME", "INDEX_DOCUMENT"),
		},
	}
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
