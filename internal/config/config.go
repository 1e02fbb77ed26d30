package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Ai       AIConfig
	Vector   VectorConfig
	Database DatabaseConfig
	Session  SessionConfig
	Events   EventsConfig
	Persona  PersonaConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	EventLogFilePath   string
	CorsAllowedOrigins string
	RateLimitPerMinute int
}

func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

type AIConfig struct {
	LLMProvider       string // "ollama" or "openai"
	LLMModel          string
	LLMBaseURL        string
	LLMAPIKey         string
	EmbeddingProvider string // "ollama" or "openai"
	EmbeddingModel    string
	EmbeddingBaseURL  string
	EmbeddingAPIKey   string
}

type VectorConfig struct {
	Provider         string // "qdrant" or "pgvector"
	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string
	Dimensions       int
	TopK             int
	MinScore         float64
}

type DatabaseConfig struct {
	Connection string
}

type SessionConfig struct {
	Store       string // "redis" or "memory"
	RedisURL    string
	TTLSeconds  int
	ShortWindow int
}

type EventsConfig struct {
	NatsURL     string
	NatsEnabled bool
	Topic       string
}

type PersonaConfig struct {
	ProfilePath string
	OwnerName   string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			EventLogFilePath:   getEnv("EVENT_LOG_FILE_PATH", "logs/chat_events.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 20),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3.1"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			LLMAPIKey:         getEnv("LLM_API_KEY", ""),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
			EmbeddingBaseURL:  getEnv("EMBEDDING_BASE_URL", "http://localhost:11434"),
			EmbeddingAPIKey:   getEnv("EMBEDDING_API_KEY", ""),
		},
		Vector: VectorConfig{
			Provider:         getEnv("VECTOR_PROVIDER", "qdrant"),
			QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6334"),
			QdrantAPIKey:     getEnv("QDRANT_API_KEY", ""),
			QdrantCollection: getEnv("QDRANT_COLLECTION", "digital_twin"),
			Dimensions:       getEnvAsInt("VECTOR_DIMENSIONS", 768),
			TopK:             getEnvAsInt("RAG_TOP_K", 5),
			MinScore:         getEnvAsFloat("RAG_MIN_SCORE", 0.75),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Session: SessionConfig{
			Store:       getEnv("SESSION_STORE", "memory"),
			RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
			TTLSeconds:  getEnvAsInt("SESSION_TTL_SECONDS", 3600),
			ShortWindow: getEnvAsInt("SESSION_SHORT_WINDOW", 16),
		},
		Events: EventsConfig{
			NatsURL:     getEnv("NATS_URL", "nats://localhost:4222"),
			NatsEnabled: getEnvAsBool("NATS_ENABLED", false),
			Topic:       getEnv("CHAT_EVENTS_TOPIC", "chat_events"),
		},
		Persona: PersonaConfig{
			ProfilePath: getEnv("PERSONA_PROFILE_PATH", ""),
			OwnerName:   getEnv("OWNER_NAME", ""),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "digital-twin-backend"),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	switch strings.ToLower(getEnv(key, "")) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return fallback
	}
}
