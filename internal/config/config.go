package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Auth    AuthConfig
	OpenAI  OpenAIConfig
}

type AppConfig struct {
	Port                 string
	Environment          string
	LogFilePath          string
	CorsAllowedOrigins   string
	SessionRetentionDays int
}

type StorageConfig struct {
	// Backend selects the session store: "firestore" (chunked document
	// store), "postgres" (relational comparison backend) or "memory".
	Backend                 string
	FirebaseProjectId       string
	FirebaseCredentialsFile string
	PostgresDSN             string
}

type AuthConfig struct {
	// Provider is "firebase" in production; "jwt" verifies local HS256
	// tokens for development.
	Provider string
}

type OpenAIConfig struct {
	APIKey           string
	ChatModel        string
	TTSModel         string
	Voice            string
	SystemPromptPath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:                 getEnv("APP_PORT", "8000"),
			Environment:          getEnv("GO_ENV", "development"),
			LogFilePath:          getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5174"),
			SessionRetentionDays: getEnvAsInt("SESSION_RETENTION_DAYS", 7),
		},
		Storage: StorageConfig{
			Backend:                 getEnv("STORAGE_BACKEND", "firestore"),
			FirebaseProjectId:       getEnv("FIREBASE_PROJECT_ID", ""),
			FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", "firebase_credentials.json"),
			PostgresDSN:             getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			Provider: getEnv("AUTH_PROVIDER", "firebase"),
		},
		OpenAI: OpenAIConfig{
			APIKey:           getEnv("OPENAI_API_KEY", ""),
			ChatModel:        getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			TTSModel:         getEnv("OPENAI_TTS_MODEL", "tts-1"),
			Voice:            getEnv("OPENAI_TTS_VOICE", "alloy"),
			SystemPromptPath: getEnv("SYSTEM_PROMPT_PATH", "prompts/system.txt"),
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
