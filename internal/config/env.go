package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Env holds the process settings that come from the environment.
type Env struct {
	Addr             string
	AppConfigPath    string
	MotivationAPIKey string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	GeminiAPIKey     string
}

// LoadEnv reads a .env file if one exists, then the process environment.
func LoadEnv(logger *zap.Logger) Env {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using environment variables")
	}

	env := Env{
		Addr:             getenv("PREPDASH_ADDR", ":8080"),
		AppConfigPath:    getenv("PREPDASH_APP_CONFIG", "config/app_config.json"),
		MotivationAPIKey: os.Getenv("MOTIVATION_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
	}
	// The motivation feed runs on the OpenAI key unless given its own.
	if env.MotivationAPIKey == "" {
		env.MotivationAPIKey = env.OpenAIAPIKey
	}
	return env
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
