package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// App carries everything the services need so no module-level state is
// consulted after startup.
type App struct {
	Port          string
	PublicBaseURL string
	UploadDir     string

	OpenAIKey    string
	OpenAIModels []string

	// Invoice-number allocation tuning. The defaults match the behavior the
	// system has always had; override via env when needed.
	NumberAttempts int
	SaveAttempts   int
	RetryDelay     time.Duration
}

func Load() App {
	return App{
		Port:           getEnv("PORT", "8080"),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModels:   splitCSV(getEnv("OPENAI_MODELS", "gpt-4o-mini,gpt-4o,gpt-3.5-turbo")),
		NumberAttempts: getEnvInt("INVOICE_NUMBER_ATTEMPTS", 8),
		SaveAttempts:   getEnvInt("INVOICE_SAVE_ATTEMPTS", 6),
		RetryDelay:     time.Duration(getEnvInt("INVOICE_RETRY_DELAY_MS", 25)) * time.Millisecond,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
