package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries every externally supplied setting. It is loaded once in
// main and passed down; no other package reads the environment.
type Config struct {
	OpenAIKey   string
	OpenAIModel string

	ResendKey string
	EmailFrom string
	EmailTo   string

	TelegramToken  string
	TelegramChatID int64

	DBPath      string
	PrivacyMode bool
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}

func envOr(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func envBool(k string, fallback bool) bool {
	v, exists := os.LookupEnv(k)
	if !exists {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: invalid bool %s=%q, using default %v", k, v, fallback)
		return fallback
	}
	return b
}

// DBPath resolves just the database location. Holdings and reporting
// commands use it so they work without any API credentials.
func DBPath() string {
	_ = godotenv.Load()
	return envOr("DB_PATH", "portfolio.db")
}

// Load reads .env (if present) and assembles the Config. Only the OpenAI
// key is required; email and telegram credentials are optional because
// delivery failure is non-fatal to a run.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file, using process environment")
	}

	chatID := int64(0)
	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Printf("config: invalid TELEGRAM_CHAT_ID %q, telegram disabled", raw)
		} else {
			chatID = id
		}
	}

	return Config{
		OpenAIKey:      mustEnv("OPENAI_API_KEY"),
		OpenAIModel:    envOr("OPENAI_MODEL", "gpt-4o-search-preview"),
		ResendKey:      os.Getenv("RESEND_API_KEY"),
		EmailFrom:      envOr("EMAIL_FROM", "onboarding@resend.dev"),
		EmailTo:        os.Getenv("EMAIL_TO"),
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID: chatID,
		DBPath:         envOr("DB_PATH", "portfolio.db"),
		PrivacyMode:    envBool("PRIVACY_MODE", true),
	}
}
