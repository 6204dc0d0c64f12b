package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultVerifyToken is used when WEBHOOK_VERIFY_TOKEN is not set.
const DefaultVerifyToken = "chatbotarmaq"

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	// Webhook
	VerifyToken string
	AppSecret   string // optional; enables X-Hub-Signature-256 validation

	// Messenger delivery
	PageAccessToken string   // required at send time, not at startup
	NotifyPSID      string   // optional supervisor recipient
	AdvisorQueue    []string // ordered advisor recipients; empty disables assignment

	// Reply generation
	AnthropicAPIKey  string
	GeneratorModel   string
	GeneratorPrompt  string
	GeneratorTimeout time.Duration
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
//
// The page access token is deliberately not validated here: a missing
// credential surfaces as a delivery failure on the first send attempt.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "3000"),
		Env:             getEnv("ENV", "development"),
		VerifyToken:     getEnv("WEBHOOK_VERIFY_TOKEN", DefaultVerifyToken),
		AppSecret:       os.Getenv("MESSENGER_APP_SECRET"),
		PageAccessToken: os.Getenv("MESSENGER_PAGE_ACCESS_TOKEN"),
		NotifyPSID:      strings.TrimSpace(os.Getenv("MESSENGER_NOTIFY_PSID")),
		AdvisorQueue:    splitList(os.Getenv("MESSENGER_ADVISOR_QUEUE")),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		GeneratorModel:  getEnv("GENERATOR_MODEL", "claude-sonnet-4.6"),
		GeneratorPrompt: getEnv("GENERATOR_SYSTEM_PROMPT", defaultPrompt),
	}

	cfg.GeneratorTimeout = 20 * time.Second
	if raw := os.Getenv("GENERATOR_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.GeneratorTimeout = d
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

const defaultPrompt = "Eres el asistente virtual de Armaq. Responde en español, " +
	"de forma breve y cordial, a consultas de clientes sobre productos y servicios. " +
	"Si no conoces la respuesta, indica que un asesor humano dará seguimiento."

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList parses a comma-separated list, trimming entries and dropping blanks.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}
