// ABOUTME: Centralized configuration for the pitcrew support assistant
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the decision core and its collaborators
type Config struct {
	// OpenAI settings
	OpenAIKey  string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// Human handoff
	ConfidenceThreshold float64
	SupportWebhookURL   string
	WebhookTimeout      time.Duration

	// Knowledge base retrieval
	RetrievalTopK    int
	MaxContextTokens int

	// Storage
	DBPath string
	KBPath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		ChatModel:           getEnv("PITCREW_CHAT_MODEL", "gpt-4o-mini"),
		Timeout:             getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:          getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:          getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		ConfidenceThreshold: getEnvFloat("PITCREW_CONFIDENCE_THRESHOLD", 0.7),
		SupportWebhookURL:   os.Getenv("PITCREW_SUPPORT_WEBHOOK"),
		WebhookTimeout:      getEnvDuration("PITCREW_WEBHOOK_TIMEOUT", 10*time.Second),
		RetrievalTopK:       getEnvInt("PITCREW_RETRIEVAL_TOP_K", 5),
		MaxContextTokens:    getEnvInt("PITCREW_MAX_CONTEXT_TOKENS", 3000),
		DBPath:              getEnv("PITCREW_DB_PATH", ""),
		KBPath:              getEnv("PITCREW_KB_PATH", ""),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("PITCREW_CONFIDENCE_THRESHOLD must be 0-1, got %f", c.ConfidenceThreshold)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.RetrievalTopK < 1 {
		return fmt.Errorf("PITCREW_RETRIEVAL_TOP_K must be positive, got %d", c.RetrievalTopK)
	}
	if c.MaxContextTokens < 1 {
		return fmt.Errorf("PITCREW_MAX_CONTEXT_TOKENS must be positive, got %d", c.MaxContextTokens)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
