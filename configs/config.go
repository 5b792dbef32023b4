package config

import (
	"fmt"
	"os"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Config struct {
	PostgresURI string
	Port        string

	AnthropicAPIKey  string
	AnthropicBaseURL string
	AnthropicModel   string
	RubricPath       string

	GraphBaseURL       string
	GoogleTokenURL     string
	GoogleBusinessURL  string
	GoogleClientID     string
	GoogleClientSecret string

	R2 R2

	SecretKey string
}

func LoadConfig() *Config {
	return &Config{
		PostgresURI: getEnv("POSTGRES_URI", ""),
		Port:        getEnv("PORT", "3000"),

		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		AnthropicModel:   getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
		RubricPath:       getEnv("QA_RUBRIC_PATH", ""),

		GraphBaseURL:       getEnv("GRAPH_BASE_URL", "https://graph.facebook.com/v19.0"),
		GoogleTokenURL:     getEnv("GOOGLE_TOKEN_URL", "https://oauth2.googleapis.com/token"),
		GoogleBusinessURL:  getEnv("GOOGLE_BUSINESS_URL", "https://mybusiness.googleapis.com/v4"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),

		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},

		SecretKey: getEnv("SECRET_KEY", ""),
	}
}

// Validate reports the first missing required setting. Called once at startup
// so a misconfigured process aborts before any record is touched.
func (c *Config) Validate() error {
	if c.PostgresURI == "" {
		return fmt.Errorf("POSTGRES_URI is required")
	}
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if c.GoogleClientID == "" || c.GoogleClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
	}
	switch len(c.SecretKey) {
	case 16, 24, 32:
	default:
		return fmt.Errorf("SECRET_KEY must be 16, 24 or 32 bytes")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
