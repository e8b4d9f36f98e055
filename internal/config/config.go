package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port           string
	Env            string
	LogLevel       string
	StaticDir      string
	MetricsEnabled bool

	// Email delivery
	EmailProvider    string
	EmailSendTimeout time.Duration
	ResendAPIKey     string
	ResendBaseURL    string
	SendGridAPIKey   string
	SendGridHost     string

	PostmarkServerToken  string
	PostmarkAccountToken string
	PostmarkBaseURL      string

	// AWS (SES provider)
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		StaticDir:      getEnv("STATIC_DIR", "public"),
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),

		EmailProvider:    strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "resend"))),
		EmailSendTimeout: getEnvAsDuration("EMAIL_SEND_TIMEOUT", 0),
		ResendAPIKey:     strings.TrimSpace(getEnv("RESEND_API_KEY", "")),
		ResendBaseURL:    getEnv("RESEND_BASE_URL", ""),
		SendGridAPIKey:   strings.TrimSpace(getEnv("SENDGRID_API_KEY", "")),
		SendGridHost:     getEnv("SENDGRID_HOST", ""),

		PostmarkServerToken:  strings.TrimSpace(getEnv("POSTMARK_SERVER_TOKEN", "")),
		PostmarkAccountToken: strings.TrimSpace(getEnv("POSTMARK_ACCOUNT_TOKEN", "")),
		PostmarkBaseURL:      getEnv("POSTMARK_BASE_URL", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
	}
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
