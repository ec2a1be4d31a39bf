package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Tesseract-Nexus/go-shared/secrets"
)

// Config holds all configuration for the shopify product service
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Database (optional, enables the submission audit trail)
	DatabaseURL string

	// GCP
	GCPProjectID string

	// NetSuite
	NetSuiteAccountID        string
	NetSuiteBaseURL          string
	NetSuiteAccessToken      string
	NetSuiteRateLimit        int // requests per second
	NetSuiteTimeout          time.Duration
	NetSuiteChildConcurrency int

	// Shopify product endpoint
	ShopifyProductEndpoint   string
	ShopifyProductSecretName string
	ShopifyProductSecret     string
	ShopifySubmitTimeout     time.Duration

	// Events (optional)
	NATSURL string

	CORSAllowedOrigins []string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8099"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: databaseURL(),

		GCPProjectID: getEnv("GCP_PROJECT_ID", ""),

		NetSuiteAccountID:        getEnv("NETSUITE_ACCOUNT_ID", ""),
		NetSuiteBaseURL:          getEnv("NETSUITE_BASE_URL", ""),
		NetSuiteAccessToken:      secrets.GetSecretOrEnv("NETSUITE_TOKEN_SECRET_NAME", "NETSUITE_ACCESS_TOKEN", ""),
		NetSuiteRateLimit:        getEnvAsInt("NETSUITE_RATE_LIMIT", 5),
		NetSuiteTimeout:          getEnvAsDuration("NETSUITE_TIMEOUT", 30*time.Second),
		NetSuiteChildConcurrency: getEnvAsInt("NETSUITE_CHILD_CONCURRENCY", 4),

		ShopifyProductEndpoint:   getEnv("SHOPIFY_PRODUCT_ENDPOINT", ""),
		ShopifyProductSecretName: getEnv("SHOPIFY_PRODUCT_SECRET_NAME", ""),
		ShopifyProductSecret:     getEnv("SHOPIFY_PRODUCT_SECRET", ""),
		ShopifySubmitTimeout:     getEnvAsDuration("SHOPIFY_SUBMIT_TIMEOUT", 30*time.Second),

		NATSURL: getEnv("NATS_URL", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),
	}
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ResolvedNetSuiteBaseURL returns NETSUITE_BASE_URL, or the URL derived
// from the account id when unset.
func (c *Config) ResolvedNetSuiteBaseURL(derive func(accountID string) string) string {
	if c.NetSuiteBaseURL != "" {
		return c.NetSuiteBaseURL
	}
	return derive(c.NetSuiteAccountID)
}

// databaseURL builds the DSN from DB_* components when DATABASE_URL is
// unset. Without DB_HOST the audit store stays disabled.
func databaseURL() string {
	if url := getEnv("DATABASE_URL", ""); url != "" {
		return url
	}
	dbHost := getEnv("DB_HOST", "")
	if dbHost == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("DB_USER", "postgres"),
		secrets.GetDBPassword(),
		dbHost,
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "shopify_products"),
		getEnv("DB_SSLMODE", "disable"))
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

// getEnvAsList splits a comma separated variable
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
