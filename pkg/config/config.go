package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Environment        string
	ServerPort         int
	MongoURI           string
	MongoDatabase      string
	JWTSecret          string
	JWTIssuer          string
	LogLevel           string
	CORSAllowedOrigins []string
	StoreTimeout       time.Duration
	FeaturedLimit      int
	ReaperEnabled      bool
	ReaperInterval     time.Duration
}

// Load reads configuration from environment variables. A .env file in
// the working directory is loaded first if present.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments use the process environment.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	storeTimeout, err := strconv.Atoi(getEnv("STORE_TIMEOUT_SECONDS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_TIMEOUT_SECONDS: %w", err)
	}

	featuredLimit, err := strconv.Atoi(getEnv("FEATURED_LIMIT", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid FEATURED_LIMIT: %w", err)
	}

	reaperInterval, err := strconv.Atoi(getEnv("REAPER_INTERVAL_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid REAPER_INTERVAL_MINUTES: %w", err)
	}

	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		ServerPort:    port,
		MongoURI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "homenestDB"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTIssuer:     getEnv("JWT_ISSUER", "homenest"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: parseCSVEnv("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}),
		StoreTimeout:   time.Duration(storeTimeout) * time.Second,
		FeaturedLimit:  featuredLimit,
		ReaperEnabled:  getEnv("REAPER_ENABLED", "false") == "true",
		ReaperInterval: time.Duration(reaperInterval) * time.Minute,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseCSVEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
