package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	Environment string
	ServiceName string
	LogLevel    string
	DBUrl       string
	// Identity provider
	JWTSecret string
	JWKSUrl   string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Messaging / tracing
	NATSUrl      string
	OTLPEndpoint string
	// Store call policy
	StoreTimeout    time.Duration
	StoreMaxRetries int
	StoreRetryDelay time.Duration
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitWriteThreshold  int
	RateLimitGlobalThreshold int
	// CORS
	AllowedOrigins []string
	// Job defaults
	PlaceholderImageURL string
	SwaggerEnabled      bool
}

func LoadConfig() (*Config, error) {
	// Load .env file when present; real env vars win in deployed environments
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		Environment: getEnv("ENVIRONMENT", "development"),
		ServiceName: getEnv("SERVICE_NAME", "heyjob-backend"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		// Sanitize: trailing slash would produce "//.well-known" style URLs
		JWKSUrl:       strings.TrimRight(getEnv("JWKS_URL", ""), "/"),
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		NATSUrl:       getEnv("NATS_URL", ""),
		OTLPEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),

		StoreTimeout:    getEnvDuration("STORE_TIMEOUT", 5*time.Second),
		StoreMaxRetries: getEnvInt("STORE_MAX_RETRIES", 3),
		StoreRetryDelay: getEnvDuration("STORE_RETRY_DELAY", 100*time.Millisecond),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitWriteThreshold:  getEnvInt("RATE_LIMIT_WRITE_THRESHOLD", 20),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),

		AllowedOrigins:      getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:19006", "http://localhost:8081"}),
		PlaceholderImageURL: getEnv("PLACEHOLDER_IMAGE_URL", "https://picsum.photos/200"),
		SwaggerEnabled:      getEnvBool("SWAGGER_ENABLED", true),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Jobs will be kept in memory only.")
	}
	if cfg.JWTSecret == "" && cfg.JWKSUrl == "" {
		log.Println("WARNING: neither JWT_SECRET nor JWKS_URL is set. Authenticated routes will reject every token.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
