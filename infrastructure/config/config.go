package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Request limits
	MaxBodyBytes int64
	MaxNodes     int
	MaxEdges     int

	// Rate limiting
	RateLimitPerMinute int

	// Caching
	CacheTTLSeconds int

	// Logging
	LogLevel string

	// CORS
	AllowedOrigins []string

	// Feature flags
	EnableMetrics   bool
	EnableCORS      bool
	EnableRateLimit bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		MaxBodyBytes: int64(getEnvInt("MAX_BODY_BYTES", 4<<20)),
		MaxNodes:     getEnvInt("MAX_NODES", 10000),
		MaxEdges:     getEnvInt("MAX_EDGES", 20000),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		CacheTTLSeconds:    getEnvInt("CACHE_TTL_SECONDS", 60),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		EnableMetrics:   getEnvBool("ENABLE_METRICS", true),
		EnableCORS:      getEnvBool("ENABLE_CORS", true),
		EnableRateLimit: getEnvBool("ENABLE_RATE_LIMIT", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.MaxNodes <= 0 || c.MaxEdges <= 0 {
		return fmt.Errorf("MAX_NODES and MAX_EDGES must be positive")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.CacheTTLSeconds <= 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must be positive")
	}

	if c.Environment == "production" {
		for _, origin := range c.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf("wildcard ALLOWED_ORIGINS is not permitted in production")
			}
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvList gets a comma-separated environment variable with a default value
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
