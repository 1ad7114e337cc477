package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Parse  ParseConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr          string
	GinMode           string
	MaxUploadBytes    int64
	ShutdownTimeout   time.Duration
	ValidateResponses bool
}

// ParseConfig holds parsing pipeline configuration
type ParseConfig struct {
	// MaxTextBytes caps raw text length before the regex table runs, which
	// bounds worst-case regex execution time on adversarial input.
	MaxTextBytes int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
			GinMode:           getEnv("GIN_MODE", "release"),
			MaxUploadBytes:    getEnvAsInt64("MAX_UPLOAD_BYTES", 10<<20),
			ShutdownTimeout:   getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
			ValidateResponses: getEnvAsBool("VALIDATE_RESPONSES", false),
		},
		Parse: ParseConfig{
			MaxTextBytes: getEnvAsInt("MAX_TEXT_BYTES", 512<<10),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Parse.MaxTextBytes <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_TEXT_BYTES must be positive", ErrInvalidInput)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_UPLOAD_BYTES must be positive", ErrInvalidInput)
	}
	return nil
}
