package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	RedisAddr             string
	RedisPassword         string
	RedisTLS              bool
	TranscriptMaxMessages int
	TranscriptTTL         time.Duration

	SessionIdleTimeout   time.Duration
	SessionSweepInterval time.Duration
	TypingDelayScale     float64
	CORSAllowedOrigins   []string
	RateLimitRPS         float64
	RateLimitBurst       int

	// Container sizing
	SizeSmallMaxUnits  float64
	SizeMediumMaxUnits float64
	SizeLargeMaxUnits  float64
	VolumeSafetyBuffer float64

	StartupRetryMaxElapsed time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		RedisAddr:             getEnv("REDIS_ADDR", ""),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		RedisTLS:              getEnvAsBool("REDIS_TLS", false),
		TranscriptMaxMessages: getEnvAsInt("TRANSCRIPT_MAX_MESSAGES", 250),
		TranscriptTTL:         getEnvAsDuration("TRANSCRIPT_TTL", 24*time.Hour),

		SessionIdleTimeout:   getEnvAsDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		SessionSweepInterval: getEnvAsDuration("SESSION_SWEEP_INTERVAL", time.Minute),
		TypingDelayScale:     getEnvAsFloat("TYPING_DELAY_SCALE", 1),
		CORSAllowedOrigins:   getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRPS:         getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:       getEnvAsInt("RATE_LIMIT_BURST", 20),

		SizeSmallMaxUnits:  getEnvAsFloat("SIZE_SMALL_MAX_UNITS", 15),
		SizeMediumMaxUnits: getEnvAsFloat("SIZE_MEDIUM_MAX_UNITS", 25),
		SizeLargeMaxUnits:  getEnvAsFloat("SIZE_LARGE_MAX_UNITS", 40),
		VolumeSafetyBuffer: getEnvAsFloat("VOLUME_SAFETY_BUFFER", 1.2),

		StartupRetryMaxElapsed: getEnvAsDuration("STARTUP_RETRY_MAX_ELAPSED", 30*time.Second),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
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

// getEnvAsList splits a comma separated variable, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
