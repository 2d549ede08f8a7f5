package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("TYPING_DELAY_SCALE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("expected transcript mirror disabled by default, got %s", cfg.RedisAddr)
	}
	assert.Equal(t, 1.0, cfg.TypingDelayScale)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 15.0, cfg.SizeSmallMaxUnits)
	assert.Equal(t, 25.0, cfg.SizeMediumMaxUnits)
	assert.Equal(t, 40.0, cfg.SizeLargeMaxUnits)
	assert.Equal(t, 1.2, cfg.VolumeSafetyBuffer)
	assert.Equal(t, 250, cfg.TranscriptMaxMessages)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("TRANSCRIPT_MAX_MESSAGES", "50")
	t.Setenv("SESSION_IDLE_TIMEOUT", "5m")
	t.Setenv("TYPING_DELAY_SCALE", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SIZE_MEDIUM_MAX_UNITS", "22.5")
	t.Setenv("VOLUME_SAFETY_BUFFER", "1.5")
	t.Setenv("STARTUP_RETRY_MAX_ELAPSED", "2s")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.True(t, cfg.RedisTLS)
	assert.Equal(t, 50, cfg.TranscriptMaxMessages)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, 0.0, cfg.TypingDelayScale)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 22.5, cfg.SizeMediumMaxUnits)
	assert.Equal(t, 1.5, cfg.VolumeSafetyBuffer)
	assert.Equal(t, 2*time.Second, cfg.StartupRetryMaxElapsed)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("TRANSCRIPT_MAX_MESSAGES", "lots")
	t.Setenv("TYPING_DELAY_SCALE", "fast")
	t.Setenv("SESSION_SWEEP_INTERVAL", "often")
	cfg := Load()
	assert.Equal(t, 250, cfg.TranscriptMaxMessages)
	assert.Equal(t, 1.0, cfg.TypingDelayScale)
	assert.Equal(t, time.Minute, cfg.SessionSweepInterval)
}
