package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"

	"github.com/GautamArjun/packrat-demo/internal/catalog"
	appconfig "github.com/GautamArjun/packrat-demo/internal/config"
	"github.com/GautamArjun/packrat-demo/internal/conversation"
	"github.com/GautamArjun/packrat-demo/internal/observability/metrics"
	"github.com/GautamArjun/packrat-demo/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true the server is pinged with exponential backoff until
// StartupRetryMaxElapsed; if it never answers the client is closed and an
// error is returned.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) (*redis.Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client, nil
	}

	var policy backoff.BackOff = &backoff.StopBackOff{}
	if cfg.StartupRetryMaxElapsed > 0 {
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = 200 * time.Millisecond
		exp.MaxInterval = 5 * time.Second
		exp.MaxElapsedTime = cfg.StartupRetryMaxElapsed
		policy = exp
	}

	err := backoff.RetryNotify(
		func() error {
			return client.Ping(ctx).Err()
		},
		backoff.WithContext(policy, ctx),
		func(err error, next time.Duration) {
			logger.Warn("redis not reachable, retrying", "addr", cfg.RedisAddr, "error", err, "next_attempt_in", next)
		},
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("bootstrap: redis %s unreachable: %w", cfg.RedisAddr, err)
	}
	return client, nil
}

// BuildTranscriptStore returns the Redis transcript mirror, or nil without Redis.
func BuildTranscriptStore(redisClient *redis.Client, cfg *appconfig.Config) *conversation.TranscriptStore {
	if redisClient == nil || cfg == nil {
		return nil
	}
	return conversation.NewTranscriptStore(redisClient, int64(cfg.TranscriptMaxMessages), cfg.TranscriptTTL)
}

// BuildCatalog builds the container catalog from the configured capacities.
func BuildCatalog(cfg *appconfig.Config) (*catalog.Catalog, error) {
	if cfg == nil {
		return catalog.Default(), nil
	}
	c, err := catalog.New(catalog.Thresholds{
		SmallMaxUnits:  cfg.SizeSmallMaxUnits,
		MediumMaxUnits: cfg.SizeMediumMaxUnits,
		LargeMaxUnits:  cfg.SizeLargeMaxUnits,
		VolumeBuffer:   cfg.VolumeSafetyBuffer,
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: catalog: %w", err)
	}
	return c, nil
}

// BuildRegistry wires the session registry.
func BuildRegistry(cfg *appconfig.Config, cat *catalog.Catalog, transcripts *conversation.TranscriptStore, m *metrics.FunnelMetrics, logger *logging.Logger) *conversation.Registry {
	if cat == nil {
		cat = catalog.Default()
	}
	rc := conversation.RegistryConfig{
		Machine:     conversation.Options{Catalog: cat},
		Transcripts: transcripts,
		Logger:      logger,
		Metrics:     m,
	}
	if cfg != nil {
		rc.Pacer = conversation.NewPacer(cfg.TypingDelayScale)
		rc.IdleTimeout = cfg.SessionIdleTimeout
	}
	return conversation.NewRegistry(rc)
}
