package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GautamArjun/packrat-demo/internal/api/router"
	"github.com/GautamArjun/packrat-demo/internal/app/bootstrap"
	appconfig "github.com/GautamArjun/packrat-demo/internal/config"
	httpmiddleware "github.com/GautamArjun/packrat-demo/internal/http/middleware"
	"github.com/GautamArjun/packrat-demo/internal/observability/metrics"
	"github.com/GautamArjun/packrat-demo/internal/webchat"
	"github.com/GautamArjun/packrat-demo/pkg/logging"
)

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting packrat booking API",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := bootstrap.BuildCatalog(cfg)
	if err != nil {
		logger.Error("invalid container sizing config", "error", err)
		os.Exit(1)
	}

	redisClient, err := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if err != nil {
		logger.Warn("transcript mirror disabled", "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	transcripts := bootstrap.BuildTranscriptStore(redisClient, cfg)

	metricsHandler, funnelMetrics := setupMetrics()
	registry := bootstrap.BuildRegistry(cfg, cat, transcripts, funnelMetrics, logger)
	go registry.Run(ctx, cfg.SessionSweepInterval)

	limiter := httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go evictRateLimitBuckets(ctx, limiter, 5*time.Minute)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        webchat.NewHandler(registry, cat, logger),
		RateLimiter:        limiter,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// No WriteTimeout: WebSocket streams stay open for the whole conversation.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped", "sessions", registry.Len())
	fmt.Println("Server exited gracefully")
}

func setupMetrics() (http.Handler, *metrics.FunnelMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewFunnelMetrics(reg)
}

func evictRateLimitBuckets(ctx context.Context, limiter *httpmiddleware.RateLimiter, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			limiter.Evict(now.Add(-every))
		}
	}
}
