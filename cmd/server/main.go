package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/fr0stylo/msgsink/internal/adapters/sqlite"
	appservices "github.com/fr0stylo/msgsink/internal/app/services"
	"github.com/fr0stylo/msgsink/internal/config"
	"github.com/fr0stylo/msgsink/internal/db"
	"github.com/fr0stylo/msgsink/internal/observability"
	"github.com/fr0stylo/msgsink/internal/server"
	"github.com/fr0stylo/msgsink/internal/server/routes"
)

const shutdownTimeout = 10 * time.Second

func Run() error {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := observability.NewLogger(os.Stdout, cfg.Logging.Level)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.SetupOpenTelemetry(ctx, log, observability.OpenTelemetryConfig{
		Enabled:           cfg.Observability.Enabled,
		OTLPEndpoint:      cfg.Observability.OTLPEndpoint,
		OTLPTraceHeaders:  cfg.Observability.OTLPTraceHeaders,
		OTLPMetricHeaders: cfg.Observability.OTLPMetricHeaders,
		ServiceName:       cfg.Observability.ServiceName,
		ServiceVer:        cfg.Observability.ServiceVer,
		SamplingRatio:     cfg.Observability.SamplingRatio,
		MetricsConsole:    cfg.Observability.MetricsConsole,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(ctx); err != nil {
			log.Error("Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	database, err := db.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	if cfg.Database.LogTiming {
		go logDBLatencyStats(ctx, log, database)
	}

	if !cfg.HasWebhookSecret() {
		log.Warn("WEBHOOK_SECRET not set, webhook ingestion and readiness will fail")
	}

	store := sqlite.NewMessageStore(database)
	metrics := observability.NewMetrics(db.NewLatencyCollector(database))

	srv := server.New(log, server.Options{
		ServiceName: cfg.Observability.ServiceName,
		Tracing:     cfg.Observability.Enabled,
		Metrics:     metrics,
	})
	srv.RegisterRouter(routes.NewWebhookRoutes(appservices.NewMessageIngestService(cfg.Webhook.Secret, store, metrics, log)))
	srv.RegisterRouter(routes.NewMessageRoutes(appservices.NewMessageReadService(store, log)))
	srv.RegisterRouter(routes.NewHealthRoutes(appservices.NewHealthService(cfg.HasWebhookSecret(), store, log)))
	srv.RegisterRouter(routes.NewMetricsRoutes(cfg.Metrics.Enabled, metrics.Handler()))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", "app", cfg.AppName, "port", cfg.Server.Port, "metrics", cfg.Metrics.Enabled)
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return <-errCh
}

func main() {
	if err := Run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func logDBLatencyStats(ctx context.Context, log *slog.Logger, database *db.Database) {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		stats := database.QueryLatencyStats()
		limit := min(5, len(stats))
		for index := 0; index < limit; index++ {
			entry := stats[index]
			log.Info("db_query_latency",
				"query", entry.Name,
				"calls", entry.Calls,
				"errors", entry.Errors,
				"p50_ms", entry.P50.Milliseconds(),
				"p95_ms", entry.P95.Milliseconds(),
				"max_ms", entry.Max.Milliseconds(),
			)
		}
	}
}
