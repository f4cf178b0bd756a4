package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/review-router/internal/api/http"
	"github.com/spec-kit/review-router/internal/api/http/handlers"
	"github.com/spec-kit/review-router/internal/config"
	"github.com/spec-kit/review-router/internal/events"
	"github.com/spec-kit/review-router/internal/export"
	"github.com/spec-kit/review-router/internal/observability"
	"github.com/spec-kit/review-router/internal/persistence"
	"github.com/spec-kit/review-router/internal/service"
	"github.com/spec-kit/review-router/internal/webhook"
	"github.com/spec-kit/review-router/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	files := export.NewFileExporter(cfg.Export)
	mirror := export.NewLatestCache(redis.Client, cfg.Redis)
	client := webhook.NewClient(cfg.Webhook, logger)
	dispatcher := events.NewInMemoryDispatcher()

	ticketService := service.NewTicketService(service.TicketDependencies{
		Sender:     client,
		Exporter:   files,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	var latest service.LatestStore
	if mirror != nil {
		latest = mirror
	}
	worker.StartAuditWorker(service.NewAuditService(dispatcher, latest, logger))

	app := httptransport.NewApp(cfg.App.Name, cfg.App.BodyLimitBytes)
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, client.Endpoint(), files, redis),
		Tickets:   handlers.NewTicketsHandler(ticketService),
		Export:    handlers.NewExportHandler(files, mirror, logger),
		Form:      handlers.NewFormHandler(ticketService),
		Metrics:   metrics.Handler(),
		RateLimit: cfg.RateLimit,
	})

	logger.Info("starting review router",
		zap.String("addr", cfg.App.Addr()),
		zap.String("env", cfg.App.Env),
		zap.String("webhook", client.Endpoint()),
		zap.String("export", files.Path()))

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
