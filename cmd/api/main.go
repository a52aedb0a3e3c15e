package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/emissiond/emissiond/internal/adapters/http"
	natsadapter "github.com/emissiond/emissiond/internal/adapters/nats"
	"github.com/emissiond/emissiond/internal/adapters/postgres"
	"github.com/emissiond/emissiond/internal/adapters/valkey"
	"github.com/emissiond/emissiond/internal/core/domain"
	"github.com/emissiond/emissiond/internal/core/ports"
	"github.com/emissiond/emissiond/internal/core/usecases"
	"github.com/emissiond/emissiond/internal/pkg/config"
	"github.com/emissiond/emissiond/internal/pkg/logging"
	"github.com/emissiond/emissiond/internal/pkg/metrics"
	"github.com/emissiond/emissiond/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("emissiond-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Cache. The API keeps serving from the database when Valkey is down, so
	// the interface stays nil on failure instead of wrapping a nil pointer.
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable, responses are uncached", "error", err)
	} else {
		cacheSvc = cache
		defer cache.Close()
	}

	// NATS publisher for import events
	var events ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		events = pub
		defer pub.Close()
	}

	// Raw NATS connection for the WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Repos
	measurementRepo := postgres.NewMeasurementRepo(db)
	fileRepo := postgres.NewFileRepo(db)

	// Use cases
	measurementSvc := usecases.NewMeasurementService(measurementRepo, cacheSvc, cfg.Cache.TTLSeconds)
	statisticsSvc := usecases.NewStatisticsService(measurementRepo, cacheSvc, cfg.Cache.TTLSeconds)
	importSvc := usecases.NewImportService(measurementRepo, fileRepo, events, cfg.Ingest.BatchSize)

	// Each completed import advances the cache epoch, so cached responses
	// never outlive the data they were built from.
	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		slog.Warn("import event subscription unavailable", "error", err)
	} else {
		defer sub.Close()
		err := sub.SubscribeImportEvents(ctx, func(ctx context.Context, event *domain.ImportEvent) error {
			slog.Info("import completed, invalidating cache", "file", event.File, "points", event.Points)
			return measurementSvc.InvalidateCache(ctx)
		})
		if err != nil {
			slog.Warn("subscribe import events", "error", err)
		}
	}

	// Database pool gauges
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.UpdateDBPoolMetrics(db.Pool.Stat())
			case <-ctx.Done():
				return
			}
		}
	}()

	deps := &http.Dependencies{
		Measurements: measurementSvc,
		Statistics:   statisticsSvc,
		Imports:      importSvc,
		NATS:         natsConn,
		DB:           db,
		Cache:        cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Emissions API",
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
