package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/emissiond/emissiond/internal/adapters/nats"
	"github.com/emissiond/emissiond/internal/adapters/postgres"
	"github.com/emissiond/emissiond/internal/core/ports"
	"github.com/emissiond/emissiond/internal/core/usecases"
	"github.com/emissiond/emissiond/internal/pkg/config"
	"github.com/emissiond/emissiond/internal/pkg/logging"
	"github.com/emissiond/emissiond/internal/workflows"
)

const taskQueue = "import-queue"

func main() {
	runNow := flag.Bool("run", false, "start one import workflow immediately")
	every := flag.Duration("every", 0, "start an import workflow at this interval (0 disables)")
	flag.Parse()

	cfg, err := config.Load("emissiond-importworker")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.Setup(os.Getenv("LOG_LEVEL"), "json")
	logger := logging.Service("importworker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// NATS publisher for import events
	var events ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable, imports will not be announced", "error", err)
	} else {
		events = pub
		defer pub.Close()
	}

	imports := usecases.NewImportService(
		postgres.NewMeasurementRepo(db),
		postgres.NewFileRepo(db),
		events,
		cfg.Ingest.BatchSize,
	)

	// Connect to Temporal
	c, err := client.Dial(client.Options{
		HostPort: "localhost:7233",
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, taskQueue, worker.Options{})

	// Register workflow & activities
	w.RegisterWorkflow(workflows.ImportWorkflow)
	w.RegisterActivity(&workflows.ImportActivities{
		Imports:          imports,
		Client:           &http.Client{Timeout: time.Duration(cfg.Ingest.DownloadTimeout) * time.Second},
		QualityThreshold: cfg.Ingest.QualityThreshold,
	})

	if err := w.Start(); err != nil {
		log.Fatalf("worker: %v", err)
	}
	defer w.Stop()
	logger.Info("import worker started", "queue", taskQueue)

	if (*runNow || *every > 0) && cfg.Ingest.CatalogURL == "" {
		log.Fatal("ingest.catalog_url is required to schedule imports")
	}

	if *runNow {
		startImport(ctx, c, cfg.Ingest.CatalogURL, logger)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if *every > 0 {
		ticker := time.NewTicker(*every)
		defer ticker.Stop()
		logger.Info("scheduling imports", "every", every.String())

		for {
			select {
			case <-ticker.C:
				startImport(ctx, c, cfg.Ingest.CatalogURL, logger)
			case sig := <-quit:
				logger.Info("shutting down", "signal", sig.String())
				return
			}
		}
	}

	sig := <-quit
	logger.Info("shutting down", "signal", sig.String())
}

// startImport launches one ImportWorkflow run. The worker picks it up from
// the task queue, so a run survives this process restarting.
func startImport(ctx context.Context, c client.Client, catalogURL string, logger *slog.Logger) {
	opts := client.StartWorkflowOptions{
		ID:        "import-" + uuid.NewString(),
		TaskQueue: taskQueue,
	}

	run, err := c.ExecuteWorkflow(ctx, opts, workflows.ImportWorkflow, workflows.ImportInput{
		CatalogURL: catalogURL,
	})
	if err != nil {
		logger.Error("start import workflow", "error", err)
		return
	}
	logger.Info("import workflow started", "workflow_id", run.GetID(), "run_id", run.GetRunID())
}
