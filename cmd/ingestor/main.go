package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	natsadapter "github.com/emissiond/emissiond/internal/adapters/nats"
	"github.com/emissiond/emissiond/internal/adapters/postgres"
	"github.com/emissiond/emissiond/internal/core/ports"
	"github.com/emissiond/emissiond/internal/core/usecases"
	"github.com/emissiond/emissiond/internal/ingest"
	"github.com/emissiond/emissiond/internal/pkg/config"
)

func main() {
	cfg, err := config.Load("emissiond-ingestor")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	// Import events drive cache invalidation in the API, so the one-shot
	// ingestor publishes them too. Missing NATS only disables announcements.
	var events ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		log.Printf("WARNING: nats unavailable, imports will not be announced: %v", err)
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

	// Catalog location: CLI arg, else config, else local default.
	catalogPath := cfg.Ingest.CatalogURL
	if len(os.Args) > 1 {
		catalogPath = os.Args[1]
	}
	if catalogPath == "" {
		catalogPath = "catalog.json"
	}

	// Optional filter (second CLI arg: comma-separated filenames)
	nameFilter := map[string]bool{}
	if len(os.Args) > 2 {
		for _, s := range strings.Split(os.Args[2], ",") {
			nameFilter[strings.TrimSpace(s)] = true
		}
	}

	client := &http.Client{Timeout: time.Duration(cfg.Ingest.DownloadTimeout) * time.Second}

	catalog, err := ingest.LoadCatalog(ctx, client, catalogPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	log.Printf("Emissions ingestor — %d products from %s", len(catalog.Products), catalog.Source)

	var imported, skipped, failed, points atomic.Int64

	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.Ingest.Concurrency)

	for _, product := range catalog.Products {
		if len(nameFilter) > 0 && !nameFilter[product.Filename] {
			continue
		}

		wg.Add(1)
		go func(p ingest.ProductEntry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			n, err := ingestProduct(ctx, client, imports, p, cfg.Ingest.QualityThreshold)
			switch {
			case err != nil:
				log.Printf("ERROR [%s]: %v", p.Filename, err)
				failed.Add(1)
			case n < 0:
				log.Printf("[%s] already imported, skipping", p.Filename)
				skipped.Add(1)
			default:
				log.Printf("[%s] imported %d points", p.Filename, n)
				imported.Add(1)
				points.Add(int64(n))
			}
		}(product)
	}

	wg.Wait()
	log.Printf("ingestion complete: %d imported (%d points), %d skipped, %d failed",
		imported.Load(), points.Load(), skipped.Load(), failed.Load())
}

// ingestProduct downloads, parses and stores one product file. It returns the
// number of points written, or -1 when the file was already on record.
func ingestProduct(ctx context.Context, client *http.Client, imports *usecases.ImportService, p ingest.ProductEntry, threshold float64) (int, error) {
	done, err := imports.IsImported(ctx, p.Filename)
	if err != nil {
		return 0, err
	}
	if done {
		return -1, nil
	}

	location := p.URL
	if location == "" {
		location = p.Filename
	}

	rc, err := ingest.Open(ctx, client, location)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	parsed, err := ingest.ParseProduct(rc, threshold)
	if err != nil {
		return 0, err
	}
	if parsed.Rejected > 0 || parsed.Skipped > 0 {
		log.Printf("[%s] quality filter dropped %d, malformed rows skipped %d",
			p.Filename, parsed.Rejected, parsed.Skipped)
	}

	return imports.ImportFile(ctx, p.Filename, parsed.Points)
}
