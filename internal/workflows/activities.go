package workflows

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/emissiond/emissiond/internal/core/usecases"
	"github.com/emissiond/emissiond/internal/ingest"
	"github.com/emissiond/emissiond/internal/pkg/metrics"
)

// ImportActivities holds the activity implementations for the import workflow.
type ImportActivities struct {
	Imports          *usecases.ImportService
	Client           *http.Client
	QualityThreshold float64
}

// FetchCatalog downloads the product catalog and returns its entries.
func (a *ImportActivities) FetchCatalog(ctx context.Context, location string) ([]ProductRef, error) {
	catalog, err := ingest.LoadCatalog(ctx, a.Client, location)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", location, err)
	}
	refs := make([]ProductRef, 0, len(catalog.Products))
	for _, p := range catalog.Products {
		refs = append(refs, ProductRef{Filename: p.Filename, URL: p.URL})
	}
	return refs, nil
}

// ImportProduct downloads, parses and stores one product file. A file already
// on record is skipped without downloading it again.
func (a *ImportActivities) ImportProduct(ctx context.Context, ref ProductRef) (*ProductImport, error) {
	done, err := a.Imports.IsImported(ctx, ref.Filename)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", ref.Filename, err)
	}
	if done {
		return &ProductImport{Skipped: true}, nil
	}

	start := time.Now()

	rc, err := ingest.Open(ctx, a.Client, ref.URL)
	if err != nil {
		metrics.ImportErrors.Inc()
		return nil, fmt.Errorf("fetch %s: %w", ref.URL, err)
	}
	defer rc.Close()

	parsed, err := ingest.ParseProduct(rc, a.QualityThreshold)
	if err != nil {
		metrics.ImportErrors.Inc()
		return nil, fmt.Errorf("parse %s: %w", ref.Filename, err)
	}

	points, err := a.Imports.ImportFile(ctx, ref.Filename, parsed.Points)
	if err != nil {
		metrics.ImportErrors.Inc()
		return nil, fmt.Errorf("import %s: %w", ref.Filename, err)
	}
	if points == 0 && len(parsed.Points) > 0 {
		// Another worker recorded the file between the check and the write.
		return &ProductImport{Skipped: true}, nil
	}

	metrics.PointsImported.Add(float64(points))
	metrics.PointsRejected.Add(float64(parsed.Rejected))
	metrics.FilesImported.Inc()
	metrics.ImportDuration.Observe(time.Since(start).Seconds())

	return &ProductImport{Points: points}, nil
}
