package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// ImportInput is the input for the import workflow.
type ImportInput struct {
	CatalogURL string
}

// ProductRef identifies one catalog entry an activity can download.
type ProductRef struct {
	Filename string
	URL      string
}

// ProductImport reports what one ImportProduct activity did.
type ProductImport struct {
	Points  int
	Skipped bool
}

// ImportResult summarizes one workflow run.
type ImportResult struct {
	Imported int
	Points   int
	Skipped  int
	Failed   int
}

// ImportWorkflow fetches the product catalog and imports every file that is
// not yet on record. A file that keeps failing after retries is counted and
// skipped so one broken product cannot stall the rest of the catalog.
func ImportWorkflow(ctx workflow.Context, input ImportInput) (*ImportResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting import workflow", "catalog", input.CatalogURL)

	catalogCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	})

	// Step 1: list the catalog
	var products []ProductRef
	if err := workflow.ExecuteActivity(catalogCtx, "FetchCatalog", input.CatalogURL).Get(ctx, &products); err != nil {
		return nil, err
	}

	// Step 2: import each product. A single activity downloads, parses and
	// inserts a whole file, so it gets a longer deadline than the catalog fetch.
	importCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	})

	result := &ImportResult{}
	for _, product := range products {
		var outcome ProductImport
		err := workflow.ExecuteActivity(importCtx, "ImportProduct", product).Get(ctx, &outcome)
		if err != nil {
			logger.Warn("product import failed", "file", product.Filename, "error", err)
			result.Failed++
			continue
		}
		if outcome.Skipped {
			result.Skipped++
			continue
		}
		result.Imported++
		result.Points += outcome.Points
	}

	logger.Info("Import workflow finished",
		"imported", result.Imported,
		"points", result.Points,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}
