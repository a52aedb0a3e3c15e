package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/emissiond/emissiond/internal/core/domain"
	"github.com/emissiond/emissiond/internal/core/ports"
)

// ImportService writes product files into the store and records them so a
// file is never imported twice.
type ImportService struct {
	measurements ports.MeasurementRepository
	files        ports.FileRepository
	events       ports.EventPublisher
	batchSize    int
}

// NewImportService creates a new ImportService. events may be nil when no
// broker is available; imports then complete without announcement.
func NewImportService(measurements ports.MeasurementRepository, files ports.FileRepository, events ports.EventPublisher, batchSize int) *ImportService {
	if batchSize <= 0 {
		batchSize = 5000
	}
	return &ImportService{
		measurements: measurements,
		files:        files,
		events:       events,
		batchSize:    batchSize,
	}
}

// ImportFile stores the readings of one product file, records the file and
// publishes a completion event. A file already recorded is skipped and
// reports zero points.
func (s *ImportService) ImportFile(ctx context.Context, filename string, points []domain.Measurement) (int, error) {
	done, err := s.files.IsImported(ctx, filename)
	if err != nil {
		return 0, fmt.Errorf("check %s: %w", filename, err)
	}
	if done {
		return 0, nil
	}

	for start := 0; start < len(points); start += s.batchSize {
		end := start + s.batchSize
		if end > len(points) {
			end = len(points)
		}
		if err := s.measurements.InsertBatch(ctx, points[start:end]); err != nil {
			return 0, fmt.Errorf("insert %s: %w", filename, err)
		}
	}

	now := time.Now().UTC()
	file := &domain.ProductFile{Filename: filename, Points: len(points), ImportedAt: now}
	if err := s.files.Record(ctx, file); err != nil {
		return 0, fmt.Errorf("record %s: %w", filename, err)
	}

	// The import is committed at this point; event delivery is best effort.
	if s.events != nil {
		event := &domain.ImportEvent{File: filename, Points: len(points), Completed: now}
		_ = s.events.PublishImportEvent(ctx, event)
	}

	return len(points), nil
}

// IsImported reports whether the product file was already imported.
func (s *ImportService) IsImported(ctx context.Context, filename string) (bool, error) {
	return s.files.IsImported(ctx, filename)
}

// Status summarizes the measurement store.
func (s *ImportService) Status(ctx context.Context) (*domain.StoreStats, error) {
	points, err := s.measurements.Count(ctx)
	if err != nil {
		return nil, err
	}
	files, last, err := s.files.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.StoreStats{Points: points, Files: files, LastImport: last}, nil
}
