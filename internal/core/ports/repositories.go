package ports

import (
	"context"
	"time"

	"github.com/emissiond/emissiond/internal/core/domain"
)

// MeasurementRepository persists carbon monoxide readings.
type MeasurementRepository interface {
	// Within returns the readings inside the area, newest first not
	// guaranteed; callers must not rely on ordering.
	Within(ctx context.Context, area domain.Area, tr domain.TimeRange, page domain.Page) ([]domain.Measurement, error)
	// DailyAverages returns per-day mean values for readings inside the area.
	DailyAverages(ctx context.Context, area domain.Area, tr domain.TimeRange, page domain.Page) ([]domain.DailyAverage, error)
	// DailyStatistics returns per-day aggregates for readings inside the area.
	DailyStatistics(ctx context.Context, area domain.Area, tr domain.TimeRange, page domain.Page) ([]domain.DailyStatistic, error)
	InsertBatch(ctx context.Context, points []domain.Measurement) error
	Count(ctx context.Context) (int64, error)
}

// FileRepository tracks imported product files.
type FileRepository interface {
	IsImported(ctx context.Context, filename string) (bool, error)
	Record(ctx context.Context, file *domain.ProductFile) error
	Stats(ctx context.Context) (files int64, lastImport *time.Time, err error)
}
