package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/emissiond/emissiond/internal/core/domain"
	"github.com/emissiond/emissiond/internal/core/usecases"
)

// --- Mock FileRepository ---

type mockFileRepo struct {
	isImportedFn func(ctx context.Context, filename string) (bool, error)
	recordFn     func(ctx context.Context, file *domain.ProductFile) error
	statsFn      func(ctx context.Context) (int64, *time.Time, error)
}

func (m *mockFileRepo) IsImported(ctx context.Context, filename string) (bool, error) {
	if m.isImportedFn != nil {
		return m.isImportedFn(ctx, filename)
	}
	return false, nil
}

func (m *mockFileRepo) Record(ctx context.Context, file *domain.ProductFile) error {
	if m.recordFn != nil {
		return m.recordFn(ctx, file)
	}
	return nil
}

func (m *mockFileRepo) Stats(ctx context.Context) (int64, *time.Time, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return 0, nil, nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	publishFn func(ctx context.Context, event *domain.ImportEvent) error
}

func (m *mockPublisher) PublishImportEvent(ctx context.Context, event *domain.ImportEvent) error {
	if m.publishFn != nil {
		return m.publishFn(ctx, event)
	}
	return nil
}

// --- Tests ---

func makePoints(n int) []domain.Measurement {
	points := make([]domain.Measurement, n)
	for i := range points {
		points[i] = domain.Measurement{
			Value:    0.02,
			Time:     time.Date(2019, 2, 10, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
			Location: domain.GeoPoint{Lat: 40, Lon: 10},
		}
	}
	return points
}

func TestImportService_ImportFile(t *testing.T) {
	var batches [][]domain.Measurement
	repo := &mockMeasurementRepo{
		insertBatchFn: func(ctx context.Context, points []domain.Measurement) error {
			batches = append(batches, points)
			return nil
		},
	}

	var recorded *domain.ProductFile
	files := &mockFileRepo{
		recordFn: func(ctx context.Context, file *domain.ProductFile) error {
			recorded = file
			return nil
		},
	}

	var published *domain.ImportEvent
	events := &mockPublisher{
		publishFn: func(ctx context.Context, event *domain.ImportEvent) error {
			published = event
			return nil
		},
	}

	svc := usecases.NewImportService(repo, files, events, 2)

	n, err := svc.ImportFile(context.Background(), "S5P_OFFL_L2__CO_____20190210.nc", makePoints(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 {
		t.Errorf("expected 5 points imported, got %d", n)
	}
	if len(batches) != 3 {
		t.Errorf("expected 3 batches of size 2, got %d", len(batches))
	}
	if recorded == nil || recorded.Points != 5 {
		t.Fatalf("file not recorded correctly: %+v", recorded)
	}
	if published == nil || published.File != "S5P_OFFL_L2__CO_____20190210.nc" {
		t.Fatalf("event not published correctly: %+v", published)
	}
}

func TestImportService_ImportFile_AlreadyImported(t *testing.T) {
	inserted := false
	repo := &mockMeasurementRepo{
		insertBatchFn: func(ctx context.Context, points []domain.Measurement) error {
			inserted = true
			return nil
		},
	}
	files := &mockFileRepo{
		isImportedFn: func(ctx context.Context, filename string) (bool, error) {
			return true, nil
		},
	}
	publishCalled := false
	events := &mockPublisher{
		publishFn: func(ctx context.Context, event *domain.ImportEvent) error {
			publishCalled = true
			return nil
		},
	}

	svc := usecases.NewImportService(repo, files, events, 0)

	n, err := svc.ImportFile(context.Background(), "already.nc", makePoints(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 points for a duplicate file, got %d", n)
	}
	if inserted {
		t.Error("duplicate file must not be inserted again")
	}
	if publishCalled {
		t.Error("duplicate file must not publish an event")
	}
}

func TestImportService_ImportFile_EmptyFile(t *testing.T) {
	var recorded *domain.ProductFile
	files := &mockFileRepo{
		recordFn: func(ctx context.Context, file *domain.ProductFile) error {
			recorded = file
			return nil
		},
	}

	svc := usecases.NewImportService(&mockMeasurementRepo{}, files, nil, 0)

	n, err := svc.ImportFile(context.Background(), "empty.nc", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 points, got %d", n)
	}
	if recorded == nil || recorded.Points != 0 {
		t.Fatal("an empty file must still be recorded so it is not refetched")
	}
}

func TestImportService_Status(t *testing.T) {
	last := time.Date(2019, 2, 11, 8, 30, 0, 0, time.UTC)
	repo := &mockMeasurementRepo{
		countFn: func(ctx context.Context) (int64, error) { return 123456, nil },
	}
	files := &mockFileRepo{
		statsFn: func(ctx context.Context) (int64, *time.Time, error) { return 17, &last, nil },
	}

	svc := usecases.NewImportService(repo, files, nil, 0)

	stats, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Points != 123456 || stats.Files != 17 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.LastImport == nil || !stats.LastImport.Equal(last) {
		t.Errorf("unexpected last import: %v", stats.LastImport)
	}
}
