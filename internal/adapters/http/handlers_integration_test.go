//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emissiond/emissiond/internal/adapters/http"
	"github.com/emissiond/emissiond/internal/adapters/postgres"
	"github.com/emissiond/emissiond/internal/core/domain"
	"github.com/emissiond/emissiond/internal/core/usecases"
	"github.com/emissiond/emissiond/internal/pkg/config"
)

// Seeded values sit far out in the Pacific so real imports never collide
// with the assertions.
const (
	testLon = -171.0
	testLat = -44.0
)

// setupTestDB connects to the test database and returns a clean DB instance.
func setupTestDB(t *testing.T) *postgres.DB {
	cfg, err := config.Load("emissiond-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}

	db := &postgres.DB{Pool: pool}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping db: %v", err)
	}

	return db
}

// setupTestDeps creates dependencies with real DB and repos, no cache.
func setupTestDeps(t *testing.T, db *postgres.DB) *http.Dependencies {
	measurementRepo := postgres.NewMeasurementRepo(db)
	fileRepo := postgres.NewFileRepo(db)

	return &http.Dependencies{
		Measurements: usecases.NewMeasurementService(measurementRepo, nil, 0),
		Statistics:   usecases.NewStatisticsService(measurementRepo, nil, 0),
		Imports:      usecases.NewImportService(measurementRepo, fileRepo, nil, 0),
		DB:           db,
	}
}

// seedMeasurements inserts readings through the repository and removes them
// again when the test finishes.
func seedMeasurements(t *testing.T, db *postgres.DB, points []domain.Measurement) {
	t.Helper()
	ctx := context.Background()

	repo := postgres.NewMeasurementRepo(db)
	if err := repo.InsertBatch(ctx, points); err != nil {
		t.Fatalf("seed measurements: %v", err)
	}

	t.Cleanup(func() {
		_, err := db.Pool.Exec(context.Background(),
			`DELETE FROM carbonmonoxide WHERE ST_X(geom) BETWEEN $1 AND $2 AND ST_Y(geom) BETWEEN $3 AND $4`,
			testLon-1.0, testLon+1.0, testLat-1.0, testLat+1.0)
		if err != nil {
			t.Errorf("cleanup measurements: %v", err)
		}
	})
}

// TestGeoJSON_Integration_WithinFrame runs the geoframe filter against a
// real PostGIS instance.
func TestGeoJSON_Integration_WithinFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	ts := time.Date(2019, 2, 10, 12, 0, 0, 0, time.UTC)
	seedMeasurements(t, db, []domain.Measurement{
		{Value: 0.021, Time: ts, Location: domain.GeoPoint{Lon: testLon, Lat: testLat}},
		{Value: 0.022, Time: ts, Location: domain.GeoPoint{Lon: testLon + 0.2, Lat: testLat + 0.2}},
		// Outside the queried frame
		{Value: 0.023, Time: ts, Location: domain.GeoPoint{Lon: testLon + 0.9, Lat: testLat + 0.9}},
	})

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	// Frame covers the first two points only
	frame := "-171.1,-44.1,-170.7,-43.7"
	req := httptest.NewRequest("GET", "/api/v1/geo.json/?geoframe="+frame, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Coordinates [2]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(fc.Features) != 2 {
		t.Fatalf("expected 2 features inside frame, got %d", len(fc.Features))
	}
	for _, f := range fc.Features {
		lon, lat := f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]
		if lon < -171.1 || lon > -170.7 || lat < -44.1 || lat > -43.7 {
			t.Errorf("feature at (%g, %g) outside requested frame", lon, lat)
		}
	}
}

// TestStatistics_Integration_DailyGrouping checks SQL day grouping and the
// null standard deviation for single-reading days.
func TestStatistics_Integration_DailyGrouping(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	day1 := time.Date(2019, 3, 1, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2019, 3, 2, 9, 0, 0, 0, time.UTC)
	seedMeasurements(t, db, []domain.Measurement{
		{Value: 0.020, Time: day1, Location: domain.GeoPoint{Lon: testLon, Lat: testLat}},
		{Value: 0.040, Time: day1.Add(2 * time.Hour), Location: domain.GeoPoint{Lon: testLon, Lat: testLat}},
		{Value: 0.030, Time: day2, Location: domain.GeoPoint{Lon: testLon, Lat: testLat}},
	})

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	frame := "-171.1,-44.1,-170.9,-43.9"
	req := httptest.NewRequest("GET", "/api/v1/statistics.json/?geoframe="+frame, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var stats []domain.DailyStatistic
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(stats) != 2 {
		t.Fatalf("expected 2 days, got %d", len(stats))
	}
	first := stats[0]
	if first.Time.Day != "2019-03-01" || first.Value.Count != 2 {
		t.Errorf("unexpected first day %+v", first)
	}
	if first.Value.StdDev == nil {
		t.Error("expected standard deviation for a two-reading day")
	}
	second := stats[1]
	if second.Value.Count != 1 || second.Value.StdDev != nil {
		t.Errorf("expected single reading with null stddev, got %+v", second.Value)
	}
}

// TestDataStatus_Integration checks the status counters against the live store.
func TestDataStatus_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	seedMeasurements(t, db, []domain.Measurement{
		{Value: 0.025, Time: time.Now().UTC(), Location: domain.GeoPoint{Lon: testLon, Lat: testLat}},
	})

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/api/v1/data/status", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var status domain.StoreStats
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if status.Points < 1 {
		t.Errorf("expected at least 1 stored point, got %d", status.Points)
	}
}
