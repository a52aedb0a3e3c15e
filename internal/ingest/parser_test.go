package ingest_test

import (
	"bytes"
	"compress/gzip"
	"testing"
	"time"

	"github.com/emissiond/emissiond/internal/ingest"
)

func gzipCSV(t *testing.T, csv string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(csv)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return &buf
}

func TestParseProduct(t *testing.T) {
	buf := gzipCSV(t, `longitude,latitude,carbonmonoxide_total_column,qa_value,timestamp
17.5,43.2,0.031,0.97,2019-02-10T12:00:00Z
18.1,41.9,0.027,0.42,2019-02-10T12:01:00Z
19.3,42.7,0.029,0.81,2019-02-10T12:02:00Z
`)

	res, err := ingest.ParseProduct(buf, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(res.Points))
	}
	if res.Rejected != 1 {
		t.Errorf("expected 1 rejected row, got %d", res.Rejected)
	}

	p := res.Points[0]
	if p.Location.Lon != 17.5 || p.Location.Lat != 43.2 {
		t.Errorf("unexpected location: %+v", p.Location)
	}
	if p.Value != 0.031 {
		t.Errorf("expected value 0.031, got %g", p.Value)
	}
	want := time.Date(2019, 2, 10, 12, 0, 0, 0, time.UTC)
	if !p.Time.Equal(want) {
		t.Errorf("expected %v, got %v", want, p.Time)
	}
}

func TestParseProduct_ZeroThresholdKeepsAll(t *testing.T) {
	buf := gzipCSV(t, `longitude,latitude,carbonmonoxide_total_column,qa_value,timestamp
17.5,43.2,0.031,0.1,2019-02-10T12:00:00Z
`)

	res, err := ingest.ParseProduct(buf, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Points) != 1 || res.Rejected != 0 {
		t.Errorf("expected all rows kept, got %d points %d rejected", len(res.Points), res.Rejected)
	}
}

func TestParseProduct_SkipsMalformedRows(t *testing.T) {
	buf := gzipCSV(t, `longitude,latitude,carbonmonoxide_total_column,qa_value,timestamp
not-a-number,43.2,0.031,0.97,2019-02-10T12:00:00Z
17.5,43.2,0.031,0.97,not-a-time
17.5,43.2,0.031,0.97,2019-02-10T12:00:00Z
`)

	res, err := ingest.ParseProduct(buf, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Points) != 1 {
		t.Fatalf("expected 1 valid point, got %d", len(res.Points))
	}
	if res.Skipped != 2 {
		t.Errorf("expected 2 skipped rows, got %d", res.Skipped)
	}
}

func TestParseProduct_MissingColumn(t *testing.T) {
	buf := gzipCSV(t, `longitude,latitude,qa_value,timestamp
17.5,43.2,0.97,2019-02-10T12:00:00Z
`)

	if _, err := ingest.ParseProduct(buf, 0.5); err == nil {
		t.Fatal("expected error for missing column")
	}
}

func TestParseProduct_NotGzip(t *testing.T) {
	if _, err := ingest.ParseProduct(bytes.NewBufferString("plain text"), 0.5); err == nil {
		t.Fatal("expected error for non-gzip input")
	}
}
