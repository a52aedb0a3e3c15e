package ingest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/emissiond/emissiond/internal/ingest"
)

const catalogJSON = `{
	"source": "sentinel-5p",
	"products": [
		{"filename": "S5P_OFFL_L2__CO_____20190210.csv.gz", "url": "https://example.org/20190210.csv.gz"},
		{"filename": "S5P_OFFL_L2__CO_____20190211.csv.gz", "url": "https://example.org/20190211.csv.gz"}
	]
}`

func TestLoadCatalog_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(catalogJSON), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	catalog, err := ingest.LoadCatalog(context.Background(), http.DefaultClient, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog.Source != "sentinel-5p" {
		t.Errorf("expected source sentinel-5p, got %s", catalog.Source)
	}
	if len(catalog.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(catalog.Products))
	}
	if catalog.Products[0].Filename != "S5P_OFFL_L2__CO_____20190210.csv.gz" {
		t.Errorf("unexpected filename: %s", catalog.Products[0].Filename)
	}
}

func TestLoadCatalog_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	catalog, err := ingest.LoadCatalog(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(catalog.Products))
	}
}

func TestLoadCatalog_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := ingest.LoadCatalog(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("expected error for HTTP 404")
	}
}

func TestLoadCatalog_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	if _, err := ingest.LoadCatalog(context.Background(), http.DefaultClient, path); err == nil {
		t.Fatal("expected error for malformed catalog")
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := ingest.Open(context.Background(), http.DefaultClient, filepath.Join(t.TempDir(), "absent.csv.gz")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
