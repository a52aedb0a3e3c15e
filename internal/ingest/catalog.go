package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Catalog lists the product files available upstream.
type Catalog struct {
	Source   string         `json:"source"`
	Products []ProductEntry `json:"products"`
}

// ProductEntry is one downloadable product file.
type ProductEntry struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size,omitempty"`
}

// Open returns the contents behind location, which is either a local path
// or an HTTP(S) URL. The caller closes the returned reader.
func Open(ctx context.Context, client *http.Client, location string) (io.ReadCloser, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w", location, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, location)
		}
		return resp.Body, nil
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", location, err)
	}
	return f, nil
}

// LoadCatalog reads and parses a product catalog.
func LoadCatalog(ctx context.Context, client *http.Client, location string) (*Catalog, error) {
	rc, err := Open(ctx, client, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &catalog, nil
}
