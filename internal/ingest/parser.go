package ingest

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/emissiond/emissiond/internal/core/domain"
)

// Columns every product file must carry.
var requiredColumns = []string{
	"longitude",
	"latitude",
	"carbonmonoxide_total_column",
	"qa_value",
	"timestamp",
}

// Result summarizes one parsed product file.
type Result struct {
	Points   []domain.Measurement
	Rejected int // below the quality threshold
	Skipped  int // malformed rows
}

// ParseProduct reads a gzipped CSV product file and returns the readings
// that pass the quality threshold. Malformed rows are skipped, a missing
// required column fails the whole file.
func ParseProduct(r io.Reader, qualityThreshold float64) (*Result, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	defer gz.Close()

	reader := csv.NewReader(gz)
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			continue
		}

		qa, err := strconv.ParseFloat(strings.TrimSpace(record[cols["qa_value"]]), 64)
		if err != nil {
			res.Skipped++
			continue
		}
		if qa < qualityThreshold {
			res.Rejected++
			continue
		}

		lon, errLon := strconv.ParseFloat(strings.TrimSpace(record[cols["longitude"]]), 64)
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(record[cols["latitude"]]), 64)
		value, errVal := strconv.ParseFloat(strings.TrimSpace(record[cols["carbonmonoxide_total_column"]]), 64)
		ts, errTS := time.Parse(time.RFC3339, strings.TrimSpace(record[cols["timestamp"]]))
		if errLon != nil || errLat != nil || errVal != nil || errTS != nil {
			res.Skipped++
			continue
		}

		res.Points = append(res.Points, domain.Measurement{
			Value:    value,
			Time:     ts,
			Location: domain.GeoPoint{Lat: lat, Lon: lon},
		})
	}

	return res, nil
}

func indexColumns(header []string) (map[string]int, error) {
	m := make(map[string]int, len(header))
	for i, col := range header {
		// Strip BOM from first column
		col = strings.TrimPrefix(col, "\xef\xbb\xbf")
		m[strings.TrimSpace(col)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := m[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return m, nil
}
