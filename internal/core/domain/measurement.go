package domain

import (
	"time"
)

// Measurement is a single carbon monoxide reading at a geographic point.
type Measurement struct {
	Value    float64   `json:"value"`
	Time     time.Time `json:"timestamp"`
	Location GeoPoint  `json:"location"`
}

// DailyAverage is the mean of all readings that fall on one day.
// Start and End are the first and last reading times of that day.
type DailyAverage struct {
	Average float64   `json:"average"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Day     string    `json:"day"`
}

// ValueStatistics aggregates the reading values of one day.
// StdDev is nil when the day holds a single reading.
type ValueStatistics struct {
	Count   int64    `json:"count"`
	Average float64  `json:"average"`
	StdDev  *float64 `json:"standard deviation"`
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
}

// TimeStatistics describes the time span the aggregated readings cover.
type TimeStatistics struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Day   string    `json:"day"`
}

// DailyStatistic is the per-day aggregate served by the statistics endpoint.
type DailyStatistic struct {
	Value ValueStatistics `json:"value"`
	Time  TimeStatistics  `json:"time"`
}

// ProductFile records an imported upstream product file. A recorded
// filename is never imported twice.
type ProductFile struct {
	Filename   string    `json:"filename"`
	Points     int       `json:"points"`
	ImportedAt time.Time `json:"imported_at"`
}

// ImportEvent announces a completed product import.
type ImportEvent struct {
	File      string    `json:"file"`
	Points    int       `json:"points"`
	Completed time.Time `json:"completed"`
}

// StoreStats summarizes the measurement store for the status endpoint.
type StoreStats struct {
	Points     int64      `json:"points"`
	Files      int64      `json:"files"`
	LastImport *time.Time `json:"last_import,omitempty"`
}

// TimeRange restricts a query to Begin <= t < End. Either bound may be nil.
type TimeRange struct {
	Begin *time.Time
	End   *time.Time
}

// Page is an optional limit/offset passthrough for read queries.
type Page struct {
	Limit  *int
	Offset *int
}
