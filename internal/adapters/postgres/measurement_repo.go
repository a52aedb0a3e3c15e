package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/emissiond/emissiond/internal/core/domain"
	"github.com/emissiond/emissiond/internal/pkg/geospatial"
)

// MeasurementRepo implements ports.MeasurementRepository with pgx.
type MeasurementRepo struct {
	db *DB
}

// NewMeasurementRepo creates a new MeasurementRepo.
func NewMeasurementRepo(db *DB) *MeasurementRepo {
	return &MeasurementRepo{db: db}
}

// filter accumulates WHERE predicates with positional arguments so the
// area and time bounds can each be present or absent independently.
type filter struct {
	conds []string
	args  []any
}

// add appends one predicate; format receives the $n placeholders for vals.
func (f *filter) add(format string, vals ...any) {
	placeholders := make([]any, len(vals))
	for i := range vals {
		placeholders[i] = fmt.Sprintf("$%d", len(f.args)+i+1)
	}
	f.conds = append(f.conds, fmt.Sprintf(format, placeholders...))
	f.args = append(f.args, vals...)
}

func (f *filter) where() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}

// page appends LIMIT/OFFSET placeholders and their arguments.
func (f *filter) page(p domain.Page) string {
	var clause string
	if p.Limit != nil {
		f.args = append(f.args, *p.Limit)
		clause += fmt.Sprintf(" LIMIT $%d", len(f.args))
	}
	if p.Offset != nil {
		f.args = append(f.args, *p.Offset)
		clause += fmt.Sprintf(" OFFSET $%d", len(f.args))
	}
	return clause
}

func measurementFilter(area domain.Area, tr domain.TimeRange) *filter {
	f := &filter{}
	switch area.Kind {
	case domain.AreaRectangle:
		b := area.Box
		f.add("ST_Within(geom, ST_MakeEnvelope(%s, %s, %s, %s, 4326))",
			b.West, b.South, b.East, b.North)
	case domain.AreaPolygon:
		ring := make([][2]float64, len(area.Ring))
		for i, p := range area.Ring {
			ring[i] = [2]float64{p.Lon, p.Lat}
		}
		f.add("ST_Within(geom, ST_GeomFromText(%s, 4326))", geospatial.PolygonWKT(ring))
	}
	if tr.Begin != nil {
		f.add("timestamp >= %s", *tr.Begin)
	}
	if tr.End != nil {
		f.add("timestamp < %s", *tr.End)
	}
	return f
}

// Within returns the readings inside the area and time range.
func (r *MeasurementRepo) Within(ctx context.Context, area domain.Area, tr domain.TimeRange, page domain.Page) ([]domain.Measurement, error) {
	f := measurementFilter(area, tr)
	query := `
		SELECT value, timestamp,
		       ST_Y(geom) as lat,
		       ST_X(geom) as lon
		FROM carbonmonoxide` + f.where() + `
		ORDER BY timestamp` + f.page(page)

	rows, err := r.db.Pool.Query(ctx, query, f.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []domain.Measurement
	for rows.Next() {
		var m domain.Measurement
		if err := rows.Scan(&m.Value, &m.Time, &m.Location.Lat, &m.Location.Lon); err != nil {
			return nil, err
		}
		points = append(points, m)
	}
	return points, rows.Err()
}

// DailyAverages returns the per-day mean of readings inside the area.
func (r *MeasurementRepo) DailyAverages(ctx context.Context, area domain.Area, tr domain.TimeRange, page domain.Page) ([]domain.DailyAverage, error) {
	f := measurementFilter(area, tr)
	query := `
		SELECT AVG(value) as average,
		       MIN(timestamp) as first,
		       MAX(timestamp) as last,
		       to_char(timestamp::date, 'YYYY-MM-DD') as day
		FROM carbonmonoxide` + f.where() + `
		GROUP BY day
		ORDER BY day` + f.page(page)

	rows, err := r.db.Pool.Query(ctx, query, f.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []domain.DailyAverage
	for rows.Next() {
		var a domain.DailyAverage
		if err := rows.Scan(&a.Average, &a.Start, &a.End, &a.Day); err != nil {
			return nil, err
		}
		days = append(days, a)
	}
	return days, rows.Err()
}

// DailyStatistics returns per-day aggregates of readings inside the area.
// STDDEV is NULL for single-reading days and scans into a nil pointer.
func (r *MeasurementRepo) DailyStatistics(ctx context.Context, area domain.Area, tr domain.TimeRange, page domain.Page) ([]domain.DailyStatistic, error) {
	f := measurementFilter(area, tr)
	query := `
		SELECT COUNT(value) as count,
		       AVG(value) as average,
		       STDDEV(value) as stddev,
		       MIN(value) as min,
		       MAX(value) as max,
		       MIN(timestamp) as first,
		       MAX(timestamp) as last,
		       to_char(timestamp::date, 'YYYY-MM-DD') as day
		FROM carbonmonoxide` + f.where() + `
		GROUP BY day
		ORDER BY day` + f.page(page)

	rows, err := r.db.Pool.Query(ctx, query, f.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []domain.DailyStatistic
	for rows.Next() {
		var s domain.DailyStatistic
		if err := rows.Scan(
			&s.Value.Count, &s.Value.Average, &s.Value.StdDev,
			&s.Value.Min, &s.Value.Max,
			&s.Time.Start, &s.Time.End, &s.Time.Day,
		); err != nil {
			return nil, err
		}
		days = append(days, s)
	}
	return days, rows.Err()
}

// InsertBatch writes many readings using pgx.Batch.
func (r *MeasurementRepo) InsertBatch(ctx context.Context, points []domain.Measurement) error {
	batch := &pgx.Batch{}
	for _, m := range points {
		batch.Queue(`
			INSERT INTO carbonmonoxide (value, timestamp, geom)
			VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326))
		`, m.Value, m.Time, m.Location.Lon, m.Location.Lat)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range points {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// Count returns the total number of stored readings.
func (r *MeasurementRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM carbonmonoxide`).Scan(&n)
	return n, err
}
