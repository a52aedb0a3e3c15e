package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/emissiond/emissiond/internal/core/domain"
)

// parseArea resolves the spatial selector of a request. geoframe, country
// and polygon are mutually exclusive; none of them selects all points.
func parseArea(c *fiber.Ctx) (domain.Area, error) {
	return areaFromParams(c.Query("geoframe"), c.Query("country"), c.Query("polygon"))
}

// areaFromParams is the transport-independent half of parseArea, shared
// with the GraphQL resolvers.
func areaFromParams(geoframe, country, polygon string) (domain.Area, error) {
	given := 0
	for _, v := range []string{geoframe, country, polygon} {
		if v != "" {
			given++
		}
	}
	if given > 1 {
		return domain.Area{}, fmt.Errorf("geoframe, country and polygon are mutually exclusive")
	}

	switch {
	case geoframe != "":
		vals, err := splitFloats(geoframe)
		if err != nil {
			return domain.Area{}, fmt.Errorf("geoframe: %w", err)
		}
		if len(vals) != 4 {
			return domain.Area{}, fmt.Errorf("geoframe: want 4 values lon1,lat1,lon2,lat2, got %d", len(vals))
		}
		return domain.RectangleArea(domain.NewBoundingBox(vals[0], vals[1], vals[2], vals[3])), nil

	case country != "":
		cb, ok := domain.CountryBoxByCode(country)
		if !ok {
			return domain.Area{}, fmt.Errorf("unknown country code %q", country)
		}
		return domain.RectangleArea(cb.Box), nil

	case polygon != "":
		vals, err := splitFloats(polygon)
		if err != nil {
			return domain.Area{}, fmt.Errorf("polygon: %w", err)
		}
		if len(vals)%2 != 0 {
			return domain.Area{}, fmt.Errorf("polygon: want lon,lat pairs, got %d values", len(vals))
		}
		if len(vals) < 6 {
			return domain.Area{}, fmt.Errorf("polygon: want at least 3 vertices, got %d", len(vals)/2)
		}
		ring := make([]domain.GeoPoint, 0, len(vals)/2)
		for i := 0; i < len(vals); i += 2 {
			ring = append(ring, domain.GeoPoint{Lon: vals[i], Lat: vals[i+1]})
		}
		return domain.PolygonArea(ring), nil
	}

	return domain.UnrestrictedArea(), nil
}

// splitFloats parses a comma-separated list of floats.
func splitFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", p)
		}
		vals = append(vals, f)
	}
	return vals, nil
}

// parseTimeRange reads the optional begin and end bounds.
func parseTimeRange(c *fiber.Ctx) (domain.TimeRange, error) {
	var tr domain.TimeRange
	if v := c.Query("begin"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			return tr, fmt.Errorf("begin: %w", err)
		}
		tr.Begin = &t
	}
	if v := c.Query("end"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			return tr, fmt.Errorf("end: %w", err)
		}
		tr.End = &t
	}
	return tr, nil
}

// parseTime accepts RFC 3339 timestamps and bare dates. A bare date means
// midnight UTC of that day.
func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a timestamp, want RFC 3339 or YYYY-MM-DD", s)
}

// parsePage reads the optional limit and offset. A malformed value is a
// client error, not a silent default.
func parsePage(c *fiber.Ctx) (domain.Page, error) {
	var p domain.Page
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, fmt.Errorf("limit must be a non-negative integer, got %q", v)
		}
		p.Limit = &n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return p, fmt.Errorf("offset must be a non-negative integer, got %q", v)
		}
		p.Offset = &n
	}
	return p, nil
}
