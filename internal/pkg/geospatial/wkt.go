package geospatial

import (
	"strconv"
	"strings"
)

// EnvelopeWKT renders a bounding box as a polygon WKT string with
// counter-clockwise vertices, first vertex repeated last.
func EnvelopeWKT(west, south, east, north float64) string {
	ring := [][2]float64{
		{west, south},
		{east, south},
		{east, north},
		{west, north},
	}
	return PolygonWKT(ring)
}

// PolygonWKT renders a ring of lon/lat pairs as a polygon WKT string.
// The ring is closed if the caller did not close it.
func PolygonWKT(ring [][2]float64) string {
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}

	var b strings.Builder
	b.WriteString("POLYGON((")
	for i, p := range ring {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(formatOrdinate(p[0]))
		b.WriteByte(' ')
		b.WriteString(formatOrdinate(p[1]))
	}
	b.WriteString("))")
	return b.String()
}

// formatOrdinate renders a coordinate without exponent notation, which
// WKT parsers reject.
func formatOrdinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
