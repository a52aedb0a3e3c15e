package geospatial_test

import (
	"testing"

	"github.com/emissiond/emissiond/internal/pkg/geospatial"
)

func TestEnvelopeWKT(t *testing.T) {
	got := geospatial.EnvelopeWKT(15, 40, 20, 45)
	want := "POLYGON((15 40,20 40,20 45,15 45,15 40))"
	if got != want {
		t.Errorf("EnvelopeWKT = %q, want %q", got, want)
	}
}

func TestPolygonWKTClosesOpenRing(t *testing.T) {
	got := geospatial.PolygonWKT([][2]float64{{0, 0}, {10, 0}, {10, 10}})
	want := "POLYGON((0 0,10 0,10 10,0 0))"
	if got != want {
		t.Errorf("PolygonWKT = %q, want %q", got, want)
	}
}

func TestPolygonWKTKeepsPrecision(t *testing.T) {
	got := geospatial.PolygonWKT([][2]float64{
		{15.096772, 44.516739},
		{16.5, 44.516739},
		{16.5, 45},
		{15.096772, 44.516739},
	})
	want := "POLYGON((15.096772 44.516739,16.5 44.516739,16.5 45,15.096772 44.516739))"
	if got != want {
		t.Errorf("PolygonWKT = %q, want %q", got, want)
	}
}
