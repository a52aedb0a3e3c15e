package domain

import (
	"time"
)

// GeoJSON type literals, fixed by RFC 7946.
const (
	TypeFeatureCollection = "FeatureCollection"
	TypeFeature           = "Feature"
	TypePoint             = "Point"
)

// PointGeometry is a GeoJSON point. Coordinates are [longitude, latitude].
type PointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// FeatureProperties carries the reading attached to a feature.
type FeatureProperties struct {
	Carbonmonoxide float64   `json:"carbonmonoxide"`
	Timestamp      time.Time `json:"timestamp"`
}

// Feature is a GeoJSON feature wrapping a single measurement.
type Feature struct {
	Type       string            `json:"type"`
	Geometry   PointGeometry     `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

// FeatureCollection is the GeoJSON document served by the geo endpoint.
// Features is always non-nil so an empty result serializes as [].
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// NewFeature wraps a measurement as a GeoJSON feature.
func NewFeature(m Measurement) Feature {
	return Feature{
		Type: TypeFeature,
		Geometry: PointGeometry{
			Type:        TypePoint,
			Coordinates: [2]float64{m.Location.Lon, m.Location.Lat},
		},
		Properties: FeatureProperties{
			Carbonmonoxide: m.Value,
			Timestamp:      m.Time,
		},
	}
}

// NewFeatureCollection wraps measurements as a GeoJSON feature collection.
func NewFeatureCollection(points []Measurement) FeatureCollection {
	features := make([]Feature, 0, len(points))
	for _, m := range points {
		features = append(features, NewFeature(m))
	}
	return FeatureCollection{Type: TypeFeatureCollection, Features: features}
}
