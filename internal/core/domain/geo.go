package domain

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox is a geographic rectangle, normalized so that West <= East
// and South <= North.
type BoundingBox struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// NewBoundingBox builds a normalized box from two opposite corners,
// in whichever order they were supplied.
func NewBoundingBox(lon1, lat1, lon2, lat2 float64) BoundingBox {
	b := BoundingBox{West: lon1, South: lat1, East: lon2, North: lat2}
	if b.West > b.East {
		b.West, b.East = b.East, b.West
	}
	if b.South > b.North {
		b.South, b.North = b.North, b.South
	}
	return b
}

// Contains reports whether the point lies inside the box, borders included.
func (b BoundingBox) Contains(p GeoPoint) bool {
	return p.Lon >= b.West && p.Lon <= b.East && p.Lat >= b.South && p.Lat <= b.North
}

// AreaKind discriminates the Area variants.
type AreaKind int

const (
	// AreaUnrestricted matches every stored point.
	AreaUnrestricted AreaKind = iota
	// AreaRectangle matches points inside a bounding box.
	AreaRectangle
	// AreaPolygon matches points inside a closed ring.
	AreaPolygon
)

// Area is the single spatial selector a read query carries. It is resolved
// once at the request boundary; a country code becomes an AreaRectangle
// there and never travels further.
type Area struct {
	Kind AreaKind
	Box  BoundingBox // set when Kind == AreaRectangle
	Ring []GeoPoint  // set when Kind == AreaPolygon, first vertex == last
}

// UnrestrictedArea selects every stored point.
func UnrestrictedArea() Area {
	return Area{Kind: AreaUnrestricted}
}

// RectangleArea selects points inside the given box.
func RectangleArea(box BoundingBox) Area {
	return Area{Kind: AreaRectangle, Box: box}
}

// PolygonArea selects points inside the ring. The ring is closed if the
// caller did not close it.
func PolygonArea(ring []GeoPoint) Area {
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return Area{Kind: AreaPolygon, Ring: ring}
}
