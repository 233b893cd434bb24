package ridgeline

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// An Extent is a rectangular geographic extent in WGS84 coordinates.
type Extent struct {
	LonMin float64
	LatMin float64
	LonMax float64
	LatMax float64
}

// ExtentFromPolygon returns the bounding extent of polygon's exterior ring.
func ExtentFromPolygon(polygon orb.Polygon) (Extent, error) {
	if len(polygon) == 0 {
		return Extent{}, fmt.Errorf("%w: polygon has no rings", ErrInvalidGeometry)
	}
	return ExtentFromRing(polygon[0])
}

// ExtentFromRing returns the bounding extent of ring. Only the bounding box
// of the vertices is used, not the polygon shape. The ring may be closed
// (first vertex repeated as the last) or open; either way it must contain at
// least three distinct vertices.
func ExtentFromRing(ring orb.Ring) (Extent, error) {
	vertices := len(ring)
	if vertices > 1 && ring[0] == ring[vertices-1] {
		vertices--
	}
	if vertices < 3 {
		return Extent{}, fmt.Errorf("%w: polygon has %d vertices, need at least 3", ErrInvalidGeometry, vertices)
	}
	for _, point := range ring {
		if math.IsNaN(point[0]) || math.IsInf(point[0], 0) || math.IsNaN(point[1]) || math.IsInf(point[1], 0) {
			return Extent{}, fmt.Errorf("%w: non-finite vertex", ErrInvalidGeometry)
		}
	}
	bound := ring.Bound()
	extent := Extent{
		LonMin: bound.Min[0],
		LatMin: bound.Min[1],
		LonMax: bound.Max[0],
		LatMax: bound.Max[1],
	}
	if extent.LonMin == extent.LonMax || extent.LatMin == extent.LatMax {
		return Extent{}, fmt.Errorf("%w: degenerate bounding box", ErrInvalidGeometry)
	}
	return extent, nil
}

// AspectRatio returns the width-to-height ratio of e, with the longitude
// range corrected by the cosine of the mean latitude.
func (e Extent) AspectRatio() float64 {
	lonRange := e.LonMax - e.LonMin
	latRange := e.LatMax - e.LatMin
	meanLat := (e.LatMin + e.LatMax) / 2
	return lonRange * math.Cos(meanLat*math.Pi/180) / latRange
}
