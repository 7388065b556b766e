package geo

import (
	"github.com/golang/geo/s2"
)

func toS2Point(c Coordinate) s2.Point {
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Lat, c.Lon))
}

// Contains. whether p lies inside the corridor, tested on the sphere with an s2 loop.
// a degenerate corridor contains nothing.
func (c Corridor) Contains(p Coordinate) bool {
	if c.degenerate() {
		return false
	}

	vertices := make([]s2.Point, 0, 4)
	for _, corner := range c[:4] {
		vertices = append(vertices, toS2Point(corner))
	}
	loop := s2.LoopFromPoints(vertices)
	// corner order depends on the bearing sign convention, make it counter-clockwise
	loop.Normalize()

	return loop.ContainsPoint(toS2Point(p))
}
