package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Corridor. closed rectangle: start-left, start-right, end-right, end-left, start-left.
type Corridor [5]Coordinate

/*
GenerateRectangle. rectangle aligned with the line start -> end.
start is pushed back and end pushed forward by padding meters along the bearing, then each of the
two extended points gets a corner width/2 meters to its left and to its right.
with padding 0 and width 0 the corners collapse onto start and end.
*/
func GenerateRectangle(start, end Coordinate, width, padding float64) Corridor {
	bearing := BearingTo(start, end)

	left := bearing - math.Pi/2
	right := bearing + math.Pi/2

	adjustedStart := GetDestinationPoint(start, bearing+math.Pi, padding)
	adjustedEnd := GetDestinationPoint(end, bearing, padding)

	startLeft := GetDestinationPoint(adjustedStart, left, width/2)
	startRight := GetDestinationPoint(adjustedStart, right, width/2)
	endRight := GetDestinationPoint(adjustedEnd, right, width/2)
	endLeft := GetDestinationPoint(adjustedEnd, left, width/2)

	return Corridor{startLeft, startRight, endRight, endLeft, startLeft}
}

func (c Corridor) Points() []Coordinate {
	points := make([]Coordinate, len(c))
	copy(points, c[:])
	return points
}

// Ring. orb ring (lon, lat order), closed.
func (c Corridor) Ring() orb.Ring {
	ring := make(orb.Ring, len(c))
	for i, p := range c {
		ring[i] = orb.Point{p.Lon, p.Lat}
	}
	return ring
}

func (c Corridor) Polygon() orb.Polygon {
	return orb.Polygon{c.Ring()}
}

func (c Corridor) Bound() orb.Bound {
	return c.Ring().Bound()
}

// degenerate. true when the rectangle has no area (zero width or coincident endpoints).
func (c Corridor) degenerate() bool {
	const eps = 1e-6 // meter
	return CalculatePlanarDistance(c[0], c[1]) < eps || CalculatePlanarDistance(c[1], c[2]) < eps
}
