package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Region. area a data fetch is bounded to.
type Region interface {
	Bound() orb.Bound
	Contains(p Coordinate) bool
}

// Circle. center + radius in meters.
type Circle struct {
	Center Coordinate
	Radius float64
}

func NewCircle(center Coordinate, radius float64) Circle {
	return Circle{Center: center, Radius: radius}
}

func (c Circle) Contains(p Coordinate) bool {
	return CalculatePlanarDistance(c.Center, p) <= c.Radius
}

// Bound. box through the north, east, south and west points of the circle.
func (c Circle) Bound() orb.Bound {
	north := GetDestinationPoint(c.Center, 0, c.Radius)
	east := GetDestinationPoint(c.Center, math.Pi/2, c.Radius)
	south := GetDestinationPoint(c.Center, math.Pi, c.Radius)
	west := GetDestinationPoint(c.Center, 3*math.Pi/2, c.Radius)

	return orb.Bound{
		Min: orb.Point{west.Lon, south.Lat},
		Max: orb.Point{east.Lon, north.Lat},
	}
}

var (
	_ Region = Circle{}
	_ Region = Corridor{}
)
