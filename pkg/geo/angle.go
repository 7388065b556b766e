package geo

import (
	"math"

	"github.com/lintang-b-s/osmroute/pkg/util"
)

/*
BearingTo. initial bearing from p1 to p2 in radians, clockwise from north, in [0, 2π).
https://www.movable-type.co.uk/scripts/latlong.html
*/
func BearingTo(p1, p2 Coordinate) float64 {

	dLon := util.DegreeToRadians(p2.Lon - p1.Lon)

	lat1 := util.DegreeToRadians(p1.Lat)
	lat2 := util.DegreeToRadians(p2.Lat)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return math.Mod(math.Atan2(y, x)+2*math.Pi, 2*math.Pi)
}
