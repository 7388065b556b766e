package geo

import (
	"math"

	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func NewCoordinates(lat, lon []float64) []Coordinate {
	coords := make([]Coordinate, len(lat))
	for i := range lat {
		coords[i] = NewCoordinate(lat[i], lon[i])
	}
	return coords
}

/*
CalculatePlanarDistance. distance in meters between a and b on a local plane:
111,320 m per degree of latitude, longitude degrees scaled by cos(mean latitude).

this is an approximation. curvature error is negligible for distances up to a few hundred km,
which covers every region a single query fetches. it is the only distance model used for edge
weights, nearest node search, fetch radii and the geometric median.
*/
func CalculatePlanarDistance(a, b Coordinate) float64 {
	latDistance := (b.Lat - a.Lat) * pkg.METERS_PER_DEGREE
	lonDistance := (b.Lon - a.Lon) * pkg.METERS_PER_DEGREE * math.Cos(util.DegreeToRadians((a.Lat+b.Lat)/2))
	return math.Sqrt(latDistance*latDistance + lonDistance*lonDistance)
}

// GetDestinationPoint returns the point reached from p after dist meters along the initial bearing (radians).
// https://www.movable-type.co.uk/scripts/latlong.html
func GetDestinationPoint(p Coordinate, bearing float64, dist float64) Coordinate {

	dr := dist / pkg.EARTH_RADIUS_M

	lat1 := util.DegreeToRadians(p.Lat)
	lon1 := util.DegreeToRadians(p.Lon)

	lat2Part1 := math.Sin(lat1) * math.Cos(dr)
	lat2Part2 := math.Cos(lat1) * math.Sin(dr) * math.Cos(bearing)

	lat2 := math.Asin(lat2Part1 + lat2Part2)

	lon2Part1 := math.Sin(bearing) * math.Sin(dr) * math.Cos(lat1)
	lon2Part2 := math.Cos(dr) - (math.Sin(lat1) * math.Sin(lat2))

	lon2 := lon1 + math.Atan2(lon2Part1, lon2Part2)

	return NewCoordinate(util.RadiansToDegree(lat2), normalizeLongitude(util.RadiansToDegree(lon2)))
}

// MidPoint. spherical midpoint of the great circle arc between a and b.
// https://www.movable-type.co.uk/scripts/latlong.html
func MidPoint(a, b Coordinate) Coordinate {
	latOne := util.DegreeToRadians(a.Lat)
	longOne := util.DegreeToRadians(a.Lon)
	latTwo := util.DegreeToRadians(b.Lat)
	longTwo := util.DegreeToRadians(b.Lon)

	bx := math.Cos(latTwo) * math.Cos(longTwo-longOne)
	by := math.Cos(latTwo) * math.Sin(longTwo-longOne)
	denom := math.Sqrt((math.Cos(latOne)+bx)*(math.Cos(latOne)+bx) + by*by)
	lat := math.Atan2(math.Sin(latOne)+math.Sin(latTwo), denom)
	lon := longOne + math.Atan2(by, math.Cos(latOne)+bx)
	return NewCoordinate(util.RadiansToDegree(lat), normalizeLongitude(util.RadiansToDegree(lon)))
}

// MidPointApprox. arithmetic mean of the two coordinates.
func MidPointApprox(a, b Coordinate) Coordinate {
	return NewCoordinate((a.Lat+b.Lat)/2, (a.Lon+b.Lon)/2)
}

// normalizeLongitude. long in degree
func normalizeLongitude(long float64) float64 {
	return math.Mod((long+540), 360) - 180.0
}
