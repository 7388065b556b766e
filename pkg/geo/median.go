package geo

import (
	"math"

	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/util"
)

/*
GeometricMedian. point minimizing the sum of planar distances to points, by Weiszfeld's algorithm.

points are projected onto the same local plane CalculatePlanarDistance uses (longitude scaled by
cos of the mean latitude), iterated there, and projected back. iteration stops once two successive
estimates differ by less than pkg.MEDIAN_TOLERANCE degrees. an input point the estimate coincides
with is left out of that iteration's weighted sum.

accepts pkg.MIN_WAYPOINTS..pkg.MAX_WAYPOINTS points, the same bound the multi-stop planner has.
*/
func GeometricMedian(points []Coordinate) (Coordinate, error) {
	if len(points) < pkg.MIN_WAYPOINTS || len(points) > pkg.MAX_WAYPOINTS {
		return Coordinate{}, util.NewErrorf(util.ErrInvalidInput,
			"geometric median needs %d to %d points, got %d", pkg.MIN_WAYPOINTS, pkg.MAX_WAYPOINTS, len(points))
	}

	meanLat := 0.0
	for _, p := range points {
		meanLat += p.Lat
	}
	meanLat /= float64(len(points))
	lonScale := math.Cos(util.DegreeToRadians(meanLat))
	if lonScale < 1e-9 {
		lonScale = 1e-9
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	cx, cy := 0.0, 0.0
	for i, p := range points {
		xs[i] = p.Lon * lonScale
		ys[i] = p.Lat
		cx += xs[i]
		cy += ys[i]
	}
	// start from the centroid
	cx /= float64(len(points))
	cy /= float64(len(points))

	for it := 0; it < pkg.MEDIAN_MAX_ITERATIONS; it++ {
		numX, numY, denom := 0.0, 0.0, 0.0
		for i := range xs {
			d := math.Hypot(xs[i]-cx, ys[i]-cy)
			if d == 0 {
				continue
			}
			numX += xs[i] / d
			numY += ys[i] / d
			denom += 1 / d
		}
		if denom == 0 {
			// every point coincides with the estimate
			break
		}

		nx, ny := numX/denom, numY/denom
		moved := math.Hypot((nx-cx)/lonScale, ny-cy)
		cx, cy = nx, ny
		if moved < pkg.MEDIAN_TOLERANCE {
			break
		}
	}

	return NewCoordinate(cy, cx/lonScale), nil
}
