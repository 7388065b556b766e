package overpass

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/geo"
)

func highwayFilter() string {
	return fmt.Sprintf(`[highway~"%s"]`, strings.Join(pkg.AcceptedHighway, "|"))
}

/*
BuildQuery. overpass QL for the road ways of region, with `out geom;` so every way carries its
node coordinates.

  - circle: way(around:radius,lat,lon)
  - corridor: way(poly:"lat lon lat lon ...")
  - anything else: way(south,west,north,east) of its bound
*/
func BuildQuery(region geo.Region, timeoutSec int) string {
	var filter string
	switch r := region.(type) {
	case geo.Circle:
		filter = fmt.Sprintf("(around:%.1f,%f,%f)", r.Radius, r.Center.Lat, r.Center.Lon)
	case geo.Corridor:
		points := r.Points()
		latLons := make([]string, 0, len(points)-1)
		for _, p := range points[:len(points)-1] {
			latLons = append(latLons, fmt.Sprintf("%f %f", p.Lat, p.Lon))
		}
		filter = fmt.Sprintf(`(poly:"%s")`, strings.Join(latLons, " "))
	default:
		b := region.Bound()
		filter = fmt.Sprintf("(%f,%f,%f,%f)", b.Min.Lat(), b.Min.Lon(), b.Max.Lat(), b.Max.Lon())
	}

	return fmt.Sprintf("[out:json][timeout:%d];way%s%s;out geom;", timeoutSec, filter, highwayFilter())
}
