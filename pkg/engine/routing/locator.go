package routing

import (
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
)

/*
NearestNode. node closest to target by planar distance, and that distance in meters.
linear scan; on equal distances the node that comes first in nodes wins.
an empty node set returns util.ErrNotFound: there is no routable data in the fetched region.
*/
func NearestNode(target geo.Coordinate, nodes []da.Node) (da.Node, float64, error) {
	if len(nodes) == 0 {
		return da.Node{}, 0, util.NewErrorf(util.ErrNotFound,
			"no routable node near %f,%f", target.Lat, target.Lon)
	}

	nearest := nodes[0]
	minDist := geo.CalculatePlanarDistance(target, nearest.Coord)
	for _, node := range nodes[1:] {
		dist := geo.CalculatePlanarDistance(target, node.Coord)
		if dist < minDist {
			minDist = dist
			nearest = node
		}
	}

	return nearest, minDist, nil
}
