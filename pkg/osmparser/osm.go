package osmparser

import (
	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/paulmach/osm"
)

// AcceptOsmWay. routable road ways, the same highway set the overpass query asks for.
func AcceptOsmWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 {
		return false
	}
	return pkg.IsAcceptedHighway(way.Tags.Find("highway"))
}

// FromOsmWay. converts an osm way read from an extract into a Way record, looking up node
// coordinates in coords. false when a referenced node is missing from coords.
func FromOsmWay(way *osm.Way, coords map[osm.NodeID]geo.Coordinate) (Way, bool) {
	nodes := make([]int64, 0, len(way.Nodes))
	geometry := make([]geo.Coordinate, 0, len(way.Nodes))

	for _, wn := range way.Nodes {
		coord, ok := coords[wn.ID]
		if !ok {
			return Way{}, false
		}
		nodes = append(nodes, int64(wn.ID))
		geometry = append(geometry, coord)
	}

	return NewWay(int64(way.ID), nodes, geometry, way.Tags.Map()), true
}
