package osmparser

import (
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
)

type OsmParser struct {
}

func NewOSMParser() *OsmParser {
	return &OsmParser{}
}

/*
Parse. converts way records into nodes, directed edges, a node coordinate index and one-way flags.

every node id is registered once, the first occurrence wins and its coordinate is used for all
edges touching it. each consecutive pair of a way yields one edge from the earlier to the later
node, weighted with the planar distance between them and tagged with the way's one-way flag.
a way with a single node yields no edges. elements that are not ways are skipped.

a way whose geometry does not match its node list returns util.ErrInvalidInput.
*/
func (p *OsmParser) Parse(ways []Way) (*ParsedData, error) {
	for _, way := range ways {
		if !way.isWay() {
			continue
		}
		if len(way.Nodes) != len(way.Geometry) {
			return nil, util.NewErrorf(util.ErrInvalidInput,
				"way %d has %d nodes but %d geometry points", way.ID, len(way.Nodes), len(way.Geometry))
		}
	}

	parsed := &ParsedData{
		Nodes:      make([]da.Node, 0),
		Edges:      make([]da.Edge, 0),
		NodeCoords: make(da.CoordinateIndex),
		OneWay:     make([]bool, 0),
	}

	for _, way := range ways {
		if !way.isWay() {
			continue
		}
		oneWay := way.IsOneWay()

		for i, nodeID := range way.Nodes {
			if _, ok := parsed.NodeCoords[nodeID]; !ok {
				coord := way.Geometry[i]
				parsed.NodeCoords[nodeID] = coord
				parsed.Nodes = append(parsed.Nodes, da.NewNode(nodeID, coord))
			}

			if i == 0 {
				continue
			}

			prevID := way.Nodes[i-1]
			dist := geo.CalculatePlanarDistance(parsed.NodeCoords[prevID], parsed.NodeCoords[nodeID])
			parsed.Edges = append(parsed.Edges, da.NewEdge(prevID, nodeID, dist))
			parsed.OneWay = append(parsed.OneWay, oneWay)
		}
	}

	return parsed, nil
}
