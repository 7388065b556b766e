package osmparser

import (
	"github.com/lintang-b-s/osmroute/pkg"
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
)

// Way. one way element as the geodata service returns it (overpass `out geom;`):
// node ids with a geometry point per node id.
type Way struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Nodes    []int64           `json:"nodes"`
	Geometry []geo.Coordinate  `json:"geometry"`
	Tags     map[string]string `json:"tags,omitempty"`
}

func NewWay(id int64, nodes []int64, geometry []geo.Coordinate, tags map[string]string) Way {
	return Way{
		Type:     pkg.WAY_ELEMENT,
		ID:       id,
		Nodes:    nodes,
		Geometry: geometry,
		Tags:     tags,
	}
}

// IsOneWay. only an exact oneway=yes tag marks a way one-way.
func (w Way) IsOneWay() bool {
	return w.Tags[pkg.ONEWAY_TAG] == pkg.ONEWAY_YES
}

func (w Way) isWay() bool {
	return w.Type == "" || w.Type == pkg.WAY_ELEMENT
}

// ParsedData. graph input produced from a set of ways. OneWay[i] tags Edges[i].
type ParsedData struct {
	Nodes      []da.Node
	Edges      []da.Edge
	NodeCoords da.CoordinateIndex
	OneWay     []bool
}

// BuildGraph. builds the routing graph of the parsed data.
func (pd *ParsedData) BuildGraph() (*da.Graph, error) {
	return da.BuildGraph(pd.Nodes, pd.Edges, pd.OneWay)
}
