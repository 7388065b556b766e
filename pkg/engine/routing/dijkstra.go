package routing

import (
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
)

/*
Dijkstra. single-source single-target search over a per-query graph.

the next vertex to finalize is picked by a linear scan over the labelled, unfinalized vertices,
there is no priority queue, so a query is O(V^2). graphs only cover one fetched region and are
rebuilt for each query, which keeps V small. anything meant for city or country sized graphs
needs an indexed priority queue here instead.

among vertices with the same minimum distance the scan picks whichever it meets first; the
order depends on removal history, so equal-length paths may come back in either form.

a Dijkstra holds no state between ShortestPath calls and only reads the graph, several of them
may share one graph.
*/
type Dijkstra struct {
	graph      *da.Graph
	nodeCoords da.CoordinateIndex

	numSettledNodes int
}

func NewDijkstra(graph *da.Graph, nodeCoords da.CoordinateIndex) *Dijkstra {
	return &Dijkstra{
		graph:      graph,
		nodeCoords: nodeCoords,
	}
}

// ShortestPath. path s -> t. an unreachable t is not an error: the result has an empty path and
// +Inf distance. s or t missing from the graph returns util.ErrInvalidInput.
func (d *Dijkstra) ShortestPath(s, t int64) (da.PathResult, error) {
	if !d.graph.HasVertex(s) {
		return da.PathResult{}, util.NewErrorf(util.ErrInvalidInput, "source node %d is not in the graph", s)
	}
	if !d.graph.HasVertex(t) {
		return da.PathResult{}, util.NewErrorf(util.ErrInvalidInput, "target node %d is not in the graph", t)
	}

	d.numSettledNodes = 0
	info := make(map[int64]*vertexInfo)
	info[s] = newVertexInfo(0, noParent)

	// labelled (finite distance) vertices not finalized yet
	frontier := []int64{s}

	for len(frontier) > 0 {
		minIdx := 0
		for i := 1; i < len(frontier); i++ {
			if info[frontier[i]].dist < info[frontier[minIdx]].dist {
				minIdx = i
			}
		}
		u := frontier[minIdx]
		frontier[minIdx] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		uInfo := info[u]
		uInfo.finalized = true
		d.numSettledNodes++

		if u == t {
			return d.reconstructPath(info, s, t)
		}

		d.graph.ForOutEdgesOf(u, func(e da.OutEdge) {
			v := e.GetHead()
			newDist := uInfo.dist + e.GetWeight()

			vInfo, labelled := info[v]
			if labelled {
				if vInfo.finalized || newDist >= vInfo.dist {
					return
				}
				vInfo.update(newDist, u)
				return
			}

			info[v] = newVertexInfo(newDist, u)
			frontier = append(frontier, v)
		})
	}

	return da.NewUnreachablePathResult(), nil
}

func (d *Dijkstra) reconstructPath(info map[int64]*vertexInfo, s, t int64) (da.PathResult, error) {
	nodePath := make([]int64, 0)
	cur := t
	for {
		nodePath = append(nodePath, cur)
		if cur == s {
			break
		}
		curInfo := info[cur]
		if !curInfo.hasParent() {
			break
		}
		cur = curInfo.GetParent()
	}
	nodePath = util.ReverseG(nodePath)

	path := make([]geo.Coordinate, 0, len(nodePath))
	for _, id := range nodePath {
		coord, ok := d.nodeCoords[id]
		if !ok {
			return da.PathResult{}, util.NewErrorf(util.ErrInvalidInput, "node %d has no coordinate", id)
		}
		path = append(path, coord)
	}

	return da.NewPathResult(nodePath, path, distanceOf(info, t)), nil
}

func (d *Dijkstra) GetNumSettledNodes() int {
	return d.numSettledNodes
}
