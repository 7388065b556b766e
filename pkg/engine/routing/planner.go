package routing

import (
	"github.com/lintang-b-s/osmroute/pkg"
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"go.uber.org/zap"
)

type legKey struct {
	from, to int
}

// MultiStopRoute. best visiting order over the waypoints and the combined path along it.
type MultiStopRoute struct {
	Order    []int            `json:"order"`
	NodePath []int64          `json:"node_path"`
	Path     []geo.Coordinate `json:"path"`
	Distance float64          `json:"distance"`
	Legs     []da.PathResult  `json:"-"`
}

/*
MultiStopPlanner. exact multi-stop ordering over one graph that covers every waypoint.

the first and last waypoint are fixed, the interior ones are tried in every order. legs are
shortest paths between snapped waypoints, computed the first time an ordering needs them and
cached per ordered pair, one-way edges make a->b and b->a different legs.
with at most 5 waypoints there are at most 6 orderings and 20 legs.
*/
type MultiStopPlanner struct {
	graph      *da.Graph
	nodes      []da.Node
	nodeCoords da.CoordinateIndex
	log        *zap.Logger
}

func NewMultiStopPlanner(graph *da.Graph, nodes []da.Node, nodeCoords da.CoordinateIndex,
	log *zap.Logger) *MultiStopPlanner {
	return &MultiStopPlanner{
		graph:      graph,
		nodes:      nodes,
		nodeCoords: nodeCoords,
		log:        log,
	}
}

// Plan. 2..5 waypoints, else util.ErrInvalidInput. when no ordering has every leg reachable the
// plan fails with util.ErrUnreachable, a partial route is never returned.
func (p *MultiStopPlanner) Plan(waypoints []geo.Coordinate) (*MultiStopRoute, error) {
	if len(waypoints) < pkg.MIN_WAYPOINTS || len(waypoints) > pkg.MAX_WAYPOINTS {
		return nil, util.NewErrorf(util.ErrInvalidInput, "multi-stop needs %d to %d waypoints, got %d",
			pkg.MIN_WAYPOINTS, pkg.MAX_WAYPOINTS, len(waypoints))
	}

	snapped := make([]int64, len(waypoints))
	for i, wp := range waypoints {
		node, dist, err := NearestNode(wp, p.nodes)
		if err != nil {
			return nil, err
		}
		snapped[i] = node.ID
		p.log.Debug("snapped waypoint", zap.Int("waypoint", i), zap.Int64("node", node.ID),
			zap.Float64("snapDistance", dist))
	}

	dijkstra := NewDijkstra(p.graph, p.nodeCoords)
	legs := make(map[legKey]da.PathResult)
	leg := func(from, to int) (da.PathResult, error) {
		key := legKey{from, to}
		if res, ok := legs[key]; ok {
			return res, nil
		}
		res, err := dijkstra.ShortestPath(snapped[from], snapped[to])
		if err != nil {
			return da.PathResult{}, err
		}
		legs[key] = res
		return res, nil
	}

	var (
		bestOrder []int
		bestDist  = pkg.INF_WEIGHT
	)

	orders := visitOrders(len(waypoints))
	for _, order := range orders {
		total := 0.0
		feasible := true
		for i := 0; i+1 < len(order); i++ {
			res, err := leg(order[i], order[i+1])
			if err != nil {
				return nil, err
			}
			if !res.Found() {
				feasible = false
				break
			}
			total += res.GetDistance()
		}

		if !feasible {
			continue
		}
		// strict comparison keeps the first-seen ordering on ties
		if total < bestDist {
			bestDist = total
			bestOrder = order
		}
	}

	if bestOrder == nil {
		return nil, util.NewErrorf(util.ErrUnreachable,
			"no visiting order connects all %d waypoints in the fetched region", len(waypoints))
	}

	route := &MultiStopRoute{
		Order:    bestOrder,
		NodePath: make([]int64, 0),
		Path:     make([]geo.Coordinate, 0),
		Distance: bestDist,
		Legs:     make([]da.PathResult, 0, len(bestOrder)-1),
	}
	for i := 0; i+1 < len(bestOrder); i++ {
		res := legs[legKey{bestOrder[i], bestOrder[i+1]}]
		route.Legs = append(route.Legs, res)

		nodePath, path := res.GetNodePath(), res.GetPath()
		if i > 0 && len(nodePath) > 0 {
			// junction is already the last entry of the previous leg
			nodePath, path = nodePath[1:], path[1:]
		}
		route.NodePath = append(route.NodePath, nodePath...)
		route.Path = append(route.Path, path...)
	}

	p.log.Info("multi-stop route planned", zap.Int("waypoints", len(waypoints)),
		zap.Int("orderings", len(orders)), zap.Int("legsComputed", len(legs)),
		zap.Float64("distance", bestDist))

	return route, nil
}

/*
MultiStopRegion. fetch region for a multi-stop query: a circle at the geometric median of the
waypoints, radius = farthest waypoint from the median + margin meters.
a farthest waypoint beyond maxSpan meters returns util.ErrInvalidInput.
*/
func MultiStopRegion(waypoints []geo.Coordinate, margin, maxSpan float64) (geo.Circle, error) {
	center, err := geo.GeometricMedian(waypoints)
	if err != nil {
		return geo.Circle{}, err
	}

	maxDist := 0.0
	for _, wp := range waypoints {
		if d := geo.CalculatePlanarDistance(center, wp); d > maxDist {
			maxDist = d
		}
	}

	if maxDist > maxSpan {
		return geo.Circle{}, util.NewErrorf(util.ErrInvalidInput,
			"waypoints spread %.0f m from their median, the limit is %.0f m", maxDist, maxSpan)
	}

	return geo.NewCircle(center, maxDist+margin), nil
}
