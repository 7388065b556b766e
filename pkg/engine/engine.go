package engine

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/lintang-b-s/osmroute/pkg"
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/engine/routing"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/osmparser"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"go.uber.org/zap"
)

// WayFetcher. source of road ways for a region. errors that are not already a *util.Error are
// reported as util.ErrUpstream.
type WayFetcher interface {
	FetchWays(ctx context.Context, region geo.Region) ([]osmparser.Way, error)
}

// Route. single-path answer. Result is unreachable (empty path, +Inf) when no path exists
// between the snapped nodes.
type Route struct {
	Source da.Node
	Target da.Node
	Result da.PathResult
	Region geo.Region
}

type MultiStopRoute struct {
	*routing.MultiStopRoute
	Waypoints []da.Node
	Region    geo.Circle
}

/*
Engine. query engine: fetch ways around the query, parse them, build a graph that lives for
this query only, snap the query points to graph nodes and search.

an Engine holds no per-query state and can serve concurrent queries.
*/
type Engine struct {
	fetcher WayFetcher
	parser  *osmparser.OsmParser
	cfg     Config
	log     *zap.Logger
}

func NewEngine(fetcher WayFetcher, cfg Config, log *zap.Logger) *Engine {
	return &Engine{
		fetcher: fetcher,
		parser:  osmparser.NewOSMParser(),
		cfg:     cfg,
		log:     log,
	}
}

func validateCoordinate(c geo.Coordinate) error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return util.NewErrorf(util.ErrInvalidInput, "coordinate %f,%f is out of range", c.Lat, c.Lon)
	}
	return nil
}

// SinglePathRegion. fetch region for a start -> end query. below the corridor threshold a circle
// at the midpoint, radius distance * CircleRadiusFactor (at least MinFetchRadius); else the corridor.
func (e *Engine) SinglePathRegion(start, end geo.Coordinate) geo.Region {
	dist := geo.CalculatePlanarDistance(start, end)
	if dist < e.cfg.CorridorThreshold {
		radius := math.Max(dist*e.cfg.CircleRadiusFactor, e.cfg.MinFetchRadius)
		return geo.NewCircle(geo.MidPoint(start, end), radius)
	}
	return geo.GenerateRectangle(start, end, e.cfg.CorridorWidth, e.cfg.CorridorPadding)
}

type queryGraph struct {
	graph  *da.Graph
	parsed *osmparser.ParsedData
}

func (e *Engine) buildQueryGraph(ctx context.Context, region geo.Region) (*queryGraph, error) {
	now := time.Now()
	ways, err := e.fetcher.FetchWays(ctx, region)
	if err != nil {
		var uErr *util.Error
		if errors.As(err, &uErr) {
			return nil, err
		}
		return nil, util.WrapErrorf(err, util.ErrUpstream, "fetching ways")
	}
	fetchTime := time.Since(now)

	parsed, err := e.parser.Parse(ways)
	if err != nil {
		return nil, err
	}
	graph, err := parsed.BuildGraph()
	if err != nil {
		return nil, err
	}

	e.log.Debug("query graph built", zap.Int("ways", len(ways)), zap.Int("nodes", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()), zap.Duration("fetchTime", fetchTime))
	return &queryGraph{graph: graph, parsed: parsed}, nil
}

// ShortestPath. shortest path between the road nodes nearest to start and end.
// util.ErrNotFound when the fetched region has no road.
func (e *Engine) ShortestPath(ctx context.Context, start, end geo.Coordinate) (*Route, error) {
	if err := validateCoordinate(start); err != nil {
		return nil, err
	}
	if err := validateCoordinate(end); err != nil {
		return nil, err
	}

	region := e.SinglePathRegion(start, end)
	qg, err := e.buildQueryGraph(ctx, region)
	if err != nil {
		return nil, err
	}

	source, _, err := routing.NearestNode(start, qg.parsed.Nodes)
	if err != nil {
		return nil, err
	}
	target, _, err := routing.NearestNode(end, qg.parsed.Nodes)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dijkstra := routing.NewDijkstra(qg.graph, qg.parsed.NodeCoords)
	res, err := dijkstra.ShortestPath(source.ID, target.ID)
	if err != nil {
		return nil, err
	}

	e.log.Info("shortest path query", zap.Int64("source", source.ID), zap.Int64("target", target.ID),
		zap.Bool("found", res.Found()), zap.Float64("distance", res.GetDistance()),
		zap.Int("settled", dijkstra.GetNumSettledNodes()), zap.Duration("searchTime", time.Since(now)))

	return &Route{
		Source: source,
		Target: target,
		Result: res,
		Region: region,
	}, nil
}

// MultiStop. best visiting order of 2..5 waypoints with the first and last fixed.
func (e *Engine) MultiStop(ctx context.Context, waypoints []geo.Coordinate) (*MultiStopRoute, error) {
	if len(waypoints) < pkg.MIN_WAYPOINTS || len(waypoints) > pkg.MAX_WAYPOINTS {
		return nil, util.NewErrorf(util.ErrInvalidInput, "multi-stop needs %d to %d waypoints, got %d",
			pkg.MIN_WAYPOINTS, pkg.MAX_WAYPOINTS, len(waypoints))
	}
	for _, wp := range waypoints {
		if err := validateCoordinate(wp); err != nil {
			return nil, err
		}
	}

	region, err := routing.MultiStopRegion(waypoints, e.cfg.MultiStopMargin, e.cfg.MultiStopMaxSpan)
	if err != nil {
		return nil, err
	}

	qg, err := e.buildQueryGraph(ctx, region)
	if err != nil {
		return nil, err
	}

	planner := routing.NewMultiStopPlanner(qg.graph, qg.parsed.Nodes, qg.parsed.NodeCoords, e.log)
	route, err := planner.Plan(waypoints)
	if err != nil {
		return nil, err
	}

	snapped := make([]da.Node, 0, len(waypoints))
	for _, wp := range waypoints {
		node, _, err := routing.NearestNode(wp, qg.parsed.Nodes)
		if err != nil {
			return nil, err
		}
		snapped = append(snapped, node)
	}

	return &MultiStopRoute{
		MultiStopRoute: route,
		Waypoints:      snapped,
		Region:         region,
	}, nil
}

// Corridor. padded rectangle between start and end, width and padding in meters.
func (e *Engine) Corridor(start, end geo.Coordinate, width, padding float64) (geo.Corridor, error) {
	if err := validateCoordinate(start); err != nil {
		return geo.Corridor{}, err
	}
	if err := validateCoordinate(end); err != nil {
		return geo.Corridor{}, err
	}
	if width < 0 || padding < 0 {
		return geo.Corridor{}, util.NewErrorf(util.ErrInvalidInput,
			"corridor width and padding must be non-negative, got %f and %f", width, padding)
	}
	return geo.GenerateRectangle(start, end, width, padding), nil
}

func (e *Engine) GetConfig() Config {
	return e.cfg
}
