package usecases

import (
	"context"

	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"go.uber.org/zap"
)

type RoutingService struct {
	log            *zap.Logger
	engine         RoutingEngine
	defaultWidth   float64
	defaultPadding float64
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, defaultWidth, defaultPadding float64) *RoutingService {
	return &RoutingService{
		log:            log,
		engine:         engine,
		defaultWidth:   defaultWidth,
		defaultPadding: defaultPadding,
	}
}

// ShortestPath. distance in meters, encoded polyline and points of the path. no path between the
// snapped nodes is a util.ErrUnreachable error here, the api reports it as its own status.
func (rs *RoutingService) ShortestPath(ctx context.Context, orig, dst geo.Coordinate) (float64, string,
	[]geo.Coordinate, error) {
	route, err := rs.engine.ShortestPath(ctx, orig, dst)
	if err != nil {
		return 0, "", nil, err
	}
	if !route.Result.Found() {
		return 0, "", nil, util.NewErrorf(util.ErrUnreachable, "no path found from %f,%f to %f,%f",
			orig.Lat, orig.Lon, dst.Lat, dst.Lon)
	}

	points := route.Result.GetPath()
	return route.Result.GetDistance(), geo.PolylineFromCoords(points), points, nil
}

// MultiStop. visiting order (indices into waypoints), distance, polyline and points.
func (rs *RoutingService) MultiStop(ctx context.Context, waypoints []geo.Coordinate) ([]int, float64, string,
	[]geo.Coordinate, error) {
	route, err := rs.engine.MultiStop(ctx, waypoints)
	if err != nil {
		return nil, 0, "", nil, err
	}
	return route.Order, route.Distance, geo.PolylineFromCoords(route.Path), route.Path, nil
}

// Corridor. nil width or padding falls back to the configured default.
func (rs *RoutingService) Corridor(orig, dst geo.Coordinate, width, padding *float64) (geo.Corridor, error) {
	w, p := rs.defaultWidth, rs.defaultPadding
	if width != nil {
		w = *width
	}
	if padding != nil {
		p = *padding
	}
	return rs.engine.Corridor(orig, dst, w, p)
}
