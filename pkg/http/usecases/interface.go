package usecases

import (
	"context"

	"github.com/lintang-b-s/osmroute/pkg/engine"
	"github.com/lintang-b-s/osmroute/pkg/geo"
)

type RoutingEngine interface {
	ShortestPath(ctx context.Context, start, end geo.Coordinate) (*engine.Route, error)
	MultiStop(ctx context.Context, waypoints []geo.Coordinate) (*engine.MultiStopRoute, error)
	Corridor(start, end geo.Coordinate, width, padding float64) (geo.Corridor, error)
}
