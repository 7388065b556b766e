package controllers

import (
	"context"

	"github.com/lintang-b-s/osmroute/pkg/geo"
)

type RoutingService interface {
	ShortestPath(ctx context.Context, orig, dst geo.Coordinate) (float64, string, []geo.Coordinate, error)
	MultiStop(ctx context.Context, waypoints []geo.Coordinate) ([]int, float64, string, []geo.Coordinate, error)
	Corridor(orig, dst geo.Coordinate, width, padding *float64) (geo.Corridor, error)
}
