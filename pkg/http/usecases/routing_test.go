package usecases

import (
	"context"
	"errors"
	"testing"

	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/engine"
	"github.com/lintang-b-s/osmroute/pkg/engine/routing"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEngine struct {
	route          *engine.Route
	width, padding float64
}

func (f *fakeEngine) ShortestPath(ctx context.Context, start, end geo.Coordinate) (*engine.Route, error) {
	return f.route, nil
}

func (f *fakeEngine) MultiStop(ctx context.Context, waypoints []geo.Coordinate) (*engine.MultiStopRoute, error) {
	return &engine.MultiStopRoute{MultiStopRoute: &routing.MultiStopRoute{
		Order:    []int{0, 1},
		Path:     waypoints,
		Distance: 10,
	}}, nil
}

func (f *fakeEngine) Corridor(start, end geo.Coordinate, width, padding float64) (geo.Corridor, error) {
	f.width, f.padding = width, padding
	return geo.GenerateRectangle(start, end, width, padding), nil
}

func TestShortestPath(t *testing.T) {
	path := []geo.Coordinate{geo.NewCoordinate(38.5, -120.2), geo.NewCoordinate(40.7, -120.95)}
	eng := &fakeEngine{route: &engine.Route{Result: da.NewPathResult([]int64{1, 2}, path, 250000)}}
	rs := NewRoutingService(zap.NewNop(), eng, 2000, 1000)

	dist, polyline, points, err := rs.ShortestPath(context.Background(), path[0], path[1])
	require.NoError(t, err)
	assert.Equal(t, 250000.0, dist)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC", polyline)
	assert.Equal(t, path, points)
}

func TestShortestPathUnreachable(t *testing.T) {
	eng := &fakeEngine{route: &engine.Route{Result: da.NewUnreachablePathResult()}}
	rs := NewRoutingService(zap.NewNop(), eng, 2000, 1000)

	_, _, _, err := rs.ShortestPath(context.Background(), geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrUnreachable))
}

func TestMultiStop(t *testing.T) {
	rs := NewRoutingService(zap.NewNop(), &fakeEngine{}, 2000, 1000)
	waypoints := []geo.Coordinate{geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.01)}

	order, dist, _, points, err := rs.MultiStop(context.Background(), waypoints)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, order)
	assert.Equal(t, 10.0, dist)
	assert.Equal(t, waypoints, points)
}

func TestCorridorDefaults(t *testing.T) {
	eng := &fakeEngine{}
	rs := NewRoutingService(zap.NewNop(), eng, 2000, 1000)

	_, err := rs.Corridor(geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.1), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, eng.width)
	assert.Equal(t, 1000.0, eng.padding)

	w := 500.0
	_, err = rs.Corridor(geo.NewCoordinate(0, 0), geo.NewCoordinate(0, 0.1), &w, nil)
	require.NoError(t, err)
	assert.Equal(t, 500.0, eng.width)
	assert.Equal(t, 1000.0, eng.padding)
}
