package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lintang-b-s/osmroute/pkg/engine"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/logger"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	waypointsFlag = flag.String("waypoints", "", `"lat,lon;lat,lon[;...]", two points route a single path, more plan a multi-stop route`)
	corridorFlag  = flag.Bool("corridor", false, "print the corridor between the first two waypoints as geojson instead of routing")
	extractFile   = flag.String("extract", "", "osm extract to read roads from instead of the overpass api")
)

type output struct {
	Order    []int            `json:"order,omitempty"`
	Distance float64          `json:"distance"`
	Polyline string           `json:"polyline"`
	Nodes    []int64          `json:"nodes"`
	Points   []geo.Coordinate `json:"points"`
}

func parseWaypoints(s string) ([]geo.Coordinate, error) {
	waypoints := make([]geo.Coordinate, 0)
	for _, pair := range strings.Split(s, ";") {
		latStr, lonStr, ok := strings.Cut(strings.TrimSpace(pair), ",")
		if !ok {
			return nil, fmt.Errorf("waypoint %q is not lat,lon", pair)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		if err != nil {
			return nil, fmt.Errorf("waypoint %q: %w", pair, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if err != nil {
			return nil, fmt.Errorf("waypoint %q: %w", pair, err)
		}
		waypoints = append(waypoints, geo.NewCoordinate(lat, lon))
	}
	if len(waypoints) < 2 {
		return nil, errors.New("at least two waypoints are needed")
	}
	return waypoints, nil
}

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := util.ReadConfig(); err != nil {
		log.Fatal("reading config", zap.Error(err))
	}
	if *extractFile != "" {
		viper.Set("OSM_EXTRACT_FILE", *extractFile)
	}

	waypoints, err := parseWaypoints(*waypointsFlag)
	if err != nil {
		log.Fatal("parsing waypoints", zap.Error(err))
	}

	ctx := context.Background()
	fetcher, err := engine.NewWayFetcherFromViper(ctx, log)
	if err != nil {
		log.Fatal("building way fetcher", zap.Error(err))
	}
	cfg := engine.ConfigFromViper()
	e := engine.NewEngine(fetcher, cfg, log)

	var result any
	switch {
	case *corridorFlag:
		c, err := e.Corridor(waypoints[0], waypoints[1], cfg.CorridorWidth, cfg.CorridorPadding)
		if err != nil {
			log.Fatal("corridor", zap.Error(err))
		}
		result = geojson.NewFeature(c.Polygon())
	case len(waypoints) == 2:
		route, err := e.ShortestPath(ctx, waypoints[0], waypoints[1])
		if err != nil {
			log.Fatal("shortest path", zap.Error(err))
		}
		if !route.Result.Found() {
			log.Fatal("shortest path", zap.Error(util.NewErrorf(util.ErrUnreachable, "no path between the waypoints")))
		}
		points := route.Result.GetPath()
		result = output{
			Distance: route.Result.GetDistance(),
			Polyline: geo.PolylineFromCoords(points),
			Nodes:    route.Result.GetNodePath(),
			Points:   points,
		}
	default:
		route, err := e.MultiStop(ctx, waypoints)
		if err != nil {
			log.Fatal("multi-stop", zap.Error(err))
		}
		result = output{
			Order:    route.Order,
			Distance: route.Distance,
			Polyline: geo.PolylineFromCoords(route.Path),
			Nodes:    route.NodePath,
			Points:   route.Path,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal("writing result", zap.Error(err))
	}
}
