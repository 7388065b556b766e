package main

import (
	"context"
	"errors"
	"flag"
	"math"
	"sync/atomic"
	"time"

	"github.com/lintang-b-s/osmroute/pkg/concurrent"
	"github.com/lintang-b-s/osmroute/pkg/engine"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/logger"
	"github.com/lintang-b-s/osmroute/pkg/spatialindex"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

var (
	extractFile  = flag.String("extract", "./data/map.osm.pbf", "osm extract to evaluate on")
	numQueries   = flag.Int("n", 1000, "number of random queries per query type")
	numWorkers   = flag.Int("workers", 16, "concurrent queries")
	maxQueryDist = flag.Float64("max_dist", 5000, "max distance in meters between random query points")
	seed         = flag.Uint64("seed", 0, "random seed, 0 uses the current time")
)

type query struct {
	waypoints []geo.Coordinate
}

type queryResult struct {
	err         error
	unreachable bool
	latency     time.Duration
}

type stats struct {
	ok, unreachable, notFound, invalid, failed int
	totalLatency                               time.Duration
}

func (s *stats) add(res queryResult) {
	s.totalLatency += res.latency
	switch {
	case res.err == nil && res.unreachable:
		s.unreachable++
	case res.err == nil:
		s.ok++
	case errors.Is(res.err, util.ErrUnreachable):
		s.unreachable++
	case errors.Is(res.err, util.ErrNotFound):
		s.notFound++
	case errors.Is(res.err, util.ErrInvalidInput):
		s.invalid++
	default:
		s.failed++
	}
}

func (s *stats) log(log *zap.Logger, name string, n int) {
	mean := time.Duration(0)
	if n > 0 {
		mean = s.totalLatency / time.Duration(n)
	}
	log.Info("evaluation done", zap.String("queries", name), zap.Int("total", n), zap.Int("ok", s.ok),
		zap.Int("unreachable", s.unreachable), zap.Int("notFound", s.notFound), zap.Int("invalid", s.invalid),
		zap.Int("failed", s.failed), zap.Duration("meanLatency", mean))
}

func randomCoordinate(b orb.Bound, rd *rand.Rand) geo.Coordinate {
	lat := b.Min.Lat() + rd.Float64()*(b.Max.Lat()-b.Min.Lat())
	lon := b.Min.Lon() + rd.Float64()*(b.Max.Lon()-b.Min.Lon())
	return geo.NewCoordinate(lat, lon)
}

// randomQuery. first waypoint uniform in the bound, the rest within maxDist of it.
func randomQuery(b orb.Bound, rd *rand.Rand, numWaypoints int, maxDist float64) query {
	first := randomCoordinate(b, rd)
	waypoints := []geo.Coordinate{first}
	for len(waypoints) < numWaypoints {
		bearing := rd.Float64() * 2 * math.Pi
		waypoints = append(waypoints, geo.GetDestinationPoint(first, bearing, rd.Float64()*maxDist))
	}
	return query{waypoints: waypoints}
}

func runBatch(ctx context.Context, log *zap.Logger, name string, queries []query,
	run func(ctx context.Context, q query) queryResult) {
	workers := concurrent.NewWorkerPool[query, queryResult](*numWorkers, len(queries))
	for _, q := range queries {
		workers.AddJob(q)
	}
	workers.Close()

	var done int64
	workers.Start(func(q query) queryResult {
		res := run(ctx, q)
		if n := atomic.AddInt64(&done, 1); n%100 == 0 {
			log.Sugar().Infof("%s: done query %d", name, n)
		}
		return res
	})
	workers.Wait()

	var s stats
	for res := range workers.CollectResults() {
		s.add(res)
	}
	s.log(log, name, len(queries))
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

	ctx := context.Background()
	wi := spatialindex.NewWayIndex(log)
	if err := wi.LoadExtract(ctx, *extractFile); err != nil {
		log.Fatal("loading extract", zap.Error(err))
	}
	if wi.Len() == 0 {
		log.Fatal("extract has no routable ways", zap.String("extract", *extractFile))
	}

	e := engine.NewEngine(wi, engine.ConfigFromViper(), zap.NewNop())

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	rd := rand.New(rand.NewSource(s))

	singleQueries := make([]query, 0, *numQueries)
	multiQueries := make([]query, 0, *numQueries)
	for i := 0; i < *numQueries; i++ {
		singleQueries = append(singleQueries, randomQuery(wi.Bound(), rd, 2, *maxQueryDist))
		multiQueries = append(multiQueries, randomQuery(wi.Bound(), rd, 3+rd.Intn(3), *maxQueryDist))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		runBatch(gctx, log, "single-path", singleQueries, func(ctx context.Context, q query) queryResult {
			start := time.Now()
			route, err := e.ShortestPath(ctx, q.waypoints[0], q.waypoints[1])
			res := queryResult{err: err, latency: time.Since(start)}
			if err == nil {
				res.unreachable = !route.Result.Found()
			}
			return res
		})
		return nil
	})
	g.Go(func() error {
		runBatch(gctx, log, "multi-stop", multiQueries, func(ctx context.Context, q query) queryResult {
			start := time.Now()
			_, err := e.MultiStop(ctx, q.waypoints)
			return queryResult{err: err, latency: time.Since(start)}
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Fatal("evaluation", zap.Error(err))
	}
}
