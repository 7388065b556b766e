package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/osmroute/pkg/engine"
	"github.com/lintang-b-s/osmroute/pkg/http"
	"github.com/lintang-b-s/osmroute/pkg/http/usecases"
	"github.com/lintang-b-s/osmroute/pkg/logger"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	useRateLimit = flag.Bool("rate_limit", true, "limit requests per client ip (RATE_LIMIT_RPS)")
	extractFile  = flag.String("extract", "", "osm extract (.osm.pbf, .osm, .osm.bz2) to serve instead of the overpass api")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := util.ReadConfig(); err != nil {
		logger.Fatal("reading config", zap.Error(err))
	}
	if *extractFile != "" {
		viper.Set("OSM_EXTRACT_FILE", *extractFile)
	}

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	fetcher, err := engine.NewWayFetcherFromViper(ctx, logger)
	if err != nil {
		logger.Fatal("building way fetcher", zap.Error(err))
	}

	cfg := engine.ConfigFromViper()
	routingEngine := engine.NewEngine(fetcher, cfg, logger)
	routingService := usecases.NewRoutingService(logger, routingEngine, cfg.CorridorWidth, cfg.CorridorPadding)

	api := http.NewServer(logger)
	if _, err := api.Use(ctx, logger, *useRateLimit, routingService); err != nil {
		logger.Fatal("starting api", zap.Error(err))
	}

	signal := http.GracefulShutdown()
	logger.Info("osmroute server stopping", zap.String("signal", signal.String()))

	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
	}
	logger.Info("osmroute server stopped")
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
