package engine

import (
	"context"

	"github.com/lintang-b-s/osmroute/pkg/overpass"
	"github.com/lintang-b-s/osmroute/pkg/spatialindex"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NewWayFetcherFromViper. offline extract index when OSM_EXTRACT_FILE is set, overpass otherwise.
func NewWayFetcherFromViper(ctx context.Context, log *zap.Logger) (WayFetcher, error) {
	if extract := viper.GetString("OSM_EXTRACT_FILE"); extract != "" {
		wi := spatialindex.NewWayIndex(log)
		if err := wi.LoadExtract(ctx, extract); err != nil {
			return nil, err
		}
		return wi, nil
	}

	log.Info("using overpass api", zap.String("url", viper.GetString("OVERPASS_URL")))
	client, err := overpass.NewClient(overpass.ConfigFromViper(), log)
	if err != nil {
		return nil, err
	}
	return client, nil
}
