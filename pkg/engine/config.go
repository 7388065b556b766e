package engine

import (
	"github.com/spf13/viper"
)

// Config. fetch-region sizing, all distances in meters.
type Config struct {
	CorridorThreshold  float64
	CorridorWidth      float64
	CorridorPadding    float64
	CircleRadiusFactor float64
	MinFetchRadius     float64
	MultiStopMargin    float64
	MultiStopMaxSpan   float64
}

func DefaultConfig() Config {
	return Config{
		CorridorThreshold:  10000,
		CorridorWidth:      2000,
		CorridorPadding:    1000,
		CircleRadiusFactor: 0.6,
		MinFetchRadius:     300,
		MultiStopMargin:    500,
		MultiStopMaxSpan:   10000,
	}
}

// ConfigFromViper. reads the config keys set up by util.ReadConfig.
func ConfigFromViper() Config {
	return Config{
		CorridorThreshold:  viper.GetFloat64("CORRIDOR_THRESHOLD_M"),
		CorridorWidth:      viper.GetFloat64("CORRIDOR_WIDTH_M"),
		CorridorPadding:    viper.GetFloat64("CORRIDOR_PADDING_M"),
		CircleRadiusFactor: viper.GetFloat64("CIRCLE_RADIUS_FACTOR"),
		MinFetchRadius:     viper.GetFloat64("MIN_FETCH_RADIUS_M"),
		MultiStopMargin:    viper.GetFloat64("MULTISTOP_MARGIN_M"),
		MultiStopMaxSpan:   viper.GetFloat64("MULTISTOP_MAX_SPAN_M"),
	}
}
