package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func ReadConfig() error {
	setDefaults()

	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// defaults + environment are enough to run
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("WEBSOCKET_PORT", 6666)
	viper.SetDefault("PROXY_PORT", 6767)
	viper.SetDefault("API_TIMEOUT", "120s")
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)

	viper.SetDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	viper.SetDefault("OVERPASS_RATE_PER_SECOND", 1.0)
	viper.SetDefault("OVERPASS_MAX_RETRIES", 2)
	viper.SetDefault("OVERPASS_CACHE_SIZE", 256)
	viper.SetDefault("OVERPASS_TIMEOUT", "60s")
	viper.SetDefault("OSM_EXTRACT_FILE", "")

	viper.SetDefault("CORRIDOR_THRESHOLD_M", 10000.0)
	viper.SetDefault("CORRIDOR_WIDTH_M", 2000.0)
	viper.SetDefault("CORRIDOR_PADDING_M", 1000.0)
	viper.SetDefault("CIRCLE_RADIUS_FACTOR", 0.6)
	viper.SetDefault("MIN_FETCH_RADIUS_M", 300.0)
	viper.SetDefault("MULTISTOP_MARGIN_M", 500.0)
	viper.SetDefault("MULTISTOP_MAX_SPAN_M", 10000.0)
}
