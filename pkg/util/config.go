package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lintang-b-s/navigatorx-emergency/pkg"
	"github.com/spf13/viper"
)

// ReadConfig. read ./data/config.yaml (if any) and environment variables, on top of the defaults.
func ReadConfig() error {
	SetConfigDefaults()

	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func SetConfigDefaults() {
	viper.SetDefault("API_PORT", pkg.DEFAULT_API_PORT)
	viper.SetDefault("API_TIMEOUT", "10s")
	viper.SetDefault("GRAPH_FILE", pkg.DEFAULT_GRAPH_FILE)
	viper.SetDefault("AVERAGE_SPEED_MPS", pkg.DEFAULT_AVERAGE_SPEED_MPS)
	viper.SetDefault("HEURISTIC_CACHE_SIZE", pkg.DEFAULT_HEURISTIC_CACHE)
	viper.SetDefault("USE_RATE_LIMIT", false)
	viper.SetDefault("RATE_LIMIT_RPS", pkg.DEFAULT_RATE_LIMIT_RPS)
	viper.SetDefault("LOCATOR", pkg.RTREE_LOCATOR)
	viper.SetDefault("LOG_LEVEL", "info")
}
