package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/navigatorx-emergency/pkg/engine"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/http"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/logger"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	graphFile    = flag.String("graph", "", "graph document, overrides GRAPH_FILE")
	useRateLimit = flag.Bool("ratelimit", false, "enable the global rate limiter, overrides USE_RATE_LIMIT")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	if *graphFile != "" {
		viper.Set("GRAPH_FILE", *graphFile)
	}

	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	routingEngine, err := engine.NewEngineFromFile(viper.GetString("GRAPH_FILE"), viper.GetString("LOCATOR"),
		viper.GetFloat64("AVERAGE_SPEED_MPS"), viper.GetInt("HEURISTIC_CACHE_SIZE"), logger)
	if err != nil {
		logger.Fatal("initialize engine", zap.Error(err))
	}

	api := http.NewServer(logger)

	routingService := usecases.NewRoutingService(logger, routingEngine)
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	if _, err := api.Use(ctx, logger, *useRateLimit || viper.GetBool("USE_RATE_LIMIT"), routingService); err != nil {
		logger.Fatal("start api", zap.Error(err))
	}

	signal := http.GracefulShutdown()

	logger.Info("Emergency Navigatorx Server Stopping", zap.String("signal", signal.String()))
	cleanup()
	if err := api.Wait(); err != nil {
		logger.Error("api stopped with error", zap.Error(err))
	}
	logger.Info("Emergency Navigatorx Server Stopped")
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
