package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/navigatorx-emergency/pkg/logger"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/osmparser"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/util"
	"go.uber.org/zap"
)

var (
	mapFile   = flag.String("f", "./data/heidelberg.osm.pbf", "openstreetmap extract (.osm.pbf or .osm)")
	graphFile = flag.String("o", "./data/graph.json", "output graph document (.json or .json.bz2)")
	largest   = flag.Bool("largest-scc", true, "keep only the largest strongly connected road component")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	osmParser := osmparser.NewOsmParser(logger)
	osmParser.KeepLargestComponent(*largest)
	graph, err := osmParser.ParseFile(context.Background(), *mapFile)
	if err != nil {
		logger.Fatal("parse openstreetmap extract", zap.Error(err), zap.String("mapFile", *mapFile))
	}

	if err := graph.WriteGraph(*graphFile); err != nil {
		logger.Fatal("write graph", zap.Error(err), zap.String("graphFile", *graphFile))
	}

	logger.Sugar().Infof("Preprocessing completed successfully. graph written to %s", *graphFile)
}
