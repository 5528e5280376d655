package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/lintang-b-s/navigatorx-emergency/pkg/concurrent"
	da "github.com/lintang-b-s/navigatorx-emergency/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/engine"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/geo"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/logger"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	graphFile  = flag.String("graph", "", "graph document, overrides GRAPH_FILE")
	points     = flag.String("points", "", "semicolon separated lat,lon scenarios, e.g. 49.41,8.69;49.40,8.67")
	numRandom  = flag.Int("n", 20, "number of random scenarios inside the graph bounding box, used when -points is empty")
	seed       = flag.Uint64("seed", 1, "seed of the random scenarios")
	numWorkers = flag.Int("workers", 1, "number of scenarios run in parallel, 0 means one per cpu. "+
		"with more than one worker the timings and allocation deltas of a scenario include its neighbours, "+
		"only the totals are meaningful")
)

type scenario struct {
	name string
	lat  float64
	lon  float64
}

type run struct {
	route      *engine.Route
	duration   time.Duration
	allocBytes uint64 // heap bytes allocated during the query
	mallocs    uint64
	err        error
}

type comparison struct {
	scenario scenario
	dijkstra run
	astar    run
}

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

	e, err := engine.NewEngineFromFile(viper.GetString("GRAPH_FILE"), viper.GetString("LOCATOR"),
		viper.GetFloat64("AVERAGE_SPEED_MPS"), viper.GetInt("HEURISTIC_CACHE_SIZE"), logger)
	if err != nil {
		logger.Fatal("initialize engine", zap.Error(err))
	}

	scenarios, err := parseScenarios(*points)
	if err != nil {
		logger.Fatal("parse scenarios", zap.Error(err))
	}
	if len(scenarios) == 0 {
		scenarios = randomScenarios(e.GetGraph().GetBoundingBox(), *numRandom, *seed)
	}
	logger.Sugar().Infof("running %d scenarios on %d workers", len(scenarios), *numWorkers)

	results := concurrent.Map(context.Background(), *numWorkers, scenarios,
		func(ctx context.Context, sc scenario) comparison {
			return compare(e, sc)
		})

	var totalDijkstra, totalAstar time.Duration
	var allocDijkstra, allocAstar uint64
	mismatches := 0
	for _, res := range results {
		if res.dijkstra.err != nil || res.astar.err != nil {
			logger.Error("scenario failed", zap.String("scenario", res.scenario.name),
				zap.NamedError("dijkstraErr", res.dijkstra.err), zap.NamedError("astarErr", res.astar.err))
			continue
		}
		d, a := res.dijkstra.route, res.astar.route
		totalDijkstra += res.dijkstra.duration
		totalAstar += res.astar.duration
		allocDijkstra += res.dijkstra.allocBytes
		allocAstar += res.astar.allocBytes

		sameTarget := d.Found == a.Found && (!d.Found || d.Facility.ID == a.Facility.ID)
		samePath := equalPath(d.Path, a.Path)
		if !da.Eq(d.Distance, a.Distance) {
			mismatches++
		}

		logger.Info("scenario",
			zap.String("scenario", res.scenario.name),
			zap.String("source", string(d.Source)),
			zap.Bool("found", d.Found),
			zap.Float64("distance", d.Distance),
			zap.Float64("routeLength", util.RoundFloat(geo.PathLengthMeters(d.Coordinates), 1)),
			zap.Float64("eta", d.EtaMinutes),
			zap.Duration("dijkstraTime", res.dijkstra.duration),
			zap.Duration("astarTime", res.astar.duration),
			zap.Int("dijkstraSettled", d.SettledVertices),
			zap.Int("astarSettled", a.SettledVertices),
			zap.Uint64("dijkstraAllocBytes", res.dijkstra.allocBytes),
			zap.Uint64("astarAllocBytes", res.astar.allocBytes),
			zap.Uint64("dijkstraMallocs", res.dijkstra.mallocs),
			zap.Uint64("astarMallocs", res.astar.mallocs),
			zap.Float64("speedup", speedup(res.dijkstra.duration, res.astar.duration)),
			zap.Bool("sameTarget", sameTarget),
			zap.Bool("samePath", samePath),
		)
	}

	logger.Info("benchmark done",
		zap.Int("scenarios", len(scenarios)),
		zap.Duration("dijkstraTotal", totalDijkstra),
		zap.Duration("astarTotal", totalAstar),
		zap.Float64("speedup", speedup(totalDijkstra, totalAstar)),
		zap.Uint64("dijkstraAllocBytes", allocDijkstra),
		zap.Uint64("astarAllocBytes", allocAstar),
		zap.Int("distanceMismatches", mismatches),
	)
}

// compare. snap once, then run both searches from the same source.
func compare(e *engine.Engine, sc scenario) comparison {
	res := comparison{scenario: sc}
	source, ok := e.Snap(sc.lat, sc.lon)
	if !ok {
		res.dijkstra.route = &engine.Route{Algorithm: engine.DIJKSTRA}
		res.astar.route = &engine.Route{Algorithm: engine.ASTAR}
		return res
	}

	res.dijkstra = timeRun(func() (*engine.Route, error) { return e.NearestFacilityFromVertex(source, engine.DIJKSTRA) })
	res.astar = timeRun(func() (*engine.Route, error) { return e.NearestFacilityFromVertex(source, engine.ASTAR) })
	return res
}

// timeRun. wall time and heap allocation of one query. memstats are process wide, so the allocation deltas are
// only per query when a single worker runs.
func timeRun(query func() (*engine.Route, error)) run {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()
	route, err := query()
	duration := time.Since(start)
	runtime.ReadMemStats(&after)
	return run{
		route:      route,
		duration:   duration,
		allocBytes: after.TotalAlloc - before.TotalAlloc,
		mallocs:    after.Mallocs - before.Mallocs,
		err:        err,
	}
}

func speedup(dijkstra, astar time.Duration) float64 {
	if astar <= 0 {
		return 0
	}
	return util.RoundFloat(float64(dijkstra)/float64(astar), 2)
}

func equalPath(a, b []da.VertexID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func parseScenarios(s string) ([]scenario, error) {
	scenarios := make([]scenario, 0)
	if strings.TrimSpace(s) == "" {
		return scenarios, nil
	}
	for i, p := range strings.Split(s, ";") {
		latStr, lonStr, ok := strings.Cut(strings.TrimSpace(p), ",")
		if !ok {
			return nil, fmt.Errorf("scenario %d: expected lat,lon, got %q", i, p)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		scenarios = append(scenarios, scenario{name: fmt.Sprintf("point-%d", i), lat: lat, lon: lon})
	}
	return scenarios, nil
}

func randomScenarios(bbox *da.BoundingBox, n int, seed uint64) []scenario {
	scenarios := make([]scenario, 0, n)
	if bbox == nil {
		return scenarios
	}
	rd := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		lat := bbox.GetMinLat() + rd.Float64()*(bbox.GetMaxLat()-bbox.GetMinLat())
		lon := bbox.GetMinLon() + rd.Float64()*(bbox.GetMaxLon()-bbox.GetMinLon())
		scenarios = append(scenarios, scenario{name: fmt.Sprintf("random-%d", i), lat: lat, lon: lon})
	}
	return scenarios
}
