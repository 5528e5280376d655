package usecases

import (
	"github.com/lintang-b-s/navigatorx-emergency/pkg/engine"
	"go.uber.org/zap"
)

type RoutingService struct {
	log    *zap.Logger
	engine RoutingEngine
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine) *RoutingService {
	return &RoutingService{
		log:    log,
		engine: engine,
	}
}

// NearestFacility. algorithm is "dijkstra", "astar" or empty (dijkstra).
func (rs *RoutingService) NearestFacility(lat, lon float64, algorithm string) (*engine.Route, error) {
	alg, err := engine.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}

	route, err := rs.engine.NearestFacility(lat, lon, alg)
	if err != nil {
		return nil, err
	}

	if !route.Snapped {
		rs.log.Warn("query point could not be snapped to the road network",
			zap.Float64("lat", lat), zap.Float64("lon", lon))
	} else if !route.Found {
		rs.log.Info("no facility reachable", zap.String("source", string(route.Source)),
			zap.String("algorithm", string(alg)))
	} else {
		rs.log.Debug("nearest facility found", zap.String("source", string(route.Source)),
			zap.String("facility", string(route.Facility.ID)), zap.Float64("distance", route.Distance),
			zap.Int("settledVertices", route.SettledVertices), zap.String("algorithm", string(alg)))
	}
	return route, nil
}

func (rs *RoutingService) Facilities() []engine.FacilityInfo {
	return rs.engine.GetFacilities()
}

func (rs *RoutingService) GraphSummary() engine.GraphSummary {
	return rs.engine.GetGraphSummary()
}

func (rs *RoutingService) GraphGeometry() engine.GraphGeometry {
	return rs.engine.GetGraphGeometry()
}
