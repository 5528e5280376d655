package usecases

import (
	"github.com/lintang-b-s/navigatorx-emergency/pkg/engine"
)

type RoutingEngine interface {
	NearestFacility(lat, lon float64, alg engine.Algorithm) (*engine.Route, error)
	GetFacilities() []engine.FacilityInfo
	GetGraphSummary() engine.GraphSummary
	GetGraphGeometry() engine.GraphGeometry
}
