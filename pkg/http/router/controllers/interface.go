package controllers

import (
	"github.com/lintang-b-s/navigatorx-emergency/pkg/engine"
)

type RoutingService interface {
	NearestFacility(lat, lon float64, algorithm string) (*engine.Route, error)
	Facilities() []engine.FacilityInfo
	GraphSummary() engine.GraphSummary
	GraphGeometry() engine.GraphGeometry
}
