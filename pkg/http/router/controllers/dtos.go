package controllers

import (
	"github.com/lintang-b-s/navigatorx-emergency/pkg/engine"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/geo"
)

type nearestFacilityRequest struct {
	Lat       float64 `json:"lat" validate:"min=-90,max=90"`
	Lon       float64 `json:"lon" validate:"min=-180,max=180"`
	Algorithm string  `json:"algorithm"` // parsed by engine.ParseAlgorithm
}

type facilityResponse struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func NewFacilityResponse(f engine.FacilityInfo) facilityResponse {
	return facilityResponse{
		ID:   string(f.ID),
		Name: f.Name,
		Lat:  f.Coordinate.Lat,
		Lon:  f.Coordinate.Lon,
	}
}

func NewFacilitiesResponse(facilities []engine.FacilityInfo) []facilityResponse {
	resp := make([]facilityResponse, 0, len(facilities))
	for _, f := range facilities {
		resp = append(resp, NewFacilityResponse(f))
	}
	return resp
}

// nearestFacilityResponse. distance (meter) and eta (minute) are null when no facility was reached.
type nearestFacilityResponse struct {
	Algorithm       string            `json:"algorithm"`
	Snapped         bool              `json:"snapped"`
	Found           bool              `json:"found"`
	Source          string            `json:"source,omitempty"`
	Facility        *facilityResponse `json:"facility"`
	Path            []string          `json:"path"`
	Polyline        string            `json:"polyline"`
	Distance        *float64          `json:"distance"`
	Eta             *float64          `json:"eta"`
	SettledVertices int               `json:"settled_vertices"`
}

func NewNearestFacilityResponse(route *engine.Route) nearestFacilityResponse {
	path := make([]string, 0, len(route.Path))
	for _, id := range route.Path {
		path = append(path, string(id))
	}

	resp := nearestFacilityResponse{
		Algorithm:       string(route.Algorithm),
		Snapped:         route.Snapped,
		Found:           route.Found,
		Source:          string(route.Source),
		Path:            path,
		Polyline:        geo.PolylineFromCoords(route.Coordinates),
		SettledVertices: route.SettledVertices,
	}
	if route.Found {
		facility := NewFacilityResponse(*route.Facility)
		dist, eta := route.Distance, route.EtaMinutes
		resp.Facility = &facility
		resp.Distance = &dist
		resp.Eta = &eta
	}
	return resp
}

type boundingBoxResponse struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

type graphResponse struct {
	Vertices    int                  `json:"vertices"`
	Edges       int                  `json:"edges"`
	Facilities  int                  `json:"facilities"`
	Components  int                  `json:"components"`
	BoundingBox *boundingBoxResponse `json:"bounding_box"`
}

func NewGraphResponse(summary engine.GraphSummary) graphResponse {
	resp := graphResponse{
		Vertices:   summary.Vertices,
		Edges:      summary.Edges,
		Facilities: summary.Facilities,
		Components: summary.Components,
	}
	if bb := summary.BoundingBox; bb != nil {
		resp.BoundingBox = &boundingBoxResponse{
			MinLat: bb.GetMinLat(),
			MinLon: bb.GetMinLon(),
			MaxLat: bb.GetMaxLat(),
			MaxLon: bb.GetMaxLon(),
		}
	}
	return resp
}

type vertexResponse struct {
	ID   string  `json:"id"`
	Type string  `json:"type"`
	Name string  `json:"name,omitempty"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type edgeResponse struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Weight   float64 `json:"weight"`
	Polyline string  `json:"polyline"`
}

type graphGeometryResponse struct {
	Vertices []vertexResponse `json:"vertices"`
	Edges    []edgeResponse   `json:"edges"`
}

func NewGraphGeometryResponse(geometry engine.GraphGeometry) graphGeometryResponse {
	resp := graphGeometryResponse{
		Vertices: make([]vertexResponse, 0, len(geometry.Vertices)),
		Edges:    make([]edgeResponse, 0, len(geometry.Edges)),
	}
	for _, v := range geometry.Vertices {
		resp.Vertices = append(resp.Vertices, vertexResponse{
			ID:   string(v.ID),
			Type: v.Category.String(),
			Name: v.Name,
			Lat:  v.Coordinate.Lat,
			Lon:  v.Coordinate.Lon,
		})
	}
	for _, e := range geometry.Edges {
		resp.Edges = append(resp.Edges, edgeResponse{
			From:     string(e.From),
			To:       string(e.To),
			Weight:   e.Weight,
			Polyline: geo.PolylineFromCoords(e.Coordinates),
		})
	}
	return resp
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
