package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/navigatorx-emergency/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routingService RoutingService
	log            *zap.Logger
}

func New(routingService RoutingService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routingService: routingService,
		log:            log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.GET("/nearestFacility", api.nearestFacility)
	group.GET("/facilities", api.facilities)
	group.GET("/graph", api.graph)
	group.GET("/graph/geometry", api.graphGeometry)
}

// nearestFacility
//
//	@Summary		route from a point to the nearest emergency facility
//	@Tags			routing
//	@Produce		json
//	@Param			lat			query		number	true	"latitude of the query point"
//	@Param			lon			query		number	true	"longitude of the query point"
//	@Param			algorithm	query		string	false	"dijkstra (default) or astar"
//	@Success		200			{object}	nearestFacilityResponse
//	@Failure		400			{object}	errorResponse
//	@Failure		500			{object}	errorResponse
//	@Router			/nearestFacility [get]
func (api *routingAPI) nearestFacility(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request nearestFacilityRequest
		err     error
	)

	query := r.URL.Query()

	request.Lat, err = strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lat is required and must be a valid float"))
		return
	}
	request.Lon, err = strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("lon is required and must be a valid float"))
		return
	}
	request.Algorithm = query.Get("algorithm")

	if err := validateStruct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	route, err := api.routingService.NearestFacility(request.Lat, request.Lon, request.Algorithm)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewNearestFacilityResponse(route)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// facilities
//
//	@Summary	list every emergency facility of the loaded graph
//	@Tags		graph
//	@Produce	json
//	@Success	200	{array}	facilityResponse
//	@Router		/facilities [get]
func (api *routingAPI) facilities(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewFacilitiesResponse(api.routingService.Facilities())},
		nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// graph
//
//	@Summary	size and bounding box of the loaded graph
//	@Tags		graph
//	@Produce	json
//	@Success	200	{object}	graphResponse
//	@Router		/graph [get]
func (api *routingAPI) graph(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewGraphResponse(api.routingService.GraphSummary())},
		nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// graphGeometry
//
//	@Summary	every vertex and edge of the loaded graph, edges as encoded polylines
//	@Tags		graph
//	@Produce	json
//	@Success	200	{object}	graphGeometryResponse
//	@Router		/graph/geometry [get]
func (api *routingAPI) graphGeometry(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewGraphGeometryResponse(api.routingService.GraphGeometry())}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
