package engine

import (
	"errors"
	"math"
	"strings"

	"github.com/lintang-b-s/navigatorx-emergency/pkg"
	da "github.com/lintang-b-s/navigatorx-emergency/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/geo"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/snap"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/util"
	"go.uber.org/zap"
)

type Algorithm string

const (
	DIJKSTRA Algorithm = "dijkstra"
	ASTAR    Algorithm = "astar"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown search algorithm")
	ErrUnknownVertex    = errors.New("unknown vertex")
	ErrInvalidSpeed     = errors.New("average speed must be positive")
	ErrInvalidPoint     = errors.New("query point must have finite coordinates")
)

// ParseAlgorithm. case-insensitive, empty means dijkstra.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case DIJKSTRA, "":
		return DIJKSTRA, nil
	case ASTAR:
		return ASTAR, nil
	default:
		return "", util.WrapErrorf(ErrUnknownAlgorithm, util.ErrBadParamInput, "algorithm %q is not one of %q, %q",
			s, DIJKSTRA, ASTAR)
	}
}

type FacilityInfo struct {
	ID         da.VertexID
	Name       string
	Coordinate geo.Coordinate
}

// Route. answer of one nearest facility query. Distance (meter) and EtaMinutes are only meaningful when Found.
type Route struct {
	Algorithm       Algorithm
	Snapped         bool
	Found           bool
	Source          da.VertexID
	Facility        *FacilityInfo
	Path            []da.VertexID
	Coordinates     []geo.Coordinate
	Distance        float64
	EtaMinutes      float64
	SettledVertices int
}

type Engine struct {
	graph        *da.Graph
	locator      snap.Locator
	heuristic    *routing.Heuristic
	averageSpeed float64 // meter per second
	components   int     // strongly connected components, computed once
	log          *zap.Logger
}

func NewEngine(graph *da.Graph, locator snap.Locator, averageSpeed float64, heuristicCacheSize int,
	log *zap.Logger) (*Engine, error) {
	if !(averageSpeed > 0) || math.IsInf(averageSpeed, 1) {
		return nil, util.WrapErrorf(ErrInvalidSpeed, util.ErrBadParamInput, "invalid average speed %v", averageSpeed)
	}

	heuristic, err := routing.NewHeuristic(graph, heuristicCacheSize)
	if err != nil {
		return nil, err
	}

	_, components := graph.StronglyConnectedComponents()
	if components > 1 {
		log.Warn("road network is not strongly connected, some facilities may be unreachable",
			zap.Int("components", components))
	}

	return &Engine{
		graph:        graph,
		locator:      locator,
		heuristic:    heuristic,
		averageSpeed: averageSpeed,
		components:   components,
		log:          log,
	}, nil
}

// NewLocator. r-tree backed locator unless kind is "linear".
func NewLocator(graph *da.Graph, kind string, log *zap.Logger) snap.Locator {
	if kind == pkg.LINEAR_LOCATOR {
		return snap.NewLinearLocator(graph)
	}
	rt := spatialindex.NewRtree()
	rt.Build(graph, log)
	return rt
}

// NewEngineFromFile. read and validate the graph document, then build the engine on top of it.
func NewEngineFromFile(graphFilePath, locatorKind string, averageSpeed float64, heuristicCacheSize int,
	log *zap.Logger) (*Engine, error) {
	log.Info("Starting nearest facility query engine...")

	log.Info("Reading graph from ", zap.String("graphFilePath", graphFilePath))
	graph, err := da.ReadGraph(graphFilePath)
	if err != nil {
		return nil, err
	}
	log.Info("Graph loaded.", zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()), zap.Int("facilities", graph.NumberOfFacilities()))

	return NewEngine(graph, NewLocator(graph, locatorKind, log), averageSpeed, heuristicCacheSize, log)
}

func (e *Engine) GetGraph() *da.Graph {
	return e.graph
}

func (e *Engine) GetAverageSpeed() float64 {
	return e.averageSpeed
}

// Snap. nearest intersection of (lat, lon).
func (e *Engine) Snap(lat, lon float64) (da.VertexID, bool) {
	u, ok := e.locator.NearestIntersection(lat, lon)
	if !ok {
		return "", false
	}
	return e.graph.GetVertex(u).GetID(), true
}

// NearestFacility. snap (lat, lon) to the road network and route to the closest facility. an empty graph or a
// facility nobody can reach are not errors, Route.Snapped and Route.Found tell them apart. a NaN or infinite
// coordinate is.
func (e *Engine) NearestFacility(lat, lon float64, alg Algorithm) (*Route, error) {
	alg, err := ParseAlgorithm(string(alg))
	if err != nil {
		return nil, err
	}
	if !geo.NewCoordinate(lat, lon).IsValid() {
		return nil, util.WrapErrorf(ErrInvalidPoint, util.ErrBadParamInput, "invalid query point (%v, %v)", lat, lon)
	}

	s, ok := e.locator.NearestIntersection(lat, lon)
	if !ok {
		return &Route{Algorithm: alg, Path: []da.VertexID{}, Coordinates: []geo.Coordinate{}}, nil
	}
	return e.nearestFacilityFrom(s, alg)
}

// NearestFacilityFromVertex. same as NearestFacility but starts from a known vertex.
func (e *Engine) NearestFacilityFromVertex(id da.VertexID, alg Algorithm) (*Route, error) {
	alg, err := ParseAlgorithm(string(alg))
	if err != nil {
		return nil, err
	}

	s, ok := e.graph.GetIndex(id)
	if !ok {
		return nil, util.WrapErrorf(ErrUnknownVertex, util.ErrNotFound, "vertex %q does not exist", id)
	}
	return e.nearestFacilityFrom(s, alg)
}

func (e *Engine) newRouter(alg Algorithm) routing.Router {
	if alg == ASTAR {
		return routing.NewAStar(e.graph, e.heuristic)
	}
	return routing.NewDijkstra(e.graph)
}

func (e *Engine) nearestFacilityFrom(s da.Index, alg Algorithm) (*Route, error) {
	res := e.newRouter(alg).ShortestPath(s)

	path, err := res.Path()
	if err != nil {
		e.log.Error("path reconstruction failed", zap.Error(err), zap.String("algorithm", string(alg)))
		return nil, err
	}

	route := &Route{
		Algorithm:       alg,
		Snapped:         true,
		Source:          e.graph.GetVertex(s).GetID(),
		Path:            e.graph.GetVertexIDs(path),
		Coordinates:     e.graph.GetCoordinates(path),
		SettledVertices: res.GetNumSettledNodes(),
	}

	target, found := res.GetTarget()
	if !found {
		return route, nil
	}

	facility := e.graph.GetVertex(target)
	route.Found = true
	route.Facility = &FacilityInfo{
		ID:         facility.GetID(),
		Name:       facility.GetName(),
		Coordinate: facility.GetCoordinate(),
	}
	route.Distance = res.GetTargetDistance()
	route.EtaMinutes = e.EtaMinutes(route.Distance)
	return route, nil
}

// EtaMinutes. travel time over distance meters at the average speed, rounded to whole minutes.
func (e *Engine) EtaMinutes(distance float64) float64 {
	return math.Round(util.SecondsToMinutes(distance / e.averageSpeed))
}

// GetFacilities. every facility of the graph, ordered by id.
func (e *Engine) GetFacilities() []FacilityInfo {
	facilities := make([]FacilityInfo, 0, e.graph.NumberOfFacilities())
	for _, f := range e.graph.GetFacilities() {
		v := e.graph.GetVertex(f)
		facilities = append(facilities, FacilityInfo{
			ID:         v.GetID(),
			Name:       v.GetName(),
			Coordinate: v.GetCoordinate(),
		})
	}
	return facilities
}

type GraphSummary struct {
	Vertices    int
	Edges       int
	Facilities  int
	Components  int
	BoundingBox *da.BoundingBox // nil for an empty graph
}

func (e *Engine) GetGraphSummary() GraphSummary {
	return GraphSummary{
		Vertices:    e.graph.NumberOfVertices(),
		Edges:       e.graph.NumberOfEdges(),
		Facilities:  e.graph.NumberOfFacilities(),
		Components:  e.components,
		BoundingBox: e.graph.GetBoundingBox(),
	}
}

type VertexGeometry struct {
	ID         da.VertexID
	Category   da.VertexCategory
	Name       string
	Coordinate geo.Coordinate
}

// EdgeGeometry. one directed edge drawn as a straight segment between its endpoints.
type EdgeGeometry struct {
	From        da.VertexID
	To          da.VertexID
	Weight      float64
	Coordinates []geo.Coordinate
}

type GraphGeometry struct {
	Vertices []VertexGeometry
	Edges    []EdgeGeometry
}

// GetGraphGeometry. every vertex in id order and every edge in document order, for drawing the whole network.
func (e *Engine) GetGraphGeometry() GraphGeometry {
	geometry := GraphGeometry{
		Vertices: make([]VertexGeometry, 0, e.graph.NumberOfVertices()),
		Edges:    make([]EdgeGeometry, 0, e.graph.NumberOfEdges()),
	}

	e.graph.ForVertices(func(v *da.Vertex) {
		geometry.Vertices = append(geometry.Vertices, VertexGeometry{
			ID:         v.GetID(),
			Category:   v.GetCategory(),
			Name:       v.GetName(),
			Coordinate: v.GetCoordinate(),
		})

		e.graph.ForOutEdgesOf(v.GetIndex(), func(edge *da.OutEdge) {
			head := e.graph.GetVertex(edge.GetHead())
			geometry.Edges = append(geometry.Edges, EdgeGeometry{
				From:        v.GetID(),
				To:          head.GetID(),
				Weight:      edge.GetWeight(),
				Coordinates: []geo.Coordinate{v.GetCoordinate(), head.GetCoordinate()},
			})
		})
	})
	return geometry
}
