package datastructure

import (
	"errors"
	"math"
	"sort"

	"github.com/lintang-b-s/navigatorx-emergency/pkg/geo"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/util"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
)

var (
	ErrDuplicateVertex     = errors.New("duplicate vertex")
	ErrEmptyVertexID       = errors.New("empty vertex id")
	ErrInvalidCoordinate   = errors.New("invalid vertex coordinate")
	ErrUnknownSourceVertex = errors.New("edge source vertex does not exist")
	ErrDanglingEdge        = errors.New("edge destination vertex does not exist")
	ErrInvalidWeight       = errors.New("edge weight must be a finite non-negative number")
	ErrUnknownVertexType   = errors.New("unknown vertex type")
)

// VertexID is the stable identifier of a vertex in the graph document.
type VertexID string

type VertexCategory uint8

const (
	INTERSECTION VertexCategory = iota
	FACILITY
)

func (c VertexCategory) String() string {
	if c == FACILITY {
		return "facility"
	}
	return "intersection"
}

type Vertex struct {
	lat      float64
	lon      float64
	id       VertexID
	name     string
	category VertexCategory
	index    Index // position in graph.vertices, assigned by NewGraph
}

func NewVertex(id VertexID, lat, lon float64, category VertexCategory, name string) *Vertex {
	return &Vertex{
		id:       id,
		lat:      lat,
		lon:      lon,
		category: category,
		name:     name,
		index:    INVALID_VERTEX_ID,
	}
}

func (v *Vertex) GetID() VertexID {
	return v.id
}

func (v *Vertex) GetIndex() Index {
	return v.index
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetCoordinate() geo.Coordinate {
	return geo.NewCoordinate(v.lat, v.lon)
}

func (v *Vertex) GetName() string {
	return v.name
}

func (v *Vertex) GetCategory() VertexCategory {
	return v.category
}

func (v *Vertex) IsFacility() bool {
	return v.category == FACILITY
}

func (v *Vertex) IsIntersection() bool {
	return v.category == INTERSECTION
}

// EdgeSpec is an outgoing edge as written in the graph document, keyed by its source vertex.
type EdgeSpec struct {
	To     VertexID
	Weight float64 // meter
}

func NewEdgeSpec(to VertexID, weight float64) EdgeSpec {
	return EdgeSpec{To: to, Weight: weight}
}

// OutEdge. directed edge tail -> head, weight in meter
type OutEdge struct {
	weight float64
	tail   Index
	head   Index
}

func NewOutEdge(tail, head Index, weight float64) OutEdge {
	return OutEdge{
		tail:   tail,
		head:   head,
		weight: weight,
	}
}

func (e *OutEdge) GetTail() Index {
	return e.tail
}

func (e *OutEdge) GetHead() Index {
	return e.head
}

func (e *OutEdge) GetWeight() float64 {
	return e.weight
}

// Graph. immutable road network. vertices are sorted by id so that every iteration over the vertex table is
// deterministic; out edges are stored in compressed sparse row layout and keep the document order per vertex.
type Graph struct {
	vertices   []*Vertex
	idToIndex  map[VertexID]Index
	firstOut   []Index // out edges of v are outEdges[firstOut[v]:firstOut[v+1]]
	outEdges   []OutEdge
	facilities []Index
	bbox       *BoundingBox
}

// NewGraph. build and validate the graph. every edge must start and end at a known vertex and carry a finite,
// non-negative weight; vertex ids must be unique and coordinates finite.
func NewGraph(vertices []*Vertex, adjacency map[VertexID][]EdgeSpec) (*Graph, error) {
	for i, v := range vertices {
		if v == nil || v.id == "" {
			return nil, util.WrapErrorf(ErrEmptyVertexID, util.ErrBadParamInput, "vertex at position %d has an empty id", i)
		}
	}

	sorted := make([]*Vertex, len(vertices))
	copy(sorted, vertices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].id < sorted[j].id
	})

	g := &Graph{
		vertices:   make([]*Vertex, len(sorted)),
		idToIndex:  make(map[VertexID]Index, len(sorted)),
		firstOut:   make([]Index, len(sorted)+1),
		facilities: make([]Index, 0),
	}

	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)

	for i, v := range sorted {
		if _, ok := g.idToIndex[v.id]; ok {
			return nil, util.WrapErrorf(ErrDuplicateVertex, util.ErrBadParamInput, "vertex %q is defined more than once", v.id)
		}
		if !v.GetCoordinate().IsValid() {
			return nil, util.WrapErrorf(ErrInvalidCoordinate, util.ErrBadParamInput, "vertex %q has invalid coordinates (%v, %v)",
				v.id, v.lat, v.lon)
		}

		// copy so the caller can not mutate the graph through its own pointers
		vertex := *v
		vertex.index = Index(i)
		g.vertices[i] = &vertex
		g.idToIndex[v.id] = Index(i)

		if vertex.IsFacility() {
			g.facilities = append(g.facilities, Index(i))
		}

		minLat, maxLat = math.Min(minLat, v.lat), math.Max(maxLat, v.lat)
		minLon, maxLon = math.Min(minLon, v.lon), math.Max(maxLon, v.lon)
	}

	if len(sorted) > 0 {
		g.bbox = NewBoundingBox(minLat, minLon, maxLat, maxLon)
	}

	numberOfEdges := 0
	for from, edges := range adjacency {
		if _, ok := g.idToIndex[from]; !ok {
			return nil, util.WrapErrorf(ErrUnknownSourceVertex, util.ErrBadParamInput, "edges listed for unknown vertex %q", from)
		}
		for _, e := range edges {
			if _, ok := g.idToIndex[e.To]; !ok {
				return nil, util.WrapErrorf(ErrDanglingEdge, util.ErrBadParamInput, "edge %q -> %q points to an unknown vertex",
					from, e.To)
			}
			if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight < 0 {
				return nil, util.WrapErrorf(ErrInvalidWeight, util.ErrBadParamInput, "edge %q -> %q has invalid weight %v",
					from, e.To, e.Weight)
			}
		}
		numberOfEdges += len(edges)
	}

	g.outEdges = make([]OutEdge, 0, numberOfEdges)
	for u, v := range g.vertices {
		g.firstOut[u] = Index(len(g.outEdges))
		for _, e := range adjacency[v.id] {
			g.outEdges = append(g.outEdges, NewOutEdge(Index(u), g.idToIndex[e.To], e.Weight))
		}
	}
	g.firstOut[len(g.vertices)] = Index(len(g.outEdges))

	return g, nil
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

func (g *Graph) NumberOfFacilities() int {
	return len(g.facilities)
}

func (g *Graph) GetVertex(u Index) *Vertex {
	return g.vertices[u]
}

func (g *Graph) GetVertexByID(id VertexID) (*Vertex, bool) {
	u, ok := g.idToIndex[id]
	if !ok {
		return nil, false
	}
	return g.vertices[u], true
}

func (g *Graph) GetIndex(id VertexID) (Index, bool) {
	u, ok := g.idToIndex[id]
	return u, ok
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	v := g.vertices[u]
	return v.lat, v.lon
}

func (g *Graph) IsFacility(u Index) bool {
	return g.vertices[u].IsFacility()
}

// ForVertices. iterate the vertex table in lexicographic id order.
func (g *Graph) ForVertices(handle func(v *Vertex)) {
	for _, v := range g.vertices {
		handle(v)
	}
}

func (g *Graph) GetOutDegree(u Index) int {
	return int(g.firstOut[u+1] - g.firstOut[u])
}

// ForOutEdgesOf. iterate out edges of u in document order, without copying.
func (g *Graph) ForOutEdgesOf(u Index, handle func(e *OutEdge)) {
	for i := g.firstOut[u]; i < g.firstOut[u+1]; i++ {
		handle(&g.outEdges[i])
	}
}

// GetOutEdges. copy of the out edges of u, empty if u has none.
func (g *Graph) GetOutEdges(u Index) []OutEdge {
	edges := make([]OutEdge, 0, g.GetOutDegree(u))
	edges = append(edges, g.outEdges[g.firstOut[u]:g.firstOut[u+1]]...)
	return edges
}

// GetOutEdgesByID. out edges of the vertex with the given id, empty if the vertex is unknown or has none.
func (g *Graph) GetOutEdgesByID(id VertexID) []OutEdge {
	u, ok := g.idToIndex[id]
	if !ok {
		return []OutEdge{}
	}
	return g.GetOutEdges(u)
}

// GetFacilities. facility vertices in lexicographic id order.
func (g *Graph) GetFacilities() []Index {
	facilities := make([]Index, len(g.facilities))
	copy(facilities, g.facilities)
	return facilities
}

// GetBoundingBox. nil for an empty graph.
func (g *Graph) GetBoundingBox() *BoundingBox {
	return g.bbox
}

// GetVertexIDs. ids of the given vertices, in the same order.
func (g *Graph) GetVertexIDs(path []Index) []VertexID {
	ids := make([]VertexID, len(path))
	for i, u := range path {
		ids[i] = g.vertices[u].id
	}
	return ids
}

func (g *Graph) GetCoordinates(path []Index) []geo.Coordinate {
	coords := make([]geo.Coordinate, len(path))
	for i, u := range path {
		coords[i] = g.vertices[u].GetCoordinate()
	}
	return coords
}
