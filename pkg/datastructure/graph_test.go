package datastructure

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineGraphVertices() []*Vertex {
	return []*Vertex{
		NewVertex("C", 2, 0, FACILITY, "St. Vincentius"),
		NewVertex("A", 0, 0, INTERSECTION, ""),
		NewVertex("B", 1, 0, INTERSECTION, ""),
	}
}

func TestNewGraph(t *testing.T) {
	g, err := NewGraph(lineGraphVertices(), map[VertexID][]EdgeSpec{
		"A": {NewEdgeSpec("B", 1)},
		"B": {NewEdgeSpec("C", 1), NewEdgeSpec("A", 1)},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, g.NumberOfVertices())
	assert.Equal(t, 3, g.NumberOfEdges())
	assert.Equal(t, 1, g.NumberOfFacilities())

	// vertices are ordered by id
	ids := []VertexID{}
	g.ForVertices(func(v *Vertex) {
		ids = append(ids, v.GetID())
	})
	assert.Equal(t, []VertexID{"A", "B", "C"}, ids)

	c, ok := g.GetVertexByID("C")
	require.True(t, ok)
	assert.True(t, c.IsFacility())
	assert.Equal(t, "St. Vincentius", c.GetName())
	assert.Equal(t, Index(2), c.GetIndex())

	b, _ := g.GetIndex("B")
	edges := g.GetOutEdges(b)
	require.Len(t, edges, 2)
	assert.Equal(t, VertexID("C"), g.GetVertex(edges[0].GetHead()).GetID())
	assert.Equal(t, VertexID("A"), g.GetVertex(edges[1].GetHead()).GetID())

	assert.Empty(t, g.GetOutEdgesByID("C"))
	assert.Empty(t, g.GetOutEdgesByID("unknown"))
	assert.Len(t, g.GetOutEdgesByID("A"), 1)

	_, ok = g.GetVertexByID("D")
	assert.False(t, ok)

	bbox := g.GetBoundingBox()
	require.NotNil(t, bbox)
	assert.Equal(t, 0.0, bbox.GetMinLat())
	assert.Equal(t, 2.0, bbox.GetMaxLat())
}

func TestNewGraphCopiesVertices(t *testing.T) {
	vertices := lineGraphVertices()
	g, err := NewGraph(vertices, nil)
	require.NoError(t, err)

	vertices[0] = NewVertex("Z", 9, 9, INTERSECTION, "")
	_, ok := g.GetVertexByID("Z")
	assert.False(t, ok)
	assert.Equal(t, INVALID_VERTEX_ID, vertices[1].GetIndex())
}

func TestNewGraphValidation(t *testing.T) {
	testCases := []struct {
		name      string
		vertices  []*Vertex
		adjacency map[VertexID][]EdgeSpec
		wantErr   error
	}{
		{
			name:      "dangling edge",
			vertices:  lineGraphVertices(),
			adjacency: map[VertexID][]EdgeSpec{"A": {NewEdgeSpec("X", 1)}},
			wantErr:   ErrDanglingEdge,
		},
		{
			name:      "unknown source",
			vertices:  lineGraphVertices(),
			adjacency: map[VertexID][]EdgeSpec{"X": {NewEdgeSpec("A", 1)}},
			wantErr:   ErrUnknownSourceVertex,
		},
		{
			name:      "negative weight",
			vertices:  lineGraphVertices(),
			adjacency: map[VertexID][]EdgeSpec{"A": {NewEdgeSpec("B", -1)}},
			wantErr:   ErrInvalidWeight,
		},
		{
			name:      "NaN weight",
			vertices:  lineGraphVertices(),
			adjacency: map[VertexID][]EdgeSpec{"A": {NewEdgeSpec("B", math.NaN())}},
			wantErr:   ErrInvalidWeight,
		},
		{
			name:      "infinite weight",
			vertices:  lineGraphVertices(),
			adjacency: map[VertexID][]EdgeSpec{"A": {NewEdgeSpec("B", math.Inf(1))}},
			wantErr:   ErrInvalidWeight,
		},
		{
			name:     "duplicate vertex",
			vertices: append(lineGraphVertices(), NewVertex("A", 5, 5, INTERSECTION, "")),
			wantErr:  ErrDuplicateVertex,
		},
		{
			name:     "empty id",
			vertices: append(lineGraphVertices(), NewVertex("", 5, 5, INTERSECTION, "")),
			wantErr:  ErrEmptyVertexID,
		},
		{
			name:     "nil vertex",
			vertices: append(lineGraphVertices(), nil),
			wantErr:  ErrEmptyVertexID,
		},
		{
			name:     "NaN coordinate",
			vertices: append(lineGraphVertices(), NewVertex("D", math.NaN(), 5, INTERSECTION, "")),
			wantErr:  ErrInvalidCoordinate,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGraph(tt.vertices, tt.adjacency)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestEmptyGraph(t *testing.T) {
	g, err := NewGraph(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumberOfVertices())
	assert.Nil(t, g.GetBoundingBox())
	assert.Empty(t, g.GetFacilities())
}

func TestBoundingBoxMaxDistanceFrom(t *testing.T) {
	bbox := NewBoundingBox(0, 0, 3, 4)
	assert.InDelta(t, 5.0, bbox.MaxDistanceFrom(0, 0), 1e-9)
	assert.InDelta(t, 5.0, bbox.MaxDistanceFrom(3, 4), 1e-9)
	assert.InDelta(t, math.Sqrt(1.5*1.5+2*2), bbox.MaxDistanceFrom(1.5, 2), 1e-9)
}
