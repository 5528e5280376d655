package snap

import (
	"testing"

	da "github.com/lintang-b-s/navigatorx-emergency/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGraph(t *testing.T, vertices []*da.Vertex) *da.Graph {
	g, err := da.NewGraph(vertices, nil)
	require.NoError(t, err)
	return g
}

func TestLocate(t *testing.T) {
	g := buildGraph(t, []*da.Vertex{
		da.NewVertex("A", 0, 0, da.INTERSECTION, ""),
		da.NewVertex("B", 1, 0, da.INTERSECTION, ""),
		da.NewVertex("C", 2, 0, da.FACILITY, "hospital"),
	})

	testCases := []struct {
		name     string
		lat, lon float64
		want     da.VertexID
	}{
		{name: "coincident with A", lat: 0, lon: 0, want: "A"},
		{name: "coincident with B", lat: 1, lon: 0, want: "B"},
		{name: "closer to B", lat: 0.6, lon: 0.1, want: "B"},
		// C is closer but is a facility
		{name: "facility is never snapped", lat: 2, lon: 0, want: "B"},
		{name: "far away", lat: -50, lon: 120, want: "A"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Locate(tt.lat, tt.lon, g)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocateTieBreaksOnSmallestID(t *testing.T) {
	g := buildGraph(t, []*da.Vertex{
		da.NewVertex("z", 1, 0, da.INTERSECTION, ""),
		da.NewVertex("m", -1, 0, da.INTERSECTION, ""),
		da.NewVertex("q", 0, 1, da.INTERSECTION, ""),
	})

	got, ok := Locate(0, 0, g)
	assert.True(t, ok)
	assert.Equal(t, da.VertexID("m"), got)
}

func TestLocateWithoutIntersections(t *testing.T) {
	g := buildGraph(t, []*da.Vertex{
		da.NewVertex("H", 0, 0, da.FACILITY, "hospital"),
	})

	_, ok := Locate(0, 0, g)
	assert.False(t, ok)

	_, ok = Locate(0, 0, buildGraph(t, nil))
	assert.False(t, ok)
}
