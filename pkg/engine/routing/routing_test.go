package routing

import (
	"fmt"
	"math"
	"testing"

	"github.com/lintang-b-s/navigatorx-emergency/pkg"
	da "github.com/lintang-b-s/navigatorx-emergency/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func lineGraph(t testing.TB) *da.Graph {
	g, err := da.NewGraph([]*da.Vertex{
		da.NewVertex("A", 0, 0, da.INTERSECTION, ""),
		da.NewVertex("B", 1, 0, da.INTERSECTION, ""),
		da.NewVertex("C", 2, 0, da.FACILITY, "C"),
	}, map[da.VertexID][]da.EdgeSpec{
		"A": {da.NewEdgeSpec("B", 1)},
		"B": {da.NewEdgeSpec("C", 1)},
	})
	require.NoError(t, err)
	return g
}

func index(t testing.TB, g *da.Graph, id da.VertexID) da.Index {
	u, ok := g.GetIndex(id)
	require.True(t, ok, "vertex %q", id)
	return u
}

func newRouters(t testing.TB, g *da.Graph) map[string]Router {
	h, err := NewHeuristic(g, 128)
	require.NoError(t, err)
	return map[string]Router{
		"dijkstra": NewDijkstra(g),
		"astar":    NewAStar(g, h),
	}
}

// randomGraph. edge weights are never shorter than the straight line between the endpoints, so the
// straight line heuristic stays admissible.
func randomGraph(t testing.TB, rd *rand.Rand, n, m int, facilityRatio float64) *da.Graph {
	vertices := make([]*da.Vertex, n)
	for i := 0; i < n; i++ {
		category := da.INTERSECTION
		if rd.Float64() < facilityRatio {
			category = da.FACILITY
		}
		vertices[i] = da.NewVertex(da.VertexID(fmt.Sprintf("v%03d", i)), rd.Float64()*10, rd.Float64()*10,
			category, "")
	}

	adjacency := make(map[da.VertexID][]da.EdgeSpec)
	for i := 0; i < m; i++ {
		u, v := vertices[rd.Intn(n)], vertices[rd.Intn(n)]
		dist := geo.CalculateEuclideanDistance(u.GetLat(), u.GetLon(), v.GetLat(), v.GetLon())
		// integral weights produce equal-weight alternatives
		w := math.Ceil(dist * (1 + rd.Float64()))
		adjacency[u.GetID()] = append(adjacency[u.GetID()], da.NewEdgeSpec(v.GetID(), w))
	}

	g, err := da.NewGraph(vertices, adjacency)
	require.NoError(t, err)
	return g
}

func bellmanFord(g *da.Graph, s da.Index) []float64 {
	n := g.NumberOfVertices()
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = pkg.INF_WEIGHT
	}
	dist[s] = 0
	for round := 0; round < n; round++ {
		changed := false
		for u := da.Index(0); u < da.Index(n); u++ {
			if dist[u] == pkg.INF_WEIGHT {
				continue
			}
			g.ForOutEdgesOf(u, func(e *da.OutEdge) {
				if dist[u]+e.GetWeight() < dist[e.GetHead()] {
					dist[e.GetHead()] = dist[u] + e.GetWeight()
					changed = true
				}
			})
		}
		if !changed {
			break
		}
	}
	return dist
}

func pathWeight(t *testing.T, g *da.Graph, path []da.Index) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		best := pkg.INF_WEIGHT
		g.ForOutEdgesOf(path[i], func(e *da.OutEdge) {
			if e.GetHead() == path[i+1] && e.GetWeight() < best {
				best = e.GetWeight()
			}
		})
		require.NotEqual(t, pkg.INF_WEIGHT, best, "no edge %d -> %d on the path", path[i], path[i+1])
		total += best
	}
	return total
}

func TestShortestPathLineGraph(t *testing.T) {
	g := lineGraph(t)
	for name, router := range newRouters(t, g) {
		t.Run(name, func(t *testing.T) {
			res := router.ShortestPath(index(t, g, "A"))

			target, ok := res.GetTarget()
			require.True(t, ok)
			assert.Equal(t, da.VertexID("C"), g.GetVertex(target).GetID())
			assert.Equal(t, 2.0, res.GetTargetDistance())

			path, err := res.Path()
			require.NoError(t, err)
			assert.Equal(t, []da.VertexID{"A", "B", "C"}, g.GetVertexIDs(path))
		})
	}
}

func TestShortestPathUnreachableFacility(t *testing.T) {
	g, err := da.NewGraph([]*da.Vertex{
		da.NewVertex("A", 0, 0, da.INTERSECTION, ""),
		da.NewVertex("B", 1, 0, da.INTERSECTION, ""),
		da.NewVertex("H", 5, 5, da.FACILITY, "isolated"),
	}, map[da.VertexID][]da.EdgeSpec{
		"A": {da.NewEdgeSpec("B", 1)},
		"B": {da.NewEdgeSpec("A", 1)},
		"H": {da.NewEdgeSpec("A", 10)},
	})
	require.NoError(t, err)

	for name, router := range newRouters(t, g) {
		t.Run(name, func(t *testing.T) {
			res := router.ShortestPath(index(t, g, "A"))
			assert.False(t, res.Found())
			assert.Equal(t, pkg.INF_WEIGHT, res.GetTargetDistance())
			assert.Equal(t, pkg.INF_WEIGHT, res.GetDistance(index(t, g, "H")))

			path, err := res.Path()
			require.NoError(t, err)
			assert.Empty(t, path)
		})
	}
}

func TestShortestPathWithoutFacilities(t *testing.T) {
	g, err := da.NewGraph([]*da.Vertex{
		da.NewVertex("A", 0, 0, da.INTERSECTION, ""),
		da.NewVertex("B", 1, 0, da.INTERSECTION, ""),
	}, map[da.VertexID][]da.EdgeSpec{
		"A": {da.NewEdgeSpec("B", 1)},
		"B": {da.NewEdgeSpec("A", 1)},
	})
	require.NoError(t, err)

	for name, router := range newRouters(t, g) {
		t.Run(name, func(t *testing.T) {
			res := router.ShortestPath(index(t, g, "A"))
			assert.False(t, res.Found())
			assert.Equal(t, 1.0, res.GetDistance(index(t, g, "B")))
		})
	}
}

func TestDijkstraPicksNearestFacility(t *testing.T) {
	// F1 is closer on the map, F2 is closer on the road network
	g, err := da.NewGraph([]*da.Vertex{
		da.NewVertex("S", 0, 0, da.INTERSECTION, ""),
		da.NewVertex("F1", 0, 1, da.FACILITY, "F1"),
		da.NewVertex("F2", 0, -3, da.FACILITY, "F2"),
	}, map[da.VertexID][]da.EdgeSpec{
		"S": {da.NewEdgeSpec("F1", 10), da.NewEdgeSpec("F2", 4)},
	})
	require.NoError(t, err)

	for name, router := range newRouters(t, g) {
		t.Run(name, func(t *testing.T) {
			res := router.ShortestPath(index(t, g, "S"))
			target, ok := res.GetTarget()
			require.True(t, ok)
			assert.Equal(t, da.VertexID("F2"), g.GetVertex(target).GetID())
			assert.Equal(t, 4.0, res.GetTargetDistance())
		})
	}
}

func TestDijkstraFacilityTieBreaksOnSmallestID(t *testing.T) {
	g, err := da.NewGraph([]*da.Vertex{
		da.NewVertex("S", 0, 0, da.INTERSECTION, ""),
		da.NewVertex("Z", 0, 1, da.FACILITY, "Z"),
		da.NewVertex("Y", 0, -1, da.FACILITY, "Y"),
	}, map[da.VertexID][]da.EdgeSpec{
		"S": {da.NewEdgeSpec("Z", 2), da.NewEdgeSpec("Y", 2)},
	})
	require.NoError(t, err)

	res := NewDijkstra(g).ShortestPath(index(t, g, "S"))
	target, ok := res.GetTarget()
	require.True(t, ok)
	assert.Equal(t, da.VertexID("Y"), g.GetVertex(target).GetID())
}

func TestDijkstraMatchesBellmanFord(t *testing.T) {
	rd := rand.New(rand.NewSource(7))
	for trial := 0; trial < 30; trial++ {
		g := randomGraph(t, rd, 40, 160, 0.1)
		s := da.Index(rd.Intn(g.NumberOfVertices()))

		want := bellmanFord(g, s)
		res := NewDijkstra(g).ShortestPath(s)
		for u := da.Index(0); u < da.Index(g.NumberOfVertices()); u++ {
			assert.Equal(t, want[u], res.GetDistance(u), "trial %d vertex %d", trial, u)
		}

		if target, ok := res.GetTarget(); ok {
			path, err := res.Path()
			require.NoError(t, err)
			require.NotEmpty(t, path)
			assert.Equal(t, s, path[0])
			assert.Equal(t, target, path[len(path)-1])
			assert.Equal(t, res.GetTargetDistance(), pathWeight(t, g, path))
		}
	}
}

func TestAStarMatchesDijkstra(t *testing.T) {
	rd := rand.New(rand.NewSource(11))
	for trial := 0; trial < 50; trial++ {
		g := randomGraph(t, rd, 60, 240, 0.08)
		s := da.Index(rd.Intn(g.NumberOfVertices()))

		h, err := NewHeuristic(g, 64)
		require.NoError(t, err)

		dRes := NewDijkstra(g).ShortestPath(s)
		aRes := NewAStar(g, h).ShortestPath(s)

		require.Equal(t, dRes.Found(), aRes.Found(), "trial %d", trial)
		if !dRes.Found() {
			continue
		}
		assert.Equal(t, dRes.GetTargetDistance(), aRes.GetTargetDistance(), "trial %d", trial)

		path, err := aRes.Path()
		require.NoError(t, err)
		assert.Equal(t, s, path[0])
		assert.Equal(t, aRes.GetTargetDistance(), pathWeight(t, g, path))
		assert.LessOrEqual(t, aRes.GetNumSettledNodes(), g.NumberOfVertices()+g.NumberOfEdges())
	}
}

func TestShortestPathIsRepeatable(t *testing.T) {
	rd := rand.New(rand.NewSource(3))
	g := randomGraph(t, rd, 50, 200, 0.1)
	s := da.Index(0)

	for name, router := range newRouters(t, g) {
		t.Run(name, func(t *testing.T) {
			first := router.ShortestPath(s)
			firstPath, err := first.Path()
			require.NoError(t, err)

			second := router.ShortestPath(s)
			secondPath, err := second.Path()
			require.NoError(t, err)

			assert.Equal(t, first.GetPredecessors(), second.GetPredecessors())
			assert.Equal(t, firstPath, secondPath)
			assert.Equal(t, first.GetNumSettledNodes(), second.GetNumSettledNodes())
		})
	}
}

func TestHeuristic(t *testing.T) {
	g := lineGraph(t)
	h, err := NewHeuristic(g, 2)
	require.NoError(t, err)

	assert.Equal(t, 2.0, h.Estimate(index(t, g, "A")))
	assert.Equal(t, 1.0, h.Estimate(index(t, g, "B")))
	assert.Equal(t, 0.0, h.Estimate(index(t, g, "C")))
	assert.Equal(t, 2, h.CacheLen())

	// cached value is returned unchanged
	assert.Equal(t, 1.0, h.Estimate(index(t, g, "B")))

	uncached, err := NewHeuristic(g, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, uncached.Estimate(index(t, g, "A")))
	assert.Equal(t, 0, uncached.CacheLen())
}

func TestHeuristicWithoutFacilities(t *testing.T) {
	g, err := da.NewGraph([]*da.Vertex{da.NewVertex("A", 3, 4, da.INTERSECTION, "")}, nil)
	require.NoError(t, err)

	h, err := NewHeuristic(g, 8)
	require.NoError(t, err)
	assert.Equal(t, 0.0, h.Estimate(0))
}

func TestReconstructPath(t *testing.T) {
	inv := da.INVALID_VERTEX_ID
	tests := []struct {
		name         string
		predecessors []da.Index
		target       da.Index
		want         []da.Index
		wantErr      error
	}{
		{
			name:         "no target",
			predecessors: []da.Index{inv, 0},
			target:       inv,
			want:         []da.Index{},
		},
		{
			name:         "target is the source",
			predecessors: []da.Index{inv, 0},
			target:       0,
			want:         []da.Index{0},
		},
		{
			name:         "chain",
			predecessors: []da.Index{inv, 3, 1, 0},
			target:       2,
			want:         []da.Index{0, 3, 1, 2},
		},
		{
			name:         "cycle",
			predecessors: []da.Index{1, 2, 0},
			target:       2,
			want:         []da.Index{},
			wantErr:      ErrPredecessorCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReconstructPath(tt.predecessors, tt.target)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func BenchmarkDijkstra(b *testing.B) {
	rd := rand.New(rand.NewSource(1))
	g := randomGraph(b, rd, 5000, 20000, 0.01)
	dijkstra := NewDijkstra(g)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dijkstra.ShortestPath(da.Index(i % g.NumberOfVertices()))
	}
}

func BenchmarkAStar(b *testing.B) {
	rd := rand.New(rand.NewSource(1))
	g := randomGraph(b, rd, 5000, 20000, 0.01)
	h, err := NewHeuristic(g, pkg.DEFAULT_HEURISTIC_CACHE)
	require.NoError(b, err)
	astar := NewAStar(g, h)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		astar.ShortestPath(da.Index(i % g.NumberOfVertices()))
	}
}
