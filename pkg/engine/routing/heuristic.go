package routing

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/geo"
)

// Heuristic. planar euclidean distance from a vertex to the closest facility, in coordinate units.
// 0 when the graph has no facility. never larger than the remaining road distance as long as every edge weight is at
// least the straight line distance between its endpoints, and consistent under the same condition.
type Heuristic struct {
	graph      *datastructure.Graph
	facilities []datastructure.Index
	cache      *lru.Cache[datastructure.Index, float64] // nil when caching is off
}

// NewHeuristic. cacheSize <= 0 disables the memo cache.
func NewHeuristic(graph *datastructure.Graph, cacheSize int) (*Heuristic, error) {
	h := &Heuristic{
		graph:      graph,
		facilities: graph.GetFacilities(),
	}
	if cacheSize > 0 {
		cache, err := lru.New[datastructure.Index, float64](cacheSize)
		if err != nil {
			return nil, err
		}
		h.cache = cache
	}
	return h, nil
}

func (h *Heuristic) Estimate(u datastructure.Index) float64 {
	if len(h.facilities) == 0 {
		return 0
	}
	if h.cache != nil {
		if est, ok := h.cache.Get(u); ok {
			return est
		}
	}

	uLat, uLon := h.graph.GetVertexCoordinates(u)
	est := -1.0
	for _, f := range h.facilities {
		fLat, fLon := h.graph.GetVertexCoordinates(f)
		dist := geo.CalculateEuclideanDistance(uLat, uLon, fLat, fLon)
		if est < 0 || dist < est {
			est = dist
		}
	}

	if h.cache != nil {
		h.cache.Add(u, est)
	}
	return est
}

func (h *Heuristic) CacheLen() int {
	if h.cache == nil {
		return 0
	}
	return h.cache.Len()
}
