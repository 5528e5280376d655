package snap

import (
	da "github.com/lintang-b-s/navigatorx-emergency/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/geo"
)

// Locator snaps a query point to the nearest intersection vertex of the graph.
// ok is false when the graph has no intersection vertex.
type Locator interface {
	NearestIntersection(lat, lon float64) (da.Index, bool)
}

// LinearLocator scans every intersection vertex. facility vertices are never snap candidates: a click snaps to a
// road junction, not onto a hospital.
type LinearLocator struct {
	graph *da.Graph
}

func NewLinearLocator(graph *da.Graph) *LinearLocator {
	return &LinearLocator{graph: graph}
}

// NearestIntersection. vertex minimizing the planar euclidean distance to (lat, lon). ties go to the smallest id,
// which is the first one in the graph's vertex order.
func (l *LinearLocator) NearestIntersection(lat, lon float64) (da.Index, bool) {
	if !geo.NewCoordinate(lat, lon).IsValid() {
		return da.INVALID_VERTEX_ID, false
	}

	closest := da.INVALID_VERTEX_ID
	minDist := 0.0
	l.graph.ForVertices(func(v *da.Vertex) {
		if !v.IsIntersection() {
			return
		}

		dist := geo.CalculateEuclideanDistance(lat, lon, v.GetLat(), v.GetLon())
		if closest == da.INVALID_VERTEX_ID || dist < minDist {
			minDist = dist
			closest = v.GetIndex()
		}
	})

	return closest, closest != da.INVALID_VERTEX_ID
}

// Locate. id of the intersection vertex nearest to (lat, lon), using a full scan.
func Locate(lat, lon float64, graph *da.Graph) (da.VertexID, bool) {
	u, ok := NewLinearLocator(graph).NearestIntersection(lat, lon)
	if !ok {
		return "", false
	}
	return graph.GetVertex(u).GetID(), true
}
