package spatialindex

import (
	"math"

	da "github.com/lintang-b-s/navigatorx-emergency/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

const (
	// ~550 m in latitude
	initialSearchRadius = 0.005
	maxSearchRounds     = 64
)

// Rtree indexes the intersection vertices of the graph as points in (lon, lat) space.
type Rtree struct {
	tr    *rtree.RTreeG[da.Index]
	graph *da.Graph
	bbox  *da.BoundingBox // bounding box of the indexed intersections
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[da.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build. insert every intersection vertex; facility vertices are not snap candidates.
func (rt *Rtree) Build(graph *da.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	rt.graph = graph

	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)

	graph.ForVertices(func(v *da.Vertex) {
		if !v.IsIntersection() {
			return
		}
		lat, lon := v.GetLat(), v.GetLon()
		rt.tr.Insert([2]float64{lon, lat}, [2]float64{lon, lat}, v.GetIndex())

		minLat, maxLat = math.Min(minLat, lat), math.Max(maxLat, lat)
		minLon, maxLon = math.Min(minLon, lon), math.Max(maxLon, lon)
	})

	if rt.tr.Len() > 0 {
		rt.bbox = da.NewBoundingBox(minLat, minLon, maxLat, maxLon)
	}

	log.Info("R-tree spatial index built.", zap.Int("intersections", rt.tr.Len()))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius. intersections inside the square of half-width radius (degrees) around (qLat, qLon)
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []da.Index {
	results := make([]da.Index, 0, 10)
	rt.tr.Search([2]float64{qLon - radius, qLat - radius}, [2]float64{qLon + radius, qLat + radius},
		func(min, max [2]float64, data da.Index) bool {
			results = append(results, data)
			return true
		})
	return results
}

/*
NearestIntersection. same answer as the linear scan (planar euclidean distance, ties to the smallest id), but only
looks at the intersections inside a square around the query point. the square half-width r doubles until the best
candidate inside it is at distance <= r: every point outside the closed square is farther than r, so nothing
outside can beat or tie the candidate. once r covers the whole indexed bounding box every intersection is inside.
*/
func (rt *Rtree) NearestIntersection(lat, lon float64) (da.Index, bool) {
	if rt.tr.Len() == 0 || !geo.NewCoordinate(lat, lon).IsValid() {
		return da.INVALID_VERTEX_ID, false
	}

	maxRadius := rt.bbox.MaxDistanceFrom(lat, lon)
	radius := initialSearchRadius

	best := da.INVALID_VERTEX_ID
	for round := 0; round < maxSearchRounds; round++ {
		bestDist := math.Inf(1)
		best = da.INVALID_VERTEX_ID

		for _, u := range rt.SearchWithinRadius(lat, lon, radius) {
			vLat, vLon := rt.graph.GetVertexCoordinates(u)
			dist := geo.CalculateEuclideanDistance(lat, lon, vLat, vLon)
			// vertex index order is lexicographic id order
			if dist < bestDist || (dist == bestDist && u < best) {
				bestDist = dist
				best = u
			}
		}

		if best != da.INVALID_VERTEX_ID && bestDist <= radius {
			return best, true
		}
		if radius >= maxRadius {
			break
		}
		radius *= 2
	}

	return best, best != da.INVALID_VERTEX_ID
}
