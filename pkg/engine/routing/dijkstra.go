package routing

import (
	"github.com/lintang-b-s/navigatorx-emergency/pkg"
	da "github.com/lintang-b-s/navigatorx-emergency/pkg/datastructure"
)

type Dijkstra struct {
	graph *da.Graph

	info []VertexInfo

	pq *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewDijkstra(graph *da.Graph) *Dijkstra {
	return &Dijkstra{
		graph:           graph,
		info:            make([]VertexInfo, 0),
		pq:              da.NewFourAryHeap[da.Index](),
		numSettledNodes: 0,
	}
}

// ShortestPath. single-source shortest paths from s to all other vertices. after the search is done the
// resolved target is the facility with the smallest finalized distance, ties go to the smallest facility id.
func (us *Dijkstra) ShortestPath(s da.Index) *SearchResult {
	us.Preallocate()

	sNode := da.NewPriorityQueueNode(0, s)
	us.info[s] = NewVertexInfo(0, da.INVALID_VERTEX_ID, sNode)
	us.pq.Insert(sNode)

	finish := false
	for !us.pq.IsEmpty() {
		if finish {
			break
		}
		finish = us.graphSearchUni()
	}

	target := da.INVALID_VERTEX_ID
	bestDist := pkg.INF_WEIGHT
	for _, f := range us.graph.GetFacilities() {
		if us.info[f].GetDist() < bestDist {
			bestDist = us.info[f].GetDist()
			target = f
		}
	}

	return buildResult(s, us.info, target, us.numSettledNodes)
}

func (us *Dijkstra) graphSearchUni() bool {
	uNode, _ := us.pq.ExtractMin()
	uId := uNode.GetItem()

	uDist := us.info[uId].GetDist()
	if uDist == pkg.INF_WEIGHT {
		// the rest of the graph is unreachable
		return true
	}
	us.numSettledNodes++

	// traverse outEdges of u
	us.graph.ForOutEdgesOf(uId, func(outArc *da.OutEdge) {
		vId := outArc.GetHead()
		newDist := uDist + outArc.GetWeight()
		relax(us.info, us.pq, uId, vId, newDist, newDist)
	})

	return false
}

func (us *Dijkstra) Preallocate() {
	numberOfVertices := us.graph.NumberOfVertices()
	us.info = make([]VertexInfo, numberOfVertices)
	initInfWeightVertexInfo(us.info)
	us.pq.Clear()
	us.pq.Preallocate(numberOfVertices)
	us.numSettledNodes = 0
}

func (us *Dijkstra) GetNumSettledNodes() int {
	return us.numSettledNodes
}
