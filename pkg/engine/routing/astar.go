package routing

import (
	da "github.com/lintang-b-s/navigatorx-emergency/pkg/datastructure"
)

// AStar. goal-directed search towards the set of facilities. the priority of a vertex is g(v) + h(v) where h is
// the straight line distance to the closest facility. stops as soon as a facility is extracted from pq.
type AStar struct {
	graph     *da.Graph
	heuristic *Heuristic

	info []VertexInfo

	pq *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewAStar(graph *da.Graph, heuristic *Heuristic) *AStar {
	return &AStar{
		graph:           graph,
		heuristic:       heuristic,
		info:            make([]VertexInfo, 0),
		pq:              da.NewFourAryHeap[da.Index](),
		numSettledNodes: 0,
	}
}

func (as *AStar) ShortestPath(s da.Index) *SearchResult {
	as.Preallocate()

	sNode := da.NewPriorityQueueNode(as.heuristic.Estimate(s), s)
	as.info[s] = NewVertexInfo(0, da.INVALID_VERTEX_ID, sNode)
	as.pq.Insert(sNode)

	target := da.INVALID_VERTEX_ID
	for !as.pq.IsEmpty() {
		uNode, _ := as.pq.ExtractMin()
		uId := uNode.GetItem()
		as.numSettledNodes++

		if as.graph.IsFacility(uId) {
			target = uId
			break
		}

		uDist := as.info[uId].GetDist()
		as.graph.ForOutEdgesOf(uId, func(outArc *da.OutEdge) {
			vId := outArc.GetHead()
			tentativeG := uDist + outArc.GetWeight()
			if !(tentativeG < as.info[vId].GetDist()) {
				return
			}
			relax(as.info, as.pq, uId, vId, tentativeG, tentativeG+as.heuristic.Estimate(vId))
		})
	}

	return buildResult(s, as.info, target, as.numSettledNodes)
}

func (as *AStar) Preallocate() {
	numberOfVertices := as.graph.NumberOfVertices()
	as.info = make([]VertexInfo, numberOfVertices)
	initInfWeightVertexInfo(as.info)
	as.pq.Clear()
	as.pq.Preallocate(numberOfVertices)
	as.numSettledNodes = 0
}

func (as *AStar) GetNumSettledNodes() int {
	return as.numSettledNodes
}
