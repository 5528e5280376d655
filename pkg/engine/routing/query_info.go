package routing

import (
	"github.com/lintang-b-s/navigatorx-emergency/pkg"
	da "github.com/lintang-b-s/navigatorx-emergency/pkg/datastructure"
)

// VertexInfo. distance label of a vertex during one search.
type VertexInfo struct {
	dist     float64
	parent   da.Index
	heapNode *da.PriorityQueueNode[da.Index]
}

func NewVertexInfo(dist float64, parent da.Index, heapNode *da.PriorityQueueNode[da.Index]) VertexInfo {
	return VertexInfo{
		dist:     dist,
		parent:   parent,
		heapNode: heapNode,
	}
}

func (vi *VertexInfo) GetDist() float64 {
	return vi.dist
}

func (vi *VertexInfo) GetParent() da.Index {
	return vi.parent
}

func (vi *VertexInfo) GetHeapNode() *da.PriorityQueueNode[da.Index] {
	return vi.heapNode
}

func (vi *VertexInfo) isLabelled() bool {
	return vi.heapNode != nil
}

func (vi *VertexInfo) update(dist float64, parent da.Index) {
	vi.dist = dist
	vi.parent = parent
}

func initInfWeightVertexInfo(info []VertexInfo) {
	for i := range info {
		info[i] = NewVertexInfo(pkg.INF_WEIGHT, da.INVALID_VERTEX_ID, nil)
	}
}

// relax. try to improve the label of v to newDist via u. rank is the priority v gets in pq.
// v goes back into pq when it was already extracted, which only happens with an inconsistent potential.
func relax(info []VertexInfo, pq *da.MinHeap[da.Index], u, v da.Index, newDist, rank float64) bool {
	vInfo := &info[v]
	if !(newDist < vInfo.dist) {
		return false
	}

	vInfo.update(newDist, u)
	if vInfo.isLabelled() && vInfo.heapNode.InHeap() {
		// is key already in the priority queue, decrease its key
		if err := pq.DecreaseKey(vInfo.heapNode, rank); err == nil {
			return true
		}
	}

	vInfo.heapNode = da.NewPriorityQueueNode(rank, v)
	pq.Insert(vInfo.heapNode)
	return true
}

// buildResult. copy the labels out of the per-search storage.
func buildResult(source da.Index, info []VertexInfo, target da.Index, numSettledNodes int) *SearchResult {
	distances := make([]float64, len(info))
	predecessors := make([]da.Index, len(info))
	for u := range info {
		distances[u] = info[u].dist
		predecessors[u] = info[u].parent
	}
	return NewSearchResult(source, distances, predecessors, target, numSettledNodes)
}
