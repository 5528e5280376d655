package routing

import (
	"github.com/lintang-b-s/navigatorx-emergency/pkg"
	da "github.com/lintang-b-s/navigatorx-emergency/pkg/datastructure"
)

// SearchResult. outcome of one search from a single source. distances default to +inf and predecessors to
// INVALID_VERTEX_ID for vertices the search never reached. target is INVALID_VERTEX_ID when no facility was reached.
type SearchResult struct {
	source          da.Index
	distances       []float64
	predecessors    []da.Index
	target          da.Index
	numSettledNodes int
}

func NewSearchResult(source da.Index, distances []float64, predecessors []da.Index, target da.Index,
	numSettledNodes int) *SearchResult {
	return &SearchResult{
		source:          source,
		distances:       distances,
		predecessors:    predecessors,
		target:          target,
		numSettledNodes: numSettledNodes,
	}
}

func (r *SearchResult) GetSource() da.Index {
	return r.source
}

func (r *SearchResult) GetDistance(u da.Index) float64 {
	return r.distances[u]
}

func (r *SearchResult) GetPredecessors() []da.Index {
	return r.predecessors
}

// GetTarget. resolved facility, ok is false when none was reached.
func (r *SearchResult) GetTarget() (da.Index, bool) {
	return r.target, r.target != da.INVALID_VERTEX_ID
}

func (r *SearchResult) Found() bool {
	return r.target != da.INVALID_VERTEX_ID
}

// GetTargetDistance. +inf when no facility was reached.
func (r *SearchResult) GetTargetDistance() float64 {
	if !r.Found() {
		return pkg.INF_WEIGHT
	}
	return r.distances[r.target]
}

func (r *SearchResult) GetNumSettledNodes() int {
	return r.numSettledNodes
}

// Path. vertices from the source to the resolved target, empty when none was reached.
func (r *SearchResult) Path() ([]da.Index, error) {
	return ReconstructPath(r.predecessors, r.target)
}
