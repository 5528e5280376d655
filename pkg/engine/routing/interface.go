package routing

import (
	"github.com/lintang-b-s/navigatorx-emergency/pkg/datastructure"
)

// Router. single-source search that resolves a facility target.
type Router interface {
	ShortestPath(s datastructure.Index) *SearchResult
	GetNumSettledNodes() int
}
