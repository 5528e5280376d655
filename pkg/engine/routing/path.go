package routing

import (
	"errors"

	da "github.com/lintang-b-s/navigatorx-emergency/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/util"
)

var (
	ErrPredecessorCycle = errors.New("predecessor chain does not end at a source")
)

// ReconstructPath. walk the predecessor links back from target and return the route source -> target.
// the walk is bounded by the number of vertices, a longer chain means the predecessor links contain a cycle.
func ReconstructPath(predecessors []da.Index, target da.Index) ([]da.Index, error) {
	path := make([]da.Index, 0)
	if target == da.INVALID_VERTEX_ID {
		return path, nil
	}

	n := len(predecessors)
	for cur := target; cur != da.INVALID_VERTEX_ID; cur = predecessors[cur] {
		if len(path) >= n || int(cur) >= n {
			return []da.Index{}, util.WrapErrorf(ErrPredecessorCycle, util.ErrInternalServerError,
				"path reconstruction from vertex %d exceeded %d steps", target, n)
		}
		path = append(path, cur)
	}

	return util.ReverseG(path), nil
}
