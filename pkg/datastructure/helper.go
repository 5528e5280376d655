package datastructure

import "math"

const (
	EPS = 1e-6
)

// equal operator
func Eq(a, b float64) bool {
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return a == b
	}
	return math.Abs(a-b) <= EPS
}
