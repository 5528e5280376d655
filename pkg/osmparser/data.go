package osmparser

type NodeType uint8

const (
	BETWEEN_NODE NodeType = iota
	END_NODE
	JUNCTION_NODE
)

type nodeCoord struct {
	lat float64
	lon float64
}

type osmWay struct {
	id       int64
	nodes    []int64
	forward  bool
	backward bool
}

type hospital struct {
	osmID int64
	name  string
}

// edge. directed road segment between two intersections, distance in meter
type edge struct {
	from     int64
	to       int64
	distance float64
}
