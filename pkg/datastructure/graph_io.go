package datastructure

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/navigatorx-emergency/pkg"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/util"
)

/*
graph document:

	{
	  "nodes": { "<id>": { "coordinates": [lat, lng], "type": "intersection" | "hospital", "name": "..." } },
	  "edges": { "<id>": [ { "to": "<id>", "weight": <meter> } ] }
	}

files ending in .bz2 are bzip2 compressed.
*/
type graphDocument struct {
	Nodes map[string]nodeDocument   `json:"nodes"`
	Edges map[string][]edgeDocument `json:"edges"`
}

type nodeDocument struct {
	Coordinates []float64 `json:"coordinates"`
	Type        string    `json:"type"`
	Name        string    `json:"name,omitempty"`
}

type edgeDocument struct {
	To     string   `json:"to"`
	Weight *float64 `json:"weight"`
}

func ParseVertexCategory(tipe string) (VertexCategory, error) {
	switch strings.ToLower(tipe) {
	case pkg.INTERSECTION_TYPE:
		return INTERSECTION, nil
	case pkg.HOSPITAL_TYPE, pkg.FACILITY_TYPE:
		return FACILITY, nil
	default:
		return INTERSECTION, ErrUnknownVertexType
	}
}

func documentType(c VertexCategory) string {
	if c == FACILITY {
		return pkg.HOSPITAL_TYPE
	}
	return pkg.INTERSECTION_TYPE
}

// ReadGraph. read and validate a graph document from filename.
func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(filename, ".bz2") {
		bz, err := bzip2.NewReader(r, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}

	g, err := ParseGraph(r)
	if err != nil {
		return nil, fmt.Errorf("read graph %s: %w", filename, err)
	}
	return g, nil
}

// ParseGraph. decode a graph document and build the validated graph.
func ParseGraph(r io.Reader) (*Graph, error) {
	var doc graphDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "decode graph document: %v", err)
	}

	vertices := make([]*Vertex, 0, len(doc.Nodes))
	for id, node := range doc.Nodes {
		if len(node.Coordinates) != 2 {
			return nil, util.WrapErrorf(ErrInvalidCoordinate, util.ErrBadParamInput,
				"node %q: coordinates must be [lat, lng], got %d values", id, len(node.Coordinates))
		}
		category, err := ParseVertexCategory(node.Type)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "node %q: unknown type %q", id, node.Type)
		}
		vertices = append(vertices, NewVertex(VertexID(id), node.Coordinates[0], node.Coordinates[1], category, node.Name))
	}

	adjacency := make(map[VertexID][]EdgeSpec, len(doc.Edges))
	for from, edges := range doc.Edges {
		specs := make([]EdgeSpec, 0, len(edges))
		for i, e := range edges {
			if e.Weight == nil {
				return nil, util.WrapErrorf(ErrInvalidWeight, util.ErrBadParamInput, "edge %d of %q has no weight", i, from)
			}
			specs = append(specs, NewEdgeSpec(VertexID(e.To), *e.Weight))
		}
		adjacency[VertexID(from)] = specs
	}

	return NewGraph(vertices, adjacency)
}

// WriteGraph. write the graph as a graph document; bzip2 compressed if filename ends in .bz2.
func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	return g.writeGraph(f, strings.HasSuffix(filename, ".bz2"))
}

// writeGraph. encode into f and close it. a failed close is returned too, the document may be truncated.
func (g *Graph) writeGraph(f io.WriteCloser, compress bool) error {
	w := bufio.NewWriter(f)
	err := g.encodeCompressed(w, compress)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func (g *Graph) encodeCompressed(w io.Writer, compress bool) error {
	if !compress {
		return g.Encode(w)
	}
	bz, err := bzip2.NewWriter(w, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	if err := g.Encode(bz); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

// Encode. write the graph document to w. keys are sorted by encoding/json, so the output is deterministic.
func (g *Graph) Encode(w io.Writer) error {
	doc := graphDocument{
		Nodes: make(map[string]nodeDocument, len(g.vertices)),
		Edges: make(map[string][]edgeDocument),
	}

	for u, v := range g.vertices {
		doc.Nodes[string(v.id)] = nodeDocument{
			Coordinates: []float64{v.lat, v.lon},
			Type:        documentType(v.category),
			Name:        v.name,
		}

		if g.GetOutDegree(Index(u)) == 0 {
			continue
		}
		edges := make([]edgeDocument, 0, g.GetOutDegree(Index(u)))
		g.ForOutEdgesOf(Index(u), func(e *OutEdge) {
			weight := e.GetWeight()
			edges = append(edges, edgeDocument{To: string(g.vertices[e.GetHead()].id), Weight: &weight})
		})
		doc.Edges[string(v.id)] = edges
	}

	return json.NewEncoder(w).Encode(doc)
}
