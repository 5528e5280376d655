package osmparser

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	da "github.com/lintang-b-s/navigatorx-emergency/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleExtract = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="0" lon="0"/>
  <node id="2" lat="0" lon="0.001"/>
  <node id="3" lat="0" lon="0.002"/>
  <node id="4" lat="0.001" lon="0.001"/>
  <node id="5" lat="0.0011" lon="0.0011">
    <tag k="amenity" v="hospital"/>
    <tag k="name" v="RS Panti Rapih"/>
  </node>
  <node id="6" lat="-0.001" lon="0"/>
  <node id="7" lat="-0.001" lon="-0.0005"/>
  <node id="8" lat="-0.0015" lon="-0.0005"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="residential"/>
  </way>
  <way id="11">
    <nd ref="2"/>
    <nd ref="4"/>
    <tag k="highway" v="primary"/>
    <tag k="oneway" v="yes"/>
  </way>
  <way id="12">
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="highway" v="footway"/>
  </way>
  <way id="13">
    <nd ref="6"/>
    <nd ref="7"/>
    <nd ref="8"/>
    <nd ref="6"/>
    <tag k="amenity" v="hospital"/>
  </way>
</osm>`

func xmlScanner(doc string) ScannerFactory {
	return func(ctx context.Context) (osm.Scanner, error) {
		return osmxml.New(ctx, strings.NewReader(doc)), nil
	}
}

func headsOf(g *da.Graph, id da.VertexID) map[da.VertexID]float64 {
	heads := make(map[da.VertexID]float64)
	for _, e := range g.GetOutEdgesByID(id) {
		heads[g.GetVertex(e.GetHead()).GetID()] = e.GetWeight()
	}
	return heads
}

func TestParse(t *testing.T) {
	g, err := NewOsmParser(zap.NewNop()).Parse(context.Background(), xmlScanner(sampleExtract))
	require.NoError(t, err)

	assert.Equal(t, 6, g.NumberOfVertices())
	assert.Equal(t, 2, g.NumberOfFacilities())
	assert.Equal(t, 9, g.NumberOfEdges())

	// node 2 is shared by two ways, 1 and 3 are way ends
	for _, id := range []da.VertexID{"1", "2", "3", "4"} {
		v, ok := g.GetVertexByID(id)
		require.True(t, ok, "vertex %s", id)
		assert.True(t, v.IsIntersection())
	}

	from1 := headsOf(g, "1")
	require.Contains(t, from1, da.VertexID("2"))
	assert.InDelta(t, 111.19, from1["2"], 0.5)

	// oneway primary
	assert.Contains(t, headsOf(g, "2"), da.VertexID("4"))
	assert.NotContains(t, headsOf(g, "4"), da.VertexID("2"))

	// footway is not a road
	assert.NotContains(t, headsOf(g, "3"), da.VertexID("4"))

	named, ok := g.GetVertexByID("h5")
	require.True(t, ok)
	assert.True(t, named.IsFacility())
	assert.Equal(t, "RS Panti Rapih", named.GetName())
	assert.Contains(t, headsOf(g, "4"), da.VertexID("h5"))
	assert.Contains(t, headsOf(g, "h5"), da.VertexID("4"))

	unnamed, ok := g.GetVertexByID("h6")
	require.True(t, ok)
	assert.Equal(t, "hospital 6", unnamed.GetName())
	assert.Contains(t, headsOf(g, "1"), da.VertexID("h6"))
}

func TestParseWithoutRoads(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="0" lon="0"/>
  <node id="2" lat="0" lon="0.001"/>
  <way id="10"><nd ref="1"/><nd ref="2"/><tag k="highway" v="footway"/></way>
</osm>`

	_, err := NewOsmParser(zap.NewNop()).Parse(context.Background(), xmlScanner(doc))
	assert.ErrorIs(t, err, ErrNoRoads)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extract.osm")
	require.NoError(t, os.WriteFile(path, []byte(sampleExtract), 0o644))

	g, err := NewOsmParser(zap.NewNop()).ParseFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumberOfFacilities())
}

func TestParseKeepLargestComponent(t *testing.T) {
	parser := NewOsmParser(zap.NewNop())
	parser.KeepLargestComponent(true)
	g, err := parser.Parse(context.Background(), xmlScanner(sampleExtract))
	require.NoError(t, err)

	// 4 is only reachable over the oneway, so it is dropped and h5 moves to 2
	_, ok := g.GetVertexByID("4")
	assert.False(t, ok)
	assert.Equal(t, 5, g.NumberOfVertices())
	assert.Equal(t, 8, g.NumberOfEdges())
	assert.Contains(t, headsOf(g, "2"), da.VertexID("h5"))
	assert.Contains(t, headsOf(g, "h5"), da.VertexID("2"))
	assert.Contains(t, headsOf(g, "1"), da.VertexID("h6"))

	_, k := g.StronglyConnectedComponents()
	assert.Equal(t, 1, k)
}

func TestParseWeightsFollowTheWayGeometry(t *testing.T) {
	// 2 only belongs to one way, so 1 -> 3 is a single edge bending through it
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="0" lon="0"/>
  <node id="2" lat="0.001" lon="0.001"/>
  <node id="3" lat="0" lon="0.002"/>
  <way id="10"><nd ref="1"/><nd ref="2"/><nd ref="3"/><tag k="highway" v="residential"/></way>
</osm>`

	g, err := NewOsmParser(zap.NewNop()).Parse(context.Background(), xmlScanner(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumberOfVertices())
	assert.Equal(t, 2, g.NumberOfEdges())

	want := geo.PathLengthMeters([]geo.Coordinate{
		geo.NewCoordinate(0, 0), geo.NewCoordinate(0.001, 0.001), geo.NewCoordinate(0, 0.002),
	})
	from1 := headsOf(g, "1")
	require.Contains(t, from1, da.VertexID("3"))
	assert.InDelta(t, want, from1["3"], 1e-6)
	assert.InDelta(t, want, headsOf(g, "3")["1"], 1e-6)
	// longer than the straight line
	assert.Greater(t, from1["3"], geo.GreatCircleDistanceMeters(0, 0, 0, 0.002))
}
