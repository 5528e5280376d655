package osmparser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/lintang-b-s/navigatorx-emergency/pkg"
	da "github.com/lintang-b-s/navigatorx-emergency/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/geo"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-emergency/pkg/util"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"go.uber.org/zap"
)

var (
	ErrNoRoads = errors.New("no drivable road in the extract")
)

// ScannerFactory. opens a fresh scanner over the same extract, Parse reads the extract twice.
type ScannerFactory func(ctx context.Context) (osm.Scanner, error)

type OsmParser struct {
	wayNodeMap      map[int64]NodeType
	acceptedNodeMap map[int64]nodeCoord
	ways            []osmWay
	hospitals       []hospital
	hospitalWays    map[int64]string // first node of a closed hospital way -> name
	largestOnly     bool
	logger          *zap.Logger
}

func NewOsmParser(logger *zap.Logger) *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[int64]NodeType),
		acceptedNodeMap: make(map[int64]nodeCoord),
		ways:            make([]osmWay, 0),
		hospitals:       make([]hospital, 0),
		hospitalWays:    make(map[int64]string),
		logger:          logger,
	}
}

// KeepLargestComponent. drop every road outside the largest strongly connected component before facilities are
// attached, so no facility is linked to an island the rest of the network can not reach.
func (p *OsmParser) KeepLargestComponent(keep bool) {
	p.largestOnly = keep
}

// ParseFile. .osm files are read as xml, everything else as pbf.
func (p *OsmParser) ParseFile(ctx context.Context, mapFile string) (*da.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	xml := strings.HasSuffix(mapFile, ".osm") || strings.HasSuffix(mapFile, ".xml")
	return p.Parse(ctx, func(ctx context.Context) (osm.Scanner, error) {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		if xml {
			return osmxml.New(ctx, f), nil
		}
		return osmpbf.New(ctx, f, 0), nil
	})
}

// Parse. first pass collects accepted ways and hospitals, second pass collects the coordinates of the nodes the first
// pass needs. both passes must not be parallel.
func (p *OsmParser) Parse(ctx context.Context, newScanner ScannerFactory) (*da.Graph, error) {
	scanner, err := newScanner(ctx)
	if err != nil {
		return nil, err
	}
	countWays := 0
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Way:
			if o.Tags.Find("amenity") == pkg.HOSPITAL_TYPE && len(o.Nodes) > 0 && o.Nodes[0].ID == o.Nodes[len(o.Nodes)-1].ID {
				p.hospitalWays[int64(o.Nodes[0].ID)] = o.Tags.Find("name")
			}

			if len(o.Nodes) < 2 || !acceptOsmWay(o) {
				continue
			}
			if (countWays+1)%50000 == 0 {
				p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
			}
			countWays++
			p.processWay(o)
		case *osm.Node:
			if o.Tags.Find("amenity") == pkg.HOSPITAL_TYPE {
				p.hospitals = append(p.hospitals, hospital{osmID: int64(o.ID), name: o.Tags.Find("name")})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, err
	}
	scanner.Close()

	scanner, err = newScanner(ctx)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	hospitalNodes := make(map[int64]nodeCoord)
	wantHospital := make(map[int64]struct{}, len(p.hospitals))
	for _, h := range p.hospitals {
		wantHospital[h.osmID] = struct{}{}
	}
	for id := range p.hospitalWays {
		wantHospital[id] = struct{}{}
	}

	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		coord := nodeCoord{lat: node.Lat, lon: node.Lon}
		if _, ok := p.wayNodeMap[int64(node.ID)]; ok {
			p.acceptedNodeMap[int64(node.ID)] = coord
		}
		if _, ok := wantHospital[int64(node.ID)]; ok {
			hospitalNodes[int64(node.ID)] = coord
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	closedWayHospitals := make([]int64, 0, len(p.hospitalWays))
	for id := range p.hospitalWays {
		closedWayHospitals = append(closedWayHospitals, id)
	}
	sort.Slice(closedWayHospitals, func(i, j int) bool { return closedWayHospitals[i] < closedWayHospitals[j] })
	for _, id := range closedWayHospitals {
		p.hospitals = append(p.hospitals, hospital{osmID: id, name: p.hospitalWays[id]})
	}

	return p.buildGraph(hospitalNodes)
}

func (p *OsmParser) processWay(way *osm.Way) {
	nodes := make([]int64, 0, len(way.Nodes))
	for i, node := range way.Nodes {
		id := int64(node.ID)
		nodes = append(nodes, id)
		if _, ok := p.wayNodeMap[id]; !ok {
			if i == 0 || i == len(way.Nodes)-1 {
				p.wayNodeMap[id] = END_NODE
			} else {
				p.wayNodeMap[id] = BETWEEN_NODE
			}
		} else {
			p.wayNodeMap[id] = JUNCTION_NODE
		}
	}

	forward, backward := true, true
	switch way.Tags.Find("oneway") {
	case "yes", "true", "1":
		backward = false
	case "-1", "reverse":
		forward = false
	}
	if way.Tags.Find("junction") == "roundabout" {
		backward = false
	}

	p.ways = append(p.ways, osmWay{
		id:       int64(way.ID),
		nodes:    nodes,
		forward:  forward,
		backward: backward,
	})
}

func (p *OsmParser) isIntersection(nodeID int64) bool {
	return p.wayNodeMap[nodeID] != BETWEEN_NODE
}

// splitWay. cut the way at every intersection node, the length of each piece is the great-circle length of the
// polyline through its nodes. a node without coordinates (outside the extract) ends the current piece.
func (p *OsmParser) splitWay(way osmWay) []edge {
	edges := make([]edge, 0)

	prev := int64(-1)
	piece := make([]geo.Coordinate, 0)
	for _, id := range way.nodes {
		coord, ok := p.acceptedNodeMap[id]
		if !ok {
			prev = -1
			continue
		}

		if prev == -1 {
			prev = id
			piece = append(piece[:0], geo.NewCoordinate(coord.lat, coord.lon))
			if !p.isIntersection(id) {
				// piece starts after a gap, promote the node so the piece stays connected
				p.wayNodeMap[id] = END_NODE
			}
			continue
		}
		piece = append(piece, geo.NewCoordinate(coord.lat, coord.lon))

		if p.isIntersection(id) {
			if id != prev {
				dist := geo.PathLengthMeters(piece)
				if way.forward {
					edges = append(edges, edge{from: prev, to: id, distance: dist})
				}
				if way.backward {
					edges = append(edges, edge{from: id, to: prev, distance: dist})
				}
			}
			prev = id
			piece = append(piece[:0], geo.NewCoordinate(coord.lat, coord.lon))
		}
	}
	return edges
}

func vertexID(osmID int64) da.VertexID {
	return da.VertexID(strconv.FormatInt(osmID, 10))
}

func facilityID(osmID int64) da.VertexID {
	return da.VertexID("h" + strconv.FormatInt(osmID, 10))
}

func (p *OsmParser) buildGraph(hospitalNodes map[int64]nodeCoord) (*da.Graph, error) {
	// shortest parallel edge wins
	edgeSet := make(map[int64]map[int64]float64)
	for _, way := range p.ways {
		for _, e := range p.splitWay(way) {
			if _, ok := edgeSet[e.from]; !ok {
				edgeSet[e.from] = make(map[int64]float64)
			}
			if w, ok := edgeSet[e.from][e.to]; !ok || e.distance < w {
				edgeSet[e.from][e.to] = e.distance
			}
		}
	}

	vertices := make([]*da.Vertex, 0)
	for id, t := range p.wayNodeMap {
		coord, ok := p.acceptedNodeMap[id]
		if t == BETWEEN_NODE || !ok {
			continue
		}
		vertices = append(vertices, da.NewVertex(vertexID(id), coord.lat, coord.lon, da.INTERSECTION, ""))
	}

	adjacency := make(map[da.VertexID][]da.EdgeSpec, len(edgeSet))
	for from, tos := range edgeSet {
		heads := make([]int64, 0, len(tos))
		for to := range tos {
			heads = append(heads, to)
		}
		sort.Slice(heads, func(i, j int) bool { return heads[i] < heads[j] })
		for _, to := range heads {
			adjacency[vertexID(from)] = append(adjacency[vertexID(from)], da.NewEdgeSpec(vertexID(to), tos[to]))
		}
	}

	roads, err := da.NewGraph(vertices, adjacency)
	if err != nil {
		return nil, err
	}
	p.logger.Sugar().Infof("road network: %d intersections, %d edges", roads.NumberOfVertices(), roads.NumberOfEdges())

	if roads.NumberOfVertices() == 0 {
		return nil, util.WrapErrorf(ErrNoRoads, util.ErrBadParamInput, "extract contains no drivable road")
	}

	if p.largestOnly {
		vertices, adjacency = pruneToLargestComponent(roads, adjacency)
		before := roads.NumberOfVertices()
		roads, err = da.NewGraph(vertices, adjacency)
		if err != nil {
			return nil, err
		}
		p.logger.Info("kept largest strongly connected component",
			zap.Int("intersections", roads.NumberOfVertices()), zap.Int("dropped", before-roads.NumberOfVertices()))
	}

	rt := spatialindex.NewRtree()
	rt.Build(roads, p.logger)

	seen := make(map[int64]struct{}, len(p.hospitals))
	for _, h := range p.hospitals {
		if _, ok := seen[h.osmID]; ok {
			continue
		}
		seen[h.osmID] = struct{}{}

		coord, ok := hospitalNodes[h.osmID]
		if !ok {
			p.logger.Warn("hospital node without coordinates", zap.Int64("osmID", h.osmID))
			continue
		}
		nearest, ok := rt.NearestIntersection(coord.lat, coord.lon)
		if !ok {
			continue
		}

		name := h.name
		if name == "" {
			name = fmt.Sprintf(pkg.DEFAULT_FACILITY_NAME_FMT, h.osmID)
		}

		fID := facilityID(h.osmID)
		junction := roads.GetVertex(nearest)
		dist := geo.GreatCircleDistanceMeters(coord.lat, coord.lon, junction.GetLat(), junction.GetLon())

		vertices = append(vertices, da.NewVertex(fID, coord.lat, coord.lon, da.FACILITY, name))
		adjacency[junction.GetID()] = append(adjacency[junction.GetID()], da.NewEdgeSpec(fID, dist))
		adjacency[fID] = append(adjacency[fID], da.NewEdgeSpec(junction.GetID(), dist))
	}

	graph, err := da.NewGraph(vertices, adjacency)
	if err != nil {
		return nil, err
	}

	p.logger.Sugar().Infof("number of vertices: %v", graph.NumberOfVertices())
	p.logger.Sugar().Infof("number of edges: %v", graph.NumberOfEdges())
	p.logger.Sugar().Infof("number of facilities: %v", graph.NumberOfFacilities())
	return graph, nil
}

func pruneToLargestComponent(roads *da.Graph, adjacency map[da.VertexID][]da.EdgeSpec) ([]*da.Vertex,
	map[da.VertexID][]da.EdgeSpec) {
	component := roads.LargestComponent()
	keep := make(map[da.VertexID]struct{}, len(component))
	vertices := make([]*da.Vertex, 0, len(component))
	for _, u := range component {
		v := roads.GetVertex(u)
		keep[v.GetID()] = struct{}{}
		vertices = append(vertices, da.NewVertex(v.GetID(), v.GetLat(), v.GetLon(), da.INTERSECTION, ""))
	}

	pruned := make(map[da.VertexID][]da.EdgeSpec, len(keep))
	for from, edges := range adjacency {
		if _, ok := keep[from]; !ok {
			continue
		}
		for _, e := range edges {
			if _, ok := keep[e.To]; ok {
				pruned[from] = append(pruned[from], e)
			}
		}
	}
	return vertices, pruned
}

func acceptOsmWay(way *osm.Way) bool {
	if pkg.GetHighwayType(way.Tags.Find("highway")) == pkg.UNKNOWN {
		return false
	}
	access := way.Tags.Find("access")
	motorVehicle := way.Tags.Find("motor_vehicle")
	return !isRestricted(access) && !isRestricted(motorVehicle)
}

func isRestricted(value string) bool {
	return value == "no" || value == "private"
}
