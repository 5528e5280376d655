package pkg

import "math"

// INF_WEIGHT is the distance label of a vertex that has not been reached.
var INF_WEIGHT = math.Inf(1)

const (
	// ~50 km/h
	DEFAULT_AVERAGE_SPEED_MPS = 13.9
	DEFAULT_HEURISTIC_CACHE   = 1 << 16
	DEFAULT_API_PORT          = 6060
	DEFAULT_RATE_LIMIT_RPS    = 50
	DEFAULT_GRAPH_FILE        = "./data/graph.json"
	INTERSECTION_TYPE         = "intersection"
	HOSPITAL_TYPE             = "hospital"
	FACILITY_TYPE             = "facility"
	RTREE_LOCATOR             = "rtree"
	LINEAR_LOCATOR            = "linear"
	DEFAULT_FACILITY_NAME_FMT = "hospital %d"
)

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	MOTORROAD      OsmHighwayType = 15
	UNKNOWN        OsmHighwayType = 16
)

// GetHighwayType. ambulances only drive on roads a car could use, so tracks and paths map to UNKNOWN.
func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "motorroad":
		return MOTORROAD
	default:
		return UNKNOWN
	}
}
