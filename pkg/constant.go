package pkg

import "math"

var INF_WEIGHT = math.Inf(1)

const (
	// waypoint bounds for multi-stop queries. permutation search is exponential, so the upper bound is hard.
	MIN_WAYPOINTS = 2
	MAX_WAYPOINTS = 5

	METERS_PER_DEGREE = 111320.0
	EARTH_RADIUS_M    = 6371000.0

	MEDIAN_TOLERANCE      = 1e-6 // degree
	MEDIAN_MAX_ITERATIONS = 10000
)

const (
	ONEWAY_TAG = "oneway"
	ONEWAY_YES = "yes"

	WAY_ELEMENT  = "way"
	NODE_ELEMENT = "node"
)

// highway values the fetchers keep. same set for the overpass query and the offline extract index.
var AcceptedHighway = []string{
	"motorway",
	"residential",
	"trunk",
	"primary",
	"motorway_link",
	"trunk_link",
	"primary_link",
	"living_street",
	"unclassified",
	"tertiary",
	"secondary",
}

func IsAcceptedHighway(hw string) bool {
	for _, h := range AcceptedHighway {
		if h == hw {
			return true
		}
	}
	return false
}
