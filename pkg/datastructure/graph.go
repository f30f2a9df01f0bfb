package datastructure

import "strings"

// travel modes. walking edges carry no route id, scheduled-service edges do.
const (
	ModeStart = "start" // synthetic mode for the first step of an itinerary
	ModeWalk  = "walk"
	ModeBus   = "bus"
	ModeRail  = "rail"
	ModeTram  = "tram"
	ModeFerry = "ferry"
)

func IsWalkingMode(mode string) bool {
	return mode == ModeWalk
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

type Stop struct {
	ID   string
	Name string
	Lat  float64
	Lon  float64
}

func NewStop(id, name string, lat, lon float64) Stop {
	return Stop{
		ID:   id,
		Name: name,
		Lat:  lat,
		Lon:  lon,
	}
}

// TransitEdge is one directed connection of the multigraph. parallel edges
// between the same stop pair (different mode/route) are kept as separate
// adjacency entries.
type TransitEdge struct {
	From   string
	To     string
	Weight float64
	Mode   string
	Route  string
}

// TransitGraph is built once per snapshot and read-only afterwards, so it can
// be shared by concurrent queries without locking.
type TransitGraph struct {
	stops     map[string]Stop
	adjList   map[string][]TransitEdge
	edgeCount int
}

func NewTransitGraph(stops map[string]Stop, adjList map[string][]TransitEdge, edgeCount int) *TransitGraph {
	return &TransitGraph{
		stops:     stops,
		adjList:   adjList,
		edgeCount: edgeCount,
	}
}

func (g *TransitGraph) GetStop(id string) (Stop, bool) {
	stop, ok := g.stops[id]
	return stop, ok
}

func (g *TransitGraph) HasStop(id string) bool {
	_, ok := g.stops[id]
	return ok
}

// OutEdges returns the outgoing adjacency entries of a stop. callers must not
// mutate the returned slice.
func (g *TransitGraph) OutEdges(id string) []TransitEdge {
	return g.adjList[id]
}

func (g *TransitGraph) GetNumStops() int {
	return len(g.stops)
}

func (g *TransitGraph) GetNumEdges() int {
	return g.edgeCount
}

func (g *TransitGraph) GetStops() []Stop {
	stops := make([]Stop, 0, len(g.stops))
	for _, stop := range g.stops {
		stops = append(stops, stop)
	}
	return stops
}

// FindStopsByName returns every stop whose display name contains the query,
// case-insensitive.
func (g *TransitGraph) FindStopsByName(query string) []Stop {
	if query == "" {
		return nil
	}
	queryLower := strings.ToLower(query)

	matches := []Stop{}
	for _, stop := range g.stops {
		if strings.Contains(strings.ToLower(stop.Name), queryLower) {
			matches = append(matches, stop)
		}
	}
	return matches
}

// KVStop is the compact stop record stored in the h3-indexed key-value db.
type KVStop struct {
	ID   string
	Name string
	Lat  float64
	Lon  float64
}
