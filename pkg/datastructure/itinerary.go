package datastructure

// Step is one hop of a computed itinerary. Mode/Route describe the edge used
// to reach the stop; the first step of an itinerary carries ModeStart, an
// empty route and a zero segment cost.
type Step struct {
	StopID      string
	Name        string
	Coordinate  Coordinate
	Mode        string
	Route       string
	SegmentCost float64
}

func NewStep(stop Stop, mode, route string, segmentCost float64) Step {
	return Step{
		StopID:      stop.ID,
		Name:        stop.Name,
		Coordinate:  NewCoordinate(stop.Lat, stop.Lon),
		Mode:        mode,
		Route:       route,
		SegmentCost: segmentCost,
	}
}

// Itinerary is produced fresh per query and owned by the caller. When
// non-empty it starts at the query's start stop and ends at its end stop.
type Itinerary struct {
	Steps     []Step
	TotalCost float64
}

func (it Itinerary) Coordinates() []Coordinate {
	coords := make([]Coordinate, 0, len(it.Steps))
	for _, step := range it.Steps {
		coords = append(coords, step.Coordinate)
	}
	return coords
}
