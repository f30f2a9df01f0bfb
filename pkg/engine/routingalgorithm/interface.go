package routingalgorithm

import "github.com/outraft/find-my-way/pkg/datastructure"

type TransitGraph interface {
	GetStop(id string) (datastructure.Stop, bool)
	HasStop(id string) bool
	OutEdges(id string) []datastructure.TransitEdge
	GetNumStops() int
}
