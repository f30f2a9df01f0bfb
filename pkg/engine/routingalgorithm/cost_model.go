package routingalgorithm

import "github.com/outraft/find-my-way/pkg/datastructure"

const (
	DefaultBoardingPenalty  = 1000.0
	DefaultAlightingPenalty = 50.0
)

// CostModel prices the friction of switching vehicles without timetable data.
// Boarding a vehicle from a walk, from the query start, or from a different
// route costs the boarding penalty; stepping off a vehicle onto a walking edge
// costs the smaller alighting penalty; staying on the same route costs
// nothing extra.
type CostModel struct {
	boardingPenalty  float64
	alightingPenalty float64
}

func NewCostModel(boardingPenalty, alightingPenalty float64) *CostModel {
	return &CostModel{
		boardingPenalty:  boardingPenalty,
		alightingPenalty: alightingPenalty,
	}
}

func NewDefaultCostModel() *CostModel {
	return NewCostModel(DefaultBoardingPenalty, DefaultAlightingPenalty)
}

func (cm *CostModel) TransferPenalty(prevMode, prevRoute, nextMode, nextRoute string) float64 {
	if !datastructure.IsWalkingMode(nextMode) &&
		(datastructure.IsWalkingMode(prevMode) || prevMode == datastructure.ModeStart || prevRoute != nextRoute) {
		return cm.boardingPenalty
	}

	if !datastructure.IsWalkingMode(prevMode) && prevMode != datastructure.ModeStart &&
		datastructure.IsWalkingMode(nextMode) {
		return cm.alightingPenalty
	}

	return 0
}

// EdgeCost is the full traversal cost of an edge given the arrival context.
func (cm *CostModel) EdgeCost(edge datastructure.TransitEdge, prevMode, prevRoute string) float64 {
	return edge.Weight + cm.TransferPenalty(prevMode, prevRoute, edge.Mode, edge.Route)
}
