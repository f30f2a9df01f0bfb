package routingalgorithm

import (
	"errors"
	"fmt"

	"github.com/outraft/find-my-way/pkg/datastructure"
	"github.com/outraft/find-my-way/pkg/util"
)

const (
	defaultMaxVisitedLabels = 500000
)

var (
	ErrStopNotFound  = errors.New("stop not found")
	ErrUnreachable   = errors.New("no suitable path found")
	ErrSearchAborted = errors.New("search aborted, explored state bound exceeded")
)

// arrivalKey is the search state identity: the same stop reached by a
// different mode/route is a different state, so transfer penalties are priced
// exactly instead of being approximated per stop.
type arrivalKey struct {
	stopID string
	mode   string
	route  string
}

type searchLabel struct {
	key  arrivalKey
	cost float64
	prev int32 // index of the predecessor label, -1 for the start label
}

type RouteAlgorithm struct {
	graph            TransitGraph
	costModel        *CostModel
	maxVisitedLabels int
}

func NewRouteAlgorithm(graph TransitGraph, costModel *CostModel, maxVisitedLabels int) *RouteAlgorithm {
	if maxVisitedLabels <= 0 {
		maxVisitedLabels = defaultMaxVisitedLabels
	}
	return &RouteAlgorithm{
		graph:            graph,
		costModel:        costModel,
		maxVisitedLabels: maxVisitedLabels,
	}
}

// ComputeRoute runs a Dijkstra search over (stop, mode, route) arrival states
// seeded with the synthetic start mode and returns the minimum-cost itinerary.
// Frontier ties break by insertion order, so identical queries return
// identical itineraries.
func (rt *RouteAlgorithm) ComputeRoute(startID, endID string) (datastructure.Itinerary, error) {
	if !rt.graph.HasStop(startID) {
		return datastructure.Itinerary{}, fmt.Errorf("%w: %s", ErrStopNotFound, startID)
	}
	if !rt.graph.HasStop(endID) {
		return datastructure.Itinerary{}, fmt.Errorf("%w: %s", ErrStopNotFound, endID)
	}

	startKey := arrivalKey{stopID: startID, mode: datastructure.ModeStart}

	labels := []searchLabel{{key: startKey, cost: 0, prev: -1}}
	bestLabel := map[arrivalKey]int32{startKey: 0}
	dist := map[arrivalKey]float64{startKey: 0}

	frontier := datastructure.NewMinHeap[arrivalKey]()
	frontier.Insert(datastructure.NewPriorityQueueNode(0, startKey))

	visitedCount := 0
	for frontier.Size() > 0 {
		current, err := frontier.ExtractMin()
		if err != nil {
			return datastructure.Itinerary{}, err
		}
		currentKey := current.Item

		visitedCount++
		if visitedCount > rt.maxVisitedLabels {
			return datastructure.Itinerary{}, ErrSearchAborted
		}

		if currentKey.stopID == endID {
			return rt.reconstruct(labels, bestLabel[currentKey])
		}

		currentIdx := bestLabel[currentKey]
		currentCost := dist[currentKey]

		for _, edge := range rt.graph.OutEdges(currentKey.stopID) {
			penalty := rt.costModel.TransferPenalty(currentKey.mode, currentKey.route, edge.Mode, edge.Route)
			candidate := currentCost + edge.Weight + penalty

			nextKey := arrivalKey{stopID: edge.To, mode: edge.Mode, route: edge.Route}

			old, seen := dist[nextKey]
			if seen && candidate >= old {
				continue
			}

			dist[nextKey] = candidate
			labels = append(labels, searchLabel{key: nextKey, cost: candidate, prev: currentIdx})
			bestLabel[nextKey] = int32(len(labels) - 1)

			neighborNode := datastructure.NewPriorityQueueNode(candidate, nextKey)
			if frontier.Contains(nextKey) {
				if err := frontier.DecreaseKey(neighborNode); err != nil {
					return datastructure.Itinerary{}, err
				}
			} else {
				frontier.Insert(neighborNode)
			}
		}
	}

	return datastructure.Itinerary{}, fmt.Errorf("%w between %s and %s", ErrUnreachable, startID, endID)
}

// reconstruct walks the predecessor labels backward from the settled end
// state and assembles the ordered itinerary.
func (rt *RouteAlgorithm) reconstruct(labels []searchLabel, endIdx int32) (datastructure.Itinerary, error) {
	backward := []datastructure.Step{}

	for idx := endIdx; idx != -1; {
		label := labels[idx]
		stop, ok := rt.graph.GetStop(label.key.stopID)
		if !ok {
			return datastructure.Itinerary{}, fmt.Errorf("%w: %s", ErrStopNotFound, label.key.stopID)
		}

		segmentCost := 0.0
		if label.prev != -1 {
			segmentCost = label.cost - labels[label.prev].cost
		}

		backward = append(backward, datastructure.NewStep(stop, label.key.mode, label.key.route, segmentCost))
		idx = label.prev
	}

	return datastructure.Itinerary{
		Steps:     util.ReverseG(backward),
		TotalCost: labels[endIdx].cost,
	}, nil
}
