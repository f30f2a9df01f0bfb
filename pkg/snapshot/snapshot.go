// Package snapshot builds the immutable transit graph from a snapshot of
// stops and directed connections, produced upstream by the gtfs etl.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/outraft/find-my-way/pkg/datastructure"
)

var (
	ErrInvalidGraph = errors.New("snapshot contains no edges")
)

type stopModel struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Coordinate [2]float64 `json:"coordinate"`
}

type edgeModel struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
	Mode   string  `json:"mode"`
	Route  string  `json:"route,omitempty"`
}

// snapshotModel tolerates both conventional names for the edge collection.
// "links" and "edges" carry the same field grouping.
type snapshotModel struct {
	Stops []stopModel `json:"stops"`
	Edges []edgeModel `json:"edges"`
	Links []edgeModel `json:"links"`
}

func (s snapshotModel) edges() []edgeModel {
	if len(s.Edges) != 0 {
		return s.Edges
	}
	return s.Links
}

func ParseSnapshot(data []byte) (*datastructure.TransitGraph, error) {
	var model snapshotModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	stops := make([]datastructure.Stop, 0, len(model.Stops))
	for _, s := range model.Stops {
		stops = append(stops, datastructure.NewStop(s.ID, s.Name, s.Coordinate[0], s.Coordinate[1]))
	}

	edges := make([]datastructure.TransitEdge, 0, len(model.edges()))
	for _, e := range model.edges() {
		edges = append(edges, datastructure.TransitEdge{
			From:   e.Source,
			To:     e.Target,
			Weight: e.Weight,
			Mode:   e.Mode,
			Route:  e.Route,
		})
	}

	return BuildGraph(stops, edges)
}

func LoadFromFile(path string) (*datastructure.TransitGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}
	return ParseSnapshot(data)
}

// BuildGraph indexes the stop set and the directed adjacency list. Malformed
// edges (unknown endpoint, missing fields, negative weight) are dropped with a
// build-time diagnostic; an empty edge collection aborts the build.
func BuildGraph(stops []datastructure.Stop, edges []datastructure.TransitEdge) (*datastructure.TransitGraph, error) {
	if len(edges) == 0 {
		return nil, ErrInvalidGraph
	}

	stopSet := make(map[string]datastructure.Stop, len(stops))
	for _, stop := range stops {
		stopSet[stop.ID] = stop
	}

	adjList := make(map[string][]datastructure.TransitEdge)
	kept := 0
	dropped := 0
	for _, edge := range edges {
		if !validEdge(stopSet, edge) {
			dropped++
			continue
		}
		adjList[edge.From] = append(adjList[edge.From], edge)
		kept++
	}

	if dropped > 0 {
		log.Printf("snapshot build: dropped %d malformed edges, kept %d", dropped, kept)
	}

	return datastructure.NewTransitGraph(stopSet, adjList, kept), nil
}

func validEdge(stopSet map[string]datastructure.Stop, edge datastructure.TransitEdge) bool {
	if edge.From == "" || edge.To == "" || edge.Mode == "" {
		return false
	}
	if edge.Weight < 0 {
		return false
	}
	if _, ok := stopSet[edge.From]; !ok {
		return false
	}
	if _, ok := stopSet[edge.To]; !ok {
		return false
	}
	return true
}
