package snapshot

import (
	"fmt"
	"os"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"

	"github.com/outraft/find-my-way/pkg/datastructure"
)

// cacheModel is the on-disk form of a built graph. Stops and edges are kept
// flat so the file survives changes to the in-memory adjacency layout.
type cacheModel struct {
	Stops []datastructure.Stop
	Edges []datastructure.TransitEdge
}

func encodeCache(model cacheModel) ([]byte, error) {
	encoded, err := binary.Marshal(model)
	if err != nil {
		return nil, err
	}

	var compressed []byte
	compressed, err = zstd.Compress(compressed, encoded)
	if err != nil {
		return nil, err
	}
	return compressed, nil
}

func decodeCache(compressed []byte) (cacheModel, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, compressed)
	if err != nil {
		return cacheModel{}, err
	}

	var model cacheModel
	if err := binary.Unmarshal(bb, &model); err != nil {
		return cacheModel{}, err
	}
	return model, nil
}

// SaveGraphCache writes the compressed binary form of a built graph so the
// engine can skip json parsing on later startups.
func SaveGraphCache(path string, graph *datastructure.TransitGraph) error {
	model := cacheModel{
		Stops: graph.GetStops(),
	}
	for _, stop := range model.Stops {
		model.Edges = append(model.Edges, graph.OutEdges(stop.ID)...)
	}

	bb, err := encodeCache(model)
	if err != nil {
		return fmt.Errorf("encoding graph cache: %w", err)
	}
	return os.WriteFile(path, bb, 0644)
}

func LoadGraphCache(path string) (*datastructure.TransitGraph, error) {
	bb, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph cache: %w", err)
	}

	model, err := decodeCache(bb)
	if err != nil {
		return nil, fmt.Errorf("decoding graph cache: %w", err)
	}

	return BuildGraph(model.Stops, model.Edges)
}
