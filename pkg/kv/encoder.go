package kv

import (
	"github.com/kelindar/binary"

	"github.com/outraft/find-my-way/pkg/datastructure"
)

func encodeStops(stops []datastructure.KVStop) ([]byte, error) {
	encoded, err := binary.Marshal(stops)
	if err != nil {
		return nil, err
	}
	return encoded, nil
}

func decodeStops(bb []byte) ([]datastructure.KVStop, error) {
	var stops []datastructure.KVStop
	if len(bb) == 0 {
		return stops, nil
	}
	err := binary.Unmarshal(bb, &stops)
	return stops, err
}
