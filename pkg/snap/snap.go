// Package snap resolves a raw coordinate to the closest known stop. It is a
// pre-processing step consumed before routing, not part of the search itself.
package snap

import (
	"github.com/outraft/find-my-way/pkg/datastructure"
	"github.com/outraft/find-my-way/pkg/geo"
)

type StopIndex interface {
	GetNearestStopsFromPointCoord(lat, lon float64) ([]datastructure.KVStop, error)
}

type StopSnapper struct {
	index StopIndex
}

func NewStopSnapper(index StopIndex) *StopSnapper {
	return &StopSnapper{index: index}
}

// NearestStop returns the closest stop to the coordinate and its distance in
// kilometers.
func (s *StopSnapper) NearestStop(lat, lon float64) (datastructure.KVStop, float64, error) {
	candidates, err := s.index.GetNearestStopsFromPointCoord(lat, lon)
	if err != nil {
		return datastructure.KVStop{}, 0, err
	}

	best := candidates[0]
	bestDist := geo.CalculateS2Distance(lat, lon, best.Lat, best.Lon)
	for _, candidate := range candidates[1:] {
		dist := geo.CalculateS2Distance(lat, lon, candidate.Lat, candidate.Lon)
		if dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}

	return best, bestDist, nil
}
