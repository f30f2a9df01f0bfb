package routingalgorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/outraft/find-my-way/pkg/datastructure"
)

func TestTransferPenalty(t *testing.T) {
	cm := NewDefaultCostModel()

	tests := []struct {
		name      string
		prevMode  string
		prevRoute string
		nextMode  string
		nextRoute string
		want      float64
	}{
		{"boarding from walk", datastructure.ModeWalk, "", datastructure.ModeBus, "5", DefaultBoardingPenalty},
		{"boarding from start", datastructure.ModeStart, "", datastructure.ModeBus, "5", DefaultBoardingPenalty},
		{"boarding on route change", datastructure.ModeBus, "5", datastructure.ModeBus, "7", DefaultBoardingPenalty},
		{"boarding on mode change new route", datastructure.ModeBus, "5", datastructure.ModeRail, "M2", DefaultBoardingPenalty},
		{"same route continuation", datastructure.ModeBus, "5", datastructure.ModeBus, "5", 0},
		{"alighting to walk", datastructure.ModeBus, "5", datastructure.ModeWalk, "", DefaultAlightingPenalty},
		{"alighting from rail", datastructure.ModeRail, "M2", datastructure.ModeWalk, "", DefaultAlightingPenalty},
		{"walk to walk", datastructure.ModeWalk, "", datastructure.ModeWalk, "", 0},
		{"start to walk", datastructure.ModeStart, "", datastructure.ModeWalk, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cm.TransferPenalty(tt.prevMode, tt.prevRoute, tt.nextMode, tt.nextRoute)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEdgeCost(t *testing.T) {
	cm := NewCostModel(600, 30)

	edge := datastructure.TransitEdge{From: "A", To: "B", Weight: 200, Mode: datastructure.ModeBus, Route: "5"}
	assert.Equal(t, 800.0, cm.EdgeCost(edge, datastructure.ModeWalk, ""))
	assert.Equal(t, 200.0, cm.EdgeCost(edge, datastructure.ModeBus, "5"))

	walkEdge := datastructure.TransitEdge{From: "B", To: "C", Weight: 90, Mode: datastructure.ModeWalk}
	assert.Equal(t, 120.0, cm.EdgeCost(walkEdge, datastructure.ModeBus, "5"))
}
