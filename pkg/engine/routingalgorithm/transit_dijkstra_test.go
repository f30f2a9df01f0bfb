package routingalgorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/outraft/find-my-way/pkg/datastructure"
	"github.com/outraft/find-my-way/pkg/snapshot"
)

func buildTestGraph(t *testing.T, edges []datastructure.TransitEdge) *datastructure.TransitGraph {
	t.Helper()
	stops := []datastructure.Stop{
		datastructure.NewStop("A", "Stop A", 41.00, 28.97),
		datastructure.NewStop("B", "Stop B", 41.01, 28.98),
		datastructure.NewStop("C", "Stop C", 41.02, 28.99),
		datastructure.NewStop("D", "Stop D", 41.03, 29.00),
	}
	g, err := snapshot.BuildGraph(stops, edges)
	assert.NoError(t, err)
	return g
}

func newTestAlgorithm(g *datastructure.TransitGraph) *RouteAlgorithm {
	return NewRouteAlgorithm(g, NewDefaultCostModel(), 0)
}

func TestComputeRouteWalkThenBus(t *testing.T) {
	g := buildTestGraph(t, []datastructure.TransitEdge{
		{From: "A", To: "B", Weight: 100, Mode: datastructure.ModeWalk},
		{From: "B", To: "C", Weight: 200, Mode: datastructure.ModeBus, Route: "5"},
	})
	rt := newTestAlgorithm(g)

	it, err := rt.ComputeRoute("A", "C")
	assert.NoError(t, err)

	// 100 walk + 200 bus + 1000 boarding
	assert.Equal(t, 1300.0, it.TotalCost)
	assert.Len(t, it.Steps, 3)

	assert.Equal(t, "A", it.Steps[0].StopID)
	assert.Equal(t, datastructure.ModeStart, it.Steps[0].Mode)
	assert.Equal(t, 0.0, it.Steps[0].SegmentCost)

	assert.Equal(t, "B", it.Steps[1].StopID)
	assert.Equal(t, datastructure.ModeWalk, it.Steps[1].Mode)
	assert.Equal(t, 100.0, it.Steps[1].SegmentCost)

	assert.Equal(t, "C", it.Steps[2].StopID)
	assert.Equal(t, datastructure.ModeBus, it.Steps[2].Mode)
	assert.Equal(t, "5", it.Steps[2].Route)
	assert.Equal(t, 1200.0, it.Steps[2].SegmentCost)
}

func TestComputeRouteSameRouteContinuation(t *testing.T) {
	g := buildTestGraph(t, []datastructure.TransitEdge{
		{From: "A", To: "B", Weight: 300, Mode: datastructure.ModeBus, Route: "1"},
		{From: "B", To: "C", Weight: 300, Mode: datastructure.ModeBus, Route: "1"},
	})
	rt := newTestAlgorithm(g)

	it, err := rt.ComputeRoute("A", "C")
	assert.NoError(t, err)

	// single boarding penalty when entering route 1, none at B
	assert.Equal(t, 1600.0, it.TotalCost)
	assert.Equal(t, 1300.0, it.Steps[1].SegmentCost)
	assert.Equal(t, 300.0, it.Steps[2].SegmentCost)
}

func TestComputeRouteAlightingPenalty(t *testing.T) {
	g := buildTestGraph(t, []datastructure.TransitEdge{
		{From: "A", To: "B", Weight: 300, Mode: datastructure.ModeBus, Route: "1"},
		{From: "B", To: "C", Weight: 100, Mode: datastructure.ModeWalk},
	})
	rt := newTestAlgorithm(g)

	it, err := rt.ComputeRoute("A", "C")
	assert.NoError(t, err)

	// 1000 boarding + 300 bus + 100 walk + 50 alighting
	assert.Equal(t, 1450.0, it.TotalCost)
	assert.Equal(t, 150.0, it.Steps[2].SegmentCost)
}

func TestComputeRouteSameStartAndEnd(t *testing.T) {
	g := buildTestGraph(t, []datastructure.TransitEdge{
		{From: "A", To: "B", Weight: 100, Mode: datastructure.ModeWalk},
	})
	rt := newTestAlgorithm(g)

	it, err := rt.ComputeRoute("A", "A")
	assert.NoError(t, err)
	assert.Equal(t, 0.0, it.TotalCost)
	assert.Len(t, it.Steps, 1)
	assert.Equal(t, "A", it.Steps[0].StopID)
	assert.Equal(t, datastructure.ModeStart, it.Steps[0].Mode)
}

func TestComputeRouteUnreachable(t *testing.T) {
	g := buildTestGraph(t, []datastructure.TransitEdge{
		{From: "B", To: "C", Weight: 100, Mode: datastructure.ModeWalk},
	})
	rt := newTestAlgorithm(g)

	_, err := rt.ComputeRoute("A", "C")
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestComputeRouteUnknownStop(t *testing.T) {
	g := buildTestGraph(t, []datastructure.TransitEdge{
		{From: "A", To: "B", Weight: 100, Mode: datastructure.ModeWalk},
	})
	rt := newTestAlgorithm(g)

	_, err := rt.ComputeRoute("ZZ", "B")
	assert.ErrorIs(t, err, ErrStopNotFound)

	_, err = rt.ComputeRoute("A", "ZZ")
	assert.ErrorIs(t, err, ErrStopNotFound)
}

func TestComputeRouteSearchAborted(t *testing.T) {
	g := buildTestGraph(t, []datastructure.TransitEdge{
		{From: "A", To: "B", Weight: 100, Mode: datastructure.ModeWalk},
		{From: "B", To: "C", Weight: 100, Mode: datastructure.ModeWalk},
		{From: "C", To: "D", Weight: 100, Mode: datastructure.ModeWalk},
	})
	rt := NewRouteAlgorithm(g, NewDefaultCostModel(), 2)

	_, err := rt.ComputeRoute("A", "D")
	assert.ErrorIs(t, err, ErrSearchAborted)
}

// the expanded (stop, mode, route) state space must prefer staying on a route
// through an intermediate stop over a nominally cheaper arrival that forces a
// re-boarding later.
func TestComputeRoutePrefersRouteContinuation(t *testing.T) {
	g := buildTestGraph(t, []datastructure.TransitEdge{
		{From: "A", To: "B", Weight: 300, Mode: datastructure.ModeBus, Route: "1"},
		{From: "A", To: "B", Weight: 250, Mode: datastructure.ModeBus, Route: "9"},
		{From: "B", To: "C", Weight: 300, Mode: datastructure.ModeBus, Route: "1"},
	})
	rt := newTestAlgorithm(g)

	it, err := rt.ComputeRoute("A", "C")
	assert.NoError(t, err)

	// via route 9: 1000+250 then transfer 1000+300 = 2550
	// via route 1: 1000+300 then continue 300 = 1600
	assert.Equal(t, 1600.0, it.TotalCost)
	assert.Equal(t, "1", it.Steps[1].Route)
}

func TestComputeRouteParallelEdgesPickCheapest(t *testing.T) {
	g := buildTestGraph(t, []datastructure.TransitEdge{
		{From: "A", To: "B", Weight: 500, Mode: datastructure.ModeBus, Route: "5"},
		{From: "A", To: "B", Weight: 200, Mode: datastructure.ModeWalk},
	})
	rt := newTestAlgorithm(g)

	it, err := rt.ComputeRoute("A", "B")
	assert.NoError(t, err)
	assert.Equal(t, 200.0, it.TotalCost)
	assert.Equal(t, datastructure.ModeWalk, it.Steps[1].Mode)
}

func TestComputeRouteDeterminism(t *testing.T) {
	// two equal-cost alternatives; repeated runs must pick the same one
	g := buildTestGraph(t, []datastructure.TransitEdge{
		{From: "A", To: "B", Weight: 100, Mode: datastructure.ModeWalk},
		{From: "A", To: "C", Weight: 100, Mode: datastructure.ModeWalk},
		{From: "B", To: "D", Weight: 100, Mode: datastructure.ModeWalk},
		{From: "C", To: "D", Weight: 100, Mode: datastructure.ModeWalk},
	})
	rt := newTestAlgorithm(g)

	first, err := rt.ComputeRoute("A", "D")
	assert.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := rt.ComputeRoute("A", "D")
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeRouteMonotonicity(t *testing.T) {
	baseEdges := []datastructure.TransitEdge{
		{From: "A", To: "B", Weight: 100, Mode: datastructure.ModeWalk},
		{From: "A", To: "C", Weight: 150, Mode: datastructure.ModeWalk},
		{From: "B", To: "D", Weight: 100, Mode: datastructure.ModeWalk},
		{From: "C", To: "D", Weight: 100, Mode: datastructure.ModeWalk},
	}

	rt := newTestAlgorithm(buildTestGraph(t, baseEdges))
	base, err := rt.ComputeRoute("A", "D")
	assert.NoError(t, err)

	// bump each edge weight in turn; optimal cost must never decrease
	for i := range baseEdges {
		bumped := make([]datastructure.TransitEdge, len(baseEdges))
		copy(bumped, baseEdges)
		bumped[i].Weight += 500

		rtBumped := newTestAlgorithm(buildTestGraph(t, bumped))
		it, err := rtBumped.ComputeRoute("A", "D")
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, it.TotalCost, base.TotalCost)
	}
}
