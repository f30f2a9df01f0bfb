package service

import (
	"context"
	"errors"

	"github.com/twpayne/go-polyline"

	"github.com/outraft/find-my-way/pkg/datastructure"
	"github.com/outraft/find-my-way/pkg/engine/routingalgorithm"
	"github.com/outraft/find-my-way/pkg/geo"
	"github.com/outraft/find-my-way/pkg/server"
	"github.com/outraft/find-my-way/pkg/util"
)

type TransitGraph interface {
	GetStop(id string) (datastructure.Stop, bool)
	FindStopsByName(query string) []datastructure.Stop
}

type RouteAlgorithm interface {
	ComputeRoute(startID, endID string) (datastructure.Itinerary, error)
}

type StopSnapper interface {
	NearestStop(lat, lon float64) (datastructure.KVStop, float64, error)
}

type NavigationService struct {
	graph   TransitGraph
	routing RouteAlgorithm
	snapper StopSnapper
}

func NewNavigationService(graph TransitGraph, routing RouteAlgorithm, snapper StopSnapper) *NavigationService {
	return &NavigationService{graph: graph, routing: routing, snapper: snapper}
}

// ShortestPath computes the minimum-cost itinerary between two stop ids and
// the encoded polyline of its stop coordinates.
func (uc *NavigationService) ShortestPath(ctx context.Context, startID, endID string) (datastructure.Itinerary, string, error) {
	it, err := uc.routing.ComputeRoute(startID, endID)
	if err != nil {
		return datastructure.Itinerary{}, "", wrapRoutingError(err, startID, endID)
	}

	return it, encodeItineraryPolyline(it), nil
}

// ShortestPathBetweenPoints snaps both raw coordinates to their nearest stops
// and routes between them.
func (uc *NavigationService) ShortestPathBetweenPoints(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64) (datastructure.Itinerary, string, error) {
	from, _, err := uc.snapper.NearestStop(srcLat, srcLon)
	if err != nil {
		return datastructure.Itinerary{}, "", server.WrapErrorf(err, server.ErrNotFound, "no stop found near (%f, %f)", srcLat, srcLon)
	}

	to, _, err := uc.snapper.NearestStop(dstLat, dstLon)
	if err != nil {
		return datastructure.Itinerary{}, "", server.WrapErrorf(err, server.ErrNotFound, "no stop found near (%f, %f)", dstLat, dstLon)
	}

	return uc.ShortestPath(ctx, from.ID, to.ID)
}

func (uc *NavigationService) NearestStop(ctx context.Context, lat, lon float64) (datastructure.KVStop, float64, error) {
	stop, distKm, err := uc.snapper.NearestStop(lat, lon)
	if err != nil {
		return datastructure.KVStop{}, 0, server.WrapErrorf(err, server.ErrNotFound, "no stop found near (%f, %f)", lat, lon)
	}
	return stop, util.RoundFloat(distKm*1000, 1), nil
}

func (uc *NavigationService) GetStop(ctx context.Context, id string) (datastructure.Stop, error) {
	stop, ok := uc.graph.GetStop(id)
	if !ok {
		return datastructure.Stop{}, server.NewErrorf(server.ErrNotFound, "stop %s not found", id)
	}
	return stop, nil
}

func (uc *NavigationService) FindStopsByName(ctx context.Context, query string) ([]datastructure.Stop, error) {
	if query == "" {
		return nil, server.NewErrorf(server.ErrBadParamInput, "name query must not be empty")
	}
	return uc.graph.FindStopsByName(query), nil
}

// WalkingDistanceM estimates the walked meters of a segment from the
// great-circle distance between its endpoints.
func (uc *NavigationService) WalkingDistanceM(from, to datastructure.Coordinate) float64 {
	km := geo.CalculateHaversineDistance(from.Lat, from.Lon, to.Lat, to.Lon)
	return util.RoundFloat(km*1000, 0)
}

func wrapRoutingError(err error, startID, endID string) error {
	switch {
	case errors.Is(err, routingalgorithm.ErrStopNotFound):
		return server.WrapErrorf(err, server.ErrNotFound, "%s", err.Error())
	case errors.Is(err, routingalgorithm.ErrUnreachable):
		return server.WrapErrorf(err, server.ErrNotFound, "no suitable path found between %s and %s", startID, endID)
	case errors.Is(err, routingalgorithm.ErrSearchAborted):
		return server.WrapErrorf(err, server.ErrUnprocessableEntity, "search between %s and %s aborted, graph area too large", startID, endID)
	default:
		return server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}
}

func encodeItineraryPolyline(it datastructure.Itinerary) string {
	coords := make([][]float64, 0, len(it.Steps))
	for _, step := range it.Steps {
		coords = append(coords, []float64{step.Coordinate.Lat, step.Coordinate.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
