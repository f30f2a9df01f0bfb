package snap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/outraft/find-my-way/pkg/datastructure"
	"github.com/outraft/find-my-way/pkg/kv"
)

type fakeStopIndex struct {
	stops []datastructure.KVStop
	err   error
}

func (f *fakeStopIndex) GetNearestStopsFromPointCoord(lat, lon float64) ([]datastructure.KVStop, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stops, nil
}

func TestNearestStop(t *testing.T) {
	index := &fakeStopIndex{stops: []datastructure.KVStop{
		{ID: "far", Name: "Far Stop", Lat: 41.10, Lon: 29.10},
		{ID: "near", Name: "Near Stop", Lat: 41.0055, Lon: 28.9770},
		{ID: "mid", Name: "Mid Stop", Lat: 41.02, Lon: 28.99},
	}}
	snapper := NewStopSnapper(index)

	stop, dist, err := snapper.NearestStop(41.0054, 28.9768)
	assert.NoError(t, err)
	assert.Equal(t, "near", stop.ID)
	assert.Less(t, dist, 0.1)
}

func TestNearestStopIndexError(t *testing.T) {
	snapper := NewStopSnapper(&fakeStopIndex{err: kv.ErrStopsNotFound})

	_, _, err := snapper.NearestStop(41.0, 28.9)
	assert.ErrorIs(t, err, kv.ErrStopsNotFound)
}
