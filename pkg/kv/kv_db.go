// Package kv maintains the spatial stop index: stops bucketed by h3 cell in
// badger, used to resolve a raw coordinate to candidate stops before routing.
package kv

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"

	"github.com/dgraph-io/badger/v4"
	"github.com/uber/h3-go/v4"

	"github.com/outraft/find-my-way/pkg/concurrent"
	"github.com/outraft/find-my-way/pkg/datastructure"
)

const (
	stopIndexH3Resolution = 9
	maxGridDiskLevel      = 10
	saveBatchSize         = 500
)

var (
	ErrStopsNotFound = errors.New("no stops found near the given coordinate")
)

type KVDB struct {
	db *badger.DB
}

func NewKVDB(db *badger.DB) *KVDB {
	return &KVDB{db}
}

func (k *KVDB) Close() error {
	return k.db.Close()
}

type batchData struct {
	key   string
	value []datastructure.KVStop
}

// BuildH3IndexedStops buckets every stop by its h3 cell and writes the
// buckets in parallel batches.
func (k *KVDB) BuildH3IndexedStops(ctx context.Context, stops []datastructure.Stop) error {
	log.Printf("creating & saving h3 indexed stops to key-value db...")

	buckets := make(map[string][]datastructure.KVStop)
	for _, stop := range stops {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled")
		default:
		}

		latLon := h3.NewLatLng(stop.Lat, stop.Lon)
		cell := h3.LatLngToCell(latLon, stopIndexH3Resolution)

		buckets[cell.String()] = append(buckets[cell.String()], datastructure.KVStop{
			ID:   stop.ID,
			Name: stop.Name,
			Lat:  stop.Lat,
			Lon:  stop.Lon,
		})
	}

	batches := make([]batchData, 0, saveBatchSize)
	allBatches := make([][]batchData, 0)
	for key, value := range buckets {
		batches = append(batches, batchData{key: key, value: value})
		if len(batches) == saveBatchSize {
			allBatches = append(allBatches, batches)
			batches = make([]batchData, 0, saveBatchSize)
		}
	}
	if len(batches) > 0 {
		allBatches = append(allBatches, batches)
	}

	pool := concurrent.NewWorkerPool[[]batchData, error](runtime.NumCPU(), len(allBatches))
	pool.Start(func(batch []batchData) error {
		return k.saveBatchStops(ctx, batch)
	})
	for i, batch := range allBatches {
		pool.AddJob(concurrent.NewJob(i, batch))
	}
	pool.Wait()

	for _, err := range pool.CollectResults() {
		if err != nil {
			return err
		}
	}

	log.Printf("saving %d h3 stop buckets done", len(buckets))
	return nil
}

func (k *KVDB) saveBatchStops(ctx context.Context, batchData []batchData) error {
	batch := k.db.NewWriteBatch()
	defer batch.Cancel()

	for _, data := range batchData {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled")
		default:
		}

		val, err := encodeStops(data.value)
		if err != nil {
			return err
		}

		if err := batch.Set([]byte(data.key), val); err != nil {
			return err
		}
	}

	if err := batch.Flush(); err != nil {
		log.Printf("error saving stop buckets: %v", err)
		return err
	}
	return nil
}

func (k *KVDB) get(key []byte) ([]byte, error) {
	var val []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

// GetNearestStopsFromPointCoord returns the stops in the cell of the query
// point, widening the grid disk until at least one stop shows up.
func (k *KVDB) GetNearestStopsFromPointCoord(lat, lon float64) ([]datastructure.KVStop, error) {
	home := h3.NewLatLng(lat, lon)
	cell := h3.LatLngToCell(home, stopIndexH3Resolution)

	stops := []datastructure.KVStop{}

	val, err := k.get([]byte(cell.String()))
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return nil, err
	}
	if err == nil {
		cellStops, err := decodeStops(val)
		if err != nil {
			return nil, err
		}
		stops = append(stops, cellStops...)
	}

	for lev := 1; lev <= maxGridDiskLevel && len(stops) == 0; lev++ {
		cells := h3.GridDisk(cell, lev)
		for _, currCell := range cells {
			if currCell == cell {
				continue
			}

			val, err := k.get([]byte(currCell.String()))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return nil, err
			}

			cellStops, err := decodeStops(val)
			if err != nil {
				return nil, err
			}
			stops = append(stops, cellStops...)
		}
	}

	if len(stops) == 0 {
		return nil, ErrStopsNotFound
	}

	return stops, nil
}
