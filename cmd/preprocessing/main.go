// Preprocessing builds the binary graph cache and the h3 stop index from a
// raw transit snapshot, so the engine starts without touching the json.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/dgraph-io/badger/v4"

	"github.com/outraft/find-my-way/pkg/config"
	"github.com/outraft/find-my-way/pkg/kv"
	"github.com/outraft/find-my-way/pkg/snapshot"
)

var (
	configFile   = flag.String("config", "", "path to yaml config file")
	snapshotFile = flag.String("f", "", "transit snapshot json file (overrides config)")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadAppConfig(*configFile)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *snapshotFile != "" {
		cfg.Graph.SnapshotPath = *snapshotFile
	}

	graph, err := snapshot.LoadFromFile(cfg.Graph.SnapshotPath)
	if err != nil {
		log.Fatalf("building transit graph: %v", err)
	}
	log.Printf("transit graph built: %d stops, %d edges", graph.GetNumStops(), graph.GetNumEdges())

	if cfg.Graph.CachePath != "" {
		if err := snapshot.SaveGraphCache(cfg.Graph.CachePath, graph); err != nil {
			log.Fatalf("saving graph cache: %v", err)
		}
		log.Printf("graph cache written to %s", cfg.Graph.CachePath)
	}

	db, err := badger.Open(badger.DefaultOptions(cfg.Graph.KVPath))
	if err != nil {
		log.Fatalf("opening key-value db: %v", err)
	}
	kvDB := kv.NewKVDB(db)
	defer kvDB.Close()

	if err := kvDB.BuildH3IndexedStops(context.Background(), graph.GetStops()); err != nil {
		log.Fatalf("building stop index: %v", err)
	}

	log.Printf("preprocessing done")
}
