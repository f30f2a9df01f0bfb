package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/outraft/find-my-way/pkg/config"
	"github.com/outraft/find-my-way/pkg/datastructure"
	"github.com/outraft/find-my-way/pkg/engine/routingalgorithm"
	"github.com/outraft/find-my-way/pkg/kv"
	"github.com/outraft/find-my-way/pkg/server/rest"
	"github.com/outraft/find-my-way/pkg/server/rest/service"
	"github.com/outraft/find-my-way/pkg/snap"
	"github.com/outraft/find-my-way/pkg/snapshot"

	mymiddleware "github.com/outraft/find-my-way/pkg/server/middleware"
)

var (
	listenAddr   = flag.String("listenaddr", "", "server listen address (overrides config)")
	configFile   = flag.String("config", "", "path to yaml config file")
	snapshotFile = flag.String("f", "", "transit snapshot json file (overrides config)")
	useRateLimit = flag.Bool("ratelimit", false, "use rate limit")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadAppConfig(*configFile)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	if *snapshotFile != "" {
		cfg.Graph.SnapshotPath = *snapshotFile
	}
	if *useRateLimit {
		cfg.Server.RateLimit = true
	}

	graph, err := loadGraph(cfg)
	if err != nil {
		log.Fatalf("loading transit graph: %v", err)
	}
	log.Printf("transit graph ready: %d stops, %d edges", graph.GetNumStops(), graph.GetNumEdges())

	db, err := badger.Open(badger.DefaultOptions(cfg.Graph.KVPath))
	if err != nil {
		log.Fatalf("opening key-value db: %v", err)
	}
	kvDB := kv.NewKVDB(db)
	defer kvDB.Close()

	if err := kvDB.BuildH3IndexedStops(context.Background(), graph.GetStops()); err != nil {
		log.Fatalf("building stop index: %v", err)
	}

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(rest.PromeHttpMiddleware(m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Server.RateLimit {
		r.Use(mymiddleware.Limit)
	}

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "pong")
	})

	costModel := routingalgorithm.NewCostModel(cfg.Routing.BoardingPenalty, cfg.Routing.AlightingPenalty)
	routeAlgorithm := routingalgorithm.NewRouteAlgorithm(graph, costModel, cfg.Routing.MaxVisitedLabels)
	stopSnapper := snap.NewStopSnapper(kvDB)

	navigatorSvc := service.NewNavigationService(graph, routeAlgorithm, stopSnapper)
	rest.NavigatorRouter(r, navigatorSvc)

	log.Printf("server started at %s", cfg.Server.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.Server.ListenAddr, r))
}

func loadGraph(cfg config.AppConfig) (*datastructure.TransitGraph, error) {
	if cfg.Graph.CachePath != "" {
		if _, err := os.Stat(cfg.Graph.CachePath); err == nil {
			log.Printf("loading transit graph from cache %s", cfg.Graph.CachePath)
			return snapshot.LoadGraphCache(cfg.Graph.CachePath)
		}
	}

	log.Printf("loading transit graph from snapshot %s", cfg.Graph.SnapshotPath)
	graph, err := snapshot.LoadFromFile(cfg.Graph.SnapshotPath)
	if err != nil {
		return nil, err
	}

	if cfg.Graph.CachePath != "" {
		if err := snapshot.SaveGraphCache(cfg.Graph.CachePath, graph); err != nil {
			log.Printf("saving graph cache failed: %v", err)
		}
	}
	return graph, nil
}
