package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	ListenAddr string `yaml:"listenAddr" validate:"required"`
	RateLimit  bool   `yaml:"rateLimit"`
}

type GraphConfig struct {
	SnapshotPath string `yaml:"snapshotPath"`
	CachePath    string `yaml:"cachePath"`
	KVPath       string `yaml:"kvPath" validate:"required"`
}

type RoutingConfig struct {
	BoardingPenalty  float64 `yaml:"boardingPenalty" validate:"gte=0"`
	AlightingPenalty float64 `yaml:"alightingPenalty" validate:"gte=0"`
	MaxVisitedLabels int     `yaml:"maxVisitedLabels" validate:"gte=0"`
}

type AppConfig struct {
	Server  ServerConfig  `yaml:"server" validate:"required"`
	Graph   GraphConfig   `yaml:"graph" validate:"required"`
	Routing RoutingConfig `yaml:"routing"`
}

func defaultConfig() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			ListenAddr: ":5000",
		},
		Graph: GraphConfig{
			SnapshotPath: "./data/transit_snapshot.json",
			CachePath:    "./data/transit_graph.cache",
			KVPath:       "./findmyway_kv",
		},
		Routing: RoutingConfig{
			BoardingPenalty:  1000,
			AlightingPenalty: 50,
			MaxVisitedLabels: 500000,
		},
	}
}

// LoadAppConfig reads the yaml config at path, falling back to defaults when
// the file does not exist. An empty path tries config.yml in the working dir.
func LoadAppConfig(path string) (AppConfig, error) {
	paths := []string{path}
	if path == "" {
		paths = []string{"config.yml", "./config/config.yml"}
	}

	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}

	cfg := defaultConfig()
	if err != nil {
		if path != "" {
			return AppConfig{}, err
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}
