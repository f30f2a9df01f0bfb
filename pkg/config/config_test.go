package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadAppConfigDefaults(t *testing.T) {
	cfg, err := LoadAppConfig("")
	assert.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.ListenAddr)
	assert.Equal(t, 1000.0, cfg.Routing.BoardingPenalty)
	assert.Equal(t, 50.0, cfg.Routing.AlightingPenalty)
}

func TestLoadAppConfigFromFile(t *testing.T) {
	path := t.TempDir() + "/config.yml"
	content := []byte(`
server:
  listenAddr: ":8081"
  rateLimit: true
graph:
  snapshotPath: "/tmp/snap.json"
  kvPath: "/tmp/kv"
routing:
  boardingPenalty: 600
  alightingPenalty: 30
  maxVisitedLabels: 10000
`)
	assert.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := LoadAppConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, ":8081", cfg.Server.ListenAddr)
	assert.True(t, cfg.Server.RateLimit)
	assert.Equal(t, 600.0, cfg.Routing.BoardingPenalty)
	assert.Equal(t, 10000, cfg.Routing.MaxVisitedLabels)
}

func TestLoadAppConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadAppConfig("/nonexistent/config.yml")
	assert.Error(t, err)
}

func TestLoadAppConfigInvalid(t *testing.T) {
	path := t.TempDir() + "/config.yml"
	content := []byte(`
server:
  listenAddr: ":8081"
graph:
  kvPath: "/tmp/kv"
routing:
  boardingPenalty: -5
`)
	assert.NoError(t, os.WriteFile(path, content, 0644))

	_, err := LoadAppConfig(path)
	assert.Error(t, err)
}
