package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func writeConfig(t *testing.T, dir, contents string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), []byte(contents), 0o644))
}

func TestLoad(t *testing.T) {
	dir := chdirTemp(t)
	writeConfig(t, dir, `
server:
  host: 127.0.0.1
  port: 9090
  mode: debug
  timeout: 5s

mongo:
  database: medhub_test
  max_pool_size: 5

rate_limit:
  requests_per_second: 10
  burst: 20
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "medhub_test", cfg.Mongo.Database)
	assert.Equal(t, uint64(5), cfg.Mongo.MaxPoolSize)
	assert.Equal(t, float64(10), cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := chdirTemp(t)
	writeConfig(t, dir, "server:\n  host: 0.0.0.0\n")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "medhub", cfg.Mongo.Database)
	assert.Equal(t, uint64(20), cfg.Mongo.MaxPoolSize)
	assert.Equal(t, 30*time.Second, cfg.Mongo.ServerSelectionTimeout)
	assert.Equal(t, float64(30), cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 30, cfg.RateLimit.Burst)
}

func TestLoadMissingFile(t *testing.T) {
	chdirTemp(t)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := chdirTemp(t)
	writeConfig(t, dir, "server: [not a mapping")

	_, err := Load()
	assert.Error(t, err)
}
