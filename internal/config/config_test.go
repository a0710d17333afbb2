package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "dvdashboard.db", cfg.Store.DatabaseURL)
	assert.Equal(t, 300, cfg.Cluster.MaxIterations)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Ingest.Latin1)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("store:\n  driver: postgres\n  database_url: postgres://localhost/dv\ncluster:\n  max_iterations: 50\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/dv", cfg.Store.DatabaseURL)
	assert.Equal(t, 50, cfg.Cluster.MaxIterations)
	// Untouched sections keep defaults.
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DVDASH_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Store:   StoreConfig{Driver: "sqlite", DatabaseURL: "x.db"},
		Cluster: ClusterConfig{MaxIterations: 300},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Store.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg.Store.Driver = "postgres"
	cfg.Store.DatabaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg.Store.DatabaseURL = "postgres://h/db"
	assert.NoError(t, cfg.Validate())

	cfg.Cluster.MaxIterations = -1
	assert.Error(t, cfg.Validate())
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	assert.Error(t, err)
}

func TestInitLogger_Console(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "console"}))
}
