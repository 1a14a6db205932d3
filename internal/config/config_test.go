package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("AIRPORT_OPS_CONFIG_PATH", path)
}

func TestLoad_Defaults(t *testing.T) {
	// Point at an empty file so a stray ./config.yaml cannot leak in.
	writeConfig(t, "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Demo International", cfg.AirportName)
	assert.Equal(t, "airport_ops.db", cfg.DBPath)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 5, cfg.BatchTimeout)
	assert.Equal(t, 10, cfg.AutoReadyInterval)
	assert.False(t, cfg.StrictTransitions)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_FileAndEnv(t *testing.T) {
	writeConfig(t, `
airport_name: Kiel Holtenau
layout_path: layout.yaml
batch_size: 10
strict_transitions: true
log:
  level: debug
  format: json
`)
	t.Setenv("AIRPORT_OPS_BATCH_SIZE", "25")
	t.Setenv("AIRPORT_OPS_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Kiel Holtenau", cfg.AirportName)
	assert.Equal(t, "layout.yaml", cfg.LayoutPath)
	assert.Equal(t, 25, cfg.BatchSize)
	assert.True(t, cfg.StrictTransitions)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "zero batch size", body: "batch_size: 0"},
		{name: "negative interval", body: "auto_ready_interval: -1"},
		{name: "bad log level", body: "log:\n  level: verbose"},
		{name: "bad log format", body: "log:\n  format: xml"},
		{name: "empty db path", body: "db_path: \"\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, tt.body)
			_, err := Load()
			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}

func TestLoad_UnreadableFile(t *testing.T) {
	writeConfig(t, "batch_size: [1, 2")
	_, err := Load()
	assert.ErrorContains(t, err, "error reading config file")
}
