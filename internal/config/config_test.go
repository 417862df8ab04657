package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 5, cfg.HistorySize)

	_, err = Load(filepath.Join(t.TempDir(), "none.yaml"), true)
	assert.Error(t, err)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "afterglow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
history_size: 8
log_level: debug
layout:
  file: layout.yaml
redis:
  addr: localhost:6379
`), 0644))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.HistorySize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "layout.yaml", cfg.Layout.File)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "afterglow:events", cfg.Redis.EventsChannel, "unset keys keep defaults")
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "afterglow.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"history_size": 2, "metrics": {"enabled": false}}`), 0644))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.HistorySize)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.HistorySize = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.EventsChannel = ""
	assert.Error(t, cfg.Validate())

	assert.NoError(t, Default().Validate())
}
