package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	body := `
logLevel: debug
nav:
  speed: 6
  seatedFollowFactor: 0.1
interact:
  interval: 250ms
  maxDistance: 4
audio:
  enabled: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exhibition.yaml"), []byte(body), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.InDelta(t, 6, cfg.Nav.Speed, 1e-6)
	assert.InDelta(t, 0.1, cfg.Nav.SeatedFollowFactor, 1e-6)
	assert.Equal(t, 250*time.Millisecond, cfg.Interact.Interval)
	assert.InDelta(t, 4, cfg.Interact.MaxDistance, 1e-6)
	assert.False(t, cfg.Audio.Enabled)

	// Untouched keys keep their defaults.
	d := Default()
	assert.Equal(t, d.Nav.Damping, cfg.Nav.Damping)
	assert.Equal(t, d.Window, cfg.Window)
	assert.Equal(t, d.Body, cfg.Body)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EXHIBITION_NAV_SPEED", "3.5")
	t.Setenv("EXHIBITION_LOGLEVEL", "warn")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.InDelta(t, 3.5, cfg.Nav.Speed, 1e-6)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exhibition.yaml"), []byte("nav: [unclosed"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestShippedConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", Dir))
	require.NoError(t, err)
	assert.Equal(t, "assets/exhibition.yaml", cfg.Layout)
	assert.Equal(t, Default().Nav, cfg.Nav)
}
