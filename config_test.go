package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "blockscan.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
worlds:
  cyan: /srv/worlds/cyan/region
  moon: /srv/worlds/moon/region
filters:
  - r.7.
bounds:
  minX: 116
  maxX: 128
  minZ: -186
  maxZ: -175
`), 0o644))

	cfg, err := loadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, "/srv/worlds/cyan/region", cfg.Worlds["cyan"])
	assert.Equal(t, []string{"r.7."}, cfg.Filters)
	require.NotNil(t, cfg.Bounds)
	assert.True(t, cfg.Bounds.Contains(120, -180))
	assert.False(t, cfg.Bounds.Contains(120, -100))
	assert.False(t, cfg.Bounds.Contains(129, -180))
}

func TestLoadConfigMissingDefault(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	cfg, err := loadConfig(defaultConfigPath)
	require.NoError(t, err)
	assert.Empty(t, cfg.Worlds)
}

func TestLoadConfigMissingExplicitPathErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestNilBoundsContainsEverything(t *testing.T) {
	var b *Bounds
	assert.True(t, b.Contains(1<<20, -(1<<20)))
}
