package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, 1.0, cfg.Simulation.G)
	assert.Equal(t, SchemeSingle, cfg.Simulation.Scheme)
	assert.Equal(t, 2, cfg.Lifeforms.Count)
	assert.Equal(t, color.RGBA{0, 255, 255, 255}, cfg.Lifeforms.Fill.RGBA())
	assert.Equal(t, color.RGBA{51, 51, 51, 255}, cfg.Window.ClearColor.RGBA())
}

func TestParseKeepsDefaultsForMissingFields(t *testing.T) {
	cfg, err := Parse([]byte(`
simulation:
  g: 2.5
  scheme: compounding
lifeforms:
  count: 5
lifetime:
  seconds: 3
`))
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.Simulation.G)
	assert.Equal(t, SchemeCompounding, cfg.Simulation.Scheme)
	assert.Equal(t, 60, cfg.Simulation.TickRate)
	assert.Equal(t, 5, cfg.Lifeforms.Count)
	assert.Equal(t, 10.0, cfg.Lifeforms.Radius)
	assert.Equal(t, 3.0, cfg.Lifetime.Seconds)
	assert.Equal(t, "lifeforms", cfg.Window.Title)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "simulation:\n  gravity: 1\n"},
		{"bad scheme", "simulation:\n  scheme: verlet\n"},
		{"zero tick rate", "simulation:\n  tick_rate: 0\n"},
		{"negative count", "lifeforms:\n  count: -1\n"},
		{"zero radius", "lifeforms:\n  radius: 0\n"},
		{"colour out of range", "lifeforms:\n  fill: [0, 2, 0]\n"},
		{"negative lifetime", "lifetime:\n  seconds: -1\n"},
		{"bad window", "window:\n  width: 0\n"},
		{"not yaml", "window: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 42\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cfg.Seed)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSampleScene(t *testing.T) {
	cfg, err := Load("../lifeforms.yaml")
	require.NoError(t, err)
	assert.True(t, cfg.Window.Resizable)
	assert.Equal(t, SchemeSingle, cfg.Simulation.Scheme)
	assert.Equal(t, 2, cfg.Lifeforms.Count)
}
