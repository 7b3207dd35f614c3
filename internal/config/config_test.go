package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/input"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ballpit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultPreset, cfg.Preset)
	if diff := cmp.Diff(physics.DefaultParams(), cfg.Physics); diff != "" {
		t.Errorf("physics mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, sim.DefaultConfig(), cfg.Simulation.Sim())
	assert.Equal(t, input.DefaultKeymap(), cfg.Keys)
	assert.Equal(t, "info", cfg.Logger.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
physics:
  restitution: 0.5
simulation:
  substeps: 8
  seed: 99
keys:
  fix: KeyF
logger:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Physics.Restitution)
	assert.Equal(t, physics.DefaultForceFactor, cfg.Physics.ForceFactor)
	assert.Equal(t, 8, cfg.Simulation.Substeps)
	assert.Equal(t, int64(99), cfg.Simulation.Seed)
	assert.Equal(t, "KeyF", cfg.Keys.Fix)
	assert.Equal(t, "KeyC", cfg.Keys.Constrain)
	assert.Equal(t, "json", cfg.Logger.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoad_PresetLayer(t *testing.T) {
	path := writeFile(t, `
preset: chaos
physics:
  pull_rate: 0.1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	chaos, err := GetPreset("chaos")
	require.NoError(t, err)
	assert.Equal(t, chaos.ForceFactor, cfg.Physics.ForceFactor)
	assert.Equal(t, chaos.Restitution, cfg.Physics.Restitution)
	assert.Equal(t, 0.1, cfg.Physics.PullRate)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("BALLPIT_PHYSICS_FORCE_FACTOR", "4.5")
	t.Setenv("BALLPIT_PRESET", "elastic")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 4.5, cfg.Physics.ForceFactor)
	assert.Equal(t, 1.0, cfg.Physics.Restitution)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, dynamo.ErrInvalidConfig)

	_, err = Load(writeFile(t, "preset: nope\n"))
	assert.ErrorIs(t, err, dynamo.ErrUnknownPreset)
}

func TestSaveLoad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preset = "gentle"
	cfg.Physics.TrailCapacity = 4
	cfg.Simulation.Aspect = 2

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		want   error
	}{
		{"valid", func(c *Config) {}, nil},
		{"bad restitution", func(c *Config) { c.Physics.Restitution = -1 }, dynamo.ErrParameterBounds},
		{"zero frame", func(c *Config) { c.Simulation.FrameDt = 0 }, dynamo.ErrInvalidConfig},
		{"no substeps", func(c *Config) { c.Simulation.Substeps = 0 }, dynamo.ErrInvalidConfig},
		{"bad view", func(c *Config) { c.Simulation.ViewHeight = -5 }, dynamo.ErrInvalidConfig},
		{"bad level", func(c *Config) { c.Logger.Level = "loud" }, dynamo.ErrInvalidConfig},
		{"bad format", func(c *Config) { c.Logger.Format = "xml" }, dynamo.ErrInvalidConfig},
		{"duplicate key", func(c *Config) { c.Keys.Push = c.Keys.Pull }, dynamo.ErrInvalidConfig},
		{"empty key", func(c *Config) { c.Keys.Grow = "" }, dynamo.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"chaos", "default", "elastic", "gentle", "sticky"}, ListPresets())

	for _, name := range ListPresets() {
		p, err := GetPreset(name)
		require.NoError(t, err)
		assert.NoError(t, p.Validate(), name)
	}

	def, err := GetPreset("")
	require.NoError(t, err)
	assert.Equal(t, physics.DefaultParams(), def)

	_, err = GetPreset("missing")
	assert.ErrorIs(t, err, dynamo.ErrUnknownPreset)
}
