package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Validate(Default()))

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
host:
  mode: headless
  hz: 30
cursor:
  variant: follower
  burst_size: 8
  follower:
    ring:
      stiffness: 90
scene:
  variant: constellation
  stars: 1200
  wireframe: true
`), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, HostHeadless, cfg.Host.Mode)
	assert.Equal(t, 30, cfg.Host.Hz)
	assert.Equal(t, "follower", cfg.Cursor.Variant)
	assert.Equal(t, 8, cfg.Cursor.BurstSize)
	assert.Equal(t, "constellation", cfg.Scene.Variant)
	assert.Equal(t, 1200, cfg.Scene.Stars)
	assert.True(t, cfg.Scene.Wireframe)
	assert.Equal(t, 90.0, cfg.Cursor.Follower.Ring.Stiffness)
	assert.Equal(t, 18.0, cfg.Cursor.Follower.Ring.Damping)
	assert.Equal(t, 0.02, cfg.Cursor.DecayStep, "untouched keys keep their default")
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host:\n  hz: 30\n"), 0o644))
	t.Setenv("LUMEN_HOST_HZ", "90")
	t.Setenv("LUMEN_CURSOR_DRAG", "0.9")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.Host.Hz)
	assert.Equal(t, 0.9, cfg.Cursor.Drag)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("LUMEN_SCENE_STAGE", "hero")

	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	fs.String("stage", StageSkills, "")
	require.NoError(t, fs.Parse([]string{"--stage", "skills"}))

	v := New()
	require.NoError(t, v.BindPFlag("scene.stage", fs.Lookup("stage")))

	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, StageSkills, cfg.Scene.Stage)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"mode":    func(c *Config) { c.Host.Mode = "tv" },
		"hz":      func(c *Config) { c.Host.Hz = 0 },
		"width":   func(c *Config) { c.Host.Width = 8 },
		"cursor":  func(c *Config) { c.Cursor.Variant = "sparkles" },
		"decay":   func(c *Config) { c.Cursor.DecayStep = 0 },
		"drag":    func(c *Config) { c.Cursor.Drag = 1.5 },
		"burst":   func(c *Config) { c.Cursor.BurstSize = -1 },
		"spring":  func(c *Config) { c.Cursor.Follower.Dot.Stiffness = 0 },
		"stage":   func(c *Config) { c.Scene.Stage = "about" },
		"variant": func(c *Config) { c.Scene.Variant = "grid" },
		"stars":   func(c *Config) { c.Scene.Stars = -1 },
		"level":   func(c *Config) { c.Log.Level = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.ErrorIs(t, Validate(cfg), ErrInvalid)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
