// Package config loads the run configuration: defaults, then an optional
// YAML file, then LUMEN_* environment variables, then bound command flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"lumen/fx/cursor"
	"lumen/fx/scene"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var ErrInvalid = errors.New("config: invalid")

// EnvPrefix prefixes environment overrides, e.g. LUMEN_HOST_HZ.
const EnvPrefix = "LUMEN"

// Host modes.
const (
	HostWindow   = "window"
	HostHeadless = "headless"
	HostTerminal = "terminal"
)

// Stages.
const (
	StageSkills = "skills"
	StageHero   = "hero"
)

type Config struct {
	Host    Host    `mapstructure:"host"`
	Cursor  Cursor  `mapstructure:"cursor"`
	Scene   Scene   `mapstructure:"scene"`
	Log     Log     `mapstructure:"log"`
	Metrics Metrics `mapstructure:"metrics"`
}

type Host struct {
	Mode   string `mapstructure:"mode" validate:"oneof=window headless terminal"`
	Width  int    `mapstructure:"width" validate:"gte=16"`
	Height int    `mapstructure:"height" validate:"gte=16"`
	Scale  int    `mapstructure:"scale" validate:"gte=1,lte=8"`
	Hz     int    `mapstructure:"hz" validate:"gte=1,lte=240"`
	// Ticks bounds a headless run; 0 runs until interrupted.
	Ticks uint64 `mapstructure:"ticks"`
}

type Cursor struct {
	Variant       string `mapstructure:"variant" validate:"oneof=particles follower"`
	cursor.Config `mapstructure:",squash"`
}

type Scene struct {
	Stage string `mapstructure:"stage" validate:"oneof=skills hero"`
	// Variant picks the layout; empty uses the definition file's own, then keyboard.
	Variant string `mapstructure:"variant" validate:"omitempty,oneof=keyboard constellation"`
	// File overrides the built-in definition for Variant.
	File      string `mapstructure:"file"`
	Stars     int    `mapstructure:"stars" validate:"gte=0"`
	Wireframe bool   `mapstructure:"wireframe"`
}

type Log struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

type Metrics struct {
	// Dump writes the metrics text exposition to the log on close.
	Dump bool `mapstructure:"dump"`
}

func Default() Config {
	return Config{
		Host: Host{
			Mode:   HostWindow,
			Width:  320,
			Height: 240,
			Scale:  2,
			Hz:     60,
		},
		Cursor: Cursor{
			Variant: cursor.VariantParticles,
			Config:  cursor.DefaultConfig(),
		},
		Scene: Scene{Stage: StageSkills, Stars: scene.DefaultViewConfig().Stars},
		Log: Log{Level: "info"},
	}
}

// New returns a viper instance holding the defaults and reading LUMEN_*
// environment variables.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers every key of cfg as a viper default.
func SetDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("host.mode", cfg.Host.Mode)
	v.SetDefault("host.width", cfg.Host.Width)
	v.SetDefault("host.height", cfg.Host.Height)
	v.SetDefault("host.scale", cfg.Host.Scale)
	v.SetDefault("host.hz", cfg.Host.Hz)
	v.SetDefault("host.ticks", cfg.Host.Ticks)

	c := cfg.Cursor
	v.SetDefault("cursor.variant", c.Variant)
	v.SetDefault("cursor.decay_step", c.DecayStep)
	v.SetDefault("cursor.burst_size", c.BurstSize)
	v.SetDefault("cursor.steady_emission", c.SteadyEmission)
	v.SetDefault("cursor.hover_emission", c.HoverEmission)
	v.SetDefault("cursor.drag", c.Drag)
	v.SetDefault("cursor.attract_radius", c.AttractRadius)
	v.SetDefault("cursor.attract_coeff", c.AttractCoeff)
	v.SetDefault("cursor.jitter", c.Jitter)
	v.SetDefault("cursor.pointer_fine", c.PointerFine)
	v.SetDefault("cursor.follower.dot.stiffness", c.Follower.Dot.Stiffness)
	v.SetDefault("cursor.follower.dot.damping", c.Follower.Dot.Damping)
	v.SetDefault("cursor.follower.ring.stiffness", c.Follower.Ring.Stiffness)
	v.SetDefault("cursor.follower.ring.damping", c.Follower.Ring.Damping)

	v.SetDefault("scene.stage", cfg.Scene.Stage)
	v.SetDefault("scene.variant", cfg.Scene.Variant)
	v.SetDefault("scene.file", cfg.Scene.File)
	v.SetDefault("scene.stars", cfg.Scene.Stars)
	v.SetDefault("scene.wireframe", cfg.Scene.Wireframe)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("metrics.dump", cfg.Metrics.Dump)
}

// Load reads file (if set) into v, decodes and validates the result.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges and enumerations.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
