package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/input"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/viewport"
)

const EnvPrefix = "BALLPIT"

type Config struct {
	Preset     string           `mapstructure:"preset" yaml:"preset"`
	Physics    physics.Params   `mapstructure:"physics" yaml:"physics"`
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation"`
	Keys       input.Keymap     `mapstructure:"keys" yaml:"keys"`
	Logger     LoggerConfig     `mapstructure:"logger" yaml:"logger"`
}

// SimulationConfig controls the frame pump and the view. Seed 0 means
// seed from the clock.
type SimulationConfig struct {
	FrameDt    float64 `mapstructure:"frame_dt" yaml:"frame_dt"`
	Substeps   int     `mapstructure:"substeps" yaml:"substeps"`
	Seed       int64   `mapstructure:"seed" yaml:"seed"`
	ViewHeight float64 `mapstructure:"view_height" yaml:"view_height"`
	Aspect     float64 `mapstructure:"aspect" yaml:"aspect"`
}

func (s SimulationConfig) Sim() sim.Config {
	return sim.Config{FrameDt: s.FrameDt, Substeps: s.Substeps}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers the built-in values for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("preset", DefaultPreset)
	setPhysicsDefaults(v, physics.DefaultParams())

	sc := sim.DefaultConfig()
	v.SetDefault("simulation.frame_dt", sc.FrameDt)
	v.SetDefault("simulation.substeps", sc.Substeps)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.view_height", viewport.DefaultHeight)
	v.SetDefault("simulation.aspect", 16.0/9.0)

	keys := input.DefaultKeymap()
	v.SetDefault("keys.fix", keys.Fix)
	v.SetDefault("keys.constrain", keys.Constrain)
	v.SetDefault("keys.pull", keys.Pull)
	v.SetDefault("keys.push", keys.Push)
	v.SetDefault("keys.grow", keys.Grow)
	v.SetDefault("keys.shrink", keys.Shrink)
	v.SetDefault("keys.menu", keys.Menu)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
}

func setPhysicsDefaults(v *viper.Viper, p physics.Params) {
	v.SetDefault("physics.force_factor", p.ForceFactor)
	v.SetDefault("physics.pull_rate", p.PullRate)
	v.SetDefault("physics.push_rate", p.PushRate)
	v.SetDefault("physics.restitution", p.Restitution)
	v.SetDefault("physics.boundary_damp", p.BoundaryDamp)
	v.SetDefault("physics.trail_capacity", p.TrailCapacity)
	v.SetDefault("physics.radius_min", p.RadiusMin)
	v.SetDefault("physics.radius_max", p.RadiusMax)
	v.SetDefault("physics.spawn_radius", p.SpawnRadius)
	v.SetDefault("physics.spawn_spread", p.SpawnSpread)
	v.SetDefault("physics.nudge_speed", p.NudgeSpeed)
	v.SetDefault("physics.nudge_blend", p.NudgeBlend)
	v.SetDefault("physics.resize_step", p.ResizeStep)
}

// NewViper returns a viper instance with defaults and environment overrides
// (BALLPIT_PHYSICS_FORCE_FACTOR and so on) installed.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func DefaultConfig() *Config {
	cfg, err := Decode(NewViper())
	if err != nil {
		panic(fmt.Sprintf("failed to decode default config: %v", err))
	}
	return cfg
}

// Load reads path (if non-empty) on top of the defaults. The preset named
// in the file or environment replaces the physics defaults; explicit physics
// keys still win over the preset.
func Load(path string) (*Config, error) {
	v := NewViper()
	if err := ReadFile(v, path); err != nil {
		return nil, err
	}
	return Decode(v)
}

// ReadFile reads the config file at path into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %v: %w", path, err, dynamo.ErrInvalidConfig)
	}
	return nil
}

// Decode applies the preset layer and unmarshals v.
func Decode(v *viper.Viper) (*Config, error) {
	name := v.GetString("preset")
	p, err := GetPreset(name)
	if err != nil {
		return nil, err
	}
	setPhysicsDefaults(v, p)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %v: %w", err, dynamo.ErrInvalidConfig)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Physics.Validate(); err != nil {
		return fmt.Errorf("physics: %w", err)
	}

	s := c.Simulation
	switch {
	case s.FrameDt <= 0:
		return fmt.Errorf("simulation.frame_dt must be positive, got %f: %w", s.FrameDt, dynamo.ErrInvalidConfig)
	case s.Substeps < 1:
		return fmt.Errorf("simulation.substeps must be at least 1, got %d: %w", s.Substeps, dynamo.ErrInvalidConfig)
	case s.ViewHeight <= 0:
		return fmt.Errorf("simulation.view_height must be positive, got %f: %w", s.ViewHeight, dynamo.ErrInvalidConfig)
	case s.Aspect <= 0:
		return fmt.Errorf("simulation.aspect must be positive, got %f: %w", s.Aspect, dynamo.ErrInvalidConfig)
	}

	switch c.Logger.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logger.level %q is not one of debug, info, warn, error: %w", c.Logger.Level, dynamo.ErrInvalidConfig)
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format %q is not console or json: %w", c.Logger.Format, dynamo.ErrInvalidConfig)
	}

	return c.Keys.Validate()
}
