package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/ballpit/internal/dynamo"
)

const (
	DefaultForceFactor   = 10.0
	DefaultPullRate      = 0.7
	DefaultPushRate      = 0.8
	DefaultRestitution   = 0.8
	DefaultBoundaryDamp  = 10.0
	DefaultTrailCapacity = 10
	DefaultRadiusMin     = 1.0
	DefaultRadiusMax     = 40.0
	DefaultSpawnRadius   = 3.0
	DefaultSpawnSpread   = 2.0
	DefaultNudgeSpeed    = 50.0
	DefaultNudgeBlend    = 0.5
	DefaultResizeStep    = 0.8
)

// Params holds the force, collision and interaction constants.
//
// BoundaryDamp is the rate at which velocities decay to zero while bodies
// are held fixed.
type Params struct {
	ForceFactor   float64 `mapstructure:"force_factor" yaml:"force_factor"`
	PullRate      float64 `mapstructure:"pull_rate" yaml:"pull_rate"`
	PushRate      float64 `mapstructure:"push_rate" yaml:"push_rate"`
	Restitution   float64 `mapstructure:"restitution" yaml:"restitution"`
	BoundaryDamp  float64 `mapstructure:"boundary_damp" yaml:"boundary_damp"`
	TrailCapacity int     `mapstructure:"trail_capacity" yaml:"trail_capacity"`
	RadiusMin     float64 `mapstructure:"radius_min" yaml:"radius_min"`
	RadiusMax     float64 `mapstructure:"radius_max" yaml:"radius_max"`
	SpawnRadius   float64 `mapstructure:"spawn_radius" yaml:"spawn_radius"`
	SpawnSpread   float64 `mapstructure:"spawn_spread" yaml:"spawn_spread"`
	NudgeSpeed    float64 `mapstructure:"nudge_speed" yaml:"nudge_speed"`
	NudgeBlend    float64 `mapstructure:"nudge_blend" yaml:"nudge_blend"`
	ResizeStep    float64 `mapstructure:"resize_step" yaml:"resize_step"`
}

func DefaultParams() Params {
	return Params{
		ForceFactor:   DefaultForceFactor,
		PullRate:      DefaultPullRate,
		PushRate:      DefaultPushRate,
		Restitution:   DefaultRestitution,
		BoundaryDamp:  DefaultBoundaryDamp,
		TrailCapacity: DefaultTrailCapacity,
		RadiusMin:     DefaultRadiusMin,
		RadiusMax:     DefaultRadiusMax,
		SpawnRadius:   DefaultSpawnRadius,
		SpawnSpread:   DefaultSpawnSpread,
		NudgeSpeed:    DefaultNudgeSpeed,
		NudgeBlend:    DefaultNudgeBlend,
		ResizeStep:    DefaultResizeStep,
	}
}

// Validate reports the first parameter outside its valid range.
func (p Params) Validate() error {
	switch {
	case p.ForceFactor < 0:
		return fmt.Errorf("force_factor must be non-negative, got %f: %w", p.ForceFactor, dynamo.ErrParameterBounds)
	case p.PullRate < 0 || p.PushRate < 0:
		return fmt.Errorf("pull_rate and push_rate must be non-negative: %w", dynamo.ErrParameterBounds)
	case p.Restitution < 0 || p.Restitution > 1:
		return fmt.Errorf("restitution must be in [0, 1], got %f: %w", p.Restitution, dynamo.ErrParameterBounds)
	case p.BoundaryDamp < 0:
		return fmt.Errorf("boundary_damp must be non-negative, got %f: %w", p.BoundaryDamp, dynamo.ErrParameterBounds)
	case p.TrailCapacity < 0:
		return fmt.Errorf("trail_capacity must be non-negative, got %d: %w", p.TrailCapacity, dynamo.ErrParameterBounds)
	case p.RadiusMin <= 0 || p.RadiusMax < p.RadiusMin:
		return fmt.Errorf("radius range [%f, %f] is invalid: %w", p.RadiusMin, p.RadiusMax, dynamo.ErrParameterBounds)
	case p.SpawnRadius <= 0 || p.SpawnSpread < 0:
		return fmt.Errorf("spawn radius must be positive: %w", dynamo.ErrParameterBounds)
	case p.NudgeBlend < 0 || p.NudgeBlend > 1:
		return fmt.Errorf("nudge_blend must be in [0, 1], got %f: %w", p.NudgeBlend, dynamo.ErrParameterBounds)
	case p.ResizeStep < 0:
		return fmt.Errorf("resize_step must be non-negative, got %f: %w", p.ResizeStep, dynamo.ErrParameterBounds)
	}
	return nil
}

func (p *Params) floats() map[string]*float64 {
	return map[string]*float64{
		"force_factor":  &p.ForceFactor,
		"pull_rate":     &p.PullRate,
		"push_rate":     &p.PushRate,
		"restitution":   &p.Restitution,
		"boundary_damp": &p.BoundaryDamp,
		"radius_min":    &p.RadiusMin,
		"radius_max":    &p.RadiusMax,
		"spawn_radius":  &p.SpawnRadius,
		"spawn_spread":  &p.SpawnSpread,
		"nudge_speed":   &p.NudgeSpeed,
		"nudge_blend":   &p.NudgeBlend,
		"resize_step":   &p.ResizeStep,
	}
}

// Set assigns the parameter with the given config key. trail_capacity is
// rounded to the nearest integer. Set does not validate.
func (p *Params) Set(name string, v float64) error {
	if name == "trail_capacity" {
		p.TrailCapacity = int(math.Round(v))
		return nil
	}
	f, ok := p.floats()[name]
	if !ok {
		return fmt.Errorf("unknown parameter %q: %w", name, dynamo.ErrInvalidConfig)
	}
	*f = v
	return nil
}

// ParamNames lists the keys accepted by Set.
func ParamNames() []string {
	var p Params
	names := []string{"trail_capacity"}
	for n := range p.floats() {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
