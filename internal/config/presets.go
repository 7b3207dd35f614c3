package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
)

const DefaultPreset = "default"

type Preset struct {
	Description string
	Params      physics.Params
}

func tuned(f func(p *physics.Params)) physics.Params {
	p := physics.DefaultParams()
	f(&p)
	return p
}

var Presets = map[string]Preset{
	"default": {
		Description: "swirling clusters, slightly lossy collisions",
		Params:      physics.DefaultParams(),
	},
	"elastic": {
		Description: "no energy lost in collisions",
		Params: tuned(func(p *physics.Params) {
			p.Restitution = 1
		}),
	},
	"sticky": {
		Description: "soft collisions and a hard brake when fixed",
		Params: tuned(func(p *physics.Params) {
			p.Restitution = 0.2
			p.BoundaryDamp = 20
		}),
	},
	"gentle": {
		Description: "weak swirl, slow pull and push",
		Params: tuned(func(p *physics.Params) {
			p.ForceFactor = 3
			p.PullRate = 0.4
			p.PushRate = 0.5
			p.NudgeSpeed = 25
		}),
	},
	"chaos": {
		Description: "strong swirl, bouncy walls of bodies",
		Params: tuned(func(p *physics.Params) {
			p.ForceFactor = 25
			p.Restitution = 0.95
			p.PullRate = 1.5
			p.PushRate = 1.6
			p.NudgeSpeed = 90
			p.TrailCapacity = 20
		}),
	},
}

// GetPreset returns the parameters of the named preset. An empty name is
// the default preset.
func GetPreset(name string) (physics.Params, error) {
	if name == "" {
		name = DefaultPreset
	}
	p, ok := Presets[name]
	if !ok {
		return physics.Params{}, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownPreset)
	}
	return p.Params, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
