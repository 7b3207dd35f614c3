package automation

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/input"
	"github.com/san-kum/ballpit/internal/sim"
)

// Scenario is a scripted input sequence replayed against a world.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Frames      int    `yaml:"frames"`
	Steps       []Step `yaml:"steps"`

	events [][]input.Event
}

// Step is one input event fired before frame At.
//
// Event is one of move, down, up, key_down, key_up or focus_lost. move and
// down also move the pointer to (X, Y).
type Step struct {
	At     int     `yaml:"at"`
	Event  string  `yaml:"event"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Button int     `yaml:"button,omitempty"`
	Key    string  `yaml:"key,omitempty"`
}

// Events converts the step to input events.
func (s Step) Events() ([]input.Event, error) {
	pos := dynamo.V2(s.X, s.Y)
	switch s.Event {
	case "move":
		return []input.Event{input.PointerMove(pos)}, nil
	case "down":
		return []input.Event{input.PointerMove(pos), input.PointerDown(s.Button)}, nil
	case "up":
		return []input.Event{input.PointerUp()}, nil
	case "key_down", "key_up":
		if s.Key == "" {
			return nil, fmt.Errorf("%s needs a key: %w", s.Event, dynamo.ErrInvalidConfig)
		}
		if s.Event == "key_down" {
			return []input.Event{input.KeyDown(s.Key)}, nil
		}
		return []input.Event{input.KeyUp(s.Key)}, nil
	case "focus_lost":
		return []input.Event{input.FocusLost()}, nil
	}
	return nil, fmt.Errorf("unknown event %q: %w", s.Event, dynamo.ErrInvalidConfig)
}

// LoadScenario reads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// ParseScenario decodes and checks a scenario. Steps are ordered by frame;
// steps on the same frame keep their file order.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %v: %w", err, dynamo.ErrInvalidConfig)
	}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) compile() error {
	if s.Frames < 1 {
		return fmt.Errorf("scenario %q: frames must be at least 1: %w", s.Name, dynamo.ErrInvalidConfig)
	}

	sort.SliceStable(s.Steps, func(i, j int) bool { return s.Steps[i].At < s.Steps[j].At })

	s.events = make([][]input.Event, len(s.Steps))
	for i, st := range s.Steps {
		if st.At < 0 || st.At >= s.Frames {
			return fmt.Errorf("scenario %q step %d: frame %d outside [0, %d): %w", s.Name, i, st.At, s.Frames, dynamo.ErrInvalidConfig)
		}
		evs, err := st.Events()
		if err != nil {
			return fmt.Errorf("scenario %q step %d: %w", s.Name, i, err)
		}
		s.events[i] = evs
	}
	return nil
}

// Run replays the scenario against w and returns the run result.
func (s *Scenario) Run(ctx context.Context, w *sim.World) (*sim.Result, error) {
	if err := s.compile(); err != nil {
		return nil, err
	}

	next := 0
	return w.RunWith(ctx, s.Frames, func(frame int) {
		for next < len(s.Steps) && s.Steps[next].At == frame {
			for _, e := range s.events[next] {
				w.HandleEvent(e)
			}
			next++
		}
	})
}
