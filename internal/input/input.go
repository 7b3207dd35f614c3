// Package input turns pointer and keyboard events into the interaction
// state read by the simulation.
package input

import "github.com/san-kum/ballpit/internal/dynamo"

// Mode holds the interaction flags. Pulling and Pushing are never both set.
type Mode struct {
	Fixed       bool
	Constrained bool
	Pulling     bool
	Pushing     bool
}

// Pointer is the cursor position in world coordinates and the button state.
type Pointer struct {
	Pos       dynamo.Vec2
	Down      bool
	RightDown bool
}

type State struct {
	Mode    Mode
	Pointer Pointer
}

type Kind int

const (
	KindPointerMove Kind = iota
	KindPointerDown
	KindPointerUp
	KindKeyDown
	KindKeyUp
	KindFocusLost
)

func (k Kind) String() string {
	switch k {
	case KindPointerMove:
		return "pointer_move"
	case KindPointerDown:
		return "pointer_down"
	case KindPointerUp:
		return "pointer_up"
	case KindKeyDown:
		return "key_down"
	case KindKeyUp:
		return "key_up"
	case KindFocusLost:
		return "focus_lost"
	}
	return "unknown"
}

// Button numbers follow the DOM convention: 0 is primary, anything else
// counts as secondary.
const (
	ButtonPrimary   = 0
	ButtonSecondary = 2
)

type Event struct {
	Kind   Kind
	Pos    dynamo.Vec2
	Button int
	Code   string
}

func PointerMove(pos dynamo.Vec2) Event { return Event{Kind: KindPointerMove, Pos: pos} }
func PointerDown(button int) Event      { return Event{Kind: KindPointerDown, Button: button} }
func PointerUp() Event                  { return Event{Kind: KindPointerUp} }
func KeyDown(code string) Event         { return Event{Kind: KindKeyDown, Code: code} }
func KeyUp(code string) Event           { return Event{Kind: KindKeyUp, Code: code} }
func FocusLost() Event                  { return Event{Kind: KindFocusLost} }

// Effect is the one-shot work an event asks of the world, on top of the
// state change.
type Effect struct {
	Spawn  bool
	Nudge  bool
	Resize int
}

func (e Effect) IsZero() bool { return e == Effect{} }
