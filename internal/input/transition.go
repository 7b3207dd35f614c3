package input

// Transition applies ev to s. Key repeats must be filtered by the caller.
// Unknown codes leave the state untouched.
func Transition(s State, ev Event, keys Keymap) (State, Effect) {
	var fx Effect

	switch ev.Kind {
	case KindPointerMove:
		s.Pointer.Pos = ev.Pos

	case KindPointerDown:
		s.Pointer.Down = ev.Button == ButtonPrimary
		s.Pointer.RightDown = ev.Button != ButtonPrimary
		fx.Spawn = s.Pointer.Down

	case KindPointerUp:
		s.Pointer.Down = false
		s.Pointer.RightDown = false

	case KindKeyDown:
		switch ev.Code {
		case keys.Fix:
			s.Mode.Fixed = true
		case keys.Constrain:
			s.Mode.Constrained = true
		case keys.Pull:
			s.Mode.Pulling = true
			s.Mode.Pushing = false
		case keys.Push:
			s.Mode.Pushing = true
			s.Mode.Pulling = false
			fx.Nudge = !s.Mode.Fixed
		case keys.Grow:
			fx.Resize = 1
		case keys.Shrink:
			fx.Resize = -1
		}

	case KindKeyUp:
		switch ev.Code {
		case keys.Fix:
			s.Mode.Fixed = false
		case keys.Constrain:
			s.Mode.Constrained = false
		case keys.Pull:
			s.Mode.Pulling = false
		case keys.Push:
			s.Mode.Pushing = false
		}

	case KindFocusLost:
		s.Mode = Mode{}
		s.Pointer.Down = false
		s.Pointer.RightDown = false
	}

	return s, fx
}
