package input

import (
	"fmt"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// Keymap maps actions to key codes. Codes use DOM KeyboardEvent.code names.
type Keymap struct {
	Fix       string `mapstructure:"fix" yaml:"fix"`
	Constrain string `mapstructure:"constrain" yaml:"constrain"`
	Pull      string `mapstructure:"pull" yaml:"pull"`
	Push      string `mapstructure:"push" yaml:"push"`
	Grow      string `mapstructure:"grow" yaml:"grow"`
	Shrink    string `mapstructure:"shrink" yaml:"shrink"`
	Menu      string `mapstructure:"menu" yaml:"menu"`
}

func DefaultKeymap() Keymap {
	return Keymap{
		Fix:       "KeyX",
		Constrain: "KeyC",
		Pull:      "KeyZ",
		Push:      "KeyV",
		Grow:      "Equal",
		Shrink:    "Minus",
		Menu:      "Escape",
	}
}

// Codes returns every bound code, in a fixed order.
func (k Keymap) Codes() []string {
	return []string{k.Fix, k.Constrain, k.Pull, k.Push, k.Grow, k.Shrink, k.Menu}
}

// Validate rejects empty codes and codes bound to more than one action.
func (k Keymap) Validate() error {
	seen := make(map[string]bool)
	for _, code := range k.Codes() {
		if code == "" {
			return fmt.Errorf("keys: empty key code: %w", dynamo.ErrInvalidConfig)
		}
		if seen[code] {
			return fmt.Errorf("keys: %q bound twice: %w", code, dynamo.ErrInvalidConfig)
		}
		seen[code] = true
	}
	return nil
}

// CodeRune returns the character a key code types without modifiers:
// "KeyX" is 'x', "Digit1" is '1', "Equal" is '='.
func CodeRune(code string) (rune, bool) {
	switch {
	case len(code) == 4 && code[:3] == "Key" && code[3] >= 'A' && code[3] <= 'Z':
		return rune(code[3]) + ('a' - 'A'), true
	case len(code) == 6 && code[:5] == "Digit" && code[5] >= '0' && code[5] <= '9':
		return rune(code[5]), true
	}
	r, ok := punctuation[code]
	return r, ok
}

// RuneCode is the inverse of CodeRune. Upper case letters map to the same
// code as lower case.
func RuneCode(r rune) (string, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return "Key" + string(r-('a'-'A')), true
	case r >= 'A' && r <= 'Z':
		return "Key" + string(r), true
	case r >= '0' && r <= '9':
		return "Digit" + string(r), true
	}
	for code, p := range punctuation {
		if p == r {
			return code, true
		}
	}
	return "", false
}

var punctuation = map[string]rune{
	"Equal":        '=',
	"Minus":        '-',
	"Space":        ' ',
	"Comma":        ',',
	"Period":       '.',
	"Slash":        '/',
	"Semicolon":    ';',
	"Quote":        '\'',
	"BracketLeft":  '[',
	"BracketRight": ']',
	"Backslash":    '\\',
	"Backquote":    '`',
}
