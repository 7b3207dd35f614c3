package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/san-kum/ballpit/internal/dynamo"
)

func TestCodeRune(t *testing.T) {
	tests := []struct {
		code string
		want rune
		ok   bool
	}{
		{"KeyX", 'x', true},
		{"KeyA", 'a', true},
		{"Digit7", '7', true},
		{"Equal", '=', true},
		{"Minus", '-', true},
		{"Escape", 0, false},
		{"Keyx", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			r, ok := CodeRune(tt.code)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, r)
		})
	}
}

func TestRuneCode(t *testing.T) {
	for _, code := range DefaultKeymap().Codes() {
		r, ok := CodeRune(code)
		if !ok {
			continue
		}
		back, ok := RuneCode(r)
		assert.True(t, ok)
		assert.Equal(t, code, back)
	}

	code, ok := RuneCode('Z')
	assert.True(t, ok)
	assert.Equal(t, "KeyZ", code)

	_, ok = RuneCode('é')
	assert.False(t, ok)
}

func TestKeymap_Validate(t *testing.T) {
	assert.NoError(t, DefaultKeymap().Validate())

	empty := DefaultKeymap()
	empty.Constrain = ""
	assert.ErrorIs(t, empty.Validate(), dynamo.ErrInvalidConfig)

	dup := DefaultKeymap()
	dup.Shrink = dup.Grow
	assert.ErrorIs(t, dup.Validate(), dynamo.ErrInvalidConfig)
}
