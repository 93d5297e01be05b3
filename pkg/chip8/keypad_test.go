package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSkipIfKey(t *testing.T) {
	tests := []struct {
		name     string
		instr    uint16
		pressed  bool
		wantSkip bool
	}{
		{"skp pressed", 0xE09E, true, true},
		{"skp released", 0xE09E, false, false},
		{"sknp pressed", 0xE0A1, true, false},
		{"sknp released", 0xE0A1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newMachine(t, Quirks{}, tt.instr)
			c.V[0] = 0x5
			c.Keyboard[0x5] = tt.pressed
			stepN(t, c, 1)

			want := uint16(ProgramStart + 2)
			if tt.wantSkip {
				want += 2
			}
			assert.Equal(t, want, c.PC)
		})
	}
}

func TestSkipIfKeyMasksRegisterValue(t *testing.T) {
	// Register values above 0x0F index the keypad modulo 16.
	c := newMachine(t, Quirks{}, 0xE09E)
	c.V[0] = 0x15
	c.Keyboard[0x5] = true
	stepN(t, c, 1)

	assert.Equal(t, uint16(ProgramStart+4), c.PC)
}

func TestWaitForKeyRewinds(t *testing.T) {
	c := newMachine(t, Quirks{}, 0xF30A)

	// No key pressed: the instruction re-executes on every Step with no net
	// PC movement.
	for i := 0; i < 3; i++ {
		stepN(t, c, 1)
		assert.Equal(t, uint16(ProgramStart), c.PC)
	}

	// One Step after a press consumes it: index stored, slot cleared.
	c.Keyboard[0xB] = true
	stepN(t, c, 1)
	assert.Equal(t, uint16(ProgramStart+2), c.PC)
	assert.Equal(t, uint8(0xB), c.V[3])
	assert.False(t, c.Keyboard[0xB])
}

func TestWaitForKeyLowestIndexWins(t *testing.T) {
	c := newMachine(t, Quirks{}, 0xF00A)
	c.Keyboard[0x2] = true
	c.Keyboard[0x9] = true
	stepN(t, c, 1)

	assert.Equal(t, uint8(0x2), c.V[0])
	assert.False(t, c.Keyboard[0x2])
	assert.True(t, c.Keyboard[0x9])
}
