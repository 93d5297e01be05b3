package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestClearScreen(t *testing.T) {
	c := newMachine(t, Quirks{}, 0x00E0)
	c.Display[5][5] = true
	c.Display[0][63] = true

	stepN(t, c, 1)

	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			assert.False(t, c.Display[y][x])
		}
	}
	assert.True(t, c.DisplayUpdate)
}

func TestDrawXORCollision(t *testing.T) {
	// A single-pixel sprite drawn twice at the same spot toggles the pixel
	// back off; only the second draw collides.
	c := newMachine(t, Quirks{},
		0xA500, // LDI 0x500
		0xD011, // DRAW V0, V1, 1
		0xD011, // DRAW V0, V1, 1
	)
	c.Memory[0x500] = 0x80 // leftmost bit set
	c.V[0] = 10
	c.V[1] = 4

	stepN(t, c, 2)
	assert.True(t, c.Display[4][10])
	assert.Equal(t, uint8(0), c.V[0xF])
	assert.True(t, c.DisplayUpdate)

	stepN(t, c, 1)
	assert.False(t, c.Display[4][10])
	assert.Equal(t, uint8(1), c.V[0xF])
}

func TestDrawSpriteRows(t *testing.T) {
	// Draw the built-in "0" glyph (5 rows) at the origin.
	c := newMachine(t, Quirks{},
		0x6000, // LDB V0, 0
		0xF029, // FONT V0
		0xD005, // DRAW V0, V0, 5
	)
	stepN(t, c, 3)

	// 0xF0: four lit pixels in the top row.
	for x := 0; x < 4; x++ {
		assert.True(t, c.Display[0][x])
	}
	assert.False(t, c.Display[0][4])
	// 0x90: edges lit in the second row.
	assert.True(t, c.Display[1][0])
	assert.False(t, c.Display[1][1])
	assert.False(t, c.Display[1][2])
	assert.True(t, c.Display[1][3])
	assert.Equal(t, uint8(0), c.V[0xF])
}

func TestDrawOriginWraps(t *testing.T) {
	// Origin registers are taken modulo the display size.
	c := newMachine(t, Quirks{}, 0xA500, 0xD011)
	c.Memory[0x500] = 0x80
	c.V[0] = 64 + 3
	c.V[1] = 32 + 2

	stepN(t, c, 2)
	assert.True(t, c.Display[2][3])
}

func TestDrawClipQuirk(t *testing.T) {
	// Sprite byte 0xFF at column 60: four pixels fit, four would cross the
	// right edge.
	t.Run("wrap", func(t *testing.T) {
		c := newMachine(t, Quirks{}, 0xA500, 0xD011)
		c.Memory[0x500] = 0xFF
		c.V[0] = 60
		c.V[1] = 0

		stepN(t, c, 2)
		for x := 60; x < 64; x++ {
			assert.True(t, c.Display[0][x])
		}
		for x := 0; x < 4; x++ {
			assert.True(t, c.Display[0][x])
		}
	})

	t.Run("clip", func(t *testing.T) {
		c := newMachine(t, Quirks{Clipping: true}, 0xA500, 0xD011)
		c.Memory[0x500] = 0xFF
		c.V[0] = 60
		c.V[1] = 0

		stepN(t, c, 2)
		for x := 60; x < 64; x++ {
			assert.True(t, c.Display[0][x])
		}
		for x := 0; x < 4; x++ {
			assert.False(t, c.Display[0][x])
		}
	})

	t.Run("clip vertical", func(t *testing.T) {
		c := newMachine(t, Quirks{Clipping: true}, 0xA500, 0xD012)
		c.Memory[0x500] = 0x80
		c.Memory[0x501] = 0x80
		c.V[0] = 0
		c.V[1] = 31

		stepN(t, c, 2)
		assert.True(t, c.Display[31][0])
		assert.False(t, c.Display[0][0]) // second row clipped, not wrapped
	})
}

func TestDrawVFAccumulates(t *testing.T) {
	// A collision in an early row keeps VF at 1 even when later rows are
	// collision free.
	c := newMachine(t, Quirks{}, 0xA500, 0xD012)
	c.Memory[0x500] = 0x80
	c.Memory[0x501] = 0x80
	c.Display[0][0] = true // collides with the first row only

	stepN(t, c, 2)
	assert.Equal(t, uint8(1), c.V[0xF])
	assert.False(t, c.Display[0][0])
	assert.True(t, c.Display[1][0])
}

func TestFramebufferRGBA(t *testing.T) {
	c := newMachine(t, Quirks{})
	c.Display[0][0] = true

	pixels := c.FramebufferRGBA()
	assert.Equal(t, DisplayWidth*DisplayHeight*4, len(pixels))
	assert.Equal(t, pixelOn[0], pixels[0])
	assert.Equal(t, pixelOff[0], pixels[4])

	img := c.FramebufferImage()
	assert.Equal(t, DisplayWidth, img.Rect.Dx())
	assert.Equal(t, DisplayHeight, img.Rect.Dy())
}
