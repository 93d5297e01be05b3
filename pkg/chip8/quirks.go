package chip8

// Quirks selects between historically divergent opcode behaviors. Each
// switch is independent and affects only the opcodes documented on it; the
// zero value is the reference (COSMAC VIP style) interpretation with every
// deviation off.
type Quirks struct {
	// VFReset makes AND, OR and XOR reset VF to zero before combining.
	VFReset bool

	// Memory makes the register block store/load opcodes advance the index
	// register past the transferred range.
	Memory bool

	// DisplayWait limits drawing to one sprite per display frame. The
	// machine itself only records it; a frontend honoring it stops stepping
	// for the rest of the frame once DisplayUpdate goes up.
	DisplayWait bool

	// Clipping makes sprites clip at the display edges instead of wrapping.
	Clipping bool

	// Shifting makes the shift opcodes read VX instead of VY.
	Shifting bool

	// Jumping makes the jump-with-offset opcode BNNN behave as BXNN: the
	// high nibble selects the offset register instead of always using V0.
	Jumping bool
}
