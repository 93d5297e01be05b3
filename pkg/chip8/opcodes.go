package chip8

// 00E0 - CLS. Clear the display.
func (c *Chip8) cls() {
	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			c.Display[y][x] = false
		}
	}
	c.DisplayUpdate = true
}

// 00EE - RET. Pop the return address into PC.
func (c *Chip8) ret() error {
	if c.SP == 0 {
		return ErrStackUnderflow
	}
	c.SP--
	c.PC = c.Stack[c.SP]
	return nil
}

// 1nnn - JMP addr.
func (c *Chip8) jmp(nnn uint16) {
	c.PC = nnn
}

// 2nnn - CALL addr. Push PC and jump.
func (c *Chip8) call(nnn uint16) error {
	if c.SP == StackSize {
		return ErrStackOverflow
	}
	c.Stack[c.SP] = c.PC
	c.SP++
	c.PC = nnn
	return nil
}

// skip advances PC past the next instruction.
func (c *Chip8) skip() {
	c.PC = (c.PC + 2) & AddressMask
}

// 3xkk - SKEB Vx, byte. Skip next instruction if VX == byte.
func (c *Chip8) skeb(x uint16, nn uint8) {
	if c.V[x] == nn {
		c.skip()
	}
}

// 4xkk - SKNEB Vx, byte. Skip next instruction if VX != byte.
func (c *Chip8) skneb(x uint16, nn uint8) {
	if c.V[x] != nn {
		c.skip()
	}
}

// 5xy0 - SKE Vx, Vy. Skip next instruction if VX == VY.
func (c *Chip8) ske(x, y uint16) {
	if c.V[x] == c.V[y] {
		c.skip()
	}
}

// 6xkk - LDB Vx, byte.
func (c *Chip8) ldb(x uint16, nn uint8) {
	c.V[x] = nn
}

// 7xkk - ADDB Vx, byte. Add byte to VX without touching the flag, unlike
// the two-register add.
func (c *Chip8) addb(x uint16, nn uint8) {
	c.V[x] += nn
}

// 8xy0 - LD Vx, Vy.
func (c *Chip8) ld(x, y uint16) {
	c.V[x] = c.V[y]
}

// 8xy1 - OR Vx, Vy. Resets VF first when the vf-reset quirk is on.
func (c *Chip8) or(x, y uint16) {
	if c.Quirks.VFReset {
		c.V[0xF] = 0
	}
	c.V[x] |= c.V[y]
}

// 8xy2 - AND Vx, Vy. Resets VF first when the vf-reset quirk is on.
func (c *Chip8) and(x, y uint16) {
	if c.Quirks.VFReset {
		c.V[0xF] = 0
	}
	c.V[x] &= c.V[y]
}

// 8xy3 - XOR Vx, Vy. Resets VF first when the vf-reset quirk is on.
func (c *Chip8) xor(x, y uint16) {
	if c.Quirks.VFReset {
		c.V[0xF] = 0
	}
	c.V[x] ^= c.V[y]
}

// 8xy4 - ADD Vx, Vy. VF becomes 1 if the unsigned sum exceeds 255, else 0.
// The flag is written after the result so it survives X == F.
func (c *Chip8) add(x, y uint16) {
	sum := uint16(c.V[x]) + uint16(c.V[y])
	c.V[x] = uint8(sum)
	if sum > 0xFF {
		c.V[0xF] = 1
	} else {
		c.V[0xF] = 0
	}
}

// 8xy5 - SUB Vx, Vy. VX -= VY; VF becomes 0 on borrow, else 1.
func (c *Chip8) sub(x, y uint16) {
	borrow := c.V[x] < c.V[y]
	c.V[x] -= c.V[y]
	if borrow {
		c.V[0xF] = 0
	} else {
		c.V[0xF] = 1
	}
}

// 8xy6 - SHR Vx, Vy. Shift right by one; the shifted-out low bit becomes
// VF. The shifting quirk selects VX instead of VY as source.
func (c *Chip8) shr(x, y uint16) {
	src := c.V[y]
	if c.Quirks.Shifting {
		src = c.V[x]
	}
	c.V[x] = src >> 1
	c.V[0xF] = src & 0x01
}

// 8xy7 - SUBR Vx, Vy. VX = VY - VX; VF becomes 0 on borrow, else 1.
func (c *Chip8) subr(x, y uint16) {
	borrow := c.V[y] < c.V[x]
	c.V[x] = c.V[y] - c.V[x]
	if borrow {
		c.V[0xF] = 0
	} else {
		c.V[0xF] = 1
	}
}

// 8xyE - SHL Vx, Vy. Shift left by one; the shifted-out high bit becomes
// VF. The shifting quirk selects VX instead of VY as source.
func (c *Chip8) shl(x, y uint16) {
	src := c.V[y]
	if c.Quirks.Shifting {
		src = c.V[x]
	}
	c.V[x] = src << 1
	c.V[0xF] = src >> 7
}

// 9xy0 - SKNE Vx, Vy. Skip next instruction if VX != VY.
func (c *Chip8) skne(x, y uint16) {
	if c.V[x] != c.V[y] {
		c.skip()
	}
}

// Annn - LDI addr. Load the index register.
func (c *Chip8) ldi(nnn uint16) {
	c.I = nnn
}

// Bnnn - JMPZ addr. Jump to addr + V0. With the jumping quirk the high
// nibble of the operand selects the offset register and the low byte is
// the base: PC = VX + kk.
func (c *Chip8) jmpz(nnn uint16) {
	if c.Quirks.Jumping {
		x := nnn >> 8
		c.PC = (uint16(c.V[x]) + (nnn & 0x0FF)) & AddressMask
		return
	}
	c.PC = (nnn + uint16(c.V[0])) & AddressMask
}

// Cxkk - RND Vx, byte. Random byte masked with kk.
func (c *Chip8) rnd(x uint16, nn uint8) {
	c.V[x] = uint8(c.rng.Intn(256)) & nn
}

// Dxyn - DRAW Vx, Vy, n. XOR a sprite of n rows from memory at I onto the
// display at (VX, VY). VF is cleared first and becomes 1 if any lit pixel
// is turned off (collision); it is never reset mid-draw. With the clipping
// quirk, rows below the display and columns past its right edge are
// skipped; otherwise coordinates wrap.
func (c *Chip8) draw(x, y, n uint16) {
	px := uint16(c.V[x]) % DisplayWidth
	py := uint16(c.V[y]) % DisplayHeight
	c.V[0xF] = 0

	for dy := uint16(0); dy < n; dy++ {
		if c.Quirks.Clipping && py+dy >= DisplayHeight {
			break
		}

		b := c.Memory[(c.I+dy)&AddressMask]

		for dx := uint16(0); dx < 8; dx++ {
			if c.Quirks.Clipping && px+dx >= DisplayWidth {
				break
			}

			if (b>>(7-dx))&1 == 0 {
				continue
			}

			row := (py + dy) % DisplayHeight
			col := (px + dx) % DisplayWidth
			if c.Display[row][col] {
				c.Display[row][col] = false
				c.V[0xF] = 1
			} else {
				c.Display[row][col] = true
			}
			c.DisplayUpdate = true
		}
	}
}

// Ex9E - SKP Vx. Skip next instruction if the key in VX is pressed.
func (c *Chip8) skp(x uint16) {
	if c.Keyboard[c.V[x]&0x0F] {
		c.skip()
	}
}

// ExA1 - SKNP Vx. Skip next instruction if the key in VX is not pressed.
func (c *Chip8) sknp(x uint16) {
	if !c.Keyboard[c.V[x]&0x0F] {
		c.skip()
	}
}

// Fx07 - LDFT Vx. Load VX from the delay timer.
func (c *Chip8) ldft(x uint16) {
	c.V[x] = c.DT
}

// Fx0A - LDKP Vx. Wait for a key press: the lowest pressed keypad slot is
// stored in VX and released. With no key pressed, PC is rewound so the same
// instruction executes again on the next Step; the call never blocks.
func (c *Chip8) ldkp(x uint16) {
	for key := uint8(0); key < KeyboardSize; key++ {
		if c.Keyboard[key] {
			c.V[x] = key
			c.Keyboard[key] = false
			return
		}
	}
	c.PC = (c.PC - 2) & AddressMask
}

// Fx15 - LDTT Vx. Load the delay timer from VX.
func (c *Chip8) ldtt(x uint16) {
	c.DT = c.V[x]
}

// Fx18 - LDST Vx. Load the sound timer from VX.
func (c *Chip8) ldst(x uint16) {
	c.ST = c.V[x]
}

// Fx1E - ADDI Vx. Add VX to the index register, no overflow flag.
func (c *Chip8) addi(x uint16) {
	c.I = (c.I + uint16(c.V[x])) & AddressMask
}

// Fx29 - FONT Vx. Point the index register at the font glyph for VX.
func (c *Chip8) font(x uint16) {
	c.I = (uint16(c.V[x]) * 5) & AddressMask
}

// Fx33 - BCD Vx. Store the decimal digits of VX at I, I+1, I+2.
func (c *Chip8) bcd(x uint16) {
	v := c.V[x]
	c.Memory[c.I&AddressMask] = v / 100
	c.Memory[(c.I+1)&AddressMask] = (v / 10) % 10
	c.Memory[(c.I+2)&AddressMask] = v % 10
}

// Fx55 - SREG Vx. Store V0..VX to memory at I. With the memory quirk the
// index register advances by X+1 afterwards.
func (c *Chip8) sreg(x uint16) {
	for k := uint16(0); k <= x; k++ {
		c.Memory[(c.I+k)&AddressMask] = c.V[k]
	}
	if c.Quirks.Memory {
		c.I = (c.I + x + 1) & AddressMask
	}
}

// Fx65 - LREG Vx. Load V0..VX from memory at I. With the memory quirk the
// index register advances by X+1 afterwards.
func (c *Chip8) lreg(x uint16) {
	for k := uint16(0); k <= x; k++ {
		c.V[k] = c.Memory[(c.I+k)&AddressMask]
	}
	if c.Quirks.Memory {
		c.I = (c.I + x + 1) & AddressMask
	}
}
