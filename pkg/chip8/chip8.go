// Package chip8 implements a CHIP-8 virtual machine. The machine is driven
// from the outside: a frontend calls Step some fixed number of times per
// display frame, decrements the two timers once per frame, redraws whenever
// DisplayUpdate is set (clearing it afterwards), and feeds key presses and
// releases into Keyboard.
package chip8

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	// MemorySize is the size of the address space in bytes.
	MemorySize = 4096
	// AddressMask keeps addresses within the 12-bit address space.
	AddressMask = MemorySize - 1
	// ProgramStart is the address programs are loaded at and start from.
	ProgramStart = 0x200
	// NumRegisters is the number of general purpose registers.
	NumRegisters = 16
	// StackSize is the maximum number of nested calls.
	StackSize = 16
	// DisplayWidth is the display width in pixels.
	DisplayWidth = 64
	// DisplayHeight is the display height in pixels.
	DisplayHeight = 32
	// KeyboardSize is the number of keypad slots.
	KeyboardSize = 16
	// FontSize is the size of the built-in font table in bytes.
	FontSize = 16 * 5
)

// fonts holds the 16 built-in hexadecimal glyphs, 5 bytes each, loaded at
// address 0x000.
var fonts = [FontSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Chip8 holds the complete machine state. All mutable state is owned by the
// instance; a frontend is expected to call Step, the timer decrements and
// the display/keyboard accesses sequentially from a single goroutine.
type Chip8 struct {
	// Memory is the RAM. The font table lives at 0x000-0x04F, the program
	// image at 0x200 onward.
	Memory [MemorySize]byte

	// V are the general purpose registers V0-VF. VF doubles as the
	// carry/borrow/collision flag and may be overwritten by any opcode.
	V [NumRegisters]uint8

	// I is the index register, kept within the 12-bit address space.
	I uint16

	// PC is the program counter.
	PC uint16

	// Stack holds return addresses, SP the number of entries in use.
	Stack [StackSize]uint16
	SP    uint8

	// DT and ST are the delay and sound timers. The machine only reads and
	// writes them; the frontend decrements each once per frame when non-zero
	// and plays a tone while ST is non-zero.
	DT uint8
	ST uint8

	// Display is the monochrome pixel grid, indexed [row][column].
	Display [DisplayHeight][DisplayWidth]bool

	// DisplayUpdate is set whenever an opcode changes the display. The
	// frontend redraws when it is set and clears it; the machine never
	// clears it itself.
	DisplayUpdate bool

	// Keyboard holds the pressed state of the 16 keypad slots. The frontend
	// sets and clears slots on key events; only the key-wait opcode clears
	// a slot from inside the machine.
	Keyboard [KeyboardSize]bool

	// Quirks selects the dialect-dependent opcode behaviors. Fixed at
	// construction.
	Quirks Quirks

	rng *rand.Rand
}

// New creates a machine with the program image loaded at ProgramStart and
// the random source seeded from the wall clock. The image must fit between
// ProgramStart and the top of memory.
func New(program []byte, quirks Quirks) (*Chip8, error) {
	return NewSeeded(program, quirks, time.Now().UnixNano())
}

// NewSeeded is New with an explicit random seed, for replayable runs.
func NewSeeded(program []byte, quirks Quirks, seed int64) (*Chip8, error) {
	if len(program) > MemorySize-ProgramStart {
		return nil, fmt.Errorf("program size %d exceeds memory capacity %d",
			len(program), MemorySize-ProgramStart)
	}

	c := &Chip8{
		PC:     ProgramStart,
		Quirks: quirks,
		rng:    rand.New(rand.NewSource(seed)),
	}
	copy(c.Memory[:FontSize], fonts[:])
	copy(c.Memory[ProgramStart:], program)

	return c, nil
}

// Step fetches, decodes and executes one instruction. The returned error is
// terminal: an unknown instruction word or a call stack bound violation
// leaves the machine in no state to continue.
func (c *Chip8) Step() error {
	return c.execute(c.fetch())
}

// fetch reads the big-endian instruction word at PC and advances PC by 2.
func (c *Chip8) fetch() uint16 {
	instr := uint16(c.Memory[c.PC])<<8 | uint16(c.Memory[(c.PC+1)&AddressMask])
	c.PC = (c.PC + 2) & AddressMask
	return instr
}

// execute decodes the instruction word and runs it. Dispatch is on the top
// nibble, refined by the low nibble or low byte where a group has sub-cases.
func (c *Chip8) execute(instr uint16) error {
	group := instr >> 12
	x := (instr & 0x0F00) >> 8
	y := (instr & 0x00F0) >> 4
	n := instr & 0x000F
	nn := uint8(instr)
	nnn := instr & 0x0FFF

	switch group {
	case 0x0:
		switch nnn {
		case 0x0E0:
			c.cls()
		case 0x0EE:
			return c.ret()
		default:
			// 0NNN ran native RCA 1802 routines on the original hardware;
			// nothing sensible can execute here.
			return c.unknown(instr)
		}
	case 0x1:
		c.jmp(nnn)
	case 0x2:
		return c.call(nnn)
	case 0x3:
		c.skeb(x, nn)
	case 0x4:
		c.skneb(x, nn)
	case 0x5:
		c.ske(x, y)
	case 0x6:
		c.ldb(x, nn)
	case 0x7:
		c.addb(x, nn)
	case 0x8:
		switch n {
		case 0x0:
			c.ld(x, y)
		case 0x1:
			c.or(x, y)
		case 0x2:
			c.and(x, y)
		case 0x3:
			c.xor(x, y)
		case 0x4:
			c.add(x, y)
		case 0x5:
			c.sub(x, y)
		case 0x6:
			c.shr(x, y)
		case 0x7:
			c.subr(x, y)
		case 0xE:
			c.shl(x, y)
		default:
			return c.unknown(instr)
		}
	case 0x9:
		c.skne(x, y)
	case 0xA:
		c.ldi(nnn)
	case 0xB:
		c.jmpz(nnn)
	case 0xC:
		c.rnd(x, nn)
	case 0xD:
		c.draw(x, y, n)
	case 0xE:
		switch nn {
		case 0x9E:
			c.skp(x)
		case 0xA1:
			c.sknp(x)
		default:
			return c.unknown(instr)
		}
	case 0xF:
		switch nn {
		case 0x07:
			c.ldft(x)
		case 0x0A:
			c.ldkp(x)
		case 0x15:
			c.ldtt(x)
		case 0x18:
			c.ldst(x)
		case 0x1E:
			c.addi(x)
		case 0x29:
			c.font(x)
		case 0x33:
			c.bcd(x)
		case 0x55:
			c.sreg(x)
		case 0x65:
			c.lreg(x)
		default:
			return c.unknown(instr)
		}
	default:
		return c.unknown(instr)
	}

	return nil
}

// unknown reports an instruction word with no defined behavior. The word is
// fetched before execute runs, so the faulting address is PC-2.
func (c *Chip8) unknown(instr uint16) error {
	return &UnknownInstructionError{Instr: instr, PC: (c.PC - 2) & AddressMask}
}
