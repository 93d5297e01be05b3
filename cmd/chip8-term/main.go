// Package main implements a terminal CHIP-8 emulator frontend. The display
// is rendered with ANSI escapes, the keypad is read from raw-mode stdin and
// the sound timer rings the terminal bell.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/chip8"
)

const (
	framesPerSecond = 60
	defaultIPF      = 20

	// Terminals report key presses but never releases; a mapped key stays
	// pressed for this many frames after its last byte arrived.
	keyHoldFrames = 6

	keyEscape = 0x1B
)

// keymap maps the left side of a QWERTY layout onto the 4x4 hexadecimal
// keypad, same layout as the desktop frontend.
var keymap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

type optionFlags struct {
	ipf   int
	seed  int64
	debug bool

	vfReset     bool
	memory      bool
	displayWait bool
	clipping    bool
	shifting    bool
	jumping     bool
}

func main() {
	options, rom := readArguments()

	cfg := log.DefaultConfig()
	if options.debug {
		cfg.Level = log.DebugLevel
	}
	logger := log.NewWithConfig(cfg)

	if err := run(app.Context(), logger, options, rom); err != nil {
		logger.Fatal(err.Error())
	}
}

func readArguments() (optionFlags, string) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.IntVar(&options.ipf, "ipf", defaultIPF, "instructions to execute per display frame")
	flags.Int64Var(&options.seed, "seed", 0, "random seed for replayable runs, 0 uses the clock")
	flags.BoolVar(&options.debug, "debug", false, "enable debug logging")

	flags.BoolVar(&options.vfReset, "quirk-vfreset", false, "logic opcodes reset VF to zero")
	flags.BoolVar(&options.memory, "quirk-memory", false, "register block transfers increment the index register")
	flags.BoolVar(&options.displayWait, "quirk-displaywait", false, "limit drawing to one sprite per frame")
	flags.BoolVar(&options.clipping, "quirk-clipping", false, "sprites clip at the display edges instead of wrapping")
	flags.BoolVar(&options.shifting, "quirk-shifting", false, "shift opcodes read VX instead of VY")
	flags.BoolVar(&options.jumping, "quirk-jumping", false, "jump with offset selects the register from the high nibble")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		fmt.Printf("usage: chip8-term [options] <program image>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}

	return options, args[0]
}

func run(ctx context.Context, logger *log.Logger, options optionFlags, rom string) error {
	program, err := os.ReadFile(rom)
	if err != nil {
		return fmt.Errorf("reading program image: %w", err)
	}

	quirks := chip8.Quirks{
		VFReset:     options.vfReset,
		Memory:      options.memory,
		DisplayWait: options.displayWait,
		Clipping:    options.clipping,
		Shifting:    options.shifting,
		Jumping:     options.jumping,
	}

	var vm *chip8.Chip8
	if options.seed != 0 {
		vm, err = chip8.NewSeeded(program, quirks, options.seed)
	} else {
		vm, err = chip8.New(program, quirks)
	}
	if err != nil {
		return fmt.Errorf("initializing machine: %w", err)
	}

	logger.Info("Program loaded",
		log.String("file", rom),
		log.Int("bytes", len(program)))

	if err := enterRawTerm(); err != nil {
		return fmt.Errorf("entering raw terminal mode: %w", err)
	}
	fmt.Print("\x1b[?25l\x1b[2J") // hide cursor, clear screen
	defer func() {
		fmt.Print("\x1b[?25h\x1b[2J\x1b[H") // restore cursor
		if err := exitRawTerm(); err != nil {
			logger.Error("Restoring terminal", log.Err(err))
		}
	}()

	return frameLoop(ctx, vm, options.ipf)
}

// frameLoop drives the machine at 60 display frames per second until the
// program faults, ESC is pressed or the context is cancelled.
func frameLoop(ctx context.Context, vm *chip8.Chip8, ipf int) error {
	ticker := time.NewTicker(time.Second / framesPerSecond)
	defer ticker.Stop()

	var keyHold [chip8.KeyboardSize]int
	inbuf := make([]byte, 32)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		// Drain pending input. Raw mode with VMIN=0 makes this non-blocking.
		n, _ := os.Stdin.Read(inbuf)
		for _, b := range inbuf[:n] {
			if b == keyEscape {
				return nil
			}
			if slot, ok := keymap[b]; ok {
				keyHold[slot] = keyHoldFrames
			}
		}
		for slot := range keyHold {
			vm.Keyboard[slot] = keyHold[slot] > 0
			if keyHold[slot] > 0 {
				keyHold[slot]--
			}
		}

		for i := 0; i < ipf; i++ {
			if err := vm.Step(); err != nil {
				return fmt.Errorf("machine halted: %w", err)
			}
			if vm.Quirks.DisplayWait && vm.DisplayUpdate {
				break
			}
		}

		if vm.DT > 0 {
			vm.DT--
		}
		if vm.ST > 0 {
			vm.ST--
			fmt.Print("\a")
		}

		if vm.DisplayUpdate {
			fmt.Print(renderDisplay(vm))
			vm.DisplayUpdate = false
		}
	}
}

// renderDisplay draws the pixel grid from the home position, two terminal
// cells per pixel to keep the aspect ratio near square.
func renderDisplay(vm *chip8.Chip8) string {
	var sb strings.Builder
	sb.Grow(chip8.DisplayHeight * (chip8.DisplayWidth*2 + 8))
	sb.WriteString("\x1b[H")

	for y := 0; y < chip8.DisplayHeight; y++ {
		for x := 0; x < chip8.DisplayWidth; x++ {
			if vm.Display[y][x] {
				sb.WriteString("██")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
