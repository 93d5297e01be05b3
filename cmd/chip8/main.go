// Package main implements the desktop CHIP-8 emulator frontend.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/chip8"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const (
	displayScale = 10
	defaultIPF   = 20 // instructions per display frame
)

type optionFlags struct {
	ipf   int
	seed  int64
	debug bool
	quiet bool

	vfReset     bool
	memory      bool
	displayWait bool
	clipping    bool
	shifting    bool
	jumping     bool
}

func main() {
	options, rom := readArguments()
	logger := createLogger(options.debug, options.quiet)

	if !options.quiet {
		fmt.Printf("chip8 %s\n\n", buildinfo.Version(version, commit, date))
	}

	if err := run(logger, options, rom); err != nil {
		logger.Fatal(err.Error())
	}
}

func readArguments() (optionFlags, string) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.IntVar(&options.ipf, "ipf", defaultIPF, "instructions to execute per display frame")
	flags.Int64Var(&options.seed, "seed", 0, "random seed for replayable runs, 0 uses the clock")
	flags.BoolVar(&options.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")

	flags.BoolVar(&options.vfReset, "quirk-vfreset", false, "logic opcodes reset VF to zero")
	flags.BoolVar(&options.memory, "quirk-memory", false, "register block transfers increment the index register")
	flags.BoolVar(&options.displayWait, "quirk-displaywait", false, "limit drawing to one sprite per frame")
	flags.BoolVar(&options.clipping, "quirk-clipping", false, "sprites clip at the display edges instead of wrapping")
	flags.BoolVar(&options.shifting, "quirk-shifting", false, "shift opcodes read VX instead of VY")
	flags.BoolVar(&options.jumping, "quirk-jumping", false, "jump with offset selects the register from the high nibble")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		fmt.Printf("usage: chip8 [options] <program image>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}

	return options, args[0]
}

func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func (o optionFlags) quirks() chip8.Quirks {
	return chip8.Quirks{
		VFReset:     o.vfReset,
		Memory:      o.memory,
		DisplayWait: o.displayWait,
		Clipping:    o.clipping,
		Shifting:    o.shifting,
		Jumping:     o.jumping,
	}
}

func run(logger *log.Logger, options optionFlags, rom string) error {
	program, err := os.ReadFile(rom)
	if err != nil {
		return fmt.Errorf("reading program image: %w", err)
	}

	var vm *chip8.Chip8
	if options.seed != 0 {
		vm, err = chip8.NewSeeded(program, options.quirks(), options.seed)
	} else {
		vm, err = chip8.New(program, options.quirks())
	}
	if err != nil {
		return fmt.Errorf("initializing machine: %w", err)
	}

	logger.Info("Program loaded",
		log.String("file", rom),
		log.Int("bytes", len(program)))

	beeper, err := newBeeper()
	if err != nil {
		return fmt.Errorf("initializing audio: %w", err)
	}

	ebiten.SetWindowSize(chip8.DisplayWidth*displayScale, chip8.DisplayHeight*displayScale)
	ebiten.SetWindowTitle("CHIP-8")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := &Game{
		vm:     vm,
		logger: logger,
		beeper: beeper,
		ipf:    options.ipf,
	}
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("running machine: %w", err)
	}
	return nil
}

// Game drives the machine at one display frame per ebiten tick.
type Game struct {
	vm     *chip8.Chip8
	logger *log.Logger
	beeper *beeper
	ipf    int

	screen  *ebiten.Image // cached 64x32 bitmap, refreshed when dirty
	overlay bool
}

func (g *Game) Update() error {
	g.readKeypad()

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.overlay = !g.overlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		name := fmt.Sprintf("chip8-%s.png", time.Now().Format("20060102-150405"))
		if err := g.vm.SaveScreenshot(name); err != nil {
			g.logger.Error("Saving screenshot", log.Err(err))
		} else {
			g.logger.Info("Screenshot saved", log.String("file", name))
		}
	}

	for i := 0; i < g.ipf; i++ {
		if err := g.vm.Step(); err != nil {
			return fmt.Errorf("machine halted: %w", err)
		}
		// One draw per frame when the display wait quirk is on.
		if g.vm.Quirks.DisplayWait && g.vm.DisplayUpdate {
			break
		}
	}

	if g.vm.DT > 0 {
		g.vm.DT--
	}
	if g.vm.ST > 0 {
		g.vm.ST--
	}
	g.beeper.set(g.vm.ST > 0)

	return nil
}

// readKeypad forwards the pressed state of every mapped key, presses and
// releases both.
func (g *Game) readKeypad() {
	for key, slot := range keymap {
		g.vm.Keyboard[slot] = ebiten.IsKeyPressed(key)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.screen == nil {
		g.screen = ebiten.NewImage(chip8.DisplayWidth, chip8.DisplayHeight)
	}

	if g.vm.DisplayUpdate {
		g.screen.WritePixels(g.vm.FramebufferRGBA())
		g.vm.DisplayUpdate = false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(displayScale, displayScale)
	screen.DrawImage(g.screen, op)

	if g.overlay {
		g.drawOverlay(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return chip8.DisplayWidth * displayScale, chip8.DisplayHeight * displayScale
}
