package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var overlayColor = color.RGBA{R: 0xFF, G: 0xA3, B: 0x00, A: 0xFF}

// drawOverlay prints machine status in the top left corner. Toggled with F1.
func (g *Game) drawOverlay(screen *ebiten.Image) {
	status := fmt.Sprintf("FPS %0.f  PC %03X  I %03X  DT %02X  ST %02X",
		ebiten.ActualFPS(), g.vm.PC, g.vm.I, g.vm.DT, g.vm.ST)
	text.Draw(screen, status, basicfont.Face7x13, 8, 16, overlayColor)
}
