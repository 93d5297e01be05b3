package chip8

import (
	"image"
	"image/png"
	"os"
)

// Pixel colors used when converting the boolean display grid to RGBA.
var (
	pixelOn  = [4]byte{0xC2, 0xC3, 0xC7, 0xFF} // light gray
	pixelOff = [4]byte{0x00, 0x00, 0x00, 0xFF} // black
)

// FramebufferRGBA renders the display grid into an RGBA8888 byte slice of
// length DisplayWidth*DisplayHeight*4, one frontend-agnostic pixel per
// display cell.
func (c *Chip8) FramebufferRGBA() []byte {
	pixels := make([]byte, DisplayWidth*DisplayHeight*4)
	for y := 0; y < DisplayHeight; y++ {
		for x := 0; x < DisplayWidth; x++ {
			px := pixelOff
			if c.Display[y][x] {
				px = pixelOn
			}
			copy(pixels[(y*DisplayWidth+x)*4:], px[:])
		}
	}
	return pixels
}

// FramebufferImage returns the current display contents as an *image.RGBA.
func (c *Chip8) FramebufferImage() *image.RGBA {
	return &image.RGBA{
		Pix:    c.FramebufferRGBA(),
		Stride: DisplayWidth * 4,
		Rect:   image.Rect(0, 0, DisplayWidth, DisplayHeight),
	}
}

// SaveScreenshot encodes the current display as a PNG and writes it to
// filename.
func (c *Chip8) SaveScreenshot(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, c.FramebufferImage())
}
