package submarine

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	hudFont = &proggy.TinySZ8pt7b

	hudText  = color.RGBA{R: 0x10, G: 0x18, B: 0x28, A: 0xFF}
	hudMuted = color.RGBA{R: 0x30, G: 0x38, B: 0x48, A: 0xFF}
)

const hudLineHeight = 10

var helpLines = [...]string{
	"Use the 'f' and 'b' keys to move the submarine forwards and backwards",
	"Use the left and right arrow keys to turn the submarine left and right",
	"Use the up and down arrow keys to move the submarine up and down",
}

// drawLine writes s with its top edge at row y.
func drawLine(d drivers.Displayer, x, y int, s string, c color.RGBA) {
	tinyfont.WriteLine(d, hudFont, int16(x), int16(y+hudLineHeight-2), s, c)
}
