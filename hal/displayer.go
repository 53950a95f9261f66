package hal

import (
	"image/color"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = Displayer{}

// Displayer adapts an RGB565 framebuffer to drivers.Displayer so tinyfont can
// draw into it. Pixels outside the buffer are dropped.
type Displayer struct {
	FB Framebuffer
}

func (d Displayer) Size() (x, y int16) {
	if d.FB == nil {
		return 0, 0
	}
	return int16(d.FB.Width()), int16(d.FB.Height())
}

func (d Displayer) SetPixel(x, y int16, c color.RGBA) {
	if d.FB == nil || d.FB.Format() != PixelFormatRGB565 {
		return
	}
	ix, iy := int(x), int(y)
	if ix < 0 || iy < 0 || ix >= d.FB.Width() || iy >= d.FB.Height() {
		return
	}
	buf := d.FB.Buffer()
	off := iy*d.FB.StrideBytes() + ix*2
	if off+1 >= len(buf) {
		return
	}
	p := rgb565(c.R, c.G, c.B)
	buf[off] = byte(p)
	buf[off+1] = byte(p >> 8)
}

func (Displayer) Display() error { return nil }
