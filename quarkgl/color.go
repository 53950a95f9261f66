package quarkgl

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// RGBf builds an opaque color from 0..1 channels, clamping out-of-range values.
func RGBf(r, g, b Scalar) Color {
	return Color{R: unitToByte(r), G: unitToByte(g), B: unitToByte(b), A: 0xFF}
}

func (c Color) MulScalar(s Scalar) Color {
	s = Clamp01(s)
	mul := func(ch uint8) uint8 {
		return uint8(Scalar(ch)*s + 0.5)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// RGBF is a linear color used while accumulating lighting terms.
type RGBF struct {
	R, G, B Scalar
}

// Float converts c to 0..1 channels.
func (c Color) Float() RGBF {
	return RGBF{R: Scalar(c.R) / 255, G: Scalar(c.G) / 255, B: Scalar(c.B) / 255}
}

func (a RGBF) Add(b RGBF) RGBF         { return RGBF{a.R + b.R, a.G + b.G, a.B + b.B} }
func (a RGBF) Mul(b RGBF) RGBF         { return RGBF{a.R * b.R, a.G * b.G, a.B * b.B} }
func (a RGBF) Scale(s Scalar) RGBF     { return RGBF{a.R * s, a.G * s, a.B * s} }
func (a RGBF) Color(alpha uint8) Color { return RGBf(a.R, a.G, a.B).WithAlpha(alpha) }

func unitToByte(v Scalar) uint8 {
	return uint8(Clamp01(v)*255 + 0.5)
}
