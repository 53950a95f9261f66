package quarkgl

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// RenderMode selects the rasterization mode.
type RenderMode uint8

const (
	RenderSolidSmooth RenderMode = iota
	RenderSolidFlat
	RenderWireframe
)

func (m RenderMode) String() string {
	switch m {
	case RenderSolidSmooth:
		return "smooth"
	case RenderSolidFlat:
		return "flat"
	case RenderWireframe:
		return "wireframe"
	default:
		return "unknown"
	}
}

// Next cycles smooth -> flat -> wireframe -> smooth.
func (m RenderMode) Next() RenderMode {
	return (m + 1) % 3
}
