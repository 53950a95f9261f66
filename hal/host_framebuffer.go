package hal

import "sync"

// hostFramebuffer is an RGB565 buffer shared between the step goroutine and
// the presenter. Present bumps a generation counter so presenters can skip
// unchanged frames.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
	gen    uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.stride }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	f.gen++
	f.mu.Unlock()
	return nil
}

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

// snapshotRGB565 copies the buffer into dst when it changed since gen and
// returns the current generation.
func (f *hostFramebuffer) snapshotRGB565(dst []byte, gen uint64) (uint64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen == gen {
		return gen, false
	}
	copy(dst, f.buf)
	return f.gen, true
}

// pixelAt decodes one pixel from an RGB565 snapshot.
func pixelAt(snap []byte, stride, x, y int) (r, g, b uint8) {
	i := y*stride + x*2
	if i < 0 || i+1 >= len(snap) {
		return 0, 0, 0
	}
	return rgb888From565(uint16(snap[i]) | uint16(snap[i+1])<<8)
}
