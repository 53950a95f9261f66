package app

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"subscene/hal"
)

type fakeFB struct {
	w, h      int
	buf       []byte
	presents  int
	panicOnce bool
}

func (f *fakeFB) Width() int              { return f.w }
func (f *fakeFB) Height() int             { return f.h }
func (f *fakeFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *fakeFB) StrideBytes() int        { return f.w * 2 }
func (f *fakeFB) Buffer() []byte          { return f.buf }

func (f *fakeFB) ClearRGB(r, g, b uint8) {
	p := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

func (f *fakeFB) Present() error {
	f.presents++
	if f.panicOnce {
		f.panicOnce = false
		panic("present failed")
	}
	return nil
}

func (f *fakeFB) count(p uint16) int {
	n := 0
	for i := 0; i+1 < len(f.buf); i += 2 {
		if uint16(f.buf[i])|uint16(f.buf[i+1])<<8 == p {
			n++
		}
	}
	return n
}

type fakeKeyboard chan hal.KeyEvent

func (k fakeKeyboard) Events() <-chan hal.KeyEvent { return k }

type fakePointer chan hal.PointerEvent

func (p fakePointer) Events() <-chan hal.PointerEvent { return p }

type fakeTime chan uint64

func (t fakeTime) Ticks() <-chan uint64 { return t }

type fakeAudio struct{}

func (fakeAudio) Tone(float64, time.Duration) {}

type fakeHAL struct {
	fb  *fakeFB
	kbd fakeKeyboard
	ptr fakePointer
	t   fakeTime
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		fb:  &fakeFB{w: 160, h: 120, buf: make([]byte, 160*120*2)},
		kbd: make(fakeKeyboard, 8),
		ptr: make(fakePointer, 8),
		t:   make(fakeTime, 256),
	}
}

func (h *fakeHAL) Logger() zerolog.Logger       { return zerolog.Nop() }
func (h *fakeHAL) Display() hal.Display         { return h }
func (h *fakeHAL) Input() hal.Input             { return h }
func (h *fakeHAL) Time() hal.Time               { return h.t }
func (h *fakeHAL) Audio() hal.Audio             { return fakeAudio{} }
func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return h.kbd }
func (h *fakeHAL) Pointer() hal.Pointer         { return h.ptr }

func TestStepRendersAndQuits(t *testing.T) {
	h := newFakeHAL()
	step := New(h, Config{})

	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if h.fb.presents != 1 {
		t.Fatalf("presents=%d want 1", h.fb.presents)
	}

	h.kbd <- hal.KeyEvent{Rune: 'q', Press: true}
	if err := step(); !errors.Is(err, hal.ErrQuit) {
		t.Fatalf("err=%v want ErrQuit", err)
	}
}

func TestStepDrainsTicks(t *testing.T) {
	h := newFakeHAL()
	step := New(h, Config{})
	_ = step()

	h.kbd <- hal.KeyEvent{Rune: 'f', Press: true}
	_ = step()
	before := h.fb.presents

	// One motion tick is 100 ms of 1 ms ticks.
	for i := uint64(1); i <= 100; i++ {
		h.t <- i
	}
	if err := step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if h.fb.presents <= before {
		t.Fatalf("motion tick did not redraw: presents=%d before=%d", h.fb.presents, before)
	}
}

func TestPanicScreen(t *testing.T) {
	h := newFakeHAL()
	h.fb.panicOnce = true
	step := New(h, Config{})

	if err := step(); err != nil {
		t.Fatalf("panicking step returned %v", err)
	}
	if h.fb.count(0xFFFF) == 0 || h.fb.count(0x0000) == 0 {
		t.Fatalf("panic screen not painted")
	}

	presents := h.fb.presents
	if err := step(); err != nil {
		t.Fatalf("step after panic: %v", err)
	}
	if h.fb.presents != presents {
		t.Fatalf("scene kept rendering after panic")
	}

	h.kbd <- hal.KeyEvent{Code: hal.KeyEscape, Press: true}
	if err := step(); !errors.Is(err, hal.ErrQuit) {
		t.Fatalf("err=%v want ErrQuit", err)
	}
}

func TestTakeRunes(t *testing.T) {
	cases := []struct {
		in, prefix, rest string
		n                int
	}{
		{"hello", "hel", "lo", 3},
		{"hi", "hi", "", 5},
		{"", "", "", 3},
		{"äöü", "äö", "ü", 2},
		{"abc", "", "abc", 0},
	}
	for _, tc := range cases {
		p, r := takeRunes(tc.in, tc.n)
		if p != tc.prefix || r != tc.rest {
			t.Fatalf("takeRunes(%q,%d)=(%q,%q) want (%q,%q)", tc.in, tc.n, p, r, tc.prefix, tc.rest)
		}
	}
}

func TestWrapRunes(t *testing.T) {
	if got := wrapRunes("abcd efgh", 4); len(got) != 2 || got[0] != "abcd" || got[1] != "efgh" {
		t.Fatalf("wrapRunes=%q", got)
	}
	if got := wrapRunes("", 4); len(got) != 1 || got[0] != "" {
		t.Fatalf("empty wrap=%q", got)
	}
}
