package submarine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"subscene/hal"
	"subscene/kernel"
	"subscene/motion"
	"subscene/quarkgl"
)

type fakeFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newFakeFB(w, h int) *fakeFB { return &fakeFB{w: w, h: h, buf: make([]byte, w*h*2)} }

func (f *fakeFB) Width() int              { return f.w }
func (f *fakeFB) Height() int             { return f.h }
func (f *fakeFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *fakeFB) StrideBytes() int        { return f.w * 2 }
func (f *fakeFB) Buffer() []byte          { return f.buf }
func (f *fakeFB) ClearRGB(r, g, b uint8)  {}
func (f *fakeFB) Present() error          { f.presents++; return nil }

func (f *fakeFB) at(x, y int) uint16 {
	i := (y*f.w + x) * 2
	return uint16(f.buf[i]) | uint16(f.buf[i+1])<<8
}

type fakeKeyboard chan hal.KeyEvent

func (k fakeKeyboard) Events() <-chan hal.KeyEvent { return k }

type fakePointer chan hal.PointerEvent

func (p fakePointer) Events() <-chan hal.PointerEvent { return p }

type fakeAudio struct{ freqs []float64 }

func (a *fakeAudio) Tone(f float64, _ time.Duration) { a.freqs = append(a.freqs, f) }

type fakeHAL struct {
	fb    *fakeFB
	kbd   fakeKeyboard
	ptr   fakePointer
	audio *fakeAudio
}

func (h *fakeHAL) Logger() zerolog.Logger { return zerolog.Nop() }
func (h *fakeHAL) Display() hal.Display   { return h }
func (h *fakeHAL) Input() hal.Input       { return h }
func (h *fakeHAL) Time() hal.Time         { return nil }
func (h *fakeHAL) Audio() hal.Audio       { return h.audio }

func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return h.kbd }
func (h *fakeHAL) Pointer() hal.Pointer         { return h.ptr }

func newTestTask(t *testing.T) (*Task, *fakeHAL, *kernel.Loop) {
	t.Helper()
	h := &fakeHAL{
		fb:    newFakeFB(160, 120),
		kbd:   make(fakeKeyboard, 16),
		ptr:   make(fakePointer, 16),
		audio: &fakeAudio{},
	}
	loop := kernel.New(zerolog.Nop())
	task, err := New(h, loop, Config{Motion: motion.DefaultConfig()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return task, h, loop
}

func press(h *fakeHAL, evs ...hal.KeyEvent) {
	for _, ev := range evs {
		ev.Press = true
		h.kbd <- ev
	}
}

func TestFirstStepRendersOnce(t *testing.T) {
	task, h, _ := newTestTask(t)
	if err := task.Step(); err != nil {
		t.Fatal(err)
	}
	if h.fb.presents != 1 {
		t.Fatalf("presents=%d want 1", h.fb.presents)
	}
	if err := task.Step(); err != nil {
		t.Fatal(err)
	}
	if h.fb.presents != 1 {
		t.Fatalf("idle step rendered: presents=%d", h.fb.presents)
	}
}

func TestRenderedFrame(t *testing.T) {
	task, h, _ := newTestTask(t)
	_ = task.Step()

	sky := quarkgl.RGB565(clearColor)
	if got := h.fb.at(h.fb.w-1, 0); got != sky {
		t.Fatalf("top-right pixel %#04x want clear color %#04x", got, sky)
	}

	// The view axis hits the ground at the origin, below the hull.
	p := h.fb.at(h.fb.w/2, h.fb.h/2)
	r, g := p>>11&0x1F, (p>>5&0x3F)>>1
	if g <= r {
		t.Fatalf("centre pixel %#04x is not ground green", p)
	}
}

func TestGroundMesh(t *testing.T) {
	task, _, _ := newTestTask(t)
	if task.ground.Len() != 289 || len(task.ground.Quads()) != 256 {
		t.Fatalf("ground points=%d quads=%d", task.ground.Len(), len(task.ground.Quads()))
	}
}

func TestForwardKeyMovesAfterTick(t *testing.T) {
	task, h, loop := newTestTask(t)
	_ = task.Step()

	press(h, hal.KeyEvent{Rune: 'f'})
	_ = task.Step()
	if task.Motion().Mode() != motion.Moving {
		t.Fatalf("mode=%s", task.Motion().Mode())
	}
	if len(h.audio.freqs) != 1 || h.audio.freqs[0] <= 220 {
		t.Fatalf("tones=%v", h.audio.freqs)
	}

	before := h.fb.presents
	loop.Advance(100 * time.Millisecond)
	_ = task.Step()
	if h.fb.presents != before+1 {
		t.Fatalf("tick did not trigger a frame")
	}
	if x := task.Motion().State().X; math.Abs(x-0.02) > 1e-9 {
		t.Fatalf("x=%v want 0.02", x)
	}
}

func TestHaltKey(t *testing.T) {
	task, h, loop := newTestTask(t)
	press(h, hal.KeyEvent{Rune: 'f'}, hal.KeyEvent{Rune: 'f'}, hal.KeyEvent{Rune: 's'})
	_ = task.Step()
	if task.Motion().Mode() != motion.Stationary || loop.Pending() != 0 {
		t.Fatalf("mode=%s pending=%d", task.Motion().Mode(), loop.Pending())
	}
}

func TestArrowKeys(t *testing.T) {
	task, h, _ := newTestTask(t)
	press(h,
		hal.KeyEvent{Code: hal.KeyLeft},
		hal.KeyEvent{Code: hal.KeyLeft},
		hal.KeyEvent{Code: hal.KeyRight},
		hal.KeyEvent{Code: hal.KeyUp},
	)
	_ = task.Step()
	st := task.Motion().State()
	if st.Heading != 10 || math.Abs(st.Y-0.1) > 1e-9 {
		t.Fatalf("state=%+v", st)
	}

	h.kbd <- hal.KeyEvent{Code: hal.KeyDown, Press: false}
	_ = task.Step()
	if y := task.Motion().State().Y; math.Abs(y-0.1) > 1e-9 {
		t.Fatalf("release moved the submarine: y=%v", y)
	}
}

func TestHelpToggle(t *testing.T) {
	task, h, _ := newTestTask(t)
	_ = task.Step()
	press(h, hal.KeyEvent{Code: hal.KeyF1})
	_ = task.Step()
	if !task.showHelp || h.fb.presents != 2 {
		t.Fatalf("help=%v presents=%d", task.showHelp, h.fb.presents)
	}
	press(h, hal.KeyEvent{Code: hal.KeyF1})
	_ = task.Step()
	if task.showHelp {
		t.Fatal("help not toggled off")
	}
}

func TestRenderModeCycle(t *testing.T) {
	task, h, _ := newTestTask(t)
	press(h, hal.KeyEvent{Rune: 'w'})
	_ = task.Step()
	if task.r.Mode != quarkgl.RenderSolidFlat {
		t.Fatalf("mode=%s", task.r.Mode)
	}
	press(h, hal.KeyEvent{Rune: 'w'})
	_ = task.Step()
	if task.r.Mode != quarkgl.RenderWireframe {
		t.Fatalf("mode=%s", task.r.Mode)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []hal.KeyEvent{{Rune: 'q'}, {Code: hal.KeyEscape}} {
		task, h, _ := newTestTask(t)
		press(h, ev)
		if err := task.Step(); !errors.Is(err, hal.ErrQuit) {
			t.Fatalf("%+v: err=%v", ev, err)
		}
	}
}

func TestModelPose(t *testing.T) {
	task, _, _ := newTestTask(t)
	hull := task.model.root.Find("hull")
	if hull == nil {
		t.Fatal("no hull node")
	}

	task.model.pose(task.s, motion.State{X: 1, Heading: 90})
	m, ok := task.s.MeshTransform(hull.MeshID)
	if !ok {
		t.Fatal("hull mesh missing")
	}
	// The hull nose at local (1,0,0) stretches to x=8 and turns to -Z.
	p := quarkgl.Mat4MulPoint(m, quarkgl.V3(1, 0, 0))
	if !nearVec(p, quarkgl.V3(1, 4, -8)) {
		t.Fatalf("nose at %+v", p)
	}
}

func TestPropellerSpins(t *testing.T) {
	task, _, _ := newTestTask(t)
	id := task.model.props[1].MeshID

	task.model.pose(task.s, motion.State{})
	a, _ := task.s.MeshTransform(id)
	task.model.pose(task.s, motion.State{Spin: 45})
	b, _ := task.s.MeshTransform(id)
	if a == b {
		t.Fatal("propeller transform ignores spin")
	}

	// The hub stays on the shaft whatever the spin.
	hub := quarkgl.Mat4MulPoint(b, quarkgl.V3(0, 0, 0))
	if !nearVec(hub, quarkgl.V3(propX, propY, 0)) {
		t.Fatalf("hub at %+v", hub)
	}
}

func TestPointerOrbit(t *testing.T) {
	task, h, _ := newTestTask(t)
	_ = task.Step()
	before := task.s.Camera.Position

	h.ptr <- hal.PointerEvent{Kind: hal.PointerDrag, DX: 40}
	h.ptr <- hal.PointerEvent{Kind: hal.PointerWheel, Wheel: 2}
	_ = task.Step()
	if task.s.Camera.Position == before {
		t.Fatal("camera did not move")
	}
	if h.fb.presents != 2 {
		t.Fatalf("presents=%d", h.fb.presents)
	}
	if task.s.Camera.Target != cameraTarget {
		t.Fatalf("orbit moved the target: %+v", task.s.Camera.Target)
	}
}

func TestWireframeConfig(t *testing.T) {
	h := &fakeHAL{fb: newFakeFB(32, 24), kbd: make(fakeKeyboard, 1), ptr: make(fakePointer, 1), audio: &fakeAudio{}}
	task, err := New(h, kernel.New(zerolog.Nop()), Config{Wireframe: true, GroundSubdivisions: 4})
	if err != nil {
		t.Fatal(err)
	}
	if task.r.Mode != quarkgl.RenderWireframe || task.ground.Subdivisions() != 4 {
		t.Fatalf("mode=%s subdivisions=%d", task.r.Mode, task.ground.Subdivisions())
	}
}

func nearVec(a, b quarkgl.Vec3) bool {
	const eps = 1e-4
	return math.Abs(float64(a.X-b.X)) < eps && math.Abs(float64(a.Y-b.Y)) < eps && math.Abs(float64(a.Z-b.Z)) < eps
}
