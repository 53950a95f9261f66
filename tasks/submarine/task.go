// Package submarine is the interactive scene: a ground plane and a submarine
// steered from the keyboard, drawn with quarkgl.
package submarine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"subscene/hal"
	"subscene/internal/metrics"
	"subscene/kernel"
	"subscene/motion"
	"subscene/quadmesh"
	"subscene/quarkgl"
)

// Config tunes the scene.
type Config struct {
	Motion             motion.Config
	GroundSubdivisions int
	GroundSize         float64
	Wireframe          bool
}

const (
	maxMeshes = 16

	orbitRadPerPixel = 0.01
	minOrbitRadius   = 6
	maxOrbitRadius   = 38

	cueDuration = 60 * time.Millisecond
)

// Task owns all scene state. It runs on the loop's goroutine.
type Task struct {
	log   zerolog.Logger
	loop  *kernel.Loop
	fb    hal.Framebuffer
	kbd   hal.Keyboard
	ptr   hal.Pointer
	audio hal.Audio

	motion *motion.Controller
	ground *quadmesh.Mesh

	r     *quarkgl.Renderer
	s     *quarkgl.Scene
	model model
	orbit quarkgl.OrbitController

	showHelp bool
	quit     bool

	frames metric.Int64Counter
}

// New builds the scene and requests the first frame.
func New(h hal.HAL, loop *kernel.Loop, cfg Config) (*Task, error) {
	fb := h.Display().Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil, errors.New("submarine: need an RGB565 framebuffer")
	}
	if cfg.GroundSize <= 0 {
		cfg.GroundSize = 16
	}
	if cfg.GroundSubdivisions <= 0 {
		cfg.GroundSubdivisions = 16
	}

	t := &Task{
		log:    h.Logger().With().Str("task", "submarine").Logger(),
		loop:   loop,
		fb:     fb,
		kbd:    h.Input().Keyboard(),
		ptr:    h.Input().Pointer(),
		audio:  h.Audio(),
		frames: metrics.Counter(metrics.Meter("render"), "render.frames", "Frames rendered"),
	}
	t.motion = motion.New(cfg.Motion, loop, t.log)
	t.motion.OnThrottle(t.cue)

	t.r = quarkgl.NewRenderer(fb.Width(), fb.Height(), true)
	t.r.ClearColor = clearColor
	if cfg.Wireframe {
		t.r.Mode = quarkgl.RenderWireframe
	}

	t.s = quarkgl.CreateScene(maxMeshes)
	setupCamera(t.s)
	setupLights(t.s)
	t.orbit = quarkgl.OrbitFrom(cameraEye, cameraTarget)
	t.orbit.MinRadius = minOrbitRadius
	t.orbit.MaxRadius = maxOrbitRadius

	t.ground = buildGround(cfg.GroundSize, cfg.GroundSubdivisions)
	if t.s.AddMesh(t.ground.Triangulate()) < 0 {
		return nil, errors.New("submarine: scene full")
	}
	t.model = buildModel(t.s)

	t.log.Info().
		Int("ground_points", t.ground.Len()).
		Int("ground_quads", len(t.ground.Quads())).
		Str("mode", t.r.Mode.String()).
		Msg("scene ready; press F1 for help")
	t.loop.PostRedisplay()
	return t, nil
}

// Motion exposes the controller for tests and diagnostics.
func (t *Task) Motion() *motion.Controller { return t.motion }

// Step drains input and renders if a redraw is pending. It returns
// hal.ErrQuit once the user asked to leave.
func (t *Task) Step() error {
	t.drainKeys()
	t.drainPointer()
	if t.quit {
		return hal.ErrQuit
	}
	if t.loop.TakeRedisplay() {
		t.Render()
	}
	return nil
}

func (t *Task) drainKeys() {
	if t.kbd == nil {
		return
	}
	for {
		select {
		case ev := <-t.kbd.Events():
			if ev.Press {
				t.handleKey(ev)
			}
		default:
			return
		}
	}
}

func (t *Task) handleKey(ev hal.KeyEvent) {
	switch ev.Code {
	case hal.KeyLeft:
		t.motion.TurnLeft()
	case hal.KeyRight:
		t.motion.TurnRight()
	case hal.KeyUp:
		t.motion.Rise()
	case hal.KeyDown:
		t.motion.Dive()
	case hal.KeyF1:
		t.help()
	case hal.KeyEscape:
		t.quit = true
	case hal.KeyUnknown:
		switch ev.Rune {
		case 'f':
			t.motion.Forward()
		case 'b':
			t.motion.Backward()
		case 's':
			t.motion.Halt()
		case 'w':
			t.r.Mode = t.r.Mode.Next()
			t.log.Debug().Str("mode", t.r.Mode.String()).Msg("render mode")
			t.loop.PostRedisplay()
		case 'q':
			t.quit = true
		}
	}
}

func (t *Task) help() {
	for _, l := range helpLines {
		t.log.Info().Msg(l)
	}
	t.showHelp = !t.showHelp
	t.loop.PostRedisplay()
}

func (t *Task) drainPointer() {
	if t.ptr == nil {
		return
	}
	moved := false
	for {
		select {
		case ev := <-t.ptr.Events():
			switch ev.Kind {
			case hal.PointerDrag:
				t.orbit.Rotate(-float32(ev.DX)*orbitRadPerPixel, float32(ev.DY)*orbitRadPerPixel)
				moved = true
			case hal.PointerWheel:
				t.orbit.Zoom(-float32(ev.Wheel))
				moved = true
			}
		default:
			if moved {
				t.orbit.Apply(&t.s.Camera)
				t.loop.PostRedisplay()
			}
			return
		}
	}
}

// cue plays a tone that rises with throttle.
func (t *Task) cue(speed float64) {
	if t.audio == nil {
		return
	}
	top := t.motion.Config().MaxSpeed
	t.audio.Tone(220+440*math.Abs(speed)/top, cueDuration)
}

// Render draws the scene and HUD and presents the framebuffer.
func (t *Task) Render() {
	st := t.motion.State()
	t.model.pose(t.s, st)

	target := &quarkgl.RGB565Target{
		Buf:    t.fb.Buffer(),
		Stride: t.fb.StrideBytes(),
		W:      t.fb.Width(),
		H:      t.fb.Height(),
	}
	t.r.Render(target, t.s)
	t.drawHUD(st)

	t.frames.Add(context.Background(), 1, metric.WithAttributes(attribute.String("mode", t.r.Mode.String())))
	if err := t.fb.Present(); err != nil {
		t.log.Warn().Err(err).Msg("present failed")
	}
}

func (t *Task) drawHUD(st motion.State) {
	d := hal.Displayer{FB: t.fb}
	drawLine(d, 6, 4, fmt.Sprintf("speed %+.2f  heading %3.0f  depth %+.1f  %s",
		st.Speed, st.Heading, st.Y, t.motion.Mode()), hudText)
	if !t.showHelp {
		drawLine(d, 6, 4+hudLineHeight, "F1 help   s stop   w "+t.r.Mode.Next().String()+"   q quit", hudMuted)
		return
	}
	for i, l := range helpLines {
		drawLine(d, 6, 4+hudLineHeight*(i+1), l, hudMuted)
	}
}
