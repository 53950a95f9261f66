//go:build cgo

package hal

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"subscene/internal/buildinfo"
)

// RunWindow opens a desktop window that displays the framebuffer and forwards
// keyboard and mouse input. It blocks until the window closes or step returns
// ErrQuit.
func RunWindow(cfg Config, newApp func(HAL) func() error) error {
	cfg = cfg.withDefaults()
	h := newHost(cfg, cfg.Width, cfg.Height)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Hz)
	h.log.Info().Int("width", cfg.Width).Int("height", cfg.Height).Int("tps", cfg.Hz).Msg("window runner started")

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	h       *hostHAL
	fbImg   *ebiten.Image
	pix     []byte
	scratch []byte
	gen     uint64
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	g.h.ptr.poll()
	if done, err := g.h.frame(g.step); done {
		if err == nil {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.pix = make([]byte, fb.width*fb.height*4)
		g.scratch = make([]byte, len(fb.buf))
	}

	if gen, changed := fb.snapshotRGB565(g.scratch, g.gen); changed {
		g.gen = gen
		rgbaFrom565(g.pix, g.scratch)
		g.fbImg.WritePixels(g.pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
