package hal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// halfBlock paints the upper pixel as foreground and the lower as background,
// so each terminal cell shows two framebuffer rows.
const halfBlock = '▀'

// RunTerminal renders into the controlling terminal with tcell. The
// framebuffer is sized to the terminal at start: one column per cell and two
// rows per cell. It blocks until ctx is cancelled or step returns ErrQuit.
func RunTerminal(ctx context.Context, cfg Config, newApp func(HAL) func() error) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal screen: %w", err)
	}
	return runTerminal(ctx, cfg, screen, newApp)
}

func runTerminal(ctx context.Context, cfg Config, screen tcell.Screen, newApp func(HAL) func() error) error {
	cfg = cfg.withDefaults()
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("terminal too small: %dx%d", cols, rows)
	}
	h := newHost(cfg, cols, rows*2)
	step := newApp(h)
	h.log.Info().Int("cols", cols).Int("rows", rows).Msg("terminal runner started")

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	t := time.NewTicker(time.Second / time.Duration(cfg.Hz))
	defer t.Stop()

	in := terminalInput{kbd: h.kbd, ptr: h.ptr}
	snap := make([]byte, len(h.fb.buf))
	var gen uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
				gen = 0
				continue
			}
			in.handle(ev)
		case <-t.C:
			if done, err := h.frame(step); done {
				return err
			}
			if g, changed := h.fb.snapshotRGB565(snap, gen); changed {
				gen = g
				blit(screen, snap, h.fb.width, h.fb.height)
				screen.Show()
			}
		}
	}
}

// blit paints an RGB565 snapshot of a w x h framebuffer into screen cells.
func blit(screen tcell.Screen, snap []byte, w, h int) {
	cols, rows := screen.Size()
	stride := w * 2
	for cy := 0; cy < rows && cy*2 < h; cy++ {
		for cx := 0; cx < cols && cx < w; cx++ {
			tr, tg, tb := pixelAt(snap, stride, cx, cy*2)
			br, bg, bb := tr, tg, tb
			if cy*2+1 < h {
				br, bg, bb = pixelAt(snap, stride, cx, cy*2+1)
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(tr), int32(tg), int32(tb))).
				Background(tcell.NewRGBColor(int32(br), int32(bg), int32(bb)))
			screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
}

// terminalInput translates tcell events into HAL events.
type terminalInput struct {
	kbd *hostKeyboard
	ptr *hostPointer

	dragging     bool
	lastX, lastY int
}

func (in *terminalInput) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ke, ok := keyFromTcell(ev); ok {
			in.kbd.emit(ke)
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		btn := ev.Buttons()
		if btn&tcell.Button1 != 0 {
			if in.dragging && (x != in.lastX || y != in.lastY) {
				in.ptr.emit(PointerEvent{Kind: PointerDrag, DX: x - in.lastX, DY: (y - in.lastY) * 2})
			}
			in.dragging = true
		} else {
			in.dragging = false
		}
		in.lastX, in.lastY = x, y
		switch {
		case btn&tcell.WheelUp != 0:
			in.ptr.emit(PointerEvent{Kind: PointerWheel, Wheel: 1})
		case btn&tcell.WheelDown != 0:
			in.ptr.emit(PointerEvent{Kind: PointerWheel, Wheel: -1})
		}
	}
}

// keyFromTcell maps a terminal key press. Terminals report no releases.
func keyFromTcell(ev *tcell.EventKey) (KeyEvent, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return KeyEvent{Press: true, Rune: ev.Rune()}, true
	case tcell.KeyUp:
		return KeyEvent{Code: KeyUp, Press: true}, true
	case tcell.KeyDown:
		return KeyEvent{Code: KeyDown, Press: true}, true
	case tcell.KeyLeft:
		return KeyEvent{Code: KeyLeft, Press: true}, true
	case tcell.KeyRight:
		return KeyEvent{Code: KeyRight, Press: true}, true
	case tcell.KeyEnter:
		return KeyEvent{Code: KeyEnter, Press: true}, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyEvent{Code: KeyEscape, Press: true}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyEvent{Code: KeyBackspace, Press: true}, true
	case tcell.KeyTab:
		return KeyEvent{Code: KeyTab, Press: true}, true
	case tcell.KeyF1:
		return KeyEvent{Code: KeyF1, Press: true}, true
	default:
		return KeyEvent{}, false
	}
}
