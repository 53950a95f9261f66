//go:build cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

type hostPointer struct {
	ch chan PointerEvent

	dragging     bool
	lastX, lastY int
}

func newHostPointer() *hostPointer {
	return &hostPointer{ch: make(chan PointerEvent, 64)}
}

func (p *hostPointer) Events() <-chan PointerEvent { return p.ch }

func (p *hostPointer) emit(ev PointerEvent) {
	select {
	case p.ch <- ev:
	default:
	}
}

// poll turns left-button drags and wheel steps into events; it must run
// inside Game.Update.
func (p *hostPointer) poll() {
	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if p.dragging && (x != p.lastX || y != p.lastY) {
			p.emit(PointerEvent{Kind: PointerDrag, DX: x - p.lastX, DY: y - p.lastY})
		}
		p.dragging = true
	} else {
		p.dragging = false
	}
	p.lastX, p.lastY = x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		p.emit(PointerEvent{Kind: PointerWheel, Wheel: wy})
	}
}
