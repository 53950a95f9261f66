//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Key repeat for held navigation keys, in ebiten ticks.
const (
	repeatDelay    = 18
	repeatInterval = 4
)

var hostKeys = []struct {
	key    ebiten.Key
	code   KeyCode
	repeat bool
}{
	{ebiten.KeyArrowUp, KeyUp, true},
	{ebiten.KeyArrowDown, KeyDown, true},
	{ebiten.KeyArrowLeft, KeyLeft, true},
	{ebiten.KeyArrowRight, KeyRight, true},
	{ebiten.KeyEnter, KeyEnter, false},
	{ebiten.KeyEscape, KeyEscape, false},
	{ebiten.KeyBackspace, KeyBackspace, false},
	{ebiten.KeyTab, KeyTab, false},
	{ebiten.KeyF1, KeyF1, false},
}

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

// poll reads ebiten's input state; it must run inside Game.Update.
func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		k.emit(KeyEvent{Press: true, Rune: r})
	}

	for _, hk := range hostKeys {
		switch {
		case inpututil.IsKeyJustPressed(hk.key):
			k.emit(KeyEvent{Code: hk.code, Press: true})
		case inpututil.IsKeyJustReleased(hk.key):
			k.emit(KeyEvent{Code: hk.code, Press: false})
		case hk.repeat && repeating(inpututil.KeyPressDuration(hk.key)):
			k.emit(KeyEvent{Code: hk.code, Press: true})
		}
	}
}

func repeating(held int) bool {
	return held > repeatDelay && (held-repeatDelay)%repeatInterval == 0
}
