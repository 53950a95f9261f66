package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"subscene/hal"
)

const panicLineHeight = 10

var (
	panicFont = &proggy.TinySZ8pt7b
	panicInk  = color.RGBA{A: 0xFF}
)

// showPanic logs a recovered panic and paints the value and stack on white.
func showPanic(h hal.HAL, v any, stack []byte) {
	log := h.Logger()
	log.Error().Str("panic", fmt.Sprint(v)).Bytes("stack", stack).Msg("scene panic")

	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	fb.ClearRGB(0xFF, 0xFF, 0xFF)

	cols := 1
	if _, w := tinyfont.LineWidth(panicFont, "0"); w > 0 {
		cols = max(1, fb.Width()/int(w))
	}
	rows := fb.Height() / panicLineHeight

	d := hal.Displayer{FB: fb}
	row := 0
	for _, line := range panicLines(v, stack) {
		for _, chunk := range wrapRunes(line, cols) {
			if row >= rows {
				_ = fb.Present()
				return
			}
			tinyfont.WriteLine(d, panicFont, 0, int16((row+1)*panicLineHeight-2), chunk, panicInk)
			row++
		}
	}
	_ = fb.Present()
}

func panicLines(v any, stack []byte) []string {
	lines := []string{fmt.Sprintf("panic: %v", v), ""}
	for _, l := range strings.Split(string(stack), "\n") {
		if l = strings.TrimRight(l, " "); l != "" {
			lines = append(lines, strings.ReplaceAll(l, "\t", "  "))
		}
	}
	return append(lines, "", "q or Esc quits")
}

// wrapRunes cuts s into pieces of at most n runes; an empty s yields one
// empty line.
func wrapRunes(s string, n int) []string {
	if s == "" || n <= 0 {
		return []string{s}
	}
	var out []string
	for s != "" {
		prefix, rest := takeRunes(s, n)
		out = append(out, prefix)
		s = strings.TrimLeft(rest, " ")
	}
	return out
}

// takeRunes splits s after at most n runes.
func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 {
		return "", s
	}
	i := 0
	for count := 0; i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i], s[i:]
}
