package hal

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// toneGenerator streams a sine wave with a short linear attack and release so
// consecutive cues do not click.
type toneGenerator struct {
	sr    beep.SampleRate
	freq  float64
	total int
	pos   int
}

func newToneGenerator(sr beep.SampleRate, freq float64, samples int) *toneGenerator {
	return &toneGenerator{sr: sr, freq: freq, total: samples}
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	ramp := g.sr.N(5 * time.Millisecond)
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)
		env := 1.0
		if ramp > 0 {
			env = math.Min(1, math.Min(float64(g.pos)/float64(ramp), float64(g.total-g.pos)/float64(ramp)))
		}
		s := 0.2 * env * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error { return nil }
