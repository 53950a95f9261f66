//go:build cgo

package hal

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

const audioSampleRate = beep.SampleRate(48000)

// hostAudio mixes tones into the system speaker through beep.
type hostAudio struct {
	mixer *beep.Mixer
}

// newHostAudio initializes the speaker. Failure is not fatal; the scene runs
// silent.
func newHostAudio(log zerolog.Logger) Audio {
	mixer := &beep.Mixer{}
	if err := speaker.Init(audioSampleRate, audioSampleRate.N(100*time.Millisecond)); err != nil {
		log.Warn().Err(err).Msg("audio initialization failed; running silent")
		return silentAudio{}
	}
	speaker.Play(mixer)
	return &hostAudio{mixer: mixer}
}

func (a *hostAudio) Tone(freqHz float64, d time.Duration) {
	if freqHz <= 0 || d <= 0 {
		return
	}
	g := newToneGenerator(audioSampleRate, freqHz, audioSampleRate.N(d))
	speaker.Lock()
	a.mixer.Add(g)
	speaker.Unlock()
}
