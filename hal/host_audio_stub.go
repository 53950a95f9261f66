//go:build !cgo

package hal

import "github.com/rs/zerolog"

func newHostAudio(log zerolog.Logger) Audio {
	log.Warn().Msg("audio requires cgo; running silent")
	return silentAudio{}
}
