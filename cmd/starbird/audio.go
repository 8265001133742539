package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/starbird/internal/games/starbird"
	"github.com/vovakirdan/starbird/internal/platform/audio"
)

// speakerLock serializes mixer changes with the speaker goroutine.
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// openAudio starts the speaker and returns the cue player. Without a
// usable device the game runs silent.
func openAudio(mute bool, volume float64, logger *log.Logger) (starbird.AudioCue, func()) {
	if mute {
		return audio.Nop{}, func() {}
	}

	rate := audio.DefaultSampleRate
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		logger.Warn("audio disabled", "err", err)
		return audio.Nop{}, func() {}
	}

	cues := audio.New(audio.Options{
		SampleRate: rate,
		Volume:     volume,
		Locker:     speakerLock{},
		Logger:     logger,
	})
	speaker.Play(cues.Mixer())
	logger.Debug("audio ready", "rate", int(rate))

	return cues, func() {
		cues.SetMuted(true)
		speaker.Close()
	}
}
