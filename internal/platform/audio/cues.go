// Package audio turns game cues into short synthesized sounds.
//
// Cues only mixes streamers; opening an output device is left to the
// binary so that this package builds without cgo.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/starbird/internal/games/starbird"
)

// DefaultSampleRate is used when Options.SampleRate is zero.
const DefaultSampleRate = beep.SampleRate(44100)

// Options configures a Cues player.
type Options struct {
	SampleRate beep.SampleRate
	// Volume is a linear gain applied to every cue, 1 is unchanged.
	Volume float64
	// Locker guards the mixer against the output goroutine, typically
	// the speaker lock. Nil means no external locking.
	Locker sync.Locker
	Logger *log.Logger
}

// Cues plays game cues on a beep.Mixer.
type Cues struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	locker sync.Locker
	mixer  *beep.Mixer
	muted  bool
	logger *log.Logger
}

// New creates a cue player. Stream the result of Mixer to an output.
func New(opts Options) *Cues {
	if opts.SampleRate == 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.Volume == 0 {
		opts.Volume = 1
	}
	if opts.Locker == nil {
		opts.Locker = noLock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Cues{
		rate:   opts.SampleRate,
		volume: opts.Volume,
		locker: opts.Locker,
		mixer:  &beep.Mixer{},
		logger: opts.Logger,
	}
}

// Mixer is the streamer every cue is added to.
func (c *Cues) Mixer() beep.Streamer { return c.mixer }

// SampleRate returns the rate cues are synthesized at.
func (c *Cues) SampleRate() beep.SampleRate { return c.rate }

// SetMuted silences or restores cues. Muting drops sounds in flight.
func (c *Cues) SetMuted(m bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted = m
	if m {
		c.locker.Lock()
		c.mixer.Clear()
		c.locker.Unlock()
	}
}

// Muted reports whether cues are silenced.
func (c *Cues) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// Active returns the number of cues still playing.
func (c *Cues) Active() int {
	c.locker.Lock()
	defer c.locker.Unlock()
	return c.mixer.Len()
}

// Play starts the sound for cue. It never blocks on the output.
func (c *Cues) Play(cue starbird.Cue) {
	c.mu.Lock()
	muted := c.muted
	c.mu.Unlock()
	if muted {
		return
	}

	s := Sound(cue, c.rate)
	if s == nil {
		c.logger.Debug("no sound for cue", "cue", cue)
		return
	}

	c.locker.Lock()
	c.mixer.Add(gain(s, c.volume))
	c.locker.Unlock()
}

// Sound builds the streamer for one cue, or nil for an unknown cue.
func Sound(cue starbird.Cue, rate beep.SampleRate) beep.Streamer {
	ms := time.Millisecond
	switch cue {
	case starbird.CueFlap:
		d := 70 * ms
		return gain(Shape(Tone(rate, WaveSine, 520, 780, d), rate, d, 5*ms, 40*ms), 0.35)
	case starbird.CueCollision:
		d := 260 * ms
		return beep.Mix(
			gain(Shape(Tone(rate, WaveNoise, 1, 1, d), rate, d, 2*ms, 200*ms), 0.3),
			gain(Shape(Tone(rate, WaveSquare, 140, 60, d), rate, d, 2*ms, 180*ms), 0.25),
		)
	case starbird.CueShieldOn:
		d := 220 * ms
		return gain(Shape(Tone(rate, WaveSine, 330, 990, d), rate, d, 20*ms, 80*ms), 0.4)
	case starbird.CueLightsaberOn:
		d := 380 * ms
		return beep.Mix(
			gain(Shape(Tone(rate, WaveSaw, 90, 120, d), rate, d, 40*ms, 120*ms), 0.25),
			gain(Shape(Tone(rate, WaveSine, 180, 240, d), rate, d, 40*ms, 120*ms), 0.2),
		)
	case starbird.CuePowerUp:
		return gain(beep.Seq(note(rate, 880, 60*ms), note(rate, 1320, 90*ms)), 0.3)
	case starbird.CueLevelUp:
		return gain(beep.Seq(
			note(rate, 523.25, 90*ms),
			note(rate, 659.25, 90*ms),
			note(rate, 783.99, 160*ms),
		), 0.3)
	default:
		return nil
	}
}

func note(rate beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	return Shape(Tone(rate, WaveSquare, freq, freq, d), rate, d, 3*time.Millisecond, d/2)
}

// Nop discards cues.
type Nop struct{}

// Play does nothing.
func (Nop) Play(starbird.Cue) {}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}
