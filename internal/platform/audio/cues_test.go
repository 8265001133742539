package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/starbird/internal/games/starbird"
)

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for _, v := range buf[i] {
				if v > peak {
					peak = v
				}
				if -v > peak {
					peak = -v
				}
			}
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	tests := []struct {
		name string
		wave Wave
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
		{"noise", WaveNoise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, peak := drain(Tone(rate, tt.wave, 440, 220, 100*time.Millisecond))
			if n != rate.N(100*time.Millisecond) {
				t.Errorf("streamed %d samples, expected %d", n, rate.N(100*time.Millisecond))
			}
			if peak > 1 {
				t.Errorf("peak = %f, expected <= 1", peak)
			}
			if peak == 0 {
				t.Error("tone should not be silent")
			}
		})
	}
}

func TestShapeFadesOut(t *testing.T) {
	rate := beep.SampleRate(8000)
	d := 50 * time.Millisecond
	s := Shape(Tone(rate, WaveSquare, 100, 100, d), rate, d, 0, d)

	buf := make([][2]float64, rate.N(d))
	n, _ := s.Stream(buf)
	if n == 0 {
		t.Fatal("Shape() streamed nothing")
	}
	last := buf[n-1][0]
	if last > 0.05 || last < -0.05 {
		t.Errorf("last sample = %f, expected near zero", last)
	}
}

func TestSoundForEveryCue(t *testing.T) {
	cues := []starbird.Cue{
		starbird.CueFlap,
		starbird.CueCollision,
		starbird.CueShieldOn,
		starbird.CueLightsaberOn,
		starbird.CuePowerUp,
		starbird.CueLevelUp,
	}
	for _, c := range cues {
		s := Sound(c, DefaultSampleRate)
		if s == nil {
			t.Errorf("Sound(%v) = nil", c)
			continue
		}
		n, _ := drain(s)
		if n == 0 || n > DefaultSampleRate.N(time.Second) {
			t.Errorf("Sound(%v) streamed %d samples, expected a short cue", c, n)
		}
	}

	if Sound(starbird.Cue(99), DefaultSampleRate) != nil {
		t.Error("Sound() for an unknown cue should be nil")
	}
}

func TestCuesPlayAndMute(t *testing.T) {
	c := New(Options{SampleRate: 8000})

	c.Play(starbird.CueFlap)
	c.Play(starbird.CueLevelUp)
	if c.Active() != 2 {
		t.Errorf("Active() = %d, expected 2", c.Active())
	}

	c.SetMuted(true)
	if c.Active() != 0 {
		t.Errorf("Active() = %d after mute, expected 0", c.Active())
	}
	c.Play(starbird.CueFlap)
	if c.Active() != 0 {
		t.Errorf("Play() while muted should not add sounds, Active() = %d", c.Active())
	}

	c.SetMuted(false)
	c.Play(starbird.CueCollision)
	if c.Active() != 1 {
		t.Errorf("Active() = %d after unmute, expected 1", c.Active())
	}
}

func TestCuesMixerDrainsFinishedSounds(t *testing.T) {
	c := New(Options{SampleRate: 8000})
	c.Play(starbird.CueFlap)

	buf := make([][2]float64, 8000)
	c.Mixer().Stream(buf)
	c.Mixer().Stream(buf)

	if c.Active() != 0 {
		t.Errorf("Active() = %d after streaming a second of audio, expected 0", c.Active())
	}
}

func TestNopIsAudioCue(t *testing.T) {
	var _ starbird.AudioCue = Nop{}
	var _ starbird.AudioCue = New(Options{})
	Nop{}.Play(starbird.CueFlap)
}
