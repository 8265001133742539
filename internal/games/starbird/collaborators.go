package starbird

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// ErrNoLevelConfig is returned by New when neither the starting level nor
// the built-in default level can be used.
var ErrNoLevelConfig = errors.New("starbird: no usable level configuration")

// Cue is a sound the session asks the platform to play.
type Cue int

const (
	CueFlap Cue = iota
	CueCollision
	CueShieldOn
	CueLightsaberOn
	CuePowerUp
	CueLevelUp
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueFlap:
		return "flap"
	case CueCollision:
		return "collision"
	case CueShieldOn:
		return "shield_on"
	case CueLightsaberOn:
		return "lightsaber_on"
	case CuePowerUp:
		return "powerup"
	case CueLevelUp:
		return "level_up"
	default:
		return "unknown"
	}
}

// AudioCue plays short sounds. Play must not block the tick loop.
type AudioCue interface {
	Play(c Cue)
}

// ScoreKeeper is told about score changes, level-ups and the end of a run.
type ScoreKeeper interface {
	Report(score int, leveledUp bool)
	GameOver(score, level int)
}

type nopAudio struct{}

func (nopAudio) Play(Cue) {}

type nopScores struct{}

func (nopScores) Report(int, bool)  {}
func (nopScores) GameOver(int, int) {}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}
