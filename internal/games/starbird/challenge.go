package starbird

import "github.com/vovakirdan/starbird/internal/core"

// ChallengeResult is the state of a training challenge.
type ChallengeResult int

const (
	ChallengePending ChallengeResult = iota
	ChallengePassed
	ChallengeFailed
)

// trainingSequence is the key sequence the player must enter.
var trainingSequence = []core.Action{core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight}

// Challenge is a running training challenge: enter the sequence before
// the window closes.
type Challenge struct {
	Sequence  []core.Action
	Progress  int
	Remaining float64
}

// NewChallenge starts a challenge lasting window ticks.
func NewChallenge(window float64) *Challenge {
	return &Challenge{Sequence: trainingSequence, Remaining: window}
}

// Input feeds one action. Non-directional actions are ignored; a wrong
// direction fails the challenge.
func (c *Challenge) Input(a core.Action) ChallengeResult {
	switch a {
	case core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight:
	default:
		return ChallengePending
	}
	if a != c.Sequence[c.Progress] {
		return ChallengeFailed
	}
	c.Progress++
	if c.Progress == len(c.Sequence) {
		return ChallengePassed
	}
	return ChallengePending
}

// Tick runs the clock down. The challenge fails when time is up.
func (c *Challenge) Tick(dt float64) ChallengeResult {
	if dt > 0 {
		c.Remaining -= dt
	}
	if c.Remaining <= 0 {
		return ChallengeFailed
	}
	return ChallengePending
}
