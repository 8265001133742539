package starbird

import (
	"testing"

	"github.com/vovakirdan/starbird/internal/core"
)

func TestChallengeSuccess(t *testing.T) {
	c := NewChallenge(100)
	steps := []core.Action{core.ActionFlap, core.ActionUp, core.ActionLeft, core.ActionDown}
	for _, a := range steps {
		if got := c.Input(a); got != ChallengePending {
			t.Fatalf("Input(%v) = %v, expected pending", a, got)
		}
	}
	if got := c.Input(core.ActionRight); got != ChallengePassed {
		t.Errorf("Input(Right) = %v, expected passed", got)
	}
}

func TestChallengeWrongKey(t *testing.T) {
	c := NewChallenge(100)
	c.Input(core.ActionUp)
	if got := c.Input(core.ActionRight); got != ChallengeFailed {
		t.Errorf("Input(Right) = %v, expected failed", got)
	}
}

func TestChallengeTimeout(t *testing.T) {
	c := NewChallenge(3)
	if got := c.Tick(2); got != ChallengePending {
		t.Errorf("Tick(2) = %v, expected pending", got)
	}
	if got := c.Tick(0); got != ChallengePending {
		t.Errorf("Tick(0) = %v, expected pending", got)
	}
	if got := c.Tick(1); got != ChallengeFailed {
		t.Errorf("Tick(1) = %v, expected failed", got)
	}
}
