package spectate

import (
	"testing"

	"github.com/vovakirdan/starbird/internal/core"
	"github.com/vovakirdan/starbird/internal/games/starbird"
)

func sampleSnapshot() starbird.Snapshot {
	return starbird.Snapshot{
		Tick:       42,
		WorldW:     800,
		WorldH:     600,
		Score:      7,
		Level:      2,
		LevelName:  "Ice",
		Background: "ice",
		Player: starbird.PlayerSnapshot{
			Bounds:   core.NewRect(100, 300, 60, 36),
			Velocity: -3,
			Lives:    2,
			PowerUps: starbird.PowerUps{Shield: starbird.PowerUp{Active: true, Remaining: 10}},
		},
		Obstacles: []starbird.Obstacle{
			{ID: 1, X: 400, Width: 90, TopHeight: 200, BottomHeight: 220, PowerUp: starbird.GapPowerUp{Kind: starbird.PowerUpShield}},
			{ID: 2, X: 700, Width: 90, TopHeight: 150, BottomHeight: 270, PowerUp: starbird.GapPowerUp{Kind: starbird.PowerUpScore, Collected: true}},
		},
		Quantum: &starbird.QuantumView{
			ID:      3,
			Variant: starbird.KindBlackHole,
			Shape:   core.CircleShape(core.Circle{X: 500, Y: 250, Radius: 40}),
		},
		Training: &starbird.TrainingView{Sequence: []core.Action{core.ActionUp, core.ActionLeft}, Progress: 1},
	}
}

func TestFromSnapshot(t *testing.T) {
	f := FromSnapshot(sampleSnapshot())

	if f.Tick != 42 || f.Score != 7 || f.Level != 2 {
		t.Errorf("FromSnapshot() header = %d/%d/%d, expected 42/7/2", f.Tick, f.Score, f.Level)
	}
	if f.Player.X != 100 || f.Player.Y != 300 || !f.Player.Shield || f.Player.Lightsaber {
		t.Errorf("FromSnapshot().Player = %+v", f.Player)
	}
	if len(f.Pipes) != 2 {
		t.Fatalf("len(Pipes) = %d, expected 2", len(f.Pipes))
	}
	if f.Pipes[0].PowerUp != starbird.PowerUpShield.String() {
		t.Errorf("Pipes[0].PowerUp = %q, expected %q", f.Pipes[0].PowerUp, starbird.PowerUpShield.String())
	}
	if f.Pipes[1].PowerUp != "" {
		t.Errorf("collected power-up should be hidden, got %q", f.Pipes[1].PowerUp)
	}
	if f.Quantum == nil || f.Quantum.X != 500 || f.Quantum.Y != 250 || f.Quantum.R != 40 {
		t.Errorf("FromSnapshot().Quantum = %+v, expected orb at 500,250 r40", f.Quantum)
	}
	if f.Training != "1/2" {
		t.Errorf("Training = %q, expected %q", f.Training, "1/2")
	}
}

func TestEncodeDecode(t *testing.T) {
	f := FromSnapshot(sampleSnapshot())

	data, err := Encode(f)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	if got.Tick != f.Tick || got.Player != f.Player || len(got.Pipes) != len(f.Pipes) {
		t.Errorf("Decode(Encode()) = %+v, expected %+v", got, f)
	}
	if got.Quantum == nil || *got.Quantum != *f.Quantum {
		t.Errorf("Quantum = %+v, expected %+v", got.Quantum, f.Quantum)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte{0xc1}); err == nil {
		t.Error("Decode() of an invalid byte should fail")
	}
}
