package starbird

import (
	"slices"

	"github.com/vovakirdan/starbird/internal/core"
)

// QuantumView is the renderable part of a quantum element.
type QuantumView struct {
	ID      uint64
	Variant EntityKind
	Shape   core.Shape
}

// TrainingView is the renderable part of a running training challenge.
type TrainingView struct {
	Sequence  []core.Action
	Progress  int
	Remaining float64
}

// Snapshot is a copy of everything a renderer needs for one frame.
type Snapshot struct {
	Tick         uint64
	WorldW       float64
	WorldH       float64
	Player       PlayerSnapshot
	Obstacles    []Obstacle
	Quantum      *QuantumView
	Training     *TrainingView
	Score        int
	Level        int
	LevelName    string
	Background   string
	PipeVariants []string
	Message      string
	GameOver     bool
	Paused       bool
}

// Snapshot copies the current frame state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:         g.tick,
		WorldW:       g.cfg.World.Width,
		WorldH:       g.cfg.World.Height,
		Player:       g.player.Snapshot(),
		Obstacles:    g.obstacles.Snapshot(),
		Score:        g.score,
		Level:        g.level,
		LevelName:    g.levelCfg.Name,
		Background:   g.levelCfg.Background,
		PipeVariants: slices.Clone(g.levelCfg.PipeVariants),
		GameOver:     g.gameOver,
		Paused:       g.paused,
	}
	if g.messageTTL > 0 {
		s.Message = g.message
	}
	if q := g.quantum.Live(); q != nil {
		s.Quantum = &QuantumView{ID: q.ID, Variant: q.Variant, Shape: q.Shape}
	}
	if g.training != nil {
		s.Training = &TrainingView{
			Sequence:  slices.Clone(g.training.Sequence),
			Progress:  g.training.Progress,
			Remaining: g.training.Remaining,
		}
	}
	return s
}
