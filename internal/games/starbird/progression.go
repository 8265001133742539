package starbird

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starbird/internal/config"
	"github.com/vovakirdan/starbird/internal/levels"
)

// Advance describes a level change.
type Advance struct {
	Level      int
	Config     levels.LevelConfig
	Background string
	Fallback   bool // Config is the built-in default, not the requested level
}

// Progression advances the level as the score crosses thresholds.
type Progression struct {
	repo       levels.Repository
	difficulty *config.DifficultyManager
	milestone  int
	logger     *log.Logger
}

// NewProgression creates a controller reading levels from repo.
func NewProgression(repo levels.Repository, difficulty *config.DifficultyManager, logger *log.Logger) *Progression {
	return &Progression{
		repo:       repo,
		difficulty: difficulty,
		logger:     orDiscard(logger),
	}
}

// Reset forgets the thresholds reached so far.
func (p *Progression) Reset() {
	p.milestone = 0
}

// Resolve loads level n, falling back to the default level when the
// repository has no usable entry. ok is false only if even the default is
// unusable.
func (p *Progression) Resolve(n int) (cfg levels.LevelConfig, fallback bool, ok bool) {
	if p.repo != nil {
		lvl, err := p.repo.Level(n)
		if err == nil {
			if err = lvl.Validate(); err == nil {
				return lvl.Clone(), false, true
			}
		}
		p.logger.Warn("level config unavailable, using default", "level", n, "err", err)
	}

	def := levels.Default()
	if err := def.Validate(); err != nil {
		p.logger.Error("default level config invalid", "err", err)
		return levels.LevelConfig{}, true, false
	}
	def.Number = n
	return def, true, true
}

// OnScoreUpdate advances at most one level per call, when the score has
// reached a threshold multiple not seen before. Jumping over several
// thresholds at once still advances a single level.
func (p *Progression) OnScoreUpdate(score, currentLevel int, current levels.LevelConfig) (Advance, bool) {
	if !p.difficulty.IsEnabled() || score == 0 {
		return Advance{}, false
	}
	m := p.difficulty.Milestone(score)
	if m <= p.milestone {
		return Advance{}, false
	}
	p.milestone = m

	next := currentLevel + 1
	cfg, fallback, ok := p.Resolve(next)
	if !ok {
		return Advance{}, false
	}
	cfg.ObstacleSpeed = p.difficulty.Speed(current.ObstacleSpeed, cfg.ObstacleSpeed)
	cfg.SpawnIntervalFrames = p.difficulty.SpawnInterval(current.SpawnIntervalFrames, cfg.SpawnIntervalFrames)

	p.logger.Info("level up", "level", next, "score", score, "speed", cfg.ObstacleSpeed, "spawn_interval", cfg.SpawnIntervalFrames)
	return Advance{
		Level:      next,
		Config:     cfg,
		Background: cfg.Background,
		Fallback:   fallback,
	}, true
}
