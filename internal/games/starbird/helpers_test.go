package starbird

import (
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/vovakirdan/starbird/internal/config"
	"github.com/vovakirdan/starbird/internal/levels"
)

// quietConfig returns the default configuration with every random event
// disabled, so tests only see what they set up.
func quietConfig() config.Config {
	cfg := config.Default()
	cfg.Events.Training.Probability = 0
	cfg.Events.FactionChoice.Probability = 0
	cfg.Events.Teleport.Probability = 0
	cfg.Events.CollectibleSpawn.Probability = 0
	return cfg
}

// quietLevel is a level with no quantum spawns, pickups or initial pipes.
func quietLevel(n int) levels.LevelConfig {
	lvl := levels.Default()
	lvl.Number = n
	lvl.Name = fmt.Sprintf("Test %d", n)
	lvl.QuantumProbability = 0
	lvl.PowerUpChance = 0
	lvl.InitialObstacles = 0
	lvl.SpawnIntervalFrames = 100000
	return lvl
}

type staticRepo map[int]levels.LevelConfig

func (r staticRepo) Level(n int) (levels.LevelConfig, error) {
	lvl, ok := r[n]
	if !ok {
		return levels.LevelConfig{}, fmt.Errorf("test repo: level %d: %w", n, levels.ErrLevelNotFound)
	}
	return lvl, nil
}

type recordingAudio struct {
	mu   sync.Mutex
	cues []Cue
}

func (a *recordingAudio) Play(c Cue) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cues = append(a.cues, c)
}

func (a *recordingAudio) count(c Cue) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, got := range a.cues {
		if got == c {
			n++
		}
	}
	return n
}

type recordingScores struct {
	reports  []int
	levelUps int
	final    int
	ended    bool
}

func (s *recordingScores) Report(score int, leveledUp bool) {
	s.reports = append(s.reports, score)
	if leveledUp {
		s.levelUps++
	}
}

func (s *recordingScores) GameOver(score, level int) {
	s.final = score
	s.ended = true
}

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
