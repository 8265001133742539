package storage

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Saver is the part of Store the Keeper needs.
type Saver interface {
	SaveScore(gameID, player string, score, level int) (int64, error)
}

// Keeper follows a running session and writes one score row per run.
// It is safe to call from the tick loop; persistence failures are logged,
// never returned, so a broken database cannot stop a game.
type Keeper struct {
	mu       sync.Mutex
	saver    Saver
	player   string
	logger   *log.Logger
	score    int
	best     int
	levelUps int
	level    int
	saved    bool
}

// NewKeeper creates a Keeper for one player. saver may be nil, in which case
// runs are tracked but not persisted.
func NewKeeper(saver Saver, player string, logger *log.Logger) *Keeper {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Keeper{saver: saver, player: player, logger: logger, level: 1}
}

// Report records the latest score. Each leveledUp=true counts one level.
func (k *Keeper) Report(score int, leveledUp bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.score = score
	if score > k.best {
		k.best = score
	}
	if leveledUp {
		k.levelUps++
		k.level++
		k.logger.Debug("level up", "score", score, "levelUps", k.levelUps)
	}
}

// NewRun starts tracking a fresh run. The best score is kept.
func (k *Keeper) NewRun() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.score = 0
	k.levelUps = 0
	k.level = 1
	k.saved = false
}

// GameOver persists the finished run once. Later calls for the same run
// are ignored.
func (k *Keeper) GameOver(score, level int) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.score = score
	k.level = level
	k.persist()
}

// Finish persists a run that ended without a game over (the player quit)
// at the given level. Empty runs are not stored.
func (k *Keeper) Finish(level int) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.score == 0 {
		return
	}
	k.level = level
	k.persist()
}

func (k *Keeper) persist() {
	if k.saved {
		return
	}
	k.saved = true
	if k.saver == nil {
		return
	}
	if _, err := k.saver.SaveScore(GameID, k.player, k.score, k.level); err != nil {
		k.logger.Error("cannot save score", "player", k.player, "score", k.score, "err", err)
		return
	}
	k.logger.Info("score saved", "player", k.player, "score", k.score, "level", k.level)
}

// Score returns the last reported score.
func (k *Keeper) Score() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.score
}

// Best returns the best score reported during this Keeper's lifetime.
func (k *Keeper) Best() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.best
}

// LevelUps returns the number of level-ups reported for the current run.
func (k *Keeper) LevelUps() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.levelUps
}
