package starbird

import (
	"math/rand"

	"github.com/vovakirdan/starbird/internal/config"
	"github.com/vovakirdan/starbird/internal/core"
	"github.com/vovakirdan/starbird/internal/levels"
)

// PowerUpKind identifies a pickup floating inside a pipe gap.
type PowerUpKind int

const (
	PowerUpNone PowerUpKind = iota
	PowerUpScore
	PowerUpSlowdown
	PowerUpShrink
	PowerUpShield
	PowerUpLightsaber
)

var gapPowerUps = []PowerUpKind{PowerUpScore, PowerUpSlowdown, PowerUpShrink, PowerUpShield, PowerUpLightsaber}

// String returns the pickup name.
func (k PowerUpKind) String() string {
	switch k {
	case PowerUpScore:
		return "score"
	case PowerUpSlowdown:
		return "slowdown"
	case PowerUpShrink:
		return "shrink"
	case PowerUpShield:
		return "shield"
	case PowerUpLightsaber:
		return "lightsaber"
	default:
		return "none"
	}
}

// GapPowerUp is an optional pickup centered in an obstacle's gap.
type GapPowerUp struct {
	Kind      PowerUpKind
	Size      float64
	Collected bool
}

// Obstacle is a pipe pair with a gap, moving left at its own speed.
type Obstacle struct {
	ID           uint64
	X            float64 // Left edge
	Speed        float64
	Width        float64
	Gap          float64
	TopHeight    float64
	BottomHeight float64
	ScreenHeight float64
	Passed       bool // Set once, never cleared
	Cleared      bool // Already collided with; ignored by collision checks
	Variant      int  // Index into the level's pipe variants
	PowerUp      GapPowerUp
}

// TopRect returns the collision rectangle for the top pipe.
func (o *Obstacle) TopRect() core.Rect {
	return core.NewRect(o.X, 0, o.Width, o.TopHeight)
}

// BottomRect returns the collision rectangle for the bottom pipe.
func (o *Obstacle) BottomRect() core.Rect {
	return core.NewRect(o.X, o.ScreenHeight-o.BottomHeight, o.Width, o.BottomHeight)
}

// PowerUpRect returns the pickup's box, centered in the gap.
func (o *Obstacle) PowerUpRect() core.Rect {
	size := o.PowerUp.Size
	return core.NewRect(o.X+(o.Width-size)/2, o.TopHeight+(o.Gap-size)/2, size, size)
}

// Right returns the trailing edge.
func (o *Obstacle) Right() float64 {
	return o.X + o.Width
}

// Kind implements Entity.
func (o *Obstacle) Kind() EntityKind { return KindPipe }

// Update implements Entity.
func (o *Obstacle) Update(dt float64) {
	o.X -= o.Speed * dt
}

// BoundingShapes implements Entity.
func (o *Obstacle) BoundingShapes() []core.Shape {
	return []core.Shape{core.RectShape(o.TopRect()), core.RectShape(o.BottomRect())}
}

// OnCollect implements Entity. Pipes are never collected; hits are
// resolved by the CollisionHandler.
func (o *Obstacle) OnCollect(PlayerSnapshot) (PlayerDelta, error) {
	return PlayerDelta{}, nil
}

// ObstacleManager handles spawning, movement, scoring and removal of
// obstacles. It is used only from the main tick goroutine.
type ObstacleManager struct {
	obstacles  []Obstacle
	rng        *rand.Rand
	cfg        config.ObstacleConfig
	pickupSize float64
	spawnTimer float64
	nextID     uint64
}

// NewObstacleManager creates a manager drawing randomness from rng.
func NewObstacleManager(cfg config.Config, rng *rand.Rand) *ObstacleManager {
	return &ObstacleManager{
		obstacles:  make([]Obstacle, 0, 8),
		rng:        rng,
		cfg:        cfg.Obstacles,
		pickupSize: cfg.PowerUps.PickupSize,
	}
}

// Reset clears all obstacles and the spawn timer.
func (m *ObstacleManager) Reset(rng *rand.Rand) {
	m.obstacles = m.obstacles[:0]
	m.spawnTimer = 0
	m.nextID = 0
	if rng != nil {
		m.rng = rng
	}
}

// Spawn creates an obstacle at the right edge with a random gap position
// and appends it. The top pipe is at least the configured margin tall and
// so is the bottom one.
func (m *ObstacleManager) Spawn(level levels.LevelConfig, screenW, screenH float64) Obstacle {
	o := m.build(level, screenW, screenH)
	m.obstacles = append(m.obstacles, o)
	return o
}

func (m *ObstacleManager) build(level levels.LevelConfig, x, screenH float64) Obstacle {
	gap := level.GapSize
	lo := m.cfg.Margin
	hi := int(screenH-gap) - m.cfg.Margin

	var top float64
	if hi >= lo {
		top = float64(lo + m.rng.Intn(hi-lo+1))
	} else {
		top = max(0, (screenH-gap)/2)
	}
	bottom := max(0, screenH-gap-top)

	m.nextID++
	o := Obstacle{
		ID:           m.nextID,
		X:            x,
		Speed:        level.ObstacleSpeed,
		Width:        m.cfg.Width,
		Gap:          gap,
		TopHeight:    top,
		BottomHeight: bottom,
		ScreenHeight: screenH,
	}
	if n := len(level.PipeVariants); n > 0 {
		o.Variant = m.rng.Intn(n)
	}
	if level.PowerUpChance > 0 && m.rng.Float64() < level.PowerUpChance {
		o.PowerUp = GapPowerUp{
			Kind: gapPowerUps[m.rng.Intn(len(gapPowerUps))],
			Size: min(m.pickupSize, gap),
		}
	}
	return o
}

// AddInitial appends the level's opening batch of obstacles, spaced out
// to the right of the screen.
func (m *ObstacleManager) AddInitial(level levels.LevelConfig, screenW, screenH float64) {
	for i := range level.InitialObstacles {
		x := screenW + float64(i)*m.cfg.InitialSpacing
		m.obstacles = append(m.obstacles, m.build(level, x, screenH))
	}
}

// Update moves every obstacle by its own speed and removes those whose
// trailing edge has left the screen.
func (m *ObstacleManager) Update(dt float64) {
	if dt <= 0 {
		return
	}
	for i := range m.obstacles {
		m.obstacles[i].Update(dt)
	}

	valid := m.obstacles[:0]
	for _, o := range m.obstacles {
		if o.Right() >= 0 {
			valid = append(valid, o)
		}
	}
	m.obstacles = valid
}

// Advance runs the spawn cadence: one obstacle every SpawnIntervalFrames
// ticks. Returns whether an obstacle was spawned.
func (m *ObstacleManager) Advance(dt float64, level levels.LevelConfig, screenW, screenH float64) bool {
	if dt <= 0 || level.SpawnIntervalFrames <= 0 {
		return false
	}
	m.spawnTimer += dt
	interval := float64(level.SpawnIntervalFrames)
	if m.spawnTimer < interval {
		return false
	}
	m.spawnTimer -= interval
	m.Spawn(level, screenW, screenH)
	return true
}

// RegisterPass marks obstacles whose trailing edge the player's leading
// edge has moved past. Returns the number newly passed.
func (m *ObstacleManager) RegisterPass(player core.Rect) int {
	passed := 0
	for i := range m.obstacles {
		o := &m.obstacles[i]
		if !o.Passed && player.Right() > o.Right() {
			o.Passed = true
			passed++
		}
	}
	return passed
}

// MarkPassed sets the passed flag. Returns false if it was already set or
// the obstacle is gone.
func (m *ObstacleManager) MarkPassed(id uint64) bool {
	if o := m.find(id); o != nil && !o.Passed {
		o.Passed = true
		return true
	}
	return false
}

// MarkCleared excludes an obstacle from further collision checks.
func (m *ObstacleManager) MarkCleared(id uint64) {
	if o := m.find(id); o != nil {
		o.Cleared = true
	}
}

// BoostSpeed adds delta to the speed of every live obstacle.
func (m *ObstacleManager) BoostSpeed(delta float64) {
	for i := range m.obstacles {
		m.obstacles[i].Speed = max(0, m.obstacles[i].Speed+delta)
	}
}

// CollectPowerUps returns the pickups the player is touching and marks
// them collected.
func (m *ObstacleManager) CollectPowerUps(player core.Rect) []PowerUpKind {
	var kinds []PowerUpKind
	for i := range m.obstacles {
		o := &m.obstacles[i]
		if o.PowerUp.Kind == PowerUpNone || o.PowerUp.Collected {
			continue
		}
		if player.Intersects(o.PowerUpRect()) {
			o.PowerUp.Collected = true
			kinds = append(kinds, o.PowerUp.Kind)
		}
	}
	return kinds
}

// Obstacles returns the live obstacles. The slice is owned by the manager.
func (m *ObstacleManager) Obstacles() []Obstacle {
	return m.obstacles
}

// Snapshot returns a copy of the live obstacles.
func (m *ObstacleManager) Snapshot() []Obstacle {
	out := make([]Obstacle, len(m.obstacles))
	copy(out, m.obstacles)
	return out
}

func (m *ObstacleManager) find(id uint64) *Obstacle {
	for i := range m.obstacles {
		if m.obstacles[i].ID == id {
			return &m.obstacles[i]
		}
	}
	return nil
}
