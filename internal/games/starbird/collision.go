package starbird

import (
	"github.com/vovakirdan/starbird/internal/core"
)

// HitKind classifies the first thing the player overlaps.
type HitKind int

const (
	HitNone HitKind = iota
	HitObstacle
	HitQuantum
)

// CollisionResult describes a detected overlap.
type CollisionResult struct {
	Kind       HitKind
	ObstacleID uint64
	Quantum    *QuantumElement
}

// CollisionDetector finds overlaps between the player and the world. It
// holds no state and never mutates its inputs.
type CollisionDetector struct{}

// Check tests obstacles first, in order, and stops at the first hit.
// Obstacles already collided with are skipped. The live quantum element is
// tested only when no obstacle was hit.
func (CollisionDetector) Check(player core.Rect, obstacles []Obstacle, quantum *QuantumElement) CollisionResult {
	for i := range obstacles {
		o := &obstacles[i]
		if o.Cleared {
			continue
		}
		if Overlaps(o, player) {
			return CollisionResult{Kind: HitObstacle, ObstacleID: o.ID}
		}
	}
	if quantum != nil && Overlaps(quantum, player) {
		return CollisionResult{Kind: HitQuantum, Quantum: quantum}
	}
	return CollisionResult{Kind: HitNone}
}

// Outcome is what an obstacle hit did to the player.
type Outcome int

const (
	OutcomeIgnored  Outcome = iota // Player was invulnerable
	OutcomeAbsorbed                // Shield took the hit and is gone
	OutcomeLifeLost
	OutcomeGameOver
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeAbsorbed:
		return "absorbed"
	case OutcomeLifeLost:
		return "life_lost"
	case OutcomeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// CollisionHandler applies the consequences of an obstacle hit.
type CollisionHandler struct {
	obstacles     *ObstacleManager
	invincibility float64
}

// NewCollisionHandler creates a handler that marks obstacles through m.
func NewCollisionHandler(m *ObstacleManager, invincibilityFrames float64) *CollisionHandler {
	return &CollisionHandler{obstacles: m, invincibility: invincibilityFrames}
}

// ResolveObstacle applies a hit on obstacle id. An active shield absorbs
// the hit and is consumed; the obstacle then counts as passed. Otherwise a
// life is lost and the obstacle is marked passed without scoring, so flying
// past it later earns nothing. Returns the outcome and the score earned.
func (h *CollisionHandler) ResolveObstacle(p *Player, id uint64) (Outcome, int) {
	if p.Invulnerable > 0 {
		return OutcomeIgnored, 0
	}
	h.obstacles.MarkCleared(id)

	if p.PowerUps.Shield.Active {
		p.PowerUps.Shield.Deactivate()
		if h.obstacles.MarkPassed(id) {
			return OutcomeAbsorbed, 1
		}
		return OutcomeAbsorbed, 0
	}

	h.obstacles.MarkPassed(id)
	p.Lives = max(0, p.Lives-1)
	p.Velocity = 0
	if p.Lives == 0 {
		return OutcomeGameOver, 0
	}
	p.Invulnerable = h.invincibility
	return OutcomeLifeLost, 0
}
