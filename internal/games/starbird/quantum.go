package starbird

import (
	"math/rand"

	"github.com/vovakirdan/starbird/internal/config"
	"github.com/vovakirdan/starbird/internal/core"
	"github.com/vovakirdan/starbird/internal/levels"
)

// Effect computes the change a quantum element applies to the player.
// Effects are pure: they read the snapshot and return a delta, so they can
// run on a dispatcher worker.
type Effect func(p PlayerSnapshot) (PlayerDelta, error)

// QuantumElement is a one-shot special entity.
type QuantumElement struct {
	ID      uint64
	Variant EntityKind
	Shape   core.Shape
	Speed   float64
	effect  Effect
}

// Kind implements Entity.
func (q *QuantumElement) Kind() EntityKind { return q.Variant }

// Update implements Entity.
func (q *QuantumElement) Update(dt float64) {
	switch q.Shape.Kind {
	case core.ShapeCircle:
		q.Shape.Circle.X -= q.Speed * dt
	default:
		q.Shape.Rect.X -= q.Speed * dt
	}
}

// BoundingShapes implements Entity.
func (q *QuantumElement) BoundingShapes() []core.Shape {
	return []core.Shape{q.Shape}
}

// OnCollect implements Entity.
func (q *QuantumElement) OnCollect(p PlayerSnapshot) (PlayerDelta, error) {
	if q.effect == nil {
		return PlayerDelta{}, nil
	}
	return q.effect(p)
}

// Effect returns the element's effect closure.
func (q *QuantumElement) Effect() Effect {
	return q.effect
}

// QuantumManager owns the single live quantum element, if any.
type QuantumManager struct {
	live     *QuantumElement
	rng      *rand.Rand
	cfg      config.QuantumConfig
	world    config.WorldConfig
	player   config.PlayerConfig
	powerups config.PowerUpConfig
	physics  *Integrator
	nextID   uint64
}

// NewQuantumManager creates a manager drawing randomness from rng.
func NewQuantumManager(cfg config.Config, rng *rand.Rand, physics *Integrator) *QuantumManager {
	return &QuantumManager{
		rng:      rng,
		cfg:      cfg.Quantum,
		world:    cfg.World,
		player:   cfg.Player,
		powerups: cfg.PowerUps,
		physics:  physics,
	}
}

// Reset removes the live element.
func (m *QuantumManager) Reset(rng *rand.Rand) {
	m.live = nil
	m.nextID = 0
	if rng != nil {
		m.rng = rng
	}
}

// Live returns the live element or nil.
func (m *QuantumManager) Live() *QuantumElement {
	return m.live
}

// TrySpawn rolls the level's spawn probability when no element is live.
func (m *QuantumManager) TrySpawn(level levels.LevelConfig, screenW, screenH float64) bool {
	if m.live != nil {
		return false
	}
	if m.rng.Float64() >= level.QuantumProbability {
		return false
	}
	return m.ForceSpawn(m.pickVariant(level.QuantumWeights), screenW, screenH)
}

// ForceSpawn creates an element of the given variant at the right edge.
// It does nothing while another element is live.
func (m *QuantumManager) ForceSpawn(variant EntityKind, screenW, screenH float64) bool {
	if m.live != nil || variant == KindPipe {
		return false
	}

	var shape core.Shape
	var half float64
	switch variant {
	case KindBlackHole:
		half = m.cfg.BlackHoleRadius
	case KindAurora:
		half = m.cfg.AuroraRadius
	case KindHolocron:
		half = m.cfg.HolocronSize / 2
	}
	cy := m.randomBetween(half, screenH-half)
	cx := screenW + half
	if variant == KindHolocron {
		shape = core.RectShape(core.NewRect(cx-half, cy-half, 2*half, 2*half))
	} else {
		shape = core.CircleShape(core.Circle{X: cx, Y: cy, Radius: half})
	}

	m.nextID++
	m.live = &QuantumElement{
		ID:      m.nextID,
		Variant: variant,
		Shape:   shape,
		Speed:   m.cfg.Speed,
		effect:  m.EffectFor(variant),
	}
	return true
}

// Update moves the live element and removes it once it has left the screen.
func (m *QuantumManager) Update(dt float64) {
	if m.live == nil || dt <= 0 {
		return
	}
	m.live.Update(dt)
	if m.live.Shape.Bounds().Right() < 0 {
		m.live = nil
	}
}

// Consume removes and returns the live element.
func (m *QuantumManager) Consume() *QuantumElement {
	q := m.live
	m.live = nil
	return q
}

// EffectFor builds the effect closure of a variant. Any randomness is
// drawn here, on the caller's goroutine, so the closure itself is pure.
func (m *QuantumManager) EffectFor(variant EntityKind) Effect {
	impulse := m.physics.FlapImpulse(0)

	switch variant {
	case KindBlackHole:
		margin := m.cfg.TeleportMargin
		y := m.randomBetween(margin, m.world.Height-margin-m.player.Height)
		return func(p PlayerSnapshot) (PlayerDelta, error) {
			return PlayerDelta{
				Source:      variant.String(),
				SetPosition: true,
				Position:    atHeight(p.Position, y),
				SetVelocity: true,
				Velocity:    impulse,
			}, nil
		}
	case KindAurora:
		boost := m.cfg.AuroraBoost
		return func(p PlayerSnapshot) (PlayerDelta, error) {
			return PlayerDelta{
				Source:      variant.String(),
				SetVelocity: true,
				Velocity:    impulse * boost,
			}, nil
		}
	case KindHolocron:
		duration := m.powerups.ShieldDuration
		return func(p PlayerSnapshot) (PlayerDelta, error) {
			return PlayerDelta{Source: variant.String(), Shield: duration}, nil
		}
	default:
		return nil
	}
}

// pickVariant draws a variant by cumulative weight.
func (m *QuantumManager) pickVariant(w levels.QuantumWeights) EntityKind {
	total := w.Total()
	if total <= 0 {
		return KindBlackHole
	}
	roll := m.rng.Float64() * total
	cumulative := w.BlackHole
	if roll < cumulative {
		return KindBlackHole
	}
	cumulative += w.Aurora
	if roll < cumulative {
		return KindAurora
	}
	if w.Holocron > 0 {
		return KindHolocron
	}
	return KindAurora
}

func (m *QuantumManager) randomBetween(lo, hi float64) float64 {
	if hi <= lo {
		return (lo + hi) / 2
	}
	return lo + m.rng.Float64()*(hi-lo)
}
