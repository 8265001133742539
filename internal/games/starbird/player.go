package starbird

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/starbird/internal/config"
	"github.com/vovakirdan/starbird/internal/core"
)

// PowerUp is a timed ability. Remaining counts down in ticks.
type PowerUp struct {
	Active    bool
	Remaining float64
}

// Activate turns the power-up on for the given number of ticks.
func (p *PowerUp) Activate(duration float64) {
	p.Active = true
	p.Remaining = duration
}

// Deactivate turns the power-up off.
func (p *PowerUp) Deactivate() {
	p.Active = false
	p.Remaining = 0
}

func (p *PowerUp) tick(dt float64) {
	if !p.Active {
		return
	}
	p.Remaining -= dt
	if p.Remaining <= 0 {
		p.Deactivate()
	}
}

// PowerUps holds the player's independent abilities. Activating one never
// touches another.
type PowerUps struct {
	Shield     PowerUp
	Lightsaber PowerUp
	Slowdown   PowerUp
	Shrink     PowerUp
}

func (p *PowerUps) tick(dt float64) {
	p.Shield.tick(dt)
	p.Lightsaber.tick(dt)
	p.Slowdown.tick(dt)
	p.Shrink.tick(dt)
}

// down is the world's vertical unit vector; y grows toward the floor.
var down = mgl64.Vec2{0, 1}

// atHeight returns pos shifted along the vertical axis to height y.
func atHeight(pos mgl64.Vec2, y float64) mgl64.Vec2 {
	return pos.Add(down.Mul(y - pos.Y()))
}

// Player is the bird. It is owned by the goroutine that drives Game.Step.
type Player struct {
	Position       mgl64.Vec2 // Top-left corner in world units
	Velocity       float64    // Vertical, positive is down
	Width          float64
	Height         float64
	FlapCooldown   float64
	ShieldCooldown float64 // Ticks until the shield can be raised by hand again
	Invulnerable   float64 // Grace ticks after losing a life
	Lives          int
	PowerUps       PowerUps

	shrinkFactor float64
}

// NewPlayer places a fresh player at the configured start position.
func NewPlayer(cfg config.Config) *Player {
	return &Player{
		Position:     mgl64.Vec2{cfg.Player.StartX, cfg.Player.StartY},
		Width:        cfg.Player.Width,
		Height:       cfg.Player.Height,
		Lives:        cfg.Player.Lives,
		shrinkFactor: cfg.PowerUps.ShrinkFactor,
	}
}

// Bounds returns the collision box. The shrink power-up scales it around
// its center.
func (p *Player) Bounds() core.Rect {
	r := core.NewRect(p.Position.X(), p.Position.Y(), p.Width, p.Height)
	if p.PowerUps.Shrink.Active && p.shrinkFactor > 0 {
		r = r.Scale(p.shrinkFactor)
	}
	return r
}

// Snapshot returns a read-only copy safe to hand to other goroutines.
func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		Position:     p.Position,
		Velocity:     p.Velocity,
		Width:        p.Width,
		Height:       p.Height,
		Bounds:       p.Bounds(),
		FlapCooldown: p.FlapCooldown,
		Invulnerable: p.Invulnerable,
		Lives:        p.Lives,
		PowerUps:     p.PowerUps,
	}
}

// PlayerSnapshot is an immutable view of the player.
type PlayerSnapshot struct {
	Position     mgl64.Vec2
	Velocity     float64
	Width        float64
	Height       float64
	Bounds       core.Rect
	FlapCooldown float64
	Invulnerable float64
	Lives        int
	PowerUps     PowerUps
}

// PlayerDelta is a change computed off the main goroutine. It is applied
// by Integrator.Apply, which keeps the player inside its invariants.
type PlayerDelta struct {
	Source      string
	SetPosition bool
	Position    mgl64.Vec2
	SetVelocity bool
	Velocity    float64
	Shield      float64 // Ticks of shield to grant, 0 for none
}

// IsZero reports whether the delta changes nothing.
func (d PlayerDelta) IsZero() bool {
	return !d.SetPosition && !d.SetVelocity && d.Shield <= 0
}
