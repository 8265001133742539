package starbird

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/starbird/internal/config"
	"github.com/vovakirdan/starbird/internal/core"
)

// Integrator advances the player's vertical motion with semi-implicit
// Euler steps. It never fails: bad input degrades to a no-op.
type Integrator struct {
	phys     config.PhysicsConfig
	powerups config.PowerUpConfig
	worldH   float64
}

// NewIntegrator creates an integrator for the given configuration.
func NewIntegrator(cfg config.Config) *Integrator {
	return &Integrator{
		phys:     cfg.Physics,
		powerups: cfg.PowerUps,
		worldH:   cfg.World.Height,
	}
}

// sanitizeDt maps negative or non-finite steps to 0 and caps long frames.
func (in *Integrator) sanitizeDt(dt float64) float64 {
	if !core.Finite(dt) || dt <= 0 {
		return 0
	}
	if in.phys.MaxDt > 0 && dt > in.phys.MaxDt {
		return in.phys.MaxDt
	}
	return dt
}

// Update applies gravity, air resistance and the velocity clamp, moves the
// player and counts down its timers. dt is in ticks.
func (in *Integrator) Update(p *Player, dt float64) {
	dt = in.sanitizeDt(dt)
	if dt == 0 {
		return
	}

	air := in.phys.AirResistance
	if p.PowerUps.Slowdown.Active && in.powerups.SlowdownAirResistance > 0 {
		air = in.powerups.SlowdownAirResistance
	}

	p.Velocity += in.phys.Gravity * dt
	p.Velocity *= math.Pow(air, dt)
	p.Velocity = in.clampVelocity(p.Velocity)

	next := p.Position.Add(down.Mul(p.Velocity * dt))
	next[1] = in.keepInField(p, next.Y())
	p.Position = next

	p.FlapCooldown = math.Max(0, p.FlapCooldown-dt)
	p.ShieldCooldown = math.Max(0, p.ShieldCooldown-dt)
	p.Invulnerable = math.Max(0, p.Invulnerable-dt)
	p.PowerUps.tick(dt)
}

// Flap gives the player an upward impulse unless the cooldown is running.
// The impulse grows with the current speed so rapid flapping feels snappy.
func (in *Integrator) Flap(p *Player) bool {
	if p.FlapCooldown > 0 {
		return false
	}
	p.Velocity = in.clampVelocity(in.FlapImpulse(p.Velocity))
	p.FlapCooldown = in.phys.FlapCooldown
	return true
}

// FlapImpulse returns the velocity a flap would produce from velocity v.
func (in *Integrator) FlapImpulse(v float64) float64 {
	return in.phys.FlapStrength * (1 + math.Abs(v)*in.phys.FlapVelocityScale)
}

// Apply merges a worker-computed delta into the player.
func (in *Integrator) Apply(p *Player, d PlayerDelta) {
	if d.SetPosition {
		target := d.Position
		if !core.Finite(target.X()) {
			target = mgl64.Vec2{p.Position.X(), target.Y()}
		}
		target[1] = in.keepInField(p, target.Y())
		p.Position = target
	}
	if d.SetVelocity && core.Finite(d.Velocity) {
		p.Velocity = in.clampVelocity(d.Velocity)
	}
	if d.Shield > 0 {
		p.PowerUps.Shield.Activate(d.Shield)
	}
}

func (in *Integrator) clampVelocity(v float64) float64 {
	if !core.Finite(v) {
		return 0
	}
	return core.ClampF(v, in.phys.MinVelocity, in.phys.MaxVelocity)
}

// keepInField clamps y to the playfield and zeroes velocity at a bound.
func (in *Integrator) keepInField(p *Player, y float64) float64 {
	maxY := math.Max(0, in.worldH-p.Height)
	switch {
	case !core.Finite(y):
		p.Velocity = 0
		return core.ClampF(p.Position.Y(), 0, maxY)
	case y < 0:
		p.Velocity = 0
		return 0
	case y > maxY:
		p.Velocity = 0
		return maxY
	}
	return y
}
