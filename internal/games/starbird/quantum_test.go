package starbird

import (
	"testing"
)

func newQuantumManager(seed int64) (*QuantumManager, *Integrator) {
	cfg := quietConfig()
	phys := NewIntegrator(cfg)
	return NewQuantumManager(cfg, newRNG(seed), phys), phys
}

func TestAtMostOneLiveElement(t *testing.T) {
	m, _ := newQuantumManager(1)
	lvl := quietLevel(1)
	lvl.QuantumProbability = 1

	if !m.TrySpawn(lvl, 800, 600) {
		t.Fatal("TrySpawn() = false with probability 1")
	}
	first := m.Live()
	for range 50 {
		if m.TrySpawn(lvl, 800, 600) {
			t.Fatal("TrySpawn() succeeded while an element was live")
		}
		if m.ForceSpawn(KindHolocron, 800, 600) {
			t.Fatal("ForceSpawn() succeeded while an element was live")
		}
	}
	if m.Live() != first {
		t.Error("live element was replaced")
	}
}

func TestZeroProbabilityNeverSpawns(t *testing.T) {
	m, _ := newQuantumManager(1)
	lvl := quietLevel(1)
	for range 1000 {
		if m.TrySpawn(lvl, 800, 600) {
			t.Fatal("TrySpawn() spawned with probability 0")
		}
	}
}

func TestVariantWeights(t *testing.T) {
	m, _ := newQuantumManager(7)
	lvl := quietLevel(1)
	lvl.QuantumProbability = 1
	lvl.QuantumWeights.BlackHole = 0
	lvl.QuantumWeights.Aurora = 0
	lvl.QuantumWeights.Holocron = 1

	for range 20 {
		m.TrySpawn(lvl, 800, 600)
		if got := m.Consume().Variant; got != KindHolocron {
			t.Fatalf("Variant = %v, expected holocron", got)
		}
	}
}

func TestQuantumLeavesScreen(t *testing.T) {
	m, _ := newQuantumManager(1)
	m.ForceSpawn(KindBlackHole, 800, 600)

	start := m.Live().Shape.Circle.X
	m.Update(1)
	if got := m.Live().Shape.Circle.X; got != start-quietConfig().Quantum.Speed {
		t.Errorf("X = %v, expected %v", got, start-quietConfig().Quantum.Speed)
	}

	for range 1000 {
		m.Update(1)
	}
	if m.Live() != nil {
		t.Error("element should be removed after leaving the screen")
	}
}

func TestQuantumShapes(t *testing.T) {
	cfg := quietConfig()
	m, _ := newQuantumManager(1)

	m.ForceSpawn(KindAurora, 800, 600)
	if s := m.Consume().Shape; s.Circle.Radius != cfg.Quantum.AuroraRadius {
		t.Errorf("aurora radius = %v, expected %v", s.Circle.Radius, cfg.Quantum.AuroraRadius)
	}

	m.ForceSpawn(KindHolocron, 800, 600)
	if s := m.Consume().Shape; s.Rect.W != cfg.Quantum.HolocronSize {
		t.Errorf("holocron size = %v, expected %v", s.Rect.W, cfg.Quantum.HolocronSize)
	}

	if m.ForceSpawn(KindPipe, 800, 600) {
		t.Error("ForceSpawn(pipe) should be rejected")
	}
}

func TestQuantumEffects(t *testing.T) {
	cfg := quietConfig()
	m, phys := newQuantumManager(3)
	p := NewPlayer(cfg).Snapshot()
	impulse := phys.FlapImpulse(0)

	t.Run("black hole", func(t *testing.T) {
		d, err := m.EffectFor(KindBlackHole)(p)
		if err != nil {
			t.Fatal(err)
		}
		if !d.SetPosition || !d.SetVelocity || d.Velocity != impulse {
			t.Errorf("delta = %+v, expected teleport with velocity %v", d, impulse)
		}
		y := d.Position.Y()
		if y < cfg.Quantum.TeleportMargin || y > cfg.World.Height-cfg.Quantum.TeleportMargin-cfg.Player.Height {
			t.Errorf("teleport target y = %v outside the playfield", y)
		}
		if d.Position.X() != p.Position.X() {
			t.Errorf("teleport moved the player horizontally")
		}
	})

	t.Run("aurora", func(t *testing.T) {
		d, _ := m.EffectFor(KindAurora)(p)
		if !approx(d.Velocity, impulse*cfg.Quantum.AuroraBoost) || d.SetPosition {
			t.Errorf("delta = %+v, expected boosted flap velocity", d)
		}
	})

	t.Run("holocron", func(t *testing.T) {
		d, _ := m.EffectFor(KindHolocron)(p)
		if d.Shield != cfg.PowerUps.ShieldDuration || d.SetVelocity || d.SetPosition {
			t.Errorf("delta = %+v, expected shield only", d)
		}
	})

	t.Run("effect is pure", func(t *testing.T) {
		effect := m.EffectFor(KindBlackHole)
		a, _ := effect(p)
		b, _ := effect(p)
		if a != b {
			t.Errorf("same effect produced %+v and %+v", a, b)
		}
	})
}
