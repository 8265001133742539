package starbird

import "github.com/vovakirdan/starbird/internal/core"

// EntityKind tags the closed set of moving things in the world.
type EntityKind int

const (
	KindPipe EntityKind = iota
	KindBlackHole
	KindAurora
	KindHolocron
)

// String returns the kind name used in logs and snapshots.
func (k EntityKind) String() string {
	switch k {
	case KindPipe:
		return "pipe"
	case KindBlackHole:
		return "black_hole"
	case KindAurora:
		return "aurora"
	case KindHolocron:
		return "holocron"
	default:
		return "unknown"
	}
}

// Entity is implemented only by *Obstacle and *QuantumElement.
type Entity interface {
	Kind() EntityKind
	Update(dt float64)
	BoundingShapes() []core.Shape
	OnCollect(p PlayerSnapshot) (PlayerDelta, error)
	entity()
}

func (*Obstacle) entity()       {}
func (*QuantumElement) entity() {}

// Overlaps reports whether any of the entity's shapes touches r.
func Overlaps(e Entity, r core.Rect) bool {
	for _, s := range e.BoundingShapes() {
		if s.IntersectsRect(r) {
			return true
		}
	}
	return false
}
