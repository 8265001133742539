// Package core provides fundamental types and utilities shared by the
// simulation and the platform layer. It contains no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned bounding box in world units.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Scale shrinks or grows the rectangle around its center.
func (r Rect) Scale(factor float64) Rect {
	cx, cy := r.Center()
	w, h := r.W*factor, r.H*factor
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Circle is a bounding circle in world units.
type Circle struct {
	X, Y   float64 // Center
	Radius float64
}

// IntersectsRect reports whether the circle overlaps the rectangle.
func (c Circle) IntersectsRect(r Rect) bool {
	nx := ClampF(c.X, r.X, r.Right())
	ny := ClampF(c.Y, r.Y, r.Bottom())
	dx, dy := c.X-nx, c.Y-ny
	return dx*dx+dy*dy < c.Radius*c.Radius
}

// Bounds returns the smallest rectangle containing the circle.
func (c Circle) Bounds() Rect {
	return Rect{X: c.X - c.Radius, Y: c.Y - c.Radius, W: 2 * c.Radius, H: 2 * c.Radius}
}

// ShapeKind distinguishes rectangle and circle shapes.
type ShapeKind int

const (
	ShapeRect ShapeKind = iota
	ShapeCircle
)

// Shape is a bounding shape: either a rectangle or a circle.
type Shape struct {
	Kind   ShapeKind
	Rect   Rect
	Circle Circle
}

// RectShape wraps a rectangle.
func RectShape(r Rect) Shape {
	return Shape{Kind: ShapeRect, Rect: r}
}

// CircleShape wraps a circle.
func CircleShape(c Circle) Shape {
	return Shape{Kind: ShapeCircle, Circle: c}
}

// IntersectsRect reports whether the shape overlaps the rectangle.
func (s Shape) IntersectsRect(r Rect) bool {
	if s.Kind == ShapeCircle {
		return s.Circle.IntersectsRect(r)
	}
	return s.Rect.Intersects(r)
}

// Bounds returns the axis-aligned bounds of the shape.
func (s Shape) Bounds() Rect {
	if s.Kind == ShapeCircle {
		return s.Circle.Bounds()
	}
	return s.Rect
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Finite reports whether x is neither NaN nor infinite.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
