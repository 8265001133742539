package core

import (
	"math"
	"testing"
)

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping rects", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"non-overlapping horizontal", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"non-overlapping vertical", NewRect(0, 0, 10, 10), NewRect(0, 15, 10, 10), false},
		{"touching edges", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"contained rect", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
		{"fractional overlap", NewRect(0, 0, 10, 10), NewRect(9.5, 9.5, 1, 1), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectScale(t *testing.T) {
	r := NewRect(0, 0, 100, 50).Scale(0.8)
	if r.W != 80 || r.H != 40 {
		t.Errorf("Scale size = %vx%v, expected 80x40", r.W, r.H)
	}
	cx, cy := r.Center()
	if cx != 50 || cy != 25 {
		t.Errorf("Scale center = (%v, %v), expected (50, 25)", cx, cy)
	}
}

func TestCircleIntersectsRect(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	tests := []struct {
		name     string
		c        Circle
		expected bool
	}{
		{"center inside", Circle{X: 5, Y: 5, Radius: 1}, true},
		{"overlaps edge", Circle{X: 12, Y: 5, Radius: 3}, true},
		{"misses corner", Circle{X: 13, Y: 13, Radius: 3}, false},
		{"far away", Circle{X: 50, Y: 50, Radius: 5}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.IntersectsRect(r); got != tc.expected {
				t.Errorf("IntersectsRect() = %v, expected %v", got, tc.expected)
			}
			if got := CircleShape(tc.c).IntersectsRect(r); got != tc.expected {
				t.Errorf("Shape.IntersectsRect() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%v, %v, %v) = %v, expected %v", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestFinite(t *testing.T) {
	if !Finite(1.5) {
		t.Error("Finite(1.5) = false, expected true")
	}
	if Finite(math.NaN()) || Finite(math.Inf(1)) || Finite(math.Inf(-1)) {
		t.Error("Finite() accepted a non-finite value")
	}
}
