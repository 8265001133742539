package tui

import (
	"testing"
	"time"
)

func TestElapsedTicks(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		prev     time.Time
		now      time.Time
		rate     int
		expected float64
	}{
		{"first tick", time.Time{}, now, 60, 1},
		{"one frame", now, now.Add(time.Second / 60), 60, 1},
		{"half second", now, now.Add(500 * time.Millisecond), 60, 30},
		{"clock went back", now, now.Add(-time.Second), 60, 0},
		{"no rate", now, now.Add(time.Second), 0, 1},
	}
	for _, tc := range tests {
		got := elapsedTicks(tc.prev, tc.now, tc.rate)
		if got < tc.expected-1e-6 || got > tc.expected+1e-6 {
			t.Errorf("%s: elapsedTicks() = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}
