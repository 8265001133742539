// Package tui provides the Bubble Tea front end for Starbird.
// It handles the terminal UI loop, input mapping and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// elapsedTicks converts wall time between two ticks into simulation ticks.
// The first tick (zero prev) counts as exactly one.
func elapsedTicks(prev, now time.Time, tickRate int) float64 {
	if prev.IsZero() || tickRate <= 0 {
		return 1
	}
	d := now.Sub(prev)
	if d <= 0 {
		return 0
	}
	return d.Seconds() * float64(tickRate)
}
