package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionFlap              // Space, W, Up - flap wings
	ActionShield            // S - raise the shield
	ActionLightsaber        // L - ignite the lightsaber
	ActionPause             // P - pause/unpause
	ActionRestart           // R - restart after game over
	ActionQuit              // Q, Ctrl+C - exit session
	ActionUp                // training challenge directions
	ActionLeft
	ActionDown
	ActionRight
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionShield:
		return "Shield"
	case ActionLightsaber:
		return "Lightsaber"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionUp:
		return "Up"
	case ActionLeft:
		return "Left"
	case ActionDown:
		return "Down"
	case ActionRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Valid reports whether a is a known action other than ActionNone.
func (a Action) Valid() bool {
	return a > ActionNone && a <= ActionRight
}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// FlapHeld is set while the flap key is being held down. Holding flap
	// keeps flapping whenever the cooldown allows it.
	FlapHeld bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.FlapHeld = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.FlapHeld = f.FlapHeld
	return clone
}
