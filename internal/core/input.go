package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the world to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, Up arrow
	ActionRight           // D, Right arrow
	ActionDown            // S, Down arrow
	ActionLeft            // A, Left arrow
	ActionAttack          // F - throw a kunai
	ActionInteract        // E, Space - talk, pick up, open
	ActionConfirm         // Enter - confirm selection in menus and dialogues
	ActionBack            // Esc - close menus
	ActionMenu            // M - toggle the game menu
	ActionQuit            // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionAttack:
		return "Attack"
	case ActionInteract:
		return "Interact"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionMenu:
		return "Menu"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for the player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	Actions map[Action]bool
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
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// KeyboardState is the per-tick input snapshot the world reads: one
// directional intent plus discrete action flags.
type KeyboardState struct {
	Direction Direction
	Attack    bool
	Interact  bool
	Confirm   bool
	Back      bool
	Menu      bool
}

// IsAnyArrowDown reports whether the player asked to move this tick.
func (k KeyboardState) IsAnyArrowDown() bool {
	return k.Direction.IsMovement()
}

// KeyboardState collapses the frame into the world's input snapshot.
// When several arrows are held, the first of up, right, down, left wins.
func (f InputFrame) KeyboardState() KeyboardState {
	state := KeyboardState{
		Direction: DirectionStill,
		Attack:    f.Has(ActionAttack),
		Interact:  f.Has(ActionInteract),
		Confirm:   f.Has(ActionConfirm),
		Back:      f.Has(ActionBack),
		Menu:      f.Has(ActionMenu),
	}
	switch {
	case f.Has(ActionUp):
		state.Direction = DirectionUp
	case f.Has(ActionRight):
		state.Direction = DirectionRight
	case f.Has(ActionDown):
		state.Direction = DirectionDown
	case f.Has(ActionLeft):
		state.Direction = DirectionLeft
	}
	return state
}
