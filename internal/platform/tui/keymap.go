package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/curzel-it/nokemon-sub001/internal/core"
)

// KeyMap defines the key bindings of the play screen.
type KeyMap struct {
	Up       key.Binding
	Right    key.Binding
	Down     key.Binding
	Left     key.Binding
	Attack   key.Binding
	Interact key.Binding
	Confirm  key.Binding
	Back     key.Binding
	Menu     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Interact, k.Attack, k.Menu, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Right, k.Down, k.Left},
		{k.Interact, k.Attack, k.Confirm, k.Back},
		{k.Menu, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "walk up"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "walk right"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "walk down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "walk left"),
		),
		Attack: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "throw kunai"),
		),
		Interact: key.NewBinding(
			key.WithKeys("e", " "),
			key.WithHelp("e/space", "interact"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m", "i"),
			key.WithHelp("m", "inventory"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (k KeyMap) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Attack):
		return core.ActionAttack, false
	case key.Matches(msg, k.Interact):
		return core.ActionInteract, false
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	case key.Matches(msg, k.Menu):
		return core.ActionMenu, false
	}
	return core.ActionNone, false
}

// isDirection reports whether the action walks the hero.
func isDirection(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionRight, core.ActionDown, core.ActionLeft:
		return true
	}
	return false
}
