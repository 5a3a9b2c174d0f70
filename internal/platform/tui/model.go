package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/engine"
)

// holdDuration is how long a direction key counts as held after a press.
// Terminals only report key presses, so walking relies on key repeat.
const holdDuration = 150 * time.Millisecond

// Model is the Bubble Tea model for playing a game session.
type Model struct {
	engine     *engine.Engine
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	held       core.Action
	heldUntil  time.Time
	lastTick   time.Time
	quitting   bool
}

// NewModel creates a new Bubble Tea model driving the given engine.
func NewModel(e *engine.Engine, cfg core.RuntimeConfig) Model {
	m := Model{
		engine:     e,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	m.screen = core.NewScreen(cfg.ScreenW, mapHeight(cfg.ScreenH))
	e.SetCameraSize(cfg.ScreenW, mapHeight(cfg.ScreenH))
	if cfg.CreativeMode {
		e.SetCreativeMode(true)
	}
	return m
}

func mapHeight(screenH int) int {
	return max(screenH-panelHeight-helpHeight, 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey records the action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if isDirection(action) {
		m.held = action
		m.heldUntil = time.Now().Add(holdDuration)
		// Overlays read one press as one step.
		m.inputFrame.Set(action)
		return m, nil
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize fits the screen buffer and the camera to the terminal.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, mapHeight(msg.Height))
	m.engine.SetCameraSize(msg.Width, mapHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the engine by the time elapsed since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.config.TickDuration()
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	if m.held != core.ActionNone && now.Before(m.heldUntil) && !m.overlayOpen() {
		m.inputFrame.Set(m.held)
	}

	m.engine.Update(dt, m.inputFrame.KeyboardState())
	m.inputFrame.Clear()

	if m.engine.ShouldExit() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

func (m Model) overlayOpen() bool {
	s := m.engine.Snapshot()
	return s.Dialogue != nil || s.Menu != nil || s.InventoryOpen || s.HeroDied
}

// View renders the map, the panel and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawWorld(m.screen, m.engine)
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderScreen(m.screen),
		RenderPanel(m.engine, m.config.ScreenW),
		m.help.View(m.keys),
	)
}

// Run starts the Bubble Tea program with the given engine.
func Run(e *engine.Engine, cfg core.RuntimeConfig) error {
	model := NewModel(e, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
