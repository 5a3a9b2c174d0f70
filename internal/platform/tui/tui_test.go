package tui

import (
	"strings"
	"testing"
	"testing/fstest"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/curzel-it/nokemon-sub001/internal/config"
	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/engine"
	"github.com/curzel-it/nokemon-sub001/internal/lang"
	"github.com/curzel-it/nokemon-sub001/internal/levels"
	"github.com/curzel-it/nokemon-sub001/internal/species"
	"github.com/curzel-it/nokemon-sub001/internal/world"
)

var roomLevel = fstest.MapFS{
	"room.yaml": {Data: []byte(`
id: 5
name: Room
width: 6
height: 6
spawn: {x: 1, y: 1}
`)},
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	repo, err := species.Default()
	if err != nil {
		t.Fatalf("species.Default() failed: %v", err)
	}
	localizer, err := lang.New("en")
	if err != nil {
		t.Fatalf("lang.New() failed: %v", err)
	}

	cfg := config.DefaultGameConfig()
	cfg.World.StartLevel = 5
	e, err := engine.New(engine.Options{
		Config:  cfg,
		Loader:  levels.NewLoaderFS(roomLevel),
		Factory: world.NewFactory(repo, cfg.Simulation.AnimationsFPS),
		Lang:    localizer,
	})
	if err != nil {
		t.Fatalf("engine.New() failed: %v", err)
	}
	e.SetCameraSize(6, 6)
	return e
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"wasd left", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, core.ActionLeft, false},
		{"attack", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}}, core.ActionAttack, false},
		{"interact", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}}, core.ActionInteract, false},
		{"confirm", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"menu", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}}, core.ActionMenu, false},
		{"quit", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := keys.MapKey(tt.msg)
			if action != tt.expected || quit != tt.quit {
				t.Errorf("MapKey() = (%v, %v), expected (%v, %v)", action, quit, tt.expected, tt.quit)
			}
		})
	}
}

func TestMenuSelection(t *testing.T) {
	list := []levels.Level{{ID: 1001, Name: "Meadow"}, {ID: 1002, Name: "House"}}
	var m tea.Model = NewMenuModel(list, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})

	down := tea.KeyMsg{Type: tea.KeyDown}
	m, _ = m.Update(down)
	m, _ = m.Update(down)
	m, _ = m.Update(down) // Stays on the last entry
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	menu := m.(MenuModel)
	if menu.Selected() == nil {
		t.Fatal("Selected() = nil after enter")
	}
	if got := menu.Selected().LevelID; got != 1002 {
		t.Errorf("Selected().LevelID = %d, expected 1002", got)
	}
}

func TestMenuContinueIsFirst(t *testing.T) {
	var m tea.Model = NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.(MenuModel).Selected(); got == nil || got.LevelID != ContinueID {
		t.Errorf("Selected() = %v, expected the continue entry", got)
	}
}

func TestMenuQuit(t *testing.T) {
	var m tea.Model = NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	menu := m.(MenuModel)
	if !menu.IsQuitting() || menu.Selected() != nil {
		t.Errorf("IsQuitting() = %v, Selected() = %v", menu.IsQuitting(), menu.Selected())
	}
}

func TestDrawWorldDrawsTheHero(t *testing.T) {
	e := newEngine(t)
	s := core.NewScreen(6, 6)
	DrawWorld(s, e)

	for _, y := range []int{1, 2} {
		if got := s.Get(1, y); got != '@' {
			t.Errorf("Get(1, %d) = %q, expected '@'", y, got)
		}
	}
	if got := s.Get(4, 4); got == '@' {
		t.Error("Get(4, 4) should not be the hero")
	}
}

func TestRenderPanel(t *testing.T) {
	e := newEngine(t)
	if got := RenderPanel(e, 60); !strings.Contains(got, "world 5") {
		t.Errorf("RenderPanel() = %q, expected the status line", got)
	}

	e.Inventory().Add(2000)
	e.Inventory().Add(2000)
	e.Update(0.01, core.KeyboardState{Menu: true})
	got := RenderPanel(e, 60)
	if !strings.Contains(got, "Inventory") || !strings.Contains(got, "x2") {
		t.Errorf("RenderPanel() = %q, expected the inventory summary", got)
	}
}

func TestValueRows(t *testing.T) {
	rows := ValueRows(map[string]int{"b": 2, "a": 1})
	if len(rows) != 2 || rows[0][0] != "a" || rows[1][1] != "2" {
		t.Errorf("ValueRows() = %v, expected sorted pairs", rows)
	}
}

func TestInventoryRows(t *testing.T) {
	repo, err := species.Default()
	if err != nil {
		t.Fatalf("species.Default() failed: %v", err)
	}
	rows := InventoryRows([]uint32{2100, 2000, 2100, 99999}, repo)
	expected := [][]string{{"key_yellow", "1"}, {"coin", "2"}, {"99999", "1"}}
	if len(rows) != len(expected) {
		t.Fatalf("InventoryRows() = %v, expected %v", rows, expected)
	}
	for i, row := range rows {
		if row[0] != expected[i][0] || row[1] != expected[i][1] {
			t.Errorf("InventoryRows()[%d] = %v, expected %v", i, row, expected[i])
		}
	}
}
