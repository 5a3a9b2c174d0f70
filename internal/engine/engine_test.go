package engine

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/curzel-it/nokemon-sub001/internal/config"
	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/lang"
	"github.com/curzel-it/nokemon-sub001/internal/levels"
	"github.com/curzel-it/nokemon-sub001/internal/species"
	"github.com/curzel-it/nokemon-sub001/internal/storage"
	"github.com/curzel-it/nokemon-sub001/internal/world"
)

var testLevels = fstest.MapFS{
	"yard.yaml": {Data: []byte(`
id: 1
name: Yard
width: 10
height: 10
spawn: {x: 1, y: 1}
entities:
  - species: teleporter
    x: 1
    y: 3
    destination: {world: 2, x: 3, y: 3}
  - id: 50
    species: coin
    x: 8
    y: 8
`)},
	"room.yaml": {Data: []byte(`
id: 2
name: Room
width: 6
height: 6
spawn: {x: 0, y: 0}
`)},
	"field.yaml": {Data: []byte(`
id: 3
name: Field
width: 100
height: 80
spawn: {x: 90, y: 70}
`)},
}

func newEngine(t *testing.T, start uint32, store Persister) *Engine {
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
	cfg.World.StartLevel = start

	e, err := New(Options{
		Config:  cfg,
		Loader:  levels.NewLoaderFS(testLevels),
		Factory: world.NewFactory(repo, cfg.Simulation.AnimationsFPS),
		Lang:    localizer,
		Store:   store,
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func press(d core.Direction) core.KeyboardState {
	return core.KeyboardState{Direction: d}
}

var (
	idle    = press(core.DirectionStill)
	confirm = core.KeyboardState{Direction: core.DirectionStill, Confirm: true}
)

func TestNewRequiresLoader(t *testing.T) {
	if _, err := New(Options{Config: config.DefaultGameConfig()}); !errors.Is(err, ErrNoLoader) {
		t.Errorf("New() error = %v, expected %v", err, ErrNoLoader)
	}
}

func TestNewFailsOnMissingLevel(t *testing.T) {
	repo, err := species.Default()
	if err != nil {
		t.Fatalf("species.Default() failed: %v", err)
	}
	cfg := config.DefaultGameConfig()
	cfg.World.StartLevel = 99

	_, err = New(Options{Config: cfg, Loader: levels.NewLoaderFS(testLevels), Factory: world.NewFactory(repo, 10)})
	if !errors.Is(err, levels.ErrLevelNotFound) {
		t.Errorf("New() error = %v, expected %v", err, levels.ErrLevelNotFound)
	}
}

func TestTeleporterSwitchesWorldAndSaves(t *testing.T) {
	store := openStore(t)
	e := newEngine(t, 1, store)

	for i := 0; i < 5; i++ {
		e.Update(0.1, press(core.DirectionDown))
		if e.World().ID() == 2 {
			break
		}
	}
	if e.World().ID() != 2 {
		t.Fatalf("World().ID() = %d, expected 2", e.World().ID())
	}
	hero, _ := e.World().Hero()
	if hero.Frame.X != 3 || hero.Frame.Y != 3 {
		t.Errorf("hero at (%d, %d), expected (3, 3)", hero.Frame.X, hero.Frame.Y)
	}

	slot, ok, err := store.LatestSlot()
	if err != nil || !ok {
		t.Fatalf("LatestSlot() = %v, %v", ok, err)
	}
	if slot.WorldID != 2 {
		t.Errorf("slot.WorldID = %d, expected 2", slot.WorldID)
	}

	// A new session resumes where the last one saved.
	e.Inventory().Add(uint32(species.KeyRed))
	if err := e.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	resumed := newEngine(t, 1, store)
	if resumed.World().ID() != 2 {
		t.Errorf("resumed World().ID() = %d, expected 2", resumed.World().ID())
	}
	if resumed.Inventory().Count(uint32(species.KeyRed)) != 1 {
		t.Errorf("resumed inventory = %v, expected a red key", resumed.Inventory().Items())
	}
}

func TestCameraIsClampedToTheWorld(t *testing.T) {
	e := newEngine(t, 3, nil)

	got := e.World().Viewport()
	expected := core.NewIntRect(40, 40, 60, 40)
	if got != expected {
		t.Errorf("Viewport() = %+v, expected %+v", got, expected)
	}

	small := newEngine(t, 2, nil)
	if got := small.World().Viewport(); got.X != 0 || got.Y != 0 {
		t.Errorf("Viewport() = %+v, expected the origin for a world smaller than the camera", got)
	}
}

func TestLongFramesAreClamped(t *testing.T) {
	e := newEngine(t, 3, nil)

	e.Update(10, press(core.DirectionLeft))

	hero, _ := e.World().Hero()
	if hero.Frame.X != 90 {
		t.Errorf("hero Frame.X = %d, expected 90 after one clamped step", hero.Frame.X)
	}
	if e.Snapshot().Ticks != 1 {
		t.Errorf("Ticks = %d, expected 1", e.Snapshot().Ticks)
	}
}

func TestDialogueRewardIsGivenOnce(t *testing.T) {
	e := newEngine(t, 1, nil)
	dialogue := world.Dialogue{Key: world.AlwaysKey, ExpectedValue: 1, Text: "dialogue.old_man.intro", Reward: species.KeyYellow}

	for i := 0; i < 2; i++ {
		e.handle([]world.EngineStateUpdate{world.ShowDialogue{NpcID: 10, NpcName: "Old man", Dialogue: dialogue}})
		if e.Snapshot().Dialogue == nil {
			t.Fatal("Snapshot().Dialogue = nil, expected the dialogue")
		}
		e.Update(0.1, idle)
		if e.Snapshot().Dialogue == nil {
			t.Fatal("dialogue closed without input")
		}
		e.Update(0.1, confirm)
		if e.Snapshot().Dialogue != nil {
			t.Fatal("dialogue still open after confirm")
		}
	}

	if got := e.Inventory().Count(uint32(species.KeyYellow)); got != 1 {
		t.Errorf("yellow keys = %d, expected 1", got)
	}
	if v, _ := e.Values().Value(dialogue.AnswerKey()); v != 1 {
		t.Errorf("%s = %d, expected 1", dialogue.AnswerKey(), v)
	}

	toasts := e.Snapshot().Toasts
	if len(toasts) == 0 || !strings.Contains(toasts[len(toasts)-1].Text, "Yellow key") {
		t.Errorf("Toasts = %+v, expected the reward toast", toasts)
	}
}

func TestEntityMenuRemovesEntity(t *testing.T) {
	e := newEngine(t, 1, nil)
	e.SetCreativeMode(true)

	e.handle([]world.EngineStateUpdate{world.ShowEntityOptions{ID: 50, SpeciesID: 2100, Name: "coin"}})
	menu := e.Snapshot().Menu
	if menu == nil || menu.Options[menu.Selected] != MenuOptionRemove {
		t.Fatalf("Snapshot().Menu = %+v, expected remove selected", menu)
	}

	e.Update(0.1, press(core.DirectionDown))
	if m := e.Snapshot().Menu; m.Options[m.Selected] != MenuOptionClose {
		t.Errorf("selected %v, expected close", m.Options[m.Selected])
	}
	e.Update(0.1, press(core.DirectionDown))
	e.Update(0.1, confirm)

	if e.Snapshot().Menu != nil {
		t.Error("menu still open after confirm")
	}
	if _, ok := e.World().Entity(50); ok {
		t.Error("Entity(50) should have been removed")
	}
}

func TestEntityMenuBackKeepsEntity(t *testing.T) {
	e := newEngine(t, 1, nil)

	e.handle([]world.EngineStateUpdate{world.ShowEntityOptions{ID: 50}})
	e.Update(0.1, core.KeyboardState{Direction: core.DirectionStill, Back: true})

	if e.Snapshot().Menu != nil {
		t.Error("menu still open after back")
	}
	if _, ok := e.World().Entity(50); !ok {
		t.Error("Entity(50) should still exist")
	}
}

func TestHeroDeathPausesUntilConfirm(t *testing.T) {
	e := newEngine(t, 1, nil)

	e.Apply(world.IncreaseHp{ID: world.HeroID, Delta: -1000})
	if !e.Snapshot().HeroDied {
		t.Fatal("HeroDied = false after a lethal hit")
	}

	ticks := e.Snapshot().Ticks
	e.Update(0.1, press(core.DirectionDown))
	if e.Snapshot().Ticks != ticks {
		t.Error("the world should not tick while the hero is dead")
	}

	e.Update(0.1, confirm)
	if e.Snapshot().HeroDied {
		t.Error("HeroDied = true after restart")
	}
	hero, _ := e.World().Hero()
	if hero.Hp <= 0 {
		t.Errorf("hero Hp = %v after restart, expected full hp", hero.Hp)
	}
}

func TestInventoryCommands(t *testing.T) {
	e := newEngine(t, 1, nil)

	e.handle([]world.EngineStateUpdate{
		world.AddToInventory{Species: species.Kunai},
		world.AddToInventory{Species: species.Kunai},
		world.RemoveFromInventory{Species: species.Kunai},
		world.RemoveFromInventory{Species: species.KeyBlue},
	})

	if got := e.Inventory().Items(); len(got) != 1 || got[0] != uint32(species.Kunai) {
		t.Errorf("Items() = %v, expected one kunai", got)
	}
}

func TestInventoryOverlayPausesTheWorld(t *testing.T) {
	e := newEngine(t, 1, nil)
	menu := core.KeyboardState{Direction: core.DirectionStill, Menu: true}

	e.Update(0.1, menu)
	if !e.Snapshot().InventoryOpen {
		t.Fatal("InventoryOpen = false, expected the overlay")
	}
	e.Update(0.1, idle)
	if e.Snapshot().Ticks != 0 {
		t.Errorf("Ticks = %d, expected the world paused", e.Snapshot().Ticks)
	}
	e.Update(0.1, menu)
	if e.Snapshot().InventoryOpen {
		t.Error("InventoryOpen = true after toggling twice")
	}
}

func TestToasts(t *testing.T) {
	tests := []struct {
		name      string
		important bool
		ticks     int
		visible   bool
	}{
		{"normal visible", false, 15, true},
		{"normal expired", false, 21, false},
		{"important visible", true, 45, true},
		{"important expired", true, 51, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, 2, nil)
			e.handle([]world.EngineStateUpdate{world.Toast{Text: "hello", Important: tt.important}})
			for i := 0; i < tt.ticks; i++ {
				e.Update(0.1, idle)
			}
			if got := len(e.Snapshot().Toasts) == 1; got != tt.visible {
				t.Errorf("toast visible = %v, expected %v", got, tt.visible)
			}
		})
	}
}

func TestToastQueue(t *testing.T) {
	e := newEngine(t, 2, nil)

	e.pushToast("a", false)
	e.pushToast("a", false)
	if len(e.toasts) != 1 {
		t.Errorf("len(toasts) = %d, expected repeated toasts to merge", len(e.toasts))
	}

	for _, text := range []string{"b", "c", "d", "e", "f"} {
		e.pushToast(text, false)
	}
	if len(e.toasts) != maxToasts || e.toasts[0].Text != "c" {
		t.Errorf("toasts = %+v, expected the newest %d", e.toasts, maxToasts)
	}
}

func TestExit(t *testing.T) {
	e := newEngine(t, 2, nil)
	e.handle([]world.EngineStateUpdate{world.Exit{}})
	if !e.ShouldExit() {
		t.Error("ShouldExit() = false after Exit")
	}
}

func TestSetCameraSize(t *testing.T) {
	e := newEngine(t, 3, nil)

	e.SetCameraSize(20, 10)
	expected := core.NewIntRect(80, 65, 20, 10)
	if got := e.World().Viewport(); got != expected {
		t.Errorf("Viewport() = %+v, expected %+v", got, expected)
	}

	e.SetCameraSize(0, 10)
	if got := e.World().Viewport(); got != expected {
		t.Errorf("Viewport() = %+v after an empty size, expected it unchanged", got)
	}
}
