// Package engine drives a world from the outside: it feeds the world one
// tick at a time and reacts to the commands the world forwards, such as
// camera moves, world switches, inventory changes, saving and UI requests.
// An Engine is not safe for concurrent use; run one per player.
package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/curzel-it/nokemon-sub001/internal/config"
	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/lang"
	"github.com/curzel-it/nokemon-sub001/internal/levels"
	"github.com/curzel-it/nokemon-sub001/internal/species"
	"github.com/curzel-it/nokemon-sub001/internal/storage"
	"github.com/curzel-it/nokemon-sub001/internal/world"
)

// ErrNoLoader is returned when an engine is created without a level loader.
var ErrNoLoader = errors.New("engine: no level loader")

// Options configures a new Engine.
type Options struct {
	Config  config.GameConfig
	Loader  *levels.Loader
	Factory *world.Factory
	Lang    world.Localizer
	Store   Persister // Optional, progress is kept in memory when nil
	Logger  *log.Logger
}

// Engine owns the current world and everything that outlives it: progress
// values, inventory, camera and the UI state.
type Engine struct {
	cfg     config.GameConfig
	loader  *levels.Loader
	factory *world.Factory
	lang    world.Localizer
	store   Persister
	logger  *log.Logger

	world     *world.World
	values    *storage.Values
	inventory *storage.Inventory
	creative  bool

	toasts        []ToastMessage
	dialogue      *DialogueBox
	menu          *EntityMenu
	inventoryOpen bool
	heroDied      bool
	exit          bool
	ticks         uint64
}

// New creates an engine and loads the first world. With a store, progress
// and the latest save slot are restored first.
func New(opts Options) (*Engine, error) {
	if opts.Loader == nil {
		return nil, ErrNoLoader
	}
	if opts.Factory == nil {
		return nil, errors.New("engine: no entity factory")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:       opts.Config,
		loader:    opts.Loader,
		factory:   opts.Factory,
		lang:      opts.Lang,
		store:     opts.Store,
		logger:    opts.Logger,
		values:    storage.NewValues(nil),
		inventory: storage.NewInventory(nil),
		creative:  opts.Config.CreativeMode,
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.lang == nil {
		l, err := lang.New(opts.Config.Language)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		e.lang = l
	}

	start := opts.Config.World.StartLevel
	var spawn *levels.Point
	if e.store != nil {
		slot, ok, err := e.restore()
		if err != nil {
			return nil, err
		}
		if ok {
			start = slot.WorldID
			spawn = &levels.Point{X: slot.HeroX, Y: slot.HeroY}
		}
	}

	if err := e.LoadWorld(start, spawn); err != nil {
		return nil, err
	}
	return e, nil
}

// LoadWorld replaces the current world with a fresh build of the level.
// The hero appears at spawn when given, at the level spawn point otherwise.
func (e *Engine) LoadWorld(id uint32, spawn *levels.Point) error {
	lvl, err := e.loader.LoadByID(id)
	if err != nil {
		return fmt.Errorf("engine: loading world %d: %w", id, err)
	}
	w, err := lvl.Build(levels.BuildOptions{
		Factory:           e.factory,
		Values:            e.values,
		Inventory:         e.inventory,
		Lang:              e.lang,
		Logger:            e.logger.With("world", id),
		Viewport:          core.NewIntRect(0, 0, e.cfg.Camera.Width, e.cfg.Camera.Height),
		CreativeMode:      e.creative,
		KunaiCooldown:     e.cfg.Hero.KunaiCooldown,
		TileVariationsFPS: e.cfg.Simulation.TileVariationsFPS,
		Spawn:             spawn,
	})
	if err != nil {
		return fmt.Errorf("engine: building world %d: %w", id, err)
	}

	e.world = w
	e.dialogue = nil
	e.menu = nil
	e.heroDied = false
	hero := w.HeroProps().Frame
	e.centerCamera(hero.X, hero.Y)
	e.logger.Info("world loaded", "world", id, "name", lvl.Name, "entities", w.Len())
	return nil
}

// World returns the current world.
func (e *Engine) World() *world.World {
	return e.world
}

// Values returns the progress table.
func (e *Engine) Values() *storage.Values {
	return e.values
}

// Inventory returns the hero inventory.
func (e *Engine) Inventory() *storage.Inventory {
	return e.inventory
}

// Lang returns the localizer worlds are built with.
func (e *Engine) Lang() world.Localizer {
	return e.lang
}

// Species returns the catalog entities are built from.
func (e *Engine) Species() *species.Repository {
	return e.factory.Species()
}

// SetCameraSize changes the viewport size, e.g. after a terminal resize,
// and recenters it on the hero.
func (e *Engine) SetCameraSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.cfg.Camera.Width = width
	e.cfg.Camera.Height = height
	hero := e.world.HeroProps().Frame
	e.centerCamera(hero.X, hero.Y)
}

// ShouldExit reports whether an Exit command was received.
func (e *Engine) ShouldExit() bool {
	return e.exit
}

// SetCreativeMode toggles editing for the current and future worlds.
func (e *Engine) SetCreativeMode(enabled bool) {
	e.creative = enabled
	e.world.SetCreativeMode(enabled)
}

// Update advances the game by dt seconds. Frames longer than
// simulation.max_dt are clamped. While a dialogue, menu or the death
// screen is open the world is paused and input goes to that overlay.
func (e *Engine) Update(dt float64, input core.KeyboardState) {
	dt = min(max(dt, 0), e.cfg.Simulation.MaxDt)
	e.updateToasts(dt)

	switch {
	case e.heroDied:
		if input.Confirm {
			e.restart()
		}
		return
	case e.dialogue != nil:
		e.updateDialogue(input)
		return
	case e.menu != nil:
		e.updateMenu(input)
		return
	case input.Menu:
		e.inventoryOpen = !e.inventoryOpen
		return
	case e.inventoryOpen:
		if input.Back {
			e.inventoryOpen = false
		}
		return
	}

	e.ticks++
	e.handle(e.world.Tick(dt, input))
}

// Apply runs commands against the current world outside of a tick and
// handles whatever they forward.
func (e *Engine) Apply(updates ...world.WorldStateUpdate) {
	e.handle(e.world.Apply(updates...))
}

// handle executes forwarded commands in order. A world switch is deferred
// until the rest of the batch has run against the old world.
func (e *Engine) handle(updates []world.EngineStateUpdate) {
	var destination *world.Destination

	for _, u := range updates {
		switch u := u.(type) {
		case world.CenterCamera:
			e.centerCamera(u.X, u.Y)
		case world.SwitchWorld:
			d := u.Destination
			destination = &d
		case world.SaveGame:
			if err := e.Save(); err != nil {
				e.logger.Error("save failed", "err", err)
			}
		case world.Exit:
			e.exit = true
		case world.ShowEntityOptions:
			e.menu = newEntityMenu(u)
		case world.ShowDialogue:
			e.dialogue = &DialogueBox{NpcID: u.NpcID, NpcName: u.NpcName, Dialogue: u.Dialogue}
		case world.Toast:
			e.pushToast(u.Text, u.Important)
		case world.BuildingInteraction:
			e.logger.Debug("building interaction", "id", u.ID)
		case world.NpcInteraction:
			e.logger.Debug("npc interaction", "id", u.ID)
		case world.AddToInventory:
			e.inventory.Add(uint32(u.Species))
		case world.RemoveFromInventory:
			if !e.inventory.Remove(uint32(u.Species)) {
				e.logger.Debug("nothing to remove from inventory", "species", u.Species)
			}
		case world.HeroDied:
			e.heroDied = true
			e.pushToast(e.lang.Get("toast.hero_died"), true)
			e.logger.Info("hero died", "world", e.world.ID())
		}
	}

	if destination != nil {
		e.switchWorld(*destination)
	}
}

func (e *Engine) switchWorld(d world.Destination) {
	if err := e.LoadWorld(d.World, &levels.Point{X: d.X, Y: d.Y}); err != nil {
		e.logger.Error("world switch failed", "destination", d.World, "err", err)
		return
	}
	if err := e.Save(); err != nil {
		e.logger.Error("save failed", "err", err)
	}
}

// restart rebuilds the current world after the hero died.
func (e *Engine) restart() {
	if err := e.LoadWorld(e.world.ID(), nil); err != nil {
		e.logger.Error("restart failed", "world", e.world.ID(), "err", err)
	}
}

// centerCamera centers the viewport on the tile, keeping it inside the
// world whenever the world is larger than the camera.
func (e *Engine) centerCamera(x, y int) {
	bounds := e.world.Bounds()
	w, h := e.cfg.Camera.Width, e.cfg.Camera.Height
	vx := core.Clamp(x-w/2, 0, max(bounds.W-w, 0))
	vy := core.Clamp(y-h/2, 0, max(bounds.H-h, 0))
	e.world.SetViewport(core.NewIntRect(vx, vy, w, h))
}

// giveReward adds one item of the species to the inventory with a toast.
func (e *Engine) giveReward(id species.ID) {
	e.inventory.Add(uint32(id))
	name := fmt.Sprint(id)
	if sp, err := e.factory.Species().ByID(id); err == nil {
		name = e.lang.Get(sp.LocalizedNameKey())
	}
	e.pushToast(e.lang.Format("toast.picked_up", name), true)
}

// State is the read-only picture of the engine a front end draws from,
// together with World for the tiles and entities.
type State struct {
	WorldID       uint32
	Viewport      core.IntRect
	Toasts        []ToastMessage
	Dialogue      *DialogueBox
	Menu          *EntityMenu
	InventoryOpen bool
	Inventory     []uint32
	HeroDied      bool
	CreativeMode  bool
	Ticks         uint64
}

// Snapshot copies the current engine state.
func (e *Engine) Snapshot() State {
	s := State{
		WorldID:       e.world.ID(),
		Viewport:      e.world.Viewport(),
		Toasts:        append([]ToastMessage(nil), e.toasts...),
		InventoryOpen: e.inventoryOpen,
		Inventory:     e.inventory.Items(),
		HeroDied:      e.heroDied,
		CreativeMode:  e.creative,
		Ticks:         e.ticks,
	}
	if e.dialogue != nil {
		d := *e.dialogue
		s.Dialogue = &d
	}
	if e.menu != nil {
		m := *e.menu
		m.Options = append([]MenuOption(nil), e.menu.Options...)
		s.Menu = &m
	}
	return s
}
