// Package world runs the simulation of one map: it owns the entities and
// tile layers, advances them one tick at a time and turns the commands
// entities emit into state changes.
//
// A tick has two phases. During the update phase every entity reads the
// same Snapshot and returns commands; nothing outside the entity itself
// changes. During the apply phase the world executes those commands in
// order, then rebuilds its spatial index.
package world

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/maps"
	"github.com/curzel-it/nokemon-sub001/internal/species"
	"github.com/curzel-it/nokemon-sub001/internal/storage"
)

// Well-known world ids.
const (
	IDNone uint32 = 1000
	IDDemo uint32 = 1001
)

// Default simulation settings.
const (
	DefaultTileVariationsFPS = 1.0
	DefaultKunaiCooldown     = 0.1
)

// Options configures a new world. Zero values pick sensible defaults.
type Options struct {
	ID            uint32
	Rows, Cols    int // Used when no tiles are given
	Biome         *maps.TileSet[maps.BiomeTile]
	Constructions *maps.TileSet[maps.ConstructionTile]
	Viewport      core.IntRect
	CreativeMode  bool
	KunaiCooldown float64
	Values        ValueStore
	Inventory     InventoryReader
	Lang          Localizer
	Factory       *Factory
	Logger        *log.Logger
}

// World owns the entities and tile layers of one map.
type World struct {
	id            uint32
	bounds        core.IntRect
	biome         *maps.TileSet[maps.BiomeTile]
	constructions *maps.TileSet[maps.ConstructionTile]

	entities map[EntityID]*Entity
	ids      *IDAllocator

	viewport     core.IntRect
	hero         HeroProps
	creativeMode bool

	visible []EntityID
	hitmap  *Grid[bool]
	idsMap  *Grid[EntityID]
	weights *Grid[int]
	dirty   bool

	kunaiCooldown float64
	values        ValueStore
	inventory     InventoryReader
	lang          Localizer
	factory       *Factory
	logger        *log.Logger
}

// New creates an empty world.
func New(opts Options) *World {
	biome := opts.Biome
	if biome == nil {
		biome = maps.NewTileSet(species.SheetBiomeTiles, grassTiles(opts.Rows, opts.Cols), DefaultTileVariationsFPS)
	}
	constructions := opts.Constructions
	if constructions == nil {
		constructions = maps.NewTileSet(
			species.SheetConstructionTiles,
			maps.EmptyConstructionTiles(biome.Rows(), biome.Cols()),
			DefaultTileVariationsFPS,
		)
	}

	w := &World{
		id:            opts.ID,
		bounds:        core.NewIntRect(0, 0, biome.Cols(), biome.Rows()),
		biome:         biome,
		constructions: constructions,
		entities:      make(map[EntityID]*Entity),
		ids:           NewIDAllocator(),
		viewport:      opts.Viewport,
		creativeMode:  opts.CreativeMode,
		kunaiCooldown: opts.KunaiCooldown,
		values:        opts.Values,
		inventory:     opts.Inventory,
		lang:          opts.Lang,
		factory:       opts.Factory,
		logger:        opts.Logger,
		dirty:         true,
	}
	if w.id == 0 {
		w.id = IDNone
	}
	if w.kunaiCooldown == 0 {
		w.kunaiCooldown = DefaultKunaiCooldown
	}
	if w.values == nil {
		w.values = storage.NewValues(nil)
	}
	if w.inventory == nil {
		w.inventory = storage.NewInventory(nil)
	}
	if w.lang == nil {
		w.lang = keyLocalizer{}
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}
	w.RefreshSpatialIndex()
	return w
}

func grassTiles(rows, cols int) [][]maps.BiomeTile {
	tiles := make([][]maps.BiomeTile, rows)
	for r := range tiles {
		tiles[r] = make([]maps.BiomeTile, cols)
		for c := range tiles[r] {
			tiles[r][c] = maps.BiomeTile{
				Type: maps.BiomeGrass, Up: maps.BiomeGrass, Right: maps.BiomeGrass,
				Down: maps.BiomeGrass, Left: maps.BiomeGrass,
			}
		}
	}
	return tiles
}

// ID returns the world id.
func (w *World) ID() uint32 { return w.id }

// Bounds returns the world rectangle in tiles.
func (w *World) Bounds() core.IntRect { return w.bounds }

// Biome returns the ground layer.
func (w *World) Biome() *maps.TileSet[maps.BiomeTile] { return w.biome }

// Constructions returns the constructions layer.
func (w *World) Constructions() *maps.TileSet[maps.ConstructionTile] { return w.constructions }

// Viewport returns the camera rectangle.
func (w *World) Viewport() core.IntRect { return w.viewport }

// SetViewport moves the camera. The spatial index follows on the next tick.
func (w *World) SetViewport(viewport core.IntRect) {
	if viewport != w.viewport {
		w.viewport = viewport
		w.dirty = true
	}
}

// CreativeMode reports whether the world is being edited.
func (w *World) CreativeMode() bool { return w.creativeMode }

// SetCreativeMode toggles editing and re-arms every entity.
func (w *World) SetCreativeMode(enabled bool) {
	w.creativeMode = enabled
	w.Setup()
}

// Add inserts an entity while the world is being built. The hero always
// takes HeroID; other entities keep a preassigned id when it is free and
// get a fresh one otherwise.
func (w *World) Add(e *Entity) EntityID {
	switch {
	case e.Kind == species.KindHero:
		e.ID = HeroID
		w.hero = NewHeroProps(&e.Body, core.KeyboardState{})
	case e.ID != NoParent && e.ID != HeroID && w.entities[e.ID] == nil:
		w.ids.Observe(e.ID)
	default:
		e.ID = w.ids.Next()
	}
	w.entities[e.ID] = e
	w.dirty = true
	return e.ID
}

// Setup arms every entity for the current mode, for example after the
// world has been (re)entered.
func (w *World) Setup() {
	for _, id := range w.SortedIDs() {
		w.entities[id].Setup(w.creativeMode)
	}
	if hero, ok := w.entities[HeroID]; ok {
		w.hero = NewHeroProps(&hero.Body, core.KeyboardState{})
	}
	w.dirty = true
}

// Len returns the number of live entities.
func (w *World) Len() int { return len(w.entities) }

// Entity returns a copy of the entity with the given id.
func (w *World) Entity(id EntityID) (Entity, bool) {
	e, ok := w.entities[id]
	if !ok {
		return Entity{}, false
	}
	return *e.Clone(), true
}

// Hero returns a copy of the hero.
func (w *World) Hero() (Entity, bool) {
	return w.Entity(HeroID)
}

// HeroProps returns the cached hero props.
func (w *World) HeroProps() HeroProps { return w.hero }

// SortedIDs returns every live id in ascending order.
func (w *World) SortedIDs() []EntityID {
	ids := make([]EntityID, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Visible returns the ids of visible entities in ascending order.
func (w *World) Visible() []EntityID {
	return append([]EntityID(nil), w.visible...)
}

// IsVisible reports whether id is in the visible set.
func (w *World) IsVisible(id EntityID) bool {
	i := sort.Search(len(w.visible), func(i int) bool { return w.visible[i] >= id })
	return i < len(w.visible) && w.visible[i] == id
}

// Weights returns the weight map. Callers must not modify it.
func (w *World) Weights() *Grid[int] { return w.weights }

// Hitmap returns the obstacle map. Callers must not modify it.
func (w *World) Hitmap() *Grid[bool] { return w.hitmap }

// IDsMap returns the occupancy map. Callers must not modify it.
func (w *World) IDsMap() *Grid[EntityID] { return w.idsMap }

// VisibleEntities returns copies of the visible entities in draw order:
// by z-index, then by bottom edge, then by id.
func (w *World) VisibleEntities() []Entity {
	out := make([]Entity, 0, len(w.visible))
	for _, id := range w.visible {
		if e, ok := w.entities[id]; ok {
			out = append(out, *e.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ZIndex != out[j].ZIndex {
			return out[i].ZIndex < out[j].ZIndex
		}
		if out[i].Frame.Bottom() != out[j].Frame.Bottom() {
			return out[i].Frame.Bottom() < out[j].Frame.Bottom()
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// RefreshSpatialIndex rebuilds the visible set and the per-tile maps.
func (w *World) RefreshSpatialIndex() {
	rows, cols := w.bounds.H, w.bounds.W
	w.visible = ComputeVisibleEntities(w.entities, w.viewport)
	w.weights = ComputeWeightMap(w.entities, w.visible, rows, cols)
	w.hitmap, w.idsMap = ComputeOccupancy(w.entities, w.visible, w.biome, w.constructions, rows, cols)
	w.dirty = false
}

func (w *World) snapshot(input core.KeyboardState) *Snapshot {
	return &Snapshot{
		WorldID:       w.id,
		Bounds:        w.bounds,
		Viewport:      w.viewport,
		CreativeMode:  w.creativeMode,
		Hero:          w.hero,
		Input:         input,
		Hitmap:        w.hitmap,
		IDs:           w.idsMap,
		Weights:       w.weights,
		Biome:         w.biome,
		Constructions: w.constructions,
		Values:        w.values,
		Inventory:     w.inventory,
		Lang:          w.lang,
		Factory:       w.factory,
		KunaiCooldown: w.kunaiCooldown,
	}
}

// Tick advances the world by dt seconds and returns the engine commands
// emitted along the way, in emission order.
func (w *World) Tick(dt float64, input core.KeyboardState) []EngineStateUpdate {
	if w.dirty {
		w.RefreshSpatialIndex()
	}
	w.biome.Update(dt)
	w.constructions.Update(dt)

	snap := w.snapshot(input)

	var updates []WorldStateUpdate
	for _, id := range w.SortedIDs() {
		updates = append(updates, w.updateEntity(w.entities[id], snap, dt)...)
	}

	engineUpdates := w.Apply(updates...)
	w.RefreshSpatialIndex()
	return engineUpdates
}

// updateEntity runs one entity update. A panicking entity is logged and
// contributes no commands.
func (w *World) updateEntity(e *Entity, snap *Snapshot, dt float64) (updates []WorldStateUpdate) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("entity update failed",
				"id", e.ID,
				"species", e.SpeciesID,
				"kind", e.Kind,
				"panic", fmt.Sprint(r),
			)
			updates = nil
		}
	}()
	return e.Update(snap, dt)
}

// Apply executes commands in order and returns the engine commands among
// them. It must not be called while a tick is in its update phase.
func (w *World) Apply(updates ...WorldStateUpdate) []EngineStateUpdate {
	var engineUpdates []EngineStateUpdate
	for _, u := range updates {
		engineUpdates = append(engineUpdates, w.apply(u)...)
	}
	return engineUpdates
}

func (w *World) apply(u WorldStateUpdate) []EngineStateUpdate {
	switch u := u.(type) {
	case AddEntity:
		if u.Entity == nil {
			return nil
		}
		u.Entity.ID = w.ids.Next()
		w.entities[u.Entity.ID] = u.Entity
		w.dirty = true

	case RemoveEntity:
		w.remove(u.ID)

	case CacheHeroProps:
		w.hero = u.Props

	case BiomeTileChange:
		if !maps.UpdateBiomeTile(w.biome, u.Row, u.Col, u.Biome) {
			w.logger.Debug("biome tile change out of bounds", "row", u.Row, "col", u.Col)
			return nil
		}
		w.dirty = true

	case ConstructionTileChange:
		if !w.constructions.Set(u.Row, u.Col, maps.ConstructionTile{Type: u.Construction}) {
			w.logger.Debug("construction tile change out of bounds", "row", u.Row, "col", u.Col)
			return nil
		}
		w.dirty = true

	case EngineUpdate:
		return []EngineStateUpdate{u.Update}

	case HandleHit:
		return w.handleHit(u)

	case IncreaseHp:
		return w.changeHp(u.ID, u.Delta)

	case ChangeLock:
		if e, ok := w.entities[u.ID]; ok {
			e.Lock = u.Lock
		} else {
			w.logger.Debug("lock change for missing entity", "id", u.ID)
		}

	case SetPressurePlate:
		if key := u.Lock.PressurePlateKey(); key != "" {
			value := 0
			if u.Down {
				value = 1
			}
			w.values.SetValue(key, value)
		}

	case StoreValue:
		w.values.SetValue(u.Key, u.Value)
	}
	return nil
}

func (w *World) remove(id EntityID) {
	if id == HeroID {
		w.logger.Warn("refusing to remove the hero")
		return
	}
	if _, ok := w.entities[id]; !ok {
		w.logger.Debug("remove of missing entity", "id", id)
		return
	}
	delete(w.entities, id)
	w.dirty = true
}

func (w *World) handleHit(hit HandleHit) []EngineStateUpdate {
	shooter, ok := w.entities[hit.Shooter]
	if !ok {
		w.logger.Debug("hit from missing shooter", "shooter", hit.Shooter)
		return nil
	}
	target, ok := w.entities[hit.Target]
	if !ok {
		w.logger.Debug("hit on missing target", "target", hit.Target)
		return nil
	}
	if target.IsInvulnerable || target.Hp <= 0 {
		return nil
	}
	return w.changeHp(target.ID, -shooter.Dp)
}

// changeHp adds delta to the hp of an entity. Entities other than the hero
// are removed once out of hp; the hero dying is left to the engine.
func (w *World) changeHp(id EntityID, delta float64) []EngineStateUpdate {
	e, ok := w.entities[id]
	if !ok {
		w.logger.Debug("hp change for missing entity", "id", id)
		return nil
	}
	e.Hp += delta
	if e.Hp > 0 {
		return nil
	}
	if id == HeroID {
		return []EngineStateUpdate{HeroDied{}}
	}
	w.remove(id)
	return nil
}
