package world

import (
	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/maps"
	"github.com/curzel-it/nokemon-sub001/internal/species"
)

// WorldStateUpdate is a command an entity emits during the update phase.
// The world applies every command after all entities have been updated.
type WorldStateUpdate interface {
	worldStateUpdate()
}

// AddEntity inserts a new entity. The world always assigns a fresh id.
type AddEntity struct {
	Entity *Entity
}

// RemoveEntity deletes an entity. Removing the hero is ignored.
type RemoveEntity struct {
	ID EntityID
}

// CacheHeroProps stores the hero state the next snapshot exposes.
type CacheHeroProps struct {
	Props HeroProps
}

// BiomeTileChange paints one ground tile.
type BiomeTileChange struct {
	Row, Col int
	Biome    maps.Biome
}

// ConstructionTileChange paints one construction tile.
type ConstructionTileChange struct {
	Row, Col     int
	Construction maps.Construction
}

// EngineUpdate forwards a command to the engine layer unchanged.
type EngineUpdate struct {
	Update EngineStateUpdate
}

// HandleHit applies the shooter's damage to the target.
type HandleHit struct {
	Shooter EntityID
	Target  EntityID
}

// IncreaseHp adds delta to the hp of an entity, negative deltas included.
type IncreaseHp struct {
	ID    EntityID
	Delta float64
}

// ChangeLock replaces the lock of an entity.
type ChangeLock struct {
	ID   EntityID
	Lock LockType
}

// SetPressurePlate records whether the plate of a lock color is pressed.
type SetPressurePlate struct {
	Lock LockType
	Down bool
}

// StoreValue writes a key/value pair to the progress table.
type StoreValue struct {
	Key   string
	Value int
}

func (AddEntity) worldStateUpdate()              {}
func (RemoveEntity) worldStateUpdate()           {}
func (CacheHeroProps) worldStateUpdate()         {}
func (BiomeTileChange) worldStateUpdate()        {}
func (ConstructionTileChange) worldStateUpdate() {}
func (EngineUpdate) worldStateUpdate()           {}
func (HandleHit) worldStateUpdate()              {}
func (IncreaseHp) worldStateUpdate()             {}
func (ChangeLock) worldStateUpdate()             {}
func (SetPressurePlate) worldStateUpdate()       {}
func (StoreValue) worldStateUpdate()             {}

// EngineStateUpdate is a command the world forwards to the engine: camera,
// world switches, saving, UI requests and inventory changes.
type EngineStateUpdate interface {
	engineStateUpdate()
}

// CenterCamera asks the engine to center the viewport on a tile.
type CenterCamera struct {
	X, Y   int
	Offset core.Vector2d
}

// SwitchWorld asks the engine to load another world.
type SwitchWorld struct {
	Destination Destination
}

// SaveGame asks the engine to persist progress.
type SaveGame struct{}

// Exit asks the engine to stop.
type Exit struct{}

// ShowEntityOptions opens the creative-mode menu for an entity.
type ShowEntityOptions struct {
	ID        EntityID
	SpeciesID species.ID
	Name      string
}

// ShowDialogue opens a dialogue with an NPC.
type ShowDialogue struct {
	NpcID    EntityID
	NpcName  string
	Dialogue Dialogue
}

// Toast shows a transient message.
type Toast struct {
	Text      string
	Important bool
}

// BuildingInteraction reports that the hero interacted with a building.
type BuildingInteraction struct {
	ID EntityID
}

// NpcInteraction reports that the hero talked to an NPC.
type NpcInteraction struct {
	ID EntityID
}

// AddToInventory gives the hero one item of a species.
type AddToInventory struct {
	Species species.ID
}

// RemoveFromInventory takes one item of a species from the hero.
type RemoveFromInventory struct {
	Species species.ID
}

// HeroDied reports that the hero ran out of hp.
type HeroDied struct{}

func (CenterCamera) engineStateUpdate()        {}
func (SwitchWorld) engineStateUpdate()         {}
func (SaveGame) engineStateUpdate()            {}
func (Exit) engineStateUpdate()                {}
func (ShowEntityOptions) engineStateUpdate()   {}
func (ShowDialogue) engineStateUpdate()        {}
func (Toast) engineStateUpdate()               {}
func (BuildingInteraction) engineStateUpdate() {}
func (NpcInteraction) engineStateUpdate()      {}
func (AddToInventory) engineStateUpdate()      {}
func (RemoveFromInventory) engineStateUpdate() {}
func (HeroDied) engineStateUpdate()            {}

// toEngine wraps engine commands for the world queue.
func toEngine(updates ...EngineStateUpdate) []WorldStateUpdate {
	out := make([]WorldStateUpdate, len(updates))
	for i, u := range updates {
		out[i] = EngineUpdate{Update: u}
	}
	return out
}
