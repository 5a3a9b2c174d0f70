package engine

import (
	"fmt"

	"github.com/curzel-it/nokemon-sub001/internal/storage"
	"github.com/curzel-it/nokemon-sub001/internal/world"
)

// Persister stores progress between sessions. *storage.Store implements it.
type Persister interface {
	AllValues() (map[string]int, error)
	SetValues(values map[string]int) error
	LoadInventory() ([]uint32, error)
	ReplaceInventory(items []uint32) error
	SaveSlot(worldID uint32, heroX, heroY int) (string, error)
	LatestSlot() (storage.SaveSlot, bool, error)
}

var _ Persister = (*storage.Store)(nil)

// Save persists progress values, the inventory and the hero position.
// Without a store it does nothing.
func (e *Engine) Save() error {
	if e.store == nil {
		return nil
	}
	if err := e.store.SetValues(e.values.Snapshot()); err != nil {
		return fmt.Errorf("engine: saving values: %w", err)
	}
	if err := e.store.ReplaceInventory(e.inventory.Items()); err != nil {
		return fmt.Errorf("engine: saving inventory: %w", err)
	}

	hero := e.world.HeroProps().Frame
	slot, err := e.store.SaveSlot(e.world.ID(), hero.X, hero.Y)
	if err != nil {
		return fmt.Errorf("engine: saving slot: %w", err)
	}
	e.logger.Debug("game saved", "slot", slot, "world", e.world.ID())
	return nil
}

// restore loads values and inventory from the store and returns the
// latest save slot, if any.
func (e *Engine) restore() (storage.SaveSlot, bool, error) {
	values, err := e.store.AllValues()
	if err != nil {
		return storage.SaveSlot{}, false, fmt.Errorf("engine: restoring values: %w", err)
	}
	items, err := e.store.LoadInventory()
	if err != nil {
		return storage.SaveSlot{}, false, fmt.Errorf("engine: restoring inventory: %w", err)
	}
	e.values = storage.NewValues(values)
	e.inventory = storage.NewInventory(items)

	slot, ok, err := e.store.LatestSlot()
	if err != nil {
		return storage.SaveSlot{}, false, fmt.Errorf("engine: restoring slot: %w", err)
	}
	if ok && slot.WorldID == world.IDNone {
		ok = false
	}
	return slot, ok, nil
}
