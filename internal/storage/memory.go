package storage

import (
	"sort"
	"sync"
)

// Values is the in-memory key/value table a running world reads and writes.
// It is loaded from a Store at startup and flushed back on save.
type Values struct {
	mu     sync.RWMutex
	values map[string]int
}

// NewValues creates a table holding a copy of initial.
func NewValues(initial map[string]int) *Values {
	values := make(map[string]int, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &Values{values: values}
}

// Value returns the value under key, false if absent.
func (v *Values) Value(key string) (int, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	value, ok := v.values[key]
	return value, ok
}

// SetValue stores value under key.
func (v *Values) SetValue(key string, value int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.values[key] = value
}

// Snapshot returns a copy of every pair.
func (v *Values) Snapshot() map[string]int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make(map[string]int, len(v.values))
	for k, value := range v.values {
		out[k] = value
	}
	return out
}

// Keys returns every key, sorted.
func (v *Values) Keys() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	keys := make([]string, 0, len(v.values))
	for k := range v.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Inventory is the ordered list of species the hero carries.
type Inventory struct {
	mu    sync.RWMutex
	items []uint32
}

// NewInventory creates an inventory holding a copy of items.
func NewInventory(items []uint32) *Inventory {
	return &Inventory{items: append([]uint32(nil), items...)}
}

// Add appends one item of the species.
func (i *Inventory) Add(speciesID uint32) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.items = append(i.items, speciesID)
}

// Remove drops the first item of the species. It reports whether one was found.
func (i *Inventory) Remove(speciesID uint32) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	for idx, id := range i.items {
		if id == speciesID {
			i.items = append(i.items[:idx], i.items[idx+1:]...)
			return true
		}
	}
	return false
}

// Count returns how many items of the species are carried.
func (i *Inventory) Count(speciesID uint32) int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	n := 0
	for _, id := range i.items {
		if id == speciesID {
			n++
		}
	}
	return n
}

// Contains reports whether at least one item of the species is carried.
func (i *Inventory) Contains(speciesID uint32) bool {
	return i.Count(speciesID) > 0
}

// Items returns a copy of the carried items in pickup order.
func (i *Inventory) Items() []uint32 {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return append([]uint32(nil), i.items...)
}
