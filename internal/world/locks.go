package world

import (
	"fmt"

	"github.com/curzel-it/nokemon-sub001/internal/species"
)

// LockType is the color of a lock. Each colored lock opens with the key
// species of the same color or while the pressure plate of the same color
// is down. Permanent locks never open with a key.
type LockType int

const (
	LockNone LockType = iota
	LockYellow
	LockRed
	LockBlue
	LockGreen
	LockSilver
	LockPermanent
)

type lockInfo struct {
	name    string
	key     species.ID
	plate   string
	nameKey string
}

var locks = [...]lockInfo{
	LockNone:      {"none", species.None, "", "lock.name.none"},
	LockYellow:    {"yellow", species.KeyYellow, "pressure_plate_down_yellow", "lock.name.yellow"},
	LockRed:       {"red", species.KeyRed, "pressure_plate_down_red", "lock.name.red"},
	LockBlue:      {"blue", species.KeyBlue, "pressure_plate_down_blue", "lock.name.blue"},
	LockGreen:     {"green", species.KeyGreen, "pressure_plate_down_green", "lock.name.green"},
	LockSilver:    {"silver", species.KeySilver, "pressure_plate_down_silver", "lock.name.silver"},
	LockPermanent: {"permanent", species.None, "", "lock.name.permanent"},
}

func (l LockType) info() lockInfo {
	if l < 0 || int(l) >= len(locks) {
		return locks[LockNone]
	}
	return locks[l]
}

// String returns the lock name used in level files.
func (l LockType) String() string {
	return l.info().name
}

// Key returns the species that opens the lock, species.None for None and Permanent.
func (l LockType) Key() species.ID {
	return l.info().key
}

// PressurePlateKey returns the storage key holding the state of the
// matching pressure plate, empty for None and Permanent.
func (l LockType) PressurePlateKey() string {
	return l.info().plate
}

// LocalizedNameKey returns the localization key of the lock name.
func (l LockType) LocalizedNameKey() string {
	return l.info().nameKey
}

// UnmarshalText parses a lock name.
func (l *LockType) UnmarshalText(text []byte) error {
	for i, info := range locks {
		if info.name == string(text) {
			*l = LockType(i)
			return nil
		}
	}
	return fmt.Errorf("world: unknown lock %q", string(text))
}

// MarshalText is the inverse of UnmarshalText.
func (l LockType) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// IsPressurePlateDown reports whether the plate matching lock is pressed.
func IsPressurePlateDown(lock LockType, values ValueReader) bool {
	key := lock.PressurePlateKey()
	if key == "" || values == nil {
		return false
	}
	value, ok := values.Value(key)
	return ok && value == 1
}

// IsLockSatisfied reports whether lock is open for a holder of inventory.
func IsLockSatisfied(lock LockType, inventory InventoryReader, values ValueReader) bool {
	switch lock {
	case LockNone:
		return true
	case LockPermanent:
		return false
	}
	if inventory != nil && inventory.Count(uint32(lock.Key())) > 0 {
		return true
	}
	return IsPressurePlateDown(lock, values)
}
