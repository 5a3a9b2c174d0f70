package world

import "github.com/curzel-it/nokemon-sub001/internal/species"

// updateGate opens a gate while its lock is satisfied. Inverse gates are
// the opposite: they close while the matching plate is down.
func (e *Entity) updateGate(snap *Snapshot) {
	open := IsLockSatisfied(e.Lock, snap.Inventory, snap.Values)
	if e.Kind == species.KindInverseGate {
		open = !IsPressurePlateDown(e.Lock, snap.Values)
	}
	e.IsRigid = !open
	e.Sprite.Row = 0
	if open {
		e.Sprite.Row = 1
	}
}

// updatePressurePlate is down while anything with weight stands on it.
func (e *Entity) updatePressurePlate(snap *Snapshot) []WorldStateUpdate {
	down := snap.Hero.IsOn(e.Frame) || snap.Weights.At(e.Frame.Y, e.Frame.X) > 0
	e.IsDown = down
	e.Sprite.Row = 0
	if down {
		e.Sprite.Row = 1
	}
	if down == IsPressurePlateDown(e.Lock, snap.Values) {
		return nil
	}
	return []WorldStateUpdate{SetPressurePlate{Lock: e.Lock, Down: down}}
}

// updateTeleporter sends the hero to the destination when walked into.
// A locked teleporter consumes the matching key, if carried, and unlocks.
func (e *Entity) updateTeleporter(snap *Snapshot) []WorldStateUpdate {
	if !snap.Input.IsAnyArrowDown() || !snap.Hero.IsAroundAndOnCollisionWith(e.Frame) {
		return nil
	}
	if snap.CreativeMode {
		return e.entityOptions()
	}

	name := snap.Lang.Upper(snap.Lang.Get(e.Lock.LocalizedNameKey()))

	switch {
	case e.Lock == LockNone, IsPressurePlateDown(e.Lock, snap.Values):
		return toEngine(SwitchWorld{Destination: e.Destination})

	case e.Lock == LockPermanent:
		return toEngine(Toast{Text: snap.Lang.Get("teleporter.locked.permanent")})

	case snap.HasItem(uint32(e.Lock.Key())):
		return []WorldStateUpdate{
			ChangeLock{ID: e.ID, Lock: LockNone},
			EngineUpdate{Update: RemoveFromInventory{Species: e.Lock.Key()}},
			EngineUpdate{Update: SaveGame{}},
			EngineUpdate{Update: Toast{Text: snap.Lang.Format("teleporter.unlocked", name), Important: true}},
		}

	default:
		return toEngine(Toast{Text: snap.Lang.Format("teleporter.locked", name)})
	}
}
