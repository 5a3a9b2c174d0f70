package world

import "github.com/curzel-it/nokemon-sub001/internal/species"

func (e *Entity) updateBuilding(snap *Snapshot) []WorldStateUpdate {
	if !snap.Input.Interact || !snap.Hero.IsFacing(e.Frame) {
		return nil
	}
	if snap.CreativeMode {
		return e.entityOptions()
	}
	return toEngine(BuildingInteraction{ID: e.ID})
}

func (e *Entity) updateStaticObject(snap *Snapshot) []WorldStateUpdate {
	if snap.CreativeMode && snap.Input.Interact && snap.Hero.IsFacing(e.Frame) {
		return e.entityOptions()
	}
	return nil
}

// updatePickable moves the object, or the contents of a bundle, into the
// inventory when the hero interacts with it.
func (e *Entity) updatePickable(snap *Snapshot) []WorldStateUpdate {
	if !snap.Input.Interact {
		return nil
	}
	if !snap.Hero.IsOn(e.Frame) && !snap.Hero.IsFacing(e.Frame) {
		return nil
	}
	if snap.CreativeMode {
		return e.entityOptions()
	}

	items := []species.ID{e.SpeciesID}
	if e.Kind == species.KindBundle {
		items = e.BundleContents
	}

	updates := []WorldStateUpdate{RemoveEntity{ID: e.ID}}
	for _, item := range items {
		updates = append(updates, EngineUpdate{Update: AddToInventory{Species: item}})
	}
	text := snap.Lang.Format("toast.picked_up", snap.Lang.Get(e.NameKey()))
	return append(updates, EngineUpdate{Update: Toast{Text: text}})
}

// updatePushable slides one tile at a time while the hero walks into it.
func (e *Entity) updatePushable(snap *Snapshot, dt float64) []WorldStateUpdate {
	if !snap.Input.IsAnyArrowDown() || !snap.Hero.IsAroundAndOnCollisionWith(e.Frame) {
		e.Stop()
		return nil
	}
	e.Direction = snap.Hero.Direction
	e.CurrentSpeed = snap.Hero.Speed
	e.MoveLinearly(snap, dt)
	return nil
}

// updateHint shows its message once, the first time the hero steps on it.
func (e *Entity) updateHint(snap *Snapshot) []WorldStateUpdate {
	if snap.CreativeMode || e.HintKey == "" || !snap.Hero.IsOn(e.Frame) {
		return nil
	}
	readKey := HintReadKey(e.HintKey)
	if value, ok := snap.Values.Value(readKey); ok && value == 1 {
		return nil
	}
	return []WorldStateUpdate{
		EngineUpdate{Update: Toast{Text: snap.Lang.Get(e.HintKey), Important: true}},
		StoreValue{Key: readKey, Value: 1},
	}
}

// HintReadKey is the progress key marking a hint as read.
func HintReadKey(hint string) string {
	return "hint.read." + hint
}
