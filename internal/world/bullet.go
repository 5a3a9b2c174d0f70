package world

// updateBullet flies straight on. Landing on an entity other than itself
// or its shooter hits that entity; walls and the world edge stop it.
func (e *Entity) updateBullet(snap *Snapshot, dt float64) []WorldStateUpdate {
	_, blocked := e.MoveLinearly(snap, dt)

	target := snap.IDs.At(e.Frame.Y, e.Frame.X)
	if target != NoParent && target != e.ID && target != e.ParentID {
		return []WorldStateUpdate{
			HandleHit{Shooter: e.ID, Target: target},
			RemoveEntity{ID: e.ID},
		}
	}
	if blocked || (target == NoParent && snap.Hitmap.At(e.Frame.Y, e.Frame.X)) {
		return []WorldStateUpdate{RemoveEntity{ID: e.ID}}
	}
	return nil
}
