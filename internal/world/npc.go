package world

func (e *Entity) updateNpc(snap *Snapshot, dt float64) []WorldStateUpdate {
	facing := snap.Hero.IsFacing(e.Frame)

	if snap.CreativeMode {
		e.Stop()
		e.Sprite.SetRowForDirection(e.Direction, false)
		if facing && snap.Input.Interact {
			return e.entityOptions()
		}
		return nil
	}

	if facing && snap.Input.Interact {
		e.Stop()
		e.Direction = snap.Hero.Direction.Opposite()
		e.Sprite.SetRowForDirection(e.Direction, false)

		updates := toEngine(NpcInteraction{ID: e.ID})
		if dialogue, ok := NextDialogue(e.Dialogues, snap.Values); ok {
			updates = append(updates, EngineUpdate{Update: ShowDialogue{
				NpcID:    e.ID,
				NpcName:  snap.Lang.Get(e.NameKey()),
				Dialogue: dialogue,
			}})
		}
		return updates
	}

	e.followPatrol(snap, dt)
	return nil
}

// followPatrol walks the active segment, never past its last step, then
// lets the patrol pick the direction for the next tick.
func (e *Entity) followPatrol(snap *Snapshot, dt float64) {
	if e.Patrol == nil {
		e.Stop()
		e.Sprite.SetRowForDirection(e.Direction, false)
		return
	}

	e.ResetSpeed()
	e.Direction = e.Patrol.Direction()
	steps, _ := e.MoveLinearlyAtMost(snap, dt, e.Patrol.StepsLeft())
	e.Patrol.Advance(steps)
	e.Direction = e.Patrol.Direction()
	e.Sprite.SetRowForDirection(e.Direction, e.CurrentSpeed > 0)
}

func (e *Entity) entityOptions() []WorldStateUpdate {
	return toEngine(ShowEntityOptions{ID: e.ID, SpeciesID: e.SpeciesID, Name: e.Name})
}
