package world

import (
	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/species"
)

// creativeSpeedMultiplier speeds the hero up while editing worlds.
const creativeSpeedMultiplier = 2.0

func (e *Entity) updateHero(snap *Snapshot, dt float64) []WorldStateUpdate {
	if e.ShootCooldown > 0 {
		e.ShootCooldown -= dt
	}

	input := snap.Input
	if input.IsAnyArrowDown() {
		e.Direction = input.Direction
		e.ResetSpeed()
		if snap.CreativeMode {
			e.CurrentSpeed *= creativeSpeedMultiplier
		}
	} else {
		e.Stop()
	}

	moving := e.CurrentSpeed > 0
	e.MoveLinearly(snap, dt)
	e.Sprite.SetRowForDirection(e.Direction, moving)

	props := NewHeroProps(&e.Body, input)
	updates := []WorldStateUpdate{
		CacheHeroProps{Props: props},
		EngineUpdate{Update: CenterCamera{X: e.Frame.X, Y: e.Frame.Y, Offset: e.Offset}},
	}
	return append(updates, e.shootKunai(snap, props)...)
}

// shootKunai throws a kunai from the tile in front of the hero. It needs a
// kunai in the inventory and an elapsed cooldown.
func (e *Entity) shootKunai(snap *Snapshot, props HeroProps) []WorldStateUpdate {
	if !snap.Input.Attack || e.ShootCooldown > 0 || snap.Factory == nil {
		return nil
	}
	if !snap.HasItem(uint32(species.Kunai)) {
		return nil
	}

	bullet, err := snap.Factory.Make(species.Kunai)
	if err != nil {
		return nil
	}

	x, y := props.FacingCell()
	bullet.Frame = core.NewIntRect(x, y, bullet.Frame.W, bullet.Frame.H)
	bullet.Direction = e.Direction
	bullet.ParentID = e.ID
	bullet.ResetSpeed()
	bullet.Sprite.Row = int(e.Direction) - int(core.DirectionUp)

	e.ShootCooldown = snap.KunaiCooldown

	return []WorldStateUpdate{
		AddEntity{Entity: bullet},
		EngineUpdate{Update: RemoveFromInventory{Species: species.Kunai}},
	}
}
