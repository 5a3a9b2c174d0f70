package world

import (
	"fmt"

	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/species"
	"github.com/curzel-it/nokemon-sub001/internal/sprites"
)

// Entity is a body plus the state of its kind. Kind selects which of the
// optional fields are meaningful and which behavior runs on Update.
type Entity struct {
	Body

	SpeciesID species.ID
	Name      string
	Kind      species.Kind
	Sprite    sprites.AnimatedSprite

	Patrol         *Patrol      // Npc
	Lock           LockType     // Teleporter, Gate, InverseGate, PressurePlate
	Dialogues      []Dialogue   // Npc
	HintKey        string       // Hint
	BundleContents []species.ID // Bundle
	Destination    Destination  // Teleporter
	ShootCooldown  float64      // Hero
	IsDown         bool         // PressurePlate
}

// NameKey is the localization key of the display name.
func (e *Entity) NameKey() string {
	return "species." + e.Name
}

// Clone returns a copy that shares no mutable state with e.
func (e *Entity) Clone() *Entity {
	clone := *e
	clone.Patrol = e.Patrol.Clone()
	clone.Dialogues = append([]Dialogue(nil), e.Dialogues...)
	clone.BundleContents = append([]species.ID(nil), e.BundleContents...)
	return &clone
}

// Update runs one tick of behavior and returns the commands the entity
// wants applied. The entity may change its own body but never anything else.
func (e *Entity) Update(snap *Snapshot, dt float64) []WorldStateUpdate {
	var updates []WorldStateUpdate

	switch e.Kind {
	case species.KindHero:
		updates = e.updateHero(snap, dt)
	case species.KindNpc:
		updates = e.updateNpc(snap, dt)
	case species.KindBuilding:
		updates = e.updateBuilding(snap)
	case species.KindStaticObject:
		updates = e.updateStaticObject(snap)
	case species.KindPickableObject, species.KindBundle:
		updates = e.updatePickable(snap)
	case species.KindTeleporter:
		updates = e.updateTeleporter(snap)
	case species.KindPushableObject:
		updates = e.updatePushable(snap, dt)
	case species.KindGate, species.KindInverseGate:
		e.updateGate(snap)
	case species.KindPressurePlate:
		updates = e.updatePressurePlate(snap)
	case species.KindBullet:
		updates = e.updateBullet(snap, dt)
	case species.KindHint:
		updates = e.updateHint(snap)
	}

	e.Sprite.Update(dt)

	if e.UpdateLifespan(dt) {
		updates = append(updates, RemoveEntity{ID: e.ID})
	}
	return updates
}

// Setup arms the entity for a world (re)entry.
func (e *Entity) Setup(creativeMode bool) {
	switch e.Kind {
	case species.KindHero:
		e.RequiresCollisionDetection = !creativeMode
		e.Stop()
	case species.KindNpc:
		if e.Patrol != nil {
			e.Patrol.Reset()
			e.Frame = e.Patrol.Origin
			e.Direction = e.Patrol.Direction()
		}
		if creativeMode {
			e.IsRigid = false
		}
		e.Stop()
	case species.KindPushableObject:
		e.Stop()
	}
}

// Factory turns species into entities.
type Factory struct {
	repo          *species.Repository
	animationsFPS float64
}

// NewFactory creates a factory over repo. Sprites animate at animationsFPS.
func NewFactory(repo *species.Repository, animationsFPS float64) *Factory {
	return &Factory{repo: repo, animationsFPS: animationsFPS}
}

// Species returns the catalog the factory builds from.
func (f *Factory) Species() *species.Repository {
	return f.repo
}

// Make builds a new entity of the species, placed at the origin.
func (f *Factory) Make(id species.ID) (*Entity, error) {
	sp, err := f.repo.ByID(id)
	if err != nil {
		return nil, fmt.Errorf("world: cannot make entity: %w", err)
	}
	return f.Build(sp), nil
}

// Build builds a new entity from a species template.
func (f *Factory) Build(sp species.Species) *Entity {
	lifespan := Unlimited
	if sp.Lifespan > 0 {
		lifespan = sp.Lifespan
	}

	e := &Entity{
		Body: Body{
			Frame:          core.NewIntRect(0, 0, sp.Width, sp.Height),
			Direction:      core.DirectionDown,
			BaseSpeed:      sp.Speed,
			Hp:             sp.Hp,
			Dp:             sp.Dp,
			Lifespan:       lifespan,
			ZIndex:         sp.ZIndex,
			IsRigid:        sp.IsRigid,
			IsInvulnerable: sp.IsInvulnerable,
		},
		SpeciesID:      sp.ID,
		Name:           sp.Name,
		Kind:           sp.Kind,
		Sprite:         sprites.NewAnimatedSprite(sp.SpriteSheetID, sp.SpriteFrame, sp.SpriteFrames, f.animationsFPS),
		BundleContents: append([]species.ID(nil), sp.BundleContents...),
	}

	switch sp.Kind {
	case species.KindHero, species.KindNpc, species.KindPushableObject:
		e.RequiresCollisionDetection = true
	case species.KindBullet:
		e.ResetSpeed()
	}
	return e
}
