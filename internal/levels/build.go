package levels

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/maps"
	"github.com/curzel-it/nokemon-sub001/internal/species"
	"github.com/curzel-it/nokemon-sub001/internal/world"
)

// BuildOptions carries what a level needs from the running game.
type BuildOptions struct {
	Factory           *world.Factory
	Values            world.ValueStore
	Inventory         world.InventoryReader
	Lang              world.Localizer
	Logger            *log.Logger
	Viewport          core.IntRect
	CreativeMode      bool
	KunaiCooldown     float64
	TileVariationsFPS float64
	Spawn             *Point // Overrides the level spawn, e.g. a teleporter destination
}

// Build creates a fresh world from the level. Every call returns an
// independent world.
func (l *Level) Build(opts BuildOptions) (*world.World, error) {
	if opts.Factory == nil {
		return nil, fmt.Errorf("levels: building level %d: no entity factory", l.ID)
	}
	fps := opts.TileVariationsFPS
	if fps <= 0 {
		fps = world.DefaultTileVariationsFPS
	}

	w := world.New(world.Options{
		ID:            l.ID,
		Biome:         maps.NewTileSet(species.SheetBiomeTiles, cloneTiles(l.Biome), fps),
		Constructions: maps.NewTileSet(species.SheetConstructionTiles, cloneTiles(l.Constructions), fps),
		Viewport:      opts.Viewport,
		CreativeMode:  opts.CreativeMode,
		KunaiCooldown: opts.KunaiCooldown,
		Values:        opts.Values,
		Inventory:     opts.Inventory,
		Lang:          opts.Lang,
		Factory:       opts.Factory,
		Logger:        opts.Logger,
	})

	hasHero := false
	for i, spec := range l.Entities {
		e, err := l.makeEntity(opts.Factory, spec)
		if err != nil {
			return nil, fmt.Errorf("%w: level %d entity %d: %w", ErrInvalidLevel, l.ID, i, err)
		}
		if e.Kind == species.KindHero {
			if hasHero {
				return nil, fmt.Errorf("%w: level %d: more than one hero", ErrInvalidLevel, l.ID)
			}
			hasHero = true
			l.placeHero(e, opts.Spawn)
		}
		w.Add(e)
	}

	if !hasHero {
		hero, err := opts.Factory.Make(species.Hero)
		if err != nil {
			return nil, fmt.Errorf("levels: building level %d: %w", l.ID, err)
		}
		l.placeHero(hero, opts.Spawn)
		w.Add(hero)
	}

	w.Setup()
	w.RefreshSpatialIndex()
	return w, nil
}

func (l *Level) makeEntity(factory *world.Factory, spec EntitySpec) (*world.Entity, error) {
	sp, err := factory.Species().ByName(spec.Species)
	if err != nil {
		return nil, err
	}
	e := factory.Build(sp)
	e.ID = world.EntityID(spec.ID)
	e.Frame.X = spec.X
	e.Frame.Y = spec.Y
	if spec.Direction != core.DirectionUnknown {
		e.Direction = spec.Direction
	}
	e.Lock = spec.Lock
	e.HintKey = spec.Hint
	e.Dialogues = append([]world.Dialogue(nil), spec.Dialogues...)

	if !l.contains(e.Frame) {
		return nil, fmt.Errorf("%s at (%d, %d) does not fit the map", spec.Species, spec.X, spec.Y)
	}
	if len(spec.Patrol) > 0 {
		if e.Patrol, err = world.NewPatrol(e.Frame, spec.Patrol); err != nil {
			return nil, err
		}
	}
	if spec.Destination != nil {
		e.Destination = *spec.Destination
	} else if e.Kind == species.KindTeleporter {
		return nil, fmt.Errorf("teleporter at (%d, %d) has no destination", spec.X, spec.Y)
	}
	return e, nil
}

// placeHero puts the hero on the spawn point, or on override when given,
// keeping its whole frame inside the map.
func (l *Level) placeHero(hero *world.Entity, override *Point) {
	spawn := l.Spawn
	if override != nil {
		spawn = *override
	}
	hero.Frame.X = core.Clamp(spawn.X, 0, max(l.Cols()-hero.Frame.W, 0))
	hero.Frame.Y = core.Clamp(spawn.Y, 0, max(l.Rows()-hero.Frame.H, 0))
}

func (l *Level) contains(frame core.IntRect) bool {
	return frame.X >= 0 && frame.Y >= 0 && frame.Right() <= l.Cols() && frame.Bottom() <= l.Rows()
}

func cloneTiles[T any](tiles [][]T) [][]T {
	out := make([][]T, len(tiles))
	for i, row := range tiles {
		out[i] = append([]T(nil), row...)
	}
	return out
}
