package world

import (
	"strings"

	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/maps"
)

// ValueReader reads the progress key/value table.
type ValueReader interface {
	Value(key string) (int, bool)
}

// ValueStore is a ValueReader the world can also write to.
type ValueStore interface {
	ValueReader
	SetValue(key string, value int)
}

// InventoryReader reads the hero inventory. The engine owns writes.
type InventoryReader interface {
	Count(speciesID uint32) int
}

// Localizer turns localization keys into display text.
type Localizer interface {
	Get(key string) string
	Format(key string, args ...string) string
	Upper(text string) string
}

// keyLocalizer echoes keys back. Worlds use it when no localizer is given.
type keyLocalizer struct{}

func (keyLocalizer) Get(key string) string { return key }

func (keyLocalizer) Format(key string, args ...string) string {
	if len(args) == 0 {
		return key
	}
	return key + " " + strings.Join(args, " ")
}

func (keyLocalizer) Upper(text string) string { return strings.ToUpper(text) }

// HeroProps is the hero state cached once per tick for everyone else to read.
type HeroProps struct {
	Frame          core.IntRect
	HittableFrame  core.IntRect // Base row of the hero sprite
	Direction      core.Direction
	Offset         core.Vector2d
	Speed          float64
	IsInvulnerable bool
	AttackPressed  bool
}

// NewHeroProps derives the cached props from the hero body.
func NewHeroProps(b *Body, input core.KeyboardState) HeroProps {
	return HeroProps{
		Frame:          b.Frame,
		HittableFrame:  core.NewIntRect(b.Frame.X, b.Frame.Bottom()-1, b.Frame.W, 1),
		Direction:      b.Direction,
		Offset:         b.Offset,
		Speed:          b.CurrentSpeed,
		IsInvulnerable: b.IsInvulnerable,
		AttackPressed:  input.Attack,
	}
}

// FacingCell returns the tile right in front of the hero.
func (h HeroProps) FacingCell() (x, y int) {
	dx, dy := h.Direction.Offset()
	return h.HittableFrame.X + dx, h.HittableFrame.Y + dy
}

// IsFacing reports whether the hero looks at frame from an adjacent tile.
func (h HeroProps) IsFacing(frame core.IntRect) bool {
	x, y := h.FacingCell()
	return frame.Contains(x, y)
}

// IsAroundAndOnCollisionWith reports whether the hero is walking into frame.
func (h HeroProps) IsAroundAndOnCollisionWith(frame core.IntRect) bool {
	return h.Speed > 0 && h.IsFacing(frame)
}

// IsOn reports whether the hero stands on frame.
func (h HeroProps) IsOn(frame core.IntRect) bool {
	return h.HittableFrame.Intersects(frame)
}

// Snapshot is the read-only view of the world every entity receives during
// the update phase. Nothing in it changes until the apply phase.
type Snapshot struct {
	WorldID       uint32
	Bounds        core.IntRect
	Viewport      core.IntRect
	CreativeMode  bool
	Hero          HeroProps
	Input         core.KeyboardState
	Hitmap        *Grid[bool]
	IDs           *Grid[EntityID]
	Weights       *Grid[int]
	Biome         *maps.TileSet[maps.BiomeTile]
	Constructions *maps.TileSet[maps.ConstructionTile]
	Values        ValueReader
	Inventory     InventoryReader
	Lang          Localizer
	Factory       *Factory
	KunaiCooldown float64
}

// HasItem reports whether the hero carries at least one item of the species.
func (s *Snapshot) HasItem(speciesID uint32) bool {
	return s.Inventory != nil && s.Inventory.Count(speciesID) > 0
}

// IsFrameInBounds reports whether frame lies entirely inside the world.
func (s *Snapshot) IsFrameInBounds(frame core.IntRect) bool {
	return frame.X >= s.Bounds.X && frame.Y >= s.Bounds.Y &&
		frame.Right() <= s.Bounds.Right() && frame.Bottom() <= s.Bounds.Bottom()
}

// IsBlocked reports whether the footprint of frame hits an obstacle that
// does not belong to self.
func (s *Snapshot) IsBlocked(frame core.IntRect, self EntityID) bool {
	fp := footprint(frame)
	for row := fp.Y; row < fp.Bottom(); row++ {
		for col := fp.X; col < fp.Right(); col++ {
			if !s.Hitmap.InBounds(row, col) {
				return true
			}
			if s.Hitmap.At(row, col) && s.IDs.At(row, col) != self {
				return true
			}
		}
	}
	return false
}
