package world

import "github.com/curzel-it/nokemon-sub001/internal/core"

// Unlimited is the lifespan of entities that never expire.
const Unlimited = -420.0

// Body is the physical record every entity carries.
type Body struct {
	ID       EntityID
	ParentID EntityID

	Frame     core.IntRect
	Offset    core.Vector2d // Sub-tile progress towards the next tile
	Direction core.Direction

	CurrentSpeed float64 // Tiles per second
	BaseSpeed    float64

	Hp       float64
	Dp       float64
	Lifespan float64 // Seconds left, or Unlimited

	ZIndex                     int
	IsRigid                    bool
	IsInvulnerable             bool
	RequiresCollisionDetection bool

	LatestSteps int // Tiles moved during the latest tick
}

// Footprint is the ground area the body occupies.
func (b *Body) Footprint() core.IntRect {
	return footprint(b.Frame)
}

// ResetSpeed restores the base speed.
func (b *Body) ResetSpeed() {
	b.CurrentSpeed = b.BaseSpeed
}

// Stop zeroes the speed and drops any sub-tile progress.
func (b *Body) Stop() {
	b.CurrentSpeed = 0
	b.Offset = core.Vector2d{}
}

// UpdateLifespan consumes dt of lifespan and reports whether the body expired.
func (b *Body) UpdateLifespan(dt float64) bool {
	if b.Lifespan == Unlimited {
		return false
	}
	b.Lifespan -= dt
	return b.Lifespan < 0
}

// MoveLinearly advances the body along its direction. Whole tiles are
// taken one at a time; a step leaving the world, or hitting an obstacle
// when collision detection is on, ends the move and drops the sub-tile
// offset. It returns the tiles moved and whether a step was refused.
func (b *Body) MoveLinearly(snap *Snapshot, dt float64) (steps int, blocked bool) {
	return b.MoveLinearlyAtMost(snap, dt, -1)
}

// MoveLinearlyAtMost is MoveLinearly taking no more than limit tiles, or
// any number when limit is negative. Progress past the limit is dropped.
func (b *Body) MoveLinearlyAtMost(snap *Snapshot, dt float64, limit int) (steps int, blocked bool) {
	b.LatestSteps = 0
	if b.CurrentSpeed == 0 || !b.Direction.IsMovement() {
		b.Offset = core.Vector2d{}
		return 0, false
	}

	b.Offset = b.Offset.Add(b.Direction.Vector().Scale(b.CurrentSpeed * dt))
	tilesX := core.WholeTiles(b.Offset.X)
	tilesY := core.WholeTiles(b.Offset.Y)
	b.Offset.X -= float64(tilesX)
	b.Offset.Y -= float64(tilesY)

	remaining := core.Abs(tilesX) + core.Abs(tilesY)
	if limit >= 0 && remaining > limit {
		remaining = limit
		b.Offset = core.Vector2d{}
	}

	dx, dy := b.Direction.Offset()
	for ; remaining > 0; remaining-- {
		next := b.Frame.Offset(dx, dy)
		if !snap.IsFrameInBounds(next) || (b.RequiresCollisionDetection && b.collides(snap, next)) {
			b.Offset = core.Vector2d{}
			blocked = true
			break
		}
		b.Frame = next
		steps++
	}
	b.LatestSteps = steps
	return steps, blocked
}

// collides reports whether moving to next would hit an obstacle. Bodies
// other than the hero also collide with the hero.
func (b *Body) collides(snap *Snapshot, next core.IntRect) bool {
	if snap.IsBlocked(next, b.ID) {
		return true
	}
	return b.ID != HeroID && footprint(next).Intersects(snap.Hero.HittableFrame)
}
