package sprites

import "github.com/curzel-it/nokemon-sub001/internal/core"

// AnimatedSprite points into a sprite sheet. Frames of the same animation
// sit side by side on one row of the sheet, and rows select the animation.
type AnimatedSprite struct {
	SheetID  uint32
	Frame    core.IntRect // First frame, in sheet tiles
	Row      int          // Row offset applied on top of Frame.Y
	Provider TimedContentProvider[int]
}

// NewAnimatedSprite builds a sprite cycling numberOfFrames frames at fps.
func NewAnimatedSprite(sheetID uint32, frame core.IntRect, numberOfFrames int, fps float64) AnimatedSprite {
	if numberOfFrames < 1 {
		numberOfFrames = 1
	}
	indices := make([]int, numberOfFrames)
	for i := range indices {
		indices[i] = i
	}
	return AnimatedSprite{
		SheetID:  sheetID,
		Frame:    frame,
		Provider: NewTimedContentProvider(indices, fps),
	}
}

// Update advances the animation clock.
func (s *AnimatedSprite) Update(dt float64) {
	if s.Provider.frames == nil {
		return
	}
	s.Provider.Update(dt)
}

// CurrentIndex returns the animation frame index, 0 for sprites without frames.
func (s *AnimatedSprite) CurrentIndex() int {
	if s.Provider.frames == nil {
		return 0
	}
	return s.Provider.CurrentFrame()
}

// TextureSourceRect returns the sheet area for the current frame.
func (s *AnimatedSprite) TextureSourceRect() core.IntRect {
	return core.IntRect{
		X: s.Frame.X + s.CurrentIndex()*s.Frame.W,
		Y: s.Frame.Y + s.Row*s.Frame.H,
		W: s.Frame.W,
		H: s.Frame.H,
	}
}

// SetRowForDirection selects the walking or idle animation for humanoid
// sheets laid out as: walking up, right, down, left, then idle up, right,
// down, left.
func (s *AnimatedSprite) SetRowForDirection(d core.Direction, moving bool) {
	row := 0
	switch d {
	case core.DirectionUp:
		row = 0
	case core.DirectionRight:
		row = 1
	case core.DirectionDown, core.DirectionStill, core.DirectionUnknown:
		row = 2
	case core.DirectionLeft:
		row = 3
	}
	if !moving {
		row += 4
	}
	s.Row = row
}
