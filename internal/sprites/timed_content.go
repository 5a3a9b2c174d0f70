// Package sprites provides frame clocks for animations and tile variants.
package sprites

// TimedContentProvider cycles through a fixed sequence of frames at a fixed
// rate. Time is accumulated across updates, so no frame is skipped when
// updates arrive in small increments, and a large dt advances several
// frames at once.
type TimedContentProvider[T any] struct {
	frames         []T
	frameDuration  float64
	leftover       float64
	index          int
	completedLoops int
}

// NewTimedContentProvider creates a provider over frames at fps frames per
// second. It panics if frames is empty.
func NewTimedContentProvider[T any](frames []T, fps float64) TimedContentProvider[T] {
	if len(frames) == 0 {
		panic("sprites: timed content provider needs at least one frame")
	}
	duration := 0.0
	if fps > 0 {
		duration = 1.0 / fps
	}
	return TimedContentProvider[T]{
		frames:        frames,
		frameDuration: duration,
	}
}

// Update advances the clock by dt seconds.
// A provider with a non-positive rate stays on its current frame.
func (p *TimedContentProvider[T]) Update(dt float64) {
	if p.frameDuration <= 0 || len(p.frames) <= 1 {
		return
	}
	p.leftover += dt

	for p.leftover >= p.frameDuration {
		p.leftover -= p.frameDuration
		p.index++
		if p.index >= len(p.frames) {
			p.index = 0
			p.completedLoops++
		}
	}
}

// CurrentFrame returns the active frame.
func (p *TimedContentProvider[T]) CurrentFrame() T {
	return p.frames[p.index]
}

// CurrentIndex returns the position of the active frame.
func (p *TimedContentProvider[T]) CurrentIndex() int {
	return p.index
}

// NumberOfFrames returns the length of the cycle.
func (p *TimedContentProvider[T]) NumberOfFrames() int {
	return len(p.frames)
}

// CompletedLoops returns how many times the sequence wrapped around.
func (p *TimedContentProvider[T]) CompletedLoops() int {
	return p.completedLoops
}

// JumpToFrame moves to index i (modulo the number of frames) and drops any
// accumulated time.
func (p *TimedContentProvider[T]) JumpToFrame(i int) {
	n := len(p.frames)
	p.index = ((i % n) + n) % n
	p.leftover = 0
}
