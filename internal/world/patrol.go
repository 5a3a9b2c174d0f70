package world

import (
	"errors"

	"github.com/curzel-it/nokemon-sub001/internal/core"
)

// ErrEmptyPatrol is returned when a patrol has no segments.
var ErrEmptyPatrol = errors.New("world: patrol has no segments")

// PatrolSegment walks Steps tiles in Direction.
type PatrolSegment struct {
	Direction core.Direction `yaml:"direction"`
	Steps     int            `yaml:"steps"`
}

// Patrol is a cyclic list of segments plus the progress along the active one.
type Patrol struct {
	Segments []PatrolSegment
	Origin   core.IntRect // Where the walker stands when the patrol is armed

	index     int
	stepsLeft int
}

// NewPatrol builds an armed patrol starting at origin.
func NewPatrol(origin core.IntRect, segments []PatrolSegment) (*Patrol, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyPatrol
	}
	p := &Patrol{
		Segments: append([]PatrolSegment(nil), segments...),
		Origin:   origin,
	}
	p.Reset()
	return p, nil
}

// Reset rewinds to the first segment.
func (p *Patrol) Reset() {
	p.index = 0
	p.stepsLeft = p.Segments[0].Steps
}

// Index returns the active segment index.
func (p *Patrol) Index() int {
	return p.index
}

// StepsLeft returns the steps remaining in the active segment.
func (p *Patrol) StepsLeft() int {
	return p.stepsLeft
}

// Direction returns the direction of the active segment.
func (p *Patrol) Direction() core.Direction {
	return p.Segments[p.index].Direction
}

// Advance records stepsMoved tiles of progress. Once the active segment is
// exhausted the next one becomes active, wrapping after the last.
func (p *Patrol) Advance(stepsMoved int) {
	if stepsMoved >= p.stepsLeft {
		p.index = (p.index + 1) % len(p.Segments)
		p.stepsLeft = p.Segments[p.index].Steps
		return
	}
	p.stepsLeft -= stepsMoved
}

// Clone returns an independent copy.
func (p *Patrol) Clone() *Patrol {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Segments = append([]PatrolSegment(nil), p.Segments...)
	return &clone
}
