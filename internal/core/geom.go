// Package core provides fundamental types and utilities shared by the game
// simulation and its front ends. It contains no external dependencies
// (especially no Bubble Tea) to keep world logic pure and testable.
package core

import "math"

// IntRect is an axis-aligned rectangle in tile units.
type IntRect struct {
	X, Y int // Top-left tile
	W, H int // Width and height in tiles
}

// NewIntRect creates a new rectangle with the given position and dimensions.
func NewIntRect(x, y, w, h int) IntRect {
	return IntRect{X: x, Y: y, W: w, H: h}
}

// SquareFromOrigin returns a size x size rectangle anchored at (0, 0).
func SquareFromOrigin(size int) IntRect {
	return IntRect{W: size, H: size}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r IntRect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r IntRect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Rectangles that only share an edge do not intersect.
func (r IntRect) Intersects(other IntRect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Touches is the closed-interval variant of Intersects: rectangles sharing
// an edge are considered overlapping.
func (r IntRect) Touches(other IntRect) bool {
	return r.Bottom() >= other.Y && r.Y <= other.Bottom() &&
		r.Right() >= other.X && r.X <= other.Right()
}

// Contains returns true if the tile (x, y) is inside this rectangle.
func (r IntRect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center tile of the rectangle.
func (r IntRect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Offset returns a copy moved by (dx, dy).
func (r IntRect) Offset(dx, dy int) IntRect {
	return IntRect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// WithH returns a copy with the given height.
func (r IntRect) WithH(h int) IntRect {
	r.H = h
	return r
}

// Vector2d is a sub-tile offset or velocity.
type Vector2d struct {
	X, Y float64
}

// NewVector2d creates a vector.
func NewVector2d(x, y float64) Vector2d {
	return Vector2d{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2d) Add(o Vector2d) Vector2d {
	return Vector2d{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * k.
func (v Vector2d) Scale(k float64) Vector2d {
	return Vector2d{X: v.X * k, Y: v.Y * k}
}

// IsZero reports whether both components are zero.
func (v Vector2d) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// WholeTiles truncates a sub-tile offset towards zero, so that an offset of
// 1.7 yields one full tile and -1.7 yields minus one.
func WholeTiles(v float64) int {
	if v >= 0 {
		return int(math.Floor(v))
	}
	return int(math.Ceil(v))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
