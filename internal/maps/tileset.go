// Package maps holds the tile layers of a world: the biome ground layer and
// the constructions layer drawn on top of it.
package maps

import "github.com/curzel-it/nokemon-sub001/internal/sprites"

// BiomeNumberOfFrames is the number of texture variants every biome cycles through.
const BiomeNumberOfFrames = 4

// TileSet is a row-major grid of tiles drawn from one sprite sheet, plus a
// clock for the texture variant shared by every tile of the layer.
type TileSet[T any] struct {
	SheetID uint32
	Tiles   [][]T
	variant sprites.TimedContentProvider[int]
}

// NewTileSet creates a layer over tiles. variantsFPS drives the variant clock.
func NewTileSet[T any](sheetID uint32, tiles [][]T, variantsFPS float64) *TileSet[T] {
	frames := make([]int, BiomeNumberOfFrames)
	for i := range frames {
		frames[i] = i
	}
	return &TileSet[T]{
		SheetID: sheetID,
		Tiles:   tiles,
		variant: sprites.NewTimedContentProvider(frames, variantsFPS),
	}
}

// Rows returns the number of rows.
func (s *TileSet[T]) Rows() int {
	return len(s.Tiles)
}

// Cols returns the number of columns of the first row, 0 for an empty set.
func (s *TileSet[T]) Cols() int {
	if len(s.Tiles) == 0 {
		return 0
	}
	return len(s.Tiles[0])
}

// InBounds reports whether (row, col) addresses a tile.
func (s *TileSet[T]) InBounds(row, col int) bool {
	return row >= 0 && row < len(s.Tiles) && col >= 0 && col < len(s.Tiles[row])
}

// At returns the tile at (row, col).
func (s *TileSet[T]) At(row, col int) (T, bool) {
	if !s.InBounds(row, col) {
		var zero T
		return zero, false
	}
	return s.Tiles[row][col], true
}

// Set replaces the tile at (row, col). It returns false, leaving the set
// untouched, when the address is out of bounds.
func (s *TileSet[T]) Set(row, col int, tile T) bool {
	if !s.InBounds(row, col) {
		return false
	}
	s.Tiles[row][col] = tile
	return true
}

// Update advances the variant clock.
func (s *TileSet[T]) Update(dt float64) {
	s.variant.Update(dt)
}

// CurrentVariant returns the texture variant all tiles should be drawn with.
func (s *TileSet[T]) CurrentVariant() int {
	return s.variant.CurrentFrame()
}
