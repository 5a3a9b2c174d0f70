package world

import (
	"sort"

	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/maps"
	"github.com/curzel-it/nokemon-sub001/internal/species"
)

// Grid is a row-major per-tile table sized like the world.
// Reads outside the grid return the zero value.
type Grid[T any] struct {
	rows, cols int
	cells      []T
}

// NewGrid allocates a rows x cols grid of zero values.
func NewGrid[T any](rows, cols int) *Grid[T] {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid[T]{rows: rows, cols: cols, cells: make([]T, rows*cols)}
}

// Rows returns the number of rows.
func (g *Grid[T]) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid[T]) Cols() int { return g.cols }

// InBounds reports whether (row, col) addresses a cell.
func (g *Grid[T]) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the cell at (row, col).
func (g *Grid[T]) At(row, col int) T {
	if !g.InBounds(row, col) {
		var zero T
		return zero
	}
	return g.cells[row*g.cols+col]
}

// Set writes the cell at (row, col); out-of-bounds writes are dropped.
func (g *Grid[T]) Set(row, col int, value T) {
	if g.InBounds(row, col) {
		g.cells[row*g.cols+col] = value
	}
}

// Update rewrites the cell at (row, col) through fn.
func (g *Grid[T]) Update(row, col int, fn func(T) T) {
	if g.InBounds(row, col) {
		i := row*g.cols + col
		g.cells[i] = fn(g.cells[i])
	}
}

// Clone returns an independent copy.
func (g *Grid[T]) Clone() *Grid[T] {
	return &Grid[T]{rows: g.rows, cols: g.cols, cells: append([]T(nil), g.cells...)}
}

// footprint is the part of frame that occupies the ground: the single row
// of a one-tile-tall frame, otherwise every row but the topmost.
func footprint(frame core.IntRect) core.IntRect {
	if frame.H <= 1 {
		return frame
	}
	return core.NewIntRect(frame.X, frame.Y+1, frame.W, frame.H-1)
}

// eachFootprintCell calls fn for every in-bounds cell of the footprint.
func eachFootprintCell(frame core.IntRect, rows, cols int, fn func(row, col int)) {
	fp := footprint(frame)
	for row := max(fp.Y, 0); row < min(fp.Bottom(), rows); row++ {
		for col := max(fp.X, 0); col < min(fp.Right(), cols); col++ {
			fn(row, col)
		}
	}
}

// ComputeVisibleEntities returns, in ascending order, the ids of entities
// whose frame overlaps viewport, edges included. The hero is always visible.
func ComputeVisibleEntities(entities map[EntityID]*Entity, viewport core.IntRect) []EntityID {
	visible := make([]EntityID, 0, len(entities))
	for id, e := range entities {
		if id == HeroID || e.Frame.Touches(viewport) {
			visible = append(visible, id)
		}
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i] < visible[j] })
	return visible
}

// isOnFloor reports whether e lies flat on the ground, like plates and
// hints, or flies over it, like bullets.
func isOnFloor(e *Entity) bool {
	switch e.Kind {
	case species.KindPressurePlate, species.KindBullet, species.KindHint:
		return true
	}
	return false
}

// isWeightBearing reports whether e presses on the tiles it stands on.
func isWeightBearing(e *Entity) bool {
	return !isOnFloor(e) && e.SpeciesID != species.DeepHole
}

// ComputeWeightMap counts, per tile, the weight-bearing visible entities
// whose footprint covers it.
func ComputeWeightMap(entities map[EntityID]*Entity, visible []EntityID, rows, cols int) *Grid[int] {
	weights := NewGrid[int](rows, cols)
	for _, id := range visible {
		e, ok := entities[id]
		if !ok || !isWeightBearing(e) {
			continue
		}
		eachFootprintCell(e.Frame, rows, cols, func(row, col int) {
			weights.Update(row, col, func(n int) int { return n + 1 })
		})
	}
	return weights
}

// ComputeOccupancy builds the hitmap and the ids map of the visible
// entities. The hitmap starts from the tile obstacles and adds the
// footprint of every rigid entity except the hero. In the ids map rigid
// entities win over non-rigid ones sharing a tile; floor entities are
// left out.
func ComputeOccupancy(
	entities map[EntityID]*Entity,
	visible []EntityID,
	biome *maps.TileSet[maps.BiomeTile],
	constructions *maps.TileSet[maps.ConstructionTile],
	rows, cols int,
) (*Grid[bool], *Grid[EntityID]) {
	hitmap := NewGrid[bool](rows, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if maps.IsObstacleAt(biome, constructions, row, col) {
				hitmap.Set(row, col, true)
			}
		}
	}

	ids := NewGrid[EntityID](rows, cols)
	for _, rigidPass := range []bool{false, true} {
		for _, id := range visible {
			e, ok := entities[id]
			if !ok || isOnFloor(e) || e.IsRigid != rigidPass {
				continue
			}
			eachFootprintCell(e.Frame, rows, cols, func(row, col int) {
				ids.Set(row, col, id)
				if e.IsRigid && id != HeroID {
					hitmap.Set(row, col, true)
				}
			})
		}
	}
	return hitmap, ids
}
