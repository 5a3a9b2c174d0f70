package world

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/curzel-it/nokemon-sub001/internal/core"
)

// EntityState is the flattened state of one entity in a View.
type EntityState struct {
	ID        EntityID
	ParentID  EntityID
	SpeciesID uint32
	Frame     core.IntRect
	Direction core.Direction
	Hp        float64
	Lifespan  float64
	IsRigid   bool
}

// View is the read-only per-tick picture of a world that front ends and
// tests consume.
type View struct {
	WorldID  uint32
	Viewport core.IntRect
	Hero     HeroProps
	Entities []EntityState // Ascending id
	Visible  []EntityID
	Weights  *Grid[int]
}

// View captures the current state.
func (w *World) View() View {
	ids := w.SortedIDs()
	entities := make([]EntityState, 0, len(ids))
	for _, id := range ids {
		e := w.entities[id]
		entities = append(entities, EntityState{
			ID:        e.ID,
			ParentID:  e.ParentID,
			SpeciesID: uint32(e.SpeciesID),
			Frame:     e.Frame,
			Direction: e.Direction,
			Hp:        e.Hp,
			Lifespan:  e.Lifespan,
			IsRigid:   e.IsRigid,
		})
	}
	return View{
		WorldID:  w.id,
		Viewport: w.viewport,
		Hero:     w.hero,
		Entities: entities,
		Visible:  w.Visible(),
		Weights:  w.weights.Clone(),
	}
}

// Hash digests the entity table for determinism checks.
func (v View) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 8)
	write := func(n uint64) {
		binary.LittleEndian.PutUint64(buf, n)
		h.Write(buf) //nolint:errcheck // hash writes never fail
	}

	write(uint64(v.WorldID))
	for _, e := range v.Entities {
		write(uint64(e.ID))
		write(uint64(e.ParentID))
		write(uint64(e.SpeciesID))
		write(uint64(int64(e.Frame.X)))
		write(uint64(int64(e.Frame.Y)))
		write(uint64(e.Direction))
		write(math.Float64bits(e.Hp))
		write(math.Float64bits(e.Lifespan))
	}
	return h.Sum64()
}
