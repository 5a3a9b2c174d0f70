package world

// EntityID identifies an entity within a world. Ids are never reused while
// the entity is alive.
type EntityID uint32

const (
	// NoParent marks entities that were not spawned by another entity.
	NoParent EntityID = 0

	// HeroID is reserved for the player character.
	HeroID EntityID = 420
)

// IDAllocator mints monotonically increasing entity ids. Each world owns
// one; there is no process-wide counter.
type IDAllocator struct {
	next EntityID
}

// NewIDAllocator returns an allocator whose first id is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

// Next returns a fresh id. It never returns NoParent or HeroID.
func (a *IDAllocator) Next() EntityID {
	for {
		id := a.next
		a.next++
		if id != NoParent && id != HeroID {
			return id
		}
	}
}

// Observe records an id assigned elsewhere (for example by a level file)
// so that Next never hands it out again.
func (a *IDAllocator) Observe(id EntityID) {
	if id == HeroID {
		return
	}
	if id >= a.next {
		a.next = id + 1
	}
}
