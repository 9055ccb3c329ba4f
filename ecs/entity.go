package ecs

import "strconv"

// EntityId encodes the entity index (lower 32 bits) and the slot generation (upper 32 bits).
// Generations start at 1, so the zero EntityId never names an entity.
type EntityId uint64

// NewEntityId creates an EntityId from an entity index and generation
func NewEntityId(index uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Index extracts the entity index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// IsZero reports whether the id is the reserved "no entity" value
func (e EntityId) IsZero() bool {
	return e == 0
}

// String formats the id as index:generation.
func (e EntityId) String() string {
	return strconv.FormatUint(uint64(e.Index()), 10) + ":" + strconv.FormatUint(uint64(e.Generation()), 10)
}

// entityPool allocates generational entity ids and recycles freed indices.
type entityPool struct {
	generations []uint32
	alive       []bool
	freeList    []uint32
	live        int
}

func newEntityPool() *entityPool {
	return &entityPool{
		generations: make([]uint32, 0, 1024),
		alive:       make([]bool, 0, 1024),
		freeList:    make([]uint32, 0, 256),
	}
}

// reserve hands out an id that is not alive until activate is called.
func (p *entityPool) reserve() EntityId {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewEntityId(idx, p.generations[idx])
	}
	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 1)
	p.alive = append(p.alive, false)
	return NewEntityId(idx, 1)
}

func (p *entityPool) activate(id EntityId) bool {
	idx := id.Index()
	if int(idx) >= len(p.generations) || p.generations[idx] != id.Generation() || p.alive[idx] {
		return false
	}
	p.alive[idx] = true
	p.live++
	return true
}

func (p *entityPool) isAlive(id EntityId) bool {
	idx := id.Index()
	if int(idx) >= len(p.generations) {
		return false
	}
	return p.alive[idx] && p.generations[idx] == id.Generation()
}

// release invalidates id and returns its index to the free list.
// Reserved ids that were never activated may be released as well.
func (p *entityPool) release(id EntityId) bool {
	idx := id.Index()
	if int(idx) >= len(p.generations) || p.generations[idx] != id.Generation() {
		return false
	}
	if p.alive[idx] {
		p.live--
	}
	p.alive[idx] = false
	p.generations[idx]++
	if p.generations[idx] == 0 {
		p.generations[idx] = 1
	}
	p.freeList = append(p.freeList, idx)
	return true
}
