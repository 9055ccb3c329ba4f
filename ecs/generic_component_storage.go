package ecs

import (
	"iter"
	"reflect"
	"sort"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage owns a reference to one registry; several storages may share it.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a component type with the given registry.
// This must be called for each component type before it can be stored.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	checkComponentType(t)
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// IsRegistered reports whether t has been registered.
func (r *ComponentRegistry) IsRegistered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// Types returns the registered component types sorted by name.
func (r *ComponentRegistry) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

func (r *ComponentRegistry) newStorage(t reflect.Type) iComponentStorage {
	factory := r.factories[t]
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

const (
	genericBlockSize = 64
)

// genericComponentStorage stores components of type T in fixed-size blocks.
// Indices are stable until Compact is called; freed slots are reused.
type genericComponentStorage[T any] struct {
	blocks    [][genericBlockSize]T
	filled    [][genericBlockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func (cs *genericComponentStorage[T]) slot(index int) (block, offset int, ok bool) {
	if index < 0 {
		return 0, 0, false
	}
	block, offset = index/genericBlockSize, index%genericBlockSize
	return block, offset, block < len(cs.blocks)
}

func unwrapComponent[T any](item any) (T, bool) {
	switch v := item.(type) {
	case T:
		return v, true
	case *T:
		if v != nil {
			return *v, true
		}
	}
	var zero T
	return zero, false
}

// Append adds a component to storage and returns its index, or -1 on a type mismatch.
func (cs *genericComponentStorage[T]) Append(item any) int {
	value, ok := unwrapComponent[T](item)
	if !ok {
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, [genericBlockSize]T{})
			cs.filled = append(cs.filled, [genericBlockSize]bool{})
		}
	}

	block, offset, _ := cs.slot(index)
	cs.blocks[block][offset] = value
	cs.filled[block][offset] = true
	cs.count++
	return index
}

// Set overwrites the component at index. It returns false when the slot is empty.
func (cs *genericComponentStorage[T]) Set(index int, item any) bool {
	block, offset, ok := cs.slot(index)
	if !ok || !cs.filled[block][offset] {
		return false
	}
	value, ok := unwrapComponent[T](item)
	if !ok {
		return false
	}
	cs.blocks[block][offset] = value
	return true
}

// Get returns a pointer to the component at the given index, or nil.
func (cs *genericComponentStorage[T]) Get(index int) any {
	block, offset, ok := cs.slot(index)
	if !ok || !cs.filled[block][offset] {
		return nil
	}
	return &cs.blocks[block][offset]
}

// Delete marks a component slot as empty and zeroes it.
func (cs *genericComponentStorage[T]) Delete(index int) {
	block, offset, ok := cs.slot(index)
	if !ok || !cs.filled[block][offset] {
		return
	}
	var zero T
	cs.filled[block][offset] = false
	cs.blocks[block][offset] = zero
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
}

// Has checks if a component exists at the given index.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	block, offset, ok := cs.slot(index)
	return ok && cs.filled[block][offset]
}

// Len returns the number of stored components.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}

// Compact packs live components to the front and returns the old->new index mapping.
func (cs *genericComponentStorage[T]) Compact() map[int]int {
	indexMap := make(map[int]int, cs.count)
	if cs.count == 0 {
		cs.blocks = nil
		cs.filled = nil
		cs.freeSlots = nil
		cs.nextIndex = 0
		return indexMap
	}

	numBlocks := (cs.count + genericBlockSize - 1) / genericBlockSize
	blocks := make([][genericBlockSize]T, numBlocks)
	filled := make([][genericBlockSize]bool, numBlocks)

	write := 0
	for read := range cs.Iter() {
		rb, ro, _ := cs.slot(read)
		wb, wo := write/genericBlockSize, write%genericBlockSize
		blocks[wb][wo] = cs.blocks[rb][ro]
		filled[wb][wo] = true
		indexMap[read] = write
		write++
	}

	cs.blocks = blocks
	cs.filled = filled
	cs.freeSlots = nil
	cs.nextIndex = write
	return indexMap
}

// Iter yields occupied indices in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			block, offset, ok := cs.slot(i)
			if !ok || !cs.filled[block][offset] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
