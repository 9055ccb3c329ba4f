package ecs

import (
	"reflect"
	"slices"
	"unsafe"
)

// byTypeName orders types by printed name, then package path, then type
// identity, so distinct types sharing a name still sort the same way
// regardless of input order.
type byTypeName []reflect.Type

func (a byTypeName) Len() int      { return len(a) }
func (a byTypeName) Swap(i, j int) { a[i], a[j] = a[j], a[i] }

func (a byTypeName) Less(i, j int) bool {
	if ni, nj := a[i].String(), a[j].String(); ni != nj {
		return ni < nj
	}
	if pi, pj := a[i].PkgPath(), a[j].PkgPath(); pi != pj {
		return pi < pj
	}
	return typeAddr(a[i]) < typeAddr(a[j])
}

func typeAddr(t reflect.Type) uintptr {
	return uintptr((*iface)(unsafe.Pointer(&t)).data)
}

// Archetype holds every entity with one exact combination of component types.
// All of its storages grow and shrink in lockstep, so a row index addresses
// the same entity in each of them.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	entities []EntityId
	count    int
}

// newArchetype creates an archetype for the given sorted component types
func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
	}
	for idx, typ := range types {
		a.storages[idx] = registry.newStorage(typ)
	}
	return a
}

// spawn appends one row holding the entity's components. components must
// contain exactly one value per archetype type, in any order.
func (a *Archetype) spawn(id EntityId, components []any) int {
	row := -1
	if len(a.types) == 0 {
		row = a.nextEmptyRow()
	}
	for _, comp := range components {
		idx := a.typeIndex(componentType(comp))
		if idx == -1 {
			panic("component " + componentType(comp).String() + " does not belong to archetype")
		}
		row = a.storages[idx].Append(comp)
	}
	for len(a.entities) <= row {
		a.entities = append(a.entities, 0)
	}
	a.entities[row] = id
	a.count++
	return row
}

// nextEmptyRow allocates a row for the component-less archetype, which has no
// storages to pick indices for it.
func (a *Archetype) nextEmptyRow() int {
	for row, id := range a.entities {
		if id == 0 {
			return row
		}
	}
	return len(a.entities)
}

func (a *Archetype) typeIndex(t reflect.Type) int {
	for i, typ := range a.types {
		if typ == t {
			return i
		}
	}
	return -1
}

// component returns a pointer to the component of type t in row, or nil.
func (a *Archetype) component(row int, t reflect.Type) any {
	idx := a.typeIndex(t)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(row)
}

// components returns pointers to every component stored in row.
func (a *Archetype) components(row int) []any {
	out := make([]any, 0, len(a.storages))
	for _, storage := range a.storages {
		if c := storage.Get(row); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// remove clears the row in every storage.
func (a *Archetype) remove(row int) {
	if row < 0 || row >= len(a.entities) || a.entities[row] == 0 {
		return
	}
	for _, storage := range a.storages {
		storage.Delete(row)
	}
	a.entities[row] = 0
	a.count--
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of entities in the archetype
func (a *Archetype) Len() int {
	return a.count
}

// compact removes empty rows and returns the rows that moved.
func (a *Archetype) compact() map[int]int {
	if len(a.storages) == 0 {
		moved := make(map[int]int)
		entities := make([]EntityId, 0, a.count)
		for row, id := range a.entities {
			if id != 0 {
				moved[row] = len(entities)
				entities = append(entities, id)
			}
		}
		a.entities = entities
		return moved
	}

	indexMap := a.storages[0].Compact()
	for i := 1; i < len(a.storages); i++ {
		a.storages[i].Compact()
	}

	entities := make([]EntityId, len(indexMap))
	for oldRow, newRow := range indexMap {
		entities[newRow] = a.entities[oldRow]
	}
	a.entities = entities
	return indexMap
}

// Iter returns an iterator over the live entities of this archetype, in row order
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		for _, id := range a.entities {
			if id == 0 {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// rows yields (row, id) pairs for live entities.
func (a *Archetype) rows() func(yield func(int, EntityId) bool) {
	return func(yield func(int, EntityId) bool) {
		for row, id := range a.entities {
			if id == 0 {
				continue
			}
			if !yield(row, id) {
				return
			}
		}
	}
}
