package ecs

import (
	"iter"
	"reflect"
	"strings"
	"unsafe"
)

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

var entityIdType = reflect.TypeFor[EntityId]()

// View joins component stores over a struct type T.
// Each field of T is either a pointer to a component type or an EntityId,
// which receives the id of the entity being visited. Component fields accept
// an `ecs` struct tag with comma separated options:
//
//	optional  the entity need not have the component; the field is nil when absent
//	write     the holder mutates the component (used for scheduler access checks)
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	write       []bool
	fieldOffset []uintptr
	idOffsets   []uintptr
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffsets = append(v.idOffsets, field.Offset)
			continue
		}
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId: " + field.Name)
		}

		isOptional, isWrite := parseViewTag(field.Tag.Get("ecs"))
		if field.Anonymous && isOptional {
			panic("embedded View fields cannot be optional: " + field.Name)
		}

		v.types = append(v.types, field.Type.Elem())
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		v.optional = append(v.optional, isOptional)
		v.write = append(v.write, isWrite)
	}

	return v
}

func parseViewTag(tag string) (optional, write bool) {
	if tag == "" {
		return false, false
	}
	for _, opt := range strings.Split(tag, ",") {
		switch strings.TrimSpace(opt) {
		case "optional":
			optional = true
		case "write":
			write = true
		default:
			panic("invalid ecs tag value: \"" + tag + "\" (supported: \"optional\", \"write\")")
		}
	}
	return optional, write
}

// Access returns the component access implied by the view's fields.
func (v *View[T]) Access() Access {
	var a Access
	for i, t := range v.types {
		if v.write[i] {
			a.WriteComponents = append(a.WriteComponents, t)
		} else {
			a.ReadComponents = append(a.ReadComponents, t)
		}
	}
	return a
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is not live or is missing any required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	loc, ok := v.storage.locate(id)
	if !ok {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), loc.archetype, loc.row, id, v.storageIndices(loc.archetype))
}

// Get returns a populated view struct for the given entity, or false if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) (T, bool) {
	var result T
	ok := v.Fill(id, &result)
	return result, ok
}

// matches checks if an archetype contains all the required component types for this view
func (v *View[T]) matches(archetype *Archetype) bool {
	for i, t := range v.types {
		if !v.optional[i] && !archetype.HasComponent(t) {
			return false
		}
	}
	return true
}

func (v *View[T]) storageIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, t := range v.types {
		indices[i] = archetype.typeIndex(t)
	}
	return indices
}

func (v *View[T]) populate(resultPtr unsafe.Pointer, archetype *Archetype, row int, id EntityId, indices []int) bool {
	for _, off := range v.idOffsets {
		*(*EntityId)(unsafe.Add(resultPtr, off)) = id
	}

	for i, storageIdx := range indices {
		fieldPtr := unsafe.Add(resultPtr, v.fieldOffset[i])

		var component any
		if storageIdx != -1 {
			component = archetype.storages[storageIdx].Get(row)
		}
		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

// Iter returns an iterator over all live entities that have the view's required components.
// Archetypes are visited in creation order and rows in ascending order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.ordered {
			if !v.matches(archetype) {
				continue
			}
			if !v.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

func (v *View[T]) iterArchetype(archetype *Archetype, yield func(EntityId, T) bool) bool {
	indices := v.storageIndices(archetype)

	var result T
	resultPtr := unsafe.Pointer(&result)

	for row, id := range archetype.rows() {
		if !v.populate(resultPtr, archetype, row, id, indices) {
			continue
		}
		if !yield(id, result) {
			return false
		}
	}
	return true
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of entities the view currently matches
func (v *View[T]) Count() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}

// Build queues creation of an entity holding the components referenced by data.
// Nil optional fields are skipped; a nil required field panics.
func (v *View[T]) Build(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	builder := v.storage.CreateEntity()
	for i, t := range v.types {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))
		if componentPtr == nil {
			if !v.optional[i] {
				panic("required component " + t.String() + " is nil in View.Build")
			}
			continue
		}
		builder.With(reflect.NewAt(t, componentPtr).Elem().Interface())
	}
	return builder.Build()
}
