package ecs

import (
	"reflect"
	"sort"
)

// Resources is a table of singleton values keyed by their type. Each type has
// at most one live value; inserting again overwrites it in place, so pointers
// handed out by WriteResource stay valid across frames.
type Resources struct {
	items map[reflect.Type]any
}

// NewResources creates an empty resource table
func NewResources() *Resources {
	return &Resources{items: make(map[reflect.Type]any)}
}

// InsertResource stores value as the resource of type T, replacing any previous value.
func InsertResource[T any](r *Resources, value T) {
	t := reflect.TypeFor[T]()
	if existing, ok := r.items[t]; ok {
		*existing.(*T) = value
		return
	}
	boxed := new(T)
	*boxed = value
	r.items[t] = boxed
}

// HasResource reports whether a resource of type T has been inserted.
func HasResource[T any](r *Resources) bool {
	_, ok := r.items[reflect.TypeFor[T]()]
	return ok
}

// ReadResource returns a copy of the resource of type T.
// It panics if the resource was never inserted.
func ReadResource[T any](r *Resources) T {
	return *mustResource[T](r)
}

// WriteResource returns a pointer to the resource of type T.
// It panics if the resource was never inserted.
func WriteResource[T any](r *Resources) *T {
	return mustResource[T](r)
}

// RemoveResource deletes the resource of type T, reporting whether it existed.
func RemoveResource[T any](r *Resources) bool {
	t := reflect.TypeFor[T]()
	if _, ok := r.items[t]; !ok {
		return false
	}
	delete(r.items, t)
	return true
}

// Len returns the number of stored resources
func (r *Resources) Len() int {
	return len(r.items)
}

// Types returns the stored resource types sorted by name
func (r *Resources) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(r.items))
	for t := range r.items {
		types = append(types, t)
	}
	sort.Sort(byTypeName(types))
	return types
}

// Get returns a pointer to the resource of type t, or nil.
func (r *Resources) Get(t reflect.Type) any {
	return r.items[t]
}

func mustResource[T any](r *Resources) *T {
	item, ok := r.items[reflect.TypeFor[T]()]
	if !ok {
		panic("resource " + reflect.TypeFor[T]().String() + " was never inserted")
	}
	return item.(*T)
}

// Read is a system field granting read access to the resource of type T.
type Read[T any] struct {
	resources *Resources
}

// Init binds the field to a resource table. Called by the Scheduler during registration.
func (r *Read[T]) Init(storage *Storage) {
	r.resources = storage.Resources()
}

// Get returns the current value. It panics if the resource was never inserted.
func (r *Read[T]) Get() T {
	return ReadResource[T](r.resources)
}

// Exists reports whether the resource has been inserted
func (r *Read[T]) Exists() bool {
	return r.resources != nil && HasResource[T](r.resources)
}

func (r *Read[T]) access() Access {
	return Access{ReadResources: []reflect.Type{reflect.TypeFor[T]()}}
}

// Write is a system field granting exclusive write access to the resource of type T.
type Write[T any] struct {
	resources *Resources
}

// Init binds the field to a resource table. Called by the Scheduler during registration.
func (w *Write[T]) Init(storage *Storage) {
	w.resources = storage.Resources()
}

// Get returns a pointer to the resource. It panics if the resource was never inserted.
func (w *Write[T]) Get() *T {
	return WriteResource[T](w.resources)
}

// Exists reports whether the resource has been inserted
func (w *Write[T]) Exists() bool {
	return w.resources != nil && HasResource[T](w.resources)
}

func (w *Write[T]) access() Access {
	return Access{WriteResources: []reflect.Type{reflect.TypeFor[T]()}}
}
