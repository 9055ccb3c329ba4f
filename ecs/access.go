package ecs

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
)

// Access lists the component stores and resources a system reads or writes.
// A type listed as both read and written counts as written.
type Access struct {
	ReadComponents  []reflect.Type
	WriteComponents []reflect.Type
	ReadResources   []reflect.Type
	WriteResources  []reflect.Type
}

// AccessDeclarer may be implemented by a system to declare access that its
// Query, Read and Write fields do not already cover.
type AccessDeclarer interface {
	Access() Access
}

// accessor is implemented by system field types that carry access.
type accessor interface {
	access() Access
}

// TypesOf returns the dynamic types of values, for building an Access by example.
func TypesOf(values ...any) []reflect.Type {
	types := make([]reflect.Type, len(values))
	for i, v := range values {
		types[i] = reflect.TypeOf(v)
	}
	return types
}

// Merge returns the union of a and b.
func (a Access) Merge(b Access) Access {
	return Access{
		ReadComponents:  unionTypes(a.ReadComponents, b.ReadComponents),
		WriteComponents: unionTypes(a.WriteComponents, b.WriteComponents),
		ReadResources:   unionTypes(a.ReadResources, b.ReadResources),
		WriteResources:  unionTypes(a.WriteResources, b.WriteResources),
	}
}

// Conflicts returns a description of every store or resource that a and b
// cannot hold at the same time. An empty result means they may run concurrently.
func (a Access) Conflicts(b Access) []string {
	var out []string
	out = appendConflicts(out, "component", a.WriteComponents, b.WriteComponents, b.ReadComponents)
	out = appendConflicts(out, "component", b.WriteComponents, nil, without(a.ReadComponents, a.WriteComponents))
	out = appendConflicts(out, "resource", a.WriteResources, b.WriteResources, b.ReadResources)
	out = appendConflicts(out, "resource", b.WriteResources, nil, without(a.ReadResources, a.WriteResources))
	return out
}

// ConflictsWith reports whether a and b have a read/write or write/write overlap.
func (a Access) ConflictsWith(b Access) bool {
	return len(a.Conflicts(b)) > 0
}

// Writes reports whether the access includes writing t, as a component or resource.
func (a Access) Writes(t reflect.Type) bool {
	return slices.Contains(a.WriteComponents, t) || slices.Contains(a.WriteResources, t)
}

// Reads reports whether the access includes reading (or writing) t.
func (a Access) Reads(t reflect.Type) bool {
	return a.Writes(t) || slices.Contains(a.ReadComponents, t) || slices.Contains(a.ReadResources, t)
}

func (a Access) String() string {
	var parts []string
	add := func(label string, types []reflect.Type) {
		for _, t := range types {
			parts = append(parts, label+" "+t.String())
		}
	}
	add("read", without(a.ReadComponents, a.WriteComponents))
	add("write", a.WriteComponents)
	add("read res", without(a.ReadResources, a.WriteResources))
	add("write res", a.WriteResources)
	return "[" + strings.Join(parts, ", ") + "]"
}

func appendConflicts(out []string, kind string, writes, otherWrites, otherReads []reflect.Type) []string {
	for _, t := range writes {
		switch {
		case slices.Contains(otherWrites, t):
			out = append(out, fmt.Sprintf("write/write on %s %s", kind, t))
		case slices.Contains(otherReads, t):
			out = append(out, fmt.Sprintf("read/write on %s %s", kind, t))
		}
	}
	return out
}

func unionTypes(a, b []reflect.Type) []reflect.Type {
	out := slices.Clone(a)
	for _, t := range b {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func without(types, remove []reflect.Type) []reflect.Type {
	out := make([]reflect.Type, 0, len(types))
	for _, t := range types {
		if !slices.Contains(remove, t) {
			out = append(out, t)
		}
	}
	return out
}

type borrowKey struct {
	resource bool
	typ      reflect.Type
}

// borrowTracker records the access held by running systems and panics when
// two holders would conflict.
type borrowTracker struct {
	mu      sync.Mutex
	readers map[borrowKey]int
	writers map[borrowKey]string
}

func newBorrowTracker() *borrowTracker {
	return &borrowTracker{
		readers: make(map[borrowKey]int),
		writers: make(map[borrowKey]string),
	}
}

func (b *borrowTracker) acquire(holder string, a Access) {
	b.mu.Lock()
	defer b.mu.Unlock()

	reads, writes := borrowKeys(a)
	for _, k := range writes {
		if other, ok := b.writers[k]; ok {
			panic(fmt.Sprintf("ecs: %s cannot write %s while %s writes it", holder, k.typ, other))
		}
		if b.readers[k] > 0 {
			panic(fmt.Sprintf("ecs: %s cannot write %s while it is being read", holder, k.typ))
		}
	}
	for _, k := range reads {
		if other, ok := b.writers[k]; ok {
			panic(fmt.Sprintf("ecs: %s cannot read %s while %s writes it", holder, k.typ, other))
		}
	}
	for _, k := range writes {
		b.writers[k] = holder
	}
	for _, k := range reads {
		b.readers[k]++
	}
}

func (b *borrowTracker) release(a Access) {
	b.mu.Lock()
	defer b.mu.Unlock()

	reads, writes := borrowKeys(a)
	for _, k := range writes {
		delete(b.writers, k)
	}
	for _, k := range reads {
		if b.readers[k]--; b.readers[k] <= 0 {
			delete(b.readers, k)
		}
	}
}

func borrowKeys(a Access) (reads, writes []borrowKey) {
	for _, t := range a.WriteComponents {
		writes = append(writes, borrowKey{typ: t})
	}
	for _, t := range a.WriteResources {
		writes = append(writes, borrowKey{resource: true, typ: t})
	}
	for _, t := range without(a.ReadComponents, a.WriteComponents) {
		reads = append(reads, borrowKey{typ: t})
	}
	for _, t := range without(a.ReadResources, a.WriteResources) {
		reads = append(reads, borrowKey{resource: true, typ: t})
	}
	return reads, writes
}
