package ecs

import (
	"reflect"
	"sort"
	"sync"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// entityLocation records where a live entity's components are stored
type entityLocation struct {
	archetype *Archetype
	row       int
}

// Storage is the main ECS storage: entity registry, archetype tables and the
// resource table, with structural changes deferred until Maintain.
type Storage struct {
	registry   *ComponentRegistry
	poolMu     sync.RWMutex
	pool       *entityPool
	archetypes map[uint32]*Archetype
	ordered    []*Archetype
	locations  *intmap.Map[EntityId, entityLocation]
	commands   *Commands
	resources  *Resources
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		pool:       newEntityPool(),
		archetypes: make(map[uint32]*Archetype),
		locations:  intmap.New[EntityId, entityLocation](256),
		commands:   newCommands(),
		resources:  NewResources(),
	}
}

// Registry returns the component registry backing this storage
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Resources returns the resource table owned by this storage
func (s *Storage) Resources() *Resources {
	return s.resources
}

// Commands returns the pending structural change buffer applied by Maintain
func (s *Storage) Commands() *Commands {
	return s.commands
}

// CreateEntity starts building a new entity. The entity becomes live at the next Maintain.
func (s *Storage) CreateEntity() *EntityBuilder {
	return s.commands.CreateEntity(s)
}

// DestroyEntity queues removal of the entity and all of its components.
func (s *Storage) DestroyEntity(id EntityId) {
	s.commands.Delete(id)
}

// AddComponent queues attaching (or replacing) a component on a live entity.
func (s *Storage) AddComponent(id EntityId, component any) {
	s.commands.AddComponent(id, component)
}

// RemoveComponent queues detaching a component type from a live entity.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) {
	s.commands.RemoveComponent(id, compType)
}

// Maintain applies every queued structural change. It must not be called
// while a system is running.
func (s *Storage) Maintain() {
	s.commands.Flush(s)
}

// Alive reports whether the id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	s.poolMu.RLock()
	defer s.poolMu.RUnlock()
	return s.pool.isAlive(id)
}

// EntityCount returns the number of live entities
func (s *Storage) EntityCount() int {
	s.poolMu.RLock()
	defer s.poolMu.RUnlock()
	return s.pool.live
}

// reserve allocates an id for an entity that is not yet live.
func (s *Storage) reserve() EntityId {
	s.poolMu.Lock()
	defer s.poolMu.Unlock()
	return s.pool.reserve()
}

// GetArchetypes returns all archetypes in creation order
func (s *Storage) GetArchetypes() []*Archetype {
	return s.ordered
}

// GetArchetypeById returns the archetype with the given id, or nil
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// GetArchetype returns the archetype holding exactly the given component values' types, or nil
func (s *Storage) GetArchetype(components ...any) *Archetype {
	return s.archetypes[hashTypesToUint32(extractComponentTypes(components))]
}

// GetArchetypeByTypes returns the archetype for the given types, or nil
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := append([]reflect.Type(nil), types...)
	sort.Sort(byTypeName(sorted))
	return s.archetypes[hashTypesToUint32(sorted)]
}

// EntityArchetype returns the archetype of a live entity
func (s *Storage) EntityArchetype(id EntityId) (*Archetype, bool) {
	loc, ok := s.locate(id)
	if !ok {
		return nil, false
	}
	return loc.archetype, true
}

// GetComponent returns a pointer to the entity's component of compType.
// The second result is false when the entity is not live or lacks the component.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) (any, bool) {
	loc, ok := s.locate(id)
	if !ok {
		return nil, false
	}
	c := loc.archetype.component(loc.row, compType)
	return c, c != nil
}

// HasComponent checks if a live entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	loc, ok := s.locate(id)
	return ok && loc.archetype.HasComponent(compType)
}

// Compact compacts every archetype and rewrites entity locations.
// Call it between frames only.
func (s *Storage) Compact() {
	for _, archetype := range s.ordered {
		for oldRow, newRow := range archetype.compact() {
			if oldRow == newRow {
				continue
			}
			id := archetype.entities[newRow]
			s.locations.Put(id, entityLocation{archetype: archetype, row: newRow})
		}
	}
}

func (s *Storage) locate(id EntityId) (entityLocation, bool) {
	if !s.Alive(id) {
		return entityLocation{}, false
	}
	return s.locations.Get(id)
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	archetypeId := hashTypesToUint32(types)
	archetype, exists := s.archetypes[archetypeId]
	if !exists {
		archetype = newArchetype(archetypeId, types, s.registry)
		s.archetypes[archetypeId] = archetype
		s.ordered = append(s.ordered, archetype)
	}
	return archetype
}

// activate places a reserved entity into the archetype for its components.
func (s *Storage) activate(id EntityId, components []any) bool {
	s.poolMu.Lock()
	ok := s.pool.activate(id)
	s.poolMu.Unlock()
	if !ok {
		return false
	}
	components = dedupeComponents(components)
	archetype := s.archetypeFor(extractComponentTypes(components))
	row := archetype.spawn(id, components)
	s.locations.Put(id, entityLocation{archetype: archetype, row: row})
	return true
}

// destroy removes a live entity immediately. Reserved ids are released too.
func (s *Storage) destroy(id EntityId) bool {
	if loc, ok := s.locate(id); ok {
		loc.archetype.remove(loc.row)
		s.locations.Del(id)
	}
	s.poolMu.Lock()
	defer s.poolMu.Unlock()
	return s.pool.release(id)
}

// move rebuilds the entity in the archetype matching components.
func (s *Storage) move(id EntityId, loc entityLocation, components []any) {
	archetype := s.archetypeFor(extractComponentTypes(components))
	// copy values out before the old row is reused
	values := make([]any, len(components))
	for i, c := range components {
		if v := reflect.ValueOf(c); v.Kind() == reflect.Ptr {
			values[i] = v.Elem().Interface()
		} else {
			values[i] = c
		}
	}
	loc.archetype.remove(loc.row)
	row := archetype.spawn(id, values)
	s.locations.Put(id, entityLocation{archetype: archetype, row: row})
}

// attach adds or replaces a component on a live entity immediately.
func (s *Storage) attach(id EntityId, component any) bool {
	loc, ok := s.locate(id)
	if !ok {
		return false
	}
	compType := componentType(component)
	if idx := loc.archetype.typeIndex(compType); idx != -1 {
		return loc.archetype.storages[idx].Set(loc.row, component)
	}
	components := append(loc.archetype.components(loc.row), component)
	s.move(id, loc, components)
	return true
}

// detach removes a component type from a live entity immediately.
func (s *Storage) detach(id EntityId, compType reflect.Type) bool {
	loc, ok := s.locate(id)
	if !ok || !loc.archetype.HasComponent(compType) {
		return false
	}
	current := loc.archetype.components(loc.row)
	kept := current[:0]
	for _, c := range current {
		if componentType(c) != compType {
			kept = append(kept, c)
		}
	}
	s.move(id, loc, kept)
	return true
}

// componentType returns the component type of a value or pointer to value
func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType
}

func checkComponentType(compType reflect.Type) {
	switch compType.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("components cannot be pointers, maps, channels, functions or interfaces: " + compType.String())
	}
}

// dedupeComponents keeps the last value given for each component type
func dedupeComponents(components []any) []any {
	seen := make(map[reflect.Type]int, len(components))
	out := make([]any, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		if i, ok := seen[t]; ok {
			out[i] = comp
			continue
		}
		seen[t] = len(out)
		out = append(out, comp)
	}
	return out
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)
		checkComponentType(compType)
		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		ptr := (*iface)(unsafe.Pointer(&t)).data
		val := uint32(uintptr(ptr))
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uintptr(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}

	return h
}

// ComponentReader is anything that can look up an entity's component by type
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) (any, bool)
}

// ReadComponent returns a typed pointer to the entity's component, or false when absent
func ReadComponent[T any](reader ComponentReader, entityId EntityId) (*T, bool) {
	c, ok := reader.GetComponent(entityId, reflect.TypeFor[T]())
	if !ok {
		return nil, false
	}
	return c.(*T), true
}
