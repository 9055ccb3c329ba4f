package debugui

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/plus3/hearth/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// Entity browser sort columns.
const (
	SortByID = iota
	SortByArchetype
	SortByComponents
	SortByCount
)

// CollectEntities lists every live entity, grouped by archetype in creation order.
func CollectEntities(storage *ecs.Storage) []EntityInfo {
	var entities []EntityInfo
	for _, archetype := range storage.GetArchetypes() {
		names := typeNames(archetype.Types())
		for id := range archetype.Iter() {
			entities = append(entities, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: names,
			})
		}
	}
	return entities
}

func typeNames(types []reflect.Type) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}

// SortEntities orders entities in place by the given column.
func SortEntities(entities []EntityInfo, column int, ascending bool) {
	slices.SortStableFunc(entities, func(a, b EntityInfo) int {
		var c int
		switch column {
		case SortByArchetype:
			c = cmp.Compare(a.ArchetypeID, b.ArchetypeID)
		case SortByComponents:
			c = cmp.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case SortByCount:
			c = cmp.Compare(len(a.ComponentTypes), len(b.ComponentTypes))
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

// FilterEntities keeps the entities whose id, archetype or component names
// contain filter, case-insensitively. An empty filter keeps everything.
func FilterEntities(entities []EntityInfo, filter string) []EntityInfo {
	if filter == "" {
		return entities
	}
	filter = strings.ToLower(filter)

	filtered := make([]EntityInfo, 0, len(entities))
	for _, e := range entities {
		if strings.Contains(e.ID.String(), filter) ||
			strings.Contains(fmt.Sprintf("0x%x", e.ArchetypeID), filter) ||
			strings.Contains(strings.ToLower(strings.Join(e.ComponentTypes, " ")), filter) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// QueryMatch is an archetype holding every queried component type.
type QueryMatch struct {
	ArchetypeID    uint32
	ComponentTypes []string
	EntityCount    int
}

// MatchArchetypes returns the archetypes a view over types would visit, and
// the total number of entities in them.
func MatchArchetypes(storage *ecs.Storage, types []reflect.Type) ([]QueryMatch, int) {
	var matches []QueryMatch
	total := 0
	for _, archetype := range storage.GetArchetypes() {
		if !hasAll(archetype, types) {
			continue
		}
		matches = append(matches, QueryMatch{
			ArchetypeID:    archetype.ID(),
			ComponentTypes: typeNames(archetype.Types()),
			EntityCount:    archetype.Len(),
		})
		total += archetype.Len()
	}
	return matches, total
}

func hasAll(archetype *ecs.Archetype, types []reflect.Type) bool {
	for _, t := range types {
		if !archetype.HasComponent(t) {
			return false
		}
	}
	return true
}

// SetField assigns value to the field at index in the component of type
// compType held by id, converting numeric kinds as needed. It reports
// whether the field was written.
func SetField(storage *ecs.Storage, id ecs.EntityId, compType reflect.Type, index []int, value any) bool {
	component, ok := storage.GetComponent(id, compType)
	if !ok {
		return false
	}
	val := reflect.ValueOf(component)
	if val.Kind() != reflect.Ptr {
		return false
	}

	field := val.Elem().FieldByIndex(index)
	if !field.CanSet() {
		return false
	}

	v := reflect.ValueOf(value)
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !v.CanInt() {
			return false
		}
		field.SetInt(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch {
		case v.CanUint():
			field.SetUint(v.Uint())
		case v.CanInt() && v.Int() >= 0:
			field.SetUint(uint64(v.Int()))
		default:
			return false
		}
	case reflect.Float32, reflect.Float64:
		if !v.CanFloat() {
			return false
		}
		field.SetFloat(v.Float())
	default:
		if !v.Type().AssignableTo(field.Type()) {
			return false
		}
		field.Set(v)
	}
	return true
}
