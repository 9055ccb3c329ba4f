package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/hearth/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageComponents(t *testing.T) {
	t.Run("read and mutate a component", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := spawn(storage, Position{X: 1, Y: 2}, Temperature(32))

		pos, ok := ecs.ReadComponent[Position](storage, id)
		require.True(t, ok)
		assert.Equal(t, Position{X: 1, Y: 2}, *pos)

		pos.X = 10
		again, _ := ecs.ReadComponent[Position](storage, id)
		assert.Equal(t, float32(10), again.X)

		temp, ok := ecs.ReadComponent[Temperature](storage, id)
		require.True(t, ok)
		assert.Equal(t, Temperature(32), *temp)
	})

	t.Run("absent component is reported absent", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := spawn(storage, Position{})

		_, ok := ecs.ReadComponent[Velocity](storage, id)
		assert.False(t, ok)
		assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))

		c, ok := storage.GetComponent(id, reflect.TypeFor[Velocity]())
		assert.False(t, ok)
		assert.Nil(t, c)
	})

	t.Run("pointer values are copied into storage", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		original := &Position{X: 5}
		id := spawn(storage, original)

		original.X = 99
		pos, _ := ecs.ReadComponent[Position](storage, id)
		assert.Equal(t, float32(5), pos.X)
	})

	t.Run("later value of a type wins", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := spawn(storage, Score(1), Score(2))

		score, ok := ecs.ReadComponent[Score](storage, id)
		require.True(t, ok)
		assert.Equal(t, Score(2), *score)
		assert.Len(t, storage.GetArchetypes(), 1)
	})

	t.Run("unregistered component panics", func(t *testing.T) {
		storage := ecs.NewStorage(ecs.NewComponentRegistry())
		assert.Panics(t, func() {
			storage.CreateEntity().With(Position{})
		})
	})

	t.Run("pointer component types are rejected", func(t *testing.T) {
		assert.Panics(t, func() {
			ecs.RegisterComponent[*Position](ecs.NewComponentRegistry())
		})
		assert.Panics(t, func() {
			ecs.RegisterComponent[map[string]int](ecs.NewComponentRegistry())
		})
	})
}

func TestStorageStructuralChanges(t *testing.T) {
	t.Run("add component moves the entity and keeps its id", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := spawn(storage, Position{X: 3, Y: 4})

		storage.AddComponent(id, Velocity{DX: 1})
		_, ok := ecs.ReadComponent[Velocity](storage, id)
		assert.False(t, ok, "additions wait for maintain")

		storage.Maintain()
		vel, ok := ecs.ReadComponent[Velocity](storage, id)
		require.True(t, ok)
		assert.Equal(t, float32(1), vel.DX)

		pos, ok := ecs.ReadComponent[Position](storage, id)
		require.True(t, ok)
		assert.Equal(t, Position{X: 3, Y: 4}, *pos)

		archetype, ok := storage.EntityArchetype(id)
		require.True(t, ok)
		assert.Equal(t, []reflect.Type{reflect.TypeFor[Position](), reflect.TypeFor[Velocity]()}, archetype.Types())
	})

	t.Run("adding an existing type replaces it", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := spawn(storage, Health{Current: 10, Max: 10})
		before, _ := storage.EntityArchetype(id)

		storage.AddComponent(id, Health{Current: 3, Max: 10})
		storage.Maintain()

		hp, _ := ecs.ReadComponent[Health](storage, id)
		assert.Equal(t, 3, hp.Current)
		after, _ := storage.EntityArchetype(id)
		assert.Same(t, before, after)
	})

	t.Run("remove component", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := spawn(storage, Position{X: 1}, Velocity{DX: 2}, Name{Value: "a"})

		storage.RemoveComponent(id, reflect.TypeFor[Velocity]())
		storage.Maintain()

		assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
		name, ok := ecs.ReadComponent[Name](storage, id)
		require.True(t, ok)
		assert.Equal(t, "a", name.Value)
	})

	t.Run("removing the last component keeps the entity alive", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := spawn(storage, Position{})

		storage.RemoveComponent(id, reflect.TypeFor[Position]())
		storage.Maintain()

		assert.True(t, storage.Alive(id))
		archetype, ok := storage.EntityArchetype(id)
		require.True(t, ok)
		assert.Empty(t, archetype.Types())

		storage.AddComponent(id, Tag("back"))
		storage.Maintain()
		tag, ok := ecs.ReadComponent[Tag](storage, id)
		require.True(t, ok)
		assert.Equal(t, Tag("back"), *tag)
	})

	t.Run("changes to destroyed entities are dropped", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := spawn(storage, Position{})

		storage.AddComponent(id, Velocity{})
		storage.DestroyEntity(id)
		storage.Maintain()

		assert.False(t, storage.Alive(id))
		assert.Nil(t, storage.GetArchetype(Position{}, Velocity{}))
	})

	t.Run("operations on stale ids are no-ops", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := spawn(storage, Position{})
		storage.DestroyEntity(id)
		storage.Maintain()

		other := spawn(storage, Position{X: 7})
		storage.DestroyEntity(id)
		storage.AddComponent(id, Velocity{})
		storage.RemoveComponent(id, reflect.TypeFor[Position]())
		storage.Maintain()

		assert.True(t, storage.Alive(other))
		pos, ok := ecs.ReadComponent[Position](storage, other)
		require.True(t, ok)
		assert.Equal(t, float32(7), pos.X)
		assert.False(t, storage.HasComponent(other, reflect.TypeFor[Velocity]()))
	})

	t.Run("deferred functions run last", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := storage.CreateEntity().With(Position{}).Build()

		var aliveInDefer bool
		storage.Commands().Defer(func() {
			aliveInDefer = storage.Alive(id)
		})
		storage.Maintain()

		assert.True(t, aliveInDefer)
		assert.Equal(t, 0, storage.Commands().Pending())
	})
}

func TestStorageArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	spawn(storage, Position{}, Velocity{})
	spawn(storage, Velocity{}, Position{})
	spawn(storage, Position{})

	require.Len(t, storage.GetArchetypes(), 2)

	a := storage.GetArchetype(Position{}, Velocity{})
	b := storage.GetArchetypeByTypes([]reflect.Type{reflect.TypeFor[Velocity](), reflect.TypeFor[Position]()})
	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.Same(t, a, storage.GetArchetypeById(a.ID()))
	assert.Equal(t, 2, a.Len())
}

func TestStorageArchetypesOfSameNamedTypes(t *testing.T) {
	registry := newTestRegistry()
	first := func() any {
		type Marker struct{ N int }
		ecs.RegisterComponent[Marker](registry)
		return Marker{N: 1}
	}()
	second := func() any {
		type Marker struct{ N int }
		ecs.RegisterComponent[Marker](registry)
		return Marker{N: 2}
	}()
	require.Equal(t, reflect.TypeOf(first).String(), reflect.TypeOf(second).String())
	require.NotEqual(t, reflect.TypeOf(first), reflect.TypeOf(second))

	storage := ecs.NewStorage(registry)
	a := spawn(storage, first, second)
	b := spawn(storage, second, first)

	require.Len(t, storage.GetArchetypes(), 1)
	archA, ok := storage.EntityArchetype(a)
	require.True(t, ok)
	archB, ok := storage.EntityArchetype(b)
	require.True(t, ok)
	assert.Same(t, archA, archB)
}

func TestStorageCompact(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var ids []ecs.EntityId
	for i := 0; i < 10; i++ {
		ids = append(ids, storage.CreateEntity().With(Score(i)).Build())
	}
	storage.Maintain()
	for i := 0; i < 10; i += 2 {
		storage.DestroyEntity(ids[i])
	}
	storage.Maintain()

	storage.Compact()

	for i := 1; i < 10; i += 2 {
		score, ok := ecs.ReadComponent[Score](storage, ids[i])
		require.True(t, ok)
		assert.Equal(t, Score(i), *score)
	}
	assert.Equal(t, 5, storage.EntityCount())
}
