package ecs

import (
	"reflect"
	"sync"
)

// Commands buffers structural changes (entity creation and destruction,
// component attach and detach) until the storage's maintenance point.
// Systems reach it through UpdateFrame.Commands; nothing queued here is
// visible to iteration before Storage.Maintain.
// Commands is safe for use by concurrently running systems.
type Commands struct {
	mu      sync.Mutex
	spawns  []spawnCommand
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	entity     EntityId
	components []any
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// EntityBuilder collects the components of an entity that is created lazily.
type EntityBuilder struct {
	storage    *Storage
	commands   *Commands
	components []any
	built      bool
}

// CreateEntity returns a builder for an entity that becomes live at the next Maintain.
func (c *Commands) CreateEntity(storage *Storage) *EntityBuilder {
	return &EntityBuilder{storage: storage, commands: c}
}

// With adds components to the entity being built. A later value of the same
// type replaces an earlier one.
func (b *EntityBuilder) With(components ...any) *EntityBuilder {
	for _, comp := range components {
		checkComponentType(componentType(comp))
		if !b.storage.registry.IsRegistered(componentType(comp)) {
			panic("component type " + componentType(comp).String() + " not registered")
		}
	}
	b.components = append(b.components, components...)
	return b
}

// Build reserves the entity id and queues its activation.
func (b *EntityBuilder) Build() EntityId {
	if b.built {
		panic("EntityBuilder.Build called twice")
	}
	b.built = true
	id := b.storage.reserve()
	b.commands.mu.Lock()
	b.commands.spawns = append(b.commands.spawns, spawnCommand{entity: id, components: b.components})
	b.commands.mu.Unlock()
	return id
}

// Defer queues a function to run at the end of maintenance.
func (c *Commands) Defer(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defers = append(c.defers, fn)
}

// Delete queues an entity destruction.
func (c *Commands) Delete(entity EntityId) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition (or replacement).
func (c *Commands) AddComponent(entity EntityId, component any) {
	checkComponentType(componentType(component))
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all queued operations to storage and resets the buffer.
// Order: activations, destructions, removals, additions, deferred functions.
// Additions and removals targeting an entity destroyed in the same pass are dropped.
// Operations queued by deferred functions wait for the next Flush.
func (c *Commands) Flush(storage *Storage) {
	c.mu.Lock()
	spawns, deletes, adds, removes, defers := c.spawns, c.deletes, c.adds, c.removes, c.defers
	c.spawns, c.deletes, c.adds, c.removes, c.defers = nil, nil, nil, nil, nil
	c.mu.Unlock()

	for _, cmd := range spawns {
		storage.activate(cmd.entity, cmd.components)
	}

	deleted := make(map[EntityId]bool, len(deletes))
	for _, id := range deletes {
		storage.destroy(id)
		deleted[id] = true
	}

	for _, cmd := range removes {
		if !deleted[cmd.entity] {
			storage.detach(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range adds {
		if !deleted[cmd.entity] {
			storage.attach(cmd.entity, cmd.component)
		}
	}

	for _, fn := range defers {
		fn()
	}
}
