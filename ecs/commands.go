package ecs

import "reflect"

// Commands buffers structural changes requested by systems during a tick.
// The scheduler flushes them once every system has run, so queries never see
// archetypes change underneath them.
type Commands struct {
	spawns  [][]any
	deletes []deleteCommand
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type deleteCommand struct {
	entity    EntityId
	recursive bool
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Spawn queues the creation of an entity with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues the removal of a single entity.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, deleteCommand{entity: entity})
}

// DeleteRecursive queues the removal of an entity and everything it owns.
func (c *Commands) DeleteRecursive(entity EntityId) {
	c.deletes = append(c.deletes, deleteCommand{entity: entity, recursive: true})
}

// AddComponent queues attaching component to entity.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: entity, component: component})
}

// RemoveComponent queues detaching the compType component from entity.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{entity: entity, compType: compType})
}

// Defer queues fn to run after all other commands of the flush.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies the queued commands to storage in the order deletes,
// removes, adds, spawns, defers, then resets the buffer. Queued ids are
// resolved through entity refs taken when the flush starts, so a command
// follows its entity across moves made by earlier commands and is dropped
// once the entity is deleted.
func (c *Commands) Flush(storage *Storage) {
	refs := make(map[EntityId]*EntityRef, len(c.adds)+len(c.removes))
	track := func(id EntityId) {
		if _, ok := refs[id]; !ok {
			refs[id] = storage.CreateEntityRef(id)
		}
	}
	for _, cmd := range c.removes {
		track(cmd.entity)
	}
	for _, cmd := range c.adds {
		track(cmd.entity)
	}

	for _, cmd := range c.deletes {
		if cmd.recursive {
			storage.DeleteRecursive(cmd.entity)
			continue
		}
		storage.Delete(cmd.entity)
	}

	for _, cmd := range c.removes {
		if id, ok := storage.ResolveEntityRef(refs[cmd.entity]); ok {
			storage.RemoveComponent(id, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if id, ok := storage.ResolveEntityRef(refs[cmd.entity]); ok {
			storage.AddComponent(id, cmd.component)
		}
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	clear(c.adds)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
