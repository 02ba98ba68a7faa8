package ecs

import "reflect"

// Commands buffers structural changes requested by systems. The Scheduler
// flushes the buffer after the last system of a frame, so queries never see
// an entity appear or vanish halfway through a frame.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues fn to run after all structural changes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: entity, component: component})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{entity: entity, compType: compType})
}

// Remove queues removal of the T component from entity.
func Remove[T any](c *Commands, entity EntityId) {
	c.RemoveComponent(entity, reflect.TypeFor[T]())
}

// Pending reports whether any command is queued.
func (c *Commands) Pending() bool {
	return len(c.spawns)+len(c.deletes)+len(c.adds)+len(c.removes)+len(c.defers) > 0
}

// Flush applies the queued commands to storage in the order deletes,
// removes, adds, spawns, defers and resets the buffer. Component edits on
// an entity moved by an earlier edit in the same flush follow it to its new
// id; edits on deleted entities are dropped.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]bool, len(c.deletes))
	current := make(map[EntityId]EntityId)

	resolve := func(id EntityId) EntityId {
		if moved, ok := current[id]; ok {
			return moved
		}
		return id
	}

	for _, id := range c.deletes {
		storage.Delete(id)
		deleted[id] = true
	}

	for _, cmd := range c.removes {
		if deleted[cmd.entity] {
			continue
		}
		newId := storage.RemoveComponent(resolve(cmd.entity), cmd.compType)
		if newId == 0 {
			deleted[cmd.entity] = true
			continue
		}
		current[cmd.entity] = newId
	}

	for _, cmd := range c.adds {
		if deleted[cmd.entity] {
			continue
		}
		if newId := storage.AddComponent(resolve(cmd.entity), cmd.component); newId != 0 {
			current[cmd.entity] = newId
		}
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
