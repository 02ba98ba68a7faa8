package ecs

import (
	"iter"
	"sort"
)

// Query wraps a View with a per-generation cache of matching entities.
// The cache is rebuilt lazily whenever the storage has changed
// structurally since the last build, so systems can iterate it freely.
type Query[T any] struct {
	view    *View[T]
	storage *Storage

	entities   []EntityId
	components []T
	generation uint64
	built      bool
}

// NewQuery creates a new Query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the Query to storage. The Scheduler calls it for every Query
// field of a registered system.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.built = false
}

// Execute rebuilds the cache unconditionally.
func (q *Query[T]) Execute() {
	q.entities = q.entities[:0]
	q.components = q.components[:0]

	archetypes := make([]*Archetype, 0, len(q.storage.archetypes))
	for _, archetype := range q.storage.archetypes {
		if q.view.matchesArchetype(archetype) {
			archetypes = append(archetypes, archetype)
		}
	}
	sort.Slice(archetypes, func(i, j int) bool { return archetypes[i].id < archetypes[j].id })

	for _, archetype := range archetypes {
		q.view.iterArchetype(archetype, func(id EntityId, item T) bool {
			q.entities = append(q.entities, id)
			q.components = append(q.components, item)
			return true
		})
	}

	q.generation = q.storage.generation
	q.built = true
}

func (q *Query[T]) refresh() {
	if !q.built || q.generation != q.storage.generation {
		q.Execute()
	}
}

// Iter yields the view struct of every matching entity.
func (q *Query[T]) Iter() iter.Seq[T] {
	q.refresh()
	return func(yield func(T) bool) {
		for i := range q.components {
			if !yield(q.components[i]) {
				return
			}
		}
	}
}

// IterIds yields entity ids alongside their view structs.
func (q *Query[T]) IterIds() iter.Seq2[EntityId, T] {
	q.refresh()
	return func(yield func(EntityId, T) bool) {
		for i := range q.entities {
			if !yield(q.entities[i], q.components[i]) {
				return
			}
		}
	}
}

// First returns the first matching entity, which is convenient for
// queries that are expected to match exactly one entity.
func (q *Query[T]) First() (T, bool) {
	q.refresh()
	if len(q.components) == 0 {
		var zero T
		return zero, false
	}
	return q.components[0], true
}

// Len returns the number of matching entities.
func (q *Query[T]) Len() int {
	q.refresh()
	return len(q.components)
}
