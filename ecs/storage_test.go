package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/pivotquad/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		archetypeId uint32
		index       uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("archetype=%d,index=%d", tt.archetypeId, tt.index), func(t *testing.T) {
			entityId := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, entityId.ArchetypeId())
			assert.Equal(t, tt.index, entityId.Index())
		})
	}
}

func TestSpawnAndGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Name("square"))
	assert.True(t, storage.Alive(id))

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 3, Y: 4}, *pos)

	name := ecs.ReadComponent[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, Name("square"), *name)

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
}

func TestSpawnSameArchetypeRegardlessOfOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Velocity{}, Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.Index(), b.Index())
}

func TestSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() })
	assert.Panics(t, func() { storage.Spawn(struct{ Unregistered int }{}) })
	assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
}

func TestDeleteReusesSlot(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	second := storage.Spawn(Position{X: 2})

	storage.Delete(first)
	assert.False(t, storage.Alive(first))
	assert.True(t, storage.Alive(second))
	assert.Nil(t, ecs.ReadComponent[Position](storage, first))

	third := storage.Spawn(Position{X: 3})
	assert.Equal(t, first, third)
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, third).X)

	// Deleting twice is a no-op.
	storage.Delete(second)
	storage.Delete(second)
	assert.Equal(t, 1, storage.CollectStats().TotalEntityCount)
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 7})
	ptr := ecs.ReadComponent[Position](storage, id)

	for i := 0; i < 500; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	ptr.X = 42
	assert.Equal(t, float32(42), ecs.ReadComponent[Position](storage, id).X)
}

func TestAddAndRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1, Y: 2})

	t.Run("add moves entity", func(t *testing.T) {
		newId := storage.AddComponent(id, Velocity{DX: 5})
		assert.NotEqual(t, id.ArchetypeId(), newId.ArchetypeId())
		assert.False(t, storage.Alive(id))
		assert.Equal(t, Position{X: 1, Y: 2}, *ecs.ReadComponent[Position](storage, newId))
		assert.Equal(t, float32(5), ecs.ReadComponent[Velocity](storage, newId).DX)
		id = newId
	})

	t.Run("add existing type overwrites in place", func(t *testing.T) {
		same := storage.AddComponent(id, Velocity{DX: 9})
		assert.Equal(t, id, same)
		assert.Equal(t, float32(9), ecs.ReadComponent[Velocity](storage, id).DX)
	})

	t.Run("remove moves entity back", func(t *testing.T) {
		newId := storage.RemoveComponent(id, reflect.TypeFor[Velocity]())
		assert.True(t, storage.HasComponent(newId, reflect.TypeFor[Position]()))
		assert.False(t, storage.HasComponent(newId, reflect.TypeFor[Velocity]()))
		id = newId
	})

	t.Run("remove missing type keeps id", func(t *testing.T) {
		assert.Equal(t, id, storage.RemoveComponent(id, reflect.TypeFor[Health]()))
	})

	t.Run("remove last component deletes entity", func(t *testing.T) {
		assert.Equal(t, ecs.EntityId(0), storage.RemoveComponent(id, reflect.TypeFor[Position]()))
		assert.False(t, storage.Alive(id))
	})
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	type Viewport struct {
		HalfExtent float32
	}

	single := ecs.NewSingleton[Viewport](storage, Viewport{HalfExtent: 1})
	require.True(t, single.Exists())
	assert.Equal(t, float32(1), single.Get().HalfExtent)

	t.Run("second accessor shares the value", func(t *testing.T) {
		other := ecs.NewSingleton[Viewport](storage, Viewport{HalfExtent: 99})
		assert.Equal(t, float32(1), other.Get().HalfExtent)
		other.Get().HalfExtent = 2
		assert.Equal(t, float32(2), single.Get().HalfExtent)
	})

	t.Run("AddSingleton overwrites in place", func(t *testing.T) {
		ptr := single.Get()
		storage.AddSingleton(Viewport{HalfExtent: 3})
		assert.Same(t, ptr, single.Get())
		assert.Equal(t, float32(3), ptr.HalfExtent)
	})

	t.Run("ReadSingleton", func(t *testing.T) {
		var vp *Viewport
		assert.True(t, storage.ReadSingleton(&vp))
		assert.Same(t, single.Get(), vp)

		var missing *Health
		assert.False(t, storage.ReadSingleton(&missing))
		assert.Nil(t, missing)
	})

	t.Run("unbound singleton", func(t *testing.T) {
		var s ecs.Singleton[Health]
		assert.Nil(t, s.Get())
		assert.False(t, s.Exists())
	})
}

func TestStorageStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Zero(t, stats.ArchetypeCount)
	assert.Zero(t, stats.TotalEntityCount)
	assert.Zero(t, stats.SingletonCount)

	storage.Spawn(Position{}, Name("a"))
	storage.Spawn(Position{}, Name("b"))
	storage.Spawn(Score(1))
	ecs.NewSingleton[Health](storage)

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Health"}, stats.SingletonTypes)

	counts := map[int]bool{}
	for _, arch := range stats.ArchetypeBreakdown {
		counts[arch.EntityCount] = true
	}
	assert.True(t, counts[1])
	assert.True(t, counts[2])
}
