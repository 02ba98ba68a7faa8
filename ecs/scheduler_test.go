package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/pivotquad/ecs"
	"github.com/stretchr/testify/assert"
)

type Gravity struct {
	Y float32
}

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	Gravity      ecs.Singleton[Gravity]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	g := s.Gravity.Get()
	for item := range s.Entities.Iter() {
		if g != nil {
			item.Velocity.DY += g.Y * float32(frame.DeltaTime)
		}
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type HealthSystem struct {
	Entities ecs.Query[struct {
		*Health
	}]
	TotalHealth int
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.TotalHealth = 0
	for item := range s.Entities.Iter() {
		s.TotalHealth += item.Health.Current
	}
}

type TickRecorder struct {
	Ticks []uint64
}

func (s *TickRecorder) Execute(frame *ecs.UpdateFrame) {
	s.Ticks = append(s.Ticks, frame.Tick)
}

func TestScheduler(t *testing.T) {
	registry := newTestRegistry()

	t.Run("systems run in order with bound fields", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		ecs.NewSingleton[Gravity](storage, Gravity{Y: -10})
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		recorder := &TickRecorder{}
		scheduler.Register(movement)
		scheduler.Register(recorder)

		id := storage.Spawn(Position{}, Velocity{DX: 1})

		scheduler.Once(1.0)
		scheduler.Once(1.0)

		assert.Equal(t, 2, movement.ExecuteCount)
		assert.Equal(t, []uint64{0, 1}, recorder.Ticks)
		assert.Equal(t, uint64(2), scheduler.Tick())

		pos := ecs.ReadComponent[Position](storage, id)
		assert.Equal(t, float32(2), pos.X)
		assert.Equal(t, float32(-30), pos.Y)
	})

	t.Run("custom state persists and sees new entities", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		storage.Spawn(Health{Current: 50, Max: 100})
		storage.Spawn(Health{Current: 75, Max: 100})

		health := &HealthSystem{}
		scheduler.Register(health)

		scheduler.Once(1.0)
		assert.Equal(t, 125, health.TotalHealth)

		storage.Spawn(Health{Current: 25, Max: 100})
		scheduler.Once(1.0)
		assert.Equal(t, 150, health.TotalHealth)
	})

	t.Run("stats", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&HealthSystem{})
		scheduler.Register(&TickRecorder{})

		stats := scheduler.GetStats()
		assert.Equal(t, 2, stats.SystemCount)
		assert.Zero(t, stats.Systems[0].MinDuration)

		for i := 0; i < 3; i++ {
			scheduler.Once(0.016)
		}

		stats = scheduler.GetStats()
		assert.Equal(t, int64(6), stats.TotalExecutions)
		assert.Equal(t, "HealthSystem", stats.Systems[0].Name)
		assert.Equal(t, "TickRecorder", stats.Systems[1].Name)
		assert.Equal(t, int64(3), stats.Systems[1].ExecutionCount)
		assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
	})

	t.Run("run stops on context cancellation", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)
		recorder := &TickRecorder{}
		scheduler.Register(recorder)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			scheduler.Run(ctx, time.Millisecond)
			close(done)
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("scheduler did not stop after cancellation")
		}
		assert.NotEmpty(t, recorder.Ticks)
	})
}
