package bounce

import (
	"log/slog"

	"cogentcore.org/core/math32"
	"github.com/plus3/pivotquad/ecs"
	"github.com/plus3/pivotquad/internal/config"
)

// RegisterComponents registers every component type this package spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Quad](registry)
	ecs.RegisterComponent[Pose](registry)
	ecs.RegisterComponent[Spin](registry)
	ecs.RegisterComponent[Paused](registry)
	ecs.RegisterComponent[Frame](registry)
}

// Setup creates the singletons and spawns the square described by cfg.
// cfg must already be validated.
func Setup(storage *ecs.Storage, cfg config.Config) ecs.EntityId {
	initial := Initial{
		Pose: Pose{
			Scale:  1,
			Corner: cfg.Corner,
		},
		Spin: Spin{
			AngleStep: cfg.AngleStep,
			ScaleStep: cfg.ScaleStep,
			MinScale:  cfg.MinScale,
			MaxScale:  cfg.MaxScale,
		},
		Viewport: Viewport{
			HalfExtent: cfg.HalfExtent,
			Mode:       cfg.Mode,
			Nudge:      cfg.Nudge,
		},
	}
	initial.Pose.Scale = min(max(initial.Pose.Scale, cfg.MinScale), cfg.MaxScale)
	initial.Pose.Translation = centered(cfg.Size, cfg.Corner, initial.Pose.Scale)

	storage.AddSingleton(initial)
	storage.AddSingleton(initial.Viewport)
	storage.AddSingleton(Counters{})
	storage.AddSingleton(Input{})

	return storage.Spawn(
		Quad{Size: cfg.Size, Colors: cfg.VertexColors()},
		initial.Pose,
		initial.Spin,
		Frame{},
	)
}

// Register adds the update systems to scheduler in frame order.
func Register(scheduler *ecs.Scheduler, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	scheduler.Register(&InputSystem{Logger: logger})
	scheduler.Register(&SpinSystem{})
	scheduler.Register(&CollisionSystem{Logger: logger})
	scheduler.Register(&TransformSystem{})
}

// centered returns the translation that puts the square's center on the
// origin at angle zero: t + (1-s)p = 0.
func centered(size float32, corner int, scale float32) math32.Vector2 {
	return LocalCorners(size)[corner].MulScalar(scale - 1)
}
