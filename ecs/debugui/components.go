package debugui

import (
	"reflect"
	"time"

	"github.com/plus3/pivotquad/ecs"
)

// ComponentInspector is the state of the component inspector window.
type ComponentInspector struct {
	// Focus, when set, is the component type whose entity gets selected
	// whenever the current selection disappears.
	Focus reflect.Type

	selected ecs.EntityId
}

// PerformanceStats is the state of the performance window.
type PerformanceStats struct {
	Schedulers []NamedScheduler

	frameHistory []float32
	frameIndex   int
	lastFrame    time.Time
}

// NamedScheduler labels a scheduler in the performance window.
type NamedScheduler struct {
	Name      string
	Scheduler *ecs.Scheduler
}
