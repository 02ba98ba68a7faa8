package debugui

import (
	"reflect"

	"github.com/plus3/pivotquad/ecs"
)

// RegisterDebugUIComponents registers the component types spawned by
// SpawnDebugUI.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// SpawnDebugUI adds the overlay singletons and one ImguiItem per window.
// The inspector follows the entity holding focus; the performance window
// reports timings for the given schedulers.
func SpawnDebugUI(storage *ecs.Storage, focus reflect.Type, schedulers ...NamedScheduler) {
	ecs.NewSingleton[ImguiInputState](storage)
	ecs.NewSingleton[Overlay](storage)

	inspector := &ComponentInspector{Focus: focus}
	storage.Spawn(ImguiItem{Render: func() { inspector.Render(storage) }})

	perf := NewPerformanceStats(120, schedulers...)
	storage.Spawn(ImguiItem{Render: func() { perf.Render(storage) }})
}
