// Package debugui draws Dear ImGui windows from inside an ECS frame: a
// component inspector for live editing and a performance window with
// scheduler timings and storage stats.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pivotquad/ecs"
)

// ImguiItem is a component holding a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors Dear ImGui's input capture flags as a singleton.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay is the singleton toggling whether ImguiItems are drawn at all.
type Overlay struct {
	Visible bool
}

// ImguiSystem refreshes ImguiInputState and, while the overlay is visible,
// defers every ImguiItem's render function to the end of the frame.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
	Overlay    ecs.Singleton[Overlay]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	overlay := i.Overlay.Get()
	visible := overlay != nil && overlay.Visible

	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = visible && io.WantCaptureMouse()
		state.WantCaptureKeyboard = visible && io.WantCaptureKeyboard()
	}

	if !visible {
		return
	}
	for item := range i.Items.Iter() {
		frame.Commands.Defer(item.Render)
	}
}
