//go:build !js

package app

import (
	"reflect"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/pivotquad/ecs"
	"github.com/plus3/pivotquad/ecs/debugui"
	debugui_ebiten "github.com/plus3/pivotquad/ecs/debugui/ebiten"
	"github.com/plus3/pivotquad/internal/bounce"
	"github.com/plus3/pivotquad/internal/config"
	"github.com/plus3/pivotquad/internal/render"
)

const canQuit = true

type imguiOverlay struct {
	backend debugui_ebiten.ImguiBackend
}

func newOverlay(cfg config.Config) overlay {
	return &imguiOverlay{
		backend: debugui_ebiten.NewImguiBackend(cfg.Title, cfg.WindowWidth, cfg.WindowHeight),
	}
}

func (o *imguiOverlay) register(registry *ecs.ComponentRegistry) {
	debugui.RegisterDebugUIComponents(registry)
}

func (o *imguiOverlay) attach(storage *ecs.Storage, update, draw *ecs.Scheduler, keyboard *render.KeyboardSystem) {
	debugui.SpawnDebugUI(storage, reflect.TypeFor[bounce.Pose](),
		debugui.NamedScheduler{Name: "update", Scheduler: update},
		debugui.NamedScheduler{Name: "draw", Scheduler: draw},
	)

	update.Register(&overlayToggleSystem{})
	update.Register(&debugui.ImguiSystem{})

	state := ecs.NewSingleton[debugui.ImguiInputState](storage)
	keyboard.Captured = func() bool { return state.Get().WantCaptureKeyboard }
}

func (o *imguiOverlay) beginFrame() { o.backend.BeginFrame() }
func (o *imguiOverlay) endFrame() { o.backend.EndFrame() }
func (o *imguiOverlay) draw(screen *ebiten.Image) { o.backend.Draw(screen) }
func (o *imguiOverlay) layout(width, height int) { o.backend.Layout(width, height) }

// overlayToggleSystem shows the ImGui windows while debug is toggled on.
type overlayToggleSystem struct {
	Input   ecs.Singleton[bounce.Input]
	Overlay ecs.Singleton[debugui.Overlay]
}

func (s *overlayToggleSystem) Execute(frame *ecs.UpdateFrame) {
	if input, ov := s.Input.Get(), s.Overlay.Get(); input != nil && ov != nil {
		ov.Visible = input.ShowDebug
	}
}
