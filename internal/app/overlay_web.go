//go:build js

package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/pivotquad/ecs"
	"github.com/plus3/pivotquad/internal/bounce"
	"github.com/plus3/pivotquad/internal/config"
	"github.com/plus3/pivotquad/internal/render"
)

// Closing the tab is the only way out of a browser build.
const canQuit = false

// hudOverlay stands in for the ImGui overlay in the browser, where
// cimgui-go is unavailable. The debug toggle hides the HUD instead.
type hudOverlay struct{}

func newOverlay(config.Config) overlay { return hudOverlay{} }

func (hudOverlay) register(*ecs.ComponentRegistry) {}

func (hudOverlay) attach(storage *ecs.Storage, update, draw *ecs.Scheduler, keyboard *render.KeyboardSystem) {
	update.Register(&hudToggleSystem{})
}

func (hudOverlay) beginFrame() {}
func (hudOverlay) endFrame() {}
func (hudOverlay) draw(*ebiten.Image) {}
func (hudOverlay) layout(width, height int) {}

type hudToggleSystem struct {
	Input ecs.Singleton[bounce.Input]
	HUD   ecs.Singleton[render.HUD]
}

func (s *hudToggleSystem) Execute(frame *ecs.UpdateFrame) {
	if input, hud := s.Input.Get(), s.HUD.Get(); input != nil && hud != nil {
		hud.Hidden = input.ShowDebug
	}
}
