package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/pivotquad/ecs"
	"github.com/plus3/pivotquad/internal/bounce"
)

// Keys reports keys pressed since the previous tick.
type Keys interface {
	IsKeyJustPressed(key ebiten.Key) bool
}

// Keyboard reads ebiten's input state.
type Keyboard struct{}

func (Keyboard) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// Binding maps one key to one action.
type Binding struct {
	Key    ebiten.Key
	Action bounce.Action
}

// DefaultBindings is the keyboard layout shown in the HUD.
var DefaultBindings = []Binding{
	{ebiten.KeyDigit1, bounce.ActionCorner0},
	{ebiten.KeyDigit2, bounce.ActionCorner1},
	{ebiten.KeyDigit3, bounce.ActionCorner2},
	{ebiten.KeyDigit4, bounce.ActionCorner3},
	{ebiten.KeyM, bounce.ActionToggleMode},
	{ebiten.KeySpace, bounce.ActionPause},
	{ebiten.KeyArrowUp, bounce.ActionFaster},
	{ebiten.KeyArrowDown, bounce.ActionSlower},
	{ebiten.KeyArrowRight, bounce.ActionGrowFaster},
	{ebiten.KeyArrowLeft, bounce.ActionGrowSlower},
	{ebiten.KeyR, bounce.ActionReset},
	{ebiten.KeyF1, bounce.ActionToggleDebug},
	{ebiten.KeyEscape, bounce.ActionQuit},
	{ebiten.KeyQ, bounce.ActionQuit},
}

// Poll appends the action of every binding whose key was just pressed.
func Poll(keys Keys, bindings []Binding, input *bounce.Input) {
	for _, b := range bindings {
		if keys.IsKeyJustPressed(b.Key) {
			input.Push(b.Action)
		}
	}
}

// KeyboardSystem feeds key presses into the bounce Input singleton. It must
// run before bounce.InputSystem.
type KeyboardSystem struct {
	Input ecs.Singleton[bounce.Input]

	Keys     Keys
	Bindings []Binding
	// Captured reports whether another consumer owns the keyboard this
	// frame, such as a focused text field in the debug overlay.
	Captured func() bool
}

func (s *KeyboardSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	if input == nil || s.Keys == nil {
		return
	}
	if s.Captured != nil && s.Captured() {
		return
	}
	bindings := s.Bindings
	if bindings == nil {
		bindings = DefaultBindings
	}
	Poll(s.Keys, bindings, input)
}
