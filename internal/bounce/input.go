package bounce

// Action is a keyboard command, decoupled from any particular key codes.
type Action int

const (
	ActionCorner0 Action = iota
	ActionCorner1
	ActionCorner2
	ActionCorner3
	ActionToggleMode
	ActionPause
	ActionFaster
	ActionSlower
	ActionGrowFaster
	ActionGrowSlower
	ActionReset
	ActionToggleDebug
	ActionQuit
)

var actionNames = [...]string{
	ActionCorner0:     "corner-0",
	ActionCorner1:     "corner-1",
	ActionCorner2:     "corner-2",
	ActionCorner3:     "corner-3",
	ActionToggleMode:  "toggle-mode",
	ActionPause:       "pause",
	ActionFaster:      "faster",
	ActionSlower:      "slower",
	ActionGrowFaster:  "grow-faster",
	ActionGrowSlower:  "grow-slower",
	ActionReset:       "reset",
	ActionToggleDebug: "toggle-debug",
	ActionQuit:        "quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Increments applied by the speed actions.
const (
	AngleStepDelta float32 = 0.005
	ScaleStepDelta float32 = 0.001
)

// Input is the singleton the platform layer fills with the actions
// triggered since the previous frame. InputSystem consumes Pending and sets
// the flags that only the platform layer can act on.
type Input struct {
	Pending []Action

	ShowDebug bool
	Quit      bool
}

// Push queues actions for the next frame.
func (in *Input) Push(actions ...Action) {
	in.Pending = append(in.Pending, actions...)
}
