package bounce

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/math32"
	"github.com/plus3/pivotquad/ecs"
	"github.com/plus3/pivotquad/internal/transform"
)

type squareView = struct {
	ecs.EntityId
	*Quad
	*Pose
	*Spin
	Paused *Paused `ecs:"optional"`
}

// InputSystem applies queued keyboard actions.
type InputSystem struct {
	Squares  ecs.Query[squareView]
	Input    ecs.Singleton[Input]
	Viewport ecs.Singleton[Viewport]
	Initial  ecs.Singleton[Initial]
	Counters ecs.Singleton[Counters]

	Logger *slog.Logger
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	viewport := s.Viewport.Get()
	if input == nil || viewport == nil || len(input.Pending) == 0 {
		return
	}

	// Structural edits only land at Flush, so the pause state each square
	// should end the frame in is tracked here and queued once.
	paused := make(map[ecs.EntityId]bool)

	for _, action := range input.Pending {
		switch action {
		case ActionToggleDebug:
			input.ShowDebug = !input.ShowDebug
			continue
		case ActionQuit:
			input.Quit = true
			continue
		case ActionToggleMode:
			viewport.Mode = 1 - viewport.Mode
			s.Logger.Debug("collision mode changed", "mode", viewport.Mode)
			continue
		}

		for sq := range s.Squares.Iter() {
			s.apply(action, sq, paused)
		}
	}

	for sq := range s.Squares.Iter() {
		want, ok := paused[sq.EntityId]
		if !ok || want == (sq.Paused != nil) {
			continue
		}
		if want {
			frame.Commands.AddComponent(sq.EntityId, Paused{})
		} else {
			ecs.Remove[Paused](frame.Commands, sq.EntityId)
		}
	}

	input.Pending = input.Pending[:0]
}

func (s *InputSystem) apply(action Action, sq squareView, paused map[ecs.EntityId]bool) {
	switch action {
	case ActionCorner0, ActionCorner1, ActionCorner2, ActionCorner3:
		corner := int(action - ActionCorner0)
		if SetPivot(sq.Pose, sq.Quad.Size, corner) {
			s.Logger.Debug("pivot selected", "corner", corner)
			s.note(fmt.Sprintf("pivot -> %d (key)", corner))
		}

	case ActionPause:
		current, ok := paused[sq.EntityId]
		if !ok {
			current = sq.Paused != nil
		}
		paused[sq.EntityId] = !current

	case ActionFaster:
		sq.Spin.AngleStep = adjustMagnitude(sq.Spin.AngleStep, AngleStepDelta)
	case ActionSlower:
		sq.Spin.AngleStep = adjustMagnitude(sq.Spin.AngleStep, -AngleStepDelta)
	case ActionGrowFaster:
		sq.Spin.ScaleStep = adjustMagnitude(sq.Spin.ScaleStep, ScaleStepDelta)
	case ActionGrowSlower:
		sq.Spin.ScaleStep = adjustMagnitude(sq.Spin.ScaleStep, -ScaleStepDelta)

	case ActionReset:
		initial := s.Initial.Get()
		if initial == nil {
			return
		}
		*sq.Pose = initial.Pose
		*sq.Spin = initial.Spin
		*s.Viewport.Get() = initial.Viewport
		if counters := s.Counters.Get(); counters != nil {
			*counters = Counters{Frames: counters.Frames}
		}
		paused[sq.EntityId] = false
		s.Logger.Info("reset")
		s.note("reset")
	}
}

func (s *InputSystem) note(event string) {
	if counters := s.Counters.Get(); counters != nil {
		counters.LastEvent = event
	}
}

// adjustMagnitude grows or shrinks |v| by delta, never below zero, keeping
// the sign of v.
func adjustMagnitude(v, delta float32) float32 {
	return math32.Copysign(max(math32.Abs(v)+delta, 0), v)
}

// SpinSystem advances angle and scale for squares that are not paused.
type SpinSystem struct {
	Squares ecs.Query[squareView]
}

func (s *SpinSystem) Execute(frame *ecs.UpdateFrame) {
	for sq := range s.Squares.Iter() {
		if sq.Paused != nil {
			continue
		}
		Advance(sq.Pose, sq.Spin)
	}
}

// Advance applies one frame of spin to pose. The angle stays within one
// turn of zero; scale ping-pongs between the spin's limits.
func Advance(pose *Pose, spin *Spin) {
	pose.Angle += spin.AngleStep
	switch {
	case pose.Angle > 2*math32.Pi:
		pose.Angle -= 2 * math32.Pi
	case pose.Angle < -2*math32.Pi:
		pose.Angle += 2 * math32.Pi
	}

	pose.Scale += spin.ScaleStep
	switch {
	case pose.Scale > spin.MaxScale:
		pose.Scale = spin.MaxScale
		spin.ScaleStep = -math32.Abs(spin.ScaleStep)
	case pose.Scale < spin.MinScale:
		pose.Scale = spin.MinScale
		spin.ScaleStep = math32.Abs(spin.ScaleStep)
	}
}

// CollisionSystem keeps squares inside the viewport.
type CollisionSystem struct {
	Squares  ecs.Query[squareView]
	Viewport ecs.Singleton[Viewport]
	Counters ecs.Singleton[Counters]

	Logger *slog.Logger
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	viewport := s.Viewport.Get()
	counters := s.Counters.Get()
	if viewport == nil || counters == nil {
		return
	}

	for sq := range s.Squares.Iter() {
		sq.Pose.Corner = sq.Pose.Pivot()
		out := Resolve(sq.Pose, sq.Spin, sq.Quad.Size, *viewport)
		if !out.Hit {
			continue
		}

		counters.MaxExcess = max(counters.MaxExcess, out.Excess)
		if out.PushX != 0 || out.PushY != 0 {
			counters.Nudges++
		}
		switch {
		case out.Switched:
			counters.PivotSwitches++
			counters.LastEvent = fmt.Sprintf("pivot -> %d", out.Corner)
		case out.Reversed:
			counters.Reversals++
			counters.LastEvent = "reversed"
		}

		s.Logger.Debug("edge hit",
			"tick", frame.Tick,
			"corner", out.Corner,
			"excess", out.Excess,
			"switched", out.Switched,
			"reversed", out.Reversed,
			"push_x", out.PushX,
			"push_y", out.PushY,
		)
	}
}

// TransformSystem rebuilds the matrices and world corners used for drawing.
type TransformSystem struct {
	Squares ecs.Query[struct {
		*Quad
		*Pose
		*Frame
	}]
	Viewport ecs.Singleton[Viewport]
	Counters ecs.Singleton[Counters]
}

func (s *TransformSystem) Execute(frame *ecs.UpdateFrame) {
	viewport := s.Viewport.Get()
	if viewport == nil {
		return
	}
	projection := ProjectionMatrix(viewport.HalfExtent)

	for sq := range s.Squares.Iter() {
		model := ModelMatrix(*sq.Pose, sq.Quad.Size)
		sq.Frame.Model = model
		sq.Frame.Projection = projection
		for i, c := range LocalCorners(sq.Quad.Size) {
			sq.Frame.Corners[i] = transform.Apply(model, c)
		}
	}

	if counters := s.Counters.Get(); counters != nil {
		counters.Frames++
	}
}
