package bounce

import (
	"github.com/plus3/pivotquad/internal/config"
)

// Outcome describes what Resolve did in one frame.
type Outcome struct {
	Hit bool
	// Corner is the corner that left the viewport furthest, or -1.
	Corner   int
	Excess   float32
	Switched bool
	Reversed bool
	// PushX and PushY are -1, 0 or +1: the direction of the corrective
	// translation applied on each axis.
	PushX, PushY int
}

// Resolve checks the square's transformed corners against the viewport and
// applies the configured response. Only pose and spin are modified.
//
// A corner violates an axis when its coordinate magnitude exceeds the half
// extent. The worst corner (largest excess, lowest index on ties) becomes
// the new pivot in ModeReanchor; ModeReverse negates the angle step. Either
// way the square is then nudged away from every violated edge.
func Resolve(pose *Pose, spin *Spin, size float32, viewport Viewport) Outcome {
	out := Outcome{Corner: -1}
	half := viewport.HalfExtent

	var left, right, below, above bool
	for i, c := range WorldCorners(*pose, size) {
		excess := float32(0)
		if e := c.X - half; e > 0 {
			right = true
			excess = max(excess, e)
		}
		if e := -half - c.X; e > 0 {
			left = true
			excess = max(excess, e)
		}
		if e := c.Y - half; e > 0 {
			above = true
			excess = max(excess, e)
		}
		if e := -half - c.Y; e > 0 {
			below = true
			excess = max(excess, e)
		}
		if excess > out.Excess {
			out.Excess = excess
			out.Corner = i
		}
	}

	if out.Corner < 0 {
		return out
	}
	out.Hit = true

	switch viewport.Mode {
	case config.ModeReanchor:
		out.Switched = SetPivot(pose, size, out.Corner)
	case config.ModeReverse:
		spin.AngleStep = -spin.AngleStep
		out.Reversed = true
	}

	out.PushX = push(left, right)
	out.PushY = push(below, above)
	pose.Translation.X += float32(out.PushX) * viewport.Nudge
	pose.Translation.Y += float32(out.PushY) * viewport.Nudge

	return out
}

// push is +1 when only the low edge is crossed, -1 when only the high edge
// is, and 0 when both or neither are.
func push(low, high bool) int {
	switch {
	case low && !high:
		return 1
	case high && !low:
		return -1
	}
	return 0
}
