package bounce

import (
	"image/color"

	"cogentcore.org/core/math32"
)

// CornerCount is the number of tracked corners of the square.
const CornerCount = 4

// Quad is the square's geometry: side length and one color per vertex of
// its two triangles.
type Quad struct {
	Size   float32
	Colors [VertexCount]color.RGBA
}

// Pose is the scalar state the model matrix is rebuilt from every frame.
type Pose struct {
	Angle       float32
	Scale       float32
	Translation math32.Vector2
	// Corner is the active pivot, indexing LocalCorners. Out of range
	// values, as typed into the inspector, wrap around; see Pivot.
	Corner int
}

// Pivot returns Corner folded into 0..CornerCount-1.
func (p Pose) Pivot() int {
	return (p.Corner%CornerCount + CornerCount) % CornerCount
}

// Spin holds the per-frame increments of the animation.
type Spin struct {
	AngleStep float32
	ScaleStep float32
	MinScale  float32
	MaxScale  float32
}

// Paused tags a square whose animation is frozen.
type Paused struct{}

// Frame is derived from Pose each frame and is what gets drawn.
type Frame struct {
	Model      math32.Matrix4
	Projection math32.Matrix4
	// Corners are the world space positions of LocalCorners.
	Corners [CornerCount]math32.Vector2
}

// Viewport is the singleton describing the box the square bounces in.
type Viewport struct {
	HalfExtent float32
	Mode       int
	Nudge      float32
}

// Counters is a singleton tallying what the animation has done.
type Counters struct {
	Frames        uint64
	PivotSwitches uint64
	Reversals     uint64
	Nudges        uint64
	MaxExcess     float32
	LastEvent     string
}

// Initial is a singleton snapshot used by ActionReset.
type Initial struct {
	Pose     Pose
	Spin     Spin
	Viewport Viewport
}
