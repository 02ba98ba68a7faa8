// Package bounce animates a colored square that rotates and scales about
// one of its corners and bounces off the edges of a fixed viewport.
//
// State lives in an ecs.Storage: one entity carrying Quad, Pose, Spin and
// Frame, plus Viewport, Input, Counters and Initial singletons. The
// systems in this package run in the order InputSystem, SpinSystem,
// CollisionSystem, TransformSystem; drawing is left to the caller.
package bounce

import (
	"cogentcore.org/core/math32"
	"github.com/plus3/pivotquad/internal/transform"
)

// VertexCount is the number of vertices in the geometry buffer.
const VertexCount = 6

// triangles lists the corner behind each vertex: (0,1,2) and (0,2,3).
var triangles = [VertexCount]int{0, 1, 2, 0, 2, 3}

// LocalCorners returns the square's corners in model space, counter-clockwise
// from bottom-left.
func LocalCorners(size float32) [CornerCount]math32.Vector2 {
	h := size / 2
	return [CornerCount]math32.Vector2{
		math32.Vec2(-h, -h),
		math32.Vec2(h, -h),
		math32.Vec2(h, h),
		math32.Vec2(-h, h),
	}
}

// Vertices returns the 6-vertex geometry buffer in model space.
func Vertices(size float32) [VertexCount]math32.Vector2 {
	corners := LocalCorners(size)
	var out [VertexCount]math32.Vector2
	for i, c := range triangles {
		out[i] = corners[c]
	}
	return out
}

// ModelMatrix builds the model matrix for pose.
func ModelMatrix(pose Pose, size float32) math32.Matrix4 {
	pivot := LocalCorners(size)[pose.Pivot()]
	return transform.Model(pivot, pose.Translation, pose.Angle, pose.Scale)
}

// ProjectionMatrix maps the viewport onto clip space.
func ProjectionMatrix(halfExtent float32) math32.Matrix4 {
	return transform.Ortho(-halfExtent, halfExtent, -halfExtent, halfExtent, -1, 1)
}

// WorldCorners transforms the four corners by the pose's model matrix.
func WorldCorners(pose Pose, size float32) [CornerCount]math32.Vector2 {
	model := ModelMatrix(pose, size)
	local := LocalCorners(size)
	var out [CornerCount]math32.Vector2
	for i, c := range local {
		out[i] = transform.Apply(model, c)
	}
	return out
}

// SetPivot makes corner the active pivot without moving the drawn square.
// It reports whether the pivot changed.
func SetPivot(pose *Pose, size float32, corner int) bool {
	if corner < 0 || corner >= CornerCount {
		return false
	}
	from := pose.Pivot()
	pose.Corner = from
	if corner == from {
		return false
	}
	local := LocalCorners(size)
	pose.Translation = transform.Reanchor(local[from], local[corner], pose.Translation, pose.Angle, pose.Scale)
	pose.Corner = corner
	return true
}
