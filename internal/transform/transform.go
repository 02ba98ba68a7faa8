// Package transform builds the 4x4 model and projection matrices that place
// the square on screen. Matrices are column-major, matching math32.Matrix4
// and the layout graphics APIs expect.
package transform

import (
	"cogentcore.org/core/math32"
)

// Identity returns the identity matrix.
func Identity() math32.Matrix4 {
	return *math32.Identity4()
}

// Translation returns a matrix that moves points by (x, y).
func Translation(x, y float32) math32.Matrix4 {
	var m math32.Matrix4
	m.SetTranslation(x, y, 0)
	return m
}

// RotationZ returns a counter-clockwise rotation by theta radians about the
// z axis.
func RotationZ(theta float32) math32.Matrix4 {
	var m math32.Matrix4
	m.SetRotationZ(theta)
	return m
}

// Scaling returns a matrix that scales x and y.
func Scaling(sx, sy float32) math32.Matrix4 {
	var m math32.Matrix4
	m.SetScale(sx, sy, 1)
	return m
}

// Mul returns a·b, so that Apply(Mul(a, b), p) == Apply(a, Apply(b, p)).
func Mul(a, b math32.Matrix4) math32.Matrix4 {
	var r math32.Matrix4
	r.MulMatrices(&a, &b)
	return r
}

// Chain multiplies the matrices left to right.
func Chain(ms ...math32.Matrix4) math32.Matrix4 {
	r := Identity()
	for _, m := range ms {
		r = Mul(r, m)
	}
	return r
}

// Ortho returns an orthographic projection mapping the box
// [left,right]x[bottom,top]x[near,far] onto clip space.
func Ortho(left, right, bottom, top, near, far float32) math32.Matrix4 {
	var m math32.Matrix4
	m.SetOrthographic(right-left, top-bottom, near, far)
	// SetOrthographic centres the box on the origin.
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	return m
}

// Apply transforms the point p (z = 0, w = 1) by m.
func Apply(m math32.Matrix4, p math32.Vector2) math32.Vector2 {
	v := math32.Vec4(p.X, p.Y, 0, 1).MulMatrix4(&m)
	return math32.Vec2(v.X, v.Y)
}

// Linear is the rotate-then-scale part of the model matrix, without any
// translation.
func Linear(angle, scale float32) math32.Matrix4 {
	return Mul(RotationZ(angle), Scaling(scale, scale))
}

// Model composes T(translation)·T(pivot)·R(angle)·S(scale)·T(-pivot).
// The pivot is in local coordinates and always lands on translation+pivot.
func Model(pivot, translation math32.Vector2, angle, scale float32) math32.Matrix4 {
	return Chain(
		Translation(translation.X, translation.Y),
		Translation(pivot.X, pivot.Y),
		Linear(angle, scale),
		Translation(-pivot.X, -pivot.Y),
	)
}

// Reanchor returns the translation that keeps the model unchanged when the
// pivot moves from one local point to another under the same angle and
// scale: t' = t + (A - I)(to - from).
func Reanchor(from, to, translation math32.Vector2, angle, scale float32) math32.Vector2 {
	d := to.Sub(from)
	moved := Apply(Linear(angle, scale), d)
	return translation.Add(moved.Sub(d))
}
