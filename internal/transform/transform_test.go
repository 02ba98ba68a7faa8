package transform_test

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/plus3/pivotquad/internal/transform"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func assertPoint(t *testing.T, want, got math32.Vector2) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
}

func TestPrimitives(t *testing.T) {
	p := math32.Vec2(1, 2)

	tests := []struct {
		name string
		m    math32.Matrix4
		want math32.Vector2
	}{
		{"identity", transform.Identity(), math32.Vec2(1, 2)},
		{"translation", transform.Translation(3, -1), math32.Vec2(4, 1)},
		{"rotation quarter turn", transform.RotationZ(math32.Pi / 2), math32.Vec2(-2, 1)},
		{"scaling", transform.Scaling(2, 3), math32.Vec2(2, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPoint(t, tt.want, transform.Apply(tt.m, p))
		})
	}
}

func TestMulOrder(t *testing.T) {
	// Scale first, then translate.
	m := transform.Mul(transform.Translation(1, 0), transform.Scaling(2, 2))
	assertPoint(t, math32.Vec2(3, 2), transform.Apply(m, math32.Vec2(1, 1)))

	// Translate first, then scale.
	m = transform.Mul(transform.Scaling(2, 2), transform.Translation(1, 0))
	assertPoint(t, math32.Vec2(4, 2), transform.Apply(m, math32.Vec2(1, 1)))

	assert.Equal(t, transform.Identity(), transform.Chain())
}

func TestOrtho(t *testing.T) {
	proj := transform.Ortho(-2, 2, -1, 1, -1, 1)

	assertPoint(t, math32.Vec2(1, 1), transform.Apply(proj, math32.Vec2(2, 1)))
	assertPoint(t, math32.Vec2(-1, -1), transform.Apply(proj, math32.Vec2(-2, -1)))
	assertPoint(t, math32.Vec2(0.5, 0), transform.Apply(proj, math32.Vec2(1, 0)))

	offCenter := transform.Ortho(0, 4, 0, 2, -1, 1)
	assertPoint(t, math32.Vec2(1, 1), transform.Apply(offCenter, math32.Vec2(4, 2)))
	assertPoint(t, math32.Vec2(-1, -1), transform.Apply(offCenter, math32.Vec2(0, 0)))
	assertPoint(t, math32.Vec2(0, 0), transform.Apply(offCenter, math32.Vec2(2, 1)))
}

func TestModelKeepsPivotFixed(t *testing.T) {
	pivot := math32.Vec2(-0.2, -0.2)
	translation := math32.Vec2(0.3, 0.1)

	for _, angle := range []float32{0, 0.5, 1.7, math32.Pi, -2.2} {
		for _, scale := range []float32{0.5, 1, 1.5} {
			m := transform.Model(pivot, translation, angle, scale)
			assertPoint(t, pivot.Add(translation), transform.Apply(m, pivot))
		}
	}
}

func TestModelRotatesAboutPivot(t *testing.T) {
	pivot := math32.Vec2(-1, -1)
	m := transform.Model(pivot, math32.Vector2{}, math32.Pi/2, 1)

	// (1,-1) is 2 units right of the pivot; a quarter turn puts it 2 units above.
	assertPoint(t, math32.Vec2(-1, 1), transform.Apply(m, math32.Vec2(1, -1)))

	m = transform.Model(pivot, math32.Vector2{}, 0, 2)
	assertPoint(t, math32.Vec2(3, -1), transform.Apply(m, math32.Vec2(1, -1)))
}

func TestReanchorPreservesGeometry(t *testing.T) {
	corners := []math32.Vector2{
		math32.Vec2(-0.2, -0.2),
		math32.Vec2(0.2, -0.2),
		math32.Vec2(0.2, 0.2),
		math32.Vec2(-0.2, 0.2),
	}
	translation := math32.Vec2(0.4, -0.1)
	angle, scale := float32(0.9), float32(1.3)

	for from := range corners {
		for to := range corners {
			before := transform.Model(corners[from], translation, angle, scale)
			moved := transform.Reanchor(corners[from], corners[to], translation, angle, scale)
			after := transform.Model(corners[to], moved, angle, scale)

			for _, c := range corners {
				assertPoint(t, transform.Apply(before, c), transform.Apply(after, c))
			}
		}
	}
}
