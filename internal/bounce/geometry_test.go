package bounce_test

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/plus3/pivotquad/internal/bounce"
	"github.com/plus3/pivotquad/internal/transform"
	"github.com/stretchr/testify/assert"
)

func TestLocalCorners(t *testing.T) {
	corners := bounce.LocalCorners(2)
	assert.Equal(t, [bounce.CornerCount]math32.Vector2{
		math32.Vec2(-1, -1),
		math32.Vec2(1, -1),
		math32.Vec2(1, 1),
		math32.Vec2(-1, 1),
	}, corners)
}

func TestVertices(t *testing.T) {
	c := bounce.LocalCorners(size)
	assert.Equal(t, [bounce.VertexCount]math32.Vector2{
		c[0], c[1], c[2],
		c[0], c[2], c[3],
	}, bounce.Vertices(size))
}

func TestModelMatrixKeepsPivotFixed(t *testing.T) {
	for corner := range bounce.CornerCount {
		pose := bounce.Pose{
			Angle:       1.2,
			Scale:       1.4,
			Translation: math32.Vec2(0.1, -0.3),
			Corner:      corner,
		}
		pivot := bounce.LocalCorners(size)[corner]

		got := bounce.WorldCorners(pose, size)[corner]

		assertPoint(t, pose.Translation.Add(pivot), got)
	}
}

func TestProjectionMatrix(t *testing.T) {
	m := bounce.ProjectionMatrix(2)
	assertPoint(t, math32.Vec2(1, -1), transform.Apply(m, math32.Vec2(2, -2)))
	assertPoint(t, math32.Vec2(0.25, 0.5), transform.Apply(m, math32.Vec2(0.5, 1)))
}

func TestSetPivot(t *testing.T) {
	t.Run("moves the pivot without moving the square", func(t *testing.T) {
		pose := bounce.Pose{Angle: 0.8, Scale: 0.7, Translation: math32.Vec2(0.2, 0.1)}
		before := bounce.WorldCorners(pose, size)

		for _, corner := range []int{2, 3, 1, 0} {
			assert.True(t, bounce.SetPivot(&pose, size, corner))
			assert.Equal(t, corner, pose.Corner)

			after := bounce.WorldCorners(pose, size)
			for i := range after {
				assertPoint(t, before[i], after[i])
			}
		}
	})

	t.Run("same corner is a no-op", func(t *testing.T) {
		pose := bounce.Pose{Angle: 0.8, Scale: 0.7, Corner: 2}
		before := pose
		assert.False(t, bounce.SetPivot(&pose, size, 2))
		assert.Equal(t, before, pose)
	})

	t.Run("out of range is ignored", func(t *testing.T) {
		pose := bounce.Pose{Scale: 1}
		assert.False(t, bounce.SetPivot(&pose, size, 4))
		assert.False(t, bounce.SetPivot(&pose, size, -1))
		assert.Equal(t, 0, pose.Corner)
	})
}

func TestOutOfRangeCornerWraps(t *testing.T) {
	tests := []struct {
		corner int
		want   int
	}{
		{4, 0},
		{6, 2},
		{-1, 3},
		{-6, 2},
	}

	for _, tt := range tests {
		pose := bounce.Pose{Angle: 0.4, Scale: 1.1, Translation: math32.Vec2(0.1, 0.2), Corner: tt.corner}
		assert.Equal(t, tt.want, pose.Pivot(), "corner %d", tt.corner)

		wrapped := pose
		wrapped.Corner = tt.want
		assert.NotPanics(t, func() { bounce.ModelMatrix(pose, size) })
		assert.Equal(t, bounce.ModelMatrix(wrapped, size), bounce.ModelMatrix(pose, size))
		assert.Equal(t, bounce.WorldCorners(wrapped, size), bounce.WorldCorners(pose, size))
	}

	t.Run("set pivot from a wrapped corner", func(t *testing.T) {
		pose := bounce.Pose{Angle: 0.8, Scale: 0.7, Corner: 5}
		before := bounce.WorldCorners(pose, size)

		assert.False(t, bounce.SetPivot(&pose, size, 1), "5 already means corner 1")
		assert.Equal(t, 1, pose.Corner)

		assert.True(t, bounce.SetPivot(&pose, size, 3))
		after := bounce.WorldCorners(pose, size)
		for i := range after {
			assertPoint(t, before[i], after[i])
		}
	})
}

func TestAdvance(t *testing.T) {
	t.Run("angle wraps within one turn", func(t *testing.T) {
		pose := bounce.Pose{Angle: 2*math32.Pi - 0.01, Scale: 1}
		spin := bounce.Spin{AngleStep: 0.03, MinScale: 0.5, MaxScale: 2}

		bounce.Advance(&pose, &spin)

		assert.InDelta(t, 0.02, pose.Angle, eps)
	})

	t.Run("scale clamps and turns around at the limits", func(t *testing.T) {
		pose := bounce.Pose{Scale: 1.99}
		spin := bounce.Spin{ScaleStep: 0.05, MinScale: 0.5, MaxScale: 2}

		bounce.Advance(&pose, &spin)
		assert.Equal(t, float32(2), pose.Scale)
		assert.Equal(t, float32(-0.05), spin.ScaleStep)

		pose.Scale = 0.52
		bounce.Advance(&pose, &spin)
		assert.Equal(t, float32(0.5), pose.Scale)
		assert.Equal(t, float32(0.05), spin.ScaleStep)
	})
}
