// SPDX-License-Identifier: Unlicense OR MIT

package f32

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertNear(t *testing.T, want, got Point, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, 1e-5, msgAndArgs...)
}

func TestAffine2DIdentity(t *testing.T) {
	// The batchers skip transforming vertices when the transform equals the
	// zero value, so an explicit identity must compare equal to it.
	assert.Equal(t, Affine2D{}, NewAffine2D(1, 0, 0, 0, 1, 0))
	sx, hx, ox, hy, sy, oy := Affine2D{}.Elems()
	assert.Equal(t, []float32{1, 0, 0, 0, 1, 0}, []float32{sx, hx, ox, hy, sy, oy})
	assert.Equal(t, Pt(3, -7), Affine2D{}.Transform(Pt(3, -7)))
	assert.Equal(t, Identity(), Affine2D{}.Mat4())
}

func TestAffine2DElems(t *testing.T) {
	a := NewAffine2D(2, 0.5, 3, -1, 4, 7)
	sx, hx, ox, hy, sy, oy := a.Elems()
	assert.Equal(t, []float32{2, 0.5, 3, -1, 4, 7}, []float32{sx, hx, ox, hy, sy, oy})
	assert.Equal(t, a, NewAffine2D(a.Elems()))
	assert.Equal(t, Pt(2*1+0.5*2+3, -1*1+4*2+7), a.Transform(Pt(1, 2)))
	assert.Equal(t, "[[2.000000 0.500000 3.000000] [-1.000000 4.000000 7.000000]]", a.String())
}

func TestAffine2DTransform(t *testing.T) {
	tests := []struct {
		name string
		a    Affine2D
		in   Point
		want Point
	}{
		{"Offset", Affine2D{}.Offset(Pt(2, -3)), Pt(1, 2), Pt(3, -1)},
		{"Scale", Affine2D{}.Scale(Point{}, Pt(-1, 2)), Pt(1, 2), Pt(-1, 4)},
		{"ScaleAround", Affine2D{}.Scale(Pt(4, 5), Pt(2, 3)), Pt(-1, -1), Pt(-6, -13)},
		{"Rotate", Affine2D{}.Rotate(Point{}, math.Pi/2), Pt(1, 0), Pt(0, 1)},
		{"RotateAround", Affine2D{}.Rotate(Pt(1, 1), -math.Pi/2), Pt(-1, -1), Pt(-1, 3)},
		{"Shear", Affine2D{}.Shear(Point{}, math.Pi/4, 0), Pt(1, 1), Pt(2, 1)},
		// A sprite moved to (5, 1) and then zoomed 2x about the origin.
		{"OffsetThenScale", Affine2D{}.Offset(Pt(5, 1)).Scale(Point{}, Pt(2, 2)), Pt(1, 1), Pt(12, 4)},
		{"ScaleThenOffset", Affine2D{}.Scale(Point{}, Pt(2, 2)).Offset(Pt(5, 1)), Pt(1, 1), Pt(7, 3)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := test.a.Transform(test.in)
			assertNear(t, test.want, got)
			assertNear(t, test.in, test.a.Invert().Transform(got), "inverse")
			m := test.a.Mat4().TransformPoint(test.in)
			assertNear(t, test.want, m, "Mat4")
		})
	}
}

func TestAffine2DMulOrder(t *testing.T) {
	offset := Affine2D{}.Offset(Pt(100, 100))
	scale := Affine2D{}.Scale(Point{}, Pt(2, 2))
	// Mul applies its argument first.
	assert.Equal(t, Affine2D{}.Offset(Pt(100, 100)).Scale(Point{}, Pt(2, 2)), scale.Mul(offset))
	assert.Equal(t, Pt(202, 202), scale.Mul(offset).Transform(Pt(1, 1)))
	assert.Equal(t, Pt(102, 102), offset.Mul(scale).Transform(Pt(1, 1)))
}
