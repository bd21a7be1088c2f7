// SPDX-License-Identifier: Unlicense OR MIT

package f32

import "github.com/chewxy/math32"

// Vec3 is a three component vector, laid out like a GLSL vec3.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a four component vector, laid out like a GLSL vec4.
type Vec4 struct {
	X, Y, Z, W float32
}

// Mat4 is a 4x4 matrix in column-major order, the layout glUniformMatrix4fv
// expects without transposition.
type Mat4 [16]float32

func (v Vec3) Add(v2 Vec3) Vec3 {
	return Vec3{X: v.X + v2.X, Y: v.Y + v2.Y, Z: v.Z + v2.Z}
}

func (v Vec3) Sub(v2 Vec3) Vec3 {
	return Vec3{X: v.X - v2.X, Y: v.Y - v2.Y, Z: v.Z - v2.Z}
}

func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(v2 Vec3) float32 {
	return v.X*v2.X + v.Y*v2.Y + v.Z*v2.Z
}

func (v Vec3) Cross(v2 Vec3) Vec3 {
	return Vec3{
		X: v.Y*v2.Z - v.Z*v2.Y,
		Y: v.Z*v2.X - v.X*v2.Z,
		Z: v.X*v2.Y - v.Y*v2.X,
	}
}

func (v Vec3) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length, or v itself if it has zero
// length.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// XY drops the Z component.
func (v Vec3) XY() Point {
	return Point{X: v.X, Y: v.Y}
}

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho returns an orthographic projection mapping the box [left, right] x
// [bottom, top] x [-near, -far] to clip space.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rl, tb, fn := right-left, top-bottom, far-near
	return Mat4{
		2 / rl, 0, 0, 0,
		0, 2 / tb, 0, 0,
		0, 0, -2 / fn, 0,
		-(right + left) / rl, -(top + bottom) / tb, -(far + near) / fn, 1,
	}
}

// Ortho2D returns a projection for 2D drawing with a top-left origin over a
// width by height area, as used by the batchers. Depths in [-1, 1] are
// kept, with larger depths nearer.
func Ortho2D(width, height float32) Mat4 {
	return Ortho(0, width, height, 0, -1, 1)
}

// Translation returns a matrix translating by v.
func Translation(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scaling returns a matrix scaling by v.
func Scaling(v Vec3) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// RotationZ returns a counter clockwise rotation around the Z axis.
func RotationZ(radians float32) Mat4 {
	s, c := math32.Sincos(radians)
	m := Identity()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// At returns the element at row and column.
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// Mul returns m*n, the transform applying n first.
func (m Mat4) Mul(n Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += m[k*4+row] * n[col*4+k]
			}
			r[col*4+row] = s
		}
	}
	return r
}

// Transpose returns m with rows and columns swapped.
func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r[row*4+col] = m[col*4+row]
		}
	}
	return r
}

// TransformVec4 returns m*v.
func (m Mat4) TransformVec4(v Vec4) Vec4 {
	c := [4]float32{v.X, v.Y, v.Z, v.W}
	var r [4]float32
	for row := 0; row < 4; row++ {
		for k := 0; k < 4; k++ {
			r[row] += m[k*4+row] * c[k]
		}
	}
	return Vec4{X: r[0], Y: r[1], Z: r[2], W: r[3]}
}

// TransformPoint transforms p as the position (p, 0, 1), ignoring the
// projective component.
func (m Mat4) TransformPoint(p Point) Point {
	v := m.TransformVec4(Vec4{X: p.X, Y: p.Y, W: 1})
	return Point{X: v.X, Y: v.Y}
}
