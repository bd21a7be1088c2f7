// SPDX-License-Identifier: Unlicense OR MIT

/*
Package f32 provides the float32 geometry used by trippygl: points and
rectangles mirroring package image, 3 and 4 component vectors, 2D affine
transforms and column-major 4x4 matrices laid out the way OpenGL expects
them.

Rectangles use a top-left origin with the axes extending right and down.
*/
package f32

import "github.com/chewxy/math32"

// A Point is a two dimensional point or vector.
type Point struct {
	X, Y float32
}

// A Rectangle contains the points (X, Y) where Min.X <= X < Max.X,
// Min.Y <= Y < Max.Y.
type Rectangle struct {
	Min, Max Point
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Rect is shorthand for Rectangle{Min: Pt(x0, y0), Max: Pt(x1, y1)}, with
// the coordinates swapped if needed.
func Rect(x0, y0, x1, y1 float32) Rectangle {
	return Rectangle{Min: Pt(x0, y0), Max: Pt(x1, y1)}.Canon()
}

func (p Point) Add(p2 Point) Point {
	return Point{X: p.X + p2.X, Y: p.Y + p2.Y}
}

func (p Point) Sub(p2 Point) Point {
	return Point{X: p.X - p2.X, Y: p.Y - p2.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float32) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// MulComponents returns the component-wise product of p and p2.
func (p Point) MulComponents(p2 Point) Point {
	return Point{X: p.X * p2.X, Y: p.Y * p2.Y}
}

// Rotate returns p rotated counter clockwise around the origin.
func (p Point) Rotate(radians float32) Point {
	s, c := math32.Sincos(radians)
	return Point{X: p.X*c - p.Y*s, Y: p.X*s + p.Y*c}
}

// Len returns the length of p.
func (p Point) Len() float32 {
	return math32.Hypot(p.X, p.Y)
}

// Size returns r's width and height.
func (r Rectangle) Size() Point {
	return Point{X: r.Dx(), Y: r.Dy()}
}

func (r Rectangle) Dx() float32 {
	return r.Max.X - r.Min.X
}

func (r Rectangle) Dy() float32 {
	return r.Max.Y - r.Min.Y
}

// Intersect returns the largest rectangle contained in both r and s.
func (r Rectangle) Intersect(s Rectangle) Rectangle {
	r.Min.X = math32.Max(r.Min.X, s.Min.X)
	r.Min.Y = math32.Max(r.Min.Y, s.Min.Y)
	r.Max.X = math32.Min(r.Max.X, s.Max.X)
	r.Max.Y = math32.Min(r.Max.Y, s.Max.Y)
	if r.Empty() {
		return Rectangle{}
	}
	return r
}

// Union returns the smallest rectangle containing both r and s. Empty
// rectangles are ignored.
func (r Rectangle) Union(s Rectangle) Rectangle {
	if r.Empty() {
		return s
	}
	if s.Empty() {
		return r
	}
	r.Min.X = math32.Min(r.Min.X, s.Min.X)
	r.Min.Y = math32.Min(r.Min.Y, s.Min.Y)
	r.Max.X = math32.Max(r.Max.X, s.Max.X)
	r.Max.Y = math32.Max(r.Max.Y, s.Max.Y)
	return r
}

// Canon returns r with Min to the upper left of Max.
func (r Rectangle) Canon() Rectangle {
	if r.Max.X < r.Min.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Max.Y < r.Min.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Empty reports whether r has no area.
func (r Rectangle) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Contains reports whether p lies in r.
func (r Rectangle) Contains(p Point) bool {
	return r.Min.X <= p.X && p.X < r.Max.X && r.Min.Y <= p.Y && p.Y < r.Max.Y
}

// Add offsets r by p.
func (r Rectangle) Add(p Point) Rectangle {
	return Rectangle{Min: r.Min.Add(p), Max: r.Max.Add(p)}
}

// Sub offsets r by -p.
func (r Rectangle) Sub(p Point) Rectangle {
	return Rectangle{Min: r.Min.Sub(p), Max: r.Max.Sub(p)}
}
