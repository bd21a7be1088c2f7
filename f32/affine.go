// SPDX-License-Identifier: Unlicense OR MIT

package f32

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Affine2D is a 2D affine transformation. The zero value is the identity.
//
// The matrix
//
//	[sx, hx, ox]
//	[hy, sy, oy]
//	[ 0,  0,  1]
//
// is stored with the identity subtracted from its diagonal.
type Affine2D struct {
	sx1, hx, ox float32
	hy, sy1, oy float32
}

// NewAffine2D returns the transform with rows [sx, hx, ox], [hy, sy, oy] and
// [0, 0, 1].
func NewAffine2D(sx, hx, ox, hy, sy, oy float32) Affine2D {
	return Affine2D{
		sx1: sx - 1,
		hx:  hx,
		ox:  ox,
		hy:  hy,
		sy1: sy - 1,
		oy:  oy,
	}
}

// Elems returns the matrix elements in row-major order.
func (a Affine2D) Elems() (sx, hx, ox, hy, sy, oy float32) {
	return a.sx1 + 1, a.hx, a.ox, a.hy, a.sy1 + 1, a.oy
}

// Offset returns a followed by a translation.
func (a Affine2D) Offset(offset Point) Affine2D {
	a.ox += offset.X
	a.oy += offset.Y
	return a
}

// Scale returns a followed by a scale around origin.
func (a Affine2D) Scale(origin, factor Point) Affine2D {
	return a.around(origin, func(a Affine2D) Affine2D {
		sx, hx, ox, hy, sy, oy := a.Elems()
		return NewAffine2D(
			sx*factor.X, hx*factor.X, ox*factor.X,
			hy*factor.Y, sy*factor.Y, oy*factor.Y,
		)
	})
}

// Rotate returns a followed by a counter clockwise rotation around origin.
func (a Affine2D) Rotate(origin Point, radians float32) Affine2D {
	s, c := math32.Sincos(radians)
	return a.around(origin, func(a Affine2D) Affine2D {
		sx, hx, ox, hy, sy, oy := a.Elems()
		return NewAffine2D(
			sx*c-hy*s, hx*c-sy*s, ox*c-oy*s,
			sx*s+hy*c, hx*s+sy*c, ox*s+oy*c,
		)
	})
}

// Shear returns a followed by a shear around origin.
func (a Affine2D) Shear(origin Point, radiansX, radiansY float32) Affine2D {
	tx, ty := math32.Tan(radiansX), math32.Tan(radiansY)
	return a.around(origin, func(a Affine2D) Affine2D {
		sx, hx, ox, hy, sy, oy := a.Elems()
		return NewAffine2D(
			sx+hy*tx, hx+sy*tx, ox+oy*tx,
			sx*ty+hy, hx*ty+sy, ox*ty+oy,
		)
	})
}

func (a Affine2D) around(origin Point, f func(Affine2D) Affine2D) Affine2D {
	if origin == (Point{}) {
		return f(a)
	}
	return f(a.Offset(origin.Mul(-1))).Offset(origin)
}

// Mul returns A*B, the transform applying B first.
func (A Affine2D) Mul(B Affine2D) Affine2D {
	asx, ahx, aox, ahy, asy, aoy := A.Elems()
	bsx, bhx, box, bhy, bsy, boy := B.Elems()
	return NewAffine2D(
		asx*bsx+ahx*bhy, asx*bhx+ahx*bsy, asx*box+ahx*boy+aox,
		ahy*bsx+asy*bhy, ahy*bhx+asy*bsy, ahy*box+asy*boy+aoy,
	)
}

// Invert returns the inverse transform. Nearly singular transforms produce
// large or infinite elements.
func (a Affine2D) Invert() Affine2D {
	if a.sx1 == 0 && a.hx == 0 && a.hy == 0 && a.sy1 == 0 {
		return Affine2D{ox: -a.ox, oy: -a.oy}
	}
	sx, hx, ox, hy, sy, oy := a.Elems()
	det := sx*sy - hx*hy
	isx, ihx := sy/det, -hx/det
	ihy, isy := -hy/det, sx/det
	return NewAffine2D(
		isx, ihx, -isx*ox-ihx*oy,
		ihy, isy, -ihy*ox-isy*oy,
	)
}

// Transform returns a*p.
func (a Affine2D) Transform(p Point) Point {
	sx, hx, ox, hy, sy, oy := a.Elems()
	return Point{
		X: p.X*sx + p.Y*hx + ox,
		Y: p.X*hy + p.Y*sy + oy,
	}
}

// Mat4 embeds a in the xy plane of a 4x4 matrix.
func (a Affine2D) Mat4() Mat4 {
	sx, hx, ox, hy, sy, oy := a.Elems()
	return Mat4{
		sx, hy, 0, 0,
		hx, sy, 0, 0,
		0, 0, 1, 0,
		ox, oy, 0, 1,
	}
}

func (a Affine2D) String() string {
	sx, hx, ox, hy, sy, oy := a.Elems()
	return fmt.Sprintf("[[%f %f %f] [%f %f %f]]", sx, hx, ox, hy, sy, oy)
}
