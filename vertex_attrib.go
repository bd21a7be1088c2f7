// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"

	"trippygl.org/internal/gl"
)

// AttribType is the GLSL type of a vertex attribute, with the values of
// the GL enums.
type AttribType uint32

// ComponentType is the type vertex data components are stored as.
type ComponentType uint8

const (
	AttribFloat  AttribType = gl.FLOAT
	AttribVec2   AttribType = gl.FLOAT_VEC2
	AttribVec3   AttribType = gl.FLOAT_VEC3
	AttribVec4   AttribType = gl.FLOAT_VEC4
	AttribInt    AttribType = gl.INT
	AttribIVec2  AttribType = gl.INT_VEC2
	AttribIVec3  AttribType = gl.INT_VEC3
	AttribIVec4  AttribType = gl.INT_VEC4
	AttribUint   AttribType = gl.UNSIGNED_INT
	AttribUVec2  AttribType = gl.UNSIGNED_INT_VEC2
	AttribUVec3  AttribType = gl.UNSIGNED_INT_VEC3
	AttribUVec4  AttribType = gl.UNSIGNED_INT_VEC4
	AttribMat2   AttribType = gl.FLOAT_MAT2
	AttribMat3   AttribType = gl.FLOAT_MAT3
	AttribMat4   AttribType = gl.FLOAT_MAT4
	AttribMat2x3 AttribType = gl.FLOAT_MAT2x3
	AttribMat2x4 AttribType = gl.FLOAT_MAT2x4
	AttribMat3x2 AttribType = gl.FLOAT_MAT3x2
	AttribMat3x4 AttribType = gl.FLOAT_MAT3x4
	AttribMat4x2 AttribType = gl.FLOAT_MAT4x2
	AttribMat4x3 AttribType = gl.FLOAT_MAT4x3
)

const (
	ComponentFloat ComponentType = iota
	ComponentHalfFloat
	ComponentByte
	ComponentUnsignedByte
	ComponentShort
	ComponentUnsignedShort
	ComponentInt
	ComponentUnsignedInt
)

// VertexAttribDescription describes one attribute of a vertex: its shader
// type and how its data is stored. A padding description occupies bytes in
// the vertex without feeding an attribute.
type VertexAttribDescription struct {
	typ        AttribType
	stored     ComponentType
	normalized bool
	divisor    int
	padding    int
}

// NewVertexAttrib describes an attribute stored with the natural
// component type of t: float32 for float types, int32 or uint32 for
// integer types.
func NewVertexAttrib(t AttribType) VertexAttribDescription {
	stored := ComponentFloat
	switch t.baseType() {
	case gl.INT:
		stored = ComponentInt
	case gl.UNSIGNED_INT:
		stored = ComponentUnsignedInt
	}
	return VertexAttribDescription{typ: t, stored: stored}
}

// NewPackedVertexAttrib describes an attribute whose components are stored
// as stored. For float attributes, integer components are converted and,
// if normalized, mapped to [0, 1] or [-1, 1].
func NewPackedVertexAttrib(t AttribType, stored ComponentType, normalized bool) VertexAttribDescription {
	return VertexAttribDescription{typ: t, stored: stored, normalized: normalized}
}

// VertexAttribPadding describes size bytes of unused vertex data.
func VertexAttribPadding(size int) VertexAttribDescription {
	return VertexAttribDescription{padding: size}
}

// WithDivisor returns a copy of a advancing once every n instances
// instead of once per vertex.
func (a VertexAttribDescription) WithDivisor(n int) VertexAttribDescription {
	a.divisor = n
	return a
}

func (a VertexAttribDescription) Type() AttribType {
	return a.typ
}

func (a VertexAttribDescription) Normalized() bool {
	return a.normalized
}

func (a VertexAttribDescription) Divisor() int {
	return a.divisor
}

func (a VertexAttribDescription) IsPadding() bool {
	return a.padding > 0
}

// Slots returns the number of attribute indices the attribute uses.
// Matrices use one per column; padding uses none.
func (a VertexAttribDescription) Slots() int {
	if a.IsPadding() {
		return 0
	}
	cols, _ := a.typ.shape()
	return cols
}

// Components returns the number of components per slot.
func (a VertexAttribDescription) Components() int {
	_, rows := a.typ.shape()
	return rows
}

// Size returns the number of bytes the attribute occupies in a vertex.
func (a VertexAttribDescription) Size() int {
	if a.IsPadding() {
		return a.padding
	}
	return a.Slots() * a.Components() * a.stored.Size()
}

// integer reports whether the attribute reaches the shader as integers,
// through glVertexAttribIPointer.
func (a VertexAttribDescription) integer() bool {
	return a.typ.baseType() != gl.FLOAT
}

func (a VertexAttribDescription) validate(op string) error {
	if a.IsPadding() {
		return nil
	}
	if cols, _ := a.typ.shape(); cols == 0 {
		return fmt.Errorf("%s: attribute type %#x: %w", op, uint32(a.typ), ErrUnsupported)
	}
	if a.stored > ComponentUnsignedInt {
		return fmt.Errorf("%s: component type %d: %w", op, a.stored, ErrUnsupported)
	}
	if a.divisor < 0 {
		return fmt.Errorf("%s: divisor %d: %w", op, a.divisor, ErrOutOfRange)
	}
	if a.integer() && (a.normalized || a.stored == ComponentFloat || a.stored == ComponentHalfFloat) {
		return fmt.Errorf("%s: integer attribute stored as %d (normalized %v): %w", op, a.stored, a.normalized, ErrTypeMismatch)
	}
	return nil
}

// shape returns the columns and rows of t; vectors have one column. An
// unknown type has no columns.
func (t AttribType) shape() (cols, rows int) {
	switch t {
	case AttribFloat, AttribInt, AttribUint:
		return 1, 1
	case AttribVec2, AttribIVec2, AttribUVec2:
		return 1, 2
	case AttribVec3, AttribIVec3, AttribUVec3:
		return 1, 3
	case AttribVec4, AttribIVec4, AttribUVec4:
		return 1, 4
	case AttribMat2:
		return 2, 2
	case AttribMat2x3:
		return 2, 3
	case AttribMat2x4:
		return 2, 4
	case AttribMat3:
		return 3, 3
	case AttribMat3x2:
		return 3, 2
	case AttribMat3x4:
		return 3, 4
	case AttribMat4:
		return 4, 4
	case AttribMat4x2:
		return 4, 2
	case AttribMat4x3:
		return 4, 3
	default:
		return 0, 0
	}
}

// baseType returns FLOAT, INT or UNSIGNED_INT.
func (t AttribType) baseType() gl.Enum {
	switch t {
	case AttribInt, AttribIVec2, AttribIVec3, AttribIVec4:
		return gl.INT
	case AttribUint, AttribUVec2, AttribUVec3, AttribUVec4:
		return gl.UNSIGNED_INT
	default:
		return gl.FLOAT
	}
}

// Size returns the size in bytes of one component.
func (c ComponentType) Size() int {
	switch c {
	case ComponentByte, ComponentUnsignedByte:
		return 1
	case ComponentHalfFloat, ComponentShort, ComponentUnsignedShort:
		return 2
	default:
		return 4
	}
}

func (c ComponentType) glEnum() gl.Enum {
	switch c {
	case ComponentFloat:
		return gl.FLOAT
	case ComponentHalfFloat:
		return gl.HALF_FLOAT
	case ComponentByte:
		return gl.BYTE
	case ComponentUnsignedByte:
		return gl.UNSIGNED_BYTE
	case ComponentShort:
		return gl.SHORT
	case ComponentUnsignedShort:
		return gl.UNSIGNED_SHORT
	case ComponentInt:
		return gl.INT
	case ComponentUnsignedInt:
		return gl.UNSIGNED_INT
	default:
		panic("unknown component type")
	}
}
