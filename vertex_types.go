// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"image/color"

	"trippygl.org/f32"
)

// The vertex types below are tightly packed; colors are stored as four
// normalized bytes.

type VertexPosition struct {
	Position f32.Vec3
}

type VertexColor struct {
	Position f32.Vec3
	Color    color.NRGBA
}

type VertexTexture struct {
	Position  f32.Vec3
	TexCoords f32.Point
}

// VertexColorTexture is the vertex type of the texture batcher.
type VertexColorTexture struct {
	Position  f32.Vec3
	Color     color.NRGBA
	TexCoords f32.Point
}

type VertexNormal struct {
	Position f32.Vec3
	Normal   f32.Vec3
}

type VertexNormalColor struct {
	Position f32.Vec3
	Normal   f32.Vec3
	Color    color.NRGBA
}

type VertexNormalTexture struct {
	Position  f32.Vec3
	Normal    f32.Vec3
	TexCoords f32.Point
}

type VertexNormalColorTexture struct {
	Position  f32.Vec3
	Normal    f32.Vec3
	Color     color.NRGBA
	TexCoords f32.Point
}

var (
	attribPosition  = NewVertexAttrib(AttribVec3)
	attribNormal    = NewVertexAttrib(AttribVec3)
	attribColor     = NewPackedVertexAttrib(AttribVec4, ComponentUnsignedByte, true)
	attribTexCoords = NewVertexAttrib(AttribVec2)
)

func (VertexPosition) AttribDescriptions() []VertexAttribDescription {
	return []VertexAttribDescription{attribPosition}
}

func (VertexColor) AttribDescriptions() []VertexAttribDescription {
	return []VertexAttribDescription{attribPosition, attribColor}
}

func (VertexTexture) AttribDescriptions() []VertexAttribDescription {
	return []VertexAttribDescription{attribPosition, attribTexCoords}
}

func (VertexColorTexture) AttribDescriptions() []VertexAttribDescription {
	return []VertexAttribDescription{attribPosition, attribColor, attribTexCoords}
}

func (VertexNormal) AttribDescriptions() []VertexAttribDescription {
	return []VertexAttribDescription{attribPosition, attribNormal}
}

func (VertexNormalColor) AttribDescriptions() []VertexAttribDescription {
	return []VertexAttribDescription{attribPosition, attribNormal, attribColor}
}

func (VertexNormalTexture) AttribDescriptions() []VertexAttribDescription {
	return []VertexAttribDescription{attribPosition, attribNormal, attribTexCoords}
}

func (VertexNormalColorTexture) AttribDescriptions() []VertexAttribDescription {
	return []VertexAttribDescription{attribPosition, attribNormal, attribColor, attribTexCoords}
}
