// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"

	"trippygl.org/internal/gl"
)

// TextureImageFormat is the storage format of a texture or renderbuffer.
type TextureImageFormat uint8

const (
	// FormatColor4b is 8-bit normalized RGBA.
	FormatColor4b TextureImageFormat = iota
	FormatFloat
	FormatVector2
	FormatVector3
	FormatVector4
	FormatInt
	FormatInt2
	FormatInt3
	FormatInt4
	FormatUnsignedInt
	FormatUnsignedInt2
	FormatUnsignedInt3
	FormatUnsignedInt4
	FormatDepth16
	FormatDepth24
	FormatDepth32f
	FormatDepth24Stencil8
)

// textureTriple is the internal format, client format and client type of
// a texture format.
type textureTriple struct {
	internalFormat gl.Enum
	format         gl.Enum
	typ            gl.Enum
}

var textureTriples = [...]textureTriple{
	FormatColor4b:         {gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE},
	FormatFloat:           {gl.R32F, gl.RED, gl.FLOAT},
	FormatVector2:         {gl.RG32F, gl.RG, gl.FLOAT},
	FormatVector3:         {gl.RGB32F, gl.RGB, gl.FLOAT},
	FormatVector4:         {gl.RGBA32F, gl.RGBA, gl.FLOAT},
	FormatInt:             {gl.R32I, gl.RED_INTEGER, gl.INT},
	FormatInt2:            {gl.RG32I, gl.RG_INTEGER, gl.INT},
	FormatInt3:            {gl.RGB32I, gl.RGB_INTEGER, gl.INT},
	FormatInt4:            {gl.RGBA32I, gl.RGBA_INTEGER, gl.INT},
	FormatUnsignedInt:     {gl.R32UI, gl.RED_INTEGER, gl.UNSIGNED_INT},
	FormatUnsignedInt2:    {gl.RG32UI, gl.RG_INTEGER, gl.UNSIGNED_INT},
	FormatUnsignedInt3:    {gl.RGB32UI, gl.RGB_INTEGER, gl.UNSIGNED_INT},
	FormatUnsignedInt4:    {gl.RGBA32UI, gl.RGBA_INTEGER, gl.UNSIGNED_INT},
	FormatDepth16:         {gl.DEPTH_COMPONENT16, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT},
	FormatDepth24:         {gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.UNSIGNED_INT},
	FormatDepth32f:        {gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT},
	FormatDepth24Stencil8: {gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8},
}

func (f TextureImageFormat) valid() bool {
	return int(f) < len(textureTriples)
}

func (f TextureImageFormat) triple() textureTriple {
	return textureTriples[f]
}

// PixelSize returns the size in bytes of one pixel of client data.
func (f TextureImageFormat) PixelSize() int {
	switch f {
	case FormatColor4b, FormatFloat, FormatInt, FormatUnsignedInt,
		FormatDepth24, FormatDepth32f, FormatDepth24Stencil8:
		return 4
	case FormatVector2, FormatInt2, FormatUnsignedInt2:
		return 8
	case FormatVector3, FormatInt3, FormatUnsignedInt3:
		return 12
	case FormatVector4, FormatInt4, FormatUnsignedInt4:
		return 16
	case FormatDepth16:
		return 2
	default:
		panic("unknown texture format")
	}
}

// IsDepth reports whether f has a depth component.
func (f TextureImageFormat) IsDepth() bool {
	switch f {
	case FormatDepth16, FormatDepth24, FormatDepth32f, FormatDepth24Stencil8:
		return true
	}
	return false
}

// IsStencil reports whether f has a stencil component.
func (f TextureImageFormat) IsStencil() bool {
	return f == FormatDepth24Stencil8
}

// IsInteger reports whether f is an unnormalized integer format. Integer
// textures only support nearest filtering.
func (f TextureImageFormat) IsInteger() bool {
	return f >= FormatInt && f <= FormatUnsignedInt4
}

func (f TextureImageFormat) String() string {
	switch f {
	case FormatColor4b:
		return "Color4b"
	case FormatFloat:
		return "Float"
	case FormatVector2:
		return "Vector2"
	case FormatVector3:
		return "Vector3"
	case FormatVector4:
		return "Vector4"
	case FormatInt:
		return "Int"
	case FormatInt2:
		return "Int2"
	case FormatInt3:
		return "Int3"
	case FormatInt4:
		return "Int4"
	case FormatUnsignedInt:
		return "UnsignedInt"
	case FormatUnsignedInt2:
		return "UnsignedInt2"
	case FormatUnsignedInt3:
		return "UnsignedInt3"
	case FormatUnsignedInt4:
		return "UnsignedInt4"
	case FormatDepth16:
		return "Depth16"
	case FormatDepth24:
		return "Depth24"
	case FormatDepth32f:
		return "Depth32f"
	case FormatDepth24Stencil8:
		return "Depth24Stencil8"
	default:
		return fmt.Sprintf("TextureImageFormat(%d)", uint8(f))
	}
}
