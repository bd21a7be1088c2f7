// SPDX-License-Identifier: Unlicense OR MIT

package gl

import "errors"

// Functions is the OpenGL entry point table used by trippygl. Sizes, offsets
// and counts are in bytes unless noted otherwise. Implementations assume the
// GL context is current on the calling goroutine.
type Functions interface {
	GetError() Enum
	GetInteger(pname Enum) int
	GetString(pname Enum) string
	Flush()
	Finish()

	CreateBuffer() Buffer
	DeleteBuffer(b Buffer)
	BindBuffer(target Enum, b Buffer)
	BindBufferRange(target Enum, index int, b Buffer, offset, size int)
	BufferData(target Enum, size int, usage Enum, data []byte)
	BufferSubData(target Enum, offset int, src []byte)
	GetBufferSubData(target Enum, offset int, dst []byte)
	CopyBufferSubData(readTarget, writeTarget Enum, readOffset, writeOffset, size int)

	CreateTexture() Texture
	DeleteTexture(t Texture)
	ActiveTexture(unit Enum)
	BindTexture(target Enum, t Texture)
	TexImage1D(target Enum, level int, internalFormat Enum, width int, format, ty Enum, data []byte)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, ty Enum, data []byte)
	TexImage3D(target Enum, level int, internalFormat Enum, width, height, depth int, format, ty Enum, data []byte)
	TexImage2DMultisample(target Enum, samples int, internalFormat Enum, width, height int, fixedLocations bool)
	TexImage3DMultisample(target Enum, samples int, internalFormat Enum, width, height, depth int, fixedLocations bool)
	TexSubImage1D(target Enum, level, x, width int, format, ty Enum, data []byte)
	TexSubImage2D(target Enum, level, x, y, width, height int, format, ty Enum, data []byte)
	TexSubImage3D(target Enum, level, x, y, z, width, height, depth int, format, ty Enum, data []byte)
	GetTexImage(target Enum, level int, format, ty Enum, dst []byte)
	TexParameteri(target, pname Enum, param int)
	GenerateMipmap(target Enum)
	PixelStorei(pname Enum, param int)

	CreateShader(ty Enum) Shader
	DeleteShader(s Shader)
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	CreateProgram() Program
	DeleteProgram(p Program)
	AttachShader(p Program, s Shader)
	DetachShader(p Program, s Shader)
	BindAttribLocation(p Program, a Attrib, name string)
	LinkProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	UseProgram(p Program)
	GetActiveAttrib(p Program, index int) (name string, size int, ty Enum)
	GetAttribLocation(p Program, name string) int
	GetActiveUniform(p Program, index int) (name string, size int, ty Enum)
	GetUniformLocation(p Program, name string) Uniform
	GetUniformBlockIndex(p Program, name string) uint
	GetActiveUniformBlockName(p Program, index uint) string
	GetActiveUniformBlocki(p Program, index uint, pname Enum) int
	UniformBlockBinding(p Program, index uint, binding uint)

	Uniform1f(dst Uniform, v float32)
	Uniform2f(dst Uniform, v0, v1 float32)
	Uniform3f(dst Uniform, v0, v1, v2 float32)
	Uniform4f(dst Uniform, v0, v1, v2, v3 float32)
	Uniform1i(dst Uniform, v int)
	Uniform2i(dst Uniform, v0, v1 int)
	Uniform3i(dst Uniform, v0, v1, v2 int)
	Uniform4i(dst Uniform, v0, v1, v2, v3 int)
	Uniform1ui(dst Uniform, v uint32)
	Uniform2ui(dst Uniform, v0, v1 uint32)
	Uniform3ui(dst Uniform, v0, v1, v2 uint32)
	Uniform4ui(dst Uniform, v0, v1, v2, v3 uint32)
	Uniform1fv(dst Uniform, v []float32)
	Uniform1iv(dst Uniform, v []int32)
	UniformMatrix2fv(dst Uniform, transpose bool, v []float32)
	UniformMatrix3fv(dst Uniform, transpose bool, v []float32)
	UniformMatrix4fv(dst Uniform, transpose bool, v []float32)

	CreateVertexArray() VertexArray
	DeleteVertexArray(a VertexArray)
	BindVertexArray(a VertexArray)
	EnableVertexAttribArray(a Attrib)
	DisableVertexAttribArray(a Attrib)
	VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int)
	VertexAttribIPointer(dst Attrib, size int, ty Enum, stride, offset int)
	VertexAttribDivisor(dst Attrib, divisor int)

	CreateFramebuffer() Framebuffer
	DeleteFramebuffer(f Framebuffer)
	BindFramebuffer(target Enum, f Framebuffer)
	FramebufferTexture1D(target, attachment, texTarget Enum, t Texture, level int)
	FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int)
	FramebufferTextureLayer(target, attachment Enum, t Texture, level, layer int)
	FramebufferRenderbuffer(target, attachment, renderbufferTarget Enum, r Renderbuffer)
	CheckFramebufferStatus(target Enum) Enum
	BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask Enum, filter Enum)
	ReadPixels(x, y, width, height int, format, ty Enum, data []byte)
	CreateRenderbuffer() Renderbuffer
	DeleteRenderbuffer(r Renderbuffer)
	BindRenderbuffer(target Enum, r Renderbuffer)
	RenderbufferStorage(target, internalFormat Enum, width, height int)
	RenderbufferStorageMultisample(target Enum, samples int, internalFormat Enum, width, height int)

	Enable(cap Enum)
	Disable(cap Enum)
	BlendEquationSeparate(modeRGB, modeAlpha Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum)
	BlendColor(r, g, b, a float32)
	DepthFunc(fn Enum)
	DepthMask(mask bool)
	DepthRangef(near, far float32)
	ClearDepthf(d float32)
	StencilFuncSeparate(face, fn Enum, ref int, mask uint32)
	StencilOpSeparate(face, sfail, dpfail, dppass Enum)
	StencilMaskSeparate(face Enum, mask uint32)
	ClearStencil(s int)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	CullFace(mode Enum)
	FrontFace(mode Enum)
	Viewport(x, y, width, height int)
	Scissor(x, y, width, height int)

	DrawArrays(mode Enum, first, count int)
	DrawElements(mode Enum, count int, ty Enum, offset int)
	DrawArraysInstanced(mode Enum, first, count, instances int)
	DrawElementsInstanced(mode Enum, count int, ty Enum, offset, instances int)
}

// ErrNoFunctions is returned by NewFunctions when no native implementation
// has been registered.
var ErrNoFunctions = errors.New("gl: no native OpenGL implementation registered")

// NewNativeFunctions is set by native driver packages in their init
// functions.
var NewNativeFunctions func() (Functions, error)

// NewFunctions returns the registered native implementation, loaded for the
// GL context current on the calling goroutine.
func NewFunctions() (Functions, error) {
	if NewNativeFunctions == nil {
		return nil, ErrNoFunctions
	}
	return NewNativeFunctions()
}
