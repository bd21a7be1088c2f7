// SPDX-License-Identifier: Unlicense OR MIT

// Package opengl registers the native OpenGL 3.3 core driver of trippygl.
// Import it for its side effect:
//
//	import _ "trippygl.org/driver/opengl"
//
// The GL context must be current on the calling goroutine when
// trippygl.NewDevice is called.
package opengl

import (
	"fmt"
	"unsafe"

	gogl "github.com/go-gl/gl/v3.3-core/gl"

	"trippygl.org/internal/gl"
)

func init() {
	gl.NewNativeFunctions = func() (gl.Functions, error) {
		if err := gogl.Init(); err != nil {
			return nil, fmt.Errorf("opengl: %w", err)
		}
		return new(Functions), nil
	}
}

// Functions implements gl.Functions with go-gl.
type Functions struct {
	int32s [1]int32
}

func ptr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

func cstr(s string) *uint8 {
	return gogl.Str(s + "\x00")
}

func (f *Functions) GetError() gl.Enum {
	return gl.Enum(gogl.GetError())
}

func (f *Functions) GetInteger(pname gl.Enum) int {
	gogl.GetIntegerv(uint32(pname), &f.int32s[0])
	return int(f.int32s[0])
}

func (f *Functions) GetString(pname gl.Enum) string {
	return gogl.GoStr(gogl.GetString(uint32(pname)))
}

func (f *Functions) Flush() {
	gogl.Flush()
}

func (f *Functions) Finish() {
	gogl.Finish()
}

func (f *Functions) CreateBuffer() gl.Buffer {
	var b uint32
	gogl.GenBuffers(1, &b)
	return gl.Buffer{V: uint(b)}
}

func (f *Functions) DeleteBuffer(b gl.Buffer) {
	v := uint32(b.V)
	gogl.DeleteBuffers(1, &v)
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	gogl.BindBuffer(uint32(target), uint32(b.V))
}

func (f *Functions) BindBufferRange(target gl.Enum, index int, b gl.Buffer, offset, size int) {
	gogl.BindBufferRange(uint32(target), uint32(index), uint32(b.V), offset, size)
}

func (f *Functions) BufferData(target gl.Enum, size int, usage gl.Enum, data []byte) {
	gogl.BufferData(uint32(target), size, ptr(data), uint32(usage))
}

func (f *Functions) BufferSubData(target gl.Enum, offset int, src []byte) {
	gogl.BufferSubData(uint32(target), offset, len(src), ptr(src))
}

func (f *Functions) GetBufferSubData(target gl.Enum, offset int, dst []byte) {
	gogl.GetBufferSubData(uint32(target), offset, len(dst), ptr(dst))
}

func (f *Functions) CopyBufferSubData(readTarget, writeTarget gl.Enum, readOffset, writeOffset, size int) {
	gogl.CopyBufferSubData(uint32(readTarget), uint32(writeTarget), readOffset, writeOffset, size)
}

func (f *Functions) CreateTexture() gl.Texture {
	var t uint32
	gogl.GenTextures(1, &t)
	return gl.Texture{V: uint(t)}
}

func (f *Functions) DeleteTexture(t gl.Texture) {
	v := uint32(t.V)
	gogl.DeleteTextures(1, &v)
}

func (f *Functions) ActiveTexture(unit gl.Enum) {
	gogl.ActiveTexture(uint32(unit))
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	gogl.BindTexture(uint32(target), uint32(t.V))
}

func (f *Functions) TexImage1D(target gl.Enum, level int, internalFormat gl.Enum, width int, format, ty gl.Enum, data []byte) {
	gogl.TexImage1D(uint32(target), int32(level), int32(internalFormat), int32(width), 0, uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	gogl.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) TexImage3D(target gl.Enum, level int, internalFormat gl.Enum, width, height, depth int, format, ty gl.Enum, data []byte) {
	gogl.TexImage3D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), int32(depth), 0, uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) TexImage2DMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height int, fixedLocations bool) {
	gogl.TexImage2DMultisample(uint32(target), int32(samples), uint32(internalFormat), int32(width), int32(height), fixedLocations)
}

func (f *Functions) TexImage3DMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height, depth int, fixedLocations bool) {
	gogl.TexImage3DMultisample(uint32(target), int32(samples), uint32(internalFormat), int32(width), int32(height), int32(depth), fixedLocations)
}

func (f *Functions) TexSubImage1D(target gl.Enum, level, x, width int, format, ty gl.Enum, data []byte) {
	gogl.TexSubImage1D(uint32(target), int32(level), int32(x), int32(width), uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) TexSubImage2D(target gl.Enum, level, x, y, width, height int, format, ty gl.Enum, data []byte) {
	gogl.TexSubImage2D(uint32(target), int32(level), int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) TexSubImage3D(target gl.Enum, level, x, y, z, width, height, depth int, format, ty gl.Enum, data []byte) {
	gogl.TexSubImage3D(uint32(target), int32(level), int32(x), int32(y), int32(z), int32(width), int32(height), int32(depth), uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) GetTexImage(target gl.Enum, level int, format, ty gl.Enum, dst []byte) {
	gogl.GetTexImage(uint32(target), int32(level), uint32(format), uint32(ty), ptr(dst))
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) {
	gogl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (f *Functions) GenerateMipmap(target gl.Enum) {
	gogl.GenerateMipmap(uint32(target))
}

func (f *Functions) PixelStorei(pname gl.Enum, param int) {
	gogl.PixelStorei(uint32(pname), int32(param))
}

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	return gl.Shader{V: uint(gogl.CreateShader(uint32(ty)))}
}

func (f *Functions) DeleteShader(s gl.Shader) {
	gogl.DeleteShader(uint32(s.V))
}

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	csrc, free := gogl.Strs(src + "\x00")
	defer free()
	gogl.ShaderSource(uint32(s.V), 1, csrc, nil)
}

func (f *Functions) CompileShader(s gl.Shader) {
	gogl.CompileShader(uint32(s.V))
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	gogl.GetShaderiv(uint32(s.V), uint32(pname), &f.int32s[0])
	return int(f.int32s[0])
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	n := f.GetShaderi(s, gl.INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	buf := make([]uint8, n+1)
	gogl.GetShaderInfoLog(uint32(s.V), int32(n), nil, &buf[0])
	return gogl.GoStr(&buf[0])
}

func (f *Functions) CreateProgram() gl.Program {
	return gl.Program{V: uint(gogl.CreateProgram())}
}

func (f *Functions) DeleteProgram(p gl.Program) {
	gogl.DeleteProgram(uint32(p.V))
}

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	gogl.AttachShader(uint32(p.V), uint32(s.V))
}

func (f *Functions) DetachShader(p gl.Program, s gl.Shader) {
	gogl.DetachShader(uint32(p.V), uint32(s.V))
}

func (f *Functions) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	gogl.BindAttribLocation(uint32(p.V), uint32(a), cstr(name))
}

func (f *Functions) LinkProgram(p gl.Program) {
	gogl.LinkProgram(uint32(p.V))
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	gogl.GetProgramiv(uint32(p.V), uint32(pname), &f.int32s[0])
	return int(f.int32s[0])
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	n := f.GetProgrami(p, gl.INFO_LOG_LENGTH)
	if n == 0 {
		return ""
	}
	buf := make([]uint8, n+1)
	gogl.GetProgramInfoLog(uint32(p.V), int32(n), nil, &buf[0])
	return gogl.GoStr(&buf[0])
}

func (f *Functions) UseProgram(p gl.Program) {
	gogl.UseProgram(uint32(p.V))
}

// activeVariable calls get, a glGetActiveAttrib or glGetActiveUniform,
// with a name buffer of the program's maximum name length.
func (f *Functions) activeVariable(p gl.Program, maxLen gl.Enum, index int, get func(program, index uint32, bufSize int32, length, size *int32, ty *uint32, name *uint8)) (string, int, gl.Enum) {
	n := f.GetProgrami(p, maxLen)
	buf := make([]uint8, n+1)
	var length, size int32
	var ty uint32
	get(uint32(p.V), uint32(index), int32(len(buf)), &length, &size, &ty, &buf[0])
	return string(buf[:length]), int(size), gl.Enum(ty)
}

func (f *Functions) GetActiveAttrib(p gl.Program, index int) (string, int, gl.Enum) {
	return f.activeVariable(p, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, index, gogl.GetActiveAttrib)
}

func (f *Functions) GetAttribLocation(p gl.Program, name string) int {
	return int(gogl.GetAttribLocation(uint32(p.V), cstr(name)))
}

func (f *Functions) GetActiveUniform(p gl.Program, index int) (string, int, gl.Enum) {
	return f.activeVariable(p, gl.ACTIVE_UNIFORM_MAX_LENGTH, index, gogl.GetActiveUniform)
}

func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	return gl.Uniform{V: int(gogl.GetUniformLocation(uint32(p.V), cstr(name)))}
}

func (f *Functions) GetUniformBlockIndex(p gl.Program, name string) uint {
	return uint(gogl.GetUniformBlockIndex(uint32(p.V), cstr(name)))
}

func (f *Functions) GetActiveUniformBlockName(p gl.Program, index uint) string {
	n := f.GetActiveUniformBlocki(p, index, gl.UNIFORM_BLOCK_NAME_LENGTH)
	buf := make([]uint8, n+1)
	var length int32
	gogl.GetActiveUniformBlockName(uint32(p.V), uint32(index), int32(len(buf)), &length, &buf[0])
	return string(buf[:length])
}

func (f *Functions) GetActiveUniformBlocki(p gl.Program, index uint, pname gl.Enum) int {
	gogl.GetActiveUniformBlockiv(uint32(p.V), uint32(index), uint32(pname), &f.int32s[0])
	return int(f.int32s[0])
}

func (f *Functions) UniformBlockBinding(p gl.Program, index uint, binding uint) {
	gogl.UniformBlockBinding(uint32(p.V), uint32(index), uint32(binding))
}

func (f *Functions) Uniform1f(dst gl.Uniform, v float32) {
	gogl.Uniform1f(int32(dst.V), v)
}

func (f *Functions) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	gogl.Uniform2f(int32(dst.V), v0, v1)
}

func (f *Functions) Uniform3f(dst gl.Uniform, v0, v1, v2 float32) {
	gogl.Uniform3f(int32(dst.V), v0, v1, v2)
}

func (f *Functions) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) {
	gogl.Uniform4f(int32(dst.V), v0, v1, v2, v3)
}

func (f *Functions) Uniform1i(dst gl.Uniform, v int) {
	gogl.Uniform1i(int32(dst.V), int32(v))
}

func (f *Functions) Uniform2i(dst gl.Uniform, v0, v1 int) {
	gogl.Uniform2i(int32(dst.V), int32(v0), int32(v1))
}

func (f *Functions) Uniform3i(dst gl.Uniform, v0, v1, v2 int) {
	gogl.Uniform3i(int32(dst.V), int32(v0), int32(v1), int32(v2))
}

func (f *Functions) Uniform4i(dst gl.Uniform, v0, v1, v2, v3 int) {
	gogl.Uniform4i(int32(dst.V), int32(v0), int32(v1), int32(v2), int32(v3))
}

func (f *Functions) Uniform1ui(dst gl.Uniform, v uint32) {
	gogl.Uniform1ui(int32(dst.V), v)
}

func (f *Functions) Uniform2ui(dst gl.Uniform, v0, v1 uint32) {
	gogl.Uniform2ui(int32(dst.V), v0, v1)
}

func (f *Functions) Uniform3ui(dst gl.Uniform, v0, v1, v2 uint32) {
	gogl.Uniform3ui(int32(dst.V), v0, v1, v2)
}

func (f *Functions) Uniform4ui(dst gl.Uniform, v0, v1, v2, v3 uint32) {
	gogl.Uniform4ui(int32(dst.V), v0, v1, v2, v3)
}

func (f *Functions) Uniform1fv(dst gl.Uniform, v []float32) {
	if len(v) > 0 {
		gogl.Uniform1fv(int32(dst.V), int32(len(v)), &v[0])
	}
}

func (f *Functions) Uniform1iv(dst gl.Uniform, v []int32) {
	if len(v) > 0 {
		gogl.Uniform1iv(int32(dst.V), int32(len(v)), &v[0])
	}
}

func (f *Functions) UniformMatrix2fv(dst gl.Uniform, transpose bool, v []float32) {
	if len(v) > 0 {
		gogl.UniformMatrix2fv(int32(dst.V), int32(len(v)/4), transpose, &v[0])
	}
}

func (f *Functions) UniformMatrix3fv(dst gl.Uniform, transpose bool, v []float32) {
	if len(v) > 0 {
		gogl.UniformMatrix3fv(int32(dst.V), int32(len(v)/9), transpose, &v[0])
	}
}

func (f *Functions) UniformMatrix4fv(dst gl.Uniform, transpose bool, v []float32) {
	if len(v) > 0 {
		gogl.UniformMatrix4fv(int32(dst.V), int32(len(v)/16), transpose, &v[0])
	}
}

func (f *Functions) CreateVertexArray() gl.VertexArray {
	var a uint32
	gogl.GenVertexArrays(1, &a)
	return gl.VertexArray{V: uint(a)}
}

func (f *Functions) DeleteVertexArray(a gl.VertexArray) {
	v := uint32(a.V)
	gogl.DeleteVertexArrays(1, &v)
}

func (f *Functions) BindVertexArray(a gl.VertexArray) {
	gogl.BindVertexArray(uint32(a.V))
}

func (f *Functions) EnableVertexAttribArray(a gl.Attrib) {
	gogl.EnableVertexAttribArray(uint32(a))
}

func (f *Functions) DisableVertexAttribArray(a gl.Attrib) {
	gogl.DisableVertexAttribArray(uint32(a))
}

func (f *Functions) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	gogl.VertexAttribPointerWithOffset(uint32(dst), int32(size), uint32(ty), normalized, int32(stride), uintptr(offset))
}

func (f *Functions) VertexAttribIPointer(dst gl.Attrib, size int, ty gl.Enum, stride, offset int) {
	gogl.VertexAttribIPointerWithOffset(uint32(dst), int32(size), uint32(ty), int32(stride), uintptr(offset))
}

func (f *Functions) VertexAttribDivisor(dst gl.Attrib, divisor int) {
	gogl.VertexAttribDivisor(uint32(dst), uint32(divisor))
}

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	var fb uint32
	gogl.GenFramebuffers(1, &fb)
	return gl.Framebuffer{V: uint(fb)}
}

func (f *Functions) DeleteFramebuffer(fb gl.Framebuffer) {
	v := uint32(fb.V)
	gogl.DeleteFramebuffers(1, &v)
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	gogl.BindFramebuffer(uint32(target), uint32(fb.V))
}

func (f *Functions) FramebufferTexture1D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	gogl.FramebufferTexture1D(uint32(target), uint32(attachment), uint32(texTarget), uint32(t.V), int32(level))
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	gogl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), uint32(t.V), int32(level))
}

func (f *Functions) FramebufferTextureLayer(target, attachment gl.Enum, t gl.Texture, level, layer int) {
	gogl.FramebufferTextureLayer(uint32(target), uint32(attachment), uint32(t.V), int32(level), int32(layer))
}

func (f *Functions) FramebufferRenderbuffer(target, attachment, renderbufferTarget gl.Enum, r gl.Renderbuffer) {
	gogl.FramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(renderbufferTarget), uint32(r.V))
}

func (f *Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	return gl.Enum(gogl.CheckFramebufferStatus(uint32(target)))
}

func (f *Functions) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask gl.Enum, filter gl.Enum) {
	gogl.BlitFramebuffer(int32(sx0), int32(sy0), int32(sx1), int32(sy1), int32(dx0), int32(dy0), int32(dx1), int32(dy1), uint32(mask), uint32(filter))
}

func (f *Functions) ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte) {
	gogl.ReadPixels(int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) CreateRenderbuffer() gl.Renderbuffer {
	var r uint32
	gogl.GenRenderbuffers(1, &r)
	return gl.Renderbuffer{V: uint(r)}
}

func (f *Functions) DeleteRenderbuffer(r gl.Renderbuffer) {
	v := uint32(r.V)
	gogl.DeleteRenderbuffers(1, &v)
}

func (f *Functions) BindRenderbuffer(target gl.Enum, r gl.Renderbuffer) {
	gogl.BindRenderbuffer(uint32(target), uint32(r.V))
}

func (f *Functions) RenderbufferStorage(target, internalFormat gl.Enum, width, height int) {
	gogl.RenderbufferStorage(uint32(target), uint32(internalFormat), int32(width), int32(height))
}

func (f *Functions) RenderbufferStorageMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height int) {
	gogl.RenderbufferStorageMultisample(uint32(target), int32(samples), uint32(internalFormat), int32(width), int32(height))
}

func (f *Functions) Enable(cap gl.Enum) {
	gogl.Enable(uint32(cap))
}

func (f *Functions) Disable(cap gl.Enum) {
	gogl.Disable(uint32(cap))
}

func (f *Functions) BlendEquationSeparate(modeRGB, modeAlpha gl.Enum) {
	gogl.BlendEquationSeparate(uint32(modeRGB), uint32(modeAlpha))
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) {
	gogl.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcA), uint32(dstA))
}

func (f *Functions) BlendColor(r, g, b, a float32) {
	gogl.BlendColor(r, g, b, a)
}

func (f *Functions) DepthFunc(fn gl.Enum) {
	gogl.DepthFunc(uint32(fn))
}

func (f *Functions) DepthMask(mask bool) {
	gogl.DepthMask(mask)
}

// DepthRangef and ClearDepthf are GL 4.1; 3.3 only has the double
// variants.

func (f *Functions) DepthRangef(near, far float32) {
	gogl.DepthRange(float64(near), float64(far))
}

func (f *Functions) ClearDepthf(d float32) {
	gogl.ClearDepth(float64(d))
}

func (f *Functions) StencilFuncSeparate(face, fn gl.Enum, ref int, mask uint32) {
	gogl.StencilFuncSeparate(uint32(face), uint32(fn), int32(ref), mask)
}

func (f *Functions) StencilOpSeparate(face, sfail, dpfail, dppass gl.Enum) {
	gogl.StencilOpSeparate(uint32(face), uint32(sfail), uint32(dpfail), uint32(dppass))
}

func (f *Functions) StencilMaskSeparate(face gl.Enum, mask uint32) {
	gogl.StencilMaskSeparate(uint32(face), mask)
}

func (f *Functions) ClearStencil(s int) {
	gogl.ClearStencil(int32(s))
}

func (f *Functions) ClearColor(r, g, b, a float32) {
	gogl.ClearColor(r, g, b, a)
}

func (f *Functions) Clear(mask gl.Enum) {
	gogl.Clear(uint32(mask))
}

func (f *Functions) CullFace(mode gl.Enum) {
	gogl.CullFace(uint32(mode))
}

func (f *Functions) FrontFace(mode gl.Enum) {
	gogl.FrontFace(uint32(mode))
}

func (f *Functions) Viewport(x, y, width, height int) {
	gogl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (f *Functions) Scissor(x, y, width, height int) {
	gogl.Scissor(int32(x), int32(y), int32(width), int32(height))
}

func (f *Functions) DrawArrays(mode gl.Enum, first, count int) {
	gogl.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (f *Functions) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	gogl.DrawElementsWithOffset(uint32(mode), int32(count), uint32(ty), uintptr(offset))
}

func (f *Functions) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	gogl.DrawArraysInstanced(uint32(mode), int32(first), int32(count), int32(instances))
}

func (f *Functions) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) {
	gogl.DrawElementsInstanced(uint32(mode), int32(count), uint32(ty), gogl.PtrOffset(offset), int32(instances))
}
