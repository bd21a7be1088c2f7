// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import "trippygl.org/internal/gl"

// glState mirrors the GL state last set through the device, so that
// redundant calls can be skipped.
type glState struct {
	prog      gl.Program
	vertArray gl.VertexArray
	arrayBuf  gl.Buffer
	uniBuf    gl.Buffer
	copyRead  gl.Buffer
	copyWrite gl.Buffer
	uniRanges []bufferRange
	texUnits  struct {
		active int
		binds  []textureBinding
	}
	drawFBO   gl.Framebuffer
	readFBO   gl.Framebuffer
	renderBuf gl.Renderbuffer

	blendEnable   bool
	depthTest     bool
	stencilTest   bool
	cullFace      bool
	scissorTest   bool
	blend         blendParams
	depth         depthParams
	stencilFront  stencilParams
	stencilBack   stencilParams
	clearStencil  int
	clearColor    [4]float32
	cullMode      gl.Enum
	frontFace     gl.Enum
	viewport      [4]int
	viewportKnown bool
	scissor       [4]int
	scissorKnown  bool
}

type bufferRange struct {
	obj    gl.Buffer
	offset int
	size   int
}

type textureBinding struct {
	target gl.Enum
	obj    gl.Texture
}

type blendParams struct {
	eqRGB, eqA     gl.Enum
	srcRGB, dstRGB gl.Enum
	srcA, dstA     gl.Enum
	color          [4]float32
}

type depthParams struct {
	fn         gl.Enum
	mask       bool
	near, far  float32
	clearDepth float32
}

type stencilParams struct {
	fn                    gl.Enum
	ref                   int
	mask                  uint32
	sfail, dpfail, dppass gl.Enum
	writeMask             uint32
}

// newGLState returns the state of a fresh GL context.
func newGLState(texUnits, uniBindings int) glState {
	s := glState{
		uniRanges: make([]bufferRange, uniBindings),
		blend: blendParams{
			eqRGB:  gl.FUNC_ADD,
			eqA:    gl.FUNC_ADD,
			srcRGB: gl.ONE,
			dstRGB: gl.ZERO,
			srcA:   gl.ONE,
			dstA:   gl.ZERO,
		},
		depth: depthParams{
			fn:         gl.LESS,
			mask:       true,
			near:       0,
			far:        1,
			clearDepth: 1,
		},
		cullMode:  gl.BACK,
		frontFace: gl.CCW,
	}
	s.texUnits.binds = make([]textureBinding, texUnits)
	def := stencilParams{
		fn:        gl.ALWAYS,
		mask:      ^uint32(0),
		sfail:     gl.KEEP,
		dpfail:    gl.KEEP,
		dppass:    gl.KEEP,
		writeMask: ^uint32(0),
	}
	s.stencilFront = def
	s.stencilBack = def
	return s
}

// reapply issues every cached value to GL regardless of what GL reports,
// bringing the context back in line with the cache.
func (s *glState) reapply(f gl.Functions) {
	s.reapplyBuffers(f)
	s.reapplyTextures(f)
	s.reapplyFramebuffers(f)
	f.UseProgram(s.prog)
	setCap(f, gl.BLEND, s.blendEnable)
	setCap(f, gl.DEPTH_TEST, s.depthTest)
	setCap(f, gl.STENCIL_TEST, s.stencilTest)
	setCap(f, gl.CULL_FACE, s.cullFace)
	setCap(f, gl.SCISSOR_TEST, s.scissorTest)
	b := s.blend
	f.BlendEquationSeparate(b.eqRGB, b.eqA)
	f.BlendFuncSeparate(b.srcRGB, b.dstRGB, b.srcA, b.dstA)
	f.BlendColor(b.color[0], b.color[1], b.color[2], b.color[3])
	d := s.depth
	f.DepthFunc(d.fn)
	f.DepthMask(d.mask)
	f.DepthRangef(d.near, d.far)
	f.ClearDepthf(d.clearDepth)
	for _, st := range []struct {
		face gl.Enum
		p    stencilParams
	}{{gl.FRONT, s.stencilFront}, {gl.BACK, s.stencilBack}} {
		f.StencilFuncSeparate(st.face, st.p.fn, st.p.ref, st.p.mask)
		f.StencilOpSeparate(st.face, st.p.sfail, st.p.dpfail, st.p.dppass)
		f.StencilMaskSeparate(st.face, st.p.writeMask)
	}
	f.ClearStencil(s.clearStencil)
	c := s.clearColor
	f.ClearColor(c[0], c[1], c[2], c[3])
	f.CullFace(s.cullMode)
	f.FrontFace(s.frontFace)
	if s.viewportKnown {
		v := s.viewport
		f.Viewport(v[0], v[1], v[2], v[3])
	}
	if s.scissorKnown {
		v := s.scissor
		f.Scissor(v[0], v[1], v[2], v[3])
	}
}

func (s *glState) reapplyBuffers(f gl.Functions) {
	// The vertex array owns the element array binding, so it goes first.
	f.BindVertexArray(s.vertArray)
	f.BindBuffer(gl.ARRAY_BUFFER, s.arrayBuf)
	f.BindBuffer(gl.COPY_READ_BUFFER, s.copyRead)
	f.BindBuffer(gl.COPY_WRITE_BUFFER, s.copyWrite)
	for i, r := range s.uniRanges {
		if r.obj.Valid() {
			f.BindBufferRange(gl.UNIFORM_BUFFER, i, r.obj, r.offset, r.size)
		}
	}
	f.BindBuffer(gl.UNIFORM_BUFFER, s.uniBuf)
}

func (s *glState) reapplyTextures(f gl.Functions) {
	for i, b := range s.texUnits.binds {
		if b.target == 0 {
			continue
		}
		f.ActiveTexture(gl.TEXTURE0 + gl.Enum(i))
		f.BindTexture(b.target, b.obj)
	}
	f.ActiveTexture(gl.TEXTURE0 + gl.Enum(s.texUnits.active))
}

func (s *glState) reapplyFramebuffers(f gl.Functions) {
	f.BindFramebuffer(gl.DRAW_FRAMEBUFFER, s.drawFBO)
	f.BindFramebuffer(gl.READ_FRAMEBUFFER, s.readFBO)
	f.BindRenderbuffer(gl.RENDERBUFFER, s.renderBuf)
}

func setCap(f gl.Functions, c gl.Enum, enable bool) {
	if enable {
		f.Enable(c)
	} else {
		f.Disable(c)
	}
}

func (s *glState) activeTexture(f gl.Functions, unit int) {
	if unit != s.texUnits.active {
		f.ActiveTexture(gl.TEXTURE0 + gl.Enum(unit))
		s.texUnits.active = unit
	}
}

// bindTexture binds t to unit, reporting whether a GL bind was issued.
func (s *glState) bindTexture(f gl.Functions, unit int, target gl.Enum, t gl.Texture) bool {
	b := textureBinding{target: target, obj: t}
	if s.texUnits.binds[unit] == b {
		return false
	}
	s.activeTexture(f, unit)
	f.BindTexture(target, t)
	s.texUnits.binds[unit] = b
	return true
}

func (s *glState) bindVertexArray(f gl.Functions, a gl.VertexArray) {
	if !a.Equal(s.vertArray) {
		f.BindVertexArray(a)
		s.vertArray = a
	}
}

func (s *glState) useProgram(f gl.Functions, p gl.Program) {
	if !p.Equal(s.prog) {
		f.UseProgram(p)
		s.prog = p
	}
}

func (s *glState) bindRenderbuffer(f gl.Functions, r gl.Renderbuffer) {
	if !r.Equal(s.renderBuf) {
		f.BindRenderbuffer(gl.RENDERBUFFER, r)
		s.renderBuf = r
	}
}

func (s *glState) bindFramebuffer(f gl.Functions, target gl.Enum, fbo gl.Framebuffer) {
	switch target {
	case gl.FRAMEBUFFER:
		if fbo.Equal(s.drawFBO) && fbo.Equal(s.readFBO) {
			return
		}
		s.drawFBO = fbo
		s.readFBO = fbo
	case gl.READ_FRAMEBUFFER:
		if fbo.Equal(s.readFBO) {
			return
		}
		s.readFBO = fbo
	case gl.DRAW_FRAMEBUFFER:
		if fbo.Equal(s.drawFBO) {
			return
		}
		s.drawFBO = fbo
	default:
		panic("unknown framebuffer target")
	}
	f.BindFramebuffer(target, fbo)
}

func (s *glState) bindBuffer(f gl.Functions, target gl.Enum, buf gl.Buffer) {
	var cur *gl.Buffer
	switch target {
	case gl.ARRAY_BUFFER:
		cur = &s.arrayBuf
	case gl.UNIFORM_BUFFER:
		cur = &s.uniBuf
	case gl.COPY_READ_BUFFER:
		cur = &s.copyRead
	case gl.COPY_WRITE_BUFFER:
		cur = &s.copyWrite
	case gl.ELEMENT_ARRAY_BUFFER:
		// Part of the bound vertex array's state; never cached.
		f.BindBuffer(target, buf)
		return
	default:
		panic("unknown buffer target")
	}
	if buf.Equal(*cur) {
		return
	}
	*cur = buf
	f.BindBuffer(target, buf)
}

// bindBufferRange binds a range of buf to an indexed uniform buffer binding,
// reporting whether a GL call was issued.
func (s *glState) bindBufferRange(f gl.Functions, idx int, buf gl.Buffer, offset, size int) bool {
	r := bufferRange{obj: buf, offset: offset, size: size}
	if s.uniRanges[idx] == r {
		return false
	}
	s.uniRanges[idx] = r
	// glBindBufferRange also binds the generic binding point.
	s.uniBuf = buf
	f.BindBufferRange(gl.UNIFORM_BUFFER, idx, buf, offset, size)
	return true
}

func (s *glState) set(f gl.Functions, target gl.Enum, enable bool) {
	var cur *bool
	switch target {
	case gl.BLEND:
		cur = &s.blendEnable
	case gl.DEPTH_TEST:
		cur = &s.depthTest
	case gl.STENCIL_TEST:
		cur = &s.stencilTest
	case gl.CULL_FACE:
		cur = &s.cullFace
	case gl.SCISSOR_TEST:
		cur = &s.scissorTest
	default:
		panic("unknown enable")
	}
	if *cur == enable {
		return
	}
	*cur = enable
	setCap(f, target, enable)
}

func (s *glState) setBlend(f gl.Functions, p blendParams) {
	if p.eqRGB != s.blend.eqRGB || p.eqA != s.blend.eqA {
		f.BlendEquationSeparate(p.eqRGB, p.eqA)
	}
	if p.srcRGB != s.blend.srcRGB || p.dstRGB != s.blend.dstRGB || p.srcA != s.blend.srcA || p.dstA != s.blend.dstA {
		f.BlendFuncSeparate(p.srcRGB, p.dstRGB, p.srcA, p.dstA)
	}
	if p.color != s.blend.color {
		f.BlendColor(p.color[0], p.color[1], p.color[2], p.color[3])
	}
	s.blend = p
}

func (s *glState) setDepth(f gl.Functions, p depthParams) {
	if p.fn != s.depth.fn {
		f.DepthFunc(p.fn)
	}
	if p.mask != s.depth.mask {
		f.DepthMask(p.mask)
	}
	if p.near != s.depth.near || p.far != s.depth.far {
		f.DepthRangef(p.near, p.far)
	}
	if p.clearDepth != s.depth.clearDepth {
		f.ClearDepthf(p.clearDepth)
	}
	s.depth = p
}

func (s *glState) setStencil(f gl.Functions, face gl.Enum, p stencilParams) {
	cur := &s.stencilFront
	if face == gl.BACK {
		cur = &s.stencilBack
	}
	if p.fn != cur.fn || p.ref != cur.ref || p.mask != cur.mask {
		f.StencilFuncSeparate(face, p.fn, p.ref, p.mask)
	}
	if p.sfail != cur.sfail || p.dpfail != cur.dpfail || p.dppass != cur.dppass {
		f.StencilOpSeparate(face, p.sfail, p.dpfail, p.dppass)
	}
	if p.writeMask != cur.writeMask {
		f.StencilMaskSeparate(face, p.writeMask)
	}
	*cur = p
}

func (s *glState) setClearStencil(f gl.Functions, v int) {
	if v != s.clearStencil {
		f.ClearStencil(v)
		s.clearStencil = v
	}
}

func (s *glState) setClearColor(f gl.Functions, r, g, b, a float32) {
	col := [4]float32{r, g, b, a}
	if col != s.clearColor {
		f.ClearColor(r, g, b, a)
		s.clearColor = col
	}
}

func (s *glState) setViewport(f gl.Functions, x, y, width, height int) {
	view := [4]int{x, y, width, height}
	if !s.viewportKnown || view != s.viewport {
		f.Viewport(x, y, width, height)
		s.viewport = view
		s.viewportKnown = true
	}
}

func (s *glState) setScissor(f gl.Functions, x, y, width, height int) {
	rect := [4]int{x, y, width, height}
	if !s.scissorKnown || rect != s.scissor {
		f.Scissor(x, y, width, height)
		s.scissor = rect
		s.scissorKnown = true
	}
}

func (s *glState) setCullFace(f gl.Functions, mode gl.Enum) {
	if mode != s.cullMode {
		f.CullFace(mode)
		s.cullMode = mode
	}
}

func (s *glState) setFrontFace(f gl.Functions, mode gl.Enum) {
	if mode != s.frontFace {
		f.FrontFace(mode)
		s.frontFace = mode
	}
}

func (s *glState) deleteBuffer(f gl.Functions, b gl.Buffer) {
	f.DeleteBuffer(b)
	for _, cur := range []*gl.Buffer{&s.arrayBuf, &s.uniBuf, &s.copyRead, &s.copyWrite} {
		if b.Equal(*cur) {
			*cur = gl.Buffer{}
		}
	}
	for i, r := range s.uniRanges {
		if b.Equal(r.obj) {
			s.uniRanges[i] = bufferRange{}
		}
	}
}

func (s *glState) deleteTexture(f gl.Functions, t gl.Texture) {
	f.DeleteTexture(t)
	binds := s.texUnits.binds
	for i, b := range binds {
		if t.Equal(b.obj) {
			binds[i] = textureBinding{}
		}
	}
}

func (s *glState) deleteProgram(f gl.Functions, p gl.Program) {
	f.DeleteProgram(p)
	if p.Equal(s.prog) {
		s.prog = gl.Program{}
	}
}

func (s *glState) deleteVertexArray(f gl.Functions, a gl.VertexArray) {
	f.DeleteVertexArray(a)
	if a.Equal(s.vertArray) {
		s.vertArray = gl.VertexArray{}
	}
}

func (s *glState) deleteFramebuffer(f gl.Functions, fbo gl.Framebuffer) {
	f.DeleteFramebuffer(fbo)
	if fbo.Equal(s.drawFBO) {
		s.drawFBO = gl.Framebuffer{}
	}
	if fbo.Equal(s.readFBO) {
		s.readFBO = gl.Framebuffer{}
	}
}

func (s *glState) deleteRenderbuffer(f gl.Functions, r gl.Renderbuffer) {
	f.DeleteRenderbuffer(r)
	if r.Equal(s.renderBuf) {
		s.renderBuf = gl.Renderbuffer{}
	}
}
