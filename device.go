// SPDX-License-Identifier: Unlicense OR MIT

/*
Package trippygl is a thin wrapper around OpenGL 3.3 and OpenGL ES 3.0.

A GraphicsDevice owns a GL context's function table and a cache of the GL
binding state, so that resources can be bound and state objects applied
without issuing redundant GL calls. Every resource (buffers, textures,
shader programs, vertex arrays, framebuffers) belongs to the device that
created it and is released explicitly with Dispose.

A native driver is registered by importing trippygl.org/driver/opengl:

	import _ "trippygl.org/driver/opengl"

All methods must be called from the goroutine that owns the GL context.
*/
package trippygl

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"trippygl.org/internal/gl"
)

// Config carries device options.
type Config struct {
	// CheckErrors makes resource operations call glGetError and report
	// failures as *GLError. It costs a driver round trip per operation.
	CheckErrors bool
	// Logger overrides the package logger for this device.
	Logger *slog.Logger
}

// Limits describes the GL implementation behind a device.
type Limits struct {
	// Version is the GL (or GL ES) major and minor version.
	Version  [2]int
	ES       bool
	Renderer string
	Vendor   string

	MaxTextureSize               int
	Max3DTextureSize             int
	MaxArrayTextureLayers        int
	MaxCubeMapTextureSize        int
	MaxRenderbufferSize          int
	MaxTextureImageUnits         int
	MaxSamples                   int
	MaxVertexAttribs             int
	MaxUniformBufferBindings     int
	MaxColorAttachments          int
	UniformBufferOffsetAlignment int
}

// GraphicsDevice wraps a GL context.
type GraphicsDevice struct {
	funcs  gl.Functions
	state  glState
	limits Limits
	config Config
	log    *slog.Logger

	resources map[Disposer]struct{}

	program     *ShaderProgram
	vertexArray *VertexArray
	drawFBO     *FramebufferObject
	readFBO     *FramebufferObject

	blend    BlendState
	depth    DepthState
	stencil  StencilState
	disposed bool
}

// PrimitiveType is the kind of primitive assembled by a draw call.
type PrimitiveType uint8

// ClearMask selects the buffers cleared by Clear and copied by
// BlitFramebuffer.
type ClearMask uint8

// FramebufferTarget selects the framebuffer binding points affected by
// BindFramebuffer.
type FramebufferTarget uint8

// CullingMode selects the faces discarded when face culling is enabled.
type CullingMode uint8

// Winding is the vertex order of front facing polygons.
type Winding uint8

const (
	Points PrimitiveType = iota
	Lines
	LineLoop
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
)

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
	ClearStencil
)

const (
	FramebufferTargetBoth FramebufferTarget = iota
	FramebufferTargetDraw
	FramebufferTargetRead
)

const (
	CullBack CullingMode = iota
	CullFront
	CullFrontAndBack
)

const (
	CounterClockwise Winding = iota
	Clockwise
)

// NewDevice creates a device for the GL context current on the calling
// goroutine. It fails with ErrNoDriver if no native driver package has been
// imported.
func NewDevice(cfg Config) (*GraphicsDevice, error) {
	f, err := gl.NewFunctions()
	if err != nil {
		if errors.Is(err, gl.ErrNoFunctions) {
			return nil, ErrNoDriver
		}
		return nil, fmt.Errorf("trippygl: %w", err)
	}
	return newDevice(f, cfg)
}

func newDevice(f gl.Functions, cfg Config) (*GraphicsDevice, error) {
	ver, es, err := gl.ParseGLVersion(f.GetString(gl.VERSION))
	if err != nil {
		return nil, fmt.Errorf("trippygl: %w", err)
	}
	if es && ver[0] < 3 || !es && (ver[0] < 3 || ver[0] == 3 && ver[1] < 3) {
		return nil, fmt.Errorf("trippygl: OpenGL %d.%d: %w (need 3.3 or ES 3.0)", ver[0], ver[1], ErrUnsupported)
	}
	d := &GraphicsDevice{
		funcs:     f,
		config:    cfg,
		log:       cfg.Logger,
		resources: make(map[Disposer]struct{}),
		blend:     BlendOpaque,
		depth:     DepthNone,
		stencil:   StencilDisabled,
	}
	if d.log == nil {
		d.log = Logger()
	}
	d.limits = Limits{
		Version:                      ver,
		ES:                           es,
		Renderer:                     f.GetString(gl.RENDERER),
		Vendor:                       f.GetString(gl.VENDOR),
		MaxTextureSize:               f.GetInteger(gl.MAX_TEXTURE_SIZE),
		Max3DTextureSize:             f.GetInteger(gl.MAX_3D_TEXTURE_SIZE),
		MaxArrayTextureLayers:        f.GetInteger(gl.MAX_ARRAY_TEXTURE_LAYERS),
		MaxCubeMapTextureSize:        f.GetInteger(gl.MAX_CUBE_MAP_TEXTURE_SIZE),
		MaxRenderbufferSize:          f.GetInteger(gl.MAX_RENDERBUFFER_SIZE),
		MaxTextureImageUnits:         f.GetInteger(gl.MAX_TEXTURE_IMAGE_UNITS),
		MaxSamples:                   f.GetInteger(gl.MAX_SAMPLES),
		MaxVertexAttribs:             f.GetInteger(gl.MAX_VERTEX_ATTRIBS),
		MaxUniformBufferBindings:     f.GetInteger(gl.MAX_UNIFORM_BUFFER_BINDINGS),
		MaxColorAttachments:          f.GetInteger(gl.MAX_COLOR_ATTACHMENTS),
		UniformBufferOffsetAlignment: f.GetInteger(gl.UNIFORM_BUFFER_OFFSET_ALIGNMENT),
	}
	if d.limits.UniformBufferOffsetAlignment <= 0 {
		d.limits.UniformBufferOffsetAlignment = 1
	}
	if d.limits.MaxTextureImageUnits <= 0 || d.limits.MaxUniformBufferBindings <= 0 {
		return nil, fmt.Errorf("trippygl: driver reports no texture units or uniform buffer bindings: %w", ErrUnsupported)
	}
	d.state = newGLState(d.limits.MaxTextureImageUnits, d.limits.MaxUniformBufferBindings)
	// Bring the context in line with the cache defaults.
	d.ResetStates()
	// Client pixel rows are tightly packed.
	f.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	f.PixelStorei(gl.PACK_ALIGNMENT, 1)
	d.log.Info("trippygl: device created",
		"version", fmt.Sprintf("%d.%d", ver[0], ver[1]),
		"es", es,
		"renderer", d.limits.Renderer,
	)
	return d, nil
}

// Limits returns the implementation limits queried at creation.
func (d *GraphicsDevice) Limits() Limits {
	return d.limits
}

// IsDisposed reports whether Dispose has been called.
func (d *GraphicsDevice) IsDisposed() bool {
	return d.disposed
}

// Dispose releases every resource the device still owns. The device must
// not be used afterwards.
func (d *GraphicsDevice) Dispose() {
	if d.disposed {
		d.log.Warn("trippygl: device disposed twice")
		return
	}
	live := make([]Disposer, 0, len(d.resources))
	for r := range d.resources {
		live = append(live, r)
	}
	for _, r := range live {
		r.Dispose()
	}
	d.program = nil
	d.vertexArray = nil
	d.drawFBO = nil
	d.readFBO = nil
	d.disposed = true
	d.log.Debug("trippygl: device disposed", "resources", len(live))
}

// ResourceCount returns the number of live resources owned by d.
func (d *GraphicsDevice) ResourceCount() int {
	return len(d.resources)
}

// ResetStates re-issues every cached binding and render state to GL. Call
// it after code outside trippygl has changed GL state.
func (d *GraphicsDevice) ResetStates() {
	d.state.reapply(d.funcs)
}

// ResetBufferStates re-issues the cached vertex array and buffer bindings.
func (d *GraphicsDevice) ResetBufferStates() {
	d.state.reapplyBuffers(d.funcs)
}

// ResetTextureStates re-issues the cached texture unit bindings.
func (d *GraphicsDevice) ResetTextureStates() {
	d.state.reapplyTextures(d.funcs)
}

// ResetFramebufferStates re-issues the cached framebuffer and renderbuffer
// bindings.
func (d *GraphicsDevice) ResetFramebufferStates() {
	d.state.reapplyFramebuffers(d.funcs)
}

func (d *GraphicsDevice) alive(op string) error {
	if d.disposed {
		return fmt.Errorf("%s: device: %w", op, ErrDisposed)
	}
	return nil
}

func (d *GraphicsDevice) glErr(op string) error {
	if !d.config.CheckErrors {
		return nil
	}
	if e := d.funcs.GetError(); e != gl.NO_ERROR {
		return &GLError{Op: op, Code: e}
	}
	return nil
}

// BlendState returns the last applied blend state.
func (d *GraphicsDevice) BlendState() BlendState {
	return d.blend
}

// SetBlendState applies s, issuing only the GL calls whose values changed.
func (d *GraphicsDevice) SetBlendState(s BlendState) {
	d.state.set(d.funcs, gl.BLEND, s.Enabled)
	if s.Enabled {
		d.state.setBlend(d.funcs, s.params())
	}
	d.blend = s
}

// DepthState returns the last applied depth state.
func (d *GraphicsDevice) DepthState() DepthState {
	return d.depth
}

// SetDepthState applies s, issuing only the GL calls whose values changed.
func (d *GraphicsDevice) SetDepthState(s DepthState) {
	d.state.set(d.funcs, gl.DEPTH_TEST, s.TestingEnabled)
	d.state.setDepth(d.funcs, s.params())
	d.depth = s
}

// StencilState returns the last applied stencil state.
func (d *GraphicsDevice) StencilState() StencilState {
	return d.stencil
}

// SetStencilState applies s, issuing only the GL calls whose values
// changed.
func (d *GraphicsDevice) SetStencilState(s StencilState) {
	d.state.set(d.funcs, gl.STENCIL_TEST, s.Enabled)
	if s.Enabled {
		d.state.setStencil(d.funcs, gl.FRONT, s.Front.params())
		d.state.setStencil(d.funcs, gl.BACK, s.Back.params())
	}
	d.state.setClearStencil(d.funcs, s.ClearValue)
	d.stencil = s
}

// SetViewport sets the viewport rectangle in window coordinates.
func (d *GraphicsDevice) SetViewport(r image.Rectangle) {
	d.state.setViewport(d.funcs, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// Viewport returns the current viewport. It is empty until SetViewport is
// first called.
func (d *GraphicsDevice) Viewport() image.Rectangle {
	v := d.state.viewport
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3])
}

// SetScissor sets the scissor rectangle in window coordinates.
func (d *GraphicsDevice) SetScissor(r image.Rectangle) {
	d.state.setScissor(d.funcs, r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

func (d *GraphicsDevice) SetScissorTestEnabled(enable bool) {
	d.state.set(d.funcs, gl.SCISSOR_TEST, enable)
}

// SetFaceCulling enables or disables face culling of the given faces.
func (d *GraphicsDevice) SetFaceCulling(enable bool, mode CullingMode) {
	d.state.set(d.funcs, gl.CULL_FACE, enable)
	if enable {
		d.state.setCullFace(d.funcs, mode.glEnum())
	}
}

func (d *GraphicsDevice) SetFrontFace(w Winding) {
	mode := gl.Enum(gl.CCW)
	if w == Clockwise {
		mode = gl.CW
	}
	d.state.setFrontFace(d.funcs, mode)
}

func (d *GraphicsDevice) SetClearColor(r, g, b, a float32) {
	d.state.setClearColor(d.funcs, r, g, b, a)
}

// Clear clears the buffers of the bound draw framebuffer selected by mask.
func (d *GraphicsDevice) Clear(mask ClearMask) {
	d.funcs.Clear(mask.glEnum())
}

// ShaderProgram returns the bound program, or nil.
func (d *GraphicsDevice) ShaderProgram() *ShaderProgram {
	return d.program
}

// BindShaderProgram makes p the program used by draw calls. A nil p unbinds
// the current program.
func (d *GraphicsDevice) BindShaderProgram(p *ShaderProgram) error {
	if p == nil {
		d.state.useProgram(d.funcs, gl.Program{})
		d.program = nil
		return nil
	}
	if err := d.owns("BindShaderProgram", &p.GraphicsResource); err != nil {
		return err
	}
	d.state.useProgram(d.funcs, p.obj)
	d.program = p
	return nil
}

// VertexArray returns the bound vertex array, or nil.
func (d *GraphicsDevice) VertexArray() *VertexArray {
	return d.vertexArray
}

// BindVertexArray makes a the vertex array used by draw calls. A nil a
// unbinds the current vertex array.
func (d *GraphicsDevice) BindVertexArray(a *VertexArray) error {
	if a == nil {
		d.state.bindVertexArray(d.funcs, gl.VertexArray{})
		d.vertexArray = nil
		return nil
	}
	if err := d.owns("BindVertexArray", &a.GraphicsResource); err != nil {
		return err
	}
	d.state.bindVertexArray(d.funcs, a.obj)
	d.vertexArray = a
	return nil
}

// BindFramebuffer binds fbo to the selected targets. A nil fbo binds the
// default framebuffer.
func (d *GraphicsDevice) BindFramebuffer(fbo *FramebufferObject, target FramebufferTarget) error {
	var obj gl.Framebuffer
	if fbo != nil {
		if err := d.owns("BindFramebuffer", &fbo.GraphicsResource); err != nil {
			return err
		}
		obj = fbo.obj
	}
	switch target {
	case FramebufferTargetBoth:
		d.state.bindFramebuffer(d.funcs, gl.FRAMEBUFFER, obj)
		d.drawFBO, d.readFBO = fbo, fbo
	case FramebufferTargetDraw:
		d.state.bindFramebuffer(d.funcs, gl.DRAW_FRAMEBUFFER, obj)
		d.drawFBO = fbo
	case FramebufferTargetRead:
		d.state.bindFramebuffer(d.funcs, gl.READ_FRAMEBUFFER, obj)
		d.readFBO = fbo
	default:
		return fmt.Errorf("BindFramebuffer: unknown target %d: %w", target, ErrOutOfRange)
	}
	return nil
}

// DrawFramebuffer returns the bound draw framebuffer, or nil for the
// default framebuffer.
func (d *GraphicsDevice) DrawFramebuffer() *FramebufferObject {
	return d.drawFBO
}

// ReadFramebuffer returns the bound read framebuffer, or nil for the
// default framebuffer.
func (d *GraphicsDevice) ReadFramebuffer() *FramebufferObject {
	return d.readFBO
}

// BlitFramebuffer copies a rectangle of the read framebuffer into a
// rectangle of the draw framebuffer. Depth and stencil copies require
// nearest filtering.
func (d *GraphicsDevice) BlitFramebuffer(src, dst image.Rectangle, mask ClearMask, filter TextureMagFilter) error {
	if mask&(ClearDepth|ClearStencil) != 0 && filter != MagNearest {
		return fmt.Errorf("BlitFramebuffer: depth and stencil blits need nearest filtering: %w", ErrUnsupported)
	}
	d.funcs.BlitFramebuffer(src.Min.X, src.Min.Y, src.Max.X, src.Max.Y,
		dst.Min.X, dst.Min.Y, dst.Max.X, dst.Max.Y, mask.glEnum(), filter.glEnum())
	return d.glErr("BlitFramebuffer")
}

// DrawArrays draws count vertices starting at first from the bound vertex
// array.
func (d *GraphicsDevice) DrawArrays(mode PrimitiveType, first, count int) error {
	if first < 0 || count < 0 {
		return fmt.Errorf("DrawArrays: first %d, count %d: %w", first, count, ErrOutOfRange)
	}
	if err := d.preDraw("DrawArrays"); err != nil {
		return err
	}
	d.funcs.DrawArrays(mode.glEnum(), first, count)
	return d.glErr("DrawArrays")
}

// DrawArraysInstanced is like DrawArrays but draws instances copies.
func (d *GraphicsDevice) DrawArraysInstanced(mode PrimitiveType, first, count, instances int) error {
	if first < 0 || count < 0 || instances < 0 {
		return fmt.Errorf("DrawArraysInstanced: first %d, count %d, instances %d: %w", first, count, instances, ErrOutOfRange)
	}
	if err := d.preDraw("DrawArraysInstanced"); err != nil {
		return err
	}
	d.funcs.DrawArraysInstanced(mode.glEnum(), first, count, instances)
	return d.glErr("DrawArraysInstanced")
}

// DrawElements draws count indices starting at index first of the bound
// vertex array's index subset.
func (d *GraphicsDevice) DrawElements(mode PrimitiveType, first, count int) error {
	idx, err := d.preDrawElements("DrawElements", first, count)
	if err != nil {
		return err
	}
	d.funcs.DrawElements(mode.glEnum(), count, idx.elemType.glEnum(), idx.offset+first*idx.elemType.Size())
	return d.glErr("DrawElements")
}

// DrawElementsInstanced is like DrawElements but draws instances copies.
func (d *GraphicsDevice) DrawElementsInstanced(mode PrimitiveType, first, count, instances int) error {
	if instances < 0 {
		return fmt.Errorf("DrawElementsInstanced: instances %d: %w", instances, ErrOutOfRange)
	}
	idx, err := d.preDrawElements("DrawElementsInstanced", first, count)
	if err != nil {
		return err
	}
	d.funcs.DrawElementsInstanced(mode.glEnum(), count, idx.elemType.glEnum(), idx.offset+first*idx.elemType.Size(), instances)
	return d.glErr("DrawElementsInstanced")
}

func (d *GraphicsDevice) preDrawElements(op string, first, count int) (*IndexBufferSubset, error) {
	if err := d.preDraw(op); err != nil {
		return nil, err
	}
	idx := d.vertexArray.indices
	if idx == nil {
		return nil, &StateError{Op: op, Err: ErrNoIndexBuffer}
	}
	if idx.buffer.disposed {
		return nil, &StateError{Op: op, Err: fmt.Errorf("index buffer: %w", ErrDisposed)}
	}
	if first < 0 || count < 0 || first+count > idx.Len() {
		return nil, fmt.Errorf("%s: indices [%d, %d) of %d: %w", op, first, first+count, idx.Len(), ErrOutOfRange)
	}
	return idx, nil
}

func (d *GraphicsDevice) preDraw(op string) error {
	if err := d.alive(op); err != nil {
		return err
	}
	if d.program == nil {
		return &StateError{Op: op, Err: ErrNoShaderProgram}
	}
	if d.vertexArray == nil {
		return &StateError{Op: op, Err: ErrNoVertexArray}
	}
	if d.program.disposed {
		return &StateError{Op: op, Err: fmt.Errorf("shader program: %w", ErrDisposed)}
	}
	if d.vertexArray.disposed {
		return &StateError{Op: op, Err: fmt.Errorf("vertex array: %w", ErrDisposed)}
	}
	// Rebinding guards against the cached binding having been cleared by
	// a Reset or a dispose of another object with the same handle.
	d.state.useProgram(d.funcs, d.program.obj)
	d.state.bindVertexArray(d.funcs, d.vertexArray.obj)
	return d.program.ensurePreDrawStates(op)
}

func (d *GraphicsDevice) owns(op string, r *GraphicsResource) error {
	if err := d.alive(op); err != nil {
		return err
	}
	if r.disposed {
		return fmt.Errorf("%s: %w", op, ErrDisposed)
	}
	if r.device != d {
		return fmt.Errorf("%s: %w", op, ErrDeviceMismatch)
	}
	return nil
}

func (p PrimitiveType) glEnum() gl.Enum {
	switch p {
	case Points:
		return gl.POINTS
	case Lines:
		return gl.LINES
	case LineLoop:
		return gl.LINE_LOOP
	case LineStrip:
		return gl.LINE_STRIP
	case Triangles:
		return gl.TRIANGLES
	case TriangleStrip:
		return gl.TRIANGLE_STRIP
	case TriangleFan:
		return gl.TRIANGLE_FAN
	default:
		panic("unknown primitive type")
	}
}

func (m ClearMask) glEnum() gl.Enum {
	var bits gl.Enum
	if m&ClearColor != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if m&ClearDepth != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if m&ClearStencil != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	return bits
}

func (m CullingMode) glEnum() gl.Enum {
	switch m {
	case CullFront:
		return gl.FRONT
	case CullFrontAndBack:
		return gl.FRONT_AND_BACK
	default:
		return gl.BACK
	}
}
