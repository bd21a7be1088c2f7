// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"

	"trippygl.org/internal/gl"
)

// FramebufferAttachmentPoint is where an image is attached to a
// framebuffer.
type FramebufferAttachmentPoint uint32

const (
	AttachColor0       FramebufferAttachmentPoint = gl.COLOR_ATTACHMENT0
	AttachDepth        FramebufferAttachmentPoint = gl.DEPTH_ATTACHMENT
	AttachStencil      FramebufferAttachmentPoint = gl.STENCIL_ATTACHMENT
	AttachDepthStencil FramebufferAttachmentPoint = gl.DEPTH_STENCIL_ATTACHMENT
)

// AttachColor returns the i'th color attachment point.
func AttachColor(i int) FramebufferAttachmentPoint {
	return AttachColor0 + FramebufferAttachmentPoint(i)
}

// FramebufferTextureAttachment is a texture attached to a framebuffer.
// Layer is the array layer or cubemap face, and 0 for other textures.
type FramebufferTextureAttachment struct {
	Texture Texture
	Point   FramebufferAttachmentPoint
	Layer   int
}

// FramebufferRenderbufferAttachment is a renderbuffer attached to a
// framebuffer.
type FramebufferRenderbufferAttachment struct {
	Renderbuffer *RenderbufferObject
	Point        FramebufferAttachmentPoint
}

// FramebufferObject is a render target assembled from texture and
// renderbuffer attachments. Call UpdateFramebufferData after changing
// attachments.
type FramebufferObject struct {
	GraphicsResource
	obj           gl.Framebuffer
	textures      []FramebufferTextureAttachment
	renderbuffers []FramebufferRenderbufferAttachment

	width, height int
	samples       int
}

// NewFramebufferObject creates a framebuffer with no attachments.
func NewFramebufferObject(d *GraphicsDevice) (*FramebufferObject, error) {
	if err := d.alive("NewFramebufferObject"); err != nil {
		return nil, err
	}
	fbo := &FramebufferObject{obj: d.funcs.CreateFramebuffer()}
	fbo.register(d, fbo)
	d.log.Debug("trippygl: framebuffer created")
	return fbo, nil
}

// NewFramebuffer2D creates a complete framebuffer with a Color4b texture
// at AttachColor0 and, unless depthStencil is RenderbufferNone, a
// renderbuffer at the matching depth or stencil point.
func NewFramebuffer2D(d *GraphicsDevice, width, height int, depthStencil RenderbufferFormat, samples int) (*FramebufferObject, error) {
	fbo, err := NewFramebufferObject(d)
	if err != nil {
		return nil, err
	}
	fail := func(err error) (*FramebufferObject, error) {
		fbo.DisposeAttachments()
		fbo.Dispose()
		return nil, err
	}
	tex, err := NewTexture2D(d, width, height, FormatColor4b, samples)
	if err != nil {
		return fail(err)
	}
	if err := fbo.Attach(tex, AttachColor0); err != nil {
		tex.Dispose()
		return fail(err)
	}
	if depthStencil != RenderbufferNone {
		rb, err := NewRenderbufferObject(d, width, height, depthStencil, samples)
		if err != nil {
			return fail(err)
		}
		if err := fbo.AttachRenderbuffer(rb, renderbufferPoint(depthStencil)); err != nil {
			rb.Dispose()
			return fail(err)
		}
	}
	if err := fbo.UpdateFramebufferData(); err != nil {
		return fail(err)
	}
	return fbo, nil
}

func renderbufferPoint(f RenderbufferFormat) FramebufferAttachmentPoint {
	switch {
	case f.IsDepth() && f.IsStencil():
		return AttachDepthStencil
	case f.IsDepth():
		return AttachDepth
	case f.IsStencil():
		return AttachStencil
	default:
		return AttachColor0
	}
}

// Attach attaches level 0 of a 1D or 2D texture. Array layers and cubemap
// faces are attached with AttachLayer.
func (fbo *FramebufferObject) Attach(t Texture, point FramebufferAttachmentPoint) error {
	const op = "Attach"
	b, err := fbo.checkTexture(op, t, point)
	if err != nil {
		return err
	}
	switch b.target {
	case gl.TEXTURE_1D, gl.TEXTURE_2D, gl.TEXTURE_2D_MULTISAMPLE:
	default:
		return fmt.Errorf("%s: use AttachLayer for texture target %#x: %w", op, uint(b.target), ErrUnsupported)
	}
	return fbo.attachTexture(op, FramebufferTextureAttachment{Texture: t, Point: point})
}

// AttachLayer attaches a layer of a 2D array texture, or a face of a
// cubemap.
func (fbo *FramebufferObject) AttachLayer(t Texture, point FramebufferAttachmentPoint, layer int) error {
	const op = "AttachLayer"
	b, err := fbo.checkTexture(op, t, point)
	if err != nil {
		return err
	}
	var n int
	switch b.target {
	case gl.TEXTURE_2D_ARRAY, gl.TEXTURE_2D_MULTISAMPLE_ARRAY:
		n = b.depth
	case gl.TEXTURE_CUBE_MAP:
		n = 6
	default:
		return fmt.Errorf("%s: texture target %#x has no layers: %w", op, uint(b.target), ErrUnsupported)
	}
	if layer < 0 || layer >= n {
		return fmt.Errorf("%s: layer %d of %d: %w", op, layer, n, ErrOutOfRange)
	}
	return fbo.attachTexture(op, FramebufferTextureAttachment{Texture: t, Point: point, Layer: layer})
}

// AttachRenderbuffer attaches r.
func (fbo *FramebufferObject) AttachRenderbuffer(r *RenderbufferObject, point FramebufferAttachmentPoint) error {
	const op = "AttachRenderbuffer"
	if err := fbo.alive(op); err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("%s: nil renderbuffer: %w", op, ErrOutOfRange)
	}
	if err := fbo.sameDevice(op, &r.GraphicsResource); err != nil {
		return err
	}
	if err := fbo.checkPoint(op, point, r.format.IsDepth(), r.format.IsStencil()); err != nil {
		return err
	}
	fbo.detach(point)
	d := fbo.device
	fbo.bind(func(f gl.Functions) {
		f.FramebufferRenderbuffer(gl.DRAW_FRAMEBUFFER, gl.Enum(point), gl.RENDERBUFFER, r.obj)
	})
	fbo.renderbuffers = append(fbo.renderbuffers, FramebufferRenderbufferAttachment{Renderbuffer: r, Point: point})
	return d.glErr(op)
}

// Detach removes the attachment at point. Detaching an empty point is an
// error.
func (fbo *FramebufferObject) Detach(point FramebufferAttachmentPoint) error {
	const op = "Detach"
	if err := fbo.alive(op); err != nil {
		return err
	}
	if !fbo.detach(point) {
		return fmt.Errorf("%s: nothing attached at %#x: %w", op, uint32(point), ErrOutOfRange)
	}
	fbo.bind(func(f gl.Functions) {
		f.FramebufferRenderbuffer(gl.DRAW_FRAMEBUFFER, gl.Enum(point), gl.RENDERBUFFER, gl.Renderbuffer{})
	})
	return fbo.device.glErr(op)
}

// detach forgets the attachment at point and reports whether there was one.
func (fbo *FramebufferObject) detach(point FramebufferAttachmentPoint) bool {
	for i, a := range fbo.textures {
		if a.Point == point {
			fbo.textures = append(fbo.textures[:i], fbo.textures[i+1:]...)
			return true
		}
	}
	for i, a := range fbo.renderbuffers {
		if a.Point == point {
			fbo.renderbuffers = append(fbo.renderbuffers[:i], fbo.renderbuffers[i+1:]...)
			return true
		}
	}
	return false
}

func (fbo *FramebufferObject) checkTexture(op string, t Texture, point FramebufferAttachmentPoint) (*textureBase, error) {
	if err := fbo.alive(op); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%s: nil texture: %w", op, ErrOutOfRange)
	}
	b := t.base()
	if err := fbo.sameDevice(op, &b.GraphicsResource); err != nil {
		return nil, err
	}
	if err := fbo.checkPoint(op, point, b.format.IsDepth(), b.format.IsStencil()); err != nil {
		return nil, err
	}
	return b, nil
}

// checkPoint validates that an image with the given components can be
// attached at point.
func (fbo *FramebufferObject) checkPoint(op string, point FramebufferAttachmentPoint, depth, stencil bool) error {
	var ok bool
	switch point {
	case AttachDepth:
		ok = depth
	case AttachStencil:
		ok = stencil
	case AttachDepthStencil:
		ok = depth && stencil
	default:
		n := fbo.device.limits.MaxColorAttachments
		if point < AttachColor0 || point >= AttachColor(n) {
			return fmt.Errorf("%s: attachment point %#x, %d color attachments: %w", op, uint32(point), n, ErrOutOfRange)
		}
		ok = !depth && !stencil
	}
	if !ok {
		return fmt.Errorf("%s: image format does not fit attachment point %#x: %w", op, uint32(point), ErrTypeMismatch)
	}
	return nil
}

func (fbo *FramebufferObject) attachTexture(op string, a FramebufferTextureAttachment) error {
	fbo.detach(a.Point)
	b := a.Texture.base()
	fbo.bind(func(f gl.Functions) {
		attach := gl.Enum(a.Point)
		switch b.target {
		case gl.TEXTURE_1D:
			f.FramebufferTexture1D(gl.DRAW_FRAMEBUFFER, attach, b.target, b.obj, 0)
		case gl.TEXTURE_CUBE_MAP:
			f.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, attach, CubemapFace(a.Layer).glEnum(), b.obj, 0)
		case gl.TEXTURE_2D_ARRAY, gl.TEXTURE_2D_MULTISAMPLE_ARRAY:
			f.FramebufferTextureLayer(gl.DRAW_FRAMEBUFFER, attach, b.obj, 0, a.Layer)
		default:
			f.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, attach, b.target, b.obj, 0)
		}
	})
	fbo.textures = append(fbo.textures, a)
	return fbo.device.glErr(op)
}

// bind runs fn with fbo bound to the draw target, then restores the
// previous draw framebuffer.
func (fbo *FramebufferObject) bind(fn func(f gl.Functions)) {
	d := fbo.device
	prev := d.state.drawFBO
	d.state.bindFramebuffer(d.funcs, gl.DRAW_FRAMEBUFFER, fbo.obj)
	fn(d.funcs)
	d.state.bindFramebuffer(d.funcs, gl.DRAW_FRAMEBUFFER, prev)
}

// UpdateFramebufferData checks completeness and recomputes the size and
// sample count from the attachments. The size is the largest area all
// attachments cover.
func (fbo *FramebufferObject) UpdateFramebufferData() error {
	const op = "UpdateFramebufferData"
	if err := fbo.alive(op); err != nil {
		return err
	}
	var status gl.Enum
	fbo.bind(func(f gl.Functions) {
		status = f.CheckFramebufferStatus(gl.DRAW_FRAMEBUFFER)
	})
	if status != gl.FRAMEBUFFER_COMPLETE {
		return &FramebufferError{Status: status}
	}
	first := true
	fit := func(w, h, samples int) {
		if first || w < fbo.width {
			fbo.width = w
		}
		if first || h < fbo.height {
			fbo.height = h
		}
		if first {
			fbo.samples = samples
		}
		first = false
	}
	for _, a := range fbo.textures {
		b := a.Texture.base()
		fit(b.width, b.height, b.samples)
	}
	for _, a := range fbo.renderbuffers {
		r := a.Renderbuffer
		fit(r.width, r.height, r.samples)
	}
	if first {
		fbo.width, fbo.height, fbo.samples = 0, 0, 0
	}
	return nil
}

// Width returns the width computed by the last UpdateFramebufferData.
func (fbo *FramebufferObject) Width() int {
	return fbo.width
}

// Height returns the height computed by the last UpdateFramebufferData.
func (fbo *FramebufferObject) Height() int {
	return fbo.height
}

// Samples returns the sample count computed by the last
// UpdateFramebufferData.
func (fbo *FramebufferObject) Samples() int {
	return fbo.samples
}

func (fbo *FramebufferObject) TextureAttachments() []FramebufferTextureAttachment {
	return fbo.textures
}

func (fbo *FramebufferObject) RenderbufferAttachments() []FramebufferRenderbufferAttachment {
	return fbo.renderbuffers
}

// DisposeAttachments disposes every attached texture and renderbuffer and
// forgets them.
func (fbo *FramebufferObject) DisposeAttachments() {
	for _, a := range fbo.textures {
		a.Texture.Dispose()
	}
	for _, a := range fbo.renderbuffers {
		a.Renderbuffer.Dispose()
	}
	fbo.textures = nil
	fbo.renderbuffers = nil
}

// Dispose releases the framebuffer. Attachments are not disposed. If fbo
// is bound, the default framebuffer takes its place.
func (fbo *FramebufferObject) Dispose() {
	if !fbo.markDisposed() {
		return
	}
	d := fbo.device
	d.state.deleteFramebuffer(d.funcs, fbo.obj)
	if d.drawFBO == fbo {
		d.drawFBO = nil
	}
	if d.readFBO == fbo {
		d.readFBO = nil
	}
	d.log.Debug("trippygl: framebuffer disposed")
}
