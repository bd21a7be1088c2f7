// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"

	"trippygl.org/internal/gl"
)

// RenderbufferFormat is the storage format of a renderbuffer.
type RenderbufferFormat uint8

const (
	// RenderbufferNone requests no renderbuffer where one is optional.
	RenderbufferNone RenderbufferFormat = iota
	RenderbufferColor4b
	RenderbufferDepth16
	RenderbufferDepth24
	RenderbufferDepth32f
	RenderbufferDepth24Stencil8
	RenderbufferStencil8
)

// RenderbufferObject is image storage that can only be rendered to, such
// as a depth buffer that is never sampled.
type RenderbufferObject struct {
	GraphicsResource
	obj           gl.Renderbuffer
	format        RenderbufferFormat
	width, height int
	samples       int
}

// NewRenderbufferObject allocates a width by height renderbuffer. samples
// is the sample count, 0 for no multisampling.
func NewRenderbufferObject(d *GraphicsDevice, width, height int, format RenderbufferFormat, samples int) (*RenderbufferObject, error) {
	const op = "NewRenderbufferObject"
	if err := d.alive(op); err != nil {
		return nil, err
	}
	if format == RenderbufferNone || format > RenderbufferStencil8 {
		return nil, fmt.Errorf("%s: format %d: %w", op, format, ErrUnsupported)
	}
	if limit := d.limits.MaxRenderbufferSize; width <= 0 || height <= 0 || width > limit || height > limit {
		return nil, fmt.Errorf("%s: size %dx%d exceeds [1, %d]: %w", op, width, height, limit, ErrOutOfRange)
	}
	if samples < 0 || samples > d.limits.MaxSamples {
		return nil, fmt.Errorf("%s: %d samples, max %d: %w", op, samples, d.limits.MaxSamples, ErrOutOfRange)
	}
	f := d.funcs
	r := &RenderbufferObject{
		obj:     f.CreateRenderbuffer(),
		format:  format,
		width:   width,
		height:  height,
		samples: samples,
	}
	r.register(d, r)
	d.state.bindRenderbuffer(f, r.obj)
	if samples > 0 {
		f.RenderbufferStorageMultisample(gl.RENDERBUFFER, samples, format.glEnum(), width, height)
	} else {
		f.RenderbufferStorage(gl.RENDERBUFFER, format.glEnum(), width, height)
	}
	if err := d.glErr(op); err != nil {
		r.Dispose()
		return nil, err
	}
	d.log.Debug("trippygl: renderbuffer created", "width", width, "height", height, "samples", samples)
	return r, nil
}

func (r *RenderbufferObject) Format() RenderbufferFormat {
	return r.format
}

func (r *RenderbufferObject) Width() int {
	return r.width
}

func (r *RenderbufferObject) Height() int {
	return r.height
}

// Samples returns the sample count, or 0 if not multisampled.
func (r *RenderbufferObject) Samples() int {
	return r.samples
}

// Dispose releases the renderbuffer.
func (r *RenderbufferObject) Dispose() {
	if !r.markDisposed() {
		return
	}
	d := r.device
	d.state.deleteRenderbuffer(d.funcs, r.obj)
	d.log.Debug("trippygl: renderbuffer disposed")
}

// IsDepth reports whether f has a depth component.
func (f RenderbufferFormat) IsDepth() bool {
	switch f {
	case RenderbufferDepth16, RenderbufferDepth24, RenderbufferDepth32f, RenderbufferDepth24Stencil8:
		return true
	}
	return false
}

// IsStencil reports whether f has a stencil component.
func (f RenderbufferFormat) IsStencil() bool {
	return f == RenderbufferDepth24Stencil8 || f == RenderbufferStencil8
}

func (f RenderbufferFormat) glEnum() gl.Enum {
	switch f {
	case RenderbufferColor4b:
		return gl.RGBA8
	case RenderbufferDepth16:
		return gl.DEPTH_COMPONENT16
	case RenderbufferDepth24:
		return gl.DEPTH_COMPONENT24
	case RenderbufferDepth32f:
		return gl.DEPTH_COMPONENT32F
	case RenderbufferDepth24Stencil8:
		return gl.DEPTH24_STENCIL8
	case RenderbufferStencil8:
		return gl.STENCIL_INDEX8
	default:
		panic("unknown renderbuffer format")
	}
}
