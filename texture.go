// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"
	"image"

	"trippygl.org/internal/gl"
)

// Texture is implemented by *Texture1D, *Texture2D, *Texture2DArray and
// *TextureCubemap.
type Texture interface {
	Disposer
	// Format returns the storage format.
	Format() TextureImageFormat
	// Samples returns the sample count, or 0 if not multisampled.
	Samples() int

	base() *textureBase
}

type TextureMinFilter uint8

type TextureMagFilter uint8

// WrapMode selects how texture coordinates outside [0, 1] are resolved.
type WrapMode uint8

const (
	MinNearest TextureMinFilter = iota
	MinLinear
	MinNearestMipmapNearest
	MinLinearMipmapNearest
	MinNearestMipmapLinear
	MinLinearMipmapLinear
)

const (
	MagNearest TextureMagFilter = iota
	MagLinear
)

const (
	WrapRepeat WrapMode = iota
	WrapClampToEdge
	WrapMirroredRepeat
	WrapClampToBorder
)

// textureBase is the state shared by all texture kinds.
type textureBase struct {
	GraphicsResource
	obj    gl.Texture
	target gl.Enum
	format TextureImageFormat
	// Size in pixels; unused dimensions are 1.
	width, height, depth int
	samples              int
	// lastUnit is the unit t was last bound to, or -1.
	lastUnit  int
	minFilter TextureMinFilter
	magFilter TextureMagFilter
	wrap      [3]WrapMode
	mipmapped bool
}

func (t *textureBase) base() *textureBase {
	return t
}

func (t *textureBase) Format() TextureImageFormat {
	return t.format
}

func (t *textureBase) Samples() int {
	return t.samples
}

// IsMipmapped reports whether GenerateMipmaps has been called since the
// storage was last allocated.
func (t *textureBase) IsMipmapped() bool {
	return t.mipmapped
}

// Filters returns the minifying and magnifying filters.
func (t *textureBase) Filters() (TextureMinFilter, TextureMagFilter) {
	return t.minFilter, t.magFilter
}

// Dispose releases the texture.
func (t *textureBase) Dispose() {
	if !t.markDisposed() {
		return
	}
	d := t.device
	d.state.deleteTexture(d.funcs, t.obj)
	d.log.Debug("trippygl: texture disposed", "format", t.format, "width", t.width, "height", t.height)
}

func (t *textureBase) init(op string, d *GraphicsDevice, self Texture, target gl.Enum, format TextureImageFormat, samples int) error {
	if err := d.alive(op); err != nil {
		return err
	}
	if !format.valid() {
		return fmt.Errorf("%s: format %d: %w", op, format, ErrUnsupported)
	}
	if samples < 0 || samples > d.limits.MaxSamples {
		return fmt.Errorf("%s: %d samples, max %d: %w", op, samples, d.limits.MaxSamples, ErrOutOfRange)
	}
	t.obj = d.funcs.CreateTexture()
	t.target = target
	t.format = format
	t.samples = samples
	t.lastUnit = -1
	t.register(d, self)
	d.bindTextureForUpdate(t)
	if samples == 0 {
		minFilter, magFilter := MinLinear, MagLinear
		if format.IsInteger() {
			minFilter, magFilter = MinNearest, MagNearest
		}
		t.applyFilters(minFilter, magFilter)
		t.applyWrap(WrapClampToEdge, WrapClampToEdge, WrapClampToEdge)
	}
	return nil
}

func (t *textureBase) checkSize(op string, maxSize int, dims ...int) error {
	for _, s := range dims {
		if s <= 0 || s > maxSize {
			return fmt.Errorf("%s: size %v exceeds [1, %d]: %w", op, dims, maxSize, ErrOutOfRange)
		}
	}
	return nil
}

// SetTextureFilters sets the minifying and magnifying filters.
func (t *textureBase) SetTextureFilters(minFilter TextureMinFilter, magFilter TextureMagFilter) error {
	if err := t.alive("SetTextureFilters"); err != nil {
		return err
	}
	if t.samples > 0 {
		return fmt.Errorf("SetTextureFilters: %w", ErrMultisampled)
	}
	if t.format.IsInteger() && (minFilter != MinNearest && minFilter != MinNearestMipmapNearest || magFilter != MagNearest) {
		return fmt.Errorf("SetTextureFilters: %s textures need nearest filtering: %w", t.format, ErrUnsupported)
	}
	t.device.bindTextureForUpdate(t)
	t.applyFilters(minFilter, magFilter)
	return t.device.glErr("SetTextureFilters")
}

func (t *textureBase) applyFilters(minFilter TextureMinFilter, magFilter TextureMagFilter) {
	f := t.device.funcs
	f.TexParameteri(t.target, gl.TEXTURE_MIN_FILTER, int(minFilter.glEnum()))
	f.TexParameteri(t.target, gl.TEXTURE_MAG_FILTER, int(magFilter.glEnum()))
	t.minFilter, t.magFilter = minFilter, magFilter
}

func (t *textureBase) setWrap(op string, s, tw, r WrapMode) error {
	if err := t.alive(op); err != nil {
		return err
	}
	if t.samples > 0 {
		return fmt.Errorf("%s: %w", op, ErrMultisampled)
	}
	t.device.bindTextureForUpdate(t)
	t.applyWrap(s, tw, r)
	return t.device.glErr(op)
}

func (t *textureBase) applyWrap(s, tw, r WrapMode) {
	f := t.device.funcs
	f.TexParameteri(t.target, gl.TEXTURE_WRAP_S, int(s.glEnum()))
	if t.target != gl.TEXTURE_1D {
		f.TexParameteri(t.target, gl.TEXTURE_WRAP_T, int(tw.glEnum()))
	}
	if t.target == gl.TEXTURE_CUBE_MAP {
		f.TexParameteri(t.target, gl.TEXTURE_WRAP_R, int(r.glEnum()))
	}
	t.wrap = [3]WrapMode{s, tw, r}
}

// GenerateMipmaps computes every mipmap level from level 0.
func (t *textureBase) GenerateMipmaps() error {
	if err := t.alive("GenerateMipmaps"); err != nil {
		return err
	}
	if t.samples > 0 {
		return fmt.Errorf("GenerateMipmaps: %w", ErrMultisampled)
	}
	t.device.bindTextureForUpdate(t)
	t.device.funcs.GenerateMipmap(t.target)
	t.mipmapped = true
	return t.device.glErr("GenerateMipmap")
}

// checkRect validates an upload or download region against the texture
// size and the data length.
func (t *textureBase) checkRect(op string, r image.Rectangle, dataLen int) error {
	if err := t.alive(op); err != nil {
		return err
	}
	if t.samples > 0 {
		return fmt.Errorf("%s: %w", op, ErrMultisampled)
	}
	if r.Empty() || !r.In(image.Rect(0, 0, t.width, t.height)) {
		return fmt.Errorf("%s: region %v outside %dx%d texture: %w", op, r, t.width, t.height, ErrOutOfRange)
	}
	if need := r.Dx() * r.Dy() * t.format.PixelSize(); dataLen < need {
		return fmt.Errorf("%s: %d bytes for %v of %s, need %d: %w", op, dataLen, r.Size(), t.format, need, ErrOutOfRange)
	}
	return nil
}

// layerSize returns the size in bytes of one layer (or cubemap face) of
// level 0.
func (t *textureBase) layerSize() int {
	return t.width * t.height * t.format.PixelSize()
}

// readPixels reads level 0 of texTarget into dst. OpenGL ES lacks
// glGetTexImage, so there the texture is read one layer at a time through a
// temporary framebuffer.
func (t *textureBase) readPixels(texTarget gl.Enum, layers int, dst []byte) error {
	d := t.device
	tr := t.triple()
	if !d.limits.ES {
		d.bindTextureForUpdate(t)
		d.funcs.GetTexImage(texTarget, 0, tr.format, tr.typ, dst)
		return d.glErr("GetTexImage")
	}
	f := d.funcs
	fbo := f.CreateFramebuffer()
	f.BindFramebuffer(gl.READ_FRAMEBUFFER, fbo)
	attach := attachmentFor(t.format)
	size := t.layerSize()
	for l := 0; l < layers; l++ {
		if t.target == gl.TEXTURE_2D_ARRAY {
			f.FramebufferTextureLayer(gl.READ_FRAMEBUFFER, attach, t.obj, 0, l)
		} else {
			f.FramebufferTexture2D(gl.READ_FRAMEBUFFER, attach, texTarget, t.obj, 0)
		}
		f.ReadPixels(0, 0, t.width, t.height, tr.format, tr.typ, dst[l*size:(l+1)*size])
	}
	f.BindFramebuffer(gl.READ_FRAMEBUFFER, d.state.readFBO)
	f.DeleteFramebuffer(fbo)
	return d.glErr("ReadPixels")
}

func (t *textureBase) triple() textureTriple {
	return t.format.triple()
}

func attachmentFor(format TextureImageFormat) gl.Enum {
	switch {
	case format.IsStencil():
		return gl.DEPTH_STENCIL_ATTACHMENT
	case format.IsDepth():
		return gl.DEPTH_ATTACHMENT
	default:
		return gl.COLOR_ATTACHMENT0
	}
}

// BindTextureUnit binds t to a texture unit. Binding a texture to the unit
// it already occupies issues no GL call.
func (d *GraphicsDevice) BindTextureUnit(t Texture, unit int) error {
	if t == nil {
		return fmt.Errorf("BindTextureUnit: nil texture: %w", ErrOutOfRange)
	}
	b := t.base()
	if err := d.owns("BindTextureUnit", &b.GraphicsResource); err != nil {
		return err
	}
	if unit < 0 || unit >= d.limits.MaxTextureImageUnits {
		return fmt.Errorf("BindTextureUnit: unit %d of %d: %w", unit, d.limits.MaxTextureImageUnits, ErrOutOfRange)
	}
	d.bindTextureUnit(b, unit)
	return nil
}

func (d *GraphicsDevice) bindTextureUnit(t *textureBase, unit int) {
	d.state.bindTexture(d.funcs, unit, t.target, t.obj)
	t.lastUnit = unit
}

// bindTextureForUpdate makes t bound on the active texture unit so that
// texture functions apply to it, preferring the unit t already occupies.
func (d *GraphicsDevice) bindTextureForUpdate(t *textureBase) {
	if u := t.lastUnit; u >= 0 && d.state.texUnits.binds[u] == (textureBinding{target: t.target, obj: t.obj}) {
		d.state.activeTexture(d.funcs, u)
		return
	}
	d.bindTextureUnit(t, d.state.texUnits.active)
}

func (f TextureMinFilter) glEnum() gl.Enum {
	switch f {
	case MinNearest:
		return gl.NEAREST
	case MinLinear:
		return gl.LINEAR
	case MinNearestMipmapNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case MinLinearMipmapNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	case MinNearestMipmapLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	case MinLinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		panic("unknown min filter")
	}
}

func (f TextureMagFilter) glEnum() gl.Enum {
	switch f {
	case MagNearest:
		return gl.NEAREST
	case MagLinear:
		return gl.LINEAR
	default:
		panic("unknown mag filter")
	}
}

func (w WrapMode) glEnum() gl.Enum {
	switch w {
	case WrapRepeat:
		return gl.REPEAT
	case WrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	case WrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	case WrapClampToBorder:
		return gl.CLAMP_TO_BORDER
	default:
		panic("unknown wrap mode")
	}
}
