// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"
	"image"

	"trippygl.org/internal/gl"
)

// Texture1D is a one dimensional texture. It is not available on OpenGL
// ES.
type Texture1D struct {
	textureBase
}

// Texture2D is a two dimensional texture, optionally multisampled.
type Texture2D struct {
	textureBase
}

// Texture2DArray is an array of two dimensional layers, optionally
// multisampled.
type Texture2DArray struct {
	textureBase
}

// TextureCubemap is a cube of six square faces.
type TextureCubemap struct {
	textureBase
}

// CubemapFace selects a face of a cubemap.
type CubemapFace uint8

const (
	FacePositiveX CubemapFace = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ
)

// NewTexture1D creates a texture of width pixels.
func NewTexture1D(d *GraphicsDevice, width int, format TextureImageFormat) (*Texture1D, error) {
	const op = "NewTexture1D"
	if d.limits.ES {
		return nil, fmt.Errorf("%s: %w on OpenGL ES", op, ErrUnsupported)
	}
	t := new(Texture1D)
	if err := t.checkSize(op, d.limits.MaxTextureSize, width); err != nil {
		return nil, err
	}
	if err := t.init(op, d, t, gl.TEXTURE_1D, format, 0); err != nil {
		return nil, err
	}
	if err := t.Recreate(width); err != nil {
		t.Dispose()
		return nil, err
	}
	d.log.Debug("trippygl: texture created", "kind", "1D", "format", format, "width", width)
	return t, nil
}

// Width returns the width in pixels.
func (t *Texture1D) Width() int {
	return t.width
}

// Recreate reallocates the texture storage. The contents are lost.
func (t *Texture1D) Recreate(width int) error {
	const op = "Recreate"
	if err := t.alive(op); err != nil {
		return err
	}
	if err := t.checkSize(op, t.device.limits.MaxTextureSize, width); err != nil {
		return err
	}
	t.device.bindTextureForUpdate(&t.textureBase)
	tr := t.triple()
	t.device.funcs.TexImage1D(gl.TEXTURE_1D, 0, tr.internalFormat, width, tr.format, tr.typ, nil)
	t.width, t.height, t.depth = width, 1, 1
	t.mipmapped = false
	return t.device.glErr(op)
}

// SetData writes the pixels [x, x+len(data)/PixelSize) of level 0.
func (t *Texture1D) SetData(x int, data []byte) error {
	ps := t.format.PixelSize()
	if len(data)%ps != 0 {
		return fmt.Errorf("SetData: %d bytes is not a whole number of %s pixels: %w", len(data), t.format, ErrOutOfRange)
	}
	w := len(data) / ps
	if err := t.checkRect("SetData", image.Rect(x, 0, x+w, 1), len(data)); err != nil {
		return err
	}
	t.device.bindTextureForUpdate(&t.textureBase)
	tr := t.triple()
	t.device.funcs.TexSubImage1D(gl.TEXTURE_1D, 0, x, w, tr.format, tr.typ, data)
	return t.device.glErr("SetData")
}

// GetData reads level 0 into dst.
func (t *Texture1D) GetData(dst []byte) error {
	if err := t.checkRect("GetData", image.Rect(0, 0, t.width, 1), len(dst)); err != nil {
		return err
	}
	return t.readPixels(gl.TEXTURE_1D, 1, dst)
}

// SetWrapMode sets the wrap mode of the S coordinate.
func (t *Texture1D) SetWrapMode(s WrapMode) error {
	return t.setWrap("SetWrapMode", s, s, s)
}

// NewTexture2D creates a width by height texture. A positive samples
// creates a multisampled texture, which can only be rendered to and
// resolved with BlitFramebuffer.
func NewTexture2D(d *GraphicsDevice, width, height int, format TextureImageFormat, samples int) (*Texture2D, error) {
	const op = "NewTexture2D"
	t := new(Texture2D)
	if err := t.checkSize(op, d.limits.MaxTextureSize, width, height); err != nil {
		return nil, err
	}
	target := gl.Enum(gl.TEXTURE_2D)
	if samples > 0 {
		target = gl.TEXTURE_2D_MULTISAMPLE
	}
	if err := t.init(op, d, t, target, format, samples); err != nil {
		return nil, err
	}
	if err := t.Recreate(width, height); err != nil {
		t.Dispose()
		return nil, err
	}
	d.log.Debug("trippygl: texture created", "kind", "2D", "format", format, "width", width, "height", height, "samples", samples)
	return t, nil
}

// Width returns the width in pixels.
func (t *Texture2D) Width() int {
	return t.width
}

// Height returns the height in pixels.
func (t *Texture2D) Height() int {
	return t.height
}

// Size returns the width and height.
func (t *Texture2D) Size() image.Point {
	return image.Pt(t.width, t.height)
}

// Recreate reallocates the texture storage. The contents are lost.
func (t *Texture2D) Recreate(width, height int) error {
	const op = "Recreate"
	if err := t.alive(op); err != nil {
		return err
	}
	if err := t.checkSize(op, t.device.limits.MaxTextureSize, width, height); err != nil {
		return err
	}
	t.device.bindTextureForUpdate(&t.textureBase)
	tr := t.triple()
	if t.samples > 0 {
		t.device.funcs.TexImage2DMultisample(t.target, t.samples, tr.internalFormat, width, height, true)
	} else {
		t.device.funcs.TexImage2D(gl.TEXTURE_2D, 0, tr.internalFormat, width, height, tr.format, tr.typ, nil)
	}
	t.width, t.height, t.depth = width, height, 1
	t.mipmapped = false
	return t.device.glErr(op)
}

// SetData writes data into the region r of level 0. Rows are bottom to
// top, as in OpenGL.
func (t *Texture2D) SetData(r image.Rectangle, data []byte) error {
	if err := t.checkRect("SetData", r, len(data)); err != nil {
		return err
	}
	t.device.bindTextureForUpdate(&t.textureBase)
	tr := t.triple()
	t.device.funcs.TexSubImage2D(gl.TEXTURE_2D, 0, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), tr.format, tr.typ, data)
	return t.device.glErr("SetData")
}

// GetData reads level 0 into dst, bottom row first.
func (t *Texture2D) GetData(dst []byte) error {
	if err := t.checkRect("GetData", image.Rect(0, 0, t.width, t.height), len(dst)); err != nil {
		return err
	}
	return t.readPixels(gl.TEXTURE_2D, 1, dst)
}

// SetWrapModes sets the wrap modes of the S and T coordinates.
func (t *Texture2D) SetWrapModes(s, tw WrapMode) error {
	return t.setWrap("SetWrapModes", s, tw, tw)
}

// NewTexture2DArray creates a texture of layers width by height images.
func NewTexture2DArray(d *GraphicsDevice, width, height, layers int, format TextureImageFormat, samples int) (*Texture2DArray, error) {
	const op = "NewTexture2DArray"
	t := new(Texture2DArray)
	if err := t.checkSize(op, d.limits.MaxTextureSize, width, height); err != nil {
		return nil, err
	}
	if err := t.checkSize(op, d.limits.MaxArrayTextureLayers, layers); err != nil {
		return nil, err
	}
	target := gl.Enum(gl.TEXTURE_2D_ARRAY)
	if samples > 0 {
		if d.limits.ES && (d.limits.Version[0] == 3 && d.limits.Version[1] < 2) {
			return nil, fmt.Errorf("%s: multisampled arrays: %w before OpenGL ES 3.2", op, ErrUnsupported)
		}
		target = gl.TEXTURE_2D_MULTISAMPLE_ARRAY
	}
	if err := t.init(op, d, t, target, format, samples); err != nil {
		return nil, err
	}
	if err := t.Recreate(width, height, layers); err != nil {
		t.Dispose()
		return nil, err
	}
	d.log.Debug("trippygl: texture created", "kind", "2DArray", "format", format, "width", width, "height", height, "layers", layers)
	return t, nil
}

func (t *Texture2DArray) Width() int {
	return t.width
}

func (t *Texture2DArray) Height() int {
	return t.height
}

// Layers returns the number of layers.
func (t *Texture2DArray) Layers() int {
	return t.depth
}

// Recreate reallocates the texture storage. The contents are lost.
func (t *Texture2DArray) Recreate(width, height, layers int) error {
	const op = "Recreate"
	if err := t.alive(op); err != nil {
		return err
	}
	lim := t.device.limits
	if err := t.checkSize(op, lim.MaxTextureSize, width, height); err != nil {
		return err
	}
	if err := t.checkSize(op, lim.MaxArrayTextureLayers, layers); err != nil {
		return err
	}
	t.device.bindTextureForUpdate(&t.textureBase)
	tr := t.triple()
	if t.samples > 0 {
		t.device.funcs.TexImage3DMultisample(t.target, t.samples, tr.internalFormat, width, height, layers, true)
	} else {
		t.device.funcs.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, tr.internalFormat, width, height, layers, tr.format, tr.typ, nil)
	}
	t.width, t.height, t.depth = width, height, layers
	t.mipmapped = false
	return t.device.glErr(op)
}

// SetData writes data into the region r of a layer.
func (t *Texture2DArray) SetData(layer int, r image.Rectangle, data []byte) error {
	if layer < 0 || layer >= t.depth {
		return fmt.Errorf("SetData: layer %d of %d: %w", layer, t.depth, ErrOutOfRange)
	}
	if err := t.checkRect("SetData", r, len(data)); err != nil {
		return err
	}
	t.device.bindTextureForUpdate(&t.textureBase)
	tr := t.triple()
	t.device.funcs.TexSubImage3D(gl.TEXTURE_2D_ARRAY, 0, r.Min.X, r.Min.Y, layer, r.Dx(), r.Dy(), 1, tr.format, tr.typ, data)
	return t.device.glErr("SetData")
}

// GetData reads every layer of level 0 into dst, first layer first.
func (t *Texture2DArray) GetData(dst []byte) error {
	if err := t.checkRect("GetData", image.Rect(0, 0, t.width, t.height), len(dst)/t.depth); err != nil {
		return err
	}
	if len(dst) < t.layerSize()*t.depth {
		return fmt.Errorf("GetData: %d bytes for %d layers: %w", len(dst), t.depth, ErrOutOfRange)
	}
	return t.readPixels(gl.TEXTURE_2D_ARRAY, t.depth, dst)
}

// SetWrapModes sets the wrap modes of the S and T coordinates.
func (t *Texture2DArray) SetWrapModes(s, tw WrapMode) error {
	return t.setWrap("SetWrapModes", s, tw, tw)
}

// NewTextureCubemap creates a cubemap with size by size faces.
func NewTextureCubemap(d *GraphicsDevice, size int, format TextureImageFormat) (*TextureCubemap, error) {
	const op = "NewTextureCubemap"
	t := new(TextureCubemap)
	if err := t.checkSize(op, d.limits.MaxCubeMapTextureSize, size); err != nil {
		return nil, err
	}
	if err := t.init(op, d, t, gl.TEXTURE_CUBE_MAP, format, 0); err != nil {
		return nil, err
	}
	if err := t.Recreate(size); err != nil {
		t.Dispose()
		return nil, err
	}
	d.log.Debug("trippygl: texture created", "kind", "Cubemap", "format", format, "size", size)
	return t, nil
}

// Size returns the width and height of each face.
func (t *TextureCubemap) Size() int {
	return t.width
}

// Recreate reallocates the storage of all faces. The contents are lost.
func (t *TextureCubemap) Recreate(size int) error {
	const op = "Recreate"
	if err := t.alive(op); err != nil {
		return err
	}
	if err := t.checkSize(op, t.device.limits.MaxCubeMapTextureSize, size); err != nil {
		return err
	}
	t.device.bindTextureForUpdate(&t.textureBase)
	tr := t.triple()
	for face := FacePositiveX; face <= FaceNegativeZ; face++ {
		t.device.funcs.TexImage2D(face.glEnum(), 0, tr.internalFormat, size, size, tr.format, tr.typ, nil)
	}
	t.width, t.height, t.depth = size, size, 1
	t.mipmapped = false
	return t.device.glErr(op)
}

// SetData writes data into the region r of a face.
func (t *TextureCubemap) SetData(face CubemapFace, r image.Rectangle, data []byte) error {
	if face > FaceNegativeZ {
		return fmt.Errorf("SetData: face %d: %w", face, ErrOutOfRange)
	}
	if err := t.checkRect("SetData", r, len(data)); err != nil {
		return err
	}
	t.device.bindTextureForUpdate(&t.textureBase)
	tr := t.triple()
	t.device.funcs.TexSubImage2D(face.glEnum(), 0, r.Min.X, r.Min.Y, r.Dx(), r.Dy(), tr.format, tr.typ, data)
	return t.device.glErr("SetData")
}

// GetData reads level 0 of a face into dst.
func (t *TextureCubemap) GetData(face CubemapFace, dst []byte) error {
	if face > FaceNegativeZ {
		return fmt.Errorf("GetData: face %d: %w", face, ErrOutOfRange)
	}
	if err := t.checkRect("GetData", image.Rect(0, 0, t.width, t.height), len(dst)); err != nil {
		return err
	}
	return t.readPixels(face.glEnum(), 1, dst)
}

// SetWrapModes sets the wrap modes of the S, T and R coordinates.
func (t *TextureCubemap) SetWrapModes(s, tw, r WrapMode) error {
	return t.setWrap("SetWrapModes", s, tw, r)
}

func (f CubemapFace) glEnum() gl.Enum {
	return gl.TEXTURE_CUBE_MAP_POSITIVE_X + gl.Enum(f)
}
