// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trippygl.org/internal/gl"
)

var (
	red   = color.NRGBA{R: 0xff, A: 0xff}
	green = color.NRGBA{G: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// quadImage returns a 2x2 image with red and green on top, blue and white
// below.
func quadImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, green)
	img.SetNRGBA(0, 1, blue)
	img.SetNRGBA(1, 1, white)
	return img
}

func TestTextureImageRoundTrip(t *testing.T) {
	d, f := newTestDevice(t)
	img := quadImage()

	tex, err := NewTexture2DFromImage(d, img, false)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(2, 2), tex.Size())

	// GL storage starts at the bottom row.
	want := []byte{
		0, 0, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0, 0, 0xff, 0, 0xff, 0, 0xff,
	}
	assert.Equal(t, want, f.TextureContents(tex.obj))

	got, err := tex.Image()
	require.NoError(t, err)
	assert.Equal(t, img.Pix, got.Pix)

	// A 1x1 image placed at the top right.
	one := image.NewNRGBA(image.Rect(5, 5, 6, 6))
	one.SetNRGBA(5, 5, blue)
	require.NoError(t, tex.SetImage(image.Pt(1, 0), one))
	got, err = tex.Image()
	require.NoError(t, err)
	assert.Equal(t, blue, got.NRGBAAt(1, 0))
	assert.Equal(t, red, got.NRGBAAt(0, 0))
}

func TestTextureFromFile(t *testing.T) {
	d, _ := newTestDevice(t)
	path := filepath.Join(t.TempDir(), "quad.png")
	out, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(out, quadImage()))
	require.NoError(t, out.Close())

	tex, err := NewTexture2DFromFile(d, path, true)
	require.NoError(t, err)
	assert.True(t, tex.IsMipmapped())
	got, err := tex.Image()
	require.NoError(t, err)
	assert.Equal(t, quadImage().Pix, got.Pix)

	require.NoError(t, tex.Recreate(4, 4))
	assert.False(t, tex.IsMipmapped())

	_, err = NewTexture2DFromFile(d, filepath.Join(t.TempDir(), "missing.png"), false)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bogus := filepath.Join(t.TempDir(), "bogus.png")
	require.NoError(t, os.WriteFile(bogus, []byte("not an image"), 0o644))
	_, err = NewTexture2DFromFile(d, bogus, false)
	assert.Error(t, err)
}

func TestTextureSetData(t *testing.T) {
	d, f := newTestDevice(t)
	tex, err := NewTexture2D(d, 4, 2, FormatFloat, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, tex.SetData(image.Rect(0, 0, 4, 2), make([]byte, 4)), ErrOutOfRange)
	assert.ErrorIs(t, tex.SetData(image.Rect(3, 0, 5, 1), make([]byte, 8)), ErrOutOfRange)
	assert.Zero(t, f.Count("TexSubImage2D"))

	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, tex.SetData(image.Rect(2, 1, 4, 2), data))
	dst := make([]byte, 4*2*4)
	require.NoError(t, tex.GetData(dst))
	assert.Equal(t, data, dst[(1*4+2)*4:])

	_, err = tex.Image()
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.ErrorIs(t, tex.SetImage(image.Point{}, quadImage()), ErrTypeMismatch)
}

func TestBindTextureUnit(t *testing.T) {
	d, f := newTestDevice(t)
	tex, err := NewTexture2D(d, 2, 2, FormatColor4b, 0)
	require.NoError(t, err)
	f.ResetCounts()

	// Creation left the texture on the active unit.
	require.NoError(t, d.BindTextureUnit(tex, 0))
	assert.Zero(t, f.Count("BindTexture"))

	require.NoError(t, d.BindTextureUnit(tex, 3))
	require.NoError(t, d.BindTextureUnit(tex, 3))
	assert.Equal(t, 1, f.Count("BindTexture"))
	assert.Equal(t, tex.obj, f.BoundTexture(3, gl.TEXTURE_2D))

	assert.ErrorIs(t, d.BindTextureUnit(tex, 16), ErrOutOfRange)
	assert.ErrorIs(t, d.BindTextureUnit(nil, 0), ErrOutOfRange)

	tex.Dispose()
	assert.ErrorIs(t, d.BindTextureUnit(tex, 0), ErrDisposed)
}

func TestTextureLimits(t *testing.T) {
	d, _ := newTestDevice(t)
	for _, size := range []image.Point{{0, 4}, {4, -1}, {4097, 1}} {
		_, err := NewTexture2D(d, size.X, size.Y, FormatColor4b, 0)
		assert.ErrorIs(t, err, ErrOutOfRange, size)
	}
	_, err := NewTexture2D(d, 4, 4, FormatColor4b, 9)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewTexture2D(d, 4, 4, TextureImageFormat(99), 0)
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = NewTexture2DArray(d, 4, 4, 257, FormatColor4b, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Zero(t, d.ResourceCount())
}

func TestMultisampledTexture(t *testing.T) {
	d, f := newTestDevice(t)
	tex, err := NewTexture2D(d, 8, 8, FormatColor4b, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, tex.Samples())
	assert.Equal(t, 1, f.Count("TexImage2DMultisample"))

	assert.ErrorIs(t, tex.SetData(image.Rect(0, 0, 1, 1), make([]byte, 4)), ErrMultisampled)
	assert.ErrorIs(t, tex.GetData(make([]byte, 8*8*4)), ErrMultisampled)
	assert.ErrorIs(t, tex.GenerateMipmaps(), ErrMultisampled)
	assert.ErrorIs(t, tex.SetTextureFilters(MinLinear, MagLinear), ErrMultisampled)
	assert.ErrorIs(t, tex.SetWrapModes(WrapRepeat, WrapRepeat), ErrMultisampled)
}

func TestIntegerTextureFilters(t *testing.T) {
	d, _ := newTestDevice(t)
	tex, err := NewTexture2D(d, 2, 2, FormatUnsignedInt2, 0)
	require.NoError(t, err)

	minF, magF := tex.Filters()
	assert.Equal(t, MinNearest, minF)
	assert.Equal(t, MagNearest, magF)

	assert.ErrorIs(t, tex.SetTextureFilters(MinLinear, MagNearest), ErrUnsupported)
	assert.ErrorIs(t, tex.SetTextureFilters(MinNearest, MagLinear), ErrUnsupported)
	require.NoError(t, tex.SetTextureFilters(MinNearestMipmapNearest, MagNearest))
	minF, _ = tex.Filters()
	assert.Equal(t, MinNearestMipmapNearest, minF)
}

func TestTexture1D(t *testing.T) {
	d, _ := newTestDevice(t)
	tex, err := NewTexture1D(d, 4, FormatColor4b)
	require.NoError(t, err)
	assert.Equal(t, 4, tex.Width())

	assert.ErrorIs(t, tex.SetData(0, make([]byte, 5)), ErrOutOfRange)
	require.NoError(t, tex.SetData(2, []byte{1, 2, 3, 4, 5, 6, 7, 8}))
	dst := make([]byte, 16)
	require.NoError(t, tex.GetData(dst))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, dst[8:])
	require.NoError(t, tex.SetWrapMode(WrapMirroredRepeat))
}

func TestTexture2DArray(t *testing.T) {
	d, _ := newTestDevice(t)
	tex, err := NewTexture2DArray(d, 2, 1, 3, FormatColor4b, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, tex.Layers())

	layer := []byte{9, 9, 9, 9, 8, 8, 8, 8}
	require.NoError(t, tex.SetData(1, image.Rect(0, 0, 2, 1), layer))
	assert.ErrorIs(t, tex.SetData(3, image.Rect(0, 0, 2, 1), layer), ErrOutOfRange)

	dst := make([]byte, 3*len(layer))
	require.NoError(t, tex.GetData(dst))
	assert.Equal(t, layer, dst[8:16])
	assert.Equal(t, make([]byte, 8), dst[:8])
	assert.ErrorIs(t, tex.GetData(make([]byte, 20)), ErrOutOfRange)
}

func TestTextureCubemap(t *testing.T) {
	d, _ := newTestDevice(t)
	tex, err := NewTextureCubemap(d, 2, FormatColor4b)
	require.NoError(t, err)
	assert.Equal(t, 2, tex.Size())

	face := make([]byte, 2*2*4)
	for i := range face {
		face[i] = byte(i)
	}
	require.NoError(t, tex.SetData(FaceNegativeY, image.Rect(0, 0, 2, 2), face))
	assert.ErrorIs(t, tex.SetData(CubemapFace(6), image.Rect(0, 0, 2, 2), face), ErrOutOfRange)

	dst := make([]byte, len(face))
	require.NoError(t, tex.GetData(FaceNegativeY, dst))
	assert.Equal(t, face, dst)
	require.NoError(t, tex.GetData(FacePositiveX, dst))
	assert.Equal(t, make([]byte, len(face)), dst)
	require.NoError(t, tex.SetWrapModes(WrapRepeat, WrapRepeat, WrapClampToEdge))
}
