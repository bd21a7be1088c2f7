// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// NewTexture2DFromImage creates a FormatColor4b texture holding img. The
// image's top row ends up at the top of the texture, that is at the highest
// t coordinate.
func NewTexture2DFromImage(d *GraphicsDevice, img image.Image, mipmaps bool) (*Texture2D, error) {
	b := img.Bounds()
	t, err := NewTexture2D(d, b.Dx(), b.Dy(), FormatColor4b, 0)
	if err != nil {
		return nil, err
	}
	if err := t.SetImage(image.Point{}, img); err != nil {
		t.Dispose()
		return nil, err
	}
	if mipmaps {
		if err := t.GenerateMipmaps(); err != nil {
			t.Dispose()
			return nil, err
		}
	}
	return t, nil
}

// NewTexture2DFromFile decodes an image file (PNG, JPEG, GIF, BMP, TIFF or
// WebP) into a new texture.
func NewTexture2DFromFile(d *GraphicsDevice, path string, mipmaps bool) (*Texture2D, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("trippygl: decoding %s: %w", path, err)
	}
	return NewTexture2DFromImage(d, img, mipmaps)
}

// SetImage writes img into a FormatColor4b texture with its top-left
// corner at pos, measured from the top-left corner of the texture.
func (t *Texture2D) SetImage(pos image.Point, img image.Image) error {
	if t.format != FormatColor4b {
		return fmt.Errorf("SetImage: %s texture: %w", t.format, ErrTypeMismatch)
	}
	b := img.Bounds()
	rgba := image.NewNRGBA(image.Rectangle{Max: b.Size()})
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	flipRows(rgba.Pix, rgba.Stride, b.Dy())
	// Texture rows count from the bottom.
	r := image.Rectangle{Min: image.Pt(pos.X, t.height-pos.Y-b.Dy()), Max: image.Pt(pos.X+b.Dx(), t.height-pos.Y)}
	return t.SetData(r, rgba.Pix)
}

// Image reads a FormatColor4b texture back into an image with the usual
// top-left origin.
func (t *Texture2D) Image() (*image.NRGBA, error) {
	if t.format != FormatColor4b {
		return nil, fmt.Errorf("Image: %s texture: %w", t.format, ErrTypeMismatch)
	}
	img := image.NewNRGBA(image.Rect(0, 0, t.width, t.height))
	if err := t.GetData(img.Pix); err != nil {
		return nil, err
	}
	flipRows(img.Pix, img.Stride, t.height)
	return img, nil
}

func flipRows(pix []byte, stride, rows int) {
	tmp := make([]byte, stride)
	for top, bot := 0, rows-1; top < bot; top, bot = top+1, bot-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bot*stride : (bot+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
