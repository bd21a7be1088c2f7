// SPDX-License-Identifier: Unlicense OR MIT

// Package fontgen rasterizes font faces into trippygl.TextureFont atlases.
package fontgen

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"trippygl.org"
	"trippygl.org/f32"
)

// padding is the number of transparent pixels around each glyph, keeping
// linear filtering from bleeding neighbours into each other.
const padding = 1

// Atlas is a rasterized font before upload.
type Atlas struct {
	// Image holds white glyphs with coverage in the alpha channel.
	Image   *image.NRGBA
	Glyphs  map[rune]trippygl.Glyph
	Metrics trippygl.FontMetrics
	// Kerning holds the non-zero kerning pairs.
	Kerning map[[2]rune]float32
}

// ASCII returns the printable ASCII runes.
func ASCII() []rune {
	runes := make([]rune, 0, '~'-' '+1)
	for r := ' '; r <= '~'; r++ {
		runes = append(runes, r)
	}
	return runes
}

// ParseFace parses an OpenType or TrueType font and returns a face of size
// pixels.
func ParseFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontgen: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("fontgen: %w", err)
	}
	return face, nil
}

// DefaultFace returns the Go Regular font at size pixels.
func DefaultFace(size float64) (font.Face, error) {
	return ParseFace(goregular.TTF, size)
}

// Build rasterizes runes of face and uploads the atlas to d. Runes the face
// lacks are skipped.
func Build(d *trippygl.GraphicsDevice, face font.Face, runes []rune) (*trippygl.TextureFont, error) {
	a, err := Rasterize(face, runes)
	if err != nil {
		return nil, err
	}
	tex, err := trippygl.NewTexture2DFromImage(d, a.Image, false)
	if err != nil {
		return nil, err
	}
	f, err := trippygl.NewTextureFont(tex, a.Metrics, a.Glyphs)
	if err != nil {
		tex.Dispose()
		return nil, err
	}
	for p, k := range a.Kerning {
		f.SetKerning(p[0], p[1], k)
	}
	return f, nil
}

type placed struct {
	r       rune
	bounds  image.Rectangle
	advance fixed.Int26_6
	pos     image.Point
}

// Rasterize renders runes of face into an atlas image.
func Rasterize(face font.Face, runes []rune) (*Atlas, error) {
	var glyphs []placed
	area, widest := 0, 0
	seen := make(map[rune]bool)
	for _, r := range runes {
		if seen[r] {
			continue
		}
		seen[r] = true
		b, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		pb := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
		glyphs = append(glyphs, placed{r: r, bounds: pb, advance: adv})
		w, h := pb.Dx()+2*padding, pb.Dy()+2*padding
		area += w * h
		widest = max(widest, w)
	}
	if len(glyphs) == 0 {
		return nil, fmt.Errorf("fontgen: face has none of the %d runes", len(runes))
	}
	width := 64
	for width*width < area || width < widest {
		width *= 2
	}
	height := pack(glyphs, width)

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	m := face.Metrics()
	ascent := fixedToFloat(m.Ascent)
	a := &Atlas{
		Image:  img,
		Glyphs: make(map[rune]trippygl.Glyph, len(glyphs)),
		Metrics: trippygl.FontMetrics{
			Size:      fixedToFloat(m.Height),
			Ascender:  ascent,
			Descender: -fixedToFloat(m.Descent),
			LineGap:   fixedToFloat(m.Height - m.Ascent - m.Descent),
		},
		Kerning: make(map[[2]rune]float32),
	}
	for _, g := range glyphs {
		var src image.Rectangle
		if !g.bounds.Empty() {
			src = image.Rectangle{Min: g.pos, Max: g.pos.Add(g.bounds.Size())}
			dot := fixed.P(g.pos.X-g.bounds.Min.X, g.pos.Y-g.bounds.Min.Y)
			dr, mask, maskp, _, ok := face.Glyph(dot, g.r)
			if ok {
				draw.DrawMask(img, dr, image.White, image.Point{}, mask, maskp, draw.Over)
			}
		}
		a.Glyphs[g.r] = trippygl.Glyph{
			Source:  src,
			Offset:  f32.Pt(float32(g.bounds.Min.X), ascent+float32(g.bounds.Min.Y)),
			Advance: fixedToFloat(g.advance),
		}
	}
	for _, g0 := range glyphs {
		for _, g1 := range glyphs {
			if k := face.Kern(g0.r, g1.r); k != 0 {
				a.Kerning[[2]rune{g0.r, g1.r}] = fixedToFloat(k)
			}
		}
	}
	return a, nil
}

// pack places the glyphs on shelves of an atlas width pixels wide and
// returns the atlas height.
func pack(glyphs []placed, width int) int {
	x, y, shelf := padding, padding, 0
	for i := range glyphs {
		g := &glyphs[i]
		w, h := g.bounds.Dx(), g.bounds.Dy()
		if x+w+padding > width {
			x = padding
			y += shelf + padding
			shelf = 0
		}
		g.pos = image.Pt(x, y)
		x += w + padding
		shelf = max(shelf, h)
	}
	return y + shelf + padding
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
