// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"
	"image"
	"unicode/utf8"

	"trippygl.org/f32"
)

// Glyph locates a character in a font atlas.
type Glyph struct {
	// Source is the glyph image in the atlas, in pixels from the top-left
	// corner. It is empty for glyphs with nothing to draw, such as space.
	Source image.Rectangle
	// Offset is the position of Source's top-left corner relative to the
	// pen, whose Y is the top of the line.
	Offset f32.Point
	// Advance is the horizontal pen movement after the glyph.
	Advance float32
}

// TextureFont is a font rasterized into a single texture atlas.
type TextureFont struct {
	texture *Texture2D
	size    float32

	ascender, descender, lineGap float32

	glyphs   map[rune]Glyph
	fallback rune
	kerning  map[[2]rune]float32
}

// FontMetrics are the vertical metrics of a font in pixels. Descender is
// negative when glyphs extend below the baseline.
type FontMetrics struct {
	Size      float32
	Ascender  float32
	Descender float32
	LineGap   float32
}

// NewTextureFont creates a font drawing glyphs from atlas. The font takes
// ownership of atlas.
func NewTextureFont(atlas *Texture2D, m FontMetrics, glyphs map[rune]Glyph) (*TextureFont, error) {
	const op = "NewTextureFont"
	if atlas == nil {
		return nil, fmt.Errorf("%s: nil atlas: %w", op, ErrOutOfRange)
	}
	if err := atlas.alive(op); err != nil {
		return nil, err
	}
	bounds := image.Rect(0, 0, atlas.width, atlas.height)
	for r, g := range glyphs {
		if !g.Source.Empty() && !g.Source.In(bounds) {
			return nil, fmt.Errorf("%s: glyph %q at %v outside %v atlas: %w", op, r, g.Source, bounds.Size(), ErrOutOfRange)
		}
	}
	return &TextureFont{
		texture:   atlas,
		size:      m.Size,
		ascender:  m.Ascender,
		descender: m.Descender,
		lineGap:   m.LineGap,
		glyphs:    glyphs,
		fallback:  '?',
	}, nil
}

func (f *TextureFont) Texture() *Texture2D {
	return f.texture
}

func (f *TextureFont) Metrics() FontMetrics {
	return FontMetrics{Size: f.size, Ascender: f.ascender, Descender: f.descender, LineGap: f.lineGap}
}

// LineAdvance returns the distance between the tops of consecutive lines.
func (f *TextureFont) LineAdvance() float32 {
	return f.ascender - f.descender + f.lineGap
}

// SetFallback sets the rune drawn in place of runes missing from the font.
func (f *TextureFont) SetFallback(r rune) {
	f.fallback = r
}

// Glyph returns the glyph for r, or the fallback glyph if r is missing.
func (f *TextureFont) Glyph(r rune) (Glyph, bool) {
	if g, ok := f.glyphs[r]; ok {
		return g, true
	}
	g, ok := f.glyphs[f.fallback]
	return g, ok
}

// HasRune reports whether the font has a glyph for r.
func (f *TextureFont) HasRune(r rune) bool {
	_, ok := f.glyphs[r]
	return ok
}

// SetKerning sets the extra advance between a and b.
func (f *TextureFont) SetKerning(a, b rune, k float32) {
	if f.kerning == nil {
		f.kerning = make(map[[2]rune]float32)
	}
	f.kerning[[2]rune{a, b}] = k
}

// Kerning returns the extra advance between a and b.
func (f *TextureFont) Kerning(a, b rune) float32 {
	return f.kerning[[2]rune{a, b}]
}

// HasKerning reports whether any kerning pairs are set.
func (f *TextureFont) HasKerning() bool {
	return len(f.kerning) > 0
}

// layout calls fn with the pen position of every drawable glyph of text,
// and returns the size of the laid out text.
func (f *TextureFont) layout(text string, fn func(pen f32.Point, g Glyph)) f32.Point {
	var size, pen f32.Point
	lines := 1
	prev := rune(-1)
	for i := 0; i < len(text); {
		r, n := utf8.DecodeRuneInString(text[i:])
		i += n
		if r == '\n' {
			pen.X = 0
			pen.Y += f.LineAdvance()
			lines++
			prev = -1
			continue
		}
		g, ok := f.Glyph(r)
		if !ok {
			prev = -1
			continue
		}
		if prev >= 0 {
			pen.X += f.Kerning(prev, r)
		}
		if fn != nil && !g.Source.Empty() {
			fn(pen, g)
		}
		pen.X += g.Advance
		if pen.X > size.X {
			size.X = pen.X
		}
		prev = r
	}
	size.Y = float32(lines-1)*f.LineAdvance() + f.ascender - f.descender
	return size
}

// Measure returns the size of text drawn with the font: the width of its
// widest line and the height from the top of the first line to the bottom
// of the last.
func (f *TextureFont) Measure(text string) f32.Point {
	return f.layout(text, nil)
}

// Dispose releases the atlas texture.
func (f *TextureFont) Dispose() {
	f.texture.Dispose()
}
