// SPDX-License-Identifier: Unlicense OR MIT

package fontgen

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trippygl.org"
	"trippygl.org/internal/gl"
	"trippygl.org/internal/gl/gltest"
)

func TestRasterizeASCII(t *testing.T) {
	face, err := DefaultFace(16)
	require.NoError(t, err)
	a, err := Rasterize(face, ASCII())
	require.NoError(t, err)

	require.Len(t, a.Glyphs, 95)
	bounds := a.Image.Bounds()
	assert.Equal(t, 0, bounds.Dx()%64)

	space := a.Glyphs[' ']
	assert.True(t, space.Source.Empty())
	assert.Greater(t, space.Advance, float32(0))

	var drawn []image.Rectangle
	for r, g := range a.Glyphs {
		if g.Source.Empty() {
			continue
		}
		assert.True(t, g.Source.In(bounds), "%q at %v", r, g.Source)
		for _, other := range drawn {
			assert.False(t, g.Source.Overlaps(other), "%q at %v", r, g.Source)
		}
		drawn = append(drawn, g.Source)
	}
	assert.Len(t, drawn, 94)

	m := a.Metrics
	assert.Greater(t, m.Ascender, float32(0))
	assert.Less(t, m.Descender, float32(0))

	// The top of 'A' sits below the top of the line and its bottom on the
	// baseline.
	g := a.Glyphs['A']
	assert.GreaterOrEqual(t, g.Offset.Y, float32(0))
	assert.InDelta(t, m.Ascender, g.Offset.Y+float32(g.Source.Dy()), 1)

	// Coverage is stored in alpha over white.
	var covered bool
	for y := g.Source.Min.Y; y < g.Source.Max.Y; y++ {
		for x := g.Source.Min.X; x < g.Source.Max.X; x++ {
			c := a.Image.NRGBAAt(x, y)
			if c.A > 0 {
				covered = true
				assert.Equal(t, uint8(0xff), c.R)
			}
		}
	}
	assert.True(t, covered)
}

func TestRasterizeDuplicates(t *testing.T) {
	face, err := DefaultFace(12)
	require.NoError(t, err)
	a, err := Rasterize(face, []rune("aaab"))
	require.NoError(t, err)
	assert.Len(t, a.Glyphs, 2)

	_, err = Rasterize(face, nil)
	assert.Error(t, err)
}

func TestParseFace(t *testing.T) {
	_, err := ParseFace([]byte("not a font"), 12)
	assert.Error(t, err)
}

func TestPack(t *testing.T) {
	glyphs := []placed{
		{bounds: image.Rect(0, 0, 30, 10)},
		{bounds: image.Rect(0, 0, 30, 20)},
		{bounds: image.Rect(0, 0, 30, 5)},
	}
	h := pack(glyphs, 64)
	assert.Equal(t, image.Pt(1, 1), glyphs[0].pos)
	assert.Equal(t, image.Pt(32, 1), glyphs[1].pos)
	assert.Equal(t, image.Pt(1, 22), glyphs[2].pos)
	assert.Equal(t, 28, h)
}

func TestBuild(t *testing.T) {
	saved := gl.NewNativeFunctions
	defer func() { gl.NewNativeFunctions = saved }()
	fake := gltest.New()
	gl.NewNativeFunctions = func() (gl.Functions, error) { return fake, nil }

	d, err := trippygl.NewDevice(trippygl.Config{CheckErrors: true})
	require.NoError(t, err)
	defer d.Dispose()

	face, err := DefaultFace(16)
	require.NoError(t, err)
	a, err := Rasterize(face, []rune("AV "))
	require.NoError(t, err)

	f, err := Build(d, face, []rune("AV "))
	require.NoError(t, err)
	assert.Equal(t, a.Metrics, f.Metrics())
	assert.Equal(t, a.Image.Bounds().Size(), f.Texture().Size())
	assert.True(t, f.HasRune('V'))
	assert.False(t, f.HasRune('x'))
	for p, k := range a.Kerning {
		assert.Equal(t, k, f.Kerning(p[0], p[1]))
	}

	img, err := f.Texture().Image()
	require.NoError(t, err)
	assert.Equal(t, a.Image.Pix, img.Pix)

	want := a.Glyphs['A'].Advance + a.Kerning[[2]rune{'A', 'V'}] + a.Glyphs['V'].Advance
	assert.Equal(t, want, f.Measure("AV").X)
}
