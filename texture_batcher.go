// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"cmp"
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"golang.org/x/exp/slices"

	"trippygl.org/f32"
)

// BeginMode controls when a TextureBatcher draws and in what order.
type BeginMode uint8

const (
	// BeginDeferred draws everything at End, in submission order.
	BeginDeferred BeginMode = iota
	// BeginImmediate draws every item as soon as it is submitted.
	BeginImmediate
	// BeginOnTheFly draws the pending items whenever the texture changes,
	// and at End.
	BeginOnTheFly
	// BeginSortBackToFront draws at End in decreasing depth order.
	BeginSortBackToFront
	// BeginSortFrontToBack draws at End in increasing depth order.
	BeginSortFrontToBack
	// BeginSortByTexture draws at End grouped by texture, so that each
	// texture takes a single draw call.
	BeginSortByTexture
)

// TextureBatchItem is a textured quad queued in a TextureBatcher.
type TextureBatchItem struct {
	Texture *Texture2D

	TopLeft     VertexColorTexture
	TopRight    VertexColorTexture
	BottomLeft  VertexColorTexture
	BottomRight VertexColorTexture

	// SortValue orders items in the sorting modes.
	SortValue float32
}

// SetValue places the source rectangle of t, in pixels from its top-left
// corner, at pos. The quad is scaled and then rotated by rotation radians
// around origin, given in source pixels from the top-left of the quad. An
// empty source selects the whole texture.
func (it *TextureBatchItem) SetValue(t *Texture2D, pos f32.Point, source image.Rectangle, c color.NRGBA, scale f32.Point, rotation float32, origin f32.Point, depth float32) {
	if source.Empty() {
		source = image.Rect(0, 0, t.width, t.height)
	}
	w, h := float32(source.Dx()), float32(source.Dy())
	x0, y0 := -origin.X*scale.X, -origin.Y*scale.Y
	x1, y1 := (w-origin.X)*scale.X, (h-origin.Y)*scale.Y
	sin, cos := math32.Sincos(rotation)
	corner := func(x, y float32) f32.Vec3 {
		return f32.Vec3{X: pos.X + x*cos - y*sin, Y: pos.Y + x*sin + y*cos, Z: depth}
	}
	it.set(t, corner(x0, y0), corner(x1, y0), corner(x0, y1), corner(x1, y1), source, c)
	it.SortValue = depth
}

// SetRect stretches the source rectangle of t over dst.
func (it *TextureBatchItem) SetRect(t *Texture2D, dst f32.Rectangle, source image.Rectangle, c color.NRGBA, depth float32) {
	if source.Empty() {
		source = image.Rect(0, 0, t.width, t.height)
	}
	corner := func(x, y float32) f32.Vec3 {
		return f32.Vec3{X: x, Y: y, Z: depth}
	}
	it.set(t, corner(dst.Min.X, dst.Min.Y), corner(dst.Max.X, dst.Min.Y), corner(dst.Min.X, dst.Max.Y), corner(dst.Max.X, dst.Max.Y), source, c)
	it.SortValue = depth
}

func (it *TextureBatchItem) set(t *Texture2D, tl, tr, bl, br f32.Vec3, source image.Rectangle, c color.NRGBA) {
	tw, th := float32(t.width), float32(t.height)
	// Texture rows count from the bottom while source rows count from the
	// top.
	u0, u1 := float32(source.Min.X)/tw, float32(source.Max.X)/tw
	v0, v1 := 1-float32(source.Min.Y)/th, 1-float32(source.Max.Y)/th
	it.Texture = t
	it.TopLeft = VertexColorTexture{Position: tl, Color: c, TexCoords: f32.Pt(u0, v0)}
	it.TopRight = VertexColorTexture{Position: tr, Color: c, TexCoords: f32.Pt(u1, v0)}
	it.BottomLeft = VertexColorTexture{Position: bl, Color: c, TexCoords: f32.Pt(u0, v1)}
	it.BottomRight = VertexColorTexture{Position: br, Color: c, TexCoords: f32.Pt(u1, v1)}
}

// transform applies a to the item's positions.
func (it *TextureBatchItem) transform(a f32.Affine2D) {
	for _, v := range []*VertexColorTexture{&it.TopLeft, &it.TopRight, &it.BottomLeft, &it.BottomRight} {
		p := a.Transform(v.Position.XY())
		v.Position.X, v.Position.Y = p.X, p.Y
	}
}

// TextureBatcher draws many textured quads with few draw calls. Items
// submitted between Begin and End are drawn with the configured shader
// program, one draw call per run of items sharing a texture.
type TextureBatcher struct {
	device  *GraphicsDevice
	program *ShaderProgram
	sampler *ShaderUniform
	buffer  *VertexBuffer[VertexColorTexture]

	items    []TextureBatchItem
	count    int
	vertices []VertexColorTexture

	begun     bool
	mode      BeginMode
	xform     f32.Affine2D
	drawCalls int
}

const verticesPerItem = 6

// NewTextureBatcher creates a batcher with room for capacity items before
// its buffers grow.
func NewTextureBatcher(d *GraphicsDevice, capacity int) (*TextureBatcher, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("NewTextureBatcher: capacity %d: %w", capacity, ErrOutOfRange)
	}
	vb, err := NewVertexBuffer[VertexColorTexture](d, capacity*verticesPerItem, 0, IndexUint16, StreamDraw)
	if err != nil {
		return nil, err
	}
	d.log.Debug("trippygl: texture batcher created", "capacity", capacity)
	return &TextureBatcher{
		device: d,
		buffer: vb,
		items:  make([]TextureBatchItem, capacity),
	}, nil
}

// SetShaderProgram sets the program drawing the items and its sampler2D
// uniform receiving each item's texture. It can't be called between Begin
// and End.
func (b *TextureBatcher) SetShaderProgram(p *ShaderProgram, sampler *ShaderUniform) error {
	const op = "SetShaderProgram"
	if b.begun {
		return fmt.Errorf("%s: %w", op, ErrBatcherAlreadyBegun)
	}
	if p == nil || sampler == nil {
		return fmt.Errorf("%s: nil program or sampler: %w", op, ErrOutOfRange)
	}
	if err := b.device.owns(op, &p.GraphicsResource); err != nil {
		return err
	}
	if sampler.program != p {
		return fmt.Errorf("%s: sampler %s belongs to another program: %w", op, sampler.name, ErrTypeMismatch)
	}
	if sampler.typ != UniformSampler2D {
		return fmt.Errorf("%s: uniform %s is %s, not %s: %w", op, sampler.name, sampler.typ, UniformSampler2D, ErrTypeMismatch)
	}
	b.program, b.sampler = p, sampler
	return nil
}

// SetSimpleShaderProgram is SetShaderProgram for a textured
// SimpleShaderProgram.
func (b *TextureBatcher) SetSimpleShaderProgram(s *SimpleShaderProgram) error {
	if s == nil {
		return fmt.Errorf("SetSimpleShaderProgram: nil program: %w", ErrOutOfRange)
	}
	return b.SetShaderProgram(s.ShaderProgram, s.TextureUniform())
}

// SetTransform sets the transform applied to the positions of items
// submitted afterwards.
func (b *TextureBatcher) SetTransform(a f32.Affine2D) {
	b.xform = a
}

func (b *TextureBatcher) Transform() f32.Affine2D {
	return b.xform
}

// IsActive reports whether the batcher is between Begin and End.
func (b *TextureBatcher) IsActive() bool {
	return b.begun
}

func (b *TextureBatcher) BeginMode() BeginMode {
	return b.mode
}

// DrawCalls returns the number of draw calls issued since Begin.
func (b *TextureBatcher) DrawCalls() int {
	return b.drawCalls
}

// Begin starts a batch.
func (b *TextureBatcher) Begin(mode BeginMode) error {
	const op = "Begin"
	if b.begun {
		return fmt.Errorf("%s: %w", op, ErrBatcherAlreadyBegun)
	}
	if mode > BeginSortByTexture {
		return fmt.Errorf("%s: mode %d: %w", op, mode, ErrUnsupported)
	}
	if b.program == nil {
		return &StateError{Op: op, Err: ErrNoShaderProgram}
	}
	if err := b.buffer.buffer.alive(op); err != nil {
		return err
	}
	b.begun = true
	b.mode = mode
	b.count = 0
	b.drawCalls = 0
	return nil
}

// End draws the pending items and ends the batch.
func (b *TextureBatcher) End() error {
	if !b.begun {
		return fmt.Errorf("End: %w", ErrBatcherNotBegun)
	}
	b.begun = false
	switch b.mode {
	case BeginSortBackToFront:
		slices.SortStableFunc(b.items[:b.count], func(x, y TextureBatchItem) int {
			return cmp.Compare(y.SortValue, x.SortValue)
		})
	case BeginSortFrontToBack:
		slices.SortStableFunc(b.items[:b.count], func(x, y TextureBatchItem) int {
			return cmp.Compare(x.SortValue, y.SortValue)
		})
	case BeginSortByTexture:
		slices.SortStableFunc(b.items[:b.count], func(x, y TextureBatchItem) int {
			return cmp.Compare(x.Texture.obj.V, y.Texture.obj.V)
		})
	}
	err := b.flush("End")
	b.release()
	return err
}

// Draw draws the source rectangle of t with its top-left corner at pos.
// An empty source selects the whole texture.
func (b *TextureBatcher) Draw(t *Texture2D, pos f32.Point, source image.Rectangle, c color.NRGBA, depth float32) error {
	it, err := b.next("Draw", t)
	if err != nil {
		return err
	}
	it.SetValue(t, pos, source, c, f32.Pt(1, 1), 0, f32.Point{}, depth)
	return b.submit("Draw")
}

// DrawEx is like Draw with scaling and a rotation in radians around
// origin.
func (b *TextureBatcher) DrawEx(t *Texture2D, pos f32.Point, source image.Rectangle, c color.NRGBA, scale f32.Point, rotation float32, origin f32.Point, depth float32) error {
	it, err := b.next("DrawEx", t)
	if err != nil {
		return err
	}
	it.SetValue(t, pos, source, c, scale, rotation, origin, depth)
	return b.submit("DrawEx")
}

// DrawRect stretches the source rectangle of t over dst.
func (b *TextureBatcher) DrawRect(t *Texture2D, dst f32.Rectangle, source image.Rectangle, c color.NRGBA, depth float32) error {
	it, err := b.next("DrawRect", t)
	if err != nil {
		return err
	}
	it.SetRect(t, dst, source, c, depth)
	return b.submit("DrawRect")
}

// DrawString draws text with the top-left corner of its first line at pos.
// The text is scaled and then rotated around origin, given in unscaled
// pixels from that corner. Newlines start a new line.
func (b *TextureBatcher) DrawString(font *TextureFont, text string, pos f32.Point, c color.NRGBA, scale f32.Point, rotation float32, origin f32.Point, depth float32) error {
	const op = "DrawString"
	if font == nil {
		return fmt.Errorf("%s: nil font: %w", op, ErrOutOfRange)
	}
	var err error
	font.layout(text, func(pen f32.Point, g Glyph) {
		if err != nil {
			return
		}
		var it *TextureBatchItem
		it, err = b.next(op, font.texture)
		if err != nil {
			return
		}
		// Shifting the origin moves the glyph while keeping the rotation
		// centered on the text's origin.
		o := origin.Sub(pen.Add(g.Offset))
		it.SetValue(font.texture, pos, g.Source, c, scale, rotation, o, depth)
		err = b.submit(op)
	})
	return err
}

// next validates a submission and returns the item to fill, flushing
// first in BeginOnTheFly mode when the texture changes.
func (b *TextureBatcher) next(op string, t *Texture2D) (*TextureBatchItem, error) {
	if !b.begun {
		return nil, fmt.Errorf("%s: %w", op, ErrBatcherNotBegun)
	}
	if t == nil {
		return nil, fmt.Errorf("%s: nil texture: %w", op, ErrOutOfRange)
	}
	if err := b.device.owns(op, &t.GraphicsResource); err != nil {
		return nil, err
	}
	if b.mode == BeginOnTheFly && b.count > 0 && b.items[b.count-1].Texture != t {
		if err := b.flush(op); err != nil {
			return nil, err
		}
	}
	if b.count == len(b.items) {
		b.items = append(b.items, make([]TextureBatchItem, len(b.items))...)
	}
	it := &b.items[b.count]
	b.count++
	return it, nil
}

// submit finishes the item returned by next.
func (b *TextureBatcher) submit(op string) error {
	it := &b.items[b.count-1]
	if b.xform != (f32.Affine2D{}) {
		it.transform(b.xform)
	}
	if b.mode == BeginImmediate {
		return b.flush(op)
	}
	return nil
}

// flush draws the pending items, one draw call per run of equal textures.
func (b *TextureBatcher) flush(op string) error {
	if b.count == 0 {
		return nil
	}
	items := b.items[:b.count]
	b.count = 0
	b.vertices = b.vertices[:0]
	for i := range items {
		it := &items[i]
		b.vertices = append(b.vertices, it.TopLeft, it.TopRight, it.BottomRight, it.TopLeft, it.BottomRight, it.BottomLeft)
	}
	if err := b.ensureCapacity(len(b.vertices)); err != nil {
		return err
	}
	if err := b.buffer.vertices.SetData(0, b.vertices); err != nil {
		return err
	}
	d := b.device
	if err := d.BindShaderProgram(b.program); err != nil {
		return err
	}
	if err := d.BindVertexArray(b.buffer.array); err != nil {
		return err
	}
	for start := 0; start < len(items); {
		end := start + 1
		for end < len(items) && items[end].Texture == items[start].Texture {
			end++
		}
		if err := b.sampler.SetTexture(items[start].Texture); err != nil {
			return err
		}
		if err := d.DrawArrays(Triangles, start*verticesPerItem, (end-start)*verticesPerItem); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		b.drawCalls++
		start = end
	}
	return nil
}

// ensureCapacity grows the vertex buffer to hold n vertices, at least
// doubling it.
func (b *TextureBatcher) ensureCapacity(n int) error {
	have := b.buffer.vertices.Len()
	if n <= have {
		return nil
	}
	size := max(n, 2*have)
	b.device.log.Debug("trippygl: texture batcher growing", "vertices", size)
	return b.buffer.RecreateStorage(size, 0, StreamDraw)
}

// release drops the texture references of drawn items.
func (b *TextureBatcher) release() {
	for i := range b.items {
		if b.items[i].Texture == nil {
			break
		}
		b.items[i].Texture = nil
	}
}

// Dispose releases the batcher's buffers. The shader program is not
// disposed.
func (b *TextureBatcher) Dispose() {
	b.buffer.Dispose()
	b.begun = false
}
