// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trippygl.org/f32"
)

func TestNewBufferObject(t *testing.T) {
	d, f := newTestDevice(t)

	b, err := NewBufferObject(d, 128, DynamicDraw)
	require.NoError(t, err)
	assert.Equal(t, 128, b.Size())
	assert.Equal(t, DynamicDraw, b.Usage())
	assert.Len(t, f.BufferContents(b.obj), 128)

	_, err = NewBufferObject(d, 0, StaticDraw)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewBufferObject(d, 16, BufferUsage(42))
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Equal(t, "BufferUsage(42)", BufferUsage(42).String())

	b.Dispose()
	assert.True(t, b.IsDisposed())
	assert.ErrorIs(t, b.RecreateStorage(64, StaticDraw), ErrDisposed)
}

func TestBufferRecreateStorage(t *testing.T) {
	d, f := newTestDevice(t)
	b, err := NewBufferObject(d, 64, StaticDraw)
	require.NoError(t, err)
	_, err = NewVertexDataBufferSubset[float32](b, 32, 8, nil)
	require.NoError(t, err)

	// The subset ends at byte 64.
	assert.ErrorIs(t, b.RecreateStorage(48, StaticDraw), ErrOutOfRange)
	assert.Equal(t, 64, b.Size())

	require.NoError(t, b.RecreateStorage(256, StreamDraw))
	assert.Equal(t, 256, b.Size())
	assert.Equal(t, StreamDraw, b.Usage())
	assert.Len(t, f.BufferContents(b.obj), 256)
}

func TestBufferCopyTo(t *testing.T) {
	d, f := newTestDevice(t)
	src, err := NewBufferObject(d, 8, StaticDraw)
	require.NoError(t, err)
	dst, err := NewBufferObject(d, 8, StaticDraw)
	require.NoError(t, err)
	_, err = NewVertexDataBufferSubset(src, 0, 8, []uint8{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)

	require.NoError(t, src.CopyTo(dst, 2, 4, 4))
	assert.Equal(t, []byte{0, 0, 0, 0, 3, 4, 5, 6}, f.BufferContents(dst.obj))

	assert.ErrorIs(t, src.CopyTo(dst, 6, 0, 4), ErrOutOfRange)
	assert.ErrorIs(t, src.CopyTo(nil, 0, 0, 1), ErrOutOfRange)

	d2, _ := newTestDevice(t)
	other, err := NewBufferObject(d2, 8, StaticDraw)
	require.NoError(t, err)
	assert.ErrorIs(t, src.CopyTo(other, 0, 0, 1), ErrDeviceMismatch)
}

func TestVertexDataBufferSubset(t *testing.T) {
	d, f := newTestDevice(t)
	b, err := NewBufferObject(d, 256, StaticDraw)
	require.NoError(t, err)

	verts := []VertexColor{
		{Position: f32.Vec3{X: 1, Y: 2, Z: 3}, Color: color.NRGBA{R: 255, A: 255}},
		{Position: f32.Vec3{X: 4, Y: 5, Z: 6}, Color: color.NRGBA{G: 255, A: 255}},
	}
	s, err := NewVertexDataBufferSubset(b, 16, 4, verts)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 16, s.ElementSize())
	assert.Equal(t, 16, s.Offset())
	assert.Equal(t, 64, s.Size())

	got := make([]VertexColor, 2)
	require.NoError(t, s.GetData(0, got))
	assert.Equal(t, verts, got)

	// Writes past the end are rejected before reaching GL.
	f.ResetCounts()
	assert.ErrorIs(t, s.SetData(3, verts), ErrOutOfRange)
	assert.ErrorIs(t, s.SetData(-1, verts), ErrOutOfRange)
	assert.Zero(t, f.Count("BufferSubData"))

	require.NoError(t, s.Resize(0, 16))
	assert.Equal(t, 16, s.Len())
	assert.ErrorIs(t, s.Resize(0, 17), ErrOutOfRange)
	assert.Equal(t, 16, s.Len())

	_, err = NewVertexDataBufferSubset[VertexColor](b, 250, 1, nil)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestIndexBufferSubset(t *testing.T) {
	d, _ := newTestDevice(t)
	b, err := NewBufferObject(d, 64, StaticDraw)
	require.NoError(t, err)

	s, err := NewIndexBufferSubsetFrom(b, 4, []uint16{0, 1, 2, 2, 3, 0})
	require.NoError(t, err)
	assert.Equal(t, IndexUint16, s.Type())
	assert.Equal(t, 6, s.Len())
	assert.Equal(t, 12, s.Size())

	got := make([]uint16, 6)
	require.NoError(t, GetIndices(s, 0, got))
	assert.Equal(t, []uint16{0, 1, 2, 2, 3, 0}, got)

	assert.ErrorIs(t, SetIndices(s, 0, []uint32{1}), ErrTypeMismatch)
	assert.ErrorIs(t, GetIndices(s, 0, make([]uint8, 1)), ErrTypeMismatch)
	assert.ErrorIs(t, SetIndices(s, 5, []uint16{1, 2}), ErrOutOfRange)

	_, err = NewIndexBufferSubset(b, 2, 1, IndexUint32)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewIndexBufferSubset(b, 0, 1, IndexType(7))
	assert.ErrorIs(t, err, ErrUnsupported)
}

type lightBlock struct {
	Color     [4]float32
	Direction [4]float32
	Params    [8]float32
}

func TestUniformBufferSubset(t *testing.T) {
	d, _ := newTestDevice(t)
	b, err := NewBufferObject(d, 1024, DynamicDraw)
	require.NoError(t, err)

	s, err := NewUniformBufferSubset[lightBlock](b, 256, 3)
	require.NoError(t, err)
	assert.Equal(t, 64, s.ElementSize())
	assert.Equal(t, 256, s.ElementStride())
	assert.Equal(t, 2*256+64, s.Size())

	vals := []lightBlock{
		{Color: [4]float32{1, 0, 0, 1}},
		{Direction: [4]float32{0, 1, 0, 0}},
		{Params: [8]float32{7}},
	}
	require.NoError(t, s.SetValues(0, vals))
	for i, want := range vals {
		got, err := s.GetValue(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	v := lightBlock{Color: [4]float32{0.5, 0.5, 0.5, 1}}
	require.NoError(t, s.SetValue(1, v))
	got, err := s.GetValue(1)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	assert.ErrorIs(t, s.SetValue(3, v), ErrOutOfRange)
	assert.ErrorIs(t, s.SetValues(2, vals[:2]), ErrOutOfRange)

	buf, off, size, err := s.uniformRange("test", 2)
	require.NoError(t, err)
	assert.Equal(t, b, buf)
	assert.Equal(t, 256+2*256, off)
	assert.Equal(t, 64, size)

	_, err = NewUniformBufferSubset[lightBlock](b, 100, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, s.Resize(128, 1), ErrOutOfRange)
	// Four elements span 3*256+64 bytes past 256, beyond the buffer.
	assert.ErrorIs(t, s.Resize(256, 4), ErrOutOfRange)
	require.NoError(t, s.Resize(0, 4))
	assert.Equal(t, 4, s.Len())
}

func TestUniformStride(t *testing.T) {
	for _, align := range []int{1, 16, 256} {
		sizes := []int{1, align - 1, align, align + 1, 3 * align}
		for _, size := range sizes {
			if size <= 0 {
				continue
			}
			stride := uniformStride(size, align)
			assert.Zero(t, stride%align, "size %d, align %d", size, align)
			assert.GreaterOrEqual(t, stride, size, "size %d, align %d", size, align)
			assert.Less(t, stride-size, align, "size %d, align %d", size, align)
		}
	}
	assert.Equal(t, 256, uniformStride(1, 256))
	assert.Equal(t, 256, uniformStride(256, 256))
	assert.Equal(t, 512, uniformStride(257, 256))
	assert.Equal(t, 48, uniformStride(33, 16))
	assert.Equal(t, 7, uniformStride(7, 1))

	// The last element needs no padding.
	assert.Zero(t, uniformSpan(0, 64, 256))
	assert.Equal(t, 64, uniformSpan(1, 64, 256))
	assert.Equal(t, 2*256+64, uniformSpan(3, 64, 256))
}

func TestVertexBufferRecreate(t *testing.T) {
	d, _ := newTestDevice(t)
	vb, err := NewVertexBuffer[VertexColor](d, 3, 3, IndexUint32, DynamicDraw)
	require.NoError(t, err)
	assert.Equal(t, 3*16+3*4, vb.Buffer().Size())
	assert.Equal(t, 48, vb.Indices().Offset())

	require.NoError(t, vb.RecreateStorage(10, 20, StreamDraw))
	assert.Equal(t, 10, vb.Vertices().Len())
	assert.Equal(t, 20, vb.Indices().Len())
	assert.Equal(t, 160, vb.Indices().Offset())
	assert.Equal(t, 160+80, vb.Buffer().Size())

	plain, err := NewVertexBufferFrom(d, make([]VertexColor, 2), StaticDraw)
	require.NoError(t, err)
	assert.Nil(t, plain.Indices())
	assert.ErrorIs(t, plain.RecreateStorage(4, 1, StaticDraw), ErrOutOfRange)

	vb.Dispose()
	assert.True(t, vb.Buffer().IsDisposed())
	assert.True(t, vb.VertexArray().IsDisposed())
}
