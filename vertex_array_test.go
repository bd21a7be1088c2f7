// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trippygl.org/f32"
	"trippygl.org/internal/gl"
	"trippygl.org/internal/gl/gltest"
)

func callsNamed(f *gltest.Functions, name string) [][]interface{} {
	var args [][]interface{}
	for _, c := range f.Calls {
		if c.Name == name {
			args = append(args, c.Args)
		}
	}
	return args
}

func TestVertexColorTextureLayout(t *testing.T) {
	d, f := newTestDevice(t)
	f.Record = true
	vb, err := NewVertexBuffer[VertexColorTexture](d, 4, 6, IndexUint16, StaticDraw)
	require.NoError(t, err)
	assert.Equal(t, 24, vb.Vertices().ElementSize())
	assert.Equal(t, 3, vb.VertexArray().AttribCount())
	assert.Equal(t, vb.Indices(), vb.VertexArray().IndexBuffer())

	want := [][]interface{}{
		{gl.Attrib(0), 3, gl.Enum(gl.FLOAT), false, 24, 0},
		{gl.Attrib(1), 4, gl.Enum(gl.UNSIGNED_BYTE), true, 24, 12},
		{gl.Attrib(2), 2, gl.Enum(gl.FLOAT), false, 24, 16},
	}
	assert.Equal(t, want, callsNamed(f, "VertexAttribPointer"))
	assert.Len(t, callsNamed(f, "EnableVertexAttribArray"), 3)
	assert.Empty(t, callsNamed(f, "VertexAttribDivisor"))
}

type instance struct {
	Model f32.Mat4
	_     [4]byte
	ID    int32
}

func TestVertexArrayInstanced(t *testing.T) {
	d, f := newTestDevice(t)
	b, err := NewBufferObject(d, 1024, StaticDraw)
	require.NoError(t, err)
	pos, err := NewVertexDataBufferSubset[f32.Vec3](b, 0, 4, nil)
	require.NoError(t, err)
	inst, err := NewVertexDataBufferSubset[instance](b, 64, 2, nil)
	require.NoError(t, err)
	require.Equal(t, 72, inst.ElementSize())

	f.Record = true
	a, err := NewVertexArray(d, []VertexAttribSource{
		{Subset: pos, Desc: NewVertexAttrib(AttribVec3)},
		{Subset: inst, Desc: NewVertexAttrib(AttribMat4).WithDivisor(1)},
		{Subset: inst, Desc: VertexAttribPadding(4)},
		{Subset: inst, Desc: NewVertexAttrib(AttribInt)},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, a.AttribCount())
	assert.Nil(t, a.IndexBuffer())
	assert.Equal(t, a, d.VertexArray())

	want := [][]interface{}{
		{gl.Attrib(0), 3, gl.Enum(gl.FLOAT), false, 12, 0},
		{gl.Attrib(1), 4, gl.Enum(gl.FLOAT), false, 72, 64},
		{gl.Attrib(2), 4, gl.Enum(gl.FLOAT), false, 72, 80},
		{gl.Attrib(3), 4, gl.Enum(gl.FLOAT), false, 72, 96},
		{gl.Attrib(4), 4, gl.Enum(gl.FLOAT), false, 72, 112},
	}
	assert.Equal(t, want, callsNamed(f, "VertexAttribPointer"))
	assert.Equal(t, [][]interface{}{{gl.Attrib(5), 1, gl.Enum(gl.INT), 72, 64 + 68}}, callsNamed(f, "VertexAttribIPointer"))
	assert.Len(t, callsNamed(f, "VertexAttribDivisor"), 4)
}

func TestVertexArrayErrors(t *testing.T) {
	d, _ := newTestDevice(t)
	b, err := NewBufferObject(d, 256, StaticDraw)
	require.NoError(t, err)
	s, err := NewVertexDataBufferSubset[float32](b, 0, 4, nil)
	require.NoError(t, err)

	_, err = NewVertexArray(d, nil, nil)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewVertexArray(d, []VertexAttribSource{{Desc: NewVertexAttrib(AttribFloat)}}, nil)
	assert.ErrorIs(t, err, ErrOutOfRange)

	var mats []VertexAttribSource
	for i := 0; i < 5; i++ {
		mats = append(mats, VertexAttribSource{Subset: s, Desc: NewVertexAttrib(AttribMat4)})
	}
	_, err = NewVertexArray(d, mats, nil)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewVertexArray(d, []VertexAttribSource{{Subset: s, Desc: NewVertexAttrib(AttribType(1))}}, nil)
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = NewVertexArray(d, []VertexAttribSource{{Subset: s, Desc: NewPackedVertexAttrib(AttribIVec2, ComponentShort, true)}}, nil)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = NewVertexArray(d, []VertexAttribSource{{Subset: s, Desc: NewVertexAttrib(AttribFloat).WithDivisor(-1)}}, nil)
	assert.ErrorIs(t, err, ErrOutOfRange)

	d2, _ := newTestDevice(t)
	_, err = NewVertexArray(d2, []VertexAttribSource{{Subset: s, Desc: NewVertexAttrib(AttribFloat)}}, nil)
	assert.ErrorIs(t, err, ErrDeviceMismatch)

	// Only the buffer is left.
	assert.Equal(t, 1, d.ResourceCount())
}

func TestVertexArraySetIndexBuffer(t *testing.T) {
	d, _ := newTestDevice(t)
	vb, err := NewVertexBufferFrom(d, make([]VertexColor, 4), StaticDraw)
	require.NoError(t, err)
	a := vb.VertexArray()
	assert.Nil(t, a.IndexBuffer())

	ib, err := NewBufferObject(d, 12, StaticDraw)
	require.NoError(t, err)
	idx, err := NewIndexBufferSubsetFrom(ib, 0, []uint16{0, 1, 2, 2, 3, 0})
	require.NoError(t, err)
	require.NoError(t, a.SetIndexBuffer(idx))
	assert.Equal(t, idx, a.IndexBuffer())

	p := newTestProgram(t, d, "Position", "Color")
	require.NoError(t, d.BindShaderProgram(p))
	require.NoError(t, d.BindVertexArray(a))
	require.NoError(t, d.DrawElements(Triangles, 0, 6))

	require.NoError(t, a.SetIndexBuffer(nil))
	assert.ErrorIs(t, d.DrawElements(Triangles, 0, 6), ErrNoIndexBuffer)

	a.Dispose()
	assert.Nil(t, d.VertexArray())
	assert.ErrorIs(t, a.SetIndexBuffer(idx), ErrDisposed)
}
