// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trippygl.org/f32"
	"trippygl.org/internal/gl"
	"trippygl.org/internal/gl/gltest"
)

func mat4Values(m f32.Mat4) []float64 {
	vals := make([]float64, len(m))
	for i, v := range m {
		vals[i] = float64(v)
	}
	return vals
}

func TestSimpleShaderProgram(t *testing.T) {
	d, f := newTestDevice(t)
	s, err := NewSimpleShaderProgram(d, false)
	require.NoError(t, err)
	assert.Nil(t, s.TextureUniform())
	assert.Len(t, s.Attribs(), 2)

	loc := s.Uniform("Transform").loc
	assert.Equal(t, mat4Values(f32.Identity()), f.UniformValue(s.obj, loc))

	m := f32.Translation(f32.Vec3{X: 1, Y: 2, Z: 3})
	require.NoError(t, s.SetTransform(m))
	assert.Equal(t, mat4Values(m), f.UniformValue(s.obj, loc))

	require.NoError(t, s.SetViewportTransform(200, 100, f32.Identity()))
	want := f32.Ortho2D(200, 100)
	assert.Equal(t, mat4Values(want), f.UniformValue(s.obj, loc))
	// The top-left corner of the viewport maps to (-1, 1).
	assert.Equal(t, float32(-1), want[12])
	assert.Equal(t, float32(1), want[13])
}

func TestSimpleShaderProgramTextured(t *testing.T) {
	d, _ := newTestDevice(t)
	s, err := NewSimpleShaderProgram(d, true)
	require.NoError(t, err)
	require.NotNil(t, s.TextureUniform())
	assert.Equal(t, UniformSampler2D, s.TextureUniform().Type())
	assert.Len(t, s.Attribs(), 3)

	vb, err := NewVertexBufferFrom(d, make([]VertexColorTexture, 3), StaticDraw)
	require.NoError(t, err)
	require.NoError(t, d.BindShaderProgram(s.ShaderProgram))
	require.NoError(t, d.BindVertexArray(vb.VertexArray()))
	assert.ErrorIs(t, d.DrawArrays(Triangles, 0, 3), ErrSamplerNotSet)

	tex, err := NewTexture2D(d, 1, 1, FormatColor4b, 0)
	require.NoError(t, err)
	require.NoError(t, s.TextureUniform().SetTexture(tex))
	require.NoError(t, d.DrawArrays(Triangles, 0, 3))
}

func TestSimpleShaderProgramES(t *testing.T) {
	f := gltest.New()
	f.Strings[gl.VERSION] = "OpenGL ES 3.0 gltest"
	var sources []string
	f.Reflect = func(srcs []string) gltest.Reflection {
		sources = srcs
		return simpleReflection(srcs)
	}
	d, _ := newTestDeviceOn(t, f)
	assert.True(t, d.Limits().ES)

	_, err := NewSimpleShaderProgram(d, true)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	for _, src := range sources {
		assert.True(t, strings.HasPrefix(src, "#version 300 es\n"), src)
		assert.Contains(t, src, "#define TEXTURED")
	}
}

func TestSimpleShaderProgramMissingUniforms(t *testing.T) {
	f := gltest.New()
	f.Reflect = reflectAs(gltest.Reflection{
		Attribs: []gltest.Variable{{Name: "Position", Size: 1, Type: gl.FLOAT_VEC3}},
	})
	d, _ := newTestDeviceOn(t, f)
	_, err := NewSimpleShaderProgram(d, false)
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Zero(t, d.ResourceCount())
}
