// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"image/color"
	"testing"

	"gioui.org/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trippygl.org/f32"
	"trippygl.org/internal/gl"
	"trippygl.org/internal/gl/gltest"
)

func TestShaderCompilationError(t *testing.T) {
	d, f := newTestDevice(t)
	live := f.Live()
	const log = "0:3(12): error: syntax error, unexpected '}'\n"
	f.CompileLogs = map[gl.Enum]string{gl.FRAGMENT_SHADER: log}

	b := ShaderProgramBuilder{VertexShaderCode: "void main() {}", FragmentShaderCode: "void main() {"}
	_, err := b.Create(d)
	var cerr *ShaderCompilationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, FragmentStage, cerr.Stage)
	assert.Equal(t, log, cerr.Log)
	assert.Contains(t, err.Error(), "fragment shader")
	assert.Equal(t, live, f.Live())
	assert.Zero(t, d.ResourceCount())
}

func TestShaderLinkError(t *testing.T) {
	d, f := newTestDevice(t)
	live := f.Live()
	f.LinkLog = "error: vertex output Color not read by fragment shader"

	b := ShaderProgramBuilder{VertexShaderCode: "void main() {}", FragmentShaderCode: "void main() {}"}
	_, err := b.Create(d)
	var lerr *ShaderLinkError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, f.LinkLog, lerr.Log)
	assert.Equal(t, live, f.Live())
}

func TestShaderBuilderErrors(t *testing.T) {
	d, _ := newTestDevice(t)

	blank := ShaderProgramBuilder{VertexShaderCode: "  \n", FragmentShaderCode: "void main() {}"}
	_, err := blank.Create(d)
	assert.ErrorIs(t, err, ErrNoShaderCode)
	noFrag := ShaderProgramBuilder{VertexShaderCode: "void main() {}"}
	_, err = noFrag.Create(d)
	assert.ErrorIs(t, err, ErrNoShaderCode)

	b := ShaderProgramBuilder{
		VertexShaderCode:   "void main() {}",
		FragmentShaderCode: "void main() {}",
		Attribs:            make([]string, 17),
	}
	_, err = b.Create(d)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestShaderReflection(t *testing.T) {
	f := gltest.New()
	f.Reflect = reflectAs(gltest.Reflection{
		Attribs: []gltest.Variable{
			{Name: "gl_VertexID", Size: 1, Type: gl.INT},
			{Name: "Position", Size: 1, Type: gl.FLOAT_VEC3},
			{Name: "Model", Size: 1, Type: gl.FLOAT_MAT4},
		},
		Uniforms: []gltest.Variable{
			{Name: "Scale", Size: 1, Type: gl.FLOAT},
			{Name: "Colors[0]", Size: 3, Type: gl.FLOAT_VEC4},
			{Name: "Tint", Size: 1, Type: gl.FLOAT_VEC4},
			{Name: "Enabled", Size: 1, Type: gl.BOOL},
			{Name: "Count", Size: 1, Type: gl.UNSIGNED_INT},
			{Name: "View", Size: 1, Type: gl.FLOAT_MAT4},
		},
	})
	d, _ := newTestDeviceOn(t, f)
	p := newTestProgram(t, d, "Position", "Model")

	attribs := p.Attribs()
	require.Len(t, attribs, 2)
	assert.Equal(t, ActiveAttrib{Name: "Position", Size: 1, Type: AttribVec3, Location: 0}, attribs[0])
	assert.Equal(t, 1, attribs[1].Location)

	require.Equal(t, 6, p.Uniforms().Len())
	assert.Equal(t, "Scale", p.Uniforms().At(0).Name())
	colors := p.Uniform("Colors")
	require.NotNil(t, colors)
	assert.Equal(t, 3, colors.Size())
	assert.Equal(t, UniformVec4, colors.Type())
	assert.Equal(t, 1, colors.Location())
	assert.Nil(t, p.Uniform("Colors[0]"))
	assert.Nil(t, p.Uniform("Missing"))
	assert.Empty(t, p.Uniforms().Samplers())
}

func TestShaderUniformSetters(t *testing.T) {
	f := gltest.New()
	f.Reflect = reflectAs(gltest.Reflection{
		Uniforms: []gltest.Variable{
			{Name: "Scale", Size: 1, Type: gl.FLOAT},
			{Name: "Colors[0]", Size: 3, Type: gl.FLOAT_VEC4},
			{Name: "Tint", Size: 1, Type: gl.FLOAT_VEC4},
			{Name: "Enabled", Size: 1, Type: gl.BOOL},
			{Name: "Count", Size: 1, Type: gl.UNSIGNED_INT},
			{Name: "View", Size: 1, Type: gl.FLOAT_MAT4},
		},
	})
	d, _ := newTestDeviceOn(t, f)
	p := newTestProgram(t, d)
	value := func(name string) []float64 {
		return f.UniformValue(p.obj, gl.Uniform{V: p.Uniform(name).Location()})
	}

	scale := p.Uniform("Scale")
	require.NoError(t, scale.SetFloat(2))
	require.NoError(t, scale.SetFloat(2))
	assert.Equal(t, 1, f.Count("Uniform1f"))
	assert.Equal(t, []float64{2}, value("Scale"))
	require.NoError(t, scale.SetFloat(3))
	assert.Equal(t, 2, f.Count("Uniform1f"))
	// Setting a uniform makes its program current.
	assert.Equal(t, p, d.ShaderProgram())

	assert.ErrorIs(t, scale.SetVec2(f32.Pt(1, 2)), ErrTypeMismatch)
	assert.ErrorIs(t, scale.SetInt(1), ErrTypeMismatch)
	assert.ErrorIs(t, scale.SetTexture(nil), ErrTypeMismatch)

	colors := p.Uniform("Colors")
	require.NoError(t, colors.SetVec4s(1, []f32.Vec4{{X: 1}, {Y: 1}}))
	assert.Equal(t, []float64{0, 1, 0, 0}, f.UniformValue(p.obj, gl.Uniform{V: colors.Location() + 2}))
	assert.ErrorIs(t, colors.SetVec4s(2, []f32.Vec4{{}, {}}), ErrOutOfRange)

	require.NoError(t, p.Uniform("Tint").SetColor(color.NRGBA{R: 255, A: 255}))
	assert.Equal(t, []float64{1, 0, 0, 1}, value("Tint"))

	require.NoError(t, p.Uniform("Enabled").SetBool(true))
	assert.Equal(t, []float64{1}, value("Enabled"))
	require.NoError(t, p.Uniform("Count").SetUint(7))
	assert.Equal(t, []float64{7}, value("Count"))

	m := f32.Translation(f32.Vec3{X: 1, Y: 2, Z: 3})
	require.NoError(t, p.Uniform("View").SetMat4(m))
	require.NoError(t, p.Uniform("View").SetMat4(m))
	assert.Equal(t, 1, f.Count("UniformMatrix4fv"))
	assert.Equal(t, float64(2), value("View")[13])

	p.Dispose()
	assert.ErrorIs(t, scale.SetFloat(4), ErrDisposed)
}

func samplerProgram(t *testing.T, f *gltest.Functions, names ...string) (*GraphicsDevice, *ShaderProgram) {
	t.Helper()
	var r gltest.Reflection
	for _, n := range names {
		r.Uniforms = append(r.Uniforms, gltest.Variable{Name: n, Size: 1, Type: gl.SAMPLER_2D})
	}
	f.Reflect = reflectAs(r)
	d, _ := newTestDeviceOn(t, f)
	return d, newTestProgram(t, d)
}

func TestSamplerUnits(t *testing.T) {
	f := gltest.New()
	d, p := samplerProgram(t, f, "a", "b", "c")
	require.Len(t, p.Uniforms().Samplers(), 3)

	t0, err := NewTexture2D(d, 1, 1, FormatColor4b, 0)
	require.NoError(t, err)
	t1, err := NewTexture2D(d, 1, 1, FormatColor4b, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, p.EnsurePreDrawStates(), ErrSamplerNotSet)

	require.NoError(t, p.Uniform("a").SetTexture(t0))
	require.NoError(t, p.Uniform("b").SetTexture(t1))
	require.NoError(t, p.Uniform("c").SetTexture(t0))
	require.NoError(t, p.EnsurePreDrawStates())

	unit := func(name string) []float64 {
		return f.UniformValue(p.obj, gl.Uniform{V: p.Uniform(name).Location()})
	}
	assert.Equal(t, []float64{0}, unit("a"))
	assert.Equal(t, []float64{1}, unit("b"))
	assert.Equal(t, []float64{0}, unit("c"))
	assert.Equal(t, t0.obj, f.BoundTexture(0, gl.TEXTURE_2D))
	assert.Equal(t, t1.obj, f.BoundTexture(1, gl.TEXTURE_2D))

	// Nothing changed, so nothing is issued.
	f.ResetCounts()
	require.NoError(t, p.EnsurePreDrawStates())
	assert.Zero(t, f.Count("BindTexture"))
	assert.Zero(t, f.Count("Uniform1i"))

	// Another binding on unit 1 is undone before the next draw.
	require.NoError(t, d.BindTextureUnit(t0, 1))
	require.NoError(t, p.EnsurePreDrawStates())
	assert.Equal(t, t1.obj, f.BoundTexture(1, gl.TEXTURE_2D))

	cube, err := NewTextureCubemap(d, 1, FormatColor4b)
	require.NoError(t, err)
	assert.ErrorIs(t, p.Uniform("a").SetTexture(cube), ErrTypeMismatch)

	t1.Dispose()
	assert.ErrorIs(t, p.EnsurePreDrawStates(), ErrDisposed)
}

func TestTooManyTextures(t *testing.T) {
	f := gltest.New()
	f.Integers[gl.MAX_TEXTURE_IMAGE_UNITS] = 2
	d, p := samplerProgram(t, f, "a", "b", "c")
	for _, u := range p.Uniforms().Samplers() {
		tex, err := NewTexture2D(d, 1, 1, FormatColor4b, 0)
		require.NoError(t, err)
		require.NoError(t, u.SetTexture(tex))
	}
	err := p.EnsurePreDrawStates()
	var serr *StateError
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, ErrTooManyTextures)
}

func TestUniformBlock(t *testing.T) {
	f := gltest.New()
	f.Reflect = reflectAs(gltest.Reflection{
		Uniforms: []gltest.Variable{
			{Name: "Tint", Size: 1, Type: gl.FLOAT_VEC4},
			{Name: "color", Size: 1, Type: gl.FLOAT_VEC4, Block: "Light"},
			{Name: "direction", Size: 1, Type: gl.FLOAT_VEC4, Block: "Light"},
			{Name: "params", Size: 8, Type: gl.FLOAT, Block: "Light"},
		},
		Blocks: []gltest.Block{{Name: "Light", DataSize: 64}},
	})
	d, _ := newTestDeviceOn(t, f)
	p := newTestProgram(t, d)

	// Block members are not plain uniforms.
	assert.Equal(t, 1, p.Uniforms().Len())
	require.Len(t, p.BlockUniforms(), 1)
	block := p.BlockUniform("Light")
	require.NotNil(t, block)
	assert.Nil(t, p.BlockUniform("Shadow"))
	assert.Equal(t, 64, block.DataSize())
	assert.Equal(t, 3, block.ActiveUniforms())
	binding, ok := f.BlockBinding(p.obj, 0)
	require.True(t, ok)
	assert.Equal(t, uint(block.BindingIndex()), binding)

	assert.ErrorIs(t, p.EnsurePreDrawStates(), ErrUniformBlockNotSet)

	buf, err := NewBufferObject(d, 1024, DynamicDraw)
	require.NoError(t, err)
	small, err := NewUniformBufferSubset[[4]float32](buf, 0, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, block.SetValue(small, 0), ErrTypeMismatch)

	lights, err := NewUniformBufferSubset[lightBlock](buf, 256, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, block.SetValue(lights, 2), ErrOutOfRange)
	require.NoError(t, block.SetValue(lights, 1))
	got, off, size := block.Buffer()
	assert.Equal(t, buf, got)
	assert.Equal(t, 512, off)
	assert.Equal(t, 64, size)

	f.ResetCounts()
	f.Record = true
	require.NoError(t, p.EnsurePreDrawStates())
	require.NoError(t, p.EnsurePreDrawStates())
	assert.Equal(t, 1, f.Count("BindBufferRange"))
	var args []interface{}
	for _, c := range f.Calls {
		if c.Name == "BindBufferRange" {
			args = c.Args
		}
	}
	assert.Equal(t, []interface{}{gl.Enum(gl.UNIFORM_BUFFER), block.BindingIndex(), buf.obj, 512, 64}, args)

	buf.Dispose()
	assert.ErrorIs(t, p.EnsurePreDrawStates(), ErrDisposed)
}

func TestShaderProgramFromSources(t *testing.T) {
	vs := shader.Sources{
		Name:      "sprite.vert",
		GLSL150:   "#version 150\nin vec2 pos;\nin vec2 uv;\nvoid main() {}\n",
		GLSL100ES: "#version 100\nattribute vec2 pos;\nattribute vec2 uv;\nvoid main() {}\n",
		// Inputs are listed out of location order, leaving location 1
		// unused.
		Inputs: []shader.InputLocation{
			{Name: "uv", Location: 2, Size: 2},
			{Name: "pos", Location: 0, Size: 2},
		},
	}
	fs := shader.Sources{
		Name:      "sprite.frag",
		GLSL150:   "#version 150\nout vec4 c;\nvoid main() {}\n",
		GLSL100ES: "#version 100\nvoid main() {}\n",
	}
	var b ShaderProgramBuilder
	b.FromSources(vs, fs)
	assert.Equal(t, []string{"pos", "", "uv"}, b.Attribs)

	refl := gltest.Reflection{
		Attribs: []gltest.Variable{
			{Name: "pos", Size: 1, Type: gl.FLOAT_VEC2},
			{Name: "uv", Size: 1, Type: gl.FLOAT_VEC2},
		},
	}
	tests := []struct {
		name    string
		version string
		want    [2]string
	}{
		{"Desktop", "3.3.0 gltest", [2]string{vs.GLSL150, fs.GLSL150}},
		{"ES", "OpenGL ES 3.0 gltest", [2]string{vs.GLSL100ES, fs.GLSL100ES}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := gltest.New()
			f.Strings[gl.VERSION] = test.version
			var sources []string
			f.Reflect = func(srcs []string) gltest.Reflection {
				sources = srcs
				return refl
			}
			d, _ := newTestDeviceOn(t, f)
			f.Record = true

			p, err := b.Create(d)
			require.NoError(t, err)
			assert.Equal(t, test.want[:], sources)

			var bound []interface{}
			for _, args := range callsNamed(f, "BindAttribLocation") {
				bound = append(bound, args[1:])
			}
			assert.Equal(t, []interface{}{
				[]interface{}{gl.Attrib(0), "pos"},
				[]interface{}{gl.Attrib(2), "uv"},
			}, bound)

			locs := make(map[string]int)
			for _, a := range p.Attribs() {
				locs[a.Name] = a.Location
			}
			assert.Equal(t, map[string]int{"pos": 0, "uv": 2}, locs)
		})
	}
}
