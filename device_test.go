// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trippygl.org/internal/gl"
	"trippygl.org/internal/gl/gltest"
)

// newTestDevice returns a device on a fresh fake with error checking
// enabled, so that misuse of the fake surfaces as *GLError. Call counts
// start at zero.
func newTestDevice(t *testing.T) (*GraphicsDevice, *gltest.Functions) {
	t.Helper()
	return newTestDeviceOn(t, gltest.New())
}

func newTestDeviceOn(t *testing.T, f *gltest.Functions) (*GraphicsDevice, *gltest.Functions) {
	t.Helper()
	if f.Reflect == nil {
		f.Reflect = simpleReflection
	}
	d, err := newDevice(f, Config{CheckErrors: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		if !d.IsDisposed() {
			d.Dispose()
		}
	})
	f.ResetCounts()
	return d, f
}

// simpleReflection reports the variables of the simple shader program.
func simpleReflection(sources []string) gltest.Reflection {
	r := gltest.Reflection{
		Attribs: []gltest.Variable{
			{Name: "Position", Size: 1, Type: gl.FLOAT_VEC3},
			{Name: "Color", Size: 1, Type: gl.FLOAT_VEC4},
		},
		Uniforms: []gltest.Variable{
			{Name: "Transform", Size: 1, Type: gl.FLOAT_MAT4},
		},
	}
	for _, src := range sources {
		if strings.Contains(src, "#define TEXTURED") {
			r.Attribs = append(r.Attribs, gltest.Variable{Name: "TexCoords", Size: 1, Type: gl.FLOAT_VEC2})
			r.Uniforms = append(r.Uniforms, gltest.Variable{Name: "Texture", Size: 1, Type: gl.SAMPLER_2D})
			break
		}
	}
	return r
}

func reflectAs(r gltest.Reflection) func([]string) gltest.Reflection {
	return func([]string) gltest.Reflection { return r }
}

// newTestProgram links a program whose variables are reported by the
// fake's Reflect function.
func newTestProgram(t *testing.T, d *GraphicsDevice, attribs ...string) *ShaderProgram {
	t.Helper()
	b := ShaderProgramBuilder{
		VertexShaderCode:   "void main() {}",
		FragmentShaderCode: "void main() {}",
		Attribs:            attribs,
	}
	p, err := b.Create(d)
	require.NoError(t, err)
	return p
}

func TestNewDeviceLimits(t *testing.T) {
	f := gltest.New()
	f.Strings[gl.RENDERER] = "fake renderer"
	d, _ := newTestDeviceOn(t, f)

	lim := d.Limits()
	assert.Equal(t, [2]int{3, 3}, lim.Version)
	assert.False(t, lim.ES)
	assert.Equal(t, "fake renderer", lim.Renderer)
	assert.Equal(t, 16, lim.MaxTextureImageUnits)
	assert.Equal(t, 256, lim.UniformBufferOffsetAlignment)
	assert.Equal(t, 8, lim.MaxColorAttachments)
}

func TestNewDeviceVersions(t *testing.T) {
	tests := []struct {
		version string
		es      bool
		err     error
	}{
		{"3.3.0 NVIDIA 535.54", false, nil},
		{"4.6 (Core Profile) Mesa 23.1", false, nil},
		{"OpenGL ES 3.0 Mesa", true, nil},
		{"2.1 Mesa", false, ErrUnsupported},
		{"3.2", false, ErrUnsupported},
		{"OpenGL ES 2.0", true, ErrUnsupported},
	}
	for _, test := range tests {
		t.Run(test.version, func(t *testing.T) {
			f := gltest.New()
			f.Strings[gl.VERSION] = test.version
			d, err := newDevice(f, Config{})
			if test.err != nil {
				assert.ErrorIs(t, err, test.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.es, d.Limits().ES)
		})
	}
	f := gltest.New()
	f.Strings[gl.VERSION] = "garbage"
	_, err := newDevice(f, Config{})
	assert.Error(t, err)
}

func TestNewDeviceNoDriver(t *testing.T) {
	saved := gl.NewNativeFunctions
	defer func() { gl.NewNativeFunctions = saved }()

	gl.NewNativeFunctions = nil
	_, err := NewDevice(Config{})
	assert.ErrorIs(t, err, ErrNoDriver)

	loadErr := errors.New("no context current")
	gl.NewNativeFunctions = func() (gl.Functions, error) { return nil, loadErr }
	_, err = NewDevice(Config{})
	assert.ErrorIs(t, err, loadErr)

	fake := gltest.New()
	gl.NewNativeFunctions = func() (gl.Functions, error) { return fake, nil }
	d, err := NewDevice(Config{})
	require.NoError(t, err)
	d.Dispose()
}

func TestDeviceDispose(t *testing.T) {
	d, f := newTestDevice(t)
	b, err := NewBufferObject(d, 64, StaticDraw)
	require.NoError(t, err)
	tex, err := NewTexture2D(d, 4, 4, FormatColor4b, 0)
	require.NoError(t, err)
	p := newTestProgram(t, d)
	vb, err := NewVertexBuffer[VertexColor](d, 3, 3, IndexUint16, StaticDraw)
	require.NoError(t, err)
	fbo, err := NewFramebuffer2D(d, 8, 8, RenderbufferDepth24Stencil8, 0)
	require.NoError(t, err)
	require.NoError(t, d.BindShaderProgram(p))
	require.NoError(t, d.BindFramebuffer(fbo, FramebufferTargetBoth))

	assert.Positive(t, d.ResourceCount())
	assert.Positive(t, f.Live())
	d.Dispose()

	assert.True(t, d.IsDisposed())
	assert.Zero(t, d.ResourceCount())
	assert.Zero(t, f.Live())
	for _, r := range []Disposer{b, tex, p, vb.Buffer(), vb.VertexArray(), fbo} {
		assert.True(t, r.IsDisposed())
	}
	assert.Nil(t, d.ShaderProgram())
	assert.Nil(t, d.DrawFramebuffer())

	_, err = NewBufferObject(d, 16, StaticDraw)
	assert.ErrorIs(t, err, ErrDisposed)
	// A second dispose is harmless.
	d.Dispose()
}

func TestDrawStateErrors(t *testing.T) {
	d, f := newTestDevice(t)

	err := d.DrawArrays(Triangles, 0, 3)
	var serr *StateError
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, ErrNoShaderProgram)

	p := newTestProgram(t, d, "Position", "Color")
	require.NoError(t, d.BindShaderProgram(p))
	assert.ErrorIs(t, d.DrawArrays(Triangles, 0, 3), ErrNoVertexArray)

	vb, err := NewVertexBufferFrom(d, make([]VertexColor, 3), StaticDraw)
	require.NoError(t, err)
	require.NoError(t, d.BindVertexArray(vb.VertexArray()))
	assert.ErrorIs(t, d.DrawArrays(Triangles, -1, 3), ErrOutOfRange)
	assert.ErrorIs(t, d.DrawElements(Triangles, 0, 3), ErrNoIndexBuffer)
	assert.Zero(t, f.Count("DrawArrays"))

	require.NoError(t, d.DrawArrays(Triangles, 0, 3))
	assert.Equal(t, 1, f.Count("DrawArrays"))

	p.Dispose()
	assert.Nil(t, d.ShaderProgram())
	assert.ErrorIs(t, d.DrawArrays(Triangles, 0, 3), ErrNoShaderProgram)
}

func TestDrawElementsRange(t *testing.T) {
	d, f := newTestDevice(t)
	f.Record = true
	p := newTestProgram(t, d, "Position", "Color")
	require.NoError(t, d.BindShaderProgram(p))
	vb, err := NewVertexBuffer[VertexColor](d, 4, 6, IndexUint16, StaticDraw)
	require.NoError(t, err)
	require.NoError(t, SetIndices(vb.Indices(), 0, []uint16{0, 1, 2, 0, 2, 3}))
	require.NoError(t, d.BindVertexArray(vb.VertexArray()))

	assert.ErrorIs(t, d.DrawElements(Triangles, 3, 6), ErrOutOfRange)
	require.NoError(t, d.DrawElements(Triangles, 3, 3))

	var call gltest.Call
	for _, c := range f.Calls {
		if c.Name == "DrawElements" {
			call = c
		}
	}
	require.Equal(t, "DrawElements", call.Name)
	offset := vb.Indices().Offset() + 3*2
	assert.Equal(t, []interface{}{gl.Enum(gl.TRIANGLES), 3, gl.Enum(gl.UNSIGNED_SHORT), offset}, call.Args)
}

func TestStateCaching(t *testing.T) {
	d, f := newTestDevice(t)

	d.SetBlendState(BlendAlpha)
	d.SetBlendState(BlendAlpha)
	assert.Equal(t, 1, f.Count("Enable"))
	assert.Equal(t, 1, f.Count("BlendFuncSeparate"))
	assert.True(t, f.IsEnabled(gl.BLEND))
	assert.Equal(t, BlendAlpha, d.BlendState())

	d.SetBlendState(BlendOpaque)
	assert.False(t, f.IsEnabled(gl.BLEND))

	r := image.Rect(0, 0, 640, 480)
	d.SetViewport(r)
	d.SetViewport(r)
	assert.Equal(t, 1, f.Count("Viewport"))
	assert.Equal(t, r, d.Viewport())

	d.SetClearColor(1, 0, 0, 1)
	d.SetClearColor(1, 0, 0, 1)
	assert.Equal(t, 1, f.Count("ClearColor"))

	p := newTestProgram(t, d)
	f.ResetCounts()
	require.NoError(t, d.BindShaderProgram(p))
	require.NoError(t, d.BindShaderProgram(p))
	assert.Equal(t, 1, f.Count("UseProgram"))

	// A reset re-issues the cached state even when unchanged.
	assert.Zero(t, f.Count("Viewport"))
	d.ResetStates()
	assert.Equal(t, 2, f.Count("UseProgram"))
	assert.Equal(t, 1, f.Count("Viewport"))
	assert.Equal(t, 1, f.Count("ClearColor"))
	assert.Equal(t, r, d.Viewport())
}

func TestDepthAndStencilStates(t *testing.T) {
	d, f := newTestDevice(t)

	d.SetDepthState(DepthDefault)
	assert.True(t, f.IsEnabled(gl.DEPTH_TEST))
	assert.Equal(t, DepthDefault, d.DepthState())
	n := f.Count("DepthFunc") + f.Count("DepthMask")
	d.SetDepthState(DepthDefault)
	assert.Equal(t, n, f.Count("DepthFunc")+f.Count("DepthMask"))

	d.SetStencilState(NewStencilState(StencilFace{Function: CompareEqual, Ref: 1, Mask: 0xff, WriteMask: 0xff}))
	assert.True(t, f.IsEnabled(gl.STENCIL_TEST))
	d.SetStencilState(StencilDisabled)
	assert.False(t, f.IsEnabled(gl.STENCIL_TEST))
}

func TestBindFramebufferTargets(t *testing.T) {
	d, f := newTestDevice(t)
	fbo, err := NewFramebuffer2D(d, 16, 16, RenderbufferNone, 0)
	require.NoError(t, err)
	f.ResetCounts()

	require.NoError(t, d.BindFramebuffer(fbo, FramebufferTargetDraw))
	assert.Equal(t, fbo, d.DrawFramebuffer())
	assert.Nil(t, d.ReadFramebuffer())
	require.NoError(t, d.BindFramebuffer(fbo, FramebufferTargetDraw))
	assert.Equal(t, 1, f.Count("BindFramebuffer"))

	require.NoError(t, d.BindFramebuffer(nil, FramebufferTargetBoth))
	assert.Nil(t, d.DrawFramebuffer())
	assert.ErrorIs(t, d.BindFramebuffer(nil, FramebufferTarget(9)), ErrOutOfRange)
}

func TestBlitFramebufferFilter(t *testing.T) {
	d, f := newTestDevice(t)
	r := image.Rect(0, 0, 8, 8)
	assert.ErrorIs(t, d.BlitFramebuffer(r, r, ClearDepth, MagLinear), ErrUnsupported)
	require.NoError(t, d.BlitFramebuffer(r, r, ClearColor|ClearDepth, MagNearest))
	assert.Equal(t, 1, f.Count("BlitFramebuffer"))
}

func TestGLErrorReported(t *testing.T) {
	d, f := newTestDevice(t)
	f.SetError(gl.OUT_OF_MEMORY)
	_, err := NewBufferObject(d, 16, StaticDraw)
	var glErr *GLError
	require.ErrorAs(t, err, &glErr)
	assert.Equal(t, gl.Enum(gl.OUT_OF_MEMORY), glErr.Code)
	assert.Contains(t, err.Error(), "GL_OUT_OF_MEMORY")
	// The failed buffer was released.
	assert.Zero(t, d.ResourceCount())
}

func TestResourcesOfOtherDevices(t *testing.T) {
	d1, _ := newTestDevice(t)
	d2, _ := newTestDevice(t)
	p := newTestProgram(t, d1)
	assert.ErrorIs(t, d2.BindShaderProgram(p), ErrDeviceMismatch)
	tex, err := NewTexture2D(d1, 2, 2, FormatColor4b, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, d2.BindTextureUnit(tex, 0), ErrDeviceMismatch)
}
