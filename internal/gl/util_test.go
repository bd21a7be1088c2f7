// SPDX-License-Identifier: Unlicense OR MIT

package gl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trippygl.org/internal/gl"
	"trippygl.org/internal/gl/gltest"
)

func TestParseGLVersion(t *testing.T) {
	tests := []struct {
		in  string
		ver [2]int
		es  bool
	}{
		{"3.3.0 NVIDIA 535.129.03", [2]int{3, 3}, false},
		{"4.6 (Core Profile) Mesa 23.2.1", [2]int{4, 6}, false},
		{"OpenGL ES 3.2 Mesa 23.2.1", [2]int{3, 2}, true},
		{"WebGL 2.0", [2]int{3, 0}, true},
	}
	for _, test := range tests {
		ver, es, err := gl.ParseGLVersion(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.ver, ver, test.in)
		assert.Equal(t, test.es, es, test.in)
	}
	_, _, err := gl.ParseGLVersion("unknown")
	assert.Error(t, err)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "GL_INVALID_OPERATION", gl.ErrorString(gl.INVALID_OPERATION))
	assert.Equal(t, "GL_NO_ERROR", gl.ErrorString(gl.NO_ERROR))
	assert.Equal(t, "0x1234", gl.ErrorString(0x1234))
}

func TestCreateShader(t *testing.T) {
	f := gltest.New()
	sh, err := gl.CreateShader(f, gl.VERTEX_SHADER, "void main() {}")
	require.NoError(t, err)
	assert.True(t, sh.Valid())

	f.CompileLogs = map[gl.Enum]string{gl.FRAGMENT_SHADER: "0:1: syntax error\n"}
	live := f.Live()
	_, err = gl.CreateShader(f, gl.FRAGMENT_SHADER, "void main() {")
	var cerr *gl.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, gl.Enum(gl.FRAGMENT_SHADER), cerr.Type)
	assert.Equal(t, "shader compilation failed: 0:1: syntax error", err.Error())
	assert.Equal(t, live, f.Live())
}

func TestLinkProgram(t *testing.T) {
	f := gltest.New()
	vs, err := gl.CreateShader(f, gl.VERTEX_SHADER, "void main() {}")
	require.NoError(t, err)
	fs, err := gl.CreateShader(f, gl.FRAGMENT_SHADER, "void main() {}")
	require.NoError(t, err)

	f.Record = true
	p, err := gl.LinkProgram(f, []gl.Shader{vs, fs}, []string{"pos", "", "uv"})
	require.NoError(t, err)
	assert.True(t, p.Valid())
	assert.Equal(t, 2, f.Count("BindAttribLocation"))
	assert.Equal(t, 2, f.Count("DetachShader"))

	f.LinkLog = "unresolved symbol"
	live := f.Live()
	_, err = gl.LinkProgram(f, []gl.Shader{vs, fs}, nil)
	var lerr *gl.LinkError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "unresolved symbol", lerr.Log)
	assert.Equal(t, live, f.Live())
}
