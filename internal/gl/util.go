// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"errors"
	"fmt"
	"strings"
)

// CompileError is returned by CreateShader when the driver rejects a shader.
// Log holds the driver's info log verbatim.
type CompileError struct {
	Type Enum
	Log  string
}

// LinkError is returned by LinkProgram when the driver fails to link.
type LinkError struct {
	Log string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader compilation failed: %s", strings.TrimSpace(e.Log))
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("program link failed: %s", strings.TrimSpace(e.Log))
}

// CreateShader creates and compiles a shader of type typ.
func CreateShader(ctx Functions, typ Enum, src string) (Shader, error) {
	sh := ctx.CreateShader(typ)
	if !sh.Valid() {
		return Shader{}, errors.New("glCreateShader failed")
	}
	ctx.ShaderSource(sh, src)
	ctx.CompileShader(sh)
	if ctx.GetShaderi(sh, COMPILE_STATUS) == 0 {
		log := ctx.GetShaderInfoLog(sh)
		ctx.DeleteShader(sh)
		return Shader{}, &CompileError{Type: typ, Log: log}
	}
	return sh, nil
}

// LinkProgram attaches shaders to a new program, binds attribs to
// consecutive locations and links. The shaders are detached afterwards so
// they can be deleted by the caller.
func LinkProgram(ctx Functions, shaders []Shader, attribs []string) (Program, error) {
	prog := ctx.CreateProgram()
	if !prog.Valid() {
		return Program{}, errors.New("glCreateProgram failed")
	}
	for _, s := range shaders {
		ctx.AttachShader(prog, s)
	}
	for i, a := range attribs {
		if a != "" {
			ctx.BindAttribLocation(prog, Attrib(i), a)
		}
	}
	ctx.LinkProgram(prog)
	for _, s := range shaders {
		ctx.DetachShader(prog, s)
	}
	if ctx.GetProgrami(prog, LINK_STATUS) == 0 {
		log := ctx.GetProgramInfoLog(prog)
		ctx.DeleteProgram(prog)
		return Program{}, &LinkError{Log: log}
	}
	return prog, nil
}

// ParseGLVersion parses a GL_VERSION string and reports whether it
// describes OpenGL ES.
func ParseGLVersion(glVer string) (version [2]int, gles bool, err error) {
	var ver [2]int
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &ver[0], &ver[1]); err == nil {
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "WebGL %d.%d", &ver[0], &ver[1]); err == nil {
		// WebGL major version v corresponds to OpenGL ES version v + 1
		ver[0]++
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &ver[0], &ver[1]); err == nil {
		return ver, false, nil
	}
	return ver, false, fmt.Errorf("failed to parse OpenGL version (%s)", glVer)
}

// ErrorString names a glGetError code.
func ErrorString(code Enum) string {
	switch code {
	case NO_ERROR:
		return "GL_NO_ERROR"
	case INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("%#x", uint(code))
	}
}
