// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"errors"
	"fmt"
	"strings"

	"gioui.org/shader"

	"trippygl.org/internal/gl"
)

// ShaderStage identifies a shader in a program.
type ShaderStage uint8

const (
	VertexStage ShaderStage = iota
	GeometryStage
	FragmentStage
)

// ShaderProgramBuilder collects the shader code for a program. Code can be
// set directly or taken from compiled gioui.org/shader sources.
type ShaderProgramBuilder struct {
	VertexShaderCode   string
	GeometryShaderCode string
	FragmentShaderCode string
	// Attribs names the vertex attributes bound to locations 0, 1, 2 and
	// so on before linking. Empty names are left to the linker.
	Attribs []string

	vertSrc, fragSrc *shader.Sources
}

// ActiveAttrib is a vertex attribute reported by a linked program.
type ActiveAttrib struct {
	Name     string
	Size     int
	Type     AttribType
	Location int
}

// ShaderProgram is a linked GL program with its reflected attributes,
// uniforms and uniform blocks.
type ShaderProgram struct {
	GraphicsResource
	obj         gl.Program
	attribs     []ActiveAttrib
	uniforms    *ShaderUniformList
	blocks      []*ShaderBlockUniform
	hasGeometry bool
}

// FromSources uses the GLSL variants of vs and fs, picking the variant
// matching the device at Create time. Attribute locations follow the
// inputs of vs.
func (b *ShaderProgramBuilder) FromSources(vs, fs shader.Sources) {
	b.vertSrc, b.fragSrc = &vs, &fs
	b.Attribs = make([]string, len(vs.Inputs))
	for _, in := range vs.Inputs {
		if in.Location >= len(b.Attribs) {
			b.Attribs = append(b.Attribs, make([]string, in.Location+1-len(b.Attribs))...)
		}
		b.Attribs[in.Location] = in.Name
	}
}

func (b *ShaderProgramBuilder) code(d *GraphicsDevice) (vs, gs, fs string) {
	vs, gs, fs = b.VertexShaderCode, b.GeometryShaderCode, b.FragmentShaderCode
	if b.vertSrc != nil && b.fragSrc != nil {
		if d.limits.ES {
			vs, fs = b.vertSrc.GLSL100ES, b.fragSrc.GLSL100ES
		} else {
			vs, fs = b.vertSrc.GLSL150, b.fragSrc.GLSL150
		}
	}
	return vs, gs, fs
}

// Create compiles and links the program on d.
func (b *ShaderProgramBuilder) Create(d *GraphicsDevice) (*ShaderProgram, error) {
	const op = "ShaderProgramBuilder.Create"
	if err := d.alive(op); err != nil {
		return nil, err
	}
	vs, gs, fs := b.code(d)
	if strings.TrimSpace(vs) == "" || strings.TrimSpace(fs) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoShaderCode)
	}
	if gs != "" && d.limits.ES {
		return nil, fmt.Errorf("%s: geometry shaders on OpenGL ES: %w", op, ErrUnsupported)
	}
	if len(b.Attribs) > d.limits.MaxVertexAttribs {
		return nil, fmt.Errorf("%s: %d attributes, max %d: %w", op, len(b.Attribs), d.limits.MaxVertexAttribs, ErrOutOfRange)
	}
	f := d.funcs
	var shaders []gl.Shader
	defer func() {
		for _, s := range shaders {
			f.DeleteShader(s)
		}
	}()
	for _, st := range []struct {
		stage ShaderStage
		src   string
	}{{VertexStage, vs}, {GeometryStage, gs}, {FragmentStage, fs}} {
		if st.src == "" {
			continue
		}
		s, err := gl.CreateShader(f, st.stage.glEnum(), st.src)
		if err != nil {
			var cerr *gl.CompileError
			if errors.As(err, &cerr) {
				return nil, &ShaderCompilationError{Stage: st.stage, Log: cerr.Log}
			}
			return nil, fmt.Errorf("%s: %s shader: %w", op, st.stage, err)
		}
		shaders = append(shaders, s)
	}
	obj, err := gl.LinkProgram(f, shaders, b.Attribs)
	if err != nil {
		var lerr *gl.LinkError
		if errors.As(err, &lerr) {
			return nil, &ShaderLinkError{Log: lerr.Log}
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p := &ShaderProgram{obj: obj, hasGeometry: gs != ""}
	p.register(d, p)
	if err := p.reflect(op); err != nil {
		p.Dispose()
		return nil, err
	}
	if err := d.glErr(op); err != nil {
		p.Dispose()
		return nil, err
	}
	d.log.Debug("trippygl: shader program created",
		"attribs", len(p.attribs), "uniforms", p.uniforms.Len(), "blocks", len(p.blocks))
	return p, nil
}

func (p *ShaderProgram) reflect(op string) error {
	d := p.device
	f := d.funcs
	n := f.GetProgrami(p.obj, gl.ACTIVE_ATTRIBUTES)
	for i := 0; i < n; i++ {
		name, size, typ := f.GetActiveAttrib(p.obj, i)
		if strings.HasPrefix(name, "gl_") {
			continue
		}
		p.attribs = append(p.attribs, ActiveAttrib{
			Name:     name,
			Size:     size,
			Type:     AttribType(typ),
			Location: f.GetAttribLocation(p.obj, name),
		})
	}
	p.uniforms = newShaderUniformList(p)
	n = f.GetProgrami(p.obj, gl.ACTIVE_UNIFORMS)
	for i := 0; i < n; i++ {
		name, size, typ := f.GetActiveUniform(p.obj, i)
		if strings.HasPrefix(name, "gl_") {
			continue
		}
		loc := f.GetUniformLocation(p.obj, name)
		if !loc.Valid() {
			// Uniform block members have no location.
			continue
		}
		p.uniforms.add(newShaderUniform(p, name, loc, UniformType(typ), size))
	}
	n = f.GetProgrami(p.obj, gl.ACTIVE_UNIFORM_BLOCKS)
	if n > d.limits.MaxUniformBufferBindings {
		return fmt.Errorf("%s: %d uniform blocks, max %d: %w", op, n, d.limits.MaxUniformBufferBindings, ErrOutOfRange)
	}
	for i := 0; i < n; i++ {
		idx := uint(i)
		b := &ShaderBlockUniform{
			program:        p,
			name:           f.GetActiveUniformBlockName(p.obj, idx),
			index:          idx,
			binding:        i,
			activeUniforms: f.GetActiveUniformBlocki(p.obj, idx, gl.UNIFORM_BLOCK_ACTIVE_UNIFORMS),
			dataSize:       f.GetActiveUniformBlocki(p.obj, idx, gl.UNIFORM_BLOCK_DATA_SIZE),
		}
		f.UniformBlockBinding(p.obj, idx, uint(b.binding))
		p.blocks = append(p.blocks, b)
	}
	return nil
}

// Attribs returns the active vertex attributes.
func (p *ShaderProgram) Attribs() []ActiveAttrib {
	return p.attribs
}

// Uniforms returns the active uniforms outside uniform blocks.
func (p *ShaderProgram) Uniforms() *ShaderUniformList {
	return p.uniforms
}

// Uniform returns the named uniform, or nil if the program has no such
// active uniform.
func (p *ShaderProgram) Uniform(name string) *ShaderUniform {
	return p.uniforms.Lookup(name)
}

// BlockUniforms returns the uniform blocks in binding order.
func (p *ShaderProgram) BlockUniforms() []*ShaderBlockUniform {
	return p.blocks
}

// BlockUniform returns the named uniform block, or nil.
func (p *ShaderProgram) BlockUniform(name string) *ShaderBlockUniform {
	for _, b := range p.blocks {
		if b.name == name {
			return b
		}
	}
	return nil
}

func (p *ShaderProgram) HasGeometryShader() bool {
	return p.hasGeometry
}

// Dispose deletes the program. If it is bound, the device is left with no
// program.
func (p *ShaderProgram) Dispose() {
	if !p.markDisposed() {
		return
	}
	d := p.device
	d.state.deleteProgram(d.funcs, p.obj)
	if d.program == p {
		d.program = nil
	}
	d.log.Debug("trippygl: shader program disposed")
}

// EnsurePreDrawStates binds the textures referenced by sampler uniforms and
// the buffer ranges of uniform blocks. Draw calls on the device do this
// automatically.
func (p *ShaderProgram) EnsurePreDrawStates() error {
	const op = "EnsurePreDrawStates"
	if err := p.alive(op); err != nil {
		return err
	}
	p.ensureInUse()
	return p.ensurePreDrawStates(op)
}

func (p *ShaderProgram) ensurePreDrawStates(op string) error {
	if err := p.uniforms.ensureSamplerStates(op); err != nil {
		return err
	}
	for _, b := range p.blocks {
		if err := b.apply(op); err != nil {
			return err
		}
	}
	return nil
}

// ensureInUse binds p as the device's program.
func (p *ShaderProgram) ensureInUse() {
	d := p.device
	d.state.useProgram(d.funcs, p.obj)
	d.program = p
}

func (s ShaderStage) glEnum() gl.Enum {
	switch s {
	case VertexStage:
		return gl.VERTEX_SHADER
	case GeometryStage:
		return gl.GEOMETRY_SHADER
	case FragmentStage:
		return gl.FRAGMENT_SHADER
	default:
		panic("unknown shader stage")
	}
}

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case GeometryStage:
		return "geometry"
	case FragmentStage:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderStage(%d)", uint8(s))
	}
}
