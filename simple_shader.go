// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"

	"trippygl.org/f32"
)

// SimpleShaderProgram is a ready made program for VertexColor or, when
// textured, VertexColorTexture vertices. Positions are multiplied by a
// single transform matrix.
type SimpleShaderProgram struct {
	*ShaderProgram
	transform *ShaderUniform
	texture   *ShaderUniform
}

const simpleVertexShader = `
in vec3 Position;
in vec4 Color;
#ifdef TEXTURED
in vec2 TexCoords;
out vec2 vTexCoords;
#endif
out vec4 vColor;

uniform mat4 Transform;

void main() {
	gl_Position = Transform * vec4(Position, 1.0);
	vColor = Color;
#ifdef TEXTURED
	vTexCoords = TexCoords;
#endif
}
`

const simpleFragmentShader = `
in vec4 vColor;
#ifdef TEXTURED
in vec2 vTexCoords;
uniform sampler2D Texture;
#endif
out vec4 FragColor;

void main() {
#ifdef TEXTURED
	FragColor = texture(Texture, vTexCoords) * vColor;
#else
	FragColor = vColor;
#endif
}
`

// NewSimpleShaderProgram compiles the simple program. The transform starts
// as the identity.
func NewSimpleShaderProgram(d *GraphicsDevice, textured bool) (*SimpleShaderProgram, error) {
	header := "#version 330 core\n"
	if d.limits.ES {
		header = "#version 300 es\nprecision mediump float;\n"
	}
	attribs := []string{"Position", "Color"}
	if textured {
		header += "#define TEXTURED\n"
		attribs = append(attribs, "TexCoords")
	}
	b := ShaderProgramBuilder{
		VertexShaderCode:   header + simpleVertexShader,
		FragmentShaderCode: header + simpleFragmentShader,
		Attribs:            attribs,
	}
	p, err := b.Create(d)
	if err != nil {
		return nil, err
	}
	s := &SimpleShaderProgram{
		ShaderProgram: p,
		transform:     p.Uniform("Transform"),
	}
	if textured {
		s.texture = p.Uniform("Texture")
	}
	if s.transform == nil || textured && s.texture == nil {
		p.Dispose()
		return nil, fmt.Errorf("NewSimpleShaderProgram: uniforms not reported by the driver: %w", ErrUnsupported)
	}
	if err := s.transform.SetMat4(f32.Identity()); err != nil {
		p.Dispose()
		return nil, err
	}
	return s, nil
}

// SetTransform sets the matrix applied to vertex positions.
func (s *SimpleShaderProgram) SetTransform(m f32.Mat4) error {
	return s.transform.SetMat4(m)
}

// SetViewportTransform sets the transform to m followed by the mapping of
// a width by height viewport with its origin at the top-left.
func (s *SimpleShaderProgram) SetViewportTransform(width, height float32, m f32.Mat4) error {
	return s.transform.SetMat4(f32.Ortho2D(width, height).Mul(m))
}

// TextureUniform returns the sampler uniform, or nil if the program is not
// textured.
func (s *SimpleShaderProgram) TextureUniform() *ShaderUniform {
	return s.texture
}
