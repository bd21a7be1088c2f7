// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"golang.org/x/exp/slices"

	"trippygl.org/f32"
	"trippygl.org/internal/gl"
)

// UniformType is the GLSL type of a uniform, with the values of the GL
// enums.
type UniformType uint32

const (
	UniformFloat                     UniformType = gl.FLOAT
	UniformVec2                      UniformType = gl.FLOAT_VEC2
	UniformVec3                      UniformType = gl.FLOAT_VEC3
	UniformVec4                      UniformType = gl.FLOAT_VEC4
	UniformInt                       UniformType = gl.INT
	UniformIVec2                     UniformType = gl.INT_VEC2
	UniformIVec3                     UniformType = gl.INT_VEC3
	UniformIVec4                     UniformType = gl.INT_VEC4
	UniformUint                      UniformType = gl.UNSIGNED_INT
	UniformUVec2                     UniformType = gl.UNSIGNED_INT_VEC2
	UniformUVec3                     UniformType = gl.UNSIGNED_INT_VEC3
	UniformUVec4                     UniformType = gl.UNSIGNED_INT_VEC4
	UniformBool                      UniformType = gl.BOOL
	UniformBVec2                     UniformType = gl.BOOL_VEC2
	UniformBVec3                     UniformType = gl.BOOL_VEC3
	UniformBVec4                     UniformType = gl.BOOL_VEC4
	UniformMat2                      UniformType = gl.FLOAT_MAT2
	UniformMat3                      UniformType = gl.FLOAT_MAT3
	UniformMat4                      UniformType = gl.FLOAT_MAT4
	UniformMat2x3                    UniformType = gl.FLOAT_MAT2x3
	UniformMat2x4                    UniformType = gl.FLOAT_MAT2x4
	UniformMat3x2                    UniformType = gl.FLOAT_MAT3x2
	UniformMat3x4                    UniformType = gl.FLOAT_MAT3x4
	UniformMat4x2                    UniformType = gl.FLOAT_MAT4x2
	UniformMat4x3                    UniformType = gl.FLOAT_MAT4x3
	UniformSampler1D                 UniformType = gl.SAMPLER_1D
	UniformSampler2D                 UniformType = gl.SAMPLER_2D
	UniformSampler3D                 UniformType = gl.SAMPLER_3D
	UniformSampler2DArray            UniformType = gl.SAMPLER_2D_ARRAY
	UniformSamplerCube               UniformType = gl.SAMPLER_CUBE
	UniformSampler2DMultisample      UniformType = gl.SAMPLER_2D_MULTISAMPLE
	UniformSampler2DMultisampleArray UniformType = gl.SAMPLER_2D_MULTISAMPLE_ARRAY
	UniformSampler2DShadow           UniformType = gl.SAMPLER_2D_SHADOW
	UniformIntSampler2D              UniformType = gl.INT_SAMPLER_2D
	UniformUnsignedIntSampler2D      UniformType = gl.UNSIGNED_INT_SAMPLER_2D
	UniformIntSampler2DArray         UniformType = gl.INT_SAMPLER_2D_ARRAY
	UniformUnsignedIntSampler2DArray UniformType = gl.UNSIGNED_INT_SAMPLER_2D_ARRAY
	UniformIntSamplerCube            UniformType = gl.INT_SAMPLER_CUBE
	UniformUnsignedIntSamplerCube    UniformType = gl.UNSIGNED_INT_SAMPLER_CUBE
)

// ShaderUniform is an active uniform of a program outside any uniform
// block. Array uniforms are a single ShaderUniform whose Size is the
// array length. Setters must match the declared type; writes of the
// current value are skipped.
type ShaderUniform struct {
	program *ShaderProgram
	name    string
	loc     gl.Uniform
	typ     UniformType
	size    int

	// vals caches the written value as float32 bits or raw integers.
	vals  []uint32
	known bool

	// Sampler uniforms.
	textures []Texture
	units    []int32
}

func newShaderUniform(p *ShaderProgram, name string, loc gl.Uniform, typ UniformType, size int) *ShaderUniform {
	u := &ShaderUniform{
		program: p,
		name:    strings.TrimSuffix(name, "[0]"),
		loc:     loc,
		typ:     typ,
		size:    size,
	}
	if typ.IsSampler() {
		u.textures = make([]Texture, size)
		u.units = make([]int32, size)
		for i := range u.units {
			u.units[i] = -1
		}
	} else {
		u.vals = make([]uint32, size*typ.components())
	}
	return u
}

// Name returns the uniform's name, without the "[0]" suffix of arrays.
func (u *ShaderUniform) Name() string {
	return u.name
}

// Location returns the uniform's location.
func (u *ShaderUniform) Location() int {
	return u.loc.V
}

func (u *ShaderUniform) Type() UniformType {
	return u.typ
}

// Size returns the array length, 1 for non-array uniforms.
func (u *ShaderUniform) Size() int {
	return u.size
}

func (u *ShaderUniform) IsSampler() bool {
	return u.typ.IsSampler()
}

func (u *ShaderUniform) SetFloat(v float32) error {
	return u.setFloats("SetFloat", UniformFloat, 0, []float32{v})
}

func (u *ShaderUniform) SetVec2(v f32.Point) error {
	return u.setFloats("SetVec2", UniformVec2, 0, []float32{v.X, v.Y})
}

func (u *ShaderUniform) SetVec3(v f32.Vec3) error {
	return u.setFloats("SetVec3", UniformVec3, 0, []float32{v.X, v.Y, v.Z})
}

func (u *ShaderUniform) SetVec4(v f32.Vec4) error {
	return u.setFloats("SetVec4", UniformVec4, 0, []float32{v.X, v.Y, v.Z, v.W})
}

// SetColor sets a vec4 uniform to c with components normalized to [0, 1].
// A vec3 uniform receives the color channels only.
func (u *ShaderUniform) SetColor(c color.NRGBA) error {
	rgba := []float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
	if u.typ == UniformVec3 {
		return u.setFloats("SetColor", UniformVec3, 0, rgba[:3])
	}
	return u.setFloats("SetColor", UniformVec4, 0, rgba)
}

// SetFloats sets elements of a float array uniform, starting at element
// offset.
func (u *ShaderUniform) SetFloats(offset int, v []float32) error {
	return u.setFloats("SetFloats", UniformFloat, offset, v)
}

// SetVec4s sets elements of a vec4 array uniform, starting at element
// offset.
func (u *ShaderUniform) SetVec4s(offset int, v []f32.Vec4) error {
	vals := make([]float32, 0, len(v)*4)
	for _, e := range v {
		vals = append(vals, e.X, e.Y, e.Z, e.W)
	}
	return u.setFloats("SetVec4s", UniformVec4, offset, vals)
}

func (u *ShaderUniform) SetMat2(m [4]float32) error {
	return u.setFloats("SetMat2", UniformMat2, 0, m[:])
}

func (u *ShaderUniform) SetMat3(m [9]float32) error {
	return u.setFloats("SetMat3", UniformMat3, 0, m[:])
}

// SetMat4 sets a mat4 uniform. m is column-major, as GLSL expects.
func (u *ShaderUniform) SetMat4(m f32.Mat4) error {
	return u.setFloats("SetMat4", UniformMat4, 0, m[:])
}

func (u *ShaderUniform) SetInt(v int32) error {
	return u.setInts("SetInt", UniformInt, []int32{v})
}

func (u *ShaderUniform) SetIVec2(x, y int32) error {
	return u.setInts("SetIVec2", UniformIVec2, []int32{x, y})
}

func (u *ShaderUniform) SetIVec3(x, y, z int32) error {
	return u.setInts("SetIVec3", UniformIVec3, []int32{x, y, z})
}

func (u *ShaderUniform) SetIVec4(x, y, z, w int32) error {
	return u.setInts("SetIVec4", UniformIVec4, []int32{x, y, z, w})
}

func (u *ShaderUniform) SetUint(v uint32) error {
	return u.setUints("SetUint", UniformUint, []uint32{v})
}

func (u *ShaderUniform) SetUVec2(x, y uint32) error {
	return u.setUints("SetUVec2", UniformUVec2, []uint32{x, y})
}

func (u *ShaderUniform) SetUVec3(x, y, z uint32) error {
	return u.setUints("SetUVec3", UniformUVec3, []uint32{x, y, z})
}

func (u *ShaderUniform) SetUVec4(x, y, z, w uint32) error {
	return u.setUints("SetUVec4", UniformUVec4, []uint32{x, y, z, w})
}

func (u *ShaderUniform) SetBool(v bool) error {
	var i int32
	if v {
		i = 1
	}
	return u.setInts("SetBool", UniformBool, []int32{i})
}

// SetTexture sets the texture of a sampler uniform, or of element 0 of a
// sampler array. A nil t clears the sampler; drawing with an unset
// sampler fails.
func (u *ShaderUniform) SetTexture(t Texture) error {
	return u.SetTextures(0, []Texture{t})
}

// SetTextures sets the textures of a sampler array starting at element
// offset.
func (u *ShaderUniform) SetTextures(offset int, ts []Texture) error {
	const op = "SetTextures"
	if err := u.program.alive(op); err != nil {
		return err
	}
	if !u.typ.IsSampler() {
		return fmt.Errorf("%s: uniform %s is %s: %w", op, u.name, u.typ, ErrTypeMismatch)
	}
	if offset < 0 || offset > u.size || len(ts) > u.size-offset {
		return fmt.Errorf("%s: elements [%d, %d) of %s[%d]: %w", op, offset, offset+len(ts), u.name, u.size, ErrOutOfRange)
	}
	for _, t := range ts {
		if t == nil {
			continue
		}
		b := t.base()
		if err := u.program.sameDevice(op, &b.GraphicsResource); err != nil {
			return err
		}
		if target := u.typ.samplerTarget(); target != 0 && target != b.target {
			return fmt.Errorf("%s: %s texture for %s uniform %s: %w", op, b.format, u.typ, u.name, ErrTypeMismatch)
		}
	}
	for i, t := range ts {
		if u.textures[offset+i] != t {
			u.textures[offset+i] = t
			u.program.uniforms.dirty = true
		}
	}
	return nil
}

// Texture returns the texture of a sampler uniform, or of element 0 of a
// sampler array.
func (u *ShaderUniform) Texture() Texture {
	if len(u.textures) == 0 {
		return nil
	}
	return u.textures[0]
}

// Textures returns the textures of a sampler uniform.
func (u *ShaderUniform) Textures() []Texture {
	return u.textures
}

func (u *ShaderUniform) check(op string, want UniformType, offset, n int) error {
	if err := u.program.alive(op); err != nil {
		return err
	}
	if u.typ != want {
		return fmt.Errorf("%s: uniform %s is %s, not %s: %w", op, u.name, u.typ, want, ErrTypeMismatch)
	}
	comps := want.components()
	if n%comps != 0 || offset < 0 || offset > u.size || n/comps > u.size-offset {
		return fmt.Errorf("%s: %d values at element %d of %s[%d]: %w", op, n, offset, u.name, u.size, ErrOutOfRange)
	}
	return nil
}

// update stores bits at element offset and reports whether they differ
// from the last written value.
func (u *ShaderUniform) update(offset int, bits []uint32) bool {
	start := offset * u.typ.components()
	dst := u.vals[start : start+len(bits)]
	if u.known && slices.Equal(dst, bits) {
		return false
	}
	copy(dst, bits)
	if len(bits) == len(u.vals) {
		u.known = true
	}
	return true
}

func (u *ShaderUniform) setFloats(op string, want UniformType, offset int, v []float32) error {
	if err := u.check(op, want, offset, len(v)); err != nil {
		return err
	}
	bits := make([]uint32, len(v))
	for i, x := range v {
		bits[i] = math.Float32bits(x)
	}
	if !u.update(offset, bits) {
		return nil
	}
	u.program.ensureInUse()
	f := u.program.device.funcs
	loc := gl.Uniform{V: u.loc.V + offset}
	switch want {
	case UniformFloat:
		if len(v) == 1 {
			f.Uniform1f(loc, v[0])
		} else {
			f.Uniform1fv(loc, v)
		}
	case UniformVec2:
		f.Uniform2f(loc, v[0], v[1])
	case UniformVec3:
		f.Uniform3f(loc, v[0], v[1], v[2])
	case UniformVec4:
		if len(v) == 4 {
			f.Uniform4f(loc, v[0], v[1], v[2], v[3])
			break
		}
		for i := 0; i < len(v); i += 4 {
			f.Uniform4f(gl.Uniform{V: loc.V + i/4}, v[i], v[i+1], v[i+2], v[i+3])
		}
	case UniformMat2:
		f.UniformMatrix2fv(loc, false, v)
	case UniformMat3:
		f.UniformMatrix3fv(loc, false, v)
	case UniformMat4:
		f.UniformMatrix4fv(loc, false, v)
	}
	return u.program.device.glErr(op)
}

func (u *ShaderUniform) setInts(op string, want UniformType, v []int32) error {
	if err := u.check(op, want, 0, len(v)); err != nil {
		return err
	}
	bits := make([]uint32, len(v))
	for i, x := range v {
		bits[i] = uint32(x)
	}
	if !u.update(0, bits) {
		return nil
	}
	u.program.ensureInUse()
	f := u.program.device.funcs
	switch len(v) {
	case 1:
		f.Uniform1i(u.loc, int(v[0]))
	case 2:
		f.Uniform2i(u.loc, int(v[0]), int(v[1]))
	case 3:
		f.Uniform3i(u.loc, int(v[0]), int(v[1]), int(v[2]))
	case 4:
		f.Uniform4i(u.loc, int(v[0]), int(v[1]), int(v[2]), int(v[3]))
	}
	return u.program.device.glErr(op)
}

func (u *ShaderUniform) setUints(op string, want UniformType, v []uint32) error {
	if err := u.check(op, want, 0, len(v)); err != nil {
		return err
	}
	if !u.update(0, v) {
		return nil
	}
	u.program.ensureInUse()
	f := u.program.device.funcs
	switch len(v) {
	case 1:
		f.Uniform1ui(u.loc, v[0])
	case 2:
		f.Uniform2ui(u.loc, v[0], v[1])
	case 3:
		f.Uniform3ui(u.loc, v[0], v[1], v[2])
	case 4:
		f.Uniform4ui(u.loc, v[0], v[1], v[2], v[3])
	}
	return u.program.device.glErr(op)
}

// applyUnits writes the texture units of a sampler uniform if they
// changed.
func (u *ShaderUniform) applyUnits(units map[*textureBase]int) {
	changed := false
	for i, t := range u.textures {
		unit := int32(units[t.base()])
		if u.units[i] != unit {
			u.units[i] = unit
			changed = true
		}
	}
	if !changed {
		return
	}
	f := u.program.device.funcs
	if u.size == 1 {
		f.Uniform1i(u.loc, int(u.units[0]))
	} else {
		f.Uniform1iv(u.loc, u.units)
	}
}

// IsSampler reports whether t is a sampler type.
func (t UniformType) IsSampler() bool {
	return gl.IsSamplerType(gl.Enum(t))
}

// components returns the number of scalars in one element of t.
func (t UniformType) components() int {
	switch t {
	case UniformVec2, UniformIVec2, UniformUVec2, UniformBVec2:
		return 2
	case UniformVec3, UniformIVec3, UniformUVec3, UniformBVec3:
		return 3
	case UniformVec4, UniformIVec4, UniformUVec4, UniformBVec4, UniformMat2:
		return 4
	case UniformMat2x3, UniformMat3x2:
		return 6
	case UniformMat2x4, UniformMat4x2:
		return 8
	case UniformMat3:
		return 9
	case UniformMat3x4, UniformMat4x3:
		return 12
	case UniformMat4:
		return 16
	default:
		return 1
	}
}

// samplerTarget returns the texture target a sampler type reads, or 0 if
// any target is accepted.
func (t UniformType) samplerTarget() gl.Enum {
	switch gl.Enum(t) {
	case gl.SAMPLER_1D, gl.SAMPLER_1D_SHADOW, gl.INT_SAMPLER_1D, gl.UNSIGNED_INT_SAMPLER_1D:
		return gl.TEXTURE_1D
	case gl.SAMPLER_2D, gl.SAMPLER_2D_SHADOW, gl.INT_SAMPLER_2D, gl.UNSIGNED_INT_SAMPLER_2D:
		return gl.TEXTURE_2D
	case gl.SAMPLER_2D_ARRAY, gl.SAMPLER_2D_ARRAY_SHADOW, gl.INT_SAMPLER_2D_ARRAY, gl.UNSIGNED_INT_SAMPLER_2D_ARRAY:
		return gl.TEXTURE_2D_ARRAY
	case gl.SAMPLER_CUBE, gl.SAMPLER_CUBE_SHADOW, gl.INT_SAMPLER_CUBE, gl.UNSIGNED_INT_SAMPLER_CUBE:
		return gl.TEXTURE_CUBE_MAP
	case gl.SAMPLER_2D_MULTISAMPLE:
		return gl.TEXTURE_2D_MULTISAMPLE
	case gl.SAMPLER_2D_MULTISAMPLE_ARRAY:
		return gl.TEXTURE_2D_MULTISAMPLE_ARRAY
	case gl.SAMPLER_3D, gl.INT_SAMPLER_3D, gl.UNSIGNED_INT_SAMPLER_3D:
		return gl.TEXTURE_3D
	default:
		return 0
	}
}

func (t UniformType) String() string {
	switch t {
	case UniformFloat:
		return "float"
	case UniformVec2:
		return "vec2"
	case UniformVec3:
		return "vec3"
	case UniformVec4:
		return "vec4"
	case UniformInt:
		return "int"
	case UniformIVec2:
		return "ivec2"
	case UniformIVec3:
		return "ivec3"
	case UniformIVec4:
		return "ivec4"
	case UniformUint:
		return "uint"
	case UniformUVec2:
		return "uvec2"
	case UniformUVec3:
		return "uvec3"
	case UniformUVec4:
		return "uvec4"
	case UniformBool:
		return "bool"
	case UniformMat2:
		return "mat2"
	case UniformMat3:
		return "mat3"
	case UniformMat4:
		return "mat4"
	case UniformSampler1D:
		return "sampler1D"
	case UniformSampler2D:
		return "sampler2D"
	case UniformSampler2DArray:
		return "sampler2DArray"
	case UniformSamplerCube:
		return "samplerCube"
	case UniformSampler2DMultisample:
		return "sampler2DMS"
	default:
		return fmt.Sprintf("UniformType(%#x)", uint32(t))
	}
}
