// SPDX-License-Identifier: Unlicense OR MIT

// Package gltest implements gl.Functions in memory. It keeps enough state
// (buffer and texture contents, program reflection, uniform values) for
// tests to observe what trippygl sends to the driver, and counts every
// call by name.
package gltest

import (
	"fmt"
	"strconv"
	"strings"

	"trippygl.org/internal/gl"
)

// Variable describes an active attribute or uniform of a linked program.
// Uniforms with a non-empty Block live in a uniform block and have no
// location.
type Variable struct {
	Name  string
	Size  int
	Type  gl.Enum
	Block string
}

// Block describes an active uniform block.
type Block struct {
	Name     string
	DataSize int
}

// Reflection is the set of active variables the fake reports for a
// program.
type Reflection struct {
	Attribs  []Variable
	Uniforms []Variable
	Blocks   []Block
}

// Call is a recorded GL call.
type Call struct {
	Name string
	Args []interface{}
}

// Functions is an in-memory gl.Functions.
type Functions struct {
	// Integers holds the values returned by GetInteger.
	Integers map[gl.Enum]int
	// Strings holds the values returned by GetString.
	Strings map[gl.Enum]string
	// FramebufferStatus is returned by CheckFramebufferStatus. The zero
	// value means complete.
	FramebufferStatus gl.Enum
	// CompileLogs makes compilation of shaders of the given type fail
	// with the log.
	CompileLogs map[gl.Enum]string
	// LinkLog, when non-empty, makes linking fail with the log.
	LinkLog string
	// Reflect returns the reflection of a program being linked, given the
	// sources of its attached shaders. A nil Reflect reports nothing.
	Reflect func(sources []string) Reflection
	// Record enables the call log.
	Record bool

	Calls []Call

	counts    map[string]int
	pendErr   gl.Enum
	next      uint
	buffers   map[gl.Buffer][]byte
	bufTarget map[gl.Enum]gl.Buffer
	textures  map[gl.Texture]*texture
	unit      int
	units     map[int]map[gl.Enum]gl.Texture
	shaders   map[gl.Shader]*shader
	programs  map[gl.Program]*program
	current   gl.Program
	vertArray gl.VertexArray
	enabled   map[gl.Enum]bool
	objects   map[interface{}]bool
}

type texture struct {
	target               gl.Enum
	width, height, depth int
	pixelSize            int
	data                 []byte
	samples              int
}

type shader struct {
	typ gl.Enum
	src string
}

type program struct {
	shaders   []gl.Shader
	attribLoc map[string]int
	refl      Reflection
	locations map[string]int
	uniforms  map[int][]float64
	bindings  map[uint]uint
	linked    bool
}

// New returns a fake with the limits of a typical desktop GL 3.3 driver.
func New() *Functions {
	return &Functions{
		Integers: map[gl.Enum]int{
			gl.MAX_TEXTURE_SIZE:                 4096,
			gl.MAX_TEXTURE_IMAGE_UNITS:          16,
			gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS: 32,
			gl.MAX_SAMPLES:                      8,
			gl.MAX_VERTEX_ATTRIBS:               16,
			gl.MAX_UNIFORM_BUFFER_BINDINGS:      24,
			gl.UNIFORM_BUFFER_OFFSET_ALIGNMENT:  256,
			gl.MAX_3D_TEXTURE_SIZE:              2048,
			gl.MAX_ARRAY_TEXTURE_LAYERS:         256,
			gl.MAX_CUBE_MAP_TEXTURE_SIZE:        4096,
			gl.MAX_RENDERBUFFER_SIZE:            4096,
			gl.MAX_COLOR_ATTACHMENTS:            8,
		},
		Strings: map[gl.Enum]string{
			gl.VERSION:                  "3.3.0 gltest",
			gl.RENDERER:                 "gltest",
			gl.VENDOR:                   "trippygl",
			gl.SHADING_LANGUAGE_VERSION: "3.30",
		},
		counts:    make(map[string]int),
		buffers:   make(map[gl.Buffer][]byte),
		bufTarget: make(map[gl.Enum]gl.Buffer),
		textures:  make(map[gl.Texture]*texture),
		units:     make(map[int]map[gl.Enum]gl.Texture),
		shaders:   make(map[gl.Shader]*shader),
		programs:  make(map[gl.Program]*program),
		enabled:   make(map[gl.Enum]bool),
		objects:   make(map[interface{}]bool),
	}
}

// Count returns the number of calls made to the named function.
func (f *Functions) Count(name string) int {
	return f.counts[name]
}

// ResetCounts clears call counts and the call log.
func (f *Functions) ResetCounts() {
	f.counts = make(map[string]int)
	f.Calls = nil
}

// BufferContents returns the storage of b.
func (f *Functions) BufferContents(b gl.Buffer) []byte {
	return f.buffers[b]
}

// TextureContents returns the level 0 storage of t.
func (f *Functions) TextureContents(t gl.Texture) []byte {
	if tex := f.textures[t]; tex != nil {
		return tex.data
	}
	return nil
}

// BoundTexture returns the texture bound to target on the texture unit.
func (f *Functions) BoundTexture(unit int, target gl.Enum) gl.Texture {
	return f.units[unit][target]
}

// UniformValue returns the last value written to a uniform location of p.
func (f *Functions) UniformValue(p gl.Program, loc gl.Uniform) []float64 {
	if prog := f.programs[p]; prog != nil {
		return prog.uniforms[loc.V]
	}
	return nil
}

// BlockBinding returns the binding index assigned to a block of p.
func (f *Functions) BlockBinding(p gl.Program, index uint) (uint, bool) {
	if prog := f.programs[p]; prog != nil {
		b, ok := prog.bindings[index]
		return b, ok
	}
	return 0, false
}

// Live reports the number of live GL objects of all kinds.
func (f *Functions) Live() int {
	return len(f.buffers) + len(f.textures) + len(f.shaders) + len(f.programs) + len(f.objects)
}

// IsEnabled reports whether a capability was last enabled.
func (f *Functions) IsEnabled(cap gl.Enum) bool {
	return f.enabled[cap]
}

// SetError makes the next GetError call return code.
func (f *Functions) SetError(code gl.Enum) {
	f.pendErr = code
}

func (f *Functions) record(name string, args ...interface{}) {
	f.counts[name]++
	if f.Record {
		f.Calls = append(f.Calls, Call{Name: name, Args: args})
	}
}

func (f *Functions) fail(code gl.Enum) {
	if f.pendErr == gl.NO_ERROR {
		f.pendErr = code
	}
}

func (f *Functions) alloc() uint {
	f.next++
	return f.next
}

func (f *Functions) GetError() gl.Enum {
	f.record("GetError")
	e := f.pendErr
	f.pendErr = gl.NO_ERROR
	return e
}

func (f *Functions) GetInteger(pname gl.Enum) int {
	f.record("GetInteger", pname)
	return f.Integers[pname]
}

func (f *Functions) GetString(pname gl.Enum) string {
	f.record("GetString", pname)
	return f.Strings[pname]
}

func (f *Functions) Flush()  { f.record("Flush") }
func (f *Functions) Finish() { f.record("Finish") }

func (f *Functions) CreateBuffer() gl.Buffer {
	f.record("CreateBuffer")
	b := gl.Buffer{V: f.alloc()}
	f.buffers[b] = nil
	return b
}

func (f *Functions) DeleteBuffer(b gl.Buffer) {
	f.record("DeleteBuffer", b)
	delete(f.buffers, b)
	for t, bound := range f.bufTarget {
		if bound == b {
			delete(f.bufTarget, t)
		}
	}
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.record("BindBuffer", target, b)
	f.bufTarget[target] = b
}

func (f *Functions) BindBufferRange(target gl.Enum, index int, b gl.Buffer, offset, size int) {
	f.record("BindBufferRange", target, index, b, offset, size)
	f.bufTarget[target] = b
	if offset < 0 || size <= 0 || offset+size > len(f.buffers[b]) {
		f.fail(gl.INVALID_VALUE)
	}
}

func (f *Functions) boundBuffer(target gl.Enum) (gl.Buffer, bool) {
	b, ok := f.bufTarget[target]
	if !ok || !b.Valid() {
		f.fail(gl.INVALID_OPERATION)
		return gl.Buffer{}, false
	}
	return b, true
}

func (f *Functions) BufferData(target gl.Enum, size int, usage gl.Enum, data []byte) {
	f.record("BufferData", target, size, usage)
	b, ok := f.boundBuffer(target)
	if !ok {
		return
	}
	storage := make([]byte, size)
	copy(storage, data)
	f.buffers[b] = storage
}

func (f *Functions) BufferSubData(target gl.Enum, offset int, src []byte) {
	f.record("BufferSubData", target, offset, len(src))
	b, ok := f.boundBuffer(target)
	if !ok {
		return
	}
	storage := f.buffers[b]
	if offset < 0 || offset+len(src) > len(storage) {
		f.fail(gl.INVALID_VALUE)
		return
	}
	copy(storage[offset:], src)
}

func (f *Functions) GetBufferSubData(target gl.Enum, offset int, dst []byte) {
	f.record("GetBufferSubData", target, offset, len(dst))
	b, ok := f.boundBuffer(target)
	if !ok {
		return
	}
	storage := f.buffers[b]
	if offset < 0 || offset+len(dst) > len(storage) {
		f.fail(gl.INVALID_VALUE)
		return
	}
	copy(dst, storage[offset:])
}

func (f *Functions) CopyBufferSubData(readTarget, writeTarget gl.Enum, readOffset, writeOffset, size int) {
	f.record("CopyBufferSubData", readTarget, writeTarget, readOffset, writeOffset, size)
	src, ok1 := f.boundBuffer(readTarget)
	dst, ok2 := f.boundBuffer(writeTarget)
	if !ok1 || !ok2 {
		return
	}
	s, d := f.buffers[src], f.buffers[dst]
	if readOffset+size > len(s) || writeOffset+size > len(d) {
		f.fail(gl.INVALID_VALUE)
		return
	}
	copy(d[writeOffset:writeOffset+size], s[readOffset:readOffset+size])
}

func (f *Functions) CreateTexture() gl.Texture {
	f.record("CreateTexture")
	t := gl.Texture{V: f.alloc()}
	f.textures[t] = &texture{}
	return t
}

func (f *Functions) DeleteTexture(t gl.Texture) {
	f.record("DeleteTexture", t)
	delete(f.textures, t)
	for _, binds := range f.units {
		for target, bound := range binds {
			if bound == t {
				delete(binds, target)
			}
		}
	}
}

func (f *Functions) ActiveTexture(unit gl.Enum) {
	f.record("ActiveTexture", unit)
	f.unit = int(unit - gl.TEXTURE0)
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	f.record("BindTexture", target, t)
	binds := f.units[f.unit]
	if binds == nil {
		binds = make(map[gl.Enum]gl.Texture)
		f.units[f.unit] = binds
	}
	binds[target] = t
	if tex := f.textures[t]; tex != nil && tex.target == 0 {
		tex.target = target
	}
}

func (f *Functions) boundTexture(target gl.Enum) *texture {
	if target >= gl.TEXTURE_CUBE_MAP_POSITIVE_X && target < gl.TEXTURE_CUBE_MAP_POSITIVE_X+6 {
		target = gl.TEXTURE_CUBE_MAP
	}
	tex := f.textures[f.units[f.unit][target]]
	if tex == nil {
		f.fail(gl.INVALID_OPERATION)
	}
	return tex
}

func (f *Functions) texImage(target gl.Enum, w, h, d int, format, ty gl.Enum, data []byte) {
	tex := f.boundTexture(target)
	if tex == nil {
		return
	}
	ps := PixelSize(format, ty)
	if w < 0 || h < 0 || d < 0 || (data != nil && len(data) < w*h*d*ps) {
		f.fail(gl.INVALID_VALUE)
		return
	}
	tex.width, tex.height, tex.depth, tex.pixelSize = w, h, d, ps
	size := w * h * d * ps
	if target >= gl.TEXTURE_CUBE_MAP_POSITIVE_X && target < gl.TEXTURE_CUBE_MAP_POSITIVE_X+6 {
		// Faces are stored consecutively.
		face := int(target - gl.TEXTURE_CUBE_MAP_POSITIVE_X)
		if len(tex.data) != size*6 {
			tex.data = make([]byte, size*6)
		}
		copy(tex.data[face*size:(face+1)*size], data)
		return
	}
	tex.data = make([]byte, size)
	copy(tex.data, data)
}

func (f *Functions) TexImage1D(target gl.Enum, level int, internalFormat gl.Enum, width int, format, ty gl.Enum, data []byte) {
	f.record("TexImage1D", target, level, internalFormat, width, format, ty)
	if level == 0 {
		f.texImage(target, width, 1, 1, format, ty, data)
	}
}

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	f.record("TexImage2D", target, level, internalFormat, width, height, format, ty)
	if level == 0 {
		f.texImage(target, width, height, 1, format, ty, data)
	}
}

func (f *Functions) TexImage3D(target gl.Enum, level int, internalFormat gl.Enum, width, height, depth int, format, ty gl.Enum, data []byte) {
	f.record("TexImage3D", target, level, internalFormat, width, height, depth, format, ty)
	if level == 0 {
		f.texImage(target, width, height, depth, format, ty, data)
	}
}

func (f *Functions) TexImage2DMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height int, fixedLocations bool) {
	f.record("TexImage2DMultisample", target, samples, internalFormat, width, height, fixedLocations)
	if tex := f.boundTexture(target); tex != nil {
		tex.width, tex.height, tex.depth, tex.samples = width, height, 1, samples
	}
}

func (f *Functions) TexImage3DMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height, depth int, fixedLocations bool) {
	f.record("TexImage3DMultisample", target, samples, internalFormat, width, height, depth, fixedLocations)
	if tex := f.boundTexture(target); tex != nil {
		tex.width, tex.height, tex.depth, tex.samples = width, height, depth, samples
	}
}

func (f *Functions) texSubImage(target gl.Enum, x, y, z, w, h, d int, format, ty gl.Enum, data []byte) {
	tex := f.boundTexture(target)
	if tex == nil {
		return
	}
	ps := PixelSize(format, ty)
	if ps != tex.pixelSize || x < 0 || y < 0 || z < 0 || x+w > tex.width || y+h > tex.height || z+d > tex.depth || len(data) < w*h*d*ps {
		f.fail(gl.INVALID_VALUE)
		return
	}
	base := 0
	if target >= gl.TEXTURE_CUBE_MAP_POSITIVE_X && target < gl.TEXTURE_CUBE_MAP_POSITIVE_X+6 {
		base = int(target-gl.TEXTURE_CUBE_MAP_POSITIVE_X) * tex.width * tex.height * ps
	}
	row := w * ps
	for k := 0; k < d; k++ {
		for j := 0; j < h; j++ {
			dst := base + (((z+k)*tex.height+y+j)*tex.width+x)*ps
			src := (k*h + j) * row
			copy(tex.data[dst:dst+row], data[src:src+row])
		}
	}
}

func (f *Functions) TexSubImage1D(target gl.Enum, level, x, width int, format, ty gl.Enum, data []byte) {
	f.record("TexSubImage1D", target, level, x, width, format, ty)
	if level == 0 {
		f.texSubImage(target, x, 0, 0, width, 1, 1, format, ty, data)
	}
}

func (f *Functions) TexSubImage2D(target gl.Enum, level, x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("TexSubImage2D", target, level, x, y, width, height, format, ty)
	if level == 0 {
		f.texSubImage(target, x, y, 0, width, height, 1, format, ty, data)
	}
}

func (f *Functions) TexSubImage3D(target gl.Enum, level, x, y, z, width, height, depth int, format, ty gl.Enum, data []byte) {
	f.record("TexSubImage3D", target, level, x, y, z, width, height, depth, format, ty)
	if level == 0 {
		f.texSubImage(target, x, y, z, width, height, depth, format, ty, data)
	}
}

func (f *Functions) GetTexImage(target gl.Enum, level int, format, ty gl.Enum, dst []byte) {
	f.record("GetTexImage", target, level, format, ty)
	tex := f.boundTexture(target)
	if tex == nil || level != 0 {
		return
	}
	data := tex.data
	if target >= gl.TEXTURE_CUBE_MAP_POSITIVE_X && target < gl.TEXTURE_CUBE_MAP_POSITIVE_X+6 {
		size := tex.width * tex.height * tex.pixelSize
		face := int(target - gl.TEXTURE_CUBE_MAP_POSITIVE_X)
		data = data[face*size : (face+1)*size]
	}
	copy(dst, data)
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) {
	f.record("TexParameteri", target, pname, param)
}

func (f *Functions) GenerateMipmap(target gl.Enum) {
	f.record("GenerateMipmap", target)
}

func (f *Functions) PixelStorei(pname gl.Enum, param int) {
	f.record("PixelStorei", pname, param)
}

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	f.record("CreateShader", ty)
	s := gl.Shader{V: f.alloc()}
	f.shaders[s] = &shader{typ: ty}
	return s
}

func (f *Functions) DeleteShader(s gl.Shader) {
	f.record("DeleteShader", s)
	delete(f.shaders, s)
}

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	f.record("ShaderSource", s)
	if sh := f.shaders[s]; sh != nil {
		sh.src = src
	}
}

func (f *Functions) CompileShader(s gl.Shader) {
	f.record("CompileShader", s)
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	f.record("GetShaderi", s, pname)
	sh := f.shaders[s]
	if sh == nil {
		f.fail(gl.INVALID_VALUE)
		return 0
	}
	if pname == gl.COMPILE_STATUS {
		if _, fails := f.CompileLogs[sh.typ]; fails {
			return gl.FALSE
		}
		return gl.TRUE
	}
	return 0
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	f.record("GetShaderInfoLog", s)
	if sh := f.shaders[s]; sh != nil {
		return f.CompileLogs[sh.typ]
	}
	return ""
}

func (f *Functions) CreateProgram() gl.Program {
	f.record("CreateProgram")
	p := gl.Program{V: f.alloc()}
	f.programs[p] = &program{
		attribLoc: make(map[string]int),
		locations: make(map[string]int),
		uniforms:  make(map[int][]float64),
		bindings:  make(map[uint]uint),
	}
	return p
}

func (f *Functions) DeleteProgram(p gl.Program) {
	f.record("DeleteProgram", p)
	delete(f.programs, p)
	if f.current == p {
		f.current = gl.Program{}
	}
}

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	f.record("AttachShader", p, s)
	if prog := f.programs[p]; prog != nil {
		prog.shaders = append(prog.shaders, s)
	}
}

func (f *Functions) DetachShader(p gl.Program, s gl.Shader) {
	f.record("DetachShader", p, s)
	prog := f.programs[p]
	if prog == nil {
		return
	}
	for i, s2 := range prog.shaders {
		if s2 == s {
			prog.shaders = append(prog.shaders[:i], prog.shaders[i+1:]...)
			break
		}
	}
}

func (f *Functions) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	f.record("BindAttribLocation", p, a, name)
	if prog := f.programs[p]; prog != nil {
		prog.attribLoc[name] = int(a)
	}
}

func (f *Functions) LinkProgram(p gl.Program) {
	f.record("LinkProgram", p)
	prog := f.programs[p]
	if prog == nil || f.LinkLog != "" {
		return
	}
	var sources []string
	for _, s := range prog.shaders {
		if sh := f.shaders[s]; sh != nil {
			sources = append(sources, sh.src)
		}
	}
	if f.Reflect != nil {
		prog.refl = f.Reflect(sources)
	}
	loc := 0
	for _, u := range prog.refl.Uniforms {
		if u.Block != "" {
			continue
		}
		base := strings.TrimSuffix(u.Name, "[0]")
		prog.locations[u.Name] = loc
		prog.locations[base] = loc
		for i := 0; i < u.Size; i++ {
			prog.locations[base+"["+strconv.Itoa(i)+"]"] = loc + i
		}
		loc += u.Size
	}
	next := 0
	for _, a := range prog.refl.Attribs {
		if _, bound := prog.attribLoc[a.Name]; bound {
			continue
		}
		for {
			if !locationTaken(prog.attribLoc, next) {
				break
			}
			next++
		}
		prog.attribLoc[a.Name] = next
		next += attribSlots(a.Type) * a.Size
	}
	prog.linked = true
}

func locationTaken(m map[string]int, loc int) bool {
	for _, l := range m {
		if l == loc {
			return true
		}
	}
	return false
}

func attribSlots(ty gl.Enum) int {
	switch ty {
	case gl.FLOAT_MAT2, gl.FLOAT_MAT2x3, gl.FLOAT_MAT2x4:
		return 2
	case gl.FLOAT_MAT3, gl.FLOAT_MAT3x2, gl.FLOAT_MAT3x4:
		return 3
	case gl.FLOAT_MAT4, gl.FLOAT_MAT4x2, gl.FLOAT_MAT4x3:
		return 4
	}
	return 1
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	f.record("GetProgrami", p, pname)
	prog := f.programs[p]
	if prog == nil {
		f.fail(gl.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.LINK_STATUS:
		if prog.linked {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.ACTIVE_ATTRIBUTES:
		return len(prog.refl.Attribs)
	case gl.ACTIVE_UNIFORMS:
		return len(prog.refl.Uniforms)
	case gl.ACTIVE_UNIFORM_BLOCKS:
		return len(prog.refl.Blocks)
	}
	return 0
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	f.record("GetProgramInfoLog", p)
	return f.LinkLog
}

func (f *Functions) UseProgram(p gl.Program) {
	f.record("UseProgram", p)
	f.current = p
}

func (f *Functions) GetActiveAttrib(p gl.Program, index int) (string, int, gl.Enum) {
	f.record("GetActiveAttrib", p, index)
	prog := f.programs[p]
	if prog == nil || index < 0 || index >= len(prog.refl.Attribs) {
		f.fail(gl.INVALID_VALUE)
		return "", 0, 0
	}
	a := prog.refl.Attribs[index]
	return a.Name, a.Size, a.Type
}

func (f *Functions) GetAttribLocation(p gl.Program, name string) int {
	f.record("GetAttribLocation", p, name)
	if prog := f.programs[p]; prog != nil {
		if loc, ok := prog.attribLoc[name]; ok {
			return loc
		}
	}
	return -1
}

func (f *Functions) GetActiveUniform(p gl.Program, index int) (string, int, gl.Enum) {
	f.record("GetActiveUniform", p, index)
	prog := f.programs[p]
	if prog == nil || index < 0 || index >= len(prog.refl.Uniforms) {
		f.fail(gl.INVALID_VALUE)
		return "", 0, 0
	}
	u := prog.refl.Uniforms[index]
	name := u.Name
	if u.Block != "" {
		name = u.Block + "." + name
	}
	return name, u.Size, u.Type
}

func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	f.record("GetUniformLocation", p, name)
	if prog := f.programs[p]; prog != nil {
		if loc, ok := prog.locations[name]; ok {
			return gl.Uniform{V: loc}
		}
	}
	return gl.Uniform{V: -1}
}

func (f *Functions) GetUniformBlockIndex(p gl.Program, name string) uint {
	f.record("GetUniformBlockIndex", p, name)
	if prog := f.programs[p]; prog != nil {
		for i, b := range prog.refl.Blocks {
			if b.Name == name {
				return uint(i)
			}
		}
	}
	return gl.INVALID_INDEX
}

func (f *Functions) GetActiveUniformBlockName(p gl.Program, index uint) string {
	f.record("GetActiveUniformBlockName", p, index)
	if prog := f.programs[p]; prog != nil && index < uint(len(prog.refl.Blocks)) {
		return prog.refl.Blocks[index].Name
	}
	f.fail(gl.INVALID_VALUE)
	return ""
}

func (f *Functions) GetActiveUniformBlocki(p gl.Program, index uint, pname gl.Enum) int {
	f.record("GetActiveUniformBlocki", p, index, pname)
	prog := f.programs[p]
	if prog == nil || index >= uint(len(prog.refl.Blocks)) {
		f.fail(gl.INVALID_VALUE)
		return 0
	}
	b := prog.refl.Blocks[index]
	switch pname {
	case gl.UNIFORM_BLOCK_DATA_SIZE:
		return b.DataSize
	case gl.UNIFORM_BLOCK_ACTIVE_UNIFORMS:
		n := 0
		for _, u := range prog.refl.Uniforms {
			if u.Block == b.Name {
				n++
			}
		}
		return n
	}
	return 0
}

func (f *Functions) UniformBlockBinding(p gl.Program, index uint, binding uint) {
	f.record("UniformBlockBinding", p, index, binding)
	if prog := f.programs[p]; prog != nil {
		prog.bindings[index] = binding
	}
}

func (f *Functions) setUniform(name string, dst gl.Uniform, vals ...float64) {
	f.record(name, dst, vals)
	prog := f.programs[f.current]
	if prog == nil {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	if !dst.Valid() {
		return
	}
	prog.uniforms[dst.V] = vals
}

func (f *Functions) Uniform1f(dst gl.Uniform, v float32) {
	f.setUniform("Uniform1f", dst, float64(v))
}

func (f *Functions) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	f.setUniform("Uniform2f", dst, float64(v0), float64(v1))
}

func (f *Functions) Uniform3f(dst gl.Uniform, v0, v1, v2 float32) {
	f.setUniform("Uniform3f", dst, float64(v0), float64(v1), float64(v2))
}

func (f *Functions) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) {
	f.setUniform("Uniform4f", dst, float64(v0), float64(v1), float64(v2), float64(v3))
}

func (f *Functions) Uniform1i(dst gl.Uniform, v int) {
	f.setUniform("Uniform1i", dst, float64(v))
}

func (f *Functions) Uniform2i(dst gl.Uniform, v0, v1 int) {
	f.setUniform("Uniform2i", dst, float64(v0), float64(v1))
}

func (f *Functions) Uniform3i(dst gl.Uniform, v0, v1, v2 int) {
	f.setUniform("Uniform3i", dst, float64(v0), float64(v1), float64(v2))
}

func (f *Functions) Uniform4i(dst gl.Uniform, v0, v1, v2, v3 int) {
	f.setUniform("Uniform4i", dst, float64(v0), float64(v1), float64(v2), float64(v3))
}

func (f *Functions) Uniform1ui(dst gl.Uniform, v uint32) {
	f.setUniform("Uniform1ui", dst, float64(v))
}

func (f *Functions) Uniform2ui(dst gl.Uniform, v0, v1 uint32) {
	f.setUniform("Uniform2ui", dst, float64(v0), float64(v1))
}

func (f *Functions) Uniform3ui(dst gl.Uniform, v0, v1, v2 uint32) {
	f.setUniform("Uniform3ui", dst, float64(v0), float64(v1), float64(v2))
}

func (f *Functions) Uniform4ui(dst gl.Uniform, v0, v1, v2, v3 uint32) {
	f.setUniform("Uniform4ui", dst, float64(v0), float64(v1), float64(v2), float64(v3))
}

func floats(v []float32) []float64 {
	res := make([]float64, len(v))
	for i, x := range v {
		res[i] = float64(x)
	}
	return res
}

func (f *Functions) Uniform1fv(dst gl.Uniform, v []float32) {
	f.setUniform("Uniform1fv", dst, floats(v)...)
}

func (f *Functions) Uniform1iv(dst gl.Uniform, v []int32) {
	vals := make([]float64, len(v))
	for i, x := range v {
		vals[i] = float64(x)
	}
	f.setUniform("Uniform1iv", dst, vals...)
}

func (f *Functions) UniformMatrix2fv(dst gl.Uniform, transpose bool, v []float32) {
	f.setUniform("UniformMatrix2fv", dst, floats(v)...)
}

func (f *Functions) UniformMatrix3fv(dst gl.Uniform, transpose bool, v []float32) {
	f.setUniform("UniformMatrix3fv", dst, floats(v)...)
}

func (f *Functions) UniformMatrix4fv(dst gl.Uniform, transpose bool, v []float32) {
	f.setUniform("UniformMatrix4fv", dst, floats(v)...)
}

func (f *Functions) CreateVertexArray() gl.VertexArray {
	f.record("CreateVertexArray")
	a := gl.VertexArray{V: f.alloc()}
	f.objects[a] = true
	return a
}

func (f *Functions) DeleteVertexArray(a gl.VertexArray) {
	f.record("DeleteVertexArray", a)
	delete(f.objects, a)
	if f.vertArray == a {
		f.vertArray = gl.VertexArray{}
	}
}

func (f *Functions) BindVertexArray(a gl.VertexArray) {
	f.record("BindVertexArray", a)
	f.vertArray = a
}

func (f *Functions) EnableVertexAttribArray(a gl.Attrib) {
	f.record("EnableVertexAttribArray", a)
}

func (f *Functions) DisableVertexAttribArray(a gl.Attrib) {
	f.record("DisableVertexAttribArray", a)
}

func (f *Functions) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.record("VertexAttribPointer", dst, size, ty, normalized, stride, offset)
	if !f.vertArray.Valid() {
		f.fail(gl.INVALID_OPERATION)
	}
}

func (f *Functions) VertexAttribIPointer(dst gl.Attrib, size int, ty gl.Enum, stride, offset int) {
	f.record("VertexAttribIPointer", dst, size, ty, stride, offset)
	if !f.vertArray.Valid() {
		f.fail(gl.INVALID_OPERATION)
	}
}

func (f *Functions) VertexAttribDivisor(dst gl.Attrib, divisor int) {
	f.record("VertexAttribDivisor", dst, divisor)
}

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	f.record("CreateFramebuffer")
	fb := gl.Framebuffer{V: f.alloc()}
	f.objects[fb] = true
	return fb
}

func (f *Functions) DeleteFramebuffer(fb gl.Framebuffer) {
	f.record("DeleteFramebuffer", fb)
	delete(f.objects, fb)
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	f.record("BindFramebuffer", target, fb)
}

func (f *Functions) FramebufferTexture1D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	f.record("FramebufferTexture1D", target, attachment, texTarget, t, level)
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	f.record("FramebufferTexture2D", target, attachment, texTarget, t, level)
}

func (f *Functions) FramebufferTextureLayer(target, attachment gl.Enum, t gl.Texture, level, layer int) {
	f.record("FramebufferTextureLayer", target, attachment, t, level, layer)
}

func (f *Functions) FramebufferRenderbuffer(target, attachment, renderbufferTarget gl.Enum, r gl.Renderbuffer) {
	f.record("FramebufferRenderbuffer", target, attachment, renderbufferTarget, r)
}

func (f *Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	f.record("CheckFramebufferStatus", target)
	if f.FramebufferStatus == 0 {
		return gl.FRAMEBUFFER_COMPLETE
	}
	return f.FramebufferStatus
}

func (f *Functions) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask gl.Enum, filter gl.Enum) {
	f.record("BlitFramebuffer", sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1, mask, filter)
}

func (f *Functions) ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.record("ReadPixels", x, y, width, height, format, ty)
	for i := range data {
		data[i] = 0
	}
}

func (f *Functions) CreateRenderbuffer() gl.Renderbuffer {
	f.record("CreateRenderbuffer")
	r := gl.Renderbuffer{V: f.alloc()}
	f.objects[r] = true
	return r
}

func (f *Functions) DeleteRenderbuffer(r gl.Renderbuffer) {
	f.record("DeleteRenderbuffer", r)
	delete(f.objects, r)
}

func (f *Functions) BindRenderbuffer(target gl.Enum, r gl.Renderbuffer) {
	f.record("BindRenderbuffer", target, r)
}

func (f *Functions) RenderbufferStorage(target, internalFormat gl.Enum, width, height int) {
	f.record("RenderbufferStorage", target, internalFormat, width, height)
}

func (f *Functions) RenderbufferStorageMultisample(target gl.Enum, samples int, internalFormat gl.Enum, width, height int) {
	f.record("RenderbufferStorageMultisample", target, samples, internalFormat, width, height)
}

func (f *Functions) Enable(cap gl.Enum) {
	f.record("Enable", cap)
	f.enabled[cap] = true
}

func (f *Functions) Disable(cap gl.Enum) {
	f.record("Disable", cap)
	f.enabled[cap] = false
}

func (f *Functions) BlendEquationSeparate(modeRGB, modeAlpha gl.Enum) {
	f.record("BlendEquationSeparate", modeRGB, modeAlpha)
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) {
	f.record("BlendFuncSeparate", srcRGB, dstRGB, srcA, dstA)
}

func (f *Functions) BlendColor(r, g, b, a float32) {
	f.record("BlendColor", r, g, b, a)
}

func (f *Functions) DepthFunc(fn gl.Enum) {
	f.record("DepthFunc", fn)
}

func (f *Functions) DepthMask(mask bool) {
	f.record("DepthMask", mask)
}

func (f *Functions) DepthRangef(near, far float32) {
	f.record("DepthRangef", near, far)
}

func (f *Functions) ClearDepthf(d float32) {
	f.record("ClearDepthf", d)
}

func (f *Functions) StencilFuncSeparate(face, fn gl.Enum, ref int, mask uint32) {
	f.record("StencilFuncSeparate", face, fn, ref, mask)
}

func (f *Functions) StencilOpSeparate(face, sfail, dpfail, dppass gl.Enum) {
	f.record("StencilOpSeparate", face, sfail, dpfail, dppass)
}

func (f *Functions) StencilMaskSeparate(face gl.Enum, mask uint32) {
	f.record("StencilMaskSeparate", face, mask)
}

func (f *Functions) ClearStencil(s int) {
	f.record("ClearStencil", s)
}

func (f *Functions) ClearColor(r, g, b, a float32) {
	f.record("ClearColor", r, g, b, a)
}

func (f *Functions) Clear(mask gl.Enum) {
	f.record("Clear", mask)
}

func (f *Functions) CullFace(mode gl.Enum) {
	f.record("CullFace", mode)
}

func (f *Functions) FrontFace(mode gl.Enum) {
	f.record("FrontFace", mode)
}

func (f *Functions) Viewport(x, y, width, height int) {
	f.record("Viewport", x, y, width, height)
}

func (f *Functions) Scissor(x, y, width, height int) {
	f.record("Scissor", x, y, width, height)
}

func (f *Functions) draw(name string, args ...interface{}) {
	f.record(name, args...)
	if !f.current.Valid() || !f.vertArray.Valid() {
		f.fail(gl.INVALID_OPERATION)
	}
}

func (f *Functions) DrawArrays(mode gl.Enum, first, count int) {
	f.draw("DrawArrays", mode, first, count)
}

func (f *Functions) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.draw("DrawElements", mode, count, ty, offset)
}

func (f *Functions) DrawArraysInstanced(mode gl.Enum, first, count, instances int) {
	f.draw("DrawArraysInstanced", mode, first, count, instances)
}

func (f *Functions) DrawElementsInstanced(mode gl.Enum, count int, ty gl.Enum, offset, instances int) {
	f.draw("DrawElementsInstanced", mode, count, ty, offset, instances)
}

// PixelSize returns the size in bytes of one pixel of the given client
// format and type.
func PixelSize(format, ty gl.Enum) int {
	var comps int
	switch format {
	case gl.RED, gl.RED_INTEGER, gl.DEPTH_COMPONENT:
		comps = 1
	case gl.RG, gl.RG_INTEGER:
		comps = 2
	case gl.RGB, gl.RGB_INTEGER:
		comps = 3
	case gl.RGBA, gl.RGBA_INTEGER:
		comps = 4
	case gl.DEPTH_STENCIL:
		return 4
	default:
		panic(fmt.Sprintf("gltest: unsupported pixel format %#x", uint(format)))
	}
	switch ty {
	case gl.UNSIGNED_BYTE, gl.BYTE:
		return comps
	case gl.UNSIGNED_SHORT, gl.SHORT, gl.HALF_FLOAT:
		return comps * 2
	case gl.FLOAT, gl.INT, gl.UNSIGNED_INT, gl.UNSIGNED_INT_24_8:
		return comps * 4
	default:
		panic(fmt.Sprintf("gltest: unsupported pixel type %#x", uint(ty)))
	}
}

var _ gl.Functions = (*Functions)(nil)
