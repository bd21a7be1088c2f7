// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import "fmt"

// ShaderUniformList holds the uniforms of a program in declaration order
// and assigns texture units to its sampler uniforms.
type ShaderUniformList struct {
	program  *ShaderProgram
	uniforms []*ShaderUniform
	byName   map[string]*ShaderUniform
	samplers []*ShaderUniform

	// dirty is set when a sampler's texture changes.
	dirty bool
	// textures are the distinct textures referenced by samplers; textures[i]
	// is bound to unit i.
	textures []*textureBase
	units    map[*textureBase]int
}

func newShaderUniformList(p *ShaderProgram) *ShaderUniformList {
	return &ShaderUniformList{
		program: p,
		byName:  make(map[string]*ShaderUniform),
		dirty:   true,
	}
}

func (l *ShaderUniformList) add(u *ShaderUniform) {
	l.uniforms = append(l.uniforms, u)
	l.byName[u.name] = u
	if u.IsSampler() {
		l.samplers = append(l.samplers, u)
	}
}

// Len returns the number of uniforms.
func (l *ShaderUniformList) Len() int {
	return len(l.uniforms)
}

// At returns the i'th uniform in declaration order.
func (l *ShaderUniformList) At(i int) *ShaderUniform {
	return l.uniforms[i]
}

// Lookup returns the named uniform or nil. Array uniforms are named
// without their "[0]" suffix.
func (l *ShaderUniformList) Lookup(name string) *ShaderUniform {
	return l.byName[name]
}

// Samplers returns the sampler uniforms in declaration order.
func (l *ShaderUniformList) Samplers() []*ShaderUniform {
	return l.samplers
}

// ensureSamplerStates binds every texture referenced by a sampler uniform
// to its own texture unit and points the samplers at their units.
func (l *ShaderUniformList) ensureSamplerStates(op string) error {
	if len(l.samplers) == 0 {
		return nil
	}
	d := l.program.device
	rebuilt := false
	if l.dirty {
		if err := l.rebuild(op); err != nil {
			return err
		}
		l.dirty = false
		rebuilt = true
	} else {
		for _, t := range l.textures {
			if t.disposed {
				return &StateError{Op: op, Err: fmt.Errorf("sampler texture: %w", ErrDisposed)}
			}
		}
	}
	// Another program may have used the units since the last draw.
	for unit, t := range l.textures {
		d.bindTextureUnit(t, unit)
	}
	if rebuilt {
		for _, u := range l.samplers {
			u.applyUnits(l.units)
		}
	}
	return d.glErr(op)
}

func (l *ShaderUniformList) rebuild(op string) error {
	d := l.program.device
	var textures []*textureBase
	units := make(map[*textureBase]int)
	for _, u := range l.samplers {
		for i, t := range u.textures {
			if t == nil {
				return &StateError{Op: op, Err: fmt.Errorf("uniform %s[%d]: %w", u.name, i, ErrSamplerNotSet)}
			}
			b := t.base()
			if b.disposed {
				return &StateError{Op: op, Err: fmt.Errorf("uniform %s[%d]: %w", u.name, i, ErrDisposed)}
			}
			if b.device != d {
				return &StateError{Op: op, Err: fmt.Errorf("uniform %s[%d]: %w", u.name, i, ErrDeviceMismatch)}
			}
			if _, ok := units[b]; ok {
				continue
			}
			units[b] = len(textures)
			textures = append(textures, b)
		}
	}
	if limit := d.limits.MaxTextureImageUnits; len(textures) > limit {
		return &StateError{Op: op, Err: fmt.Errorf("%d textures, %d units: %w", len(textures), limit, ErrTooManyTextures)}
	}
	l.textures, l.units = textures, units
	return nil
}
