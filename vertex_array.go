// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"

	"trippygl.org/internal/gl"
)

// VertexSubset is implemented by the buffer subsets vertex data can be read
// from, such as *VertexDataBufferSubset.
type VertexSubset interface {
	bufferSubset() *BufferObjectSubset
}

// VertexAttribSource feeds an attribute from a subset. Consecutive sources
// sharing a subset are interleaved in the order given.
type VertexAttribSource struct {
	Subset VertexSubset
	Desc   VertexAttribDescription
}

// Vertex is implemented by vertex types that describe their own layout.
type Vertex interface {
	AttribDescriptions() []VertexAttribDescription
}

// VertexArray maps buffer subsets to vertex attribute indices, and holds
// the index subset for indexed draws.
type VertexArray struct {
	GraphicsResource
	obj     gl.VertexArray
	sources []VertexAttribSource
	indices *IndexBufferSubset
	slots   int
}

func (s *BufferObjectSubset) bufferSubset() *BufferObjectSubset {
	return s
}

// NewVertexArray creates a vertex array reading sources at consecutive
// attribute indices starting at 0, with padding skipped and matrices
// taking one index per column. indices may be nil.
//
// Attribute offsets are fixed at creation: moving a source subset with
// Resize requires a new vertex array.
func NewVertexArray(d *GraphicsDevice, sources []VertexAttribSource, indices *IndexBufferSubset) (*VertexArray, error) {
	const op = "NewVertexArray"
	if err := d.alive(op); err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%s: no attribute sources: %w", op, ErrOutOfRange)
	}
	strides := make(map[*BufferObjectSubset]int)
	slots := 0
	for i, src := range sources {
		if src.Subset == nil {
			return nil, fmt.Errorf("%s: source %d has no subset: %w", op, i, ErrOutOfRange)
		}
		s := src.Subset.bufferSubset()
		if err := d.owns(op, &s.buffer.GraphicsResource); err != nil {
			return nil, err
		}
		if err := src.Desc.validate(op); err != nil {
			return nil, err
		}
		strides[s] += src.Desc.Size()
		slots += src.Desc.Slots()
	}
	if slots > d.limits.MaxVertexAttribs {
		return nil, fmt.Errorf("%s: %d attribute indices, max %d: %w", op, slots, d.limits.MaxVertexAttribs, ErrOutOfRange)
	}
	if indices != nil {
		if err := d.owns(op, &indices.buffer.GraphicsResource); err != nil {
			return nil, err
		}
	}
	f := d.funcs
	a := &VertexArray{
		obj:     f.CreateVertexArray(),
		sources: append([]VertexAttribSource(nil), sources...),
		indices: indices,
		slots:   slots,
	}
	a.register(d, a)
	d.state.bindVertexArray(f, a.obj)
	d.vertexArray = a
	offsets := make(map[*BufferObjectSubset]int)
	index := 0
	for _, src := range sources {
		s := src.Subset.bufferSubset()
		desc := src.Desc
		off := s.offset + offsets[s]
		offsets[s] += desc.Size()
		if desc.IsPadding() {
			continue
		}
		d.state.bindBuffer(f, gl.ARRAY_BUFFER, s.buffer.obj)
		slotSize := desc.Components() * desc.stored.Size()
		for i := 0; i < desc.Slots(); i++ {
			attr := gl.Attrib(index)
			f.EnableVertexAttribArray(attr)
			if desc.integer() {
				f.VertexAttribIPointer(attr, desc.Components(), desc.stored.glEnum(), strides[s], off+i*slotSize)
			} else {
				f.VertexAttribPointer(attr, desc.Components(), desc.stored.glEnum(), desc.normalized, strides[s], off+i*slotSize)
			}
			if desc.divisor != 0 {
				f.VertexAttribDivisor(attr, desc.divisor)
			}
			index++
		}
	}
	if indices != nil {
		f.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, indices.buffer.obj)
	}
	if err := d.glErr(op); err != nil {
		a.Dispose()
		return nil, err
	}
	d.log.Debug("trippygl: vertex array created", "sources", len(sources), "attribs", slots, "indexed", indices != nil)
	return a, nil
}

// NewVertexArrayForType creates a vertex array reading vertices of type T
// from s.
func NewVertexArrayForType[T Vertex](d *GraphicsDevice, s *VertexDataBufferSubset[T], indices *IndexBufferSubset) (*VertexArray, error) {
	if s == nil {
		return nil, fmt.Errorf("NewVertexArrayForType: nil subset: %w", ErrOutOfRange)
	}
	var v T
	descs := v.AttribDescriptions()
	sources := make([]VertexAttribSource, len(descs))
	for i, desc := range descs {
		sources[i] = VertexAttribSource{Subset: s, Desc: desc}
	}
	return NewVertexArray(d, sources, indices)
}

// Sources returns the attribute sources.
func (a *VertexArray) Sources() []VertexAttribSource {
	return a.sources
}

// AttribCount returns the number of attribute indices in use.
func (a *VertexArray) AttribCount() int {
	return a.slots
}

// IndexBuffer returns the index subset, or nil.
func (a *VertexArray) IndexBuffer() *IndexBufferSubset {
	return a.indices
}

// SetIndexBuffer replaces the index subset. A nil indices leaves the
// array without one.
func (a *VertexArray) SetIndexBuffer(indices *IndexBufferSubset) error {
	const op = "SetIndexBuffer"
	if err := a.alive(op); err != nil {
		return err
	}
	var obj gl.Buffer
	if indices != nil {
		if err := a.sameDevice(op, &indices.buffer.GraphicsResource); err != nil {
			return err
		}
		obj = indices.buffer.obj
	}
	d := a.device
	d.state.bindVertexArray(d.funcs, a.obj)
	d.vertexArray = a
	d.funcs.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, obj)
	a.indices = indices
	return d.glErr(op)
}

// Dispose deletes the vertex array. The buffers it reads are not
// affected.
func (a *VertexArray) Dispose() {
	if !a.markDisposed() {
		return
	}
	d := a.device
	d.state.deleteVertexArray(d.funcs, a.obj)
	if d.vertexArray == a {
		d.vertexArray = nil
	}
	d.log.Debug("trippygl: vertex array disposed")
}
