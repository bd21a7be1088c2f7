// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"

	gunsafe "trippygl.org/internal/unsafe"
)

// VertexBuffer is a buffer holding vertices of type T, optionally followed
// by indices, together with the vertex array reading them.
type VertexBuffer[T Vertex] struct {
	buffer   *BufferObject
	vertices *VertexDataBufferSubset[T]
	indices  *IndexBufferSubset
	array    *VertexArray
}

// NewVertexBuffer creates a vertex buffer with room for vertexCount
// vertices and indexCount indices of type indexType. An indexCount of 0
// creates no index subset.
func NewVertexBuffer[T Vertex](d *GraphicsDevice, vertexCount, indexCount int, indexType IndexType, usage BufferUsage) (*VertexBuffer[T], error) {
	const op = "NewVertexBuffer"
	if vertexCount <= 0 || indexCount < 0 {
		return nil, fmt.Errorf("%s: %d vertices, %d indices: %w", op, vertexCount, indexCount, ErrOutOfRange)
	}
	if indexType > IndexUint32 {
		return nil, fmt.Errorf("%s: index type %d: %w", op, indexType, ErrUnsupported)
	}
	idxOffset, size := vertexBufferLayout[T](vertexCount, indexCount, indexType)
	b, err := NewBufferObject(d, size, usage)
	if err != nil {
		return nil, err
	}
	vb := &VertexBuffer[T]{buffer: b}
	if err := vb.init(d, vertexCount, idxOffset, indexCount, indexType); err != nil {
		b.Dispose()
		return nil, err
	}
	return vb, nil
}

// NewVertexBufferFrom creates a vertex buffer holding vertices and no
// indices.
func NewVertexBufferFrom[T Vertex](d *GraphicsDevice, vertices []T, usage BufferUsage) (*VertexBuffer[T], error) {
	vb, err := NewVertexBuffer[T](d, len(vertices), 0, IndexUint16, usage)
	if err != nil {
		return nil, err
	}
	if err := vb.vertices.SetData(0, vertices); err != nil {
		vb.Dispose()
		return nil, err
	}
	return vb, nil
}

func (vb *VertexBuffer[T]) init(d *GraphicsDevice, vertexCount, idxOffset, indexCount int, indexType IndexType) error {
	var err error
	vb.vertices, err = NewVertexDataBufferSubset[T](vb.buffer, 0, vertexCount, nil)
	if err != nil {
		return err
	}
	if indexCount > 0 {
		vb.indices, err = NewIndexBufferSubset(vb.buffer, idxOffset, indexCount, indexType)
		if err != nil {
			return err
		}
	}
	vb.array, err = NewVertexArrayForType[T](d, vb.vertices, vb.indices)
	return err
}

// vertexBufferLayout places the indices after the vertices, aligned to the
// index size, and returns their offset and the total size.
func vertexBufferLayout[T any](vertexCount, indexCount int, indexType IndexType) (idxOffset, size int) {
	vertBytes := vertexCount * gunsafe.SizeOf[T]()
	if indexCount == 0 {
		return vertBytes, vertBytes
	}
	is := indexType.Size()
	idxOffset = (vertBytes + is - 1) / is * is
	return idxOffset, idxOffset + indexCount*is
}

func (vb *VertexBuffer[T]) Buffer() *BufferObject {
	return vb.buffer
}

func (vb *VertexBuffer[T]) Vertices() *VertexDataBufferSubset[T] {
	return vb.vertices
}

// Indices returns the index subset, or nil.
func (vb *VertexBuffer[T]) Indices() *IndexBufferSubset {
	return vb.indices
}

func (vb *VertexBuffer[T]) VertexArray() *VertexArray {
	return vb.array
}

// RecreateStorage resizes the buffer for vertexCount vertices and
// indexCount indices. The contents are lost. indexCount must be 0 if the
// buffer was created without indices.
func (vb *VertexBuffer[T]) RecreateStorage(vertexCount, indexCount int, usage BufferUsage) error {
	const op = "VertexBuffer.RecreateStorage"
	if vertexCount <= 0 || indexCount < 0 || (vb.indices == nil && indexCount > 0) {
		return fmt.Errorf("%s: %d vertices, %d indices: %w", op, vertexCount, indexCount, ErrOutOfRange)
	}
	indexType := IndexUint16
	if vb.indices != nil {
		indexType = vb.indices.elemType
		if err := vb.indices.Resize(0, 0); err != nil {
			return err
		}
	}
	if err := vb.vertices.Resize(0, 0); err != nil {
		return err
	}
	idxOffset, size := vertexBufferLayout[T](vertexCount, indexCount, indexType)
	if err := vb.buffer.RecreateStorage(size, usage); err != nil {
		return err
	}
	// Vertices stay at offset 0 and keep their stride, so the vertex
	// array's attribute pointers remain valid.
	if err := vb.vertices.Resize(0, vertexCount); err != nil {
		return err
	}
	if vb.indices != nil {
		return vb.indices.Resize(idxOffset, indexCount)
	}
	return nil
}

// Dispose releases the vertex array and the buffer.
func (vb *VertexBuffer[T]) Dispose() {
	if vb.array != nil {
		vb.array.Dispose()
	}
	vb.buffer.Dispose()
}
