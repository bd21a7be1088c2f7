// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"

	"trippygl.org/internal/gl"
	gunsafe "trippygl.org/internal/unsafe"
)

// BufferObjectSubset is the byte range [Offset, Offset+Size) of a
// BufferObject. A subset stays registered with its buffer for the buffer's
// lifetime, and the buffer's storage can't shrink below it.
type BufferObjectSubset struct {
	buffer *BufferObject
	target gl.Enum
	offset int
	size   int
}

func checkRange(op string, capacity, offset, size int) error {
	if offset < 0 || size < 0 || offset > capacity || size > capacity-offset {
		return fmt.Errorf("%s: range [%d, %d) outside [0, %d): %w", op, offset, offset+size, capacity, ErrOutOfRange)
	}
	return nil
}

func (s *BufferObjectSubset) init(op string, b *BufferObject, target gl.Enum, offset, size int) error {
	if b == nil {
		return fmt.Errorf("%s: nil buffer: %w", op, ErrOutOfRange)
	}
	if err := b.alive(op); err != nil {
		return err
	}
	if err := checkRange(op, b.size, offset, size); err != nil {
		return err
	}
	s.buffer = b
	s.target = target
	s.offset = offset
	s.size = size
	b.subsets[s] = struct{}{}
	return nil
}

// Buffer returns the buffer the subset views.
func (s *BufferObjectSubset) Buffer() *BufferObject {
	return s.buffer
}

// Offset returns the subset's start in bytes from the start of the buffer.
func (s *BufferObjectSubset) Offset() int {
	return s.offset
}

// Size returns the subset's length in bytes.
func (s *BufferObjectSubset) Size() int {
	return s.size
}

func (s *BufferObjectSubset) resize(op string, offset, size int) error {
	if err := s.buffer.alive(op); err != nil {
		return err
	}
	if err := checkRange(op, s.buffer.size, offset, size); err != nil {
		return err
	}
	s.offset = offset
	s.size = size
	return nil
}

func (s *BufferObjectSubset) setBytes(op string, offset int, data []byte) error {
	if err := s.buffer.alive(op); err != nil {
		return err
	}
	if err := checkRange(op, s.size, offset, len(data)); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return s.buffer.writeBytes(s.offset+offset, data)
}

func (s *BufferObjectSubset) getBytes(op string, offset int, dst []byte) error {
	if err := s.buffer.alive(op); err != nil {
		return err
	}
	if err := checkRange(op, s.size, offset, len(dst)); err != nil {
		return err
	}
	if len(dst) == 0 {
		return nil
	}
	return s.buffer.readBytes(s.offset+offset, dst)
}

// VertexDataBufferSubset holds vertices of type T, tightly packed.
type VertexDataBufferSubset[T any] struct {
	BufferObjectSubset
	length int
}

// NewVertexDataBufferSubset creates a subset of length vertices starting
// offset bytes into b. If data is not nil, it is written at the start of
// the subset.
func NewVertexDataBufferSubset[T any](b *BufferObject, offset, length int, data []T) (*VertexDataBufferSubset[T], error) {
	const op = "NewVertexDataBufferSubset"
	elem := gunsafe.SizeOf[T]()
	if elem == 0 {
		return nil, fmt.Errorf("%s: zero-sized vertex type: %w", op, ErrUnsupported)
	}
	if length < 0 {
		return nil, fmt.Errorf("%s: length %d: %w", op, length, ErrOutOfRange)
	}
	s := &VertexDataBufferSubset[T]{length: length}
	if err := s.init(op, b, gl.ARRAY_BUFFER, offset, length*elem); err != nil {
		return nil, err
	}
	if data != nil {
		if err := s.SetData(0, data); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of vertices in the subset.
func (s *VertexDataBufferSubset[T]) Len() int {
	return s.length
}

// ElementSize returns the size in bytes of one vertex.
func (s *VertexDataBufferSubset[T]) ElementSize() int {
	return gunsafe.SizeOf[T]()
}

// SetData writes data starting at vertex index offset.
func (s *VertexDataBufferSubset[T]) SetData(offset int, data []T) error {
	if offset < 0 {
		return fmt.Errorf("SetData: offset %d: %w", offset, ErrOutOfRange)
	}
	return s.setBytes("SetData", offset*s.ElementSize(), gunsafe.BytesView(data))
}

// GetData reads len(dst) vertices starting at vertex index offset.
func (s *VertexDataBufferSubset[T]) GetData(offset int, dst []T) error {
	if offset < 0 {
		return fmt.Errorf("GetData: offset %d: %w", offset, ErrOutOfRange)
	}
	return s.getBytes("GetData", offset*s.ElementSize(), gunsafe.BytesView(dst))
}

// Resize moves the subset to offset bytes into its buffer and sets its
// length in vertices. Contents are not moved.
func (s *VertexDataBufferSubset[T]) Resize(offset, length int) error {
	if length < 0 {
		return fmt.Errorf("Resize: length %d: %w", length, ErrOutOfRange)
	}
	if err := s.resize("Resize", offset, length*s.ElementSize()); err != nil {
		return err
	}
	s.length = length
	return nil
}
