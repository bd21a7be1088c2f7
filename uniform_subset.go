// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"

	"trippygl.org/internal/gl"
	gunsafe "trippygl.org/internal/unsafe"
)

// UniformBufferRange is implemented by uniform buffer subsets. It is
// accepted by ShaderBlockUniform.SetValue.
type UniformBufferRange interface {
	// uniformRange returns the byte range of element index.
	uniformRange(op string, index int) (*BufferObject, int, int, error)
}

// UniformBufferSubset holds an array of T values laid out for uniform
// blocks. Consecutive elements are ElementStride bytes apart, a multiple of
// the device's uniform buffer offset alignment, so any element can be bound
// to a block on its own.
type UniformBufferSubset[T any] struct {
	BufferObjectSubset
	elemSize int
	stride   int
	length   int
}

// uniformStride rounds size up to a multiple of align.
func uniformStride(size, align int) int {
	return (size + align - 1) / align * align
}

// uniformSpan is the bytes needed for length elements; the last element
// needs no padding.
func uniformSpan(length, size, stride int) int {
	if length == 0 {
		return 0
	}
	return (length-1)*stride + size
}

// NewUniformBufferSubset creates a subset of length elements starting
// offset bytes into b. The offset must be a multiple of the device's
// uniform buffer offset alignment.
func NewUniformBufferSubset[T any](b *BufferObject, offset, length int) (*UniformBufferSubset[T], error) {
	const op = "NewUniformBufferSubset"
	if b == nil {
		return nil, fmt.Errorf("%s: nil buffer: %w", op, ErrOutOfRange)
	}
	if err := b.alive(op); err != nil {
		return nil, err
	}
	size := gunsafe.SizeOf[T]()
	if size == 0 {
		return nil, fmt.Errorf("%s: zero-sized element type: %w", op, ErrUnsupported)
	}
	if length < 0 {
		return nil, fmt.Errorf("%s: length %d: %w", op, length, ErrOutOfRange)
	}
	align := b.device.limits.UniformBufferOffsetAlignment
	if offset%align != 0 {
		return nil, fmt.Errorf("%s: offset %d not a multiple of %d: %w", op, offset, align, ErrOutOfRange)
	}
	stride := uniformStride(size, align)
	s := &UniformBufferSubset[T]{elemSize: size, stride: stride, length: length}
	if err := s.init(op, b, gl.UNIFORM_BUFFER, offset, uniformSpan(length, size, stride)); err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the number of elements.
func (s *UniformBufferSubset[T]) Len() int {
	return s.length
}

// ElementSize returns the size in bytes of T.
func (s *UniformBufferSubset[T]) ElementSize() int {
	return s.elemSize
}

// ElementStride returns the distance in bytes between consecutive
// elements.
func (s *UniformBufferSubset[T]) ElementStride() int {
	return s.stride
}

// SetValue writes v at element index.
func (s *UniformBufferSubset[T]) SetValue(index int, v T) error {
	if index < 0 || index >= s.length {
		return fmt.Errorf("SetValue: index %d of %d: %w", index, s.length, ErrOutOfRange)
	}
	return s.setBytes("SetValue", index*s.stride, gunsafe.StructView(&v))
}

// SetValues writes vals starting at element index offset.
func (s *UniformBufferSubset[T]) SetValues(offset int, vals []T) error {
	if offset < 0 || offset > s.length || len(vals) > s.length-offset {
		return fmt.Errorf("SetValues: [%d, %d) of %d: %w", offset, offset+len(vals), s.length, ErrOutOfRange)
	}
	if len(vals) == 0 {
		return nil
	}
	buf := make([]byte, uniformSpan(len(vals), s.elemSize, s.stride))
	for i := range vals {
		copy(buf[i*s.stride:], gunsafe.StructView(&vals[i]))
	}
	return s.setBytes("SetValues", offset*s.stride, buf)
}

// GetValue reads the element at index.
func (s *UniformBufferSubset[T]) GetValue(index int) (T, error) {
	var v T
	if index < 0 || index >= s.length {
		return v, fmt.Errorf("GetValue: index %d of %d: %w", index, s.length, ErrOutOfRange)
	}
	err := s.getBytes("GetValue", index*s.stride, gunsafe.StructView(&v))
	return v, err
}

// Resize moves the subset to offset bytes into its buffer and sets its
// length in elements.
func (s *UniformBufferSubset[T]) Resize(offset, length int) error {
	align := s.buffer.device.limits.UniformBufferOffsetAlignment
	if length < 0 || offset%align != 0 {
		return fmt.Errorf("Resize: offset %d, length %d: %w", offset, length, ErrOutOfRange)
	}
	if err := s.resize("Resize", offset, uniformSpan(length, s.elemSize, s.stride)); err != nil {
		return err
	}
	s.length = length
	return nil
}

func (s *UniformBufferSubset[T]) uniformRange(op string, index int) (*BufferObject, int, int, error) {
	if err := s.buffer.alive(op); err != nil {
		return nil, 0, 0, err
	}
	if index < 0 || index >= s.length {
		return nil, 0, 0, fmt.Errorf("%s: index %d of %d: %w", op, index, s.length, ErrOutOfRange)
	}
	return s.buffer, s.offset + index*s.stride, s.elemSize, nil
}
