// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"trippygl.org/internal/gl"
	gunsafe "trippygl.org/internal/unsafe"
)

// IndexType is the element type of an index subset.
type IndexType uint8

const (
	IndexUint8 IndexType = iota
	IndexUint16
	IndexUint32
)

// IndexBufferSubset holds vertex indices for DrawElements.
type IndexBufferSubset struct {
	BufferObjectSubset
	elemType IndexType
	length   int
}

// NewIndexBufferSubset creates a subset of length indices of type typ,
// starting offset bytes into b. The offset must be a multiple of the index
// size.
func NewIndexBufferSubset(b *BufferObject, offset, length int, typ IndexType) (*IndexBufferSubset, error) {
	const op = "NewIndexBufferSubset"
	if typ > IndexUint32 {
		return nil, fmt.Errorf("%s: index type %d: %w", op, typ, ErrUnsupported)
	}
	if length < 0 {
		return nil, fmt.Errorf("%s: length %d: %w", op, length, ErrOutOfRange)
	}
	if offset%typ.Size() != 0 {
		return nil, fmt.Errorf("%s: offset %d not aligned to %d bytes: %w", op, offset, typ.Size(), ErrOutOfRange)
	}
	s := &IndexBufferSubset{elemType: typ, length: length}
	if err := s.init(op, b, gl.ELEMENT_ARRAY_BUFFER, offset, length*typ.Size()); err != nil {
		return nil, err
	}
	return s, nil
}

// NewIndexBufferSubsetFrom creates an index subset holding data, with the
// index type matching T.
func NewIndexBufferSubsetFrom[T constraints.Unsigned](b *BufferObject, offset int, data []T) (*IndexBufferSubset, error) {
	typ, err := indexTypeOf[T]("NewIndexBufferSubsetFrom")
	if err != nil {
		return nil, err
	}
	s, err := NewIndexBufferSubset(b, offset, len(data), typ)
	if err != nil {
		return nil, err
	}
	if err := SetIndices(s, 0, data); err != nil {
		return nil, err
	}
	return s, nil
}

// Type returns the index element type.
func (s *IndexBufferSubset) Type() IndexType {
	return s.elemType
}

// Len returns the number of indices in the subset.
func (s *IndexBufferSubset) Len() int {
	return s.length
}

// Resize moves the subset to offset bytes into its buffer and sets its
// length in indices.
func (s *IndexBufferSubset) Resize(offset, length int) error {
	if length < 0 || offset%s.elemType.Size() != 0 {
		return fmt.Errorf("Resize: offset %d, length %d: %w", offset, length, ErrOutOfRange)
	}
	if err := s.resize("Resize", offset, length*s.elemType.Size()); err != nil {
		return err
	}
	s.length = length
	return nil
}

// SetIndices writes data starting at index offset. The size of T must
// match the subset's index type.
func SetIndices[T constraints.Unsigned](s *IndexBufferSubset, offset int, data []T) error {
	typ, err := indexTypeOf[T]("SetIndices")
	if err != nil {
		return err
	}
	if typ != s.elemType {
		return fmt.Errorf("SetIndices: %d-byte indices into %d-byte subset: %w", typ.Size(), s.elemType.Size(), ErrTypeMismatch)
	}
	if offset < 0 {
		return fmt.Errorf("SetIndices: offset %d: %w", offset, ErrOutOfRange)
	}
	return s.setBytes("SetIndices", offset*typ.Size(), gunsafe.BytesView(data))
}

// GetIndices reads len(dst) indices starting at index offset.
func GetIndices[T constraints.Unsigned](s *IndexBufferSubset, offset int, dst []T) error {
	typ, err := indexTypeOf[T]("GetIndices")
	if err != nil {
		return err
	}
	if typ != s.elemType {
		return fmt.Errorf("GetIndices: %d-byte indices from %d-byte subset: %w", typ.Size(), s.elemType.Size(), ErrTypeMismatch)
	}
	if offset < 0 {
		return fmt.Errorf("GetIndices: offset %d: %w", offset, ErrOutOfRange)
	}
	return s.getBytes("GetIndices", offset*typ.Size(), gunsafe.BytesView(dst))
}

func indexTypeOf[T constraints.Unsigned](op string) (IndexType, error) {
	switch gunsafe.SizeOf[T]() {
	case 1:
		return IndexUint8, nil
	case 2:
		return IndexUint16, nil
	case 4:
		return IndexUint32, nil
	default:
		return 0, fmt.Errorf("%s: %d-byte indices: %w", op, gunsafe.SizeOf[T](), ErrTypeMismatch)
	}
}

// Size returns the size in bytes of one index.
func (t IndexType) Size() int {
	switch t {
	case IndexUint8:
		return 1
	case IndexUint16:
		return 2
	case IndexUint32:
		return 4
	default:
		panic("unknown index type")
	}
}

func (t IndexType) glEnum() gl.Enum {
	switch t {
	case IndexUint8:
		return gl.UNSIGNED_BYTE
	case IndexUint16:
		return gl.UNSIGNED_SHORT
	case IndexUint32:
		return gl.UNSIGNED_INT
	default:
		panic("unknown index type")
	}
}
