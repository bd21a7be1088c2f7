// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"
)

// PrimitiveBatcher accumulates triangle and line vertices of type T on the
// CPU. The vertex lists grow as needed and are reused after a clear.
type PrimitiveBatcher[T any] struct {
	triangles []T
	lines     []T
}

// NewPrimitiveBatcher returns a batcher with room for the given number of
// triangle and line vertices.
func NewPrimitiveBatcher[T any](triangleCapacity, lineCapacity int) (*PrimitiveBatcher[T], error) {
	if triangleCapacity < 0 || lineCapacity < 0 {
		return nil, fmt.Errorf("NewPrimitiveBatcher: capacities %d, %d: %w", triangleCapacity, lineCapacity, ErrOutOfRange)
	}
	return &PrimitiveBatcher[T]{
		triangles: make([]T, 0, triangleCapacity),
		lines:     make([]T, 0, lineCapacity),
	}, nil
}

// AddTriangle adds the triangle v1, v2, v3.
func (b *PrimitiveBatcher[T]) AddTriangle(v1, v2, v3 T) {
	b.triangles = append(b.triangles, v1, v2, v3)
}

// AddQuad adds the quad v1, v2, v3, v4 as the triangles (v1, v2, v3) and
// (v1, v3, v4).
func (b *PrimitiveBatcher[T]) AddQuad(v1, v2, v3, v4 T) {
	b.triangles = append(b.triangles, v1, v2, v3, v1, v3, v4)
}

// AddTriangles adds a triangle list. len(vertices) must be a multiple of 3.
func (b *PrimitiveBatcher[T]) AddTriangles(vertices []T) error {
	if len(vertices)%3 != 0 {
		return fmt.Errorf("AddTriangles: %d vertices: %w", len(vertices), ErrOutOfRange)
	}
	b.triangles = append(b.triangles, vertices...)
	return nil
}

// AddLine adds the line from v1 to v2.
func (b *PrimitiveBatcher[T]) AddLine(v1, v2 T) {
	b.lines = append(b.lines, v1, v2)
}

// AddLines adds a line list. len(vertices) must be even.
func (b *PrimitiveBatcher[T]) AddLines(vertices []T) error {
	if len(vertices)%2 != 0 {
		return fmt.Errorf("AddLines: %d vertices: %w", len(vertices), ErrOutOfRange)
	}
	b.lines = append(b.lines, vertices...)
	return nil
}

// AddLineStrip adds the connected lines through vertices.
func (b *PrimitiveBatcher[T]) AddLineStrip(vertices []T) {
	for i := 1; i < len(vertices); i++ {
		b.lines = append(b.lines, vertices[i-1], vertices[i])
	}
}

func (b *PrimitiveBatcher[T]) ClearTriangles() {
	b.triangles = b.triangles[:0]
}

func (b *PrimitiveBatcher[T]) ClearLines() {
	b.lines = b.lines[:0]
}

// TriangleVertices returns the accumulated triangle vertices. The slice is
// valid until the next Add or Clear.
func (b *PrimitiveBatcher[T]) TriangleVertices() []T {
	return b.triangles
}

// LineVertices returns the accumulated line vertices. The slice is valid
// until the next Add or Clear.
func (b *PrimitiveBatcher[T]) LineVertices() []T {
	return b.lines
}

func (b *PrimitiveBatcher[T]) TriangleVertexCount() int {
	return len(b.triangles)
}

func (b *PrimitiveBatcher[T]) TriangleCount() int {
	return len(b.triangles) / 3
}

func (b *PrimitiveBatcher[T]) LineVertexCount() int {
	return len(b.lines)
}

func (b *PrimitiveBatcher[T]) LineCount() int {
	return len(b.lines) / 2
}

// TriangleCapacity returns the number of triangle vertices that fit
// without growing.
func (b *PrimitiveBatcher[T]) TriangleCapacity() int {
	return cap(b.triangles)
}

// LineCapacity returns the number of line vertices that fit without
// growing.
func (b *PrimitiveBatcher[T]) LineCapacity() int {
	return cap(b.lines)
}
