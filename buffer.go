// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"fmt"

	"trippygl.org/internal/gl"
)

// BufferUsage hints how a buffer's storage will be accessed.
type BufferUsage uint8

const (
	StaticDraw BufferUsage = iota
	StaticRead
	StaticCopy
	DynamicDraw
	DynamicRead
	DynamicCopy
	StreamDraw
	StreamRead
	StreamCopy
)

// BufferObject is GPU buffer storage. Typed access goes through subsets.
type BufferObject struct {
	GraphicsResource
	obj     gl.Buffer
	size    int
	usage   BufferUsage
	subsets map[*BufferObjectSubset]struct{}
}

// NewBufferObject allocates size bytes of uninitialized buffer storage.
func NewBufferObject(d *GraphicsDevice, size int, usage BufferUsage) (*BufferObject, error) {
	if err := d.alive("NewBufferObject"); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("NewBufferObject: size %d: %w", size, ErrOutOfRange)
	}
	if usage > StreamCopy {
		return nil, fmt.Errorf("NewBufferObject: usage %d: %w", usage, ErrUnsupported)
	}
	b := &BufferObject{
		obj:     d.funcs.CreateBuffer(),
		subsets: make(map[*BufferObjectSubset]struct{}),
	}
	b.register(d, b)
	if err := b.allocate(size, usage); err != nil {
		b.Dispose()
		return nil, err
	}
	d.log.Debug("trippygl: buffer created", "size", size, "usage", usage)
	return b, nil
}

func (b *BufferObject) allocate(size int, usage BufferUsage) error {
	d := b.device
	d.state.bindBuffer(d.funcs, gl.COPY_WRITE_BUFFER, b.obj)
	d.funcs.BufferData(gl.COPY_WRITE_BUFFER, size, usage.glEnum(), nil)
	if err := d.glErr("BufferData"); err != nil {
		return err
	}
	b.size = size
	b.usage = usage
	return nil
}

// Size returns the storage length in bytes.
func (b *BufferObject) Size() int {
	return b.size
}

func (b *BufferObject) Usage() BufferUsage {
	return b.usage
}

// RecreateStorage reallocates the buffer with a new length and usage. The
// previous contents are lost. It fails if a subset of b would no longer fit.
func (b *BufferObject) RecreateStorage(size int, usage BufferUsage) error {
	if err := b.alive("RecreateStorage"); err != nil {
		return err
	}
	if size <= 0 {
		return fmt.Errorf("RecreateStorage: size %d: %w", size, ErrOutOfRange)
	}
	for s := range b.subsets {
		if s.offset+s.size > size {
			return fmt.Errorf("RecreateStorage: subset [%d, %d) does not fit in %d bytes: %w",
				s.offset, s.offset+s.size, size, ErrOutOfRange)
		}
	}
	return b.allocate(size, usage)
}

// CopyTo copies size bytes at srcOffset in b to dstOffset in dst.
func (b *BufferObject) CopyTo(dst *BufferObject, srcOffset, dstOffset, size int) error {
	if err := b.alive("CopyTo"); err != nil {
		return err
	}
	if dst == nil {
		return fmt.Errorf("CopyTo: nil destination: %w", ErrOutOfRange)
	}
	if err := b.sameDevice("CopyTo", &dst.GraphicsResource); err != nil {
		return err
	}
	if srcOffset < 0 || dstOffset < 0 || size < 0 || srcOffset+size > b.size || dstOffset+size > dst.size {
		return fmt.Errorf("CopyTo: copy of %d bytes from %d (of %d) to %d (of %d): %w",
			size, srcOffset, b.size, dstOffset, dst.size, ErrOutOfRange)
	}
	if size == 0 {
		return nil
	}
	d := b.device
	d.state.bindBuffer(d.funcs, gl.COPY_READ_BUFFER, b.obj)
	d.state.bindBuffer(d.funcs, gl.COPY_WRITE_BUFFER, dst.obj)
	d.funcs.CopyBufferSubData(gl.COPY_READ_BUFFER, gl.COPY_WRITE_BUFFER, srcOffset, dstOffset, size)
	return d.glErr("CopyBufferSubData")
}

// Dispose releases the buffer. Its subsets become unusable.
func (b *BufferObject) Dispose() {
	if !b.markDisposed() {
		return
	}
	d := b.device
	d.state.deleteBuffer(d.funcs, b.obj)
	d.log.Debug("trippygl: buffer disposed", "size", b.size)
}

func (b *BufferObject) writeBytes(offset int, data []byte) error {
	d := b.device
	d.state.bindBuffer(d.funcs, gl.COPY_WRITE_BUFFER, b.obj)
	d.funcs.BufferSubData(gl.COPY_WRITE_BUFFER, offset, data)
	return d.glErr("BufferSubData")
}

func (b *BufferObject) readBytes(offset int, dst []byte) error {
	d := b.device
	d.state.bindBuffer(d.funcs, gl.COPY_READ_BUFFER, b.obj)
	d.funcs.GetBufferSubData(gl.COPY_READ_BUFFER, offset, dst)
	return d.glErr("GetBufferSubData")
}

func (u BufferUsage) glEnum() gl.Enum {
	switch u {
	case StaticDraw:
		return gl.STATIC_DRAW
	case StaticRead:
		return gl.STATIC_READ
	case StaticCopy:
		return gl.STATIC_COPY
	case DynamicDraw:
		return gl.DYNAMIC_DRAW
	case DynamicRead:
		return gl.DYNAMIC_READ
	case DynamicCopy:
		return gl.DYNAMIC_COPY
	case StreamDraw:
		return gl.STREAM_DRAW
	case StreamRead:
		return gl.STREAM_READ
	case StreamCopy:
		return gl.STREAM_COPY
	default:
		panic("unknown buffer usage")
	}
}

func (u BufferUsage) String() string {
	switch u {
	case StaticDraw:
		return "StaticDraw"
	case StaticRead:
		return "StaticRead"
	case StaticCopy:
		return "StaticCopy"
	case DynamicDraw:
		return "DynamicDraw"
	case DynamicRead:
		return "DynamicRead"
	case DynamicCopy:
		return "DynamicCopy"
	case StreamDraw:
		return "StreamDraw"
	case StreamRead:
		return "StreamRead"
	case StreamCopy:
		return "StreamCopy"
	default:
		return fmt.Sprintf("BufferUsage(%d)", uint8(u))
	}
}
