// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import "fmt"

// ShaderBlockUniform is a uniform block of a program. Its binding index is
// fixed at link time; the buffer range assigned with SetValue is bound to
// that index before each draw.
type ShaderBlockUniform struct {
	program        *ShaderProgram
	name           string
	index          uint
	binding        int
	activeUniforms int
	dataSize       int

	buffer       *BufferObject
	offset, size int
}

func (b *ShaderBlockUniform) Name() string {
	return b.name
}

// BindingIndex returns the uniform buffer binding point of the block.
func (b *ShaderBlockUniform) BindingIndex() int {
	return b.binding
}

// ActiveUniforms returns the number of active members.
func (b *ShaderBlockUniform) ActiveUniforms() int {
	return b.activeUniforms
}

// DataSize returns the minimum buffer range size in bytes.
func (b *ShaderBlockUniform) DataSize() int {
	return b.dataSize
}

// SetValue makes the block read element index of r.
func (b *ShaderBlockUniform) SetValue(r UniformBufferRange, index int) error {
	const op = "ShaderBlockUniform.SetValue"
	if err := b.program.alive(op); err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("%s: nil buffer range: %w", op, ErrOutOfRange)
	}
	buf, offset, size, err := r.uniformRange(op, index)
	if err != nil {
		return err
	}
	if err := b.program.sameDevice(op, &buf.GraphicsResource); err != nil {
		return err
	}
	if size < b.dataSize {
		return fmt.Errorf("%s: %d byte element for block %s of %d bytes: %w", op, size, b.name, b.dataSize, ErrTypeMismatch)
	}
	b.buffer, b.offset, b.size = buf, offset, size
	return nil
}

// Buffer returns the assigned buffer and byte range, or a nil buffer if
// none is set.
func (b *ShaderBlockUniform) Buffer() (buf *BufferObject, offset, size int) {
	return b.buffer, b.offset, b.size
}

func (b *ShaderBlockUniform) apply(op string) error {
	if b.buffer == nil {
		return &StateError{Op: op, Err: fmt.Errorf("block %s: %w", b.name, ErrUniformBlockNotSet)}
	}
	if b.buffer.disposed {
		return &StateError{Op: op, Err: fmt.Errorf("block %s buffer: %w", b.name, ErrDisposed)}
	}
	d := b.program.device
	d.state.bindBufferRange(d.funcs, b.binding, b.buffer.obj, b.offset, b.size)
	return nil
}
