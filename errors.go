// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"errors"
	"fmt"
	"strings"

	"trippygl.org/internal/gl"
)

var (
	// ErrNoDriver is returned by NewDevice when no native driver package
	// has been imported.
	ErrNoDriver = errors.New("trippygl: no OpenGL driver registered (import trippygl.org/driver/opengl)")
	// ErrDisposed is returned when operating on a disposed resource.
	ErrDisposed = errors.New("trippygl: resource is disposed")
	// ErrDeviceMismatch is returned when resources of different devices
	// are combined.
	ErrDeviceMismatch = errors.New("trippygl: resource belongs to another device")
	// ErrOutOfRange is returned for offsets, lengths and indices outside
	// the valid range.
	ErrOutOfRange = errors.New("trippygl: out of range")
	// ErrSamplerNotSet is returned at draw time when a sampler uniform has
	// no texture.
	ErrSamplerNotSet = errors.New("trippygl: sampler uniform has no texture")
	// ErrTooManyTextures is returned at draw time when a program references
	// more distinct textures than there are texture units.
	ErrTooManyTextures = errors.New("trippygl: not enough texture units")
	// ErrMultisampled is returned for operations multisampled textures do
	// not support.
	ErrMultisampled = errors.New("trippygl: not supported on multisampled textures")
	// ErrNoShaderProgram is returned by draw calls with no program bound.
	ErrNoShaderProgram = errors.New("trippygl: no shader program bound")
	// ErrNoVertexArray is returned by draw calls with no vertex array bound.
	ErrNoVertexArray = errors.New("trippygl: no vertex array bound")
	// ErrNoIndexBuffer is returned by indexed draw calls when the bound
	// vertex array has no index subset.
	ErrNoIndexBuffer = errors.New("trippygl: vertex array has no index buffer")
	// ErrUniformBlockNotSet is returned at draw time when a uniform block
	// has no buffer range assigned.
	ErrUniformBlockNotSet = errors.New("trippygl: uniform block has no buffer")
	// ErrNoShaderCode is returned when building a program without vertex
	// or fragment shader code.
	ErrNoShaderCode = errors.New("trippygl: missing shader code")
	// ErrTypeMismatch is returned when a value does not match the type of a
	// uniform, texture or index subset.
	ErrTypeMismatch = errors.New("trippygl: type mismatch")
	// ErrUnsupported is returned for formats or modes the device or
	// resource does not support.
	ErrUnsupported = errors.New("trippygl: unsupported")
	// ErrBatcherNotBegun is returned by batcher calls made outside
	// Begin/End.
	ErrBatcherNotBegun = errors.New("trippygl: batcher has not begun")
	// ErrBatcherAlreadyBegun is returned by Begin when already begun.
	ErrBatcherAlreadyBegun = errors.New("trippygl: batcher has already begun")
)

// StateError reports that the device state is invalid for a draw call.
type StateError struct {
	Op  string
	Err error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("trippygl: invalid state for %s: %v", e.Op, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// ShaderCompilationError carries the driver's log for a shader that failed
// to compile.
type ShaderCompilationError struct {
	Stage ShaderStage
	Log   string
}

func (e *ShaderCompilationError) Error() string {
	return fmt.Sprintf("trippygl: %s shader compilation failed: %s", e.Stage, strings.TrimSpace(e.Log))
}

// ShaderLinkError carries the driver's log for a program that failed to
// link.
type ShaderLinkError struct {
	Log string
}

func (e *ShaderLinkError) Error() string {
	return fmt.Sprintf("trippygl: shader program link failed: %s", strings.TrimSpace(e.Log))
}

// FramebufferError reports an incomplete framebuffer.
type FramebufferError struct {
	Status gl.Enum
}

func (e *FramebufferError) Error() string {
	var reason string
	switch e.Status {
	case gl.FRAMEBUFFER_UNDEFINED:
		reason = "undefined"
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		reason = "incomplete attachment"
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		reason = "missing attachment"
	case gl.FRAMEBUFFER_UNSUPPORTED:
		reason = "unsupported attachment combination"
	case gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		reason = "mismatched sample counts"
	default:
		reason = "unknown"
	}
	return fmt.Sprintf("trippygl: incomplete framebuffer (%s), status = %#x", reason, uint(e.Status))
}

// GLError is a code returned by glGetError after an operation, reported
// when Config.CheckErrors is set.
type GLError struct {
	Op   string
	Code gl.Enum
}

func (e *GLError) Error() string {
	return fmt.Sprintf("trippygl: %s: %s", e.Op, gl.ErrorString(e.Code))
}
