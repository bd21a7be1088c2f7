// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trippygl.org/internal/gl"
)

func TestNewFramebuffer2D(t *testing.T) {
	d, _ := newTestDevice(t)
	fbo, err := NewFramebuffer2D(d, 32, 16, RenderbufferDepth24Stencil8, 0)
	require.NoError(t, err)
	assert.Equal(t, 32, fbo.Width())
	assert.Equal(t, 16, fbo.Height())
	assert.Zero(t, fbo.Samples())

	texs := fbo.TextureAttachments()
	require.Len(t, texs, 1)
	assert.Equal(t, AttachColor0, texs[0].Point)
	assert.Equal(t, FormatColor4b, texs[0].Texture.Format())
	rbs := fbo.RenderbufferAttachments()
	require.Len(t, rbs, 1)
	assert.Equal(t, AttachDepthStencil, rbs[0].Point)

	ms, err := NewFramebuffer2D(d, 8, 8, RenderbufferDepth16, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, ms.Samples())
	assert.Equal(t, AttachDepth, ms.RenderbufferAttachments()[0].Point)

	tex := texs[0].Texture
	rb := rbs[0].Renderbuffer
	fbo.DisposeAttachments()
	assert.True(t, tex.IsDisposed())
	assert.True(t, rb.IsDisposed())
	assert.Empty(t, fbo.TextureAttachments())
}

func TestIncompleteFramebuffer(t *testing.T) {
	d, f := newTestDevice(t)
	live := f.Live()
	f.FramebufferStatus = gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT

	_, err := NewFramebuffer2D(d, 16, 16, RenderbufferDepth24, 0)
	var ferr *FramebufferError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, gl.Enum(gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT), ferr.Status)
	assert.Contains(t, err.Error(), "incomplete attachment")
	// The framebuffer and its attachments were released.
	assert.Equal(t, live, f.Live())
	assert.Zero(t, d.ResourceCount())
}

func TestFramebufferSize(t *testing.T) {
	d, _ := newTestDevice(t)
	fbo, err := NewFramebufferObject(d)
	require.NoError(t, err)
	require.NoError(t, fbo.UpdateFramebufferData())
	assert.Zero(t, fbo.Width())

	wide, err := NewTexture2D(d, 64, 32, FormatColor4b, 0)
	require.NoError(t, err)
	tall, err := NewTexture2D(d, 32, 64, FormatVector4, 0)
	require.NoError(t, err)
	require.NoError(t, fbo.Attach(wide, AttachColor0))
	require.NoError(t, fbo.Attach(tall, AttachColor(1)))
	require.NoError(t, fbo.UpdateFramebufferData())
	assert.Equal(t, 32, fbo.Width())
	assert.Equal(t, 32, fbo.Height())

	depth, err := NewRenderbufferObject(d, 16, 128, RenderbufferDepth32f, 0)
	require.NoError(t, err)
	require.NoError(t, fbo.AttachRenderbuffer(depth, AttachDepth))
	require.NoError(t, fbo.UpdateFramebufferData())
	assert.Equal(t, 16, fbo.Width())
	assert.Equal(t, 32, fbo.Height())

	// Reattaching a point replaces the previous image.
	require.NoError(t, fbo.Attach(tall, AttachColor0))
	assert.Len(t, fbo.TextureAttachments(), 2)

	require.NoError(t, fbo.Detach(AttachDepth))
	assert.ErrorIs(t, fbo.Detach(AttachDepth), ErrOutOfRange)
	require.NoError(t, fbo.UpdateFramebufferData())
	assert.Equal(t, 32, fbo.Width())
	assert.Equal(t, 64, fbo.Height())
}

func TestFramebufferAttachmentPoints(t *testing.T) {
	d, _ := newTestDevice(t)
	fbo, err := NewFramebufferObject(d)
	require.NoError(t, err)
	color, err := NewTexture2D(d, 4, 4, FormatColor4b, 0)
	require.NoError(t, err)
	depth, err := NewTexture2D(d, 4, 4, FormatDepth24, 0)
	require.NoError(t, err)
	stencil, err := NewRenderbufferObject(d, 4, 4, RenderbufferStencil8, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, fbo.Attach(depth, AttachColor0), ErrTypeMismatch)
	assert.ErrorIs(t, fbo.Attach(color, AttachDepth), ErrTypeMismatch)
	assert.ErrorIs(t, fbo.Attach(depth, AttachDepthStencil), ErrTypeMismatch)
	assert.ErrorIs(t, fbo.Attach(color, AttachColor(8)), ErrOutOfRange)
	assert.ErrorIs(t, fbo.AttachRenderbuffer(stencil, AttachDepth), ErrTypeMismatch)
	assert.ErrorIs(t, fbo.Attach(nil, AttachColor0), ErrOutOfRange)

	require.NoError(t, fbo.Attach(color, AttachColor(7)))
	require.NoError(t, fbo.Attach(depth, AttachDepth))
	require.NoError(t, fbo.AttachRenderbuffer(stencil, AttachStencil))

	d2, _ := newTestDevice(t)
	other, err := NewTexture2D(d2, 4, 4, FormatColor4b, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, fbo.Attach(other, AttachColor0), ErrDeviceMismatch)
}

func TestFramebufferAttachLayer(t *testing.T) {
	d, f := newTestDevice(t)
	fbo, err := NewFramebufferObject(d)
	require.NoError(t, err)
	arr, err := NewTexture2DArray(d, 8, 8, 3, FormatColor4b, 0)
	require.NoError(t, err)
	cube, err := NewTextureCubemap(d, 8, FormatColor4b)
	require.NoError(t, err)
	flat, err := NewTexture2D(d, 8, 8, FormatColor4b, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, fbo.Attach(arr, AttachColor0), ErrUnsupported)
	assert.ErrorIs(t, fbo.AttachLayer(flat, AttachColor0, 0), ErrUnsupported)
	assert.ErrorIs(t, fbo.AttachLayer(arr, AttachColor0, 3), ErrOutOfRange)
	assert.ErrorIs(t, fbo.AttachLayer(cube, AttachColor0, 6), ErrOutOfRange)

	f.Record = true
	require.NoError(t, fbo.AttachLayer(arr, AttachColor0, 2))
	require.NoError(t, fbo.AttachLayer(cube, AttachColor(1), int(FaceNegativeZ)))
	assert.Equal(t, [][]interface{}{
		{gl.Enum(gl.DRAW_FRAMEBUFFER), gl.Enum(gl.COLOR_ATTACHMENT0), arr.obj, 0, 2},
	}, callsNamed(f, "FramebufferTextureLayer"))
	assert.Equal(t, [][]interface{}{
		{gl.Enum(gl.DRAW_FRAMEBUFFER), gl.Enum(gl.COLOR_ATTACHMENT0 + 1), gl.Enum(gl.TEXTURE_CUBE_MAP_POSITIVE_X + 5), cube.obj, 0},
	}, callsNamed(f, "FramebufferTexture2D"))
	assert.Equal(t, 2, fbo.TextureAttachments()[0].Layer)
}

func TestRenderbufferErrors(t *testing.T) {
	d, _ := newTestDevice(t)
	_, err := NewRenderbufferObject(d, 4, 4, RenderbufferNone, 0)
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = NewRenderbufferObject(d, 5000, 4, RenderbufferColor4b, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewRenderbufferObject(d, 4, 4, RenderbufferColor4b, 9)
	assert.ErrorIs(t, err, ErrOutOfRange)

	rb, err := NewRenderbufferObject(d, 4, 2, RenderbufferColor4b, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, rb.Width())
	assert.Equal(t, 2, rb.Height())
	assert.Equal(t, 2, rb.Samples())
	assert.Equal(t, RenderbufferColor4b, rb.Format())
}
