// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import "fmt"

// Disposer is implemented by every GL resource.
type Disposer interface {
	// Dispose releases the GL object. Disposing twice is a no-op.
	Dispose()
	// IsDisposed reports whether Dispose has been called.
	IsDisposed() bool
}

// GraphicsResource is embedded in every type that owns a GL object. It ties
// the object to its device and tracks disposal.
type GraphicsResource struct {
	device   *GraphicsDevice
	self     Disposer
	disposed bool
}

// Device returns the device that created the resource.
func (r *GraphicsResource) Device() *GraphicsDevice {
	return r.device
}

// IsDisposed reports whether the resource has been disposed.
func (r *GraphicsResource) IsDisposed() bool {
	return r.disposed
}

func (r *GraphicsResource) register(d *GraphicsDevice, self Disposer) {
	r.device = d
	r.self = self
	d.resources[self] = struct{}{}
}

// markDisposed flags the resource disposed and reports whether the caller
// should release the GL object.
func (r *GraphicsResource) markDisposed() bool {
	if r.disposed || r.device == nil {
		return false
	}
	r.disposed = true
	delete(r.device.resources, r.self)
	return true
}

func (r *GraphicsResource) alive(op string) error {
	if r.disposed {
		return fmt.Errorf("%s: %w", op, ErrDisposed)
	}
	return nil
}

func (r *GraphicsResource) sameDevice(op string, other *GraphicsResource) error {
	if other.disposed {
		return fmt.Errorf("%s: %w", op, ErrDisposed)
	}
	if other.device != r.device {
		return fmt.Errorf("%s: %w", op, ErrDeviceMismatch)
	}
	return nil
}
