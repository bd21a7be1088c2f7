// SPDX-License-Identifier: Unlicense OR MIT

package unsafe

import (
	"unsafe"
)

// BytesView returns a byte slice view of a slice.
func BytesView[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	sz := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*sz)
}

// StructView returns a byte slice view of the value pointed to by v.
func StructView[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// SizeOf returns the size in bytes of a T.
func SizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
