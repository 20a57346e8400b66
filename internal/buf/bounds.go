// Package buf contains overflow-safe size arithmetic and alignment helpers
// shared by the pool and its backing allocators.
package buf

import (
	"fmt"
	"math"
	"unsafe"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// AlignUp rounds n up to the next multiple of align. align must be a power of two.
// Returns ok = false when rounding would overflow int.
func AlignUp(n, align int) (int, bool) {
	mask := align - 1
	sum, ok := AddOverflowSafe(n, mask)
	if !ok {
		return 0, false
	}
	return sum &^ mask, true
}

// Padded returns the number of bytes to request so that a block of size bytes
// aligned to align can always be carved out of it.
//
//	total, err := buf.Padded(size, 64)
//	if err != nil {
//	    return nil, err
//	}
func Padded(size, align int) (int, error) {
	if size < 0 {
		return 0, fmt.Errorf("negative size: %d", size)
	}
	if !IsPow2(align) {
		return 0, fmt.Errorf("alignment %d is not a power of two", align)
	}
	total, ok := AddOverflowSafe(size, align-1)
	if !ok {
		return 0, fmt.Errorf("overflow: size=%d + align=%d", size, align)
	}
	return total, nil
}

// Addr returns the address of the first byte of b's backing array, or 0 for
// a slice with no capacity.
func Addr(b []byte) uintptr {
	if cap(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

// AlignedSlice returns the sub-slice of raw starting at the first address that
// is a multiple of align, with length and capacity n. ok is false when raw is
// too short to hold n aligned bytes.
func AlignedSlice(raw []byte, n, align int) ([]byte, bool) {
	if n < 0 || !IsPow2(align) {
		return nil, false
	}
	off := 0
	if a := Addr(raw); a != 0 {
		off = int(-a & uintptr(align-1))
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > cap(raw) {
		return nil, false
	}
	return raw[off:end:end], true
}

// Aligned reports whether the first byte of b sits on an align boundary.
func Aligned(b []byte, align int) bool {
	return Addr(b)&uintptr(align-1) == 0
}
