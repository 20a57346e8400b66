// Package sysalloc provides the backing "system allocator" that the radix pool
// falls back to whenever a size class has no free block to reuse.
//
// Three implementations are provided:
//
//   - Heap: Go heap slices, over-allocated and trimmed to the requested alignment
//   - Mmap: anonymous private mappings for page-sized and larger blocks (unix only)
//   - Budget: a byte-limit wrapper that turns exhaustion into ErrExhausted
//
// None of them are safe for concurrent use.
package sysalloc

import (
	"errors"
	"fmt"

	"github.com/joshuapare/radixpool/internal/buf"
)

var (
	// ErrExhausted indicates the backing allocator could not satisfy a request.
	ErrExhausted = errors.New("sysalloc: backing memory exhausted")

	// ErrBadAlign indicates an alignment that is not a positive power of two.
	ErrBadAlign = errors.New("sysalloc: alignment must be a power of two")
)

// maxHeapBlock caps a single heap request below the runtime's slice limit so an
// oversized request surfaces as ErrExhausted instead of a makeslice panic.
const maxHeapBlock = 1 << 40

// Allocator hands out fresh, zeroed blocks.
type Allocator interface {
	// Alloc returns a block with len == cap == size whose first byte is aligned
	// to align.
	Alloc(size, align int) ([]byte, error)
}

// Heap allocates from the Go heap. The zero value is ready to use.
type Heap struct{}

// Alloc implements Allocator.
func (Heap) Alloc(size, align int) ([]byte, error) {
	if !buf.IsPow2(align) {
		return nil, ErrBadAlign
	}
	total, err := buf.Padded(size, align)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExhausted, err)
	}
	if total > maxHeapBlock {
		return nil, fmt.Errorf("%w: request of %d bytes exceeds heap block limit", ErrExhausted, size)
	}
	raw := make([]byte, total)
	b, ok := buf.AlignedSlice(raw, size, align)
	if !ok {
		return nil, fmt.Errorf("%w: could not align %d bytes to %d", ErrExhausted, size, align)
	}
	return b, nil
}

var _ Allocator = Heap{}
