//go:build !unix

package sysalloc

// Mmap falls back to the Go heap where anonymous mappings are not available.
type Mmap struct {
	Heap
}

// NewMmap creates an Mmap allocator.
func NewMmap() *Mmap {
	return &Mmap{}
}

// Mapped always returns 0 on this platform.
func (m *Mmap) Mapped() int64 { return 0 }

// Release is a no-op on this platform.
func (m *Mmap) Release() error { return nil }

var _ Allocator = (*Mmap)(nil)
