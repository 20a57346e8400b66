//go:build unix

package sysalloc

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/radixpool/internal/buf"
)

// Mmap serves requests of at least one page with anonymous private mappings
// and delegates smaller ones to the Go heap. Mappings are page aligned, which
// satisfies every alignment the pool asks for.
type Mmap struct {
	pageSize int
	small    Heap
	mappings [][]byte
	mapped   int64
}

// NewMmap creates an Mmap allocator.
func NewMmap() *Mmap {
	return &Mmap{pageSize: os.Getpagesize()}
}

// Alloc implements Allocator.
func (m *Mmap) Alloc(size, align int) ([]byte, error) {
	if size < m.pageSize || align > m.pageSize {
		return m.small.Alloc(size, align)
	}
	length, ok := buf.AlignUp(size, m.pageSize)
	if !ok {
		return nil, fmt.Errorf("%w: mapping of %d bytes overflows", ErrExhausted, size)
	}
	data, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %v", ErrExhausted, length, err)
	}
	m.mappings = append(m.mappings, data)
	m.mapped += int64(length)
	return data[:size:size], nil
}

// Mapped returns the number of bytes currently mapped.
func (m *Mmap) Mapped() int64 { return m.mapped }

// Release unmaps every mapping handed out. Blocks obtained from this allocator
// must not be touched afterwards, including blocks still parked in a pool.
// Each mapping is unmapped once; a second Release has nothing left to unmap.
func (m *Mmap) Release() error {
	var errs []error
	for _, data := range m.mappings {
		if err := unix.Munmap(data); err != nil {
			errs = append(errs, err)
		}
	}
	m.mappings = nil
	m.mapped = 0
	return errors.Join(errs...)
}

var _ Allocator = (*Mmap)(nil)
