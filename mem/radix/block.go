package radix

import "github.com/joshuapare/radixpool/internal/buf"

// Block is a handle to memory obtained from a Pool. It carries the requested
// size so that Deallocate always releases the block into the class it came from.
type Block struct {
	b []byte // len == requested size, cap == class size
}

// Bytes returns the block's memory, len(Bytes()) == Len().
func (b Block) Bytes() []byte { return b.b }

// Len returns the size the block was requested with.
func (b Block) Len() int { return len(b.b) }

// Cap returns the size of the class the block belongs to.
func (b Block) Cap() int { return cap(b.b) }

// Addr returns the address of the block's first byte.
func (b Block) Addr() uintptr { return buf.Addr(b.b) }

// IsZero reports whether b is the zero Block.
func (b Block) IsZero() bool { return cap(b.b) == 0 }
