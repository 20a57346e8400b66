package sysalloc

import "fmt"

// Budget caps the total number of bytes requested from the wrapped allocator.
// Blocks never flow back to a Budget, so usage only grows; the pool recycles
// memory through its own free lists instead.
type Budget struct {
	next  Allocator
	limit int64
	used  int64
	fails uint64
}

// NewBudget wraps next with a byte limit. A limit <= 0 disables the check.
func NewBudget(next Allocator, limit int64) *Budget {
	if next == nil {
		next = Heap{}
	}
	return &Budget{next: next, limit: limit}
}

// Alloc implements Allocator.
func (b *Budget) Alloc(size, align int) ([]byte, error) {
	if b.limit > 0 && b.used+int64(size) > b.limit {
		b.fails++
		return nil, fmt.Errorf("%w: %d bytes requested, %d of %d in use",
			ErrExhausted, size, b.used, b.limit)
	}
	p, err := b.next.Alloc(size, align)
	if err != nil {
		b.fails++
		return nil, err
	}
	b.used += int64(size)
	return p, nil
}

// Used returns the number of bytes handed out so far.
func (b *Budget) Used() int64 { return b.used }

// Limit returns the configured byte limit (0 when unlimited).
func (b *Budget) Limit() int64 {
	if b.limit <= 0 {
		return 0
	}
	return b.limit
}

// Failures returns the number of rejected requests.
func (b *Budget) Failures() uint64 { return b.fails }

var _ Allocator = (*Budget)(nil)
