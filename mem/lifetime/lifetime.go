// Package lifetime groups radix pool allocations under caller-chosen tags so a
// whole group can be released in one call.
//
// A compiler tags everything allocated while processing one function body
// with that function's name and releases the tag when the phase ends:
//
//	lp := lifetime.New[string](radix.New(nil))
//
//	tok, err := lp.AllocateWithLifetime(24, "main.run")
//	...
//	lp.ReleaseLifetime("main.run")
//
// Like the underlying pool, a Pool is not safe for concurrent use.
package lifetime

import "github.com/joshuapare/radixpool/mem/radix"

// Pool wraps a radix.Pool and remembers which blocks were allocated under
// which tag. A block appears under at most one tag; releasing a tagged block
// individually and then releasing its tag frees it twice.
type Pool[K comparable] struct {
	pool  *radix.Pool
	live  map[K][]radix.Block
	spare [][]radix.Block // emptied lists kept for the next tag
}

// New wraps p. A nil p gets a pool with default options.
func New[K comparable](p *radix.Pool) *Pool[K] {
	if p == nil {
		p = radix.New(nil)
	}
	return &Pool[K]{
		pool: p,
		live: make(map[K][]radix.Block),
	}
}

// AllocateWithLifetime allocates size bytes and registers the block under tag.
// Nothing is registered when the allocation fails.
func (lp *Pool[K]) AllocateWithLifetime(size int, tag K) (radix.Block, error) {
	b, err := lp.pool.Allocate(size)
	if err != nil {
		return radix.Block{}, err
	}
	blocks, ok := lp.live[tag]
	if !ok {
		blocks = lp.takeSpare()
	}
	lp.live[tag] = append(blocks, b)
	return b, nil
}

// ReleaseLifetime deallocates every block registered under tag, in
// registration order, and forgets the tag. Unknown tags are ignored.
func (lp *Pool[K]) ReleaseLifetime(tag K) {
	blocks, ok := lp.live[tag]
	if !ok {
		return
	}
	delete(lp.live, tag)
	lp.pool.BatchDeallocate(blocks)

	clear(blocks)
	lp.spare = append(lp.spare, blocks[:0])
}

func (lp *Pool[K]) takeSpare() []radix.Block {
	n := len(lp.spare)
	if n == 0 {
		return nil
	}
	blocks := lp.spare[n-1]
	lp.spare[n-1] = nil
	lp.spare = lp.spare[:n-1]
	return blocks
}

// Allocate allocates an untagged block; see radix.Pool.Allocate.
func (lp *Pool[K]) Allocate(size int) (radix.Block, error) {
	return lp.pool.Allocate(size)
}

// Deallocate releases an untagged block; see radix.Pool.Deallocate.
func (lp *Pool[K]) Deallocate(b radix.Block) {
	lp.pool.Deallocate(b)
}

// Pending returns the number of blocks registered under tag.
func (lp *Pool[K]) Pending(tag K) int {
	return len(lp.live[tag])
}

// Tags returns the number of tags with registered blocks.
func (lp *Pool[K]) Tags() int {
	return len(lp.live)
}

// Stats returns the underlying pool's counters.
func (lp *Pool[K]) Stats() radix.PoolStats {
	return lp.pool.Stats()
}

// Radix returns the wrapped pool.
func (lp *Pool[K]) Radix() *radix.Pool {
	return lp.pool
}

// Reset resets the wrapped pool; see radix.Pool.Reset. Open lifetimes are
// kept, so their blocks can still be released afterwards.
func (lp *Pool[K]) Reset() {
	lp.pool.Reset()
}
