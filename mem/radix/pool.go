package radix

import (
	"fmt"

	"github.com/joshuapare/radixpool/internal/logger"
	"github.com/joshuapare/radixpool/internal/sysalloc"
)

// Pool routes requests to the tiny, small and medium tiers or the large-object
// cache, falling back to the backing allocator on a miss.
//
// A Pool is not safe for concurrent use. Dropping a Pool does not release
// outstanding blocks.
type Pool struct {
	tiny   tier
	small  tier
	medium tier
	large  largeCache

	stats   PoolStats
	backing Backing

	shadow   *shadowTable // nil unless Options.Debug
	logAlloc bool
}

// New creates a pool. A nil opts uses DefaultOptions().
func New(opts *Options) *Pool {
	if opts == nil {
		o := DefaultOptions()
		opts = &o
	}
	backing := opts.Backing
	if backing == nil {
		backing = sysalloc.Heap{}
	}

	p := &Pool{
		tiny:     newTier(TierTiny, 0, tinyGranularity, tinyClasses),
		small:    newTier(TierSmall, TinyMax, smallGranularity, smallClasses),
		medium:   newTier(TierMedium, SmallMax, mediumGranularity, mediumClasses),
		large:    newLargeCache(),
		backing:  backing,
		logAlloc: opts.LogAlloc || logAllocEnv,
	}
	if opts.Debug {
		p.shadow = newShadowTable()
	}
	return p
}

func (p *Pool) tierOf(kind Tier) *tier {
	switch kind {
	case TierTiny:
		return &p.tiny
	case TierSmall:
		return &p.small
	default:
		return &p.medium
	}
}

// Allocate returns a block of at least size writable bytes. The block must be
// returned with Deallocate (or through a lifetime release) to be reused.
//
// A failed allocation leaves every counter untouched.
func (p *Pool) Allocate(size int) (Block, error) {
	if size < 1 {
		return Block{}, ErrInvalidSize
	}

	kind := TierFor(size)
	var (
		raw      []byte
		hit      bool
		physical int
	)
	if kind == TierLarge {
		raw, hit = p.large.get(size)
		physical = largePhysical(size)
		if !hit {
			fresh, err := p.fresh(kind, size, physical, largeAlignment)
			if err != nil {
				return Block{}, err
			}
			raw = fresh
		}
	} else {
		t := p.tierOf(kind)
		physical = t.physical(size)
		node, ok := t.classFor(size)
		if ok {
			raw, hit = node.allocateFast()
		}
		if !hit {
			fresh, err := p.fresh(kind, size, physical, t.granularity)
			if err != nil {
				return Block{}, err
			}
			raw = fresh
		}
		if ok {
			node.markAllocated()
		}
	}

	p.stats.recordAlloc(size, hit, physical)
	b := Block{b: raw[:size]}
	if p.shadow != nil {
		p.shadow.allocated(b)
	}
	return b, nil
}

func (p *Pool) fresh(kind Tier, size, physical, align int) ([]byte, error) {
	raw, err := p.backing.Alloc(physical, align)
	if err != nil {
		if p.logAlloc {
			logger.Debug("radix: backing allocation failed", "tier", kind, "size", size, "error", err)
		}
		return nil, fmt.Errorf("%w: %d bytes for %s tier: %w", ErrOutOfMemory, size, kind, err)
	}
	if p.logAlloc {
		logger.Debug("radix: miss", "tier", kind, "size", size, "class", physical)
	}
	return raw, nil
}

// Deallocate returns b to the free list of its class (or the large cache).
// Releasing the zero Block is a no-op. Releasing a block twice, or a block
// from another pool, corrupts the free lists unless debug mode is on.
func (p *Pool) Deallocate(b Block) {
	if b.IsZero() {
		return
	}
	if p.shadow != nil && !p.shadow.released(p, b) {
		return
	}

	size := b.Len()
	raw := b.b[:cap(b.b)]
	switch kind := TierFor(size); kind {
	case TierLarge:
		p.large.put(raw, size)
	default:
		if node, ok := p.tierOf(kind).classFor(size); ok {
			node.deallocate(raw)
			node.markReleased()
		}
	}
	p.stats.recordFree(size)
}

// BatchDeallocate releases blocks in order, exactly as repeated Deallocate calls.
func (p *Pool) BatchDeallocate(blocks []Block) {
	for _, b := range blocks {
		p.Deallocate(b)
	}
}

// Reset drops every block parked in the large-object cache and zeroes
// CurrentUsed.
//
// Reset is deliberately partial: the tiny, small and medium free lists stay
// warm, and every other counter (including PeakUsed and the allocation and
// deallocation totals) is left as is. Blocks still held by callers remain
// valid and may still be deallocated; CurrentUsed saturates at zero when they
// are.
func (p *Pool) Reset() {
	if p.logAlloc {
		logger.Debug("radix: reset", "large_blocks", p.large.blocks, "current_used", p.stats.CurrentUsed)
	}
	p.large.clear()
	p.stats.CurrentUsed = 0
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool) Stats() PoolStats {
	return p.stats
}

// Classes lists every size class with cached or outstanding blocks, tier by
// tier, followed by the large-cache sizes in ascending order.
func (p *Pool) Classes() []ClassStats {
	var out []ClassStats
	for _, t := range []*tier{&p.tiny, &p.small, &p.medium} {
		for i := range t.nodes {
			n := &t.nodes[i]
			if len(n.free) == 0 && n.allocated == 0 {
				continue
			}
			out = append(out, ClassStats{
				Tier:      t.kind,
				Size:      n.size,
				Free:      len(n.free),
				Allocated: n.allocated,
			})
		}
	}
	for _, size := range p.large.sizes() {
		out = append(out, ClassStats{
			Tier: TierLarge,
			Size: size,
			Free: len(p.large.free[size]),
		})
	}
	return out
}

// FreeBlocks returns the number of blocks parked in each tier's free lists.
func (p *Pool) FreeBlocks() map[Tier]int {
	return map[Tier]int{
		TierTiny:   p.tiny.freeBlocks(),
		TierSmall:  p.small.freeBlocks(),
		TierMedium: p.medium.freeBlocks(),
		TierLarge:  p.large.blocks,
	}
}

// Violations returns the misuse recorded in debug mode, oldest first.
// It is always empty when debug mode is off.
func (p *Pool) Violations() []Violation {
	if p.shadow == nil {
		return nil
	}
	return append([]Violation(nil), p.shadow.violations...)
}
