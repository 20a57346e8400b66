package radix

import "sort"

// largeCache holds released blocks above MediumMax keyed by their exact
// requested size. A block stored under size S has cap roundUp64(S).
// The cache is unbounded; only Pool.Reset empties it.
type largeCache struct {
	free   map[int][][]byte
	blocks int
}

func newLargeCache() largeCache {
	return largeCache{free: make(map[int][][]byte)}
}

// get pops a block cached under exactly size.
func (c *largeCache) get(size int) ([]byte, bool) {
	stack := c.free[size]
	top := len(stack) - 1
	if top < 0 {
		return nil, false
	}
	b := stack[top]
	stack[top] = nil
	c.free[size] = stack[:top]
	c.blocks--
	return b, true
}

// put pushes b under size.
func (c *largeCache) put(b []byte, size int) {
	c.free[size] = append(c.free[size], b)
	c.blocks++
}

// clear drops every cached block.
func (c *largeCache) clear() {
	clear(c.free)
	c.blocks = 0
}

// sizes returns the sizes with at least one cached block, ascending.
func (c *largeCache) sizes() []int {
	out := make([]int, 0, len(c.free))
	for size, stack := range c.free {
		if len(stack) > 0 {
			out = append(out, size)
		}
	}
	sort.Ints(out)
	return out
}

// largePhysical rounds size up to the large-object alignment.
func largePhysical(size int) int {
	return (size + largeAlignment - 1) &^ (largeAlignment - 1)
}
