package radix

import "unsafe"

const cacheLineSize = 64

// sizeClassNode is the free list for one exact class size. Nodes are padded to
// a cache line so neighbouring classes never share one.
type sizeClassNode struct {
	free      [][]byte // LIFO stack of released blocks, each with cap == size
	size      int      // class size in bytes
	allocated int      // blocks currently handed out from this class

	_ [cacheLineSize - unsafe.Sizeof([][]byte(nil)) - 2*unsafe.Sizeof(int(0))]byte
}

// allocateFast pops the most recently freed block. ok is false when the list is empty.
func (n *sizeClassNode) allocateFast() (b []byte, ok bool) {
	top := len(n.free) - 1
	if top < 0 {
		return nil, false
	}
	b = n.free[top]
	n.free[top] = nil
	n.free = n.free[:top]
	return b, true
}

// deallocate pushes b without checking that it belongs to this class.
func (n *sizeClassNode) deallocate(b []byte) {
	n.free = append(n.free, b)
}

func (n *sizeClassNode) markAllocated() { n.allocated++ }

func (n *sizeClassNode) markReleased() {
	if n.allocated > 0 {
		n.allocated--
	}
}
