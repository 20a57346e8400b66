package radix

import "fmt"

// Tier identifies one of the pool's size ranges.
type Tier uint8

const (
	TierTiny Tier = iota
	TierSmall
	TierMedium
	TierLarge
)

// Tier boundaries (inclusive upper bounds) and granularities.
const (
	TinyMax   = 16
	SmallMax  = 256
	MediumMax = 4096

	tinyGranularity   = 1
	smallGranularity  = 4
	mediumGranularity = 16
	largeAlignment    = 64

	tinyClasses   = (TinyMax - 0) / tinyGranularity           // 16
	smallClasses  = (SmallMax - TinyMax) / smallGranularity   // 60
	mediumClasses = (MediumMax - SmallMax) / mediumGranularity // 240
)

func (t Tier) String() string {
	switch t {
	case TierTiny:
		return "tiny"
	case TierSmall:
		return "small"
	case TierMedium:
		return "medium"
	case TierLarge:
		return "large"
	default:
		return "unknown"
	}
}

// TierFor returns the tier a request of size bytes is routed to.
// size must be >= 1.
func TierFor(size int) Tier {
	switch {
	case size <= TinyMax:
		return TierTiny
	case size <= SmallMax:
		return TierSmall
	case size <= MediumMax:
		return TierMedium
	default:
		return TierLarge
	}
}

// tier is a contiguous run of size classes with a fixed granularity. Class i
// serves sizes (base + g*i, base + g*(i+1)], where base is the previous tier's
// ceiling.
type tier struct {
	kind        Tier
	base        int // exclusive lower bound
	granularity int
	nodes       []sizeClassNode
}

func newTier(kind Tier, base, granularity, classes int) tier {
	t := tier{
		kind:        kind,
		base:        base,
		granularity: granularity,
		nodes:       make([]sizeClassNode, classes),
	}
	for i := range t.nodes {
		t.nodes[i].size = base + granularity*(i+1)
	}
	return t
}

// index maps size to its class index: (roundUp(size, g) - (base+1)) / g.
func (t *tier) index(size int) int {
	g := t.granularity
	rounded := (size + g - 1) / g * g
	return (rounded - (t.base + 1)) / g
}

// classFor returns the node serving size. ok is false when the index falls
// outside the tier, in which case the request is served fresh and the block is
// never cached.
func (t *tier) classFor(size int) (*sizeClassNode, bool) {
	idx := t.index(size)
	if idx < 0 || idx >= len(t.nodes) {
		return nil, false
	}
	return &t.nodes[idx], true
}

// physical returns the bytes materialized for a request of size in this tier.
func (t *tier) physical(size int) int {
	g := t.granularity
	return (size + g - 1) / g * g
}

// freeBlocks returns the number of cached blocks across all classes.
func (t *tier) freeBlocks() int {
	n := 0
	for i := range t.nodes {
		n += len(t.nodes[i].free)
	}
	return n
}

// MarshalText renders the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a tier name produced by MarshalText.
func (t *Tier) UnmarshalText(text []byte) error {
	for k := TierTiny; k <= TierLarge; k++ {
		if k.String() == string(text) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("radix: unknown tier %q", text)
}
