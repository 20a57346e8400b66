package radix

import (
	"os"

	"github.com/joshuapare/radixpool/internal/sysalloc"
)

// Runtime debug flag for allocation logging - controlled by RADIX_LOG_ALLOC env var.
var logAllocEnv = os.Getenv("RADIX_LOG_ALLOC") != ""

// Backing is the system allocator consulted on a cache miss. Alloc must return
// a block with len == cap == size whose first byte is aligned to align.
type Backing interface {
	Alloc(size, align int) ([]byte, error)
}

// Options configures a Pool.
type Options struct {
	// Backing supplies fresh blocks on a miss. Default: the Go heap.
	Backing Backing

	// Debug enables the shadow table that detects double frees and foreign
	// blocks. It costs a map operation per call.
	Debug bool

	// LogAlloc logs misses, resets and violations at debug level.
	// Also enabled by setting RADIX_LOG_ALLOC.
	LogAlloc bool
}

// DefaultOptions returns the options used when New is passed nil.
func DefaultOptions() Options {
	return Options{Backing: sysalloc.Heap{}}
}
