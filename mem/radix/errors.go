package radix

import "errors"

var (
	// ErrInvalidSize indicates a request for fewer than one byte.
	ErrInvalidSize = errors.New("radix: size must be >= 1")

	// ErrOutOfMemory indicates that the backing allocator could not supply a fresh block.
	ErrOutOfMemory = errors.New("radix: out of memory")

	// ErrDoubleFree indicates a block was released twice (debug mode only).
	ErrDoubleFree = errors.New("radix: block already released")

	// ErrForeignBlock indicates a block this pool never handed out (debug mode only).
	ErrForeignBlock = errors.New("radix: block not owned by this pool")
)
