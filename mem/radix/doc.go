// Package radix provides a tiered size-class memory pool for compiler-internal
// objects (tokens, IR nodes, optimization metadata).
//
// # Overview
//
// Compiler objects cluster into a handful of small, predictable sizes. The pool
// keeps one LIFO free list per exact size class so a freed block is handed back
// to the next request of the same class while it is still cache warm. Requests
// that find an empty free list fall back to the backing system allocator.
//
// # Tiers
//
//	Tier    Sizes        Granularity  Classes  Alignment
//	Tiny    1 - 16       1 byte       16       1
//	Small   17 - 256     4 bytes      60       4
//	Medium  257 - 4096   16 bytes     240      16
//	Large   4097+        64 bytes     cache    64
//
// Tiny, Small and Medium requests are rounded up to their class size. Large
// requests are rounded up to a 64-byte boundary and cached by their exact
// requested size in an unbounded per-size stack.
//
// # Blocks
//
// Allocate returns a Block: the bytes plus the requested size. Deallocate reads
// the size back from the Block, so callers cannot free with a mistyped size.
// The contents of a reused block are whatever its previous owner left in it.
//
//	p := radix.New(nil)
//
//	b, err := p.Allocate(64)
//	if err != nil {
//	    return err
//	}
//	copy(b.Bytes(), token)
//
//	p.Deallocate(b)
//
// # Non-goals
//
// The pool never coalesces, splits or grows blocks and holds no locks. Give
// each worker its own Pool instead of sharing one.
//
// # Debug Mode
//
// With Options.Debug set the pool keeps a shadow table of live blocks and
// records double frees and foreign blocks as Violations instead of corrupting
// its free lists. Release mode performs no such checks.
package radix
