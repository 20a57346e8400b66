package radix

import (
	"fmt"

	"github.com/joshuapare/radixpool/internal/logger"
)

// Violation records a misuse caught by the debug shadow table.
type Violation struct {
	Err  error   // ErrDoubleFree or ErrForeignBlock
	Addr uintptr // address of the offending block
	Size int     // size carried by the offending block
}

func (v Violation) Error() string {
	return fmt.Sprintf("%v: addr=%#x size=%d", v.Err, v.Addr, v.Size)
}

func (v Violation) Unwrap() error { return v.Err }

// shadowTable tracks which addresses are live and which were released, so
// misuse is reported instead of silently corrupting a free list.
type shadowTable struct {
	live       map[uintptr]int // addr -> requested size
	freed      map[uintptr]struct{}
	violations []Violation
}

func newShadowTable() *shadowTable {
	return &shadowTable{
		live:  make(map[uintptr]int),
		freed: make(map[uintptr]struct{}),
	}
}

func (s *shadowTable) allocated(b Block) {
	addr := b.Addr()
	delete(s.freed, addr)
	s.live[addr] = b.Len()
}

// released reports whether b may go back to a free list.
func (s *shadowTable) released(p *Pool, b Block) bool {
	addr := b.Addr()
	if _, ok := s.live[addr]; ok {
		delete(s.live, addr)
		s.freed[addr] = struct{}{}
		return true
	}

	v := Violation{Err: ErrForeignBlock, Addr: addr, Size: b.Len()}
	if _, ok := s.freed[addr]; ok {
		v.Err = ErrDoubleFree
	}
	s.violations = append(s.violations, v)
	if p.logAlloc {
		logger.Warn("radix: rejected deallocate", "error", v.Err, "addr", fmt.Sprintf("%#x", addr), "size", v.Size)
	}
	return false
}
