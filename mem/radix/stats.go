package radix

// PoolStats is a snapshot of the pool's counters.
//
// TotalAllocated counts bytes materialized by the backing allocator (class
// sizes, not requested sizes). TotalDeallocated and CurrentUsed count
// requested bytes.
type PoolStats struct {
	TotalAllocated    uint64 `json:"total_allocated"`
	TotalDeallocated  uint64 `json:"total_deallocated"`
	CurrentUsed       uint64 `json:"current_used"`
	PeakUsed          uint64 `json:"peak_used"`
	AllocationCount   uint64 `json:"allocation_count"`
	DeallocationCount uint64 `json:"deallocation_count"`
	CacheHits         uint64 `json:"cache_hits"`
	CacheMisses       uint64 `json:"cache_misses"`
}

// SpaceUtilization returns CurrentUsed as a percentage of TotalAllocated,
// or 0 when nothing has been allocated.
func (s PoolStats) SpaceUtilization() float64 {
	if s.TotalAllocated == 0 {
		return 0
	}
	return float64(s.CurrentUsed) / float64(s.TotalAllocated) * 100
}

// CacheHitRate returns the percentage of allocations served from a free list,
// or 0 before the first allocation.
func (s PoolStats) CacheHitRate() float64 {
	total := s.CacheHits + s.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(total) * 100
}

func (s *PoolStats) recordAlloc(size int, hit bool, physical int) {
	s.AllocationCount++
	if hit {
		s.CacheHits++
	} else {
		s.CacheMisses++
		s.TotalAllocated += uint64(physical)
	}
	s.CurrentUsed += uint64(size)
	if s.CurrentUsed > s.PeakUsed {
		s.PeakUsed = s.CurrentUsed
	}
}

func (s *PoolStats) recordFree(size int) {
	s.DeallocationCount++
	s.TotalDeallocated += uint64(size)
	if uint64(size) > s.CurrentUsed {
		s.CurrentUsed = 0
	} else {
		s.CurrentUsed -= uint64(size)
	}
}

// ClassStats describes one size class (or one large-cache size) with activity.
type ClassStats struct {
	Tier      Tier `json:"tier"`
	Size      int  `json:"size"`      // class size; requested size for the large cache
	Free      int  `json:"free"`      // cached blocks awaiting reuse
	Allocated int  `json:"allocated"` // blocks handed out and not yet released (0 for large)
}
