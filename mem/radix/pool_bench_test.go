package radix

import "testing"

// Benchmark_Pool_TokenSizes benchmarks the warm path over typical token sizes.
func Benchmark_Pool_TokenSizes(b *testing.B) {
	sizes := []int{8, 16, 24, 32, 48}
	p := New(nil)

	b.ReportAllocs()
	b.ResetTimer()

	for i := range b.N {
		blk, err := p.Allocate(sizes[i%len(sizes)])
		if err != nil {
			b.Fatal(err)
		}
		p.Deallocate(blk)
	}
}

// Benchmark_Pool_IRNodes allocates 64 medium blocks then frees them in batch.
func Benchmark_Pool_IRNodes(b *testing.B) {
	p := New(nil)
	blocks := make([]Block, 0, 64)

	b.ReportAllocs()
	b.ResetTimer()

	for i := range b.N {
		blocks = blocks[:0]
		for j := range 64 {
			blk, err := p.Allocate(257 + (i+j)%512)
			if err != nil {
				b.Fatal(err)
			}
			blocks = append(blocks, blk)
		}
		p.BatchDeallocate(blocks)
	}
}

// Benchmark_Make_TokenSizes is the baseline: plain heap slices.
func Benchmark_Make_TokenSizes(b *testing.B) {
	sizes := []int{8, 16, 24, 32, 48}
	var sink []byte

	b.ReportAllocs()
	b.ResetTimer()

	for i := range b.N {
		sink = make([]byte, sizes[i%len(sizes)])
	}
	_ = sink
}
