// Package workload generates deterministic, compiler-shaped allocation traffic
// for exercising the radix pool: lexer tokens, IR nodes and optimization
// metadata allocated per function body and released when that body is done.
package workload

import (
	"fmt"
	"math/rand/v2"

	"github.com/joshuapare/radixpool/mem/lifetime"
	"github.com/joshuapare/radixpool/mem/radix"
)

// ModuleTag is the lifetime of allocations that outlive a single function
// (symbol tables, interned strings). It is released after the last function.
const ModuleTag = "module"

// Config describes a synthetic compilation.
type Config struct {
	Functions         int    // function bodies to compile
	TokensPerFunction int    // lexer tokens per body (8-48 bytes)
	NodesPerFunction  int    // IR nodes per body (64-320 bytes)
	MetaPerFunction   int    // optimization metadata records per body (512-2048 bytes)
	LargeEvery        int    // every Nth body also gets a constant table above 4KB; 0 disables
	SymbolsPerFunc    int    // module-lifetime symbol entries per body (24-96 bytes)
	KeepModule        bool   // leave the module lifetime open when Run returns
	Seed              uint64 // PRNG seed
}

// DefaultConfig is a small translation unit.
var DefaultConfig = Config{
	Functions:         200,
	TokensPerFunction: 400,
	NodesPerFunction:  120,
	MetaPerFunction:   8,
	LargeEvery:        25,
	SymbolsPerFunc:    4,
	Seed:              1,
}

// Result summarizes a run.
type Result struct {
	Functions   int    `json:"functions"`
	Allocations int    `json:"allocations"`
	Bytes       uint64 `json:"bytes"`
}

// FunctionTag returns the lifetime tag used for the i-th function body.
func FunctionTag(i int) string {
	return fmt.Sprintf("fn%05d", i)
}

// Run compiles cfg.Functions synthetic bodies through lp. Each body's
// allocations are tagged with FunctionTag(i) and released when the body is
// finished; module allocations are released at the end unless KeepModule is set.
func Run(lp *lifetime.Pool[string], cfg Config) (Result, error) {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	var res Result

	alloc := func(size int, tag string) error {
		b, err := lp.AllocateWithLifetime(size, tag)
		if err != nil {
			return fmt.Errorf("workload: %s: %w", tag, err)
		}
		// Touch the block the way a client would.
		data := b.Bytes()
		data[0] = byte(size)
		data[len(data)-1] = byte(size >> 8)
		res.Allocations++
		res.Bytes += uint64(size)
		return nil
	}

	for i := range cfg.Functions {
		tag := FunctionTag(i)
		for range cfg.TokensPerFunction {
			if err := alloc(8+rng.IntN(41), tag); err != nil {
				return res, err
			}
		}
		for range cfg.NodesPerFunction {
			if err := alloc(64+rng.IntN(257), tag); err != nil {
				return res, err
			}
		}
		for range cfg.MetaPerFunction {
			if err := alloc(512+rng.IntN(1537), tag); err != nil {
				return res, err
			}
		}
		if cfg.LargeEvery > 0 && i%cfg.LargeEvery == 0 {
			if err := alloc(radix.MediumMax+1+rng.IntN(12288), tag); err != nil {
				return res, err
			}
		}
		for range cfg.SymbolsPerFunc {
			if err := alloc(24+rng.IntN(73), ModuleTag); err != nil {
				return res, err
			}
		}
		lp.ReleaseLifetime(tag)
		res.Functions++
	}

	if !cfg.KeepModule {
		lp.ReleaseLifetime(ModuleTag)
	}
	return res, nil
}

// Cycles performs n allocate/deallocate pairs on p, cycling through sizes.
func Cycles(p *radix.Pool, n int, sizes []int) error {
	if len(sizes) == 0 {
		return fmt.Errorf("workload: no sizes given")
	}
	for i := range n {
		b, err := p.Allocate(sizes[i%len(sizes)])
		if err != nil {
			return fmt.Errorf("workload: cycle %d: %w", i, err)
		}
		p.Deallocate(b)
	}
	return nil
}
