//go:build gmp

package sequence

import (
	"context"
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	extraGenerators = append(extraGenerators, func() coreGenerator { return GMPGenerator{} })
}

// GMPGenerator generates with libgmp through cgo. It is only built with the
// gmp tag and registers itself as "gmp".
type GMPGenerator struct{}

// Name returns "gmp".
func (GMPGenerator) Name() string { return "gmp" }

// Width returns WidthBig.
func (GMPGenerator) Width() Width { return WidthBig }

// GenerateCore implements coreGenerator.
func (GMPGenerator) GenerateCore(ctx context.Context, count uint64, progress ProgressFunc) ([]*big.Int, error) {
	tracker := newProgressTracker(count, progress)
	out := make([]*big.Int, 0, min(SeededLen(count), maxPrealloc))
	out = append(out, big.NewInt(SeedTerm), big.NewInt(SeedTerm))

	prev, curr := gmp.NewInt(SeedTerm), gmp.NewInt(SeedTerm)
	for k := uint64(2); k+2 <= count; k++ {
		if k%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		next := new(gmp.Int).Add(prev, curr)
		out = append(out, new(big.Int).SetBytes(next.Bytes()))
		prev, curr = curr, next
		tracker.update(k - 1)
	}
	return out, nil
}
