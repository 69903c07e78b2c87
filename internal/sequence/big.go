package sequence

import (
	"context"
	"math/big"
)

// ctxCheckInterval is how many steps run between context checks.
const ctxCheckInterval = 256

// maxPrealloc caps the initial slice capacity for arbitrary precision runs.
const maxPrealloc = 1 << 16

// GenerateBig returns the full rendered sequence, seeds included, using
// arbitrary precision. It returns ctx.Err() if the context ends mid-run.
func GenerateBig(ctx context.Context, count uint64, progress ProgressFunc) ([]*big.Int, error) {
	tracker := newProgressTracker(count, progress)
	capacity := SeededLen(count)
	if capacity > maxPrealloc {
		capacity = maxPrealloc
	}
	out := make([]*big.Int, 0, capacity)
	prev, curr := big.NewInt(SeedTerm), big.NewInt(SeedTerm)
	out = append(out, prev, curr)

	for k := uint64(2); k+2 <= count; k++ {
		if k%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		// Stored terms are never mutated, so prev and curr may alias them.
		next := new(big.Int).Add(prev, curr)
		out = append(out, next)
		prev, curr = curr, next
		tracker.update(k - 1)
	}
	return out, nil
}

// BigGenerator generates with math/big and never overflows.
type BigGenerator struct{}

// Name returns the registry name of the generator.
func (BigGenerator) Name() string { return WidthBig.String() }

// Width returns WidthBig.
func (BigGenerator) Width() Width { return WidthBig }

// GenerateCore implements coreGenerator.
func (BigGenerator) GenerateCore(ctx context.Context, count uint64, progress ProgressFunc) ([]*big.Int, error) {
	return GenerateBig(ctx, count, progress)
}

// FixedWidthGenerator generates in a bounded machine width and fails with an
// overflow error when a term does not fit.
type FixedWidthGenerator struct {
	W Width
}

// Name returns the registry name of the generator ("u8" ... "u64").
func (g FixedWidthGenerator) Name() string { return g.W.String() }

// Width returns the configured width.
func (g FixedWidthGenerator) Width() Width { return g.W }

// GenerateCore implements coreGenerator.
func (g FixedWidthGenerator) GenerateCore(ctx context.Context, count uint64, progress ProgressFunc) ([]*big.Int, error) {
	tracker := newProgressTracker(count, progress)
	out := make([]*big.Int, 0, capacityFor(count, g.W)+2)
	out = append(out, big.NewInt(SeedTerm), big.NewInt(SeedTerm))

	done := uint64(0)
	for term, err := range Terms(count, g.W) {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, new(big.Int).SetUint64(term))
		done++
		tracker.update(done)
	}
	return out, nil
}
