package sequence

import (
	"iter"
	"math/bits"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// SeedTerm is the value of both seed terms.
const SeedTerm = 1

// State holds the two most recent terms of a sequence in progress.
type State struct {
	Prev uint64
	Curr uint64
}

// NewState returns the seeded state (1, 1).
func NewState() State {
	return State{Prev: SeedTerm, Curr: SeedTerm}
}

// Step computes the next term in width w and returns the shifted state.
// position is the zero-based index of the new term in the seeded sequence
// and is only used to report overflows.
func (s State) Step(w Width, position uint64) (State, error) {
	sum, carry := bits.Add64(s.Prev, s.Curr, 0)
	if carry != 0 || sum > w.Max() {
		return s, apperrors.OverflowError{Width: w.String(), Step: position}
	}
	return State{Prev: s.Curr, Curr: sum}, nil
}

// GeneratedLen returns how many terms follow the seeds for count.
func GeneratedLen(count uint64) uint64 {
	if count < 3 {
		return 0
	}
	return count - 3
}

// SeededLen returns the length of the rendered sequence, seeds included.
func SeededLen(count uint64) uint64 {
	return 2 + GeneratedLen(count)
}

// Terms lazily yields the terms generated after the seeds. It yields a
// single error and stops when a term overflows w. WidthBig is rejected;
// use GenerateBig for arbitrary precision.
func Terms(count uint64, w Width) iter.Seq2[uint64, error] {
	return func(yield func(uint64, error) bool) {
		if !w.Fixed() {
			yield(0, apperrors.ValidationError{Field: "width", Message: "Terms requires a fixed width"})
			return
		}
		state := NewState()
		for k := uint64(2); k+2 <= count; k++ {
			next, err := state.Step(w, k)
			if err != nil {
				yield(0, err)
				return
			}
			state = next
			if !yield(state.Curr, nil) {
				return
			}
		}
	}
}

// Generate returns the terms generated after the seeds.
func Generate(count uint64, w Width) ([]uint64, error) {
	out := make([]uint64, 0, capacityFor(count, w))
	for term, err := range Terms(count, w) {
		if err != nil {
			return nil, err
		}
		out = append(out, term)
	}
	return out, nil
}

// Seeded returns the full rendered sequence: both seeds followed by the
// generated terms.
func Seeded(count uint64, w Width) ([]uint64, error) {
	generated, err := Generate(count, w)
	if err != nil {
		return nil, err
	}
	out := make([]uint64, 0, len(generated)+2)
	out = append(out, SeedTerm, SeedTerm)
	return append(out, generated...), nil
}

// capacityFor bounds the preallocation by what the width can ever hold.
func capacityFor(count uint64, w Width) int {
	if !w.Fixed() {
		return 0
	}
	n := GeneratedLen(count)
	if limit := GeneratedLen(maxCountCache(w)); n > limit {
		n = limit
	}
	return int(n)
}
