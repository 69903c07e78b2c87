package bounded

import (
	"errors"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// TestAccess_PropertyBased checks that every index resolves exactly when it
// lies in [0, len).
func TestAccess_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("in-range indices return the element", prop.ForAll(
		func(elems []int64, seed uint64) bool {
			if len(elems) == 0 {
				return true
			}
			c := NewCollection(elems...)
			index := seed % uint64(len(elems))
			got, err := Access(c, strconv.FormatUint(index, 10))
			return err == nil && got == elems[index]
		},
		gen.SliceOf(gen.Int64()),
		gen.UInt64(),
	))

	properties.Property("out-of-range indices fail with IndexOutOfRange", prop.ForAll(
		func(elems []int64, extra uint32) bool {
			c := NewCollection(elems...)
			index := uint64(len(elems)) + uint64(extra)
			_, err := Access(c, strconv.FormatUint(index, 10))
			return errors.Is(err, apperrors.ErrIndexOutOfRange)
		},
		gen.SliceOf(gen.Int64()),
		gen.UInt32(),
	))

	properties.Property("non-numeric text fails with ParseError", prop.ForAll(
		func(s string) bool {
			_, err := Access(DefaultCollection(), "x"+s)
			return errors.Is(err, apperrors.ErrParse)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// FuzzAccess verifies that Access never panics and always returns either an
// element or one of the two typed failures.
func FuzzAccess(f *testing.F) {
	for _, seed := range []string{"0", "2", "4", "5", "abc", "-1", "", " 3 \n", "99999999999999999999"} {
		f.Add(seed)
	}

	c := DefaultCollection()
	f.Fuzz(func(t *testing.T, raw string) {
		v, err := Access(c, raw)
		if err == nil {
			if v < 1 || v > 5 {
				t.Fatalf("Access(%q) returned %d outside the collection", raw, v)
			}
			return
		}
		if !errors.Is(err, apperrors.ErrParse) && !errors.Is(err, apperrors.ErrIndexOutOfRange) {
			t.Fatalf("Access(%q) returned an untyped error: %v", raw, err)
		}
	})
}
