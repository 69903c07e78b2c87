package sequence

import (
	"fmt"
	"math"
	"strings"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// Width selects the integer representation used for sequence terms.
type Width int

// Supported widths. WidthBig selects arbitrary precision.
const (
	WidthBig Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// DefaultWidth is used when no width is configured.
const DefaultWidth = Width64

// Widths lists every supported width in ascending precision.
func Widths() []Width {
	return []Width{Width8, Width16, Width32, Width64, WidthBig}
}

// String returns the display name of the width ("u8" ... "u64", "big").
func (w Width) String() string {
	if w == WidthBig {
		return "big"
	}
	return fmt.Sprintf("u%d", int(w))
}

// Fixed reports whether the width is a bounded machine integer.
func (w Width) Fixed() bool {
	switch w {
	case Width8, Width16, Width32, Width64:
		return true
	}
	return false
}

// Max returns the largest value representable in a fixed width.
// It returns math.MaxUint64 for WidthBig.
func (w Width) Max() uint64 {
	if !w.Fixed() || w == Width64 {
		return math.MaxUint64
	}
	return uint64(1)<<uint(w) - 1
}

// ParseWidth accepts "8", "u8", "16", "u16", "32", "u32", "64", "u64" and "big".
func ParseWidth(s string) (Width, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "8", "u8":
		return Width8, nil
	case "16", "u16":
		return Width16, nil
	case "32", "u32":
		return Width32, nil
	case "64", "u64":
		return Width64, nil
	case "big":
		return WidthBig, nil
	}
	return 0, apperrors.ValidationError{Field: "width", Message: fmt.Sprintf("unsupported width %q (want 8, 16, 32, 64 or big)", s)}
}

// MaxCount returns the largest count that generates without overflow in the
// given width. It returns math.MaxUint64 for WidthBig.
func MaxCount(w Width) uint64 {
	if !w.Fixed() {
		return math.MaxUint64
	}
	state := NewState()
	position := uint64(1)
	for {
		next, err := state.Step(w, position+1)
		if err != nil {
			// position is the last term that fits; its step is count-2.
			return position + 2
		}
		state = next
		position++
	}
}

// maxCounts caches MaxCount for the fixed widths.
var maxCounts = map[Width]uint64{
	Width8:  MaxCount(Width8),
	Width16: MaxCount(Width16),
	Width32: MaxCount(Width32),
	Width64: MaxCount(Width64),
}

func maxCountCache(w Width) uint64 {
	if c, ok := maxCounts[w]; ok {
		return c
	}
	return MaxCount(w)
}
