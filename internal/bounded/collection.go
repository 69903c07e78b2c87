package bounded

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// Collection is an immutable ordered sequence of elements.
type Collection[T any] struct {
	elems []T
}

// NewCollection copies elems into a new collection.
func NewCollection[T any](elems ...T) Collection[T] {
	c := make([]T, len(elems))
	copy(c, elems)
	return Collection[T]{elems: c}
}

// DefaultCollection returns the sample collection [1, 2, 3, 4, 5].
func DefaultCollection() Collection[int64] {
	return NewCollection[int64](1, 2, 3, 4, 5)
}

// Len returns the number of elements. Valid indices are [0, Len()).
func (c Collection[T]) Len() int { return len(c.elems) }

// Elements returns a copy of the elements.
func (c Collection[T]) Elements() []T {
	out := make([]T, len(c.elems))
	copy(out, c.elems)
	return out
}

// At returns the element at index or an IndexOutOfRangeError.
func (c Collection[T]) At(index uint64) (T, error) {
	if index >= uint64(len(c.elems)) {
		var zero T
		return zero, apperrors.IndexOutOfRangeError{Index: index, Length: len(c.elems)}
	}
	return c.elems[index], nil
}

// String renders the collection as "[1, 2, 3]".
func (c Collection[T]) String() string {
	parts := make([]string, len(c.elems))
	for i, e := range c.elems {
		parts[i] = fmt.Sprint(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ParseInt64Collection parses a comma-separated list such as "1,2,3".
// Blank entries are rejected.
func ParseInt64Collection(s string) (Collection[int64], error) {
	if strings.TrimSpace(s) == "" {
		return Collection[int64]{}, apperrors.ValidationError{Field: "elements", Message: "collection must not be empty"}
	}
	fields := strings.Split(s, ",")
	elems := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return Collection[int64]{}, apperrors.ValidationError{Field: "elements", Message: fmt.Sprintf("%q is not an integer", strings.TrimSpace(f))}
		}
		elems = append(elems, v)
	}
	return Collection[int64]{elems: elems}, nil
}
