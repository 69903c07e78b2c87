package format

import (
	"fmt"
	"strings"
)

// DefaultSeparator joins sequence terms in console output.
const DefaultSeparator = " -> "

// FormatSequence renders terms joined by sep, e.g. "1 -> 1 -> 2".
// An empty sep selects DefaultSeparator.
func FormatSequence[T any](terms []T, sep string) string {
	if sep == "" {
		sep = DefaultSeparator
	}
	var b strings.Builder
	for i, t := range terms {
		if i > 0 {
			b.WriteString(sep)
		}
		fmt.Fprint(&b, t)
	}
	return b.String()
}

// TruncateSequence keeps the first and last edge terms of a long rendering
// and replaces the middle with an ellipsis marker.
func TruncateSequence(terms []string, edge int) []string {
	if edge <= 0 || len(terms) <= 2*edge+1 {
		return terms
	}
	out := make([]string, 0, 2*edge+1)
	out = append(out, terms[:edge]...)
	out = append(out, fmt.Sprintf("…(%d more)…", len(terms)-2*edge))
	return append(out, terms[len(terms)-edge:]...)
}
