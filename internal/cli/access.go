package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/fibseq/internal/bounded"
	"github.com/agbru/fibseq/internal/ui"
)

// IndexPrompt asks for the index in --prompt mode.
const IndexPrompt = "Please enter an array index."

// PromptIndex prints IndexPrompt.
func PromptIndex(out io.Writer) {
	fmt.Fprintln(out, IndexPrompt)
}

// FormatStatePath renders the visited states, e.g.
// "AwaitingInput -> Parsed -> Rejected".
func FormatStatePath(path []bounded.State) string {
	names := make([]string, len(path))
	for i, s := range path {
		names[i] = s.String()
	}
	return strings.Join(names, " -> ")
}

// FormatAccessResult renders a resolved lookup.
func FormatAccessResult[T any](a bounded.Attempt[T]) string {
	return fmt.Sprintf("The value of the element at index %d is: %v", a.Index, a.Value)
}

// DisplayAccess prints a resolved lookup. Rejected attempts print nothing;
// the caller reports their error. With verbose the state path follows.
func DisplayAccess[T any](out io.Writer, a bounded.Attempt[T], verbose bool) {
	if a.OK() {
		fmt.Fprintln(out, FormatAccessResult(a))
	}
	if verbose {
		fmt.Fprintf(out, "%sState: %s%s\n", ui.ColorCyan(), FormatStatePath(a.Path), ui.ColorReset())
	}
}
