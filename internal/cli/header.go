package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fibseq/internal/config"
	"github.com/agbru/fibseq/internal/sequence"
	"github.com/agbru/fibseq/internal/ui"
)

// PrintExecutionConfig prints the count, timeout and runtime environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Generating the sequence for count %s%d%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Count, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode prints whether one width or all of them will run.
func PrintExecutionMode(generators []sequence.Generator, out io.Writer) {
	var modeDesc string
	if len(generators) > 1 {
		modeDesc = fmt.Sprintf("Parallel comparison of %d widths", len(generators))
	} else {
		modeDesc = fmt.Sprintf("Single generation in %s%s%s", ui.ColorGreen(), generators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
