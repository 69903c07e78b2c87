package cli

import (
	"fmt"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/sequence"
	"github.com/agbru/fibseq/internal/ui"
)

// CLIProgressReporter shows a spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan sequence.ProgressUpdate, numGenerators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numGenerators, out)
}

// CLIColorProvider supplies theme colors to apperrors.HandleError.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter prints comparison tables and sequences to the console.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per generator. Padding is computed
// by hand in runes so ANSI codes and "µs" do not break alignment.
func (p CLIResultPresenter) PresentComparisonTable(results []orchestration.GenerationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen := len("Width")
	maxDurationLen := len("Duration")
	for _, res := range results {
		maxNameLen = max(maxNameLen, utf8.RuneCountInString(res.Name))
		maxDurationLen = max(maxDurationLen, utf8.RuneCountInString(p.FormatDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sWidth%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Width")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success (%d terms)%s", ui.ColorGreen(), len(res.Sequence.Terms), ui.ColorReset())
		}
		duration := p.FormatDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-utf8.RuneCountInString(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-utf8.RuneCountInString(duration)),
			status)
	}
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult prints the agreed sequence.
func (CLIResultPresenter) PresentResult(result orchestration.GenerationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplaySequence(out, result.Sequence, result.Duration, opts.Separator, opts.Verbose, opts.Details)
}

// FormatDuration formats d, showing "< 1µs" for zero.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// HandleError prints err and returns its exit code.
func (CLIResultPresenter) HandleError(err error, _ time.Duration, out io.Writer) int {
	return apperrors.HandleError(err, out, CLIColorProvider{})
}

// DisplayMemoryStats prints the memory used by a run.
func DisplayMemoryStats(delta metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(delta.PeakHeap))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(delta.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.PauseTotalNs)/1e6)
}
